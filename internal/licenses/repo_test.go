package licenses

import (
	"context"
	"testing"
	"time"

	"github.com/creativecommons/legal-tools-backend/pkg/db/models"
	"github.com/creativecommons/legal-tools-backend/pkg/enums"
	"github.com/creativecommons/legal-tools-backend/pkg/pagination"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupLicensesTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	licenses := `
CREATE TABLE IF NOT EXISTS licenses (
  id TEXT PRIMARY KEY,
  about TEXT NOT NULL UNIQUE,
  category TEXT NOT NULL,
  license_code TEXT NOT NULL,
  version TEXT NOT NULL DEFAULT '',
  jurisdiction_code TEXT NOT NULL DEFAULT '',
  title_english TEXT NOT NULL DEFAULT '',
  creator_url TEXT NOT NULL DEFAULT '',
  deprecated_on DATETIME,
  permits_derivative_works INTEGER NOT NULL DEFAULT 0,
  permits_distribution INTEGER NOT NULL DEFAULT 0,
  permits_reproduction INTEGER NOT NULL DEFAULT 0,
  permits_sharing INTEGER NOT NULL DEFAULT 0,
  requires_attribution INTEGER NOT NULL DEFAULT 0,
  requires_notice INTEGER NOT NULL DEFAULT 0,
  requires_share_alike INTEGER NOT NULL DEFAULT 0,
  requires_source_code INTEGER NOT NULL DEFAULT 0,
  prohibits_commercial_use INTEGER NOT NULL DEFAULT 0,
  prohibits_high_income_nation_use INTEGER NOT NULL DEFAULT 0,
  created_at DATETIME,
  updated_at DATETIME
);`
	legalCodes := `
CREATE TABLE IF NOT EXISTS legal_codes (
  id TEXT PRIMARY KEY,
  license_id TEXT NOT NULL,
  language_code TEXT NOT NULL,
  title TEXT NOT NULL DEFAULT '',
  html TEXT NOT NULL DEFAULT '',
  translation_last_update DATETIME,
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, db.Exec(licenses).Error)
	require.NoError(t, db.Exec(legalCodes).Error)
	return db
}

func newLicense(t *testing.T, db *gorm.DB, category enums.Category, code, version, jurisdiction string, created time.Time) *models.License {
	t.Helper()

	license := &models.License{
		ID:               uuid.New(),
		About:            ComputeAboutURL(category, code, version, jurisdiction),
		Category:         category,
		LicenseCode:      code,
		Version:          version,
		JurisdictionCode: jurisdiction,
		CreatedAt:        created,
		UpdatedAt:        created,
	}
	require.NoError(t, db.Create(license).Error)
	return license
}

func newLegalCode(t *testing.T, db *gorm.DB, license *models.License, languageCode, html string) *models.LegalCode {
	t.Helper()

	legalCode := &models.LegalCode{
		ID:           uuid.New(),
		LicenseID:    license.ID,
		LanguageCode: languageCode,
		HTML:         html,
	}
	require.NoError(t, db.Create(legalCode).Error)
	return legalCode
}

func TestRepositoryFindByIdentity(t *testing.T) {
	db := setupLicensesTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	now := time.Now().UTC()
	unported := newLicense(t, db, enums.CategoryLicenses, "by", "3.0", "", now)
	ported := newLicense(t, db, enums.CategoryLicenses, "by", "3.0", "rs", now)
	newLegalCode(t, db, ported, "sr-Cyrl", "<p>x</p>")

	got, err := repo.FindByIdentity(ctx, enums.CategoryLicenses, "by", "3.0", "rs")
	require.NoError(t, err)
	assert.Equal(t, ported.ID, got.ID)
	require.Len(t, got.LegalCodes, 1)
	assert.Equal(t, "sr-Cyrl", got.LegalCodes[0].LanguageCode)

	got, err = repo.FindByIdentity(ctx, enums.CategoryLicenses, "by", "3.0", "")
	require.NoError(t, err)
	assert.Equal(t, unported.ID, got.ID)

	_, err = repo.FindByIdentity(ctx, enums.CategoryLicenses, "by", "9.9", "")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRepositoryFindByAbout(t *testing.T) {
	db := setupLicensesTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	license := newLicense(t, db, enums.CategoryPublicDomain, "CC0", "1.0", "", time.Now().UTC())

	got, err := repo.FindByAbout(ctx, "https://creativecommons.org/publicdomain/zero/1.0/")
	require.NoError(t, err)
	assert.Equal(t, license.ID, got.ID)
}

func TestRepositoryFindLegalCode(t *testing.T) {
	db := setupLicensesTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	license := newLicense(t, db, enums.CategoryLicenses, "by", "4.0", "", time.Now().UTC())
	newLegalCode(t, db, license, "en", "<p>en</p>")
	newLegalCode(t, db, license, "fr", "<p>fr</p>")

	got, err := repo.FindLegalCode(ctx, license.ID, "fr")
	require.NoError(t, err)
	assert.Equal(t, "<p>fr</p>", got.HTML)
	require.NotNil(t, got.License)
	assert.Equal(t, "by", got.License.LicenseCode)

	_, err = repo.FindLegalCode(ctx, license.ID, "de")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRepositoryListAllWithLegalCodes(t *testing.T) {
	db := setupLicensesTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	now := time.Now().UTC()
	v3 := newLicense(t, db, enums.CategoryLicenses, "by", "3.0", "", now)
	v4 := newLicense(t, db, enums.CategoryLicenses, "by", "4.0", "", now)
	cc0 := newLicense(t, db, enums.CategoryPublicDomain, "CC0", "1.0", "", now)
	newLegalCode(t, db, v4, "fr", "<p>fr</p>")
	newLegalCode(t, db, v4, "en", "<p>en</p>")

	rows, err := repo.ListAllWithLegalCodes(ctx, enums.CategoryLicenses)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, v4.ID, rows[0].ID)
	assert.Equal(t, v3.ID, rows[1].ID)
	require.Len(t, rows[0].LegalCodes, 2)
	assert.Equal(t, "en", rows[0].LegalCodes[0].LanguageCode)

	rows, err = repo.ListAllWithLegalCodes(ctx, "")
	require.NoError(t, err)
	assert.Len(t, rows, 3)

	rows, err = repo.ListAllWithLegalCodes(ctx, enums.CategoryPublicDomain)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, cc0.ID, rows[0].ID)
}

func TestRepositoryListSummariesPagination(t *testing.T) {
	db := setupLicensesTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	base := time.Now().UTC().Add(-time.Hour)
	newLicense(t, db, enums.CategoryLicenses, "by", "4.0", "", base)
	newLicense(t, db, enums.CategoryLicenses, "by-nc", "4.0", "", base.Add(time.Minute))
	newLicense(t, db, enums.CategoryLicenses, "by-sa", "4.0", "", base.Add(2*time.Minute))

	page, err := repo.ListSummaries(ctx, licenseListQuery{
		Pagination: pagination.Params{Limit: 2},
	})
	require.NoError(t, err)
	require.Len(t, page.Licenses, 2)
	assert.Equal(t, "by-sa", page.Licenses[0].LicenseCode)
	assert.Equal(t, "by-nc", page.Licenses[1].LicenseCode)
	require.NotEmpty(t, page.NextCursor)

	page, err = repo.ListSummaries(ctx, licenseListQuery{
		Pagination: pagination.Params{Limit: 2, Cursor: page.NextCursor},
	})
	require.NoError(t, err)
	require.Len(t, page.Licenses, 1)
	assert.Equal(t, "by", page.Licenses[0].LicenseCode)
	assert.Empty(t, page.NextCursor)
}

func TestRepositoryListSummariesFilters(t *testing.T) {
	db := setupLicensesTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	now := time.Now().UTC()
	newLicense(t, db, enums.CategoryLicenses, "by", "4.0", "", now)
	deprecated := newLicense(t, db, enums.CategoryLicenses, "sampling+", "1.0", "", now)
	deprecatedOn := now.Add(-24 * time.Hour)
	require.NoError(t, db.Model(deprecated).Update("deprecated_on", deprecatedOn).Error)
	newLicense(t, db, enums.CategoryPublicDomain, "CC0", "1.0", "", now)

	category := enums.CategoryLicenses
	page, err := repo.ListSummaries(ctx, licenseListQuery{
		Filters: ListFilters{Category: &category},
	})
	require.NoError(t, err)
	assert.Len(t, page.Licenses, 2)

	trueVal := true
	page, err = repo.ListSummaries(ctx, licenseListQuery{
		Filters: ListFilters{Deprecated: &trueVal},
	})
	require.NoError(t, err)
	require.Len(t, page.Licenses, 1)
	assert.Equal(t, "sampling+", page.Licenses[0].LicenseCode)
	assert.True(t, page.Licenses[0].Deprecated)

	page, err = repo.ListSummaries(ctx, licenseListQuery{
		Filters: ListFilters{Query: "SAMPL"},
	})
	require.NoError(t, err)
	require.Len(t, page.Licenses, 1)

	page, err = repo.ListSummaries(ctx, licenseListQuery{
		Filters: ListFilters{Version: "9.9"},
	})
	require.NoError(t, err)
	assert.Empty(t, page.Licenses)
}
