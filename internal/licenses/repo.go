package licenses

import (
	"context"
	"strings"

	"github.com/creativecommons/legal-tools-backend/pkg/db/models"
	"github.com/creativecommons/legal-tools-backend/pkg/enums"
	"github.com/creativecommons/legal-tools-backend/pkg/pagination"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository persists licenses and their legal code translations.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a licenses repository bound to the provided DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	if tx == nil {
		return r
	}
	return &Repository{db: tx}
}

func (r *Repository) Create(ctx context.Context, license *models.License) (*models.License, error) {
	if err := r.db.WithContext(ctx).Create(license).Error; err != nil {
		return nil, err
	}
	return license, nil
}

func (r *Repository) CreateLegalCode(ctx context.Context, legalCode *models.LegalCode) (*models.LegalCode, error) {
	if err := r.db.WithContext(ctx).Create(legalCode).Error; err != nil {
		return nil, err
	}
	return legalCode, nil
}

func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.License, error) {
	var license models.License
	err := r.db.WithContext(ctx).
		Preload("LegalCodes").
		Where("id = ?", id).
		First(&license).Error
	if err != nil {
		return nil, err
	}
	return &license, nil
}

// FindByIdentity resolves a license by the tuple that identifies it in
// URLs. An unported license is stored with an empty jurisdiction code.
func (r *Repository) FindByIdentity(ctx context.Context, category enums.Category, licenseCode, version, jurisdictionCode string) (*models.License, error) {
	var license models.License
	err := r.db.WithContext(ctx).
		Preload("LegalCodes").
		Where("category = ?", category).
		Where("license_code = ?", licenseCode).
		Where("version = ?", version).
		Where("jurisdiction_code = ?", jurisdictionCode).
		First(&license).Error
	if err != nil {
		return nil, err
	}
	return &license, nil
}

func (r *Repository) FindByAbout(ctx context.Context, about string) (*models.License, error) {
	var license models.License
	err := r.db.WithContext(ctx).
		Preload("LegalCodes").
		Where("about = ?", about).
		First(&license).Error
	if err != nil {
		return nil, err
	}
	return &license, nil
}

// FindLegalCode loads one translation of a license's legal code.
func (r *Repository) FindLegalCode(ctx context.Context, licenseID uuid.UUID, languageCode string) (*models.LegalCode, error) {
	var legalCode models.LegalCode
	err := r.db.WithContext(ctx).
		Preload("License").
		Where("license_id = ?", licenseID).
		Where("language_code = ?", languageCode).
		First(&legalCode).Error
	if err != nil {
		return nil, err
	}
	return &legalCode, nil
}

// ListAllWithLegalCodes loads every license of a category with its
// translations, ordered for index rendering.
func (r *Repository) ListAllWithLegalCodes(ctx context.Context, category enums.Category) ([]models.License, error) {
	var licenses []models.License
	qb := r.db.WithContext(ctx).
		Preload("LegalCodes", func(db *gorm.DB) *gorm.DB {
			return db.Order("language_code ASC")
		}).
		Order("version DESC").
		Order("jurisdiction_code ASC").
		Order("license_code ASC")
	if category != "" {
		qb = qb.Where("category = ?", category)
	}
	if err := qb.Find(&licenses).Error; err != nil {
		return nil, err
	}
	return licenses, nil
}

type licenseListQuery struct {
	Pagination pagination.Params
	Filters    ListFilters
}

// ListSummaries pages through license summaries with keyset pagination.
func (r *Repository) ListSummaries(ctx context.Context, query licenseListQuery) (*ListResult, error) {
	pageSize := pagination.NormalizeLimit(query.Pagination.Limit)
	limitWithBuffer := pagination.LimitWithBuffer(query.Pagination.Limit)
	if limitWithBuffer <= pageSize {
		limitWithBuffer = pageSize + 1
	}

	cursor, err := pagination.ParseCursor(query.Pagination.Cursor)
	if err != nil {
		return nil, err
	}

	qb := r.db.WithContext(ctx).Model(&models.License{})

	filter := query.Filters
	if filter.Category != nil {
		qb = qb.Where("category = ?", *filter.Category)
	}
	if filter.Version != "" {
		qb = qb.Where("version = ?", filter.Version)
	}
	if filter.JurisdictionCode != nil {
		qb = qb.Where("jurisdiction_code = ?", *filter.JurisdictionCode)
	}
	if filter.Deprecated != nil {
		if *filter.Deprecated {
			qb = qb.Where("deprecated_on IS NOT NULL")
		} else {
			qb = qb.Where("deprecated_on IS NULL")
		}
	}
	if search := strings.TrimSpace(filter.Query); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		qb = qb.Where("(LOWER(license_code) LIKE ? OR LOWER(title_english) LIKE ?)", pattern, pattern)
	}

	if cursor != nil {
		qb = qb.Where("(created_at < ?) OR (created_at = ? AND id < ?)", cursor.CreatedAt, cursor.CreatedAt, cursor.ID)
	}

	qb = qb.Order("created_at DESC").Order("id DESC").Limit(limitWithBuffer)

	var rows []models.License
	if err := qb.Find(&rows).Error; err != nil {
		return nil, err
	}

	resultRows := rows
	nextCursor := ""
	if len(rows) > pageSize {
		resultRows = rows[:pageSize]
		last := resultRows[len(resultRows)-1]
		nextCursor = pagination.EncodeCursor(pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID})
	}

	summaries := make([]Summary, 0, len(resultRows))
	for _, row := range resultRows {
		summaries = append(summaries, newSummary(row))
	}

	return &ListResult{
		Licenses:   summaries,
		NextCursor: nextCursor,
	}, nil
}
