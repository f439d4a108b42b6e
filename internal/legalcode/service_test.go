package legalcode

import (
	"context"
	"testing"

	"github.com/creativecommons/legal-tools-backend/pkg/db/models"
	"github.com/creativecommons/legal-tools-backend/pkg/enums"
	pkgerrors "github.com/creativecommons/legal-tools-backend/pkg/errors"
)

type stubFinder struct {
	license *models.License
	err     error
}

func (s *stubFinder) GetLicense(ctx context.Context, category enums.Category, licenseCode, version, jurisdictionCode string) (*models.License, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.license, nil
}

func TestNewServiceValidatesInputs(t *testing.T) {
	if _, err := NewService(nil, "https://example.org"); err == nil {
		t.Fatal("expected error for nil finder")
	}
	if _, err := NewService(&stubFinder{}, ""); err == nil {
		t.Fatal("expected error for empty canonical base")
	}
}

func TestGetLegalCodePageStructuredVariant(t *testing.T) {
	finder := &stubFinder{license: &models.License{
		About:        "https://creativecommons.org/licenses/by/4.0/",
		Category:     enums.CategoryLicenses,
		LicenseCode:  "by",
		Version:      "4.0",
		TitleEnglish: "Attribution 4.0 International",
		LegalCodes: []models.LegalCode{
			{LanguageCode: "en"},
			{LanguageCode: "fr"},
		},
	}}
	svc, err := NewService(finder, "https://creativecommons.org/")
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	page, err := svc.GetLegalCodePage(context.Background(), enums.CategoryLicenses, "by", "4.0", "", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if page.TextBlock != enums.TextBlockLicenses40 {
		t.Fatalf("unexpected block %s", page.TextBlock)
	}
	if !page.ShowBoilerplate {
		t.Fatal("expected boilerplate for structured variant with empty html")
	}
	if page.LanguageCode != "en" {
		t.Fatalf("expected default language, got %q", page.LanguageCode)
	}
	if page.Title != "Attribution 4.0 International" {
		t.Fatalf("unexpected title %q", page.Title)
	}
	if page.CanonicalURL != "https://creativecommons.org/licenses/by/4.0/legalcode" {
		t.Fatalf("unexpected canonical url %q", page.CanonicalURL)
	}
	if page.DeedPath != "/licenses/by/4.0/deed" {
		t.Fatalf("unexpected deed path %q", page.DeedPath)
	}
	if len(page.Translations) != 2 || !page.Translations[0].Current {
		t.Fatalf("unexpected translations %+v", page.Translations)
	}
	if page.Translations[1].Path != "/licenses/by/4.0/legalcode.fr" {
		t.Fatalf("unexpected translation path %q", page.Translations[1].Path)
	}
}

func TestGetLegalCodePageRawHTMLHidesBoilerplate(t *testing.T) {
	finder := &stubFinder{license: &models.License{
		Category:         enums.CategoryLicenses,
		LicenseCode:      "by",
		Version:          "3.0",
		JurisdictionCode: "us",
		LegalCodes: []models.LegalCode{
			{LanguageCode: "en", HTML: "<p>ported text</p>"},
		},
	}}
	svc, _ := NewService(finder, "https://creativecommons.org")

	page, err := svc.GetLegalCodePage(context.Background(), enums.CategoryLicenses, "by", "3.0", "us", "en")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if page.TextBlock != enums.TextBlockCrudeHTML {
		t.Fatalf("unexpected block %s", page.TextBlock)
	}
	if page.ShowBoilerplate {
		t.Fatal("raw html page must not show boilerplate")
	}
	if page.RawHTML != "<p>ported text</p>" {
		t.Fatalf("unexpected html %q", page.RawHTML)
	}
}

func TestGetLegalCodePageMissingTranslation(t *testing.T) {
	finder := &stubFinder{license: &models.License{
		Category:    enums.CategoryLicenses,
		LicenseCode: "by",
		Version:     "4.0",
		LegalCodes:  []models.LegalCode{{LanguageCode: "en"}},
	}}
	svc, _ := NewService(finder, "https://creativecommons.org")

	_, err := svc.GetLegalCodePage(context.Background(), enums.CategoryLicenses, "by", "4.0", "", "fr")
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
}

func TestGetLegalCodePageRawVariantWithoutText(t *testing.T) {
	finder := &stubFinder{license: &models.License{
		Category:    enums.CategoryLicenses,
		LicenseCode: "by",
		Version:     "2.0",
	}}
	svc, _ := NewService(finder, "https://creativecommons.org")

	_, err := svc.GetLegalCodePage(context.Background(), enums.CategoryLicenses, "by", "2.0", "", "")
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
}

func TestGetLegalCodePageRejectsUnknownLanguage(t *testing.T) {
	svc, _ := NewService(&stubFinder{license: &models.License{}}, "https://creativecommons.org")

	_, err := svc.GetLegalCodePage(context.Background(), enums.CategoryLicenses, "by", "4.0", "", "zz")
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected VALIDATION_ERROR, got %v", err)
	}
}

func TestGetLegalCodePagePropagatesFinderError(t *testing.T) {
	finder := &stubFinder{err: pkgerrors.New(pkgerrors.CodeNotFound, "license not found")}
	svc, _ := NewService(finder, "https://creativecommons.org")

	_, err := svc.GetLegalCodePage(context.Background(), enums.CategoryLicenses, "by", "9.9", "", "")
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
}

func TestGetDeedPage(t *testing.T) {
	finder := &stubFinder{license: &models.License{
		About:                  "https://creativecommons.org/licenses/by-nc/4.0/",
		Category:               enums.CategoryLicenses,
		LicenseCode:            "by-nc",
		Version:                "4.0",
		TitleEnglish:           "Attribution-NonCommercial 4.0 International",
		PermitsDistribution:    true,
		PermitsReproduction:    true,
		RequiresAttribution:    true,
		ProhibitsCommercialUse: true,
	}}
	svc, _ := NewService(finder, "https://creativecommons.org")

	deed, err := svc.GetDeedPage(context.Background(), enums.CategoryLicenses, "by-nc", "4.0", "", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if deed.LegalCodePath != "/licenses/by-nc/4.0/legalcode" {
		t.Fatalf("unexpected legal code path %q", deed.LegalCodePath)
	}
	if !deed.ProhibitsCommercialUse || !deed.RequiresAttribution {
		t.Fatalf("deed flags not carried over: %+v", deed)
	}
	if deed.CanonicalURL != "https://creativecommons.org/licenses/by-nc/4.0/deed" {
		t.Fatalf("unexpected canonical url %q", deed.CanonicalURL)
	}
}

func TestPageTitleFallsBackToIdentity(t *testing.T) {
	finder := &stubFinder{license: &models.License{
		Category:         enums.CategoryLicenses,
		LicenseCode:      "by-sa",
		Version:          "3.0",
		JurisdictionCode: "nl",
		LegalCodes:       []models.LegalCode{{LanguageCode: "en", HTML: "<p>x</p>"}},
	}}
	svc, _ := NewService(finder, "https://creativecommons.org")

	page, err := svc.GetLegalCodePage(context.Background(), enums.CategoryLicenses, "by-sa", "3.0", "nl", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if page.Title != "BY-SA 3.0 NL" {
		t.Fatalf("unexpected title %q", page.Title)
	}
}
