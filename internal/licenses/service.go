package licenses

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/creativecommons/legal-tools-backend/pkg/db"
	"github.com/creativecommons/legal-tools-backend/pkg/db/models"
	"github.com/creativecommons/legal-tools-backend/pkg/enums"
	pkgerrors "github.com/creativecommons/legal-tools-backend/pkg/errors"
	"github.com/creativecommons/legal-tools-backend/pkg/pagination"
	"gorm.io/gorm"
)

type licensesRepository interface {
	Create(ctx context.Context, license *models.License) (*models.License, error)
	CreateLegalCode(ctx context.Context, legalCode *models.LegalCode) (*models.LegalCode, error)
	FindByIdentity(ctx context.Context, category enums.Category, licenseCode, version, jurisdictionCode string) (*models.License, error)
	FindByAbout(ctx context.Context, about string) (*models.License, error)
	ListAllWithLegalCodes(ctx context.Context, category enums.Category) ([]models.License, error)
	ListSummaries(ctx context.Context, query licenseListQuery) (*ListResult, error)
}

// Service exposes license lookup, listing, index, and ingest semantics.
type Service interface {
	GetLicense(ctx context.Context, category enums.Category, licenseCode, version, jurisdictionCode string) (*models.License, error)
	CreateLicense(ctx context.Context, input CreateLicenseInput) (*models.License, error)
	ListLicenses(ctx context.Context, params ListParams) (*ListResult, error)
	BuildDevIndex(ctx context.Context) ([]IndexSection, error)
	IngestLegalCodeFile(ctx context.Context, filename, html string) (*models.LegalCode, error)
}

// CreateLicenseInput is the dev API payload for registering a license.
type CreateLicenseInput struct {
	Category         string `json:"category" validate:"required,oneof=licenses publicdomain"`
	LicenseCode      string `json:"license_code" validate:"required,min=2,max=40"`
	Version          string `json:"version" validate:"omitempty,max=10"`
	JurisdictionCode string `json:"jurisdiction_code" validate:"omitempty,max=10"`
	TitleEnglish     string `json:"title_english" validate:"omitempty,max=250"`
	CreatorURL       string `json:"creator_url" validate:"omitempty,url"`

	PermitsDerivativeWorks bool `json:"permits_derivative_works"`
	PermitsReproduction    bool `json:"permits_reproduction"`
	PermitsDistribution    bool `json:"permits_distribution"`
	PermitsSharing         bool `json:"permits_sharing"`
	RequiresShareAlike     bool `json:"requires_share_alike"`
	RequiresNotice         bool `json:"requires_notice"`
	RequiresAttribution    bool `json:"requires_attribution"`
	RequiresSourceCode     bool `json:"requires_source_code"`
	ProhibitsCommercialUse bool `json:"prohibits_commercial_use"`
}

// ListParams carries listing filters plus the pagination window.
type ListParams struct {
	Filters    ListFilters
	Pagination pagination.Params
}

type service struct {
	repo licensesRepository
}

// NewService builds a license service backed by the provided repository.
func NewService(repo licensesRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("licenses repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) GetLicense(ctx context.Context, category enums.Category, licenseCode, version, jurisdictionCode string) (*models.License, error) {
	if !category.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown category").
			WithDetails(map[string]string{"category": string(category)})
	}

	license, err := s.repo.FindByIdentity(ctx, category, licenseCode, version, jurisdictionCode)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "license not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "looking up license")
	}
	return license, nil
}

// CreateLicense registers a license record. The about URL is derived
// from the identity fields.
func (s *service) CreateLicense(ctx context.Context, input CreateLicenseInput) (*models.License, error) {
	category, err := enums.ParseCategory(input.Category)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "unknown category")
	}

	license, err := s.repo.Create(ctx, &models.License{
		About:            ComputeAboutURL(category, input.LicenseCode, input.Version, input.JurisdictionCode),
		Category:         category,
		LicenseCode:      input.LicenseCode,
		Version:          input.Version,
		JurisdictionCode: input.JurisdictionCode,
		TitleEnglish:     input.TitleEnglish,
		CreatorURL:       input.CreatorURL,

		PermitsDerivativeWorks: input.PermitsDerivativeWorks,
		PermitsReproduction:    input.PermitsReproduction,
		PermitsDistribution:    input.PermitsDistribution,
		PermitsSharing:         input.PermitsSharing,
		RequiresShareAlike:     input.RequiresShareAlike,
		RequiresNotice:         input.RequiresNotice,
		RequiresAttribution:    input.RequiresAttribution,
		RequiresSourceCode:     input.RequiresSourceCode,
		ProhibitsCommercialUse: input.ProhibitsCommercialUse,
	})
	if err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "license already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating license")
	}
	return license, nil
}

func (s *service) ListLicenses(ctx context.Context, params ListParams) (*ListResult, error) {
	return s.repo.ListSummaries(ctx, licenseListQuery{
		Pagination: params.Pagination,
		Filters:    params.Filters,
	})
}

func (s *service) BuildDevIndex(ctx context.Context) ([]IndexSection, error) {
	licenses, err := s.repo.ListAllWithLegalCodes(ctx, "")
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading licenses for index")
	}
	return BuildIndex(licenses), nil
}

// IngestLegalCodeFile registers the license identified by a legal code
// filename and stores the file's HTML as one of its translations. The
// license row is created on first sight.
func (s *service) IngestLegalCodeFile(ctx context.Context, filename, html string) (*models.LegalCode, error) {
	parsed, err := ParseLegalCodeFilename(filename)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "unrecognized legalcode filename")
	}

	license, err := s.repo.FindByAbout(ctx, parsed.AboutURL)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		license, err = s.repo.Create(ctx, &models.License{
			About:            parsed.AboutURL,
			Category:         parsed.Category,
			LicenseCode:      parsed.LicenseCode,
			Version:          parsed.Version,
			JurisdictionCode: parsed.JurisdictionCode,
		})
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "registering license")
	}

	legalCode, err := s.repo.CreateLegalCode(ctx, &models.LegalCode{
		LicenseID:    license.ID,
		LanguageCode: parsed.LanguageCode,
		HTML:         strings.TrimSpace(html),
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "storing legal code")
	}
	return legalCode, nil
}
