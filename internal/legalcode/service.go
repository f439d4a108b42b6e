package legalcode

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/creativecommons/legal-tools-backend/internal/licenses"
	"github.com/creativecommons/legal-tools-backend/pkg/db/models"
	"github.com/creativecommons/legal-tools-backend/pkg/enums"
	pkgerrors "github.com/creativecommons/legal-tools-backend/pkg/errors"
)

type licenseFinder interface {
	GetLicense(ctx context.Context, category enums.Category, licenseCode, version, jurisdictionCode string) (*models.License, error)
}

// TranslationLink is one entry in a page's language selector.
type TranslationLink struct {
	LanguageCode string
	Path         string
	Current      bool
}

// PageView carries everything the legal code template needs.
type PageView struct {
	Title            string
	Category         enums.Category
	LicenseCode      string
	Version          string
	JurisdictionCode string
	LanguageCode     string
	TextBlock        enums.TextBlock
	RawHTML          string
	ShowBoilerplate  bool
	AboutURL         string
	CanonicalURL     string
	LegalCodePath    string
	DeedPath         string
	Deprecated       bool
	Translations     []TranslationLink
}

// IsCC0Text reports whether the CC0 dedication partial renders.
func (p *PageView) IsCC0Text() bool { return p.TextBlock == enums.TextBlockCC0 }

// IsLicenses40Text reports whether the 4.0 suite partial renders.
func (p *PageView) IsLicenses40Text() bool { return p.TextBlock == enums.TextBlockLicenses40 }

// IsLicenses30UnportedText reports whether the unported 3.0 partial renders.
func (p *PageView) IsLicenses30UnportedText() bool {
	return p.TextBlock == enums.TextBlockLicenses30Unported
}

// IsRawHTML reports whether the stored HTML renders verbatim.
func (p *PageView) IsRawHTML() bool { return p.TextBlock == enums.TextBlockCrudeHTML }

// DeedView carries everything the deed template needs.
type DeedView struct {
	Title            string
	Category         enums.Category
	LicenseCode      string
	Version          string
	JurisdictionCode string
	LanguageCode     string
	AboutURL         string
	CanonicalURL     string
	LegalCodePath    string
	Deprecated       bool

	PermitsDerivativeWorks bool
	PermitsDistribution    bool
	PermitsReproduction    bool
	PermitsSharing         bool
	RequiresAttribution    bool
	RequiresNotice         bool
	RequiresShareAlike     bool
	RequiresSourceCode     bool
	ProhibitsCommercialUse bool
}

// Service assembles legal code and deed page views.
type Service interface {
	GetLegalCodePage(ctx context.Context, category enums.Category, licenseCode, version, jurisdictionCode, languageCode string) (*PageView, error)
	GetDeedPage(ctx context.Context, category enums.Category, licenseCode, version, jurisdictionCode, languageCode string) (*DeedView, error)
}

type service struct {
	finder        licenseFinder
	canonicalBase string
}

// NewService builds a legal code page service.
func NewService(finder licenseFinder, canonicalBase string) (Service, error) {
	if finder == nil {
		return nil, fmt.Errorf("license finder required")
	}
	if canonicalBase == "" {
		return nil, fmt.Errorf("canonical base url required")
	}
	return &service{
		finder:        finder,
		canonicalBase: strings.TrimSuffix(canonicalBase, "/"),
	}, nil
}

func (s *service) GetLegalCodePage(ctx context.Context, category enums.Category, licenseCode, version, jurisdictionCode, languageCode string) (*PageView, error) {
	if languageCode == "" {
		languageCode = licenses.DefaultLanguageCode
	}
	if !licenses.IsKnownLanguage(languageCode) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown language code").
			WithDetails(map[string]string{"language_code": languageCode})
	}

	license, err := s.finder.GetLicense(ctx, category, licenseCode, version, jurisdictionCode)
	if err != nil {
		return nil, err
	}

	block := ResolveTextBlock(license)

	var rawHTML, title string
	translation := findTranslation(license, languageCode)
	if translation != nil {
		rawHTML = translation.HTML
		title = translation.Title
	} else if languageCode != licenses.DefaultLanguageCode {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "translation not found")
	} else if block == enums.TextBlockCrudeHTML {
		// Nothing structured to fall back on and no stored text.
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "legal code not found")
	}
	if title == "" {
		title = pageTitle(license)
	}

	path := licenses.LegalCodePath(category, licenseCode, version, jurisdictionCode, languageCode)
	return &PageView{
		Title:            title,
		Category:         category,
		LicenseCode:      licenseCode,
		Version:          version,
		JurisdictionCode: jurisdictionCode,
		LanguageCode:     languageCode,
		TextBlock:        block,
		RawHTML:          rawHTML,
		ShowBoilerplate:  ShowBoilerplate(block) && rawHTML == "",
		AboutURL:         license.About,
		CanonicalURL:     s.canonicalBase + path,
		LegalCodePath:    path,
		DeedPath:         licenses.DeedPath(category, licenseCode, version, jurisdictionCode, languageCode),
		Deprecated:       license.DeprecatedOn != nil,
		Translations:     translationLinks(license, languageCode),
	}, nil
}

func (s *service) GetDeedPage(ctx context.Context, category enums.Category, licenseCode, version, jurisdictionCode, languageCode string) (*DeedView, error) {
	if languageCode == "" {
		languageCode = licenses.DefaultLanguageCode
	}
	if !licenses.IsKnownLanguage(languageCode) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown language code").
			WithDetails(map[string]string{"language_code": languageCode})
	}

	license, err := s.finder.GetLicense(ctx, category, licenseCode, version, jurisdictionCode)
	if err != nil {
		return nil, err
	}

	path := licenses.DeedPath(category, licenseCode, version, jurisdictionCode, languageCode)
	return &DeedView{
		Title:            pageTitle(license),
		Category:         category,
		LicenseCode:      licenseCode,
		Version:          version,
		JurisdictionCode: jurisdictionCode,
		LanguageCode:     languageCode,
		AboutURL:         license.About,
		CanonicalURL:     s.canonicalBase + path,
		LegalCodePath:    licenses.LegalCodePath(category, licenseCode, version, jurisdictionCode, languageCode),
		Deprecated:       license.DeprecatedOn != nil,

		PermitsDerivativeWorks: license.PermitsDerivativeWorks,
		PermitsDistribution:    license.PermitsDistribution,
		PermitsReproduction:    license.PermitsReproduction,
		PermitsSharing:         license.PermitsSharing,
		RequiresAttribution:    license.RequiresAttribution,
		RequiresNotice:         license.RequiresNotice,
		RequiresShareAlike:     license.RequiresShareAlike,
		RequiresSourceCode:     license.RequiresSourceCode,
		ProhibitsCommercialUse: license.ProhibitsCommercialUse,
	}, nil
}

func findTranslation(license *models.License, languageCode string) *models.LegalCode {
	for i := range license.LegalCodes {
		if license.LegalCodes[i].LanguageCode == languageCode {
			return &license.LegalCodes[i]
		}
	}
	return nil
}

func translationLinks(license *models.License, current string) []TranslationLink {
	links := make([]TranslationLink, 0, len(license.LegalCodes))
	for _, legalCode := range license.LegalCodes {
		links = append(links, TranslationLink{
			LanguageCode: legalCode.LanguageCode,
			Path: licenses.LegalCodePath(
				license.Category, license.LicenseCode, license.Version,
				license.JurisdictionCode, legalCode.LanguageCode,
			),
			Current: legalCode.LanguageCode == current,
		})
	}
	sort.Slice(links, func(i, j int) bool { return links[i].LanguageCode < links[j].LanguageCode })
	return links
}

func pageTitle(license *models.License) string {
	if license.TitleEnglish != "" {
		return license.TitleEnglish
	}
	title := strings.ToUpper(license.LicenseCode)
	if license.Category == enums.CategoryPublicDomain && license.LicenseCode == "CC0" {
		title = "CC0"
	}
	if license.Version != "" {
		title += " " + license.Version
	}
	if license.JurisdictionCode != "" {
		title += " " + strings.ToUpper(license.JurisdictionCode)
	}
	return title
}
