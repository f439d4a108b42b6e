package licenses

import (
	"sort"

	"github.com/creativecommons/legal-tools-backend/pkg/db/models"
	"github.com/creativecommons/legal-tools-backend/pkg/enums"
)

// IndexEntry is one legal code translation row on the dev index page.
type IndexEntry struct {
	LicenseCode   string
	TitleEnglish  string
	LanguageCode  string
	LegalCodePath string
	DeedPath      string
	Deprecated    bool
}

// IndexJurisdiction groups index entries sharing a jurisdiction.
type IndexJurisdiction struct {
	JurisdictionCode string
	Entries          []IndexEntry
}

// IndexVersion groups jurisdictions sharing a tool version.
type IndexVersion struct {
	Version       string
	Jurisdictions []IndexJurisdiction
}

// IndexSection is one category block of the dev index.
type IndexSection struct {
	Category enums.Category
	Versions []IndexVersion
}

// BuildIndex arranges licenses for the dev index page: sections per
// category, versions newest first, then jurisdiction (unported first)
// and language.
func BuildIndex(licenses []models.License) []IndexSection {
	byCategory := map[enums.Category]map[string]map[string][]IndexEntry{}
	for _, license := range licenses {
		versions, ok := byCategory[license.Category]
		if !ok {
			versions = map[string]map[string][]IndexEntry{}
			byCategory[license.Category] = versions
		}
		jurisdictions, ok := versions[license.Version]
		if !ok {
			jurisdictions = map[string][]IndexEntry{}
			versions[license.Version] = jurisdictions
		}

		languageCodes := make([]string, 0, len(license.LegalCodes))
		for _, legalCode := range license.LegalCodes {
			languageCodes = append(languageCodes, legalCode.LanguageCode)
		}
		if len(languageCodes) == 0 {
			languageCodes = append(languageCodes, DefaultLanguageCode)
		}
		sort.Strings(languageCodes)

		for _, languageCode := range languageCodes {
			jurisdictions[license.JurisdictionCode] = append(jurisdictions[license.JurisdictionCode], IndexEntry{
				LicenseCode:   license.LicenseCode,
				TitleEnglish:  license.TitleEnglish,
				LanguageCode:  languageCode,
				LegalCodePath: LegalCodePath(license.Category, license.LicenseCode, license.Version, license.JurisdictionCode, languageCode),
				DeedPath:      DeedPath(license.Category, license.LicenseCode, license.Version, license.JurisdictionCode, languageCode),
				Deprecated:    license.DeprecatedOn != nil,
			})
		}
	}

	sections := make([]IndexSection, 0, len(byCategory))
	for _, category := range []enums.Category{enums.CategoryLicenses, enums.CategoryPublicDomain} {
		versions, ok := byCategory[category]
		if !ok {
			continue
		}

		versionNames := make([]string, 0, len(versions))
		for version := range versions {
			versionNames = append(versionNames, version)
		}
		sort.Sort(sort.Reverse(sort.StringSlice(versionNames)))

		section := IndexSection{Category: category}
		for _, version := range versionNames {
			jurisdictions := versions[version]
			jurisdictionCodes := make([]string, 0, len(jurisdictions))
			for code := range jurisdictions {
				jurisdictionCodes = append(jurisdictionCodes, code)
			}
			sort.Strings(jurisdictionCodes)

			group := IndexVersion{Version: version}
			for _, code := range jurisdictionCodes {
				entries := jurisdictions[code]
				sort.Slice(entries, func(i, j int) bool {
					if entries[i].LicenseCode != entries[j].LicenseCode {
						return entries[i].LicenseCode < entries[j].LicenseCode
					}
					return entries[i].LanguageCode < entries[j].LanguageCode
				})
				group.Jurisdictions = append(group.Jurisdictions, IndexJurisdiction{
					JurisdictionCode: code,
					Entries:          entries,
				})
			}
			section.Versions = append(section.Versions, group)
		}
		sections = append(sections, section)
	}
	return sections
}
