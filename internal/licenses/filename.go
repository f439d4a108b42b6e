package licenses

import (
	"fmt"
	"strings"

	"github.com/creativecommons/legal-tools-backend/pkg/enums"
)

// ParsedFilename holds the license identity encoded in a legal code
// filename such as "by_3.0_rs_sr-Cyrl.html".
type ParsedFilename struct {
	Category         enums.Category
	LicenseCode      string
	Version          string
	JurisdictionCode string
	LanguageCode     string
	AboutURL         string
}

// Codes whose filename spelling differs from their canonical form.
var filenameCodeAliases = map[string]struct {
	code     string
	category enums.Category
}{
	"zero":            {code: "CC0", category: enums.CategoryPublicDomain},
	"samplingplus":    {code: "sampling+", category: enums.CategoryLicenses},
	"nc-samplingplus": {code: "nc-sampling+", category: enums.CategoryLicenses},
}

// ParseLegalCodeFilename decodes a legal code filename into its license
// identity. Layout is code_version[_jurisdiction][_language][.html]; a
// single trailing token is a language, two are jurisdiction then
// language.
func ParseLegalCodeFilename(filename string) (ParsedFilename, error) {
	basename := strings.TrimSuffix(filename, ".html")

	parts := strings.Split(basename, "_")
	if len(parts) < 2 || len(parts) > 4 {
		return ParsedFilename{}, fmt.Errorf("unparseable legalcode filename %q", filename)
	}

	parsed := ParsedFilename{
		Category:     enums.CategoryLicenses,
		LicenseCode:  parts[0],
		Version:      parts[1],
		LanguageCode: DefaultLanguageCode,
	}

	if alias, ok := filenameCodeAliases[parsed.LicenseCode]; ok {
		parsed.LicenseCode = alias.code
		parsed.Category = alias.category
	}

	switch len(parts) {
	case 3:
		if !IsKnownLanguage(parts[2]) {
			return ParsedFilename{}, fmt.Errorf("What language? %q", parts[2])
		}
		parsed.LanguageCode = parts[2]
	case 4:
		parsed.JurisdictionCode = parts[2]
		if !IsKnownLanguage(parts[3]) {
			return ParsedFilename{}, fmt.Errorf("Invalid language_code=%q", parts[3])
		}
		parsed.LanguageCode = parts[3]
	}

	parsed.AboutURL = ComputeAboutURL(parsed.Category, parsed.LicenseCode, parsed.Version, parsed.JurisdictionCode)
	return parsed, nil
}
