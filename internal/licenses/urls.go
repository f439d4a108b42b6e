package licenses

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/creativecommons/legal-tools-backend/pkg/enums"
)

const canonicalBase = "https://creativecommons.org"

// Tools identified by code alone; their about URLs carry no version
// segment.
var unversionedCodes = map[string]bool{
	"BSD": true,
	"MIT": true,
}

// Legacy legalcode URLs that live outside creativecommons.org.
var legalCodeURLExceptions = map[string]string{
	"http://opensource.org/licenses/bsd-license.php": canonicalBase + "/licenses/BSD/",
	"http://opensource.org/licenses/mit-license.php": canonicalBase + "/licenses/MIT/",
}

// ComputeAboutURL derives the canonical about URL identifying a license.
func ComputeAboutURL(category enums.Category, licenseCode, version, jurisdictionCode string) string {
	if unversionedCodes[licenseCode] {
		return fmt.Sprintf("%s/licenses/%s/", canonicalBase, licenseCode)
	}

	code := licenseCode
	if category == enums.CategoryPublicDomain && licenseCode == "CC0" {
		code = "zero"
	}

	url := fmt.Sprintf("%s/%s/%s/%s/", canonicalBase, category, code, version)
	if jurisdictionCode != "" {
		url += jurisdictionCode + "/"
	}
	return url
}

// CodeFromURLSegment maps a tool code as it appears in page URLs back
// to the stored license code. CC0 pages live under "zero".
func CodeFromURLSegment(category enums.Category, segment string) string {
	if category == enums.CategoryPublicDomain && segment == "zero" {
		return "CC0"
	}
	return segment
}

// pathSegments renders the identity portion of a local tool path,
// e.g. "/licenses/by/3.0/rs" or "/publicdomain/zero/1.0".
func pathSegments(category enums.Category, licenseCode, version, jurisdictionCode string) string {
	code := licenseCode
	if category == enums.CategoryPublicDomain && licenseCode == "CC0" {
		code = "zero"
	}
	path := fmt.Sprintf("/%s/%s", category, code)
	if version != "" {
		path += "/" + version
	}
	if jurisdictionCode != "" {
		path += "/" + jurisdictionCode
	}
	return path
}

// LegalCodePath builds the local page path for a legal code translation.
// English is the default and carries no language suffix.
func LegalCodePath(category enums.Category, licenseCode, version, jurisdictionCode, languageCode string) string {
	path := pathSegments(category, licenseCode, version, jurisdictionCode) + "/legalcode"
	if languageCode != "" && languageCode != DefaultLanguageCode {
		path += "." + languageCode
	}
	return path
}

// DeedPath builds the local deed page path for a license.
func DeedPath(category enums.Category, licenseCode, version, jurisdictionCode, languageCode string) string {
	path := pathSegments(category, licenseCode, version, jurisdictionCode) + "/deed"
	if languageCode != "" && languageCode != DefaultLanguageCode {
		path += "." + languageCode
	}
	return path
}

// LicenseURLFromLegalCodeURL maps a legalcode page URL back to the
// license about URL by stripping the trailing "legalcode[.lang]" segment.
func LicenseURLFromLegalCodeURL(legalCodeURL string) (string, error) {
	if mapped, ok := legalCodeURLExceptions[legalCodeURL]; ok {
		return mapped, nil
	}

	idx := strings.LastIndex(legalCodeURL, "/legalcode")
	if idx < 0 || !strings.HasPrefix(legalCodeURL, canonicalBase+"/") {
		return "", fmt.Errorf("can't find the license url from legalcode url %q", legalCodeURL)
	}
	return legalCodeURL[:idx+1], nil
}

// CodeFromJurisdictionURL returns the trailing path segment of a
// jurisdiction URL, or "" when there is no path.
func CodeFromJurisdictionURL(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	path := strings.Trim(parsed.Path, "/")
	if path == "" {
		return ""
	}
	segments := strings.Split(path, "/")
	return segments[len(segments)-1]
}
