package legalcode

import (
	"github.com/creativecommons/legal-tools-backend/pkg/db/models"
	"github.com/creativecommons/legal-tools-backend/pkg/enums"
)

// ResolveTextBlock selects the fixed legal-text block for a license.
// The mapping is total: anything outside the three structured variants
// falls through to the raw-HTML block.
func ResolveTextBlock(license *models.License) enums.TextBlock {
	switch {
	case license.Category == enums.CategoryPublicDomain && license.LicenseCode == "CC0":
		return enums.TextBlockCC0
	case license.Category == enums.CategoryLicenses && license.Version == "4.0":
		return enums.TextBlockLicenses40
	case license.Category == enums.CategoryLicenses && license.Version == "3.0" && license.Unported():
		return enums.TextBlockLicenses30Unported
	default:
		return enums.TextBlockCrudeHTML
	}
}

// ShowBoilerplate reports whether the explanatory boilerplate sections
// accompany a text block. Raw-HTML legal codes are complete pages and
// carry none.
func ShowBoilerplate(block enums.TextBlock) bool {
	return block != enums.TextBlockCrudeHTML
}
