package licenses

import (
	"time"

	"github.com/creativecommons/legal-tools-backend/pkg/db/models"
	"github.com/creativecommons/legal-tools-backend/pkg/enums"
	"github.com/google/uuid"
)

// ListFilters narrows a license listing.
type ListFilters struct {
	Category         *enums.Category
	Version          string
	JurisdictionCode *string
	Deprecated       *bool
	Query            string
}

// Summary is the compact license representation returned by listings.
type Summary struct {
	ID               uuid.UUID      `json:"id"`
	About            string         `json:"about"`
	Category         enums.Category `json:"category"`
	LicenseCode      string         `json:"license_code"`
	Version          string         `json:"version"`
	JurisdictionCode string         `json:"jurisdiction_code"`
	TitleEnglish     string         `json:"title_english"`
	Deprecated       bool           `json:"deprecated"`
	CreatedAt        time.Time      `json:"created_at"`
}

// ListResult carries one page of summaries plus the cursor for the next.
type ListResult struct {
	Licenses   []Summary `json:"licenses"`
	NextCursor string    `json:"next_cursor,omitempty"`
}

func newSummary(license models.License) Summary {
	return Summary{
		ID:               license.ID,
		About:            license.About,
		Category:         license.Category,
		LicenseCode:      license.LicenseCode,
		Version:          license.Version,
		JurisdictionCode: license.JurisdictionCode,
		TitleEnglish:     license.TitleEnglish,
		Deprecated:       license.DeprecatedOn != nil,
		CreatedAt:        license.CreatedAt,
	}
}
