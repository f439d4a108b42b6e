package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/creativecommons/legal-tools-backend/pkg/enums"
)

// License is a single legal tool: a license or public-domain dedication at
// a specific version, optionally ported to a jurisdiction. Legal codes
// (per-language text records) hang off it.
type License struct {
	ID               uuid.UUID      `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	About            string         `gorm:"column:about;not null;unique"`
	Category         enums.Category `gorm:"column:category;type:license_category;not null"`
	LicenseCode      string         `gorm:"column:license_code;not null"`
	Version          string         `gorm:"column:version;not null"`
	JurisdictionCode string         `gorm:"column:jurisdiction_code;not null;default:''"`
	TitleEnglish     string         `gorm:"column:title_english"`
	CreatorURL       string         `gorm:"column:creator_url"`
	DeprecatedOn     *time.Time     `gorm:"column:deprecated_on"`

	PermitsDerivativeWorks bool `gorm:"column:permits_derivative_works;not null;default:false"`
	PermitsReproduction    bool `gorm:"column:permits_reproduction;not null;default:false"`
	PermitsDistribution    bool `gorm:"column:permits_distribution;not null;default:false"`
	PermitsSharing         bool `gorm:"column:permits_sharing;not null;default:false"`

	RequiresShareAlike  bool `gorm:"column:requires_share_alike;not null;default:false"`
	RequiresNotice      bool `gorm:"column:requires_notice;not null;default:false"`
	RequiresAttribution bool `gorm:"column:requires_attribution;not null;default:false"`
	RequiresSourceCode  bool `gorm:"column:requires_source_code;not null;default:false"`

	ProhibitsCommercialUse       bool `gorm:"column:prohibits_commercial_use;not null;default:false"`
	ProhibitsHighIncomeNationUse bool `gorm:"column:prohibits_high_income_nation_use;not null;default:false"`

	LegalCodes []LegalCode `gorm:"foreignKey:LicenseID"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// Unported reports whether the license is the generic (non-ported) variant.
func (l License) Unported() bool {
	return l.JurisdictionCode == ""
}
