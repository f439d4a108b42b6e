package models

import (
	"time"

	"github.com/google/uuid"
)

// LegalCode is the per-language legal text record for a license. HTML is
// optional: when present the page layer renders it verbatim instead of a
// structured text block.
type LegalCode struct {
	ID                    uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	LicenseID             uuid.UUID  `gorm:"column:license_id;type:uuid;not null"`
	License               *License   `gorm:"foreignKey:LicenseID"`
	LanguageCode          string     `gorm:"column:language_code;not null"`
	Title                 string     `gorm:"column:title"`
	HTML                  string     `gorm:"column:html;type:text"`
	TranslationLastUpdate *time.Time `gorm:"column:translation_last_update"`
	CreatedAt             time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt             time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}

// HasRawHTML reports whether a pre-rendered text block is stored for this
// record.
func (lc LegalCode) HasRawHTML() bool {
	return lc.HTML != ""
}
