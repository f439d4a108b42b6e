package models

import (
	"time"

	"github.com/google/uuid"
)

// TranslationBranch tracks an in-flight translation effort for one
// language of one tool version, with the legal codes it touches.
type TranslationBranch struct {
	ID           uuid.UUID   `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	BranchName   string      `gorm:"column:branch_name;not null;unique"`
	Version      string      `gorm:"column:version;not null"`
	LanguageCode string      `gorm:"column:language_code;not null"`
	LastUpdate   *time.Time  `gorm:"column:last_update"`
	Complete     bool        `gorm:"column:complete;not null;default:false"`
	LegalCodes   []LegalCode `gorm:"many2many:translation_branch_legal_codes"`
	CreatedAt    time.Time   `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time   `gorm:"column:updated_at;autoUpdateTime"`
}
