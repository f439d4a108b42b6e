package translations

import (
	"context"
	"time"

	"github.com/creativecommons/legal-tools-backend/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository persists translation branch state.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a translations repository bound to the provided DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, branch *models.TranslationBranch) (*models.TranslationBranch, error) {
	if err := r.db.WithContext(ctx).Create(branch).Error; err != nil {
		return nil, err
	}
	return branch, nil
}

func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.TranslationBranch, error) {
	var branch models.TranslationBranch
	err := r.db.WithContext(ctx).
		Preload("LegalCodes").
		Preload("LegalCodes.License").
		Where("id = ?", id).
		First(&branch).Error
	if err != nil {
		return nil, err
	}
	return &branch, nil
}

func (r *Repository) FindByName(ctx context.Context, branchName string) (*models.TranslationBranch, error) {
	var branch models.TranslationBranch
	err := r.db.WithContext(ctx).
		Preload("LegalCodes").
		Preload("LegalCodes.License").
		Where("branch_name = ?", branchName).
		First(&branch).Error
	if err != nil {
		return nil, err
	}
	return &branch, nil
}

// ListBranches returns all branches ordered for the status page.
func (r *Repository) ListBranches(ctx context.Context) ([]models.TranslationBranch, error) {
	var branches []models.TranslationBranch
	err := r.db.WithContext(ctx).
		Order("language_code ASC").
		Order("version DESC").
		Order("branch_name ASC").
		Find(&branches).Error
	if err != nil {
		return nil, err
	}
	return branches, nil
}

// FindStale returns incomplete-marked candidates: branches whose last
// update predates the cutoff and that are still flagged complete.
func (r *Repository) FindStale(ctx context.Context, cutoff time.Time) ([]models.TranslationBranch, error) {
	var branches []models.TranslationBranch
	err := r.db.WithContext(ctx).
		Where("complete = ?", true).
		Where("last_update IS NOT NULL AND last_update < ?", cutoff).
		Order("last_update ASC").
		Find(&branches).Error
	if err != nil {
		return nil, err
	}
	return branches, nil
}

func (r *Repository) SetComplete(ctx context.Context, id uuid.UUID, complete bool) error {
	return r.db.WithContext(ctx).
		Model(&models.TranslationBranch{}).
		Where("id = ?", id).
		Update("complete", complete).Error
}
