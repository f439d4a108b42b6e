package translations

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/creativecommons/legal-tools-backend/internal/licenses"
	"github.com/creativecommons/legal-tools-backend/pkg/db/models"
	pkgerrors "github.com/creativecommons/legal-tools-backend/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type branchesRepository interface {
	FindByName(ctx context.Context, branchName string) (*models.TranslationBranch, error)
	ListBranches(ctx context.Context) ([]models.TranslationBranch, error)
	FindStale(ctx context.Context, cutoff time.Time) ([]models.TranslationBranch, error)
	SetComplete(ctx context.Context, id uuid.UUID, complete bool) error
}

// BranchSummary is one row on the translation status page.
type BranchSummary struct {
	ID           uuid.UUID
	BranchName   string
	Version      string
	LanguageCode string
	LastUpdate   *time.Time
	Complete     bool
}

// BranchLegalCode identifies one legal code touched by a branch.
type BranchLegalCode struct {
	LicenseCode      string
	Version          string
	JurisdictionCode string
	LanguageCode     string
	LegalCodePath    string
}

// BranchDetail is the branch status page payload.
type BranchDetail struct {
	BranchSummary
	LegalCodes []BranchLegalCode
}

// Service exposes translation branch status reporting.
type Service interface {
	ListBranches(ctx context.Context) ([]BranchSummary, error)
	GetBranch(ctx context.Context, branchName string) (*BranchDetail, error)
	FlagStale(ctx context.Context, olderThan time.Duration) ([]BranchSummary, error)
}

type service struct {
	repo branchesRepository
}

// NewService builds a translations status service.
func NewService(repo branchesRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("translations repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) ListBranches(ctx context.Context) ([]BranchSummary, error) {
	branches, err := s.repo.ListBranches(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing translation branches")
	}
	summaries := make([]BranchSummary, 0, len(branches))
	for _, branch := range branches {
		summaries = append(summaries, newSummary(branch))
	}
	return summaries, nil
}

func (s *service) GetBranch(ctx context.Context, branchName string) (*BranchDetail, error) {
	branch, err := s.repo.FindByName(ctx, branchName)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "translation branch not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "looking up translation branch")
	}

	detail := &BranchDetail{BranchSummary: newSummary(*branch)}
	for _, legalCode := range branch.LegalCodes {
		if legalCode.License == nil {
			continue
		}
		license := legalCode.License
		detail.LegalCodes = append(detail.LegalCodes, BranchLegalCode{
			LicenseCode:      license.LicenseCode,
			Version:          license.Version,
			JurisdictionCode: license.JurisdictionCode,
			LanguageCode:     legalCode.LanguageCode,
			LegalCodePath: licenses.LegalCodePath(
				license.Category, license.LicenseCode, license.Version,
				license.JurisdictionCode, legalCode.LanguageCode,
			),
		})
	}
	return detail, nil
}

// FlagStale clears the complete flag on branches whose last update
// predates now minus olderThan, and reports which were touched.
func (s *service) FlagStale(ctx context.Context, olderThan time.Duration) ([]BranchSummary, error) {
	cutoff := time.Now().UTC().Add(-olderThan)
	stale, err := s.repo.FindStale(ctx, cutoff)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "finding stale branches")
	}

	flagged := make([]BranchSummary, 0, len(stale))
	for _, branch := range stale {
		if err := s.repo.SetComplete(ctx, branch.ID, false); err != nil {
			return flagged, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "flagging stale branch")
		}
		branch.Complete = false
		flagged = append(flagged, newSummary(branch))
	}
	return flagged, nil
}

func newSummary(branch models.TranslationBranch) BranchSummary {
	return BranchSummary{
		ID:           branch.ID,
		BranchName:   branch.BranchName,
		Version:      branch.Version,
		LanguageCode: branch.LanguageCode,
		LastUpdate:   branch.LastUpdate,
		Complete:     branch.Complete,
	}
}
