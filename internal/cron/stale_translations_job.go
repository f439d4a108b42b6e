package cron

import (
	"context"
	"fmt"
	"time"

	"github.com/creativecommons/legal-tools-backend/internal/translations"
	"github.com/creativecommons/legal-tools-backend/pkg/logger"
)

type translationsFlagger interface {
	FlagStale(ctx context.Context, olderThan time.Duration) ([]translations.BranchSummary, error)
}

// StaleTranslationsJob demotes translation branches that have gone
// quiet so the status page stops reporting them as complete.
type StaleTranslationsJob struct {
	svc        translationsFlagger
	staleAfter time.Duration
	logg       *logger.Logger
}

// NewStaleTranslationsJob builds the stale-translation sweep.
func NewStaleTranslationsJob(svc translationsFlagger, staleAfter time.Duration, logg *logger.Logger) (*StaleTranslationsJob, error) {
	if svc == nil {
		return nil, fmt.Errorf("translations service required")
	}
	if staleAfter <= 0 {
		return nil, fmt.Errorf("stale-after duration must be positive")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &StaleTranslationsJob{svc: svc, staleAfter: staleAfter, logg: logg}, nil
}

func (j *StaleTranslationsJob) Name() string { return "stale-translations" }

func (j *StaleTranslationsJob) Run(ctx context.Context) error {
	flagged, err := j.svc.FlagStale(ctx, j.staleAfter)
	if err != nil {
		return err
	}
	for _, branch := range flagged {
		branchCtx := j.logg.WithField(ctx, "branch", branch.BranchName)
		j.logg.Warn(branchCtx, "translation branch flagged stale")
	}
	j.logg.Info(j.logg.WithField(ctx, "flagged", len(flagged)), "stale translation sweep complete")
	return nil
}
