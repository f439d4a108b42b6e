package cron

import (
	"context"
	"fmt"

	"github.com/creativecommons/legal-tools-backend/internal/publish"
	"github.com/creativecommons/legal-tools-backend/pkg/db/models"
	"github.com/creativecommons/legal-tools-backend/pkg/enums"
	"github.com/creativecommons/legal-tools-backend/pkg/logger"
)

type licenseLister interface {
	ListAllWithLegalCodes(ctx context.Context, category enums.Category) ([]models.License, error)
}

type sitePublisher interface {
	PublishAll(ctx context.Context, paths []string) error
}

// PublishJob regenerates the static site from the current content.
type PublishJob struct {
	repo      licenseLister
	publisher sitePublisher
	logg      *logger.Logger
}

// NewPublishJob builds the nightly static publish.
func NewPublishJob(repo licenseLister, publisher sitePublisher, logg *logger.Logger) (*PublishJob, error) {
	if repo == nil {
		return nil, fmt.Errorf("licenses repository required")
	}
	if publisher == nil {
		return nil, fmt.Errorf("publisher required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &PublishJob{repo: repo, publisher: publisher, logg: logg}, nil
}

func (j *PublishJob) Name() string { return "publish-static-site" }

func (j *PublishJob) Run(ctx context.Context) error {
	rows, err := j.repo.ListAllWithLegalCodes(ctx, "")
	if err != nil {
		return fmt.Errorf("loading licenses: %w", err)
	}
	paths := publish.SitePaths(rows)
	j.logg.Info(j.logg.WithField(ctx, "pages", len(paths)), "publishing static site")
	return j.publisher.PublishAll(ctx, paths)
}
