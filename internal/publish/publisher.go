package publish

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/creativecommons/legal-tools-backend/internal/licenses"
	"github.com/creativecommons/legal-tools-backend/pkg/db/models"
	"github.com/creativecommons/legal-tools-backend/pkg/logger"
	"go.uber.org/multierr"
)

// Publisher renders site pages through the HTTP handler and writes the
// responses out as static files.
type Publisher struct {
	handler   http.Handler
	outputDir string
	logg      *logger.Logger
}

// New builds a publisher that serves requests against handler and
// writes files under outputDir.
func New(handler http.Handler, outputDir string, logg *logger.Logger) (*Publisher, error) {
	if handler == nil {
		return nil, fmt.Errorf("http handler required")
	}
	if outputDir == "" {
		return nil, fmt.Errorf("output directory required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &Publisher{handler: handler, outputDir: outputDir, logg: logg}, nil
}

type responseBuffer struct {
	header http.Header
	body   bytes.Buffer
	status int
}

func newResponseBuffer() *responseBuffer {
	return &responseBuffer{header: http.Header{}, status: http.StatusOK}
}

func (rb *responseBuffer) Header() http.Header         { return rb.header }
func (rb *responseBuffer) Write(p []byte) (int, error) { return rb.body.Write(p) }
func (rb *responseBuffer) WriteHeader(status int)      { rb.status = status }

// SaveURL renders one site path and stores the body at relPath under
// the output directory, creating parent directories as needed.
func (p *Publisher) SaveURL(ctx context.Context, url, relPath string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("building request for %s: %w", url, err)
	}

	rec := newResponseBuffer()
	p.handler.ServeHTTP(rec, req)
	if rec.status != http.StatusOK {
		return fmt.Errorf("status %d for url %s", rec.status, url)
	}

	target := filepath.Join(p.outputDir, filepath.FromSlash(relPath))
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("creating directory for %s: %w", relPath, err)
	}
	if err := os.WriteFile(target, rec.body.Bytes(), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", relPath, err)
	}

	p.logg.Info(p.logg.WithField(ctx, "path", relPath), "published page")
	return nil
}

// PublishAll renders every path and aggregates failures so one broken
// page doesn't abort the run.
func (p *Publisher) PublishAll(ctx context.Context, paths []string) error {
	var errs error
	for _, path := range paths {
		if err := p.SaveURL(ctx, path, relPathFor(path)); err != nil {
			errs = multierr.Append(errs, err)
		}
	}
	return errs
}

// SitePaths lists every page path the static site carries for the given
// licenses: the home page plus each tool's legal code and deed per
// translation.
func SitePaths(rows []models.License) []string {
	paths := []string{"/"}
	for _, license := range rows {
		languageCodes := make([]string, 0, len(license.LegalCodes))
		for _, legalCode := range license.LegalCodes {
			languageCodes = append(languageCodes, legalCode.LanguageCode)
		}
		if len(languageCodes) == 0 {
			languageCodes = append(languageCodes, licenses.DefaultLanguageCode)
		}
		for _, languageCode := range languageCodes {
			paths = append(paths,
				licenses.LegalCodePath(license.Category, license.LicenseCode, license.Version, license.JurisdictionCode, languageCode),
				licenses.DeedPath(license.Category, license.LicenseCode, license.Version, license.JurisdictionCode, languageCode),
			)
		}
	}
	return paths
}

func relPathFor(path string) string {
	trimmed := strings.Trim(path, "/")
	if trimmed == "" {
		return "index.html"
	}
	if strings.HasSuffix(trimmed, ".html") {
		return trimmed
	}
	// Language-suffixed pages like legalcode.fr keep their suffix.
	return trimmed + ".html"
}
