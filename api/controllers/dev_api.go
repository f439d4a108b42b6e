package controllers

import (
	"net/http"
	"strings"

	"github.com/creativecommons/legal-tools-backend/api/responses"
	"github.com/creativecommons/legal-tools-backend/api/validators"
	"github.com/creativecommons/legal-tools-backend/internal/licenses"
	"github.com/creativecommons/legal-tools-backend/pkg/enums"
	pkgerrors "github.com/creativecommons/legal-tools-backend/pkg/errors"
	"github.com/creativecommons/legal-tools-backend/pkg/logger"
	"github.com/creativecommons/legal-tools-backend/pkg/pagination"
)

// DevListLicenses serves the development JSON listing of licenses.
func DevListLicenses(svc licenses.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, err := validators.ParseQueryInt(r, "limit", 0, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		filters := licenses.ListFilters{
			Version: strings.TrimSpace(r.URL.Query().Get("version")),
			Query:   strings.TrimSpace(r.URL.Query().Get("q")),
		}

		if raw := strings.TrimSpace(r.URL.Query().Get("category")); raw != "" {
			category, err := enums.ParseCategory(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w,
					pkgerrors.New(pkgerrors.CodeValidation, "invalid category").
						WithDetails(map[string]string{"category": raw}))
				return
			}
			filters.Category = &category
		}

		if raw, ok := queryValue(r, "jurisdiction"); ok {
			filters.JurisdictionCode = &raw
		}

		deprecated, err := validators.ParseQueryBool(r, "deprecated")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		filters.Deprecated = deprecated

		result, err := svc.ListLicenses(r.Context(), licenses.ListParams{
			Filters: filters,
			Pagination: pagination.Params{
				Limit:  limit,
				Cursor: strings.TrimSpace(r.URL.Query().Get("cursor")),
			},
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// queryValue distinguishes an absent parameter from an explicitly empty
// one, so jurisdiction="" can filter for unported tools.
func queryValue(r *http.Request, key string) (string, bool) {
	if !r.URL.Query().Has(key) {
		return "", false
	}
	return strings.TrimSpace(r.URL.Query().Get(key)), true
}

// DevCreateLicense registers a license via the development JSON API.
func DevCreateLicense(svc licenses.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input licenses.CreateLicenseInput
		if err := validators.DecodeJSONBody(r, &input); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		license, err := svc.CreateLicense(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, license)
	}
}

type ingestLegalCodeInput struct {
	Filename string `json:"filename" validate:"required,min=5,max=120"`
	HTML     string `json:"html"`
}

// DevIngestLegalCode stores a legal code file via the development JSON
// API, creating the owning license on first sight.
func DevIngestLegalCode(svc licenses.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input ingestLegalCodeInput
		if err := validators.DecodeJSONBody(r, &input); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		legalCode, err := svc.IngestLegalCodeFile(r.Context(), input.Filename, input.HTML)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, legalCode)
	}
}
