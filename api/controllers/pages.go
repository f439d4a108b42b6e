package controllers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/creativecommons/legal-tools-backend/internal/legalcode"
	"github.com/creativecommons/legal-tools-backend/internal/licenses"
	"github.com/creativecommons/legal-tools-backend/internal/render"
	"github.com/creativecommons/legal-tools-backend/internal/translations"
	"github.com/creativecommons/legal-tools-backend/pkg/enums"
	pkgerrors "github.com/creativecommons/legal-tools-backend/pkg/errors"
	"github.com/creativecommons/legal-tools-backend/pkg/logger"
)

type errorPage struct {
	Status  int
	Message string
}

// renderHTMLError writes the HTML error page matching the error's code.
func renderHTMLError(ctx context.Context, engine *render.TemplateEngine, logg *logger.Logger, w http.ResponseWriter, err error) {
	typed := pkgerrors.As(err)
	if typed == nil {
		typed = pkgerrors.Wrap(pkgerrors.CodeInternal, err, "unexpected error")
	}
	meta := pkgerrors.MetadataFor(typed.Code())

	if logg != nil {
		logg.Error(ctx, "page.error", err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(meta.HTTPStatus)
	page := render.Page{
		Title: http.StatusText(meta.HTTPStatus),
		Data:  errorPage{Status: meta.HTTPStatus, Message: meta.PublicMessage},
	}
	if renderErr := engine.RenderTo(w, "error.html", page); renderErr != nil && logg != nil {
		logg.Error(ctx, "error page render failed", renderErr)
	}
}

// Home renders the landing page.
func Home(engine *render.TemplateEngine, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := engine.Render(w, "home.html", render.Page{Title: "Legal Tools"}); err != nil {
			renderHTMLError(r.Context(), engine, logg, w, err)
		}
	}
}

func toolIdentity(r *http.Request, category enums.Category) (enums.Category, string, string, string, string) {
	return category,
		licenses.CodeFromURLSegment(category, chi.URLParam(r, "code")),
		chi.URLParam(r, "version"),
		chi.URLParam(r, "jurisdiction"),
		chi.URLParam(r, "lang")
}

// LegalCodePage renders the legal code page for one tool translation.
func LegalCodePage(svc legalcode.Service, engine *render.TemplateEngine, logg *logger.Logger, category enums.Category) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cat, code, version, jurisdiction, lang := toolIdentity(r, category)

		ctx := r.Context()
		if logg != nil {
			ctx = logg.WithUnit(ctx, code)
			if lang != "" {
				ctx = logg.WithLanguage(ctx, lang)
			}
		}

		view, err := svc.GetLegalCodePage(ctx, cat, code, version, jurisdiction, lang)
		if err != nil {
			renderHTMLError(ctx, engine, logg, w, err)
			return
		}
		if err := engine.Render(w, "legalcode.html", render.Page{Title: view.Title, Data: view}); err != nil {
			renderHTMLError(ctx, engine, logg, w, err)
		}
	}
}

// DeedPage renders the plain-language deed for one tool.
func DeedPage(svc legalcode.Service, engine *render.TemplateEngine, logg *logger.Logger, category enums.Category) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cat, code, version, jurisdiction, lang := toolIdentity(r, category)

		view, err := svc.GetDeedPage(r.Context(), cat, code, version, jurisdiction, lang)
		if err != nil {
			renderHTMLError(r.Context(), engine, logg, w, err)
			return
		}
		if err := engine.Render(w, "deed.html", render.Page{Title: view.Title, Data: view}); err != nil {
			renderHTMLError(r.Context(), engine, logg, w, err)
		}
	}
}

// DevIndex renders the development-only index of every tool.
func DevIndex(svc licenses.Service, engine *render.TemplateEngine, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sections, err := svc.BuildDevIndex(r.Context())
		if err != nil {
			renderHTMLError(r.Context(), engine, logg, w, err)
			return
		}
		if err := engine.Render(w, "dev_index.html", render.Page{Title: "All Legal Tools", Data: sections}); err != nil {
			renderHTMLError(r.Context(), engine, logg, w, err)
		}
	}
}

// TranslationStatus renders the translation branch overview.
func TranslationStatus(svc translations.Service, engine *render.TemplateEngine, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		branches, err := svc.ListBranches(r.Context())
		if err != nil {
			renderHTMLError(r.Context(), engine, logg, w, err)
			return
		}
		if err := engine.Render(w, "translation_status.html", render.Page{Title: "Translation Status", Data: branches}); err != nil {
			renderHTMLError(r.Context(), engine, logg, w, err)
		}
	}
}

// BranchStatus renders one translation branch's detail page.
func BranchStatus(svc translations.Service, engine *render.TemplateEngine, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		branchName := chi.URLParam(r, "branch")

		detail, err := svc.GetBranch(r.Context(), branchName)
		if err != nil {
			renderHTMLError(r.Context(), engine, logg, w, err)
			return
		}
		if err := engine.Render(w, "branch_status.html", render.Page{Title: "Branch " + detail.BranchName, Data: detail}); err != nil {
			renderHTMLError(r.Context(), engine, logg, w, err)
		}
	}
}
