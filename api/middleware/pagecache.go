package middleware

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/creativecommons/legal-tools-backend/internal/licenses"
	"github.com/creativecommons/legal-tools-backend/pkg/logger"
	"github.com/creativecommons/legal-tools-backend/pkg/redis"
)

type pageStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	PageCacheKey(path, languageCode string) string
}

type cachingRecorder struct {
	http.ResponseWriter
	status int
	body   bytes.Buffer
}

func (r *cachingRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (r *cachingRecorder) Write(p []byte) (int, error) {
	r.body.Write(p)
	return r.ResponseWriter.Write(p)
}

// PageCache serves rendered HTML pages from Redis. Only successful GET
// responses are stored; everything else passes through untouched.
func PageCache(store pageStore, ttl time.Duration, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if store == nil || ttl <= 0 || r.Method != http.MethodGet {
				next.ServeHTTP(w, r)
				return
			}

			ctx := r.Context()
			key := store.PageCacheKey(r.URL.Path, pageLanguage(r.URL.Path))

			if cached, err := store.Get(ctx, key); err == nil {
				w.Header().Set("Content-Type", "text/html; charset=utf-8")
				w.Header().Set("X-Cache", "hit")
				w.Write([]byte(cached))
				return
			} else if !errors.Is(err, redis.Nil) && logg != nil {
				logg.Warn(ctx, "page cache read failed")
			}

			rec := &cachingRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)

			if rec.status == http.StatusOK && strings.HasPrefix(rec.Header().Get("Content-Type"), "text/html") {
				if err := store.Set(ctx, key, rec.body.String(), ttl); err != nil && logg != nil {
					logg.Warn(ctx, "page cache write failed")
				}
			}
		})
	}
}

// pageLanguage extracts the language suffix from legalcode.xx / deed.xx
// paths, defaulting to English.
func pageLanguage(path string) string {
	base := path[strings.LastIndex(path, "/")+1:]
	if idx := strings.Index(base, "."); idx >= 0 {
		if lang := base[idx+1:]; licenses.IsKnownLanguage(lang) {
			return lang
		}
	}
	return licenses.DefaultLanguageCode
}
