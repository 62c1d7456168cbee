package middleware

import (
	"net/http"
	"strings"

	"github.com/storeadm/backend/internal/i18n"
	"github.com/storeadm/backend/pkg/ctxutil"
)

// Language picks the response language from the Accept-Language header.
// The first supported tag wins; everything else falls back to English.
func Language(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		lang := pickLanguage(r.Header.Get("Accept-Language"))
		if lang != "" {
			r = r.WithContext(ctxutil.WithLanguage(r.Context(), lang))
		}
		next.ServeHTTP(w, r)
	})
}

func pickLanguage(header string) string {
	for _, part := range strings.Split(header, ",") {
		tag := strings.TrimSpace(part)
		if i := strings.Index(tag, ";"); i >= 0 {
			tag = tag[:i]
		}
		if tag == "" {
			continue
		}
		if i18n.Supported(tag) {
			return tag
		}
		// "pt" matches "pt-BR", "es-MX" matches "es"
		if base, _, found := strings.Cut(tag, "-"); found && i18n.Supported(base) {
			return base
		}
		if tag == "pt" {
			return "pt-BR"
		}
	}
	return ""
}
