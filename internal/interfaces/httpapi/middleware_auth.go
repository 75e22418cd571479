package httpapi

import (
	"crypto/subtle"
	"fmt"
	"net/http"
	"strings"

	"github.com/riskibarqy/last-man-standing/internal/usecase"
)

const (
	headerUserID           = "X-User-ID"
	headerAdminID          = "X-Admin-ID"
	headerInternalJobToken = "X-Internal-Job-Token"
)

// RequireUser trusts the caller identity injected by the upstream gateway.
func RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID := strings.TrimSpace(r.Header.Get(headerUserID))
		if userID == "" {
			writeError(r.Context(), w, fmt.Errorf("%w: missing %s header", usecase.ErrUnauthorized, headerUserID))
			return
		}
		next.ServeHTTP(w, r.WithContext(withUserID(r.Context(), userID)))
	})
}

// RequireInternalJobToken guards operator and scheduler routes. An optional
// X-Admin-ID names the operator for override-capable actions.
func RequireInternalJobToken(token string, next http.Handler) http.Handler {
	want := []byte(strings.TrimSpace(token))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if len(want) == 0 {
			writeError(ctx, w, fmt.Errorf("%w: internal job token is not configured", usecase.ErrDependencyUnavailable))
			return
		}

		got := []byte(strings.TrimSpace(r.Header.Get(headerInternalJobToken)))
		if subtle.ConstantTimeCompare(got, want) != 1 {
			writeError(ctx, w, fmt.Errorf("%w: invalid internal job token", usecase.ErrUnauthorized))
			return
		}

		if adminID := strings.TrimSpace(r.Header.Get(headerAdminID)); adminID != "" {
			ctx = withAdminID(ctx, adminID)
		}
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
