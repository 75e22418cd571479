package httpapi

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRequireUser_StoresUserID(t *testing.T) {
	var got string
	handler := RequireUser(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = userIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(headerUserID, "  user-1 ")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK || got != "user-1" {
		t.Fatalf("unexpected result code=%d user=%q", rec.Code, got)
	}
}

func TestRequireInternalJobToken(t *testing.T) {
	tests := []struct {
		name       string
		configured string
		provided   string
		adminID    string
		wantStatus int
		wantAdmin  string
	}{
		{name: "not configured", configured: "", provided: "x", wantStatus: http.StatusServiceUnavailable},
		{name: "missing token", configured: "secret", wantStatus: http.StatusUnauthorized},
		{name: "wrong token", configured: "secret", provided: "nope", wantStatus: http.StatusUnauthorized},
		{name: "valid without admin", configured: "secret", provided: "secret", wantStatus: http.StatusOK},
		{name: "valid with admin", configured: "secret", provided: "secret", adminID: "ops-1", wantStatus: http.StatusOK, wantAdmin: "ops-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotAdmin string
			handler := RequireInternalJobToken(tt.configured, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotAdmin, _ = adminIDFromContext(r.Context())
				w.WriteHeader(http.StatusOK)
			}))

			req := httptest.NewRequest(http.MethodPost, "/v1/internal/jobs/auto-picks", nil)
			if tt.provided != "" {
				req.Header.Set(headerInternalJobToken, tt.provided)
			}
			if tt.adminID != "" {
				req.Header.Set(headerAdminID, tt.adminID)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d", tt.wantStatus, rec.Code)
			}
			if gotAdmin != tt.wantAdmin {
				t.Fatalf("expected admin %q, got %q", tt.wantAdmin, gotAdmin)
			}
		})
	}
}
