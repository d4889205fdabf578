package middlewares

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/graple254/bazaa/app/helpers"
	"github.com/graple254/bazaa/app/models"
)

func requestWithUser(role string) *http.Request {
	r := httptest.NewRequest("GET", "/dashboard", nil)
	if role == "" {
		return r
	}
	user := &models.User{ID: "user-1", Username: "demo", Role: role}
	ctx := context.WithValue(r.Context(), helpers.ContextKeyUser, user)
	return r.WithContext(ctx)
}

func TestRequireRole(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	tests := []struct {
		name       string
		roles      []string
		userRole   string
		wantStatus int
	}{
		{"anonymous redirects to login", []string{models.RoleShopManager}, "", http.StatusFound},
		{"matching role passes", []string{models.RoleShopManager}, models.RoleShopManager, http.StatusOK},
		{"wrong role is forbidden", []string{models.RoleShopManager}, "customer", http.StatusForbidden},
		{"no roles just requires login", nil, "customer", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			RequireRole(tt.roles...)(next).ServeHTTP(rec, requestWithUser(tt.userRole))

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if tt.wantStatus == http.StatusFound {
				if loc := rec.Header().Get("Location"); loc == "" || loc[:6] != "/login" {
					t.Errorf("redirect location = %q, want /login", loc)
				}
			}
		})
	}
}
