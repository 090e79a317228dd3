package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"school-cms-api/config"
	"school-cms-api/internal/database"
	"school-cms-api/internal/testutil"

	"go.uber.org/zap"
)

func TestNewApp_RoutesWired(t *testing.T) {
	t.Setenv("JWT_SECRET", "app-test-secret")
	db := testutil.NewDB(t, database.Models()...)
	cfg := config.Config{Env: "test", JWTSecret: "app-test-secret", SiteURL: "https://school.test", CORSOrigins: []string{"https://school.test"}}

	a, err := newApp(context.Background(), cfg, db, zap.NewNop())
	if err != nil {
		t.Fatalf("newApp: %v", err)
	}
	defer a.Close()

	cases := []struct {
		method, path string
		want         int
	}{
		{http.MethodGet, "/healthz", http.StatusOK},
		{http.MethodGet, "/robots.txt", http.StatusOK},
		{http.MethodGet, "/sitemap.xml", http.StatusOK},
		{http.MethodGet, "/manifest.webmanifest", http.StatusOK},
		{http.MethodGet, "/api/v1/posts", http.StatusOK},
		{http.MethodGet, "/api/v1/announcements", http.StatusOK},
		{http.MethodGet, "/api/v1/staff", http.StatusOK},
		{http.MethodGet, "/api/v1/facilities", http.StatusOK},
		{http.MethodGet, "/api/v1/extras", http.StatusOK},
		{http.MethodGet, "/api/v1/galleries", http.StatusOK},
		{http.MethodGet, "/api/v1/sliders", http.StatusOK},
		{http.MethodGet, "/api/v1/settings", http.StatusOK},
		{http.MethodGet, "/api/admin/v1/dashboard", http.StatusUnauthorized},
		{http.MethodGet, "/api/admin/v1/media", http.StatusUnauthorized},
		{http.MethodGet, "/api/admin/v1/export/posts", http.StatusUnauthorized},
	}
	for _, tc := range cases {
		w := httptest.NewRecorder()
		a.Router.ServeHTTP(w, httptest.NewRequest(tc.method, tc.path, nil))
		if w.Code != tc.want {
			t.Errorf("%s %s: expected %d got %d body=%s", tc.method, tc.path, tc.want, w.Code, w.Body.String())
		}
		if w.Header().Get("X-Request-ID") == "" {
			t.Errorf("%s %s: missing request id", tc.method, tc.path)
		}
	}
}

func TestNewApp_RequiresJWTSecret(t *testing.T) {
	db := testutil.NewDB(t, database.Models()...)

	for _, secret := range []string{"", "   "} {
		if _, err := newApp(context.Background(), config.Config{Env: "test", JWTSecret: secret}, db, zap.NewNop()); err == nil {
			t.Fatalf("expected an error for JWT secret %q", secret)
		}
	}
}
