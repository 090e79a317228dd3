package seo

import (
	"encoding/json"
	"encoding/xml"
	"net/http"
	"strings"
	"testing"

	"school-cms-api/internal/testutil"
)

func TestSitemapEndpoint(t *testing.T) {
	svc, db := newService(t, mapSettings{})
	seed(t, db)
	r := testutil.Router()
	RegisterRoutes(r, svc)

	w := testutil.Do(r, http.MethodGet, "/sitemap.xml", "", 0)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/xml") {
		t.Fatalf("unexpected content type %q", ct)
	}
	if !strings.HasPrefix(w.Body.String(), "<?xml") {
		t.Fatalf("missing xml header: %s", w.Body.String())
	}

	var set URLSet
	if err := xml.Unmarshal(w.Body.Bytes(), &set); err != nil {
		t.Fatalf("bad xml: %v", err)
	}
	if len(set.URLs) != len(staticPages)+6 {
		t.Fatalf("expected %d urls, got %d", len(staticPages)+6, len(set.URLs))
	}
}

func TestSitemapEndpoint_DBError_500(t *testing.T) {
	svc, _ := newService(t, mapSettings{})
	svc.DB = testutil.ClosedDB(t)
	r := testutil.Router()
	RegisterRoutes(r, svc)

	w := testutil.Do(r, http.MethodGet, "/sitemap.xml", "", 0)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 got %d", w.Code)
	}
}

func TestRobotsAndManifestEndpoints(t *testing.T) {
	svc, _ := newService(t, mapSettings{"site_name": "SMA Pelita"})
	r := testutil.Router()
	RegisterRoutes(r, svc)

	w := testutil.Do(r, http.MethodGet, "/robots.txt", "", 0)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "Disallow: /admin") {
		t.Fatalf("unexpected robots.txt: %d %s", w.Code, w.Body.String())
	}

	w = testutil.Do(r, http.MethodGet, "/manifest.webmanifest", "", 0)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", w.Code)
	}
	var m Manifest
	if err := json.Unmarshal(w.Body.Bytes(), &m); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	if m.Name != "SMA Pelita" || m.StartURL != "/" {
		t.Fatalf("unexpected manifest: %+v", m)
	}
}
