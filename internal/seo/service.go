// Package seo serves the crawler-facing documents of the public site.
package seo

import (
	"context"
	"encoding/xml"
	"time"

	"school-cms-api/internal/announcement"
	"school-cms-api/internal/extra"
	"school-cms-api/internal/facility"
	"school-cms-api/internal/gallery"
	"school-cms-api/internal/post"
	"school-cms-api/internal/repository"
	"school-cms-api/internal/staff"

	"gorm.io/gorm"
)

const sitemapNS = "http://www.sitemaps.org/schemas/sitemap/0.9"

var staticPages = []struct {
	Path       string
	ChangeFreq string
	Priority   string
}{
	{"/", "daily", "1.0"},
	{"/about", "monthly", "0.8"},
	{"/posts", "daily", "0.9"},
	{"/announcements", "daily", "0.9"},
	{"/galleries", "weekly", "0.7"},
	{"/staff", "monthly", "0.7"},
	{"/facilities", "monthly", "0.6"},
	{"/extracurriculars", "monthly", "0.6"},
	{"/contact", "yearly", "0.5"},
}

type URLSet struct {
	XMLName xml.Name `xml:"urlset"`
	XMLNS   string   `xml:"xmlns,attr"`
	URLs    []URL    `xml:"url"`
}

type URL struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod,omitempty"`
	ChangeFreq string `xml:"changefreq,omitempty"`
	Priority   string `xml:"priority,omitempty"`
}

// Manifest is the web app manifest of the public site.
type Manifest struct {
	Name            string         `json:"name"`
	ShortName       string         `json:"short_name"`
	Description     string         `json:"description,omitempty"`
	StartURL        string         `json:"start_url"`
	Display         string         `json:"display"`
	ThemeColor      string         `json:"theme_color"`
	BackgroundColor string         `json:"background_color"`
	Icons           []ManifestIcon `json:"icons"`
}

type ManifestIcon struct {
	Src   string `json:"src"`
	Sizes string `json:"sizes"`
	Type  string `json:"type,omitempty"`
}

// SiteSettings is the slice of the settings service the manifest reads.
type SiteSettings interface {
	String(ctx context.Context, key, fallback string) string
}

type SEOServiceAPI interface {
	Sitemap(ctx context.Context) (*URLSet, error)
	Robots() string
	Manifest(ctx context.Context) Manifest
}

var _ SEOServiceAPI = (*SEOService)(nil)

type SEOService struct {
	DB       *gorm.DB
	Settings SiteSettings
	SiteURL  string
	Clock    repository.Clock
}

func NewSEOService(db *gorm.DB, settings SiteSettings, siteURL string) *SEOService {
	return &SEOService{DB: db, Settings: settings, SiteURL: siteURL}
}

type slugRow struct {
	Slug      string
	UpdatedAt time.Time
}

type section struct {
	path       func(slug string) string
	changeFreq string
	priority   string
	query      func(db *gorm.DB, now time.Time) *gorm.DB
}

var sections = []section{
	{post.URL, "weekly", "0.8", func(db *gorm.DB, now time.Time) *gorm.DB {
		return db.Model(&post.Post{}).Scopes(post.Visible(now)).Order("published_at DESC")
	}},
	{announcement.URL, "weekly", "0.7", func(db *gorm.DB, now time.Time) *gorm.DB {
		return db.Model(&announcement.Announcement{}).Scopes(announcement.Active(now)).Order("published_at DESC")
	}},
	{gallery.URL, "monthly", "0.6", func(db *gorm.DB, _ time.Time) *gorm.DB {
		return db.Model(&gallery.Gallery{}).Scopes(gallery.Published).Order("event_date DESC")
	}},
	{staff.URL, "monthly", "0.5", func(db *gorm.DB, _ time.Time) *gorm.DB {
		return db.Model(&staff.Staff{}).Scopes(staff.Active).Order("sort_order ASC")
	}},
	{facility.URL, "monthly", "0.5", func(db *gorm.DB, _ time.Time) *gorm.DB {
		return db.Model(&facility.Facility{}).Order("name ASC")
	}},
	{extra.URL, "monthly", "0.5", func(db *gorm.DB, _ time.Time) *gorm.DB {
		return db.Model(&extra.Extra{}).Scopes(extra.Active).Order("name ASC")
	}},
}

// Sitemap lists the static pages followed by every publicly visible item.
func (s *SEOService) Sitemap(ctx context.Context) (*URLSet, error) {
	now := s.Clock.Now()
	set := &URLSet{XMLNS: sitemapNS}

	for _, p := range staticPages {
		set.URLs = append(set.URLs, URL{Loc: s.SiteURL + p.Path, ChangeFreq: p.ChangeFreq, Priority: p.Priority})
	}

	db := s.DB.WithContext(ctx)
	for _, sec := range sections {
		var rows []slugRow
		if err := sec.query(db, now).Order("id ASC").Select("slug", "updated_at").Scan(&rows).Error; err != nil {
			return nil, err
		}
		for _, r := range rows {
			set.URLs = append(set.URLs, URL{
				Loc:        s.SiteURL + sec.path(r.Slug),
				LastMod:    r.UpdatedAt.UTC().Format("2006-01-02"),
				ChangeFreq: sec.changeFreq,
				Priority:   sec.priority,
			})
		}
	}
	return set, nil
}

func (s *SEOService) Robots() string {
	return "User-agent: *\n" +
		"Allow: /\n" +
		"Disallow: /admin\n" +
		"Disallow: /api/admin/\n" +
		"\n" +
		"Sitemap: " + s.SiteURL + "/sitemap.xml\n"
}

func (s *SEOService) Manifest(ctx context.Context) Manifest {
	name := s.Settings.String(ctx, "site_name", "School Website")

	m := Manifest{
		Name:            name,
		ShortName:       s.Settings.String(ctx, "site_short_name", name),
		Description:     s.Settings.String(ctx, "site_description", ""),
		StartURL:        "/",
		Display:         "standalone",
		ThemeColor:      s.Settings.String(ctx, "theme_color", "#1d4ed8"),
		BackgroundColor: s.Settings.String(ctx, "background_color", "#ffffff"),
		Icons:           []ManifestIcon{},
	}
	if logo := s.Settings.String(ctx, "logo_url", ""); logo != "" {
		m.Icons = append(m.Icons,
			ManifestIcon{Src: logo, Sizes: "192x192"},
			ManifestIcon{Src: logo, Sizes: "512x512"},
		)
	}
	return m
}
