// Package export dumps content tables as spreadsheets for the admin panel.
package export

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"school-cms-api/internal/announcement"
	"school-cms-api/internal/apperr"
	"school-cms-api/internal/auth"
	"school-cms-api/internal/category"
	"school-cms-api/internal/extra"
	"school-cms-api/internal/facility"
	"school-cms-api/internal/post"
	"school-cms-api/internal/staff"

	"gorm.io/gorm"
)

// Table is one exported sheet.
type Table struct {
	Name    string
	Headers []string
	Rows    [][]any
}

type ExportServiceAPI interface {
	Resources() []string
	Table(ctx context.Context, resource string) (*Table, error)
}

var _ ExportServiceAPI = (*ExportService)(nil)

type exporter func(db *gorm.DB) (*Table, error)

var exporters = map[string]exporter{
	"posts":         exportPosts,
	"announcements": exportAnnouncements,
	"staff":         exportStaff,
	"facilities":    exportFacilities,
	"extras":        exportExtras,
}

type ExportService struct {
	DB *gorm.DB
}

func NewExportService(db *gorm.DB) *ExportService {
	return &ExportService{DB: db}
}

func (s *ExportService) Resources() []string {
	out := make([]string, 0, len(exporters))
	for k := range exporters {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func (s *ExportService) Table(ctx context.Context, resource string) (*Table, error) {
	fn, ok := exporters[strings.ToLower(strings.TrimSpace(resource))]
	if !ok {
		return nil, fmt.Errorf("%w: unknown export resource %q", apperr.ErrNotFound, resource)
	}
	return fn(s.DB.WithContext(ctx))
}

func exportPosts(db *gorm.DB) (*Table, error) {
	var items []post.Post
	if err := db.Preload("Category").Preload("Author").Order("id ASC").Find(&items).Error; err != nil {
		return nil, err
	}

	t := &Table{
		Name: "Posts",
		Headers: []string{"ID", "Title", "Slug", "Status", "Category", "Author", "Tags",
			"Featured", "Views", "Published At", "Created At", "Updated At"},
	}
	for _, p := range items {
		t.Rows = append(t.Rows, []any{
			p.ID, p.Title, p.Slug, p.Status, categoryName(p.Category), authorName(p.Author),
			[]string(p.Tags), yesNo(p.IsFeatured), p.Views, p.PublishedAt, p.CreatedAt, p.UpdatedAt,
		})
	}
	return t, nil
}

func exportAnnouncements(db *gorm.DB) (*Table, error) {
	var items []announcement.Announcement
	if err := db.Preload("Category").Preload("Author").Order("id ASC").Find(&items).Error; err != nil {
		return nil, err
	}

	t := &Table{
		Name: "Announcements",
		Headers: []string{"ID", "Title", "Slug", "Priority", "Pinned", "Category", "Author",
			"Published At", "Expires At", "Attachment", "Created At"},
	}
	for _, a := range items {
		t.Rows = append(t.Rows, []any{
			a.ID, a.Title, a.Slug, a.Priority, yesNo(a.IsPinned), categoryName(a.Category), authorName(a.Author),
			a.PublishedAt, a.ExpiresAt, a.Attachment, a.CreatedAt,
		})
	}
	return t, nil
}

func exportStaff(db *gorm.DB) (*Table, error) {
	var items []staff.Staff
	if err := db.Order("sort_order ASC").Order("name ASC").Order("id ASC").Find(&items).Error; err != nil {
		return nil, err
	}

	t := &Table{
		Name: "Staff",
		Headers: []string{"ID", "Name", "Employee Number", "Position", "Department", "Subject",
			"Email", "Phone", "Education", "Joined At", "Active"},
	}
	for _, s := range items {
		t.Rows = append(t.Rows, []any{
			s.ID, s.Name, s.EmployeeNumber, s.Position, s.Department, s.Subject,
			s.Email, s.Phone, s.Education, s.JoinedAt, yesNo(s.IsActive),
		})
	}
	return t, nil
}

func exportFacilities(db *gorm.DB) (*Table, error) {
	var items []facility.Facility
	if err := db.Order("name ASC").Order("id ASC").Find(&items).Error; err != nil {
		return nil, err
	}

	t := &Table{
		Name:    "Facilities",
		Headers: []string{"ID", "Name", "Type", "Area (m2)", "Capacity", "Condition", "Available"},
	}
	for _, f := range items {
		t.Rows = append(t.Rows, []any{
			f.ID, f.Name, f.Type, f.AreaSqm, f.Capacity, f.Condition, yesNo(f.IsAvailable),
		})
	}
	return t, nil
}

func exportExtras(db *gorm.DB) (*Table, error) {
	var items []extra.Extra
	if err := db.Preload("Coach").Order("name ASC").Order("id ASC").Find(&items).Error; err != nil {
		return nil, err
	}

	t := &Table{
		Name: "Extracurriculars",
		Headers: []string{"ID", "Name", "Category", "Coach", "Schedule", "Location",
			"Members", "Max Members", "Fill Rate (%)", "Achievements", "Active"},
	}
	for _, e := range items {
		coach := ""
		if e.Coach != nil {
			coach = e.Coach.Name
		}
		maxMembers := any(e.MaxMembers)
		if e.MaxMembers == 0 {
			maxMembers = "Unlimited"
		}
		t.Rows = append(t.Rows, []any{
			e.ID, e.Name, e.Category, coach, e.Schedule, e.Location,
			e.MembersCount, maxMembers, e.FillRate(), []string(e.Achievements), yesNo(e.IsActive),
		})
	}
	return t, nil
}

func categoryName(c *category.Category) string {
	if c == nil {
		return ""
	}
	return c.Name
}

func authorName(u *auth.User) string {
	if u == nil {
		return ""
	}
	return u.Name
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
