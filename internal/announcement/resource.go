package announcement

import (
	"time"

	"school-cms-api/internal/auth"
	"school-cms-api/internal/category"
	"school-cms-api/internal/jsonapi"
)

const ResourceType = "announcements"

type attributes struct {
	Title       string     `json:"title"`
	Slug        string     `json:"slug"`
	Content     string     `json:"content"`
	Priority    string     `json:"priority"`
	IsPinned    bool       `json:"is_pinned"`
	PublishedAt *time.Time `json:"published_at"`
	ExpiresAt   *time.Time `json:"expires_at"`
	Attachment  *string    `json:"attachment"`
	State       string     `json:"state"`
	IsExpired   bool       `json:"is_expired"`
	DaysLeft    *int       `json:"days_left"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func URL(slug string) string {
	return "/announcements/" + slug
}

func Resource(a Announcement, now time.Time) jsonapi.Resource {
	state := a.State(now)
	return jsonapi.Resource{
		Type: ResourceType,
		ID:   jsonapi.ID(a.ID),
		Attributes: attributes{
			Title:       a.Title,
			Slug:        a.Slug,
			Content:     a.Content,
			Priority:    a.Priority,
			IsPinned:    a.IsPinned,
			PublishedAt: a.PublishedAt,
			ExpiresAt:   a.ExpiresAt,
			Attachment:  a.Attachment,
			State:       state,
			IsExpired:   state == StateExpired,
			DaysLeft:    a.DaysLeft(now),
			CreatedAt:   a.CreatedAt,
			UpdatedAt:   a.UpdatedAt,
		},
		Relationships: map[string]jsonapi.Relationship{
			"category": toOne(category.ResourceType, a.CategoryID),
			"author":   toOne(auth.ResourceType, a.AuthorID),
		},
		Links: map[string]string{"self": "/api/v1/announcements/" + a.Slug},
	}
}

func toOne(typ string, id *uint) jsonapi.Relationship {
	if id == nil {
		return jsonapi.ToOne(nil)
	}
	return jsonapi.ToOne(&jsonapi.Resource{Type: typ, ID: jsonapi.ID(*id)})
}

func included(b *jsonapi.Builder, a Announcement) {
	if a.Category != nil {
		b.Include(category.Included(*a.Category))
	}
	if a.Author != nil {
		b.Include(auth.AuthorResource(*a.Author))
	}
}

func Document(a Announcement, now time.Time) jsonapi.Document {
	b := jsonapi.NewBuilder().One(Resource(a, now))
	included(b, a)
	return b.Document()
}

func CollectionDocument(l *Listing, url string) jsonapi.Document {
	b := jsonapi.NewBuilder()
	resources := make([]jsonapi.Resource, 0, len(l.Items))
	for _, a := range l.Items {
		resources = append(resources, Resource(a, l.At))
		included(b, a)
	}
	return b.Many(resources).
		Paginate(url, l.Page).
		Meta("total", l.Summary.Total).
		Meta("pinned", l.Summary.Pinned).
		Meta("expired", l.Summary.Expired).
		Meta("active", l.Summary.Active).
		Meta("scheduled", l.Summary.Scheduled).
		Meta("by_priority", l.Summary.ByPriority).
		Meta("by_category", l.Summary.ByCategory).
		Document()
}
