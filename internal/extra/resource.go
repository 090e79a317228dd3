package extra

import (
	"time"

	"school-cms-api/internal/jsonapi"
	"school-cms-api/internal/staff"
)

const ResourceType = "extras"

type attributes struct {
	Name         string    `json:"name"`
	Slug         string    `json:"slug"`
	Description  *string   `json:"description"`
	Category     string    `json:"category"`
	Schedule     *string   `json:"schedule"`
	Location     *string   `json:"location"`
	MembersCount int       `json:"members_count"`
	MaxMembers   int       `json:"max_members"`
	IsFull       bool      `json:"is_full"`
	FillRate     float64   `json:"fill_rate"`
	ImageURL     *string   `json:"image_url"`
	Achievements []string  `json:"achievements"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// URL is the public site path of an extracurricular.
func URL(slug string) string {
	return "/extracurriculars/" + slug
}

func Resource(e Extra) jsonapi.Resource {
	achievements := []string(e.Achievements)
	if achievements == nil {
		achievements = []string{}
	}

	coach := jsonapi.ToOne(nil)
	if e.CoachID != nil {
		coach = jsonapi.ToOne(&jsonapi.Resource{Type: staff.ResourceType, ID: jsonapi.ID(*e.CoachID)})
	}

	return jsonapi.Resource{
		Type: ResourceType,
		ID:   jsonapi.ID(e.ID),
		Attributes: attributes{
			Name:         e.Name,
			Slug:         e.Slug,
			Description:  e.Description,
			Category:     e.Category,
			Schedule:     e.Schedule,
			Location:     e.Location,
			MembersCount: e.MembersCount,
			MaxMembers:   e.MaxMembers,
			IsFull:       e.IsFull(),
			FillRate:     e.FillRate(),
			ImageURL:     e.ImageURL,
			Achievements: achievements,
			IsActive:     e.IsActive,
			CreatedAt:    e.CreatedAt,
			UpdatedAt:    e.UpdatedAt,
		},
		Relationships: map[string]jsonapi.Relationship{"coach": coach},
		Links:         map[string]string{"self": "/api/v1/extras/" + e.Slug},
	}
}

func Document(e Extra) jsonapi.Document {
	b := jsonapi.NewBuilder().One(Resource(e))
	if e.Coach != nil {
		b.Include(staff.Included(*e.Coach))
	}
	return b.Document()
}

func CollectionDocument(l *Listing, url string) jsonapi.Document {
	b := jsonapi.NewBuilder()
	resources := make([]jsonapi.Resource, 0, len(l.Items))
	for _, e := range l.Items {
		resources = append(resources, Resource(e))
		if e.Coach != nil {
			b.Include(staff.Included(*e.Coach))
		}
	}
	return b.Many(resources).
		Paginate(url, l.Page).
		Meta("total", l.Summary.Total).
		Meta("active", l.Summary.Active).
		Meta("total_members", l.Summary.TotalMembers).
		Meta("by_category", l.Summary.ByCategory).
		Meta("most_popular", l.Summary.MostPopular).
		Document()
}
