package category

import (
	"time"

	"school-cms-api/internal/jsonapi"
)

const ResourceType = "categories"

type attributes struct {
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Type        string    `json:"type"`
	Description *string   `json:"description"`
	PostsCount  int64     `json:"posts_count"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func Resource(c Category, postsCount int64) jsonapi.Resource {
	return jsonapi.Resource{
		Type: ResourceType,
		ID:   jsonapi.ID(c.ID),
		Attributes: attributes{
			Name:        c.Name,
			Slug:        c.Slug,
			Type:        c.Type,
			Description: c.Description,
			PostsCount:  postsCount,
			CreatedAt:   c.CreatedAt,
			UpdatedAt:   c.UpdatedAt,
		},
		Links: map[string]string{"self": "/api/v1/categories/" + c.Slug},
	}
}

// Included is the compact form other resources embed in "included".
func Included(c Category) jsonapi.Resource {
	return jsonapi.Resource{
		Type: ResourceType,
		ID:   jsonapi.ID(c.ID),
		Attributes: map[string]any{
			"name": c.Name,
			"slug": c.Slug,
			"type": c.Type,
		},
		Links: map[string]string{"self": "/api/v1/categories/" + c.Slug},
	}
}

func CollectionDocument(l *Listing, url string) jsonapi.Document {
	resources := make([]jsonapi.Resource, 0, len(l.Items))
	for _, c := range l.Items {
		resources = append(resources, Resource(c, l.PostCounts[c.ID]))
	}
	return jsonapi.NewBuilder().
		Many(resources).
		Paginate(url, l.Page).
		Meta("total", l.Summary.Total).
		Meta("by_type", l.Summary.ByType).
		Document()
}
