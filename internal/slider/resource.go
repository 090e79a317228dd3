package slider

import (
	"time"

	"school-cms-api/internal/jsonapi"
)

const ResourceType = "sliders"

type attributes struct {
	Title      string    `json:"title"`
	Subtitle   *string   `json:"subtitle"`
	ImageURL   string    `json:"image_url"`
	LinkURL    *string   `json:"link_url"`
	ButtonText *string   `json:"button_text"`
	HasLink    bool      `json:"has_link"`
	SortOrder  int       `json:"sort_order"`
	IsActive   bool      `json:"is_active"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func Resource(m Slider) jsonapi.Resource {
	return jsonapi.Resource{
		Type: ResourceType,
		ID:   jsonapi.ID(m.ID),
		Attributes: attributes{
			Title:      m.Title,
			Subtitle:   m.Subtitle,
			ImageURL:   m.ImageURL,
			LinkURL:    m.LinkURL,
			ButtonText: m.ButtonText,
			HasLink:    m.LinkURL != nil && *m.LinkURL != "",
			SortOrder:  m.SortOrder,
			IsActive:   m.IsActive,
			CreatedAt:  m.CreatedAt,
			UpdatedAt:  m.UpdatedAt,
		},
	}
}

func CollectionDocument(items []Slider) jsonapi.Document {
	resources := make([]jsonapi.Resource, 0, len(items))
	active := 0
	for _, m := range items {
		resources = append(resources, Resource(m))
		if m.IsActive {
			active++
		}
	}
	return jsonapi.NewBuilder().
		Many(resources).
		Meta("total", len(items)).
		Meta("active", active).
		Document()
}
