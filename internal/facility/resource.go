package facility

import (
	"time"

	"school-cms-api/internal/jsonapi"
)

const ResourceType = "facilities"

type attributes struct {
	Name           string    `json:"name"`
	Slug           string    `json:"slug"`
	Description    *string   `json:"description"`
	Type           string    `json:"type"`
	AreaSqm        float64   `json:"area_sqm"`
	Capacity       int       `json:"capacity"`
	ImageURL       *string   `json:"image_url"`
	Condition      string    `json:"condition"`
	ConditionLabel string    `json:"condition_label"`
	IsAvailable    bool      `json:"is_available"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

var conditionLabels = map[string]string{
	ConditionGood:        "Good",
	ConditionFair:        "Fair",
	ConditionNeedsRepair: "Needs repair",
}

func URL(slug string) string {
	return "/facilities/" + slug
}

func Resource(f Facility) jsonapi.Resource {
	return jsonapi.Resource{
		Type: ResourceType,
		ID:   jsonapi.ID(f.ID),
		Attributes: attributes{
			Name:           f.Name,
			Slug:           f.Slug,
			Description:    f.Description,
			Type:           f.Type,
			AreaSqm:        f.AreaSqm,
			Capacity:       f.Capacity,
			ImageURL:       f.ImageURL,
			Condition:      f.Condition,
			ConditionLabel: conditionLabels[f.Condition],
			IsAvailable:    f.IsAvailable,
			CreatedAt:      f.CreatedAt,
			UpdatedAt:      f.UpdatedAt,
		},
		Links: map[string]string{"self": "/api/v1/facilities/" + f.Slug},
	}
}

func CollectionDocument(l *Listing, url string) jsonapi.Document {
	resources := make([]jsonapi.Resource, 0, len(l.Items))
	for _, f := range l.Items {
		resources = append(resources, Resource(f))
	}
	return jsonapi.NewBuilder().
		Many(resources).
		Paginate(url, l.Page).
		Meta("total", l.Summary.Total).
		Meta("available", l.Summary.Available).
		Meta("total_area", l.Summary.TotalArea).
		Meta("total_capacity", l.Summary.TotalCapacity).
		Meta("by_type", l.Summary.ByType).
		Meta("by_condition", l.Summary.ByCondition).
		Meta("largest", l.Summary.Largest).
		Document()
}
