package staff

import (
	"time"

	"school-cms-api/internal/jsonapi"
)

const ResourceType = "staff"

type attributes struct {
	Name              string     `json:"name"`
	Slug              string     `json:"slug"`
	EmployeeNumber    *string    `json:"employee_number,omitempty"`
	Position          string     `json:"position"`
	Department        string     `json:"department"`
	Subject           *string    `json:"subject"`
	Email             *string    `json:"email"`
	Phone             *string    `json:"phone,omitempty"`
	PhotoURL          *string    `json:"photo_url"`
	Bio               *string    `json:"bio"`
	Education         *string    `json:"education"`
	JoinedAt          *time.Time `json:"joined_at"`
	IsActive          bool       `json:"is_active"`
	SortOrder         int        `json:"sort_order"`
	YearsOfExperience *int       `json:"years_of_experience"`
	ExperienceLabel   *string    `json:"experience_label"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

func URL(slug string) string {
	return "/staff/" + slug
}

// Resource renders a staff member. The public variant leaves out the employee number and phone.
func Resource(m Staff, now time.Time, public bool) jsonapi.Resource {
	years := m.YearsOfExperience(now)
	attrs := attributes{
		Name:              m.Name,
		Slug:              m.Slug,
		EmployeeNumber:    m.EmployeeNumber,
		Position:          m.Position,
		Department:        m.Department,
		Subject:           m.Subject,
		Email:             m.Email,
		Phone:             m.Phone,
		PhotoURL:          m.PhotoURL,
		Bio:               m.Bio,
		Education:         m.Education,
		JoinedAt:          m.JoinedAt,
		IsActive:          m.IsActive,
		SortOrder:         m.SortOrder,
		YearsOfExperience: years,
		ExperienceLabel:   ExperienceLabel(years),
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}
	if public {
		attrs.EmployeeNumber = nil
		attrs.Phone = nil
	}
	return jsonapi.Resource{
		Type:       ResourceType,
		ID:         jsonapi.ID(m.ID),
		Attributes: attrs,
		Links:      map[string]string{"self": "/api/v1/staff/" + m.Slug},
	}
}

// Included is the compact form used when another resource embeds a staff member.
func Included(m Staff) jsonapi.Resource {
	return jsonapi.Resource{
		Type: ResourceType,
		ID:   jsonapi.ID(m.ID),
		Attributes: map[string]any{
			"name":      m.Name,
			"slug":      m.Slug,
			"position":  m.Position,
			"photo_url": m.PhotoURL,
		},
		Links: map[string]string{"self": "/api/v1/staff/" + m.Slug},
	}
}

func CollectionDocument(l *Listing, url string, public bool) jsonapi.Document {
	resources := make([]jsonapi.Resource, 0, len(l.Items))
	for _, m := range l.Items {
		resources = append(resources, Resource(m, l.At, public))
	}
	return jsonapi.NewBuilder().
		Many(resources).
		Paginate(url, l.Page).
		Meta("total", l.Summary.Total).
		Meta("active", l.Summary.Active).
		Meta("inactive", l.Summary.Inactive).
		Meta("by_department", l.Summary.ByDepartment).
		Meta("average_experience", l.Summary.AverageExperience).
		Meta("most_experienced", l.Summary.MostExperienced).
		Document()
}
