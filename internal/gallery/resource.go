package gallery

import (
	"time"

	"school-cms-api/internal/category"
	"school-cms-api/internal/jsonapi"
)

const (
	ResourceType      = "galleries"
	ImageResourceType = "gallery-images"
)

type attributes struct {
	Title       string     `json:"title"`
	Slug        string     `json:"slug"`
	Description *string    `json:"description"`
	CoverURL    *string    `json:"cover_url"`
	EventDate   *time.Time `json:"event_date"`
	IsPublished bool       `json:"is_published"`
	ImagesCount int        `json:"images_count"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func URL(slug string) string {
	return "/galleries/" + slug
}

func ImageResource(img GalleryImage) jsonapi.Resource {
	return jsonapi.Resource{
		Type: ImageResourceType,
		ID:   jsonapi.ID(img.ID),
		Attributes: map[string]any{
			"url":        img.URL,
			"caption":    img.Caption,
			"sort_order": img.SortOrder,
		},
	}
}

func Resource(g Gallery, withImages bool) jsonapi.Resource {
	rel := map[string]jsonapi.Relationship{}
	if g.CategoryID != nil {
		rel["category"] = jsonapi.ToOne(&jsonapi.Resource{Type: category.ResourceType, ID: jsonapi.ID(*g.CategoryID)})
	} else {
		rel["category"] = jsonapi.ToOne(nil)
	}
	if withImages {
		images := make([]jsonapi.Resource, 0, len(g.Images))
		for _, img := range g.Images {
			images = append(images, ImageResource(img))
		}
		rel["images"] = jsonapi.ToMany(images)
	}

	return jsonapi.Resource{
		Type: ResourceType,
		ID:   jsonapi.ID(g.ID),
		Attributes: attributes{
			Title:       g.Title,
			Slug:        g.Slug,
			Description: g.Description,
			CoverURL:    g.Cover(),
			EventDate:   g.EventDate,
			IsPublished: g.IsPublished,
			ImagesCount: len(g.Images),
			CreatedAt:   g.CreatedAt,
			UpdatedAt:   g.UpdatedAt,
		},
		Relationships: rel,
		Links:         map[string]string{"self": "/api/v1/galleries/" + g.Slug},
	}
}

func included(b *jsonapi.Builder, g Gallery, withImages bool) {
	if g.Category != nil {
		b.Include(category.Included(*g.Category))
	}
	if withImages {
		for _, img := range g.Images {
			b.Include(ImageResource(img))
		}
	}
}

// Document renders one gallery. Images are always embedded on a single gallery.
func Document(g Gallery) jsonapi.Document {
	b := jsonapi.NewBuilder().One(Resource(g, true))
	included(b, g, true)
	return b.Document()
}

func CollectionDocument(l *Listing, url string) jsonapi.Document {
	b := jsonapi.NewBuilder()
	resources := make([]jsonapi.Resource, 0, len(l.Items))
	for _, g := range l.Items {
		resources = append(resources, Resource(g, l.IncludeImages))
		included(b, g, l.IncludeImages)
	}
	return b.Many(resources).
		Paginate(url, l.Page).
		Meta("total", l.Summary.Total).
		Meta("published", l.Summary.Published).
		Meta("images", l.Summary.Images).
		Document()
}
