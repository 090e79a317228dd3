package post

import (
	"time"

	"school-cms-api/internal/auth"
	"school-cms-api/internal/category"
	"school-cms-api/internal/jsonapi"
	"school-cms-api/internal/util"
)

const ResourceType = "posts"

type attributes struct {
	Title          string     `json:"title"`
	Slug           string     `json:"slug"`
	Excerpt        string     `json:"excerpt"`
	Content        string     `json:"content"`
	CoverImage     *string    `json:"cover_image"`
	Status         string     `json:"status"`
	PublishedAt    *time.Time `json:"published_at"`
	Views          int64      `json:"views"`
	Tags           []string   `json:"tags"`
	IsFeatured     bool       `json:"is_featured"`
	ReadingMinutes int        `json:"reading_minutes"`
	URL            string     `json:"url"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

func URL(slug string) string {
	return "/posts/" + slug
}

func Resource(p Post) jsonapi.Resource {
	excerpt := ""
	if p.Excerpt != nil && *p.Excerpt != "" {
		excerpt = *p.Excerpt
	} else {
		excerpt = util.Excerpt(p.Content, excerptWords)
	}
	tags := []string(p.Tags)
	if tags == nil {
		tags = []string{}
	}

	return jsonapi.Resource{
		Type: ResourceType,
		ID:   jsonapi.ID(p.ID),
		Attributes: attributes{
			Title:          p.Title,
			Slug:           p.Slug,
			Excerpt:        excerpt,
			Content:        p.Content,
			CoverImage:     p.CoverImage,
			Status:         p.Status,
			PublishedAt:    p.PublishedAt,
			Views:          p.Views,
			Tags:           tags,
			IsFeatured:     p.IsFeatured,
			ReadingMinutes: util.ReadingMinutes(p.Content),
			URL:            URL(p.Slug),
			CreatedAt:      p.CreatedAt,
			UpdatedAt:      p.UpdatedAt,
		},
		Relationships: map[string]jsonapi.Relationship{
			"category": toOne(category.ResourceType, p.CategoryID),
			"author":   toOne(auth.ResourceType, p.AuthorID),
		},
		Links: map[string]string{"self": "/api/v1/posts/" + p.Slug},
	}
}

func toOne(typ string, id *uint) jsonapi.Relationship {
	if id == nil {
		return jsonapi.ToOne(nil)
	}
	return jsonapi.ToOne(&jsonapi.Resource{Type: typ, ID: jsonapi.ID(*id)})
}

func included(b *jsonapi.Builder, p Post) {
	if p.Category != nil {
		b.Include(category.Included(*p.Category))
	}
	if p.Author != nil {
		b.Include(auth.AuthorResource(*p.Author))
	}
}

func Document(p Post) jsonapi.Document {
	b := jsonapi.NewBuilder().One(Resource(p))
	included(b, p)
	return b.Document()
}

func CollectionDocument(l *Listing, url string) jsonapi.Document {
	b := jsonapi.NewBuilder()
	resources := make([]jsonapi.Resource, 0, len(l.Items))
	for _, p := range l.Items {
		resources = append(resources, Resource(p))
		included(b, p)
	}
	return b.Many(resources).
		Paginate(url, l.Page).
		Meta("total", l.Summary.Total).
		Meta("published", l.Summary.Published).
		Meta("draft", l.Summary.Draft).
		Meta("archived", l.Summary.Archived).
		Meta("featured", l.Summary.Featured).
		Meta("total_views", l.Summary.TotalViews).
		Meta("by_category", l.Summary.ByCategory).
		Meta("popular", l.Summary.Popular).
		Document()
}
