package auth

import "school-cms-api/internal/jsonapi"

const ResourceType = "users"

// Resource is also used by content modules to include post and announcement authors.
func Resource(u User) jsonapi.Resource {
	return jsonapi.Resource{
		Type:       ResourceType,
		ID:         jsonapi.ID(u.ID),
		Attributes: ToResponse(u),
	}
}

func Resources(users []User) []jsonapi.Resource {
	out := make([]jsonapi.Resource, 0, len(users))
	for _, u := range users {
		out = append(out, Resource(u))
	}
	return out
}

// AuthorResource exposes only what the public site shows about a writer.
func AuthorResource(u User) jsonapi.Resource {
	return jsonapi.Resource{
		Type: ResourceType,
		ID:   jsonapi.ID(u.ID),
		Attributes: map[string]any{
			"name":       u.Name,
			"avatar_url": u.AvatarURL,
		},
	}
}
