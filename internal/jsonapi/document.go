// Package jsonapi shapes API responses into the data/included/meta/links envelope the
// public site and the admin panel consume, and parses the matching query conventions.
package jsonapi

import (
	"strconv"
)

type Identifier struct {
	Type string `json:"type"`
	ID   string `json:"id"`
}

// Relationship.Data holds *Identifier, []Identifier or nil (an empty to-one relation).
type Relationship struct {
	Data any `json:"data"`
}

type Resource struct {
	Type          string                  `json:"type"`
	ID            string                  `json:"id"`
	Attributes    any                     `json:"attributes"`
	Relationships map[string]Relationship `json:"relationships,omitempty"`
	Links         map[string]string       `json:"links,omitempty"`
}

type Links struct {
	Self  string `json:"self,omitempty"`
	First string `json:"first,omitempty"`
	Prev  string `json:"prev,omitempty"`
	Next  string `json:"next,omitempty"`
	Last  string `json:"last,omitempty"`
}

type Document struct {
	Data     any            `json:"data"`
	Included []Resource     `json:"included,omitempty"`
	Meta     map[string]any `json:"meta,omitempty"`
	Links    *Links         `json:"links,omitempty"`
}

func ID(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

func (r Resource) Identifier() Identifier {
	return Identifier{Type: r.Type, ID: r.ID}
}

func ToOne(r *Resource) Relationship {
	if r == nil {
		return Relationship{Data: nil}
	}
	id := r.Identifier()
	return Relationship{Data: &id}
}

func ToMany(rs []Resource) Relationship {
	ids := make([]Identifier, 0, len(rs))
	for _, r := range rs {
		ids = append(ids, r.Identifier())
	}
	return Relationship{Data: ids}
}

// Builder assembles a Document, keeping included resources unique by type and id.
type Builder struct {
	doc  Document
	seen map[string]struct{}
}

func NewBuilder() *Builder {
	return &Builder{seen: map[string]struct{}{}}
}

func (b *Builder) One(r Resource) *Builder {
	b.doc.Data = r
	return b
}

func (b *Builder) Many(rs []Resource) *Builder {
	if rs == nil {
		rs = []Resource{}
	}
	b.doc.Data = rs
	return b
}

func (b *Builder) Include(rs ...Resource) *Builder {
	for _, r := range rs {
		key := r.Type + ":" + r.ID
		if _, ok := b.seen[key]; ok {
			continue
		}
		b.seen[key] = struct{}{}
		b.doc.Included = append(b.doc.Included, r)
	}
	return b
}

func (b *Builder) Meta(key string, value any) *Builder {
	if b.doc.Meta == nil {
		b.doc.Meta = map[string]any{}
	}
	b.doc.Meta[key] = value
	return b
}

func (b *Builder) Paginate(baseURL string, p Pagination) *Builder {
	links := PaginationLinks(baseURL, p)
	b.doc.Links = &links
	return b.Meta("pagination", p)
}

func (b *Builder) Document() Document {
	return b.doc
}
