package jsonapi

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	DefaultPageSize = 15
	MaxPageSize     = 100
)

type Sort struct {
	Field string
	Desc  bool
}

type QueryParams struct {
	Page     int
	PageSize int
	Sort     []Sort
	Filters  map[string]string
	Include  []string
}

var filterKey = regexp.MustCompile(`^filter\[([a-z_]+)\]$`)

// ParseQuery reads JSON:API style parameters (page[number], page[size], sort, filter[x],
// include) and the plain aliases the site uses (page, per_page, search, q).
func ParseQuery(c *gin.Context) QueryParams {
	q := c.Request.URL.Query()
	params := QueryParams{Filters: map[string]string{}}

	params.Page = firstInt(q.Get("page[number]"), q.Get("page"))
	params.PageSize = firstInt(q.Get("page[size]"), q.Get("per_page"))
	params.Normalize()

	for _, raw := range strings.Split(q.Get("sort"), ",") {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		s := Sort{Field: raw}
		if strings.HasPrefix(raw, "-") {
			s = Sort{Field: strings.TrimPrefix(raw, "-"), Desc: true}
		}
		params.Sort = append(params.Sort, s)
	}

	for key, values := range q {
		m := filterKey.FindStringSubmatch(key)
		if m == nil || len(values) == 0 {
			continue
		}
		if v := strings.TrimSpace(values[0]); v != "" {
			params.Filters[m[1]] = v
		}
	}
	if _, ok := params.Filters["search"]; !ok {
		for _, alias := range []string{"search", "q"} {
			if v := strings.TrimSpace(q.Get(alias)); v != "" {
				params.Filters["search"] = v
				break
			}
		}
	}

	for _, inc := range strings.Split(q.Get("include"), ",") {
		inc = strings.TrimSpace(inc)
		if inc != "" {
			params.Include = append(params.Include, inc)
		}
	}
	return params
}

// Normalize clamps paging to sane values.
func (p *QueryParams) Normalize() {
	if p.Page <= 0 {
		p.Page = 1
	}
	if p.PageSize <= 0 {
		p.PageSize = DefaultPageSize
	}
	if p.PageSize > MaxPageSize {
		p.PageSize = MaxPageSize
	}
	if p.Filters == nil {
		p.Filters = map[string]string{}
	}
}

func (p QueryParams) Includes(name string) bool {
	for _, inc := range p.Include {
		if inc == name {
			return true
		}
	}
	return false
}

// WithFilter returns a copy with one filter forced, used for public visibility rules.
func (p QueryParams) WithFilter(key, value string) QueryParams {
	out := p
	out.Filters = make(map[string]string, len(p.Filters)+1)
	for k, v := range p.Filters {
		out.Filters[k] = v
	}
	out.Filters[key] = value
	return out
}

func firstInt(values ...string) int {
	for _, v := range values {
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return n
		}
	}
	return 0
}
