package jsonapi

import (
	"net/url"
	"strconv"
)

type Pagination struct {
	Page     int   `json:"current_page"`
	PageSize int   `json:"per_page"`
	Total    int64 `json:"total"`
	LastPage int   `json:"last_page"`
}

func NewPagination(page, pageSize int, total int64) Pagination {
	last := 1
	if pageSize > 0 && total > 0 {
		last = int((total + int64(pageSize) - 1) / int64(pageSize))
	}
	return Pagination{Page: page, PageSize: pageSize, Total: total, LastPage: last}
}

func (p Pagination) Offset() int {
	if p.Page <= 1 {
		return 0
	}
	return (p.Page - 1) * p.PageSize
}

// PaginationLinks rewrites page[number] on rawURL for each link; prev and next are left
// empty at the edges of the range.
func PaginationLinks(rawURL string, p Pagination) Links {
	at := func(page int) string {
		u, err := url.Parse(rawURL)
		if err != nil {
			return ""
		}
		q := u.Query()
		q.Del("page")
		q.Set("page[number]", strconv.Itoa(page))
		q.Set("page[size]", strconv.Itoa(p.PageSize))
		u.RawQuery = q.Encode()
		return u.String()
	}

	links := Links{
		Self:  at(p.Page),
		First: at(1),
		Last:  at(p.LastPage),
	}
	if p.Page > 1 {
		prev := p.Page - 1
		if prev > p.LastPage {
			prev = p.LastPage
		}
		links.Prev = at(prev)
	}
	if p.Page < p.LastPage {
		links.Next = at(p.Page + 1)
	}
	return links
}
