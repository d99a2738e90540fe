package apivideo

import "encoding/json"

// DefaultPageSize is used when a search does not set PageSize
const DefaultPageSize = 100

// PageParams selects a page of a list endpoint. Zero values mean "unset":
// without CurrentPage every page is fetched.
type PageParams struct {
	CurrentPage int `url:"-"`
	PageSize    int `url:"-"`
}

func (p PageParams) pageParams() PageParams {
	return p
}

// searchParams is implemented by every search parameter struct through the
// embedded PageParams.
type searchParams interface {
	pageParams() PageParams
}

// Pagination is the page metadata of a list response
type Pagination struct {
	CurrentPage      int    `json:"currentPage"`
	CurrentPageItems int    `json:"currentPageItems"`
	PageSize         int    `json:"pageSize"`
	PagesTotal       int    `json:"pagesTotal"`
	ItemsTotal       int    `json:"itemsTotal"`
	Links            []Link `json:"links"`
}

// Link is a pagination link (first, previous, next, last)
type Link struct {
	Rel string `json:"rel"`
	URI string `json:"uri"`
}

// HasMorePages checks if pages remain after the current one
func (p Pagination) HasMorePages() bool {
	return p.CurrentPage < p.PagesTotal
}

// pageEnvelope is the wrapper every list endpoint returns.
type pageEnvelope struct {
	Data       []json.RawMessage `json:"data"`
	Pagination Pagination        `json:"pagination"`
}
