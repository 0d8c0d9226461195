// Package pagination provides the page-request/page-of-items types shared
// by the query services and their repositories.
package pagination

// DefaultSize is the page size used when a caller does not specify one.
const DefaultSize = 100

// Request selects one page of a result set. Page is zero-based.
type Request struct {
	Page int
	Size int
}

// Of returns a request for the given zero-based page with the default size.
func Of(page int) Request {
	return Request{Page: page, Size: DefaultSize}
}

// Default returns a request for the first page with the default size.
func Default() Request {
	return Of(0)
}

// Normalized clamps the request to sane bounds.
func (r Request) Normalized() Request {
	if r.Size <= 0 {
		r.Size = DefaultSize
	}
	if r.Page < 0 {
		r.Page = 0
	}
	return r
}

// Offset returns the row offset of the page.
func (r Request) Offset() int {
	r = r.Normalized()
	return r.Page * r.Size
}

// Page holds one page of items together with the total count of the
// underlying result set.
type Page[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
	Page  int `json:"page"`
	Size  int `json:"size"`
}

// Empty returns a page with no items.
func Empty[T any](req Request) Page[T] {
	req = req.Normalized()
	return Page[T]{Items: []T{}, Page: req.Page, Size: req.Size}
}

// HasNext reports whether pages follow this one.
func (p Page[T]) HasNext() bool {
	return (p.Page+1)*p.Size < p.Total
}

// Map converts a page of T into a page of U, preserving paging metadata.
func Map[T, U any](p Page[T], fn func(T) U) Page[U] {
	items := make([]U, 0, len(p.Items))
	for _, item := range p.Items {
		items = append(items, fn(item))
	}
	return Page[U]{Items: items, Total: p.Total, Page: p.Page, Size: p.Size}
}
