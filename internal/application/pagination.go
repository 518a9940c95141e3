package application

import (
	"errors"
	"fmt"

	"reprint/internal/domain/entity"
)

// DefaultPageSize is used when no explicit page size is given.
const DefaultPageSize = 10

var (
	// ErrPageSize rejects page sizes below one.
	ErrPageSize = errors.New("page size must be at least 1")
	// ErrPageOutOfRange rejects current-page values outside 1..PagesCount.
	ErrPageOutOfRange = errors.New("page out of range")
)

// Pagination slices one page's worth of posts out of a feed's ordered
// list. The total is snapshotted at construction; the pagination
// reflects the feed as it was when created.
type Pagination struct {
	list        PostList
	totalPosts  int
	pageSize    int
	currentPage int
}

// NewPagination builds a pagination over list. A pageSize of zero means
// DefaultPageSize; a negative one is rejected.
func NewPagination(list PostList, pageSize int) (*Pagination, error) {
	p := &Pagination{
		list:        list,
		totalPosts:  list.Len(),
		pageSize:    DefaultPageSize,
		currentPage: 1,
	}
	if pageSize != 0 {
		if err := p.SetPageSize(pageSize); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// PageSize returns the configured page size.
func (p *Pagination) PageSize() int {
	return p.pageSize
}

// SetPageSize updates the page size. Values below one fail and leave
// the previous size in place.
func (p *Pagination) SetPageSize(size int) error {
	if size < 1 {
		return ErrPageSize
	}
	p.pageSize = size
	return nil
}

// CurrentPage returns the 1-indexed current page.
func (p *Pagination) CurrentPage() int {
	return p.currentPage
}

// SetCurrentPage moves to the given page. Out-of-range values fail and
// leave the current page unchanged.
func (p *Pagination) SetCurrentPage(page int) error {
	if page < 1 || page > p.PagesCount() {
		return fmt.Errorf("%w: page must be between 1 and %d", ErrPageOutOfRange, p.PagesCount())
	}
	p.currentPage = page
	return nil
}

// PagesCount returns the number of pages for the snapshotted total.
func (p *Pagination) PagesCount() int {
	return (p.totalPosts + p.pageSize - 1) / p.pageSize
}

// Posts returns the current page's posts, shorter on the final page
// when the list runs out.
func (p *Pagination) Posts() []*entity.Post {
	return p.list.Slice((p.currentPage-1)*p.pageSize, p.pageSize)
}

// Len returns the number of posts on the current page.
func (p *Pagination) Len() int {
	return len(p.Posts())
}

// IsFirstPage reports whether the current page is the first one.
func (p *Pagination) IsFirstPage() bool {
	return p.currentPage == 1
}

// IsLastPage reports whether the current page is the last one.
func (p *Pagination) IsLastPage() bool {
	return p.currentPage == p.PagesCount()
}
