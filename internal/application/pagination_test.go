package application

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reprint/internal/domain/entity"
)

func listOf(n int) PostList {
	posts := make([]*entity.Post, n)
	for i := range posts {
		posts[i] = entity.New(entity.Details{Title: fmt.Sprintf("Post %d", i)})
	}
	return NewPostList(posts)
}

func TestPaginationArithmetic(t *testing.T) {
	p, err := NewPagination(listOf(35), 15)
	require.NoError(t, err)

	assert.Equal(t, 3, p.PagesCount())

	// Page 1 holds items [0..15).
	page := p.Posts()
	require.Len(t, page, 15)
	assert.Equal(t, "Post 0", page[0].RawTitle())
	assert.Equal(t, "Post 14", page[14].RawTitle())

	// Page 3 is the shorter final page, items [30..35).
	require.NoError(t, p.SetCurrentPage(3))
	page = p.Posts()
	require.Len(t, page, 5)
	assert.Equal(t, "Post 30", page[0].RawTitle())
	assert.Equal(t, "Post 34", page[4].RawTitle())
	assert.Equal(t, 5, p.Len())
}

func TestPaginationBounds(t *testing.T) {
	p, err := NewPagination(listOf(35), 15)
	require.NoError(t, err)
	require.NoError(t, p.SetCurrentPage(2))

	assert.ErrorIs(t, p.SetCurrentPage(0), ErrPageOutOfRange)
	assert.Equal(t, 2, p.CurrentPage())

	assert.ErrorIs(t, p.SetCurrentPage(4), ErrPageOutOfRange)
	assert.Equal(t, 2, p.CurrentPage())
}

func TestPaginationPageSize(t *testing.T) {
	p, err := NewPagination(listOf(10), 0)
	require.NoError(t, err)
	assert.Equal(t, DefaultPageSize, p.PageSize())

	assert.ErrorIs(t, p.SetPageSize(0), ErrPageSize)
	assert.Equal(t, DefaultPageSize, p.PageSize())

	require.NoError(t, p.SetPageSize(3))
	assert.Equal(t, 3, p.PageSize())
	assert.Equal(t, 4, p.PagesCount())

	_, err = NewPagination(listOf(10), -1)
	assert.ErrorIs(t, err, ErrPageSize)
}

func TestPaginationFirstAndLastPage(t *testing.T) {
	p, err := NewPagination(listOf(35), 15)
	require.NoError(t, err)

	assert.True(t, p.IsFirstPage())
	assert.False(t, p.IsLastPage())

	require.NoError(t, p.SetCurrentPage(3))
	assert.False(t, p.IsFirstPage())
	assert.True(t, p.IsLastPage())
}

func TestPaginationExactFit(t *testing.T) {
	p, err := NewPagination(listOf(30), 15)
	require.NoError(t, err)

	assert.Equal(t, 2, p.PagesCount())
	require.NoError(t, p.SetCurrentPage(2))
	assert.Len(t, p.Posts(), 15)
}
