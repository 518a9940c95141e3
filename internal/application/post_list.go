package application

import "reprint/internal/domain/entity"

// PostList is a read-only, ordered view over posts. It deliberately has
// no mutating entry points; once a feed's posts are loaded they are
// fixed for that list.
type PostList struct {
	posts []*entity.Post
}

// NewPostList snapshots the given posts into a read-only list.
func NewPostList(posts []*entity.Post) PostList {
	return PostList{posts: append([]*entity.Post(nil), posts...)}
}

// Len returns the number of posts in the list.
func (l PostList) Len() int {
	return len(l.posts)
}

// At returns the post at index i, or nil when i is out of range.
func (l PostList) At(i int) *entity.Post {
	if i < 0 || i >= len(l.posts) {
		return nil
	}
	return l.posts[i]
}

// All returns the posts in order. The returned slice is a copy; the
// list itself cannot be modified through it.
func (l PostList) All() []*entity.Post {
	return append([]*entity.Post(nil), l.posts...)
}

// Slice returns up to limit posts starting at offset, stopping early at
// the end of the list. An offset past the end yields an empty slice.
func (l PostList) Slice(offset, limit int) []*entity.Post {
	if offset < 0 || limit <= 0 || offset >= len(l.posts) {
		return nil
	}
	end := offset + limit
	if end > len(l.posts) {
		end = len(l.posts)
	}
	return append([]*entity.Post(nil), l.posts[offset:end]...)
}
