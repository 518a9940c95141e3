package application

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"reprint/internal/domain/entity"
	"reprint/internal/domain/repository"
	"reprint/internal/textutil"
)

const (
	// DefaultCacheTTL is how long a fetched post list stays cached.
	DefaultCacheTTL = 12 * time.Hour

	// DefaultRenderedFilename is the file created inside each post's
	// output directory.
	DefaultRenderedFilename = "index.html"

	cacheKeyPosts       = "posts"
	renderSummaryLength = 150
)

// FeedService produces the ordered post list for one feed source,
// transparently cached, and renders it to per-post output files.
type FeedService struct {
	source repository.PostSource
	cache  repository.BlobCache
	styler entity.Styler
	ttl    time.Duration
	log    *slog.Logger

	posts *PostList
}

func NewFeedService(
	source repository.PostSource,
	cache repository.BlobCache,
	styler entity.Styler,
	ttl time.Duration,
	logger *slog.Logger,
) *FeedService {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &FeedService{
		source: source,
		cache:  cache,
		styler: styler,
		ttl:    ttl,
		log:    logger,
	}
}

// Posts returns the feed's posts in source order. The list is loaded at
// most once per service instance and reused until bypassCache forces a
// reload; bypassCache also skips the blob cache and refetches from the
// source. A fetch or item failure is an error, distinguishable from an
// empty feed.
func (s *FeedService) Posts(ctx context.Context, bypassCache bool) (PostList, error) {
	if s.posts == nil || bypassCache {
		list, err := s.loadPosts(ctx, bypassCache)
		if err != nil {
			return PostList{}, err
		}
		s.posts = &list
	}
	return *s.posts, nil
}

func (s *FeedService) loadPosts(ctx context.Context, bypassCache bool) (PostList, error) {
	if !bypassCache {
		if list, ok := s.loadCachedPosts(ctx); ok {
			return list, nil
		}
	}

	items, err := s.source.Fetch(ctx)
	if err != nil {
		return PostList{}, fmt.Errorf("fetch feed: %w", err)
	}

	posts := make([]*entity.Post, 0, len(items))
	for _, item := range items {
		post, err := entity.NewPostFromRaw(item, s.styler)
		if err != nil {
			return PostList{}, fmt.Errorf("build post %q: %w", item.Title, err)
		}
		posts = append(posts, post)
	}

	s.cachePosts(ctx, posts)
	return NewPostList(posts), nil
}

func (s *FeedService) loadCachedPosts(ctx context.Context) (PostList, bool) {
	data, err := s.cache.Load(ctx, cacheKeyPosts)
	if err != nil {
		s.log.Warn("cache load failed", "err", err)
		return PostList{}, false
	}
	if data == nil {
		return PostList{}, false
	}

	var posts []*entity.Post
	if err := json.Unmarshal(data, &posts); err != nil {
		s.log.Warn("cached posts unreadable, refetching", "err", err)
		return PostList{}, false
	}

	// The styler does not survive serialization.
	for _, post := range posts {
		post.SetStyler(s.styler)
	}
	return NewPostList(posts), true
}

func (s *FeedService) cachePosts(ctx context.Context, posts []*entity.Post) {
	data, err := json.Marshal(posts)
	if err != nil {
		s.log.Warn("cache marshal failed", "err", err)
		return
	}
	if err := s.cache.Save(ctx, cacheKeyPosts, data, s.ttl); err != nil {
		s.log.Warn("cache save failed", "err", err)
	}
}

// RenderFeed writes one file per post under
// outputDir/<url stub>/<filename>, substituting each post's values into
// template. Directory creation failures abort; a single post's write
// failure is logged, the batch continues, and the aggregate result is
// an error. filename defaults to DefaultRenderedFilename.
func (s *FeedService) RenderFeed(ctx context.Context, outputDir, template string, bypassCache bool, filename string) error {
	if filename == "" {
		filename = DefaultRenderedFilename
	}

	list, err := s.Posts(ctx, bypassCache)
	if err != nil {
		return err
	}

	failed := 0
	for _, post := range list.All() {
		stub, ok := post.URLStub("")
		if !ok {
			failed++
			s.log.Warn("post has no slug or date, not rendered", "title", post.RawTitle())
			continue
		}

		dir := filepath.Join(outputDir, filepath.FromSlash(stub))
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir %s: %w", dir, err)
		}

		content := textutil.RenderTemplate(template, renderValues(post))
		target := filepath.Join(dir, filename)
		if err := os.WriteFile(target, []byte(content), 0o644); err != nil {
			failed++
			s.log.Warn("post render failed", "path", target, "err", err)
			continue
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d posts failed to render", failed, list.Len())
	}
	return nil
}

// renderValues builds the substitution map for one post. Blank values
// are dropped so their tokens survive verbatim, letting templates tell
// "empty" apart from "missing". The data token carries a JSON export of
// the map.
func renderValues(post *entity.Post) map[string]string {
	values := map[string]string{
		"title":            post.RawTitle(),
		"title_rendered":   post.Title(),
		"date":             post.Date().Format(time.RFC3339),
		"summary":          post.Summary(entity.SummaryOptions{Length: renderSummaryLength, Raw: true, Plain: true}),
		"summary_rendered": post.Summary(entity.SummaryOptions{Length: renderSummaryLength}),
		"content":          post.RawContent(false),
	}
	for key, value := range values {
		if value == "" {
			delete(values, key)
		}
	}

	if data, err := json.Marshal(values); err == nil {
		values["data"] = string(data)
	}
	return values
}

// Paginate returns a new pagination over the feed's current posts.
func (s *FeedService) Paginate(ctx context.Context, pageSize int) (*Pagination, error) {
	list, err := s.Posts(ctx, false)
	if err != nil {
		return nil, err
	}
	return NewPagination(list, pageSize)
}
