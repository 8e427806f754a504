package community

import (
	"context"
	"strings"

	"codeberg.org/krishisakhi/server/internal/store"
)

func NewRepository(s store.Store[Post]) *Repository {
	return &Repository{store: s}
}

// lists posts, optionally narrowed by category and a free-text search
// over title, content and tags
func (r *Repository) List(ctx context.Context, filter ListFilter, order store.Order, limit int) ([]Post, error) {
	var criteria store.Criteria
	if filter.Category != "" {
		criteria = store.Criteria{"category": filter.Category}
	}

	query := strings.ToLower(strings.TrimSpace(filter.Search))
	if query == "" {
		return r.store.Filter(ctx, criteria, order, limit)
	}

	// search runs in process, so the limit applies after matching
	posts, err := r.store.Filter(ctx, criteria, order, 0)
	if err != nil {
		return nil, err
	}

	matched := make([]Post, 0, len(posts))
	for _, p := range posts {
		if p.matches(query) {
			matched = append(matched, p)
		}
	}

	if limit > 0 && len(matched) > limit {
		matched = matched[:limit]
	}

	return matched, nil
}

func (p *Post) matches(query string) bool {
	if strings.Contains(strings.ToLower(p.Title), query) || strings.Contains(strings.ToLower(p.Content), query) {
		return true
	}

	for _, tag := range p.Tags {
		if strings.Contains(strings.ToLower(tag), query) {
			return true
		}
	}

	return false
}

func (r *Repository) Get(ctx context.Context, id string) (*Post, error) {
	return r.store.Get(ctx, id)
}

// publishes a post by author; counters start at zero and the post is open
func (r *Repository) Create(ctx context.Context, author string, req CreatePostRequest) (*Post, error) {
	if author == "" {
		author = DefaultAuthor
	}

	post := Post{
		Title:     req.Title,
		Content:   req.Content,
		Category:  req.Category,
		Location:  req.Location,
		Tags:      cleanTags(req.Tags),
		CreatedBy: author,
	}

	if post.Category == "" {
		post.Category = CategoryQuestion
	}

	return r.store.Create(ctx, post)
}

func (r *Repository) Update(ctx context.Context, id string, req UpdatePostRequest) (*Post, error) {
	if req.Tags != nil {
		req.Tags = cleanTags(req.Tags)
	}

	patch, err := store.PatchFrom(req)
	if err != nil {
		return nil, err
	}

	return r.store.Update(ctx, id, patch)
}

func (r *Repository) Delete(ctx context.Context, id string) error {
	return r.store.Delete(ctx, id)
}

// adds one like; the backend increments atomically so likes from
// several server instances are never lost
func (r *Repository) Like(ctx context.Context, id string) (*Post, error) {
	return r.store.Increment(ctx, id, fieldLikesCount, 1)
}

// marks a post as resolved
func (r *Repository) Resolve(ctx context.Context, id string) (*Post, error) {
	return r.store.Update(ctx, id, store.Document{"is_resolved": true})
}

func (r *Repository) Stats(ctx context.Context) (*Stats, error) {
	posts, err := r.store.List(ctx, store.ParseOrder(""), 0)
	if err != nil {
		return nil, err
	}

	stats := &Stats{TotalPosts: len(posts)}
	for _, p := range posts {
		if p.Category == CategoryQuestion {
			stats.Questions++
		}

		if p.IsResolved {
			stats.Resolved++
		}

		stats.TotalLikes += p.LikesCount
	}

	return stats, nil
}

// trims tags and drops empty ones; never nil so JSON shows []
func cleanTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		if tag = strings.TrimSpace(tag); tag != "" {
			out = append(out, tag)
		}
	}

	return out
}
