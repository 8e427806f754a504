package tips

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"codeberg.org/krishisakhi/server/internal/store"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

func NewRepository(s store.Store[Tip]) *Repository {
	return &Repository{
		store: s,
		// raw HTML in tip content is dropped, not rendered
		markdown: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithRendererOptions(html.WithHardWraps()),
		),
	}
}

// lists tips; a season filter also matches all-season tips and search
// covers title, content and crop types
func (r *Repository) List(ctx context.Context, filter ListFilter, order store.Order, limit int) ([]Tip, error) {
	criteria := store.Criteria{}
	if filter.Category != "" {
		criteria["category"] = filter.Category
	}

	if filter.Difficulty != "" {
		criteria["difficulty_level"] = filter.Difficulty
	}

	query := strings.ToLower(strings.TrimSpace(filter.Search))
	inProcess := query != "" || (filter.Season != "" && filter.Season != SeasonAllSeasons)

	if !inProcess {
		if filter.Season == SeasonAllSeasons {
			criteria["season"] = SeasonAllSeasons
		}

		return r.store.Filter(ctx, criteria, order, limit)
	}

	all, err := r.store.Filter(ctx, criteria, order, 0)
	if err != nil {
		return nil, err
	}

	matched := make([]Tip, 0, len(all))
	for _, tip := range all {
		if tip.inSeason(filter.Season) && tip.matches(query) {
			matched = append(matched, tip)
		}
	}

	if limit > 0 && len(matched) > limit {
		matched = matched[:limit]
	}

	return matched, nil
}

func (t *Tip) inSeason(season string) bool {
	return season == "" || t.Season == season || t.Season == SeasonAllSeasons
}

func (t *Tip) matches(query string) bool {
	if query == "" {
		return true
	}

	if strings.Contains(strings.ToLower(t.Title), query) || strings.Contains(strings.ToLower(t.Content), query) {
		return true
	}

	for _, crop := range t.CropTypes {
		if strings.Contains(strings.ToLower(crop), query) {
			return true
		}
	}

	return false
}

func (r *Repository) Get(ctx context.Context, id string) (*Tip, error) {
	return r.store.Get(ctx, id)
}

// returns a tip with its markdown content rendered to HTML
func (r *Repository) GetDetail(ctx context.Context, id string) (*Detail, error) {
	tip, err := r.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	rendered, err := r.Render(tip.Content)
	if err != nil {
		return nil, err
	}

	return &Detail{Tip: *tip, ContentHTML: rendered}, nil
}

// converts markdown to HTML
func (r *Repository) Render(content string) (string, error) {
	var buf bytes.Buffer
	if err := r.markdown.Convert([]byte(content), &buf); err != nil {
		return "", fmt.Errorf("failed to render tip content: %w", err)
	}

	return buf.String(), nil
}

func (r *Repository) Create(ctx context.Context, req CreateTipRequest) (*Tip, error) {
	tip := Tip{
		Title:           req.Title,
		Content:         req.Content,
		Category:        req.Category,
		DifficultyLevel: req.DifficultyLevel,
		EstimatedCost:   req.EstimatedCost,
		Season:          req.Season,
		CropTypes:       req.CropTypes,
		ImageURL:        req.ImageURL,
	}

	if tip.DifficultyLevel == "" {
		tip.DifficultyLevel = DifficultyBeginner
	}

	if tip.Season == "" {
		tip.Season = SeasonAllSeasons
	}

	if tip.CropTypes == nil {
		tip.CropTypes = []string{}
	}

	return r.store.Create(ctx, tip)
}

func (r *Repository) Update(ctx context.Context, id string, req UpdateTipRequest) (*Tip, error) {
	patch, err := store.PatchFrom(req)
	if err != nil {
		return nil, err
	}

	return r.store.Update(ctx, id, patch)
}

func (r *Repository) Delete(ctx context.Context, id string) error {
	return r.store.Delete(ctx, id)
}
