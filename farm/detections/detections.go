package detections

import (
	"context"

	"codeberg.org/krishisakhi/server/internal/store"
)

func NewRepository(s store.Store[Detection]) *Repository {
	return &Repository{store: s}
}

func (r *Repository) List(ctx context.Context, filter ListFilter, order store.Order, limit int) ([]Detection, error) {
	if filter.Severity == "" {
		return r.store.List(ctx, order, limit)
	}

	return r.store.Filter(ctx, store.Criteria{"severity": filter.Severity}, order, limit)
}

func (r *Repository) Get(ctx context.Context, id string) (*Detection, error) {
	return r.store.Get(ctx, id)
}

func (r *Repository) Create(ctx context.Context, d Detection) (*Detection, error) {
	d.Symptoms = nonNil(d.Symptoms)
	d.TreatmentRecommendations = nonNil(d.TreatmentRecommendations)
	d.PreventionTips = nonNil(d.PreventionTips)

	return r.store.Create(ctx, d)
}

func (r *Repository) Delete(ctx context.Context, id string) error {
	return r.store.Delete(ctx, id)
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}

	return s
}
