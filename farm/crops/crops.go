package crops

import (
	"context"
	"math"

	"codeberg.org/krishisakhi/server/internal/store"
)

// growth stages counted as healthy by the health score
var healthyStages = map[string]bool{
	StageVegetative:   true,
	StageFlowering:    true,
	StageFruiting:     true,
	StageHarvestReady: true,
}

func NewRepository(s store.Store[Crop]) *Repository {
	return &Repository{store: s}
}

func (r *Repository) List(ctx context.Context, filter ListFilter, order store.Order, limit int) ([]Crop, error) {
	if filter.Status == "" {
		return r.store.List(ctx, order, limit)
	}

	return r.store.Filter(ctx, store.Criteria{"status": filter.Status}, order, limit)
}

func (r *Repository) Get(ctx context.Context, id string) (*Crop, error) {
	return r.store.Get(ctx, id)
}

// registers a crop; new crops start active at the seedling stage
func (r *Repository) Create(ctx context.Context, req CreateCropRequest) (*Crop, error) {
	crop := Crop{
		Name:                req.Name,
		Variety:             req.Variety,
		PlantingDate:        req.PlantingDate,
		ExpectedHarvestDate: req.ExpectedHarvestDate,
		FieldSize:           req.FieldSize,
		GrowthStage:         req.GrowthStage,
		Location:            req.Location,
		Notes:               req.Notes,
		Status:              req.Status,
	}

	if crop.GrowthStage == "" {
		crop.GrowthStage = StageSeedling
	}

	if crop.Status == "" {
		crop.Status = StatusActive
	}

	return r.store.Create(ctx, crop)
}

func (r *Repository) Update(ctx context.Context, id string, req UpdateCropRequest) (*Crop, error) {
	patch, err := store.PatchFrom(req)
	if err != nil {
		return nil, err
	}

	return r.store.Update(ctx, id, patch)
}

func (r *Repository) SetStatus(ctx context.Context, id, status string) (*Crop, error) {
	return r.store.Update(ctx, id, store.Document{"status": status})
}

func (r *Repository) Delete(ctx context.Context, id string) error {
	return r.store.Delete(ctx, id)
}

// summarizes every stored crop
func (r *Repository) Summary(ctx context.Context) (*Summary, error) {
	all, err := r.store.List(ctx, store.ParseOrder(""), 0)
	if err != nil {
		return nil, err
	}

	summary := Summarize(all)
	return &summary, nil
}

// counts active and harvest-ready crops and computes the health score,
// the rounded percentage of crops in a healthy growth stage (0 when empty)
func Summarize(list []Crop) Summary {
	s := Summary{Total: len(list)}

	healthy := 0
	for _, c := range list {
		if c.Status == StatusActive {
			s.Active++
		}

		if c.GrowthStage == StageHarvestReady {
			s.ReadyToHarvest++
		}

		if healthyStages[c.GrowthStage] {
			healthy++
		}
	}

	if s.Total > 0 {
		s.HealthScore = int(math.Round(float64(healthy) * 100 / float64(s.Total)))
	}

	return s
}
