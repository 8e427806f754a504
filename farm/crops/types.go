package crops

import (
	"codeberg.org/krishisakhi/server/internal/store"
)

// store kind for crop records
const Kind = "crops"

const (
	StatusActive    = "active"
	StatusHarvested = "harvested"
	StatusFailed    = "failed"
)

const (
	StageSeedling     = "seedling"
	StageVegetative   = "vegetative"
	StageFlowering    = "flowering"
	StageFruiting     = "fruiting"
	StageHarvestReady = "harvest_ready"
)

type Repository struct {
	store store.Store[Crop]
}

type Crop struct {
	ID                  string  `json:"id"`
	Name                string  `json:"name"`
	Variety             string  `json:"variety,omitempty"`
	PlantingDate        string  `json:"planting_date,omitempty"`
	ExpectedHarvestDate string  `json:"expected_harvest_date,omitempty"`
	FieldSize           float64 `json:"field_size"` // acres
	GrowthStage         string  `json:"growth_stage"`
	Location            string  `json:"location,omitempty"`
	Notes               string  `json:"notes,omitempty"`
	Status              string  `json:"status"`
	CreatedDate         string  `json:"created_date"`
	UpdatedDate         string  `json:"updated_date,omitempty"`
}

type CreateCropRequest struct {
	Name                string  `json:"name" binding:"required,max=100"`
	Variety             string  `json:"variety,omitempty" binding:"max=100"`
	PlantingDate        string  `json:"planting_date,omitempty" binding:"omitempty,datetime=2006-01-02"`
	ExpectedHarvestDate string  `json:"expected_harvest_date,omitempty" binding:"omitempty,datetime=2006-01-02"`
	FieldSize           float64 `json:"field_size" binding:"gte=0"`
	GrowthStage         string  `json:"growth_stage,omitempty" binding:"omitempty,oneof=seedling vegetative flowering fruiting harvest_ready"`
	Location            string  `json:"location,omitempty" binding:"max=200"`
	Notes               string  `json:"notes,omitempty" binding:"max=2000"`
	Status              string  `json:"status,omitempty" binding:"omitempty,oneof=active harvested failed"`
}

type UpdateCropRequest struct {
	Name                *string  `json:"name,omitempty" binding:"omitempty,min=1,max=100"`
	Variety             *string  `json:"variety,omitempty" binding:"omitempty,max=100"`
	PlantingDate        *string  `json:"planting_date,omitempty" binding:"omitempty,datetime=2006-01-02"`
	ExpectedHarvestDate *string  `json:"expected_harvest_date,omitempty" binding:"omitempty,datetime=2006-01-02"`
	FieldSize           *float64 `json:"field_size,omitempty" binding:"omitempty,gte=0"`
	GrowthStage         *string  `json:"growth_stage,omitempty" binding:"omitempty,oneof=seedling vegetative flowering fruiting harvest_ready"`
	Location            *string  `json:"location,omitempty" binding:"omitempty,max=200"`
	Notes               *string  `json:"notes,omitempty" binding:"omitempty,max=2000"`
	Status              *string  `json:"status,omitempty" binding:"omitempty,oneof=active harvested failed"`
}

type SetStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=active harvested failed"`
}

type ListFilter struct {
	Status string `form:"status" binding:"omitempty,oneof=active harvested failed"`
}

type Summary struct {
	Total          int `json:"total"`
	Active         int `json:"active"`
	ReadyToHarvest int `json:"ready_to_harvest"`
	HealthScore    int `json:"health_score"` // percent of crops past the seedling stage
}
