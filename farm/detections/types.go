package detections

import (
	"codeberg.org/krishisakhi/server/internal/generation"
	"codeberg.org/krishisakhi/server/internal/store"
)

// store kind for disease detection records
const Kind = "disease_detections"

const (
	SeverityLow      = "low"
	SeverityModerate = "moderate"
	SeverityHigh     = "high"
	SeverityCritical = "critical"
)

type Repository struct {
	store store.Store[Detection]
}

type Detection struct {
	ID                       string   `json:"id"`
	ImageURL                 string   `json:"image_url"`
	DetectedDisease          string   `json:"detected_disease"`
	PlantType                string   `json:"plant_type"`
	ConfidenceScore          float64  `json:"confidence_score"` // 0-100
	Symptoms                 []string `json:"symptoms"`
	TreatmentRecommendations []string `json:"treatment_recommendations"`
	PreventionTips           []string `json:"prevention_tips"`
	Severity                 string   `json:"severity"`
	IsHealthy                bool     `json:"is_healthy"`
	CreatedDate              string   `json:"created_date"`
}

type ListFilter struct {
	Severity string `form:"severity" binding:"omitempty,oneof=low moderate high critical"`
}

// the structured answer requested from the generation service
type Analysis struct {
	DetectedDisease          string   `json:"detected_disease"`
	PlantType                string   `json:"plant_type"`
	ConfidenceScore          float64  `json:"confidence_score"`
	Symptoms                 []string `json:"symptoms"`
	TreatmentRecommendations []string `json:"treatment_recommendations"`
	PreventionTips           []string `json:"prevention_tips"`
	Severity                 string   `json:"severity" jsonschema:"enum=low,enum=moderate,enum=high,enum=critical"`
	IsHealthy                bool     `json:"is_healthy"`
}

// result of one image diagnosis
type Diagnosis struct {
	Analysis
	ImageURL string     `json:"image_url"`
	Record   *Detection `json:"record"`
}

// uploads an image, asks for a structured diagnosis and records it
type Analyzer struct {
	generator generation.Generator
	uploader  generation.Uploader
	repo      *Repository

	// called after a diagnosis is recorded, if set
	OnDiagnosis func(*Detection)
}
