package tips

import (
	"codeberg.org/krishisakhi/server/internal/store"
	"github.com/yuin/goldmark"
)

// store kind for expert tips
const Kind = "expert_tips"

const (
	CategoryPestControl       = "pest_control"
	CategoryFertilization     = "fertilization"
	CategoryIrrigation        = "irrigation"
	CategoryPlanting          = "planting"
	CategoryHarvesting        = "harvesting"
	CategoryDiseasePrevention = "disease_prevention"
	CategorySoilManagement    = "soil_management"
)

const (
	DifficultyBeginner     = "beginner"
	DifficultyIntermediate = "intermediate"
	DifficultyAdvanced     = "advanced"
)

const (
	SeasonSpring     = "spring"
	SeasonSummer     = "summer"
	SeasonAutumn     = "autumn"
	SeasonWinter     = "winter"
	SeasonAllSeasons = "all_seasons"
)

type Repository struct {
	store    store.Store[Tip]
	markdown goldmark.Markdown
}

type Tip struct {
	ID              string   `json:"id"`
	Title           string   `json:"title"`
	Content         string   `json:"content"` // markdown
	Category        string   `json:"category"`
	DifficultyLevel string   `json:"difficulty_level"`
	EstimatedCost   string   `json:"estimated_cost,omitempty"`
	Season          string   `json:"season"`
	CropTypes       []string `json:"crop_types"`
	ImageURL        string   `json:"image_url,omitempty"`
	CreatedDate     string   `json:"created_date"`
	UpdatedDate     string   `json:"updated_date,omitempty"`
}

// a tip with its content rendered for display
type Detail struct {
	Tip
	ContentHTML string `json:"content_html"`
}

type CreateTipRequest struct {
	Title           string   `json:"title" binding:"required,max=200"`
	Content         string   `json:"content" binding:"required,max=20000"`
	Category        string   `json:"category" binding:"required,oneof=pest_control fertilization irrigation planting harvesting disease_prevention soil_management"`
	DifficultyLevel string   `json:"difficulty_level,omitempty" binding:"omitempty,oneof=beginner intermediate advanced"`
	EstimatedCost   string   `json:"estimated_cost,omitempty" binding:"omitempty,oneof=low medium high"`
	Season          string   `json:"season,omitempty" binding:"omitempty,oneof=spring summer autumn winter all_seasons"`
	CropTypes       []string `json:"crop_types,omitempty" binding:"max=20,dive,max=50"`
	ImageURL        string   `json:"image_url,omitempty" binding:"max=500"`
}

type UpdateTipRequest struct {
	Title           *string  `json:"title,omitempty" binding:"omitempty,min=1,max=200"`
	Content         *string  `json:"content,omitempty" binding:"omitempty,min=1,max=20000"`
	Category        *string  `json:"category,omitempty" binding:"omitempty,oneof=pest_control fertilization irrigation planting harvesting disease_prevention soil_management"`
	DifficultyLevel *string  `json:"difficulty_level,omitempty" binding:"omitempty,oneof=beginner intermediate advanced"`
	EstimatedCost   *string  `json:"estimated_cost,omitempty" binding:"omitempty,oneof=low medium high"`
	Season          *string  `json:"season,omitempty" binding:"omitempty,oneof=spring summer autumn winter all_seasons"`
	CropTypes       []string `json:"crop_types,omitempty" binding:"max=20,dive,max=50"`
	ImageURL        *string  `json:"image_url,omitempty" binding:"omitempty,max=500"`
}

type ListFilter struct {
	Category   string `form:"category" binding:"omitempty,oneof=pest_control fertilization irrigation planting harvesting disease_prevention soil_management"`
	Difficulty string `form:"difficulty" binding:"omitempty,oneof=beginner intermediate advanced"`
	Season     string `form:"season" binding:"omitempty,oneof=spring summer autumn winter all_seasons"`
	Search     string `form:"q" binding:"max=100"`
}
