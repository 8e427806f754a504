package dashboard

import (
	"time"

	"codeberg.org/krishisakhi/server/farm/crops"
	"codeberg.org/krishisakhi/server/farm/detections"
	"codeberg.org/krishisakhi/server/farm/tips"
	"codeberg.org/krishisakhi/server/farm/users"
	"codeberg.org/krishisakhi/server/farm/weather"
	"codeberg.org/krishisakhi/server/internal/i18n"
)

const (
	activeCropsLimit      = 5
	recentDetectionsLimit = 3
	featuredTipsLimit     = 4
)

// assembles the home screen from every record kind plus a weather brief
type Service struct {
	crops      *crops.Repository
	detections *detections.Repository
	tips       *tips.Repository
	users      *users.Repository
	weather    *weather.Service
	now        func() time.Time
}

type Options struct {
	UserID     string
	Location   string
	Translator i18n.Translator
}

type QuickAction struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
}

type Dashboard struct {
	Greeting         string                 `json:"greeting"`
	GreetingKey      string                 `json:"greeting_key"`
	UserName         string                 `json:"user_name"`
	Subtitle         string                 `json:"subtitle"`
	QuickActions     []QuickAction          `json:"quick_actions"`
	ActiveCrops      []crops.Crop           `json:"active_crops"`
	CropSummary      crops.Summary          `json:"crop_summary"`
	RecentDetections []detections.Detection `json:"recent_detections"`
	FeaturedTips     []tips.Tip             `json:"featured_tips"`
	Weather          *weather.Brief         `json:"weather"`

	weatherErr error
}

// the weather failure behind a null Weather, if any
func (d *Dashboard) WeatherErr() error {
	return d.weatherErr
}
