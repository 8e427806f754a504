package weather

import (
	"codeberg.org/krishisakhi/server/internal/generation"
)

// asks the generation service for weather synthesized from web context
type Service struct {
	generator generation.Generator
}

// short current-conditions summary shown on the dashboard
type Brief struct {
	Temperature   float64 `json:"temperature"`
	Humidity      float64 `json:"humidity"`
	WindSpeed     float64 `json:"wind_speed"`
	Condition     string  `json:"condition"`
	FarmingAdvice string  `json:"farming_advice"`
	Location      string  `json:"location"`
}

type Current struct {
	Temperature   float64 `json:"temperature"`
	Condition     string  `json:"condition"`
	Humidity      float64 `json:"humidity"`
	WindSpeed     float64 `json:"wind_speed"`
	WindDirection string  `json:"wind_direction"`
	Pressure      float64 `json:"pressure"`
	UVIndex       float64 `json:"uv_index"`
	Visibility    float64 `json:"visibility"`
	Sunrise       string  `json:"sunrise"`
	Sunset        string  `json:"sunset"`
	Location      string  `json:"location"`
}

type ForecastDay struct {
	Day                 string  `json:"day"`
	Date                string  `json:"date"`
	HighTemp            float64 `json:"high_temp"`
	LowTemp             float64 `json:"low_temp"`
	Condition           string  `json:"condition"`
	PrecipitationChance float64 `json:"precipitation_chance"`
	WindSpeed           float64 `json:"wind_speed"`
	Humidity            float64 `json:"humidity"`
}

type BestTimes struct {
	Watering   string `json:"watering"`
	Spraying   string `json:"spraying"`
	Harvesting string `json:"harvesting"`
	Planting   string `json:"planting"`
}

type Risks struct {
	PestRisk    string `json:"pest_risk"`
	DiseaseRisk string `json:"disease_risk"`
	FrostRisk   string `json:"frost_risk"`
}

// full farming weather report
type Report struct {
	Current       Current       `json:"current"`
	Forecast      []ForecastDay `json:"forecast"`
	FarmingAdvice string        `json:"farming_advice"`
	Alerts        []string      `json:"alerts"`
	BestTimes     BestTimes     `json:"best_times"`
	Risks         Risks         `json:"risks"`
}

type Query struct {
	Location string `form:"location" binding:"max=200"`
}
