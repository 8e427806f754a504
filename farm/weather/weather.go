package weather

import (
	"context"
	"encoding/json"
	"strings"

	"codeberg.org/krishisakhi/server/internal/generation"
)

const briefPrompt = "Get current weather information for farming. Include temperature, humidity, wind speed, condition, and brief farming advice for today's weather conditions."

const reportPrompt = `Get comprehensive weather information for farming including:
- Current weather conditions (temperature, humidity, wind, pressure)
- 7-day forecast with detailed daily information
- UV index and visibility
- Sunrise and sunset times
- Specific farming advice based on current weather
- Any weather alerts or warnings for farmers
- Best times for different farming activities today
- Soil temperature and moisture recommendations
- Pest and disease risk assessment based on weather`

var (
	briefSchema  = generation.SchemaFor(Brief{})
	reportSchema = generation.SchemaFor(Report{})
)

func NewService(generator generation.Generator) *Service {
	return &Service{generator: generator}
}

// current conditions and one line of advice
func (s *Service) Brief(ctx context.Context, location string) (*Brief, error) {
	var brief Brief
	if err := s.ask(ctx, withLocation(briefPrompt, location), briefSchema, &brief); err != nil {
		return nil, err
	}

	return &brief, nil
}

// current conditions, a 7-day forecast, alerts, best times and risks
func (s *Service) Report(ctx context.Context, location string) (*Report, error) {
	var report Report
	if err := s.ask(ctx, withLocation(reportPrompt, location), reportSchema, &report); err != nil {
		return nil, err
	}

	if report.Forecast == nil {
		report.Forecast = []ForecastDay{}
	}

	if report.Alerts == nil {
		report.Alerts = []string{}
	}

	return &report, nil
}

func (s *Service) ask(ctx context.Context, prompt string, schema json.RawMessage, v any) error {
	resp, err := s.generator.Generate(ctx, &generation.Request{
		Prompt:             prompt,
		ResponseSchema:     schema,
		UseExternalContext: true,
	})
	if err != nil {
		return err
	}

	if err := resp.Decode(v); err != nil {
		return &generation.Error{Op: generation.OpGenerate, Kind: generation.KindMalformedResponse, Err: err}
	}

	return nil
}

func withLocation(prompt, location string) string {
	location = strings.TrimSpace(location)
	if location == "" {
		return prompt
	}

	return prompt + "\nLocation: " + location
}
