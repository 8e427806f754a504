package weather

import (
	"context"
	"encoding/json"
	"testing"

	"codeberg.org/krishisakhi/server/internal/generation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGenerator struct {
	last *generation.Request
	body string
	err  error
}

func (f *fakeGenerator) Generate(_ context.Context, req *generation.Request) (*generation.Response, error) {
	f.last = req
	if f.err != nil {
		return nil, f.err
	}

	return &generation.Response{Body: json.RawMessage(f.body)}, nil
}

func schemaProperties(t *testing.T, raw json.RawMessage) map[string]any {
	t.Helper()

	var schema map[string]any
	require.NoError(t, json.Unmarshal(raw, &schema))

	props, ok := schema["properties"].(map[string]any)
	require.True(t, ok, "schema has properties")

	return props
}

func TestBrief(t *testing.T) {
	gen := &fakeGenerator{body: `{"temperature":28,"humidity":65,"wind_speed":12,"condition":"Sunny","farming_advice":"Water early.","location":"Punjab"}`}
	svc := NewService(gen)

	brief, err := svc.Brief(context.Background(), " Punjab ")
	require.NoError(t, err)

	assert.Equal(t, &Brief{Temperature: 28, Humidity: 65, WindSpeed: 12, Condition: "Sunny", FarmingAdvice: "Water early.", Location: "Punjab"}, brief)

	assert.True(t, gen.last.UseExternalContext)
	assert.Contains(t, gen.last.Prompt, "Location: Punjab")
	require.NoError(t, generation.ValidateSchema(gen.last.ResponseSchema))

	props := schemaProperties(t, gen.last.ResponseSchema)
	assert.Len(t, props, 6)
	assert.Equal(t, map[string]any{"type": "number"}, props["temperature"])
}

func TestBrief_WithoutLocation(t *testing.T) {
	gen := &fakeGenerator{body: `{}`}

	_, err := NewService(gen).Brief(context.Background(), "")
	require.NoError(t, err)

	assert.Equal(t, briefPrompt, gen.last.Prompt)
}

func TestReport(t *testing.T) {
	gen := &fakeGenerator{body: `{
		"current": {"temperature": 30, "condition": "Partly cloudy", "uv_index": 7, "location": "Ludhiana"},
		"forecast": [{"day": "Monday", "high_temp": 33, "low_temp": 22, "precipitation_chance": 20}],
		"farming_advice": "Spray in the evening.",
		"best_times": {"watering": "6-8 AM"},
		"risks": {"pest_risk": "moderate"}
	}`}

	report, err := NewService(gen).Report(context.Background(), "Ludhiana")
	require.NoError(t, err)

	assert.Equal(t, "Partly cloudy", report.Current.Condition)
	require.Len(t, report.Forecast, 1)
	assert.Equal(t, 33.0, report.Forecast[0].HighTemp)
	assert.Equal(t, "6-8 AM", report.BestTimes.Watering)
	assert.Equal(t, "moderate", report.Risks.PestRisk)
	assert.Equal(t, []string{}, report.Alerts)

	props := schemaProperties(t, gen.last.ResponseSchema)
	for _, key := range []string{"current", "forecast", "farming_advice", "alerts", "best_times", "risks"} {
		assert.Contains(t, props, key)
	}
	assert.True(t, gen.last.UseExternalContext)
}

func TestReport_ErrorsPassThrough(t *testing.T) {
	gen := &fakeGenerator{err: &generation.Error{Op: generation.OpGenerate, Kind: generation.KindUpstream, Status: 500}}

	_, err := NewService(gen).Report(context.Background(), "")
	assert.ErrorIs(t, err, generation.ErrUpstream)
}

func TestReport_WrongShapeIsMalformed(t *testing.T) {
	gen := &fakeGenerator{body: `{"forecast": {"day": "Monday"}}`}

	_, err := NewService(gen).Report(context.Background(), "")
	assert.ErrorIs(t, err, generation.ErrMalformedResponse)
}
