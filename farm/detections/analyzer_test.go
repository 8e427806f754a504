package detections

import (
	"context"
	"encoding/json"
	"testing"

	"codeberg.org/krishisakhi/server/internal/generation"
	"codeberg.org/krishisakhi/server/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUploader struct {
	calls    int
	fileName string
	err      error
}

func (f *fakeUploader) Upload(_ context.Context, _ []byte, fileName string) (*generation.UploadResult, error) {
	f.calls++
	f.fileName = fileName

	if f.err != nil {
		return nil, f.err
	}

	return &generation.UploadResult{URL: "https://files.example/" + fileName}, nil
}

type fakeGenerator struct {
	calls int
	last  *generation.Request
	body  string
	err   error
}

func (f *fakeGenerator) Generate(_ context.Context, req *generation.Request) (*generation.Response, error) {
	f.calls++
	f.last = req

	if f.err != nil {
		return nil, f.err
	}

	return &generation.Response{Body: json.RawMessage(f.body)}, nil
}

const earlyBlight = `{
	"detected_disease": "Early Blight",
	"plant_type": "Tomato",
	"confidence_score": 85,
	"symptoms": ["Yellow spots on leaves", "Brown lesions"],
	"treatment_recommendations": ["Apply copper fungicide spray"],
	"prevention_tips": ["Rotate crops annually"],
	"severity": "moderate",
	"is_healthy": false
}`

func newTestAnalyzer(t *testing.T, gen *fakeGenerator, up *fakeUploader) (*Analyzer, *Repository) {
	t.Helper()

	repo := NewRepository(store.NewCollection[Detection](store.NewMemoryBackend(), Kind))
	return NewAnalyzer(gen, up, repo), repo
}

func TestDiagnose_UploadsGeneratesAndRecords(t *testing.T) {
	gen := &fakeGenerator{body: earlyBlight}
	up := &fakeUploader{}
	analyzer, repo := newTestAnalyzer(t, gen, up)

	var observed *Detection
	analyzer.OnDiagnosis = func(d *Detection) { observed = d }

	diagnosis, err := analyzer.Diagnose(context.Background(), []byte("jpeg"), "leaf.jpg")
	require.NoError(t, err)

	assert.Equal(t, "leaf.jpg", up.fileName)
	assert.Equal(t, []string{"https://files.example/leaf.jpg"}, gen.last.Attachments)
	assert.True(t, gen.last.HasSchema())
	assert.False(t, gen.last.UseExternalContext)
	require.NoError(t, generation.ValidateSchema(gen.last.ResponseSchema))

	assert.Equal(t, "Early Blight", diagnosis.DetectedDisease)
	assert.Equal(t, "https://files.example/leaf.jpg", diagnosis.ImageURL)
	require.NotNil(t, diagnosis.Record)
	assert.Equal(t, SeverityModerate, diagnosis.Record.Severity)
	assert.Equal(t, 85.0, diagnosis.Record.ConfidenceScore)
	assert.Equal(t, diagnosis.Record, observed)

	stored, err := repo.Get(context.Background(), diagnosis.Record.ID)
	require.NoError(t, err)
	assert.Equal(t, "https://files.example/leaf.jpg", stored.ImageURL)
	assert.Equal(t, []string{"Yellow spots on leaves", "Brown lesions"}, stored.Symptoms)
}

func TestDiagnose_UploadFailureSkipsGeneration(t *testing.T) {
	gen := &fakeGenerator{body: earlyBlight}
	up := &fakeUploader{err: &generation.Error{Op: generation.OpUpload, Kind: generation.KindUpstream, Status: 413}}
	analyzer, repo := newTestAnalyzer(t, gen, up)

	_, err := analyzer.Diagnose(context.Background(), []byte("jpeg"), "leaf.jpg")

	assert.ErrorIs(t, err, &generation.Error{Kind: generation.KindUpstream, Status: 413})
	assert.Zero(t, gen.calls)

	records, err := repo.List(context.Background(), ListFilter{}, store.ParseOrder(""), 0)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestDiagnose_GenerationErrorsPassThrough(t *testing.T) {
	gen := &fakeGenerator{err: &generation.Error{Op: generation.OpGenerate, Kind: generation.KindNetwork}}
	analyzer, _ := newTestAnalyzer(t, gen, &fakeUploader{})

	_, err := analyzer.Diagnose(context.Background(), []byte("jpeg"), "leaf.jpg")
	assert.ErrorIs(t, err, generation.ErrNetwork)
}

func TestDiagnose_WrongShapeIsMalformed(t *testing.T) {
	gen := &fakeGenerator{body: `{"symptoms": "not a list"}`}
	analyzer, _ := newTestAnalyzer(t, gen, &fakeUploader{})

	_, err := analyzer.Diagnose(context.Background(), []byte("jpeg"), "leaf.jpg")
	assert.ErrorIs(t, err, generation.ErrMalformedResponse)
}

func TestDiagnose_NormalizesOutOfRangeValues(t *testing.T) {
	gen := &fakeGenerator{body: `{"detected_disease": "None", "confidence_score": 140, "severity": "extreme", "is_healthy": true}`}
	analyzer, _ := newTestAnalyzer(t, gen, &fakeUploader{})

	diagnosis, err := analyzer.Diagnose(context.Background(), []byte("jpeg"), "leaf.jpg")
	require.NoError(t, err)

	assert.Equal(t, 100.0, diagnosis.Record.ConfidenceScore)
	assert.Empty(t, diagnosis.Record.Severity)
	assert.True(t, diagnosis.Record.IsHealthy)
	assert.Equal(t, []string{}, diagnosis.Record.Symptoms)
}

func TestList_FiltersBySeverity(t *testing.T) {
	repo := NewRepository(store.NewCollection[Detection](store.NewMemoryBackend(), Kind))
	ctx := context.Background()

	_, err := repo.Create(ctx, Detection{DetectedDisease: "Rust", Severity: SeverityHigh})
	require.NoError(t, err)
	_, err = repo.Create(ctx, Detection{DetectedDisease: "Early Blight", Severity: SeverityModerate})
	require.NoError(t, err)

	high, err := repo.List(ctx, ListFilter{Severity: SeverityHigh}, store.ParseOrder(""), 0)
	require.NoError(t, err)
	require.Len(t, high, 1)
	assert.Equal(t, "Rust", high[0].DetectedDisease)
}
