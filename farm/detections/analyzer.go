package detections

import (
	"context"
	"fmt"
	"slices"

	"codeberg.org/krishisakhi/server/internal/generation"
)

const diagnosisPrompt = `Analyze this plant image for diseases, pests, or health issues. Provide detailed analysis including:
- Detected disease or issue (if any)
- Plant type identification
- Confidence level (0-100)
- Visible symptoms
- Treatment recommendations
- Prevention tips
- Severity assessment
Be very thorough and provide practical farming advice.`

var (
	diagnosisSchema = generation.SchemaFor(Analysis{})

	severities = []string{SeverityLow, SeverityModerate, SeverityHigh, SeverityCritical}
)

func NewAnalyzer(generator generation.Generator, uploader generation.Uploader, repo *Repository) *Analyzer {
	return &Analyzer{
		generator: generator,
		uploader:  uploader,
		repo:      repo,
	}
}

// uploads image, requests a diagnosis for it and persists the result;
// generation failures are returned unchanged so callers can classify them
func (a *Analyzer) Diagnose(ctx context.Context, image []byte, fileName string) (*Diagnosis, error) {
	uploaded, err := a.uploader.Upload(ctx, image, fileName)
	if err != nil {
		return nil, err
	}

	resp, err := a.generator.Generate(ctx, &generation.Request{
		Prompt:         diagnosisPrompt,
		ResponseSchema: diagnosisSchema,
		Attachments:    []string{uploaded.URL},
	})
	if err != nil {
		return nil, err
	}

	var analysis Analysis
	if err := resp.Decode(&analysis); err != nil {
		return nil, &generation.Error{Op: generation.OpGenerate, Kind: generation.KindMalformedResponse, Err: err}
	}

	record, err := a.repo.Create(ctx, Detection{
		ImageURL:                 uploaded.URL,
		DetectedDisease:          analysis.DetectedDisease,
		PlantType:                analysis.PlantType,
		ConfidenceScore:          clampConfidence(analysis.ConfidenceScore),
		Symptoms:                 analysis.Symptoms,
		TreatmentRecommendations: analysis.TreatmentRecommendations,
		PreventionTips:           analysis.PreventionTips,
		Severity:                 normalizeSeverity(analysis.Severity),
		IsHealthy:                analysis.IsHealthy,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to record diagnosis: %w", err)
	}

	if a.OnDiagnosis != nil {
		a.OnDiagnosis(record)
	}

	return &Diagnosis{
		Analysis: analysis,
		ImageURL: uploaded.URL,
		Record:   record,
	}, nil
}

func clampConfidence(score float64) float64 {
	return min(max(score, 0), 100)
}

// unknown severities are stored empty rather than invented
func normalizeSeverity(s string) string {
	if slices.Contains(severities, s) {
		return s
	}

	return ""
}
