package metrics

import (
	"context"
	"time"

	"codeberg.org/krishisakhi/server/internal/generation"
)

// counts and times calls through a Generator
type InstrumentedGenerator struct {
	next    generation.Generator
	metrics *Metrics
}

func NewInstrumentedGenerator(next generation.Generator, m *Metrics) *InstrumentedGenerator {
	return &InstrumentedGenerator{next: next, metrics: m}
}

func (g *InstrumentedGenerator) Generate(ctx context.Context, req *generation.Request) (*generation.Response, error) {
	start := time.Now()
	resp, err := g.next.Generate(ctx, req)
	g.metrics.ObserveGeneration(generation.OpGenerate, outcome(err), time.Since(start))

	return resp, err
}

// counts and times calls through an Uploader
type InstrumentedUploader struct {
	next    generation.Uploader
	metrics *Metrics
}

func NewInstrumentedUploader(next generation.Uploader, m *Metrics) *InstrumentedUploader {
	return &InstrumentedUploader{next: next, metrics: m}
}

func (u *InstrumentedUploader) Upload(ctx context.Context, data []byte, fileName string) (*generation.UploadResult, error) {
	start := time.Now()
	result, err := u.next.Upload(ctx, data, fileName)
	u.metrics.ObserveGeneration(generation.OpUpload, outcome(err), time.Since(start))

	return result, err
}

func outcome(err error) string {
	if err == nil {
		return "ok"
	}

	if kind := generation.KindOf(err); kind != "" {
		return string(kind)
	}

	return "error"
}
