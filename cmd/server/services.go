package main

import (
	"fmt"

	"codeberg.org/krishisakhi/server/farm/dashboard"
	"codeberg.org/krishisakhi/server/farm/detections"
	"codeberg.org/krishisakhi/server/farm/weather"
	"codeberg.org/krishisakhi/server/internal/config"
	"codeberg.org/krishisakhi/server/internal/generation"
	"codeberg.org/krishisakhi/server/internal/logger"
	"codeberg.org/krishisakhi/server/internal/metrics"
	"golang.org/x/time/rate"
)

// creates the generation client and the services that call it
func InitializeServices(cfg *config.Config, repos *Repositories, m *metrics.Metrics) (*Services, error) {
	client, err := generation.NewClient(generation.Config{
		BaseURL:           cfg.GenerationBaseURL,
		APIKey:            cfg.GenerationAPIKey,
		Timeout:           cfg.GenerationTimeout,
		ValidateResponses: cfg.GenerationValidateResponses,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create generation client: %w", err)
	}

	var limiter *rate.Limiter
	if cfg.GenerationRateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.GenerationRateLimit), cfg.GenerationRateBurst)
	}

	policy := generation.DefaultRetryPolicy()
	policy.MaxAttempts = cfg.GenerationMaxAttempts

	generator := metrics.NewInstrumentedGenerator(generation.NewResilient(client, policy, limiter), m)
	uploader := metrics.NewInstrumentedUploader(client, m)

	analyzer := detections.NewAnalyzer(generator, uploader, repos.Detections)
	analyzer.OnDiagnosis = func(d *detections.Detection) {
		m.IncDetection(d.Severity)
		logger.Debug("diagnosis recorded",
			"detection_id", d.ID,
			"disease", d.DetectedDisease,
			"severity", d.Severity,
		)
	}

	weatherSvc := weather.NewService(generator)

	logger.Info("generation client initialized",
		"base_url", client.BaseURL(),
		"max_attempts", policy.MaxAttempts,
		"rate_limit", cfg.GenerationRateLimit,
		"validate_responses", cfg.GenerationValidateResponses,
	)

	return &Services{
		Generator: generator,
		Uploader:  uploader,
		Analyzer:  analyzer,
		Weather:   weatherSvc,
		Dashboard: dashboard.NewService(repos.Crops, repos.Detections, repos.Tips, repos.Users, weatherSvc),
	}, nil
}
