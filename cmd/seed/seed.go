package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"codeberg.org/krishisakhi/server/farm/community"
	"codeberg.org/krishisakhi/server/farm/crops"
	"codeberg.org/krishisakhi/server/farm/detections"
	"codeberg.org/krishisakhi/server/farm/tips"
	"codeberg.org/krishisakhi/server/farm/users"
	"codeberg.org/krishisakhi/server/internal/config"
	"codeberg.org/krishisakhi/server/internal/logger"
	"codeberg.org/krishisakhi/server/internal/store"
)

// per-kind outcome of a seed run
type Result struct {
	Inserted int
	Skipped  int
}

type seeder func(ctx context.Context, backend store.Backend, raw []json.RawMessage, reset bool) (Result, error)

// kinds in the order they are seeded
var seeders = []struct {
	kind string
	seed seeder
}{
	{users.Kind, seedKind[users.User](users.Kind)},
	{crops.Kind, seedKind[crops.Crop](crops.Kind)},
	{community.Kind, seedKind[community.Post](community.Kind)},
	{tips.Kind, seedKind[tips.Tip](tips.Kind)},
	{detections.Kind, seedKind[detections.Detection](detections.Kind)},
}

// loads sample records from flags.Path into backend, keyed by record kind;
// records whose id already exists are skipped so reruns are harmless
func Seed(ctx context.Context, backend store.Backend, flags config.Flags) (map[string]Result, error) {
	data, err := os.ReadFile(flags.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read sample data: %w", err)
	}

	var byKind map[string][]json.RawMessage
	if err := json.Unmarshal(data, &byKind); err != nil {
		return nil, fmt.Errorf("failed to parse sample data: %w", err)
	}

	known := make(map[string]bool, len(seeders))
	results := make(map[string]Result, len(seeders))

	for _, s := range seeders {
		known[s.kind] = true

		raw, ok := byKind[s.kind]
		if !ok {
			continue
		}

		result, err := s.seed(ctx, backend, raw, flags.Clear)
		if err != nil {
			return results, err
		}

		results[s.kind] = result
		logger.Info("seeded records",
			"kind", s.kind,
			"inserted", result.Inserted,
			"skipped", result.Skipped,
		)
	}

	for kind := range byKind {
		if !known[kind] {
			logger.Warn("unknown record kind in sample data, ignoring", "kind", kind)
		}
	}

	return results, nil
}

func seedKind[T any](kind string) seeder {
	return func(ctx context.Context, backend store.Backend, raw []json.RawMessage, reset bool) (Result, error) {
		collection := store.NewCollection[T](backend, kind)

		if reset {
			if err := collection.Clear(ctx); err != nil {
				return Result{}, err
			}

			logger.Info("cleared existing records", "kind", kind)
		}

		var result Result
		for i, r := range raw {
			var record T
			if err := json.Unmarshal(r, &record); err != nil {
				return result, fmt.Errorf("invalid %s record %d: %w", kind, i, err)
			}

			_, err := collection.Create(ctx, record)
			switch {
			case errors.Is(err, store.ErrConflict):
				result.Skipped++
			case err != nil:
				return result, err
			default:
				result.Inserted++
			}
		}

		return result, nil
	}
}
