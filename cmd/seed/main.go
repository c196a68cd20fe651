// Command seed loads station and channel reference data from a JSON file
// into the database. Running it again refreshes names, coordinates, and
// units without duplicating rows.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/sincov/airq-ingest-service/internal/adapter/postgres"
	"github.com/sincov/airq-ingest-service/internal/config"
	"github.com/sincov/airq-ingest-service/internal/domain"
	"github.com/sincov/airq-ingest-service/internal/observability"
)

type seedFile struct {
	Stations []seedStation `json:"stations"`
}

type seedStation struct {
	RMCABID   int64         `json:"rmcab_id"`
	Name      string        `json:"name"`
	Latitude  float64       `json:"latitude"`
	Longitude float64       `json:"longitude"`
	Channels  []seedChannel `json:"channels"`
}

type seedChannel struct {
	Code string `json:"code"`
	Kind string `json:"kind"`
	Unit string `json:"unit"`
}

func main() {
	file := flag.String("file", "data/stations.json", "path to the stations JSON file")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}
	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)

	if err := run(cfg, logger, *file); err != nil {
		logger.Error("seeding failed", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger, path string) error {
	seed, err := loadSeedFile(path)
	if err != nil {
		return err
	}

	ctx := context.Background()
	store, err := postgres.NewStore(ctx, cfg.DatabaseURL, logger)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.EnsureSchema(ctx); err != nil {
		return err
	}

	channels := 0
	for _, st := range seed.Stations {
		id, err := store.UpsertStation(ctx, domain.Station{
			Name:      st.Name,
			RMCABID:   st.RMCABID,
			Latitude:  st.Latitude,
			Longitude: st.Longitude,
		})
		if err != nil {
			return err
		}

		for _, ch := range st.Channels {
			err := store.UpsertChannel(ctx, domain.Channel{
				StationID: id,
				Kind:      ch.Kind,
				Code:      ch.Code,
				Unit:      ch.Unit,
			})
			if err != nil {
				return err
			}
			channels++
		}
		logger.Info("seeded station", "station", st.Name, "channels", len(st.Channels))
	}

	logger.Info("seeding complete", "stations", len(seed.Stations), "channels", channels)
	return nil
}

func loadSeedFile(path string) (*seedFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}

	var seed seedFile
	if err := json.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("parse seed file %s: %w", path, err)
	}
	if len(seed.Stations) == 0 {
		return nil, fmt.Errorf("seed file %s contains no stations", path)
	}
	for _, st := range seed.Stations {
		if st.RMCABID <= 0 || st.Name == "" {
			return nil, fmt.Errorf("seed file %s: station %q needs a name and a positive rmcab_id", path, st.Name)
		}
	}
	return &seed, nil
}
