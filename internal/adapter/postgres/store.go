// Package postgres persists stations, channels, and readings in PostgreSQL.
package postgres

import (
	"context"
	_ "embed"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sincov/airq-ingest-service/internal/domain"
)

//go:embed schema.sql
var schemaDDL string

// Store wraps a pgx connection pool with the queries the ingestion pipeline
// and the seeder need. It implements pipeline.ReferenceStore and
// pipeline.ReadingWriter.
type Store struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

// NewStore connects to the database and verifies the connection. A failed
// ping here aborts startup; losing the store at cycle start is the one
// pipeline error that is allowed to stop a cycle.
func NewStore(ctx context.Context, dsn string, logger *slog.Logger) (*Store, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return &Store{pool: pool, logger: logger}, nil
}

// Close releases the connection pool.
func (s *Store) Close() {
	s.pool.Close()
}

// Ping reports whether the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// EnsureSchema applies the embedded DDL. All statements are idempotent.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schemaDDL); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

// ListStations returns all stations, ordered by id for stable cycle logs.
func (s *Store) ListStations(ctx context.Context) ([]domain.Station, error) {
	rows, err := s.pool.Query(ctx, `
SELECT id, name, rmcab_id, latitude, longitude
FROM stations
ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list stations: %w", err)
	}
	defer rows.Close()

	var stations []domain.Station
	for rows.Next() {
		var st domain.Station
		if err := rows.Scan(&st.ID, &st.Name, &st.RMCABID, &st.Latitude, &st.Longitude); err != nil {
			return nil, fmt.Errorf("scan station: %w", err)
		}
		stations = append(stations, st)
	}
	return stations, rows.Err()
}

// ListChannels returns the channels belonging to one station.
func (s *Store) ListChannels(ctx context.Context, stationID int64) ([]domain.Channel, error) {
	rows, err := s.pool.Query(ctx, `
SELECT id, station_id, kind, COALESCE(code, ''), COALESCE(unit, '')
FROM channels
WHERE station_id = $1
ORDER BY id`, stationID)
	if err != nil {
		return nil, fmt.Errorf("list channels for station %d: %w", stationID, err)
	}
	defer rows.Close()

	var channels []domain.Channel
	for rows.Next() {
		var ch domain.Channel
		if err := rows.Scan(&ch.ID, &ch.StationID, &ch.Kind, &ch.Code, &ch.Unit); err != nil {
			return nil, fmt.Errorf("scan channel: %w", err)
		}
		channels = append(channels, ch)
	}
	return channels, rows.Err()
}

// InsertReadings persists a batch of readings inside one transaction,
// skipping any (channel, taken_at) pair that already exists. It returns the
// number of newly inserted rows; a failure mid-batch rolls the whole batch
// back.
func (s *Store) InsertReadings(ctx context.Context, readings []domain.Reading) (int, error) {
	if len(readings) == 0 {
		return 0, nil
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin readings batch: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // no-op after commit

	batch := &pgx.Batch{}
	const query = `INSERT INTO readings (channel_id, taken_at, value)
VALUES ($1, $2, $3)
ON CONFLICT (channel_id, taken_at) DO NOTHING`
	for _, r := range readings {
		batch.Queue(query, r.ChannelID, r.TakenAt, r.Value)
	}

	res := tx.SendBatch(ctx, batch)
	inserted := 0
	for range readings {
		tag, err := res.Exec()
		if err != nil {
			_ = res.Close()
			return 0, fmt.Errorf("insert reading: %w", err)
		}
		inserted += int(tag.RowsAffected())
	}
	if err := res.Close(); err != nil {
		return 0, fmt.Errorf("close readings batch: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit readings batch: %w", err)
	}
	return inserted, nil
}

// UpsertStation inserts or refreshes one station keyed by its upstream id
// and returns the local id. Used by the seeder only.
func (s *Store) UpsertStation(ctx context.Context, st domain.Station) (int64, error) {
	var id int64
	err := s.pool.QueryRow(ctx, `
INSERT INTO stations (name, rmcab_id, latitude, longitude)
VALUES ($1, $2, $3, $4)
ON CONFLICT (rmcab_id) DO UPDATE
SET name = EXCLUDED.name,
    latitude = EXCLUDED.latitude,
    longitude = EXCLUDED.longitude
RETURNING id`, st.Name, st.RMCABID, st.Latitude, st.Longitude).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("upsert station %q: %w", st.Name, err)
	}
	return id, nil
}

// UpsertChannel inserts or refreshes one channel keyed by (station, code).
// Used by the seeder only.
func (s *Store) UpsertChannel(ctx context.Context, ch domain.Channel) error {
	_, err := s.pool.Exec(ctx, `
INSERT INTO channels (station_id, kind, code, unit)
VALUES ($1, $2, $3, $4)
ON CONFLICT (station_id, code) DO UPDATE
SET kind = EXCLUDED.kind,
    unit = EXCLUDED.unit`, ch.StationID, ch.Kind, ch.Code, ch.Unit)
	if err != nil {
		return fmt.Errorf("upsert channel %q: %w", ch.Code, err)
	}
	return nil
}
