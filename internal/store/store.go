package store

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"time"

	"github.com/NotCoffee418/dbmigrator"
	"github.com/fxamacker/cbor/v2"

	"github.com/cwbudde/traffic-vmd/flow/series"
	"github.com/cwbudde/traffic-vmd/vmd"

	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrationFS embed.FS

// Store is a persistent cache backed by a SQLite database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the database at path and applies pending
// migrations.
func Open(path string) (*Store, error) {
	if path == "" {
		return nil, errors.New("store: database path must not be empty")
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("store: open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: ping database: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: enable WAL: %w", err)
	}

	dbmigrator.SetDatabaseType(dbmigrator.SQLite)
	<-dbmigrator.MigrateUpCh(db, migrationFS, "migrations")

	return &Store{db: db}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error { return s.db.Close() }

// seriesRecord is the stored form of an aligned series. Start is kept
// as Unix seconds; grid starts are always whole minutes.
type seriesRecord struct {
	Start  int64
	Values []float64
}

// decompositionRecord is the stored form of a solver result.
type decompositionRecord struct {
	Modes      [][]float64
	Omega      []float64
	Iterations int
}

// PutSeries stores an aligned series under key, replacing any earlier
// entry.
func (s *Store) PutSeries(key string, sr *series.Series) error {
	if key == "" {
		return errors.New("store: cache key must not be empty")
	}
	if sr == nil {
		return errors.New("store: series must not be nil")
	}
	payload, err := cbor.Marshal(seriesRecord{
		Start:  sr.Start().Unix(),
		Values: sr.Values(),
	})
	if err != nil {
		return fmt.Errorf("store: encode series: %w", err)
	}
	return s.put("series_cache", key, payload)
}

// GetSeries loads the series stored under key. The second return value
// reports whether an entry existed.
func (s *Store) GetSeries(key string) (*series.Series, bool, error) {
	payload, ok, err := s.get("series_cache", key)
	if err != nil || !ok {
		return nil, false, err
	}
	var rec seriesRecord
	if err := cbor.Unmarshal(payload, &rec); err != nil {
		return nil, false, fmt.Errorf("store: decode series: %w", err)
	}
	return series.New(time.Unix(rec.Start, 0).UTC(), rec.Values), true, nil
}

// PutDecomposition stores a solver result under key, replacing any
// earlier entry.
func (s *Store) PutDecomposition(key string, res *vmd.Result) error {
	if key == "" {
		return errors.New("store: cache key must not be empty")
	}
	if res == nil {
		return errors.New("store: result must not be nil")
	}
	payload, err := cbor.Marshal(decompositionRecord{
		Modes:      res.Modes,
		Omega:      res.Omega,
		Iterations: res.Iterations,
	})
	if err != nil {
		return fmt.Errorf("store: encode decomposition: %w", err)
	}
	return s.put("decomposition_cache", key, payload)
}

// GetDecomposition loads the solver result stored under key. The
// second return value reports whether an entry existed.
func (s *Store) GetDecomposition(key string) (*vmd.Result, bool, error) {
	payload, ok, err := s.get("decomposition_cache", key)
	if err != nil || !ok {
		return nil, false, err
	}
	var rec decompositionRecord
	if err := cbor.Unmarshal(payload, &rec); err != nil {
		return nil, false, fmt.Errorf("store: decode decomposition: %w", err)
	}
	return &vmd.Result{
		Modes:      rec.Modes,
		Omega:      rec.Omega,
		Iterations: rec.Iterations,
	}, true, nil
}

func (s *Store) put(table, key string, payload []byte) error {
	query := "INSERT INTO " + table + " (cache_key, payload, created_at) VALUES (?, ?, ?) " +
		"ON CONFLICT(cache_key) DO UPDATE SET payload = excluded.payload, created_at = excluded.created_at"
	if _, err := s.db.Exec(query, key, payload, time.Now().UTC().Unix()); err != nil {
		return fmt.Errorf("store: write %s: %w", table, err)
	}
	return nil
}

func (s *Store) get(table, key string) ([]byte, bool, error) {
	var payload []byte
	err := s.db.QueryRow("SELECT payload FROM "+table+" WHERE cache_key = ?", key).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("store: read %s: %w", table, err)
	}
	return payload, true, nil
}
