// Package sqlite provides a SQLite-backed shut-in ledger store. It mirrors
// the in-memory semantics and snapshots the full ledger after every
// successful transaction.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	_ "modernc.org/sqlite" // pure go sqlite driver

	"wellcore/internal/infra/persistence/memory"
	"wellcore/pkg/domain"
)

// Compile-time contract assertion.
var _ domain.LedgerStore = (*Store)(nil)

const (
	bucketWells       = "wells"
	bucketCompletions = "completions"
)

// Store persists the ledger to a single SQLite table as JSON buckets.
type Store struct {
	*memory.Store
	db   *sql.DB
	mu   sync.Mutex
	path string
}

// NewStore opens (or creates) a snapshotting SQLite-backed ledger store and
// hydrates it from any existing snapshot.
func NewStore(path string, engine *domain.RulesEngine) (*Store, error) {
	if path == "" {
		path = "wellcore.db"
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil && !errors.Is(err, os.ErrExist) {
			return nil, fmt.Errorf("create dirs: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS welltest (
		bucket TEXT PRIMARY KEY,
		payload BLOB NOT NULL
	)`); err != nil {
		return nil, fmt.Errorf("create welltest table: %w", err)
	}
	s := &Store{Store: memory.NewStore(engine), db: db, path: path}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

// Path returns the database file path.
func (s *Store) Path() string { return s.path }

// Close releases the database handle.
func (s *Store) Close() error { return s.db.Close() }

func (s *Store) load() error {
	rows, err := s.db.Query(`SELECT bucket, payload FROM welltest`)
	if err != nil {
		return fmt.Errorf("select welltest: %w", err)
	}
	defer func() { _ = rows.Close() }()

	state := domain.NewWellTestState()
	found := false
	for rows.Next() {
		var bucket string
		var payload []byte
		if err := rows.Scan(&bucket, &payload); err != nil {
			return fmt.Errorf("scan: %w", err)
		}
		found = true
		switch bucket {
		case bucketWells:
			if err := json.Unmarshal(payload, &state.Wells); err != nil {
				return fmt.Errorf("decode wells: %w", err)
			}
		case bucketCompletions:
			if err := json.Unmarshal(payload, &state.Completions); err != nil {
				return fmt.Errorf("decode completions: %w", err)
			}
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate welltest: %w", err)
	}
	if found {
		s.Restore(state)
	}
	return nil
}

func (s *Store) persist(state domain.WellTestState) error {
	wells, err := json.Marshal(state.Wells)
	if err != nil {
		return fmt.Errorf("encode wells: %w", err)
	}
	completions, err := json.Marshal(state.Completions)
	if err != nil {
		return fmt.Errorf("encode completions: %w", err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	upsert := `INSERT INTO welltest(bucket, payload) VALUES(?, ?)
		ON CONFLICT(bucket) DO UPDATE SET payload = excluded.payload`
	for bucket, payload := range map[string][]byte{
		bucketWells:       wells,
		bucketCompletions: completions,
	} {
		if _, err := tx.Exec(upsert, bucket, payload); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("upsert %s: %w", bucket, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// RunInTransaction applies the transaction in memory and, on success,
// snapshots the full ledger to the database.
func (s *Store) RunInTransaction(ctx context.Context, fn func(domain.LedgerTx) error) (domain.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.Store.RunInTransaction(ctx, fn)
	if err != nil {
		return res, err
	}
	if err := s.persist(s.Store.Snapshot()); err != nil {
		return res, fmt.Errorf("persist snapshot: %w", err)
	}
	return res, nil
}
