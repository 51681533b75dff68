// Package postgres provides a Postgres-backed shut-in ledger store that
// mirrors the in-memory semantics while snapshotting the ledger after every
// successful transaction.
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"

	_ "github.com/jackc/pgx/v5/stdlib" // register pgx as a database/sql driver

	"wellcore/internal/infra/persistence/memory"
	"wellcore/pkg/domain"
)

// Compile-time contract assertion.
var _ domain.LedgerStore = (*Store)(nil)

const (
	defaultDriver = "pgx"
	// Default DSN keeps parity with OpenLedgerStore defaults while allowing
	// overrides via env.
	defaultDSN = "postgres://localhost/wellcore?sslmode=disable"

	bucketWells       = "wells"
	bucketCompletions = "completions"
)

var (
	sqlOpen = sql.Open
	openMu  sync.Mutex
)

// Store persists the ledger to Postgres while reusing the in-memory
// implementation for transaction semantics.
type Store struct {
	*memory.Store
	db *sql.DB
	mu sync.Mutex
}

// NewStore opens a Postgres-backed ledger store using the provided DSN
// (falls back to defaultDSN), ensures the snapshot table exists, and hydrates
// the in-memory store from any existing snapshot.
func NewStore(dsn string, engine *domain.RulesEngine) (*Store, error) {
	if dsn == "" {
		dsn = defaultDSN
	}
	openMu.Lock()
	db, err := sqlOpen(defaultDriver, dsn)
	openMu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	ctx := context.Background()
	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS welltest (
		bucket TEXT PRIMARY KEY,
		payload JSONB NOT NULL
	)`); err != nil {
		return nil, fmt.Errorf("create welltest table: %w", err)
	}
	s := &Store{Store: memory.NewStore(engine), db: db}
	if err := s.load(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// Close releases the database handle.
func (s *Store) Close() error { return s.db.Close() }

func (s *Store) load(ctx context.Context) error {
	rows, err := s.db.QueryContext(ctx, `SELECT bucket, payload FROM welltest`)
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

func (s *Store) persist(ctx context.Context, state domain.WellTestState) error {
	wells, err := json.Marshal(state.Wells)
	if err != nil {
		return fmt.Errorf("encode wells: %w", err)
	}
	completions, err := json.Marshal(state.Completions)
	if err != nil {
		return fmt.Errorf("encode completions: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	upsert := `INSERT INTO welltest(bucket, payload) VALUES($1, $2)
		ON CONFLICT(bucket) DO UPDATE SET payload = excluded.payload`
	for bucket, payload := range map[string][]byte{
		bucketWells:       wells,
		bucketCompletions: completions,
	} {
		if _, err := tx.ExecContext(ctx, upsert, bucket, payload); err != nil {
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
// snapshots the full ledger to Postgres.
func (s *Store) RunInTransaction(ctx context.Context, fn func(domain.LedgerTx) error) (domain.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.Store.RunInTransaction(ctx, fn)
	if err != nil {
		return res, err
	}
	if err := s.persist(ctx, s.Store.Snapshot()); err != nil {
		return res, fmt.Errorf("persist snapshot: %w", err)
	}
	return res, nil
}
