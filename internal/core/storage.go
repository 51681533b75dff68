package core

import (
	"fmt"
	"os"

	"wellcore/internal/infra/persistence/memory"
	"wellcore/internal/infra/persistence/postgres"
	"wellcore/internal/infra/persistence/sqlite"
	"wellcore/pkg/domain"
)

// StorageDriver identifies a concrete ledger storage implementation.
type StorageDriver string

const (
	// StorageMemory keeps the ledger in memory only (tests / ephemeral runs).
	StorageMemory StorageDriver = "memory"
	// StorageSQLite snapshots the ledger into an embedded sqlite file.
	StorageSQLite StorageDriver = "sqlite"
	// StoragePostgres snapshots the ledger into a PostgreSQL server.
	StoragePostgres StorageDriver = "postgres"
)

// NewDefaultRulesEngine returns a rules engine loaded with the standard
// ledger consistency rules. A nil lookup treats every well as unknown.
func NewDefaultRulesEngine(lookup WellLookup) *domain.RulesEngine {
	if lookup == nil {
		lookup = func(string) (*domain.Well, bool) { return nil, false }
	}
	engine := domain.NewRulesEngine()
	engine.Register(NewCompletionCascadeRule(lookup))
	engine.Register(NewLedgerConsistencyRule(lookup))
	return engine
}

// OpenLedgerStore selects a ledger backend using environment variables.
// Defaults to sqlite when unset.
//
//	WELLCORE_STORAGE_DRIVER: memory|sqlite|postgres (default sqlite)
//	WELLCORE_SQLITE_PATH: path to sqlite file (default ./wellcore.db)
//	WELLCORE_POSTGRES_DSN: postgres DSN when driver=postgres
func OpenLedgerStore(engine *domain.RulesEngine) (domain.LedgerStore, error) {
	driver := os.Getenv("WELLCORE_STORAGE_DRIVER")
	if driver == "" {
		driver = string(StorageSQLite)
	}
	switch StorageDriver(driver) {
	case StorageMemory:
		return memory.NewStore(engine), nil
	case StorageSQLite:
		path := os.Getenv("WELLCORE_SQLITE_PATH")
		return sqlite.NewStore(path, engine)
	case StoragePostgres:
		dsn := os.Getenv("WELLCORE_POSTGRES_DSN")
		return postgres.NewStore(dsn, engine)
	default:
		return nil, fmt.Errorf("unknown storage driver %s", driver)
	}
}
