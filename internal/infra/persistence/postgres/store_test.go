package postgres

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"io"
	"sort"
	"strings"
	"sync"
	"testing"

	"wellcore/pkg/domain"
)

// stubDB emulates the single welltest table so the store logic can be tested
// without a running Postgres server.
type stubDB struct {
	mu      sync.Mutex
	buckets map[string][]byte
	pingErr error
}

func newStubDB() *stubDB { return &stubDB{buckets: make(map[string][]byte)} }

type stubConnector struct{ db *stubDB }

func (c stubConnector) Connect(context.Context) (driver.Conn, error) {
	return &stubConn{db: c.db}, nil
}

func (c stubConnector) Driver() driver.Driver { return stubDriver{} }

type stubDriver struct{}

func (stubDriver) Open(string) (driver.Conn, error) {
	return nil, errors.New("stub driver requires a connector")
}

type stubConn struct{ db *stubDB }

func (c *stubConn) Prepare(string) (driver.Stmt, error) {
	return nil, errors.New("prepare not supported by stub")
}

func (c *stubConn) Close() error { return nil }

func (c *stubConn) Begin() (driver.Tx, error) { return stubTx{}, nil }

func (c *stubConn) BeginTx(context.Context, driver.TxOptions) (driver.Tx, error) {
	return stubTx{}, nil
}

func (c *stubConn) Ping(context.Context) error {
	c.db.mu.Lock()
	defer c.db.mu.Unlock()
	return c.db.pingErr
}

func (c *stubConn) ExecContext(_ context.Context, query string, args []driver.NamedValue) (driver.Result, error) {
	switch {
	case strings.HasPrefix(query, "CREATE TABLE"):
		return driver.RowsAffected(0), nil
	case strings.HasPrefix(query, "INSERT INTO welltest"):
		if len(args) != 2 {
			return nil, errors.New("expected bucket and payload arguments")
		}
		bucket, ok := args[0].Value.(string)
		if !ok {
			return nil, errors.New("bucket must be a string")
		}
		payload, ok := args[1].Value.([]byte)
		if !ok {
			return nil, errors.New("payload must be bytes")
		}
		c.db.mu.Lock()
		c.db.buckets[bucket] = append([]byte(nil), payload...)
		c.db.mu.Unlock()
		return driver.RowsAffected(1), nil
	default:
		return nil, errors.New("unexpected statement: " + query)
	}
}

func (c *stubConn) QueryContext(_ context.Context, query string, _ []driver.NamedValue) (driver.Rows, error) {
	if !strings.HasPrefix(query, "SELECT bucket, payload FROM welltest") {
		return nil, errors.New("unexpected query: " + query)
	}
	c.db.mu.Lock()
	defer c.db.mu.Unlock()
	names := make([]string, 0, len(c.db.buckets))
	for name := range c.db.buckets {
		names = append(names, name)
	}
	sort.Strings(names)
	rows := &stubRows{}
	for _, name := range names {
		rows.rows = append(rows.rows, [2]driver.Value{name, append([]byte(nil), c.db.buckets[name]...)})
	}
	return rows, nil
}

type stubTx struct{}

func (stubTx) Commit() error   { return nil }
func (stubTx) Rollback() error { return nil }

type stubRows struct {
	rows [][2]driver.Value
	at   int
}

func (r *stubRows) Columns() []string { return []string{"bucket", "payload"} }

func (r *stubRows) Close() error { return nil }

func (r *stubRows) Next(dest []driver.Value) error {
	if r.at >= len(r.rows) {
		return io.EOF
	}
	dest[0] = r.rows[r.at][0]
	dest[1] = r.rows[r.at][1]
	r.at++
	return nil
}

func stubOpen(t *testing.T, db *stubDB) {
	t.Helper()
	openMu.Lock()
	prev := sqlOpen
	sqlOpen = func(string, string) (*sql.DB, error) {
		return sql.OpenDB(stubConnector{db: db}), nil
	}
	openMu.Unlock()
	t.Cleanup(func() {
		openMu.Lock()
		sqlOpen = prev
		openMu.Unlock()
	})
}

func TestStoreRoundTrip(t *testing.T) {
	db := newStubDB()
	stubOpen(t, db)

	store, err := NewStore("", nil)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if _, err := store.RunInTransaction(context.Background(), func(tx domain.LedgerTx) error {
		tx.CloseWell("P1", domain.CloseReasonEconomic, 120)
		tx.CloseCompletion("P2", 4, 60)
		return nil
	}); err != nil {
		t.Fatalf("transaction: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	reopened, err := NewStore("", nil)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer func() { _ = reopened.Close() }()

	snap := reopened.Snapshot()
	closure, ok := snap.Closure("P1")
	if !ok || closure.Reason != domain.CloseReasonEconomic || closure.SimTime != 120 {
		t.Fatalf("unexpected restored closure %+v ok=%v", closure, ok)
	}
	if !snap.CompletionClosed("P2", 4) {
		t.Fatalf("expected restored completion closure")
	}
}

func TestNewStoreFailsWhenUnreachable(t *testing.T) {
	db := newStubDB()
	db.pingErr = errors.New("connection refused")
	stubOpen(t, db)

	if _, err := NewStore("postgres://example/wellcore", nil); err == nil {
		t.Fatalf("expected ping failure to surface")
	}
}

func TestFailedTransactionNotPersisted(t *testing.T) {
	db := newStubDB()
	stubOpen(t, db)

	store, err := NewStore("", nil)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer func() { _ = store.Close() }()

	if _, err := store.RunInTransaction(context.Background(), func(tx domain.LedgerTx) error {
		tx.CloseWell("P1", domain.CloseReasonEconomic, 1)
		return context.Canceled
	}); err == nil {
		t.Fatalf("expected transaction error")
	}
	if len(db.buckets) != 0 {
		t.Fatalf("failed transaction must not reach the database")
	}
}
