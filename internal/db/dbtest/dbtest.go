// Package dbtest opens throwaway migrated SQLite stores for tests.
package dbtest

import (
	"fmt"
	"path/filepath"
	"sync/atomic"
	"testing"

	"postlike/internal/config"
	"postlike/internal/db"

	"gorm.io/gorm"
)

// Open returns a migrated store backed by a file in t.TempDir().
func Open(t testing.TB) *gorm.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "test.db") + "?_busy_timeout=5000&_foreign_keys=on"
	conn, err := db.Open(config.DatabaseConfig{Driver: "sqlite", DSN: dsn})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := db.Migrate(conn); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close(conn)
	})
	return conn
}

// StatementCounter counts every statement gorm executes after it is attached.
type StatementCounter struct {
	n atomic.Int64
}

func (c *StatementCounter) Count() int64 { return c.n.Load() }

func (c *StatementCounter) Reset() { c.n.Store(0) }

// CountStatements hooks the gorm callback chains of conn.
func CountStatements(t testing.TB, conn *gorm.DB) *StatementCounter {
	t.Helper()

	counter := &StatementCounter{}
	inc := func(*gorm.DB) { counter.n.Add(1) }
	name := fmt.Sprintf("dbtest:count:%p", counter)

	cb := conn.Callback()
	register := []error{
		cb.Create().Before("gorm:create").Register(name, inc),
		cb.Query().Before("gorm:query").Register(name, inc),
		cb.Update().Before("gorm:update").Register(name, inc),
		cb.Delete().Before("gorm:delete").Register(name, inc),
		cb.Row().Before("gorm:row").Register(name, inc),
		cb.Raw().Before("gorm:raw").Register(name, inc),
	}
	for _, err := range register {
		if err != nil {
			t.Fatalf("register counter callback: %v", err)
		}
	}
	return counter
}
