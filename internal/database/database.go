// Package database opens the shared sqlx pool for the registry.  The
// driver is go-sql-driver/mysql, which also speaks to MariaDB.
//
// Unlike a per-tenant design, Vitrine runs one process-wide pool that
// the business store, the user store, and the analytics recorder all
// share, so the defaults are sized for a single busy pool rather than
// many small ones.  Both helpers ping before returning so a bad DSN
// fails the boot, not the first request.
package database

import (
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
)

const (
	defaultMaxOpen = 25
	defaultMaxIdle = 10
	connLifetime   = 30 * time.Minute
)

// Open returns the shared *sqlx.DB with the default pool sizing.
func Open(dsn string) (*sqlx.DB, error) {
	return OpenWithOptions(dsn, defaultMaxOpen, defaultMaxIdle)
}

// OpenWithOptions lets callers tune maxOpen and maxIdle, used by tests
// and one-off tools that want a smaller footprint.
func OpenWithOptions(dsn string, maxOpen, maxIdle int) (*sqlx.DB, error) {
	db, err := sqlx.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(maxOpen)
	db.SetMaxIdleConns(maxIdle)
	db.SetConnMaxLifetime(connLifetime)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}
