// Package storage implements the backend adapter that hides the
// differences between the embedded SQLite engine and a networked
// PostgreSQL server behind one handle.
//
// The engine is selected once at process start: a non-empty DATABASE_URL
// selects PostgreSQL, otherwise the embedded single-file engine is used.
// Call sites never branch on engine identity; the per-engine differences
// (placeholder token, string-concatenation aggregate, column DDL) live in
// the Dialect and in InitSchema.
//
// The Store exposes two query surfaces:
//   - DB, the GORM handle, for entity CRUD and transactions;
//   - SQL, the underlying *sql.DB, for the raw statements that need
//     literal dialect control (schema DDL, column probes, dynamic
//     single-column updates, and the item-aggregate listing query).
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	sqlite "github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// ErrUnavailable indicates a connection or engine failure. It is fatal to
// the calling request; no retry is attempted at this layer.
var ErrUnavailable = errors.New("storage unavailable")

// Engine identifies the active relational backend.
type Engine string

const (
	EngineSQLite   Engine = "sqlite"
	EnginePostgres Engine = "postgres"
)

// Options selects and configures the backend engine.
type Options struct {
	// DatabaseURL is the PostgreSQL connection string. When non-empty the
	// networked engine is used and SQLitePath is ignored.
	DatabaseURL string
	// SQLitePath is the embedded database file path.
	SQLitePath string
	// LogQueries enables GORM statement logging (dev only).
	LogQueries bool
}

// Store is the uniform connection handle injected into the repository
// layer and the schema manager.
type Store struct {
	DB      *gorm.DB
	SQL     *sql.DB
	Engine  Engine
	Dialect Dialect
}

// Open selects the engine from opts, opens it, configures the pool, and
// verifies connectivity. Failures are wrapped in ErrUnavailable.
func Open(ctx context.Context, opts Options) (*Store, error) {
	gcfg := &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent)}
	if opts.LogQueries {
		gcfg.Logger = gormlogger.Default.LogMode(gormlogger.Info)
	}

	var (
		db     *gorm.DB
		err    error
		engine Engine
	)
	if opts.DatabaseURL != "" {
		engine = EnginePostgres
		db, err = gorm.Open(postgres.Open(opts.DatabaseURL), gcfg)
	} else {
		engine = EngineSQLite
		db, err = openSQLiteFile(opts.SQLitePath, gcfg)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", ErrUnavailable, engine, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxIdleTime(5 * time.Minute)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	if err := sqlDB.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("%w: ping %s: %v", ErrUnavailable, engine, err)
	}

	return &Store{
		DB:      db,
		SQL:     sqlDB,
		Engine:  engine,
		Dialect: dialectFor(engine),
	}, nil
}

// openSQLiteFile opens (or creates) the SQLite database and applies PRAGMAs.
func openSQLiteFile(path string, gcfg *gorm.Config) (*gorm.DB, error) {
	// Fail early if the parent directory does not exist (instead of the
	// sqlite "out of memory (14)" error on Windows).
	if dir := filepath.Dir(path); dir != "." {
		if _, err := os.Stat(dir); err != nil {
			return nil, err
		}
	}

	db, err := gorm.Open(sqlite.Open(path), gcfg)
	if err != nil {
		return nil, err
	}

	db.Exec("PRAGMA journal_mode=WAL;")
	db.Exec("PRAGMA synchronous=NORMAL;")
	db.Exec("PRAGMA foreign_keys=ON;")
	db.Exec("PRAGMA busy_timeout=5000;")

	return db, nil
}

// WithTx runs fn inside one database transaction. The order/order-items
// pair is the only multi-statement write and relies on this scope for
// atomicity; there is no application-level locking.
func (s *Store) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return s.DB.WithContext(ctx).Transaction(fn)
}

// Ping verifies connectivity, mapping failure to ErrUnavailable.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.SQL.PingContext(ctx); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}

// Close releases the underlying connection pool.
func (s *Store) Close() error {
	return s.SQL.Close()
}
