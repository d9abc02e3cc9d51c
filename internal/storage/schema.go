package storage

import (
	"context"
	"fmt"
)

// InitSchema creates the four application tables with engine-appropriate
// column types and applies the additive column migrations. It runs on
// every boot and is idempotent: applying it N times leaves the same
// schema as applying it once.
func (s *Store) InitSchema(ctx context.Context) error {
	for _, stmt := range s.createTableStmts() {
		if _, err := s.SQL.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("create table: %w", err)
		}
	}
	return s.addMissingColumns(ctx)
}

func (s *Store) createTableStmts() []string {
	if s.Engine == EnginePostgres {
		return []string{
			`CREATE TABLE IF NOT EXISTS products (
				id VARCHAR(50) PRIMARY KEY,
				name VARCHAR(255) NOT NULL,
				description TEXT,
				price DECIMAL(10, 2) NOT NULL,
				image VARCHAR(500),
				category VARCHAR(100),
				ingredients TEXT,
				cook_telegram VARCHAR(100),
				cook_name VARCHAR(255),
				cook_phone VARCHAR(50)
			)`,
			`CREATE TABLE IF NOT EXISTS orders (
				id VARCHAR(50) PRIMARY KEY,
				customer_name VARCHAR(255) NOT NULL,
				customer_phone VARCHAR(50) NOT NULL,
				customer_address TEXT,
				customer_telegram VARCHAR(100),
				user_telegram_id BIGINT,
				total_amount DECIMAL(10, 2) NOT NULL,
				status VARCHAR(50) DEFAULT 'pending',
				created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
			)`,
			`CREATE TABLE IF NOT EXISTS order_items (
				id SERIAL PRIMARY KEY,
				order_id VARCHAR(50) NOT NULL,
				product_id VARCHAR(50) NOT NULL,
				product_name VARCHAR(255),
				quantity INTEGER NOT NULL,
				price DECIMAL(10, 2) NOT NULL,
				cook_name VARCHAR(255),
				cook_phone VARCHAR(50),
				cook_telegram VARCHAR(100),
				FOREIGN KEY (order_id) REFERENCES orders (id)
			)`,
			`CREATE TABLE IF NOT EXISTS activity_moderation (
				id SERIAL PRIMARY KEY,
				user_id VARCHAR(100) NOT NULL,
				username VARCHAR(255),
				first_name VARCHAR(255),
				last_name VARCHAR(255),
				action_type VARCHAR(100) NOT NULL,
				details TEXT,
				timestamp TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
				ip_address VARCHAR(50)
			)`,
		}
	}
	return []string{
		`CREATE TABLE IF NOT EXISTS products (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			description TEXT,
			price REAL NOT NULL,
			image TEXT,
			category TEXT,
			ingredients TEXT,
			cook_telegram TEXT,
			cook_name TEXT,
			cook_phone TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS orders (
			id TEXT PRIMARY KEY,
			customer_name TEXT NOT NULL,
			customer_phone TEXT NOT NULL,
			customer_address TEXT,
			customer_telegram TEXT,
			user_telegram_id INTEGER,
			total_amount REAL NOT NULL,
			status TEXT DEFAULT 'pending',
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS order_items (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			order_id TEXT NOT NULL,
			product_id TEXT NOT NULL,
			product_name TEXT,
			quantity INTEGER NOT NULL,
			price REAL NOT NULL,
			cook_name TEXT,
			cook_phone TEXT,
			cook_telegram TEXT,
			FOREIGN KEY (order_id) REFERENCES orders (id)
		)`,
		`CREATE TABLE IF NOT EXISTS activity_moderation (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id TEXT NOT NULL,
			username TEXT,
			first_name TEXT,
			last_name TEXT,
			action_type TEXT NOT NULL,
			details TEXT,
			timestamp TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			ip_address TEXT
		)`,
	}
}

// columnMigration is one additive, non-destructive column migration.
// Presence is detected by attempting a trivial select against the column;
// the alternative (introspecting information_schema vs pragma_table_info)
// would need per-engine branching for no gain.
type columnMigration struct {
	table      string
	column     string
	sqliteType string
	pgType     string
}

// columnMigrations lists columns added after the original table layouts
// shipped. Order matters only for readability; each entry is independent.
var columnMigrations = []columnMigration{
	{"orders", "user_telegram_id", "INTEGER", "BIGINT"},
	{"orders", "customer_name", "TEXT", "VARCHAR(255)"},
	{"order_items", "cook_telegram", "TEXT", "VARCHAR(100)"},
	{"products", "cook_telegram", "TEXT", "VARCHAR(100)"},
}

// addMissingColumns applies the migrate-on-demand heuristic: probe each
// column with a trivial select and, on failure, issue an ALTER TABLE ADD
// COLUMN. Safe to run on every boot.
func (s *Store) addMissingColumns(ctx context.Context) error {
	for _, m := range columnMigrations {
		probe := fmt.Sprintf("SELECT %s FROM %s LIMIT 1", m.column, m.table)
		if rows, err := s.SQL.QueryContext(ctx, probe); err == nil {
			rows.Close()
			continue
		}
		colType := m.sqliteType
		if s.Engine == EnginePostgres {
			colType = m.pgType
		}
		alter := fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s %s", m.table, m.column, colType)
		if _, err := s.SQL.ExecContext(ctx, alter); err != nil {
			return fmt.Errorf("add column %s.%s: %w", m.table, m.column, err)
		}
	}
	return nil
}
