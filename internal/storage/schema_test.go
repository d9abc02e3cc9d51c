package storage

import (
	"context"
	"testing"
)

func tableNames(t *testing.T, st *Store) map[string]bool {
	t.Helper()
	rows, err := st.SQL.Query("SELECT name FROM sqlite_master WHERE type = 'table'")
	if err != nil {
		t.Fatalf("list tables: %v", err)
	}
	defer rows.Close()

	out := map[string]bool{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			t.Fatalf("scan table name: %v", err)
		}
		out[name] = true
	}
	return out
}

func TestInitSchema_CreatesAllTables(t *testing.T) {
	st := newTestStore(t)
	if err := st.InitSchema(context.Background()); err != nil {
		t.Fatalf("init schema: %v", err)
	}

	tables := tableNames(t, st)
	for _, want := range []string{"products", "orders", "order_items", "activity_moderation"} {
		if !tables[want] {
			t.Errorf("missing table %q", want)
		}
	}
}

func TestInitSchema_Idempotent(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	if err := st.InitSchema(ctx); err != nil {
		t.Fatalf("first init: %v", err)
	}
	if _, err := st.SQL.Exec(
		"INSERT INTO products (id, name, price) VALUES ('1', 'Borscht', 18.0)",
	); err != nil {
		t.Fatalf("seed row: %v", err)
	}

	// Running the create/migrate step again must not error and must not
	// lose data.
	if err := st.InitSchema(ctx); err != nil {
		t.Fatalf("second init: %v", err)
	}
	var count int
	if err := st.SQL.QueryRow("SELECT COUNT(*) FROM products").Scan(&count); err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Fatalf("products count = %d after re-init, want 1", count)
	}
}

func TestInitSchema_AddsMissingColumnsToLegacyTables(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	// Simulate a database created before user_telegram_id existed.
	legacy := `CREATE TABLE orders (
		id TEXT PRIMARY KEY,
		customer_name TEXT NOT NULL,
		customer_phone TEXT NOT NULL,
		customer_address TEXT,
		customer_telegram TEXT,
		total_amount REAL NOT NULL,
		status TEXT DEFAULT 'pending',
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`
	if _, err := st.SQL.Exec(legacy); err != nil {
		t.Fatalf("create legacy table: %v", err)
	}

	if err := st.InitSchema(ctx); err != nil {
		t.Fatalf("init schema over legacy table: %v", err)
	}
	if rows, err := st.SQL.Query("SELECT user_telegram_id FROM orders LIMIT 1"); err != nil {
		t.Fatalf("user_telegram_id not added: %v", err)
	} else {
		rows.Close()
	}

	// And a second pass must not trip over the now-present column.
	if err := st.InitSchema(ctx); err != nil {
		t.Fatalf("re-init after migration: %v", err)
	}
}
