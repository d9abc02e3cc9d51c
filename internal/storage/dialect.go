package storage

import "strconv"

// Dialect captures the per-engine SQL differences needed by raw queries.
// It is selected once in Open and injected through the Store so that no
// call site branches on engine identity.
type Dialect interface {
	// Name returns the engine name ("sqlite" or "postgres").
	Name() string

	// Placeholder returns the parameter token for the n-th (1-based)
	// argument: positional "?" for SQLite, ordinal "$n" for PostgreSQL.
	// Query builders must use this rather than hard-coding either token.
	Placeholder(n int) string

	// ItemsAggExpr returns the string-concatenation aggregate expression
	// that flattens an order's items into one delimited column, aliased by
	// the caller as items_data. Field order within a record is
	// product_id:product_name:quantity:price:cook_telegram; records are
	// comma-separated. The two engines use different aggregate functions
	// and NULL-separator semantics, hence COALESCE on the trailing field.
	ItemsAggExpr() string
}

func dialectFor(e Engine) Dialect {
	if e == EnginePostgres {
		return postgresDialect{}
	}
	return sqliteDialect{}
}

type sqliteDialect struct{}

func (sqliteDialect) Name() string           { return string(EngineSQLite) }
func (sqliteDialect) Placeholder(int) string { return "?" }

func (sqliteDialect) ItemsAggExpr() string {
	return "GROUP_CONCAT(" +
		"oi.product_id || ':' || oi.product_name || ':' || " +
		"oi.quantity || ':' || oi.price || ':' || " +
		"COALESCE(oi.cook_telegram, ''))"
}

type postgresDialect struct{}

func (postgresDialect) Name() string { return string(EnginePostgres) }

func (postgresDialect) Placeholder(n int) string { return "$" + strconv.Itoa(n) }

func (postgresDialect) ItemsAggExpr() string {
	return "STRING_AGG(" +
		"oi.product_id || ':' || oi.product_name || ':' || " +
		"oi.quantity || ':' || oi.price || ':' || " +
		"COALESCE(oi.cook_telegram, ''), ',')"
}
