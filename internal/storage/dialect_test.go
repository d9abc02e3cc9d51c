package storage

import (
	"strings"
	"testing"
)

func TestDialect_Placeholder(t *testing.T) {
	s := dialectFor(EngineSQLite)
	if s.Placeholder(1) != "?" || s.Placeholder(3) != "?" {
		t.Fatalf("sqlite placeholders must all be %q", "?")
	}

	p := dialectFor(EnginePostgres)
	if got := p.Placeholder(1); got != "$1" {
		t.Fatalf("postgres Placeholder(1) = %q, want $1", got)
	}
	if got := p.Placeholder(12); got != "$12" {
		t.Fatalf("postgres Placeholder(12) = %q, want $12", got)
	}
}

func TestDialect_ItemsAggExpr(t *testing.T) {
	s := dialectFor(EngineSQLite).ItemsAggExpr()
	if !strings.HasPrefix(s, "GROUP_CONCAT(") {
		t.Fatalf("sqlite aggregate = %q", s)
	}
	p := dialectFor(EnginePostgres).ItemsAggExpr()
	if !strings.HasPrefix(p, "STRING_AGG(") || !strings.HasSuffix(p, ", ',')") {
		t.Fatalf("postgres aggregate = %q", p)
	}

	// Both engines must emit the same record layout:
	// product_id:product_name:quantity:price:cook_telegram.
	for _, expr := range []string{s, p} {
		for _, col := range []string{"oi.product_id", "oi.product_name", "oi.quantity", "oi.price", "oi.cook_telegram"} {
			if !strings.Contains(expr, col) {
				t.Errorf("aggregate %q missing %s", expr, col)
			}
		}
		if !strings.Contains(expr, "COALESCE(oi.cook_telegram, '')") {
			t.Errorf("aggregate %q must COALESCE the trailing field", expr)
		}
	}
}
