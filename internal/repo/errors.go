// Package repo implements the data persistence layer for the catalog and
// order aggregates, on top of the storage backend adapter.
//
// All functions are context-aware and accept a *storage.Store, following
// the "thin repository" approach: no business logic, only CRUD persistence
// and query composition. The repository exclusively owns writes to
// products, orders, and order_items; the notification dispatcher only ever
// reads orders through GetOrder/ListOrders.
//
// Error semantics:
//   - When a record is not found, functions return ErrNotFound
//     (an alias of gorm.ErrRecordNotFound).
//   - On DB errors the raw error is propagated; connection-level failures
//     carry storage.ErrUnavailable from the adapter.
package repo

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrNotFound is returned when a requested record does not exist.
// It aliases gorm.ErrRecordNotFound for consistency across the service
// layer and handlers.
var ErrNotFound = gorm.ErrRecordNotFound

// ErrInvalidColumn is returned by EditProductField when the column is not
// in the editable whitelist. The whitelist is the only thing standing
// between a caller-supplied column name and the SQL text, so the check
// lives here rather than only at the service boundary.
var ErrInvalidColumn = errors.New("column not editable")

// NewShortID generates a short opaque id: the first 8 hex characters of a
// random UUID. Ids are not sequential and carry no ordering information.
func NewShortID() string {
	return uuid.NewString()[:8]
}
