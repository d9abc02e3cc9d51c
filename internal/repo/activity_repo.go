package repo

import (
	"context"
	"time"

	"github.com/tbourn/go-food-backend/internal/domain"
	"github.com/tbourn/go-food-backend/internal/storage"
)

// LogActivity appends one audit record. Timestamp defaults to now (UTC)
// when unset. Callers treat failures as best-effort and only log them.
func LogActivity(ctx context.Context, st *storage.Store, a *domain.Activity) error {
	if a.Timestamp.IsZero() {
		a.Timestamp = time.Now().UTC()
	}
	return st.DB.WithContext(ctx).Create(a).Error
}

// ListActivity returns the audit log, most recent first.
func ListActivity(ctx context.Context, st *storage.Store) ([]domain.Activity, error) {
	var out []domain.Activity
	err := st.DB.WithContext(ctx).Order("timestamp desc").Find(&out).Error
	return out, err
}
