package repo

import (
	"context"
	"fmt"

	"github.com/tbourn/go-food-backend/internal/domain"
	"github.com/tbourn/go-food-backend/internal/storage"
)

// ListProducts returns the catalog ordered by id, optionally filtered by
// category (case-insensitive). An empty category returns everything.
func ListProducts(ctx context.Context, st *storage.Store, category string) ([]domain.Product, error) {
	q := st.DB.WithContext(ctx).Order("id")
	if category != "" {
		q = q.Where("LOWER(category) = LOWER(?)", category)
	}
	var out []domain.Product
	err := q.Find(&out).Error
	return out, err
}

// GetProduct fetches a single product by id, or ErrNotFound.
func GetProduct(ctx context.Context, st *storage.Store, id string) (*domain.Product, error) {
	var p domain.Product
	if err := st.DB.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// AddProduct inserts a new product. A short unique id is generated when
// the caller leaves ID empty. Returns the id under which the row was
// stored.
func AddProduct(ctx context.Context, st *storage.Store, p *domain.Product) (string, error) {
	if p.ID == "" {
		p.ID = NewShortID()
	}
	if err := st.DB.WithContext(ctx).Create(p).Error; err != nil {
		return "", err
	}
	return p.ID, nil
}

// DeleteProduct removes a product unconditionally: there is no referential
// check against existing orders, because order_items carry their own
// snapshot of the product fields. Returns ErrNotFound when no row matched.
func DeleteProduct(ctx context.Context, st *storage.Store, id string) error {
	res := st.DB.WithContext(ctx).Where("id = ?", id).Delete(&domain.Product{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// editableProductColumns is the whitelist for EditProductField; the column
// name is interpolated into the statement text, so anything outside this
// set is rejected before the SQL is built.
var editableProductColumns = map[string]struct{}{
	"name":          {},
	"description":   {},
	"price":         {},
	"image":         {},
	"category":      {},
	"ingredients":   {},
	"cook_name":     {},
	"cook_phone":    {},
	"cook_telegram": {},
}

// EditProductField performs a single-column replace, the primitive behind
// the admin edit flow. The statement is built with the engine's
// placeholder token and executed on the raw connection.
func EditProductField(ctx context.Context, st *storage.Store, id, column string, value any) error {
	if _, ok := editableProductColumns[column]; !ok {
		return fmt.Errorf("%w: %s", ErrInvalidColumn, column)
	}
	d := st.Dialect
	q := fmt.Sprintf("UPDATE products SET %s = %s WHERE id = %s",
		column, d.Placeholder(1), d.Placeholder(2))
	res, err := st.SQL.ExecContext(ctx, q, value, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}
