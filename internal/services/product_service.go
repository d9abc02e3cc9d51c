// ProductService
//
// Catalog operations behind the HTTP admin surface: listing, lookup,
// creation, unconditional deletion, and single-field edits. Validation
// happens here so the repository stays a thin persistence layer; admin
// mutations additionally leave a best-effort audit trail in the activity
// log.
package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/tbourn/go-food-backend/internal/domain"
	"github.com/tbourn/go-food-backend/internal/repo"
	"github.com/tbourn/go-food-backend/internal/storage"
)

// ProductService provides catalog-level operations.
type ProductService struct {
	Store *storage.Store
}

// NewProductService constructs a ProductService.
func NewProductService(st *storage.Store) *ProductService {
	return &ProductService{Store: st}
}

// AddProductInput is the validated payload for Add.
type AddProductInput struct {
	Name         string
	Description  string
	Price        float64
	Image        string
	Category     string
	Ingredients  []string
	CookName     string
	CookPhone    string
	CookTelegram string
}

// List returns catalog entries, optionally filtered by category.
func (s *ProductService) List(ctx context.Context, category string) ([]domain.Product, error) {
	return repo.ListProducts(ctx, s.Store, category)
}

// Get returns one product or ErrProductNotFound.
func (s *ProductService) Get(ctx context.Context, id string) (*domain.Product, error) {
	p, err := repo.GetProduct(ctx, s.Store, id)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrProductNotFound
	}
	return p, err
}

// Add validates and inserts a new product, returning its generated id.
func (s *ProductService) Add(ctx context.Context, in AddProductInput) (string, error) {
	if in.Name == "" {
		return "", ErrInvalidProduct
	}
	if in.Price < 0 {
		return "", ErrInvalidPrice
	}
	p := &domain.Product{
		Name:         in.Name,
		Description:  in.Description,
		Price:        in.Price,
		Image:        in.Image,
		Category:     in.Category,
		Ingredients:  domain.StringList(in.Ingredients),
		CookName:     in.CookName,
		CookPhone:    in.CookPhone,
		CookTelegram: in.CookTelegram,
	}
	id, err := repo.AddProduct(ctx, s.Store, p)
	if err != nil {
		return "", err
	}
	s.audit(ctx, "product_added", fmt.Sprintf("id=%s name=%s category=%s", id, in.Name, in.Category))
	return id, nil
}

// Delete removes a product unconditionally. Historical orders keep their
// snapshots, so no referential check is made.
func (s *ProductService) Delete(ctx context.Context, id string) error {
	err := repo.DeleteProduct(ctx, s.Store, id)
	if errors.Is(err, repo.ErrNotFound) {
		return ErrProductNotFound
	}
	if err != nil {
		return err
	}
	s.audit(ctx, "product_deleted", "id="+id)
	return nil
}

// EditField replaces a single column on a product. For the price column
// the value must be a non-negative number; every other editable column
// takes a string.
func (s *ProductService) EditField(ctx context.Context, id, field string, value any) error {
	val, err := coerceFieldValue(field, value)
	if err != nil {
		return err
	}
	err = repo.EditProductField(ctx, s.Store, id, field, val)
	switch {
	case errors.Is(err, repo.ErrInvalidColumn):
		return fmt.Errorf("%w: %s", ErrInvalidField, field)
	case errors.Is(err, repo.ErrNotFound):
		return ErrProductNotFound
	case err != nil:
		return err
	}
	s.audit(ctx, "product_edited", fmt.Sprintf("id=%s field=%s", id, field))
	return nil
}

// coerceFieldValue normalizes a JSON-decoded edit value for storage.
func coerceFieldValue(field string, value any) (any, error) {
	if field == "price" {
		f, ok := value.(float64)
		if !ok || f < 0 {
			return nil, ErrInvalidPrice
		}
		return f, nil
	}
	if field == "ingredients" {
		// Accept a JSON array and store it in the serialized form.
		if list, ok := value.([]any); ok {
			out := make(domain.StringList, 0, len(list))
			for _, v := range list {
				s, ok := v.(string)
				if !ok {
					return nil, fmt.Errorf("%w: ingredients must be strings", ErrInvalidField)
				}
				out = append(out, s)
			}
			b, err := json.Marshal(out)
			if err != nil {
				return nil, err
			}
			return string(b), nil
		}
	}
	s, ok := value.(string)
	if !ok {
		return nil, fmt.Errorf("%w: %s expects a string value", ErrInvalidField, field)
	}
	return s, nil
}

// audit records an admin action; failures are logged and swallowed.
func (s *ProductService) audit(ctx context.Context, action, details string) {
	err := repo.LogActivity(ctx, s.Store, &domain.Activity{
		UserID:     "api",
		ActionType: action,
		Details:    details,
	})
	if err != nil {
		log.Error().Err(err).Str("action", action).Msg("activity log write failed")
	}
}
