// Catalog HTTP handlers.
//
// This file exposes REST endpoints for catalog resources:
//   - GET    /products          (list, optional ?category= filter)
//   - GET    /products/{id}     (fetch one)
//   - POST   /products          (create)
//   - PATCH  /products/{id}     (edit a single field)
//   - DELETE /products/{id}     (remove)
//
// Handlers are transport-thin: they validate input, call application services,
// and translate results into HTTP responses.
package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-food-backend/internal/domain"
	"github.com/tbourn/go-food-backend/internal/services"
	"github.com/tbourn/go-food-backend/internal/storage"
)

//
// Service contracts (context-aware)
//

// ProductService defines catalog operations consumed by HTTP handlers.
//
// Implementations should be safe for concurrent use and must honor the
// provided context for cancellation and timeouts.
type ProductService interface {
	// List returns catalog entries, optionally filtered by category.
	List(ctx context.Context, category string) ([]domain.Product, error)
	// Get returns one product by id.
	Get(ctx context.Context, id string) (*domain.Product, error)
	// Add inserts a product and returns its id.
	Add(ctx context.Context, in services.AddProductInput) (string, error)
	// EditField updates a single whitelisted column.
	EditField(ctx context.Context, id, field string, value any) error
	// Delete removes a product.
	Delete(ctx context.Context, id string) error
}

//
// DTOs
//

// CreateProductRequest is the JSON payload for adding a catalog entry.
type CreateProductRequest struct {
	Name         string   `json:"name" binding:"required,min=1,max=255"`
	Description  string   `json:"description"`
	Price        float64  `json:"price" binding:"gte=0"`
	Image        string   `json:"image"`
	Category     string   `json:"category"`
	Ingredients  []string `json:"ingredients"`
	CookName     string   `json:"cook_name"`
	CookPhone    string   `json:"cook_phone"`
	CookTelegram string   `json:"cook_telegram"`
}

// CreateProductResponse returns the id of the newly created product.
type CreateProductResponse struct {
	ID string `json:"id"`
}

// EditProductRequest is the JSON payload for a single-field edit.
type EditProductRequest struct {
	Field string `json:"field" binding:"required"`
	Value any    `json:"value"`
}

//
// Handlers
//

// ListProducts returns the catalog, optionally filtered with ?category=.
func (h *Handlers) ListProducts(c *gin.Context) {
	products, err := h.productSvc.List(c.Request.Context(), strings.TrimSpace(c.Query("category")))
	if err != nil {
		mapServiceError(c, err, ErrCodeListFailed)
		return
	}
	ok(c, http.StatusOK, products)
}

// GetProduct returns one catalog entry by id.
func (h *Handlers) GetProduct(c *gin.Context) {
	p, err := h.productSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		mapServiceError(c, err, ErrCodeInternal)
		return
	}
	ok(c, http.StatusOK, p)
}

// CreateProduct inserts a new catalog entry.
func (h *Handlers) CreateProduct(c *gin.Context) {
	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	id, err := h.productSvc.Add(c.Request.Context(), services.AddProductInput{
		Name:         strings.TrimSpace(req.Name),
		Description:  req.Description,
		Price:        req.Price,
		Image:        req.Image,
		Category:     req.Category,
		Ingredients:  req.Ingredients,
		CookName:     req.CookName,
		CookPhone:    req.CookPhone,
		CookTelegram: req.CookTelegram,
	})
	if err != nil {
		mapServiceError(c, err, ErrCodeCreateFailed)
		return
	}
	ok(c, http.StatusCreated, CreateProductResponse{ID: id})
}

// EditProduct updates a single field of a catalog entry.
func (h *Handlers) EditProduct(c *gin.Context) {
	var req EditProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	if err := h.productSvc.EditField(c.Request.Context(), c.Param("id"), req.Field, req.Value); err != nil {
		mapServiceError(c, err, ErrCodeInternal)
		return
	}
	noContent(c)
}

// DeleteProduct removes a catalog entry.
func (h *Handlers) DeleteProduct(c *gin.Context) {
	if err := h.productSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		mapServiceError(c, err, ErrCodeInternal)
		return
	}
	noContent(c)
}

// mapServiceError translates service-level sentinel errors into the HTTP
// error envelope. fallback names the code used for unclassified errors.
func mapServiceError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, services.ErrProductNotFound),
		errors.Is(err, services.ErrOrderNotFound):
		fail(c, http.StatusNotFound, ErrCodeNotFound, err.Error())
	case errors.Is(err, services.ErrInvalidTransition):
		fail(c, http.StatusConflict, ErrCodeInvalidTransition, err.Error())
	case errors.Is(err, services.ErrInvalidProduct),
		errors.Is(err, services.ErrInvalidPrice),
		errors.Is(err, services.ErrInvalidField),
		errors.Is(err, services.ErrInvalidCustomer),
		errors.Is(err, services.ErrEmptyOrder),
		errors.Is(err, services.ErrInvalidQuantity),
		errors.Is(err, services.ErrInvalidStatus):
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
	case errors.Is(err, storage.ErrUnavailable):
		fail(c, http.StatusServiceUnavailable, ErrCodeUnavailable, "storage unavailable")
	default:
		fail(c, http.StatusInternalServerError, fallback, err.Error())
	}
}
