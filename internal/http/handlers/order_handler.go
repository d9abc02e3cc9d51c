// Order HTTP handlers.
//
// This file exposes REST endpoints for the order lifecycle:
//   - POST   /orders              (place an order)
//   - GET    /orders              (list, optional ?status= filter)
//   - GET    /orders/{id}         (fetch one with line items)
//   - PUT    /orders/{id}/status  (advance or cancel)
//   - DELETE /orders/{id}         (remove)
package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-food-backend/internal/domain"
	"github.com/tbourn/go-food-backend/internal/http/middleware"
	"github.com/tbourn/go-food-backend/internal/repo"
)

// OrderService defines order lifecycle operations consumed by HTTP handlers.
//
// Implementations should be safe for concurrent use and must honor the
// provided context for cancellation and timeouts.
type OrderService interface {
	// Create places an order; notification dispatch happens out of band.
	Create(ctx context.Context, in repo.NewOrder) (*domain.Order, error)
	// List returns orders newest first, optionally filtered by status.
	List(ctx context.Context, status string) ([]domain.Order, error)
	// Get returns one order with its line items.
	Get(ctx context.Context, id string) (*domain.Order, error)
	// UpdateStatus applies a lifecycle transition and returns the updated order.
	UpdateStatus(ctx context.Context, id, status string) (*domain.Order, error)
	// Delete removes an order and its line items.
	Delete(ctx context.Context, id string) error
}

//
// Handler wiring
//

// Handlers groups HTTP endpoints for the catalog and the order lifecycle.
// It depends on abstract service interfaces to keep transport concerns
// separate from business logic.
type Handlers struct {
	productSvc ProductService
	orderSvc   OrderService
}

// New constructs and returns a Handlers instance bound to the given services.
func New(productSvc ProductService, orderSvc OrderService) *Handlers {
	return &Handlers{productSvc: productSvc, orderSvc: orderSvc}
}

//
// DTOs
//

// OrderItemRequest is one requested line in a new order.
type OrderItemRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,gt=0"`
}

// CreateOrderRequest is the JSON payload for placing an order.
type CreateOrderRequest struct {
	CustomerName     string             `json:"customer_name" binding:"required,min=1,max=255"`
	CustomerPhone    string             `json:"customer_phone" binding:"required,min=1,max=50"`
	CustomerAddress  string             `json:"customer_address"`
	CustomerTelegram string             `json:"customer_telegram"`
	UserTelegramID   *int64             `json:"user_telegram_id"`
	Items            []OrderItemRequest `json:"items" binding:"required,min=1,dive"`
}

// UpdateStatusRequest is the JSON payload for a status transition.
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

//
// Handlers
//

// CreateOrder places a new order and returns the persisted aggregate.
func (h *Handlers) CreateOrder(c *gin.Context) {
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	in := repo.NewOrder{
		CustomerName:     strings.TrimSpace(req.CustomerName),
		CustomerPhone:    strings.TrimSpace(req.CustomerPhone),
		CustomerAddress:  req.CustomerAddress,
		CustomerTelegram: req.CustomerTelegram,
		UserTelegramID:   req.UserTelegramID,
	}
	for _, it := range req.Items {
		in.Items = append(in.Items, repo.NewOrderLine{ProductID: it.ProductID, Quantity: it.Quantity})
	}

	o, err := h.orderSvc.Create(c.Request.Context(), in)
	if err != nil {
		mapServiceError(c, err, ErrCodeCreateFailed)
		return
	}

	middleware.CountOrderCreated()
	middleware.LoggerFrom(c).Info().
		Str("order_id", o.ID).
		Float64("total", o.TotalAmount).
		Int("items", len(o.Items)).
		Msg("order placed")
	ok(c, http.StatusCreated, o)
}

// ListOrders returns all orders, optionally filtered with ?status=.
func (h *Handlers) ListOrders(c *gin.Context) {
	orders, err := h.orderSvc.List(c.Request.Context(), strings.TrimSpace(c.Query("status")))
	if err != nil {
		mapServiceError(c, err, ErrCodeListFailed)
		return
	}
	ok(c, http.StatusOK, orders)
}

// GetOrder returns one order with decoded line items.
func (h *Handlers) GetOrder(c *gin.Context) {
	o, err := h.orderSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		mapServiceError(c, err, ErrCodeInternal)
		return
	}
	ok(c, http.StatusOK, o)
}

// UpdateOrderStatus applies a lifecycle transition. The target status is read
// from the JSON body, falling back to a ?status= query parameter for
// compatibility with simple clients.
func (h *Handlers) UpdateOrderStatus(c *gin.Context) {
	status := strings.TrimSpace(c.Query("status"))
	if status == "" {
		var req UpdateStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "status required")
			return
		}
		status = strings.TrimSpace(req.Status)
	}

	o, err := h.orderSvc.UpdateStatus(c.Request.Context(), c.Param("id"), status)
	if err != nil {
		mapServiceError(c, err, ErrCodeInternal)
		return
	}

	middleware.CountStatusChange(string(o.Status))
	ok(c, http.StatusOK, o)
}

// DeleteOrder removes an order and its line items.
func (h *Handlers) DeleteOrder(c *gin.Context) {
	if err := h.orderSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		mapServiceError(c, err, ErrCodeInternal)
		return
	}
	noContent(c)
}
