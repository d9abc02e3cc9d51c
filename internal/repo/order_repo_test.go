package repo

import (
	"context"
	"errors"
	"testing"

	"github.com/tbourn/go-food-backend/internal/domain"
	"github.com/tbourn/go-food-backend/internal/storage"
)

func seedCatalog(t *testing.T, st *storage.Store) {
	t.Helper()
	seedProduct(t, st, domain.Product{
		ID: "1", Name: "Pelmeni", Price: 25, Category: "pelmeni",
		CookName: "Anna", CookPhone: "+971501234567", CookTelegram: "anna_cook",
	})
	seedProduct(t, st, domain.Product{
		ID: "2", Name: "Plov", Price: 30, Category: "plov",
		CookName: "Farkhod", CookPhone: "+971507654321",
	})
}

func TestCreateOrder_TotalAndSnapshot(t *testing.T) {
	st := newRepoStore(t)
	ctx := context.Background()
	seedCatalog(t, st)

	o, err := CreateOrder(ctx, st, NewOrder{
		CustomerName:    "Maria",
		CustomerPhone:   "+971500000000",
		CustomerAddress: "Reem Island",
		Items:           []NewOrderLine{{ProductID: "1", Quantity: 2}},
	})
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}
	if o.TotalAmount != 50 {
		t.Fatalf("total = %v, want 50 (2 x 25.0)", o.TotalAmount)
	}
	if o.Status != domain.StatusPending {
		t.Fatalf("status = %q, want pending", o.Status)
	}
	if len(o.ID) != 8 {
		t.Fatalf("order id %q, want 8 chars", o.ID)
	}
	if o.CreatedAt.IsZero() {
		t.Fatal("CreatedAt unset")
	}
	if len(o.Items) != 1 {
		t.Fatalf("got %d items, want 1", len(o.Items))
	}
	it := o.Items[0]
	if it.ProductID != "1" || it.ProductName != "Pelmeni" || it.Quantity != 2 || it.Price != 25 {
		t.Fatalf("snapshot mismatch: %+v", it)
	}
	if it.CookTelegram != "anna_cook" {
		t.Fatalf("cook telegram = %q, want snapshot", it.CookTelegram)
	}
}

func TestCreateOrder_SkipsUnknownProducts(t *testing.T) {
	st := newRepoStore(t)
	ctx := context.Background()
	seedCatalog(t, st)

	o, err := CreateOrder(ctx, st, NewOrder{
		CustomerName:  "Maria",
		CustomerPhone: "+971500000000",
		Items: []NewOrderLine{
			{ProductID: "1", Quantity: 1},
			{ProductID: "does-not-exist", Quantity: 5},
		},
	})
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}
	if o.TotalAmount != 25 {
		t.Fatalf("total = %v, want 25 (unresolvable line contributes nothing)", o.TotalAmount)
	}
	if len(o.Items) != 1 {
		t.Fatalf("got %d items, want 1", len(o.Items))
	}
}

func TestCreateOrder_AllLinesUnknown(t *testing.T) {
	st := newRepoStore(t)
	o, err := CreateOrder(context.Background(), st, NewOrder{
		CustomerName:  "Maria",
		CustomerPhone: "+971500000000",
		Items:         []NewOrderLine{{ProductID: "ghost", Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}
	if o.TotalAmount != 0 || len(o.Items) != 0 {
		t.Fatalf("order = %+v, want zero total and no items", o)
	}
}

func TestListOrders_StatusFilterWithDecodedItems(t *testing.T) {
	st := newRepoStore(t)
	ctx := context.Background()
	seedCatalog(t, st)

	mk := func() *domain.Order {
		o, err := CreateOrder(ctx, st, NewOrder{
			CustomerName:  "Maria",
			CustomerPhone: "+971500000000",
			Items:         []NewOrderLine{{ProductID: "2", Quantity: 1}},
		})
		if err != nil {
			t.Fatalf("CreateOrder: %v", err)
		}
		return o
	}
	o1, o2, o3 := mk(), mk(), mk()
	_ = o1
	_ = o3
	if err := UpdateOrderStatus(ctx, st, o2.ID, domain.StatusConfirmed); err != nil {
		t.Fatalf("UpdateOrderStatus: %v", err)
	}

	pending, err := ListOrders(ctx, st, "pending")
	if err != nil {
		t.Fatalf("ListOrders(pending): %v", err)
	}
	if len(pending) != 2 {
		t.Fatalf("got %d pending orders, want 2", len(pending))
	}
	for _, o := range pending {
		if o.Status != domain.StatusPending {
			t.Fatalf("filter leaked status %q", o.Status)
		}
		if len(o.Items) != 1 || o.Items[0].ProductName != "Plov" {
			t.Fatalf("items not decoded: %+v", o.Items)
		}
	}

	all, err := ListOrders(ctx, st, "")
	if err != nil {
		t.Fatalf("ListOrders: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("got %d orders, want 3", len(all))
	}
}

func TestDeleteProduct_DoesNotAlterOrderSnapshots(t *testing.T) {
	st := newRepoStore(t)
	ctx := context.Background()
	seedCatalog(t, st)

	o, err := CreateOrder(ctx, st, NewOrder{
		CustomerName:  "Maria",
		CustomerPhone: "+971500000000",
		Items:         []NewOrderLine{{ProductID: "1", Quantity: 2}},
	})
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}

	if err := DeleteProduct(ctx, st, "1"); err != nil {
		t.Fatalf("DeleteProduct: %v", err)
	}

	got, err := GetOrder(ctx, st, o.ID)
	if err != nil {
		t.Fatalf("GetOrder: %v", err)
	}
	if len(got.Items) != 1 {
		t.Fatalf("items lost after product delete: %+v", got.Items)
	}
	if got.Items[0].ProductName != "Pelmeni" || got.Items[0].Price != 25 {
		t.Fatalf("snapshot changed after product delete: %+v", got.Items[0])
	}
	if got.TotalAmount != 50 {
		t.Fatalf("total changed after product delete: %v", got.TotalAmount)
	}
}

func TestGetOrder_NotFound(t *testing.T) {
	st := newRepoStore(t)
	if _, err := GetOrder(context.Background(), st, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestUpdateOrderStatus_UnknownID(t *testing.T) {
	st := newRepoStore(t)
	err := UpdateOrderStatus(context.Background(), st, "missing", domain.StatusCancelled)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestDeleteOrder_RemovesItems(t *testing.T) {
	st := newRepoStore(t)
	ctx := context.Background()
	seedCatalog(t, st)

	o, err := CreateOrder(ctx, st, NewOrder{
		CustomerName:  "Maria",
		CustomerPhone: "+971500000000",
		Items:         []NewOrderLine{{ProductID: "1", Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}

	if err := DeleteOrder(ctx, st, o.ID); err != nil {
		t.Fatalf("DeleteOrder: %v", err)
	}
	if _, err := GetOrder(ctx, st, o.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("order still present: %v", err)
	}
	var count int64
	if err := st.DB.Table("order_items").Where("order_id = ?", o.ID).Count(&count).Error; err != nil {
		t.Fatalf("count items: %v", err)
	}
	if count != 0 {
		t.Fatalf("%d orphan items left behind", count)
	}

	if err := DeleteOrder(ctx, st, o.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second delete err = %v, want ErrNotFound", err)
	}
}

func TestCreateOrder_PersistsUserTelegramID(t *testing.T) {
	st := newRepoStore(t)
	ctx := context.Background()
	seedCatalog(t, st)

	chatID := int64(987654321)
	o, err := CreateOrder(ctx, st, NewOrder{
		CustomerName:   "Maria",
		CustomerPhone:  "+971500000000",
		UserTelegramID: &chatID,
		Items:          []NewOrderLine{{ProductID: "1", Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}
	if o.UserTelegramID == nil || *o.UserTelegramID != chatID {
		t.Fatalf("user telegram id = %v, want %d", o.UserTelegramID, chatID)
	}
}
