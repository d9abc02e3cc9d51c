package services

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/tbourn/go-food-backend/internal/domain"
	"github.com/tbourn/go-food-backend/internal/repo"
	"github.com/tbourn/go-food-backend/internal/storage"
)

// fakeNotifier records the orders handed to it.
type fakeNotifier struct {
	mu      sync.Mutex
	created []*domain.Order
	changed []*domain.Order
}

func (f *fakeNotifier) OrderCreated(o *domain.Order) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.created = append(f.created, o)
}

func (f *fakeNotifier) StatusChanged(o *domain.Order) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.changed = append(f.changed, o)
}

func newServiceStore(t *testing.T) *storage.Store {
	t.Helper()

	path := filepath.Join(t.TempDir(), fmt.Sprintf("svc_test_%d.db", time.Now().UnixNano()))
	st, err := storage.Open(context.Background(), storage.Options{SQLitePath: path})
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })
	if err := st.InitSchema(context.Background()); err != nil {
		t.Fatalf("init schema: %v", err)
	}
	return st
}

func seedTestProduct(t *testing.T, st *storage.Store) {
	t.Helper()
	p := domain.Product{ID: "1", Name: "Pelmeni", Price: 25, CookTelegram: "anna_cook"}
	if _, err := repo.AddProduct(context.Background(), st, &p); err != nil {
		t.Fatalf("seed product: %v", err)
	}
}

func validNewOrder() repo.NewOrder {
	return repo.NewOrder{
		CustomerName:  "Maria",
		CustomerPhone: "+971500000000",
		Items:         []repo.NewOrderLine{{ProductID: "1", Quantity: 2}},
	}
}

func TestOrderService_Create_NotifiesWithReloadedOrder(t *testing.T) {
	st := newServiceStore(t)
	seedTestProduct(t, st)
	fn := &fakeNotifier{}
	svc := NewOrderService(st, fn)

	o, err := svc.Create(context.Background(), validNewOrder())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if o.TotalAmount != 50 {
		t.Fatalf("total = %v, want 50", o.TotalAmount)
	}
	if len(fn.created) != 1 {
		t.Fatalf("notifier called %d times, want 1", len(fn.created))
	}
	// The dispatcher must see the committed order, items decoded.
	got := fn.created[0]
	if got.ID != o.ID || len(got.Items) != 1 || got.Items[0].ProductName != "Pelmeni" {
		t.Fatalf("notifier got %+v", got)
	}
}

func TestOrderService_Create_BoundaryValidation(t *testing.T) {
	st := newServiceStore(t)
	seedTestProduct(t, st)
	svc := NewOrderService(st, nil)
	ctx := context.Background()

	in := validNewOrder()
	in.CustomerName = ""
	if _, err := svc.Create(ctx, in); !errors.Is(err, ErrInvalidCustomer) {
		t.Fatalf("err = %v, want ErrInvalidCustomer", err)
	}

	in = validNewOrder()
	in.Items = nil
	if _, err := svc.Create(ctx, in); !errors.Is(err, ErrEmptyOrder) {
		t.Fatalf("err = %v, want ErrEmptyOrder", err)
	}

	in = validNewOrder()
	in.Items[0].Quantity = 0
	if _, err := svc.Create(ctx, in); !errors.Is(err, ErrInvalidQuantity) {
		t.Fatalf("err = %v, want ErrInvalidQuantity", err)
	}
}

func TestOrderService_UpdateStatus(t *testing.T) {
	st := newServiceStore(t)
	seedTestProduct(t, st)
	fn := &fakeNotifier{}
	svc := NewOrderService(st, fn)
	ctx := context.Background()

	o, err := svc.Create(ctx, validNewOrder())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := svc.UpdateStatus(ctx, o.ID, "confirmed")
	if err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if got.Status != domain.StatusConfirmed {
		t.Fatalf("status = %q, want confirmed", got.Status)
	}
	if len(fn.changed) != 1 || fn.changed[0].Status != domain.StatusConfirmed {
		t.Fatalf("notifier not handed the new state: %+v", fn.changed)
	}

	// Backward move is rejected by the transition table.
	if _, err := svc.UpdateStatus(ctx, o.ID, "pending"); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("err = %v, want ErrInvalidTransition", err)
	}

	// Cancellation is always legal from a non-terminal state.
	if _, err := svc.UpdateStatus(ctx, o.ID, "cancelled"); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if _, err := svc.UpdateStatus(ctx, o.ID, "confirmed"); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("transition out of cancelled must fail, got %v", err)
	}
}

func TestOrderService_UpdateStatus_Invalid(t *testing.T) {
	st := newServiceStore(t)
	svc := NewOrderService(st, nil)
	ctx := context.Background()

	if _, err := svc.UpdateStatus(ctx, "whatever", "frying"); !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("err = %v, want ErrInvalidStatus", err)
	}
	if _, err := svc.UpdateStatus(ctx, "missing", "confirmed"); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("err = %v, want ErrOrderNotFound", err)
	}
}

func TestOrderService_List_RejectsUnknownStatusFilter(t *testing.T) {
	st := newServiceStore(t)
	svc := NewOrderService(st, nil)
	if _, err := svc.List(context.Background(), "frying"); !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("err = %v, want ErrInvalidStatus", err)
	}
}

func TestOrderService_Get_NotFound(t *testing.T) {
	st := newServiceStore(t)
	svc := NewOrderService(st, nil)
	if _, err := svc.Get(context.Background(), "missing"); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("err = %v, want ErrOrderNotFound", err)
	}
}

func TestOrderService_Delete(t *testing.T) {
	st := newServiceStore(t)
	seedTestProduct(t, st)
	svc := NewOrderService(st, nil)
	ctx := context.Background()

	o, err := svc.Create(ctx, validNewOrder())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := svc.Delete(ctx, o.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := svc.Delete(ctx, o.ID); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("err = %v, want ErrOrderNotFound", err)
	}
}
