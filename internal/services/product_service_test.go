package services

import (
	"context"
	"errors"
	"testing"
)

func TestProductService_AddValidatesInput(t *testing.T) {
	svc := NewProductService(newServiceStore(t))
	ctx := context.Background()

	if _, err := svc.Add(ctx, AddProductInput{Price: 10}); !errors.Is(err, ErrInvalidProduct) {
		t.Fatalf("err = %v, want ErrInvalidProduct", err)
	}
	if _, err := svc.Add(ctx, AddProductInput{Name: "Plov", Price: -1}); !errors.Is(err, ErrInvalidPrice) {
		t.Fatalf("err = %v, want ErrInvalidPrice", err)
	}

	id, err := svc.Add(ctx, AddProductInput{
		Name:        "Plov",
		Price:       30,
		Category:    "plov",
		Ingredients: []string{"Rice", "Lamb", "Carrot"},
	})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}

	p, err := svc.Get(ctx, id)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if len(p.Ingredients) != 3 || p.Ingredients[0] != "Rice" {
		t.Fatalf("ingredients round-trip: %+v", p.Ingredients)
	}
}

func TestProductService_EditField(t *testing.T) {
	svc := NewProductService(newServiceStore(t))
	ctx := context.Background()

	id, err := svc.Add(ctx, AddProductInput{Name: "Borscht", Price: 18})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}

	// JSON numbers decode to float64; price accepts exactly that.
	if err := svc.EditField(ctx, id, "price", 19.5); err != nil {
		t.Fatalf("EditField(price): %v", err)
	}
	if err := svc.EditField(ctx, id, "price", "not-a-number"); !errors.Is(err, ErrInvalidPrice) {
		t.Fatalf("err = %v, want ErrInvalidPrice", err)
	}
	if err := svc.EditField(ctx, id, "status", "x"); !errors.Is(err, ErrInvalidField) {
		t.Fatalf("err = %v, want ErrInvalidField", err)
	}
	if err := svc.EditField(ctx, id, "ingredients", []any{"Beet", "Beef"}); err != nil {
		t.Fatalf("EditField(ingredients): %v", err)
	}

	p, err := svc.Get(ctx, id)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if p.Price != 19.5 || len(p.Ingredients) != 2 {
		t.Fatalf("edits not applied: %+v", p)
	}

	if err := svc.EditField(ctx, "missing", "name", "x"); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("err = %v, want ErrProductNotFound", err)
	}
}

func TestProductService_Delete(t *testing.T) {
	svc := NewProductService(newServiceStore(t))
	ctx := context.Background()

	id, err := svc.Add(ctx, AddProductInput{Name: "Burger", Price: 35})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := svc.Delete(ctx, id); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := svc.Get(ctx, id); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("err = %v, want ErrProductNotFound", err)
	}
	if err := svc.Delete(ctx, id); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("err = %v, want ErrProductNotFound", err)
	}
}
