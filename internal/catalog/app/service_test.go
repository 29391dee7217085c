package app

import (
	"context"
	"testing"

	"github.com/dwikikusuma/storefront/internal/catalog/domain"
)

type fakeRepo struct{}

func (fakeRepo) Create(ctx context.Context, p domain.Product) (domain.Product, error) { return p, nil }
func (fakeRepo) Get(ctx context.Context, id string) (domain.Product, error) {
	return domain.Product{}, nil
}
func (fakeRepo) List(ctx context.Context) ([]domain.Product, error) { return nil, nil }
func (fakeRepo) Update(ctx context.Context, id string, upd domain.ProductUpdate) (domain.Product, error) {
	return domain.Product{}, nil
}
func (fakeRepo) Delete(ctx context.Context, id string) error { return nil }

func TestCreateProductValidation(t *testing.T) {
	svc := NewService(fakeRepo{})

	t.Run("empty name -> invalid", func(t *testing.T) {
		_, err := svc.CreateProduct(context.Background(), "   ", "x", 9.99, 10)
		if err != ErrInvalidInput {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("negative price -> invalid", func(t *testing.T) {
		_, err := svc.CreateProduct(context.Background(), "Keyboard", "x", -1, 10)
		if err != ErrInvalidInput {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("negative stock -> invalid", func(t *testing.T) {
		_, err := svc.CreateProduct(context.Background(), "Keyboard", "x", 9.99, -1)
		if err != ErrInvalidInput {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("name is trimmed", func(t *testing.T) {
		p, err := svc.CreateProduct(context.Background(), "  Keyboard  ", "x", 9.99, 10)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if p.Name != "Keyboard" {
			t.Fatalf("expected trimmed name, got %q", p.Name)
		}
	})
}

func TestUpdateProductValidation(t *testing.T) {
	svc := NewService(fakeRepo{})

	badName := "  "
	badPrice := -0.01
	badStock := int64(-1)

	t.Run("blank id -> invalid id", func(t *testing.T) {
		_, err := svc.UpdateProduct(context.Background(), "  ", domain.ProductUpdate{})
		if err != ErrInvalidID {
			t.Fatalf("expected ErrInvalidID, got %v", err)
		}
	})

	t.Run("blank name -> invalid", func(t *testing.T) {
		_, err := svc.UpdateProduct(context.Background(), "abc", domain.ProductUpdate{Name: &badName})
		if err != ErrInvalidInput {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("negative price -> invalid", func(t *testing.T) {
		_, err := svc.UpdateProduct(context.Background(), "abc", domain.ProductUpdate{Price: &badPrice})
		if err != ErrInvalidInput {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("negative stock -> invalid", func(t *testing.T) {
		_, err := svc.UpdateProduct(context.Background(), "abc", domain.ProductUpdate{Stock: &badStock})
		if err != ErrInvalidInput {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}
	})
}
