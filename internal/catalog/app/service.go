package app

import (
	"context"
	"errors"
	"strings"

	"github.com/dwikikusuma/storefront/internal/catalog/domain"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrInvalidID    = errors.New("invalid product id")
	ErrNotFound     = errors.New("product not found")
)

type Service struct {
	repo ProductRepo
}

func NewService(repo ProductRepo) *Service {
	return &Service{
		repo: repo,
	}
}

func (s *Service) CreateProduct(ctx context.Context, name, desc string, price float64, stock int64) (domain.Product, error) {
	name = strings.TrimSpace(name)

	if name == "" || price < 0 || stock < 0 {
		return domain.Product{}, ErrInvalidInput
	}

	p := domain.Product{
		Name:        name,
		Description: desc,
		Price:       price,
		Stock:       domain.NewStock(stock),
	}

	product, err := s.repo.Create(ctx, p)
	if err != nil {
		return domain.Product{}, err
	}

	return product, nil
}

func (s *Service) GetProduct(ctx context.Context, id string) (domain.Product, error) {
	if strings.TrimSpace(id) == "" {
		return domain.Product{}, ErrInvalidID
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) ListProducts(ctx context.Context) ([]domain.Product, error) {
	return s.repo.List(ctx)
}

func (s *Service) UpdateProduct(ctx context.Context, id string, upd domain.ProductUpdate) (domain.Product, error) {
	if strings.TrimSpace(id) == "" {
		return domain.Product{}, ErrInvalidID
	}
	if upd.Name != nil && strings.TrimSpace(*upd.Name) == "" {
		return domain.Product{}, ErrInvalidInput
	}
	if upd.Price != nil && *upd.Price < 0 {
		return domain.Product{}, ErrInvalidInput
	}
	if upd.Stock != nil && *upd.Stock < 0 {
		return domain.Product{}, ErrInvalidInput
	}
	return s.repo.Update(ctx, id, upd)
}

func (s *Service) DeleteProduct(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return ErrInvalidID
	}
	return s.repo.Delete(ctx, id)
}
