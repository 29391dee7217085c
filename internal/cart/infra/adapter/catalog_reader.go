package adapter

import (
	"context"
	"errors"
	"fmt"

	cartapp "github.com/dwikikusuma/storefront/internal/cart/app"
	catalogapp "github.com/dwikikusuma/storefront/internal/catalog/app"
)

// CatalogServiceReader adapts the catalog service to the cart's ProductReader
// port, translating catalog errors into the cart's own sentinels.
type CatalogServiceReader struct {
	svc *catalogapp.Service
}

func NewCatalogServiceReader(svc *catalogapp.Service) *CatalogServiceReader {
	return &CatalogServiceReader{svc: svc}
}

func (r *CatalogServiceReader) Product(ctx context.Context, productID string) (cartapp.Product, error) {
	p, err := r.svc.GetProduct(ctx, productID)
	switch {
	case errors.Is(err, catalogapp.ErrInvalidID):
		return cartapp.Product{}, fmt.Errorf("%w: %q", cartapp.ErrInvalidProductID, productID)
	case errors.Is(err, catalogapp.ErrNotFound):
		return cartapp.Product{}, cartapp.ErrProductNotFound
	case err != nil:
		return cartapp.Product{}, err
	}

	return cartapp.Product{
		ID:    p.ID.Hex(),
		Name:  p.Name,
		Price: p.Price,
		Stock: p.Stock.Count(),
	}, nil
}
