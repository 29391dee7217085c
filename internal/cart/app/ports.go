package app

import (
	"context"

	"github.com/dwikikusuma/storefront/internal/cart/domain"
)

type CartRepo interface {
	FindByUser(ctx context.Context, userID string) ([]domain.CartLine, error)
	FindByUserAndProduct(ctx context.Context, userID, productID string) (domain.CartLine, error)
	Insert(ctx context.Context, line domain.CartLine) (domain.CartLine, error)
	UpdateQuantity(ctx context.Context, lineID string, quantity int64) error
}

// Product is the slice of a catalog record the cart needs: display data plus
// the normalized stock count.
type Product struct {
	ID    string
	Name  string
	Price float64
	Stock int64
}

// ProductReader resolves catalog products on behalf of the cart.
// Implementations map malformed identifiers to ErrInvalidProductID and missing
// products to ErrProductNotFound.
type ProductReader interface {
	Product(ctx context.Context, productID string) (Product, error)
}
