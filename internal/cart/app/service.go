package app

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"

	"github.com/dwikikusuma/storefront/internal/cart/domain"
	"github.com/dwikikusuma/storefront/pkg/keymutex"
)

var (
	ErrInvalidQuantity   = errors.New("quantity must be positive")
	ErrInvalidProductID  = errors.New("invalid product id")
	ErrProductNotFound   = errors.New("product not found")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrStockExceeded     = errors.New("adding this quantity would exceed available stock")
	ErrCartEmpty         = errors.New("cart is empty")
	ErrLineNotFound      = errors.New("cart line not found")
)

type AddOutcome int

const (
	OutcomeCreated AddOutcome = iota
	OutcomeMerged
)

// AddResult reports whether the add created a new line or merged into an
// existing one, and the line as written.
type AddResult struct {
	Outcome AddOutcome
	Line    domain.CartLine
}

type Service struct {
	repo    CartRepo
	catalog ProductReader
	merges  *keymutex.KeyMutex
	fanout  int
}

func NewService(repo CartRepo, catalog ProductReader, fanout int) *Service {
	if fanout <= 0 {
		fanout = 10
	}

	return &Service{
		repo:    repo,
		catalog: catalog,
		merges:  keymutex.New(),
		fanout:  fanout,
	}
}

// AddItem puts quantity units of a product into the user's cart, merging into
// the existing line for the pair if there is one. The read-merge-write section
// is serialized per (user, product) key so concurrent adds cannot lose an
// update or push the merged quantity past the validated stock.
func (s *Service) AddItem(ctx context.Context, userID, productID string, quantity int64) (AddResult, error) {
	if quantity <= 0 {
		return AddResult{}, ErrInvalidQuantity
	}

	product, err := s.catalog.Product(ctx, productID)
	if err != nil {
		return AddResult{}, err
	}

	if err := ValidateStock(quantity, product.Stock); err != nil {
		return AddResult{}, err
	}

	key := mergeKey(userID, productID)
	s.merges.Lock(key)
	defer s.merges.Unlock(key)

	existing, err := s.repo.FindByUserAndProduct(ctx, userID, productID)
	switch {
	case errors.Is(err, ErrLineNotFound):
		line, err := s.repo.Insert(ctx, domain.CartLine{
			UserID:    userID,
			ProductID: productID,
			Quantity:  quantity,
		})
		if err != nil {
			return AddResult{}, err
		}
		return AddResult{Outcome: OutcomeCreated, Line: line}, nil

	case err != nil:
		return AddResult{}, err
	}

	merged := existing.Quantity + quantity
	if merged > product.Stock {
		return AddResult{}, ErrStockExceeded
	}

	if err := s.repo.UpdateQuantity(ctx, existing.ID.Hex(), merged); err != nil {
		return AddResult{}, err
	}

	existing.Quantity = merged
	return AddResult{Outcome: OutcomeMerged, Line: existing}, nil
}

// GetCart joins the user's cart lines against the catalog and computes the
// grand total. A line whose product no longer resolves is dropped from the
// view and counted as stale rather than failing the read; an empty cart is
// reported as ErrCartEmpty, which is distinct from a view with zero lines.
func (s *Service) GetCart(ctx context.Context, userID string) (domain.EnrichedCart, error) {
	lines, err := s.repo.FindByUser(ctx, userID)
	if err != nil {
		return domain.EnrichedCart{}, err
	}
	if len(lines) == 0 {
		return domain.EnrichedCart{}, ErrCartEmpty
	}

	views := make([]*domain.LineView, len(lines))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.fanout)

	for idx := range lines {
		idx := idx
		g.Go(func() error {
			line := lines[idx]
			product, err := s.catalog.Product(ctx, line.ProductID)
			switch {
			case errors.Is(err, ErrInvalidProductID), errors.Is(err, ErrProductNotFound):
				// Dangling reference: the product vanished after the line
				// was written. Keep the rest of the cart readable.
				return nil
			case err != nil:
				return err
			}

			views[idx] = &domain.LineView{
				LineID:    line.ID.Hex(),
				ProductID: line.ProductID,
				Name:      product.Name,
				UnitPrice: product.Price,
				Quantity:  line.Quantity,
				Subtotal:  product.Price * float64(line.Quantity),
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return domain.EnrichedCart{}, err
	}

	cart := domain.EnrichedCart{Lines: make([]domain.LineView, 0, len(lines))}
	for _, v := range views {
		if v == nil {
			cart.StaleLines++
			continue
		}
		cart.Lines = append(cart.Lines, *v)
		cart.GrandTotal += v.Subtotal
	}
	return cart, nil
}

func mergeKey(userID, productID string) string {
	return userID + "\x00" + productID
}
