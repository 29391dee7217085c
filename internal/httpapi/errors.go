package httpapi

import (
	"errors"
	"net/http"

	cartapp "github.com/dwikikusuma/storefront/internal/cart/app"
	catalogapp "github.com/dwikikusuma/storefront/internal/catalog/app"
	userapp "github.com/dwikikusuma/storefront/internal/user/app"
)

// httpStatusFromErr maps a service error to the HTTP status and a stable
// machine-readable code. Anything unrecognized is a server failure.
func httpStatusFromErr(err error) (int, string) {
	switch {
	case errors.Is(err, cartapp.ErrInvalidQuantity),
		errors.Is(err, cartapp.ErrInvalidProductID),
		errors.Is(err, catalogapp.ErrInvalidID),
		errors.Is(err, catalogapp.ErrInvalidInput),
		errors.Is(err, userapp.ErrInvalidInput):
		return http.StatusBadRequest, "INVALID_ARGUMENT"

	case errors.Is(err, cartapp.ErrInsufficientStock),
		errors.Is(err, cartapp.ErrStockExceeded):
		return http.StatusBadRequest, "OUT_OF_STOCK"

	case errors.Is(err, cartapp.ErrProductNotFound),
		errors.Is(err, catalogapp.ErrNotFound):
		return http.StatusNotFound, "NOT_FOUND"

	case errors.Is(err, userapp.ErrInvalidCredentials):
		return http.StatusUnauthorized, "UNAUTHENTICATED"

	case errors.Is(err, userapp.ErrEmailTaken):
		return http.StatusConflict, "CONFLICT"

	default:
		return http.StatusInternalServerError, "INTERNAL"
	}
}
