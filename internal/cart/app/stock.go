package app

import "fmt"

// ValidateStock admits a requested quantity iff the available stock covers it.
// The rejection carries the available count so the caller can tell the user
// how much is actually left.
func ValidateStock(requested, available int64) error {
	if requested > available {
		return fmt.Errorf("%w: only %d items left", ErrInsufficientStock, available)
	}
	return nil
}
