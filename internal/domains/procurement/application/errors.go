package application

import (
	"errors"
	"fmt"

	"github.com/azaconnect/maintenance-api/internal/domains/procurement/domain"
)

var (
	// ErrInvalidInput signals the request violated a domain invariant.
	ErrInvalidInput = errors.New("invalid order input")
	// ErrConflictState signals the operation is not allowed in the
	// aggregate's current state (wrong status, over-receipt, closed order).
	ErrConflictState = errors.New("conflicting order state")
	// ErrRetriesExhausted is returned when an item kept being modified
	// concurrently and the bounded retry loop gave up.
	ErrRetriesExhausted = errors.New("item mutation retries exhausted")
)

// mapError classifies domain sentinels into the application taxonomy so the
// transport layer never has to enumerate domain errors. The wrapped sentinel
// stays reachable through errors.Is.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrInvalidQuantity) ||
		errors.Is(err, domain.ErrQuantityTooHigh) ||
		errors.Is(err, domain.ErrEmptyCode) ||
		errors.Is(err, domain.ErrEmptyOrderNumber) ||
		errors.Is(err, domain.ErrNoItems) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	if errors.Is(err, domain.ErrInvalidState) ||
		errors.Is(err, domain.ErrOverReceipt) ||
		errors.Is(err, domain.ErrOrderClosed) {
		return fmt.Errorf("%w: %w", ErrConflictState, err)
	}
	return err
}
