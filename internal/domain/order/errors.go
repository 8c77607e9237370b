package order

import (
	"fmt"

	"github.com/SneakersFlash/SneakersFlash2.0-Admin/internal/domain/shared"
)

var (
	// ErrInvalidTransition matches every *InvalidTransitionError via errors.Is.
	ErrInvalidTransition = shared.NewDomainError("INVALID_TRANSITION", "Order status transition is not allowed")
	ErrOrderNotFound     = shared.NewDomainError("NOT_FOUND", "Order not found")
	ErrNotForwardable    = shared.NewDomainError("ORDER_NOT_FORWARDABLE", "Order status is not forwarded to the marketplace")
	ErrInvalidStatus     = shared.NewDomainError("INVALID_STATUS", "Unknown order status")
)

// InvalidTransitionError is returned when the requested status is not
// reachable from the order's current status.
type InvalidTransitionError struct {
	Current   Status
	Attempted Status
}

func (e *InvalidTransitionError) Error() string {
	if e.Current.IsTerminal() {
		return fmt.Sprintf("cannot change order status to %s: order is already %s", e.Attempted, e.Current)
	}
	return fmt.Sprintf("cannot change order status from %s to %s", e.Current, e.Attempted)
}

// Is lets errors.Is(err, ErrInvalidTransition) match.
func (e *InvalidTransitionError) Is(target error) bool {
	return target == ErrInvalidTransition
}

// Code returns the domain error code used by the HTTP layer.
func (e *InvalidTransitionError) Code() string {
	return ErrInvalidTransition.Code
}
