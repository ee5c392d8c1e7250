package service

import (
	"errors"
	"fmt"
)

var (
	ErrOrderNotFound      = errors.New("order not found")
	ErrStatusConflict     = errors.New("order status changed concurrently")
	ErrNothingToSettle    = errors.New("no open orders for this table")
	ErrInvalidPaymentMode = errors.New("payment mode must be CASH or ONLINE")
	ErrInvalidMenuItem    = errors.New("invalid menu item")
	ErrMenuItemNotFound   = errors.New("menu item not found")
	ErrInvalidExpense     = errors.New("invalid expense")
	ErrExpenseNotFound    = errors.New("expense not found")
	ErrInvalidSettings    = errors.New("invalid settings")
	ErrInvalidPassword    = errors.New("invalid password")
	ErrInvalidToken       = errors.New("invalid token")
	ErrForbidden          = errors.New("insufficient role")
	ErrStoreUnavailable   = errors.New("store unavailable")
)

// storeErr marks a persistence failure so the edge can report a degraded store.
func storeErr(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrStoreUnavailable, err)
}

func invalidf(kind error, format string, args ...any) error {
	return fmt.Errorf("%w: %s", kind, fmt.Sprintf(format, args...))
}
