package domain

import (
	"errors"
	"fmt"
	"strings"
)

type Status string

const (
	StatusPendingApproval Status = "pending_approval"
	StatusPending         Status = "pending"
	StatusPreparing       Status = "preparing"
	StatusOutForDelivery  Status = "out_for_delivery"
	StatusCompleted       Status = "completed"
	StatusDelivered       Status = "delivered"
	StatusCancelled       Status = "cancelled"
)

var (
	ErrUnknownStatus     = errors.New("unknown order status")
	ErrIllegalTransition = errors.New("illegal status transition")
)

// transitions lists every legal next state. Completed orders leave the
// table only through settlement, which bypasses this table.
var transitions = map[Status][]Status{
	StatusPendingApproval: {StatusPending, StatusCancelled},
	StatusPending:         {StatusPreparing, StatusCancelled},
	StatusPreparing:       {StatusCompleted, StatusDelivered, StatusOutForDelivery, StatusCancelled},
	StatusOutForDelivery:  {StatusDelivered, StatusCancelled},
	StatusCompleted:       {},
	StatusDelivered:       {},
	StatusCancelled:       {},
}

func ParseStatus(s string) (Status, error) {
	st := Status(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := transitions[st]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownStatus, s)
	}
	return st, nil
}

func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsTerminal reports whether clear-history may delete an order in this state.
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusDelivered || s == StatusCancelled
}

// Settled reports whether the order is already accounted for in a sale.
func (s Status) Settled() bool {
	return s == StatusCancelled || s == StatusDelivered
}

// SettledStatuses are the statuses whose orders never join a table settlement.
func SettledStatuses() []Status {
	return []Status{StatusCancelled, StatusDelivered}
}

func TerminalStatuses() []Status {
	return []Status{StatusCompleted, StatusDelivered, StatusCancelled}
}

// CheckTransition returns a wrapped ErrIllegalTransition when from→to is not allowed.
func CheckTransition(from, to Status) error {
	if !from.CanTransitionTo(to) {
		return fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, from, to)
	}
	return nil
}
