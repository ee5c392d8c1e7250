package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"marwad-digital-menu/hub-svc/internal/domain"
	"marwad-digital-menu/hub-svc/internal/validation"
)

type ExpenseService struct {
	repository ExpenseRepository
	publisher  EventPublisher
}

func NewExpenseService(repository ExpenseRepository, publisher EventPublisher) *ExpenseService {
	return &ExpenseService{repository: repository, publisher: publisher}
}

func (s *ExpenseService) List(ctx context.Context) ([]domain.Expense, error) {
	expenses, err := s.repository.ListExpenses(ctx)
	if err != nil {
		return nil, storeErr("list expenses", err)
	}
	return expenses, nil
}

func (s *ExpenseService) Add(ctx context.Context, e *domain.Expense) error {
	e.Item = strings.TrimSpace(e.Item)
	e.PaidBy = strings.TrimSpace(e.PaidBy)
	e.Description = strings.TrimSpace(e.Description)
	if e.PaymentMode == "" {
		e.PaymentMode = domain.PaymentCash
	}

	switch {
	case e.Item == "":
		return invalidf(ErrInvalidExpense, "item is required")
	case e.Amount <= 0:
		return invalidf(ErrInvalidExpense, "amount must be positive")
	case e.Amount > validation.MaxAmount:
		return invalidf(ErrInvalidExpense, "amount exceeds the limit")
	case e.PaidBy == "":
		return invalidf(ErrInvalidExpense, "paidBy is required")
	case !e.PaymentMode.Valid():
		return ErrInvalidPaymentMode
	}

	if err := s.repository.CreateExpense(ctx, e); err != nil {
		return storeErr("create expense", err)
	}

	publish(ctx, s.publisher, domain.KafkaMessage{
		Type:        domain.EventExpenseAdded,
		ExpenseID:   e.ID,
		Amount:      e.Amount,
		PaymentMode: e.PaymentMode,
		Timestamp:   e.Date,
	})
	return nil
}

func (s *ExpenseService) Delete(ctx context.Context, id int) error {
	e, err := s.repository.DeleteExpense(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrExpenseNotFound
	}
	if err != nil {
		return storeErr("delete expense", err)
	}
	publish(ctx, s.publisher, domain.KafkaMessage{
		Type:        domain.EventExpenseDeleted,
		ExpenseID:   e.ID,
		Amount:      e.Amount,
		PaymentMode: e.PaymentMode,
		Timestamp:   e.Date,
	})
	return nil
}
