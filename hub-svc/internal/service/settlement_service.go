package service

import (
	"context"
	"errors"
	"log"
	"strings"

	"marwad-digital-menu/hub-svc/internal/domain"
	"marwad-digital-menu/hub-svc/internal/validation"

	"github.com/shopspring/decimal"
)

type SettlementService struct {
	repository SaleRepository
	customers  CustomerCache
	publisher  EventPublisher
	locks      *KeyedMutex
}

func NewSettlementService(repository SaleRepository, customers CustomerCache, publisher EventPublisher, locks *KeyedMutex) *SettlementService {
	return &SettlementService{
		repository: repository,
		customers:  customers,
		publisher:  publisher,
		locks:      locks,
	}
}

// SettleTable folds every open order of the table into one sale and
// cancels those orders. Delivered orders already produced their own sale.
func (s *SettlementService) SettleTable(ctx context.Context, tableID string, mode domain.PaymentMode) (*domain.Sale, error) {
	if !mode.Valid() {
		return nil, ErrInvalidPaymentMode
	}
	tableID = strings.TrimSpace(tableID)
	if tableID == "" {
		return nil, &validation.Error{Field: "tableId", Message: "Table id is required"}
	}

	sale, err := s.settleLocked(ctx, tableID, mode)
	if err != nil {
		return nil, err
	}

	publish(ctx, s.publisher, saleRecorded(sale))
	return sale, nil
}

func (s *SettlementService) settleLocked(ctx context.Context, tableID string, mode domain.PaymentMode) (*domain.Sale, error) {
	unlock := s.locks.Lock(tableID)
	defer unlock()

	sale, err := s.repository.SettleTable(ctx, tableID, func(orders []domain.Order) (*domain.Sale, error) {
		return buildTableSale(tableID, orders, mode)
	})
	if errors.Is(err, ErrNothingToSettle) {
		return nil, err
	}
	if err != nil {
		return nil, storeErr("settle table", err)
	}
	return sale, nil
}

// buildTableSale concatenates the open orders' lines as-is; equal lines are
// not merged. Cancelled and delivered orders are skipped.
func buildTableSale(tableID string, orders []domain.Order, mode domain.PaymentMode) (*domain.Sale, error) {
	sale := &domain.Sale{
		TableID:     tableID,
		PaymentMode: mode,
		IsDelivery:  tableID == domain.TableDelivery,
	}
	total := decimal.Zero
	open := 0
	for _, order := range orders {
		if order.Status.Settled() {
			continue
		}
		open++
		sale.Items = append(sale.Items, saleLines(order.Items)...)
		total = total.Add(decimal.NewFromFloat(order.Total))
		if sale.Delivery == nil && order.Delivery != nil {
			sale.Delivery = order.Delivery
		}
	}
	if open == 0 {
		return nil, ErrNothingToSettle
	}
	sale.Total = total.Round(2).InexactFloat64()
	return sale, nil
}

// SettleManual records an ad-hoc walk-in sale without touching any order.
func (s *SettlementService) SettleManual(ctx context.Context, items []validation.ItemInput, total any, mode domain.PaymentMode) (*domain.Sale, error) {
	if !mode.Valid() {
		return nil, ErrInvalidPaymentMode
	}
	lines, computed, err := validation.ValidateCart(items, total)
	if err != nil {
		return nil, err
	}

	sale := &domain.Sale{
		TableID:     domain.TableWalkIn,
		Items:       saleLines(lines),
		Total:       computed.Round(2).InexactFloat64(),
		PaymentMode: mode,
		IsWalkIn:    true,
	}
	if err := s.repository.CreateSale(ctx, sale); err != nil {
		return nil, storeErr("create sale", err)
	}

	publish(ctx, s.publisher, saleRecorded(sale))
	return sale, nil
}

func (s *SettlementService) ListSales(ctx context.Context) ([]domain.Sale, error) {
	sales, err := s.repository.ListSales(ctx)
	if err != nil {
		return nil, storeErr("list sales", err)
	}
	return sales, nil
}

// ClearHistory removes all sales, expenses and finished orders. Active
// orders survive.
func (s *SettlementService) ClearHistory(ctx context.Context) error {
	if err := s.repository.ClearHistory(ctx); err != nil {
		return storeErr("clear history", err)
	}
	if s.customers != nil {
		if err := s.customers.ClearCustomerMarkers(ctx); err != nil {
			log.Printf("Error clearing customer markers: %v", err)
		}
	}
	publish(ctx, s.publisher, domain.KafkaMessage{Type: domain.EventHistoryCleared})
	return nil
}
