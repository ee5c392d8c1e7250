package tests

import (
	"context"
	"errors"
	"testing"
	"time"

	"marwad-digital-menu/hub-svc/internal/domain"
	"marwad-digital-menu/hub-svc/internal/mocks"
	"marwad-digital-menu/hub-svc/internal/service"
	"marwad-digital-menu/hub-svc/internal/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type buildFunc = func([]domain.Order) (*domain.Sale, error)

// settleWith makes the repository mock hand the given open orders to the
// service's sale builder, the way the transaction does.
func settleWith(orders []domain.Order) func(context.Context, string, buildFunc) (*domain.Sale, error) {
	return func(_ context.Context, _ string, build buildFunc) (*domain.Sale, error) {
		sale, err := build(orders)
		if err != nil {
			return nil, err
		}
		sale.ID = 42
		sale.SettledAt = time.Now()
		return sale, nil
	}
}

func newSettlementService(t *testing.T) (*service.SettlementService, *mocks.SaleRepository, *mocks.CustomerCache, *mocks.EventPublisher) {
	repository := mocks.NewSaleRepository(t)
	customers := mocks.NewCustomerCache(t)
	publisher := mocks.NewEventPublisher(t)
	return service.NewSettlementService(repository, customers, publisher, service.NewKeyedMutex()), repository, customers, publisher
}

func TestSettlementService_SettleTable(t *testing.T) {
	ctx := context.Background()

	t.Run("open orders fold into one sale", func(t *testing.T) {
		svc, repository, _, publisher := newSettlementService(t)
		open := []domain.Order{
			{ID: 1, TableID: "5", Status: domain.StatusCompleted, Total: 250,
				Items: []domain.OrderItem{{Name: "Thali", Price: 250, Qty: 1}}},
			{ID: 2, TableID: "5", Status: domain.StatusPreparing, Total: 150,
				Items: []domain.OrderItem{{Name: "Lassi", Price: 75, Qty: 2}}},
		}
		repository.On("SettleTable", ctx, "5", mock.Anything).Return(settleWith(open)).Once()
		publisher.On("Publish", mock.Anything, eventOfType(domain.EventSaleRecorded)).Return(nil).Once()

		sale, err := svc.SettleTable(ctx, "5", domain.PaymentOnline)
		require.NoError(t, err)
		assert.Equal(t, 400.0, sale.Total)
		assert.Equal(t, domain.PaymentOnline, sale.PaymentMode)
		assert.Equal(t, []domain.SaleItem{
			{Name: "Thali", Qty: 1, Price: 250},
			{Name: "Lassi", Qty: 2, Price: 75},
		}, sale.Items)
		assert.False(t, sale.IsWalkIn)
	})

	t.Run("cancelled order is left out of the sale", func(t *testing.T) {
		svc, repository, _, publisher := newSettlementService(t)
		orders := []domain.Order{
			{ID: 1, TableID: "5", Status: domain.StatusCompleted, Total: 250,
				Items: []domain.OrderItem{{Name: "Thali", Price: 250, Qty: 1}}},
			{ID: 2, TableID: "5", Status: domain.StatusPreparing, Total: 150,
				Items: []domain.OrderItem{{Name: "Lassi", Price: 75, Qty: 2}}},
			{ID: 3, TableID: "5", Status: domain.StatusCancelled, Total: 40,
				Items: []domain.OrderItem{{Name: "Kachori", Price: 40, Qty: 1}}},
		}
		repository.On("SettleTable", ctx, "5", mock.Anything).Return(settleWith(orders)).Once()
		publisher.On("Publish", mock.Anything, eventOfType(domain.EventSaleRecorded)).Return(nil).Once()

		sale, err := svc.SettleTable(ctx, "5", domain.PaymentCash)
		require.NoError(t, err)
		assert.Equal(t, 400.0, sale.Total)
		assert.Len(t, sale.Items, 2)
		for _, line := range sale.Items {
			assert.NotEqual(t, "Kachori", line.Name)
		}
	})

	t.Run("equal lines are not merged", func(t *testing.T) {
		svc, repository, _, publisher := newSettlementService(t)
		tea := domain.OrderItem{Name: "Tea", Price: 15, Qty: 1}
		open := []domain.Order{
			{ID: 1, TableID: "2", Total: 15, Items: []domain.OrderItem{tea}},
			{ID: 2, TableID: "2", Total: 15, Items: []domain.OrderItem{tea}},
		}
		repository.On("SettleTable", ctx, "2", mock.Anything).Return(settleWith(open)).Once()
		publisher.On("Publish", mock.Anything, mock.Anything).Return(nil).Once()

		sale, err := svc.SettleTable(ctx, "2", domain.PaymentCash)
		require.NoError(t, err)
		assert.Len(t, sale.Items, 2)
	})

	t.Run("nothing to settle writes no sale", func(t *testing.T) {
		svc, repository, _, _ := newSettlementService(t)
		repository.On("SettleTable", ctx, "9", mock.Anything).Return(settleWith(nil)).Once()

		sale, err := svc.SettleTable(ctx, "9", domain.PaymentCash)
		assert.ErrorIs(t, err, service.ErrNothingToSettle)
		assert.NotErrorIs(t, err, service.ErrStoreUnavailable)
		assert.Nil(t, sale)
	})

	t.Run("invalid payment mode", func(t *testing.T) {
		svc, _, _, _ := newSettlementService(t)
		_, err := svc.SettleTable(ctx, "5", "UPI")
		assert.ErrorIs(t, err, service.ErrInvalidPaymentMode)
	})

	t.Run("store failure", func(t *testing.T) {
		svc, repository, _, _ := newSettlementService(t)
		repository.On("SettleTable", ctx, "5", mock.Anything).Return(nil, errors.New("deadlock")).Once()

		_, err := svc.SettleTable(ctx, "5", domain.PaymentCash)
		assert.ErrorIs(t, err, service.ErrStoreUnavailable)
	})
}

func TestSettlementService_PortionLineRoundTrip(t *testing.T) {
	ctx := context.Background()
	orders := newOrderFixture(t)
	var stored *domain.Order
	orders.repository.On("CreateOrder", ctx, mock.Anything).Run(func(args mock.Arguments) {
		stored = args.Get(1).(*domain.Order)
	}).Return(nil).Once()
	orders.publisher.On("Publish", mock.Anything, mock.Anything).Return(nil)

	_, err := orders.svc.PlaceOrder(ctx, validation.OrderInput{
		TableID: "3",
		Items:   []validation.ItemInput{{Name: "Paneer (Half)", Price: 120.0, Qty: 2.0}},
		Total:   240.0,
	})
	require.NoError(t, err)

	svc, repository, _, publisher := newSettlementService(t)
	repository.On("SettleTable", ctx, "3", mock.Anything).Return(settleWith([]domain.Order{*stored})).Once()
	publisher.On("Publish", mock.Anything, mock.Anything).Return(nil).Once()

	sale, err := svc.SettleTable(ctx, "3", domain.PaymentCash)
	require.NoError(t, err)
	assert.Equal(t, []domain.SaleItem{{Name: "Paneer (Half)", Qty: 2, Price: 120}}, sale.Items)
	assert.Equal(t, 240.0, sale.Total)
}

func TestSettlementService_SettleManual(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name         string
		items        []validation.ItemInput
		total        any
		mode         domain.PaymentMode
		prepareMocks func(*mocks.SaleRepository, *mocks.EventPublisher)
		wantErr      bool
	}{
		{
			name:  "walk-in sale",
			items: []validation.ItemInput{{Name: "Chai", Price: 20.0, Qty: 3.0}},
			total: 60.0,
			mode:  domain.PaymentCash,
			prepareMocks: func(r *mocks.SaleRepository, p *mocks.EventPublisher) {
				r.On("CreateSale", ctx, mock.MatchedBy(func(s *domain.Sale) bool {
					return s.TableID == domain.TableWalkIn && s.IsWalkIn && s.Total == 60
				})).Return(nil).Once()
				p.On("Publish", mock.Anything, eventOfType(domain.EventSaleRecorded)).Return(nil).Once()
			},
		},
		{
			name:         "empty cart",
			mode:         domain.PaymentCash,
			prepareMocks: func(*mocks.SaleRepository, *mocks.EventPublisher) {},
			wantErr:      true,
		},
		{
			name:         "total mismatch",
			items:        []validation.ItemInput{{Name: "Chai", Price: 20.0, Qty: 3.0}},
			total:        30.0,
			mode:         domain.PaymentOnline,
			prepareMocks: func(*mocks.SaleRepository, *mocks.EventPublisher) {},
			wantErr:      true,
		},
		{
			name:         "bad payment mode",
			items:        []validation.ItemInput{{Name: "Chai", Price: 20.0, Qty: 3.0}},
			mode:         "cash",
			prepareMocks: func(*mocks.SaleRepository, *mocks.EventPublisher) {},
			wantErr:      true,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			svc, repository, _, publisher := newSettlementService(t)
			testCase.prepareMocks(repository, publisher)

			sale, err := svc.SettleManual(ctx, testCase.items, testCase.total, testCase.mode)
			if testCase.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, domain.TableWalkIn, sale.TableID)
		})
	}
}

func TestSettlementService_ClearHistory(t *testing.T) {
	ctx := context.Background()

	t.Run("clears and announces", func(t *testing.T) {
		svc, repository, customers, publisher := newSettlementService(t)
		repository.On("ClearHistory", ctx).Return(nil).Once()
		customers.On("ClearCustomerMarkers", ctx).Return(nil).Once()
		publisher.On("Publish", mock.Anything, eventOfType(domain.EventHistoryCleared)).Return(nil).Once()

		assert.NoError(t, svc.ClearHistory(ctx))
	})

	t.Run("store failure announces nothing", func(t *testing.T) {
		svc, repository, _, _ := newSettlementService(t)
		repository.On("ClearHistory", ctx).Return(errors.New("lock timeout")).Once()

		assert.ErrorIs(t, svc.ClearHistory(ctx), service.ErrStoreUnavailable)
	})
}
