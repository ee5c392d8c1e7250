package tests

import (
	"context"
	"errors"
	"testing"
	"time"

	"marwad-digital-menu/agg-svc/internal/domain"
	"marwad-digital-menu/agg-svc/internal/mocks"
	"marwad-digital-menu/agg-svc/internal/service"

	"github.com/stretchr/testify/mock"
)

func TestConsumer_Process(t *testing.T) {
	ctx := context.Background()
	settled := time.Date(2026, 3, 1, 20, 0, 0, 0, time.UTC)
	sale := domain.KafkaMessage{
		Type:        domain.EventSaleRecorded,
		SaleID:      3,
		Total:       400,
		PaymentMode: "CASH",
		Items:       []domain.SaleItem{{Name: "Dal Baati", Qty: 2, Price: 200}},
		Timestamp:   settled,
	}

	tests := []struct {
		name           string
		inputMessage   domain.KafkaMessage
		setupMockStore func(*mocks.StoreInterface)
	}{
		{
			name:         "sale recorded on the local day",
			inputMessage: sale,
			setupMockStore: func(mockStore *mocks.StoreInterface) {
				mockStore.On("RecordSale", ctx, "2026-03-02", sale).Return(nil).Once()
			},
		},
		{
			name:         "store error is logged",
			inputMessage: sale,
			setupMockStore: func(mockStore *mocks.StoreInterface) {
				mockStore.On("RecordSale", ctx, "2026-03-02", sale).Return(errors.New("redis error")).Once()
			},
		},
		{
			name:         "expense added",
			inputMessage: domain.KafkaMessage{Type: domain.EventExpenseAdded, Amount: 150, Timestamp: settled},
			setupMockStore: func(mockStore *mocks.StoreInterface) {
				mockStore.On("AdjustExpenses", ctx, "2026-03-02", 150.0).Return(nil).Once()
			},
		},
		{
			name:         "expense deleted",
			inputMessage: domain.KafkaMessage{Type: domain.EventExpenseDeleted, Amount: 150, Timestamp: settled},
			setupMockStore: func(mockStore *mocks.StoreInterface) {
				mockStore.On("AdjustExpenses", ctx, "2026-03-02", -150.0).Return(nil).Once()
			},
		},
		{
			name:         "history cleared",
			inputMessage: domain.KafkaMessage{Type: domain.EventHistoryCleared},
			setupMockStore: func(mockStore *mocks.StoreInterface) {
				mockStore.On("ClearReports", ctx).Return(nil).Once()
			},
		},
		{
			name:           "order events are ignored",
			inputMessage:   domain.KafkaMessage{Type: "order_created", Total: 400},
			setupMockStore: func(mockStore *mocks.StoreInterface) {},
		},
	}

	ist := time.FixedZone("IST", 5*3600+1800)
	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			mockStore := mocks.NewStoreInterface(t)
			testCase.setupMockStore(mockStore)

			consumer := service.NewConsumer(nil, mockStore, ist)
			consumer.Process(ctx, testCase.inputMessage)
		})
	}
}

func TestConsumer_UnknownTypeTouchesNothing(t *testing.T) {
	mockStore := mocks.NewStoreInterface(t)
	consumer := &service.Consumer{Store: mockStore}

	consumer.Process(context.Background(), domain.KafkaMessage{Type: "new_review"})
	mockStore.AssertNotCalled(t, "RecordSale", mock.Anything, mock.Anything, mock.Anything)
	mockStore.AssertNotCalled(t, "AdjustExpenses", mock.Anything, mock.Anything, mock.Anything)
	mockStore.AssertNotCalled(t, "ClearReports", mock.Anything)
}
