package service

import (
	"context"

	"marwad-digital-menu/hub-svc/internal/domain"
	"marwad-digital-menu/hub-svc/internal/validation"
)

type OrderServiceInterface interface {
	PlaceOrder(ctx context.Context, in validation.OrderInput) (*domain.Order, error)
	ListOrders(ctx context.Context) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, orderID int, status string, mode domain.PaymentMode) (*domain.Order, *domain.Sale, error)
	Approve(ctx context.Context, orderID int) (*domain.Order, error)
	Reject(ctx context.Context, orderID int, reason string) (*domain.Order, string, error)
	IsFirstTimeCustomer(ctx context.Context, phone string) (bool, error)
}

type SettlementServiceInterface interface {
	SettleTable(ctx context.Context, tableID string, mode domain.PaymentMode) (*domain.Sale, error)
	SettleManual(ctx context.Context, items []validation.ItemInput, total any, mode domain.PaymentMode) (*domain.Sale, error)
	ListSales(ctx context.Context) ([]domain.Sale, error)
	ClearHistory(ctx context.Context) error
}

type MenuServiceInterface interface {
	List(ctx context.Context) ([]domain.MenuItem, error)
	Upsert(ctx context.Context, item *domain.MenuItem) error
	Delete(ctx context.Context, id int) error
	SetAvailability(ctx context.Context, id int, available bool) error
}

type ExpenseServiceInterface interface {
	List(ctx context.Context) ([]domain.Expense, error)
	Add(ctx context.Context, expense *domain.Expense) error
	Delete(ctx context.Context, id int) error
}

type SettingsServiceInterface interface {
	Get(ctx context.Context) (domain.Settings, error)
	Update(ctx context.Context, values domain.Settings) (domain.Settings, error)
}

type AuthServiceInterface interface {
	Login(password string) (domain.Role, string, error)
	ParseToken(token string) (domain.Role, error)
}

type OrderRepository interface {
	CreateOrder(ctx context.Context, order *domain.Order) error
	GetOrder(ctx context.Context, id int) (*domain.Order, error)
	ListActiveOrders(ctx context.Context) ([]domain.Order, error)
	UpdateOrderStatus(ctx context.Context, id int, from, to domain.Status, sale *domain.Sale) (bool, error)
	HasCustomerWithPhone(ctx context.Context, phone string) (bool, error)
}

type SaleRepository interface {
	SettleTable(ctx context.Context, tableID string, build func([]domain.Order) (*domain.Sale, error)) (*domain.Sale, error)
	CreateSale(ctx context.Context, sale *domain.Sale) error
	ListSales(ctx context.Context) ([]domain.Sale, error)
	ClearHistory(ctx context.Context) error
}

type MenuRepository interface {
	ListMenu(ctx context.Context) ([]domain.MenuItem, error)
	UpsertMenuItem(ctx context.Context, item *domain.MenuItem) error
	DeleteMenuItem(ctx context.Context, id int) (int64, error)
	SetMenuAvailability(ctx context.Context, id int, available bool) (int64, error)
}

type ExpenseRepository interface {
	ListExpenses(ctx context.Context) ([]domain.Expense, error)
	CreateExpense(ctx context.Context, expense *domain.Expense) error
	DeleteExpense(ctx context.Context, id int) (*domain.Expense, error)
}

type SettingsRepository interface {
	GetSettings(ctx context.Context) (domain.Settings, error)
	UpsertSettings(ctx context.Context, values domain.Settings) error
}

type SettingsCache interface {
	GetSettings(ctx context.Context) (domain.Settings, bool, error)
	SetSettings(ctx context.Context, settings domain.Settings) error
	InvalidateSettings(ctx context.Context) error
}

type CustomerCache interface {
	CustomerMarkerKey(phone string) string
	Exists(ctx context.Context, key string) (bool, error)
	SetMarker(ctx context.Context, key string) error
	ClearCustomerMarkers(ctx context.Context) error
}

type EventPublisher interface {
	Publish(ctx context.Context, msg domain.KafkaMessage) error
}

var (
	_ OrderServiceInterface      = (*OrderService)(nil)
	_ SettlementServiceInterface = (*SettlementService)(nil)
	_ MenuServiceInterface       = (*MenuService)(nil)
	_ ExpenseServiceInterface    = (*ExpenseService)(nil)
	_ SettingsServiceInterface   = (*SettingsService)(nil)
	_ AuthServiceInterface       = (*AuthService)(nil)
)
