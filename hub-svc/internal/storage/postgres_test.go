package storage

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"marwad-digital-menu/hub-svc/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRepository(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		db.Close()
	})
	return NewPostgresRepository(db), mock
}

var orderRowColumns = []string{"id", "table_id", "items", "total", "status", "is_delivery", "delivery", "created_at"}

func TestPostgresRepository_CreateOrder(t *testing.T) {
	repo, mock := setupRepository(t)
	created := time.Date(2026, 1, 2, 12, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO orders")).
		WithArgs("5", sqlmock.AnyArg(), 240.0, domain.StatusPending, false, nil).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(11, created))

	order := &domain.Order{
		TableID: "5",
		Items:   []domain.OrderItem{{Name: "Paneer (Half)", Price: 120, Qty: 2}},
		Total:   240,
		Status:  domain.StatusPending,
	}
	require.NoError(t, repo.CreateOrder(context.Background(), order))
	assert.Equal(t, 11, order.ID)
	assert.Equal(t, created, order.CreatedAt)
}

func TestPostgresRepository_ListActiveOrders(t *testing.T) {
	repo, mock := setupRepository(t)
	now := time.Now()

	rows := sqlmock.NewRows(orderRowColumns).
		AddRow(2, "delivery", []byte(`[{"name":"Dal Baati","price":180,"qty":1}]`), 180.0, "pending", true,
			[]byte(`{"customerName":"Ramesh","phone":"9876543210","address":"12 Station Road"}`), now).
		AddRow(1, "4", []byte(`[{"name":"Tea","price":15,"qty":2}]`), 30.0, "preparing", false, nil, now.Add(-time.Minute))
	mock.ExpectQuery(regexp.QuoteMeta("FROM orders")).
		WithArgs(domain.StatusCancelled).
		WillReturnRows(rows)

	orders, err := repo.ListActiveOrders(context.Background())
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, "Ramesh", orders[0].Delivery.CustomerName)
	assert.Equal(t, domain.StatusPreparing, orders[1].Status)
	assert.Nil(t, orders[1].Delivery)
	assert.Equal(t, 2, orders[1].Items[0].Qty)
}

func TestPostgresRepository_UpdateOrderStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("lost race", func(t *testing.T) {
		repo, mock := setupRepository(t)
		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta("UPDATE orders SET status = $1 WHERE id = $2 AND status = $3")).
			WithArgs(domain.StatusPreparing, 7, domain.StatusPending).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		ok, err := repo.UpdateOrderStatus(ctx, 7, domain.StatusPending, domain.StatusPreparing, nil)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("delivered with sale", func(t *testing.T) {
		repo, mock := setupRepository(t)
		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta("UPDATE orders SET status")).
			WithArgs(domain.StatusDelivered, 7, domain.StatusOutForDelivery).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO sales")).
			WithArgs("delivery", sqlmock.AnyArg(), 180.0, domain.PaymentCash, nil, false, true).
			WillReturnRows(sqlmock.NewRows([]string{"id", "settled_at"}).AddRow(3, time.Now()))
		mock.ExpectCommit()

		sale := &domain.Sale{TableID: "delivery", Items: []domain.SaleItem{{Name: "Dal Baati", Qty: 1, Price: 180}},
			Total: 180, PaymentMode: domain.PaymentCash, IsDelivery: true}
		ok, err := repo.UpdateOrderStatus(ctx, 7, domain.StatusOutForDelivery, domain.StatusDelivered, sale)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, 3, sale.ID)
	})
}

func TestPostgresRepository_SettleTable(t *testing.T) {
	ctx := context.Background()

	t.Run("sale stored and orders cancelled", func(t *testing.T) {
		repo, mock := setupRepository(t)
		now := time.Now()
		mock.ExpectBegin()
		mock.ExpectQuery(regexp.QuoteMeta("status <> ALL($2)")).
			WithArgs("5", pq.Array([]string{"cancelled", "delivered"})).
			WillReturnRows(sqlmock.NewRows(orderRowColumns).
				AddRow(1, "5", []byte(`[{"name":"Thali","price":250,"qty":1}]`), 250.0, "completed", false, nil, now).
				AddRow(2, "5", []byte(`[{"name":"Lassi","price":75,"qty":2}]`), 150.0, "preparing", false, nil, now))
		mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO sales")).
			WithArgs("5", sqlmock.AnyArg(), 400.0, domain.PaymentOnline, nil, false, false).
			WillReturnRows(sqlmock.NewRows([]string{"id", "settled_at"}).AddRow(9, now))
		mock.ExpectExec(regexp.QuoteMeta("UPDATE orders SET status = $1 WHERE id = ANY($2)")).
			WithArgs(domain.StatusCancelled, pq.Array([]int64{1, 2})).
			WillReturnResult(sqlmock.NewResult(0, 2))
		mock.ExpectCommit()

		var seen []domain.Order
		sale, err := repo.SettleTable(ctx, "5", func(orders []domain.Order) (*domain.Sale, error) {
			seen = orders
			return &domain.Sale{TableID: "5", Total: 400, PaymentMode: domain.PaymentOnline}, nil
		})
		require.NoError(t, err)
		assert.Len(t, seen, 2)
		assert.Equal(t, 9, sale.ID)
	})

	t.Run("cancelled order never reaches the sale", func(t *testing.T) {
		repo, mock := setupRepository(t)
		now := time.Now()
		mock.ExpectBegin()
		mock.ExpectQuery(regexp.QuoteMeta("FOR UPDATE")).
			WithArgs("5", pq.Array([]string{"cancelled", "delivered"})).
			WillReturnRows(sqlmock.NewRows(orderRowColumns).
				AddRow(1, "5", []byte(`[{"name":"Thali","price":250,"qty":1}]`), 250.0, "completed", false, nil, now).
				AddRow(2, "5", []byte(`[{"name":"Lassi","price":75,"qty":2}]`), 150.0, "preparing", false, nil, now).
				AddRow(3, "5", []byte(`[{"name":"Kachori","price":40,"qty":1}]`), 40.0, "cancelled", false, nil, now))
		mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO sales")).
			WithArgs("5", sqlmock.AnyArg(), 400.0, domain.PaymentCash, nil, false, false).
			WillReturnRows(sqlmock.NewRows([]string{"id", "settled_at"}).AddRow(10, now))
		mock.ExpectExec(regexp.QuoteMeta("UPDATE orders SET status = $1 WHERE id = ANY($2)")).
			WithArgs(domain.StatusCancelled, pq.Array([]int64{1, 2})).
			WillReturnResult(sqlmock.NewResult(0, 2))
		mock.ExpectCommit()

		var seen []int
		_, err := repo.SettleTable(ctx, "5", func(orders []domain.Order) (*domain.Sale, error) {
			for _, o := range orders {
				seen = append(seen, o.ID)
			}
			return &domain.Sale{TableID: "5", Total: 400, PaymentMode: domain.PaymentCash}, nil
		})
		require.NoError(t, err)
		assert.Equal(t, []int{1, 2}, seen)
	})

	t.Run("build error rolls back", func(t *testing.T) {
		repo, mock := setupRepository(t)
		mock.ExpectBegin()
		mock.ExpectQuery(regexp.QuoteMeta("FOR UPDATE")).
			WithArgs("8", sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows(orderRowColumns))
		mock.ExpectRollback()

		nothing := errors.New("nothing")
		_, err := repo.SettleTable(ctx, "8", func(orders []domain.Order) (*domain.Sale, error) {
			assert.Empty(t, orders)
			return nil, nothing
		})
		assert.ErrorIs(t, err, nothing)
	})
}

func TestPostgresRepository_ClearHistory(t *testing.T) {
	repo, mock := setupRepository(t)
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM sales")).WillReturnResult(sqlmock.NewResult(0, 4))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM expenses")).WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM orders WHERE status = ANY($1)")).
		WithArgs(sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 6))
	mock.ExpectCommit()

	assert.NoError(t, repo.ClearHistory(context.Background()))
}

func TestPostgresRepository_ClearHistoryFailure(t *testing.T) {
	repo, mock := setupRepository(t)
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM sales")).WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	err := repo.ClearHistory(context.Background())
	assert.ErrorContains(t, err, "connection reset")
}

func TestPostgresRepository_HasCustomerWithPhone(t *testing.T) {
	repo, mock := setupRepository(t)
	mock.ExpectQuery(regexp.QuoteMeta("delivery->>'phone' = $1")).
		WithArgs("9876543210").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := repo.HasCustomerWithPhone(context.Background(), "9876543210")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestPostgresRepository_ListMenu(t *testing.T) {
	repo, mock := setupRepository(t)
	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta("FROM menu_items")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "price", "portions", "category", "sub_category",
			"is_available", "image_url", "description", "created_at"}).
			AddRow(1, "Masala Chai", 20.0, nil, "CAFE", "", true, "", "", now).
			AddRow(2, "Paneer", nil, []byte(`[{"label":"Half","price":120},{"label":"Full","price":220}]`),
				"RESTAURANT", "Main Course", false, "", "", now))

	items, err := repo.ListMenu(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 2)
	require.NotNil(t, items[0].Price)
	assert.Equal(t, 20.0, *items[0].Price)
	assert.Nil(t, items[1].Price)
	assert.Equal(t, "Half", items[1].Portions[0].Label)
	assert.False(t, items[1].Available)
}

func TestPostgresRepository_UpsertSettings(t *testing.T) {
	repo, mock := setupRepository(t)
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("ON CONFLICT (key) DO UPDATE")).
		WithArgs(domain.SettingDeliveryRadius, "5").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	assert.NoError(t, repo.UpsertSettings(context.Background(), domain.Settings{domain.SettingDeliveryRadius: "5"}))
}

func TestPostgresRepository_EnsureSchema(t *testing.T) {
	repo, mock := setupRepository(t)
	for i := 0; i < 6; i++ {
		mock.ExpectExec("CREATE").WillReturnResult(sqlmock.NewResult(0, 0))
	}
	assert.NoError(t, repo.EnsureSchema(context.Background()))
}

func TestPostgresRepository_CreateExpense(t *testing.T) {
	insert := regexp.QuoteMeta("COALESCE($6::timestamptz, NOW())")
	now := time.Now()
	backdated := time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)

	tests := []struct {
		name     string
		date     time.Time
		wantArg  any
		wantDate time.Time
	}{
		{name: "client date is kept", date: backdated, wantArg: backdated, wantDate: backdated},
		{name: "missing date defaults to now", wantArg: nil, wantDate: now},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			repo, mock := setupRepository(t)
			mock.ExpectQuery(insert).
				WithArgs("Gas", 950.0, "Ravi", "", domain.PaymentCash, testCase.wantArg).
				WillReturnRows(sqlmock.NewRows([]string{"id", "spent_at"}).AddRow(4, testCase.wantDate))

			e := &domain.Expense{Item: "Gas", Amount: 950, PaidBy: "Ravi", PaymentMode: domain.PaymentCash, Date: testCase.date}
			require.NoError(t, repo.CreateExpense(context.Background(), e))
			assert.Equal(t, 4, e.ID)
			assert.True(t, testCase.wantDate.Equal(e.Date))
		})
	}
}
