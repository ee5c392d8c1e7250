package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"marwad-digital-menu/hub-svc/internal/domain"

	"github.com/lib/pq"
)

type PostgresRepository struct {
	DB *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{DB: db}
}

const orderColumns = `id, table_id, items, total, status, is_delivery, delivery, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(row rowScanner) (domain.Order, error) {
	var (
		order    domain.Order
		items    []byte
		delivery []byte
	)
	if err := row.Scan(&order.ID, &order.TableID, &items, &order.Total, &order.Status,
		&order.IsDelivery, &delivery, &order.CreatedAt); err != nil {
		return order, err
	}
	if err := json.Unmarshal(items, &order.Items); err != nil {
		return order, fmt.Errorf("decode items of order %d: %w", order.ID, err)
	}
	if len(delivery) > 0 {
		order.Delivery = &domain.DeliveryDetails{}
		if err := json.Unmarshal(delivery, order.Delivery); err != nil {
			return order, fmt.Errorf("decode delivery of order %d: %w", order.ID, err)
		}
	}
	return order, nil
}

// nullableJSON keeps absent delivery details as SQL NULL.
func nullableJSON(v *domain.DeliveryDetails) (any, error) {
	if v == nil {
		return nil, nil
	}
	return json.Marshal(v)
}

func (r *PostgresRepository) CreateOrder(ctx context.Context, order *domain.Order) error {
	items, err := json.Marshal(order.Items)
	if err != nil {
		return err
	}
	delivery, err := nullableJSON(order.Delivery)
	if err != nil {
		return err
	}
	return r.DB.QueryRowContext(ctx, `
		INSERT INTO orders (table_id, items, total, status, is_delivery, delivery)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`,
		order.TableID, items, order.Total, order.Status, order.IsDelivery, delivery).
		Scan(&order.ID, &order.CreatedAt)
}

func (r *PostgresRepository) GetOrder(ctx context.Context, id int) (*domain.Order, error) {
	order, err := scanOrder(r.DB.QueryRowContext(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE id = $1`, id))
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// ListActiveOrders returns every non-cancelled order, newest first.
func (r *PostgresRepository) ListActiveOrders(ctx context.Context) ([]domain.Order, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT `+orderColumns+`
		FROM orders
		WHERE status <> $1
		ORDER BY created_at DESC, id DESC`, domain.StatusCancelled)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := []domain.Order{}
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	return orders, rows.Err()
}

// UpdateOrderStatus moves an order from one status to another only if it is
// still in `from`. When sale is non-nil it is recorded in the same
// transaction. It reports false when another writer got there first.
func (r *PostgresRepository) UpdateOrderStatus(ctx context.Context, id int, from, to domain.Status, sale *domain.Sale) (bool, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx,
		`UPDATE orders SET status = $1 WHERE id = $2 AND status = $3`, to, id, from)
	if err != nil {
		return false, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	if affected == 0 {
		return false, nil
	}

	if sale != nil {
		if err := insertSale(ctx, tx, sale); err != nil {
			return false, err
		}
	}
	return true, tx.Commit()
}

// SettleTable locks the table's open orders, lets build turn them into a
// sale, stores it and cancels the contributing orders atomically. Orders
// already cancelled or delivered are not open.
func (r *PostgresRepository) SettleTable(ctx context.Context, tableID string, build func([]domain.Order) (*domain.Sale, error)) (*domain.Sale, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	rows, err := tx.QueryContext(ctx, `
		SELECT `+orderColumns+`
		FROM orders
		WHERE table_id = $1 AND status <> ALL($2)
		ORDER BY created_at, id
		FOR UPDATE`,
		tableID, pq.Array(statusNames(domain.SettledStatuses())))
	if err != nil {
		return nil, err
	}
	var (
		orders []domain.Order
		ids    []int64
	)
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		if order.Status.Settled() {
			continue
		}
		orders = append(orders, order)
		ids = append(ids, int64(order.ID))
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	sale, err := build(orders)
	if err != nil {
		return nil, err
	}
	if err := insertSale(ctx, tx, sale); err != nil {
		return nil, err
	}
	if _, err := tx.ExecContext(ctx,
		`UPDATE orders SET status = $1 WHERE id = ANY($2)`, domain.StatusCancelled, pq.Array(ids)); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return sale, nil
}

func statusNames(statuses []domain.Status) []string {
	names := make([]string, 0, len(statuses))
	for _, st := range statuses {
		names = append(names, string(st))
	}
	return names
}

func (r *PostgresRepository) CreateSale(ctx context.Context, sale *domain.Sale) error {
	return insertSale(ctx, r.DB, sale)
}

type queryRower interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func insertSale(ctx context.Context, q queryRower, sale *domain.Sale) error {
	items, err := json.Marshal(sale.Items)
	if err != nil {
		return err
	}
	delivery, err := nullableJSON(sale.Delivery)
	if err != nil {
		return err
	}
	return q.QueryRowContext(ctx, `
		INSERT INTO sales (table_id, items, total, payment_mode, delivery, is_walk_in, is_delivery)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, settled_at`,
		sale.TableID, items, sale.Total, sale.PaymentMode, delivery, sale.IsWalkIn, sale.IsDelivery).
		Scan(&sale.ID, &sale.SettledAt)
}

func (r *PostgresRepository) ListSales(ctx context.Context) ([]domain.Sale, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, table_id, items, total, payment_mode, delivery, is_walk_in, is_delivery, settled_at
		FROM sales
		ORDER BY settled_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sales := []domain.Sale{}
	for rows.Next() {
		var (
			sale     domain.Sale
			items    []byte
			delivery []byte
		)
		if err := rows.Scan(&sale.ID, &sale.TableID, &items, &sale.Total, &sale.PaymentMode,
			&delivery, &sale.IsWalkIn, &sale.IsDelivery, &sale.SettledAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(items, &sale.Items); err != nil {
			return nil, fmt.Errorf("decode items of sale %d: %w", sale.ID, err)
		}
		if len(delivery) > 0 {
			sale.Delivery = &domain.DeliveryDetails{}
			if err := json.Unmarshal(delivery, sale.Delivery); err != nil {
				return nil, fmt.Errorf("decode delivery of sale %d: %w", sale.ID, err)
			}
		}
		sales = append(sales, sale)
	}
	return sales, rows.Err()
}

// ClearHistory drops every sale and expense plus all orders in a terminal state.
func (r *PostgresRepository) ClearHistory(ctx context.Context) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	terminal := statusNames(domain.TerminalStatuses())
	statements := []struct {
		query string
		args  []any
	}{
		{query: `DELETE FROM sales`},
		{query: `DELETE FROM expenses`},
		{query: `DELETE FROM orders WHERE status = ANY($1)`, args: []any{pq.Array(terminal)}},
	}
	for _, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt.query, stmt.args...); err != nil {
			return fmt.Errorf("clear history `%s`: %w", stmt.query, err)
		}
	}
	return tx.Commit()
}

// HasCustomerWithPhone reports whether any stored order or sale carries the phone.
func (r *PostgresRepository) HasCustomerWithPhone(ctx context.Context, phone string) (bool, error) {
	var exists bool
	err := r.DB.QueryRowContext(ctx, `
		SELECT EXISTS(SELECT 1 FROM orders WHERE delivery->>'phone' = $1)
		    OR EXISTS(SELECT 1 FROM sales WHERE delivery->>'phone' = $1)`, phone).Scan(&exists)
	return exists, err
}

func (r *PostgresRepository) ListMenu(ctx context.Context) ([]domain.MenuItem, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, name, price, portions, category, COALESCE(sub_category, ''), is_available,
		       COALESCE(image_url, ''), COALESCE(description, ''), created_at
		FROM menu_items
		ORDER BY category, name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []domain.MenuItem{}
	for rows.Next() {
		var (
			item     domain.MenuItem
			price    sql.NullFloat64
			portions []byte
		)
		if err := rows.Scan(&item.ID, &item.Name, &price, &portions, &item.Category, &item.SubCategory,
			&item.Available, &item.ImageURL, &item.Description, &item.CreatedAt); err != nil {
			return nil, err
		}
		if price.Valid {
			item.Price = &price.Float64
		}
		if len(portions) > 0 {
			if err := json.Unmarshal(portions, &item.Portions); err != nil {
				return nil, fmt.Errorf("decode portions of menu item %d: %w", item.ID, err)
			}
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *PostgresRepository) UpsertMenuItem(ctx context.Context, item *domain.MenuItem) error {
	var portions any
	if len(item.Portions) > 0 {
		raw, err := json.Marshal(item.Portions)
		if err != nil {
			return err
		}
		portions = raw
	}

	if item.ID == 0 {
		return r.DB.QueryRowContext(ctx, `
			INSERT INTO menu_items (name, price, portions, category, sub_category, is_available, image_url, description)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			RETURNING id, created_at`,
			item.Name, item.Price, portions, item.Category, item.SubCategory, item.Available, item.ImageURL, item.Description).
			Scan(&item.ID, &item.CreatedAt)
	}
	return r.DB.QueryRowContext(ctx, `
		UPDATE menu_items
		SET name=$1, price=$2, portions=$3, category=$4, sub_category=$5, is_available=$6, image_url=$7, description=$8
		WHERE id=$9
		RETURNING created_at`,
		item.Name, item.Price, portions, item.Category, item.SubCategory, item.Available, item.ImageURL, item.Description, item.ID).
		Scan(&item.CreatedAt)
}

func (r *PostgresRepository) DeleteMenuItem(ctx context.Context, id int) (int64, error) {
	result, err := r.DB.ExecContext(ctx, "DELETE FROM menu_items WHERE id=$1", id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (r *PostgresRepository) SetMenuAvailability(ctx context.Context, id int, available bool) (int64, error) {
	result, err := r.DB.ExecContext(ctx, "UPDATE menu_items SET is_available=$1 WHERE id=$2", available, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (r *PostgresRepository) ListExpenses(ctx context.Context) ([]domain.Expense, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, item, amount, paid_by, COALESCE(description, ''), payment_mode, spent_at
		FROM expenses
		ORDER BY spent_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	expenses := []domain.Expense{}
	for rows.Next() {
		var e domain.Expense
		if err := rows.Scan(&e.ID, &e.Item, &e.Amount, &e.PaidBy, &e.Description, &e.PaymentMode, &e.Date); err != nil {
			return nil, err
		}
		expenses = append(expenses, e)
	}
	return expenses, rows.Err()
}

// CreateExpense keeps a caller-supplied date; a zero Date means now.
func (r *PostgresRepository) CreateExpense(ctx context.Context, e *domain.Expense) error {
	spentAt := sql.NullTime{Time: e.Date, Valid: !e.Date.IsZero()}
	return r.DB.QueryRowContext(ctx, `
		INSERT INTO expenses (item, amount, paid_by, description, payment_mode, spent_at)
		VALUES ($1, $2, $3, $4, $5, COALESCE($6::timestamptz, NOW()))
		RETURNING id, spent_at`,
		e.Item, e.Amount, e.PaidBy, e.Description, e.PaymentMode, spentAt).
		Scan(&e.ID, &e.Date)
}

// DeleteExpense returns the removed row so its amount can be reversed downstream.
func (r *PostgresRepository) DeleteExpense(ctx context.Context, id int) (*domain.Expense, error) {
	var e domain.Expense
	err := r.DB.QueryRowContext(ctx, `
		DELETE FROM expenses WHERE id=$1
		RETURNING id, item, amount, paid_by, COALESCE(description, ''), payment_mode, spent_at`, id).
		Scan(&e.ID, &e.Item, &e.Amount, &e.PaidBy, &e.Description, &e.PaymentMode, &e.Date)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *PostgresRepository) GetSettings(ctx context.Context) (domain.Settings, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT key, value FROM settings`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	settings := domain.Settings{}
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, err
		}
		settings[key] = value
	}
	return settings, rows.Err()
}

// UpsertSettings writes every key in one transaction; last write wins.
func (r *PostgresRepository) UpsertSettings(ctx context.Context, values domain.Settings) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for key, value := range values {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO settings (key, value) VALUES ($1, $2)
			ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value`, key, value); err != nil {
			return fmt.Errorf("upsert setting %q: %w", key, err)
		}
	}
	return tx.Commit()
}

func (r *PostgresRepository) EnsureSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS menu_items (
			id SERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			price NUMERIC(10,2),
			portions JSONB,
			category TEXT NOT NULL,
			sub_category TEXT,
			is_available BOOLEAN NOT NULL DEFAULT TRUE,
			image_url TEXT,
			description TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS orders (
			id SERIAL PRIMARY KEY,
			table_id VARCHAR(50) NOT NULL,
			items JSONB NOT NULL,
			total NUMERIC(10,2) NOT NULL,
			status VARCHAR(32) NOT NULL,
			is_delivery BOOLEAN NOT NULL DEFAULT FALSE,
			delivery JSONB,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS orders_table_status_idx ON orders (table_id, status)`,
		`CREATE TABLE IF NOT EXISTS sales (
			id SERIAL PRIMARY KEY,
			table_id VARCHAR(50) NOT NULL,
			items JSONB NOT NULL,
			total NUMERIC(10,2) NOT NULL,
			payment_mode VARCHAR(16) NOT NULL,
			delivery JSONB,
			is_walk_in BOOLEAN NOT NULL DEFAULT FALSE,
			is_delivery BOOLEAN NOT NULL DEFAULT FALSE,
			settled_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS expenses (
			id SERIAL PRIMARY KEY,
			item TEXT NOT NULL,
			amount NUMERIC(10,2) NOT NULL,
			paid_by TEXT NOT NULL,
			description TEXT,
			payment_mode VARCHAR(16) NOT NULL,
			spent_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS settings (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)`,
	}
	for _, stmt := range statements {
		if _, err := r.DB.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema `%s`: %w", stmt, err)
		}
	}
	return nil
}
