package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"math"
	"strconv"
	"strings"

	"marwad-digital-menu/hub-svc/internal/domain"
	"marwad-digital-menu/hub-svc/internal/geo"
	"marwad-digital-menu/hub-svc/internal/validation"
)

const DefaultRejectReason = "Order was rejected by the restaurant"

// SettingsProvider is the read side of the settings service.
type SettingsProvider interface {
	Get(ctx context.Context) (domain.Settings, error)
}

type OrderService struct {
	repository OrderRepository
	customers  CustomerCache
	settings   SettingsProvider
	publisher  EventPublisher
	validator  *validation.Validator
	locks      *KeyedMutex
}

func NewOrderService(
	repository OrderRepository,
	customers CustomerCache,
	settings SettingsProvider,
	publisher EventPublisher,
	validator *validation.Validator,
	locks *KeyedMutex,
) *OrderService {
	return &OrderService{
		repository: repository,
		customers:  customers,
		settings:   settings,
		publisher:  publisher,
		validator:  validator,
		locks:      locks,
	}
}

// PlaceOrder validates a submission and stores it. Nothing is written or
// published when validation fails. The kitchen-open flag is not consulted.
func (s *OrderService) PlaceOrder(ctx context.Context, in validation.OrderInput) (*domain.Order, error) {
	order, err := s.validator.ValidateOrder(in)
	if err != nil {
		return nil, err
	}

	order.Status = domain.StatusPending
	if order.IsDelivery && in.RequiresApproval {
		order.Status = domain.StatusPendingApproval
	}
	s.fillDistance(ctx, order)

	if err := s.repository.CreateOrder(ctx, order); err != nil {
		return nil, storeErr("create order", err)
	}

	if order.Delivery != nil && s.customers != nil {
		if err := s.customers.SetMarker(ctx, s.customers.CustomerMarkerKey(order.Delivery.Phone)); err != nil {
			log.Printf("Error marking customer %s: %v", order.Delivery.Phone, err)
		}
	}

	publish(ctx, s.publisher, domain.KafkaMessage{
		Type:      domain.EventOrderCreated,
		OrderID:   order.ID,
		TableID:   order.TableID,
		Status:    order.Status,
		Total:     order.Total,
		Timestamp: order.CreatedAt,
	})
	return order, nil
}

// fillDistance computes the delivery distance when the client sent GPS but
// no distance and the restaurant location is configured.
func (s *OrderService) fillDistance(ctx context.Context, order *domain.Order) {
	d := order.Delivery
	if d == nil || d.Lat == nil || d.Lng == nil || d.DistanceKm != nil || s.settings == nil {
		return
	}
	settings, err := s.settings.Get(ctx)
	if err != nil {
		log.Printf("Error loading settings for distance: %v", err)
		return
	}
	lat, errLat := strconv.ParseFloat(settings[domain.SettingRestaurantLat], 64)
	lng, errLng := strconv.ParseFloat(settings[domain.SettingRestaurantLng], 64)
	if errLat != nil || errLng != nil {
		return
	}
	km := math.Round(geo.HaversineKm(lat, lng, *d.Lat, *d.Lng)*100) / 100
	d.DistanceKm = &km
}

func (s *OrderService) ListOrders(ctx context.Context) ([]domain.Order, error) {
	orders, err := s.repository.ListActiveOrders(ctx)
	if err != nil {
		return nil, storeErr("list orders", err)
	}
	return orders, nil
}

// UpdateStatus applies a staff-requested transition. Reaching delivered
// records a sale in mode (CASH when empty).
func (s *OrderService) UpdateStatus(ctx context.Context, orderID int, status string, mode domain.PaymentMode) (*domain.Order, *domain.Sale, error) {
	to, err := domain.ParseStatus(status)
	if err != nil {
		return nil, nil, err
	}
	if mode != "" && !mode.Valid() {
		return nil, nil, ErrInvalidPaymentMode
	}
	return s.transition(ctx, orderID, "", to, mode)
}

func (s *OrderService) Approve(ctx context.Context, orderID int) (*domain.Order, error) {
	order, _, err := s.transition(ctx, orderID, domain.StatusPendingApproval, domain.StatusPending, "")
	return order, err
}

// Reject cancels an order awaiting approval and returns the reason used.
func (s *OrderService) Reject(ctx context.Context, orderID int, reason string) (*domain.Order, string, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		reason = DefaultRejectReason
	}
	order, _, err := s.transition(ctx, orderID, domain.StatusPendingApproval, domain.StatusCancelled, "")
	if err != nil {
		return nil, "", err
	}
	return order, reason, nil
}

func (s *OrderService) transition(ctx context.Context, orderID int, require, to domain.Status, mode domain.PaymentMode) (*domain.Order, *domain.Sale, error) {
	order, err := s.getOrder(ctx, orderID)
	if err != nil {
		return nil, nil, err
	}

	sale, err := s.applyTransition(ctx, order, require, to, mode)
	if err != nil {
		return nil, nil, err
	}

	publish(ctx, s.publisher, domain.KafkaMessage{
		Type:    domain.EventOrderStatusChanged,
		OrderID: order.ID,
		TableID: order.TableID,
		Status:  to,
		Total:   order.Total,
	})
	if sale != nil {
		publish(ctx, s.publisher, saleRecorded(sale))
	}
	return order, sale, nil
}

// applyTransition persists from→to under the table lock and sets order.Status.
func (s *OrderService) applyTransition(ctx context.Context, order *domain.Order, require, to domain.Status, mode domain.PaymentMode) (*domain.Sale, error) {
	unlock := s.locks.Lock(order.TableID)
	defer unlock()

	from := order.Status
	if require != "" && from != require {
		return nil, fmt.Errorf("%w: order %d is %s, not %s", domain.ErrIllegalTransition, order.ID, from, require)
	}
	if err := domain.CheckTransition(from, to); err != nil {
		return nil, err
	}

	var sale *domain.Sale
	if to == domain.StatusDelivered {
		if mode == "" {
			mode = domain.PaymentCash
		}
		sale = saleFromOrder(order, mode)
	}

	ok, err := s.repository.UpdateOrderStatus(ctx, order.ID, from, to, sale)
	if err != nil {
		return nil, storeErr("update order status", err)
	}
	if !ok {
		return nil, ErrStatusConflict
	}
	order.Status = to
	return sale, nil
}

func (s *OrderService) getOrder(ctx context.Context, orderID int) (*domain.Order, error) {
	order, err := s.repository.GetOrder(ctx, orderID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %d", ErrOrderNotFound, orderID)
	}
	if err != nil {
		return nil, storeErr("get order", err)
	}
	return order, nil
}

func saleFromOrder(order *domain.Order, mode domain.PaymentMode) *domain.Sale {
	return &domain.Sale{
		TableID:     order.TableID,
		Items:       saleLines(order.Items),
		Total:       order.Total,
		PaymentMode: mode,
		Delivery:    order.Delivery,
		IsDelivery:  order.IsDelivery,
	}
}

func saleLines(items []domain.OrderItem) []domain.SaleItem {
	lines := make([]domain.SaleItem, 0, len(items))
	for _, it := range items {
		lines = append(lines, domain.SaleItem{Name: it.Name, Qty: it.Qty, Price: it.Price})
	}
	return lines
}

// IsFirstTimeCustomer reports whether no order or sale has used the phone yet.
func (s *OrderService) IsFirstTimeCustomer(ctx context.Context, phone string) (bool, error) {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return false, &validation.Error{Field: "phone", Message: "Phone number is required"}
	}

	var key string
	if s.customers != nil {
		key = s.customers.CustomerMarkerKey(phone)
		if exists, err := s.customers.Exists(ctx, key); err == nil && exists {
			return false, nil
		}
	}

	known, err := s.repository.HasCustomerWithPhone(ctx, phone)
	if err != nil {
		return false, storeErr("check customer", err)
	}
	if known && s.customers != nil {
		if err := s.customers.SetMarker(ctx, key); err != nil {
			log.Printf("Error marking customer %s: %v", phone, err)
		}
	}
	return !known, nil
}
