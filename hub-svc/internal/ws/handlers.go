package ws

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"marwad-digital-menu/hub-svc/internal/domain"
	"marwad-digital-menu/hub-svc/internal/validation"

	"github.com/google/uuid"
)

var errBadPayload = errors.New("malformed payload")

const maxSongLen = 200

func decode(env Envelope, v any) error {
	if len(env.Payload) == 0 {
		return fmt.Errorf("%w: payload is required", errBadPayload)
	}
	if err := json.Unmarshal(env.Payload, v); err != nil {
		return fmt.Errorf("%w: %v", errBadPayload, err)
	}
	return nil
}

func (s *Server) broadcast(eventType EventType, payload any) {
	if err := s.hub.Broadcast(eventType, payload); err != nil {
		log.Printf("Error broadcasting %s: %v", eventType, err)
	}
}

// The snapshot broadcasts follow a mutation that already succeeded, so a
// failed re-read is logged instead of failing the request.

func (s *Server) broadcastOrders(ctx context.Context) {
	orders, err := s.svc.Orders.ListOrders(ctx)
	if err != nil {
		log.Printf("Error loading orders snapshot: %v", err)
		return
	}
	s.broadcast(EventOrdersUpdated, orders)
}

func (s *Server) broadcastSales(ctx context.Context) {
	sales, err := s.svc.Settlement.ListSales(ctx)
	if err != nil {
		log.Printf("Error loading sales snapshot: %v", err)
		return
	}
	s.broadcast(EventSalesUpdated, sales)
}

func (s *Server) broadcastExpenses(ctx context.Context) {
	expenses, err := s.svc.Expenses.List(ctx)
	if err != nil {
		log.Printf("Error loading expenses snapshot: %v", err)
		return
	}
	s.broadcast(EventExpensesUpdated, expenses)
}

func (s *Server) broadcastMenu(ctx context.Context) {
	items, err := s.svc.Menu.List(ctx)
	if err != nil {
		log.Printf("Error loading menu snapshot: %v", err)
		return
	}
	s.broadcast(EventMenuUpdated, items)
}

// OrderPlaced announces a new order to every client. The HTTP order
// endpoint uses it too.
func (s *Server) OrderPlaced(ctx context.Context, order *domain.Order) {
	s.broadcast(EventNewOrderAlert, order)
	s.broadcastOrders(ctx)
}

func (s *Server) getMenu(ctx context.Context, c *Client, env Envelope) error {
	items, err := s.svc.Menu.List(ctx)
	if err != nil {
		return err
	}
	c.Reply(EventMenuUpdated, env.RequestID, items)
	return nil
}

func (s *Server) getOrders(ctx context.Context, c *Client, env Envelope) error {
	orders, err := s.svc.Orders.ListOrders(ctx)
	if err != nil {
		return err
	}
	c.Reply(EventOrdersUpdated, env.RequestID, orders)
	return nil
}

func (s *Server) getSales(ctx context.Context, c *Client, env Envelope) error {
	sales, err := s.svc.Settlement.ListSales(ctx)
	if err != nil {
		return err
	}
	c.Reply(EventSalesUpdated, env.RequestID, sales)
	return nil
}

func (s *Server) getExpenses(ctx context.Context, c *Client, env Envelope) error {
	expenses, err := s.svc.Expenses.List(ctx)
	if err != nil {
		return err
	}
	c.Reply(EventExpensesUpdated, env.RequestID, expenses)
	return nil
}

func (s *Server) getSettings(ctx context.Context, c *Client, env Envelope) error {
	settings, err := s.svc.Settings.Get(ctx)
	if err != nil {
		return err
	}
	c.Reply(EventSettingsUpdated, env.RequestID, settings)
	return nil
}

func (s *Server) placeOrder(ctx context.Context, c *Client, env Envelope) error {
	var in validation.OrderInput
	if err := decode(env, &in); err != nil {
		return err
	}
	order, err := s.svc.Orders.PlaceOrder(ctx, in)
	if err != nil {
		return err
	}
	c.Reply(EventOrderPlaced, env.RequestID, order)
	s.OrderPlaced(ctx, order)
	return nil
}

func (s *Server) updateOrderStatus(ctx context.Context, c *Client, env Envelope) error {
	var req struct {
		OrderID     int                `json:"orderId"`
		Status      string             `json:"status"`
		PaymentMode domain.PaymentMode `json:"paymentMode"`
	}
	if err := decode(env, &req); err != nil {
		return err
	}
	_, sale, err := s.svc.Orders.UpdateStatus(ctx, req.OrderID, req.Status, req.PaymentMode)
	if err != nil {
		return err
	}
	s.broadcastOrders(ctx)
	if sale != nil {
		c.Reply(EventSaleRecorded, env.RequestID, sale)
		s.broadcastSales(ctx)
	}
	return nil
}

type orderRef struct {
	OrderID int    `json:"orderId"`
	Reason  string `json:"reason"`
}

func (s *Server) approveOrder(ctx context.Context, c *Client, env Envelope) error {
	var req orderRef
	if err := decode(env, &req); err != nil {
		return err
	}
	order, err := s.svc.Orders.Approve(ctx, req.OrderID)
	if err != nil {
		return err
	}
	s.broadcast(EventOrderApproved, OrderDecisionPayload{OrderID: order.ID, TableID: order.TableID})
	s.broadcastOrders(ctx)
	return nil
}

func (s *Server) rejectOrder(ctx context.Context, c *Client, env Envelope) error {
	var req orderRef
	if err := decode(env, &req); err != nil {
		return err
	}
	order, reason, err := s.svc.Orders.Reject(ctx, req.OrderID, req.Reason)
	if err != nil {
		return err
	}
	s.broadcast(EventOrderRejected, OrderDecisionPayload{OrderID: order.ID, TableID: order.TableID, Reason: reason})
	s.broadcastOrders(ctx)
	return nil
}

// toggleKitchen sets the flag when isOpen is given and flips it otherwise.
func (s *Server) toggleKitchen(_ context.Context, _ *Client, env Envelope) error {
	var req struct {
		IsOpen *bool `json:"isOpen"`
	}
	if len(env.Payload) > 0 {
		if err := decode(env, &req); err != nil {
			return err
		}
	}
	var open bool
	if req.IsOpen != nil {
		s.hub.SetKitchenOpen(*req.IsOpen)
		open = *req.IsOpen
	} else {
		open = s.hub.ToggleKitchen()
	}
	s.broadcast(EventKitchenStatus, KitchenStatusPayload{IsOpen: open})
	return nil
}

func (s *Server) upsertMenuItem(ctx context.Context, c *Client, env Envelope) error {
	var item domain.MenuItem
	if err := decode(env, &item); err != nil {
		return err
	}
	if err := s.svc.Menu.Upsert(ctx, &item); err != nil {
		return err
	}
	s.broadcastMenu(ctx)
	return nil
}

type idRef struct {
	ID          int   `json:"id"`
	IsAvailable *bool `json:"isAvailable"`
}

func (s *Server) deleteMenuItem(ctx context.Context, c *Client, env Envelope) error {
	var req idRef
	if err := decode(env, &req); err != nil {
		return err
	}
	if err := s.svc.Menu.Delete(ctx, req.ID); err != nil {
		return err
	}
	s.broadcastMenu(ctx)
	return nil
}

func (s *Server) setMenuAvailability(ctx context.Context, c *Client, env Envelope) error {
	var req idRef
	if err := decode(env, &req); err != nil {
		return err
	}
	if req.IsAvailable == nil {
		return fmt.Errorf("%w: isAvailable is required", errBadPayload)
	}
	if err := s.svc.Menu.SetAvailability(ctx, req.ID, *req.IsAvailable); err != nil {
		return err
	}
	s.broadcastMenu(ctx)
	return nil
}

func (s *Server) settleTable(ctx context.Context, c *Client, env Envelope) error {
	var req struct {
		TableID     any                `json:"tableId"`
		PaymentMode domain.PaymentMode `json:"paymentMode"`
	}
	if err := decode(env, &req); err != nil {
		return err
	}
	tableID, err := validation.TableID(req.TableID)
	if err != nil {
		return err
	}
	sale, err := s.svc.Settlement.SettleTable(ctx, tableID, req.PaymentMode)
	if err != nil {
		return err
	}
	c.Reply(EventSaleRecorded, env.RequestID, sale)
	s.broadcastSales(ctx)
	s.broadcastOrders(ctx)
	return nil
}

func (s *Server) settleManual(ctx context.Context, c *Client, env Envelope) error {
	var req struct {
		Items       []validation.ItemInput `json:"items"`
		Total       any                    `json:"total"`
		PaymentMode domain.PaymentMode     `json:"paymentMode"`
	}
	if err := decode(env, &req); err != nil {
		return err
	}
	sale, err := s.svc.Settlement.SettleManual(ctx, req.Items, req.Total, req.PaymentMode)
	if err != nil {
		return err
	}
	c.Reply(EventSaleRecorded, env.RequestID, sale)
	s.broadcastSales(ctx)
	return nil
}

func (s *Server) addExpense(ctx context.Context, c *Client, env Envelope) error {
	var expense domain.Expense
	if err := decode(env, &expense); err != nil {
		return err
	}
	if err := s.svc.Expenses.Add(ctx, &expense); err != nil {
		return err
	}
	s.broadcastExpenses(ctx)
	return nil
}

func (s *Server) deleteExpense(ctx context.Context, c *Client, env Envelope) error {
	var req idRef
	if err := decode(env, &req); err != nil {
		return err
	}
	if err := s.svc.Expenses.Delete(ctx, req.ID); err != nil {
		return err
	}
	s.broadcastExpenses(ctx)
	return nil
}

// updateSettings accepts strings, numbers and booleans and stores their text form.
func (s *Server) updateSettings(ctx context.Context, c *Client, env Envelope) error {
	var raw map[string]any
	if err := decode(env, &raw); err != nil {
		return err
	}
	values := make(domain.Settings, len(raw))
	for key, v := range raw {
		switch val := v.(type) {
		case string:
			values[key] = val
		case float64:
			values[key] = strconv.FormatFloat(val, 'f', -1, 64)
		case bool:
			values[key] = strconv.FormatBool(val)
		default:
			return fmt.Errorf("%w: setting %q must be a string, number or boolean", errBadPayload, key)
		}
	}
	settings, err := s.svc.Settings.Update(ctx, values)
	if err != nil {
		return err
	}
	s.broadcast(EventSettingsUpdated, settings)
	return nil
}

func (s *Server) clearHistory(ctx context.Context, c *Client, env Envelope) error {
	if err := s.svc.Settlement.ClearHistory(ctx); err != nil {
		return err
	}
	s.broadcastOrders(ctx)
	s.broadcastSales(ctx)
	s.broadcastExpenses(ctx)
	return nil
}

func (s *Server) ringBell(_ context.Context, _ *Client, env Envelope) error {
	var req struct {
		TableID any `json:"tableId"`
	}
	if err := decode(env, &req); err != nil {
		return err
	}
	tableID, err := validation.TableID(req.TableID)
	if err != nil {
		return err
	}
	s.broadcast(EventNewServiceAlert, domain.ServiceAlert{
		ID:        uuid.NewString(),
		TableID:   tableID,
		Timestamp: time.Now(),
	})
	return nil
}

func (s *Server) requestSong(_ context.Context, _ *Client, env Envelope) error {
	var req struct {
		TableID any    `json:"tableId"`
		Song    string `json:"song"`
	}
	if err := decode(env, &req); err != nil {
		return err
	}
	tableID, err := validation.TableID(req.TableID)
	if err != nil {
		return err
	}
	song := strings.TrimSpace(req.Song)
	if song == "" {
		return &validation.Error{Field: "song", Message: "Song name is required"}
	}
	if r := []rune(song); len(r) > maxSongLen {
		song = string(r[:maxSongLen])
	}
	s.broadcast(EventSongRequest, domain.SongRequest{
		ID:        uuid.NewString(),
		TableID:   tableID,
		Song:      song,
		Timestamp: time.Now(),
	})
	return nil
}

func (s *Server) acceptSong(_ context.Context, _ *Client, env Envelope) error {
	var req domain.SongRequest
	if err := decode(env, &req); err != nil {
		return err
	}
	s.broadcast(EventSongAccepted, req)
	return nil
}

// riderLocation relays the payload untouched.
func (s *Server) riderLocation(_ context.Context, _ *Client, env Envelope) error {
	if len(env.Payload) == 0 {
		return fmt.Errorf("%w: payload is required", errBadPayload)
	}
	s.broadcast(EventRiderLocationUpdate, env.Payload)
	return nil
}

func (s *Server) checkFirstTime(ctx context.Context, c *Client, env Envelope) error {
	var req struct {
		Phone string `json:"phone"`
	}
	if err := decode(env, &req); err != nil {
		return err
	}
	first, err := s.svc.Orders.IsFirstTimeCustomer(ctx, req.Phone)
	if err != nil {
		return err
	}
	c.Reply(EventFirstTimeStatus, env.RequestID, FirstTimePayload{Phone: strings.TrimSpace(req.Phone), IsFirstTime: first})
	return nil
}

func (s *Server) login(_ context.Context, c *Client, env Envelope) error {
	var req struct {
		Password string `json:"password"`
	}
	if err := decode(env, &req); err != nil {
		return err
	}
	role, token, err := s.svc.Auth.Login(req.Password)
	if err != nil {
		c.Reply(EventLoginError, env.RequestID, MessagePayload{Message: "Invalid password"})
		return nil
	}
	c.setRole(role)
	c.Reply(EventLoginSuccess, env.RequestID, LoginSuccessPayload{Role: string(role), Token: token})
	return nil
}
