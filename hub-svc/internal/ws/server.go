package ws

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"runtime/debug"
	"time"

	"marwad-digital-menu/hub-svc/internal/domain"
	"marwad-digital-menu/hub-svc/internal/service"
	"marwad-digital-menu/hub-svc/internal/validation"

	"github.com/gorilla/websocket"
)

type Services struct {
	Orders     service.OrderServiceInterface
	Settlement service.SettlementServiceInterface
	Menu       service.MenuServiceInterface
	Expenses   service.ExpenseServiceInterface
	Settings   service.SettingsServiceInterface
	Auth       service.AuthServiceInterface
}

type Options struct {
	PingInterval   time.Duration
	PongWait       time.Duration
	RequestTimeout time.Duration
}

// HandlerFunc serves one inbound event. A returned error is turned into the
// matching reply for the requester.
type HandlerFunc func(ctx context.Context, c *Client, env Envelope) error

type route struct {
	roles  []domain.Role
	handle HandlerFunc
}

// Server upgrades /ws requests and dispatches inbound events through a
// fixed registry.
type Server struct {
	hub      *Hub
	svc      Services
	opts     Options
	routes   map[EventType]route
	upgrader websocket.Upgrader
}

func NewServer(hub *Hub, svc Services, opts Options) *Server {
	if opts.PingInterval <= 0 {
		opts.PingInterval = 25 * time.Second
	}
	if opts.PongWait <= opts.PingInterval {
		opts.PongWait = opts.PingInterval * 2
	}
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = 10 * time.Second
	}
	s := &Server{
		hub:  hub,
		svc:  svc,
		opts: opts,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
	s.routes = s.registry()
	return s
}

var (
	staff     = []domain.Role{domain.RoleAdmin, domain.RoleKitchen}
	adminOnly = []domain.Role{domain.RoleAdmin}
	riders    = []domain.Role{domain.RoleAdmin, domain.RoleKitchen, domain.RoleDelivery}
)

func (s *Server) registry() map[EventType]route {
	return map[EventType]route{
		EventGetMenu:             {handle: s.getMenu},
		EventGetOrders:           {handle: s.getOrders},
		EventGetSettings:         {handle: s.getSettings},
		EventGetSales:            {roles: staff, handle: s.getSales},
		EventGetExpenses:         {roles: staff, handle: s.getExpenses},
		EventPlaceOrder:          {handle: s.placeOrder},
		EventUpdateOrderStatus:   {roles: riders, handle: s.updateOrderStatus},
		EventApproveOrder:        {roles: staff, handle: s.approveOrder},
		EventRejectOrder:         {roles: staff, handle: s.rejectOrder},
		EventToggleKitchen:       {roles: staff, handle: s.toggleKitchen},
		EventUpsertMenuItem:      {roles: staff, handle: s.upsertMenuItem},
		EventDeleteMenuItem:      {roles: staff, handle: s.deleteMenuItem},
		EventSetMenuAvailability: {roles: staff, handle: s.setMenuAvailability},
		EventSettleTable:         {roles: staff, handle: s.settleTable},
		EventSettleManual:        {roles: staff, handle: s.settleManual},
		EventAddExpense:          {roles: staff, handle: s.addExpense},
		EventDeleteExpense:       {roles: staff, handle: s.deleteExpense},
		EventUpdateSettings:      {roles: adminOnly, handle: s.updateSettings},
		EventClearHistory:        {roles: adminOnly, handle: s.clearHistory},
		EventRingBell:            {handle: s.ringBell},
		EventRequestSong:         {handle: s.requestSong},
		EventAcceptSong:          {roles: staff, handle: s.acceptSong},
		EventRiderLocation:       {roles: []domain.Role{domain.RoleDelivery}, handle: s.riderLocation},
		EventCheckFirstTime:      {handle: s.checkFirstTime},
		EventLogin:               {handle: s.login},
	}
}

// ServeHTTP upgrades the connection. A valid ?token= restores a staff role;
// anything else connects as a customer.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	role := domain.RoleCustomer
	if token := r.URL.Query().Get("token"); token != "" && s.svc.Auth != nil {
		if restored, err := s.svc.Auth.ParseToken(token); err == nil {
			role = restored
		} else {
			log.Printf("Ignoring websocket token: %v", err)
		}
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("Error upgrading websocket: %v", err)
		return
	}

	client := newClient(s.hub, conn, role)
	s.hub.Register(client)
	s.welcome(client)

	go client.writePump(s.opts.PingInterval)
	go client.readPump(s.opts.PongWait, s.Dispatch)
}

// welcome pushes the only state a client receives without asking.
func (s *Server) welcome(c *Client) {
	c.Reply(EventKitchenStatus, "", KitchenStatusPayload{IsOpen: s.hub.KitchenOpen()})

	ctx, cancel := context.WithTimeout(context.Background(), s.opts.RequestTimeout)
	defer cancel()
	settings, err := s.svc.Settings.Get(ctx)
	if err != nil {
		s.replyError(c, Envelope{}, err)
		return
	}
	c.Reply(EventSettingsUpdated, "", settings)
}

// Dispatch decodes one frame and runs its handler. A panicking handler is
// logged and answered with an internal error; the connection stays up.
func (s *Server) Dispatch(c *Client, data []byte) {
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil || env.Type == "" {
		c.Reply(EventError, "", ErrorPayload{Code: CodeBadRequest, Message: "Malformed message"})
		return
	}

	rt, ok := s.routes[env.Type]
	if !ok {
		c.Reply(EventError, env.RequestID, ErrorPayload{Code: CodeUnknownEvent, Message: "Unknown event " + string(env.Type)})
		return
	}
	if rt.roles != nil && !c.Role().Allows(rt.roles...) {
		s.replyError(c, env, service.ErrForbidden)
		return
	}

	defer func() {
		if rec := recover(); rec != nil {
			log.Printf("Panic handling %s from client %s: %v\n%s", env.Type, c.ID, rec, debug.Stack())
			c.Reply(EventError, env.RequestID, ErrorPayload{Code: CodeInternal, Message: "Internal error"})
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), s.opts.RequestTimeout)
	defer cancel()
	if err := rt.handle(ctx, c, env); err != nil {
		s.replyError(c, env, err)
	}
}

func (s *Server) replyError(c *Client, env Envelope, err error) {
	if errors.Is(err, service.ErrStoreUnavailable) {
		log.Printf("Error handling %s: %v", env.Type, err)
		c.Reply(EventStoreUnavailable, env.RequestID, MessagePayload{Message: "The store is temporarily unavailable, please retry"})
		return
	}
	if env.Type == EventPlaceOrder {
		c.Reply(EventOrderError, env.RequestID, MessagePayload{Message: err.Error()})
		return
	}
	c.Reply(EventError, env.RequestID, ErrorPayload{Code: errorCode(err), Message: err.Error()})
}

func errorCode(err error) string {
	var verr *validation.Error
	switch {
	case errors.Is(err, service.ErrForbidden):
		return CodeForbidden
	case errors.Is(err, service.ErrOrderNotFound),
		errors.Is(err, service.ErrMenuItemNotFound),
		errors.Is(err, service.ErrExpenseNotFound):
		return CodeNotFound
	case errors.Is(err, domain.ErrIllegalTransition),
		errors.Is(err, service.ErrStatusConflict):
		return CodeConflict
	case errors.As(err, &verr),
		errors.Is(err, errBadPayload),
		errors.Is(err, domain.ErrUnknownStatus),
		errors.Is(err, service.ErrNothingToSettle),
		errors.Is(err, service.ErrInvalidPaymentMode),
		errors.Is(err, service.ErrInvalidMenuItem),
		errors.Is(err, service.ErrInvalidExpense),
		errors.Is(err, service.ErrInvalidSettings):
		return CodeInvalid
	default:
		return CodeInternal
	}
}
