package ws

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"marwad-digital-menu/hub-svc/internal/domain"
	"marwad-digital-menu/hub-svc/internal/mocks"
	"marwad-digital-menu/hub-svc/internal/service"
	"marwad-digital-menu/hub-svc/internal/validation"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type wsFixture struct {
	orders     *mocks.OrderServiceInterface
	settlement *mocks.SettlementServiceInterface
	menu       *mocks.MenuServiceInterface
	expenses   *mocks.ExpenseServiceInterface
	settings   *mocks.SettingsServiceInterface
	auth       *mocks.AuthServiceInterface
	hub        *Hub
	srv        *httptest.Server
}

func newWSFixture(t *testing.T) *wsFixture {
	f := &wsFixture{
		orders:     mocks.NewOrderServiceInterface(t),
		settlement: mocks.NewSettlementServiceInterface(t),
		menu:       mocks.NewMenuServiceInterface(t),
		expenses:   mocks.NewExpenseServiceInterface(t),
		settings:   mocks.NewSettingsServiceInterface(t),
		auth:       mocks.NewAuthServiceInterface(t),
		hub:        NewHub(true),
	}
	f.settings.On("Get", mock.Anything).Return(domain.Settings{"deliveryRadius": "5"}, nil).Maybe()

	ctx, cancel := context.WithCancel(context.Background())
	go f.hub.Run(ctx)

	server := NewServer(f.hub, Services{
		Orders:     f.orders,
		Settlement: f.settlement,
		Menu:       f.menu,
		Expenses:   f.expenses,
		Settings:   f.settings,
		Auth:       f.auth,
	}, Options{PingInterval: time.Second, RequestTimeout: time.Second})
	f.srv = httptest.NewServer(server)

	t.Cleanup(func() {
		f.srv.Close()
		cancel()
	})
	return f
}

// dial connects and consumes the welcome frames.
func (f *wsFixture) dial(t *testing.T, query string) *websocket.Conn {
	url := "ws" + strings.TrimPrefix(f.srv.URL, "http") + query
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	expectEvent(t, conn, EventKitchenStatus)
	expectEvent(t, conn, EventSettingsUpdated)
	return conn
}

func send(t *testing.T, conn *websocket.Conn, eventType EventType, requestID string, payload any) {
	env := Envelope{Type: eventType, RequestID: requestID}
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		env.Payload = raw
	}
	require.NoError(t, conn.WriteJSON(env))
}

func readEnvelope(t *testing.T, conn *websocket.Conn) Envelope {
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var env Envelope
	require.NoError(t, conn.ReadJSON(&env))
	return env
}

// expectEvent skips unrelated broadcasts until the wanted event arrives.
func expectEvent(t *testing.T, conn *websocket.Conn, want EventType) Envelope {
	for i := 0; i < 10; i++ {
		env := readEnvelope(t, conn)
		if env.Type == want {
			return env
		}
	}
	t.Fatalf("no %s event received", want)
	return Envelope{}
}

func decodePayload[T any](t *testing.T, env Envelope) T {
	var v T
	require.NoError(t, json.Unmarshal(env.Payload, &v))
	return v
}

func TestServer_WelcomeSnapshot(t *testing.T) {
	f := newWSFixture(t)
	f.hub.SetKitchenOpen(false)

	url := "ws" + strings.TrimPrefix(f.srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	first := readEnvelope(t, conn)
	assert.Equal(t, EventKitchenStatus, first.Type)
	assert.False(t, decodePayload[KitchenStatusPayload](t, first).IsOpen)

	second := readEnvelope(t, conn)
	assert.Equal(t, EventSettingsUpdated, second.Type)
	assert.Equal(t, "5", decodePayload[domain.Settings](t, second)["deliveryRadius"])
}

func TestServer_GetOrdersIsIdempotent(t *testing.T) {
	f := newWSFixture(t)
	f.orders.On("ListOrders", mock.Anything).Return([]domain.Order{
		{ID: 1, TableID: "5", Status: domain.StatusPending, Total: 390},
	}, nil).Twice()

	conn := f.dial(t, "")
	send(t, conn, EventGetOrders, "a", nil)
	first := expectEvent(t, conn, EventOrdersUpdated)
	send(t, conn, EventGetOrders, "a", nil)
	second := expectEvent(t, conn, EventOrdersUpdated)

	assert.Equal(t, "a", first.RequestID)
	assert.JSONEq(t, string(first.Payload), string(second.Payload))
}

func TestServer_RoleGating(t *testing.T) {
	f := newWSFixture(t)
	conn := f.dial(t, "")

	testCases := []struct {
		name      string
		eventType EventType
	}{
		{name: "clear history", eventType: EventClearHistory},
		{name: "update settings", eventType: EventUpdateSettings},
		{name: "settle table", eventType: EventSettleTable},
		{name: "get sales", eventType: EventGetSales},
		{name: "rider location", eventType: EventRiderLocation},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			send(t, conn, testCase.eventType, testCase.name, map[string]any{})
			env := expectEvent(t, conn, EventError)
			assert.Equal(t, testCase.name, env.RequestID)
			assert.Equal(t, CodeForbidden, decodePayload[ErrorPayload](t, env).Code)
		})
	}
}

func TestServer_LoginUnlocksStaffEvents(t *testing.T) {
	f := newWSFixture(t)
	f.auth.On("Login", "kitchen-pass").Return(domain.RoleKitchen, "signed", nil).Once()
	f.auth.On("Login", "wrong").Return(domain.Role(""), "", service.ErrInvalidPassword).Once()

	conn := f.dial(t, "")

	send(t, conn, EventLogin, "", map[string]string{"password": "wrong"})
	failed := expectEvent(t, conn, EventLoginError)
	assert.Equal(t, "Invalid password", decodePayload[MessagePayload](t, failed).Message)

	send(t, conn, EventToggleKitchen, "", nil)
	assert.Equal(t, CodeForbidden, decodePayload[ErrorPayload](t, expectEvent(t, conn, EventError)).Code)

	send(t, conn, EventLogin, "", map[string]string{"password": "kitchen-pass"})
	ok := decodePayload[LoginSuccessPayload](t, expectEvent(t, conn, EventLoginSuccess))
	assert.Equal(t, "kitchen", ok.Role)
	assert.Equal(t, "signed", ok.Token)

	send(t, conn, EventToggleKitchen, "", nil)
	status := decodePayload[KitchenStatusPayload](t, expectEvent(t, conn, EventKitchenStatus))
	assert.False(t, status.IsOpen)
	assert.False(t, f.hub.KitchenOpen())

	// Kitchen is not admin.
	send(t, conn, EventClearHistory, "", nil)
	assert.Equal(t, CodeForbidden, decodePayload[ErrorPayload](t, expectEvent(t, conn, EventError)).Code)
}

func TestServer_TokenRestoresRole(t *testing.T) {
	f := newWSFixture(t)
	f.auth.On("ParseToken", "admin-token").Return(domain.RoleAdmin, nil).Once()
	f.auth.On("ParseToken", "expired").Return(domain.Role(""), service.ErrInvalidToken).Once()
	f.settlement.On("ClearHistory", mock.Anything).Return(nil).Once()
	f.orders.On("ListOrders", mock.Anything).Return([]domain.Order{}, nil).Once()
	f.settlement.On("ListSales", mock.Anything).Return([]domain.Sale{}, nil).Once()
	f.expenses.On("List", mock.Anything).Return([]domain.Expense{}, nil).Once()

	stale := f.dial(t, "?token=expired")
	send(t, stale, EventGetSales, "", nil)
	assert.Equal(t, CodeForbidden, decodePayload[ErrorPayload](t, expectEvent(t, stale, EventError)).Code)

	admin := f.dial(t, "?token=admin-token")
	send(t, admin, EventClearHistory, "", nil)
	expectEvent(t, admin, EventOrdersUpdated)
	expectEvent(t, admin, EventSalesUpdated)
	expectEvent(t, admin, EventExpensesUpdated)
}

func TestServer_PlaceOrder(t *testing.T) {
	t.Run("accepted while kitchen is closed", func(t *testing.T) {
		f := newWSFixture(t)
		f.hub.SetKitchenOpen(false)
		placed := &domain.Order{ID: 7, TableID: "5", Status: domain.StatusPending, Total: 390}
		f.orders.On("PlaceOrder", mock.Anything, mock.MatchedBy(func(in validation.OrderInput) bool {
			return in.TableID == "5" && len(in.Items) == 1
		})).Return(placed, nil).Once()
		f.orders.On("ListOrders", mock.Anything).Return([]domain.Order{*placed}, nil).Once()

		conn := f.dial(t, "")
		send(t, conn, EventPlaceOrder, "r1", map[string]any{
			"tableId": "5",
			"items":   []map[string]any{{"name": "Dal Baati", "price": 195, "qty": 2}},
			"total":   390,
		})

		env := expectEvent(t, conn, EventOrderPlaced)
		assert.Equal(t, "r1", env.RequestID)
		assert.Equal(t, 7, decodePayload[domain.Order](t, env).ID)
		alert := expectEvent(t, conn, EventNewOrderAlert)
		assert.Equal(t, "5", decodePayload[domain.Order](t, alert).TableID)
		expectEvent(t, conn, EventOrdersUpdated)
	})

	t.Run("validation failure answers order-error", func(t *testing.T) {
		f := newWSFixture(t)
		f.orders.On("PlaceOrder", mock.Anything, mock.Anything).
			Return(nil, &validation.Error{Field: "total", Message: "Total mismatch"}).Once()

		conn := f.dial(t, "")
		send(t, conn, EventPlaceOrder, "r2", map[string]any{"tableId": "5", "total": 1})

		env := expectEvent(t, conn, EventOrderError)
		assert.Equal(t, "r2", env.RequestID)
		assert.Equal(t, "Total mismatch", decodePayload[MessagePayload](t, env).Message)
	})

	t.Run("malformed payload answers order-error", func(t *testing.T) {
		f := newWSFixture(t)
		conn := f.dial(t, "")
		send(t, conn, EventPlaceOrder, "r3", "not an object")

		env := expectEvent(t, conn, EventOrderError)
		assert.Contains(t, decodePayload[MessagePayload](t, env).Message, "malformed payload")
	})
}

func TestServer_StoreUnavailable(t *testing.T) {
	f := newWSFixture(t)
	f.orders.On("ListOrders", mock.Anything).
		Return(nil, fmt.Errorf("list orders: %w: connection refused", service.ErrStoreUnavailable)).Once()

	conn := f.dial(t, "")
	send(t, conn, EventGetOrders, "q", nil)

	env := expectEvent(t, conn, EventStoreUnavailable)
	assert.Equal(t, "q", env.RequestID)
	assert.NotContains(t, decodePayload[MessagePayload](t, env).Message, "connection refused")
}

func TestServer_ErrorCodes(t *testing.T) {
	f := newWSFixture(t)
	f.auth.On("ParseToken", "admin").Return(domain.RoleAdmin, nil).Once()
	f.orders.On("Approve", mock.Anything, 404).Return(nil, fmt.Errorf("approve: %w", service.ErrOrderNotFound)).Once()
	f.orders.On("Approve", mock.Anything, 409).Return(nil, service.ErrStatusConflict).Once()
	f.settlement.On("SettleTable", mock.Anything, "9", domain.PaymentMode("CARD")).
		Return(nil, service.ErrInvalidPaymentMode).Once()

	conn := f.dial(t, "?token=admin")

	testCases := []struct {
		name      string
		eventType EventType
		payload   any
		code      string
	}{
		{name: "missing order", eventType: EventApproveOrder, payload: map[string]int{"orderId": 404}, code: CodeNotFound},
		{name: "lost race", eventType: EventApproveOrder, payload: map[string]int{"orderId": 409}, code: CodeConflict},
		{name: "bad payment mode", eventType: EventSettleTable, payload: map[string]any{"tableId": 9, "paymentMode": "CARD"}, code: CodeInvalid},
		{name: "fractional table", eventType: EventSettleTable, payload: map[string]any{"tableId": 9.5}, code: CodeInvalid},
		{name: "string order id", eventType: EventApproveOrder, payload: map[string]string{"orderId": "x"}, code: CodeInvalid},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			send(t, conn, testCase.eventType, testCase.name, testCase.payload)
			env := expectEvent(t, conn, EventError)
			assert.Equal(t, testCase.name, env.RequestID)
			assert.Equal(t, testCase.code, decodePayload[ErrorPayload](t, env).Code)
		})
	}
}

func TestServer_PanicKeepsConnection(t *testing.T) {
	f := newWSFixture(t)
	f.menu.On("List", mock.Anything).Run(func(mock.Arguments) { panic("boom") }).Once()
	f.menu.On("List", mock.Anything).Return([]domain.MenuItem{{ID: 1, Name: "Masala Chai"}}, nil).Once()

	conn := f.dial(t, "")
	send(t, conn, EventGetMenu, "p1", nil)
	env := expectEvent(t, conn, EventError)
	assert.Equal(t, CodeInternal, decodePayload[ErrorPayload](t, env).Code)

	send(t, conn, EventGetMenu, "p2", nil)
	items := decodePayload[[]domain.MenuItem](t, expectEvent(t, conn, EventMenuUpdated))
	require.Len(t, items, 1)
	assert.Equal(t, "Masala Chai", items[0].Name)
}

func TestServer_MalformedFrames(t *testing.T) {
	f := newWSFixture(t)
	conn := f.dial(t, "")

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("{not json")))
	env := expectEvent(t, conn, EventError)
	assert.Equal(t, CodeBadRequest, decodePayload[ErrorPayload](t, env).Code)

	send(t, conn, EventType("order-pizza"), "u", nil)
	env = expectEvent(t, conn, EventError)
	assert.Equal(t, CodeUnknownEvent, decodePayload[ErrorPayload](t, env).Code)
	assert.Equal(t, "u", env.RequestID)
}

func TestServer_RejectBroadcastsReason(t *testing.T) {
	f := newWSFixture(t)
	f.auth.On("ParseToken", "kitchen").Return(domain.RoleKitchen, nil).Once()
	f.orders.On("Reject", mock.Anything, 7, "Kitchen too busy").
		Return(&domain.Order{ID: 7, TableID: "3", Status: domain.StatusCancelled}, "Kitchen too busy", nil).Once()
	f.orders.On("ListOrders", mock.Anything).Return([]domain.Order{}, nil).Once()

	customer := f.dial(t, "")
	kitchen := f.dial(t, "?token=kitchen")

	send(t, kitchen, EventRejectOrder, "", map[string]any{"orderId": 7, "reason": "Kitchen too busy"})

	for _, conn := range []*websocket.Conn{customer, kitchen} {
		got := decodePayload[OrderDecisionPayload](t, expectEvent(t, conn, EventOrderRejected))
		assert.Equal(t, OrderDecisionPayload{OrderID: 7, TableID: "3", Reason: "Kitchen too busy"}, got)
	}
	expectEvent(t, kitchen, EventOrdersUpdated)
}

func TestServer_DeliveredOrderRecordsSale(t *testing.T) {
	f := newWSFixture(t)
	f.auth.On("ParseToken", "rider").Return(domain.RoleDelivery, nil).Once()
	f.orders.On("UpdateStatus", mock.Anything, 7, "delivered", domain.PaymentOnline).
		Return(&domain.Order{ID: 7, Status: domain.StatusDelivered}, &domain.Sale{ID: 3, Total: 250}, nil).Once()
	f.orders.On("ListOrders", mock.Anything).Return([]domain.Order{}, nil).Once()
	f.settlement.On("ListSales", mock.Anything).Return([]domain.Sale{{ID: 3, Total: 250}}, nil).Once()

	rider := f.dial(t, "?token=rider")
	send(t, rider, EventUpdateOrderStatus, "d1", map[string]any{"orderId": 7, "status": "delivered", "paymentMode": "ONLINE"})

	sale := expectEvent(t, rider, EventSaleRecorded)
	assert.Equal(t, "d1", sale.RequestID)
	assert.Equal(t, 3, decodePayload[domain.Sale](t, sale).ID)
	expectEvent(t, rider, EventSalesUpdated)
}

func TestServer_RiderLocationRelay(t *testing.T) {
	f := newWSFixture(t)
	f.auth.On("ParseToken", "rider").Return(domain.RoleDelivery, nil).Once()

	watcher := f.dial(t, "")
	rider := f.dial(t, "?token=rider")

	location := `{"orderId":7,"lat":26.91,"lng":75.78}`
	require.NoError(t, rider.WriteMessage(websocket.TextMessage,
		[]byte(`{"type":"rider-location","payload":`+location+`}`)))

	env := expectEvent(t, watcher, EventRiderLocationUpdate)
	assert.JSONEq(t, location, string(env.Payload))
}

func TestServer_UpdateSettingsStringifiesValues(t *testing.T) {
	f := newWSFixture(t)
	f.auth.On("ParseToken", "admin").Return(domain.RoleAdmin, nil).Once()
	want := domain.Settings{"deliveryRadius": "7.5", "restaurantLat": "26.9", "upiId": "marwad@upi", "acceptDelivery": "true"}
	f.settings.On("Update", mock.Anything, want).Return(want, nil).Once()

	admin := f.dial(t, "?token=admin")
	send(t, admin, EventUpdateSettings, "", map[string]any{
		"deliveryRadius": 7.5,
		"restaurantLat":  26.9,
		"upiId":          "marwad@upi",
		"acceptDelivery": true,
	})

	got := decodePayload[domain.Settings](t, expectEvent(t, admin, EventSettingsUpdated))
	assert.Equal(t, want, got)
}

func TestServer_RingBellAndSongs(t *testing.T) {
	f := newWSFixture(t)
	conn := f.dial(t, "")

	send(t, conn, EventRingBell, "", map[string]any{"tableId": 4})
	alert := decodePayload[domain.ServiceAlert](t, expectEvent(t, conn, EventNewServiceAlert))
	assert.Equal(t, "4", alert.TableID)
	assert.NotEmpty(t, alert.ID)

	send(t, conn, EventRequestSong, "", map[string]any{"tableId": "4", "song": "  Kesariya  "})
	song := decodePayload[domain.SongRequest](t, expectEvent(t, conn, EventSongRequest))
	assert.Equal(t, "Kesariya", song.Song)

	send(t, conn, EventRequestSong, "s", map[string]any{"tableId": "4", "song": " "})
	assert.Equal(t, CodeInvalid, decodePayload[ErrorPayload](t, expectEvent(t, conn, EventError)).Code)
}

func TestServer_CheckFirstTime(t *testing.T) {
	f := newWSFixture(t)
	f.orders.On("IsFirstTimeCustomer", mock.Anything, "9876543210").Return(true, nil).Once()

	conn := f.dial(t, "")
	send(t, conn, EventCheckFirstTime, "f", map[string]string{"phone": "9876543210"})

	got := decodePayload[FirstTimePayload](t, expectEvent(t, conn, EventFirstTimeStatus))
	assert.Equal(t, FirstTimePayload{Phone: "9876543210", IsFirstTime: true}, got)
}
