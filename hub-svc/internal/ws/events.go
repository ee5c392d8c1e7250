package ws

import "encoding/json"

type EventType string

// Client to server.
const (
	EventGetMenu             EventType = "get-menu"
	EventGetOrders           EventType = "get-orders"
	EventGetSales            EventType = "get-sales"
	EventGetExpenses         EventType = "get-expenses"
	EventGetSettings         EventType = "get-settings"
	EventPlaceOrder          EventType = "place-order"
	EventUpdateOrderStatus   EventType = "update-order-status"
	EventApproveOrder        EventType = "approve-order"
	EventRejectOrder         EventType = "reject-order"
	EventToggleKitchen       EventType = "toggle-kitchen"
	EventUpsertMenuItem      EventType = "upsert-menu-item"
	EventDeleteMenuItem      EventType = "delete-menu-item"
	EventSetMenuAvailability EventType = "set-menu-availability"
	EventSettleTable         EventType = "settle-table"
	EventSettleManual        EventType = "settle-manual"
	EventAddExpense          EventType = "add-expense"
	EventDeleteExpense       EventType = "delete-expense"
	EventUpdateSettings      EventType = "update-settings"
	EventClearHistory        EventType = "clear-history"
	EventRingBell            EventType = "ring-bell"
	EventRequestSong         EventType = "request-song"
	EventAcceptSong          EventType = "accept-song"
	EventRiderLocation       EventType = "rider-location"
	EventCheckFirstTime      EventType = "check-first-time"
	EventLogin               EventType = "login"
)

// Server to client.
const (
	EventMenuUpdated         EventType = "menu-updated"
	EventOrdersUpdated       EventType = "orders-updated"
	EventSalesUpdated        EventType = "sales-updated"
	EventExpensesUpdated     EventType = "expenses-updated"
	EventSettingsUpdated     EventType = "settings-updated"
	EventKitchenStatus       EventType = "kitchen-status"
	EventNewOrderAlert       EventType = "new-order-alert"
	EventNewServiceAlert     EventType = "new-service-alert"
	EventOrderPlaced         EventType = "order-placed"
	EventOrderApproved       EventType = "order-approved"
	EventOrderRejected       EventType = "order-rejected"
	EventOrderError          EventType = "order-error"
	EventLoginSuccess        EventType = "login-success"
	EventLoginError          EventType = "login-error"
	EventSongRequest         EventType = "song-request"
	EventSongAccepted        EventType = "song-request-accepted"
	EventRiderLocationUpdate EventType = "rider-location-update"
	EventFirstTimeStatus     EventType = "first-time-status"
	EventSaleRecorded        EventType = "sale-recorded"
	EventStoreUnavailable    EventType = "store-unavailable"
	EventError               EventType = "error"
)

// Envelope is the frame exchanged in both directions.
type Envelope struct {
	Type      EventType       `json:"type"`
	RequestID string          `json:"requestId,omitempty"`
	Payload   json.RawMessage `json:"payload,omitempty"`
}

func encode(eventType EventType, requestID string, payload any) ([]byte, error) {
	var raw json.RawMessage
	if payload != nil {
		var err error
		if raw, err = json.Marshal(payload); err != nil {
			return nil, err
		}
	}
	return json.Marshal(Envelope{Type: eventType, RequestID: requestID, Payload: raw})
}

// Error codes carried by EventError replies.
const (
	CodeBadRequest   = "bad_request"
	CodeUnknownEvent = "unknown_event"
	CodeForbidden    = "forbidden"
	CodeInvalid      = "invalid"
	CodeNotFound     = "not_found"
	CodeConflict     = "conflict"
	CodeInternal     = "internal"
)

type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type MessagePayload struct {
	Message string `json:"message"`
}

type KitchenStatusPayload struct {
	IsOpen bool `json:"isOpen"`
}

type OrderDecisionPayload struct {
	OrderID int    `json:"orderId"`
	TableID string `json:"tableId"`
	Reason  string `json:"reason,omitempty"`
}

type LoginSuccessPayload struct {
	Role  string `json:"role"`
	Token string `json:"token"`
}

type FirstTimePayload struct {
	Phone       string `json:"phone"`
	IsFirstTime bool   `json:"isFirstTime"`
}
