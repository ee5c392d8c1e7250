package domain

import "time"

// Event types published on the restaurant events topic.
const (
	EventOrderCreated       = "order_created"
	EventOrderStatusChanged = "order_status_changed"
	EventSaleRecorded       = "sale_recorded"
	EventExpenseAdded       = "expense_added"
	EventExpenseDeleted     = "expense_deleted"
	EventHistoryCleared     = "history_cleared"
)

type KafkaMessage struct {
	Type        string      `json:"type"`
	OrderID     int         `json:"order_id,omitempty"`
	SaleID      int         `json:"sale_id,omitempty"`
	ExpenseID   int         `json:"expense_id,omitempty"`
	TableID     string      `json:"table_id,omitempty"`
	Status      Status      `json:"status,omitempty"`
	Total       float64     `json:"total,omitempty"`
	Amount      float64     `json:"amount,omitempty"`
	PaymentMode PaymentMode `json:"payment_mode,omitempty"`
	Items       []SaleItem  `json:"items,omitempty"`
	Timestamp   time.Time   `json:"timestamp"`
}
