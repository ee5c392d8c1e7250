package domain

import "time"

const (
	EventSaleRecorded   = "sale_recorded"
	EventExpenseAdded   = "expense_added"
	EventExpenseDeleted = "expense_deleted"
	EventHistoryCleared = "history_cleared"
)

type SaleItem struct {
	Name  string  `json:"name"`
	Qty   int     `json:"qty"`
	Price float64 `json:"price"`
}

// KafkaMessage is the subset of the hub's event envelope this service reads.
type KafkaMessage struct {
	Type        string     `json:"type"`
	SaleID      int        `json:"sale_id,omitempty"`
	ExpenseID   int        `json:"expense_id,omitempty"`
	TableID     string     `json:"table_id,omitempty"`
	Total       float64    `json:"total,omitempty"`
	Amount      float64    `json:"amount,omitempty"`
	PaymentMode string     `json:"payment_mode,omitempty"`
	Items       []SaleItem `json:"items,omitempty"`
	Timestamp   time.Time  `json:"timestamp"`
}
