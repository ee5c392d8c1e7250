package domain

import "time"

// Sentinel table ids used by non-table contexts.
const (
	TableDelivery = "delivery"
	TableWalkIn   = "WALK-IN"
	TableTesting  = "testing"
)

type Category string

const (
	CategoryHut        Category = "HUT"
	CategoryRestaurant Category = "RESTAURANT"
	CategoryCafe       Category = "CAFE"
)

type PaymentMode string

const (
	PaymentCash   PaymentMode = "CASH"
	PaymentOnline PaymentMode = "ONLINE"
)

func (m PaymentMode) Valid() bool {
	return m == PaymentCash || m == PaymentOnline
}

type Portion struct {
	Label string  `json:"label"`
	Price float64 `json:"price"`
}

type MenuItem struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Price       *float64  `json:"price,omitempty"`
	Portions    []Portion `json:"portions,omitempty"`
	Category    Category  `json:"category"`
	SubCategory string    `json:"subCategory,omitempty"`
	Available   bool      `json:"isAvailable"`
	ImageURL    string    `json:"image,omitempty"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

type OrderItem struct {
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Qty      int     `json:"qty"`
	Category string  `json:"category,omitempty"`
	Portion  string  `json:"portion,omitempty"`
}

type DeliveryDetails struct {
	CustomerName string   `json:"customerName"`
	Phone        string   `json:"phone"`
	Address      string   `json:"address"`
	Lat          *float64 `json:"lat,omitempty"`
	Lng          *float64 `json:"lng,omitempty"`
	DistanceKm   *float64 `json:"distance,omitempty"`
}

type Order struct {
	ID         int              `json:"id"`
	TableID    string           `json:"tableId"`
	Items      []OrderItem      `json:"items"`
	Total      float64          `json:"total"`
	Status     Status           `json:"status"`
	IsDelivery bool             `json:"isDelivery"`
	Delivery   *DeliveryDetails `json:"deliveryDetails,omitempty"`
	CreatedAt  time.Time        `json:"createdAt"`
}

type SaleItem struct {
	Name  string  `json:"name"`
	Qty   int     `json:"qty"`
	Price float64 `json:"price"`
}

type Sale struct {
	ID          int              `json:"id"`
	TableID     string           `json:"tableId"`
	Items       []SaleItem       `json:"items"`
	Total       float64          `json:"total"`
	PaymentMode PaymentMode      `json:"paymentMode"`
	Delivery    *DeliveryDetails `json:"deliveryDetails,omitempty"`
	IsWalkIn    bool             `json:"isWalkIn,omitempty"`
	IsDelivery  bool             `json:"isDelivery,omitempty"`
	SettledAt   time.Time        `json:"settledAt"`
}

type Expense struct {
	ID          int         `json:"id"`
	Item        string      `json:"item"`
	Amount      float64     `json:"amount"`
	PaidBy      string      `json:"paidBy"`
	Description string      `json:"description,omitempty"`
	PaymentMode PaymentMode `json:"paymentMode"`
	Date        time.Time   `json:"date"`
}

// Settings is the reconstituted key/value view of the settings rows.
type Settings map[string]string

const (
	SettingDeliveryRadius = "deliveryRadius"
	SettingRestaurantLat  = "restaurantLat"
	SettingRestaurantLng  = "restaurantLng"
)

// ServiceAlert and SongRequest only live in the hub's fan-out.
type ServiceAlert struct {
	ID        string    `json:"id"`
	TableID   string    `json:"tableId"`
	Timestamp time.Time `json:"timestamp"`
}

type SongRequest struct {
	ID        string    `json:"id"`
	TableID   string    `json:"tableId"`
	Song      string    `json:"song"`
	Timestamp time.Time `json:"timestamp"`
}
