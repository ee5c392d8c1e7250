package validation

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"marwad-digital-menu/hub-svc/internal/domain"

	"github.com/shopspring/decimal"
)

const (
	MaxTableIDLen      = 50
	MaxCustomerNameLen = 100
	MaxAddressLen      = 500
	MinCustomerNameLen = 2
	MinAddressLen      = 10
	DefaultPhone       = `^[6-9]\d{9}$`

	// MaxQty caps a single line's quantity.
	MaxQty = 10000
	// MaxAmount is the largest value a NUMERIC(10,2) money column holds.
	MaxAmount = 99999999.99
)

// maxExactInt is the largest integer a JSON number decodes to exactly.
const maxExactInt = 1 << 53

var (
	totalTolerance = decimal.NewFromFloat(0.01)
	maxAmount      = decimal.NewFromFloat(MaxAmount)
)

// Error is a user-facing rejection of a submission.
type Error struct {
	Field   string
	Message string
}

func (e *Error) Error() string { return e.Message }

func invalid(field, format string, args ...any) *Error {
	return &Error{Field: field, Message: fmt.Sprintf(format, args...)}
}

// Numeric fields are decoded as `any` so that strings such as "120" are
// rejected instead of being coerced.
type ItemInput struct {
	Name     string `json:"name"`
	Price    any    `json:"price"`
	Qty      any    `json:"qty"`
	Category string `json:"category,omitempty"`
	Portion  string `json:"portion,omitempty"`
}

type DeliveryInput struct {
	CustomerName string `json:"customerName"`
	Phone        string `json:"phone"`
	Address      string `json:"address"`
	Lat          any    `json:"lat,omitempty"`
	Lng          any    `json:"lng,omitempty"`
	Distance     any    `json:"distance,omitempty"`
}

type OrderInput struct {
	TableID          any            `json:"tableId"`
	Items            []ItemInput    `json:"items"`
	Total            any            `json:"total"`
	IsDelivery       bool           `json:"isDelivery"`
	RequiresApproval bool           `json:"requiresApproval"`
	Delivery         *DeliveryInput `json:"deliveryDetails,omitempty"`
}

type Validator struct {
	phone *regexp.Regexp
}

func New(phonePattern string) (*Validator, error) {
	if phonePattern == "" {
		phonePattern = DefaultPhone
	}
	re, err := regexp.Compile(phonePattern)
	if err != nil {
		return nil, fmt.Errorf("compile phone pattern: %w", err)
	}
	return &Validator{phone: re}, nil
}

// MustNew panics on a bad pattern; used with constant patterns.
func MustNew(phonePattern string) *Validator {
	v, err := New(phonePattern)
	if err != nil {
		panic(err)
	}
	return v
}

// ValidateOrder checks a submission and returns the sanitized order with
// the server-computed total. Status and id are left for the state machine.
func (v *Validator) ValidateOrder(in OrderInput) (*domain.Order, error) {
	tableID, err := TableID(in.TableID)
	if err != nil {
		return nil, err
	}

	items, computed, err := ValidateItems(in.Items)
	if err != nil {
		return nil, err
	}
	if err := checkTotal(computed, in.Total); err != nil {
		return nil, err
	}

	order := &domain.Order{
		TableID:    tableID,
		Items:      items,
		Total:      computed.Round(2).InexactFloat64(),
		IsDelivery: in.IsDelivery || tableID == domain.TableDelivery,
	}

	if order.IsDelivery && in.Delivery != nil {
		details, err := v.ValidateDelivery(*in.Delivery)
		if err != nil {
			return nil, err
		}
		order.Delivery = details
	}
	return order, nil
}

// ValidateCart checks an ad-hoc walk-in cart the same way order items are checked.
func ValidateCart(items []ItemInput, declaredTotal any) ([]domain.OrderItem, decimal.Decimal, error) {
	out, computed, err := ValidateItems(items)
	if err != nil {
		return nil, decimal.Zero, err
	}
	if declaredTotal != nil {
		if err := checkTotal(computed, declaredTotal); err != nil {
			return nil, decimal.Zero, err
		}
	}
	return out, computed, nil
}

func ValidateItems(items []ItemInput) ([]domain.OrderItem, decimal.Decimal, error) {
	if len(items) == 0 {
		return nil, decimal.Zero, invalid("items", "Order must contain at least one item")
	}

	out := make([]domain.OrderItem, 0, len(items))
	sum := decimal.Zero
	for i, it := range items {
		name := strings.TrimSpace(it.Name)
		if name == "" {
			return nil, decimal.Zero, invalid("items", "Item %d is missing a name", i+1)
		}
		price, ok := it.Price.(float64)
		if !ok || math.IsNaN(price) || math.IsInf(price, 0) {
			return nil, decimal.Zero, invalid("items", "Item %q has a non-numeric price", name)
		}
		if price < 0 {
			return nil, decimal.Zero, invalid("items", "Item %q has a negative price", name)
		}
		if price > MaxAmount {
			return nil, decimal.Zero, invalid("items", "Item %q has a price above the limit", name)
		}
		qty, ok := integral(it.Qty)
		if !ok || qty < 1 {
			return nil, decimal.Zero, invalid("items", "Item %q must have a whole quantity of at least 1", name)
		}
		if qty > MaxQty {
			return nil, decimal.Zero, invalid("items", "Item %q quantity must not exceed %d", name, MaxQty)
		}

		sum = sum.Add(decimal.NewFromFloat(price).Mul(decimal.NewFromInt(qty)))
		if sum.GreaterThan(maxAmount) {
			return nil, decimal.Zero, invalid("total", "Order total exceeds the limit")
		}
		out = append(out, domain.OrderItem{
			Name:     name,
			Price:    price,
			Qty:      int(qty),
			Category: strings.TrimSpace(it.Category),
			Portion:  strings.TrimSpace(it.Portion),
		})
	}
	return out, sum, nil
}

func checkTotal(computed decimal.Decimal, declared any) error {
	total, ok := declared.(float64)
	if !ok {
		return invalid("total", "Order total must be a number")
	}
	if computed.Sub(decimal.NewFromFloat(total)).Abs().GreaterThan(totalTolerance) {
		return invalid("total", "Order total mismatch: expected %s, got %s",
			computed.StringFixed(2), decimal.NewFromFloat(total).StringFixed(2))
	}
	return nil
}

func (v *Validator) ValidateDelivery(in DeliveryInput) (*domain.DeliveryDetails, error) {
	name := strings.TrimSpace(in.CustomerName)
	if utf8.RuneCountInString(name) < MinCustomerNameLen {
		return nil, invalid("customerName", "Customer name must be at least %d characters", MinCustomerNameLen)
	}
	phone := strings.TrimSpace(in.Phone)
	if !v.phone.MatchString(phone) {
		return nil, invalid("phone", "Please enter a valid 10-digit mobile number")
	}
	address := strings.TrimSpace(in.Address)
	if utf8.RuneCountInString(address) < MinAddressLen {
		return nil, invalid("address", "Address must be at least %d characters", MinAddressLen)
	}

	details := &domain.DeliveryDetails{
		CustomerName: capRunes(name, MaxCustomerNameLen),
		Phone:        phone,
		Address:      capRunes(address, MaxAddressLen),
	}

	if in.Lat != nil || in.Lng != nil {
		lat, latOK := in.Lat.(float64)
		lng, lngOK := in.Lng.(float64)
		if !latOK || !lngOK {
			return nil, invalid("location", "Location coordinates must be numeric")
		}
		if lat < -90 || lat > 90 {
			return nil, invalid("location", "Latitude must be between -90 and 90")
		}
		if lng < -180 || lng > 180 {
			return nil, invalid("location", "Longitude must be between -180 and 180")
		}
		details.Lat, details.Lng = &lat, &lng
	}

	if in.Distance != nil {
		d, ok := in.Distance.(float64)
		if !ok || d < 0 {
			return nil, invalid("distance", "Distance must be a non-negative number")
		}
		details.DistanceKm = &d
	}
	return details, nil
}

// TableID normalizes a table identifier; numeric JSON ids are accepted.
func TableID(raw any) (string, error) {
	var s string
	switch v := raw.(type) {
	case string:
		s = v
	case float64:
		id, ok := integral(v)
		if !ok {
			return "", invalid("tableId", "Table id is invalid")
		}
		s = strconv.FormatInt(id, 10)
	default:
		return "", invalid("tableId", "Table id is required")
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return "", invalid("tableId", "Table id is required")
	}
	return capRunes(s, MaxTableIDLen), nil
}

// integral accepts whole numbers that convert to int64 without loss.
func integral(raw any) (int64, bool) {
	f, ok := raw.(float64)
	if !ok || f != math.Trunc(f) || math.Abs(f) > maxExactInt {
		return 0, false
	}
	return int64(f), true
}

func capRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return strings.TrimSpace(string([]rune(s)[:n]))
}
