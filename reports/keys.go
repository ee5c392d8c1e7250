// Package reports holds the Redis layout shared by the aggregation writer
// and the analytics reader.
package reports

import "time"

const DayLayout = "2006-01-02"

const (
	FieldRevenue       = "revenue"
	FieldRevenueCash   = "revenue_cash"
	FieldRevenueOnline = "revenue_online"
	FieldSalesCount    = "sales_count"
	FieldExpenses      = "expenses"
)

const (
	KeyPattern      = "report:*"
	AllTimeItemsKey = "report:items:alltime"
)

func DailyKey(day string) string {
	return "report:daily:" + day
}

func ItemsKey(day string) string {
	return "report:items:" + day
}

// Day formats t as a report day in loc. A zero time means now.
func Day(t time.Time, loc *time.Location) string {
	if t.IsZero() {
		t = time.Now()
	}
	if loc == nil {
		loc = time.Local
	}
	return t.In(loc).Format(DayLayout)
}

// RevenueField maps a payment mode to its revenue split field.
func RevenueField(mode string) string {
	if mode == "ONLINE" {
		return FieldRevenueOnline
	}
	return FieldRevenueCash
}
