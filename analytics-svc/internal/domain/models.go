package domain

import "github.com/shopspring/decimal"

type DailyReport struct {
	Date          string          `json:"date"`
	Revenue       decimal.Decimal `json:"revenue"`
	RevenueCash   decimal.Decimal `json:"revenueCash"`
	RevenueOnline decimal.Decimal `json:"revenueOnline"`
	SalesCount    int64           `json:"salesCount"`
	Expenses      decimal.Decimal `json:"expenses"`
	Net           decimal.Decimal `json:"net"`
}

type ItemRank struct {
	Name string `json:"name"`
	Qty  int64  `json:"qty"`
}

type DayTotals struct {
	Date       string          `json:"date"`
	Revenue    decimal.Decimal `json:"revenue"`
	SalesCount int64           `json:"salesCount"`
	Expenses   decimal.Decimal `json:"expenses"`
	Net        decimal.Decimal `json:"net"`
}

type RangeReport struct {
	From       string          `json:"from"`
	To         string          `json:"to"`
	Days       []DayTotals     `json:"days"`
	Revenue    decimal.Decimal `json:"revenue"`
	SalesCount int64           `json:"salesCount"`
	Expenses   decimal.Decimal `json:"expenses"`
	Net        decimal.Decimal `json:"net"`
}
