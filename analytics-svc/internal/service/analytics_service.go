package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"marwad-digital-menu/analytics-svc/internal/domain"
	"marwad-digital-menu/reports"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

var (
	ErrInvalidQuery = errors.New("invalid report query")
	ErrUnavailable  = errors.New("report store unavailable")
)

const (
	AllTime         = "alltime"
	DefaultTopItems = 10
	MaxTopItems     = 100
	MaxRangeDays    = 366
)

type AnalyticsService struct {
	db  *sql.DB
	rdb *redis.Client
	loc *time.Location
}

func NewAnalyticsService(db *sql.DB, rdb *redis.Client, loc *time.Location) *AnalyticsService {
	if loc == nil {
		loc = time.Local
	}
	return &AnalyticsService{db: db, rdb: rdb, loc: loc}
}

// day resolves a YYYY-MM-DD query value; empty means today.
func (s *AnalyticsService) day(raw string) (time.Time, error) {
	if raw == "" {
		now := time.Now().In(s.loc)
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.loc), nil
	}
	t, err := time.ParseInLocation(reports.DayLayout, raw, s.loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date %q must be YYYY-MM-DD", ErrInvalidQuery, raw)
	}
	return t, nil
}

func unavailable(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrUnavailable, err)
}

func (s *AnalyticsService) Daily(ctx context.Context, date string) (*domain.DailyReport, error) {
	t, err := s.day(date)
	if err != nil {
		return nil, err
	}
	day := t.Format(reports.DayLayout)

	fields, err := s.rdb.HGetAll(ctx, reports.DailyKey(day)).Result()
	if err != nil {
		return nil, unavailable("daily report", err)
	}

	report := &domain.DailyReport{Date: day}
	amounts := []struct {
		field string
		dst   *decimal.Decimal
	}{
		{reports.FieldRevenue, &report.Revenue},
		{reports.FieldRevenueCash, &report.RevenueCash},
		{reports.FieldRevenueOnline, &report.RevenueOnline},
		{reports.FieldExpenses, &report.Expenses},
	}
	for _, a := range amounts {
		raw, ok := fields[a.field]
		if !ok {
			continue
		}
		v, err := decimal.NewFromString(raw)
		if err != nil {
			return nil, fmt.Errorf("daily report field %s: %w", a.field, err)
		}
		*a.dst = v.Round(2)
	}
	if raw, ok := fields[reports.FieldSalesCount]; ok {
		count, err := decimal.NewFromString(raw)
		if err != nil {
			return nil, fmt.Errorf("daily report field %s: %w", reports.FieldSalesCount, err)
		}
		report.SalesCount = count.IntPart()
	}
	report.Net = report.Revenue.Sub(report.Expenses)
	return report, nil
}

// TopItems ranks items by quantity sold on date, or across all time when
// date is "alltime".
func (s *AnalyticsService) TopItems(ctx context.Context, date string, limit int) ([]domain.ItemRank, error) {
	if limit <= 0 {
		limit = DefaultTopItems
	}
	if limit > MaxTopItems {
		limit = MaxTopItems
	}

	key := reports.AllTimeItemsKey
	if date != AllTime {
		t, err := s.day(date)
		if err != nil {
			return nil, err
		}
		key = reports.ItemsKey(t.Format(reports.DayLayout))
	}

	results, err := s.rdb.ZRevRangeWithScores(ctx, key, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, unavailable("top items", err)
	}

	top := make([]domain.ItemRank, 0, len(results))
	for _, result := range results {
		name, _ := result.Member.(string)
		top = append(top, domain.ItemRank{Name: name, Qty: int64(math.Round(result.Score))})
	}
	return top, nil
}

// Range totals sales and expenses per day from Postgres, both ends inclusive.
func (s *AnalyticsService) Range(ctx context.Context, from, to string) (*domain.RangeReport, error) {
	if from == "" || to == "" {
		return nil, fmt.Errorf("%w: from and to are required", ErrInvalidQuery)
	}
	start, err := s.day(from)
	if err != nil {
		return nil, err
	}
	last, err := s.day(to)
	if err != nil {
		return nil, err
	}
	if last.Before(start) {
		return nil, fmt.Errorf("%w: from must not be after to", ErrInvalidQuery)
	}
	end := last.AddDate(0, 0, 1)
	if end.Sub(start) > MaxRangeDays*24*time.Hour+time.Hour {
		return nil, fmt.Errorf("%w: range is limited to %d days", ErrInvalidQuery, MaxRangeDays)
	}

	days := map[string]*domain.DayTotals{}
	get := func(day string) *domain.DayTotals {
		if d, ok := days[day]; ok {
			return d
		}
		d := &domain.DayTotals{Date: day}
		days[day] = d
		return d
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT to_char(settled_at AT TIME ZONE $3, 'YYYY-MM-DD') AS day, SUM(total), COUNT(*)
		FROM sales
		WHERE settled_at >= $1 AND settled_at < $2
		GROUP BY day
		ORDER BY day`, start, end, s.loc.String())
	if err != nil {
		return nil, unavailable("range sales", err)
	}
	for rows.Next() {
		var day string
		var total decimal.Decimal
		var count int64
		if err := rows.Scan(&day, &total, &count); err != nil {
			rows.Close()
			return nil, unavailable("scan range sales", err)
		}
		d := get(day)
		d.Revenue = total
		d.SalesCount = count
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, unavailable("range sales", err)
	}
	rows.Close()

	rows, err = s.db.QueryContext(ctx, `
		SELECT to_char(spent_at AT TIME ZONE $3, 'YYYY-MM-DD') AS day, SUM(amount)
		FROM expenses
		WHERE spent_at >= $1 AND spent_at < $2
		GROUP BY day
		ORDER BY day`, start, end, s.loc.String())
	if err != nil {
		return nil, unavailable("range expenses", err)
	}
	defer rows.Close()
	for rows.Next() {
		var day string
		var amount decimal.Decimal
		if err := rows.Scan(&day, &amount); err != nil {
			return nil, unavailable("scan range expenses", err)
		}
		get(day).Expenses = amount
	}
	if err := rows.Err(); err != nil {
		return nil, unavailable("range expenses", err)
	}

	report := &domain.RangeReport{
		From: start.Format(reports.DayLayout),
		To:   last.Format(reports.DayLayout),
		Days: make([]domain.DayTotals, 0, len(days)),
	}
	for _, d := range days {
		d.Net = d.Revenue.Sub(d.Expenses)
		report.Days = append(report.Days, *d)
		report.Revenue = report.Revenue.Add(d.Revenue)
		report.Expenses = report.Expenses.Add(d.Expenses)
		report.SalesCount += d.SalesCount
	}
	sort.Slice(report.Days, func(i, j int) bool { return report.Days[i].Date < report.Days[j].Date })
	report.Net = report.Revenue.Sub(report.Expenses)
	return report, nil
}
