package service

import (
	"fmt"
	"math"
	"sort"
	"time"

	"go-pos-ledger/internal/model"
	"go-pos-ledger/internal/repository"

	"github.com/montanaflynn/stats"
	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

// DefaultMaxReportDays caps the daily series when no limit is configured.
const DefaultMaxReportDays = 366

// DailySales is one point of the daily series.
type DailySales struct {
	Date    string          `json:"date"`
	Revenue decimal.Decimal `json:"revenue"`
	Profit  decimal.Decimal `json:"profit"`
}

// SalesReport summarizes the ledger over an inclusive calendar-date range.
type SalesReport struct {
	Start        string             `json:"start"`
	End          string             `json:"end"`
	TotalRevenue decimal.Decimal    `json:"total_revenue"`
	TotalProfit  decimal.Decimal    `json:"total_profit"`
	Records      []model.SaleRecord `json:"records"` // newest first
	Daily        []DailySales       `json:"daily"`   // every day in range, zero-filled

	MeanDailyRevenue   float64 `json:"mean_daily_revenue"`
	MedianDailyRevenue float64 `json:"median_daily_revenue"`
}

type ReportService interface {
	// Summarize returns ErrNoSalesData when the ledger is empty and
	// ErrNoSalesInRange when nothing falls between start and end.
	// Ranges longer than the configured maximum fail with ErrInvalidInput.
	Summarize(start, end time.Time) (*SalesReport, error)
	DefaultRange() (time.Time, time.Time)
}

type reportService struct {
	ledger      repository.LedgerStore
	loc         *time.Location
	defaultDays int
	maxDays     int
	now         Clock
}

func NewReportService(ledger repository.LedgerStore, loc *time.Location, defaultDays, maxDays int, now Clock) ReportService {
	if loc == nil {
		loc = time.Local
	}
	if now == nil {
		now = time.Now
	}
	if maxDays <= 0 {
		maxDays = DefaultMaxReportDays
	}
	return &reportService{ledger: ledger, loc: loc, defaultDays: defaultDays, maxDays: maxDays, now: now}
}

func (s *reportService) dateOf(t time.Time) time.Time {
	y, m, d := t.In(s.loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, s.loc)
}

// DefaultRange ends today and reaches back the configured number of days.
func (s *reportService) DefaultRange() (time.Time, time.Time) {
	end := s.dateOf(s.now())
	return end.AddDate(0, 0, -s.defaultDays), end
}

func (s *reportService) Summarize(start, end time.Time) (*SalesReport, error) {
	first, last := s.dateOf(start), s.dateOf(end)
	if days := spanDays(first, last); days > s.maxDays {
		return nil, invalidInput("report range spans %d days, limit is %d", days, s.maxDays)
	}

	records, err := s.ledger.Load()
	if err != nil {
		return nil, fmt.Errorf("load sales ledger: %w", err)
	}
	if len(records) == 0 {
		return nil, ErrNoSalesData
	}

	if first.After(last) {
		return nil, ErrNoSalesInRange
	}

	report := &SalesReport{
		Start:        first.Format(dateLayout),
		End:          last.Format(dateLayout),
		TotalRevenue: decimal.Zero,
		TotalProfit:  decimal.Zero,
	}
	byDay := make(map[string]*DailySales)
	for _, rec := range records {
		day := s.dateOf(rec.SoldAt)
		if day.Before(first) || day.After(last) {
			continue
		}
		report.Records = append(report.Records, rec)
		report.TotalRevenue = report.TotalRevenue.Add(rec.Revenue)
		report.TotalProfit = report.TotalProfit.Add(rec.Profit)

		key := day.Format(dateLayout)
		point, ok := byDay[key]
		if !ok {
			point = &DailySales{Date: key, Revenue: decimal.Zero, Profit: decimal.Zero}
			byDay[key] = point
		}
		point.Revenue = point.Revenue.Add(rec.Revenue)
		point.Profit = point.Profit.Add(rec.Profit)
	}
	if len(report.Records) == 0 {
		return nil, ErrNoSalesInRange
	}

	sort.SliceStable(report.Records, func(i, j int) bool {
		return report.Records[i].SoldAt.After(report.Records[j].SoldAt)
	})

	revenues := stats.Float64Data{}
	for day := first; !day.After(last); day = day.AddDate(0, 0, 1) {
		key := day.Format(dateLayout)
		point := DailySales{Date: key, Revenue: decimal.Zero, Profit: decimal.Zero}
		if p, ok := byDay[key]; ok {
			point = *p
		}
		report.Daily = append(report.Daily, point)
		revenues = append(revenues, point.Revenue.InexactFloat64())
	}
	report.MeanDailyRevenue, _ = stats.Mean(revenues)
	report.MedianDailyRevenue, _ = stats.Median(revenues)

	return report, nil
}

// spanDays counts the calendar days from first to last inclusive. Spans too
// long for time.Duration saturate and still compare as over any limit.
func spanDays(first, last time.Time) int {
	if first.After(last) {
		return 0
	}
	return int(math.Round(last.Sub(first).Hours()/24)) + 1
}
