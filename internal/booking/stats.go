package booking

import (
	"context"
	"time"

	"github.com/golapp/field-booking/internal/model"
)

// Read-side dashboard metrics.  Everything here recomputes from the store
// on each call; nothing is cached in process (the HTTP layer may put a
// short-lived Redis cache in front).

// TodayStats buckets today's reservations by status.
type TodayStats struct {
	Date     string         `json:"fecha"`
	Total    int            `json:"total"`
	ByStatus map[string]int `json:"por_estado"`
}

// ReservationsToday counts the reservations dated "today" in the facility
// timezone, bucketed by status.
func (s *Service) ReservationsToday(ctx context.Context) (*TodayStats, error) {
	today := s.now().In(s.loc).Format("2006-01-02")
	byStatus, err := s.store.CountByStatusOnDate(ctx, today)
	if err != nil {
		return nil, err
	}
	st := &TodayStats{Date: today, ByStatus: byStatus}
	for _, n := range byStatus {
		st.Total += n
	}
	return st, nil
}

// RevenueStats is the monthly revenue metric with growth against the prior
// month.
type RevenueStats struct {
	Month         int     `json:"mes"`
	Year          int     `json:"anio"`
	Revenue       float64 `json:"ingresos"`
	PriorRevenue  float64 `json:"ingresos_mes_anterior"`
	GrowthPercent float64 `json:"crecimiento_porcentaje"`
	Reservations  int     `json:"reservas"`
}

// MonthlyRevenue sums SlotPrice over the month's confirmada/finalizada
// reservations and reports growth against the previous month.  Growth is 0
// when the prior month earned nothing.  Zero month/year default to the
// current month in the facility timezone.
func (s *Service) MonthlyRevenue(ctx context.Context, month, year int) (*RevenueStats, error) {
	now := s.now().In(s.loc)
	if month < 1 || month > 12 {
		month = int(now.Month())
	}
	if year <= 0 {
		year = now.Year()
	}
	cur, count, err := s.revenueForMonth(ctx, year, month)
	if err != nil {
		return nil, err
	}
	py, pm := year, month-1
	if pm == 0 {
		py, pm = year-1, 12
	}
	prev, _, err := s.revenueForMonth(ctx, py, pm)
	if err != nil {
		return nil, err
	}
	growth := 0.0
	if prev > 0 {
		growth = (cur - prev) / prev * 100
	}
	return &RevenueStats{
		Month:         month,
		Year:          year,
		Revenue:       cur,
		PriorRevenue:  prev,
		GrowthPercent: growth,
		Reservations:  count,
	}, nil
}

// revenueForMonth totals billable reservations in one calendar month.
func (s *Service) revenueForMonth(ctx context.Context, year, month int) (float64, int, error) {
	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, s.loc)
	last := first.AddDate(0, 1, -1)
	rows, err := s.store.PricedReservations(ctx, first.Format("2006-01-02"), last.Format("2006-01-02"))
	if err != nil {
		return 0, 0, err
	}
	total := 0.0
	count := 0
	for _, row := range rows {
		if !billable(row.Status) {
			continue
		}
		total += SlotPrice(row.StartTime, row.EndTime, row.PricePerHour)
		count++
	}
	return total, count, nil
}

// OccupancyStats is the trailing-window occupancy metric.
type OccupancyStats struct {
	WindowDays     int     `json:"dias"`
	OccupiedHours  float64 `json:"horas_ocupadas"`
	AvailableHours float64 `json:"horas_disponibles"`
	Percent        float64 `json:"ocupacion_porcentaje"`
}

// AverageOccupancy computes occupied hours over the trailing windowDays
// (today inclusive) against the total bookable hours of the active fields.
// Bookable hours per field come from its open/close window, falling back to
// the configured default when fields carry none.  windowDays defaults to 7.
func (s *Service) AverageOccupancy(ctx context.Context, windowDays int) (*OccupancyStats, error) {
	if windowDays <= 0 {
		windowDays = 7
	}
	today := s.now().In(s.loc)
	from := today.AddDate(0, 0, -(windowDays - 1))
	rows, err := s.store.PricedReservations(ctx, from.Format("2006-01-02"), today.Format("2006-01-02"))
	if err != nil {
		return nil, err
	}
	occupied := 0.0
	for _, row := range rows {
		if !billable(row.Status) {
			continue
		}
		occupied += DurationHours(row.StartTime, row.EndTime)
	}

	count, openHours, err := s.store.ActiveFieldHours(ctx)
	if err != nil {
		return nil, err
	}
	if openHours <= 0 {
		openHours = float64(count) * s.dayHours
	}
	available := openHours * float64(windowDays)

	st := &OccupancyStats{
		WindowDays:     windowDays,
		OccupiedHours:  occupied,
		AvailableHours: available,
	}
	if available > 0 {
		st.Percent = occupied / available * 100
	}
	return st, nil
}

// billable reports whether a reservation status counts toward revenue and
// occupancy.
func billable(status string) bool {
	return status == model.StatusConfirmed || status == model.StatusFinalized
}
