package sale

import (
	"strings"
	"time"

	"github.com/MikeMC777/pedidos-restaurante/internal/apperr"
)

const (
	PeriodDaily   = "daily"
	PeriodWeekly  = "weekly"
	PeriodMonthly = "monthly"
	PeriodYearly  = "yearly"
)

var periodAliases = map[string]string{
	"":        PeriodDaily,
	"daily":   PeriodDaily,
	"diario":  PeriodDaily,
	"weekly":  PeriodWeekly,
	"semanal": PeriodWeekly,
	"monthly": PeriodMonthly,
	"mensual": PeriodMonthly,
	"yearly":  PeriodYearly,
	"anual":   PeriodYearly,
}

// Period returns the inclusive calendar window of the given kind that
// contains now, computed in loc. Weeks start on Sunday.
func Period(kind string, now time.Time, loc *time.Location) (start, end time.Time, canonical string, err error) {
	canonical, ok := periodAliases[strings.ToLower(strings.TrimSpace(kind))]
	if !ok {
		return time.Time{}, time.Time{}, "", apperr.Validation("period %q must be one of daily, weekly, monthly, yearly", kind)
	}
	now = now.In(loc)
	y, m, d := now.Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, loc)

	var next time.Time
	switch canonical {
	case PeriodDaily:
		start, next = day, day.AddDate(0, 0, 1)
	case PeriodWeekly:
		start = day.AddDate(0, 0, -int(now.Weekday()))
		next = start.AddDate(0, 0, 7)
	case PeriodMonthly:
		start = time.Date(y, m, 1, 0, 0, 0, 0, loc)
		next = start.AddDate(0, 1, 0)
	case PeriodYearly:
		start = time.Date(y, 1, 1, 0, 0, 0, 0, loc)
		next = start.AddDate(1, 0, 0)
	}
	return start, next.Add(-time.Nanosecond), canonical, nil
}
