// Package payout batches vendor settlements and drives their lifecycle.
package payout

import (
	"fmt"
	"time"

	"daycare-dispatch/internal/domain"
)

// NextPayoutDate is the first payout day on or after now plus the holding period.
// Biweekly schedules only pay in odd ISO weeks; monthly schedules pay on the
// first matching weekday of a month.
func NextPayoutDate(now time.Time, ps domain.VendorPayoutSettings) time.Time {
	y, m, d := now.UTC().AddDate(0, 0, ps.HoldingDays).Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)

	if ps.Schedule == domain.ScheduleMonthly {
		first := firstWeekday(day.Year(), day.Month(), ps.Weekday)
		if first.Before(day) {
			first = firstWeekday(day.Year(), day.Month()+1, ps.Weekday)
		}
		return first
	}

	day = day.AddDate(0, 0, (int(ps.Weekday)-int(day.Weekday())+7)%7)
	if ps.Schedule == domain.ScheduleBiweekly {
		if _, w := day.ISOWeek(); w%2 == 0 {
			day = day.AddDate(0, 0, 7)
		}
	}
	return day
}

func firstWeekday(year int, month time.Month, wd time.Weekday) time.Time {
	t := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return t.AddDate(0, 0, (int(wd)-int(t.Weekday())+7)%7)
}

// BatchKey names the batch a payout date belongs to.
func BatchKey(date time.Time, schedule string) string {
	if schedule == domain.ScheduleMonthly {
		return fmt.Sprintf("BATCH-%d-M%02d", date.Year(), int(date.Month()))
	}
	y, w := date.ISOWeek()
	return fmt.Sprintf("BATCH-%d-W%02d", y, w)
}

// deferred moves a payout date one cycle forward.
func deferred(date time.Time, schedule string) time.Time {
	switch schedule {
	case domain.ScheduleMonthly:
		return firstWeekday(date.Year(), date.Month()+1, date.Weekday())
	case domain.ScheduleBiweekly:
		return date.AddDate(0, 0, 14)
	default:
		return date.AddDate(0, 0, 7)
	}
}
