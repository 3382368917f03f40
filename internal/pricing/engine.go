package pricing

import (
	"time"

	"github.com/albinolog/contracts/internal/model"
)

// ComputeQuote prices the selected services. Selections with a zero
// quantity and unknown services are ignored; a repeated service is priced
// by its first positive quantity. Line items follow catalog order.
func ComputeQuote(selections []model.ServiceSelection, period model.DateRange) model.Breakdown {
	chosen := make(map[model.ServiceID]int, len(selections))
	for _, sel := range selections {
		if sel.Quantity <= 0 {
			continue
		}
		if _, seen := chosen[sel.Service]; seen {
			continue
		}
		chosen[sel.Service] = sel.Quantity
	}

	breakdown := model.Breakdown{LineItems: []model.LineItem{}}
	for _, entry := range catalog {
		qty, ok := chosen[entry.ID]
		if !ok || qty <= 0 {
			continue
		}

		var measure model.Measure = model.Counted{Quantity: qty}
		if entry.ID == model.ServiceDailyCrew {
			measure = model.CrewDays{
				Collaborators: qty,
				Days:          CountBusinessDays(period.Start, period.End),
			}
		}

		item := model.LineItem{
			Service:   entry.ID,
			Label:     entry.Label,
			UnitPrice: entry.UnitPrice,
			Measure:   measure,
		}
		subtotal := item.Subtotal()
		if subtotal <= 0 {
			continue
		}
		breakdown.LineItems = append(breakdown.LineItems, item)
		breakdown.Total += subtotal
	}
	return breakdown
}

// CountBusinessDays counts the days in [start, end] that are not Saturday
// or Sunday. It returns 0 when either end is missing or end is before start.
func CountBusinessDays(start, end time.Time) int {
	if start.IsZero() || end.IsZero() {
		return 0
	}
	from := dateOnly(start)
	to := dateOnly(end)
	if to.Before(from) {
		return 0
	}

	totalDays := int(to.Sub(from).Hours()/24) + 1
	count := (totalDays / 7) * 5

	day := from.AddDate(0, 0, (totalDays/7)*7)
	for !day.After(to) {
		if wd := day.Weekday(); wd != time.Saturday && wd != time.Sunday {
			count++
		}
		day = day.AddDate(0, 0, 1)
	}
	return count
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
