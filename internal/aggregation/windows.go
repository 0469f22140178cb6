package aggregation

import (
	"fmt"
	"time"

	"github.com/echolens/echolens/internal/models"
)

// Window is a half-open interval [Start, End) over analysis timestamps.
type Window struct {
	Period string
	Start  time.Time
	End    time.Time
}

// WindowFor derives the aggregation window ending at now for a period.
// Successive runs of the same period produce contiguous, non-overlapping
// windows by construction.
func WindowFor(period string, now time.Time) (Window, error) {
	now = now.UTC()
	switch period {
	case models.PeriodHourly:
		return Window{Period: period, Start: now.Add(-time.Hour), End: now}, nil
	case models.PeriodDaily:
		return Window{Period: period, Start: now.AddDate(0, 0, -1), End: now}, nil
	case models.PeriodWeekly:
		return Window{Period: period, Start: now.AddDate(0, 0, -7), End: now}, nil
	default:
		return Window{}, fmt.Errorf("unknown period: %s", period)
	}
}

// CustomWindow builds a window for an explicit range, as used by report
// requests.
func CustomWindow(start, end time.Time) Window {
	return Window{Period: models.PeriodCustom, Start: start.UTC(), End: end.UTC()}
}

// Key returns the deterministic aggregation key for the window, derived from
// the period and the window's end time, so a re-run of the same window
// overwrites the same summary row.
func (w Window) Key() string {
	switch w.Period {
	case models.PeriodHourly:
		return w.End.Format("2006-01-02-15")
	case models.PeriodDaily:
		return w.End.Format("2006-01-02")
	case models.PeriodWeekly:
		year, week := w.End.ISOWeek()
		return fmt.Sprintf("%d-W%02d", year, week)
	default:
		return fmt.Sprintf("custom-%s-%s",
			w.Start.Format("20060102T150405"),
			w.End.Format("20060102T150405"))
	}
}
