package attendance

import (
	"time"

	"parksim/internal/config"
)

// DateLayout is the wire format for the date column on all rows.
const DateLayout = "2006-01-02"

// SimulatedDay is one run's unit of work: a calendar date plus the season
// and day-of-week factors derived from it. Runs are independent; a
// SimulatedDay is never shared between them.
type SimulatedDay struct {
	Date         time.Time
	SeasonFactor float64
	DayFactor    float64
}

// NewSimulatedDay derives the multipliers for the given calendar date.
func NewSimulatedDay(date time.Time, m config.Multipliers) SimulatedDay {
	return SimulatedDay{
		Date:         date,
		SeasonFactor: seasonFactor(date.Month(), m.Seasonal),
		DayFactor:    dayFactor(date.Weekday(), m.DayOfWeek),
	}
}

// DateString formats the day for the date column.
func (d SimulatedDay) DateString() string {
	return d.Date.Format(DateLayout)
}

// seasonFactor buckets the month into peak (summer holidays plus December),
// shoulder (spring and early autumn), or off-peak for everything else.
func seasonFactor(month time.Month, s config.Seasonal) float64 {
	switch month {
	case time.June, time.July, time.August, time.December:
		return s.Peak
	case time.March, time.April, time.May, time.September, time.October:
		return s.Shoulder
	default:
		return s.OffPeak
	}
}

func dayFactor(weekday time.Weekday, d config.DayOfWeek) float64 {
	switch weekday {
	case time.Saturday:
		return d.Saturday
	case time.Sunday:
		return d.Sunday
	default:
		return d.Weekday
	}
}
