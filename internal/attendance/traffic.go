package attendance

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"parksim/internal/config"
)

// ErrHourOutOfRange reports an hour index outside the operating window.
var ErrHourOutOfRange = errors.New("hour index outside operating window")

// noiseBand bounds the uniform noise applied to each hourly count.
const noiseBand = 0.05

// TrafficModel computes expected hourly visitor counts for a simulated day.
// The random source is injected so seeded runs reproduce identical output.
type TrafficModel struct {
	baseAttendance int
	hourlyShares   []float64
	rng            *rand.Rand
}

// NewTrafficModel builds a traffic model from the park config.
func NewTrafficModel(cfg *config.ParkConfig, rng *rand.Rand) *TrafficModel {
	return &TrafficModel{
		baseAttendance: cfg.BaseAttendance,
		hourlyShares:   cfg.Multipliers.HourlyDistribution,
		rng:            rng,
	}
}

// HourlyTraffic returns the visitor count for one 0-based operating hour of
// the given day. The count is scaled by the day's season and weekday factors,
// the hour's share of the daily distribution, and uniform noise in ±5%.
// The result is never negative.
func (m *TrafficModel) HourlyTraffic(day SimulatedDay, hourIndex int) (int, error) {
	if hourIndex < 0 || hourIndex >= len(m.hourlyShares) {
		return 0, fmt.Errorf("%w: %d", ErrHourOutOfRange, hourIndex)
	}

	totalDaily := float64(m.baseAttendance) * day.SeasonFactor * day.DayFactor
	noise := (m.rng.Float64()*2 - 1) * noiseBand
	visitors := int(math.Round(totalDaily * m.hourlyShares[hourIndex] * (1 + noise)))
	if visitors < 0 {
		visitors = 0
	}
	return visitors, nil
}
