package attendance

import (
	"math/rand"

	"parksim/internal/config"
)

// BreakdownModel decides whether a ride reports a breakdown on a simulated
// day. Each decision is a single Bernoulli trial against the ride's daily
// failure rate, independent across rides and across days.
type BreakdownModel struct {
	rng *rand.Rand
}

// NewBreakdownModel builds a breakdown model on the given random source.
func NewBreakdownModel(rng *rand.Rand) *BreakdownModel {
	return &BreakdownModel{rng: rng}
}

// Check draws once and reports whether the ride breaks down today.
func (m *BreakdownModel) Check(ride config.RideConfig) bool {
	return m.rng.Float64() < ride.FailureRate
}
