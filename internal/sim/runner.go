// Runner orchestrating one simulated park day
package sim

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"parksim/internal/attendance"
	"parksim/internal/config"
	"parksim/internal/logging"

	"github.com/google/uuid"
)

// State tracks where a run currently is.
type State string

const (
	StateIdle       State = "idle"
	StateRunning    State = "running"
	StatePersisting State = "persisting"
	StateComplete   State = "complete"
	StateFailed     State = "failed"
)

// Maintenance event template for breakdown advisories.
const (
	maintenanceReason   = "breakdown reported during operation"
	maintenanceStatus   = "open"
	maintenanceSeverity = "advisory"
)

// DefaultPersistTimeout bounds the sink calls for one run.
const DefaultPersistTimeout = 30 * time.Second

// Runner drives one simulated park day: the hour-by-hour traffic and usage
// loop, the per-ride breakdown check, and the bulk handoff to the sink.
// A Runner is not safe for concurrent runs; generate independent days from
// independent calls.
type Runner struct {
	parkID         string
	cfg            *config.ParkConfig
	traffic        *attendance.TrafficModel
	breakdown      *attendance.BreakdownModel
	sink           BatchSink
	persistTimeout time.Duration
	state          State
}

// Option adjusts optional Runner behavior.
type Option func(*Runner)

// WithPersistTimeout overrides the deadline applied around sink calls.
func WithPersistTimeout(d time.Duration) Option {
	return func(r *Runner) {
		if d > 0 {
			r.persistTimeout = d
		}
	}
}

// Summary reports what one completed run handed to the sink.
type Summary struct {
	Date            string
	TrafficRows     int
	UsageRows       int
	MaintenanceRows int
	TotalVisitors   int
	TotalBoardings  int
}

// NewRunner wires the models onto the given config, sink, and random source.
// The config must already be validated; the random source drives both the
// traffic noise and the breakdown draws, so a seeded source reproduces a run.
func NewRunner(parkID string, cfg *config.ParkConfig, sink BatchSink, rng *rand.Rand, opts ...Option) *Runner {
	r := &Runner{
		parkID:         parkID,
		cfg:            cfg,
		traffic:        attendance.NewTrafficModel(cfg, rng),
		breakdown:      attendance.NewBreakdownModel(rng),
		sink:           sink,
		persistTimeout: DefaultPersistTimeout,
		state:          StateIdle,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// State returns the state of the most recent run.
func (r *Runner) State() State {
	return r.state
}

// Run simulates the given calendar date and flushes the result to the sink.
// The date is required; callers own any "pick a recent day" policy. On a sink
// error the run ends in StateFailed with no partial retry.
func (r *Runner) Run(ctx context.Context, date time.Time) (Summary, error) {
	log := logging.FromContext(ctx)
	r.state = StateRunning

	day := attendance.NewSimulatedDay(date, r.cfg.Multipliers)
	runID := uuid.New().String()

	trafficRows := make([]attendance.TrafficRow, 0, r.cfg.OperatingHours)
	usageRows := make([]attendance.UsageRow, 0, r.cfg.OperatingHours*len(r.cfg.Rides))

	for hour := 0; hour < r.cfg.OperatingHours; hour++ {
		visitors, err := r.traffic.HourlyTraffic(day, hour)
		if err != nil {
			r.state = StateFailed
			return Summary{}, err
		}
		ts := time.Date(date.Year(), date.Month(), date.Day(), r.cfg.OpenHour+hour, 0, 0, 0, time.UTC)
		trafficRows = append(trafficRows, attendance.TrafficRow{
			ParkID:       r.parkID,
			Date:         day.DateString(),
			VisitorCount: visitors,
			Source:       attendance.TrafficSource,
			Timestamp:    ts,
		})
		for _, ride := range r.cfg.Rides {
			usageRows = append(usageRows, attendance.UsageRow{
				ParkID:    r.parkID,
				RideID:    ride.ID,
				Date:      day.DateString(),
				Boardings: attendance.Boardings(ride, visitors),
				Timestamp: ts,
			})
		}
	}

	// One breakdown draw per ride per day, after the hour loop. A breakdown
	// is an advisory log only; the day's usage rows stay as generated.
	var maintenanceRows []attendance.MaintenanceRow
	for _, ride := range r.cfg.Rides {
		if !r.breakdown.Check(ride) {
			continue
		}
		maintenanceRows = append(maintenanceRows, attendance.MaintenanceRow{
			ParkID:    r.parkID,
			RideID:    ride.ID,
			RunID:     runID,
			Date:      day.DateString(),
			Reason:    maintenanceReason,
			Status:    maintenanceStatus,
			Severity:  maintenanceSeverity,
			Notes:     fmt.Sprintf("flagged by daily inspection draw (configured failure rate %.1f%%)", ride.FailureRate*100),
			Timestamp: time.Date(date.Year(), date.Month(), date.Day(), r.cfg.OpenHour, 0, 0, 0, time.UTC),
		})
	}

	r.state = StatePersisting
	pctx, cancel := context.WithTimeout(ctx, r.persistTimeout)
	defer cancel()

	if err := r.sink.WriteTraffic(pctx, trafficRows); err != nil {
		r.state = StateFailed
		return Summary{}, fmt.Errorf("persist traffic batch: %w", err)
	}
	if err := r.sink.WriteUsage(pctx, usageRows); err != nil {
		r.state = StateFailed
		return Summary{}, fmt.Errorf("persist usage batch: %w", err)
	}
	if len(maintenanceRows) > 0 {
		if err := r.sink.WriteMaintenance(pctx, maintenanceRows); err != nil {
			r.state = StateFailed
			return Summary{}, fmt.Errorf("persist maintenance batch: %w", err)
		}
	}
	r.state = StateComplete

	summary := Summary{
		Date:            day.DateString(),
		TrafficRows:     len(trafficRows),
		UsageRows:       len(usageRows),
		MaintenanceRows: len(maintenanceRows),
	}
	for _, row := range trafficRows {
		summary.TotalVisitors += row.VisitorCount
	}
	for _, row := range usageRows {
		summary.TotalBoardings += row.Boardings
	}

	log.Info("simulated day persisted",
		"park_id", r.parkID,
		"date", summary.Date,
		"traffic_rows", summary.TrafficRows,
		"usage_rows", summary.UsageRows,
		"maintenance_rows", summary.MaintenanceRows,
		"total_visitors", summary.TotalVisitors,
	)
	return summary, nil
}
