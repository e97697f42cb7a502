package sim

import (
	"context"
	"errors"
	"math/rand"
	"testing"
	"time"

	"parksim/internal/attendance"
	"parksim/internal/config"
)

// MockSink collects batches for validation.
type MockSink struct {
	Traffic     []attendance.TrafficRow
	Usage       []attendance.UsageRow
	Maintenance []attendance.MaintenanceRow

	MaintenanceCalls int
	FailTraffic      bool
	FailUsage        bool
}

var errSinkDown = errors.New("sink unavailable")

func (m *MockSink) WriteTraffic(_ context.Context, rows []attendance.TrafficRow) error {
	if m.FailTraffic {
		return errSinkDown
	}
	m.Traffic = append(m.Traffic, rows...)
	return nil
}

func (m *MockSink) WriteUsage(_ context.Context, rows []attendance.UsageRow) error {
	if m.FailUsage {
		return errSinkDown
	}
	m.Usage = append(m.Usage, rows...)
	return nil
}

func (m *MockSink) WriteMaintenance(_ context.Context, rows []attendance.MaintenanceRow) error {
	m.MaintenanceCalls++
	m.Maintenance = append(m.Maintenance, rows...)
	return nil
}

func runnerTestConfig() *config.ParkConfig {
	return &config.ParkConfig{
		BaseAttendance: 10000,
		OpenHour:       10,
		OperatingHours: 12,
		Multipliers: config.Multipliers{
			Seasonal:  config.Seasonal{Peak: 1.5, Shoulder: 1.3, OffPeak: 0.7},
			DayOfWeek: config.DayOfWeek{Saturday: 1.4, Sunday: 1.25, Weekday: 1.0},
			HourlyDistribution: []float64{
				0.04, 0.06, 0.08, 0.10, 0.10, 0.09, 0.08, 0.09, 0.11, 0.11, 0.08, 0.06,
			},
		},
		Rides: []config.RideConfig{
			{ID: "coaster", Name: "Coaster", Category: "coaster", AttractionRate: 0.11, CapacityCap: 1400, FailureRate: 0.5},
			{ID: "rapids", Name: "Rapids", Category: "water", AttractionRate: 0.09, CapacityCap: 1100, FailureRate: 0.5},
			{ID: "carousel", Name: "Carousel", Category: "family", AttractionRate: 1.0, CapacityCap: 300, FailureRate: 0.5},
		},
	}
}

func testDate(t *testing.T, s string) time.Time {
	t.Helper()
	date, err := time.Parse("2006-01-02", s)
	if err != nil {
		t.Fatalf("bad date %s: %v", s, err)
	}
	return date
}

func TestRunner_OneDayBatchCounts(t *testing.T) {
	cfg := runnerTestConfig()
	sink := &MockSink{}
	runner := NewRunner("park-test", cfg, sink, rand.New(rand.NewSource(1)))

	summary, err := runner.Run(context.Background(), testDate(t, "2026-07-14"))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if runner.State() != StateComplete {
		t.Errorf("state = %s, want %s", runner.State(), StateComplete)
	}
	if len(sink.Traffic) != 12 {
		t.Errorf("traffic rows = %d, want 12", len(sink.Traffic))
	}
	if len(sink.Usage) != 12*3 {
		t.Errorf("usage rows = %d, want 36", len(sink.Usage))
	}
	if len(sink.Maintenance) > 3 {
		t.Errorf("maintenance rows = %d, want at most 3", len(sink.Maintenance))
	}
	if summary.TrafficRows != 12 || summary.UsageRows != 36 {
		t.Errorf("summary counts = %+v", summary)
	}
	if summary.Date != "2026-07-14" {
		t.Errorf("summary date = %s, want 2026-07-14", summary.Date)
	}
}

func TestRunner_RowContents(t *testing.T) {
	cfg := runnerTestConfig()
	sink := &MockSink{}
	runner := NewRunner("park-test", cfg, sink, rand.New(rand.NewSource(3)))

	if _, err := runner.Run(context.Background(), testDate(t, "2026-07-14")); err != nil {
		t.Fatalf("Run: %v", err)
	}

	for i, row := range sink.Traffic {
		if row.ParkID != "park-test" || row.Date != "2026-07-14" || row.Source != attendance.TrafficSource {
			t.Errorf("traffic row %d has bad identity fields: %+v", i, row)
		}
		if row.VisitorCount < 0 {
			t.Errorf("traffic row %d negative count: %d", i, row.VisitorCount)
		}
		wantHour := cfg.OpenHour + i
		if row.Timestamp.Hour() != wantHour {
			t.Errorf("traffic row %d timestamp hour = %d, want %d", i, row.Timestamp.Hour(), wantHour)
		}
	}

	caps := map[string]int{}
	for _, ride := range cfg.Rides {
		caps[ride.ID] = ride.CapacityCap
	}
	for _, row := range sink.Usage {
		if row.Boardings < 0 || row.Boardings > caps[row.RideID] {
			t.Errorf("ride %s boardings %d outside [0, %d]", row.RideID, row.Boardings, caps[row.RideID])
		}
	}

	seen := map[string]bool{}
	for _, row := range sink.Maintenance {
		if seen[row.RideID] {
			t.Errorf("ride %s has more than one maintenance event for the day", row.RideID)
		}
		seen[row.RideID] = true
		if row.Severity != maintenanceSeverity || row.Status != maintenanceStatus {
			t.Errorf("maintenance row has unexpected template: %+v", row)
		}
		if row.RunID == "" {
			t.Errorf("maintenance row missing run id")
		}
	}
}

func TestRunner_MaintenanceSkippedWhenNoBreakdowns(t *testing.T) {
	cfg := runnerTestConfig()
	for i := range cfg.Rides {
		cfg.Rides[i].FailureRate = 0
	}
	sink := &MockSink{}
	runner := NewRunner("park-test", cfg, sink, rand.New(rand.NewSource(1)))

	if _, err := runner.Run(context.Background(), testDate(t, "2026-07-14")); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if sink.MaintenanceCalls != 0 {
		t.Errorf("empty maintenance batch was submitted %d times", sink.MaintenanceCalls)
	}
}

func TestRunner_SinkFailureFailsRun(t *testing.T) {
	cfg := runnerTestConfig()

	for name, sink := range map[string]*MockSink{
		"traffic batch fails": {FailTraffic: true},
		"usage batch fails":   {FailUsage: true},
	} {
		t.Run(name, func(t *testing.T) {
			runner := NewRunner("park-test", cfg, sink, rand.New(rand.NewSource(1)))
			_, err := runner.Run(context.Background(), testDate(t, "2026-07-14"))
			if !errors.Is(err, errSinkDown) {
				t.Fatalf("err = %v, want errSinkDown", err)
			}
			if runner.State() != StateFailed {
				t.Errorf("state = %s, want %s", runner.State(), StateFailed)
			}
		})
	}
}

func TestRunner_SeededRunsReproduce(t *testing.T) {
	cfg := runnerTestConfig()
	date := testDate(t, "2026-04-15")

	a := &MockSink{}
	b := &MockSink{}
	if _, err := NewRunner("p", cfg, a, rand.New(rand.NewSource(77))).Run(context.Background(), date); err != nil {
		t.Fatalf("first run: %v", err)
	}
	if _, err := NewRunner("p", cfg, b, rand.New(rand.NewSource(77))).Run(context.Background(), date); err != nil {
		t.Fatalf("second run: %v", err)
	}

	if len(a.Traffic) != len(b.Traffic) {
		t.Fatalf("traffic row counts differ: %d vs %d", len(a.Traffic), len(b.Traffic))
	}
	for i := range a.Traffic {
		if a.Traffic[i] != b.Traffic[i] {
			t.Errorf("traffic row %d differs: %+v vs %+v", i, a.Traffic[i], b.Traffic[i])
		}
	}
	for i := range a.Usage {
		if a.Usage[i] != b.Usage[i] {
			t.Errorf("usage row %d differs: %+v vs %+v", i, a.Usage[i], b.Usage[i])
		}
	}
	// Run IDs are fresh per run; compare which rides broke down instead.
	if len(a.Maintenance) != len(b.Maintenance) {
		t.Fatalf("maintenance row counts differ: %d vs %d", len(a.Maintenance), len(b.Maintenance))
	}
	for i := range a.Maintenance {
		if a.Maintenance[i].RideID != b.Maintenance[i].RideID {
			t.Errorf("maintenance row %d ride differs: %s vs %s", i, a.Maintenance[i].RideID, b.Maintenance[i].RideID)
		}
	}
}

func TestRunner_DifferentSeedsDiverge(t *testing.T) {
	cfg := runnerTestConfig()
	date := testDate(t, "2026-04-15")

	a := &MockSink{}
	b := &MockSink{}
	if _, err := NewRunner("p", cfg, a, rand.New(rand.NewSource(1))).Run(context.Background(), date); err != nil {
		t.Fatalf("first run: %v", err)
	}
	if _, err := NewRunner("p", cfg, b, rand.New(rand.NewSource(2))).Run(context.Background(), date); err != nil {
		t.Fatalf("second run: %v", err)
	}

	same := true
	for i := range a.Traffic {
		if a.Traffic[i].VisitorCount != b.Traffic[i].VisitorCount {
			same = false
			break
		}
	}
	if same {
		t.Errorf("runs with different seeds produced identical traffic")
	}
}
