package attendance

import (
	"testing"

	"parksim/internal/config"
)

// Scenario: shoulder-season weekday with hourly share 0.17 of a 10000
// baseline gives 10000*1.3*1.0*0.17 = 2210 visitors for the hour.
const shoulderHourVisitors = 2210

func TestBoardings(t *testing.T) {
	cases := []struct {
		name     string
		ride     config.RideConfig
		visitors int
		want     int
	}{
		{
			name:     "well under capacity",
			ride:     config.RideConfig{ID: "a", AttractionRate: 0.048, CapacityCap: 1200},
			visitors: shoulderHourVisitors,
			want:     106, // round(2210 * 0.048)
		},
		{
			name:     "popular ride still under capacity",
			ride:     config.RideConfig{ID: "b", AttractionRate: 0.40, CapacityCap: 1200},
			visitors: shoulderHourVisitors,
			want:     884,
		},
		{
			name:     "demand above capacity clamps exactly to the cap",
			ride:     config.RideConfig{ID: "c", AttractionRate: 1.0, CapacityCap: 1200},
			visitors: shoulderHourVisitors,
			want:     1200,
		},
		{
			name:     "zero visitors",
			ride:     config.RideConfig{ID: "d", AttractionRate: 0.5, CapacityCap: 100},
			visitors: 0,
			want:     0,
		},
		{
			name:     "zero attraction rate",
			ride:     config.RideConfig{ID: "e", AttractionRate: 0, CapacityCap: 100},
			visitors: 5000,
			want:     0,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Boardings(tc.ride, tc.visitors); got != tc.want {
				t.Errorf("Boardings() = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestBoardings_AlwaysWithinBounds(t *testing.T) {
	rides := []config.RideConfig{
		{ID: "low", AttractionRate: 0.01, CapacityCap: 50},
		{ID: "mid", AttractionRate: 0.3, CapacityCap: 800},
		{ID: "max", AttractionRate: 1.0, CapacityCap: 1200},
	}
	for _, ride := range rides {
		for visitors := 0; visitors <= 20000; visitors += 137 {
			got := Boardings(ride, visitors)
			if got < 0 || got > ride.CapacityCap {
				t.Fatalf("ride %s, visitors %d: boardings %d outside [0, %d]",
					ride.ID, visitors, got, ride.CapacityCap)
			}
		}
	}
}
