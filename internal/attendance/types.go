// Attendance log rows with greptime tags
package attendance

import (
	"os"
	"time"
)

// TrafficRow is one hour of park-wide visitor traffic.
type TrafficRow struct {
	ParkID       string    `json:"park_id"`       // TAG
	Date         string    `json:"date"`          // FIELD, YYYY-MM-DD
	VisitorCount int       `json:"visitor_count"` // FIELD
	Source       string    `json:"source"`        // FIELD
	Timestamp    time.Time `json:"ts"`            // TIME INDEX
}

// UsageRow is one hour of boardings for one ride.
type UsageRow struct {
	ParkID    string    `json:"park_id"` // TAG
	RideID    string    `json:"ride_id"` // TAG
	Date      string    `json:"date"`    // FIELD, YYYY-MM-DD
	Boardings int       `json:"boardings"`
	Timestamp time.Time `json:"ts"` // TIME INDEX
}

// MaintenanceRow is an advisory breakdown record for one ride on one day.
// It never implies an operational shutdown; usage keeps accumulating.
type MaintenanceRow struct {
	ParkID    string    `json:"park_id"` // TAG
	RideID    string    `json:"ride_id"` // TAG
	RunID     string    `json:"run_id"`
	Date      string    `json:"date"` // YYYY-MM-DD
	Reason    string    `json:"reason"`
	Status    string    `json:"status"`
	Severity  string    `json:"severity"`
	Notes     string    `json:"notes"`
	Timestamp time.Time `json:"ts"` // TIME INDEX
}

// TrafficSource tags simulator-generated traffic rows so downstream reporting
// can separate them from rows ingested from gate counters.
const TrafficSource = "simulated"

// TrafficTableName holds the table name used when writing traffic rows.
// It defaults to "park_traffic" but can be overridden via the
// PARK_TRAFFIC_TABLE environment variable.
var TrafficTableName = func() string {
	if env := os.Getenv("PARK_TRAFFIC_TABLE"); env != "" {
		return env
	}
	return "park_traffic"
}()

// UsageTableName holds the table name used when writing ride usage rows,
// overridable via RIDE_USAGE_TABLE.
var UsageTableName = func() string {
	if env := os.Getenv("RIDE_USAGE_TABLE"); env != "" {
		return env
	}
	return "ride_usage"
}()

// MaintenanceTableName holds the table name used when writing maintenance
// rows, overridable via RIDE_MAINTENANCE_TABLE.
var MaintenanceTableName = func() string {
	if env := os.Getenv("RIDE_MAINTENANCE_TABLE"); env != "" {
		return env
	}
	return "ride_maintenance"
}()

func (TrafficRow) TableName() string { return TrafficTableName }

func (UsageRow) TableName() string { return UsageTableName }

func (MaintenanceRow) TableName() string { return MaintenanceTableName }
