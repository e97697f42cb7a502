package sim

import (
	"context"

	"parksim/internal/attendance"
)

// BatchSink accepts one simulated day's output as bulk batches. The runner
// treats each call as all-or-nothing: a failed batch fails the run, batches
// already written are not rolled back.
type BatchSink interface {
	WriteTraffic(ctx context.Context, rows []attendance.TrafficRow) error
	WriteUsage(ctx context.Context, rows []attendance.UsageRow) error
	WriteMaintenance(ctx context.Context, rows []attendance.MaintenanceRow) error
}

// Closer is implemented by sinks holding resources (files, connections).
type Closer interface {
	Close() error
}
