package sim

import (
	"context"

	"parksim/internal/attendance"
)

// MultiSink fans each batch out to multiple sinks. The first error stops the
// fan-out and is returned to the runner.
type MultiSink struct {
	sinks []BatchSink
}

// NewMultiSink creates a new MultiSink.
func NewMultiSink(sinks ...BatchSink) *MultiSink {
	return &MultiSink{sinks: sinks}
}

// WriteTraffic sends the traffic batch to all sinks.
func (m *MultiSink) WriteTraffic(ctx context.Context, rows []attendance.TrafficRow) error {
	for _, s := range m.sinks {
		if err := s.WriteTraffic(ctx, rows); err != nil {
			return err
		}
	}
	return nil
}

// WriteUsage sends the usage batch to all sinks.
func (m *MultiSink) WriteUsage(ctx context.Context, rows []attendance.UsageRow) error {
	for _, s := range m.sinks {
		if err := s.WriteUsage(ctx, rows); err != nil {
			return err
		}
	}
	return nil
}

// WriteMaintenance sends the maintenance batch to all sinks.
func (m *MultiSink) WriteMaintenance(ctx context.Context, rows []attendance.MaintenanceRow) error {
	for _, s := range m.sinks {
		if err := s.WriteMaintenance(ctx, rows); err != nil {
			return err
		}
	}
	return nil
}

// Close closes every sink that holds resources.
func (m *MultiSink) Close() error {
	var err error
	for _, s := range m.sinks {
		if c, ok := s.(Closer); ok {
			if e := c.Close(); e != nil && err == nil {
				err = e
			}
		}
	}
	return err
}
