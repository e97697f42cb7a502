// Sink implementation printing rows to STDOUT
package sim

import (
	"context"
	"encoding/json"
	"fmt"

	"parksim/internal/attendance"
)

// StdoutSink prints every row as a JSON line. Used for print-only runs.
type StdoutSink struct{}

// WriteTraffic outputs the traffic batch.
func (s *StdoutSink) WriteTraffic(_ context.Context, rows []attendance.TrafficRow) error {
	for _, r := range rows {
		if err := printJSON(r); err != nil {
			return err
		}
	}
	return nil
}

// WriteUsage outputs the usage batch.
func (s *StdoutSink) WriteUsage(_ context.Context, rows []attendance.UsageRow) error {
	for _, r := range rows {
		if err := printJSON(r); err != nil {
			return err
		}
	}
	return nil
}

// WriteMaintenance outputs the maintenance batch.
func (s *StdoutSink) WriteMaintenance(_ context.Context, rows []attendance.MaintenanceRow) error {
	for _, r := range rows {
		if err := printJSON(r); err != nil {
			return err
		}
	}
	return nil
}

func printJSON(v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}
