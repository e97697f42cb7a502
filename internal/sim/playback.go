package sim

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"time"

	"parksim/internal/attendance"
)

// ReplayTraffic replays exported traffic rows from r to sink. A speed >0
// paces the replay by the recorded timestamps; speed <= 0 inserts no delay.
func ReplayTraffic(ctx context.Context, r io.Reader, sink BatchSink, speed float64) error {
	dec := json.NewDecoder(r)
	var prev time.Time
	for {
		var row attendance.TrafficRow
		if err := dec.Decode(&row); err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}
		if !prev.IsZero() && speed > 0 {
			diff := row.Timestamp.Sub(prev)
			if speed != 1 {
				diff = time.Duration(float64(diff) / speed)
			}
			if diff > 0 {
				select {
				case <-time.After(diff):
				case <-ctx.Done():
					return ctx.Err()
				}
			}
		}
		if err := sink.WriteTraffic(ctx, []attendance.TrafficRow{row}); err != nil {
			return err
		}
		prev = row.Timestamp
	}
}

// ReplayTrafficFile opens a JSONL export and replays its traffic rows.
func ReplayTrafficFile(ctx context.Context, path string, sink BatchSink, speed float64) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return ReplayTraffic(ctx, f, sink, speed)
}
