package sim

import (
	"context"
	"encoding/json"
	"os"

	"parksim/internal/attendance"
)

// FileSink writes traffic, usage, and maintenance rows to JSONL files.
type FileSink struct {
	trafficFile *os.File
	usageFile   *os.File
	maintFile   *os.File
	trafficEnc  *json.Encoder
	usageEnc    *json.Encoder
	maintEnc    *json.Encoder
}

// NewFileSink creates a FileSink. usagePath or maintenancePath may be empty
// to skip those logs.
func NewFileSink(trafficPath, usagePath, maintenancePath string) (*FileSink, error) {
	tf, err := os.Create(trafficPath)
	if err != nil {
		return nil, err
	}
	fs := &FileSink{trafficFile: tf, trafficEnc: json.NewEncoder(tf)}
	if usagePath != "" {
		uf, err := os.Create(usagePath)
		if err != nil {
			tf.Close()
			return nil, err
		}
		fs.usageFile = uf
		fs.usageEnc = json.NewEncoder(uf)
	}
	if maintenancePath != "" {
		mf, err := os.Create(maintenancePath)
		if err != nil {
			if fs.usageFile != nil {
				fs.usageFile.Close()
			}
			tf.Close()
			return nil, err
		}
		fs.maintFile = mf
		fs.maintEnc = json.NewEncoder(mf)
	}
	return fs, nil
}

// WriteTraffic logs the traffic batch.
func (f *FileSink) WriteTraffic(_ context.Context, rows []attendance.TrafficRow) error {
	for _, r := range rows {
		if err := f.trafficEnc.Encode(r); err != nil {
			return err
		}
	}
	return nil
}

// WriteUsage logs the usage batch, if enabled.
func (f *FileSink) WriteUsage(_ context.Context, rows []attendance.UsageRow) error {
	if f.usageEnc == nil {
		return nil
	}
	for _, r := range rows {
		if err := f.usageEnc.Encode(r); err != nil {
			return err
		}
	}
	return nil
}

// WriteMaintenance logs the maintenance batch, if enabled.
func (f *FileSink) WriteMaintenance(_ context.Context, rows []attendance.MaintenanceRow) error {
	if f.maintEnc == nil {
		return nil
	}
	for _, r := range rows {
		if err := f.maintEnc.Encode(r); err != nil {
			return err
		}
	}
	return nil
}

// Close closes any underlying files.
func (f *FileSink) Close() error {
	var err error
	if f.trafficFile != nil {
		if e := f.trafficFile.Close(); e != nil && err == nil {
			err = e
		}
	}
	if f.usageFile != nil {
		if e := f.usageFile.Close(); e != nil && err == nil {
			err = e
		}
	}
	if f.maintFile != nil {
		if e := f.maintFile.Close(); e != nil && err == nil {
			err = e
		}
	}
	return err
}
