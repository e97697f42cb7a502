package main

import (
	"os"

	"parksim/internal/sim"
)

// newSink sets up the batch sink based on flags and env vars. It returns the
// sink and a cleanup function to close any resources.
func newSink(printOnly bool, logFile, pgDSN string) (sim.BatchSink, func(), error) {
	cleanup := func() {}

	sink, err := baseSink(printOnly, pgDSN)
	if err != nil {
		return nil, nil, err
	}
	if logFile == "" {
		return sink, cleanup, nil
	}

	fs, err := sim.NewFileSink(logFile, logFile+".usage", logFile+".maintenance")
	if err != nil {
		return nil, nil, err
	}
	mw := sim.NewMultiSink(sink, fs)
	cleanup = func() { mw.Close() }
	return mw, cleanup, nil
}

// baseSink chooses the underlying sink: Postgres when a DSN is given,
// GreptimeDB when an endpoint is configured, STDOUT otherwise.
func baseSink(printOnly bool, pgDSN string) (sim.BatchSink, error) {
	if printOnly {
		return &sim.StdoutSink{}, nil
	}
	if pgDSN == "" {
		pgDSN = os.Getenv("PARKSIM_PG_DSN")
	}
	if pgDSN != "" {
		return sim.NewPostgresSink(pgDSN)
	}
	if endpoint := os.Getenv("GREPTIMEDB_ENDPOINT"); endpoint != "" {
		database := os.Getenv("GREPTIMEDB_DATABASE")
		if database == "" {
			database = "public"
		}
		return sim.NewGreptimeSink(endpoint, database,
			os.Getenv("PARK_TRAFFIC_TABLE"),
			os.Getenv("RIDE_USAGE_TABLE"),
			os.Getenv("RIDE_MAINTENANCE_TABLE"))
	}
	return &sim.StdoutSink{}, nil
}
