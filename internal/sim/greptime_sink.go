package sim

import (
	"context"
	"log/slog"
	"net"
	"strconv"

	"parksim/internal/attendance"

	gpb "github.com/GreptimeTeam/greptime-proto/go/greptime/v1"
	greptime "github.com/GreptimeTeam/greptimedb-ingester-go"
	"github.com/GreptimeTeam/greptimedb-ingester-go/table"
	"github.com/GreptimeTeam/greptimedb-ingester-go/table/types"
)

// greptimeClient is the slice of the ingester client the sink needs.
type greptimeClient interface {
	Write(ctx context.Context, tables ...*table.Table) (*gpb.GreptimeResponse, error)
}

// GreptimeSink writes attendance batches to GreptimeDB via the ingester
// client. Tables are auto-created by the server on first ingest.
type GreptimeSink struct {
	client           greptimeClient
	trafficTable     string
	usageTable       string
	maintenanceTable string
	log              *slog.Logger
}

// NewGreptimeSink connects to GreptimeDB. endpoint is "host" or "host:port";
// empty table names fall back to the attendance defaults.
func NewGreptimeSink(endpoint, database, trafficTable, usageTable, maintenanceTable string) (*GreptimeSink, error) {
	host := endpoint
	cfg := greptime.NewConfig(host)
	if h, p, err := net.SplitHostPort(endpoint); err == nil {
		cfg = greptime.NewConfig(h)
		if port, err := strconv.Atoi(p); err == nil {
			cfg = cfg.WithPort(port)
		}
	}
	cfg = cfg.WithDatabase(database)

	client, err := greptime.NewClient(cfg)
	if err != nil {
		return nil, err
	}

	if trafficTable == "" {
		trafficTable = attendance.TrafficTableName
	}
	if usageTable == "" {
		usageTable = attendance.UsageTableName
	}
	if maintenanceTable == "" {
		maintenanceTable = attendance.MaintenanceTableName
	}
	return &GreptimeSink{
		client:           client,
		trafficTable:     trafficTable,
		usageTable:       usageTable,
		maintenanceTable: maintenanceTable,
		log:              slog.Default(),
	}, nil
}

// WriteTraffic inserts the traffic batch.
func (s *GreptimeSink) WriteTraffic(ctx context.Context, rows []attendance.TrafficRow) error {
	if len(rows) == 0 {
		return nil
	}
	tbl, err := table.New(s.trafficTable)
	if err != nil {
		return err
	}
	if err := tbl.AddTagColumn("park_id", types.STRING); err != nil {
		return err
	}
	if err := tbl.AddFieldColumn("date", types.STRING); err != nil {
		return err
	}
	if err := tbl.AddFieldColumn("visitor_count", types.INT64); err != nil {
		return err
	}
	if err := tbl.AddFieldColumn("source", types.STRING); err != nil {
		return err
	}
	if err := tbl.AddTimestampColumn("ts", types.TIMESTAMP_MILLISECOND); err != nil {
		return err
	}
	for _, r := range rows {
		if err := tbl.AddRow(r.ParkID, r.Date, int64(r.VisitorCount), r.Source, r.Timestamp); err != nil {
			return err
		}
	}
	return s.write(ctx, tbl, len(rows))
}

// WriteUsage inserts the usage batch.
func (s *GreptimeSink) WriteUsage(ctx context.Context, rows []attendance.UsageRow) error {
	if len(rows) == 0 {
		return nil
	}
	tbl, err := table.New(s.usageTable)
	if err != nil {
		return err
	}
	if err := tbl.AddTagColumn("park_id", types.STRING); err != nil {
		return err
	}
	if err := tbl.AddTagColumn("ride_id", types.STRING); err != nil {
		return err
	}
	if err := tbl.AddFieldColumn("date", types.STRING); err != nil {
		return err
	}
	if err := tbl.AddFieldColumn("boardings", types.INT64); err != nil {
		return err
	}
	if err := tbl.AddTimestampColumn("ts", types.TIMESTAMP_MILLISECOND); err != nil {
		return err
	}
	for _, r := range rows {
		if err := tbl.AddRow(r.ParkID, r.RideID, r.Date, int64(r.Boardings), r.Timestamp); err != nil {
			return err
		}
	}
	return s.write(ctx, tbl, len(rows))
}

// WriteMaintenance inserts the maintenance batch.
func (s *GreptimeSink) WriteMaintenance(ctx context.Context, rows []attendance.MaintenanceRow) error {
	if len(rows) == 0 {
		return nil
	}
	tbl, err := table.New(s.maintenanceTable)
	if err != nil {
		return err
	}
	if err := tbl.AddTagColumn("park_id", types.STRING); err != nil {
		return err
	}
	if err := tbl.AddTagColumn("ride_id", types.STRING); err != nil {
		return err
	}
	for _, col := range []string{"run_id", "date", "reason", "status", "severity", "notes"} {
		if err := tbl.AddFieldColumn(col, types.STRING); err != nil {
			return err
		}
	}
	if err := tbl.AddTimestampColumn("ts", types.TIMESTAMP_MILLISECOND); err != nil {
		return err
	}
	for _, r := range rows {
		if err := tbl.AddRow(r.ParkID, r.RideID, r.RunID, r.Date, r.Reason, r.Status, r.Severity, r.Notes, r.Timestamp); err != nil {
			return err
		}
	}
	return s.write(ctx, tbl, len(rows))
}

func (s *GreptimeSink) write(ctx context.Context, tbl *table.Table, count int) error {
	if _, err := s.client.Write(ctx, tbl); err != nil {
		s.log.Error("greptime write failed", "error", err)
		return err
	}
	s.log.Debug("greptime batch written", "rows", count)
	return nil
}
