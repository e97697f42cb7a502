package sim

import (
	"context"
	"database/sql"
	"fmt"

	"parksim/internal/attendance"

	"github.com/lib/pq"
)

// PostgresSink bulk-inserts attendance batches with COPY, one transaction
// per batch.
type PostgresSink struct {
	db *sql.DB
}

// NewPostgresSink opens a connection pool for the given DSN.
func NewPostgresSink(dsn string) (*PostgresSink, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("error connecting to database: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("error pinging database: %w", err)
	}
	return &PostgresSink{db: db}, nil
}

// WriteTraffic inserts the traffic batch.
func (p *PostgresSink) WriteTraffic(ctx context.Context, rows []attendance.TrafficRow) error {
	if len(rows) == 0 {
		return nil
	}
	return p.copyBatch(ctx, attendance.TrafficTableName,
		[]string{"park_id", "date", "visitor_count", "source", "ts"},
		len(rows),
		func(stmt *sql.Stmt, i int) error {
			r := rows[i]
			_, err := stmt.ExecContext(ctx, r.ParkID, r.Date, r.VisitorCount, r.Source, r.Timestamp)
			return err
		})
}

// WriteUsage inserts the usage batch.
func (p *PostgresSink) WriteUsage(ctx context.Context, rows []attendance.UsageRow) error {
	if len(rows) == 0 {
		return nil
	}
	return p.copyBatch(ctx, attendance.UsageTableName,
		[]string{"park_id", "ride_id", "date", "boardings", "ts"},
		len(rows),
		func(stmt *sql.Stmt, i int) error {
			r := rows[i]
			_, err := stmt.ExecContext(ctx, r.ParkID, r.RideID, r.Date, r.Boardings, r.Timestamp)
			return err
		})
}

// WriteMaintenance inserts the maintenance batch.
func (p *PostgresSink) WriteMaintenance(ctx context.Context, rows []attendance.MaintenanceRow) error {
	if len(rows) == 0 {
		return nil
	}
	return p.copyBatch(ctx, attendance.MaintenanceTableName,
		[]string{"park_id", "ride_id", "run_id", "date", "reason", "status", "severity", "notes", "ts"},
		len(rows),
		func(stmt *sql.Stmt, i int) error {
			r := rows[i]
			_, err := stmt.ExecContext(ctx, r.ParkID, r.RideID, r.RunID, r.Date, r.Reason, r.Status, r.Severity, r.Notes, r.Timestamp)
			return err
		})
}

// copyBatch runs a COPY of n rows into table within one transaction.
func (p *PostgresSink) copyBatch(ctx context.Context, table string, columns []string, n int, exec func(*sql.Stmt, int) error) error {
	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, pq.CopyIn(table, columns...))
	if err != nil {
		return err
	}
	for i := 0; i < n; i++ {
		if err := exec(stmt, i); err != nil {
			stmt.Close()
			return fmt.Errorf("copy into %s: %w", table, err)
		}
	}
	// Final empty Exec flushes the COPY buffer.
	if _, err := stmt.ExecContext(ctx); err != nil {
		stmt.Close()
		return fmt.Errorf("flush copy into %s: %w", table, err)
	}
	if err := stmt.Close(); err != nil {
		return err
	}
	return tx.Commit()
}

// Close releases the connection pool.
func (p *PostgresSink) Close() error {
	return p.db.Close()
}
