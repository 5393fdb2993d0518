package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/zuba-broadband/usage-dashboard-tui/internal/logger"
	"github.com/zuba-broadband/usage-dashboard-tui/internal/models"
)

var timeFormats = []string{
	time.RFC3339,
	time.RFC3339Nano,
	"2006-01-02T15:04:05Z",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05 -0700 MST",
	"2006-01-02 15:04:05 +0000 UTC",
}

func parseTimeString(s string) (time.Time, bool) {
	for _, format := range timeFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ListClients returns the client roster ordered by name.
func (db *DB) ListClients(ctx context.Context) ([]models.Client, error) {
	rows, err := db.QueryContext(ctx, sqlSelectClients+" ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("failed to query clients: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var clients []models.Client
	for rows.Next() {
		var c models.Client
		var id any
		var created, updated sql.NullString

		if err := rows.Scan(&id, &c.Name, &c.Email, &created, &updated); err != nil {
			return nil, fmt.Errorf("failed to scan client: %w", err)
		}

		c.ID = models.CoerceString(id)
		if t, ok := parseTimeString(created.String); ok {
			c.CreatedAt = t
		}
		if t, ok := parseTimeString(updated.String); ok {
			c.UpdatedAt = t
		}
		clients = append(clients, c)
	}

	return clients, rows.Err()
}

// ListUsage returns usage records joined with their client's name and
// email, newest first, restricted by every criterion that is set.
func (db *DB) ListUsage(ctx context.Context, criteria models.FilterCriteria) ([]models.UsageRecord, error) {
	query, args := db.usageQuery(criteria)

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query usage: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []models.UsageRecord
	for rows.Next() {
		var raw models.RawUsageRecord
		if err := rows.Scan(
			&raw.ID,
			&raw.ClientID,
			&raw.Date,
			&raw.Kit1Usage,
			&raw.Kit2Usage,
			&raw.TotalUsage,
			&raw.ClientName,
			&raw.ClientEmail,
		); err != nil {
			return nil, fmt.Errorf("failed to scan usage record: %w", err)
		}
		records = append(records, raw.Normalize())
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read usage rows: %w", err)
	}

	logger.Debug("usage query", logger.KeySource, db.Name(), logger.KeyRecords, len(records))
	return records, nil
}

// usageQuery builds the filtered usage SELECT for the connection dialect.
func (db *DB) usageQuery(c models.FilterCriteria) (string, []any) {
	var conds []string
	var args []any

	add := func(cond string, arg any) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, db.dialect.placeholder(len(args))))
	}

	if c.ClientID != "" {
		add("u.client_id = %s", c.ClientID)
	}
	if c.StartDate != "" {
		add("u.date >= %s", c.StartDate)
	}
	if c.EndDate != "" {
		add("u.date <= %s", c.EndDate)
	}
	if c.MinUsage != nil {
		add("u.total_usage >= %s", *c.MinUsage)
	}
	if c.MaxUsage != nil {
		add("u.total_usage <= %s", *c.MaxUsage)
	}

	query := sqlSelectUsage
	if len(conds) > 0 {
		query += "\n\tWHERE " + strings.Join(conds, " AND ")
	}
	query += "\n\tORDER BY u.date DESC"
	return query, args
}

// UpsertClient inserts or updates a client and returns it with its ID set.
func (db *DB) UpsertClient(ctx context.Context, c models.Client) (models.Client, error) {
	return upsertClient(ctx, db.DB, db.dialect, c)
}

// UpsertUsage inserts or updates a usage record and returns it with its ID set.
func (db *DB) UpsertUsage(ctx context.Context, r models.UsageRecord) (models.UsageRecord, error) {
	return upsertUsage(ctx, db.DB, db.dialect, r)
}

// ImportDataset writes clients and records in a single transaction.
func (db *DB) ImportDataset(ctx context.Context, clients []models.Client, records []models.UsageRecord) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin import: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, c := range clients {
		if _, err := upsertClient(ctx, tx, db.dialect, c); err != nil {
			return err
		}
	}
	for _, r := range records {
		if _, err := upsertUsage(ctx, tx, db.dialect, r); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit import: %w", err)
	}
	logger.Info("dataset imported", logger.KeyClients, len(clients), logger.KeyRecords, len(records))
	return nil
}

// CountUsage returns the number of stored usage records.
func (db *DB) CountUsage(ctx context.Context) (int, error) {
	var n int
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM data_usage").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count usage: %w", err)
	}
	return n, nil
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func upsertClient(ctx context.Context, ex execer, d Dialect, c models.Client) (models.Client, error) {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}

	query := fmt.Sprintf(`
		INSERT INTO clients (id, name, email) VALUES (%s, %s, %s)
		ON CONFLICT (id) DO UPDATE SET
			name = excluded.name,
			email = excluded.email,
			updated_at = CURRENT_TIMESTAMP`,
		d.placeholder(1), d.placeholder(2), d.placeholder(3))

	if _, err := ex.ExecContext(ctx, query, c.ID, c.Name, c.Email); err != nil {
		return c, fmt.Errorf("failed to upsert client %s: %w", c.ID, err)
	}
	return c, nil
}

func upsertUsage(ctx context.Context, ex execer, d Dialect, r models.UsageRecord) (models.UsageRecord, error) {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}

	query := fmt.Sprintf(`
		INSERT INTO data_usage (id, client_id, date, kit_1_usage, kit_2_usage, total_usage)
		VALUES (%s, %s, %s, %s, %s, %s)
		ON CONFLICT (id) DO UPDATE SET
			client_id = excluded.client_id,
			date = excluded.date,
			kit_1_usage = excluded.kit_1_usage,
			kit_2_usage = excluded.kit_2_usage,
			total_usage = excluded.total_usage,
			updated_at = CURRENT_TIMESTAMP`,
		d.placeholder(1), d.placeholder(2), d.placeholder(3),
		d.placeholder(4), d.placeholder(5), d.placeholder(6))

	if _, err := ex.ExecContext(ctx, query,
		r.ID, r.ClientID, r.Date, r.Kit1Usage, r.Kit2Usage, r.TotalUsage,
	); err != nil {
		return r, fmt.Errorf("failed to upsert usage record %s: %w", r.ID, err)
	}
	return r, nil
}
