// Package demo provides a fixed in-memory dataset for trying the
// dashboard without a backend.
package demo

import (
	"context"

	"github.com/zuba-broadband/usage-dashboard-tui/internal/models"
	"github.com/zuba-broadband/usage-dashboard-tui/internal/usage"
)

var clients = []models.Client{
	{ID: "1", Name: "Bank of Kigali", Email: "it@bk.rw"},
	{ID: "2", Name: "Rwanda Development Board", Email: "info@rdb.rw"},
	{ID: "3", Name: "University of Rwanda", Email: "info@ur.ac.rw"},
}

var records = []models.UsageRecord{
	{ID: "1", ClientID: "1", Date: "2025-01-23", Kit1Usage: 60, Kit2Usage: 0, TotalUsage: 60},
	{ID: "2", ClientID: "1", Date: "2025-01-27", Kit1Usage: 61, Kit2Usage: 0, TotalUsage: 61},
	{ID: "3", ClientID: "1", Date: "2025-02-10", Kit1Usage: 101, Kit2Usage: 0, TotalUsage: 101},
	{ID: "4", ClientID: "1", Date: "2025-03-11", Kit1Usage: 39, Kit2Usage: 29, TotalUsage: 68},
	{ID: "5", ClientID: "1", Date: "2025-06-19", Kit1Usage: 107, Kit2Usage: 135, TotalUsage: 242},
	{ID: "6", ClientID: "1", Date: "2025-06-26", Kit1Usage: 142, Kit2Usage: 104, TotalUsage: 246},
	{ID: "7", ClientID: "2", Date: "2025-01-15", Kit1Usage: 45, Kit2Usage: 23, TotalUsage: 68},
	{ID: "8", ClientID: "2", Date: "2025-02-20", Kit1Usage: 78, Kit2Usage: 56, TotalUsage: 134},
	{ID: "9", ClientID: "3", Date: "2025-03-05", Kit1Usage: 23, Kit2Usage: 12, TotalUsage: 35},
}

// Clients returns a copy of the demo client roster, ordered by name.
func Clients() []models.Client {
	return append([]models.Client(nil), clients...)
}

// Records returns a copy of the demo usage records with client names and
// emails filled in, in storage order.
func Records() []models.UsageRecord {
	byID := make(map[string]models.Client, len(clients))
	for _, c := range clients {
		byID[c.ID] = c
	}

	out := make([]models.UsageRecord, len(records))
	for i, r := range records {
		c := byID[r.ClientID]
		r.ClientName = c.Name
		r.ClientEmail = c.Email
		out[i] = r
	}
	return out
}

// Source serves the demo dataset through the same interface as the real
// backends.
type Source struct{}

// NewSource creates a demo source.
func NewSource() *Source {
	return &Source{}
}

// Name identifies the data source in logs and the UI.
func (*Source) Name() string {
	return "demo"
}

// ListClients returns the demo roster.
func (*Source) ListClients(ctx context.Context) ([]models.Client, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return Clients(), nil
}

// ListUsage filters the demo records, newest first.
func (*Source) ListUsage(ctx context.Context, criteria models.FilterCriteria) ([]models.UsageRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return usage.ApplyFilters(Records(), criteria), nil
}
