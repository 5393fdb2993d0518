package db

import (
	"context"
	"strings"
	"testing"

	"github.com/zuba-broadband/usage-dashboard-tui/internal/models"
)

func seedTestDB(t *testing.T, db *DB) {
	t.Helper()
	clients := []models.Client{
		{ID: "1", Name: "Bank of Kigali", Email: "it@bk.rw"},
		{ID: "2", Name: "Rwanda Development Board", Email: "info@rdb.rw"},
		{ID: "3", Name: "University of Rwanda", Email: "info@ur.ac.rw"},
	}
	records := []models.UsageRecord{
		{ID: "1", ClientID: "1", Date: "2025-01-23", Kit1Usage: 60, TotalUsage: 60},
		{ID: "5", ClientID: "1", Date: "2025-06-19", Kit1Usage: 107, Kit2Usage: 135, TotalUsage: 242},
		{ID: "8", ClientID: "2", Date: "2025-02-20", Kit1Usage: 78, Kit2Usage: 56, TotalUsage: 134},
		{ID: "9", ClientID: "3", Date: "2025-03-05", Kit1Usage: 23, Kit2Usage: 12, TotalUsage: 35},
	}
	if err := db.ImportDataset(context.Background(), clients, records); err != nil {
		t.Fatalf("ImportDataset() error = %v", err)
	}
}

func TestListClients_OrderedByName(t *testing.T) {
	db := newTestDB(t)
	defer db.Close()
	ctx := context.Background()

	if _, err := db.UpsertClient(ctx, models.Client{ID: "z", Name: "Zeta Telecom"}); err != nil {
		t.Fatal(err)
	}
	seedTestDB(t, db)

	clients, err := db.ListClients(ctx)
	if err != nil {
		t.Fatalf("ListClients() error = %v", err)
	}

	want := []string{"Bank of Kigali", "Rwanda Development Board", "University of Rwanda", "Zeta Telecom"}
	if len(clients) != len(want) {
		t.Fatalf("len(clients) = %d, want %d", len(clients), len(want))
	}
	for i, name := range want {
		if clients[i].Name != name {
			t.Errorf("clients[%d].Name = %q, want %q", i, clients[i].Name, name)
		}
	}
	if clients[0].CreatedAt.IsZero() {
		t.Error("CreatedAt should be parsed from the default timestamp")
	}
}

func TestUpsertClient_GeneratesIDAndUpdates(t *testing.T) {
	db := newTestDB(t)
	defer db.Close()
	ctx := context.Background()

	c, err := db.UpsertClient(ctx, models.Client{Name: "New Client", Email: "a@b.rw"})
	if err != nil {
		t.Fatalf("UpsertClient() error = %v", err)
	}
	if len(c.ID) != 36 {
		t.Errorf("generated ID = %q, want a uuid", c.ID)
	}

	c.Name = "Renamed Client"
	if _, err := db.UpsertClient(ctx, c); err != nil {
		t.Fatal(err)
	}

	clients, _ := db.ListClients(ctx)
	if len(clients) != 1 || clients[0].Name != "Renamed Client" {
		t.Errorf("clients after update = %+v", clients)
	}
}

func TestListUsage(t *testing.T) {
	db := newTestDB(t)
	defer db.Close()
	seedTestDB(t, db)

	tests := []struct {
		name     string
		criteria models.FilterCriteria
		wantIDs  []string
	}{
		{"All", models.FilterCriteria{}, []string{"5", "9", "8", "1"}},
		{"Client", models.FilterCriteria{ClientID: "1"}, []string{"5", "1"}},
		{"DateRange", models.FilterCriteria{StartDate: "2025-02-20", EndDate: "2025-03-05"}, []string{"9", "8"}},
		{"UsageRange", models.FilterCriteria{MinUsage: models.Float(35), MaxUsage: models.Float(134)}, []string{"9", "8", "1"}},
		{"Combined", models.FilterCriteria{ClientID: "1", MinUsage: models.Float(100)}, []string{"5"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records, err := db.ListUsage(context.Background(), tt.criteria)
			if err != nil {
				t.Fatalf("ListUsage() error = %v", err)
			}
			var ids []string
			for _, r := range records {
				ids = append(ids, r.ID)
			}
			if strings.Join(ids, ",") != strings.Join(tt.wantIDs, ",") {
				t.Errorf("ids = %v, want %v", ids, tt.wantIDs)
			}
		})
	}
}

func TestListUsage_JoinsClient(t *testing.T) {
	db := newTestDB(t)
	defer db.Close()
	seedTestDB(t, db)

	records, err := db.ListUsage(context.Background(), models.FilterCriteria{ClientID: "2"})
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 1 {
		t.Fatalf("len(records) = %d, want 1", len(records))
	}

	r := records[0]
	if r.ClientName != "Rwanda Development Board" || r.ClientEmail != "info@rdb.rw" {
		t.Errorf("client = %q <%s>", r.ClientName, r.ClientEmail)
	}
	if r.Kit1Usage != 78 || r.Kit2Usage != 56 || r.TotalUsage != 134 {
		t.Errorf("usage = %v/%v/%v", r.Kit1Usage, r.Kit2Usage, r.TotalUsage)
	}
	if r.Date != "2025-02-20" {
		t.Errorf("Date = %q", r.Date)
	}
}

func TestListUsage_CoercesNullUsage(t *testing.T) {
	db := newTestDB(t)
	defer db.Close()
	ctx := context.Background()
	seedTestDB(t, db)

	// A non-numeric value, as a hand-edited database might hold.
	if _, err := db.ExecContext(ctx, "INSERT INTO data_usage (id, client_id, date, total_usage) VALUES ('x', '3', '2025-04-01', 'n/a')"); err != nil {
		t.Fatal(err)
	}

	records, err := db.ListUsage(ctx, models.FilterCriteria{StartDate: "2025-04-01", EndDate: "2025-04-01"})
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 1 || records[0].TotalUsage != 0 {
		t.Errorf("records = %+v, want one record with TotalUsage 0", records)
	}
}

func TestUsageQuery_Postgres(t *testing.T) {
	db := &DB{dialect: Postgres}

	query, args := db.usageQuery(models.FilterCriteria{
		ClientID:  "c",
		StartDate: "2025-01-01",
		MaxUsage:  models.Float(10),
	})

	for _, want := range []string{"u.client_id = $1", "u.date >= $2", "u.total_usage <= $3", "ORDER BY u.date DESC"} {
		if !strings.Contains(query, want) {
			t.Errorf("query missing %q:\n%s", want, query)
		}
	}
	if len(args) != 3 {
		t.Errorf("len(args) = %d, want 3", len(args))
	}
}

func TestUsageQuery_NoCriteria(t *testing.T) {
	db := &DB{dialect: SQLite}
	query, args := db.usageQuery(models.FilterCriteria{})
	if strings.Contains(query, "WHERE") || len(args) != 0 {
		t.Errorf("unfiltered query should have no WHERE clause: %s", query)
	}
}

func TestCountUsage(t *testing.T) {
	db := newTestDB(t)
	defer db.Close()
	seedTestDB(t, db)

	n, err := db.CountUsage(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if n != 4 {
		t.Errorf("CountUsage() = %d, want 4", n)
	}
}

func TestImportDataset_RollsBackOnError(t *testing.T) {
	db := newTestDB(t)
	defer db.Close()
	ctx := context.Background()

	err := db.ImportDataset(ctx,
		[]models.Client{{ID: "1", Name: "Bank of Kigali"}},
		[]models.UsageRecord{{ID: "r", ClientID: "unknown", Date: "2025-01-01"}},
	)
	if err == nil {
		t.Fatal("expected foreign key failure")
	}

	clients, _ := db.ListClients(ctx)
	if len(clients) != 0 {
		t.Errorf("clients after failed import = %d, want 0", len(clients))
	}
}
