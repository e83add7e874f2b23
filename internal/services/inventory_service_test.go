package services_test

import (
	"testing"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // pure-Go SQLite driver

	"marrent/internal/domain"
	"marrent/internal/repos"
	"marrent/internal/services"
)

func memdb(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := sqlx.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatal(err)
	}
	schema := `
	CREATE TABLE equipment(id TEXT PRIMARY KEY, brand TEXT, model TEXT, description TEXT,
	  status TEXT NOT NULL DEFAULT 'available', price NUMERIC, created_at TEXT, updated_at TEXT);
	INSERT INTO equipment(id,brand,model,description,status,price) VALUES
	  ('ME0001','Dell','X1','','available',100),
	  ('ME0002','Epson','X49','','rented',75),
	  ('ME0003','Canon','R10','','maintenance',150);
	`
	if _, err := db.Exec(schema); err != nil {
		t.Fatal(err)
	}
	return db
}

func TestInventoryAvailable(t *testing.T) {
	svc := services.NewInventoryService(repos.NewEquipmentRepo(memdb(t)))

	avail, err := svc.Available()
	if err != nil {
		t.Fatal(err)
	}
	if len(avail) != 1 || avail[0].ID != "ME0001" {
		t.Fatalf("want only ME0001 available, got %+v", avail)
	}
}

func TestInventorySetStatus(t *testing.T) {
	db := memdb(t)
	svc := services.NewInventoryService(repos.NewEquipmentRepo(db))

	// unknown ids are silently ignored
	if err := svc.SetStatus([]string{"ME0001", "ME9999"}, domain.StatusMaintenance); err != nil {
		t.Fatal(err)
	}
	var status string
	if err := db.Get(&status, `SELECT status FROM equipment WHERE id='ME0001'`); err != nil {
		t.Fatal(err)
	}
	if status != domain.StatusMaintenance {
		t.Fatalf("want maintenance, got %s", status)
	}

	if err := svc.SetStatus([]string{"ME0001"}, "broken"); err != services.ErrBadStatus {
		t.Fatalf("want ErrBadStatus, got %v", err)
	}
	if err := svc.SetStatus(nil, domain.StatusAvailable); err != nil {
		t.Fatalf("empty id set must be a no-op, got %v", err)
	}
}

func TestInventoryCheck(t *testing.T) {
	svc := services.NewInventoryService(repos.NewEquipmentRepo(memdb(t)))

	cases := map[string]string{
		"ME0001": "AVAILABLE",
		"ME0002": "RENTED",
		"ME0003": "MAINTENANCE",
		"ME9999": "UNKNOWN",
	}
	for id, want := range cases {
		a, err := svc.Check(id)
		if err != nil {
			t.Fatal(err)
		}
		if a.Status != want {
			t.Errorf("Check(%s) = %s, want %s", id, a.Status, want)
		}
	}
}
