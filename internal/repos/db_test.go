package repos_test

import (
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"marrent/internal/domain"
	"marrent/internal/repos"
)

func TestOpenDBSeedsAdmin(t *testing.T) {
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	var hash string
	if err := db.Get(&hash, `SELECT password_hash FROM users WHERE username='admin'`); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(hash, "$2") {
		t.Fatalf("admin password not bcrypt-hashed: %s", hash)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte("ChangeMe123!")); err != nil {
		t.Fatalf("seed hash does not validate default password: %v", err)
	}
}

// A fresh store starts empty; demo inventory is opt-in and never burns
// identifiers a real registration would otherwise get.
func TestFreshStoreStartsEmpty(t *testing.T) {
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM equipment`); err != nil {
		t.Fatal(err)
	}
	if n != 0 {
		t.Fatalf("fresh store has %d equipment rows, want 0", n)
	}

	equipRepo := repos.NewEquipmentRepo(db)
	eqID, err := equipRepo.Create("Dell", "X1", "", domain.StatusAvailable, 100)
	if err != nil {
		t.Fatal(err)
	}
	if eqID != "ME0001" {
		t.Fatalf("first registration on a fresh store got %s, want ME0001", eqID)
	}
}

func TestSeedDemoData(t *testing.T) {
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	if err := repos.SeedDemoData(db); err != nil {
		t.Fatal(err)
	}
	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM equipment`); err != nil {
		t.Fatal(err)
	}
	if n != 3 {
		t.Fatalf("demo seed inserted %d rows, want 3", n)
	}
	// idempotent on a populated store
	if err := repos.SeedDemoData(db); err != nil {
		t.Fatal(err)
	}
	if err := db.Get(&n, `SELECT COUNT(*) FROM equipment`); err != nil {
		t.Fatal(err)
	}
	if n != 3 {
		t.Fatalf("re-seed changed row count to %d", n)
	}
}

// Writing rows then reading them back yields the same field values.
func TestRoundTrip(t *testing.T) {
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatal(err)
	}

	equipRepo := repos.NewEquipmentRepo(db)
	custRepo := repos.NewCustomerRepo(db)

	eqID, err := equipRepo.Create("Sony", "A7", "full-frame body", domain.StatusMaintenance, 250.50)
	if err != nil {
		t.Fatal(err)
	}
	e, err := equipRepo.Get(eqID)
	if err != nil {
		t.Fatal(err)
	}
	if e.Brand != "Sony" || e.Model != "A7" || e.Description != "full-frame body" ||
		e.Status != domain.StatusMaintenance || e.Price != 250.50 {
		t.Fatalf("equipment round-trip mismatch: %+v", e)
	}

	custID, err := custRepo.Create("Ana", "5551234567", "ana@x.com")
	if err != nil {
		t.Fatal(err)
	}
	c, err := custRepo.Get(custID)
	if err != nil {
		t.Fatal(err)
	}
	if c.Name != "Ana" || c.Phone != "5551234567" || c.Email != "ana@x.com" {
		t.Fatalf("customer round-trip mismatch: %+v", c)
	}

	// update then read back
	if err := custRepo.Update(custID, "Ana María", "+5215551234567", "ana@y.com"); err != nil {
		t.Fatal(err)
	}
	c, err = custRepo.Get(custID)
	if err != nil {
		t.Fatal(err)
	}
	if c.Name != "Ana María" || c.Phone != "+5215551234567" || c.Email != "ana@y.com" {
		t.Fatalf("customer update round-trip mismatch: %+v", c)
	}
}

func TestSchemaRejectsBadStatus(t *testing.T) {
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	_, err = db.Exec(`INSERT INTO equipment(id,brand,model,status,price) VALUES('ME9999','X','Y','broken',1)`)
	if err == nil {
		t.Fatal("CHECK constraint should reject unknown status")
	}
}
