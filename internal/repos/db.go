package repos

import (
	"log"

	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"
	_ "modernc.org/sqlite"
)

func OpenDB(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err = db.Ping(); err != nil {
		return nil, err
	}

	if err := ensureSchema(db); err != nil {
		return nil, err
	}
	// Ensure the admin credential exists (idempotent; safe to run every start)
	if err := seedUsers(db); err != nil {
		return nil, err
	}

	return db, nil
}

func ensureSchema(db *sqlx.DB) error {
	schema := `
PRAGMA foreign_keys = ON;

-- Monotonic ID allocation, independent of row counts
CREATE TABLE IF NOT EXISTS counters(
  name  TEXT PRIMARY KEY,
  value INTEGER NOT NULL DEFAULT 0
);

-- Equipment
CREATE TABLE IF NOT EXISTS equipment(
  id TEXT PRIMARY KEY,
  brand TEXT NOT NULL,
  model TEXT NOT NULL,
  description TEXT,
  status TEXT NOT NULL DEFAULT 'available' CHECK (status IN ('available','rented','maintenance')),
  price NUMERIC NOT NULL CHECK (price >= 0),
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT
);
CREATE INDEX IF NOT EXISTS idx_equipment_status ON equipment(status);

-- Customers
CREATE TABLE IF NOT EXISTS customers(
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  phone TEXT NOT NULL,
  email TEXT NOT NULL,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);

-- Rentals (customer fields are a snapshot taken at creation)
CREATE TABLE IF NOT EXISTS rentals(
  id TEXT PRIMARY KEY,
  customer_id TEXT NOT NULL,
  customer_name TEXT NOT NULL,
  customer_phone TEXT,
  customer_email TEXT,
  start_date TEXT NOT NULL,
  end_date TEXT NOT NULL,
  subtotal NUMERIC NOT NULL CHECK (subtotal > 0),
  tax_included INTEGER NOT NULL DEFAULT 0,
  total NUMERIC NOT NULL,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS rental_items(
  rental_id    TEXT NOT NULL REFERENCES rentals(id) ON DELETE CASCADE,
  equipment_id TEXT NOT NULL REFERENCES equipment(id) ON DELETE RESTRICT,
  price NUMERIC NOT NULL,
  PRIMARY KEY (rental_id, equipment_id)
);
CREATE INDEX IF NOT EXISTS idx_rental_items_equipment ON rental_items(equipment_id);

-- Users & Sessions
CREATE TABLE IF NOT EXISTS users(
  id TEXT PRIMARY KEY,
  username TEXT NOT NULL UNIQUE,
  password_hash TEXT NOT NULL,
  role TEXT NOT NULL CHECK (role IN ('USER','ADMIN')),
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_users_username ON users(LOWER(username));

CREATE TABLE IF NOT EXISTS sessions(
  id TEXT PRIMARY KEY,               -- same value as the 'sid' cookie
  user_id TEXT NULL REFERENCES users(id) ON DELETE SET NULL,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  last_seen  TEXT
);
CREATE INDEX IF NOT EXISTS idx_sessions_user ON sessions(user_id);
`
	_, err := db.Exec(schema)
	return err
}

// seedUsers ensures the single admin credential exists (idempotent).
func seedUsers(db *sqlx.DB) error {
	h, err := bcrypt.GenerateFromPassword([]byte("ChangeMe123!"), 12)
	if err != nil {
		return err
	}
	_, err = db.Exec(`
		INSERT INTO users(id,username,password_hash,role)
		VALUES('u-admin','admin',?,'ADMIN')
		ON CONFLICT(username) DO NOTHING
	`, string(h))
	return err
}

// SeedDemoData inserts a few demo equipment rows on a brand-new store.
// Opt-in (SEED_DEMO); a fresh production store starts empty so real
// registrations get ME0001 onward.
func SeedDemoData(db *sqlx.DB) error {
	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM equipment`); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	log.Println("[seed] inserting demo equipment")

	tx := db.MustBegin()
	defer func() { _ = tx.Rollback() }()

	demo := []struct {
		brand, model, desc string
		price              float64
	}{
		{"Dell", "Latitude 5420", "14in laptop, 16GB RAM", 120.00},
		{"Epson", "PowerLite X49", "XGA projector", 75.00},
		{"Canon", "EOS R10", "Mirrorless camera with kit lens", 150.00},
	}
	for _, d := range demo {
		id, err := NextID(tx, CounterEquipment)
		if err != nil {
			return err
		}
		if _, err := tx.Exec(`
			INSERT INTO equipment(id,brand,model,description,status,price)
			VALUES(?,?,?,?, 'available', ?)
		`, id, d.brand, d.model, d.desc, d.price); err != nil {
			return err
		}
	}
	return tx.Commit()
}
