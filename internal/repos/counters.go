package repos

import (
	"fmt"

	"github.com/jmoiron/sqlx"
)

// Counter namespaces. The formats match the identifiers the business has
// always printed on its paperwork.
var (
	CounterEquipment = Counter{Name: "equipment", Format: "ME%04d"}
	CounterCustomer  = Counter{Name: "customer", Format: "MC%04d"}
	CounterRental    = Counter{Name: "rental", Format: "RE-%04d"}
)

type Counter struct {
	Name   string
	Format string
}

// NextID bumps the persisted high-water-mark for the namespace and returns
// the formatted identifier. The counter never decreases, so deleting rows
// cannot re-issue an identifier. Rides the caller's transaction.
func NextID(tx *sqlx.Tx, c Counter) (string, error) {
	if _, err := tx.Exec(`
		INSERT INTO counters(name, value) VALUES(?, 1)
		ON CONFLICT(name) DO UPDATE SET value = value + 1
	`, c.Name); err != nil {
		return "", err
	}
	var n int64
	if err := tx.Get(&n, `SELECT value FROM counters WHERE name = ?`, c.Name); err != nil {
		return "", err
	}
	return fmt.Sprintf(c.Format, n), nil
}
