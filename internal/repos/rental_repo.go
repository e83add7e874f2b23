package repos

import (
	"database/sql"
	"errors"

	"marrent/internal/domain"

	"github.com/jmoiron/sqlx"
)

// ErrEquipmentConflict is returned when a rental create loses the race for an
// item: something else moved it out of 'available' between the caller's
// check and the transaction.
var ErrEquipmentConflict = errors.New("equipment no longer available")

type RentalRepo struct{ db *sqlx.DB }

func NewRentalRepo(db *sqlx.DB) *RentalRepo { return &RentalRepo{db: db} }

// RentalListRow is a rental plus its equipment ids, for the tracking screen.
type RentalListRow struct {
	domain.Rental
	EquipmentIDs string `db:"equipment_ids"` // comma separated
}

// Create writes the rental header, its items, and the equipment status flip
// in one transaction: either the agreement exists and every item is marked
// rented, or nothing changed.
func (r *RentalRepo) Create(c domain.Customer, items []domain.RentalItem, startDate, endDate string, subtotal, total float64, taxIncluded bool) (string, error) {
	tx, err := r.db.Beginx()
	if err != nil {
		return "", err
	}
	defer func() { _ = tx.Rollback() }()

	id, err := NextID(tx, CounterRental)
	if err != nil {
		return "", err
	}

	if _, err := ExecRetry(tx, `
	  INSERT INTO rentals
	    (id, customer_id, customer_name, customer_phone, customer_email,
	     start_date, end_date, subtotal, tax_included, total)
	  VALUES (?,?,?,?,?,?,?,?,?,?)
	`, id, c.ID, c.Name, c.Phone, c.Email, startDate, endDate, subtotal, taxIncluded, total); err != nil {
		return "", err
	}

	ids := make([]string, 0, len(items))
	for _, it := range items {
		if _, err := ExecRetry(tx, `
		  INSERT INTO rental_items(rental_id, equipment_id, price) VALUES(?,?,?)
		`, id, it.EquipmentID, it.Price); err != nil {
			return "", err
		}
		ids = append(ids, it.EquipmentID)
	}

	// Guarded flip: only rows still available move to rented. If any item was
	// taken since the caller checked, the whole create rolls back.
	query, args, err := sqlx.In(`
	  UPDATE equipment SET status='rented', updated_at=CURRENT_TIMESTAMP
	  WHERE id IN (?) AND status='available'
	`, ids)
	if err != nil {
		return "", err
	}
	res, err := ExecRetry(tx, query, args...)
	if err != nil {
		return "", err
	}
	if n, _ := res.RowsAffected(); n != int64(len(ids)) {
		return "", ErrEquipmentConflict
	}

	return id, tx.Commit()
}

// Close returns every referenced item to available and removes the rental.
// One transaction; there is no retained rental history after closure.
func (r *RentalRepo) Close(rentalID string) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var ids []string
	if err := tx.Select(&ids, `SELECT equipment_id FROM rental_items WHERE rental_id=?`, rentalID); err != nil {
		return err
	}

	if len(ids) > 0 {
		query, args, err := sqlx.In(`
		  UPDATE equipment SET status='available', updated_at=CURRENT_TIMESTAMP
		  WHERE id IN (?)
		`, ids)
		if err != nil {
			return err
		}
		if _, err := ExecRetry(tx, query, args...); err != nil {
			return err
		}
	}

	if _, err := ExecRetry(tx, `DELETE FROM rental_items WHERE rental_id=?`, rentalID); err != nil {
		return err
	}
	res, err := ExecRetry(tx, `DELETE FROM rentals WHERE id=?`, rentalID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}

	return tx.Commit()
}

// ListActive returns every open rental with its equipment ids. A rental is
// active exactly as long as its row exists.
func (r *RentalRepo) ListActive() ([]RentalListRow, error) {
	var out []RentalListRow
	err := r.db.Select(&out, `
	  SELECT r.id, r.customer_id, r.customer_name,
	         COALESCE(r.customer_phone,'') AS customer_phone,
	         COALESCE(r.customer_email,'') AS customer_email,
	         r.start_date, r.end_date, r.subtotal, r.tax_included, r.total,
	         COALESCE(r.created_at,'') AS created_at,
	         COALESCE(GROUP_CONCAT(ri.equipment_id, ','), '') AS equipment_ids
	  FROM rentals r
	  LEFT JOIN rental_items ri ON ri.rental_id = r.id
	  GROUP BY r.id
	  ORDER BY r.end_date, r.id
	`)
	return out, err
}

func (r *RentalRepo) Get(rentalID string) (domain.Rental, []domain.RentalItem, error) {
	var rent domain.Rental
	if err := r.db.Get(&rent, `
	  SELECT id, customer_id, customer_name,
	         COALESCE(customer_phone,'') AS customer_phone,
	         COALESCE(customer_email,'') AS customer_email,
	         start_date, end_date, subtotal, tax_included, total,
	         COALESCE(created_at,'') AS created_at
	  FROM rentals WHERE id = ?
	`, rentalID); err != nil {
		return domain.Rental{}, nil, err
	}
	var items []domain.RentalItem
	if err := r.db.Select(&items, `
	  SELECT rental_id, equipment_id, price FROM rental_items WHERE rental_id = ? ORDER BY equipment_id
	`, rentalID); err != nil {
		return domain.Rental{}, nil, err
	}
	return rent, items, nil
}
