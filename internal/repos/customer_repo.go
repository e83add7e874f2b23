package repos

import (
	"marrent/internal/domain"

	"github.com/jmoiron/sqlx"
)

type CustomerRepo struct{ db *sqlx.DB }

func NewCustomerRepo(db *sqlx.DB) *CustomerRepo { return &CustomerRepo{db: db} }

func (r *CustomerRepo) List() ([]domain.Customer, error) {
	var out []domain.Customer
	err := r.db.Select(&out, `
	  SELECT id, name, phone, email, COALESCE(created_at,'') AS created_at
	  FROM customers
	  ORDER BY id
	`)
	return out, err
}

func (r *CustomerRepo) Get(id string) (domain.Customer, error) {
	var c domain.Customer
	err := r.db.Get(&c, `SELECT id, name, phone, email, COALESCE(created_at,'') AS created_at FROM customers WHERE id = ?`, id)
	return c, err
}

// Create allocates the next MC#### identifier and inserts the row.
func (r *CustomerRepo) Create(name, phone, email string) (string, error) {
	tx, err := r.db.Beginx()
	if err != nil {
		return "", err
	}
	defer func() { _ = tx.Rollback() }()

	id, err := NextID(tx, CounterCustomer)
	if err != nil {
		return "", err
	}
	if _, err := ExecRetry(tx, `
		INSERT INTO customers(id,name,phone,email) VALUES(?,?,?,?)
	`, id, name, phone, email); err != nil {
		return "", err
	}
	return id, tx.Commit()
}

func (r *CustomerRepo) Update(id, name, phone, email string) error {
	_, err := ExecRetry(r.db, `UPDATE customers SET name=?, phone=?, email=? WHERE id=?`, name, phone, email, id)
	return err
}

func (r *CustomerRepo) Delete(id string) error {
	_, err := ExecRetry(r.db, `DELETE FROM customers WHERE id=?`, id)
	return err
}
