package repos

import (
	"marrent/internal/domain"

	"github.com/jmoiron/sqlx"
)

type EquipmentRepo struct{ db *sqlx.DB }

func NewEquipmentRepo(db *sqlx.DB) *EquipmentRepo { return &EquipmentRepo{db: db} }

// List returns the full inventory, rented and maintenance items first so the
// inventory screen surfaces what is out of circulation.
func (r *EquipmentRepo) List() ([]domain.Equipment, error) {
	var out []domain.Equipment
	err := r.db.Select(&out, `
	  SELECT id, brand, model, COALESCE(description,'') AS description, status, price,
	         COALESCE(created_at,'') AS created_at, COALESCE(updated_at,'') AS updated_at
	  FROM equipment
	  ORDER BY status, id
	`)
	return out, err
}

func (r *EquipmentRepo) Available() ([]domain.Equipment, error) {
	var out []domain.Equipment
	err := r.db.Select(&out, `
	  SELECT id, brand, model, COALESCE(description,'') AS description, status, price,
	         COALESCE(created_at,'') AS created_at, COALESCE(updated_at,'') AS updated_at
	  FROM equipment
	  WHERE status = 'available'
	  ORDER BY id
	`)
	return out, err
}

func (r *EquipmentRepo) Get(id string) (domain.Equipment, error) {
	var e domain.Equipment
	err := r.db.Get(&e, `
	  SELECT id, brand, model, COALESCE(description,'') AS description, status, price,
	         COALESCE(created_at,'') AS created_at, COALESCE(updated_at,'') AS updated_at
	  FROM equipment
	  WHERE id = ?
	`, id)
	return e, err
}

// Create allocates the next ME#### identifier and inserts the row.
func (r *EquipmentRepo) Create(brand, model, description, status string, price float64) (string, error) {
	tx, err := r.db.Beginx()
	if err != nil {
		return "", err
	}
	defer func() { _ = tx.Rollback() }()

	id, err := NextID(tx, CounterEquipment)
	if err != nil {
		return "", err
	}
	if _, err := ExecRetry(tx, `
		INSERT INTO equipment(id,brand,model,description,status,price)
		VALUES(?,?,?,?,?,?)
	`, id, brand, model, description, status, price); err != nil {
		return "", err
	}
	return id, tx.Commit()
}

func (r *EquipmentRepo) Update(id, brand, model, description, status string, price float64) error {
	_, err := ExecRetry(r.db, `
		UPDATE equipment
		SET brand=?, model=?, description=?, status=?, price=?, updated_at=CURRENT_TIMESTAMP
		WHERE id=?
	`, brand, model, description, status, price, id)
	return err
}

func (r *EquipmentRepo) Delete(id string) error {
	_, err := ExecRetry(r.db, `DELETE FROM equipment WHERE id=?`, id)
	return err
}

// SetStatus updates exactly the listed rows; unknown identifiers are
// silently ignored.
func (r *EquipmentRepo) SetStatus(ids []string, status string) error {
	if len(ids) == 0 {
		return nil
	}
	query, args, err := sqlx.In(`UPDATE equipment SET status=?, updated_at=CURRENT_TIMESTAMP WHERE id IN (?)`, status, ids)
	if err != nil {
		return err
	}
	_, err = ExecRetry(r.db, query, args...)
	return err
}
