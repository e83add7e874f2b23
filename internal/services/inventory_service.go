package services

import (
	"database/sql"
	"errors"

	"marrent/internal/domain"
	"marrent/internal/repos"
)

var ErrBadStatus = errors.New("unknown equipment status")

type InventoryService struct {
	Equip  *repos.EquipmentRepo
	Backup Backup // optional: mirror push after each write
}

func NewInventoryService(equip *repos.EquipmentRepo) *InventoryService {
	return &InventoryService{Equip: equip}
}

// Available returns the rentable subset of the inventory.
func (s *InventoryService) Available() ([]domain.Equipment, error) {
	return s.Equip.Available()
}

// List returns the full inventory, out-of-circulation items first.
func (s *InventoryService) List() ([]domain.Equipment, error) {
	return s.Equip.List()
}

// Register creates an equipment row, allocating its ME#### identifier.
func (s *InventoryService) Register(brand, model, description, status string, price float64) (string, error) {
	if status == "" {
		status = domain.StatusAvailable
	}
	if !validStatus(status) {
		return "", ErrBadStatus
	}
	id, err := s.Equip.Create(brand, model, description, status, price)
	if err != nil {
		return "", err
	}
	s.push("equipment.create")
	return id, nil
}

func (s *InventoryService) Update(id, brand, model, description, status string, price float64) error {
	if !validStatus(status) {
		return ErrBadStatus
	}
	if err := s.Equip.Update(id, brand, model, description, status, price); err != nil {
		return err
	}
	s.push("equipment.update")
	return nil
}

func (s *InventoryService) Delete(id string) error {
	if err := s.Equip.Delete(id); err != nil {
		return err
	}
	s.push("equipment.delete")
	return nil
}

// SetStatus moves exactly the listed items to the given status. Unknown
// identifiers are silently ignored; callers that care check beforehand.
func (s *InventoryService) SetStatus(ids []string, status string) error {
	if !validStatus(status) {
		return ErrBadStatus
	}
	if err := s.Equip.SetStatus(ids, status); err != nil {
		return err
	}
	if len(ids) > 0 {
		s.push("equipment.status")
	}
	return nil
}

func (s *InventoryService) push(reason string) {
	if s.Backup != nil {
		s.Backup.PushAsync(reason)
	}
}

func validStatus(status string) bool {
	switch status {
	case domain.StatusAvailable, domain.StatusRented, domain.StatusMaintenance:
		return true
	}
	return false
}

// Check reports the status of a single item for the availability probe.
func (s *InventoryService) Check(id string) (domain.Availability, error) {
	e, err := s.Equip.Get(id)
	if err != nil {
		if err == sql.ErrNoRows {
			return domain.Availability{Status: "UNKNOWN", ID: id}, nil
		}
		return domain.Availability{}, err
	}
	status := "MAINTENANCE"
	switch e.Status {
	case domain.StatusAvailable:
		status = "AVAILABLE"
	case domain.StatusRented:
		status = "RENTED"
	}
	return domain.Availability{Status: status, ID: e.ID}, nil
}
