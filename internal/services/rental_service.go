package services

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"marrent/internal/domain"
	"marrent/internal/repos"
)

// TaxRate is the fixed rate applied when a rental is marked tax-inclusive.
const TaxRate = 0.16

const dateLayout = "2006-01-02"

var (
	ErrNoEquipment     = errors.New("select at least one equipment item")
	ErrBadDates        = errors.New("end date must be after start date")
	ErrZeroPrice       = errors.New("rental subtotal must be positive")
	ErrUnknownCustomer = errors.New("unknown customer")
	ErrRentalNotFound  = errors.New("rental not found")
)

// Backup receives a best-effort push request after a successful mutation.
// The store mirror implements it; a nil Backup disables pushes.
type Backup interface {
	PushAsync(reason string)
}

type RentalService struct {
	Rentals   *repos.RentalRepo
	Equip     *repos.EquipmentRepo
	Customers *repos.CustomerRepo
	Backup    Backup
}

func NewRentalService(rentals *repos.RentalRepo, equip *repos.EquipmentRepo, customers *repos.CustomerRepo) *RentalService {
	return &RentalService{Rentals: rentals, Equip: equip, Customers: customers}
}

// Create registers a rental agreement: snapshots the customer, prices each
// item at its current base price, and flips every item to rented. All writes
// happen in one transaction; any precondition failure mutates nothing.
func (s *RentalService) Create(customerID string, equipmentIDs []string, start, end time.Time, taxIncluded bool) (string, error) {
	ids := dedupe(equipmentIDs)
	if len(ids) == 0 {
		return "", ErrNoEquipment
	}
	if !end.After(start) {
		return "", ErrBadDates
	}

	customer, err := s.Customers.Get(customerID)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", ErrUnknownCustomer
		}
		return "", err
	}

	// Pre-check availability for a precise message; the repo re-checks under
	// the transaction so a race still cannot double-book.
	items := make([]domain.RentalItem, 0, len(ids))
	subtotal := 0.0
	for _, id := range ids {
		e, err := s.Equip.Get(id)
		if err != nil {
			if err == sql.ErrNoRows {
				return "", fmt.Errorf("equipment %s does not exist", id)
			}
			return "", err
		}
		if e.Status != domain.StatusAvailable {
			return "", fmt.Errorf("equipment %s is %s, not available", e.ID, e.Status)
		}
		items = append(items, domain.RentalItem{EquipmentID: e.ID, Price: e.Price})
		subtotal += e.Price
	}
	if subtotal <= 0 {
		return "", ErrZeroPrice
	}

	total := subtotal
	if taxIncluded {
		total = subtotal * (1 + TaxRate)
	}

	rentalID, err := s.Rentals.Create(customer, items,
		start.Format(dateLayout), end.Format(dateLayout), subtotal, total, taxIncluded)
	if err != nil {
		return "", err
	}
	if s.Backup != nil {
		s.Backup.PushAsync("rental.create")
	}
	return rentalID, nil
}

// Close returns every item referenced by the rental to available and removes
// the agreement. There is no retained history after closure.
func (s *RentalService) Close(rentalID string) error {
	if err := s.Rentals.Close(rentalID); err != nil {
		if err == sql.ErrNoRows {
			return ErrRentalNotFound
		}
		return err
	}
	if s.Backup != nil {
		s.Backup.PushAsync("rental.close")
	}
	return nil
}

func (s *RentalService) Get(rentalID string) (domain.Rental, []domain.RentalItem, error) {
	r, items, err := s.Rentals.Get(rentalID)
	if err == sql.ErrNoRows {
		return domain.Rental{}, nil, ErrRentalNotFound
	}
	return r, items, err
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := ids[:0:0]
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
