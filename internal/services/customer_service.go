package services

import (
	"errors"

	"marrent/internal/domain"
	"marrent/internal/repos"
	"marrent/internal/validate"
)

var (
	ErrBadName  = errors.New("name is required")
	ErrBadPhone = errors.New("phone must be 10-15 digits, optional leading +")
	ErrBadEmail = errors.New("enter a valid email address")
)

type CustomerService struct {
	Customers *repos.CustomerRepo
	Backup    Backup // optional: mirror push after each write
}

func NewCustomerService(customers *repos.CustomerRepo) *CustomerService {
	return &CustomerService{Customers: customers}
}

func (s *CustomerService) List() ([]domain.Customer, error) { return s.Customers.List() }

func (s *CustomerService) Register(name, phone, email string) (string, error) {
	name, phone, email, err := checkCustomer(name, phone, email)
	if err != nil {
		return "", err
	}
	id, err := s.Customers.Create(name, phone, email)
	if err != nil {
		return "", err
	}
	s.push("customer.create")
	return id, nil
}

func (s *CustomerService) Update(id, name, phone, email string) error {
	name, phone, email, err := checkCustomer(name, phone, email)
	if err != nil {
		return err
	}
	if err := s.Customers.Update(id, name, phone, email); err != nil {
		return err
	}
	s.push("customer.update")
	return nil
}

func (s *CustomerService) Delete(id string) error {
	if err := s.Customers.Delete(id); err != nil {
		return err
	}
	s.push("customer.delete")
	return nil
}

func (s *CustomerService) push(reason string) {
	if s.Backup != nil {
		s.Backup.PushAsync(reason)
	}
}

func checkCustomer(name, phone, email string) (string, string, string, error) {
	name, ok := validate.Name(name)
	if !ok {
		return "", "", "", ErrBadName
	}
	phone, ok = validate.Phone(phone)
	if !ok {
		return "", "", "", ErrBadPhone
	}
	email, ok = validate.Email(email)
	if !ok {
		return "", "", "", ErrBadEmail
	}
	return name, phone, email, nil
}
