package service

import (
	"errors"
	"time"

	"github.com/storefrontlab/storefront-backend/internal/app/model"
	"github.com/storefrontlab/storefront-backend/internal/app/repository"
	"github.com/storefrontlab/storefront-backend/pkg/logger"
	"gorm.io/gorm"
)

var ErrCustomerNotFound = errors.New("customer not found")

// CustomerProfileInput carries the writable profile fields for a full
// replace of the caller's own profile.
type CustomerProfileInput struct {
	Phone      string
	BirthDate  *time.Time
	Membership model.Membership
}

type CustomerService interface {
	List() ([]model.Customer, error)
	GetByID(id uint) (*model.Customer, error)
	Update(id uint, input CustomerProfileInput) (*model.Customer, error)
	Delete(id uint) error
	GetMe(userID uint) (*model.Customer, error)
	UpdateMe(userID uint, input CustomerProfileInput) (*model.Customer, error)
	History(customerID uint) ([]model.Order, error)
}

type customerService struct {
	customerRepo repository.CustomerRepository
	orderRepo    repository.OrderRepository
}

func NewCustomerService(
	customerRepo repository.CustomerRepository,
	orderRepo repository.OrderRepository,
) CustomerService {
	return &customerService{
		customerRepo: customerRepo,
		orderRepo:    orderRepo,
	}
}

func (s *customerService) List() ([]model.Customer, error) {
	return s.customerRepo.FindAll()
}

func (s *customerService) GetByID(id uint) (*model.Customer, error) {
	customer, err := s.customerRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, err
	}
	return customer, nil
}

func (s *customerService) Update(id uint, input CustomerProfileInput) (*model.Customer, error) {
	customer, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	customer.Phone = input.Phone
	customer.BirthDate = input.BirthDate
	if input.Membership != "" {
		customer.Membership = input.Membership
	}

	if err := s.customerRepo.Update(customer); err != nil {
		return nil, err
	}
	return customer, nil
}

func (s *customerService) Delete(id uint) error {
	if _, err := s.GetByID(id); err != nil {
		return err
	}

	logger.Info("Deleting customer profile", map[string]interface{}{
		"customer_id": id,
	})
	return s.customerRepo.Delete(id)
}

// GetMe resolves the profile strictly through the caller's user id. Any
// id supplied by the client is ignored by design of the route.
func (s *customerService) GetMe(userID uint) (*model.Customer, error) {
	customer, err := s.customerRepo.FindByUserID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Customer profile missing for user", map[string]interface{}{
				"user_id": userID,
			})
			return nil, ErrCustomerNotProvisioned
		}
		return nil, err
	}
	return customer, nil
}

func (s *customerService) UpdateMe(userID uint, input CustomerProfileInput) (*model.Customer, error) {
	customer, err := s.customerRepo.FindByUserID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCustomerNotProvisioned
		}
		return nil, err
	}

	customer.Phone = input.Phone
	customer.BirthDate = input.BirthDate
	if input.Membership != "" {
		customer.Membership = input.Membership
	}

	if err := s.customerRepo.Update(customer); err != nil {
		return nil, err
	}

	logger.Info("Customer profile updated", map[string]interface{}{
		"customer_id": customer.ID,
		"user_id":     userID,
	})
	return customer, nil
}

func (s *customerService) History(customerID uint) ([]model.Order, error) {
	if _, err := s.customerRepo.FindByID(customerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, err
	}
	return s.orderRepo.FindByCustomerID(customerID)
}
