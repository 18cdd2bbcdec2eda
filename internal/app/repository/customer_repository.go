package repository

import (
	"github.com/storefrontlab/storefront-backend/internal/app/model"
	"github.com/storefrontlab/storefront-backend/pkg/logger"
	"gorm.io/gorm"
)

type CustomerRepository interface {
	Create(customer *model.Customer) error
	Update(customer *model.Customer) error
	FindAll() ([]model.Customer, error)
	FindByID(id uint) (*model.Customer, error)
	FindByUserID(userID uint) (*model.Customer, error)
	Delete(id uint) error

	// WithTx returns a repository bound to the given transaction.
	WithTx(tx *gorm.DB) CustomerRepository
}

type customerRepository struct {
	db *gorm.DB
}

func NewCustomerRepository(db *gorm.DB) CustomerRepository {
	return &customerRepository{db: db}
}

func (r *customerRepository) WithTx(tx *gorm.DB) CustomerRepository {
	return &customerRepository{db: tx}
}

func (r *customerRepository) Create(customer *model.Customer) error {
	logger.Debug("Creating customer in database", map[string]interface{}{
		"user_id": customer.UserID,
	})

	if err := r.db.Create(customer).Error; err != nil {
		logger.Error("Failed to create customer in database", err, map[string]interface{}{
			"user_id": customer.UserID,
		})
		return err
	}

	logger.Debug("Customer created in database", map[string]interface{}{
		"customer_id": customer.ID,
		"user_id":     customer.UserID,
	})
	return nil
}

func (r *customerRepository) Update(customer *model.Customer) error {
	logger.Debug("Updating customer in database", map[string]interface{}{
		"customer_id": customer.ID,
	})

	if err := r.db.Save(customer).Error; err != nil {
		logger.Error("Failed to update customer in database", err, map[string]interface{}{
			"customer_id": customer.ID,
		})
		return err
	}
	return nil
}

func (r *customerRepository) FindAll() ([]model.Customer, error) {
	logger.Debug("Finding all customers")

	var customers []model.Customer
	if err := r.db.Preload("User").
		Order("id ASC").
		Find(&customers).Error; err != nil {
		logger.Error("Failed to find customers", err)
		return nil, err
	}

	logger.Debug("Customers found", map[string]interface{}{
		"count": len(customers),
	})
	return customers, nil
}

func (r *customerRepository) FindByID(id uint) (*model.Customer, error) {
	logger.Debug("Finding customer by ID", map[string]interface{}{
		"customer_id": id,
	})

	var customer model.Customer
	if err := r.db.Preload("User").First(&customer, id).Error; err != nil {
		logger.Error("Failed to find customer", err, map[string]interface{}{
			"customer_id": id,
		})
		return nil, err
	}
	return &customer, nil
}

func (r *customerRepository) FindByUserID(userID uint) (*model.Customer, error) {
	logger.Debug("Finding customer by user ID", map[string]interface{}{
		"user_id": userID,
	})

	var customer model.Customer
	if err := r.db.Preload("User").
		Where("user_id = ?", userID).
		First(&customer).Error; err != nil {
		return nil, err
	}
	return &customer, nil
}

func (r *customerRepository) Delete(id uint) error {
	logger.Debug("Deleting customer", map[string]interface{}{
		"customer_id": id,
	})

	if err := r.db.Delete(&model.Customer{}, id).Error; err != nil {
		logger.Error("Failed to delete customer", err, map[string]interface{}{
			"customer_id": id,
		})
		return err
	}
	return nil
}
