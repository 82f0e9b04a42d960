package customers

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/solvitek/quoteline-backend/pkg/db/models"
)

// Repository wires together customer persistence helpers.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// ListCustomers returns customers matching the optional search term, ordered by account.
func (r *Repository) ListCustomers(ctx context.Context, query string) ([]models.Customer, error) {
	qb := r.db.WithContext(ctx).Model(&models.Customer{}).Preload("DiscountGroup")
	if search := strings.TrimSpace(query); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		qb = qb.Where("(LOWER(account) LIKE ? OR LOWER(contact_name) LIKE ? OR LOWER(email) LIKE ?)", pattern, pattern, pattern)
	}

	var rows []models.Customer
	err := qb.Order("account ASC").Find(&rows).Error
	return rows, err
}

// FindCustomerByID loads a customer with its discount group.
func (r *Repository) FindCustomerByID(ctx context.Context, id uuid.UUID) (*models.Customer, error) {
	var customer models.Customer
	err := r.db.WithContext(ctx).
		Preload("DiscountGroup").
		First(&customer, "id = ?", id).
		Error
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

// ListGroups returns all customer groups ordered by name.
func (r *Repository) ListGroups(ctx context.Context) ([]models.CustomerGroup, error) {
	var rows []models.CustomerGroup
	err := r.db.WithContext(ctx).
		Order("name ASC").
		Find(&rows).
		Error
	return rows, err
}

// FindGroupByID loads a single customer group.
func (r *Repository) FindGroupByID(ctx context.Context, id uuid.UUID) (*models.CustomerGroup, error) {
	var group models.CustomerGroup
	if err := r.db.WithContext(ctx).First(&group, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &group, nil
}
