package discounts

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/solvitek/quoteline-backend/pkg/db/models"
)

// Repository wires together discount matrix persistence helpers.
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

// ListEntriesForGroup returns the matrix rows for one customer group.
func (r *Repository) ListEntriesForGroup(ctx context.Context, customerGroupID uuid.UUID) ([]models.DiscountMatrixEntry, error) {
	var rows []models.DiscountMatrixEntry
	err := r.db.WithContext(ctx).
		Where("customer_group_id = ?", customerGroupID).
		Order("product_discount_group ASC").
		Find(&rows).
		Error
	return rows, err
}

// FindGroupByID loads the customer group carrying the flat fallback percent.
func (r *Repository) FindGroupByID(ctx context.Context, id uuid.UUID) (*models.CustomerGroup, error) {
	var group models.CustomerGroup
	if err := r.db.WithContext(ctx).First(&group, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &group, nil
}
