package catalog

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/solvitek/quoteline-backend/pkg/db/models"
)

// Repository wires together catalog persistence helpers.
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

// ListSolutions returns all solutions ordered by name.
func (r *Repository) ListSolutions(ctx context.Context) ([]models.Solution, error) {
	var rows []models.Solution
	err := r.db.WithContext(ctx).
		Order("name ASC").
		Find(&rows).
		Error
	return rows, err
}

// FindSolutionByID loads a single solution.
func (r *Repository) FindSolutionByID(ctx context.Context, id uuid.UUID) (*models.Solution, error) {
	var solution models.Solution
	if err := r.db.WithContext(ctx).First(&solution, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &solution, nil
}

// ProductListFilters narrows the product catalog query.
type ProductListFilters struct {
	SolutionID *uuid.UUID
	Category   *string
	Query      string
	ActiveOnly bool
}

// ListProducts returns catalog products matching the filters, ordered by name.
func (r *Repository) ListProducts(ctx context.Context, filters ProductListFilters) ([]models.Product, error) {
	qb := r.db.WithContext(ctx).Model(&models.Product{})

	if filters.SolutionID != nil {
		qb = qb.Where("solution_id = ?", *filters.SolutionID)
	}
	if filters.Category != nil {
		qb = qb.Where("category = ?", *filters.Category)
	}
	if filters.ActiveOnly {
		qb = qb.Where("is_active = ?", true)
	}
	if search := strings.TrimSpace(filters.Query); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		qb = qb.Where("(LOWER(name) LIKE ? OR LOWER(sku) LIKE ?)", pattern, pattern)
	}

	var rows []models.Product
	err := qb.Order("name ASC").Find(&rows).Error
	return rows, err
}

// FindProductByID loads the product without associations.
func (r *Repository) FindProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}
