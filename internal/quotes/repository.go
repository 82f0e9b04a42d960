package quotes

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/solvitek/quoteline-backend/pkg/db/models"
)

// Repository wires together quote persistence helpers.
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

// CreateQuote inserts the quote with its items.
func (r *Repository) CreateQuote(ctx context.Context, quote *models.Quote) (*models.Quote, error) {
	if err := r.db.WithContext(ctx).Create(quote).Error; err != nil {
		return nil, err
	}
	return quote, nil
}

// CountForPrefix returns how many quotes already carry the number prefix.
// Used to derive the next sequence number within a year.
func (r *Repository) CountForPrefix(ctx context.Context, prefix string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Quote{}).
		Where("quote_number LIKE ?", prefix+"%").
		Count(&count).
		Error
	return count, err
}

// FindByID loads a quote with its items in position order.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Quote, error) {
	var quote models.Quote
	err := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		First(&quote, "id = ?", id).
		Error
	if err != nil {
		return nil, err
	}
	return &quote, nil
}

// FindByNumber loads a quote by its human-facing number.
func (r *Repository) FindByNumber(ctx context.Context, number string) (*models.Quote, error) {
	var quote models.Quote
	err := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		First(&quote, "quote_number = ?", number).
		Error
	if err != nil {
		return nil, err
	}
	return &quote, nil
}

// ListQuotes returns recent quotes, newest first.
func (r *Repository) ListQuotes(ctx context.Context, limit int) ([]models.Quote, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	var rows []models.Quote
	err := r.db.WithContext(ctx).
		Preload("Customer").
		Order("created_at DESC").
		Limit(limit).
		Find(&rows).
		Error
	return rows, err
}

func (r *Repository) nextNumber(ctx context.Context, prefix string, year int) (string, error) {
	yearPrefix := fmt.Sprintf("%s-%d-", prefix, year)
	count, err := r.CountForPrefix(ctx, yearPrefix)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s%04d", yearPrefix, count+1), nil
}
