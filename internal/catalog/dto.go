package catalog

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/solvitek/quoteline-backend/pkg/db/models"
)

// SolutionDTO is the API shape of a solution.
type SolutionDTO struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	Tags        []string  `json:"tags,omitempty"`
}

// ProductDTO is the API shape of a catalog product.
type ProductDTO struct {
	ID            uuid.UUID       `json:"id"`
	SolutionID    *uuid.UUID      `json:"solution_id,omitempty"`
	SKU           string          `json:"sku"`
	Name          string          `json:"name"`
	GrossPrice    decimal.Decimal `json:"gross_price"`
	DiscountGroup string          `json:"discount_group"`
	Category      string          `json:"category,omitempty"`
	Tags          []string        `json:"tags,omitempty"`
	IsActive      bool            `json:"is_active"`
}

func toSolutionDTO(s models.Solution) SolutionDTO {
	return SolutionDTO{
		ID:          s.ID,
		Name:        s.Name,
		Description: s.Description,
		Tags:        s.Tags,
	}
}

func toProductDTO(p models.Product) ProductDTO {
	return ProductDTO{
		ID:            p.ID,
		SolutionID:    p.SolutionID,
		SKU:           p.SKU,
		Name:          p.Name,
		GrossPrice:    p.GrossPrice,
		DiscountGroup: p.DiscountGroup,
		Category:      p.Category,
		Tags:          p.Tags,
		IsActive:      p.IsActive,
	}
}
