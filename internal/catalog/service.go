package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	pkgerrors "github.com/solvitek/quoteline-backend/pkg/errors"
)

// Service exposes read access to the solution and product catalog.
type Service interface {
	ListSolutions(ctx context.Context) ([]SolutionDTO, error)
	GetSolution(ctx context.Context, id uuid.UUID) (*SolutionDTO, error)
	ListProducts(ctx context.Context, filters ProductListFilters) ([]ProductDTO, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*ProductDTO, error)
}

type service struct {
	repo *Repository
}

// NewService constructs a catalog service instance.
func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) ListSolutions(ctx context.Context) ([]SolutionDTO, error) {
	rows, err := s.repo.ListSolutions(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list solutions")
	}
	out := make([]SolutionDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, toSolutionDTO(row))
	}
	return out, nil
}

func (s *service) GetSolution(ctx context.Context, id uuid.UUID) (*SolutionDTO, error) {
	row, err := s.repo.FindSolutionByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "solution not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load solution")
	}
	dto := toSolutionDTO(*row)
	return &dto, nil
}

func (s *service) ListProducts(ctx context.Context, filters ProductListFilters) ([]ProductDTO, error) {
	rows, err := s.repo.ListProducts(ctx, filters)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products")
	}
	out := make([]ProductDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, toProductDTO(row))
	}
	return out, nil
}

func (s *service) GetProduct(ctx context.Context, id uuid.UUID) (*ProductDTO, error) {
	row, err := s.repo.FindProductByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	dto := toProductDTO(*row)
	return &dto, nil
}
