package customers

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	pkgerrors "github.com/solvitek/quoteline-backend/pkg/errors"
)

// Service exposes read access to customers and their discount groups.
type Service interface {
	ListCustomers(ctx context.Context, query string) ([]CustomerDTO, error)
	GetCustomer(ctx context.Context, id uuid.UUID) (*CustomerDTO, error)
	ListGroups(ctx context.Context) ([]GroupDTO, error)
}

type service struct {
	repo *Repository
}

// NewService constructs a customer service instance.
func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("customer repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) ListCustomers(ctx context.Context, query string) ([]CustomerDTO, error) {
	rows, err := s.repo.ListCustomers(ctx, query)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list customers")
	}
	out := make([]CustomerDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, toCustomerDTO(row))
	}
	return out, nil
}

func (s *service) GetCustomer(ctx context.Context, id uuid.UUID) (*CustomerDTO, error) {
	row, err := s.repo.FindCustomerByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "customer not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load customer")
	}
	dto := toCustomerDTO(*row)
	return &dto, nil
}

func (s *service) ListGroups(ctx context.Context) ([]GroupDTO, error) {
	rows, err := s.repo.ListGroups(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list customer groups")
	}
	out := make([]GroupDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, toGroupDTO(row))
	}
	return out, nil
}
