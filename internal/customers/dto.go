package customers

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/solvitek/quoteline-backend/pkg/db/models"
)

// GroupDTO is the API shape of a customer group.
type GroupDTO struct {
	ID                 uuid.UUID        `json:"id"`
	Code               string           `json:"code"`
	Name               string           `json:"name"`
	DiscountPercentage *decimal.Decimal `json:"discount_percentage,omitempty"`
}

// CustomerDTO is the API shape of a customer.
type CustomerDTO struct {
	ID            uuid.UUID `json:"id"`
	Account       string    `json:"account"`
	ContactName   *string   `json:"contact_name,omitempty"`
	Email         *string   `json:"email,omitempty"`
	Phone         *string   `json:"phone,omitempty"`
	DiscountGroup *GroupDTO `json:"discount_group,omitempty"`
}

func toGroupDTO(g models.CustomerGroup) GroupDTO {
	return GroupDTO{
		ID:                 g.ID,
		Code:               g.Code,
		Name:               g.Name,
		DiscountPercentage: g.DiscountPercentage,
	}
}

func toCustomerDTO(c models.Customer) CustomerDTO {
	dto := CustomerDTO{
		ID:          c.ID,
		Account:     c.Account,
		ContactName: c.ContactName,
		Email:       c.Email,
		Phone:       c.Phone,
	}
	if c.DiscountGroup != nil {
		group := toGroupDTO(*c.DiscountGroup)
		dto.DiscountGroup = &group
	}
	return dto
}
