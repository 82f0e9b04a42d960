package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Solution is a product line the wizard starts from.
type Solution struct {
	ID          uuid.UUID      `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Code        string         `gorm:"column:code;not null;uniqueIndex" json:"code"`
	Name        string         `gorm:"column:name;not null" json:"name"`
	Description *string        `gorm:"column:description" json:"description,omitempty"`
	Tags        pq.StringArray `gorm:"column:tags;type:text[]" json:"tags,omitempty"`
	CreatedAt   time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Solution) TableName() string { return "solutions" }
