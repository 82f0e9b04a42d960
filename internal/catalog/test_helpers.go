package catalog

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/solvitek/quoteline-backend/pkg/db/models"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open("file::memory:?cache=shared&_pragma=foreign_keys(1)"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := conn.AutoMigrate(&models.Solution{}, &models.Product{}); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	t.Cleanup(func() {
		conn.Exec("DELETE FROM products")
		conn.Exec("DELETE FROM solutions")
	})
	return conn
}

func mustCreateTestSolution(t *testing.T, tx *gorm.DB, name string) *models.Solution {
	t.Helper()
	solution := &models.Solution{
		ID:   uuid.New(),
		Name: name,
	}
	if err := tx.Create(solution).Error; err != nil {
		t.Fatalf("create solution: %v", err)
	}
	return solution
}

func mustCreateTestProduct(t *testing.T, tx *gorm.DB, solutionID *uuid.UUID, name string, active bool) *models.Product {
	t.Helper()
	product := &models.Product{
		ID:            uuid.New(),
		SolutionID:    solutionID,
		SKU:           fmt.Sprintf("SKU-%s", uuid.NewString()[:8]),
		Name:          name,
		GrossPrice:    decimal.NewFromInt(100),
		DiscountGroup: "standard",
		IsActive:      active,
	}
	if err := tx.Create(product).Error; err != nil {
		t.Fatalf("create product: %v", err)
	}
	return product
}
