// Package dbtest opens throwaway SQLite databases with the service schema
// for repository and service tests.
package dbtest

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/yukselticaret/trendyshop-backend/pkg/db/models"
)

// Open returns an isolated in-memory database with every model migrated.
func Open(t testing.TB) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := conn.DB()
	if err != nil {
		t.Fatalf("sql handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := conn.AutoMigrate(models.All()...); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return conn
}

// MustCreateProduct inserts an active product priced at price.
func MustCreateProduct(t testing.TB, conn *gorm.DB, price string, hasTiers bool, stock int) *models.Product {
	t.Helper()
	product := &models.Product{
		Name:          "Test Ürün",
		Slug:          "test-" + uuid.NewString(),
		Price:         decimal.RequireFromString(price),
		StockQuantity: stock,
		HasPriceTiers: hasTiers,
		IsActive:      true,
	}
	if err := conn.Create(product).Error; err != nil {
		t.Fatalf("create product: %v", err)
	}
	return product
}

// MustCreateTier inserts a tier for productID.
func MustCreateTier(t testing.TB, conn *gorm.DB, productID uuid.UUID, min int, max *int, price string) models.PriceTier {
	t.Helper()
	tier := models.PriceTier{
		ProductID:   productID,
		MinQuantity: min,
		MaxQuantity: max,
		Price:       decimal.RequireFromString(price),
	}
	if err := conn.Create(&tier).Error; err != nil {
		t.Fatalf("create tier: %v", err)
	}
	return tier
}

func IntPtr(v int) *int { return &v }
