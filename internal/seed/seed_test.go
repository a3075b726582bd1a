package seed

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dukamart/dukamart-backend/internal/testdb"
	"github.com/dukamart/dukamart-backend/pkg/db/models"
	"github.com/dukamart/dukamart-backend/pkg/logger"
)

func TestSeeder_IsIdempotent(t *testing.T) {
	conn := testdb.Open(t)
	seeder := New(conn, logger.New(logger.Options{ServiceName: "seed-test"}))
	ctx := context.Background()

	require.NoError(t, seeder.Run(ctx))
	require.NoError(t, seeder.Run(ctx))

	counts := map[string]int64{}
	for name, model := range map[string]any{
		"customers":          &models.Customer{},
		"profiles":           &models.Profile{},
		"addresses":          &models.Address{},
		"suppliers":          &models.Supplier{},
		"categories":         &models.Category{},
		"products":           &models.Product{},
		"inventory_items":    &models.Inventory{},
		"product_categories": &models.ProductCategory{},
		"orders":             &models.Order{},
		"order_items":        &models.OrderItem{},
		"payments":           &models.Payment{},
		"coupons":            &models.Coupon{},
		"order_coupons":      &models.OrderCoupon{},
		"reviews":            &models.Review{},
	} {
		var count int64
		require.NoError(t, conn.Model(model).Count(&count).Error, name)
		counts[name] = count
	}

	assert.Equal(t, int64(1), counts["customers"])
	assert.Equal(t, int64(2), counts["categories"])
	assert.Equal(t, int64(2), counts["products"])
	assert.Equal(t, int64(2), counts["inventory_items"])
	assert.Equal(t, int64(2), counts["order_items"])
	assert.Equal(t, int64(1), counts["orders"])
	assert.Equal(t, int64(1), counts["order_coupons"])
	assert.Equal(t, int64(1), counts["reviews"])
}

func TestSeeder_SummaryReadable(t *testing.T) {
	conn := testdb.Open(t)
	seeder := New(conn, logger.New(logger.Options{ServiceName: "seed-test"}))

	require.NoError(t, seeder.Run(context.Background()))

	var summary models.OrderSummary
	require.NoError(t, conn.First(&summary, "customer_name = ?", "Alice Wanjiru").Error)
	assert.Equal(t, 2, summary.ItemCount)
}
