package product

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dukamart/dukamart-backend/internal/testdb"
	"github.com/dukamart/dukamart-backend/pkg/db/models"
	pkgerrors "github.com/dukamart/dukamart-backend/pkg/errors"
)

func TestCreateProduct_WithInventoryAndCategories(t *testing.T) {
	conn := testdb.Open(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	category := &models.Category{ID: uuid.New(), Name: "Phones"}
	require.NoError(t, conn.Create(category).Error)

	created, err := repo.CreateProduct(ctx, CreateProductInput{
		SKU:          "SKU001",
		Name:         "Feature Phone",
		Price:        decimal.RequireFromString("2490.00"),
		Quantity:     40,
		ReorderLevel: 5,
		CategoryIDs:  []uuid.UUID{category.ID},
	})
	require.NoError(t, err)

	loaded, err := repo.GetProduct(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, loaded.Inventory)
	assert.Equal(t, 40, loaded.Inventory.Quantity)
	assert.Len(t, loaded.Categories, 1)
	assert.True(t, loaded.IsActive)
}

func TestCreateProduct_NegativePriceAndWeight(t *testing.T) {
	conn := testdb.Open(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	_, err := repo.CreateProduct(ctx, CreateProductInput{
		SKU:   "SKU-NEGPRICE",
		Name:  "Priced Below Zero",
		Price: decimal.NewFromInt(-1),
	})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValueOutOfRange, pkgerrors.CodeOf(err))
	assert.True(t, pkgerrors.CodeOf(err).IsConstraintViolation())

	_, err = repo.CreateProduct(ctx, CreateProductInput{
		SKU:    "SKU-NEGWEIGHT",
		Name:   "Lighter Than Nothing",
		Price:  decimal.NewFromInt(10),
		Weight: decimal.RequireFromString("-0.5"),
	})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValueOutOfRange, pkgerrors.CodeOf(err))

	// neither rejected insert may leave a product behind
	var count int64
	require.NoError(t, conn.Model(&models.Product{}).
		Where("sku IN ?", []string{"SKU-NEGPRICE", "SKU-NEGWEIGHT"}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestCreateProduct_DuplicateSKU(t *testing.T) {
	conn := testdb.Open(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	input := CreateProductInput{SKU: "SKU-DUP", Name: "One", Price: decimal.NewFromInt(10)}
	_, err := repo.CreateProduct(ctx, input)
	require.NoError(t, err)

	input.Name = "Two"
	_, err = repo.CreateProduct(ctx, input)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeDuplicateKey, pkgerrors.CodeOf(err))

	// the failed transaction must not leave a second inventory row behind
	var count int64
	require.NoError(t, conn.Model(&models.Inventory{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestDeleteProduct_BlockedByOrderItems(t *testing.T) {
	conn := testdb.Open(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	customer := testdb.MustCreateCustomer(t, conn, "buyer@example.com")
	order := testdb.MustCreateOrder(t, conn, customer.ID)
	product := testdb.MustCreateProduct(t, conn, "SKU-HELD")
	testdb.MustCreateOrderItem(t, conn, order.ID, product.ID, 1, decimal.NewFromInt(100))

	err := repo.DeleteProduct(ctx, product.ID)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeDeleteBlocked, pkgerrors.CodeOf(err))
}

func TestDeleteProduct_CascadesOwnedRows(t *testing.T) {
	conn := testdb.Open(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	product := testdb.MustCreateProduct(t, conn, "SKU-GONE")
	category := &models.Category{ID: uuid.New(), Name: "Clearance"}
	require.NoError(t, conn.Create(category).Error)
	require.NoError(t, repo.AssignCategory(ctx, product.ID, category.ID))
	review := &models.Review{ID: uuid.New(), ProductID: product.ID, Rating: 3}
	require.NoError(t, conn.Create(review).Error)

	require.NoError(t, repo.DeleteProduct(ctx, product.ID))

	var inventories, links, reviews int64
	require.NoError(t, conn.Model(&models.Inventory{}).Where("product_id = ?", product.ID).Count(&inventories).Error)
	require.NoError(t, conn.Model(&models.ProductCategory{}).Where("product_id = ?", product.ID).Count(&links).Error)
	require.NoError(t, conn.Model(&models.Review{}).Where("product_id = ?", product.ID).Count(&reviews).Error)
	assert.Zero(t, inventories)
	assert.Zero(t, links)
	assert.Zero(t, reviews)

	// the category itself survives
	require.NoError(t, conn.First(&models.Category{}, "id = ?", category.ID).Error)
}

func TestAdjustInventory_AtomicDelta(t *testing.T) {
	conn := testdb.Open(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	product := testdb.MustCreateProduct(t, conn, "SKU-ADJ")

	inventory, err := repo.AdjustInventory(ctx, product.ID, 7)
	require.NoError(t, err)
	assert.Equal(t, 17, inventory.Quantity) // fixture seeds 10

	inventory, err = repo.AdjustInventory(ctx, product.ID, -17)
	require.NoError(t, err)
	assert.Equal(t, 0, inventory.Quantity)
}

func TestAdjustInventory_RejectsNegativeStock(t *testing.T) {
	conn := testdb.Open(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	product := testdb.MustCreateProduct(t, conn, "SKU-NEG")

	_, err := repo.AdjustInventory(ctx, product.ID, -1000)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValueOutOfRange, pkgerrors.CodeOf(err))

	// quantity untouched
	var inventory models.Inventory
	require.NoError(t, conn.First(&inventory, "product_id = ?", product.ID).Error)
	assert.Equal(t, 10, inventory.Quantity)
}

func TestRestockInventory_StampsRestockTime(t *testing.T) {
	conn := testdb.Open(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	product := testdb.MustCreateProduct(t, conn, "SKU-RESTOCK")

	inventory, err := repo.RestockInventory(ctx, product.ID, 250)
	require.NoError(t, err)
	assert.Equal(t, 250, inventory.Quantity)
	assert.NotNil(t, inventory.LastRestockAt)
}

func TestAssignCategory_DuplicatePairAndMissingRefs(t *testing.T) {
	conn := testdb.Open(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	product := testdb.MustCreateProduct(t, conn, "SKU-LINK")
	category := &models.Category{ID: uuid.New(), Name: "Linked"}
	require.NoError(t, conn.Create(category).Error)

	require.NoError(t, repo.AssignCategory(ctx, product.ID, category.ID))

	err := repo.AssignCategory(ctx, product.ID, category.ID)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeDuplicateKey, pkgerrors.CodeOf(err))

	err = repo.AssignCategory(ctx, product.ID, uuid.New())
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeInvalidReference, pkgerrors.CodeOf(err))
}

func TestUnassignCategory(t *testing.T) {
	conn := testdb.Open(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	product := testdb.MustCreateProduct(t, conn, "SKU-UNLINK")
	category := &models.Category{ID: uuid.New(), Name: "Unlinked"}
	require.NoError(t, conn.Create(category).Error)
	require.NoError(t, repo.AssignCategory(ctx, product.ID, category.ID))

	require.NoError(t, repo.UnassignCategory(ctx, product.ID, category.ID))

	err := repo.UnassignCategory(ctx, product.ID, category.ID)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.CodeOf(err))
}

func TestListByCategory(t *testing.T) {
	conn := testdb.Open(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	category := &models.Category{ID: uuid.New(), Name: "Listed"}
	require.NoError(t, conn.Create(category).Error)

	inCategory := testdb.MustCreateProduct(t, conn, "SKU-IN")
	testdb.MustCreateProduct(t, conn, "SKU-OUT")
	require.NoError(t, repo.AssignCategory(ctx, inCategory.ID, category.ID))

	products, err := repo.ListByCategory(ctx, category.ID)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "SKU-IN", products[0].SKU)
	require.NotNil(t, products[0].Inventory)
}

func TestListBelowReorderLevel(t *testing.T) {
	conn := testdb.Open(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	low := testdb.MustCreateProduct(t, conn, "SKU-LOW")
	require.NoError(t, conn.Model(&models.Inventory{}).
		Where("product_id = ?", low.ID).
		Updates(map[string]any{"quantity": 2, "reorder_level": 5}).Error)
	testdb.MustCreateProduct(t, conn, "SKU-OK")

	products, err := repo.ListBelowReorderLevel(ctx)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "SKU-LOW", products[0].SKU)
}
