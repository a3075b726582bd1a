package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dukamart/dukamart-backend/internal/testdb"
	"github.com/dukamart/dukamart-backend/pkg/db/models"
	pkgerrors "github.com/dukamart/dukamart-backend/pkg/errors"
)

func TestDeleteSupplier_DetachesProducts(t *testing.T) {
	conn := testdb.Open(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	supplier, err := repo.CreateSupplier(ctx, CreateSupplierInput{Name: "Rift Valley Traders"})
	require.NoError(t, err)

	product := testdb.MustCreateProduct(t, conn, "SKU-SUP")
	require.NoError(t, conn.Model(product).Update("supplier_id", supplier.ID).Error)

	require.NoError(t, repo.DeleteSupplier(ctx, supplier.ID))

	var reloaded models.Product
	require.NoError(t, conn.First(&reloaded, "id = ?", product.ID).Error)
	assert.Nil(t, reloaded.SupplierID)
}

func TestDeleteSupplier_NotFound(t *testing.T) {
	conn := testdb.Open(t)
	repo := NewRepository(conn)

	err := repo.DeleteSupplier(context.Background(), uuid.New())
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.CodeOf(err))
}

func TestUpdateSupplier_PartialFields(t *testing.T) {
	conn := testdb.Open(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	supplier, err := repo.CreateSupplier(ctx, CreateSupplierInput{Name: "Before"})
	require.NoError(t, err)

	name := "After"
	updated, err := repo.UpdateSupplier(ctx, supplier.ID, UpdateSupplierInput{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "After", updated.Name)
}

func TestCreateCategory_DuplicateName(t *testing.T) {
	conn := testdb.Open(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	_, err := repo.CreateCategory(ctx, CreateCategoryInput{Name: "Electronics"})
	require.NoError(t, err)

	_, err = repo.CreateCategory(ctx, CreateCategoryInput{Name: "Electronics"})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeDuplicateKey, pkgerrors.CodeOf(err))
}

func TestCreateCategory_MissingParent(t *testing.T) {
	conn := testdb.Open(t)
	repo := NewRepository(conn)

	missing := uuid.New()
	_, err := repo.CreateCategory(context.Background(), CreateCategoryInput{
		Name:     "Orphan",
		ParentID: &missing,
	})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeInvalidReference, pkgerrors.CodeOf(err))
}

func TestDeleteCategory_DetachesChildrenAndLinks(t *testing.T) {
	conn := testdb.Open(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	parent, err := repo.CreateCategory(ctx, CreateCategoryInput{Name: "Audio"})
	require.NoError(t, err)
	child, err := repo.CreateCategory(ctx, CreateCategoryInput{Name: "Headphones", ParentID: &parent.ID})
	require.NoError(t, err)

	product := testdb.MustCreateProduct(t, conn, "SKU-CAT")
	link := &models.ProductCategory{ProductID: product.ID, CategoryID: parent.ID}
	require.NoError(t, conn.Create(link).Error)

	require.NoError(t, repo.DeleteCategory(ctx, parent.ID))

	var reloaded models.Category
	require.NoError(t, conn.First(&reloaded, "id = ?", child.ID).Error)
	assert.Nil(t, reloaded.ParentID)

	var links int64
	require.NoError(t, conn.Model(&models.ProductCategory{}).
		Where("category_id = ?", parent.ID).Count(&links).Error)
	assert.Zero(t, links)

	// the linked product itself survives
	require.NoError(t, conn.First(&models.Product{}, "id = ?", product.ID).Error)
}

func TestUpdateCategory_ReparentAndDetach(t *testing.T) {
	conn := testdb.Open(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	parent, err := repo.CreateCategory(ctx, CreateCategoryInput{Name: "Home"})
	require.NoError(t, err)
	node, err := repo.CreateCategory(ctx, CreateCategoryInput{Name: "Kitchen"})
	require.NoError(t, err)

	updated, err := repo.UpdateCategory(ctx, node.ID, UpdateCategoryInput{ParentID: &parent.ID})
	require.NoError(t, err)
	require.NotNil(t, updated.ParentID)
	assert.Equal(t, parent.ID, *updated.ParentID)

	root := uuid.Nil
	updated, err = repo.UpdateCategory(ctx, node.ID, UpdateCategoryInput{ParentID: &root})
	require.NoError(t, err)
	assert.Nil(t, updated.ParentID)
}

func TestUpdateCategory_RejectsSelfParent(t *testing.T) {
	conn := testdb.Open(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	node, err := repo.CreateCategory(ctx, CreateCategoryInput{Name: "Loop"})
	require.NoError(t, err)

	_, err = repo.UpdateCategory(ctx, node.ID, UpdateCategoryInput{ParentID: &node.ID})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValueOutOfRange, pkgerrors.CodeOf(err))
}

func TestListRootCategories(t *testing.T) {
	conn := testdb.Open(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	parent, err := repo.CreateCategory(ctx, CreateCategoryInput{Name: "Outdoors"})
	require.NoError(t, err)
	_, err = repo.CreateCategory(ctx, CreateCategoryInput{Name: "Camping", ParentID: &parent.ID})
	require.NoError(t, err)

	roots, err := repo.ListRootCategories(ctx)
	require.NoError(t, err)
	require.Len(t, roots, 1)
	assert.Equal(t, "Outdoors", roots[0].Name)
	require.Len(t, roots[0].Children, 1)
	assert.Equal(t, "Camping", roots[0].Children[0].Name)
}
