package review

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dukamart/dukamart-backend/internal/testdb"
	pkgerrors "github.com/dukamart/dukamart-backend/pkg/errors"
)

func TestCreateReview_BoundsAndRefs(t *testing.T) {
	conn := testdb.Open(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	product := testdb.MustCreateProduct(t, conn, "SKU-REV1")
	customer := testdb.MustCreateCustomer(t, conn, "rev@example.com")

	created, err := repo.CreateReview(ctx, CreateReviewInput{
		ProductID:  product.ID,
		CustomerID: &customer.ID,
		Rating:     5,
	})
	require.NoError(t, err)
	assert.Equal(t, 5, created.Rating)

	for _, rating := range []int{0, 6, -1} {
		_, err := repo.CreateReview(ctx, CreateReviewInput{ProductID: product.ID, Rating: rating})
		require.Error(t, err, "rating %d", rating)
		assert.Equal(t, pkgerrors.CodeValueOutOfRange, pkgerrors.CodeOf(err))
	}

	_, err = repo.CreateReview(ctx, CreateReviewInput{ProductID: uuid.New(), Rating: 3})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeInvalidReference, pkgerrors.CodeOf(err))
}

func TestCreateReview_AnonymousAuthor(t *testing.T) {
	conn := testdb.Open(t)
	repo := NewRepository(conn)

	product := testdb.MustCreateProduct(t, conn, "SKU-ANON")
	created, err := repo.CreateReview(context.Background(), CreateReviewInput{
		ProductID: product.ID,
		Rating:    2,
	})
	require.NoError(t, err)
	assert.Nil(t, created.CustomerID)
}

func TestUpdateReview(t *testing.T) {
	conn := testdb.Open(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	product := testdb.MustCreateProduct(t, conn, "SKU-UPD")
	created, err := repo.CreateReview(ctx, CreateReviewInput{ProductID: product.ID, Rating: 2})
	require.NoError(t, err)

	rating := 4
	comment := "better than expected"
	updated, err := repo.UpdateReview(ctx, created.ID, UpdateReviewInput{Rating: &rating, Comment: &comment})
	require.NoError(t, err)
	assert.Equal(t, 4, updated.Rating)
	require.NotNil(t, updated.Comment)
	assert.Equal(t, comment, *updated.Comment)

	bad := 9
	_, err = repo.UpdateReview(ctx, created.ID, UpdateReviewInput{Rating: &bad})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValueOutOfRange, pkgerrors.CodeOf(err))
}

func TestListForProduct_AndAverage(t *testing.T) {
	conn := testdb.Open(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	product := testdb.MustCreateProduct(t, conn, "SKU-AVG")
	other := testdb.MustCreateProduct(t, conn, "SKU-OTHER")

	for _, rating := range []int{2, 4} {
		_, err := repo.CreateReview(ctx, CreateReviewInput{ProductID: product.ID, Rating: rating})
		require.NoError(t, err)
	}
	_, err := repo.CreateReview(ctx, CreateReviewInput{ProductID: other.ID, Rating: 5})
	require.NoError(t, err)

	reviews, err := repo.ListForProduct(ctx, product.ID)
	require.NoError(t, err)
	assert.Len(t, reviews, 2)

	avg, err := repo.AverageRating(ctx, product.ID)
	require.NoError(t, err)
	assert.InDelta(t, 3.0, avg, 0.001)

	empty := testdb.MustCreateProduct(t, conn, "SKU-EMPTY")
	avg, err = repo.AverageRating(ctx, empty.ID)
	require.NoError(t, err)
	assert.Zero(t, avg)
}

func TestDeleteReview(t *testing.T) {
	conn := testdb.Open(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	product := testdb.MustCreateProduct(t, conn, "SKU-DELREV")
	created, err := repo.CreateReview(ctx, CreateReviewInput{ProductID: product.ID, Rating: 1})
	require.NoError(t, err)

	require.NoError(t, repo.DeleteReview(ctx, created.ID))

	err = repo.DeleteReview(ctx, created.ID)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.CodeOf(err))
}
