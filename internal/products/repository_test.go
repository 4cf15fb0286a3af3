package product

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yukselticaret/trendyshop-backend/pkg/db"
	"github.com/yukselticaret/trendyshop-backend/pkg/db/dbtest"
	"github.com/yukselticaret/trendyshop-backend/pkg/db/models"
)

func TestRepositoryFindByIDPreloadsCategory(t *testing.T) {
	conn := dbtest.Open(t)
	repo := NewRepository(conn)

	category := &models.Category{Name: "Giyim", Slug: "giyim", IsActive: true}
	require.NoError(t, conn.Create(category).Error)
	product := dbtest.MustCreateProduct(t, conn, "149.90", false, 5)
	require.NoError(t, conn.Model(product).Update("category_id", category.ID).Error)

	got, err := repo.FindByID(context.Background(), product.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Category)
	assert.Equal(t, "giyim", got.Category.Slug)
	assert.Equal(t, "149.9", got.Price.String())
}

func TestRepositoryFindByIDSkipsInactive(t *testing.T) {
	conn := dbtest.Open(t)
	repo := NewRepository(conn)

	product := dbtest.MustCreateProduct(t, conn, "10", false, 5)
	require.NoError(t, conn.Model(product).Update("is_active", false).Error)

	_, err := repo.FindByID(context.Background(), product.ID)
	assert.True(t, db.IsNotFound(err))

	_, err = repo.FindByID(context.Background(), uuid.New())
	assert.True(t, db.IsNotFound(err))
}
