package repositories_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"catalogo/internal/models"
	"catalogo/internal/repositories"
)

func TestInMemoryProductRepository_AssignsSequentialIDs(t *testing.T) {
	repo := repositories.NewInMemoryProductRepository()

	first := newProduct("a", "A", 1)
	second := newProduct("b", "B", 1)
	assert.NoError(t, repo.Create(first))
	assert.NoError(t, repo.Create(second))

	assert.Equal(t, int64(1), first.ID)
	assert.Equal(t, int64(2), second.ID)
}

func TestInMemoryProductRepository_DuplicateBarcode(t *testing.T) {
	repo := repositories.NewInMemoryProductRepository()

	assert.NoError(t, repo.Create(newProduct("123", "Cola", 1)))
	assert.ErrorIs(t, repo.Create(newProduct("123", "Other", 1)), repositories.ErrDuplicateBarcode)

	other := newProduct("456", "Other", 1)
	assert.NoError(t, repo.Create(other))
	other.Barcode = "123"
	assert.ErrorIs(t, repo.Update(other), repositories.ErrDuplicateBarcode)
}

func TestInMemoryProductRepository_Pagination(t *testing.T) {
	repo := repositories.NewInMemoryProductRepository()
	for i := 0; i < 5; i++ {
		assert.NoError(t, repo.Create(newProduct(fmt.Sprintf("bar-%d", i), fmt.Sprintf("Product %d", i), 1)))
	}

	products, total, err := repo.GetPage(1, 2)
	assert.NoError(t, err)
	assert.Equal(t, int64(5), total)
	assert.Len(t, products, 2)
	assert.Equal(t, "Product 2", products[0].Description)

	// A page past the end is empty but keeps the total.
	products, total, err = repo.GetPage(9, 2)
	assert.NoError(t, err)
	assert.Equal(t, int64(5), total)
	assert.Empty(t, products)
}

func TestInMemoryProductRepository_ExistsByGroupID(t *testing.T) {
	repo := repositories.NewInMemoryProductRepository()
	assert.NoError(t, repo.Create(newProduct("123", "Cola", 7)))

	exists, err := repo.ExistsByGroupID(7)
	assert.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsByGroupID(8)
	assert.NoError(t, err)
	assert.False(t, exists)
}

func TestInMemoryGroupRepository_CRUD(t *testing.T) {
	repo := repositories.NewInMemoryGroupRepository()

	group := &models.ProductGroup{Description: "Beverages", Status: models.StatusActive}
	assert.NoError(t, repo.Create(group))
	assert.Equal(t, 1, group.ID)

	fetched, err := repo.GetByID(1)
	assert.NoError(t, err)
	assert.Equal(t, "Beverages", fetched.Description)

	group.Description = "Cold Beverages"
	assert.NoError(t, repo.Update(group))

	assert.NoError(t, repo.Delete(1))
	assert.ErrorIs(t, repo.Delete(1), repositories.ErrGroupNotFound)
	_, err = repo.GetByID(1)
	assert.ErrorIs(t, err, repositories.ErrGroupNotFound)
}
