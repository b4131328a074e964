package models_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"catalogo/internal/models"
)

func TestAttachProduct_KeepsBothSidesInSync(t *testing.T) {
	group := &models.ProductGroup{ID: 7, Description: "Beverages"}
	product := &models.Product{ID: 1, Barcode: "123"}

	group.AttachProduct(product)

	assert.Len(t, group.Products, 1)
	assert.Same(t, product, group.Products[0])
	assert.Same(t, group, product.Group)
	assert.Equal(t, 7, product.GroupID)
}

func TestDetachProduct_ClearsBothSides(t *testing.T) {
	group := &models.ProductGroup{ID: 7, Description: "Beverages"}
	product := &models.Product{ID: 1, Barcode: "123"}
	group.AttachProduct(product)

	group.DetachProduct(product)

	assert.Empty(t, group.Products)
	assert.Nil(t, product.Group)
	assert.Equal(t, 0, product.GroupID)
}

func TestDetachProduct_NonMemberIsNoOp(t *testing.T) {
	owner := &models.ProductGroup{ID: 1, Description: "Beverages"}
	other := &models.ProductGroup{ID: 2, Description: "Snacks"}
	product := &models.Product{ID: 1, Barcode: "123"}
	owner.AttachProduct(product)

	other.DetachProduct(product)

	// Both sides unchanged: the product still belongs to its owner.
	assert.Len(t, owner.Products, 1)
	assert.Empty(t, other.Products)
	assert.Same(t, owner, product.Group)
	assert.Equal(t, 1, product.GroupID)
}

func TestAttachProduct_NilIsNoOp(t *testing.T) {
	group := &models.ProductGroup{ID: 1}
	group.AttachProduct(nil)
	group.DetachProduct(nil)
	assert.Empty(t, group.Products)
}
