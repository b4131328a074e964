package repositories

import (
	"catalogo/internal/models"
)

// ProductRepository defines the interface for product data access.
// Page numbers are zero-based; size is the already-clamped page size.
type ProductRepository interface {
	GetAll() ([]models.Product, error)
	GetAllByGroupID(groupID int) ([]models.Product, error)
	GetPage(page, size int) ([]models.Product, int64, error)
	GetPageByGroupID(groupID, page, size int) ([]models.Product, int64, error)
	GetByID(id int64) (*models.Product, error)
	GetByBarcode(barcode string) (*models.Product, error)
	ExistsByGroupID(groupID int) (bool, error)
	Create(product *models.Product) error
	Update(product *models.Product) error
	Delete(id int64) error
}
