package repositories

import (
	"catalogo/internal/models"
)

// GroupRepository defines the interface for product-group data access.
type GroupRepository interface {
	GetAll() ([]models.ProductGroup, error)
	GetByID(id int) (*models.ProductGroup, error)
	ExistsByID(id int) (bool, error)
	Create(group *models.ProductGroup) error
	Update(group *models.ProductGroup) error
	Delete(id int) error
}
