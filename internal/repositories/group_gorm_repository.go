package repositories

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"catalogo/internal/models"
)

// GORMGroupRepository is a GORM implementation of GroupRepository.
type GORMGroupRepository struct {
	db *gorm.DB
}

// NewGORMGroupRepository creates a new instance of GORMGroupRepository.
func NewGORMGroupRepository(db *gorm.DB) *GORMGroupRepository {
	return &GORMGroupRepository{
		db: db,
	}
}

// GetAll retrieves every product group ordered by description.
func (r *GORMGroupRepository) GetAll() ([]models.ProductGroup, error) {
	var groups []models.ProductGroup
	if err := r.db.Order("description asc").Find(&groups).Error; err != nil {
		return nil, fmt.Errorf("failed to get all product groups: %w", err)
	}
	return groups, nil
}

// GetByID retrieves a single product group by its ID.
func (r *GORMGroupRepository) GetByID(id int) (*models.ProductGroup, error) {
	var group models.ProductGroup
	if err := r.db.First(&group, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: id=%d", ErrGroupNotFound, id)
		}
		return nil, fmt.Errorf("failed to get product group by ID %d: %w", id, err)
	}
	return &group, nil
}

// ExistsByID reports whether a product group with the given ID exists.
func (r *GORMGroupRepository) ExistsByID(id int) (bool, error) {
	var count int64
	if err := r.db.Model(&models.ProductGroup{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check product group %d: %w", id, err)
	}
	return count > 0, nil
}

// Create inserts a new product group, letting the database assign the ID.
func (r *GORMGroupRepository) Create(group *models.ProductGroup) error {
	if err := r.db.Create(group).Error; err != nil {
		return fmt.Errorf("failed to create product group: %w", err)
	}
	return nil
}

// Update saves all fields of an existing product group.
func (r *GORMGroupRepository) Update(group *models.ProductGroup) error {
	res := r.db.Model(&models.ProductGroup{}).Where("id = ?", group.ID).
		Updates(map[string]interface{}{
			"description": group.Description,
			"status":      group.Status,
		})
	if res.Error != nil {
		return fmt.Errorf("failed to update product group: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: id=%d", ErrGroupNotFound, group.ID)
	}
	return nil
}

// Delete removes a product group by its ID. The foreign-key constraint on
// products (ON DELETE RESTRICT) backstops the service-level guard against
// a product being inserted between the existence check and the delete.
func (r *GORMGroupRepository) Delete(id int) error {
	res := r.db.Delete(&models.ProductGroup{}, "id = ?", id)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrForeignKeyViolated) {
			return fmt.Errorf("%w: id=%d", ErrGroupHasProducts, id)
		}
		return fmt.Errorf("failed to delete product group: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: id=%d", ErrGroupNotFound, id)
	}
	return nil
}
