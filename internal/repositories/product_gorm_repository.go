package repositories

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"catalogo/internal/models"
)

// GORMProductRepository is a GORM implementation of ProductRepository.
// The *gorm.DB must be opened with TranslateError so unique and foreign-key
// violations surface as gorm.ErrDuplicatedKey / gorm.ErrForeignKeyViolated.
type GORMProductRepository struct {
	db *gorm.DB
}

// NewGORMProductRepository creates a new instance of GORMProductRepository.
func NewGORMProductRepository(db *gorm.DB) *GORMProductRepository {
	return &GORMProductRepository{
		db: db,
	}
}

// GetAll retrieves every product ordered by description.
func (r *GORMProductRepository) GetAll() ([]models.Product, error) {
	var products []models.Product
	if err := r.db.Order("description asc").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to get all products: %w", err)
	}
	return products, nil
}

// GetAllByGroupID retrieves every product belonging to the given group.
func (r *GORMProductRepository) GetAllByGroupID(groupID int) ([]models.Product, error) {
	var products []models.Product
	if err := r.db.Where("group_id = ?", groupID).Order("description asc").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to get products for group %d: %w", groupID, err)
	}
	return products, nil
}

// GetPage retrieves one page of products plus the total row count.
func (r *GORMProductRepository) GetPage(page, size int) ([]models.Product, int64, error) {
	return r.pageQuery(r.db.Model(&models.Product{}), page, size)
}

// GetPageByGroupID retrieves one page of products belonging to the given group.
func (r *GORMProductRepository) GetPageByGroupID(groupID, page, size int) ([]models.Product, int64, error) {
	return r.pageQuery(r.db.Model(&models.Product{}).Where("group_id = ?", groupID), page, size)
}

func (r *GORMProductRepository) pageQuery(q *gorm.DB, page, size int) ([]models.Product, int64, error) {
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	var products []models.Product
	err := q.Order("description asc").Offset(page * size).Limit(size).Find(&products).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to page products: %w", err)
	}
	return products, total, nil
}

// GetByID retrieves a single product by its ID.
func (r *GORMProductRepository) GetByID(id int64) (*models.Product, error) {
	var product models.Product
	if err := r.db.First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: id=%d", ErrProductNotFound, id)
		}
		return nil, fmt.Errorf("failed to get product by ID %d: %w", id, err)
	}
	return &product, nil
}

// GetByBarcode retrieves a single product by its unique barcode. The caller
// is expected to have trimmed the barcode already.
func (r *GORMProductRepository) GetByBarcode(barcode string) (*models.Product, error) {
	var product models.Product
	if err := r.db.First(&product, "barcode = ?", barcode).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: barcode=%s", ErrProductNotFound, barcode)
		}
		return nil, fmt.Errorf("failed to get product by barcode %s: %w", barcode, err)
	}
	return &product, nil
}

// ExistsByGroupID reports whether any product references the given group.
func (r *GORMProductRepository) ExistsByGroupID(groupID int) (bool, error) {
	var count int64
	if err := r.db.Model(&models.Product{}).Where("group_id = ?", groupID).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check products for group %d: %w", groupID, err)
	}
	return count > 0, nil
}

// Create inserts a new product, letting the database assign the ID.
func (r *GORMProductRepository) Create(product *models.Product) error {
	if err := r.db.Create(product).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("%w: %s", ErrDuplicateBarcode, product.Barcode)
		}
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

// Update saves all fields of an existing product.
func (r *GORMProductRepository) Update(product *models.Product) error {
	res := r.db.Save(product)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("%w: %s", ErrDuplicateBarcode, product.Barcode)
		}
		return fmt.Errorf("failed to update product: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		// Save does not return ErrRecordNotFound for a missing row, so
		// RowsAffected is the only signal.
		return fmt.Errorf("%w: id=%d", ErrProductNotFound, product.ID)
	}
	return nil
}

// Delete removes a product by its ID.
func (r *GORMProductRepository) Delete(id int64) error {
	res := r.db.Delete(&models.Product{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete product: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: id=%d", ErrProductNotFound, id)
	}
	return nil
}
