package services

import (
	"fmt"
	"strings"

	"catalogo/internal/models"
	"catalogo/internal/repositories"
)

const (
	// MaxPageSize caps the effective page size of every listing, no matter
	// what the caller requests.
	MaxPageSize = 200

	// DefaultPageSize is used when the caller requests no size at all.
	DefaultPageSize = 20
)

// ProductService handles business logic related to products.
type ProductService struct {
	productRepo repositories.ProductRepository
	groupRepo   repositories.GroupRepository
	events      EventPublisher
}

// NewProductService creates a new ProductService. events may be nil, which
// disables event publication.
func NewProductService(productRepo repositories.ProductRepository, groupRepo repositories.GroupRepository, events EventPublisher) *ProductService {
	return &ProductService{
		productRepo: productRepo,
		groupRepo:   groupRepo,
		events:      events,
	}
}

// clampPageable floors the page number at 0 and clamps the page size into
// [1, MaxPageSize], substituting DefaultPageSize for a missing size.
func clampPageable(page, size int) (int, int) {
	if page < 0 {
		page = 0
	}
	if size <= 0 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}
	return page, size
}

// GetProducts returns one page of products.
func (s *ProductService) GetProducts(page, size int) (*models.ProductPage, error) {
	page, size = clampPageable(page, size)
	products, total, err := s.productRepo.GetPage(page, size)
	if err != nil {
		return nil, err
	}
	return &models.ProductPage{
		Content:       products,
		Page:          page,
		Size:          size,
		TotalElements: total,
		TotalPages:    models.PageCount(total, size),
	}, nil
}

// GetProductsByGroup returns one page of a group's products. The group must
// exist; listing against an unknown group is a not-found error, not an
// empty page.
func (s *ProductService) GetProductsByGroup(groupID, page, size int) (*models.ProductPage, error) {
	exists, err := s.groupRepo.ExistsByID(groupID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("%w: id=%d", repositories.ErrGroupNotFound, groupID)
	}

	page, size = clampPageable(page, size)
	products, total, err := s.productRepo.GetPageByGroupID(groupID, page, size)
	if err != nil {
		return nil, err
	}
	return &models.ProductPage{
		Content:       products,
		Page:          page,
		Size:          size,
		TotalElements: total,
		TotalPages:    models.PageCount(total, size),
	}, nil
}

// GetAllProducts retrieves all products without pagination.
func (s *ProductService) GetAllProducts() ([]models.Product, error) {
	return s.productRepo.GetAll()
}

// GetAllProductsByGroup retrieves all of a group's products without
// pagination, after verifying the group exists.
func (s *ProductService) GetAllProductsByGroup(groupID int) ([]models.Product, error) {
	exists, err := s.groupRepo.ExistsByID(groupID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("%w: id=%d", repositories.ErrGroupNotFound, groupID)
	}
	return s.productRepo.GetAllByGroupID(groupID)
}

// GetProductByID retrieves a single product by its ID.
func (s *ProductService) GetProductByID(id int64) (*models.Product, error) {
	return s.productRepo.GetByID(id)
}

// GetProductByBarcode retrieves a single product by barcode. The barcode is
// trimmed before the lookup, so " 123 " matches a stored "123".
func (s *ProductService) GetProductByBarcode(barcode string) (*models.Product, error) {
	return s.productRepo.GetByBarcode(strings.TrimSpace(barcode))
}

// CreateProduct creates a new product. The referenced group must exist, and
// the derived stock value is recomputed here regardless of what the caller
// supplied.
func (s *ProductService) CreateProduct(product *models.Product) (*models.Product, error) {
	product.ID = 0 // the store assigns the surrogate id
	if err := s.normalize(product); err != nil {
		return nil, err
	}
	if product.RegistrationDate.IsZero() {
		product.RegistrationDate = models.Today()
	}

	product.RecalcStockValue()

	if err := s.productRepo.Create(product); err != nil {
		return nil, err
	}

	publishEvent(s.events, "product.created", product)
	return product, nil
}

// UpdateProduct replaces every caller-settable field of an existing product
// (full replace, no partial patch) and recomputes the stock value before
// saving.
func (s *ProductService) UpdateProduct(id int64, in *models.Product) (*models.Product, error) {
	existing, err := s.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if err := s.normalize(in); err != nil {
		return nil, err
	}

	existing.Barcode = in.Barcode
	existing.Description = in.Description
	existing.StockBalance = in.StockBalance
	existing.UnitValue = in.UnitValue
	existing.GroupID = in.GroupID
	existing.Status = in.Status
	if !in.RegistrationDate.IsZero() {
		existing.RegistrationDate = in.RegistrationDate
	}

	existing.RecalcStockValue()

	if err := s.productRepo.Update(existing); err != nil {
		return nil, err
	}

	publishEvent(s.events, "product.updated", existing)
	return existing, nil
}

// DeleteProduct deletes a product by its ID.
func (s *ProductService) DeleteProduct(id int64) error {
	if err := s.productRepo.Delete(id); err != nil {
		return err
	}
	publishEvent(s.events, "product.deleted", map[string]int64{"id": id})
	return nil
}

// normalize trims string fields, verifies the status value and checks that
// the referenced group exists.
func (s *ProductService) normalize(product *models.Product) error {
	product.Barcode = strings.TrimSpace(product.Barcode)
	product.Description = strings.TrimSpace(product.Description)

	if !product.Status.Valid() {
		return models.ErrInvalidStatus
	}

	exists, err := s.groupRepo.ExistsByID(product.GroupID)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("%w: id=%d", repositories.ErrGroupNotFound, product.GroupID)
	}
	return nil
}
