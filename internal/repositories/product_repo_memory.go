package repositories

import (
	"fmt"
	"sort"
	"sync"

	"catalogo/internal/models"
)

// InMemoryProductRepository is an in-memory implementation of
// ProductRepository, used for local runs without a database and in tests.
type InMemoryProductRepository struct {
	products map[int64]models.Product
	nextID   int64
	mu       sync.RWMutex
}

// NewInMemoryProductRepository creates a new InMemoryProductRepository.
func NewInMemoryProductRepository() *InMemoryProductRepository {
	return &InMemoryProductRepository{
		products: make(map[int64]models.Product),
		nextID:   1,
	}
}

func (r *InMemoryProductRepository) sortedLocked(filterGroup *int) []models.Product {
	list := make([]models.Product, 0, len(r.products))
	for _, p := range r.products {
		if filterGroup != nil && p.GroupID != *filterGroup {
			continue
		}
		list = append(list, p)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Description < list[j].Description })
	return list
}

// GetAll returns all products ordered by description.
func (r *InMemoryProductRepository) GetAll() ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sortedLocked(nil), nil
}

// GetAllByGroupID returns all products of one group ordered by description.
func (r *InMemoryProductRepository) GetAllByGroupID(groupID int) ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sortedLocked(&groupID), nil
}

// GetPage returns one page of products plus the total count.
func (r *InMemoryProductRepository) GetPage(page, size int) ([]models.Product, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slicePage(r.sortedLocked(nil), page, size)
}

// GetPageByGroupID returns one page of a group's products plus the total count.
func (r *InMemoryProductRepository) GetPageByGroupID(groupID, page, size int) ([]models.Product, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slicePage(r.sortedLocked(&groupID), page, size)
}

func slicePage(list []models.Product, page, size int) ([]models.Product, int64, error) {
	total := int64(len(list))
	start := page * size
	if start >= len(list) {
		return []models.Product{}, total, nil
	}
	end := start + size
	if end > len(list) {
		end = len(list)
	}
	return list[start:end], total, nil
}

// GetByID returns a product by its ID.
func (r *InMemoryProductRepository) GetByID(id int64) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	product, ok := r.products[id]
	if !ok {
		return nil, fmt.Errorf("%w: id=%d", ErrProductNotFound, id)
	}
	return &product, nil
}

// GetByBarcode returns a product by its unique barcode.
func (r *InMemoryProductRepository) GetByBarcode(barcode string) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.products {
		if p.Barcode == barcode {
			product := p
			return &product, nil
		}
	}
	return nil, fmt.Errorf("%w: barcode=%s", ErrProductNotFound, barcode)
}

// ExistsByGroupID reports whether any product references the given group.
func (r *InMemoryProductRepository) ExistsByGroupID(groupID int) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.products {
		if p.GroupID == groupID {
			return true, nil
		}
	}
	return false, nil
}

// Create adds a new product, assigning the next surrogate ID.
func (r *InMemoryProductRepository) Create(product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, p := range r.products {
		if p.Barcode == product.Barcode {
			return fmt.Errorf("%w: %s", ErrDuplicateBarcode, product.Barcode)
		}
	}

	if product.ID == 0 {
		product.ID = r.nextID
		r.nextID++
	} else if product.ID >= r.nextID {
		r.nextID = product.ID + 1
	}
	r.products[product.ID] = *product
	return nil
}

// Update replaces an existing product.
func (r *InMemoryProductRepository) Update(product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[product.ID]; !ok {
		return fmt.Errorf("%w: id=%d", ErrProductNotFound, product.ID)
	}
	for _, p := range r.products {
		if p.Barcode == product.Barcode && p.ID != product.ID {
			return fmt.Errorf("%w: %s", ErrDuplicateBarcode, product.Barcode)
		}
	}
	r.products[product.ID] = *product
	return nil
}

// Delete removes a product by its ID.
func (r *InMemoryProductRepository) Delete(id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[id]; !ok {
		return fmt.Errorf("%w: id=%d", ErrProductNotFound, id)
	}
	delete(r.products, id)
	return nil
}
