package repositories

import (
	"fmt"
	"sort"
	"sync"

	"catalogo/internal/models"
)

// InMemoryGroupRepository is an in-memory implementation of GroupRepository.
type InMemoryGroupRepository struct {
	groups map[int]models.ProductGroup
	nextID int
	mu     sync.RWMutex
}

// NewInMemoryGroupRepository creates a new InMemoryGroupRepository.
func NewInMemoryGroupRepository() *InMemoryGroupRepository {
	return &InMemoryGroupRepository{
		groups: make(map[int]models.ProductGroup),
		nextID: 1,
	}
}

// GetAll returns all product groups ordered by description.
func (r *InMemoryGroupRepository) GetAll() ([]models.ProductGroup, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := make([]models.ProductGroup, 0, len(r.groups))
	for _, g := range r.groups {
		list = append(list, g)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Description < list[j].Description })
	return list, nil
}

// GetByID returns a product group by its ID.
func (r *InMemoryGroupRepository) GetByID(id int) (*models.ProductGroup, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	group, ok := r.groups[id]
	if !ok {
		return nil, fmt.Errorf("%w: id=%d", ErrGroupNotFound, id)
	}
	return &group, nil
}

// ExistsByID reports whether a product group with the given ID exists.
func (r *InMemoryGroupRepository) ExistsByID(id int) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.groups[id]
	return ok, nil
}

// Create adds a new product group, assigning the next surrogate ID.
func (r *InMemoryGroupRepository) Create(group *models.ProductGroup) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if group.ID == 0 {
		group.ID = r.nextID
		r.nextID++
	} else if group.ID >= r.nextID {
		r.nextID = group.ID + 1
	}
	r.groups[group.ID] = *group
	return nil
}

// Update replaces an existing product group.
func (r *InMemoryGroupRepository) Update(group *models.ProductGroup) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.groups[group.ID]; !ok {
		return fmt.Errorf("%w: id=%d", ErrGroupNotFound, group.ID)
	}
	r.groups[group.ID] = *group
	return nil
}

// Delete removes a product group by its ID.
func (r *InMemoryGroupRepository) Delete(id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.groups[id]; !ok {
		return fmt.Errorf("%w: id=%d", ErrGroupNotFound, id)
	}
	delete(r.groups, id)
	return nil
}
