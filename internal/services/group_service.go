package services

import (
	"fmt"
	"strings"

	"catalogo/internal/models"
	"catalogo/internal/repositories"
)

// GroupService handles business logic related to product groups, including
// the referential guard that keeps a group alive while products reference it.
type GroupService struct {
	groupRepo   repositories.GroupRepository
	productRepo repositories.ProductRepository
	events      EventPublisher
}

// NewGroupService creates a new GroupService. events may be nil.
func NewGroupService(groupRepo repositories.GroupRepository, productRepo repositories.ProductRepository, events EventPublisher) *GroupService {
	return &GroupService{
		groupRepo:   groupRepo,
		productRepo: productRepo,
		events:      events,
	}
}

// GetAllGroups retrieves all product groups.
func (s *GroupService) GetAllGroups() ([]models.ProductGroup, error) {
	return s.groupRepo.GetAll()
}

// GetGroups returns a paginated wrap over the full group listing.
func (s *GroupService) GetGroups(page, size int) (*models.GroupPage, error) {
	page, size = clampPageable(page, size)
	all, err := s.groupRepo.GetAll()
	if err != nil {
		return nil, err
	}

	total := int64(len(all))
	start := page * size
	if start > len(all) {
		start = len(all)
	}
	end := start + size
	if end > len(all) {
		end = len(all)
	}

	return &models.GroupPage{
		Content:       all[start:end],
		Page:          page,
		Size:          size,
		TotalElements: total,
		TotalPages:    models.PageCount(total, size),
	}, nil
}

// GetGroupByID retrieves a single product group by its ID.
func (s *GroupService) GetGroupByID(id int) (*models.ProductGroup, error) {
	return s.groupRepo.GetByID(id)
}

// CreateGroup creates a new product group.
func (s *GroupService) CreateGroup(group *models.ProductGroup) (*models.ProductGroup, error) {
	group.ID = 0 // the store assigns the surrogate id
	group.Description = strings.TrimSpace(group.Description)
	if !group.Status.Valid() {
		return nil, models.ErrInvalidStatus
	}

	if err := s.groupRepo.Create(group); err != nil {
		return nil, err
	}

	publishEvent(s.events, "group.created", group)
	return group, nil
}

// UpdateGroup replaces the caller-settable fields of an existing group.
func (s *GroupService) UpdateGroup(id int, in *models.ProductGroup) (*models.ProductGroup, error) {
	existing, err := s.groupRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	in.Description = strings.TrimSpace(in.Description)
	if !in.Status.Valid() {
		return nil, models.ErrInvalidStatus
	}

	existing.Description = in.Description
	existing.Status = in.Status

	if err := s.groupRepo.Update(existing); err != nil {
		return nil, err
	}

	publishEvent(s.events, "group.updated", existing)
	return existing, nil
}

// DeleteGroup deletes a product group. A group still referenced by at least
// one product is not deletable: the exists check below rejects it with
// ErrGroupHasProducts, and the foreign-key constraint on products backstops
// the race between this check and the delete.
func (s *GroupService) DeleteGroup(id int) error {
	if _, err := s.groupRepo.GetByID(id); err != nil {
		return err
	}

	hasProducts, err := s.productRepo.ExistsByGroupID(id)
	if err != nil {
		return err
	}
	if hasProducts {
		return fmt.Errorf("%w: id=%d", repositories.ErrGroupHasProducts, id)
	}

	if err := s.groupRepo.Delete(id); err != nil {
		return err
	}

	publishEvent(s.events, "group.deleted", map[string]int{"id": id})
	return nil
}
