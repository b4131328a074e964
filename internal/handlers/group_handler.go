package handlers

import (
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"catalogo/internal/models"
	"catalogo/internal/services"
)

// GroupHandler handles HTTP requests for product groups.
type GroupHandler struct {
	service  *services.GroupService
	validate *validator.Validate
}

// NewGroupHandler creates a new GroupHandler.
func NewGroupHandler(service *services.GroupService) *GroupHandler {
	return &GroupHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the product-group routes with the Fiber app.
func (h *GroupHandler) RegisterRoutes(router fiber.Router) {
	groupRoutes := router.Group("/groups")
	groupRoutes.Get("/", h.HandleListGroups)
	groupRoutes.Get("/all", h.HandleListAllGroups)
	groupRoutes.Get("/:id", h.HandleGetGroupByID)
	groupRoutes.Post("/", h.HandleCreateGroup)
	groupRoutes.Put("/:id", h.HandleUpdateGroup)
	groupRoutes.Delete("/:id", h.HandleDeleteGroup)
}

// groupRequest is the inbound payload for group create and update.
type groupRequest struct {
	Description string `json:"description" validate:"required,max=120"`
	Status      *int   `json:"status"`
}

func (req *groupRequest) toModel() (*models.ProductGroup, error) {
	description := strings.TrimSpace(req.Description)
	if description == "" {
		return nil, errors.New("description is required")
	}

	status := models.StatusActive
	if req.Status != nil {
		var err error
		if status, err = models.StatusFromInt(*req.Status); err != nil {
			return nil, err
		}
	}

	return &models.ProductGroup{
		Description: description,
		Status:      status,
	}, nil
}

func (h *GroupHandler) parseBody(c *fiber.Ctx) (*models.ProductGroup, error) {
	var req groupRequest
	if err := c.BodyParser(&req); err != nil {
		return nil, fmt.Errorf("invalid request body: %w", err)
	}
	if err := h.validate.Struct(req); err != nil {
		return nil, err
	}
	return req.toModel()
}

// HandleListGroups returns a paginated wrap over the group listing.
func (h *GroupHandler) HandleListGroups(c *fiber.Ctx) error {
	page := c.QueryInt("page", 0)
	size := c.QueryInt("size", services.DefaultPageSize)

	result, err := h.service.GetGroups(page, size)
	if err != nil {
		log.Printf("Error listing groups: %v", err)
		return errorJSON(c, err, "Could not retrieve product groups")
	}
	return c.JSON(result)
}

// HandleListAllGroups returns every product group.
func (h *GroupHandler) HandleListAllGroups(c *fiber.Ctx) error {
	groups, err := h.service.GetAllGroups()
	if err != nil {
		log.Printf("Error listing all groups: %v", err)
		return errorJSON(c, err, "Could not retrieve product groups")
	}
	return c.JSON(groups)
}

// HandleGetGroupByID retrieves a single product group by its ID.
func (h *GroupHandler) HandleGetGroupByID(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Group id must be an integer",
		})
	}

	group, err := h.service.GetGroupByID(id)
	if err != nil {
		log.Printf("Error getting group %d: %v", id, err)
		return errorJSON(c, err, "Could not retrieve product group")
	}
	return c.JSON(group)
}

// HandleCreateGroup creates a new product group.
func (h *GroupHandler) HandleCreateGroup(c *fiber.Ctx) error {
	group, err := h.parseBody(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid group payload",
			"error":   err.Error(),
		})
	}

	created, err := h.service.CreateGroup(group)
	if err != nil {
		log.Printf("Error creating group: %v", err)
		return errorJSON(c, err, "Could not create product group")
	}

	c.Set("Location", fmt.Sprintf("%s/%d", c.Path(), created.ID))
	return c.Status(fiber.StatusCreated).JSON(created)
}

// HandleUpdateGroup fully replaces an existing product group.
func (h *GroupHandler) HandleUpdateGroup(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Group id must be an integer",
		})
	}

	group, err := h.parseBody(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid group payload",
			"error":   err.Error(),
		})
	}

	updated, err := h.service.UpdateGroup(id, group)
	if err != nil {
		log.Printf("Error updating group %d: %v", id, err)
		return errorJSON(c, err, "Could not update product group")
	}
	return c.JSON(updated)
}

// HandleDeleteGroup deletes a product group unless products still reference it.
func (h *GroupHandler) HandleDeleteGroup(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Group id must be an integer",
		})
	}

	if err := h.service.DeleteGroup(id); err != nil {
		log.Printf("Error deleting group %d: %v", id, err)
		return errorJSON(c, err, "Could not delete product group")
	}
	return c.SendStatus(fiber.StatusNoContent)
}
