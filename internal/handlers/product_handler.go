package handlers

import (
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"catalogo/internal/models"
	"catalogo/internal/services"
)

// ProductHandler handles HTTP requests for products.
type ProductHandler struct {
	service  *services.ProductService
	validate *validator.Validate
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService) *ProductHandler {
	return &ProductHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the product routes with the Fiber app.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	productRoutes := router.Group("/products")
	productRoutes.Get("/", h.HandleListProducts)
	productRoutes.Get("/all", h.HandleListAllProducts)
	productRoutes.Get("/barcode/:barcode", h.HandleGetProductByBarcode)
	productRoutes.Get("/:id", h.HandleGetProductByID)
	productRoutes.Post("/", h.HandleCreateProduct)
	productRoutes.Put("/:id", h.HandleUpdateProduct)
	productRoutes.Delete("/:id", h.HandleDeleteProduct)
}

// productRequest is the inbound payload for create and full-replace update.
// stock_value is accepted but never copied into the entity; the service
// derives it from stock_balance × unit_value.
type productRequest struct {
	Barcode      string           `json:"barcode" validate:"required,max=50"`
	Description  string           `json:"description" validate:"required,max=150"`
	GroupID      int              `json:"group_id" validate:"required,gt=0"`
	Status       *int             `json:"status"`
	StockBalance *decimal.Decimal `json:"stock_balance"`
	UnitValue    *decimal.Decimal `json:"unit_value" validate:"required"`
	StockValue   *decimal.Decimal `json:"stock_value"`
}

// toModel validates the payload semantically (blank strings after trim,
// negative quantities, status outside {0,1}) and maps it to an entity.
func (req *productRequest) toModel() (*models.Product, error) {
	barcode := strings.TrimSpace(req.Barcode)
	description := strings.TrimSpace(req.Description)
	if barcode == "" {
		return nil, errors.New("barcode is required")
	}
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

	var balance, unit decimal.Decimal
	if req.StockBalance != nil {
		if req.StockBalance.IsNegative() {
			return nil, errors.New("stock_balance cannot be negative")
		}
		balance = *req.StockBalance
	}
	if req.UnitValue != nil {
		if req.UnitValue.IsNegative() {
			return nil, errors.New("unit_value cannot be negative")
		}
		unit = *req.UnitValue
	}

	return &models.Product{
		Barcode:      barcode,
		Description:  description,
		GroupID:      req.GroupID,
		Status:       status,
		StockBalance: balance,
		UnitValue:    unit,
	}, nil
}

func (h *ProductHandler) parseBody(c *fiber.Ctx) (*models.Product, error) {
	var req productRequest
	if err := c.BodyParser(&req); err != nil {
		return nil, fmt.Errorf("invalid request body: %w", err)
	}
	if err := h.validate.Struct(req); err != nil {
		return nil, err
	}
	return req.toModel()
}

// HandleListProducts returns one page of products, optionally filtered by
// group (?group_id=). Page and size come from ?page= and ?size=.
func (h *ProductHandler) HandleListProducts(c *fiber.Ctx) error {
	page := c.QueryInt("page", 0)
	size := c.QueryInt("size", services.DefaultPageSize)

	var (
		result *models.ProductPage
		err    error
	)
	if groupParam := c.Query("group_id"); groupParam != "" {
		groupID, convErr := strconv.Atoi(groupParam)
		if convErr != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "group_id must be an integer",
			})
		}
		result, err = h.service.GetProductsByGroup(groupID, page, size)
	} else {
		result, err = h.service.GetProducts(page, size)
	}
	if err != nil {
		log.Printf("Error listing products: %v", err)
		return errorJSON(c, err, "Could not retrieve products")
	}
	return c.JSON(result)
}

// HandleListAllProducts returns every product, optionally filtered by group.
func (h *ProductHandler) HandleListAllProducts(c *fiber.Ctx) error {
	var (
		products []models.Product
		err      error
	)
	if groupParam := c.Query("group_id"); groupParam != "" {
		groupID, convErr := strconv.Atoi(groupParam)
		if convErr != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "group_id must be an integer",
			})
		}
		products, err = h.service.GetAllProductsByGroup(groupID)
	} else {
		products, err = h.service.GetAllProducts()
	}
	if err != nil {
		log.Printf("Error listing all products: %v", err)
		return errorJSON(c, err, "Could not retrieve products")
	}
	return c.JSON(products)
}

// HandleGetProductByID retrieves a single product by its ID.
func (h *ProductHandler) HandleGetProductByID(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Product id must be an integer",
		})
	}

	product, err := h.service.GetProductByID(id)
	if err != nil {
		log.Printf("Error getting product %d: %v", id, err)
		return errorJSON(c, err, "Could not retrieve product")
	}
	return c.JSON(product)
}

// HandleGetProductByBarcode retrieves a single product by its barcode.
func (h *ProductHandler) HandleGetProductByBarcode(c *fiber.Ctx) error {
	barcode := strings.TrimSpace(c.Params("barcode"))
	if barcode == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Barcode is required",
		})
	}

	product, err := h.service.GetProductByBarcode(barcode)
	if err != nil {
		log.Printf("Error getting product by barcode %s: %v", barcode, err)
		return errorJSON(c, err, "Could not retrieve product")
	}
	return c.JSON(product)
}

// HandleCreateProduct creates a new product.
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	product, err := h.parseBody(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid product payload",
			"error":   err.Error(),
		})
	}

	created, err := h.service.CreateProduct(product)
	if err != nil {
		log.Printf("Error creating product: %v", err)
		return errorJSON(c, err, "Could not create product")
	}

	c.Set("Location", fmt.Sprintf("%s/%d", c.Path(), created.ID))
	return c.Status(fiber.StatusCreated).JSON(created)
}

// HandleUpdateProduct fully replaces an existing product.
func (h *ProductHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Product id must be an integer",
		})
	}

	product, err := h.parseBody(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid product payload",
			"error":   err.Error(),
		})
	}

	updated, err := h.service.UpdateProduct(id, product)
	if err != nil {
		log.Printf("Error updating product %d: %v", id, err)
		return errorJSON(c, err, "Could not update product")
	}
	return c.JSON(updated)
}

// HandleDeleteProduct deletes a product by its ID.
func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Product id must be an integer",
		})
	}

	if err := h.service.DeleteProduct(id); err != nil {
		log.Printf("Error deleting product %d: %v", id, err)
		return errorJSON(c, err, "Could not delete product")
	}
	return c.SendStatus(fiber.StatusNoContent)
}
