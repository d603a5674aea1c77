package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/nchoi/atelier-backend/internal/app/repository"
	"github.com/nchoi/atelier-backend/internal/app/service"
	apperrors "github.com/nchoi/atelier-backend/internal/errors"
	"github.com/nchoi/atelier-backend/internal/middleware"
)

type ProductController struct {
	catalogService service.CatalogService
}

func NewProductController(catalogService service.CatalogService) *ProductController {
	return &ProductController{
		catalogService: catalogService,
	}
}

// GetProducts lists catalog products with optional filters
// GET /api/v1/products?category=&on_sale=&q=
func (ctrl *ProductController) GetProducts(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	sessionID := middleware.GetSessionID(c)

	filter := repository.CatalogFilter{
		Category: c.Query("category"),
		Query:    c.Query("q"),
	}
	if raw := c.Query("on_sale"); raw != "" {
		onSale, err := strconv.ParseBool(raw)
		if err != nil {
			apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "on_sale must be true or false")
			return
		}
		filter.OnSale = &onSale
	}

	products, err := ctrl.catalogService.GetAllProducts(sessionID, filter)
	if err != nil {
		log.Error("Failed to fetch products", err, nil)
		apperrors.InternalError(c, "Failed to fetch products")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"products": products,
		"count":    len(products),
	})
}

// GetProduct returns a single product and records the view
// GET /api/v1/products/:id
func (ctrl *ProductController) GetProduct(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	sessionID := middleware.GetSessionID(c)

	productID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid product ID")
		return
	}

	product, err := ctrl.catalogService.GetProductByID(sessionID, productID)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			apperrors.NotFound(c, apperrors.ProductNotFound, "Product not found")
			return
		}
		log.Error("Failed to fetch product", err, map[string]interface{}{
			"product_id": productID,
		})
		apperrors.InternalError(c, "Failed to fetch product")
		return
	}

	c.JSON(http.StatusOK, gin.H{"product": product})
}

// GetPopularProducts returns the highest rated products
// GET /api/v1/products/popular?limit=
func (ctrl *ProductController) GetPopularProducts(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	limit := 4
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "limit must be a positive integer")
			return
		}
		limit = parsed
	}

	products, err := ctrl.catalogService.GetPopularProducts(limit)
	if err != nil {
		log.Error("Failed to fetch popular products", err, nil)
		apperrors.InternalError(c, "Failed to fetch popular products")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"products": products,
		"count":    len(products),
	})
}

// GetCategories lists the catalog categories
// GET /api/v1/products/categories
func (ctrl *ProductController) GetCategories(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	categories, err := ctrl.catalogService.GetCategories()
	if err != nil {
		log.Error("Failed to fetch categories", err, nil)
		apperrors.InternalError(c, "Failed to fetch categories")
		return
	}

	c.JSON(http.StatusOK, gin.H{"categories": categories})
}
