package handlers

import (
	"net/http"
	"storefront/internal/models"
	"storefront/internal/services"
	"strconv"

	"github.com/gin-gonic/gin"
)

type ProductHandler struct {
	productService services.ProductService
}

func NewProductHandler(productService services.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

type productRequest struct {
	Name         string  `json:"name" binding:"required"`
	Description  string  `json:"description"`
	Image        string  `json:"image"`
	Brand        string  `json:"brand"`
	Category     string  `json:"category"`
	Price        float64 `json:"price" binding:"gte=0"`
	CountInStock int     `json:"count_in_stock" binding:"gte=0"`
}

func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	product := &models.Product{
		Name:         req.Name,
		Description:  req.Description,
		Image:        req.Image,
		Brand:        req.Brand,
		Category:     req.Category,
		Price:        req.Price,
		CountInStock: req.CountInStock,
	}
	if err := h.productService.CreateProduct(product); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, product)
}

func (h *ProductHandler) GetProduct(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product id"})
		return
	}

	product, svcErr := h.productService.GetProductByID(uint(id))
	if svcErr != nil {
		respondError(c, svcErr)
		return
	}

	c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) GetAllProducts(c *gin.Context) {
	if category := c.Query("category"); category != "" {
		products, err := h.productService.GetProductsByCategory(category)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, products)
		return
	}

	products, err := h.productService.GetAllProducts()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product id"})
		return
	}

	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	product, svcErr := h.productService.GetProductByID(uint(id))
	if svcErr != nil {
		respondError(c, svcErr)
		return
	}

	product.Name = req.Name
	product.Description = req.Description
	product.Image = req.Image
	product.Brand = req.Brand
	product.Category = req.Category
	product.Price = req.Price
	product.CountInStock = req.CountInStock

	if err := h.productService.UpdateProduct(product); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product id"})
		return
	}

	if err := h.productService.DeleteProduct(uint(id)); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
