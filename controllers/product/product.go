package productControllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/adityarajmishra/ShopEase/models"
)

type ProductInput struct {
	Name          string          `json:"name" binding:"required"`
	Description   string          `json:"description"`
	Price         decimal.Decimal `json:"price" binding:"required"`
	StockQuantity int             `json:"stock_quantity" binding:"min=0"`
	Category      string          `json:"category"`
}

// GET /products
func GetProducts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := db.Model(&models.Product{})
		if category := c.Query("category"); category != "" {
			query = query.Where("category = ?", category)
		}
		if c.Query("in_stock") == "true" {
			query = query.Where("stock_quantity > 0 AND status = ?", models.ProductStatusActive)
		}

		var products []models.Product
		if err := query.Order("name").Find(&products).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
			return
		}
		c.JSON(http.StatusOK, products)
	}
}

// GET /products/:id
func GetProductByID(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		product, ok := productFromParam(c, db)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, product)
	}
}

// POST /admin/products
func CreateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input ProductInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		if input.Price.IsNegative() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Price must not be negative"})
			return
		}

		product := models.Product{
			Name:          input.Name,
			Description:   input.Description,
			Price:         input.Price,
			StockQuantity: input.StockQuantity,
			Category:      input.Category,
			Status:        models.ProductStatusActive,
		}
		if product.StockQuantity == 0 {
			product.Status = models.ProductStatusOutOfStock
		}

		if err := db.Create(&product).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
			return
		}
		c.JSON(http.StatusCreated, product)
	}
}

// PUT /admin/products/:id
func UpdateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		product, ok := productFromParam(c, db)
		if !ok {
			return
		}

		var input ProductInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		if input.Price.IsNegative() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Price must not be negative"})
			return
		}

		product.Name = input.Name
		product.Description = input.Description
		product.Price = input.Price
		product.StockQuantity = input.StockQuantity
		product.Category = input.Category
		if product.Status != models.ProductStatusDiscontinued {
			if product.StockQuantity == 0 {
				product.Status = models.ProductStatusOutOfStock
			} else {
				product.Status = models.ProductStatusActive
			}
		}

		if err := db.Save(product).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
			return
		}
		c.JSON(http.StatusOK, product)
	}
}

// POST /admin/products/:id/discontinue
func DiscontinueProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		product, ok := productFromParam(c, db)
		if !ok {
			return
		}

		product.Status = models.ProductStatusDiscontinued
		if err := db.Save(product).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to discontinue product"})
			return
		}
		c.JSON(http.StatusOK, product)
	}
}

// DELETE /admin/products/:id
func DeleteProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		product, ok := productFromParam(c, db)
		if !ok {
			return
		}

		if err := db.Delete(product).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete product"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Product deleted"})
	}
}

func productFromParam(c *gin.Context, db *gorm.DB) (*models.Product, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product id"})
		return nil, false
	}

	var product models.Product
	if err := db.First(&product, "id = ?", uint(id)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return nil, false
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch product"})
		return nil, false
	}
	return &product, true
}
