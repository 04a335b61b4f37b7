package discountControllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/adityarajmishra/ShopEase/models"
)

type DiscountInput struct {
	Code       string          `json:"code" binding:"required"`
	Percentage decimal.Decimal `json:"percentage" binding:"required"`
	StartDate  time.Time       `json:"start_date" binding:"required"`
	ExpiryDate time.Time       `json:"expiry_date" binding:"required"`
	MaxUsage   int             `json:"max_usage" binding:"required,min=1"`
}

func (in *DiscountInput) validate() error {
	if in.Percentage.IsNegative() || in.Percentage.GreaterThan(decimal.NewFromInt(100)) {
		return errors.New("percentage must be between 0 and 100")
	}
	if !in.ExpiryDate.After(in.StartDate) {
		return errors.New("expiry_date must be after start_date")
	}
	return nil
}

// POST /admin/discounts
func CreateDiscount(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input DiscountInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		if err := input.validate(); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		discount := models.Discount{
			Code:       input.Code,
			Percentage: input.Percentage,
			StartDate:  input.StartDate,
			ExpiryDate: input.ExpiryDate,
			MaxUsage:   input.MaxUsage,
		}
		if err := db.Create(&discount).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create discount"})
			return
		}
		c.JSON(http.StatusCreated, discount)
	}
}

// PUT /admin/discounts/:id
func UpdateDiscount(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		discount, ok := discountFromParam(c, db)
		if !ok {
			return
		}

		var input DiscountInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		if err := input.validate(); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if input.MaxUsage < discount.CurrentUsage {
			c.JSON(http.StatusBadRequest, gin.H{"error": "max_usage cannot be below the current usage count"})
			return
		}

		discount.Code = input.Code
		discount.Percentage = input.Percentage
		discount.StartDate = input.StartDate
		discount.ExpiryDate = input.ExpiryDate
		discount.MaxUsage = input.MaxUsage

		if err := db.Save(discount).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update discount"})
			return
		}
		c.JSON(http.StatusOK, discount)
	}
}

// GET /admin/discounts
func GetDiscounts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var discounts []models.Discount
		if err := db.Order("expiry_date DESC").Find(&discounts).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch discounts"})
			return
		}
		c.JSON(http.StatusOK, discounts)
	}
}

// DELETE /admin/discounts/:id
func DeleteDiscount(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		discount, ok := discountFromParam(c, db)
		if !ok {
			return
		}

		if err := db.Delete(discount).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete discount"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Discount deleted"})
	}
}

// GET /discounts/:code/validity lets the storefront probe a code before
// checkout without consuming usage.
func CheckDiscountValidity(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var discount models.Discount
		if err := db.Where("code = ?", c.Param("code")).First(&discount).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Discount code not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch discount"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"code":       discount.Code,
			"percentage": discount.Percentage,
			"valid":      discount.IsValid(time.Now()),
		})
	}
}

func discountFromParam(c *gin.Context, db *gorm.DB) (*models.Discount, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid discount id"})
		return nil, false
	}

	var discount models.Discount
	if err := db.First(&discount, "id = ?", uint(id)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Discount not found"})
			return nil, false
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch discount"})
		return nil, false
	}
	return &discount, true
}
