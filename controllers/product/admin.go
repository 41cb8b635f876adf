package productcontroller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lumora-shop/lumora-api/models"
	"gorm.io/gorm"
)

type MenuItemInput struct {
	Name        string   `json:"name" binding:"required"`
	Category    string   `json:"category" binding:"required"`
	Type        string   `json:"type"`
	Description string   `json:"description" binding:"required"`
	Price       *float64 `json:"price" binding:"required,gte=0"`
	Image       string   `json:"image" binding:"required"`
	Stock       *int     `json:"stock" binding:"required,gte=0"`
	Badge       string   `json:"badge"`
}

// POST /admin/menu
func CreateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input MenuItemInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if input.Type == "" {
			input.Type = "veg"
		}

		product := models.Product{
			Name:        input.Name,
			Category:    input.Category,
			Type:        input.Type,
			Description: input.Description,
			Price:       *input.Price,
			Image:       input.Image,
			Stock:       *input.Stock,
			Badge:       input.Badge,
		}
		if err := db.Create(&product).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
			return
		}

		c.JSON(http.StatusCreated, gin.H{"message": "Item added successfully", "id": product.ID})
	}
}

// PUT /admin/menu/:id
func UpdateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")

		var product models.Product
		if err := db.First(&product, "id = ?", id).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found."})
			return
		}

		var input MenuItemInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if input.Type == "" {
			input.Type = "veg"
		}

		updates := map[string]interface{}{
			"name":        input.Name,
			"category":    input.Category,
			"type":        input.Type,
			"description": input.Description,
			"price":       *input.Price,
			"image":       input.Image,
			"stock":       *input.Stock,
			"badge":       input.Badge,
		}
		if err := db.Model(&product).Updates(updates).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Item updated successfully"})
	}
}

// DELETE /admin/menu/:id
// Cart rows referencing the product are left in place; views and checkout
// silently skip them.
func DeleteProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")

		result := db.Delete(&models.Product{}, "id = ?", id)
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete product"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found."})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Item deleted successfully"})
	}
}
