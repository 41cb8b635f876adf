package adminController

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lumora-shop/lumora-api/models"
	"gorm.io/gorm"
)

// GET /admin/users
func GetAllUsers(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var users []models.User
		if err := db.
			Select("id", "username", "email", "contact", "provider", "created_at"). // public fields only
			Order("created_at desc").
			Find(&users).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch users"})
			return
		}
		c.JSON(http.StatusOK, users)
	}
}

// DELETE /admin/users/:id
// Removes the user's cart rows along with the account; orders cascade
// through the association constraint.
func DeleteUser(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")

		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("user_id = ?", id).Delete(&models.CartItem{}).Error; err != nil {
				return err
			}
			result := tx.Delete(&models.User{}, "id = ?", id)
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return gorm.ErrRecordNotFound
			}
			return nil
		})
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error deleting user"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "User has been deleted."})
	}
}
