package userControllers

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/lumora-shop/lumora-api/models"
	"gorm.io/gorm"
)

var allowedPictureExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
}

type UpdateProfileInput struct {
	Name    *string         `json:"name"`
	Contact *string         `json:"contact"`
	Address *models.Address `json:"address"`
}

// GET /user/profile
// Returns the profile with the five most recent orders.
func GetProfile(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("user_id")

		var user models.User
		if err := db.First(&user, "id = ?", userID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}

		var orders []models.Order
		if err := db.Where("user_id = ?", userID).
			Order("created_at DESC").
			Limit(5).
			Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not load your profile."})
			return
		}

		c.JSON(http.StatusOK, gin.H{"user": user, "orders": orders})
	}
}

// PUT /user/profile
func UpdateProfile(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("user_id")

		var user models.User
		if err := db.First(&user, "id = ?", userID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}

		var input UpdateProfileInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		updates := make(map[string]interface{})
		if input.Name != nil {
			updates["username"] = *input.Name
		}
		if input.Contact != nil {
			updates["contact"] = *input.Contact
		}
		if input.Address != nil {
			updates["line1"] = input.Address.Line1
			updates["city"] = input.Address.City
			updates["state"] = input.Address.State
			updates["pincode"] = input.Address.Pincode
		}

		if len(updates) > 0 {
			if err := db.Model(&user).Updates(updates).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "An error occurred while updating your profile."})
				return
			}
		}

		c.JSON(http.StatusOK, gin.H{"message": "Profile updated successfully!", "user": user})
	}
}

// POST /user/profile/picture
func UploadProfilePicture(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("user_id")

		file, err := c.FormFile("profile_picture")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "No file selected."})
			return
		}

		ext := strings.ToLower(filepath.Ext(file.Filename))
		if !allowedPictureExtensions[ext] {
			c.JSON(http.StatusBadRequest, gin.H{"error": "File type not allowed."})
			return
		}

		saveDir := filepath.Join(uploadsDir(), "profile_pics")
		if err := os.MkdirAll(saveDir, 0o755); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save the picture."})
			return
		}

		filename := fmt.Sprintf("%d_%s%s", userID, uuid.NewString(), ext)
		if err := c.SaveUploadedFile(file, filepath.Join(saveDir, filename)); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save the picture."})
			return
		}

		pictureURL := "/uploads/profile_pics/" + filename
		if err := db.Model(&models.User{}).Where("id = ?", userID).
			Update("profile_picture_url", pictureURL).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save the picture."})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Profile picture updated!", "new_url": pictureURL})
	}
}

func uploadsDir() string {
	if dir := os.Getenv("UPLOADS_DIR"); dir != "" {
		return dir
	}
	return "uploads"
}
