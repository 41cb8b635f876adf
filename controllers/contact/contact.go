package contactControllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lumora-shop/lumora-api/models"
	"gorm.io/gorm"
)

type ContactInput struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Message string `json:"message" binding:"required"`
}

// POST /contact
func SubmitContact(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input ContactInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Please fill out all fields."})
			return
		}

		submission := models.ContactSubmission{
			Name:    input.Name,
			Email:   input.Email,
			Message: input.Message,
		}
		if err := db.Create(&submission).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "A database error occurred."})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Thank you for your message! We'll get back to you soon."})
	}
}
