package auth

import (
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

type AdminLoginInput struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// POST /auth/admin/login
// The admin panel has a single account configured through the environment.
func AdminLoginHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var input AdminLoginInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		if input.Email != os.Getenv("ADMIN_EMAIL") || input.Password != os.Getenv("ADMIN_PASSWORD") {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid admin credentials."})
			return
		}

		token, err := issueAdminJWT(input.Email)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Token generation failed"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Admin login successful.", "token": token})
	}
}

func issueAdminJWT(email string) (string, error) {
	claims := jwt.MapClaims{
		"email": email,
		"role":  "admin",
		"exp":   time.Now().Add(24 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}
