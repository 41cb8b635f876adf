package auth

import (
	"net/http"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	cartControllers "github.com/lumora-shop/lumora-api/controllers/cart"
	"github.com/lumora-shop/lumora-api/middleware"
	"github.com/lumora-shop/lumora-api/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type SignupInput struct {
	Name            string `json:"name" binding:"required"`
	Email           string `json:"email" binding:"required,email"`
	Contact         string `json:"contact" binding:"required"`
	Address         string `json:"address" binding:"required"`
	DOB             string `json:"dob" binding:"required"`
	Password        string `json:"password" binding:"required,min=6"`
	ConfirmPassword string `json:"confirm_password" binding:"required"`
}

type LoginInput struct {
	Identifier string `json:"identifier" binding:"required"` // email or phone contact
	Password   string `json:"password" binding:"required"`
}

type ChangePasswordInput struct {
	CurrentPassword    string `json:"current_password" binding:"required"`
	NewPassword        string `json:"new_password" binding:"required,min=6"`
	ConfirmNewPassword string `json:"confirm_new_password" binding:"required"`
}

// POST /auth/signup
func SignupHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input SignupInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Please fill out all fields."})
			return
		}
		if input.Password != input.ConfirmPassword {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Passwords do not match."})
			return
		}

		email := strings.ToLower(strings.TrimSpace(input.Email))

		var existing models.User
		if err := db.Where("email = ?", email).First(&existing).Error; err == nil {
			c.JSON(http.StatusConflict, gin.H{"error": "An account with this email already exists."})
			return
		} else if err != gorm.ErrRecordNotFound {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "A database error occurred."})
			return
		}

		hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "A database error occurred."})
			return
		}

		user := models.User{
			Username: input.Name,
			Email:    email,
			Password: string(hashed),
			Contact:  input.Contact,
			DOB:      input.DOB,
			Provider: "local",
			Address:  models.Address{Line1: input.Address},
		}
		if err := db.Create(&user).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "A database error occurred."})
			return
		}

		c.JSON(http.StatusCreated, gin.H{"message": "Signup successful! You can now log in."})
	}
}

// POST /auth/login
func LoginHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input LoginInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Please enter your credentials."})
			return
		}

		identifier := strings.TrimSpace(input.Identifier)

		// Social-only accounts have no password and cannot log in locally.
		var user models.User
		if err := db.Where("(email = ? OR contact = ?) AND password <> ''", identifier, identifier).
			First(&user).Error; err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials. Please try again."})
			return
		}
		if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials. Please try again."})
			return
		}

		mergeStatus, err := completeLogin(c, db, user)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "A database error occurred."})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message":      "Welcome, " + user.Username + "!",
			"user":         user,
			"merge_status": mergeStatus,
		})
	}
}

// POST /auth/logout
func LogoutHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		session.Clear()
		if err := session.Save(); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to log out."})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "You have been successfully logged out."})
	}
}

// POST /user/change-password
func ChangePasswordHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("user_id")

		var input ChangePasswordInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Please fill out all password fields."})
			return
		}
		if input.NewPassword != input.ConfirmNewPassword {
			c.JSON(http.StatusBadRequest, gin.H{"error": "New passwords do not match."})
			return
		}

		var user models.User
		if err := db.First(&user, "id = ?", userID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.CurrentPassword)); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Incorrect current password."})
			return
		}

		hashed, err := bcrypt.GenerateFromPassword([]byte(input.NewPassword), bcrypt.DefaultCost)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "A database error occurred."})
			return
		}
		if err := db.Model(&user).Update("password", string(hashed)).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "A database error occurred."})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Password updated successfully."})
	}
}

// completeLogin merges the session guest cart into the user's persisted
// cart, then marks the session as logged in. The guest cart is only dropped
// from the session after the merge has been committed; if the merge fails
// the session cart stays in place and the login still succeeds.
func completeLogin(c *gin.Context, db *gorm.DB, user models.User) (string, error) {
	session := sessions.Default(c)
	guestCart := cartControllers.GuestCartFromSession(session)

	mergeStatus := "no-guest-cart"
	if len(guestCart) > 0 {
		if err := cartControllers.MergeGuestCart(db, guestCart, user.ID); err != nil {
			mergeStatus = "merge-failed"
		} else {
			session.Delete(cartControllers.SessionCartKey)
			mergeStatus = "merged"
		}
	}

	session.Set(middleware.SessionUserKey, user.ID)
	session.Set(middleware.SessionUsernameKey, user.Username)
	if err := session.Save(); err != nil {
		return "", err
	}
	return mergeStatus, nil
}
