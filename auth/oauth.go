package auth

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"os"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/lumora-shop/lumora-api/models"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/facebook"
	"golang.org/x/oauth2/google"
	"gorm.io/gorm"
)

const sessionOAuthStateKey = "oauth_state"

// oauthConfig returns the provider config and its userinfo endpoint.
func oauthConfig(provider string) (*oauth2.Config, string, error) {
	baseURL := os.Getenv("BASE_URL")
	if baseURL == "" {
		baseURL = "http://127.0.0.1:8080"
	}

	switch provider {
	case "google":
		return &oauth2.Config{
			ClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
			ClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),
			RedirectURL:  baseURL + "/auth/google/callback",
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     google.Endpoint,
		}, "https://openidconnect.googleapis.com/v1/userinfo", nil
	case "facebook":
		return &oauth2.Config{
			ClientID:     os.Getenv("FACEBOOK_CLIENT_ID"),
			ClientSecret: os.Getenv("FACEBOOK_CLIENT_SECRET"),
			RedirectURL:  baseURL + "/auth/facebook/callback",
			Scopes:       []string{"email", "public_profile"},
			Endpoint:     facebook.Endpoint,
		}, "https://graph.facebook.com/me?fields=id,name,email,picture{url}", nil
	default:
		return nil, "", errors.New("unsupported provider")
	}
}

// GET /auth/:provider
func SocialLoginHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		cfg, _, err := oauthConfig(c.Param("provider"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unsupported provider."})
			return
		}

		state := randomToken(16)
		session := sessions.Default(c)
		session.Set(sessionOAuthStateKey, state)
		if err := session.Save(); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to start login."})
			return
		}

		c.Redirect(http.StatusTemporaryRedirect, cfg.AuthCodeURL(state))
	}
}

// GET /auth/:provider/callback
func SocialCallbackHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		provider := c.Param("provider")
		cfg, userinfoURL, err := oauthConfig(provider)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unsupported provider."})
			return
		}

		session := sessions.Default(c)
		savedState, _ := session.Get(sessionOAuthStateKey).(string)
		session.Delete(sessionOAuthStateKey)
		session.Save()
		if savedState == "" || c.Query("state") != savedState {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid OAuth state."})
			return
		}

		token, err := cfg.Exchange(c.Request.Context(), c.Query("code"))
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "An error occurred during authentication. Please try again."})
			return
		}

		email, name, picture, err := fetchUserInfo(c, cfg, token, provider, userinfoURL)
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": "An error occurred during authentication. Please try again."})
			return
		}
		if email == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Could not retrieve email from provider. Please try a different login method."})
			return
		}

		processSocialLogin(c, db, provider, email, name, picture)
	}
}

func fetchUserInfo(c *gin.Context, cfg *oauth2.Config, token *oauth2.Token, provider, userinfoURL string) (email, name, picture string, err error) {
	client := cfg.Client(c.Request.Context(), token)
	resp, err := client.Get(userinfoURL)
	if err != nil {
		return "", "", "", err
	}
	defer resp.Body.Close()

	switch provider {
	case "facebook":
		var info struct {
			Email   string `json:"email"`
			Name    string `json:"name"`
			Picture struct {
				Data struct {
					URL string `json:"url"`
				} `json:"data"`
			} `json:"picture"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
			return "", "", "", err
		}
		return info.Email, info.Name, info.Picture.Data.URL, nil
	default:
		var info struct {
			Email   string `json:"email"`
			Name    string `json:"name"`
			Picture string `json:"picture"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
			return "", "", "", err
		}
		return info.Email, info.Name, info.Picture, nil
	}
}

// processSocialLogin finds or creates the user for a provider identity and
// finishes the login, merging any guest cart.
func processSocialLogin(c *gin.Context, db *gorm.DB, provider, email, name, picture string) {
	var user models.User
	err := db.Where("email = ?", email).First(&user).Error
	if err == gorm.ErrRecordNotFound {
		user = models.User{
			Username:          name,
			Email:             email,
			Provider:          provider,
			ProfilePictureURL: picture,
		}
		if err := db.Create(&user).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "A database error occurred during social login."})
			return
		}
	} else if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "A database error occurred during social login."})
		return
	}

	mergeStatus, err := completeLogin(c, db, user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "A database error occurred during social login."})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":      "Welcome, " + user.Username + "!",
		"user":         user,
		"merge_status": mergeStatus,
	})
}

func randomToken(n int) string {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "state"
	}
	return hex.EncodeToString(buf)
}
