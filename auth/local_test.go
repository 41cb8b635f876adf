package auth

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	cartControllers "github.com/lumora-shop/lumora-api/controllers/cart"
	"github.com/lumora-shop/lumora-api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
	))
	return db
}

func newTestRouter(db *gorm.DB) *gin.Engine {
	r := gin.New()
	store := cookie.NewStore([]byte("test-secret"))
	r.Use(sessions.Sessions("lumora_session", store))

	r.POST("/auth/signup", SignupHandler(db))
	r.POST("/auth/login", LoginHandler(db))
	r.POST("/auth/logout", LogoutHandler())
	r.GET("/cart", cartControllers.GetCart(db))
	r.GET("/cart/count", cartControllers.GetCartCount(db))
	r.POST("/cart/items", cartControllers.AddToCart(db))
	return r
}

func performRequest(t *testing.T, r http.Handler, method, path, cookieHeader string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var body *bytes.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(data)
	} else {
		body = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	if cookieHeader != "" {
		req.Header.Set("Cookie", cookieHeader)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// sessionCookie returns the updated session cookie from a response, or the
// previous one when the response did not touch the session.
func sessionCookie(w *httptest.ResponseRecorder, prev string) string {
	for _, ck := range w.Result().Cookies() {
		if ck.Name == "lumora_session" {
			return ck.Name + "=" + ck.Value
		}
	}
	return prev
}

func createLocalUser(t *testing.T, db *gorm.DB, email, password string) models.User {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	user := models.User{Username: "Test User", Email: email, Password: string(hashed), Contact: "5550001", Provider: "local"}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func TestGuestCartMergedOnLogin(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.Create(&models.Product{ID: 3, Name: "Paneer Roll", Category: "Snacks", Price: 10, Stock: 50}).Error)
	user := createLocalUser(t, db, "merge@example.com", "secret123")
	r := newTestRouter(db)

	// Guest adds the same product twice; quantities accumulate in the session.
	w := performRequest(t, r, http.MethodPost, "/cart/items", "", gin.H{"product_id": 3, "quantity": 2})
	require.Equal(t, http.StatusOK, w.Code)
	cookieHeader := sessionCookie(w, "")
	require.NotEmpty(t, cookieHeader)

	w = performRequest(t, r, http.MethodPost, "/cart/items", cookieHeader, gin.H{"product_id": 3, "quantity": 1})
	require.Equal(t, http.StatusOK, w.Code)
	cookieHeader = sessionCookie(w, cookieHeader)

	w = performRequest(t, r, http.MethodGet, "/cart/count", cookieHeader, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"cart_item_count": 3}`, w.Body.String())

	// Login merges the session cart into the persisted cart.
	w = performRequest(t, r, http.MethodPost, "/auth/login", cookieHeader,
		gin.H{"identifier": "merge@example.com", "password": "secret123"})
	require.Equal(t, http.StatusOK, w.Code)
	cookieHeader = sessionCookie(w, cookieHeader)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "merged", resp["merge_status"])

	var item models.CartItem
	require.NoError(t, db.Where("user_id = ? AND product_id = ?", user.ID, 3).First(&item).Error)
	assert.Equal(t, 3, item.Quantity)

	// The logged-in cart view now comes from the database.
	w = performRequest(t, r, http.MethodGet, "/cart", cookieHeader, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var view struct {
		TotalPrice float64 `json:"total_price"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))
	assert.InDelta(t, 30.0, view.TotalPrice, 1e-9)

	// The session cart was discarded by the merge: with the persisted rows
	// gone, nothing is left to count.
	require.NoError(t, db.Where("user_id = ?", user.ID).Delete(&models.CartItem{}).Error)
	w = performRequest(t, r, http.MethodGet, "/cart/count", cookieHeader, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"cart_item_count": 0}`, w.Body.String())
}

func TestFailedMergeKeepsSessionCart(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.Create(&models.Product{ID: 3, Name: "Paneer Roll", Category: "Snacks", Price: 10, Stock: 50}).Error)
	createLocalUser(t, db, "keep@example.com", "secret123")
	r := newTestRouter(db)

	w := performRequest(t, r, http.MethodPost, "/cart/items", "", gin.H{"product_id": 3, "quantity": 2})
	require.Equal(t, http.StatusOK, w.Code)
	cookieHeader := sessionCookie(w, "")

	require.NoError(t, db.Migrator().DropTable(&models.CartItem{}))

	// Login still succeeds, the merge is reported as failed, and the guest
	// cart must survive in the session for a later retry.
	w = performRequest(t, r, http.MethodPost, "/auth/login", cookieHeader,
		gin.H{"identifier": "keep@example.com", "password": "secret123"})
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "merge-failed", resp["merge_status"])
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	db := newTestDB(t)
	createLocalUser(t, db, "who@example.com", "secret123")
	r := newTestRouter(db)

	w := performRequest(t, r, http.MethodPost, "/auth/login", "",
		gin.H{"identifier": "who@example.com", "password": "nope"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLoginByContactNumber(t *testing.T) {
	db := newTestDB(t)
	createLocalUser(t, db, "phone@example.com", "secret123")
	r := newTestRouter(db)

	w := performRequest(t, r, http.MethodPost, "/auth/login", "",
		gin.H{"identifier": "5550001", "password": "secret123"})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSignupRejectsDuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	createLocalUser(t, db, "dup@example.com", "secret123")
	r := newTestRouter(db)

	w := performRequest(t, r, http.MethodPost, "/auth/signup", "", gin.H{
		"name": "Dup", "email": "dup@example.com", "contact": "5550002",
		"address": "12 Main St", "dob": "2000-01-01",
		"password": "secret123", "confirm_password": "secret123",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestSignupRejectsPasswordMismatch(t *testing.T) {
	db := newTestDB(t)
	r := newTestRouter(db)

	w := performRequest(t, r, http.MethodPost, "/auth/signup", "", gin.H{
		"name": "New", "email": "new@example.com", "contact": "5550003",
		"address": "12 Main St", "dob": "2000-01-01",
		"password": "secret123", "confirm_password": "different",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
