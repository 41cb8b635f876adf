package cartControllers

import (
	"sort"
	"time"

	"github.com/lumora-shop/lumora-api/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GuestCart is the anonymous cart: product ID -> quantity. It lives in the
// visitor's session until it is merged into a persisted cart on login.
type GuestCart map[uint]int

// Add increments the mapped quantity, starting from zero for new products.
func (g GuestCart) Add(productID uint, quantity int) {
	g[productID] += quantity
}

// Count returns the total number of items across all products.
func (g GuestCart) Count() int {
	total := 0
	for _, qty := range g {
		total += qty
	}
	return total
}

// AddItem upserts a cart row for a logged-in user, adding to the existing
// quantity when the (user, product) row already exists.
func AddItem(db *gorm.DB, userID, productID uint, quantity int) error {
	item := models.CartItem{
		UserID:    userID,
		ProductID: productID,
		Quantity:  quantity,
		AddedAt:   time.Now(),
	}
	return db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "product_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"quantity": gorm.Expr("cart_items.quantity + excluded.quantity"),
			"added_at": time.Now(),
		}),
	}).Create(&item).Error
}

// MergeGuestCart folds every guest entry into the user's persisted cart,
// adding quantities per product. All entries are merged in one transaction;
// on failure nothing is persisted and the caller must keep the session cart
// so no items are lost.
func MergeGuestCart(db *gorm.DB, guest GuestCart, userID uint) error {
	if len(guest) == 0 {
		return nil
	}
	return db.Transaction(func(tx *gorm.DB) error {
		for productID, quantity := range guest {
			if err := AddItem(tx, userID, productID, quantity); err != nil {
				return err
			}
		}
		return nil
	})
}

// SetQuantity replaces the quantity of a cart row. A quantity of zero or
// below removes the row instead of persisting a non-positive value.
func SetQuantity(db *gorm.DB, userID, productID uint, quantity int) error {
	if quantity <= 0 {
		return RemoveItem(db, userID, productID)
	}
	return db.Model(&models.CartItem{}).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Updates(map[string]interface{}{"quantity": quantity, "added_at": time.Now()}).Error
}

// RemoveItem deletes a cart row. Removing an absent item is not an error.
func RemoveItem(db *gorm.DB, userID, productID uint) error {
	return db.Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&models.CartItem{}).Error
}

// UserCartEntries loads the persisted cart of a user in the same shape as a
// guest cart, so both feed the same view and checkout code.
func UserCartEntries(db *gorm.DB, userID uint) (GuestCart, error) {
	var items []models.CartItem
	if err := db.Where("user_id = ?", userID).Find(&items).Error; err != nil {
		return nil, err
	}
	entries := make(GuestCart, len(items))
	for _, item := range items {
		entries[item.ProductID] = item.Quantity
	}
	return entries, nil
}

// CartLine is one row of the cart view, joined against the current product.
type CartLine struct {
	Product  models.Product `json:"product"`
	Quantity int            `json:"quantity"`
	Subtotal float64        `json:"subtotal"`
}

// LoadCart joins cart entries against current products and totals them.
// Entries whose product no longer exists are dropped from the view; their
// cart row is left in place.
func LoadCart(db *gorm.DB, entries GuestCart) ([]CartLine, float64, error) {
	if len(entries) == 0 {
		return []CartLine{}, 0, nil
	}
	ids := make([]uint, 0, len(entries))
	for productID := range entries {
		ids = append(ids, productID)
	}

	var products []models.Product
	if err := db.Where("id IN ?", ids).Find(&products).Error; err != nil {
		return nil, 0, err
	}

	lines := make([]CartLine, 0, len(products))
	var total float64
	for _, product := range products {
		quantity := entries[product.ID]
		subtotal := product.Price * float64(quantity)
		lines = append(lines, CartLine{Product: product, Quantity: quantity, Subtotal: subtotal})
		total += subtotal
	}
	sort.Slice(lines, func(i, j int) bool { return lines[i].Product.ID < lines[j].Product.ID })
	return lines, total, nil
}
