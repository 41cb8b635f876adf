package models

import "time"

type OrderStatus string

const (
	OrderStatusProcessing OrderStatus = "Processing" // initial status on checkout
	OrderStatusShipped    OrderStatus = "Shipped"
	OrderStatusDelivered  OrderStatus = "Delivered"
	OrderStatusCancelled  OrderStatus = "Cancelled"
)

type Order struct {
	ID             uint        `gorm:"primaryKey" json:"id"`
	UserID         uint        `gorm:"index;not null" json:"user_id"`
	Items          []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	TotalAmount    float64     `json:"total_amount"`
	Status         OrderStatus `gorm:"type:VARCHAR(20);default:'Processing'" json:"status"`
	TrackingNumber string      `gorm:"uniqueIndex" json:"tracking_number"`
	CreatedAt      time.Time   `json:"created_at"`
}

// OrderItem captures the price at the moment the order was placed. It is
// never recalculated, so later product price changes leave historical
// orders untouched.
type OrderItem struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	OrderID   uint    `gorm:"index" json:"order_id"`
	ProductID uint    `json:"product_id"`
	Product   Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}
