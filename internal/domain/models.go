// Package domain defines the persistence models for products, orders,
// order items, and the activity log. These types are mapped with GORM and
// form the core data layer of the food-ordering backend.
//
// Column names and types mirror the persisted schema managed by the
// storage package (see Store.InitSchema), which is created with raw,
// engine-specific DDL rather than AutoMigrate so that the embedded and
// networked engines stay column-compatible.
package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// StringList is an ordered list of strings persisted as a JSON array in a
// single text column. It is used for product ingredients.
type StringList []string

// Value implements driver.Valuer, serializing the list as a JSON array.
// An empty or nil list is stored as "[]".
func (l StringList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return "[]", nil
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner. NULL and empty strings decode to an empty
// list; anything else must be a JSON array of strings.
func (l *StringList) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*l = nil
		return nil
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	default:
		return fmt.Errorf("unsupported ingredients type %T", src)
	}
	if len(raw) == 0 {
		*l = nil
		return nil
	}
	return json.Unmarshal(raw, l)
}

// Product is a catalog entry prepared by a home cook. Products are created
// by an admin action or the seed step and may be deleted unconditionally;
// historical orders keep their own snapshot of name/price/cook contact.
//
// Fields:
//   - ID: short opaque string id (8 hex chars of a UUID), primary key.
//   - Price: non-negative decimal, validated at the service boundary.
//   - Ingredients: ordered list persisted as a JSON array string.
//   - CookName/CookPhone/CookTelegram: contact triple for the preparer.
type Product struct {
	ID           string     `json:"id"            gorm:"type:varchar(50);primaryKey"`
	Name         string     `json:"name"          gorm:"type:varchar(255);not null"`
	Description  string     `json:"description"   gorm:"type:text"`
	Price        float64    `json:"price"         gorm:"not null"`
	Image        string     `json:"image"         gorm:"type:varchar(500)"`
	Category     string     `json:"category"      gorm:"type:varchar(100)"`
	Ingredients  StringList `json:"ingredients"   gorm:"type:text"`
	CookName     string     `json:"cook_name"     gorm:"type:varchar(255)"`
	CookPhone    string     `json:"cook_phone"    gorm:"type:varchar(50)"`
	CookTelegram string     `json:"cook_telegram" gorm:"type:varchar(100)"`
}

// TableName returns the database table name for Product.
func (Product) TableName() string { return "products" }

// Order is a customer order. It is created atomically with its line items,
// mutated only through status transitions, and never deleted in normal
// operation (DeleteOrder exists as an administrative escape hatch).
//
// TotalAmount is computed server-side at creation from the then-current
// product prices and frozen; CreatedAt is set once and immutable.
type Order struct {
	ID               string    `json:"id"                          gorm:"type:varchar(50);primaryKey"`
	CustomerName     string    `json:"customer_name"               gorm:"type:varchar(255);not null"`
	CustomerPhone    string    `json:"customer_phone"              gorm:"type:varchar(50);not null"`
	CustomerAddress  string    `json:"customer_address"            gorm:"type:text"`
	CustomerTelegram string    `json:"customer_telegram,omitempty" gorm:"type:varchar(100)"`
	UserTelegramID   *int64    `json:"user_telegram_id,omitempty"`
	TotalAmount      float64   `json:"total_amount"`
	Status           Status    `json:"status"                      gorm:"type:varchar(50)"`
	CreatedAt        time.Time `json:"created_at"`

	// Items is populated from the decoded item aggregate; the rows live in
	// order_items and are written explicitly inside the creation transaction.
	Items []OrderItem `json:"items" gorm:"-"`
}

// TableName returns the database table name for Order.
func (Order) TableName() string { return "orders" }

// OrderItem is one line of an order. Product name, price, and the cook
// contact triple are snapshotted at order time so later product edits or
// deletes cannot retroactively change a historical order. Rows are
// immutable once written.
type OrderItem struct {
	ID           int64   `json:"id,omitempty"       gorm:"primaryKey;autoIncrement"`
	OrderID      string  `json:"order_id,omitempty" gorm:"type:varchar(50);not null"`
	ProductID    string  `json:"product_id"         gorm:"type:varchar(50);not null"`
	ProductName  string  `json:"product_name"       gorm:"type:varchar(255)"`
	Quantity     int     `json:"quantity"           gorm:"not null"`
	Price        float64 `json:"price"              gorm:"not null"`
	CookName     string  `json:"cook_name,omitempty"     gorm:"type:varchar(255)"`
	CookPhone    string  `json:"cook_phone,omitempty"    gorm:"type:varchar(50)"`
	CookTelegram string  `json:"cook_telegram,omitempty" gorm:"type:varchar(100)"`
}

// TableName returns the database table name for OrderItem.
func (OrderItem) TableName() string { return "order_items" }

// Activity is an append-only audit record of admin and lifecycle actions.
type Activity struct {
	ID         int64     `json:"id"          gorm:"primaryKey;autoIncrement"`
	UserID     string    `json:"user_id"     gorm:"type:varchar(100);not null"`
	Username   string    `json:"username"    gorm:"type:varchar(255)"`
	FirstName  string    `json:"first_name"  gorm:"type:varchar(255)"`
	LastName   string    `json:"last_name"   gorm:"type:varchar(255)"`
	ActionType string    `json:"action_type" gorm:"type:varchar(100);not null"`
	Details    string    `json:"details"     gorm:"type:text"`
	Timestamp  time.Time `json:"timestamp"`
	IPAddress  string    `json:"ip_address,omitempty" gorm:"type:varchar(50)"`
}

// TableName returns the database table name for Activity.
func (Activity) TableName() string { return "activity_moderation" }
