package model

import "time"

// OrderModel maps to the orders table. Status true means the order is
// still an open cart.
type OrderModel struct {
	OrderID      int64             `gorm:"column:order_id;primaryKey;autoIncrement"`
	CustomerID   string            `gorm:"column:customer_id;type:varchar(100);not null;index"`
	CustomerName string            `gorm:"column:customer_name;type:varchar(50);not null"`
	Status       bool              `gorm:"column:status;not null"`
	TotalAmount  int64             `gorm:"column:total_amount;not null"`
	Comment      string            `gorm:"column:comment;type:text;not null"`
	CreatedDate  time.Time         `gorm:"column:created_date;not null"`
	UpdatedDate  time.Time         `gorm:"column:updated_date;not null"`
	Items        []*OrderItemModel `gorm:"foreignKey:OrderID;references:OrderID"`
}

// TableName overrides the default table name.
func (OrderModel) TableName() string {
	return "app.orders"
}

// OrderItemModel maps to the order items table.
type OrderItemModel struct {
	ID               int64     `gorm:"column:id;primaryKey;autoIncrement"`
	OrderID          int64     `gorm:"column:order_id;not null;index"`
	LicenseID        string    `gorm:"column:license_id;type:varchar(100);not null"`
	LicenseName      string    `gorm:"column:license_name;type:varchar(255);not null"`
	Quantity         int       `gorm:"column:quantity;not null"`
	PriceAtOrderTime int64     `gorm:"column:price_at_order_time;not null"`
	CreatedBy        string    `gorm:"column:created_by;type:varchar(100);not null"`
	CreatedDate      time.Time `gorm:"column:created_date;not null"`
}

// TableName overrides the default table name.
func (OrderItemModel) TableName() string {
	return "app.order_items"
}
