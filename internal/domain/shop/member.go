package shop

import "time"

// Address is a value type embedded by Member and Delivery.
type Address struct {
	City    string `gorm:"column:city" json:"city"`
	Street  string `gorm:"column:street" json:"street"`
	Zipcode string `gorm:"column:zipcode" json:"zipcode"`
}

// Member places orders. It carries no reference back to its orders.
type Member struct {
	ID      uint    `gorm:"primaryKey" json:"id"`
	Name    string  `gorm:"uniqueIndex:idx_members_name;not null;column:name" json:"name"`
	Address Address `gorm:"embedded" json:"address"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Member) TableName() string { return "members" }
