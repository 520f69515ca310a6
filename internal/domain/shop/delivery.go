package shop

type DeliveryStatus string

const (
	DeliveryReady    DeliveryStatus = "READY"
	DeliveryComplete DeliveryStatus = "COMP"
)

// Delivery is owned by exactly one order; the order holds the foreign key.
type Delivery struct {
	ID      uint           `gorm:"primaryKey" json:"id"`
	Address Address        `gorm:"embedded" json:"address"`
	Status  DeliveryStatus `gorm:"not null;column:status;default:READY" json:"status"`
}

func (Delivery) TableName() string { return "deliveries" }

func NewDelivery(addr Address) *Delivery {
	return &Delivery{Address: addr, Status: DeliveryReady}
}
