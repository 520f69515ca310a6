package shop

import (
	"fmt"
	"time"
)

type OrderStatus string

const (
	OrderStatusOrdered   OrderStatus = "ORDERED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

func (s OrderStatus) Valid() bool {
	return s == OrderStatusOrdered || s == OrderStatusCancelled
}

// Order is the aggregate root. Member is a reference; Delivery and Lines are
// owned. Nothing reachable from an Order points back at it, so the struct
// serializes without cycles.
type Order struct {
	ID         uint        `gorm:"primaryKey" json:"id"`
	MemberID   uint        `gorm:"not null;index;column:member_id" json:"-"`
	Member     *Member     `gorm:"foreignKey:MemberID" json:"member,omitempty"`
	DeliveryID uint        `gorm:"not null;uniqueIndex;column:delivery_id" json:"-"`
	Delivery   *Delivery   `gorm:"foreignKey:DeliveryID" json:"delivery,omitempty"`
	Lines      []OrderLine `gorm:"foreignKey:OrderID" json:"order_lines,omitempty"`
	OrderDate  time.Time   `gorm:"not null;column:order_date" json:"order_date"`
	Status     OrderStatus `gorm:"not null;index;column:status" json:"status"`
}

func (Order) TableName() string { return "orders" }

// CreateOrder builds a new ORDERED aggregate. Stock has already been removed
// by the lines passed in (see CreateOrderLine).
func CreateOrder(member *Member, delivery *Delivery, lines ...OrderLine) (*Order, error) {
	if member == nil || member.ID == 0 {
		return nil, fmt.Errorf("order requires a persisted member")
	}
	if delivery == nil {
		return nil, fmt.Errorf("order requires a delivery")
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("order requires at least one line")
	}
	return &Order{
		MemberID:  member.ID,
		Member:    member,
		Delivery:  delivery,
		Lines:     lines,
		OrderDate: time.Now().UTC(),
		Status:    OrderStatusOrdered,
	}, nil
}

// Cancel flips the order to CANCELLED and returns each line's count to its
// item. Lines must have their Item loaded. On error nothing is modified.
func (o *Order) Cancel() error {
	if o.Status == OrderStatusCancelled {
		return ErrOrderAlreadyCancelled
	}
	if o.Delivery != nil && o.Delivery.Status == DeliveryComplete {
		return ErrOrderAlreadyDelivered
	}
	for i := range o.Lines {
		if o.Lines[i].Item == nil {
			return fmt.Errorf("order line %d has no item loaded", o.Lines[i].ID)
		}
	}
	for i := range o.Lines {
		if err := o.Lines[i].cancel(); err != nil {
			return err
		}
	}
	o.Status = OrderStatusCancelled
	return nil
}

func (o *Order) TotalPrice() int {
	total := 0
	for _, l := range o.Lines {
		total += l.TotalPrice()
	}
	return total
}
