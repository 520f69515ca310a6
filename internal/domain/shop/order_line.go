package shop

// OrderLine belongs to one order through OrderID only.
type OrderLine struct {
	ID         uint  `gorm:"primaryKey" json:"id"`
	OrderID    uint  `gorm:"not null;index;column:order_id" json:"-"`
	ItemID     uint  `gorm:"not null;index;column:item_id" json:"-"`
	Item       *Item `gorm:"foreignKey:ItemID" json:"item,omitempty"`
	OrderPrice int   `gorm:"not null;column:order_price" json:"order_price"`
	Count      int   `gorm:"not null;column:count" json:"count"`
}

func (OrderLine) TableName() string { return "order_lines" }

// CreateOrderLine captures the price and removes count from the item's stock.
func CreateOrderLine(item *Item, orderPrice, count int) (OrderLine, error) {
	if item == nil {
		return OrderLine{}, ErrInvalidQuantity
	}
	if count <= 0 {
		return OrderLine{}, ErrInvalidQuantity
	}
	if err := item.RemoveStock(count); err != nil {
		return OrderLine{}, err
	}
	return OrderLine{ItemID: item.ID, Item: item, OrderPrice: orderPrice, Count: count}, nil
}

func (l OrderLine) TotalPrice() int { return l.OrderPrice * l.Count }

func (l *OrderLine) cancel() error {
	return l.Item.AddStock(l.Count)
}
