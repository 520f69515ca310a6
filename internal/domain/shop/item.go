package shop

import (
	"math"
	"time"
)

// ItemKind discriminates the single-table item hierarchy.
type ItemKind string

const (
	KindBook  ItemKind = "B"
	KindAlbum ItemKind = "A"
	KindMovie ItemKind = "M"
)

// Priced is anything sold at a unit price.
type Priced interface {
	UnitPrice() int
}

// Stocked is anything with a stock counter that must never go negative.
type Stocked interface {
	Stock() int
	AddStock(quantity int) error
	RemoveStock(quantity int) error
}

// Item is the persisted row for every item variant. Variant-specific columns
// are left empty for the other kinds.
type Item struct {
	ID            uint     `gorm:"primaryKey" json:"id"`
	DType         ItemKind `gorm:"column:dtype;not null;index" json:"dtype"`
	Name          string   `gorm:"not null;column:name" json:"name"`
	Price         int      `gorm:"not null;column:price;check:chk_items_price,price >= 0" json:"price"`
	StockQuantity int      `gorm:"not null;column:stock_quantity;check:chk_items_stock,stock_quantity >= 0" json:"stock_quantity"`
	Version       int      `gorm:"not null;default:0;column:version" json:"-"`

	Author string `gorm:"column:author" json:"author,omitempty"`
	ISBN   string `gorm:"column:isbn" json:"isbn,omitempty"`

	Artist string `gorm:"column:artist" json:"artist,omitempty"`
	Etc    string `gorm:"column:etc" json:"etc,omitempty"`

	Director string `gorm:"column:director" json:"director,omitempty"`
	Actor    string `gorm:"column:actor" json:"actor,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Item) TableName() string { return "items" }

var (
	_ Priced  = (*Item)(nil)
	_ Stocked = (*Item)(nil)
)

func NewBook(name string, price, stock int, author, isbn string) *Item {
	return &Item{DType: KindBook, Name: name, Price: price, StockQuantity: stock, Author: author, ISBN: isbn}
}

func NewAlbum(name string, price, stock int, artist, etc string) *Item {
	return &Item{DType: KindAlbum, Name: name, Price: price, StockQuantity: stock, Artist: artist, Etc: etc}
}

func NewMovie(name string, price, stock int, director, actor string) *Item {
	return &Item{DType: KindMovie, Name: name, Price: price, StockQuantity: stock, Director: director, Actor: actor}
}

func (i *Item) IsBook() bool { return i != nil && i.DType == KindBook }

func (i *Item) UnitPrice() int { return i.Price }

func (i *Item) Stock() int { return i.StockQuantity }

// AddStock increases stock. A zero quantity is a no-op; negative quantities
// are rejected because RemoveStock is the only decrementing path, as are
// quantities that would overflow the counter.
func (i *Item) AddStock(quantity int) error {
	if quantity < 0 || quantity > math.MaxInt-i.StockQuantity {
		return ErrInvalidQuantity
	}
	i.StockQuantity += quantity
	return nil
}

// RemoveStock decrements stock or fails leaving it untouched.
func (i *Item) RemoveStock(quantity int) error {
	if quantity < 0 {
		return ErrInvalidQuantity
	}
	remaining := i.StockQuantity - quantity
	if remaining < 0 {
		return &InsufficientStockError{ItemID: i.ID, Requested: quantity, Available: i.StockQuantity}
	}
	i.StockQuantity = remaining
	return nil
}
