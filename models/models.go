// Package models holds the persistent domain records. Field names follow the
// storefront's wire format (Spanish keys) so handlers can serve rows directly.
package models

import (
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// The storefront API speaks plain JSON numbers for money.
	decimal.MarshalJSONWithoutQuotes = true
}

type Category struct {
	ID       uint      `gorm:"primaryKey" json:"id_categoria"`
	Name     string    `gorm:"not null" json:"nombre"`
	Products []Product `gorm:"foreignKey:CategoryID" json:"-"`
}

type Product struct {
	ID          uint            `gorm:"primaryKey" json:"id_producto"`
	Name        string          `gorm:"not null" json:"nombre"`
	Description string          `json:"descripcion"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2)" json:"precio"`
	Stock       int             `gorm:"not null;default:0" json:"stock"`
	CategoryID  uint            `gorm:"index" json:"id_categoria"`
	Brand       string          `json:"marca"`
	Image       string          `json:"imagen"`
}

type Customer struct {
	ID           uint      `gorm:"primaryKey" json:"id_cliente"`
	Name         string    `gorm:"not null" json:"nombre"`
	Surnames     string    `json:"apellidos"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	Phone        string    `json:"telefono,omitempty"`
	PasswordHash string    `json:"-"`
	Points       int       `gorm:"not null;default:0" json:"puntos_fidelidad"`
	CreatedAt    time.Time `json:"-"`
	Orders       []Order   `gorm:"foreignKey:CustomerID" json:"-"`
}

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pendiente"
	OrderStatusCompleted OrderStatus = "completado"
)

// Payment methods accepted at checkout.
const (
	PaymentCard   = "card"
	PaymentPaypal = "paypal"
	PaymentCash   = "cash"
)

type Order struct {
	ID            uint            `gorm:"primaryKey" json:"id_pedido"`
	CustomerID    uint            `gorm:"index;not null" json:"id_cliente"`
	Customer      Customer        `json:"-"`
	PlacedAt      time.Time       `gorm:"not null" json:"fecha_pedido"`
	Status        OrderStatus     `gorm:"not null" json:"estado"`
	Total         decimal.Decimal `gorm:"type:decimal(10,2)" json:"total"`
	PaymentMethod string          `gorm:"not null" json:"metodo_pago"`
	Lines         []OrderLine     `gorm:"foreignKey:OrderID" json:"productos"`
}

// OrderLine snapshots the unit price the buyer saw at cart time; it is never
// re-read from the live product.
type OrderLine struct {
	ID        uint            `gorm:"primaryKey" json:"-"`
	OrderID   uint            `gorm:"index;not null" json:"-"`
	ProductID uint            `gorm:"not null" json:"id_producto"`
	Quantity  int             `gorm:"not null" json:"cantidad"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(10,2)" json:"precio_unitario"`
}

// All is the migration set, in foreign-key order.
func All() []any {
	return []any{&Category{}, &Product{}, &Customer{}, &Order{}, &OrderLine{}}
}
