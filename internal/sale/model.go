package sale

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/MikeMC777/pedidos-restaurante/internal/order"
)

// Sale is a settled transaction. It is written once and never updated.
type Sale struct {
	ID            string              `json:"id"`
	Code          string              `json:"code"`
	SoldAt        time.Time           `json:"sold_at"`
	Total         decimal.Decimal     `json:"total"`
	Tax           decimal.Decimal     `json:"tax"`
	Discount      decimal.Decimal     `json:"discount"`
	CustomerID    string              `json:"customer_id"`
	Items         []SoldItem          `json:"items"`
	PaymentMethod order.PaymentMethod `json:"payment_method"`
	OrderID       *string             `json:"order_id,omitempty"`
	Channel       string              `json:"channel"`
}

type SoldItem struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// Filter narrows List; zero values match everything.
type Filter struct {
	From       time.Time
	To         time.Time
	CustomerID string
	Limit      int
	Offset     int
}

func (f Filter) normalized() Filter {
	if f.Limit <= 0 || f.Limit > 100 {
		f.Limit = 20
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
	return f
}

// CreateSaleItem línea vendida.
// swagger:model CreateSaleItem
type CreateSaleItem struct {
	ProductID string          `json:"product_id" example:"4e7d4e5c-5cb9-4a3f-9f21-7e1a4f9f2b2a"`
	Name      string          `json:"name"       example:"Pizza"`
	Quantity  int             `json:"quantity"   example:"2"`
	UnitPrice decimal.Decimal `json:"unit_price" swaggertype:"string" example:"12.50"`
	Subtotal  decimal.Decimal `json:"subtotal"   swaggertype:"string" example:"25.00"`
}

// CreateSaleRequest payload de registro de venta.
// swagger:model CreateSaleRequest
type CreateSaleRequest struct {
	Total         decimal.Decimal  `json:"total"          swaggertype:"string" example:"35.00"`
	Tax           *decimal.Decimal `json:"tax,omitempty"  swaggertype:"string" example:"3.67"`
	Discount      *decimal.Decimal `json:"discount,omitempty" swaggertype:"string" example:"0"`
	CustomerID    string           `json:"customer_id"    example:"7c0b1f0e-3b5a-4e77-9d8f-0f3c8d1c2a11"`
	Items         []CreateSaleItem `json:"items"`
	PaymentMethod string           `json:"payment_method" example:"cash"`
	OrderID       string           `json:"order_id,omitempty"`
	Channel       string           `json:"channel,omitempty" example:"online_store"`
}
