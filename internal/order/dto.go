package order

import "github.com/shopspring/decimal"

// CreateOrderItem payload de ítem.
// swagger:model CreateOrderItem
type CreateOrderItem struct {
	ProductID string           `json:"product_id" example:"4e7d4e5c-5cb9-4a3f-9f21-7e1a4f9f2b2a"`
	Name      string           `json:"name"       example:"Pizza"`
	Quantity  int              `json:"quantity"   example:"2"`
	UnitPrice decimal.Decimal  `json:"unit_price" example:"12.50" swaggertype:"string"`
	Subtotal  *decimal.Decimal `json:"subtotal,omitempty" swaggertype:"string"`
}

// CreateNotification preferencia de notificación.
// swagger:model CreateNotification
type CreateNotification struct {
	Channel string `json:"channel" example:"email"`
	Email   string `json:"email"   example:"cliente@example.com"`
	Phone   string `json:"phone"   example:"+51987654321"`
}

// CreateOrderRequest payload de creación de orden.
// swagger:model CreateOrderRequest
type CreateOrderRequest struct {
	RestaurantID  string             `json:"restaurant_id"  example:"b2f5ff47-2b1e-4f22-8a96-5f3c1f2f2e7b"`
	CustomerID    string             `json:"customer_id"    example:"7c0b1f0e-3b5a-4e77-9d8f-0f3c8d1c2a11"`
	Items         []CreateOrderItem  `json:"items"`
	Total         *decimal.Decimal   `json:"total,omitempty" swaggertype:"string" example:"30.00"`
	PaymentMethod string             `json:"payment_method" example:"card"`
	Notification  CreateNotification `json:"notification"`
}

// TransitionRequest payload de cambio de estado.
// swagger:model TransitionRequest
type TransitionRequest struct {
	State string `json:"state" example:"in_progress"`
}

// Draft converts the request into the validated-at-create input of Manager.Create.
func (r CreateOrderRequest) Draft() Draft {
	d := Draft{
		RestaurantID:  r.RestaurantID,
		CustomerID:    r.CustomerID,
		Total:         r.Total,
		PaymentMethod: r.PaymentMethod,
		Notification:  r.Notification,
	}
	for _, it := range r.Items {
		d.Items = append(d.Items, DraftItem(it))
	}
	return d
}
