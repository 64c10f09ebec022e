package order

import (
	"io"

	"github.com/corray333/tutti-amici/internal/service/models/orderitem"
	"github.com/corray333/tutti-amici/internal/service/validation"
)

// Known order statuses. Status is free-form and these values are not enforced.
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusPreparing = "preparing"
	StatusReady     = "ready"
	StatusDelivered = "delivered"
	StatusCancelled = "cancelled"
)

// Customer holds contact details for an order.
type Customer struct {
	Name    string  `json:"name"    bson:"name"`
	Phone   string  `json:"phone"   bson:"phone"`
	Address *string `json:"address" bson:"address"`
}

// Order represents an order placed by a customer.
type Order struct {
	Items    []orderitem.OrderItem `json:"items"    bson:"items"`
	Subtotal float64               `json:"subtotal" bson:"subtotal"`
	Tax      float64               `json:"tax"      bson:"tax"`
	Total    float64               `json:"total"    bson:"total"`
	Status   string                `json:"status"   bson:"status"`
	Customer Customer              `json:"customer" bson:"customer"`
	Notes    *string               `json:"notes"    bson:"notes"`
}

// itemInCreateOrderRequest represents an item in a create order request.
type itemInCreateOrderRequest struct {
	MenuItemID *string  `json:"menu_item_id" validate:"required"`
	Name       *string  `json:"name"         validate:"required"`
	Price      *float64 `json:"price"        validate:"required,gte=0"`
	Quantity   *int     `json:"quantity"     validate:"required,gte=1"`
	Notes      *string  `json:"notes"`
}

func (r *itemInCreateOrderRequest) toModel() orderitem.OrderItem {
	return orderitem.OrderItem{
		MenuItemID: *r.MenuItemID,
		Name:       *r.Name,
		Price:      *r.Price,
		Quantity:   *r.Quantity,
		Notes:      r.Notes,
	}
}

type customerInCreateOrderRequest struct {
	Name    *string `json:"name"    validate:"required"`
	Phone   *string `json:"phone"   validate:"required"`
	Address *string `json:"address"`
}

// createOrderRequest represents a create order request.
type createOrderRequest struct {
	Items    []itemInCreateOrderRequest    `json:"items"    validate:"required,dive"`
	Subtotal *float64                      `json:"subtotal" validate:"required,gte=0"`
	Tax      *float64                      `json:"tax"      validate:"required,gte=0"`
	Total    *float64                      `json:"total"    validate:"required,gte=0"`
	Status   *string                       `json:"status"`
	Customer *customerInCreateOrderRequest `json:"customer" validate:"required"`
	Notes    *string                       `json:"notes"`
}

func (r *createOrderRequest) toModel() Order {
	items := make([]orderitem.OrderItem, len(r.Items))
	for i := range r.Items {
		items[i] = r.Items[i].toModel()
	}

	o := Order{
		Items:    items,
		Subtotal: *r.Subtotal,
		Tax:      *r.Tax,
		Total:    *r.Total,
		Status:   StatusPending,
		Customer: Customer{
			Name:    *r.Customer.Name,
			Phone:   *r.Customer.Phone,
			Address: r.Customer.Address,
		},
		Notes: r.Notes,
	}
	if r.Status != nil {
		o.Status = *r.Status
	}

	return o
}

// Decode reads an order payload, including its items and customer, and
// validates it. Validation failures are reported as *validation.Error.
func Decode(r io.Reader) (Order, error) {
	var req createOrderRequest
	if err := validation.Decode(r, &req); err != nil {
		return Order{}, err
	}

	return req.toModel(), nil
}
