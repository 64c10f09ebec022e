package orderevent

import (
	"time"

	"github.com/corray333/tutti-amici/internal/service/models/order"
)

// OrderCreated is published after an order has been stored.
type OrderCreated struct {
	ID           string    `json:"id"`
	Status       string    `json:"status"`
	Total        float64   `json:"total"`
	CustomerName string    `json:"customer_name"`
	ItemCount    int       `json:"item_count"`
	CreatedAt    time.Time `json:"created_at"`
}

// NewOrderCreated builds the event for an order stored under id.
func NewOrderCreated(id string, o order.Order, at time.Time) OrderCreated {
	count := 0
	for _, item := range o.Items {
		count += item.Quantity
	}

	return OrderCreated{
		ID:           id,
		Status:       o.Status,
		Total:        o.Total,
		CustomerName: o.Customer.Name,
		ItemCount:    count,
		CreatedAt:    at.UTC(),
	}
}
