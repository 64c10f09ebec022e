package orderitem

// OrderItem represents one line of an order. Name and price are captured
// when the order is placed and do not follow later menu changes.
type OrderItem struct {
	MenuItemID string  `json:"menu_item_id" bson:"menu_item_id"`
	Name       string  `json:"name"         bson:"name"`
	Price      float64 `json:"price"        bson:"price"`
	Quantity   int     `json:"quantity"     bson:"quantity"`
	Notes      *string `json:"notes"        bson:"notes"`
}
