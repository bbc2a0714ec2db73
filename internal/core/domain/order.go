package domain

// ProductSnapshot is the copy of a product taken when an order is placed.
type ProductSnapshot struct {
	ID          string  `json:"_id"                   validate:"required"`
	Name        string  `json:"name"                  validate:"required"`
	Price       float64 `json:"price"                 validate:"gte=0.01"`
	Description string  `json:"description,omitempty"`
}

// OrderItem is one line of an order.
type OrderItem struct {
	Product  ProductSnapshot `json:"product"  validate:"required"`
	Quantity int             `json:"quantity" validate:"gte=1"`
}

// Order is immutable once stored.
type Order struct {
	ID         string      `json:"_id"`
	CustomerID string      `json:"customerId" validate:"required"`
	Items      []OrderItem `json:"products"   validate:"required,min=1,dive"`
}

// OwnedBy reports whether the order belongs to the given user id.
func (o *Order) OwnedBy(userID string) bool {
	return o.CustomerID == userID
}
