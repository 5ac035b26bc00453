package order

import (
	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/pkg/errs"
)

// Item is the (product, quantity) tuple of an order. Items are immutable once
// the order is created; partial-quantity step splitting is not modeled, so a
// single step chain covers the full quantity of its product.
type Item struct {
	productID kernel.UUID
	quantity  int
}

// NewItem creates a validated order item. Quantity must be at least 1.
func NewItem(productID kernel.UUID, quantity int) (Item, error) {
	if err := productID.Validate(); err != nil {
		return Item{}, errs.NewValueIsRequiredErrorWithCause("productID", err)
	}
	if quantity < 1 {
		return Item{}, errs.NewValueIsOutOfRangeError("quantity", quantity, 1, "unbounded")
	}

	return Item{
		productID: productID,
		quantity:  quantity,
	}, nil
}

// ProductID returns the ordered product's identifier.
func (i Item) ProductID() kernel.UUID {
	return i.productID
}

// Quantity returns the ordered quantity.
func (i Item) Quantity() int {
	return i.quantity
}
