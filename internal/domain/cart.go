package domain

import (
	"errors"
	"time"
)

// CartItem is a (product snapshot, quantity) pair. A cart holds at most one
// item per product id.
type CartItem struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

// Subtotal is the per-line price contribution.
func (i CartItem) Subtotal() float64 {
	return i.Product.Price * float64(i.Quantity)
}

// Cart is the list of items a user intends to buy. It is mutated through its
// methods only; persistence serializes the whole value.
type Cart struct {
	UserID    string     `json:"user_id"`
	Items     []CartItem `json:"items"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func NewCart(userID string) *Cart {
	return &Cart{
		UserID:    userID,
		Items:     make([]CartItem, 0),
		UpdatedAt: time.Now().UTC(),
	}
}

func (c *Cart) item(productID string) (*CartItem, int) {
	for i := range c.Items {
		if c.Items[i].Product.ID == productID {
			return &c.Items[i], i
		}
	}
	return nil, -1
}

// AddProduct increments the quantity of an existing line for the product, or
// appends a new line with quantity 1 at the end. Existing order is preserved.
func (c *Cart) AddProduct(product Product) error {
	if product.ID == "" {
		return errors.New("product ID cannot be empty for cart item")
	}
	if item, _ := c.item(product.ID); item != nil {
		item.Quantity++
	} else {
		c.Items = append(c.Items, CartItem{Product: product, Quantity: 1})
	}
	c.UpdatedAt = time.Now().UTC()
	return nil
}

// UpdateQuantity sets the quantity of an existing line. A non-positive
// quantity removes the line entirely.
func (c *Cart) UpdateQuantity(productID string, quantity int) error {
	item, index := c.item(productID)
	if item == nil {
		return ErrNotFound
	}
	if quantity < 1 {
		c.Items = append(c.Items[:index], c.Items[index+1:]...)
	} else {
		item.Quantity = quantity
	}
	c.UpdatedAt = time.Now().UTC()
	return nil
}

// RemoveProduct deletes the line for the product. Removing an absent product
// is a no-op.
func (c *Cart) RemoveProduct(productID string) {
	_, index := c.item(productID)
	if index == -1 {
		return
	}
	c.Items = append(c.Items[:index], c.Items[index+1:]...)
	c.UpdatedAt = time.Now().UTC()
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.Items = make([]CartItem, 0)
	c.UpdatedAt = time.Now().UTC()
}

// TotalPrice sums price times quantity over all lines. No rounding happens
// before the final display step, so the total equals the sum of the line
// subtotals exactly.
func (c *Cart) TotalPrice() float64 {
	var total float64
	for _, item := range c.Items {
		total += item.Subtotal()
	}
	return total
}
