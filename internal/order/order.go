package order

import "fmt"

// Line is one (item, quantity) pair inside an order. It references the
// catalog item by ID so the order always sees the same mutable stock as
// the store; subtotals are recomputed, never stored.
type Line struct {
	ItemID int
	Qty    int
}

// Order is an append-only sequence of lines committed in one transaction.
type Order struct {
	ID    int
	Lines []Line
}

// InsufficientStockError rejects an order whose requested quantity
// exceeds the available stock of an item. The whole order is rejected;
// no stock changes.
type InsufficientStockError struct {
	Item      string
	Available int
	Requested int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %q: %d available, %d requested",
		e.Item, e.Available, e.Requested)
}

// InvalidLineError rejects an order containing a line that cannot be
// fulfilled regardless of stock: an unknown item or a non-positive
// quantity.
type InvalidLineError struct {
	ItemID int
	Reason string
}

func (e *InvalidLineError) Error() string {
	return fmt.Sprintf("invalid order line (item %d): %s", e.ItemID, e.Reason)
}
