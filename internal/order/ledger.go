package order

import (
	"github.com/shopspring/decimal"

	"TechStore/internal/catalog"
)

// Ledger records committed orders. It resolves every line through the
// catalog store so a deduction performed on commit is visible through
// both views of the item.
type Ledger struct {
	catalog *catalog.Store
	orders  []*Order
	nextID  int
}

func NewLedger(c *catalog.Store) *Ledger {
	return &Ledger{catalog: c, nextID: 1}
}

// Create runs the validate-then-commit transaction. Every line is
// checked first: unknown item or non-positive quantity fails with
// InvalidLineError, requesting more than the available stock fails with
// InsufficientStockError. Quantities are accumulated per item so the
// same item spread over several lines cannot overdraw its stock. Only
// when all lines pass is stock deducted and the order assigned an ID
// and stored; on any failure nothing changes.
func (l *Ledger) Create(lines []Line) (*Order, error) {
	resolved := make([]*catalog.Item, len(lines))
	requested := make(map[int]int, len(lines))

	for i, ln := range lines {
		it, ok := l.catalog.FindByID(ln.ItemID)
		if !ok {
			return nil, &InvalidLineError{ItemID: ln.ItemID, Reason: "item not found"}
		}
		if ln.Qty <= 0 {
			return nil, &InvalidLineError{ItemID: ln.ItemID, Reason: "quantity must be greater than zero"}
		}

		requested[ln.ItemID] += ln.Qty
		if requested[ln.ItemID] > it.Stock {
			return nil, &InsufficientStockError{
				Item:      it.Name,
				Available: it.Stock,
				Requested: requested[ln.ItemID],
			}
		}
		resolved[i] = it
	}

	o := &Order{ID: l.nextID, Lines: append([]Line(nil), lines...)}
	l.nextID++

	for i, ln := range lines {
		resolved[i].Stock -= ln.Qty
	}
	l.orders = append(l.orders, o)
	return o, nil
}

// Resolve returns the catalog item a line refers to.
func (l *Ledger) Resolve(ln Line) (*catalog.Item, bool) {
	return l.catalog.FindByID(ln.ItemID)
}

// Subtotal recomputes price × quantity for a line. The bool is false
// when the item no longer exists in the catalog.
func (l *Ledger) Subtotal(ln Line) (decimal.Decimal, bool) {
	it, ok := l.Resolve(ln)
	if !ok {
		return decimal.Zero, false
	}
	return it.Price.Mul(decimal.NewFromInt(int64(ln.Qty))), true
}

// Total sums the resolvable line subtotals of an order.
func (l *Ledger) Total(o *Order) decimal.Decimal {
	total := decimal.Zero
	for _, ln := range o.Lines {
		if sub, ok := l.Subtotal(ln); ok {
			total = total.Add(sub)
		}
	}
	return total
}

// List returns a snapshot of all orders in commit order.
func (l *Ledger) List() []*Order {
	out := make([]*Order, len(l.orders))
	copy(out, l.orders)
	return out
}

func (l *Ledger) HasAny() bool {
	return len(l.orders) > 0
}

// Catalog exposes the store the ledger resolves against.
func (l *Ledger) Catalog() *catalog.Store {
	return l.catalog
}

// Restore replaces the ledger content wholesale and adopts the given
// identifier counter. Used by the persistence gateway; no stock is
// deducted, the persisted catalog already reflects past orders.
func (l *Ledger) Restore(orders []*Order, nextID int) {
	l.orders = orders
	l.nextID = nextID
}

// SetNextID adopts an identifier counter, typically max(id)+1 after a load.
func (l *Ledger) SetNextID(n int) {
	l.nextID = n
}
