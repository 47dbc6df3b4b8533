// Package persist materializes the catalog store and the order ledger
// to flat text records and restores them, all-or-nothing, through a
// pluggable line-oriented backend.
package persist

import (
	"context"

	"go.uber.org/zap"

	"TechStore/internal/catalog"
	"TechStore/internal/order"
	"TechStore/internal/record"
)

// LineStore is the trusted byte-level collaborator: it writes a full
// sequence of lines to a named source (rewriting, creating parents as
// needed) and reads it back, returning an empty sequence when the
// source does not exist.
type LineStore interface {
	WriteLines(ctx context.Context, name string, lines []string) error
	ReadLines(ctx context.Context, name string) ([]string, error)
	Ping(ctx context.Context) error
}

// Source names understood by every LineStore backend.
const (
	CatalogSource = "catalog.txt"
	OrdersSource  = "orders.txt"
)

type Gateway struct {
	Lines LineStore
	Log   *zap.Logger
}

// SaveCatalog rewrites the catalog source with one encoded line per
// item, in list order.
func (g *Gateway) SaveCatalog(ctx context.Context, s *catalog.Store) error {
	items := s.List()
	lines := make([]string, 0, len(items))
	for _, it := range items {
		lines = append(lines, record.EncodeItem(it))
	}

	if err := g.Lines.WriteLines(ctx, CatalogSource, lines); err != nil {
		return err
	}
	g.log().Info("catalog saved", zap.Int("items", len(lines)))
	return nil
}

// LoadCatalog decodes every line of the catalog source and replaces the
// store content, adopting max(id)+1 as the identifier counter. Any
// decode error aborts the load before the store is touched.
func (g *Gateway) LoadCatalog(ctx context.Context, s *catalog.Store) error {
	lines, err := g.Lines.ReadLines(ctx, CatalogSource)
	if err != nil {
		return err
	}

	items := make([]*catalog.Item, 0, len(lines))
	maxID := 0
	for _, line := range lines {
		it, err := record.DecodeItem(line)
		if err != nil {
			return err
		}
		if it.ID > maxID {
			maxID = it.ID
		}
		stored := it
		items = append(items, &stored)
	}

	s.Restore(items, maxID+1)
	g.log().Info("catalog loaded", zap.Int("items", len(items)), zap.Int("next_id", maxID+1))
	return nil
}

// SaveOrders rewrites the orders source with one line per order line,
// tagged with its parent order id. Lines whose item has since been
// deleted from the catalog cannot be resolved and are dropped with a
// warning.
func (g *Gateway) SaveOrders(ctx context.Context, l *order.Ledger) error {
	orders := l.List()
	lines := make([]string, 0, len(orders))
	for _, o := range orders {
		for _, ln := range o.Lines {
			it, ok := l.Resolve(ln)
			if !ok {
				g.log().Warn("order line item no longer in catalog, not persisted",
					zap.Int("order_id", o.ID), zap.Int("item_id", ln.ItemID))
				continue
			}
			sub, _ := l.Subtotal(ln)
			lines = append(lines, record.EncodeOrderLine(o.ID, it.Name, ln.Qty, sub))
		}
	}

	if err := g.Lines.WriteLines(ctx, OrdersSource, lines); err != nil {
		return err
	}
	g.log().Info("orders saved", zap.Int("orders", len(orders)), zap.Int("lines", len(lines)))
	return nil
}

// LoadOrders decodes the orders source, grouping lines by their leading
// order id (non-contiguous ids merge into the same order) and resolving
// each item by name against the already-loaded catalog. Any malformed
// line or dangling reference aborts the whole load; on success the
// ledger is replaced and adopts max(id)+1.
func (g *Gateway) LoadOrders(ctx context.Context, l *order.Ledger) error {
	lines, err := g.Lines.ReadLines(ctx, OrdersSource)
	if err != nil {
		return err
	}

	cat := l.Catalog()
	var orders []*order.Order
	byID := make(map[int]*order.Order)
	maxID := 0

	for _, line := range lines {
		rec, err := record.DecodeOrderLine(line)
		if err != nil {
			return err
		}

		it, ok := cat.FindByName(rec.Item)
		if !ok {
			return &record.DanglingRefError{OrderID: rec.OrderID, Item: rec.Item}
		}

		o := byID[rec.OrderID]
		if o == nil {
			o = &order.Order{ID: rec.OrderID}
			byID[rec.OrderID] = o
			orders = append(orders, o)
			if rec.OrderID > maxID {
				maxID = rec.OrderID
			}
		}
		o.Lines = append(o.Lines, order.Line{ItemID: it.ID, Qty: rec.Qty})
	}

	l.Restore(orders, maxID+1)
	g.log().Info("orders loaded", zap.Int("orders", len(orders)), zap.Int("next_id", maxID+1))
	return nil
}

func (g *Gateway) log() *zap.Logger {
	if g.Log != nil {
		return g.Log
	}
	return zap.NewNop()
}
