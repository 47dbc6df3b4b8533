// Package record encodes catalog items and order lines to the
// ;-delimited flat text format and decodes them strictly, fail-fast.
package record

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"TechStore/internal/catalog"
)

// Variant tags on the wire. Kept in the historical Spanish form so
// existing data files keep loading.
const (
	TagGeneric = "Producto"
	TagDrink   = "Bebida"
	TagFood    = "Comida"
)

const (
	sep        = ";"
	dateLayout = "2006-01-02"
)

// EncodeItem renders one catalog item as
// tag;id;name;price;stock[;extra] with the price fixed to two decimals,
// liters to one, and the expiry date as YYYY-MM-DD.
func EncodeItem(it *catalog.Item) string {
	fields := []string{
		tagFor(it.Kind),
		strconv.Itoa(it.ID),
		it.Name,
		it.Price.StringFixed(2),
		strconv.Itoa(it.Stock),
	}

	switch it.Kind {
	case catalog.KindDrink:
		fields = append(fields, strconv.FormatFloat(it.Liters, 'f', 1, 64))
	case catalog.KindFood:
		fields = append(fields, it.Expiry.Format(dateLayout))
	}
	return strings.Join(fields, sep)
}

// DecodeItem parses one catalog line. An unrecognized variant tag is
// deliberately lenient and loads as a generic item so files written by
// newer versions still load; everything else is strict and returns a
// MalformedError quoting the line.
func DecodeItem(line string) (catalog.Item, error) {
	fields := strings.Split(line, sep)
	if len(fields) < 5 {
		return catalog.Item{}, &MalformedError{Line: line, Reason: "expected at least 5 fields"}
	}

	id, err := strconv.Atoi(strings.TrimSpace(fields[1]))
	if err != nil {
		return catalog.Item{}, &MalformedError{Line: line, Reason: "bad id"}
	}

	name := strings.TrimSpace(fields[2])
	if name == "" {
		return catalog.Item{}, &MalformedError{Line: line, Reason: "empty name"}
	}

	price, err := decimal.NewFromString(strings.TrimSpace(fields[3]))
	if err != nil {
		return catalog.Item{}, &MalformedError{Line: line, Reason: "bad price"}
	}
	if price.IsNegative() {
		return catalog.Item{}, &MalformedError{Line: line, Reason: "negative price"}
	}

	stock, err := strconv.Atoi(strings.TrimSpace(fields[4]))
	if err != nil {
		return catalog.Item{}, &MalformedError{Line: line, Reason: "bad stock"}
	}
	if stock < 0 {
		return catalog.Item{}, &MalformedError{Line: line, Reason: "negative stock"}
	}

	it := catalog.Item{
		ID:    id,
		Name:  name,
		Price: price,
		Stock: stock,
		Kind:  kindFor(fields[0]),
	}

	switch it.Kind {
	case catalog.KindDrink:
		if len(fields) < 6 {
			return catalog.Item{}, &MalformedError{Line: line, Reason: "missing liters"}
		}
		liters, err := strconv.ParseFloat(strings.TrimSpace(fields[5]), 64)
		if err != nil {
			return catalog.Item{}, &MalformedError{Line: line, Reason: "bad liters"}
		}
		if liters <= 0 {
			return catalog.Item{}, &MalformedError{Line: line, Reason: "liters must be greater than zero"}
		}
		it.Liters = liters

	case catalog.KindFood:
		if len(fields) < 6 {
			return catalog.Item{}, &MalformedError{Line: line, Reason: "missing expiry date"}
		}
		expiry, err := time.Parse(dateLayout, strings.TrimSpace(fields[5]))
		if err != nil {
			return catalog.Item{}, &MalformedError{Line: line, Reason: "bad expiry date"}
		}
		it.Expiry = expiry
	}

	return it, nil
}

// OrderLine is the raw persisted form of one order line. The item is
// referenced by name; resolution against the loaded catalog happens in
// the persistence gateway.
type OrderLine struct {
	OrderID int
	Item    string
	Qty     int
}

// EncodeOrderLine renders orderID;itemName;qty;subtotal. The subtotal
// is informational; it is recomputed on load, never read back.
func EncodeOrderLine(orderID int, item string, qty int, subtotal decimal.Decimal) string {
	return strings.Join([]string{
		strconv.Itoa(orderID),
		item,
		strconv.Itoa(qty),
		subtotal.StringFixed(2),
	}, sep)
}

// DecodeOrderLine parses one persisted order line. At least the order
// id, item name and quantity must be present and well-formed.
func DecodeOrderLine(line string) (OrderLine, error) {
	fields := strings.Split(line, sep)
	if len(fields) < 3 {
		return OrderLine{}, &MalformedError{Line: line, Reason: "expected at least 3 fields"}
	}

	orderID, err := strconv.Atoi(strings.TrimSpace(fields[0]))
	if err != nil {
		return OrderLine{}, &MalformedError{Line: line, Reason: "bad order id"}
	}

	item := strings.TrimSpace(fields[1])
	if item == "" {
		return OrderLine{}, &MalformedError{Line: line, Reason: "empty item name"}
	}

	qty, err := strconv.Atoi(strings.TrimSpace(fields[2]))
	if err != nil {
		return OrderLine{}, &MalformedError{Line: line, Reason: "bad quantity"}
	}
	if qty <= 0 {
		return OrderLine{}, &MalformedError{Line: line, Reason: "quantity must be greater than zero"}
	}

	return OrderLine{OrderID: orderID, Item: item, Qty: qty}, nil
}

func tagFor(k catalog.Kind) string {
	switch k {
	case catalog.KindDrink:
		return TagDrink
	case catalog.KindFood:
		return TagFood
	default:
		return TagGeneric
	}
}

func kindFor(tag string) catalog.Kind {
	switch tag {
	case TagDrink:
		return catalog.KindDrink
	case TagFood:
		return catalog.KindFood
	default:
		// Unknown tags load as generic items on purpose.
		return catalog.KindGeneric
	}
}
