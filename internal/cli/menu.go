package cli

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"go.uber.org/zap"

	"TechStore/internal/catalog"
	"TechStore/internal/metrics"
	"TechStore/internal/order"
)

// App drives the interactive menu. It is the single caller of the
// catalog store and the order ledger; persistence happens around it in
// main.
type App struct {
	Catalog *catalog.Store
	Orders  *order.Ledger
	Prompt  *Prompter
	Out     io.Writer
	Log     *zap.Logger
	Metrics *metrics.StoreMetrics

	// Now is swappable in tests; zero value means time.Now.
	Now func() time.Time
}

// Run loops over the main menu until exit or EOF.
func (a *App) Run() {
	fmt.Fprintln(a.Out, cyan+"================================"+reset)
	fmt.Fprintln(a.Out, cyan+"=== TECHSTORE MANAGEMENT ==="+reset)
	fmt.Fprintln(a.Out, cyan+"================================"+reset)

	for {
		a.printMenu()
		opt := a.Prompt.Line("Choose an option: ")
		if a.Prompt.EOF() {
			return
		}

		switch opt {
		case "1":
			a.addItem()
		case "2":
			a.listItems()
		case "3":
			a.findUpdateItem()
		case "4":
			a.deleteItem()
		case "5":
			a.createOrder()
		case "6":
			a.listOrders()
		case "7":
			return
		default:
			fmt.Fprintln(a.Out, yellow+"Invalid option, try again."+reset)
		}
		fmt.Fprintln(a.Out, cyan+"===================================="+reset)
	}
}

func (a *App) printMenu() {
	fmt.Fprintln(a.Out, "\n============ MAIN MENU ============")
	fmt.Fprintln(a.Out, "1) Add item")
	fmt.Fprintln(a.Out, "2) List items")
	fmt.Fprintln(a.Out, "3) Find / update item")
	fmt.Fprintln(a.Out, "4) Delete item")
	fmt.Fprintln(a.Out, "5) Create order")
	fmt.Fprintln(a.Out, "6) List orders")
	fmt.Fprintln(a.Out, "7) Exit")
	fmt.Fprintln(a.Out, "===================================")
}

func (a *App) addItem() {
	fmt.Fprintln(a.Out, "\n"+cyan+"=== ADD ITEM ==="+reset)

	it := catalog.Item{
		Name:  a.Prompt.Text("Item name: "),
		Price: a.Prompt.Decimal("Price: "),
		Stock: a.Prompt.Int("Stock: "),
	}

	for !a.Prompt.EOF() {
		fmt.Fprintln(a.Out, "\nItem type:")
		fmt.Fprintln(a.Out, "1) Generic")
		fmt.Fprintln(a.Out, "2) Drink")
		fmt.Fprintln(a.Out, "3) Food")
		switch a.Prompt.Line("Type: ") {
		case "1", "":
			it.Kind = catalog.KindGeneric
		case "2":
			it.Kind = catalog.KindDrink
			it.Liters = a.Prompt.Float("Volume in liters (use a dot): ")
		case "3":
			it.Kind = catalog.KindFood
			it.Expiry = a.Prompt.Date("Expiry date")
		default:
			fmt.Fprintln(a.Out, red+"Enter 1, 2 or 3."+reset)
			continue
		}
		break
	}
	if a.Prompt.EOF() {
		return
	}

	stored, err := a.Catalog.Add(it)
	if err != nil {
		a.reportError("add item failed", err)
		return
	}

	if a.Metrics != nil {
		a.Metrics.ItemsAdded.Inc()
		a.Metrics.CatalogItems.Set(float64(len(a.Catalog.List())))
	}
	fmt.Fprintln(a.Out, green+"Item added or merged: "+a.renderItem(stored)+reset)
}

func (a *App) listItems() {
	items := a.Catalog.List()
	if len(items) == 0 {
		fmt.Fprintln(a.Out, yellow+"No items in the catalog."+reset)
		return
	}

	fmt.Fprintln(a.Out, "\n"+cyan+"=== CATALOG ==="+reset)
	fmt.Fprintf(a.Out, "%-5s %-20s %-10s %-8s %s\n", "ID", "Name", "Price", "Stock", "Detail")
	fmt.Fprintln(a.Out, "----------------------------------------------------------")
	for _, it := range items {
		fmt.Fprintf(a.Out, "%-5d %-20s $%-9s %-8d %s\n",
			it.ID, it.Name, it.Price.StringFixed(2), it.Stock, a.itemDetail(it))
	}
}

func (a *App) itemDetail(it *catalog.Item) string {
	switch it.Kind {
	case catalog.KindDrink:
		return fmt.Sprintf("%.1f L", it.Liters)
	case catalog.KindFood:
		state := "ok"
		if it.Expired(a.now()) {
			state = "EXPIRED"
		}
		return fmt.Sprintf("expires %s (%s)", it.Expiry.Format(dateLayout), state)
	default:
		return "-"
	}
}

func (a *App) findUpdateItem() {
	input := a.Prompt.Text("Item ID or name: ")
	if a.Prompt.EOF() {
		return
	}

	var (
		it *catalog.Item
		ok bool
	)
	if id, err := strconv.Atoi(input); err == nil {
		it, ok = a.Catalog.FindByID(id)
	} else {
		it, ok = a.Catalog.FindByName(input)
	}
	if !ok {
		fmt.Fprintln(a.Out, yellow+"Item not found."+reset)
		return
	}

	fmt.Fprintln(a.Out, green+"Found: "+a.renderItem(it)+reset)
	if !a.Prompt.YesNo("Update this item?") {
		return
	}

	var patch catalog.Patch
	if s := a.Prompt.Line("New name (ENTER to keep): "); s != "" {
		patch.Name = &s
	}
	if s := a.Prompt.Line("New price (ENTER to keep): "); s != "" {
		d, err := decimalFromInput(s)
		if err != nil {
			fmt.Fprintln(a.Out, red+"Enter a valid decimal number."+reset)
			return
		}
		patch.Price = &d
	}
	if s := a.Prompt.Line("New stock (ENTER to keep): "); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			fmt.Fprintln(a.Out, red+"Enter a valid whole number."+reset)
			return
		}
		patch.Stock = &n
	}

	found, err := a.Catalog.Update(it.ID, patch)
	if err != nil {
		a.reportError("update failed", err)
		return
	}
	if !found {
		fmt.Fprintln(a.Out, yellow+"Item not found."+reset)
		return
	}
	fmt.Fprintln(a.Out, green+"Item updated: "+a.renderItem(it)+reset)
}

func (a *App) deleteItem() {
	id := a.Prompt.Int("ID of the item to delete: ")
	if a.Prompt.EOF() {
		return
	}

	if !a.Catalog.Delete(id) {
		fmt.Fprintln(a.Out, red+"No item with that ID."+reset)
		return
	}
	if a.Metrics != nil {
		a.Metrics.ItemsDeleted.Inc()
		a.Metrics.CatalogItems.Set(float64(len(a.Catalog.List())))
	}
	fmt.Fprintln(a.Out, green+"Item deleted."+reset)
}

func (a *App) createOrder() {
	if a.Catalog.IsEmpty() {
		fmt.Fprintln(a.Out, yellow+"No items available to order."+reset)
		return
	}

	fmt.Fprintln(a.Out, green+"--- NEW ORDER ---"+reset)
	var lines []order.Line

	for {
		a.listItems()
		id := a.Prompt.Int("Item ID to add: ")
		if a.Prompt.EOF() {
			return
		}

		if _, ok := a.Catalog.FindByID(id); !ok {
			fmt.Fprintln(a.Out, red+"Item not found."+reset)
		} else {
			qty := a.Prompt.Int("Quantity: ")
			lines = append(lines, order.Line{ItemID: id, Qty: qty})
		}

		if !a.Prompt.YesNo("Add another item?") {
			break
		}
	}
	if len(lines) == 0 {
		fmt.Fprintln(a.Out, yellow+"No lines entered, order discarded."+reset)
		return
	}

	o, err := a.Orders.Create(lines)
	if err != nil {
		if a.Metrics != nil {
			a.Metrics.OrdersRejected.Inc()
		}
		a.reportError("create order failed", err)
		return
	}

	if a.Metrics != nil {
		a.Metrics.OrdersCommitted.Inc()
	}
	fmt.Fprintln(a.Out, green+"Order created:"+reset)
	a.printOrder(o)
}

func (a *App) listOrders() {
	if !a.Orders.HasAny() {
		fmt.Fprintln(a.Out, yellow+"No orders recorded."+reset)
		return
	}

	fmt.Fprintln(a.Out, "\n--- ORDERS ---")
	for _, o := range a.Orders.List() {
		a.printOrder(o)
	}
}

func (a *App) printOrder(o *order.Order) {
	fmt.Fprintf(a.Out, "\nOrder #%d\n", o.ID)
	for _, ln := range o.Lines {
		it, ok := a.Orders.Resolve(ln)
		if !ok {
			fmt.Fprintf(a.Out, "  - [deleted item] | qty: %d\n", ln.Qty)
			continue
		}
		sub, _ := a.Orders.Subtotal(ln)
		fmt.Fprintf(a.Out, "  - %s | qty: %d | subtotal: $%s\n", it.Name, ln.Qty, sub.StringFixed(2))
	}
	fmt.Fprintf(a.Out, "TOTAL: $%s\n", a.Orders.Total(o).StringFixed(2))
}

func (a *App) renderItem(it *catalog.Item) string {
	return fmt.Sprintf("ID: %d | %s | $%s | stock: %d | %s",
		it.ID, it.Name, it.Price.StringFixed(2), it.Stock, a.itemDetail(it))
}

// reportError separates recoverable business failures (shown to the
// user, session continues) from everything else (logged as well).
func (a *App) reportError(msg string, err error) {
	var (
		vErr *catalog.ValidationError
		sErr *order.InsufficientStockError
		lErr *order.InvalidLineError
	)
	switch {
	case errors.As(err, &vErr), errors.As(err, &sErr), errors.As(err, &lErr):
		fmt.Fprintln(a.Out, red+"Error: "+err.Error()+reset)
	default:
		fmt.Fprintln(a.Out, red+"Error: "+err.Error()+reset)
		if a.Log != nil {
			a.Log.Error(msg, zap.Error(err))
		}
	}
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}
