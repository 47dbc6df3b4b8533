package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"TechStore/internal/catalog"
	"TechStore/internal/order"
)

func newTestApp(t *testing.T, script string) (*App, *bytes.Buffer, *catalog.Store) {
	t.Helper()

	cat := catalog.NewStore()
	var out bytes.Buffer
	app := &App{
		Catalog: cat,
		Orders:  order.NewLedger(cat),
		Prompt:  NewPrompter(strings.NewReader(script), &out),
		Out:     &out,
	}
	return app, &out, cat
}

func TestAppRun_AddItemThenCreateOrder(t *testing.T) {
	script := strings.Join([]string{
		"1",       // add item
		"Coffee",  // name
		"1500.00", // price
		"20",      // stock
		"1",       // generic
		"5",       // create order
		"1",       // item id
		"5",       // quantity
		"n",       // no more lines
		"6",       // list orders
		"7",       // exit
	}, "\n") + "\n"

	app, out, cat := newTestApp(t, script)
	app.Run()

	it, ok := cat.FindByName("Coffee")
	require.True(t, ok)
	assert.Equal(t, 15, it.Stock)

	require.True(t, app.Orders.HasAny())
	assert.Contains(t, out.String(), "TOTAL: $7500.00")
}

func TestAppRun_OrderExceedingStockIsRejected(t *testing.T) {
	script := strings.Join([]string{
		"5",  // create order
		"1",  // item id
		"25", // quantity over stock
		"n",
		"7", // exit
	}, "\n") + "\n"

	app, out, cat := newTestApp(t, script)
	coffee, err := cat.Add(catalog.Item{Name: "Coffee", Price: decimal.RequireFromString("1500.00"), Stock: 20})
	require.NoError(t, err)

	app.Run()

	assert.Equal(t, 20, coffee.Stock)
	assert.False(t, app.Orders.HasAny())
	assert.Contains(t, out.String(), "insufficient stock")
}

func TestAppRun_AddDrinkWithVariantPrompt(t *testing.T) {
	script := strings.Join([]string{
		"1",      // add item
		"Water",  // name
		"800.00", // price
		"10",     // stock
		"2",      // drink
		"1.5",    // liters
		"7",      // exit
	}, "\n") + "\n"

	app, _, cat := newTestApp(t, script)
	app.Run()

	it, ok := cat.FindByName("Water")
	require.True(t, ok)
	assert.Equal(t, catalog.KindDrink, it.Kind)
	assert.Equal(t, 1.5, it.Liters)
}

func TestAppRun_UpdateItemKeepsOmittedFields(t *testing.T) {
	script := strings.Join([]string{
		"3",      // find / update
		"Coffee", // lookup by name
		"y",      // update it
		"",       // keep name
		"1600.00",
		"", // keep stock
		"7",
	}, "\n") + "\n"

	app, _, cat := newTestApp(t, script)
	coffee, err := cat.Add(catalog.Item{Name: "Coffee", Price: decimal.RequireFromString("1500.00"), Stock: 20})
	require.NoError(t, err)

	app.Run()

	assert.Equal(t, "Coffee", coffee.Name)
	assert.Equal(t, "1600.00", coffee.Price.StringFixed(2))
	assert.Equal(t, 20, coffee.Stock)
}

func TestAppRun_ValidationFailureIsReportedAndSessionContinues(t *testing.T) {
	script := strings.Join([]string{
		"1",     // add item
		"Water", // name
		"1.00",  // price
		"5",     // stock
		"2",     // drink
		"-2",    // invalid liters value reaches the store and is rejected
		"2",     // list items still works afterwards
		"7",
	}, "\n") + "\n"

	app, out, cat := newTestApp(t, script)
	app.Run()

	assert.True(t, cat.IsEmpty())
	assert.Contains(t, out.String(), "invalid liters")
}

func TestAppRun_EmptyOrderIsDiscarded(t *testing.T) {
	script := strings.Join([]string{
		"5",  // create order
		"42", // unknown item id
		"n",  // stop adding
		"7",
	}, "\n") + "\n"

	app, out, cat := newTestApp(t, script)
	_, err := cat.Add(catalog.Item{Name: "Coffee", Price: decimal.RequireFromString("1500.00"), Stock: 20})
	require.NoError(t, err)

	app.Run()

	assert.False(t, app.Orders.HasAny())
	assert.Contains(t, out.String(), "order discarded")
}
