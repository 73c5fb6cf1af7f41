// Package cart maintains the working set of line items for an order being
// composed.
//
// An Aggregator is owned by exactly one composition session: it is created
// when composition begins and cleared on submit or cancel. There is no
// process-wide cart state, so concurrent sessions never collide.
package cart

import (
	"salesledger/internal/core/types"
	"salesledger/internal/domain/currency"
)

// Product is the catalog data a line item needs: identifier, display fields
// and the current unit price. Supplied by the product catalog; the cart never
// mutates catalog data.
type Product struct {
	ID        string
	Name      string
	SKU       string
	UnitPrice types.Money
}

// LineItem is one product row within the in-progress order.
// Subtotal is always recomputed from quantity × unit price; it is never set
// independently.
type LineItem struct {
	ProductID string
	Name      string
	SKU       string
	Quantity  int
	UnitPrice types.Money
	Subtotal  types.Money
}

// Aggregator holds the in-progress collection of line items, keyed by product
// identifier: one entry per product, adding an already-present product merges
// quantities instead of duplicating the row.
//
// Pure in-memory state with deterministic transitions; no I/O.
type Aggregator struct {
	items map[string]*LineItem
	order []string // product IDs in insertion order, for stable listing

	selection currency.Selection
	note      string
}

// New creates an empty Aggregator with the base currency selected.
func New() *Aggregator {
	return &Aggregator{
		items:     make(map[string]*LineItem),
		selection: currency.SelectionBase,
	}
}

// AddItem inserts a new line item, or increments the quantity of an existing
// one. Quantities <= 0 are ignored: the UI validates positivity before
// calling, and the aggregator guards against non-positive input by treating
// it as a no-op.
func (a *Aggregator) AddItem(p Product, quantity int) {
	if quantity <= 0 {
		return
	}

	if item, ok := a.items[p.ID]; ok {
		item.Quantity += quantity
		item.Subtotal = types.MulInt(item.UnitPrice, item.Quantity)
		return
	}

	a.items[p.ID] = &LineItem{
		ProductID: p.ID,
		Name:      p.Name,
		SKU:       p.SKU,
		Quantity:  quantity,
		UnitPrice: p.UnitPrice,
		Subtotal:  types.MulInt(p.UnitPrice, quantity),
	}
	a.order = append(a.order, p.ID)
}

// RemoveItem deletes the matching entry if present. Idempotent.
func (a *Aggregator) RemoveItem(productID string) {
	if _, ok := a.items[productID]; !ok {
		return
	}
	delete(a.items, productID)
	for i, pid := range a.order {
		if pid == productID {
			a.order = append(a.order[:i], a.order[i+1:]...)
			break
		}
	}
}

// UpdateQuantity replaces an item's quantity and recomputes its subtotal.
// Quantities < 1 are a no-op: removal is the only way a product leaves the
// cart.
func (a *Aggregator) UpdateQuantity(productID string, quantity int) {
	if quantity < 1 {
		return
	}
	item, ok := a.items[productID]
	if !ok {
		return
	}
	item.Quantity = quantity
	item.Subtotal = types.MulInt(item.UnitPrice, quantity)
}

// Total returns the sum of all current subtotals.
func (a *Aggregator) Total() types.Money {
	total := types.Zero()
	for _, item := range a.items {
		total = total.Add(item.Subtotal)
	}
	return total
}

// ItemCount returns the sum of all current quantities.
func (a *Aggregator) ItemCount() int {
	count := 0
	for _, item := range a.items {
		count += item.Quantity
	}
	return count
}

// Len returns the number of distinct product rows.
func (a *Aggregator) Len() int {
	return len(a.items)
}

// Items returns a copy of the current line items in insertion order.
// Mutating the returned slice never affects the aggregator.
func (a *Aggregator) Items() []LineItem {
	items := make([]LineItem, 0, len(a.order))
	for _, pid := range a.order {
		items = append(items, *a.items[pid])
	}
	return items
}

// SetCurrency records which currency the transaction is presented in.
// Unknown selections are ignored.
func (a *Aggregator) SetCurrency(sel currency.Selection) {
	if sel.Valid() {
		a.selection = sel
	}
}

// Currency returns the current currency selection.
func (a *Aggregator) Currency() currency.Selection {
	return a.selection
}

// SetNote attaches a free-text note to the in-progress order.
func (a *Aggregator) SetNote(note string) {
	a.note = note
}

// Note returns the attached note.
func (a *Aggregator) Note() string {
	return a.note
}

// Clear empties the collection and resets the currency selection and note to
// defaults. Used on cart clear and after successful order submission.
func (a *Aggregator) Clear() {
	a.items = make(map[string]*LineItem)
	a.order = nil
	a.selection = currency.SelectionBase
	a.note = ""
}
