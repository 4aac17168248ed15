// Package orders implements the customer and admin order workflow: listing
// and decoding order records, the expand/collapse view state, order
// submission, and the admin status mutation with its optimistic update.
package orders

import (
	"context"
	"strconv"
	"strings"
	"sync"

	"github.com/shopspring/decimal"

	"docemarce/internal/api"
	"docemarce/internal/models"
	"docemarce/internal/notify"
)

// Line is a decoded order line item.
type Line struct {
	ProductID string
	Title     string
	Image     string
	Quantity  int
	Price     decimal.Decimal
}

// Order is the decoded, display-ready form of an order record.
type Order struct {
	ID          string
	Date        string
	Status      models.Status
	TotalPrice  decimal.Decimal
	ClientName  string
	ClientEmail string
	ClientPhone string
	Products    []Line
}

// DisplayTotal renders the total with two decimal places. Records missing a
// total display as "0.00".
func (o Order) DisplayTotal() string {
	return o.TotalPrice.StringFixed(2)
}

// decodeOrder adapts a wire record for display. Only the portion of
// creationDate before the first comma is kept, slashes intact; a missing
// totalPrice defaults to zero; string-encoded quantities are parsed leniently.
func decodeOrder(rec models.OrderRecord) Order {
	date := rec.CreationDate
	if i := strings.Index(date, ","); i >= 0 {
		date = date[:i]
	}
	total := decimal.Zero
	if rec.TotalPrice != nil {
		total = *rec.TotalPrice
	}
	lines := make([]Line, 0, len(rec.Products))
	for _, p := range rec.Products {
		qty, _ := strconv.Atoi(strings.TrimSpace(p.Quantity))
		lines = append(lines, Line{
			ProductID: p.ProductID,
			Title:     p.ProductName,
			Image:     p.Image,
			Quantity:  qty,
			Price:     p.Price,
		})
	}
	return Order{
		ID:          rec.OrderID,
		Date:        date,
		Status:      rec.Status,
		TotalPrice:  total,
		ClientName:  rec.Name,
		ClientEmail: rec.Email,
		ClientPhone: rec.Phone,
		Products:    lines,
	}
}

// Tracker owns a screen-scoped snapshot of the order list. Each screen holds
// its own Tracker; snapshots go stale until the next Refresh, and a Refresh
// is always a full replace, never a merge.
type Tracker struct {
	client *api.Client
	notify notify.Notifier
	scope  api.OrderQuery

	mu       sync.Mutex
	orders   []Order
	expanded string
	detailID string

	// confirmed is the last server-acknowledged status per order; a failed
	// optimistic mutation rolls back to it. seq numbers mutations per order
	// so completions superseded by a newer selection are discarded.
	confirmed map[string]models.Status
	seq       map[string]uint64
}

// NewTracker builds a tracker scoped to a customer email or, with the admin
// flag, to all orders.
func NewTracker(client *api.Client, n notify.Notifier, scope api.OrderQuery) *Tracker {
	return &Tracker{
		client:    client,
		notify:    n,
		scope:     scope,
		confirmed: make(map[string]models.Status),
		seq:       make(map[string]uint64),
	}
}

// Refresh refetches the order list and replaces the local snapshot. On
// failure the previous snapshot is kept untouched.
func (t *Tracker) Refresh(ctx context.Context) error {
	records, err := t.client.FetchOrders(ctx, t.scope)
	if err != nil {
		return err
	}
	decoded := make([]Order, 0, len(records))
	confirmed := make(map[string]models.Status, len(records))
	for _, rec := range records {
		o := decodeOrder(rec)
		decoded = append(decoded, o)
		confirmed[o.ID] = o.Status
	}
	t.mu.Lock()
	t.orders = decoded
	t.confirmed = confirmed
	t.mu.Unlock()
	return nil
}

// Orders returns the current snapshot.
func (t *Tracker) Orders() []Order {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]Order, len(t.orders))
	copy(out, t.orders)
	return out
}

// Order looks up one order by ID in the snapshot.
func (t *Tracker) Order(orderID string) (Order, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.lookup(orderID)
}

func (t *Tracker) lookup(orderID string) (Order, bool) {
	for _, o := range t.orders {
		if o.ID == orderID {
			return o, true
		}
	}
	return Order{}, false
}

// Toggle flips the expansion state of one order. At most one order is
// expanded at a time: tapping the expanded order collapses it, tapping a
// different one moves the expansion there.
func (t *Tracker) Toggle(orderID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.expanded == orderID {
		t.expanded = ""
	} else {
		t.expanded = orderID
	}
}

// Expanded returns the ID of the expanded order, or "" when none is.
func (t *Tracker) Expanded() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.expanded
}

// OpenDetail selects an order for the admin detail view.
func (t *Tracker) OpenDetail(orderID string) (Order, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	o, ok := t.lookup(orderID)
	if ok {
		t.detailID = orderID
	}
	return o, ok
}

// Detail returns the order currently open in the detail view.
func (t *Tracker) Detail() (Order, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.detailID == "" {
		return Order{}, false
	}
	return t.lookup(t.detailID)
}

// CloseDetail clears the detail view selection.
func (t *Tracker) CloseDetail() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.detailID = ""
}

// SetStatus applies a new status optimistically to the list entry (and so to
// the open detail view), then issues the update request. A non-OK response or
// transport error rolls the order back to its last confirmed status. A
// completion that has been superseded by a newer mutation of the same order
// is discarded without touching state.
func (t *Tracker) SetStatus(ctx context.Context, orderID string, status models.Status) error {
	t.mu.Lock()
	if _, ok := t.lookup(orderID); !ok {
		t.mu.Unlock()
		return nil
	}
	t.seq[orderID]++
	n := t.seq[orderID]
	t.applyStatus(orderID, status)
	t.mu.Unlock()

	err := t.client.UpdateOrder(ctx, orderID, status)

	t.mu.Lock()
	if n != t.seq[orderID] {
		// A newer mutation was issued while this one was in flight; its
		// optimistic value already replaced ours. Stale completion, drop it.
		t.mu.Unlock()
		return nil
	}
	if err != nil {
		t.applyStatus(orderID, t.confirmed[orderID])
		t.mu.Unlock()
		t.notify.Error("Não foi possível atualizar o status.")
		return err
	}
	t.confirmed[orderID] = status
	t.mu.Unlock()
	t.notify.Success("Status atualizado!")
	return nil
}

func (t *Tracker) applyStatus(orderID string, status models.Status) {
	for i := range t.orders {
		if t.orders[i].ID == orderID {
			t.orders[i].Status = status
			return
		}
	}
}
