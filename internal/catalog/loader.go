// Package catalog implements the product list each screen keeps: the loader
// that snapshots the remote catalog and the admin manager that mutates it.
// Every mutation is followed by a full refetch rather than a local patch, so
// server-assigned IDs and canonical stored values are always reflected.
package catalog

import (
	"context"
	"sync"

	"docemarce/internal/api"
	"docemarce/internal/models"
	"docemarce/internal/notify"
)

// Loader fetches and holds a screen-scoped catalog snapshot. Each screen
// keeps its own independent copy; there is no cross-screen cache coherence.
type Loader struct {
	client *api.Client
	notify notify.Notifier

	// email scopes the customer fetch; the admin screen fetches with no
	// body at all, represented by an empty email.
	email string

	mu       sync.Mutex
	products []models.Product
}

// NewLoader builds a loader. A non-empty email selects the customer call
// shape; empty selects the admin one.
func NewLoader(client *api.Client, n notify.Notifier, email string) *Loader {
	return &Loader{client: client, notify: n, email: email}
}

// Refresh refetches the product list and fully replaces the snapshot. On
// failure a user-visible alert is raised and the previous snapshot is kept.
func (l *Loader) Refresh(ctx context.Context) error {
	products, err := l.client.FetchProducts(ctx, l.email)
	if err != nil {
		l.notify.Error("Não foi possível carregar os produtos.")
		return err
	}
	l.mu.Lock()
	l.products = products
	l.mu.Unlock()
	return nil
}

// Products returns the current snapshot in the order the collaborator
// returned it.
func (l *Loader) Products() []models.Product {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]models.Product, len(l.products))
	copy(out, l.products)
	return out
}

// Available returns the snapshot without disabled products, the subset shown
// to customers building an order.
func (l *Loader) Available() []models.Product {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []models.Product
	for _, p := range l.products {
		if !p.Disabled {
			out = append(out, p)
		}
	}
	return out
}
