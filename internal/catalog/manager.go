package catalog

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"docemarce/internal/api"
	"docemarce/internal/notify"
)

// ErrMissingFields is returned when a product form has a blank field. No
// request is sent in that case.
var ErrMissingFields = errors.New("missing required fields")

// Manager is the admin side of the catalog: create, edit and enable/disable,
// each followed by a full refetch of the loader's snapshot.
type Manager struct {
	Client *api.Client
	Notify notify.Notifier
	Loader *Loader
}

// NewManager builds a manager over the admin catalog loader.
func NewManager(client *api.Client, n notify.Notifier) *Manager {
	return &Manager{
		Client: client,
		Notify: n,
		Loader: NewLoader(client, n, ""),
	}
}

// Create adds a product. All fields are required; price arrives as form text
// and is sent as a number. Success triggers a full catalog refetch so the
// freshly assigned productId becomes visible.
func (m *Manager) Create(ctx context.Context, name, image, price string) error {
	if name == "" || image == "" || price == "" {
		m.Notify.Error("Preencha todos os campos!")
		return ErrMissingFields
	}
	p, err := decimal.NewFromString(price)
	if err != nil {
		m.Notify.Error("Erro ao cadastrar produto.")
		return err
	}
	if err := m.Client.CreateProduct(ctx, name, image, p); err != nil {
		m.Notify.Error("Erro ao cadastrar produto.")
		return err
	}
	m.Notify.Success("Produto cadastrado!")
	return m.Loader.Refresh(ctx)
}

// ProductForm holds the admin create-product fields as entered.
type ProductForm struct {
	ProductName string
	Image       string
	Price       string
}

// Reset blanks the form, as after a successful creation.
func (f *ProductForm) Reset() { *f = ProductForm{} }

// CreateForm submits the form and resets it on success. Validation failures
// and rejected requests leave the entered values in place for correction.
func (m *Manager) CreateForm(ctx context.Context, f *ProductForm) error {
	if err := m.Create(ctx, f.ProductName, f.Image, f.Price); err != nil {
		return err
	}
	f.Reset()
	return nil
}

// Edit rewrites a product's name, image and price, then refetches.
func (m *Manager) Edit(ctx context.Context, productID, name, image, price string) error {
	p, err := decimal.NewFromString(price)
	if err != nil {
		m.Notify.Error("Erro ao atualizar produto.")
		return err
	}
	req := api.UpdateProductRequest{
		ProductID:   productID,
		ProductName: &name,
		Image:       &image,
		Price:       &p,
	}
	if err := m.Client.UpdateProduct(ctx, req); err != nil {
		m.Notify.Error("Erro ao atualizar produto.")
		return err
	}
	m.Notify.Success("Produto atualizado!")
	return m.Loader.Refresh(ctx)
}

// SetDisabled toggles only a product's visibility. The payload carries
// nothing but the ID and the flag, keeping every other field untouched.
func (m *Manager) SetDisabled(ctx context.Context, productID string, disabled bool) error {
	req := api.UpdateProductRequest{
		ProductID: productID,
		Disabled:  &disabled,
	}
	if err := m.Client.UpdateProduct(ctx, req); err != nil {
		if disabled {
			m.Notify.Error("Erro ao desabilitar produto.")
		} else {
			m.Notify.Error("Erro ao atualizar produto.")
		}
		return err
	}
	if disabled {
		m.Notify.Success("Produto desabilitado!")
	} else {
		m.Notify.Success("Produto atualizado!")
	}
	return m.Loader.Refresh(ctx)
}
