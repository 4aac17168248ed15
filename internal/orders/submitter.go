package orders

import (
	"context"
	"errors"
	"strconv"

	"docemarce/internal/api"
	"docemarce/internal/cart"
	"docemarce/internal/models"
	"docemarce/internal/notify"
	"docemarce/internal/session"
)

// ErrNoSelection is returned when submission is attempted with an empty cart.
// No request is sent in that case.
var ErrNoSelection = errors.New("no products selected")

// Submitter converts a non-empty cart into an order-creation request.
type Submitter struct {
	Client *api.Client
	Notify notify.Notifier

	// OnCreated runs once after a successful submission, used to trigger the
	// order-list refetch. The new order is never inserted locally: its
	// orderId and creationDate are server-assigned and unknown until refetch.
	OnCreated func()
}

// Submit sends the cart's selected lines as a new order for the session
// identity. On success the cart resets to all-zero quantities and OnCreated
// fires exactly once; on failure the cart is left untouched for retry.
func (s *Submitter) Submit(ctx context.Context, sess *session.Session, c *cart.Cart) error {
	selected := c.Selected()
	if len(selected) == 0 {
		s.Notify.Error("Selecione pelo menos um produto.")
		return ErrNoSelection
	}

	lines := make([]models.OrderLine, len(selected))
	for i, l := range selected {
		lines[i] = models.OrderLine{
			ProductID:   l.Product.ProductID,
			ProductName: l.Product.ProductName,
			Price:       l.Product.Price,
			Quantity:    strconv.Itoa(l.Quantity),
			Image:       l.Product.Image,
		}
	}

	user := sess.User()
	req := api.CreateOrderRequest{
		Email:    user.Email,
		Name:     user.Name,
		Phone:    user.Phone,
		Products: lines,
	}
	if err := s.Client.CreateOrder(ctx, req); err != nil {
		s.Notify.Error("Não foi possível criar o pedido.")
		return err
	}

	s.Notify.Success("Pedido criado com sucesso!")
	c.Reset()
	if s.OnCreated != nil {
		s.OnCreated()
	}
	return nil
}
