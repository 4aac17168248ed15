package models

import (
	"strings"

	"github.com/shopspring/decimal"
)

func init() {
	// The remote endpoints expect prices as JSON numbers, not strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// Status is an order's position in the fulfillment lifecycle. The values are
// the verbatim strings the endpoints store: case-sensitive on write,
// case-insensitive on read.
type Status string

const (
	StatusAwaitingPayment  Status = "Aguardando pagamento"
	StatusPaymentConfirmed Status = "Pagamento Confirmado"
	StatusInProduction     Status = "Em Produção"
	StatusDone             Status = "Finalizado"
)

// AllStatuses lists the workflow values in their intended progression.
func AllStatuses() []Status {
	return []Status{StatusAwaitingPayment, StatusPaymentConfirmed, StatusInProduction, StatusDone}
}

// Valid reports whether s is one of the enumerated workflow values.
func (s Status) Valid() bool {
	switch s {
	case StatusAwaitingPayment, StatusPaymentConfirmed, StatusInProduction, StatusDone:
		return true
	}
	return false
}

// Is compares statuses ignoring case, matching how the app reads them back.
func (s Status) Is(other Status) bool {
	return strings.EqualFold(string(s), string(other))
}

// Color returns the display color hex code for a status.
func (s Status) Color() string {
	switch strings.ToLower(string(s)) {
	case "aguardando pagamento":
		return "#FFA500"
	case "pagamento confirmado":
		return "#007AFF"
	case "em produção":
		return "#8e44ad"
	case "finalizado":
		return "#27ae60"
	default:
		return "#333"
	}
}

// User is the account record held in session memory and exchanged with the
// user endpoints. Password travels in requests only when authenticating or
// updating; it is never displayed.
type User struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password,omitempty"`
	Phone    string `json:"phone"`
	Photo    string `json:"photo"`
	IsAdmin  bool   `json:"isAdmin"`
}

// Product is a catalog entry. Disabled products stay in the catalog; nothing
// is hard-deleted.
type Product struct {
	ProductID   string          `json:"productId"`
	ProductName string          `json:"productName"`
	Image       string          `json:"image"`
	Price       decimal.Decimal `json:"price"`
	Disabled    bool            `json:"disabled,omitempty"`
}

// OrderLine is a line item as it appears on the wire. Quantity is
// string-encoded: a compatibility requirement of the order endpoints.
type OrderLine struct {
	ProductID   string          `json:"productId"`
	ProductName string          `json:"productName"`
	Price       decimal.Decimal `json:"price"`
	Quantity    string          `json:"quantity"`
	Image       string          `json:"image"`
}

// OrderRecord is an order as returned by the fetch-orders endpoint.
// CreationDate is a display string of the form "<date>,<rest>"; TotalPrice
// may be absent from a record and must be tolerated.
type OrderRecord struct {
	OrderID      string           `json:"orderId"`
	CreationDate string           `json:"creationDate"`
	Status       Status           `json:"status"`
	TotalPrice   *decimal.Decimal `json:"totalPrice,omitempty"`
	Name         string           `json:"name,omitempty"`
	Email        string           `json:"email,omitempty"`
	Phone        string           `json:"phone,omitempty"`
	Products     []OrderLine      `json:"products"`
}
