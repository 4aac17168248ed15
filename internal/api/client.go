// Package api is the HTTP layer over the remote bakery endpoints. Every call
// is JSON over POST to a fixed URL; responses are either a JSON sequence or a
// bare ok/not-ok acknowledgment. The endpoints are external collaborators:
// this package assumes their contract and nothing more.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"docemarce/internal/models"
	"docemarce/internal/utils"
)

// Endpoints holds the fixed URL of every collaborator endpoint.
type Endpoints struct {
	GetUser       string
	CreateUser    string
	UpdateUser    string
	GetOrder      string
	CreateOrder   string
	UpdateOrder   string
	GetProducts   string
	CreateProduct string
	UpdateProduct string
}

// DefaultEndpoints derives the endpoint set from a single base URL, the
// layout the development server exposes.
func DefaultEndpoints(baseURL string) Endpoints {
	return Endpoints{
		GetUser:       baseURL + "/getuser",
		CreateUser:    baseURL + "/createuser",
		UpdateUser:    baseURL + "/updateuser",
		GetOrder:      baseURL + "/getorder",
		CreateOrder:   baseURL + "/createorder",
		UpdateOrder:   baseURL + "/updateorder",
		GetProducts:   baseURL + "/getproducts",
		CreateProduct: baseURL + "/createproduct",
		UpdateProduct: baseURL + "/updateproduct",
	}
}

// Client issues the nine endpoint calls. It is safe for concurrent use.
type Client struct {
	endpoints Endpoints
	http      *http.Client
}

// NewClient builds a Client for the given endpoints.
func NewClient(endpoints Endpoints) *Client {
	return &Client{
		endpoints: endpoints,
		http:      &http.Client{Timeout: 30 * time.Second},
	}
}

// postJSON posts a JSON payload and returns the response body and status.
func (c *Client) postJSON(ctx context.Context, url string, payload any) ([]byte, int, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, 0, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()
	b, _ := io.ReadAll(resp.Body)
	return b, resp.StatusCode, nil
}

// ack interprets an ok/not-ok acknowledgment endpoint result.
func ack(body []byte, status int, err error) error {
	if err != nil {
		return err
	}
	if status < 200 || status >= 300 {
		return utils.New(status, string(body))
	}
	return nil
}

// FetchUsers authenticates by email and password. The endpoint answers with a
// sequence of user records; an empty sequence means invalid credentials.
func (c *Client) FetchUsers(ctx context.Context, email, password string) ([]models.User, error) {
	payload := map[string]string{"email": email, "password": password}
	body, status, err := c.postJSON(ctx, c.endpoints.GetUser, payload)
	if err != nil {
		return nil, fmt.Errorf("fetch user: %w", err)
	}
	if status < 200 || status >= 300 {
		return nil, utils.New(status, string(body))
	}
	var users []models.User
	if err := json.Unmarshal(body, &users); err != nil {
		return nil, fmt.Errorf("decode user response: %w", err)
	}
	return users, nil
}

// CreateUser registers a new account.
func (c *Client) CreateUser(ctx context.Context, u models.User) error {
	return ack(c.postJSON(ctx, c.endpoints.CreateUser, u))
}

// UpdateUserRequest is the update-user payload: the full user object, plus
// NewPassword when changing the credential.
type UpdateUserRequest struct {
	models.User
	NewPassword string `json:"newPassword,omitempty"`
}

// UpdateUser writes profile fields or a password change back.
func (c *Client) UpdateUser(ctx context.Context, req UpdateUserRequest) error {
	return ack(c.postJSON(ctx, c.endpoints.UpdateUser, req))
}

// OrderQuery scopes a fetch-orders call: the caller's email for the customer
// view, or the admin flag for orders across all customers.
type OrderQuery struct {
	Email   string
	IsAdmin bool
}

// FetchOrders returns the order records visible to the query scope.
func (c *Client) FetchOrders(ctx context.Context, q OrderQuery) ([]models.OrderRecord, error) {
	var payload any
	if q.IsAdmin {
		payload = map[string]bool{"isAdmin": true}
	} else {
		payload = map[string]string{"email": q.Email}
	}
	body, status, err := c.postJSON(ctx, c.endpoints.GetOrder, payload)
	if err != nil {
		return nil, fmt.Errorf("fetch orders: %w", err)
	}
	if status < 200 || status >= 300 {
		return nil, utils.New(status, string(body))
	}
	var records []models.OrderRecord
	if err := json.Unmarshal(body, &records); err != nil {
		return nil, fmt.Errorf("decode order response: %w", err)
	}
	return records, nil
}

// CreateOrderRequest is the order-creation payload. Line quantities are
// string-encoded integers, a requirement of the receiving endpoint.
type CreateOrderRequest struct {
	Email    string             `json:"email"`
	Name     string             `json:"name"`
	Phone    string             `json:"phone"`
	Products []models.OrderLine `json:"products"`
}

// CreateOrder submits a new order.
func (c *Client) CreateOrder(ctx context.Context, req CreateOrderRequest) error {
	return ack(c.postJSON(ctx, c.endpoints.CreateOrder, req))
}

// UpdateOrder sets an order's status.
func (c *Client) UpdateOrder(ctx context.Context, orderID string, status models.Status) error {
	payload := map[string]string{"orderId": orderID, "status": string(status)}
	return ack(c.postJSON(ctx, c.endpoints.UpdateOrder, payload))
}

// FetchProducts loads the full catalog. The customer call site sends the
// caller's email; the admin call site sends no body at all. Both shapes are
// preserved: an empty email issues a bare GET.
func (c *Client) FetchProducts(ctx context.Context, email string) ([]models.Product, error) {
	var (
		body   []byte
		status int
		err    error
	)
	if email == "" {
		body, status, err = c.getRaw(ctx, c.endpoints.GetProducts)
	} else {
		body, status, err = c.postJSON(ctx, c.endpoints.GetProducts, map[string]string{"email": email})
	}
	if err != nil {
		return nil, fmt.Errorf("fetch products: %w", err)
	}
	if status < 200 || status >= 300 {
		return nil, utils.New(status, string(body))
	}
	var products []models.Product
	if err := json.Unmarshal(body, &products); err != nil {
		return nil, fmt.Errorf("decode product response: %w", err)
	}
	return products, nil
}

func (c *Client) getRaw(ctx context.Context, url string) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, 0, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()
	b, _ := io.ReadAll(resp.Body)
	return b, resp.StatusCode, nil
}

// CreateProduct adds a catalog entry.
func (c *Client) CreateProduct(ctx context.Context, name, image string, price decimal.Decimal) error {
	payload := struct {
		ProductName string          `json:"productName"`
		Image       string          `json:"image"`
		Price       decimal.Decimal `json:"price"`
	}{name, image, price}
	return ack(c.postJSON(ctx, c.endpoints.CreateProduct, payload))
}

// UpdateProductRequest is a partial product mutation. Nil fields are omitted
// from the payload, so the disable action can touch nothing but the flag.
type UpdateProductRequest struct {
	ProductID   string           `json:"productId"`
	ProductName *string          `json:"productName,omitempty"`
	Image       *string          `json:"image,omitempty"`
	Price       *decimal.Decimal `json:"price,omitempty"`
	Disabled    *bool            `json:"disabled,omitempty"`
}

// UpdateProduct edits or enables/disables a catalog entry.
func (c *Client) UpdateProduct(ctx context.Context, req UpdateProductRequest) error {
	return ack(c.postJSON(ctx, c.endpoints.UpdateProduct, req))
}
