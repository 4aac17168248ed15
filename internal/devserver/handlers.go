package devserver

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/shopspring/decimal"

	"docemarce/internal/models"
)

// Server bundles the store with its HTTP handlers.
type Server struct {
	store *Store
}

// NewServer wraps a store.
func NewServer(store *Store) *Server {
	return &Server{store: store}
}

// JSONResponse writes a JSON response.
func JSONResponse(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

// ErrorResponse writes an error response with a status matching the error.
func ErrorResponse(w http.ResponseWriter, err error) {
	var status int
	switch {
	case errors.Is(err, ErrUserNotFound), errors.Is(err, ErrProductNotFound), errors.Is(err, ErrOrderNotFound):
		status = http.StatusNotFound
	case errors.Is(err, ErrWrongPassword):
		status = http.StatusUnauthorized
	case errors.Is(err, ErrUserExists):
		status = http.StatusConflict
	default:
		status = http.StatusBadRequest
	}
	JSONResponse(w, status, map[string]string{"error": err.Error()})
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		http.Error(w, "bad request body", http.StatusBadRequest)
		return false
	}
	return true
}

// GetUserHandler authenticates and answers with a sequence of user records.
// Wrong credentials yield an empty sequence, not an error status: that is
// the contract the mobile client was written against.
func (s *Server) GetUserHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	u, ok := s.store.Authenticate(req.Email, req.Password)
	if !ok {
		JSONResponse(w, http.StatusOK, []models.User{})
		return
	}
	JSONResponse(w, http.StatusOK, []models.User{u})
}

// CreateUserHandler registers a new account.
func (s *Server) CreateUserHandler(w http.ResponseWriter, r *http.Request) {
	var u models.User
	if !decodeBody(w, r, &u) {
		return
	}
	password := u.Password
	u.Password = ""
	if err := s.store.CreateUser(u, password); err != nil {
		ErrorResponse(w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

// UpdateUserHandler rewrites profile fields and, when newPassword is present,
// the credential.
func (s *Server) UpdateUserHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		models.User
		NewPassword string `json:"newPassword"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	current := req.Password
	req.User.Password = ""
	if err := s.store.UpdateUser(req.User, current, req.NewPassword); err != nil {
		ErrorResponse(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// GetOrderHandler answers with the caller's orders, or with every order when
// the admin flag is set.
func (s *Server) GetOrderHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email   string `json:"email"`
		IsAdmin bool   `json:"isAdmin"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if req.IsAdmin {
		JSONResponse(w, http.StatusOK, s.store.AllOrders())
		return
	}
	JSONResponse(w, http.StatusOK, s.store.OrdersFor(req.Email))
}

// CreateOrderHandler stores a new order.
func (s *Server) CreateOrderHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string             `json:"email"`
		Name     string             `json:"name"`
		Phone    string             `json:"phone"`
		Products []models.OrderLine `json:"products"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	rec, err := s.store.CreateOrder(req.Email, req.Name, req.Phone, req.Products)
	if err != nil {
		ErrorResponse(w, err)
		return
	}
	JSONResponse(w, http.StatusCreated, rec)
}

// UpdateOrderHandler sets an order's status.
func (s *Server) UpdateOrderHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		OrderID string        `json:"orderId"`
		Status  models.Status `json:"status"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if err := s.store.UpdateOrderStatus(req.OrderID, req.Status); err != nil {
		ErrorResponse(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// GetProductsHandler lists the catalog. The customer call site posts an email
// body, the admin one issues a bare GET; both get the same full list.
func (s *Server) GetProductsHandler(w http.ResponseWriter, r *http.Request) {
	JSONResponse(w, http.StatusOK, s.store.Products())
}

// CreateProductHandler adds a catalog entry.
func (s *Server) CreateProductHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ProductName string          `json:"productName"`
		Image       string          `json:"image"`
		Price       decimal.Decimal `json:"price"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if req.ProductName == "" || req.Image == "" {
		http.Error(w, "productName and image are required", http.StatusBadRequest)
		return
	}
	p := s.store.CreateProduct(req.ProductName, req.Image, req.Price)
	JSONResponse(w, http.StatusCreated, p)
}

// UpdateProductHandler applies a partial product mutation; absent fields are
// left exactly as stored.
func (s *Server) UpdateProductHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ProductID   string           `json:"productId"`
		ProductName *string          `json:"productName"`
		Image       *string          `json:"image"`
		Price       *decimal.Decimal `json:"price"`
		Disabled    *bool            `json:"disabled"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	patch := ProductPatch{
		ProductName: req.ProductName,
		Image:       req.Image,
		Price:       req.Price,
		Disabled:    req.Disabled,
	}
	if err := s.store.UpdateProduct(req.ProductID, patch); err != nil {
		ErrorResponse(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}
