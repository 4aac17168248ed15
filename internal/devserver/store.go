// Package devserver is a self-contained, in-memory stand-in for the remote
// bakery endpoints. It exists so the client workflow can be exercised end to
// end locally; it is not a production backend.
package devserver

import (
	"errors"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"docemarce/internal/models"
)

var (
	// ErrUserExists is returned when registering an email already in use.
	ErrUserExists = errors.New("user already exists")
	// ErrUserNotFound is returned when an update names an unknown account.
	ErrUserNotFound = errors.New("user not found")
	// ErrWrongPassword is returned when the supplied credential fails the check.
	ErrWrongPassword = errors.New("wrong password")
	// ErrProductNotFound is returned when a mutation names an unknown product.
	ErrProductNotFound = errors.New("product not found")
	// ErrOrderNotFound is returned when a status update names an unknown order.
	ErrOrderNotFound = errors.New("order not found")
	// ErrBadStatus is returned when a status update carries a value outside
	// the workflow enumeration.
	ErrBadStatus = errors.New("invalid status")
)

type storedUser struct {
	user models.User
	hash []byte
}

// Store holds all server-side state behind a single lock.
type Store struct {
	mu       sync.RWMutex
	users    map[string]*storedUser
	products map[string]models.Product
	// productIDs preserves insertion order for stable catalog listings.
	productIDs []string
	orders     []models.OrderRecord

	now func() time.Time
}

// NewStore builds a store seeded with a demo admin, a demo customer and a
// small starting catalog.
func NewStore() *Store {
	s := &Store{
		users:    make(map[string]*storedUser),
		products: make(map[string]models.Product),
		now:      time.Now,
	}

	s.mustSeedUser(models.User{
		Name:    "Marcela",
		Email:   "marce@doceria.com",
		Phone:   "+55 11 95422-0341",
		IsAdmin: true,
	}, "doceria")
	s.mustSeedUser(models.User{
		Name:  "Cliente Demo",
		Email: "cliente@example.com",
		Phone: "+55 11 91234-5678",
	}, "docinho")

	s.seedProduct("Brigadeiro", "https://example.com/img/brigadeiro.png", "4.50")
	s.seedProduct("Beijinho", "https://example.com/img/beijinho.png", "4.00")
	s.seedProduct("Bolo de pote", "https://example.com/img/bolo-de-pote.png", "12.50")

	return s
}

func (s *Store) mustSeedUser(u models.User, password string) {
	if err := s.CreateUser(u, password); err != nil {
		panic(err)
	}
}

func (s *Store) seedProduct(name, image, price string) {
	p, _ := decimal.NewFromString(price)
	s.CreateProduct(name, image, p)
}

// Authenticate checks credentials and returns the matching account. The
// returned record never carries the password.
func (s *Store) Authenticate(email, password string) (models.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	su, ok := s.users[email]
	if !ok {
		return models.User{}, false
	}
	if bcrypt.CompareHashAndPassword(su.hash, []byte(password)) != nil {
		return models.User{}, false
	}
	return su.user, true
}

// CreateUser registers a new account with a bcrypt-hashed credential.
func (s *Store) CreateUser(u models.User, password string) error {
	if u.Email == "" || u.Name == "" || password == "" {
		return errors.New("name, email and password are required")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[u.Email]; ok {
		return ErrUserExists
	}
	u.Password = ""
	s.users[u.Email] = &storedUser{user: u, hash: hash}
	return nil
}

// UpdateUser rewrites the profile fields of an account after verifying the
// current password. A non-empty newPassword replaces the credential.
func (s *Store) UpdateUser(u models.User, currentPassword, newPassword string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	su, ok := s.users[u.Email]
	if !ok {
		return ErrUserNotFound
	}
	if bcrypt.CompareHashAndPassword(su.hash, []byte(currentPassword)) != nil {
		return ErrWrongPassword
	}
	su.user.Name = u.Name
	su.user.Phone = u.Phone
	su.user.Photo = u.Photo
	if newPassword != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		su.hash = hash
	}
	return nil
}

// Products lists the catalog in insertion order, disabled entries included.
func (s *Store) Products() []models.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Product, 0, len(s.productIDs))
	for _, id := range s.productIDs {
		out = append(out, s.products[id])
	}
	return out
}

// CreateProduct adds a catalog entry with a server-assigned ID.
func (s *Store) CreateProduct(name, image string, price decimal.Decimal) models.Product {
	p := models.Product{
		ProductID:   uuid.New().String(),
		ProductName: name,
		Image:       image,
		Price:       price,
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products[p.ProductID] = p
	s.productIDs = append(s.productIDs, p.ProductID)
	return p
}

// ProductPatch is a partial product mutation; nil fields stay untouched.
type ProductPatch struct {
	ProductName *string
	Image       *string
	Price       *decimal.Decimal
	Disabled    *bool
}

// UpdateProduct applies only the fields present in the patch.
func (s *Store) UpdateProduct(productID string, patch ProductPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.products[productID]
	if !ok {
		return ErrProductNotFound
	}
	if patch.ProductName != nil {
		p.ProductName = *patch.ProductName
	}
	if patch.Image != nil {
		p.Image = *patch.Image
	}
	if patch.Price != nil {
		p.Price = *patch.Price
	}
	if patch.Disabled != nil {
		p.Disabled = *patch.Disabled
	}
	s.products[productID] = p
	return nil
}

// CreateOrder stores a new order with a server-assigned ID, creation date and
// computed total, and returns the stored record.
func (s *Store) CreateOrder(email, name, phone string, lines []models.OrderLine) (models.OrderRecord, error) {
	if len(lines) == 0 {
		return models.OrderRecord{}, errors.New("order has no products")
	}
	total := decimal.Zero
	for _, l := range lines {
		qty, err := strconv.Atoi(l.Quantity)
		if err != nil || qty <= 0 {
			return models.OrderRecord{}, errors.New("bad line quantity")
		}
		total = total.Add(l.Price.Mul(decimal.NewFromInt(int64(qty))))
	}
	rec := models.OrderRecord{
		OrderID: uuid.New().String(),
		// "<date>,<time>" so clients keep the part before the comma.
		CreationDate: s.now().Format("02/01/2006, 15:04"),
		Status:       models.StatusAwaitingPayment,
		TotalPrice:   &total,
		Name:         name,
		Email:        email,
		Phone:        phone,
		Products:     lines,
	}
	s.mu.Lock()
	s.orders = append(s.orders, rec)
	s.mu.Unlock()
	return rec, nil
}

// OrdersFor lists the orders belonging to one customer email.
func (s *Store) OrdersFor(email string) []models.OrderRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []models.OrderRecord{}
	for _, o := range s.orders {
		if o.Email == email {
			out = append(out, o)
		}
	}
	return out
}

// AllOrders lists every order, the admin view.
func (s *Store) AllOrders() []models.OrderRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.OrderRecord, len(s.orders))
	copy(out, s.orders)
	return out
}

// UpdateOrderStatus sets one order's status. The server is the sole enforcer
// of the value set: anything outside the enumeration is rejected.
func (s *Store) UpdateOrderStatus(orderID string, status models.Status) error {
	if !status.Valid() {
		return ErrBadStatus
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.orders {
		if s.orders[i].OrderID == orderID {
			s.orders[i].Status = status
			return nil
		}
	}
	return ErrOrderNotFound
}
