package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"docemarce/internal/api"
	"docemarce/internal/cart"
	"docemarce/internal/catalog"
	"docemarce/internal/models"
	"docemarce/internal/notify"
	"docemarce/internal/orders"
	"docemarce/internal/profile"
	"docemarce/internal/session"
	"docemarce/internal/utils"
)

func main() {
	cmd := flag.String("cmd", "", "Command: register|orders|products|new-order|set-status|add-product|edit-product|set-disabled|profile|update-profile|change-password")
	serverFlag := flag.String("server", "", "Override server base URL (e.g. https://api.example.com)")
	email := flag.String("email", "", "Account email")
	password := flag.String("password", "", "Account password")
	name := flag.String("name", "", "Name (register/products/profile)")
	phone := flag.String("phone", "", "Phone (register/profile)")
	photo := flag.String("photo", "", "Photo URI (register)")
	items := flag.String("items", "", "Cart items as productId=qty[,productId=qty...] (new-order)")
	orderID := flag.String("order", "", "Order ID (set-status)")
	status := flag.String("status", "", "New status (set-status)")
	productID := flag.String("product", "", "Product ID (edit-product/set-disabled)")
	image := flag.String("image", "", "Product image URI")
	price := flag.String("price", "", "Product price")
	disabled := flag.Bool("disabled", true, "Disabled flag (set-disabled)")
	newPassword := flag.String("new-password", "", "New password (change-password)")
	flag.Parse()

	cfg := utils.LoadConfig()
	if *serverFlag != "" {
		cfg.ServerBaseURL = strings.TrimRight(*serverFlag, "/")
	}

	client := api.NewClient(api.DefaultEndpoints(cfg.ServerBaseURL))
	n := notify.Console{}
	ctx := context.Background()

	var err error
	switch *cmd {
	case "register":
		err = registerFlow(ctx, client, n, models.User{
			Name:     *name,
			Email:    *email,
			Password: *password,
			Phone:    *phone,
			Photo:    *photo,
		})
	case "orders":
		err = withSession(ctx, client, n, *email, *password, func(sess *session.Session) error {
			return listOrders(ctx, client, n, sess)
		})
	case "products":
		err = withSession(ctx, client, n, *email, *password, func(sess *session.Session) error {
			return listProducts(ctx, client, n, sess)
		})
	case "new-order":
		err = withSession(ctx, client, n, *email, *password, func(sess *session.Session) error {
			return newOrderFlow(ctx, client, n, sess, *items)
		})
	case "set-status":
		err = withSession(ctx, client, n, *email, *password, func(sess *session.Session) error {
			return setStatusFlow(ctx, client, n, sess, *orderID, *status)
		})
	case "add-product":
		err = withAdmin(ctx, client, n, *email, *password, func(m *catalog.Manager) error {
			return m.Create(ctx, *name, *image, *price)
		})
	case "edit-product":
		err = withAdmin(ctx, client, n, *email, *password, func(m *catalog.Manager) error {
			return m.Edit(ctx, *productID, *name, *image, *price)
		})
	case "set-disabled":
		err = withAdmin(ctx, client, n, *email, *password, func(m *catalog.Manager) error {
			return m.SetDisabled(ctx, *productID, *disabled)
		})
	case "profile":
		err = withSession(ctx, client, n, *email, *password, func(sess *session.Session) error {
			return showProfile(ctx, client, n, sess)
		})
	case "update-profile":
		err = withSession(ctx, client, n, *email, *password, func(sess *session.Session) error {
			return updateProfileFlow(ctx, client, n, sess, *name, *phone)
		})
	case "change-password":
		err = withSession(ctx, client, n, *email, *password, func(sess *session.Session) error {
			return changePasswordFlow(ctx, client, n, sess, *password, *newPassword)
		})
	default:
		fmt.Println("Unknown command")
		flag.Usage()
		os.Exit(1)
	}
	if err != nil {
		fmt.Println("Error:", err)
		os.Exit(1)
	}
}

// withSession logs in and hands the session to the command body.
func withSession(ctx context.Context, client *api.Client, n notify.Notifier, email, password string, fn func(*session.Session) error) error {
	if email == "" || password == "" {
		return fmt.Errorf("--email and --password are required")
	}
	sess, err := session.Login(ctx, client, email, password)
	if err != nil {
		if err == session.ErrInvalidCredentials {
			n.Error("Login ou senha inválidos.")
		} else {
			n.Error("Não foi possível conectar ao servidor.")
		}
		return err
	}
	n.Success("Login realizado com sucesso!")
	if sess.IsAdmin() {
		n.Success("Você está logado como administrador.")
	}
	return fn(sess)
}

// withAdmin logs in and requires the admin flag before running the body.
func withAdmin(ctx context.Context, client *api.Client, n notify.Notifier, email, password string, fn func(*catalog.Manager) error) error {
	return withSession(ctx, client, n, email, password, func(sess *session.Session) error {
		if !sess.IsAdmin() {
			return fmt.Errorf("command requires an administrator account")
		}
		return fn(catalog.NewManager(client, n))
	})
}

func registerFlow(ctx context.Context, client *api.Client, n notify.Notifier, u models.User) error {
	if err := session.Register(ctx, client, u); err != nil {
		if err == session.ErrMissingFields {
			n.Error("Preencha todos os campos!")
		} else {
			n.Error("Não foi possível cadastrar. Tente novamente.")
		}
		return err
	}
	n.Success("Cadastro realizado com sucesso!")
	return nil
}

func listOrders(ctx context.Context, client *api.Client, n notify.Notifier, sess *session.Session) error {
	tracker := orders.NewTracker(client, n, orderScope(sess))
	if err := tracker.Refresh(ctx); err != nil {
		return err
	}
	for _, o := range tracker.Orders() {
		fmt.Printf("%s  %s  %-22s  R$ %s\n", o.ID, o.Date, o.Status, o.DisplayTotal())
		if sess.IsAdmin() && o.ClientName != "" {
			fmt.Printf("    cliente: %s <%s> %s\n", o.ClientName, o.ClientEmail, o.ClientPhone)
		}
		for _, l := range o.Products {
			fmt.Printf("    %dx %s (R$ %s)\n", l.Quantity, l.Title, l.Price.StringFixed(2))
		}
		if !sess.IsAdmin() && orders.CanArrangeDelivery(o) {
			fmt.Printf("    entrega: %s\n", orders.WhatsAppLink(o.ID))
		}
	}
	return nil
}

func listProducts(ctx context.Context, client *api.Client, n notify.Notifier, sess *session.Session) error {
	loader := catalogLoader(client, n, sess)
	if err := loader.Refresh(ctx); err != nil {
		return err
	}
	for _, p := range loader.Products() {
		label := ""
		if p.Disabled {
			label = "  [desabilitado]"
		}
		fmt.Printf("%s  %-24s R$ %s%s\n", p.ProductID, p.ProductName, p.Price.StringFixed(2), label)
	}
	return nil
}

// catalogLoader picks the call shape for the session: admins fetch with no
// body, customers send their email.
func catalogLoader(client *api.Client, n notify.Notifier, sess *session.Session) *catalog.Loader {
	if sess.IsAdmin() {
		return catalog.NewLoader(client, n, "")
	}
	return catalog.NewLoader(client, n, sess.Email())
}

func orderScope(sess *session.Session) api.OrderQuery {
	if sess.IsAdmin() {
		return api.OrderQuery{IsAdmin: true}
	}
	return api.OrderQuery{Email: sess.Email()}
}

// newOrderFlow builds a cart from the catalog snapshot, applies the requested
// quantities and submits, refetching the order list on success.
func newOrderFlow(ctx context.Context, client *api.Client, n notify.Notifier, sess *session.Session, items string) error {
	loader := catalog.NewLoader(client, n, sess.Email())
	if err := loader.Refresh(ctx); err != nil {
		return err
	}
	c := cart.New(loader.Available())
	for _, part := range strings.Split(items, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, qtyStr, ok := strings.Cut(part, "=")
		if !ok {
			return fmt.Errorf("bad item %q, want productId=qty", part)
		}
		qty, err := strconv.Atoi(qtyStr)
		if err != nil {
			return fmt.Errorf("bad quantity in %q: %w", part, err)
		}
		c.Adjust(id, qty)
	}
	fmt.Printf("Total: R$ %s\n", c.Total().StringFixed(2))

	tracker := orders.NewTracker(client, n, orderScope(sess))
	submitter := &orders.Submitter{
		Client: client,
		Notify: n,
		OnCreated: func() {
			if err := tracker.Refresh(ctx); err != nil {
				fmt.Println("refetch orders:", err)
			}
		},
	}
	if err := submitter.Submit(ctx, sess, c); err != nil {
		return err
	}
	fmt.Printf("Pedidos: %d\n", len(tracker.Orders()))
	return nil
}

func setStatusFlow(ctx context.Context, client *api.Client, n notify.Notifier, sess *session.Session, orderID, status string) error {
	if !sess.IsAdmin() {
		return fmt.Errorf("command requires an administrator account")
	}
	tracker := orders.NewTracker(client, n, api.OrderQuery{IsAdmin: true})
	if err := tracker.Refresh(ctx); err != nil {
		return err
	}
	if _, ok := tracker.OpenDetail(orderID); !ok {
		return fmt.Errorf("order %s not found", orderID)
	}
	return tracker.SetStatus(ctx, orderID, models.Status(status))
}

func showProfile(ctx context.Context, client *api.Client, n notify.Notifier, sess *session.Session) error {
	editor := profile.NewEditor(client, n, sess)
	if err := editor.Load(ctx); err != nil {
		return err
	}
	u := editor.User()
	fmt.Printf("Nome:     %s\nEmail:    %s\nTelefone: %s\nFoto:     %s\n", u.Name, u.Email, u.Phone, u.Photo)
	return nil
}

func updateProfileFlow(ctx context.Context, client *api.Client, n notify.Notifier, sess *session.Session, name, phone string) error {
	editor := profile.NewEditor(client, n, sess)
	if err := editor.Load(ctx); err != nil {
		return err
	}
	if name != "" {
		editor.Focus(profile.FieldName)
		if err := editor.Set(profile.FieldName, name); err != nil {
			return err
		}
		editor.Blur(profile.FieldName)
	}
	if phone != "" {
		editor.Focus(profile.FieldPhone)
		if err := editor.Set(profile.FieldPhone, phone); err != nil {
			return err
		}
		editor.Blur(profile.FieldPhone)
	}
	return editor.Save(ctx)
}

func changePasswordFlow(ctx context.Context, client *api.Client, n notify.Notifier, sess *session.Session, current, newPassword string) error {
	editor := profile.NewEditor(client, n, sess)
	if err := editor.Load(ctx); err != nil {
		return err
	}
	return editor.ChangePassword(ctx, current, newPassword, newPassword)
}
