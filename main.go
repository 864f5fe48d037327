package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/junaidrashid-git/storefront-client/api"
	"github.com/junaidrashid-git/storefront-client/models"
	"github.com/junaidrashid-git/storefront-client/storage"
	cartstore "github.com/junaidrashid-git/storefront-client/stores/cart"
	catalogstore "github.com/junaidrashid-git/storefront-client/stores/catalog"
	notifystore "github.com/junaidrashid-git/storefront-client/stores/notify"
	orderstore "github.com/junaidrashid-git/storefront-client/stores/orders"
	sessionstore "github.com/junaidrashid-git/storefront-client/stores/session"
)

// app bundles the wired stores. They are built here and nowhere else; no
// package-level singletons.
type app struct {
	session *sessionstore.Store
	catalog *catalogstore.Store
	cart    *cartstore.Store
	orders  *orderstore.Store
	notify  *notifystore.Store
}

func main() {
	// Load environment variables
	_ = godotenv.Load()

	baseURL := getenv("STOREFRONT_API_URL", "http://localhost:4000")
	stateDir := getenv("STOREFRONT_STATE_DIR", defaultStateDir())
	downloadDir := getenv("STOREFRONT_DOWNLOAD_DIR", ".")

	st, err := storage.Open(stateDir)
	if err != nil {
		log.Fatalf("❌ Failed to open state dir: %v", err)
	}

	client := api.New(api.Config{
		BaseURL: baseURL,
		Tokens: api.TokenFunc(func() string {
			token, _ := st.Get(storage.KeyToken)
			return token
		}),
	})

	notify := notifystore.New()

	session, err := sessionstore.New(client, st, notify)
	if err != nil {
		log.Fatalf("❌ Failed to restore session: %v", err)
	}

	a := &app{
		session: session,
		catalog: catalogstore.New(client),
		cart:    cartstore.New(client),
		orders: orderstore.New(orderstore.Config{
			Client:      client,
			DownloadDir: downloadDir,
			Redirect: func(url string) error {
				log.Printf("💳 Open this URL to complete payment: %s", url)
				return nil
			},
		}),
		notify: notify,
	}

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	if err := a.run(context.Background(), os.Args[1], os.Args[2:]); err != nil {
		log.Fatalf("❌ %v", err)
	}

	// The UI layer decides how notifications surface; here they go to the log.
	if center := a.notify.Center(); center != nil {
		log.Printf("🔔 %s", center.Message)
	}
	for _, t := range a.notify.Toasts() {
		log.Printf("🔔 [%s] %s", t.Type, t.Message)
	}
}

func (a *app) run(ctx context.Context, cmd string, args []string) error {
	switch cmd {
	case "register":
		if len(args) < 2 {
			return fmt.Errorf("usage: register <email> <password>")
		}
		raw, err := a.session.Register(ctx, models.RegisterPayload{Email: args[0], Password: args[1]})
		if err != nil {
			return err
		}
		log.Printf("✅ Registered: %s", raw)

	case "login":
		if len(args) < 2 {
			return fmt.Errorf("usage: login <email> <password>")
		}
		if err := a.session.Login(ctx, models.LoginPayload{Email: args[0], Password: args[1]}); err != nil {
			return err
		}
		if u := a.session.User(); u != nil {
			log.Printf("✅ Logged in as %s (admin: %v)", u.Email, a.session.IsAdmin())
		}

	case "logout":
		a.session.Logout()

	case "whoami":
		if !a.session.IsLoggedIn() {
			log.Println("Not logged in")
			return nil
		}
		if u := a.session.User(); u != nil {
			log.Printf("👤 %s %s <%s> admin=%v", u.FirstName, u.LastName, u.Email, a.session.IsAdmin())
		}
		if claims := a.session.Claims(); claims != nil {
			log.Printf("🔑 Token claims: %v", claims)
		}

	case "products":
		if err := a.catalog.FetchActive(ctx); err != nil {
			return fmt.Errorf("%s", a.catalog.Err())
		}
		for _, p := range a.catalog.Active() {
			log.Printf("🧁 %s  %s  ₱%.2f", p.ID, p.Name, p.Price)
		}

	case "product":
		if len(args) < 1 {
			return fmt.Errorf("usage: product <id>")
		}
		p, err := a.catalog.FetchOne(ctx, args[0])
		if err != nil {
			return err
		}
		log.Printf("🧁 %s  ₱%.2f  active=%v\n%s", p.Name, p.Price, p.IsActive, p.Description)

	case "admin-products":
		if err := a.catalog.FetchAllAdmin(ctx); err != nil {
			return fmt.Errorf("%s", a.catalog.Err())
		}
		for _, p := range a.catalog.All() {
			log.Printf("🧁 %s  %s  ₱%.2f  active=%v", p.ID, p.Name, p.Price, p.IsActive)
		}

	case "add-product":
		if len(args) < 2 {
			return fmt.Errorf("usage: add-product <name> <price> [stock]")
		}
		price, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			return fmt.Errorf("invalid price: %v", err)
		}
		stock := 0
		if len(args) > 2 {
			stock, err = strconv.Atoi(args[2])
			if err != nil {
				return fmt.Errorf("invalid stock: %v", err)
			}
		}
		raw, err := a.catalog.AddProduct(ctx, models.ProductPayload{Name: args[0], Price: price, Stock: stock})
		if err != nil {
			return err
		}
		log.Printf("✅ Product created: %s", raw)

	case "archive":
		if len(args) < 1 {
			return fmt.Errorf("usage: archive <id>")
		}
		if _, err := a.catalog.ArchiveProduct(ctx, args[0]); err != nil {
			return err
		}
		log.Println("✅ Product archived")

	case "activate":
		if len(args) < 1 {
			return fmt.Errorf("usage: activate <id>")
		}
		if _, err := a.catalog.ActivateProduct(ctx, args[0]); err != nil {
			return err
		}
		log.Println("✅ Product activated")

	case "export":
		if len(args) < 1 {
			return fmt.Errorf("usage: export <file.xlsx>")
		}
		if err := a.catalog.FetchAllAdmin(ctx); err != nil {
			// Admin list may be forbidden for customers; fall back to active.
			if err := a.catalog.FetchActive(ctx); err != nil {
				return fmt.Errorf("%s", a.catalog.Err())
			}
		}
		if err := a.catalog.ExportXLSXFile(args[0]); err != nil {
			return err
		}
		log.Printf("✅ Catalog exported to %s", args[0])

	case "cart":
		if err := a.cart.FetchCart(ctx); err != nil {
			return fmt.Errorf("%s", a.cart.Err())
		}
		for _, item := range a.cart.Items() {
			log.Printf("🛒 %s x%d  ₱%.2f  (subtotal ₱%.2f)", item.Name, item.Quantity, item.Price, item.Subtotal)
		}
		log.Printf("💰 Total: ₱%.2f", a.cart.Total())

	case "cart-add":
		if len(args) < 1 {
			return fmt.Errorf("usage: cart-add <productId> [quantity]")
		}
		qty := 1
		if len(args) > 1 {
			var err error
			qty, err = strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid quantity: %v", err)
			}
		}
		if err := a.cart.AddToCart(ctx, args[0], qty); err != nil {
			return err
		}
		a.notify.Toast("Added to cart", "success")

	case "cart-set":
		if len(args) < 2 {
			return fmt.Errorf("usage: cart-set <productId> <quantity>")
		}
		qty, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid quantity: %v", err)
		}
		if err := a.cart.UpdateQuantity(ctx, args[0], qty); err != nil {
			return err
		}
		a.notify.Toast("Cart updated", "success")

	case "cart-rm":
		if len(args) < 1 {
			return fmt.Errorf("usage: cart-rm <productId>")
		}
		if err := a.cart.RemoveItem(ctx, args[0]); err != nil {
			return err
		}
		a.notify.Toast("Item removed", "success")

	case "cart-clear":
		if err := a.cart.ClearCart(ctx); err != nil {
			return err
		}
		a.notify.Toast("Cart cleared", "success")

	case "checkout":
		raw, err := a.orders.Checkout(ctx)
		if err != nil {
			return err
		}
		log.Printf("✅ Order placed: %s", raw)

	case "pay-card":
		if len(args) < 2 {
			return fmt.Errorf("usage: pay-card <orderId> <amount>")
		}
		amount, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			return fmt.Errorf("invalid amount: %v", err)
		}
		return a.orders.CreateStripeSession(ctx, models.StripeSessionPayload{
			OrderID: args[0],
			Amount:  amount,
		})

	case "pay-gcash", "pay-bank":
		if len(args) < 3 {
			return fmt.Errorf("usage: %s <orderId> <amount> <referenceNo>", cmd)
		}
		amount, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			return fmt.Errorf("invalid amount: %v", err)
		}
		method := "bank"
		if cmd == "pay-gcash" {
			method = "gcash"
		}
		raw, err := a.orders.SubmitManualPayment(ctx, models.ManualPaymentPayload{
			OrderID:     args[0],
			Amount:      amount,
			Method:      method,
			ReferenceNo: args[2],
		})
		if err != nil {
			return err
		}
		log.Printf("✅ Payment reference submitted: %s", raw)

	case "orders":
		if err := a.orders.FetchMyOrders(ctx); err != nil {
			return fmt.Errorf("%s", a.orders.Err())
		}
		for _, o := range a.orders.Mine() {
			log.Printf("📦 %s  ₱%.2f  %s/%s  payment=%s", o.ID, o.TotalAmount, o.Status, o.PaymentStatus, o.PaymentID)
		}

	case "receipt":
		if len(args) < 1 {
			return fmt.Errorf("usage: receipt <paymentId>")
		}
		path, err := a.orders.DownloadReceipt(ctx, args[0])
		if err != nil {
			return err
		}
		log.Printf("✅ Receipt saved to %s", path)

	case "watch":
		updates, err := a.orders.WatchOrders(ctx)
		if err != nil {
			return err
		}
		log.Println("👀 Watching for order updates (Ctrl-C to stop)...")
		for o := range updates {
			log.Printf("📦 Order %s is now %s (payment: %s)", o.ID, o.Status, o.PaymentStatus)
		}

	default:
		usage()
		return fmt.Errorf("unknown command %q", cmd)
	}
	return nil
}

func usage() {
	fmt.Fprintln(os.Stderr, `Usage: storefront <command> [args]

Session:    register, login, logout, whoami
Catalog:    products, product, admin-products, add-product, archive, activate, export
Cart:       cart, cart-add, cart-set, cart-rm, cart-clear
Orders:     checkout, pay-card, pay-gcash, pay-bank, orders, receipt, watch`)
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func defaultStateDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".storefront"
	}
	return filepath.Join(home, ".storefront")
}
