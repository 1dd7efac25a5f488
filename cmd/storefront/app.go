package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/google/uuid"
	"github.com/mateorivas/brewcart/internal/api"
	"github.com/mateorivas/brewcart/internal/cart"
	"github.com/mateorivas/brewcart/internal/checkout"
	"github.com/mateorivas/brewcart/internal/session"
	"github.com/mateorivas/brewcart/pkg/enums"
	pkgerrors "github.com/mateorivas/brewcart/pkg/errors"
	"github.com/mateorivas/brewcart/pkg/logger"
	"github.com/mateorivas/brewcart/pkg/types"
	"github.com/mateorivas/brewcart/pkg/validate"
)

// app is the interactive storefront loop. Each command is one self-contained
// action; a remote failure is reported once and the loop keeps running.
type app struct {
	log      *logger.Logger
	client   *api.Client
	carts    *cart.Service
	sessions *session.Manager
	checkout *checkout.Service

	in  *bufio.Scanner
	out io.Writer

	// catalog cache for numeric product selection; refreshed by `products`
	catalog []types.Product
	// chatbot conversation id, generated lazily on first message
	chatSession string
}

func newApp(log *logger.Logger, client *api.Client, carts *cart.Service, sessions *session.Manager, orders *checkout.Service, in io.Reader, out io.Writer) *app {
	return &app{
		log:      log,
		client:   client,
		carts:    carts,
		sessions: sessions,
		checkout: orders,
		in:       bufio.NewScanner(in),
		out:      out,
	}
}

func (a *app) run(ctx context.Context) error {
	fmt.Fprintln(a.out, "brewcart storefront — type 'help' for commands")
	for {
		fmt.Fprint(a.out, "> ")
		if !a.in.Scan() {
			return a.in.Err()
		}
		line := strings.TrimSpace(a.in.Text())
		if line == "" {
			continue
		}
		if line == "quit" || line == "exit" {
			return nil
		}
		a.dispatch(ctx, line)
	}
}

func (a *app) dispatch(ctx context.Context, command string) {
	var err error
	switch command {
	case "help":
		a.printHelp()
	case "signup":
		err = a.signup(ctx)
	case "login":
		err = a.login(ctx)
	case "logout":
		err = a.logout(ctx)
	case "whoami":
		err = a.whoami(ctx)
	case "products":
		err = a.listProducts(ctx)
	case "types":
		err = a.listTypes(ctx)
	case "add":
		err = a.addToCart(ctx, false)
	case "buy":
		err = a.addToCart(ctx, true)
	case "cart":
		err = a.viewCart(ctx)
	case "more":
		err = a.changeQuantity(ctx, 1)
	case "less":
		err = a.changeQuantity(ctx, -1)
	case "remove":
		err = a.removeFromCart(ctx)
	case "checkout":
		err = a.placeOrder(ctx)
	case "history":
		err = a.orderHistory(ctx)
	case "chat":
		err = a.chat(ctx)
	case "contact":
		err = a.contact(ctx)
	default:
		fmt.Fprintf(a.out, "unknown command %q — type 'help'\n", command)
	}
	if err != nil {
		a.reportError(ctx, err)
	}
}

func (a *app) printHelp() {
	fmt.Fprintln(a.out, `commands:
  signup / login / logout / whoami
  products / types
  add / buy        add a product to the cart (buy checks out immediately)
  cart             show the aggregated cart
  more / less      change an entry's quantity
  remove           drop a product from the cart
  checkout         place the order
  history          past orders
  chat             ask the barista bot
  contact          send a message to the shop
  quit`)
}

func (a *app) reportError(ctx context.Context, err error) {
	code := pkgerrors.CodeOf(err)
	meta := pkgerrors.MetadataFor(code)
	fmt.Fprintf(a.out, "error: %s\n", meta.PublicMessage)
	if typed := pkgerrors.As(err); typed != nil && typed.Message() != "" {
		fmt.Fprintf(a.out, "       %s\n", typed.Message())
	}
	if meta.Retryable {
		fmt.Fprintln(a.out, "       you can try that again")
	}
	a.log.Error(ctx, "command failed", err)
}

func (a *app) prompt(label string) string {
	fmt.Fprintf(a.out, "%s: ", label)
	if !a.in.Scan() {
		return ""
	}
	return strings.TrimSpace(a.in.Text())
}

func (a *app) signup(ctx context.Context) error {
	req := api.SignupRequest{
		Name:     a.prompt("name"),
		Email:    a.prompt("email"),
		Password: a.prompt("password"),
	}
	resp, err := a.client.Signup(ctx, req)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, resp.Message)
	if resp.Token == "" {
		fmt.Fprintln(a.out, "account created — log in to continue")
		return nil
	}
	return a.persistLogin(ctx, resp)
}

func (a *app) login(ctx context.Context) error {
	req := api.LoginRequest{
		Email:    a.prompt("email"),
		Password: a.prompt("password"),
	}
	resp, err := a.client.Login(ctx, req)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "welcome back, %s\n", resp.Name)
	return a.persistLogin(ctx, resp)
}

func (a *app) persistLogin(ctx context.Context, resp *api.LoginResponse) error {
	return a.sessions.Save(ctx, session.Identity{
		UserID: resp.UserID,
		Token:  resp.Token,
		Role:   resp.UserRole,
	})
}

func (a *app) logout(ctx context.Context) error {
	if err := a.sessions.Clear(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "signed out; your cart is kept for next time")
	return nil
}

func (a *app) whoami(ctx context.Context) error {
	identity, err := a.sessions.Current(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "user %s (%s)\n", identity.UserID, identity.Role)
	expiry, err := a.sessions.TokenExpiry(ctx)
	if err != nil {
		return err
	}
	if expiry != nil {
		fmt.Fprintf(a.out, "session valid until %s\n", expiry.Format("2006-01-02 15:04"))
	}
	return nil
}

func (a *app) listProducts(ctx context.Context) error {
	products, err := a.client.ListProducts(ctx)
	if err != nil {
		return err
	}
	a.catalog = products
	if len(products) == 0 {
		fmt.Fprintln(a.out, "the catalog is empty")
		return nil
	}

	w := tabwriter.NewWriter(a.out, 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "#\tNAME\tTYPE\tSMALL\tMEDIUM\tLARGE")
	for i, p := range products {
		fmt.Fprintf(w, "%d\t%s\t%s\t%.2f\t%.2f\t%.2f\n",
			i+1, p.Name, p.Type,
			cart.PriceForSize(p, enums.SizeSmall),
			cart.PriceForSize(p, enums.SizeMedium),
			cart.PriceForSize(p, enums.SizeLarge),
		)
	}
	return w.Flush()
}

func (a *app) listTypes(ctx context.Context) error {
	kinds, err := a.client.ProductTypes(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, strings.Join(kinds, ", "))
	return nil
}

// pickProduct resolves a catalog row by its number from the last listing.
func (a *app) pickProduct() (*types.Product, error) {
	if len(a.catalog) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "run 'products' first to load the catalog")
	}
	raw := a.prompt("product #")
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 || n > len(a.catalog) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("no product numbered %q", raw))
	}
	return &a.catalog[n-1], nil
}

func (a *app) addToCart(ctx context.Context, buyNow bool) error {
	identity, err := a.sessions.Current(ctx)
	if err != nil {
		return err
	}
	product, err := a.pickProduct()
	if err != nil {
		return err
	}

	size := enums.NormalizeSize(a.prompt("size (small/medium/large)"))
	sugar := enums.NormalizeSugar(a.prompt("sugar (with sugar/without sugar/extra sugar)"))
	customization := a.prompt("customization (optional)")

	_, err = a.carts.Add(ctx, identity.UserID, product.ProductID, cart.AddOptions{
		Size:          string(size),
		Sugar:         string(sugar),
		Customization: customization,
		Name:          product.Name,
		Price:         cart.PriceForSize(*product, size),
		DiscountPrice: product.DiscountPrice,
		Image:         product.Image,
		Type:          product.Type,
		Description:   product.Description,
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "added %s (%s, %s)\n", product.Name, size, sugar)

	if buyNow {
		return a.placeOrder(ctx)
	}
	return nil
}

func (a *app) viewCart(ctx context.Context) error {
	identity, err := a.sessions.Current(ctx)
	if err != nil {
		return err
	}
	entries, err := a.carts.View(ctx, identity.UserID)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Fprintln(a.out, "your cart is empty")
		return nil
	}

	w := tabwriter.NewWriter(a.out, 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tSIZE\tSUGAR\tQTY\tUNIT\tTOTAL")
	grand := 0.0
	for _, e := range entries {
		name := e.Name
		if e.Customization != "" {
			name += " (" + e.Customization + ")"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%.2f\t%.2f\n", name, e.Size, e.Sugar, e.Quantity, e.Price, e.Total)
		grand += e.Total
	}
	fmt.Fprintf(w, "\t\t\t\t\t%.2f\n", grand)
	return w.Flush()
}

func (a *app) changeQuantity(ctx context.Context, delta int) error {
	identity, err := a.sessions.Current(ctx)
	if err != nil {
		return err
	}
	productID := a.prompt("product id")
	if _, err := a.carts.UpdateQuantity(ctx, identity.UserID, productID, delta); err != nil {
		return err
	}
	return a.viewCart(ctx)
}

func (a *app) removeFromCart(ctx context.Context) error {
	identity, err := a.sessions.Current(ctx)
	if err != nil {
		return err
	}
	productID := a.prompt("product id")
	if _, err := a.carts.Remove(ctx, identity.UserID, productID); err != nil {
		return err
	}
	return a.viewCart(ctx)
}

func (a *app) placeOrder(ctx context.Context) error {
	identity, err := a.sessions.Current(ctx)
	if err != nil {
		return err
	}
	resp, err := a.checkout.Submit(ctx, identity.UserID)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s — order %s, total %.2f (%s)\n",
		resp.Message, resp.Order.OrderID, resp.Order.TotalAmount, resp.Order.Status)
	return nil
}

func (a *app) orderHistory(ctx context.Context) error {
	identity, err := a.sessions.Current(ctx)
	if err != nil {
		return err
	}
	history, err := a.client.OrderHistory(ctx, identity.UserID)
	if err != nil {
		return err
	}
	if len(history) == 0 {
		fmt.Fprintln(a.out, "no past orders")
		return nil
	}

	w := tabwriter.NewWriter(a.out, 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ORDER\tWHEN\tITEMS\tTOTAL\tSTATUS")
	for _, entry := range history {
		fmt.Fprintf(w, "%s\t%s\t%d\t%.2f\t%s\n",
			entry.OrderID, entry.Timestamp, len(entry.Items), entry.TotalAmount, entry.Status)
	}
	return w.Flush()
}

func (a *app) chat(ctx context.Context) error {
	message := a.prompt("message (or leave empty and give a mood)")
	mood := ""
	if message == "" {
		mood = a.prompt("mood")
	}
	isNew := a.chatSession == ""
	if isNew {
		a.chatSession = uuid.NewString()
	}
	resp, err := a.client.Chat(ctx, api.ChatbotRequest{
		Message:           message,
		Mood:              mood,
		SessionID:         a.chatSession,
		IsNewConversation: isNew,
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "barista: %s\n", resp.Suggestion)
	return nil
}

func (a *app) contact(ctx context.Context) error {
	req := api.ContactRequest{
		Name:    a.prompt("name"),
		Email:   a.prompt("email"),
		Message: validate.SanitizeString(a.prompt("message"), 2000),
	}
	resp, err := a.client.SubmitContact(ctx, req)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s (ref %s)\n", resp.Message, resp.ContactID)
	return nil
}
