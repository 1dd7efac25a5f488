package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/mateorivas/brewcart/internal/api"
	"github.com/mateorivas/brewcart/pkg/enums"
	pkgerrors "github.com/mateorivas/brewcart/pkg/errors"
	"github.com/mateorivas/brewcart/pkg/logger"
)

// app is the interactive admin loop: order triage, dashboard stats, catalog
// additions, and the contact inbox.
type app struct {
	log    *logger.Logger
	client *api.Client

	in  *bufio.Scanner
	out io.Writer
}

func newApp(log *logger.Logger, client *api.Client, in io.Reader, out io.Writer) *app {
	return &app{
		log:    log,
		client: client,
		in:     bufio.NewScanner(in),
		out:    out,
	}
}

func (a *app) run(ctx context.Context) error {
	fmt.Fprintln(a.out, "brewcart admin — type 'help' for commands")
	for {
		fmt.Fprint(a.out, "admin> ")
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
	case "orders":
		err = a.listOrders(ctx)
	case "complete":
		err = a.markCompleted(ctx)
	case "cancel":
		err = a.cancelOrder(ctx)
	case "stats":
		err = a.showStats(ctx)
	case "popular":
		err = a.popularProducts(ctx)
	case "add-product":
		err = a.addProduct(ctx)
	case "contacts":
		err = a.listContacts(ctx)
	case "triage":
		err = a.triageContact(ctx)
	case "delete-contact":
		err = a.deleteContact(ctx)
	default:
		fmt.Fprintf(a.out, "unknown command %q — type 'help'\n", command)
	}
	if err != nil {
		a.reportError(ctx, err)
	}
}

func (a *app) printHelp() {
	fmt.Fprintln(a.out, `commands:
  orders           list every order
  complete         mark an order completed
  cancel           cancel an order
  stats            dashboard aggregates
  popular          per-product popularity and revenue
  add-product      create a catalog entry
  contacts         list contact messages
  triage           set a contact message's status
  delete-contact   remove a contact message
  quit`)
}

func (a *app) reportError(ctx context.Context, err error) {
	meta := pkgerrors.MetadataFor(pkgerrors.CodeOf(err))
	fmt.Fprintf(a.out, "error: %s\n", meta.PublicMessage)
	if typed := pkgerrors.As(err); typed != nil && typed.Message() != "" {
		fmt.Fprintf(a.out, "       %s\n", typed.Message())
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

func (a *app) listOrders(ctx context.Context) error {
	orders, err := a.client.AdminOrders(ctx)
	if err != nil {
		return err
	}
	if len(orders) == 0 {
		fmt.Fprintln(a.out, "no orders yet")
		return nil
	}

	w := tabwriter.NewWriter(a.out, 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ORDER\tCUSTOMER\tWHEN\tITEMS\tTOTAL\tSTATUS")
	for _, order := range orders {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%.2f\t%s\n",
			order.ID, order.User.Name, order.CreatedAt, len(order.Items), order.Total, order.Status)
	}
	return w.Flush()
}

func (a *app) markCompleted(ctx context.Context) error {
	orderID := a.prompt("order id")
	resp, err := a.client.MarkOrderCompleted(ctx, orderID)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, resp.Message)
	return nil
}

func (a *app) cancelOrder(ctx context.Context) error {
	orderID := a.prompt("order id")
	resp, err := a.client.CancelOrder(ctx, orderID)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, resp.Message)
	return nil
}

func (a *app) showStats(ctx context.Context) error {
	stats, err := a.client.AdminStats(ctx)
	if err != nil {
		return err
	}
	w := tabwriter.NewWriter(a.out, 2, 4, 2, ' ', 0)
	fmt.Fprintf(w, "total orders\t%d\n", stats.TotalOrders)
	fmt.Fprintf(w, "revenue\t%.2f\n", stats.Revenue)
	fmt.Fprintf(w, "pending\t%d\n", stats.PendingOrders)
	fmt.Fprintf(w, "completed\t%d\n", stats.CompletedOrders)
	return w.Flush()
}

func (a *app) popularProducts(ctx context.Context) error {
	products, err := a.client.PopularProducts(ctx)
	if err != nil {
		return err
	}
	if len(products) == 0 {
		fmt.Fprintln(a.out, "no product activity yet")
		return nil
	}

	w := tabwriter.NewWriter(a.out, 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tTIMES ORDERED\tREVENUE")
	for _, product := range products {
		fmt.Fprintf(w, "%s\t%d\t%.2f\n", product.Name, product.TimesOrdered, product.TotalRevenue)
	}
	return w.Flush()
}

func (a *app) addProduct(ctx context.Context) error {
	req := api.AddProductRequest{
		Name:        a.prompt("name"),
		Image:       a.prompt("image url"),
		Type:        a.prompt("type"),
		Description: a.prompt("description"),
	}

	price, err := strconv.ParseFloat(a.prompt("price"), 64)
	if err != nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "price must be a number")
	}
	req.Price = price

	if raw := a.prompt("discount price (optional)"); raw != "" {
		discount, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return pkgerrors.New(pkgerrors.CodeValidation, "discount price must be a number")
		}
		req.DiscountPrice = &discount
	}

	resp, err := a.client.AddProduct(ctx, req)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, resp.Message)
	return nil
}

func (a *app) listContacts(ctx context.Context) error {
	contacts, err := a.client.Contacts(ctx)
	if err != nil {
		return err
	}
	if len(contacts) == 0 {
		fmt.Fprintln(a.out, "the inbox is empty")
		return nil
	}

	w := tabwriter.NewWriter(a.out, 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tFROM\tEMAIL\tWHEN\tSTATUS\tMESSAGE")
	for _, contact := range contacts {
		message := contact.Message
		if len(message) > 60 {
			message = message[:57] + "..."
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			contact.ContactID, contact.Name, contact.Email, contact.SubmittedAt, contact.Status, message)
	}
	return w.Flush()
}

func (a *app) triageContact(ctx context.Context) error {
	contactID := a.prompt("contact id")
	status := enums.ContactStatus(a.prompt("status (unread/read/replied)"))
	resp, err := a.client.UpdateContactStatus(ctx, contactID, status)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, resp.Message)
	return nil
}

func (a *app) deleteContact(ctx context.Context) error {
	contactID := a.prompt("contact id")
	resp, err := a.client.DeleteContact(ctx, contactID)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, resp.Message)
	return nil
}
