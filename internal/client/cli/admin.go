package cli

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/dmitrijs2005/diamondstore/internal/client/models"
	"github.com/dmitrijs2005/diamondstore/internal/common"
)

// promptChange asks for a new value; an empty answer keeps current and
// returns nil.
func (a *App) promptChange(label, current string) (*string, error) {
	v, err := getSimpleText(a.reader, fmt.Sprintf("%s [%s] (empty keeps it)", label, current), a.out)
	if err != nil || v == "" {
		return nil, err
	}
	return &v, nil
}

func (a *App) AddCategory(ctx context.Context) error {
	if err := a.requireAdmin(); err != nil {
		return err
	}

	var in models.CategoryInput
	var err error
	if in.Name, err = getSimpleText(a.reader, "Category name", a.out); err != nil {
		return err
	}
	if in.Description, err = getSimpleText(a.reader, "Description (optional)", a.out); err != nil {
		return err
	}
	if in.Badge, err = getSimpleText(a.reader, "Badge (optional)", a.out); err != nil {
		return err
	}

	c, err := a.catalog.AddCategory(ctx, in)
	if err != nil {
		if c.ID != "" {
			fmt.Fprintf(a.out, "Category %s kept locally.\n", c.ID)
		}
		return err
	}
	fmt.Fprintf(a.out, "Category created: %s\n", c.ID)
	return nil
}

func (a *App) EditCategory(ctx context.Context, args []string) error {
	if err := a.requireAdmin(); err != nil {
		return err
	}
	if len(args) == 0 {
		return fmt.Errorf("usage: editcat <id>: %w", errMissingArgument)
	}
	c, ok := a.catalog.FindCategory(args[0])
	if !ok {
		return fmt.Errorf("category %s: %w", args[0], common.ErrNotFound)
	}

	var patch models.CategoryPatch
	var err error
	if patch.Name, err = a.promptChange("Name", c.Name); err != nil {
		return err
	}
	if patch.Description, err = a.promptChange("Description", c.Description); err != nil {
		return err
	}
	if patch.Badge, err = a.promptChange("Badge", c.Badge); err != nil {
		return err
	}
	if patch.IsEmpty() {
		fmt.Fprintln(a.out, "Nothing to change.")
		return nil
	}

	if _, err := a.catalog.UpdateCategory(ctx, c.ID, patch); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Category updated.")
	return nil
}

func (a *App) DeleteCategory(ctx context.Context, args []string) error {
	if err := a.requireAdmin(); err != nil {
		return err
	}
	if len(args) == 0 {
		return fmt.Errorf("usage: delcat <id>: %w", errMissingArgument)
	}
	n := len(a.catalog.ProductsInCategory(args[0]))
	if err := a.catalog.DeleteCategory(ctx, args[0]); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Category deleted with %d product(s).\n", n)
	return nil
}

func (a *App) AddProduct(ctx context.Context) error {
	if err := a.requireAdmin(); err != nil {
		return err
	}

	var in models.ProductInput
	var err error
	if in.CategoryID, err = getSimpleText(a.reader, "Category ID", a.out); err != nil {
		return err
	}
	if in.Name, err = getSimpleText(a.reader, "Product name", a.out); err != nil {
		return err
	}
	diamonds, err := getSimpleText(a.reader, "Diamonds (empty for 0)", a.out)
	if err != nil {
		return err
	}
	if diamonds != "" {
		if in.Diamonds, err = parseInt("diamonds", diamonds); err != nil {
			return err
		}
	}
	price, err := getSimpleText(a.reader, "Price", a.out)
	if err != nil {
		return err
	}
	if in.Price, err = parseDecimal("price", price); err != nil {
		return err
	}
	if in.Bonus, err = getSimpleText(a.reader, "Bonus (optional)", a.out); err != nil {
		return err
	}
	if in.Tag, err = getSimpleText(a.reader, "Tag (optional)", a.out); err != nil {
		return err
	}

	p, err := a.catalog.AddProduct(ctx, in)
	if err != nil {
		if p.ID != "" {
			fmt.Fprintf(a.out, "Product %s kept locally.\n", p.ID)
		}
		return err
	}
	fmt.Fprintf(a.out, "Product created: %s\n", p.ID)
	return nil
}

func (a *App) EditProduct(ctx context.Context, args []string) error {
	if err := a.requireAdmin(); err != nil {
		return err
	}
	if len(args) == 0 {
		return fmt.Errorf("usage: editprod <id>: %w", errMissingArgument)
	}
	p, ok := a.catalog.FindProduct(args[0])
	if !ok {
		return fmt.Errorf("product %s: %w", args[0], common.ErrNotFound)
	}

	var patch models.ProductPatch
	var err error
	if patch.CategoryID, err = a.promptChange("Category ID", p.CategoryID); err != nil {
		return err
	}
	if patch.Name, err = a.promptChange("Name", p.Name); err != nil {
		return err
	}
	diamonds, err := a.promptChange("Diamonds", fmt.Sprint(p.Diamonds))
	if err != nil {
		return err
	}
	if diamonds != nil {
		n, err := parseInt("diamonds", *diamonds)
		if err != nil {
			return err
		}
		patch.Diamonds = &n
	}
	price, err := a.promptChange("Price", p.Price.String())
	if err != nil {
		return err
	}
	if price != nil {
		d, err := parseDecimal("price", *price)
		if err != nil {
			return err
		}
		patch.Price = &d
	}
	if patch.Bonus, err = a.promptChange("Bonus", p.Bonus); err != nil {
		return err
	}
	if patch.Tag, err = a.promptChange("Tag", p.Tag); err != nil {
		return err
	}
	if patch.IsEmpty() {
		fmt.Fprintln(a.out, "Nothing to change.")
		return nil
	}

	if _, err := a.catalog.UpdateProduct(ctx, p.ID, patch); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Product updated.")
	return nil
}

func (a *App) DeleteProduct(ctx context.Context, args []string) error {
	if err := a.requireAdmin(); err != nil {
		return err
	}
	if len(args) == 0 {
		return fmt.Errorf("usage: delprod <id>: %w", errMissingArgument)
	}
	if err := a.catalog.DeleteProduct(ctx, args[0]); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Product deleted.")
	return nil
}

// Payments lists recent payments, newest first; the optional argument is
// the limit.
func (a *App) Payments(ctx context.Context, args []string) error {
	if err := a.requireAdmin(); err != nil {
		return err
	}
	limit := 0
	if len(args) > 0 {
		n, err := parseInt("limit", args[0])
		if err != nil {
			return err
		}
		limit = n
	}

	list, err := a.checkout.ListPayments(ctx, limit)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Fprintln(a.out, "No payments.")
		return nil
	}
	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "TRANSACTION\tPLAYER\tPRODUCT\tAMOUNT\tSTATUS")
	for _, p := range list {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", p.TransactionID, p.PlayerID, productLabel(p), p.Amount.StringFixed(2), p.Status)
	}
	return tw.Flush()
}

func productLabel(p models.Payment) string {
	if p.ProductName != "" {
		return p.ProductName
	}
	return p.ProductID
}

func (a *App) PaymentStatus(ctx context.Context, args []string) error {
	if err := a.requireAdmin(); err != nil {
		return err
	}
	if len(args) == 0 {
		return fmt.Errorf("usage: status <transaction-id>: %w", errMissingArgument)
	}
	p, err := a.checkout.PaymentStatus(ctx, args[0])
	if err != nil {
		return err
	}
	status := p.Status
	if status == "" {
		status = "unknown"
	}
	fmt.Fprintf(a.out, "%s: %s (%s, player %s, amount %s)\n",
		p.TransactionID, status, productLabel(p), p.PlayerID, p.Amount.StringFixed(2))
	return nil
}

// Seed asks the backend to load its sample catalog, then refreshes.
func (a *App) Seed(ctx context.Context) error {
	if err := a.requireAdmin(); err != nil {
		return err
	}
	msg, err := a.checkout.Seed(ctx)
	if err != nil {
		return err
	}
	if msg == "" {
		msg = "Database seeded."
	}
	fmt.Fprintln(a.out, msg)
	return a.Refresh(ctx)
}
