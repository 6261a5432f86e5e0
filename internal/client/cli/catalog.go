package cli

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/dmitrijs2005/diamondstore/internal/client/models"
	"github.com/dmitrijs2005/diamondstore/internal/common"
)

func formatPrice(p models.Product) string {
	return "Tk " + p.Price.StringFixed(2)
}

func writeProducts(w io.Writer, products []models.Product) error {
	if len(products) == 0 {
		_, err := fmt.Fprintln(w, "No products.")
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tDIAMONDS\tPRICE\tBONUS\tTAG")
	for _, p := range products {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\t%s\n", p.ID, p.Name, p.Diamonds, formatPrice(p), p.Bonus, p.Tag)
	}
	return tw.Flush()
}

func writeCategories(w io.Writer, categories []models.Category) error {
	if len(categories) == 0 {
		_, err := fmt.Fprintln(w, "No categories.")
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tBADGE\tDESCRIPTION")
	for _, c := range categories {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", c.ID, c.Name, c.Badge, c.Description)
	}
	return tw.Flush()
}

// List prints all products, or only those of the category given as the
// first argument, ordered by diamonds.
func (a *App) List(_ context.Context, args []string) error {
	if len(args) > 0 {
		if _, ok := a.catalog.FindCategory(args[0]); !ok {
			return fmt.Errorf("category %s: %w", args[0], common.ErrNotFound)
		}
		return writeProducts(a.out, a.catalog.ProductsInCategory(args[0]))
	}
	return writeProducts(a.out, a.catalog.SortedProducts())
}

func (a *App) Categories(_ context.Context) error {
	return writeCategories(a.out, a.catalog.State().Categories)
}

func (a *App) Show(_ context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: show <product-id>: %w", errMissingArgument)
	}
	p, ok := a.catalog.FindProduct(args[0])
	if !ok {
		return fmt.Errorf("product %s: %w", args[0], common.ErrNotFound)
	}
	category := models.UnknownCategoryName
	if c, ok := a.catalog.FindCategory(p.CategoryID); ok {
		category = c.Name
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "ID:\t%s\n", p.ID)
	fmt.Fprintf(tw, "Name:\t%s\n", p.Name)
	fmt.Fprintf(tw, "Category:\t%s\n", category)
	fmt.Fprintf(tw, "Diamonds:\t%d\n", p.Diamonds)
	fmt.Fprintf(tw, "Price:\t%s\n", formatPrice(p))
	if p.Bonus != "" {
		fmt.Fprintf(tw, "Bonus:\t%s\n", p.Bonus)
	}
	if p.Tag != "" {
		fmt.Fprintf(tw, "Tag:\t%s\n", p.Tag)
	}
	return tw.Flush()
}

// Refresh reloads the catalog from the backend.
func (a *App) Refresh(ctx context.Context) error {
	if err := a.catalog.Refresh(ctx); err != nil {
		return err
	}
	st := a.catalog.State()
	fmt.Fprintf(a.out, "Catalog refreshed: %d categories, %d products\n", len(st.Categories), len(st.Products))
	return nil
}
