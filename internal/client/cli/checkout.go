package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/diamondstore/internal/client/services"
	"github.com/dmitrijs2005/diamondstore/internal/common"
)

// Buy runs the checkout for one product: player ID, then the payment
// transaction ID.
func (a *App) Buy(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: buy <product-id>: %w", errMissingArgument)
	}
	p, ok := a.catalog.FindProduct(args[0])
	if !ok {
		return fmt.Errorf("product %s: %w", args[0], common.ErrNotFound)
	}

	fmt.Fprintf(a.out, "%s: %d diamonds for %s\n", p.Name, p.Diamonds, formatPrice(p))

	playerID, err := getSimpleText(a.reader, "Enter player ID", a.out)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Send %s and enter the transaction ID from the confirmation message.\n", formatPrice(p))
	txID, err := getSimpleText(a.reader, "Enter transaction ID", a.out)
	if err != nil {
		return err
	}

	pd, err := a.checkout.Submit(ctx, services.Order{PlayerID: playerID, TransactionID: txID, Product: p})
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Payment submitted. Transaction ID: %s\n", pd.TransactionID)
	return nil
}
