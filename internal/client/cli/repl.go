package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isAdmin() bool

	List(ctx context.Context, args []string) error
	Categories(ctx context.Context) error
	Show(ctx context.Context, args []string) error
	Buy(ctx context.Context, args []string) error
	Refresh(ctx context.Context) error

	Login(ctx context.Context) error
	Logout(ctx context.Context) error

	AddCategory(ctx context.Context) error
	EditCategory(ctx context.Context, args []string) error
	DeleteCategory(ctx context.Context, args []string) error
	AddProduct(ctx context.Context) error
	EditProduct(ctx context.Context, args []string) error
	DeleteProduct(ctx context.Context, args []string) error
	Payments(ctx context.Context, args []string) error
	PaymentStatus(ctx context.Context, args []string) error
	Seed(ctx context.Context) error
}

const (
	helpPublic = "Available commands: (l)ist [category-id], categories, show <product-id>, buy <product-id>, refresh, login, exit"
	helpAdmin  = "Admin commands: addcat, editcat <id>, delcat <id>, addprod, editprod <id>, delprod <id>, payments [limit], status <transaction-id>, seed, logout"
)

// runREPL starts a simple read–eval–print loop for the storefront CLI.
//
// It reads a line from reader, parses the first token as the command, and
// dispatches to methods on 'a' with the remaining tokens as arguments. The
// loop exits on EOF or when the user types "exit" or "quit".
//
// The prompt, help and every command error go to out, one line per error;
// the loop keeps going.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader, out io.Writer) {
	for {
		fmt.Fprint(out, prompt(statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		var cmdErr error
		switch cmd {
		case "help":
			fmt.Fprintln(out, helpPublic)
			if a.isAdmin() {
				fmt.Fprintln(out, helpAdmin)
			}

		case "l", "list":
			cmdErr = a.List(ctx, args)
		case "categories":
			cmdErr = a.Categories(ctx)
		case "show":
			cmdErr = a.Show(ctx, args)
		case "buy":
			cmdErr = a.Buy(ctx, args)
		case "refresh":
			cmdErr = a.Refresh(ctx)

		case "login":
			cmdErr = a.Login(ctx)
		case "logout":
			cmdErr = a.Logout(ctx)

		case "addcat":
			cmdErr = a.AddCategory(ctx)
		case "editcat":
			cmdErr = a.EditCategory(ctx, args)
		case "delcat":
			cmdErr = a.DeleteCategory(ctx, args)
		case "addprod":
			cmdErr = a.AddProduct(ctx)
		case "editprod":
			cmdErr = a.EditProduct(ctx, args)
		case "delprod":
			cmdErr = a.DeleteProduct(ctx, args)
		case "payments":
			cmdErr = a.Payments(ctx, args)
		case "status":
			cmdErr = a.PaymentStatus(ctx, args)
		case "seed":
			cmdErr = a.Seed(ctx)

		case "exit", "quit":
			fmt.Fprintln(out, "Bye!")
			return

		default:
			fmt.Fprintln(out, "Unknown command:", cmd)
		}

		if cmdErr != nil {
			fmt.Fprintln(out, userMessage(cmdErr))
		}
		if err != nil {
			return
		}
	}
}

func prompt(status string) string {
	if status == "" {
		return "store> "
	}
	return "store " + status + "> "
}
