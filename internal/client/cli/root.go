package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/dmitrijs2005/diamondstore/internal/client/config"
	"github.com/dmitrijs2005/diamondstore/internal/logging"
)

// lookupEnv is a test seam for os.LookupEnv.
var lookupEnv = os.LookupEnv

// NewRootCommand builds the command tree. Without a subcommand the
// interactive REPL is started.
func NewRootCommand(in io.Reader, out, errOut io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:           "storefront",
		Short:         "Diamond top-up storefront client",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, func(ctx context.Context, a *App) error {
				return a.Run(ctx)
			})
		},
	}
	root.SetIn(in)
	root.SetOut(out)
	root.SetErr(errOut)
	config.RegisterFlags(root.PersistentFlags())

	root.AddCommand(
		newCatalogCommand(),
		newLoginCommand(),
		newLogoutCommand(),
		newPaymentsCommand(),
		newSeedCommand(),
	)
	return root
}

// withApp loads configuration from cmd's flags, builds an App and runs fn.
func withApp(cmd *cobra.Command, fn func(context.Context, *App) error) error {
	cfg, err := config.Load(cmd.Flags(), lookupEnv)
	if err != nil {
		return userError(cmd, err)
	}

	log, err := logging.New(cfg.LogFormat, cfg.LogLevel, cmd.ErrOrStderr())
	if err != nil {
		return userError(cmd, err)
	}
	if s, ok := log.(interface{ Sync() error }); ok {
		defer func() { _ = s.Sync() }()
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	app, err := NewApp(ctx, cfg, log, cmd.InOrStdin(), cmd.OutOrStdout())
	if err != nil {
		return userError(cmd, err)
	}
	defer func() {
		if err := app.Close(); err != nil {
			log.Warn(ctx, "close failed", "error", err)
		}
	}()

	return fn(ctx, app)
}

// reportedError marks an error already printed by userError.
type reportedError struct{ error }

func (e reportedError) Unwrap() error { return e.error }

// userError prints err the way the REPL does and returns it for the exit
// status.
func userError(cmd *cobra.Command, err error) error {
	if err == nil {
		return nil
	}
	fmt.Fprintln(cmd.ErrOrStderr(), userMessage(err))
	return reportedError{err}
}

// Execute runs the command tree and returns the process exit code. Errors
// not yet shown to the user, such as a bad flag, are printed to errOut.
func Execute(ctx context.Context, args []string, in io.Reader, out, errOut io.Writer) int {
	cmd := NewRootCommand(in, out, errOut)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return 0
	}
	var reported reportedError
	if !errors.As(err, &reported) {
		fmt.Fprintln(errOut, userMessage(err))
	}
	return 1
}

func newCatalogCommand() *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Print the product catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, func(ctx context.Context, a *App) error {
				a.LoadCatalog(ctx)
				var args []string
				if category != "" {
					args = []string{category}
				}
				return userError(cmd, a.List(ctx, args))
			})
		},
	}
	cmd.Flags().StringVar(&category, "category", "", "only products of this category id")

	cmd.AddCommand(&cobra.Command{
		Use:   "categories",
		Short: "Print the categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, func(ctx context.Context, a *App) error {
				a.LoadCatalog(ctx)
				return userError(cmd, a.Categories(ctx))
			})
		},
	})
	return cmd
}

func newLoginCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "login",
		Short: "Log in as admin; the session persists until logout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, func(ctx context.Context, a *App) error {
				return userError(cmd, a.Login(ctx))
			})
		},
	}
}

func newLogoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the admin session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, func(ctx context.Context, a *App) error {
				return userError(cmd, a.Logout(ctx))
			})
		},
	}
}

func newPaymentsCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "payments",
		Short: "List recent payments (admin)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, func(ctx context.Context, a *App) error {
				return userError(cmd, a.Payments(ctx, []string{fmt.Sprint(limit)}))
			})
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 50, "maximum number of payments")

	cmd.AddCommand(&cobra.Command{
		Use:   "status <transaction-id>",
		Short: "Show the status of one payment (admin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *App) error {
				return userError(cmd, a.PaymentStatus(ctx, args))
			})
		},
	})
	return cmd
}

func newSeedCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Load the backend's sample catalog (admin, one time)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, func(ctx context.Context, a *App) error {
				return userError(cmd, a.Seed(ctx))
			})
		},
	}
}
