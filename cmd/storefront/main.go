// Command storefront is a terminal client for the T-shirt store: browse
// products, keep a local cart, sign in and check out.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"storefront/internal/config"
	"storefront/internal/logging"
)

var (
	verbose     bool
	configPath  string
	storageFlag string

	logger *zap.Logger
	shop   *app
)

var rootCmd = &cobra.Command{
	Use:   "storefront",
	Short: "Terminal client for the T-shirt store",
	Long: `storefront talks to the store REST API and keeps the cart and the
signed-in session in local storage (SQLite by default; memory, redis,
a real browser's localStorage, or none).`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// tests install their own app
		if shop != nil {
			return nil
		}

		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		if storageFlag != "" {
			cfg.Storage.Backend = storageFlag
			if err := cfg.Validate(); err != nil {
				return err
			}
		}

		level := cfg.LogLevel
		if verbose {
			level = "debug"
		}
		logger, err = logging.New(level, cfg.IsDevelopment())
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		shop = newApp(cmd.Context(), cfg, logger)
		return nil
	},
	RunE: runProducts,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "YAML config file")
	rootCmd.PersistentFlags().StringVar(&storageFlag, "storage", "", "Storage backend (sqlite, memory, redis, browser, none)")

	cartCmd.AddCommand(cartAddCmd, cartRemoveCmd, cartEmptyCmd)
	signupCmd.Flags().StringVar(&credName, "name", "", "Display name")
	signinCmd.Flags().StringVar(&credName, "name", "", "Display name")
	for _, c := range []*cobra.Command{signupCmd, signinCmd} {
		c.Flags().StringVar(&credEmail, "email", "", "Email address")
		c.Flags().StringVar(&credPassword, "password", "", "Password")
		_ = c.MarkFlagRequired("email")
		_ = c.MarkFlagRequired("password")
	}
	checkoutCmd.Flags().StringVar(&paymentNonce, "nonce", "fake-valid-nonce", "Payment method nonce from the payment form")

	rootCmd.AddCommand(productsCmd, cartCmd, signupCmd, signinCmd, signoutCmd, dashboardCmd, checkoutCmd)
}

// run executes the command line and always releases the store and flushes
// the logger, including when the command fails.
func run(ctx context.Context) error {
	defer cleanup()
	return rootCmd.ExecuteContext(ctx)
}

func cleanup() {
	if shop != nil {
		shop.Close()
	}
	if logger != nil {
		_ = logger.Sync()
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := run(ctx)
	stop()

	if err != nil {
		reportError(os.Stderr, err)
		os.Exit(1)
	}
}
