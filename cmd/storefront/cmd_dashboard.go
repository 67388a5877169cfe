package main

import (
	"errors"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"storefront/internal/auth"
	"storefront/internal/models"
	"storefront/internal/views"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show the signed-in user's dashboard",
	Args:  cobra.NoArgs,
	RunE:  runDashboard,
}

func runDashboard(cmd *cobra.Command, args []string) error {
	var (
		session *models.Session
		items   []models.LineItem
	)

	g, ctx := errgroup.WithContext(cmd.Context())
	g.Go(func() error {
		var err error
		session, err = shop.auth.RequireSession(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		items, err = loadCart(ctx)
		if err != nil {
			// the dashboard still works without a cart
			shop.logger.Debug("dashboard cart unavailable", zap.Error(err))
			items = []models.LineItem{}
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		render(cmd.OutOrStdout(), views.Dashboard(nil, nil, nil, err))
		return shown(err)
	}

	claims, err := auth.ParseClaims(session)
	if err != nil && !errors.Is(err, auth.ErrNoToken) {
		shop.logger.Debug("session token is not a JWT", zap.Error(err))
	}
	render(cmd.OutOrStdout(), views.Dashboard(session, claims, items, nil))
	return nil
}
