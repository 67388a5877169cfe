package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"storefront/internal/cart"
	"storefront/internal/models"
	"storefront/internal/views"
)

var cartCmd = &cobra.Command{
	Use:   "cart",
	Short: "Show the cart",
	Args:  cobra.NoArgs,
	RunE:  runCart,
}

var cartAddCmd = &cobra.Command{
	Use:   "add [product-id]",
	Short: "Add a product to the cart",
	Args:  cobra.ExactArgs(1),
	RunE:  runCartAdd,
}

var cartRemoveCmd = &cobra.Command{
	Use:   "remove [product-id]",
	Short: "Remove every line of a product from the cart",
	Args:  cobra.ExactArgs(1),
	RunE:  runCartRemove,
}

var cartEmptyCmd = &cobra.Command{
	Use:   "empty",
	Short: "Empty the cart",
	Args:  cobra.NoArgs,
	RunE:  runCartEmpty,
}

// loadCart reads the cart. A corrupt slot is reported in the log and shown
// as an empty cart.
func loadCart(ctx context.Context) ([]models.LineItem, error) {
	items, err := shop.cart.Load(ctx)
	var corrupt *cart.CorruptError
	if errors.As(err, &corrupt) {
		shop.logger.Warn("⚠️ cart slot is corrupt, showing an empty cart", zap.Error(err))
		return items, nil
	}
	return items, err
}

func runCart(cmd *cobra.Command, args []string) error {
	items, err := loadCart(cmd.Context())
	render(cmd.OutOrStdout(), views.Cart(items, err))
	return shown(err)
}

func runCartAdd(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	id := models.ID(args[0])

	products, err := shop.client.ListProducts(ctx)
	if err != nil {
		render(cmd.OutOrStdout(), views.Home(nil, err))
		return shown(err)
	}
	var product *models.Product
	for i := range products {
		if products[i].ID == id {
			product = &products[i]
			break
		}
	}
	if product == nil {
		return fmt.Errorf("product %s not found", id)
	}

	items, err := shop.cart.Add(ctx, *product)
	if err == nil {
		shop.logger.Info("✅ added to cart", zap.String("product", id.String()), zap.Int("lines", len(items)))
	}
	render(cmd.OutOrStdout(), views.Cart(items, err))
	return shown(err)
}

func runCartRemove(cmd *cobra.Command, args []string) error {
	items, err := shop.cart.Remove(cmd.Context(), models.ID(args[0]))
	render(cmd.OutOrStdout(), views.Cart(items, err))
	return shown(err)
}

func runCartEmpty(cmd *cobra.Command, args []string) error {
	err := shop.cart.Clear(cmd.Context())
	render(cmd.OutOrStdout(), views.Cart([]models.LineItem{}, err))
	return shown(err)
}
