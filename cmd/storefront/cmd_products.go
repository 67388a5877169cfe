package main

import (
	"github.com/spf13/cobra"

	"storefront/internal/views"
)

var productsCmd = &cobra.Command{
	Use:   "products",
	Short: "List the products in the store",
	Args:  cobra.NoArgs,
	RunE:  runProducts,
}

func runProducts(cmd *cobra.Command, args []string) error {
	products, err := shop.client.ListProducts(cmd.Context())
	render(cmd.OutOrStdout(), views.Home(products, err))
	return shown(err)
}
