package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"storefront/internal/cart"
	"storefront/internal/models"
	"storefront/internal/views"
)

var paymentNonce string

var errEmptyCart = errors.New("please add something in cart")

var checkoutCmd = &cobra.Command{
	Use:   "checkout",
	Short: "Pay for the cart and place the order",
	Args:  cobra.NoArgs,
	RunE:  runCheckout,
}

// runCheckout pays for the cart, records the order and then empties the cart.
func runCheckout(cmd *cobra.Command, args []string) error {
	result, err := checkout(cmd)
	render(cmd.OutOrStdout(), views.Checkout(result, err))
	return shown(err)
}

func checkout(cmd *cobra.Command) (*models.PaymentResult, error) {
	ctx := cmd.Context()

	session, err := shop.auth.RequireSession(ctx)
	if err != nil {
		return nil, err
	}
	items, err := loadCart(ctx)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, errEmptyCart
	}

	userID, token := session.User.ID, session.Token
	pt, err := shop.client.PaymentToken(ctx, userID, token)
	if err != nil {
		return nil, err
	}
	shop.logger.Debug("payment token issued", zap.Bool("success", pt.Success))

	amount := cart.Total(items)
	result, err := shop.client.ProcessPayment(ctx, userID, token, models.PaymentRequest{Nonce: paymentNonce, Amount: amount})
	if err != nil {
		return nil, err
	}

	order := models.Order{
		TransactionID: result.Transaction.ID,
		Amount:        result.Transaction.Amount,
		Products:      cart.ProductNames(items),
	}
	if err := shop.client.PlaceOrder(ctx, userID, token, order); err != nil {
		return nil, fmt.Errorf("payment %s went through but the order was not recorded: %w", order.TransactionID, err)
	}
	shop.logger.Info("✅ order placed", zap.String("transaction", order.TransactionID), zap.String("amount", amount.String()))

	if err := shop.cart.Clear(ctx); err != nil {
		return result, fmt.Errorf("order placed but the cart could not be emptied: %w", err)
	}
	return result, nil
}
