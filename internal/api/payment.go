package api

import (
	"context"
	"net/http"
	"net/url"

	"storefront/internal/models"
)

func sessionPath(prefix string, userID models.ID, token string) string {
	return prefix + url.PathEscape(userID.String()) + "/" + url.PathEscape(token)
}

// PaymentToken asks the backend for a payment gateway client token.
func (c *Client) PaymentToken(ctx context.Context, userID models.ID, token string) (*models.PaymentToken, error) {
	const op = "payment token"
	path := sessionPath("/payment/gettoken/", userID, token)

	data, err := c.do(ctx, op, http.MethodGet, path, nil, "")
	if err != nil {
		return nil, err
	}

	var pt models.PaymentToken
	if err := decode(op, c.baseURL+path, data, &pt); err != nil {
		return nil, err
	}
	return &pt, nil
}

// ProcessPayment charges amount using the nonce produced by the payment form.
func (c *Client) ProcessPayment(ctx context.Context, userID models.ID, token string, req models.PaymentRequest) (*models.PaymentResult, error) {
	const op = "process payment"
	path := sessionPath("/payment/process/", userID, token)

	form := url.Values{}
	form.Set("paymentMethodNonce", req.Nonce)
	form.Set("amount", req.Amount.String())
	body, contentType := formBody(form)

	data, err := c.do(ctx, op, http.MethodPost, path, body, contentType)
	if err != nil {
		return nil, err
	}

	var result models.PaymentResult
	if err := decode(op, c.baseURL+path, data, &result); err != nil {
		return nil, err
	}
	if !result.Success {
		return nil, &ServerError{Op: op, Message: "payment was not successful"}
	}
	return &result, nil
}

// PlaceOrder records a paid order for the user.
func (c *Client) PlaceOrder(ctx context.Context, userID models.ID, token string, order models.Order) error {
	const op = "place order"
	path := sessionPath("/order/add/", userID, token) + "/"

	form := url.Values{}
	form.Set("transaction_id", order.TransactionID)
	form.Set("amount", order.Amount.String())
	form.Set("products", order.Products)
	body, contentType := formBody(form)

	_, err := c.do(ctx, op, http.MethodPost, path, body, contentType)
	return err
}
