package api

import (
	"bytes"
	"context"
	"errors"
	"net/http"

	"storefront/internal/models"
)

// ListProducts fetches the catalogue. Both a bare array and a paginated
// {"results": [...]} body are accepted.
func (c *Client) ListProducts(ctx context.Context) ([]models.Product, error) {
	const op = "list products"
	path := "/product"

	data, err := c.do(ctx, op, http.MethodGet, path, nil, "")
	if err != nil {
		return nil, err
	}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		var page struct {
			Results *[]models.Product `json:"results"`
		}
		if err := decode(op, c.baseURL+path, trimmed, &page); err != nil {
			return nil, err
		}
		if page.Results == nil {
			return nil, &TransportError{Op: op, URL: c.baseURL + path, Err: errors.New("response is neither a product list nor a page of products")}
		}
		return nonNil(*page.Results), nil
	}

	var products []models.Product
	if err := decode(op, c.baseURL+path, trimmed, &products); err != nil {
		return nil, err
	}
	return nonNil(products), nil
}

func nonNil(products []models.Product) []models.Product {
	if products == nil {
		return []models.Product{}
	}
	return products
}
