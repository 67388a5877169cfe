package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"storefront/internal/models"
)

// Signup registers a new account. The backend answers with the created user.
func (c *Client) Signup(ctx context.Context, creds models.Credentials) (*models.User, error) {
	const op = "signup"
	path := "/user/"

	body, contentType, err := jsonBody(creds)
	if err != nil {
		return nil, fmt.Errorf("api: %s: encode body: %w", op, err)
	}

	data, err := c.do(ctx, op, http.MethodPost, path, body, contentType)
	if err != nil {
		return nil, err
	}

	var user models.User
	if err := decode(op, c.baseURL+path, data, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Signin posts the credentials as form fields, which is how the login view
// reads them, and returns the session the backend issues.
func (c *Client) Signin(ctx context.Context, creds models.Credentials) (*models.Session, error) {
	const op = "signin"
	path := "/user/login/"

	form := url.Values{}
	form.Set("name", creds.Name)
	form.Set("email", creds.Email)
	form.Set("password", creds.Password)
	body, contentType := formBody(form)

	data, err := c.do(ctx, op, http.MethodPost, path, body, contentType)
	if err != nil {
		return nil, err
	}

	var session models.Session
	if err := decode(op, c.baseURL+path, data, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

// Signout ends the user's session on the backend.
func (c *Client) Signout(ctx context.Context, userID models.ID) error {
	const op = "signout"
	path := "/user/logout/" + url.PathEscape(userID.String())

	_, err := c.do(ctx, op, http.MethodGet, path, nil, "")
	return err
}
