package views

import (
	"errors"

	"github.com/charmbracelet/lipgloss"

	"storefront/internal/api"
	"storefront/internal/storage"
)

const footerText = "If you got any questions, reach out to the store team."

// Base frames a page with its title, description and footer.
func Base(title, description, body string) string {
	if title == "" {
		title = "My Title"
	}
	if description == "" {
		description = "My Description"
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		styles.Title.Render(title),
		styles.Description.Render(description),
		styles.Body.Render(body),
		styles.Footer.Render(footerText),
	)
}

// ErrorBox explains a failure in words a shopper can act on.
func ErrorBox(err error) string {
	return styles.Error.Render(describe(err))
}

func describe(err error) string {
	var (
		transport *api.TransportError
		server    *api.ServerError
	)
	switch {
	case errors.As(err, &server):
		return "The store refused the request: " + server.Message
	case errors.As(err, &transport):
		return "Could not reach the store. " + err.Error()
	case errors.Is(err, storage.ErrQuotaExceeded):
		return "Local storage is full, the change was not saved."
	case errors.Is(err, storage.ErrUnavailable):
		return "Local storage is unavailable, the cart cannot be kept."
	default:
		return err.Error()
	}
}
