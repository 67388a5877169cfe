package views

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"storefront/internal/auth"
	"storefront/internal/cart"
	"storefront/internal/models"
)

func Home(products []models.Product, err error) string {
	if err != nil {
		return Base("Home Page", "Welcome to T-Shirt Store", ErrorBox(err))
	}
	if len(products) == 0 {
		return Base("Home Page", "Welcome to T-Shirt Store", "No products yet")
	}
	cards := make([]string, 0, len(products))
	for i := range products {
		cards = append(cards, Card(&products[i], CardOptions{AddToCart: true}))
	}
	return Base("Home Page", "Welcome to T-Shirt Store", lipgloss.JoinVertical(lipgloss.Left, cards...))
}

// Cart lists the line items next to the checkout summary. A load error is
// shown above whatever could still be read.
func Cart(items []models.LineItem, err error) string {
	var sections []string
	if err != nil {
		sections = append(sections, ErrorBox(err))
	}

	if len(items) == 0 {
		sections = append(sections, "No products", "Please login or add something in cart")
		return Base("Cart page", "Welcome to checkout", lipgloss.JoinVertical(lipgloss.Left, sections...))
	}

	cards := make([]string, 0, len(items))
	for i := range items {
		cards = append(cards, Card(&items[i].Product, CardOptions{RemoveFromCart: true}))
	}
	summary := lipgloss.JoinVertical(lipgloss.Left,
		styles.CardHeader.Render("Checkout"),
		fmt.Sprintf("%d item(s)", len(items)),
		styles.Price.Render("Total: $ "+cart.Total(items).String()),
		styles.Hint.Render("Pay with: storefront checkout"),
	)
	sections = append(sections, lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.JoinVertical(lipgloss.Left, cards...),
		styles.Body.Render(summary),
	))
	return Base("Cart page", "Welcome to checkout", lipgloss.JoinVertical(lipgloss.Left, sections...))
}

// SignupResult reports success only when the store echoes back the submitted
// email.
func SignupResult(user *models.User, creds models.Credentials, err error) string {
	var body string
	switch {
	case err != nil:
		body = lipgloss.JoinVertical(lipgloss.Left, styles.Error.Render("Check all fields again!"), describe(err))
	case user != nil && user.Email == creds.Email:
		body = styles.Alert.Render("New account created successfully. Please login now!")
	default:
		body = styles.Error.Render("Check all fields again!")
	}
	return Base("Sign Up Page", "A signup for store users", body)
}

func SigninResult(session *models.Session, err error) string {
	var body string
	switch {
	case err != nil:
		body = ErrorBox(err)
	case session == nil:
		body = styles.Error.Render("Signin failed")
	default:
		name := session.User.Name
		if name == "" {
			name = session.User.Email
		}
		body = styles.Alert.Render("Signed in as " + name)
	}
	return Base("Sign In Page", "A signin for store users", body)
}

func Dashboard(session *models.Session, claims *auth.Claims, items []models.LineItem, err error) string {
	if err != nil {
		return Base("User dashboard", "", ErrorBox(err))
	}

	rows := []string{styles.CardHeader.Render("Welcome to user dashboard page")}
	if session != nil {
		rows = append(rows,
			field("Name", session.User.Name),
			field("Email", session.User.Email),
			field("User ID", session.User.ID.String()),
		)
	}
	if claims != nil {
		if claims.Role != "" {
			rows = append(rows, field("Role", claims.Role))
		}
		if claims.ExpiresAt != nil {
			exp := claims.ExpiresAt.Format(time.RFC1123)
			if claims.Expired(time.Now()) {
				exp += " (expired)"
			}
			rows = append(rows, field("Session expires", exp))
		}
	}
	rows = append(rows, field("Cart", fmt.Sprintf("%d item(s), $ %s", len(items), cart.Total(items))))
	return Base("User dashboard", "", lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func Checkout(result *models.PaymentResult, err error) string {
	if err != nil {
		return Base("Checkout", "Payment", ErrorBox(err))
	}
	if result == nil || !result.Success {
		return Base("Checkout", "Payment", styles.Error.Render("Payment was not completed"))
	}
	body := lipgloss.JoinVertical(lipgloss.Left,
		styles.Alert.Render("Thank you! Your order has been placed."),
		field("Transaction", result.Transaction.ID),
		field("Amount", "$ "+result.Transaction.Amount.String()),
	)
	return Base("Checkout", "Payment", body)
}

func field(label, value string) string {
	if strings.TrimSpace(value) == "" {
		value = "-"
	}
	return styles.Label.Render(label+": ") + value
}
