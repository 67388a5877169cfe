package views

import (
	"github.com/charmbracelet/lipgloss"

	"storefront/internal/models"
)

type CardOptions struct {
	AddToCart      bool
	RemoveFromCart bool
}

func Card(p *models.Product, opts CardOptions) string {
	title, description, price, image := "A photo from pexels", "Default description", "Default", models.DefaultProductImage
	var id models.ID
	if p != nil {
		title, description, price, image = p.Name, p.Description, p.Price.String(), p.ImageURL()
		id = p.ID
	}

	lines := []string{
		styles.CardHeader.Render(title),
		styles.Hint.Render(image),
		description,
		styles.Price.Render("$ " + price),
	}
	if opts.AddToCart && id != "" {
		lines = append(lines, styles.Hint.Render("Add to Cart: storefront cart add "+id.String()))
	}
	if opts.RemoveFromCart && id != "" {
		lines = append(lines, styles.Hint.Render("Remove from cart: storefront cart remove "+id.String()))
	}
	return styles.Card.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}
