package models

// DefaultProductImage is shown when a product carries no image.
const DefaultProductImage = "https://i.imgur.com/z7EiIyZ.jpg"

type Product struct {
	ID          ID     `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       Price  `json:"price"`
	Image       string `json:"image,omitempty"`
}

// ImageURL returns the product image or the default placeholder.
func (p Product) ImageURL() string {
	if p.Image == "" {
		return DefaultProductImage
	}
	return p.Image
}
