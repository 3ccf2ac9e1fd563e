package cart

import "github.com/joao160197/InsanyShop/internal/catalog"

// Item is a product snapshot plus the quantity in the cart. The snapshot is
// taken when the product is first added and is not refreshed by later adds,
// so a line keeps the price and display fields the shopper saw.
type Item struct {
	catalog.Product
	Quantity int `json:"quantity"`
}
