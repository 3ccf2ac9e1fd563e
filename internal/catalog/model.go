package catalog

// Product is the strict shape the rest of the application works with. The
// upstream API is a lot looser than this; see normalize.go for how raw
// payloads are mapped onto it.
type Product struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Image       string  `json:"image"`
	Category    string  `json:"category"`
	Stock       int     `json:"stock"`
	Rating      float64 `json:"rating"`
	Brand       string  `json:"brand"`
}

type Pagination struct {
	CurrentPage     int  `json:"currentPage"`
	TotalPages      int  `json:"totalPages"`
	TotalProducts   int  `json:"totalProducts"`
	HasNextPage     bool `json:"hasNextPage"`
	HasPreviousPage bool `json:"hasPreviousPage"`
}

type ProductList struct {
	Products   []Product  `json:"products"`
	Pagination Pagination `json:"pagination"`
}

type Category struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	Slug         string `json:"slug"`
	Image        string `json:"image,omitempty"`
	ProductCount int    `json:"productCount,omitempty"`
}

// Sort values accepted by the listing endpoints.
const (
	SortNewest      = "newest"
	SortPriceAsc    = "price-asc"
	SortPriceDesc   = "price-desc"
	SortBestSellers = "best-sellers"
)

// ListParams narrows a product listing. Zero values mean "not set".
type ListParams struct {
	Category string
	Search   string
	Sort     string
	Page     int
	Limit    int
}

func validSort(s string) bool {
	switch s {
	case SortNewest, SortPriceAsc, SortPriceDesc, SortBestSellers:
		return true
	default:
		return false
	}
}
