package catalog

import (
	"encoding/json"
	"strconv"
	"strings"
)

// The catalog API does not commit to one product shape: ids and prices show
// up as numbers or strings, images as a URL, an object with a url field, or
// an array of either, categories as a name or a nested object. rawProduct
// captures all of the spellings we have seen and normalize maps them onto
// Product, defaulting instead of failing.
type rawProduct struct {
	ID           json.RawMessage `json:"id"`
	Name         string          `json:"name"`
	Title        string          `json:"title"`
	Description  string          `json:"description"`
	Details      string          `json:"details"`
	Desc         string          `json:"desc"`
	Price        json.RawMessage `json:"price"`
	Value        json.RawMessage `json:"value"`
	Amount       json.RawMessage `json:"amount"`
	Image        json.RawMessage `json:"image"`
	Thumbnail    json.RawMessage `json:"thumbnail"`
	Images       json.RawMessage `json:"images"`
	Category     json.RawMessage `json:"category"`
	Categories   json.RawMessage `json:"categories"`
	Stock        json.RawMessage `json:"stock"`
	Quantity     json.RawMessage `json:"quantity"`
	Rating       json.RawMessage `json:"rating"`
	Rate         json.RawMessage `json:"rate"`
	Brand        string          `json:"brand"`
	Maker        string          `json:"maker"`
	Manufacturer string          `json:"manufacturer"`
}

const placeholderImage = "/image/image.png"

func (r rawProduct) normalize(fallbackID int) Product {
	p := Product{
		ID:          fallbackID,
		Name:        firstNonEmpty(r.Name, r.Title),
		Description: firstNonEmpty(r.Description, r.Details, r.Desc),
		Price:       asNumber(r.Price, r.Value, r.Amount),
		Image:       imageURL(r.Image, r.Thumbnail, r.Images),
		Category:    categoryName(r.Category, r.Categories),
		Stock:       int(asNumber(r.Stock, r.Quantity)),
		Rating:      asNumber(r.Rating, r.Rate),
		Brand:       firstNonEmpty(r.Brand, r.Maker, r.Manufacturer),
	}
	if id := asNumber(r.ID); id != 0 {
		p.ID = int(id)
	}
	return p
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

// asNumber returns the first raw value that parses as a number, accepting
// both JSON numbers and numeric strings.
func asNumber(raws ...json.RawMessage) float64 {
	for _, raw := range raws {
		if len(raw) == 0 {
			continue
		}
		var n float64
		if err := json.Unmarshal(raw, &n); err == nil {
			return n
		}
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			if n, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
				return n
			}
		}
	}
	return 0
}

// imageURL resolves the first usable image reference: a plain URL string, an
// object carrying a url field, or the first element of an array of either.
func imageURL(raws ...json.RawMessage) string {
	for _, raw := range raws {
		if u := singleImageURL(raw); u != "" {
			return u
		}
		var list []json.RawMessage
		if err := json.Unmarshal(raw, &list); err == nil && len(list) > 0 {
			if u := singleImageURL(list[0]); u != "" {
				return u
			}
		}
	}
	return placeholderImage
}

func singleImageURL(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.TrimSpace(s)
	}
	var obj struct {
		URL string `json:"url"`
	}
	if err := json.Unmarshal(raw, &obj); err == nil {
		return strings.TrimSpace(obj.URL)
	}
	return ""
}

func categoryName(raws ...json.RawMessage) string {
	for _, raw := range raws {
		if len(raw) == 0 {
			continue
		}
		var s string
		if err := json.Unmarshal(raw, &s); err == nil && s != "" {
			return s
		}
		var obj struct {
			Name  string `json:"name"`
			Title string `json:"title"`
		}
		if err := json.Unmarshal(raw, &obj); err == nil {
			if name := firstNonEmpty(obj.Name, obj.Title); name != "" {
				return name
			}
		}
		var list []json.RawMessage
		if err := json.Unmarshal(raw, &list); err == nil && len(list) > 0 {
			if name := categoryName(list[0]); name != "" {
				return name
			}
		}
	}
	return ""
}
