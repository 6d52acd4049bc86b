package model

import (
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// DefaultCurrency is the storefront's display currency.
const DefaultCurrency = "XOF"

// Product is the application's representation of a catalog item.
type Product struct {
	ID           int             `json:"id"`
	Title        string          `json:"title"`
	Description  string          `json:"description"`
	Price        decimal.Decimal `json:"price"`
	Currency     string          `json:"currency"`
	Thumbnail    string          `json:"thumbnail"`
	Stock        int             `json:"stock"`
	Category     string          `json:"category,omitempty"`
	Availability string          `json:"disponibilite,omitempty"`
	Rating       float64         `json:"rating,omitempty"`
}

// APIProduct is the backend's wire representation of a catalog item.
// Numeric fields travel as strings.
type APIProduct struct {
	ID          int    `json:"id,omitempty"`
	Nom         string `json:"nom"`
	Prix        string `json:"prix"`
	Categorie   string `json:"categorie"`
	Description string `json:"description"`
	Statut      string `json:"statut"`
	Quantite    string `json:"quantite"`
	Images      string `json:"images"`
}

// hashString reduces a string to a non-negative number the same way the
// legacy client did: a signed 32-bit polynomial hash, absolute value.
func hashString(s string) int {
	var h int32
	for _, r := range s {
		h = h*31 + int32(r)
	}
	if h < 0 {
		return -int(h)
	}
	return int(h)
}

// SynthesizeProductID derives a stable fallback id from title and price
// text. Compatibility shim for backend records without an id; collisions
// are possible and accepted.
func SynthesizeProductID(title, price string) int {
	return hashString(title + price)
}

// ProductFromAPI converts a backend product into the app shape. Relative
// image paths are resolved against baseURL; missing ids are synthesized
// from (title, price) so the same record hashes to the same id on every
// fetch.
func ProductFromAPI(api APIProduct, baseURL string) Product {
	id := api.ID
	if id == 0 {
		id = SynthesizeProductID(api.Nom, api.Prix)
	}

	price, err := decimal.NewFromString(api.Prix)
	if err != nil {
		price = decimal.Zero
	}

	stock, err := strconv.Atoi(api.Quantite)
	if err != nil {
		stock = 0
	}

	thumbnail := api.Images
	if thumbnail != "" && !strings.HasPrefix(thumbnail, "http") {
		thumbnail = strings.TrimSuffix(baseURL, "/") + "/" + strings.TrimPrefix(thumbnail, "/")
	}

	return Product{
		ID:           id,
		Title:        api.Nom,
		Description:  api.Description,
		Price:        price,
		Currency:     DefaultCurrency,
		Thumbnail:    thumbnail,
		Stock:        stock,
		Category:     api.Categorie,
		Availability: api.Statut,
	}
}

// ProductPayload carries the fields for product create/update. Image is an
// optional attachment, only honored by create (multipart upload).
type ProductPayload struct {
	ID           int
	Title        string
	Description  string
	Price        decimal.Decimal
	Stock        int
	Category     string
	Availability string
	Thumbnail    string
	ImageName    string
	Image        io.Reader
}

// ToAPI converts an update payload to the backend's flat shape. The backend
// treats updated products as active regardless of the previous statut.
func (p ProductPayload) ToAPI() APIProduct {
	return APIProduct{
		Nom:         p.Title,
		Prix:        p.Price.String(),
		Categorie:   p.Category,
		Description: p.Description,
		Statut:      "actif",
		Quantite:    strconv.Itoa(p.Stock),
		Images:      p.Thumbnail,
	}
}

// FormFields returns the multipart fields for product creation. The statut
// defaults to "disponible" when the payload leaves availability blank.
func (p ProductPayload) FormFields() map[string]string {
	statut := p.Availability
	if statut == "" {
		statut = "disponible"
	}
	return map[string]string{
		"nom":         p.Title,
		"prix":        p.Price.String(),
		"categorie":   p.Category,
		"description": p.Description,
		"statut":      statut,
		"quantite":    strconv.Itoa(p.Stock),
	}
}
