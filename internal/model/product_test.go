package model

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestProductFromAPI(t *testing.T) {
	tests := []struct {
		name     string
		api      APIProduct
		baseURL  string
		expected func(t *testing.T, product Product)
	}{
		{
			name: "full record",
			api: APIProduct{
				ID:          7,
				Nom:         "Mangue séchée",
				Prix:        "1500.50",
				Categorie:   "fruits",
				Description: "Sachet 250g",
				Statut:      "disponible",
				Quantite:    "12",
				Images:      "uploads/mangue.png",
			},
			baseURL: "http://127.0.0.1:8000",
			expected: func(t *testing.T, product Product) {
				assert.Equal(t, 7, product.ID)
				assert.Equal(t, "Mangue séchée", product.Title)
				assert.True(t, product.Price.Equal(decimal.RequireFromString("1500.50")))
				assert.Equal(t, DefaultCurrency, product.Currency)
				assert.Equal(t, 12, product.Stock)
				assert.Equal(t, "disponible", product.Availability)
				assert.Equal(t, "http://127.0.0.1:8000/uploads/mangue.png", product.Thumbnail)
			},
		},
		{
			name: "absolute image url kept",
			api:  APIProduct{ID: 1, Nom: "Ananas", Prix: "800", Quantite: "3", Images: "https://cdn.example.com/ananas.png"},
			expected: func(t *testing.T, product Product) {
				assert.Equal(t, "https://cdn.example.com/ananas.png", product.Thumbnail)
			},
		},
		{
			name: "unparseable numbers default to zero",
			api:  APIProduct{ID: 2, Nom: "Igname", Prix: "gratuit", Quantite: "beaucoup"},
			expected: func(t *testing.T, product Product) {
				assert.True(t, product.Price.IsZero())
				assert.Zero(t, product.Stock)
			},
		},
		{
			name: "missing id synthesized from title and price",
			api:  APIProduct{Nom: "Igname", Prix: "2000", Quantite: "4"},
			expected: func(t *testing.T, product Product) {
				assert.Equal(t, SynthesizeProductID("Igname", "2000"), product.ID)
				assert.Positive(t, product.ID)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.expected(t, ProductFromAPI(tt.api, tt.baseURL))
		})
	}
}

func TestSynthesizeProductID_Deterministic(t *testing.T) {
	first := SynthesizeProductID("Mangue", "500")
	second := SynthesizeProductID("Mangue", "500")
	assert.Equal(t, first, second, "same (title, price) must hash to the same id across fetches")
	assert.NotEqual(t, first, SynthesizeProductID("Mangue", "600"))
	assert.GreaterOrEqual(t, first, 0)
}

func TestProductPayloadToAPI(t *testing.T) {
	payload := ProductPayload{
		Title:       "Bissap",
		Price:       decimal.RequireFromString("250"),
		Stock:       40,
		Category:    "boissons",
		Description: "Bouteille 50cl",
		Thumbnail:   "uploads/bissap.png",
	}

	api := payload.ToAPI()
	assert.Equal(t, "Bissap", api.Nom)
	assert.Equal(t, "250", api.Prix)
	assert.Equal(t, "40", api.Quantite)
	assert.Equal(t, "actif", api.Statut, "updates always reactivate the product")
	assert.Equal(t, "uploads/bissap.png", api.Images)
}

func TestProductPayloadFormFields(t *testing.T) {
	fields := ProductPayload{Title: "Bissap", Price: decimal.RequireFromString("250")}.FormFields()
	assert.Equal(t, "disponible", fields["statut"], "blank availability defaults to disponible")
	assert.Equal(t, "Bissap", fields["nom"])
	assert.Equal(t, "0", fields["quantite"])

	fields = ProductPayload{Availability: "rupture"}.FormFields()
	assert.Equal(t, "rupture", fields["statut"])
}

func TestCartItemSubtotal(t *testing.T) {
	item := CartItem{
		Product:  Product{Price: decimal.RequireFromString("1250.25")},
		Quantity: 3,
	}
	assert.True(t, item.Subtotal().Equal(decimal.RequireFromString("3750.75")))
}
