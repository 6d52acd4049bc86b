package store

import (
	"bytes"
	"context"
	"encoding/json"
	"net/url"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yams/internal/apiclient"
	"yams/internal/apitest"
	apperrors "yams/internal/errors"
	"yams/internal/model"
	"yams/internal/storage"
)

func newServerStore(t *testing.T) (*apitest.Server, *Store, storage.Store) {
	t.Helper()
	server := apitest.NewServer()
	t.Cleanup(server.Close)
	persist := storage.NewMemory()
	s := New(apiclient.New(server.URL), persist, "http://localhost:8100")
	return server, s, persist
}

func loginClient(t *testing.T, server *apitest.Server, s *Store) model.User {
	t.Helper()
	server.Accounts["moussa@yams.io"] = model.APIUser{
		ID: 41, Nom: "Traoré", Prenom: "Moussa", Email: "moussa@yams.io", Profil: "client",
	}
	user, err := s.Login(context.Background(), model.Credentials{Email: "moussa@yams.io", Password: "secret"})
	require.NoError(t, err)
	return user
}

func TestLogin(t *testing.T) {
	server, s, persist := newServerStore(t)
	server.Accounts["awa@yams.io"] = model.APIUser{
		ID: 3, Nom: "Diallo", Prenom: "Awa", Email: "awa@yams.io", Profil: "admin",
	}

	user, err := s.Login(context.Background(), model.Credentials{Email: "awa@yams.io", Password: "secret"})
	require.NoError(t, err)

	assert.Equal(t, "Awa Diallo", user.Name)
	assert.True(t, s.Authenticated())
	assert.True(t, s.IsAdmin())
	assert.False(t, s.IsCustomer())
	assert.False(t, s.Loading())

	data, getErr := persist.Get(context.Background(), storage.KeySession)
	require.NoError(t, getErr)
	require.NotEmpty(t, data, "session mirrored to durable storage")
	var stored model.User
	require.NoError(t, json.Unmarshal(data, &stored))
	assert.Equal(t, server.Token, stored.Token)
}

func TestLogin_BadCredentials(t *testing.T) {
	server, s, _ := newServerStore(t)
	server.Accounts["awa@yams.io"] = model.APIUser{ID: 3, Prenom: "Awa", Profil: "admin"}

	_, err := s.Login(context.Background(), model.Credentials{Email: "awa@yams.io", Password: "wrong"})
	require.Error(t, err)
	assert.True(t, apperrors.IsUnauthorized(err))
	assert.False(t, s.Authenticated())
	assert.False(t, s.Loading(), "loading flag restored on the error path")
}

func TestRegister(t *testing.T) {
	t.Run("response with user authenticates", func(t *testing.T) {
		server, s, _ := newServerStore(t)
		server.RegisterReturnsUser = true

		resp, err := s.Register(context.Background(), model.RegisterPayload{
			Name: "Fanta Keita", Email: "fanta@yams.io", Password: "secret",
		})
		require.NoError(t, err)
		require.NotNil(t, resp.User)
		assert.True(t, s.Authenticated())
		assert.Equal(t, "Fanta Keita", s.User().Name)
		assert.True(t, s.IsCustomer())
	})

	t.Run("response without user stays unauthenticated", func(t *testing.T) {
		server, s, _ := newServerStore(t)
		server.RegisterReturnsUser = false

		resp, err := s.Register(context.Background(), model.RegisterPayload{
			Name: "Fanta Keita", Email: "fanta@yams.io", Password: "secret",
		})
		require.NoError(t, err)
		assert.Nil(t, resp.User)
		assert.NotEmpty(t, resp.Detail)
		assert.False(t, s.Authenticated())
	})
}

func TestFetchProducts(t *testing.T) {
	server, s, _ := newServerStore(t)
	server.Products = []model.APIProduct{
		{ID: 1, Nom: "Mangue", Prix: "500", Quantite: "10", Categorie: "fruits"},
		{ID: 2, Nom: "Bissap", Prix: "250", Quantite: "40", Categorie: "boissons"},
	}

	s.FetchProducts(context.Background(), nil)

	products := s.Products()
	require.Len(t, products, 2)
	assert.Equal(t, "Mangue", products[0].Title)
	assert.Equal(t, "Mangue", s.FeaturedProduct().Title)
	assert.Equal(t, "Mangue", s.SelectedProduct().Title, "selection defaults to first product")
	assert.False(t, s.Loading())
}

func TestFetchProducts_FiltersPassedThrough(t *testing.T) {
	server, s, _ := newServerStore(t)
	server.Products = []model.APIProduct{
		{ID: 1, Nom: "Mangue", Prix: "500", Quantite: "10", Categorie: "fruits"},
		{ID: 2, Nom: "Bissap", Prix: "250", Quantite: "40", Categorie: "boissons"},
	}

	s.FetchProducts(context.Background(), url.Values{"categorie": {"boissons"}})

	products := s.Products()
	require.Len(t, products, 1)
	assert.Equal(t, "Bissap", products[0].Title)
}

func TestFetchProductByID_InMemoryShortCircuit(t *testing.T) {
	server, s, _ := newServerStore(t)
	server.Products = []model.APIProduct{{ID: 5, Nom: "Mangue", Prix: "500", Quantite: "10"}}
	s.FetchProducts(context.Background(), nil)
	require.Equal(t, 1, server.ListProductCalls)

	// Any network fetch from here on would fail; the in-memory hit must win.
	server.FailGetProduct = true
	s.FetchProductByID(context.Background(), 5)

	require.NotNil(t, s.SelectedProduct())
	assert.Equal(t, 5, s.SelectedProduct().ID)
	assert.Equal(t, 1, server.ListProductCalls, "populated list is not refetched")
}

func TestFetchProductByID_SingleItemFetch(t *testing.T) {
	server, s, _ := newServerStore(t)
	server.Products = []model.APIProduct{{ID: 9, Nom: "Igname", Prix: "2000", Quantite: "4"}}

	s.FetchProductByID(context.Background(), 9)

	require.NotNil(t, s.SelectedProduct())
	assert.Equal(t, 9, s.SelectedProduct().ID)
	assert.Len(t, s.Products(), 1, "fetched product upserted into the list")
	assert.Zero(t, server.ListProductCalls, "no full list fetch needed")
}

func TestFetchProductByID_FallbackChain(t *testing.T) {
	server, s, _ := newServerStore(t)
	server.Products = []model.APIProduct{{ID: 9, Nom: "Igname", Prix: "2000", Quantite: "4"}}
	server.FailGetProduct = true

	s.FetchProductByID(context.Background(), 9)

	require.NotNil(t, s.SelectedProduct())
	assert.Equal(t, 9, s.SelectedProduct().ID)
	assert.Equal(t, 1, server.ListProductCalls, "empty list triggers exactly one full fetch")
}

func TestFetchProductByID_NotFound(t *testing.T) {
	server, s, _ := newServerStore(t)
	server.FailGetProduct = true

	s.FetchProductByID(context.Background(), 404)

	assert.Nil(t, s.SelectedProduct())
	assert.Equal(t, 1, server.ListProductCalls)
	assert.False(t, s.Loading())
}

func TestCreateProduct(t *testing.T) {
	server, s, _ := newServerStore(t)

	product, err := s.CreateProduct(context.Background(), model.ProductPayload{
		Title:     "Bissap",
		Price:     decimal.RequireFromString("250"),
		Stock:     40,
		Category:  "boissons",
		ImageName: "bissap.png",
		Image:     bytes.NewReader([]byte("fake-png")),
	})
	require.NoError(t, err)

	assert.Positive(t, product.ID)
	assert.Equal(t, server.URL+"/uploads/bissap.png", product.Thumbnail, "relative image path resolved against the base URL")
	products := s.Products()
	require.Len(t, products, 1)
	assert.Equal(t, product.ID, products[0].ID)
}

func TestCreateProduct_SynthesizedID(t *testing.T) {
	server, s, _ := newServerStore(t)
	server.OmitCreatedID = true

	product, err := s.CreateProduct(context.Background(), model.ProductPayload{
		Title: "Mangue", Price: decimal.RequireFromString("500"),
	})
	require.NoError(t, err)
	assert.Equal(t, model.SynthesizeProductID("Mangue", "500"), product.ID)
}

func TestUpdateProduct(t *testing.T) {
	server, s, _ := newServerStore(t)
	server.Products = []model.APIProduct{
		{ID: 1, Nom: "Mangue", Prix: "500", Quantite: "10"},
		{ID: 2, Nom: "Bissap", Prix: "250", Quantite: "40"},
	}
	s.FetchProducts(context.Background(), nil)

	updated, err := s.UpdateProduct(context.Background(), model.ProductPayload{
		ID: 2, Title: "Bissap glacé", Price: decimal.RequireFromString("300"), Stock: 35,
	})
	require.NoError(t, err)
	assert.Equal(t, "Bissap glacé", updated.Title)

	products := s.Products()
	require.Len(t, products, 2)
	assert.Equal(t, "Bissap glacé", products[1].Title, "updated in place, order preserved")
}

func TestDeleteProduct(t *testing.T) {
	server, s, _ := newServerStore(t)
	server.Products = []model.APIProduct{{ID: 1, Nom: "Mangue", Prix: "500", Quantite: "10"}}
	s.FetchProducts(context.Background(), nil)
	require.NotNil(t, s.SelectedProduct())

	require.NoError(t, s.DeleteProduct(context.Background(), 1))
	assert.Empty(t, s.Products())
	assert.Nil(t, s.SelectedProduct(), "deleting the selected product clears the selection")
}

func TestCheckout_AllSucceed(t *testing.T) {
	server, s, persist := newServerStore(t)
	loginClient(t, server, s)

	s.AddProductToCart(testProduct(1, "500"), 2)
	s.AddProductToCart(testProduct(2, "800"), 1)
	s.AddProductToCart(testProduct(3, "1200"), 3)

	require.NoError(t, s.Checkout(context.Background()))

	assert.Equal(t, model.CheckoutSuccess, s.CheckoutStatus())
	assert.Empty(t, s.CartItems())
	assert.Empty(t, persistedCart(t, persist), "cleared cart persisted")
	require.Len(t, server.Orders, 3)
	for _, order := range server.Orders {
		assert.Equal(t, 41, order.UserID)
	}
}

func TestCheckout_PartialFailureLeavesCartUntouched(t *testing.T) {
	server, s, _ := newServerStore(t)
	loginClient(t, server, s)

	s.AddProductToCart(testProduct(1, "500"), 2)
	s.AddProductToCart(testProduct(2, "800"), 1)
	s.AddProductToCart(testProduct(3, "1200"), 3)
	before, err := json.Marshal(s.CartItems())
	require.NoError(t, err)

	server.FailOrderFor[2] = true

	require.Error(t, s.Checkout(context.Background()))

	assert.Equal(t, model.CheckoutError, s.CheckoutStatus())
	after, err := json.Marshal(s.CartItems())
	require.NoError(t, err)
	assert.JSONEq(t, string(before), string(after), "no partial clearing on failed fan-out")
	assert.False(t, s.Loading())
}

func TestCheckout_RequiresSessionUser(t *testing.T) {
	_, s, _ := newServerStore(t)
	s.AddProductToCart(testProduct(1, "500"), 1)

	err := s.Checkout(context.Background())
	assert.ErrorIs(t, err, apperrors.ErrNotAuthenticated)
	assert.Equal(t, model.CheckoutError, s.CheckoutStatus())
	assert.Len(t, s.CartItems(), 1)
}

func TestUserAdminFlows(t *testing.T) {
	server, s, _ := newServerStore(t)
	server.Users = []model.APIUser{
		{ID: 1, Nom: "Diallo", Prenom: "Awa", Profil: "admin"},
	}

	s.FetchUsers(context.Background())
	require.Equal(t, 1, s.UserCount())

	created, err := s.CreateUser(context.Background(), model.UserPayload{
		Nom: "Traoré", Prenom: "Moussa", Email: "moussa@yams.io", Profil: "client",
	})
	require.NoError(t, err)
	assert.Equal(t, 2, s.UserCount())
	assert.False(t, created.IsAdmin())

	updated, err := s.UpdateUser(context.Background(), created.ID, model.UserPayload{
		Nom: "Traoré", Prenom: "Moussa", Email: "moussa@yams.io", Profil: "admin",
	})
	require.NoError(t, err)
	assert.True(t, updated.IsAdmin())
	assert.Equal(t, 2, s.UserCount(), "update replaces, never duplicates")

	require.NoError(t, s.DeleteUser(context.Background(), created.ID))
	assert.Equal(t, 1, s.UserCount())
}

func TestFetchNotifications(t *testing.T) {
	server, s, _ := newServerStore(t)
	server.NotificationCount = 4

	s.FetchNotifications(context.Background())
	assert.Equal(t, 4, s.NotificationCount())
}

func TestSessionExpiryInterceptor(t *testing.T) {
	server, s, persist := newServerStore(t)
	loginClient(t, server, s)
	require.True(t, s.Authenticated())

	expired := false
	s.OnSessionExpired(func() { expired = true })

	// Simulate server-side token invalidation: any subsequent 401, whatever
	// the originating call, must wipe the session.
	server.RequireAuth = true
	server.Token = "rotated"

	s.FetchUsers(context.Background())

	assert.True(t, expired, "session-expired hook fired")
	assert.False(t, s.Authenticated())
	assert.Nil(t, s.User())
	data, err := persist.Get(context.Background(), storage.KeySession)
	require.NoError(t, err)
	assert.Empty(t, data, "persisted session removed on 401")
	assert.False(t, s.Loading())
}

func TestRestoreSession(t *testing.T) {
	t.Run("persisted session restored", func(t *testing.T) {
		server, s, persist := newServerStore(t)
		loginClient(t, server, s)

		// A later run over the same persistence picks the session up without
		// a network call.
		reloaded := New(apiclient.New(server.URL), persist, "http://localhost:8100")
		assert.False(t, reloaded.Authenticated())
		assert.True(t, reloaded.RestoreSession(context.Background()))
		assert.True(t, reloaded.Authenticated())
		assert.Equal(t, "Moussa Traoré", reloaded.User().Name)
	})

	t.Run("nothing persisted", func(t *testing.T) {
		_, s, _ := newServerStore(t)
		assert.False(t, s.RestoreSession(context.Background()))
		assert.False(t, s.Authenticated())
	})

	t.Run("undecodable blob ignored", func(t *testing.T) {
		_, s, persist := newServerStore(t)
		require.NoError(t, persist.Set(context.Background(), storage.KeySession, []byte("{broken")))
		assert.False(t, s.RestoreSession(context.Background()))
	})
}
