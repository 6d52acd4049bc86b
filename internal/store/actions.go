package store

import (
	"context"
	"log"
	"net/url"

	"golang.org/x/sync/errgroup"

	apperrors "yams/internal/errors"
	"yams/internal/model"
)

// Error policy, kept deliberately uneven: critical flows (login, register,
// checkout, create/update/delete) return their error after cleanup; list
// refreshes and notifications log and absorb, the UI reads "no state
// change" as the failure signal.

// FetchNotifications refreshes the unread notification badge.
func (s *Store) FetchNotifications(ctx context.Context) {
	count, err := s.api.UnreadNotificationCount(ctx)
	if err != nil {
		log.Printf("fetch notifications: %v", err)
		return
	}
	s.setNotifications(count)
}

// FetchProducts loads the catalog, passing filters through to the backend,
// and replaces the product list wholesale.
func (s *Store) FetchProducts(ctx context.Context, filters url.Values) {
	s.setLoading(true)
	defer s.setLoading(false)

	apiProducts, err := s.api.ListProducts(ctx, filters)
	if err != nil {
		log.Printf("fetch products: %v", err)
		return
	}
	products := make([]model.Product, 0, len(apiProducts))
	for _, apiProduct := range apiProducts {
		products = append(products, model.ProductFromAPI(apiProduct, s.api.BaseURL()))
	}
	s.setProducts(products)
}

// FetchProductByID resolves a product and makes it the selection, in three
// tiers: the in-memory list first (no network), then the single-item
// endpoint, and when that fails with the list still empty, one full list
// fetch searched for the id. An unresolved id clears the selection.
func (s *Store) FetchProductByID(ctx context.Context, productID int) {
	s.setLoading(true)
	defer s.setLoading(false)

	product := s.findProduct(productID)
	if product == nil {
		apiProduct, err := s.api.GetProduct(ctx, productID)
		if err == nil {
			found := model.ProductFromAPI(apiProduct, s.api.BaseURL())
			product = &found
			if s.findProduct(found.ID) == nil {
				s.upsertProduct(found)
			}
		} else {
			log.Printf("fetch product %d: %v", productID, err)
			if len(s.Products()) == 0 {
				s.FetchProducts(ctx, nil)
				product = s.findProduct(productID)
			}
		}
	}
	s.setSelectedProduct(product)
}

func (s *Store) findProduct(productID int) *model.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, product := range s.state.products {
		if product.ID == productID {
			found := product
			return &found
		}
	}
	return nil
}

// CreateProduct uploads a new product (multipart, optional image) and
// merges the backend's version of it into the catalog.
func (s *Store) CreateProduct(ctx context.Context, payload model.ProductPayload) (model.Product, error) {
	s.setLoading(true)
	defer s.setLoading(false)

	apiProduct, err := s.api.CreateProduct(ctx, payload)
	if err != nil {
		return model.Product{}, err
	}
	product := model.ProductFromAPI(apiProduct, s.api.BaseURL())
	s.upsertProduct(product)
	return product, nil
}

// UpdateProduct sends a flat update and merges the response.
func (s *Store) UpdateProduct(ctx context.Context, payload model.ProductPayload) (model.Product, error) {
	s.setLoading(true)
	defer s.setLoading(false)

	apiProduct, err := s.api.UpdateProduct(ctx, payload.ID, payload)
	if err != nil {
		return model.Product{}, err
	}
	product := model.ProductFromAPI(apiProduct, s.api.BaseURL())
	s.upsertProduct(product)
	return product, nil
}

// DeleteProduct removes the product on the backend, then locally.
func (s *Store) DeleteProduct(ctx context.Context, productID int) error {
	s.setLoading(true)
	defer s.setLoading(false)

	if err := s.api.DeleteProduct(ctx, productID); err != nil {
		return err
	}
	s.removeProduct(productID)
	return nil
}

// Checkout posts one order per cart line, all concurrently, and joins
// all-or-nothing: only a fully successful fan-out clears the cart and marks
// success. Any single failure leaves the cart exactly as it was and marks
// error. Requires a resolved session user.
func (s *Store) Checkout(ctx context.Context) error {
	s.setLoading(true)
	defer s.setLoading(false)
	s.setCheckoutStatus(model.CheckoutIdle)

	user := s.User()
	if user == nil || user.ID == 0 {
		s.setCheckoutStatus(model.CheckoutError)
		return apperrors.ErrNotAuthenticated
	}

	items := s.CartItems()
	g, gctx := errgroup.WithContext(ctx)
	for _, item := range items {
		item := item
		g.Go(func() error {
			return s.api.CreateOrder(gctx, model.OrderPayload{
				Quantite:  item.Quantity,
				Total:     item.Subtotal(),
				ProduitID: item.Product.ID,
				UserID:    user.ID,
			})
		})
	}
	if err := g.Wait(); err != nil {
		s.setCheckoutStatus(model.CheckoutError)
		log.Printf("checkout: %v", err)
		return err
	}

	s.setCheckoutStatus(model.CheckoutSuccess)
	s.clearCart()
	return nil
}

// Login authenticates and installs the session.
func (s *Store) Login(ctx context.Context, credentials model.Credentials) (model.User, error) {
	s.setLoading(true)
	defer s.setLoading(false)

	resp, err := s.api.Login(ctx, credentials)
	if err != nil {
		return model.User{}, err
	}
	user := model.UserFromAPI(resp.User, resp.Token)
	s.setAuthenticated(user)
	return user, nil
}

// Register creates an account. The session is installed only when the
// backend's response carries a user; deployments requiring account
// validation answer without one and the caller stays unauthenticated.
func (s *Store) Register(ctx context.Context, payload model.RegisterPayload) (model.RegisterResponse, error) {
	s.setLoading(true)
	defer s.setLoading(false)

	resp, err := s.api.Register(ctx, payload)
	if err != nil {
		return model.RegisterResponse{}, err
	}
	if resp.User != nil {
		s.setAuthenticated(model.UserFromAPI(*resp.User, resp.Token))
	}
	return resp, nil
}

// Logout destroys the session and resets all in-memory state to initial
// values. Persisted cart contents survive, matching a fresh start of the
// client.
func (s *Store) Logout() {
	s.clearUserData()
}

// FetchUsers loads the admin user list wholesale.
func (s *Store) FetchUsers(ctx context.Context) {
	s.setLoading(true)
	defer s.setLoading(false)

	apiUsers, err := s.api.ListUsers(ctx)
	if err != nil {
		log.Printf("fetch users: %v", err)
		return
	}
	users := make([]model.User, 0, len(apiUsers))
	for _, apiUser := range apiUsers {
		users = append(users, model.UserFromAPI(apiUser, ""))
	}
	s.setUsers(users)
}

// CreateUser creates an admin-surface user record and merges the response.
func (s *Store) CreateUser(ctx context.Context, payload model.UserPayload) (model.User, error) {
	s.setLoading(true)
	defer s.setLoading(false)

	apiUser, err := s.api.CreateUser(ctx, payload)
	if err != nil {
		return model.User{}, err
	}
	user := model.UserFromAPI(apiUser, "")
	s.upsertUser(user)
	return user, nil
}

// UpdateUser updates an admin-surface user record and merges the response.
func (s *Store) UpdateUser(ctx context.Context, userID int, payload model.UserPayload) (model.User, error) {
	s.setLoading(true)
	defer s.setLoading(false)

	apiUser, err := s.api.UpdateUser(ctx, userID, payload)
	if err != nil {
		return model.User{}, err
	}
	user := model.UserFromAPI(apiUser, "")
	s.upsertUser(user)
	return user, nil
}

// DeleteUser removes a user record on the backend, then locally.
func (s *Store) DeleteUser(ctx context.Context, userID int) error {
	s.setLoading(true)
	defer s.setLoading(false)

	if err := s.api.DeleteUser(ctx, userID); err != nil {
		return err
	}
	s.removeUser(userID)
	return nil
}
