package store

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"yams/internal/model"
	"yams/internal/storage"
)

// Each mutation takes the write lock for its whole body: readers never see
// a half-applied transition.

func (s *Store) setLoading(loading bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.loading = loading
}

func (s *Store) setNotifications(count int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.notificationCount = count
}

// setAuthenticated stores the session user, mirrors it to durable storage
// and installs the bearer token on the API client. The in-memory and
// persisted copies move together.
func (s *Store) setAuthenticated(user model.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.authenticated = true
	s.state.user = &user
	s.persistSession()
	s.api.SetToken(user.Token)
}

// SetUserProfile replaces the session user's profile data and re-persists
// it. The authentication flag and bearer token are untouched; profile
// edits never re-authenticate.
func (s *Store) SetUserProfile(user model.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.user = &user
	s.persistSession()
}

// SetHasSeenDidacticAt records when the onboarding flow was first shown.
// An empty value marks now.
func (s *Store) SetHasSeenDidacticAt(value string) {
	if value == "" {
		value = time.Now().Format(time.RFC3339)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.hasSeenDidacticAt = value
	data, err := json.Marshal(value)
	if err == nil {
		err = s.persist.Set(context.Background(), storage.KeyOpenedAt, data)
	}
	if err != nil {
		log.Printf("persist didactic timestamp: %v", err)
	}
}

// clearUserData is the logout transition: drop the persisted session, strip
// the bearer token and reset every in-memory field back to its initial
// value. The legacy client forced a full page reload here; the total reset
// plus cart rehydration reproduces the post-reload state without the
// restart.
func (s *Store) clearUserData() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.persist.Delete(context.Background(), storage.KeySession); err != nil {
		log.Printf("remove persisted session: %v", err)
	}
	s.api.ClearToken()
	s.state = initialState()
	s.state.cart = s.loadCart()
	s.state.hasSeenDidacticAt = s.loadDidactic()
}

// setProducts replaces the catalog wholesale. The selection defaults to the
// first product when nothing was selected yet.
func (s *Store) setProducts(products []model.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.products = products
	if s.state.selectedProduct == nil && len(products) > 0 {
		first := products[0]
		s.state.selectedProduct = &first
	}
}

func (s *Store) setSelectedProduct(product *model.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.selectedProduct = product
}

// upsertProduct replaces the matching catalog entry in place, or prepends
// when the id is new. A selection pointing at the same id is refreshed.
func (s *Store) upsertProduct(product model.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	replaced := false
	for i := range s.state.products {
		if s.state.products[i].ID == product.ID {
			s.state.products[i] = product
			replaced = true
			break
		}
	}
	if !replaced {
		s.state.products = append([]model.Product{product}, s.state.products...)
	}
	if s.state.selectedProduct != nil && s.state.selectedProduct.ID == product.ID {
		s.state.selectedProduct = &product
	}
}

func (s *Store) removeProduct(productID int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.state.products[:0]
	for _, product := range s.state.products {
		if product.ID != productID {
			kept = append(kept, product)
		}
	}
	s.state.products = kept
	if s.state.selectedProduct != nil && s.state.selectedProduct.ID == productID {
		s.state.selectedProduct = nil
	}
}

// AddProductToCart merges the product into the cart: an existing line for
// the same product id grows by quantity, otherwise a new line is appended.
// Quantities below one count as one. The cart is re-persisted before the
// call returns.
func (s *Store) AddProductToCart(product model.Product, quantity int) {
	if quantity < 1 {
		quantity = 1
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.state.cart {
		if s.state.cart[i].Product.ID == product.ID {
			s.state.cart[i].Quantity += quantity
			s.persistCart()
			return
		}
	}
	s.state.cart = append(s.state.cart, model.CartItem{Product: product, Quantity: quantity})
	s.persistCart()
}

// UpdateCartQuantity sets the quantity of the line for productID. A result
// of zero or below removes the line; a missing line is a no-op. The cart is
// re-persisted either way.
func (s *Store) UpdateCartQuantity(productID, quantity int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.state.cart {
		if s.state.cart[i].Product.ID == productID {
			if quantity <= 0 {
				s.state.cart = append(s.state.cart[:i], s.state.cart[i+1:]...)
			} else {
				s.state.cart[i].Quantity = quantity
			}
			break
		}
	}
	s.persistCart()
}

// RemoveItemFromCart drops the line for productID and re-persists.
func (s *Store) RemoveItemFromCart(productID int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.state.cart[:0]
	for _, item := range s.state.cart {
		if item.Product.ID != productID {
			kept = append(kept, item)
		}
	}
	s.state.cart = kept
	s.persistCart()
}

func (s *Store) clearCart() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.cart = nil
	s.persistCart()
}

func (s *Store) setCheckoutStatus(status model.CheckoutStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.checkoutStatus = status
}

func (s *Store) setUsers(users []model.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.users = users
}

// upsertUser replaces the matching list entry in place, or appends when the
// id is new.
func (s *Store) upsertUser(user model.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.state.users {
		if s.state.users[i].ID == user.ID {
			s.state.users[i] = user
			return
		}
	}
	s.state.users = append(s.state.users, user)
}

func (s *Store) removeUser(userID int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.state.users[:0]
	for _, user := range s.state.users {
		if user.ID != userID {
			kept = append(kept, user)
		}
	}
	s.state.users = kept
}
