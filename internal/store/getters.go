package store

import (
	"github.com/shopspring/decimal"

	"yams/internal/model"
)

// Loading reports whether an asynchronous action is in flight.
func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.loading
}

// Authenticated reports whether a session user is present.
func (s *Store) Authenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.authenticated && s.state.user != nil
}

// User returns a copy of the session user, or nil when unauthenticated.
func (s *Store) User() *model.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state.user == nil {
		return nil
	}
	user := *s.state.user
	return &user
}

// IsAdmin reports whether the session user carries the admin role.
func (s *Store) IsAdmin() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.user.IsAdmin()
}

// IsCustomer reports an authenticated non-admin session.
func (s *Store) IsCustomer() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.authenticated && s.state.user != nil && !s.state.user.IsAdmin()
}

// APIURL returns the backend base URL.
func (s *Store) APIURL() string {
	return s.api.BaseURL()
}

// AppURL returns the application's own base URL.
func (s *Store) AppURL() string {
	return s.appURL
}

// HasSeenDidacticAt returns the onboarding-seen timestamp, empty if the
// onboarding flow was never shown.
func (s *Store) HasSeenDidacticAt() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.hasSeenDidacticAt
}

// NotificationCount returns the last fetched unread notification count.
func (s *Store) NotificationCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.notificationCount
}

// Products returns a copy of the catalog.
func (s *Store) Products() []model.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.Product(nil), s.state.products...)
}

// FeaturedProduct returns the first catalog entry, or nil when the catalog
// is empty.
func (s *Store) FeaturedProduct() *model.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.state.products) == 0 {
		return nil
	}
	product := s.state.products[0]
	return &product
}

// SelectedProduct returns a copy of the current selection, or nil.
func (s *Store) SelectedProduct() *model.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state.selectedProduct == nil {
		return nil
	}
	product := *s.state.selectedProduct
	return &product
}

// CartItems returns a copy of the cart lines.
func (s *Store) CartItems() []model.CartItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.CartItem(nil), s.state.cart...)
}

// CartCount returns the sum of quantities across cart lines.
func (s *Store) CartCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	total := 0
	for _, item := range s.state.cart {
		total += item.Quantity
	}
	return total
}

// CartTotal returns Σ price×quantity over the cart.
func (s *Store) CartTotal() decimal.Decimal {
	s.mu.RLock()
	defer s.mu.RUnlock()
	total := decimal.Zero
	for _, item := range s.state.cart {
		total = total.Add(item.Subtotal())
	}
	return total
}

// CheckoutStatus returns the transient checkout UI signal.
func (s *Store) CheckoutStatus() model.CheckoutStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.checkoutStatus
}

// Users returns a copy of the admin user list.
func (s *Store) Users() []model.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.User(nil), s.state.users...)
}

// UserCount returns the admin user list length.
func (s *Store) UserCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.state.users)
}
