// Package store is the single source of truth for session, catalog, cart
// and admin data. Getters read state, mutations change it atomically, and
// actions orchestrate backend calls around mutations. State is guarded by
// one RWMutex: every mutation is atomic, but a multi-step action can
// interleave with others between its mutations (last write wins).
package store

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"yams/internal/apiclient"
	"yams/internal/auth"
	"yams/internal/model"
	"yams/internal/storage"
)

// Store owns all client-side application state. Create one per composition
// root and pass it by reference; there is no package-level instance.
type Store struct {
	api     *apiclient.Client
	persist storage.Store
	appURL  string

	mu    sync.RWMutex
	state state

	onSessionExpired func()
}

type state struct {
	loading           bool
	authenticated     bool
	user              *model.User
	hasSeenDidacticAt string
	notificationCount int
	products          []model.Product
	selectedProduct   *model.Product
	cart              []model.CartItem
	checkoutStatus    model.CheckoutStatus
	users             []model.User
}

func initialState() state {
	return state{checkoutStatus: model.CheckoutIdle}
}

// New wires a store to its API client and persistence backend. The cart and
// the didactic timestamp are rehydrated immediately; the session is not —
// call RestoreSession for that. The store installs itself as the client's
// 401 hook so any unauthorized response anywhere clears the session.
func New(api *apiclient.Client, persist storage.Store, appURL string) *Store {
	s := &Store{
		api:     api,
		persist: persist,
		appURL:  appURL,
		state:   initialState(),
	}
	s.state.cart = s.loadCart()
	s.state.hasSeenDidacticAt = s.loadDidactic()
	api.OnUnauthorized(s.handleUnauthorized)
	return s
}

// OnSessionExpired registers a callback fired after a 401 wiped the
// session, so the app can route to the login screen.
func (s *Store) OnSessionExpired(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onSessionExpired = fn
}

func (s *Store) handleUnauthorized() {
	s.clearUserData()
	s.mu.RLock()
	fn := s.onSessionExpired
	s.mu.RUnlock()
	if fn != nil {
		fn()
	}
}

// RestoreSession rehydrates the session persisted by a previous run.
// A missing blob, an undecodable blob or an already-expired token leaves
// the store unauthenticated. Returns whether a session was restored.
func (s *Store) RestoreSession(ctx context.Context) bool {
	data, err := s.persist.Get(ctx, storage.KeySession)
	if err != nil || len(data) == 0 {
		return false
	}
	var user model.User
	if err := json.Unmarshal(data, &user); err != nil {
		log.Printf("restore session: %v", err)
		return false
	}
	if user.Token == "" || auth.Expired(user.Token) {
		if err := s.persist.Delete(ctx, storage.KeySession); err != nil {
			log.Printf("drop stale session: %v", err)
		}
		return false
	}
	s.setAuthenticated(user)
	return true
}

// loadCart reads the persisted cart. Called before the store is shared, so
// no lock is needed.
func (s *Store) loadCart() []model.CartItem {
	data, err := s.persist.Get(context.Background(), storage.KeyCart)
	if err != nil || len(data) == 0 {
		return nil
	}
	var cart []model.CartItem
	if err := json.Unmarshal(data, &cart); err != nil {
		log.Printf("load persisted cart: %v", err)
		return nil
	}
	return cart
}

func (s *Store) loadDidactic() string {
	data, err := s.persist.Get(context.Background(), storage.KeyOpenedAt)
	if err != nil || len(data) == 0 {
		return ""
	}
	var value string
	if err := json.Unmarshal(data, &value); err != nil {
		log.Printf("load didactic timestamp: %v", err)
		return ""
	}
	return value
}

// persistCart writes the cart blob. Callers hold the write lock. Persist
// failures are logged, not surfaced: the in-memory mutation stands.
func (s *Store) persistCart() {
	data, err := json.Marshal(s.state.cart)
	if err == nil {
		err = s.persist.Set(context.Background(), storage.KeyCart, data)
	}
	if err != nil {
		log.Printf("persist cart: %v", err)
	}
}

// persistSession writes the session blob. Callers hold the write lock.
func (s *Store) persistSession() {
	data, err := json.Marshal(s.state.user)
	if err == nil {
		err = s.persist.Set(context.Background(), storage.KeySession, data)
	}
	if err != nil {
		log.Printf("persist session: %v", err)
	}
}
