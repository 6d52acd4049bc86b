// Package guard decides route transitions from current session state. It
// performs no network calls: every decision is a pure read of the store.
package guard

import "net/url"

// Route names the guard redirects to.
const (
	RouteLogin         = "login"
	RouteHome          = "home"
	RouteAdminProducts = "admin-products"
)

// Meta is the access policy attached to a route.
type Meta struct {
	Public        bool
	CustomerOnly  bool
	RequiresAdmin bool
}

// Route is a navigable destination.
type Route struct {
	Name string
	Path string
	Meta Meta
}

// Decision is the outcome of evaluating one pending transition: either
// proceed, or redirect to the named route with optional query parameters.
type Decision struct {
	Proceed    bool
	RedirectTo string
	Query      url.Values
}

// Session is the slice of store state the guard consults.
type Session interface {
	Authenticated() bool
	IsAdmin() bool
}

// Guard gates every pending route transition.
type Guard struct {
	session Session
}

// New creates a guard reading from the given session.
func New(session Session) *Guard {
	return &Guard{session: session}
}

// Evaluate runs the decision algorithm in fixed order: public routes pass
// unconditionally; unauthenticated sessions go to login with the requested
// path preserved under "redirect"; admins are bounced off customer-only
// routes to the admin home; non-admins are bounced off admin routes to the
// general home; everything else proceeds.
func (g *Guard) Evaluate(to Route) Decision {
	if to.Meta.Public {
		return Decision{Proceed: true}
	}
	if !g.session.Authenticated() {
		return Decision{
			RedirectTo: RouteLogin,
			Query:      url.Values{"redirect": {to.Path}},
		}
	}
	if to.Meta.CustomerOnly && g.session.IsAdmin() {
		return Decision{RedirectTo: RouteAdminProducts}
	}
	if to.Meta.RequiresAdmin && !g.session.IsAdmin() {
		return Decision{RedirectTo: RouteHome}
	}
	return Decision{Proceed: true}
}
