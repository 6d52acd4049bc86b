package guard

// DefaultRoutes is the storefront's route table. Only login and register
// are public; the cart and checkout confirmation are customer-only; the
// admin screens require the admin role.
func DefaultRoutes() []Route {
	return []Route{
		{Name: RouteHome, Path: "/home"},
		{Name: "catalog", Path: "/catalog"},
		{Name: "product-detail", Path: "/product/:id"},
		{Name: "notifications", Path: "/notifications"},
		{Name: "account", Path: "/account"},
		{Name: "cart", Path: "/cart", Meta: Meta{CustomerOnly: true}},
		{Name: "checkout-success", Path: "/checkout/success", Meta: Meta{CustomerOnly: true}},
		{Name: RouteLogin, Path: "/login", Meta: Meta{Public: true}},
		{Name: "register", Path: "/register", Meta: Meta{Public: true}},
		{Name: RouteAdminProducts, Path: "/admin/products", Meta: Meta{RequiresAdmin: true}},
		{Name: "admin-users", Path: "/admin/users", Meta: Meta{RequiresAdmin: true}},
	}
}

// FindRoute resolves a route by name from a table. The second result is
// false when the name is unknown.
func FindRoute(routes []Route, name string) (Route, bool) {
	for _, route := range routes {
		if route.Name == name {
			return route, true
		}
	}
	return Route{}, false
}
