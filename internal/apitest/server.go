// Package apitest runs an in-memory stand-in for the storefront backend.
// Test suites point an apiclient at Server.URL and script fixtures and
// failures through the exported fields.
package apitest

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"

	"github.com/labstack/echo/v4"

	"yams/internal/model"
)

// Server is the fake backend. Mutate fixture fields before driving the
// client; counters record observed traffic.
type Server struct {
	*httptest.Server

	mu       sync.Mutex
	Products []model.APIProduct
	Users    []model.APIUser
	Orders   []model.OrderPayload

	// Accounts maps email to the wire user returned on login. Password is
	// shared across fixtures.
	Accounts map[string]model.APIUser
	Password string
	Token    string

	// RequireAuth makes every /api route except login demand the bearer
	// token, answering 401 otherwise.
	RequireAuth bool

	// FailGetProduct makes the single-product endpoint answer 500.
	FailGetProduct bool
	// FailOrderFor makes order creation answer 500 for these product ids.
	FailOrderFor map[int]bool
	// OmitCreatedID strips the id from create-product responses, forcing
	// clients onto their fallback id scheme.
	OmitCreatedID bool
	// RegisterReturnsUser controls whether registration answers with an
	// authenticated user.
	RegisterReturnsUser bool

	NotificationCount int
	ListProductCalls  int
	nextID            int
}

// NewServer starts the fake backend with empty fixtures.
func NewServer() *Server {
	s := &Server{
		Accounts:            make(map[string]model.APIUser),
		Password:            "secret",
		Token:               "test-token",
		FailOrderFor:        make(map[int]bool),
		RegisterReturnsUser: true,
		nextID:              1000,
	}

	e := echo.New()
	e.Use(s.authMiddleware)

	e.GET("/api/produits", s.listProducts)
	e.POST("/api/produits/:id", s.getProduct)
	e.POST("/api/produits", s.createProduct)
	e.PUT("/api/produits/:id", s.updateProduct)
	e.DELETE("/api/produits/:id", s.deleteProduct)
	e.POST("/api/commandes", s.createOrder)
	e.POST("/api/login", s.login)
	e.POST("/auth/register", s.register)
	e.GET("/api/users", s.listUsers)
	e.POST("/api/users", s.createUser)
	e.PUT("/api/users/:id", s.updateUser)
	e.DELETE("/api/users/:id", s.deleteUser)
	e.GET("/api/notifications", s.notifications)

	s.Server = httptest.NewServer(e)
	return s
}

func (s *Server) authMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		s.mu.Lock()
		required := s.RequireAuth
		token := s.Token
		s.mu.Unlock()

		path := c.Request().URL.Path
		if !required || path == "/api/login" || path == "/auth/register" {
			return next(c)
		}
		if c.Request().Header.Get("Authorization") != "Bearer "+token {
			return echo.NewHTTPError(http.StatusUnauthorized, "unauthenticated")
		}
		return next(c)
	}
}

func (s *Server) listProducts(c echo.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ListProductCalls++

	products := s.Products
	if category := c.QueryParam("categorie"); category != "" {
		filtered := make([]model.APIProduct, 0, len(products))
		for _, product := range products {
			if product.Categorie == category {
				filtered = append(filtered, product)
			}
		}
		products = filtered
	}
	return c.JSON(http.StatusOK, products)
}

func (s *Server) getProduct(c echo.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailGetProduct {
		return echo.NewHTTPError(http.StatusInternalServerError, "produit indisponible")
	}
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	for _, product := range s.Products {
		if product.ID == id {
			return c.JSON(http.StatusOK, product)
		}
	}
	return echo.NewHTTPError(http.StatusNotFound, "produit introuvable")
}

func (s *Server) createProduct(c echo.Context) error {
	form, err := c.MultipartForm()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "multipart form required")
	}
	field := func(name string) string {
		if values := form.Value[name]; len(values) > 0 {
			return values[0]
		}
		return ""
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	product := model.APIProduct{
		Nom:         field("nom"),
		Prix:        field("prix"),
		Categorie:   field("categorie"),
		Description: field("description"),
		Statut:      field("statut"),
		Quantite:    field("quantite"),
	}
	if files := form.File["images"]; len(files) > 0 {
		product.Images = "uploads/" + files[0].Filename
	}
	if !s.OmitCreatedID {
		s.nextID++
		product.ID = s.nextID
	}
	s.Products = append(s.Products, product)
	return c.JSON(http.StatusCreated, product)
}

func (s *Server) updateProduct(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var payload model.APIProduct
	if err := c.Bind(&payload); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	payload.ID = id

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.Products {
		if s.Products[i].ID == id {
			s.Products[i] = payload
			return c.JSON(http.StatusOK, payload)
		}
	}
	return echo.NewHTTPError(http.StatusNotFound, "produit introuvable")
}

func (s *Server) deleteProduct(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.Products[:0]
	for _, product := range s.Products {
		if product.ID != id {
			kept = append(kept, product)
		}
	}
	s.Products = kept
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) createOrder(c echo.Context) error {
	var payload model.OrderPayload
	if err := c.Bind(&payload); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailOrderFor[payload.ProduitID] {
		return echo.NewHTTPError(http.StatusInternalServerError, "commande refusée")
	}
	s.Orders = append(s.Orders, payload)
	return c.JSON(http.StatusCreated, echo.Map{"detail": "commande créée"})
}

func (s *Server) login(c echo.Context) error {
	var credentials model.Credentials
	if err := c.Bind(&credentials); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.Accounts[credentials.Email]
	if !ok || credentials.Password != s.Password {
		return echo.NewHTTPError(http.StatusUnauthorized, "identifiants invalides")
	}
	return c.JSON(http.StatusOK, model.LoginResponse{
		Detail: "connexion réussie",
		User:   user,
		Token:  s.Token,
	})
}

func (s *Server) register(c echo.Context) error {
	var payload model.RegisterPayload
	if err := c.Bind(&payload); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.RegisterReturnsUser {
		return c.JSON(http.StatusCreated, model.RegisterResponse{Detail: "compte en attente de validation"})
	}
	s.nextID++
	parts := strings.SplitN(payload.Name, " ", 2)
	user := model.APIUser{
		ID:     s.nextID,
		Prenom: parts[0],
		Email:  payload.Email,
		Tel:    payload.Telephone1,
		Profil: "client",
	}
	if len(parts) > 1 {
		user.Nom = parts[1]
	}
	s.Accounts[payload.Email] = user
	return c.JSON(http.StatusCreated, model.RegisterResponse{
		Detail: "compte créé",
		User:   &user,
		Token:  s.Token,
	})
}

func (s *Server) listUsers(c echo.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return c.JSON(http.StatusOK, s.Users)
}

func (s *Server) createUser(c echo.Context) error {
	var payload model.UserPayload
	if err := c.Bind(&payload); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	user := model.APIUser{
		ID:      s.nextID,
		Nom:     payload.Nom,
		Prenom:  payload.Prenom,
		Tel:     payload.Tel,
		Adresse: payload.Adresse,
		Email:   payload.Email,
		Profil:  payload.Profil,
	}
	s.Users = append(s.Users, user)
	return c.JSON(http.StatusCreated, user)
}

func (s *Server) updateUser(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var payload model.UserPayload
	if err := c.Bind(&payload); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	user := model.APIUser{
		ID:      id,
		Nom:     payload.Nom,
		Prenom:  payload.Prenom,
		Tel:     payload.Tel,
		Adresse: payload.Adresse,
		Email:   payload.Email,
		Profil:  payload.Profil,
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.Users {
		if s.Users[i].ID == id {
			s.Users[i] = user
			return c.JSON(http.StatusOK, user)
		}
	}
	return echo.NewHTTPError(http.StatusNotFound, "utilisateur introuvable")
}

func (s *Server) deleteUser(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.Users[:0]
	for _, user := range s.Users {
		if user.ID != id {
			kept = append(kept, user)
		}
	}
	s.Users = kept
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) notifications(c echo.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return c.JSON(http.StatusOK, s.NotificationCount)
}
