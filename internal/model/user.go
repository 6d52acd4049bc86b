package model

import "strings"

// superadminFlag is the sentinel value marking an admin session.
const superadminFlag = "1"

// User is the application's representation of an account. A zero ID means
// the backend never assigned one.
type User struct {
	ID              int    `json:"id"`
	Name            string `json:"name"`
	Telephone1      string `json:"telephone1"`
	Telephone2      string `json:"telephone2"`
	BP              string `json:"bp"`
	Email           string `json:"email"`
	BirthDate       string `json:"date_naissance"`
	Gender          string `json:"sexe"`
	Address         string `json:"adresse"`
	Photo           string `json:"photo"`
	Sigle           string `json:"sigle"`
	IsSuperadmin    string `json:"is_superadmin"`
	Token           string `json:"token"`
	VerifiedAccount bool   `json:"verifiedAccount"`
}

// IsAdmin reports whether the user carries the admin role sentinel.
// A nil user is never admin.
func (u *User) IsAdmin() bool {
	return u != nil && u.IsSuperadmin == superadminFlag
}

// APIUser is the backend's wire representation of an account.
type APIUser struct {
	ID      int    `json:"id,omitempty"`
	Nom     string `json:"nom"`
	Prenom  string `json:"prenom"`
	Tel     string `json:"tel"`
	Adresse string `json:"adresse"`
	Email   string `json:"email"`
	Profil  string `json:"profil"`
}

// LoginResponse is the backend's reply to POST /api/login.
type LoginResponse struct {
	Detail string  `json:"detail"`
	User   APIUser `json:"user"`
	Token  string  `json:"token,omitempty"`
}

// RegisterResponse is the backend's reply to POST /auth/register. The user
// is optional: some deployments require account validation before login.
type RegisterResponse struct {
	Detail string   `json:"detail"`
	User   *APIUser `json:"user,omitempty"`
	Token  string   `json:"token,omitempty"`
}

// UserFromAPI converts a backend account into the app shape. The display
// name joins first and last name; the admin sentinel derives from profil.
func UserFromAPI(api APIUser, token string) User {
	isSuperadmin := "0"
	if api.Profil == "admin" {
		isSuperadmin = superadminFlag
	}
	return User{
		ID:              api.ID,
		Name:            strings.TrimSpace(api.Prenom + " " + api.Nom),
		Telephone1:      api.Tel,
		Email:           api.Email,
		Address:         api.Adresse,
		IsSuperadmin:    isSuperadmin,
		Token:           token,
		VerifiedAccount: true,
	}
}

// Credentials is the login payload.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterPayload is the self-service registration payload.
type RegisterPayload struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	Telephone1 string `json:"telephone1,omitempty"`
}

// UserPayload is the admin create/update payload, sent in the backend's
// field naming.
type UserPayload struct {
	ID       int    `json:"id,omitempty"`
	Nom      string `json:"nom"`
	Prenom   string `json:"prenom"`
	Email    string `json:"email"`
	Tel      string `json:"tel"`
	Adresse  string `json:"adresse"`
	Profil   string `json:"profil"`
	Password string `json:"password,omitempty"`
}
