package domain

import "errors"

var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrUnauthenticated = errors.New("authentication required")

// User models an authenticated author. It is also the snapshot embedded in
// every post, so its JSON shape is part of the persisted format.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Account is a credential record known to a verifier. The password is never
// serialized.
type Account struct {
	User
	Password string `json:"-"`
}

// Session pairs a user with the bearer token issued at login or registration.
type Session struct {
	Token string
	User  User
}
