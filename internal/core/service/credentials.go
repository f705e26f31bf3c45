package service

import (
	"context"

	"github.com/inkwell/blog-system/internal/core/domain"
)

// DefaultAccounts are the demo credentials the blog ships with.
var DefaultAccounts = []domain.Account{
	{User: domain.User{ID: "1", Username: "eldhose", Email: "eldhose@example.com"}, Password: "password123"},
	{User: domain.User{ID: "2", Username: "aleena", Email: "aleena@example.com"}, Password: "password123"},
}

// StaticVerifier matches credentials against a fixed in-memory list using a
// plain comparison of email and password.
type StaticVerifier struct {
	accounts []domain.Account
}

func NewStaticVerifier(accounts []domain.Account) *StaticVerifier {
	return &StaticVerifier{accounts: accounts}
}

func (v *StaticVerifier) Verify(_ context.Context, email, password string) (*domain.User, error) {
	for _, a := range v.accounts {
		if a.Email == email && a.Password == password {
			u := a.User
			return &u, nil
		}
	}
	return nil, domain.ErrInvalidCredentials
}
