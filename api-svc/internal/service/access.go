package service

import (
	"crypto/subtle"

	"foodmarket/api-svc/internal/domain"
)

// AccessGate guards the catalog-mutating endpoints with one shared operator
// secret. It is not user authentication.
type AccessGate struct {
	token string
}

func NewAccessGate(token string) *AccessGate {
	return &AccessGate{token: token}
}

// Check accepts a request token equal to the configured secret. An empty
// configured secret rejects everything.
func (g *AccessGate) Check(token string) error {
	if g.token == "" || token == "" {
		return domain.ErrUnauthorized
	}
	if subtle.ConstantTimeCompare([]byte(token), []byte(g.token)) != 1 {
		return domain.ErrUnauthorized
	}
	return nil
}

// Verify exchanges the admin password for the token clients send back in
// the X-Admin-Token header.
func (g *AccessGate) Verify(password string) (string, error) {
	if err := g.Check(password); err != nil {
		return "", err
	}
	return g.token, nil
}
