package auth

import (
	"context"
	"crypto/subtle"
	"errors"

	"github.com/storefront/backend/internal/infrastructure/config"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is returned for any failed login
var ErrInvalidCredentials = errors.New("invalid username or password")

// AdminAuthenticator checks the configured administrator credentials and
// issues tokens. The password is stored only as a bcrypt hash.
type AdminAuthenticator struct {
	username     string
	passwordHash []byte
	tokens       *JWTService
	blacklist    TokenBlacklist
}

// NewAdminAuthenticator creates an authenticator for the configured admin
func NewAdminAuthenticator(cfg config.AdminConfig, tokens *JWTService, blacklist TokenBlacklist) *AdminAuthenticator {
	return &AdminAuthenticator{
		username:     cfg.Username,
		passwordHash: []byte(cfg.PasswordHash),
		tokens:       tokens,
		blacklist:    blacklist,
	}
}

// Login verifies the credentials and returns an admin token
func (a *AdminAuthenticator) Login(_ context.Context, username, password string) (*Token, error) {
	if len(a.passwordHash) == 0 {
		return nil, ErrInvalidCredentials
	}
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(a.username)) == 1
	// Always run bcrypt so timing does not reveal whether the username matched
	passErr := bcrypt.CompareHashAndPassword(a.passwordHash, []byte(password))
	if !userOK || passErr != nil {
		return nil, ErrInvalidCredentials
	}
	return a.tokens.Issue(a.username, RoleAdmin)
}

// Authenticate validates a bearer token and rejects revoked ones
func (a *AdminAuthenticator) Authenticate(ctx context.Context, token string) (*Claims, error) {
	claims, err := a.tokens.Validate(token)
	if err != nil {
		return nil, err
	}
	if a.blacklist != nil {
		revoked, err := a.blacklist.IsRevoked(ctx, claims.ID)
		if err != nil {
			return nil, err
		}
		if revoked {
			return nil, ErrTokenRevoked
		}
	}
	return claims, nil
}

// Logout revokes the token described by claims for the rest of its lifetime
func (a *AdminAuthenticator) Logout(ctx context.Context, claims *Claims) error {
	if a.blacklist == nil {
		return nil
	}
	return a.blacklist.Revoke(ctx, claims.ID, claims.RemainingTTL())
}

// HashPassword returns a bcrypt hash suitable for admin.password_hash
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
