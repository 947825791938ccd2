package config

import (
	"fmt"
	"os"

	"golang.org/x/crypto/bcrypt"
)

// AuthConfig holds password hashing and JWT settings.
type AuthConfig struct {
	BcryptCost      int
	JWTSecret       string
	ExpirationHours int
}

// NewAuthConfig reads auth settings from the environment. JWT_SECRET is
// required; BCRYPT_COST defaults to 12 and JWT_EXPIRATION_HOURS to 24.
func NewAuthConfig() (*AuthConfig, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required but not set")
	}

	cost, err := getenvInt("BCRYPT_COST", 12)
	if err != nil {
		return nil, err
	}
	if cost < 10 || cost > 14 {
		return nil, fmt.Errorf("bcrypt cost out of range: %d (must be 10-14)", cost)
	}

	hours, err := getenvInt("JWT_EXPIRATION_HOURS", 24)
	if err != nil {
		return nil, err
	}
	if hours < 1 {
		return nil, fmt.Errorf("JWT_EXPIRATION_HOURS must be at least 1, got %d", hours)
	}

	return &AuthConfig{BcryptCost: cost, JWTSecret: secret, ExpirationHours: hours}, nil
}

// HashPassword hashes a password with bcrypt at the configured cost.
func (c *AuthConfig) HashPassword(pw string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(pw), c.BcryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// VerifyPassword checks a password against a stored bcrypt hash.
func (c *AuthConfig) VerifyPassword(pw, storedHash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(pw)) == nil
}
