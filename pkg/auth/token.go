package auth

import (
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/yukselticaret/trendyshop-backend/pkg/config"
)

var jwtSigningMethod = jwt.SigningMethodHS256

const (
	authenticatedRole = "authenticated"
	clockLeeway       = 30 * time.Second
)

// MintAccessToken signs a Supabase-shaped token with the project secret.
// Production tokens come from Supabase Auth; this exists for local runs and
// tests.
func MintAccessToken(cfg config.SupabaseConfig, now time.Time, ttl time.Duration, payload AccessTokenPayload) (string, error) {
	if cfg.JWTSecret == "" {
		return "", fmt.Errorf("jwt secret is required")
	}
	if ttl <= 0 {
		return "", fmt.Errorf("token ttl must be positive")
	}
	if _, err := uuid.Parse(payload.Subject); err != nil {
		return "", fmt.Errorf("subject must be a uuid: %w", err)
	}

	claims := AccessTokenClaims{
		Email:       payload.Email,
		Role:        authenticatedRole,
		AppMetadata: AppMetadata{Provider: "email", Role: payload.AdminRole},
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   payload.Subject,
			Issuer:    cfg.Issuer(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        uuid.NewString(),
		},
	}
	if cfg.Audience != "" {
		claims.Audience = jwt.ClaimStrings{cfg.Audience}
	}

	signed, err := jwt.NewWithClaims(jwtSigningMethod, claims).SignedString([]byte(cfg.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("signing jwt: %w", err)
	}
	return signed, nil
}

// ParseAccessToken validates a Supabase access token and returns its claims.
// Audience and issuer are enforced when configured.
func ParseAccessToken(cfg config.SupabaseConfig, tokenString string) (*AccessTokenClaims, error) {
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("jwt secret is required")
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwtSigningMethod.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(clockLeeway),
	}
	if cfg.Audience != "" {
		opts = append(opts, jwt.WithAudience(cfg.Audience))
	}
	if issuer := cfg.Issuer(); issuer != "" {
		opts = append(opts, jwt.WithIssuer(issuer))
	}

	claims := &AccessTokenClaims{}
	_, err := jwt.ParseWithClaims(
		strings.TrimSpace(tokenString),
		claims,
		func(token *jwt.Token) (interface{}, error) {
			if token.Method != jwtSigningMethod {
				return nil, fmt.Errorf("unexpected signing method %s", token.Header["alg"])
			}
			return []byte(cfg.JWTSecret), nil
		},
		opts...,
	)
	if err != nil {
		return nil, err
	}
	if _, err := claims.UserID(); err != nil {
		return nil, err
	}
	return claims, nil
}

// UserID parses the subject claim.
func (c *AccessTokenClaims) UserID() (uuid.UUID, error) {
	id, err := uuid.Parse(c.Subject)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid subject claim: %w", err)
	}
	return id, nil
}

// HasRole reports whether app_metadata.role matches role.
func (c *AccessTokenClaims) HasRole(role string) bool {
	return role != "" && strings.EqualFold(c.AppMetadata.Role, role)
}
