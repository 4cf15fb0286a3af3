package auth

import (
	"github.com/golang-jwt/jwt/v5"
)

// AppMetadata is the server-controlled metadata Supabase embeds in tokens.
type AppMetadata struct {
	Provider string `json:"provider,omitempty"`
	Role     string `json:"role,omitempty"`
}

// AccessTokenClaims represents a Supabase access token. The user id is the
// subject claim.
type AccessTokenClaims struct {
	Email       string      `json:"email,omitempty"`
	Role        string      `json:"role,omitempty"`
	AppMetadata AppMetadata `json:"app_metadata"`
	jwt.RegisteredClaims
}

// AccessTokenPayload captures the data available when minting a token for
// local development and tests.
type AccessTokenPayload struct {
	Subject   string
	Email     string
	AdminRole string
}
