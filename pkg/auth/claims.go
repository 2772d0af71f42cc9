package auth

import "github.com/golang-jwt/jwt/v5"

// AccessTokenPayload captures the data available when minting a JWT.
type AccessTokenPayload struct {
	Email string
	JTI   string
}

// AccessTokenClaims is the bearer token presented by API callers. The email
// claim is resolved to a user id on every request.
type AccessTokenClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}
