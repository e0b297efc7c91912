package issuer

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// expiryFromClaims decodes the exp claim from a JWT access token without
// verifying its signature. The token is only being timed, not trusted:
// signature verification is the backend's concern, this process merely
// needs to know when to stop reusing the value.
//
// Returns false for opaque tokens, tokens without an exp claim, or tokens
// that fail to parse.
func expiryFromClaims(tokenString string) (time.Time, bool) {
	parser := jwt.NewParser(jwt.WithoutClaimsValidation())

	token, _, err := parser.ParseUnverified(tokenString, jwt.MapClaims{})
	if err != nil {
		return time.Time{}, false
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return time.Time{}, false
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}

	return exp.Time, true
}
