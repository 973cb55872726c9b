package util

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenTTL is the fixed session token lifetime. Tokens are stateless and
// never revoked server-side; expiry is the only invalidation.
const TokenTTL = time.Hour

var ErrAuthHeaderMissing = errors.New("authorization header missing")

// IssueToken signs an HS256 session token carrying the user's id and email.
func IssueToken(secret []byte, userID, email string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":    userID,
		"email": email,
		"exp":   time.Now().Add(TokenTTL).Unix(),
	})
	return token.SignedString(secret)
}

// ParseTokenFromRequest extracts and validates the bearer token from the
// Authorization header, returning the claims if valid.
func ParseTokenFromRequest(r *http.Request, secret []byte) (jwt.MapClaims, error) {
	header := r.Header.Get("Authorization")
	if header == "" || !strings.HasPrefix(header, "Bearer ") {
		return nil, ErrAuthHeaderMissing
	}
	tokenString := strings.TrimPrefix(header, "Bearer ")

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("invalid signing method")
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("invalid token claims")
	}
	return claims, nil
}
