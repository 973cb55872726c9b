package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"fintrack-server/src/util"
)

// JWTAuthMiddleware validates the bearer token and places the decoded
// claims on the request context. A missing header is 401; a token that
// fails the signature or expiry check is 403.
func JWTAuthMiddleware(secret []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, err := util.ParseTokenFromRequest(r, secret)
			if err != nil {
				if errors.Is(err, util.ErrAuthHeaderMissing) {
					writeAuthError(w, http.StatusUnauthorized, "Authorization header missing")
				} else {
					writeAuthError(w, http.StatusForbidden, "Invalid or expired token")
				}
				return
			}

			userID, _ := claims["id"].(string)
			email, _ := claims["email"].(string)

			ctx := context.WithValue(r.Context(), "user_id", userID)
			ctx = context.WithValue(ctx, "email", email)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func writeAuthError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"message": message})
}
