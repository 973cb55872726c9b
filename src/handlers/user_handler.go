package handlers

import (
	"errors"
	db "fintrack-server/src/db/sql"
	"log"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Me returns the public view of the authenticated user, resolved from the
// verified token claims on the request context.
func Me(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, _ := r.Context().Value("user_id").(string)
		if userID == "" {
			writeMessage(w, http.StatusUnauthorized, "Invalid or expired token")
			return
		}

		user, err := db.GetUserByID(r.Context(), pool, userID)
		if err != nil {
			if errors.Is(err, db.ErrUserNotFound) {
				writeMessage(w, http.StatusNotFound, "User not found")
				return
			}
			log.Printf("ERROR: Failed to fetch user %s: %v", userID, err)
			writeMessage(w, http.StatusInternalServerError, "Server error")
			return
		}

		writeJSON(w, http.StatusOK, user.Public())
	}
}
