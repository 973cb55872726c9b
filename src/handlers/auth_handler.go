package handlers

import (
	"encoding/json"
	"errors"
	db "fintrack-server/src/db/sql"
	"fintrack-server/src/models"
	"fintrack-server/src/util"
	"log"
	"net/http"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"
)

func Register(pool *pgxpool.Pool, jwtSecret []byte) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.RegisterRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Printf("ERROR: Failed to decode register request body: %v", err)
			writeMessage(w, http.StatusBadRequest, "invalid request")
			return
		}

		req.Name = strings.TrimSpace(req.Name)
		req.Email = strings.TrimSpace(req.Email)

		// Password policy gate runs before anything else, mirroring the
		// admission middleware it replaces.
		if req.Password == "" {
			writeErrorCode(w, http.StatusBadRequest, "Password is required", "PASSWORD_REQUIRED")
			return
		}
		strength := util.CheckPasswordStrength(req.Password)
		if !strength.IsValid {
			log.Printf("ERROR: Password rejected during registration - Email: %s, Score: %d/5", req.Email, strength.Score)
			writeJSON(w, http.StatusBadRequest, map[string]interface{}{
				"message": "Password does not meet strength requirements",
				"error":   "PASSWORD_TOO_WEAK",
				"details": map[string]interface{}{
					"score":        strength.Score,
					"feedback":     strength.Feedback,
					"requirements": strength.Requirements,
				},
			})
			return
		}

		if req.Name == "" || req.Email == "" {
			writeErrorCode(w, http.StatusBadRequest, "Name, email, and password are required", "MISSING_FIELDS")
			return
		}

		if !util.ValidateEmail(req.Email) {
			log.Printf("ERROR: Email validation failed during registration - Email: %s", req.Email)
			writeErrorCode(w, http.StatusBadRequest, "Please provide a valid email address", "INVALID_EMAIL")
			return
		}

		_, err := db.GetUserByEmail(r.Context(), pool, req.Email)
		if err == nil {
			log.Printf("ERROR: Registration failed - email already exists - Email: %s", req.Email)
			writeErrorCode(w, http.StatusBadRequest, "User with this email already exists", "USER_EXISTS")
			return
		}
		if !errors.Is(err, db.ErrUserNotFound) {
			log.Printf("ERROR: Failed to look up email %s: %v", req.Email, err)
			writeMessage(w, http.StatusInternalServerError, "Server error during registration")
			return
		}

		log.Printf("INFO: Registration password strength score: %d/5", strength.Score)

		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			log.Printf("ERROR: Failed to hash password for %s: %v", req.Email, err)
			writeMessage(w, http.StatusInternalServerError, "Server error during registration")
			return
		}

		user, err := db.CreateUser(r.Context(), pool, req.Name, req.Email, string(hashedPassword))
		if err != nil {
			// Two registrations can race past the lookup; the unique index
			// on email settles it.
			if strings.Contains(err.Error(), "duplicate key") {
				log.Printf("ERROR: Registration failed - email already exists - Email: %s", req.Email)
				writeErrorCode(w, http.StatusBadRequest, "User with this email already exists", "USER_EXISTS")
				return
			}
			log.Printf("ERROR: Failed to create user %s: %v", req.Email, err)
			writeMessage(w, http.StatusInternalServerError, "Server error during registration")
			return
		}

		token, err := util.IssueToken(jwtSecret, user.ID, user.Email)
		if err != nil {
			log.Printf("ERROR: Failed to generate JWT token for user %s: %v", user.ID, err)
			writeMessage(w, http.StatusInternalServerError, "Error generating token")
			return
		}

		log.Printf("INFO: Successful registration - Email: %s, ID: %s", user.Email, user.ID)

		writeJSON(w, http.StatusCreated, models.RegisterResponse{
			Message: "User registered successfully",
			Token:   token,
			User:    user.Public(),
		})
	}
}

func Login(pool *pgxpool.Pool, jwtSecret []byte) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var credentials models.LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&credentials); err != nil {
			log.Printf("ERROR: Failed to decode login request body: %v", err)
			writeMessage(w, http.StatusBadRequest, "invalid request")
			return
		}

		// Unknown email and wrong password produce the same response so the
		// two cases cannot be told apart from outside.
		user, err := db.GetUserByEmail(r.Context(), pool, strings.TrimSpace(credentials.Email))
		if err != nil {
			if errors.Is(err, db.ErrUserNotFound) {
				log.Printf("ERROR: Login attempt for unknown email %s from IP %s", credentials.Email, r.RemoteAddr)
				writeMessage(w, http.StatusUnauthorized, "Invalid credentials")
				return
			}
			log.Printf("ERROR: Failed to look up user during login - Email: %s: %v", credentials.Email, err)
			writeMessage(w, http.StatusInternalServerError, "Server error")
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(credentials.Password)); err != nil {
			log.Printf("ERROR: Invalid password attempt for email %s from IP %s", credentials.Email, r.RemoteAddr)
			writeMessage(w, http.StatusUnauthorized, "Invalid credentials")
			return
		}

		token, err := util.IssueToken(jwtSecret, user.ID, user.Email)
		if err != nil {
			log.Printf("ERROR: Failed to generate JWT token for user %s: %v", user.ID, err)
			writeMessage(w, http.StatusInternalServerError, "Error generating token")
			return
		}

		log.Printf("INFO: Successful login - Email: %s, ID: %s", user.Email, user.ID)

		writeJSON(w, http.StatusOK, models.LoginResponse{
			Message: "Login successful",
			Token:   token,
		})
	}
}
