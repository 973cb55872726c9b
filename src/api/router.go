package api

import (
	"fintrack-server/src/config"
	"fintrack-server/src/events"
	"fintrack-server/src/handlers"
	"fintrack-server/src/middleware"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRouter(pool *pgxpool.Pool, publisher *events.Publisher, cfg config.Config) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.CORSMiddleware(cfg.CORSOrigin))
	r.Use(middleware.DemoModeMiddleware(cfg.DemoMode))

	jwtSecret := []byte(cfg.JWTSecret)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", handlers.Register(pool, jwtSecret))
			r.Post("/login", handlers.Login(pool, jwtSecret))
			r.With(middleware.JWTAuthMiddleware(jwtSecret)).Get("/me", handlers.Me(pool))
		})

		// Transaction routes accept unauthenticated access, matching the
		// published interface. Wrap the group with JWTAuthMiddleware to
		// protect them for a deployment that wants it.
		r.Route("/transactions", func(r chi.Router) {
			r.Get("/", handlers.GetAllTransactions(pool))
			r.Get("/filter", handlers.FilterTransactions(pool))
			r.Get("/summary", handlers.GetTransactionSummary(pool))
			r.Get("/{id}", handlers.GetTransactionByID(pool))
			r.Post("/", handlers.CreateTransaction(pool, publisher))
			r.Put("/{id}", handlers.UpdateTransaction(pool, publisher))
			r.Delete("/{id}", handlers.DeleteTransaction(pool, publisher))
		})
	})

	return r
}
