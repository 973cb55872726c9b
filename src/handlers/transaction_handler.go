package handlers

import (
	"encoding/json"
	"errors"
	db "fintrack-server/src/db/sql"
	"fintrack-server/src/events"
	"fintrack-server/src/models"
	"fintrack-server/src/util"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var dateLayouts = []string{"2006-01-02", time.RFC3339}

func parseDate(value string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", value)
}

func GetAllTransactions(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		transactions, err := db.GetTransactions(r.Context(), pool, db.TransactionFilter{})
		if err != nil {
			log.Printf("ERROR: Failed to fetch transactions: %v", err)
			writeMessage(w, http.StatusInternalServerError, "Server error")
			return
		}
		if transactions == nil {
			transactions = []models.Transaction{}
		}
		writeJSON(w, http.StatusOK, transactions)
	}
}

func FilterTransactions(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()

		page := 1
		if raw := q.Get("page"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil || parsed < 1 {
				writeMessage(w, http.StatusBadRequest, "invalid page parameter")
				return
			}
			page = parsed
		}

		limit := 20
		if raw := q.Get("limit"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil || parsed < 1 {
				writeMessage(w, http.StatusBadRequest, "invalid limit parameter")
				return
			}
			limit = parsed
		}

		filter := db.TransactionFilter{
			UserID:   q.Get("user_id"),
			Category: q.Get("category"),
			Status:   q.Get("status"),
		}

		transactions, total, err := db.FilterTransactions(r.Context(), pool, filter, page, limit)
		if err != nil {
			log.Printf("ERROR: Failed to filter transactions: %v", err)
			writeMessage(w, http.StatusInternalServerError, "Server error")
			return
		}
		if transactions == nil {
			transactions = []models.Transaction{}
		}

		writeJSON(w, http.StatusOK, models.TransactionPage{
			Transactions: transactions,
			Total:        total,
			Page:         page,
			Limit:        limit,
		})
	}
}

// GetTransactionSummary serves the dashboard aggregates the SPA used to
// compute client-side; derivation stays a pure function over the result set.
func GetTransactionSummary(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.URL.Query().Get("user_id")

		transactions, err := db.GetTransactions(r.Context(), pool, db.TransactionFilter{UserID: userID})
		if err != nil {
			log.Printf("ERROR: Failed to fetch transactions for summary: %v", err)
			writeMessage(w, http.StatusInternalServerError, "Server error")
			return
		}

		writeJSON(w, http.StatusOK, util.DeriveSummary(transactions))
	}
}

func GetTransactionByID(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		transaction, err := db.GetTransactionByID(r.Context(), pool, id)
		if err != nil {
			if errors.Is(err, db.ErrTransactionNotFound) {
				writeMessage(w, http.StatusNotFound, "Transaction not found")
				return
			}
			log.Printf("ERROR: Failed to fetch transaction %s: %v", id, err)
			writeMessage(w, http.StatusInternalServerError, "Server error")
			return
		}
		writeJSON(w, http.StatusOK, transaction)
	}
}

func CreateTransaction(pool *pgxpool.Pool, publisher *events.Publisher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.CreateTransactionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Printf("ERROR: Failed to decode create transaction request body: %v", err)
			writeMessage(w, http.StatusBadRequest, "invalid request")
			return
		}

		date, err := parseDate(req.Date)
		if err != nil {
			writeMessage(w, http.StatusBadRequest, "invalid date format, expected YYYY-MM-DD")
			return
		}

		transaction := models.Transaction{
			Date:     date,
			Amount:   util.NormalizeAmount(req.Category, req.Amount),
			Category: req.Category,
			Status:   req.Status,
			UserID:   req.UserID,
		}

		created, err := db.CreateTransaction(r.Context(), pool, transaction)
		if err != nil {
			log.Printf("ERROR: Failed to create transaction: %v", err)
			writeMessage(w, http.StatusInternalServerError, "Server error")
			return
		}

		if err := publisher.TransactionCreated(r.Context(), created.ID); err != nil {
			log.Printf("ERROR: Failed to publish transaction.created for %s: %v", created.ID, err)
		}

		log.Printf("INFO: Created transaction %s, category %s", created.ID, created.Category)
		writeJSON(w, http.StatusCreated, created)
	}
}

func UpdateTransaction(pool *pgxpool.Pool, publisher *events.Publisher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		var req models.UpdateTransactionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Printf("ERROR: Failed to decode update transaction request body: %v", err)
			writeMessage(w, http.StatusBadRequest, "invalid request")
			return
		}

		patch := models.TransactionPatch{
			Amount:   req.Amount,
			Category: req.Category,
			Status:   req.Status,
			UserID:   req.UserID,
		}
		if req.Date != nil {
			date, err := parseDate(*req.Date)
			if err != nil {
				writeMessage(w, http.StatusBadRequest, "invalid date format, expected YYYY-MM-DD")
				return
			}
			patch.Date = &date
		}
		// Sign normalization keys off the category in the patch, same as on
		// create; a patch that changes only the amount keeps its sign.
		if req.Category != nil && req.Amount != nil {
			normalized := util.NormalizeAmount(*req.Category, *req.Amount)
			patch.Amount = &normalized
		}

		updated, err := db.UpdateTransaction(r.Context(), pool, id, patch)
		if err != nil {
			if errors.Is(err, db.ErrTransactionNotFound) {
				writeMessage(w, http.StatusNotFound, "Transaction not found")
				return
			}
			log.Printf("ERROR: Failed to update transaction %s: %v", id, err)
			writeMessage(w, http.StatusInternalServerError, "Server error")
			return
		}

		if err := publisher.TransactionUpdated(r.Context(), updated.ID); err != nil {
			log.Printf("ERROR: Failed to publish transaction.updated for %s: %v", updated.ID, err)
		}

		log.Printf("INFO: Updated transaction %s", updated.ID)
		writeJSON(w, http.StatusOK, updated)
	}
}

func DeleteTransaction(pool *pgxpool.Pool, publisher *events.Publisher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		if err := db.DeleteTransaction(r.Context(), pool, id); err != nil {
			if errors.Is(err, db.ErrTransactionNotFound) {
				writeMessage(w, http.StatusNotFound, "Transaction not found")
				return
			}
			log.Printf("ERROR: Failed to delete transaction %s: %v", id, err)
			writeMessage(w, http.StatusInternalServerError, "Server error")
			return
		}

		if err := publisher.TransactionDeleted(r.Context(), id); err != nil {
			log.Printf("ERROR: Failed to publish transaction.deleted for %s: %v", id, err)
		}

		log.Printf("INFO: Deleted transaction %s", id)
		writeMessage(w, http.StatusOK, "Transaction deleted")
	}
}
