package db

import (
	"context"
	"errors"
	"fintrack-server/src/db"
	"fintrack-server/src/models"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrTransactionNotFound = errors.New("transaction not found")

// TransactionFilter selects transactions by exact match on each non-empty
// field; an empty field matches everything.
type TransactionFilter struct {
	UserID   string
	Category string
	Status   string
}

type transactionPage struct {
	Transactions []models.Transaction
	Total        int
}

// buildTransactionFilter produces the WHERE clause and its arguments. The
// count query and the page query both run through it, so total and page
// can never disagree on the predicate.
func buildTransactionFilter(f TransactionFilter) (string, []interface{}) {
	var clauses []string
	var args []interface{}

	if f.UserID != "" {
		args = append(args, f.UserID)
		clauses = append(clauses, fmt.Sprintf("user_id = $%d", len(args)))
	}
	if f.Category != "" {
		args = append(args, f.Category)
		clauses = append(clauses, fmt.Sprintf("category = $%d", len(args)))
	}
	if f.Status != "" {
		args = append(args, f.Status)
		clauses = append(clauses, fmt.Sprintf("status = $%d", len(args)))
	}

	if len(clauses) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

func scanTransactions(rows pgx.Rows) ([]models.Transaction, error) {
	defer rows.Close()

	var transactions []models.Transaction
	for rows.Next() {
		var t models.Transaction
		err := rows.Scan(&t.ID, &t.Date, &t.Amount, &t.Category, &t.Status, &t.UserID)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, t)
	}
	return transactions, rows.Err()
}

// GetTransactions returns every transaction matching the filter, newest
// first, without pagination. Results are cached until the next write.
func GetTransactions(ctx context.Context, pool *pgxpool.Pool, f TransactionFilter) ([]models.Transaction, error) {
	cacheKey := fmt.Sprintf("transactions:list:%s:%s:%s", f.UserID, f.Category, f.Status)
	if cached, ok := db.Cache.Get(cacheKey); ok {
		if transactions, ok := cached.([]models.Transaction); ok {
			return transactions, nil
		}
	}

	where, args := buildTransactionFilter(f)
	query := `
		SELECT id, date, amount, category, status, user_id
		FROM transactions` + where + `
		ORDER BY date DESC
	`
	rows, err := pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query error: %w", err)
	}
	transactions, err := scanTransactions(rows)
	if err != nil {
		return nil, err
	}

	db.SetTransactionCache(cacheKey, transactions)
	return transactions, nil
}

// FilterTransactions returns one page of matches plus the pre-pagination
// total for the same predicate.
func FilterTransactions(ctx context.Context, pool *pgxpool.Pool, f TransactionFilter, page, limit int) ([]models.Transaction, int, error) {
	cacheKey := fmt.Sprintf("transactions:filter:%s:%s:%s:%d:%d", f.UserID, f.Category, f.Status, page, limit)
	if cached, ok := db.Cache.Get(cacheKey); ok {
		if result, ok := cached.(transactionPage); ok {
			return result.Transactions, result.Total, nil
		}
	}

	where, args := buildTransactionFilter(f)

	var total int
	countQuery := `SELECT COUNT(*) FROM transactions` + where
	if err := pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count error: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT id, date, amount, category, status, user_id
		FROM transactions%s
		ORDER BY date DESC
		LIMIT $%d OFFSET $%d
	`, where, len(args)+1, len(args)+2)
	args = append(args, limit, (page-1)*limit)

	rows, err := pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("query error: %w", err)
	}
	transactions, err := scanTransactions(rows)
	if err != nil {
		return nil, 0, err
	}

	db.SetTransactionCache(cacheKey, transactionPage{Transactions: transactions, Total: total})
	return transactions, total, nil
}

func GetTransactionByID(ctx context.Context, pool *pgxpool.Pool, id string) (*models.Transaction, error) {
	var t models.Transaction
	query := `
		SELECT id, date, amount, category, status, user_id
		FROM transactions
		WHERE id = $1
	`
	err := pool.QueryRow(ctx, query, id).Scan(&t.ID, &t.Date, &t.Amount, &t.Category, &t.Status, &t.UserID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrTransactionNotFound
		}
		return nil, fmt.Errorf("query error: %w", err)
	}
	return &t, nil
}

// CreateTransaction persists t with a generated id. The caller is expected
// to have sign-normalized the amount already.
func CreateTransaction(ctx context.Context, pool *pgxpool.Pool, t models.Transaction) (*models.Transaction, error) {
	t.ID = uuid.NewString()
	query := `
		INSERT INTO transactions (id, date, amount, category, status, user_id)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := pool.Exec(ctx, query, t.ID, t.Date, t.Amount, t.Category, t.Status, t.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	db.ClearAllTransactionCaches()
	return &t, nil
}

// UpdateTransaction merges a partial patch; nil fields keep the stored
// column via COALESCE. Returns the post-update record.
func UpdateTransaction(ctx context.Context, pool *pgxpool.Pool, id string, patch models.TransactionPatch) (*models.Transaction, error) {
	query := `
		UPDATE transactions
		SET date = COALESCE($1, date),
		    amount = COALESCE($2, amount),
		    category = COALESCE($3, category),
		    status = COALESCE($4, status),
		    user_id = COALESCE($5, user_id)
		WHERE id = $6
		RETURNING id, date, amount, category, status, user_id
	`
	var t models.Transaction
	err := pool.QueryRow(ctx, query, patch.Date, patch.Amount, patch.Category, patch.Status, patch.UserID, id).
		Scan(&t.ID, &t.Date, &t.Amount, &t.Category, &t.Status, &t.UserID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrTransactionNotFound
		}
		return nil, fmt.Errorf("failed to update transaction: %w", err)
	}

	db.ClearAllTransactionCaches()
	return &t, nil
}

func DeleteTransaction(ctx context.Context, pool *pgxpool.Pool, id string) error {
	query := `DELETE FROM transactions WHERE id = $1`
	cmd, err := pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrTransactionNotFound
	}

	db.ClearAllTransactionCaches()
	return nil
}
