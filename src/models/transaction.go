package models

import "time"

type Transaction struct {
	ID       string    `json:"id"`
	Date     time.Time `json:"date"`
	Amount   float64   `json:"amount"`
	Category string    `json:"category"`
	Status   string    `json:"status"`
	UserID   string    `json:"user_id"`
}

type CreateTransactionRequest struct {
	Date     string  `json:"date"`
	Amount   float64 `json:"amount"`
	Category string  `json:"category"`
	Status   string  `json:"status"`
	UserID   string  `json:"user_id"`
}

// UpdateTransactionRequest carries a partial patch; nil fields leave the
// stored column untouched.
type UpdateTransactionRequest struct {
	Date     *string  `json:"date"`
	Amount   *float64 `json:"amount"`
	Category *string  `json:"category"`
	Status   *string  `json:"status"`
	UserID   *string  `json:"user_id"`
}

// TransactionPatch is the parsed form of an update request handed to the
// query layer.
type TransactionPatch struct {
	Date     *time.Time
	Amount   *float64
	Category *string
	Status   *string
	UserID   *string
}

type TransactionPage struct {
	Transactions []Transaction `json:"transactions"`
	Total        int           `json:"total"`
	Page         int           `json:"page"`
	Limit        int           `json:"limit"`
}
