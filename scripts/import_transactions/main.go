// Seed importer: loads a transactions JSON file into the database,
// replacing whatever is there. Usage:
//
//	go run ./scripts/import_transactions [path/to/transactions.json]
package main

import (
	"context"
	"encoding/json"
	"fintrack-server/src/db"
	"fintrack-server/src/util"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/joho/godotenv"
)

type seedTransaction struct {
	ID       string  `json:"id"`
	Date     string  `json:"date"`
	Amount   float64 `json:"amount"`
	Category string  `json:"category"`
	Status   string  `json:"status"`
	UserID   string  `json:"user_id"`
}

var dateLayouts = []string{"2006-01-02", time.RFC3339}

func parseDate(value string) (time.Time, error) {
	var t time.Time
	var err error
	for _, layout := range dateLayouts {
		if t, err = time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, err
}

func main() {
	_ = godotenv.Load()

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		log.Fatal("DATABASE_URL is required")
	}

	path := "transactions.json"
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	data, err := os.ReadFile(path)
	if err != nil {
		log.Fatalf("Failed to read %s: %v", path, err)
	}

	var records []seedTransaction
	if err := json.Unmarshal(data, &records); err != nil {
		log.Fatalf("Failed to parse %s: %v", path, err)
	}

	ctx := context.Background()
	pool, err := db.Connect(ctx, databaseURL)
	if err != nil {
		log.Fatalf("DB connection failed: %v", err)
	}
	defer pool.Close()

	if err := db.RunMigrations(databaseURL); err != nil {
		log.Fatalf("Migrations failed: %v", err)
	}

	rows := make([][]interface{}, 0, len(records))
	for i, rec := range records {
		date, err := parseDate(rec.Date)
		if err != nil {
			log.Fatalf("Record %d has invalid date %q: %v", i, rec.Date, err)
		}
		id := rec.ID
		if id == "" {
			id = uuid.NewString()
		}
		// Imported rows go through the same sign normalization as the API.
		amount := util.NormalizeAmount(rec.Category, rec.Amount)
		rows = append(rows, []interface{}{id, date, amount, rec.Category, rec.Status, rec.UserID})
	}

	if _, err := pool.Exec(ctx, "TRUNCATE transactions"); err != nil {
		log.Fatalf("Failed to clear transactions: %v", err)
	}

	count, err := pool.CopyFrom(
		ctx,
		pgx.Identifier{"transactions"},
		[]string{"id", "date", "amount", "category", "status", "user_id"},
		pgx.CopyFromRows(rows),
	)
	if err != nil {
		log.Fatalf("Failed to import transactions: %v", err)
	}

	log.Printf("Imported %d transactions from %s", count, path)
}
