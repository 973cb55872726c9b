package models

// Summary holds the dashboard aggregates derived from a transaction set.
// Savings currently mirrors Balance; the fields are kept separate on the
// wire so the definitions can diverge without breaking clients.
type Summary struct {
	Balance         float64       `json:"balance"`
	Revenue         float64       `json:"revenue"`
	Expenses        float64       `json:"expenses"`
	Savings         float64       `json:"savings"`
	IncomeByMonth   [12]float64   `json:"income_by_month"`
	ExpensesByMonth [12]float64   `json:"expenses_by_month"`
	Recent          []Transaction `json:"recent"`
}
