package util

import (
	"testing"
	"time"

	"fintrack-server/src/models"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNormalizeAmount(t *testing.T) {
	cases := []struct {
		category string
		amount   float64
		want     float64
	}{
		{"Revenue", 150, 150},
		{"Revenue", -150, 150},
		{"Expense", 150, -150},
		{"Expense", -150, -150},
		{"Transfer", -42, -42},
		{"Transfer", 42, 42},
		{"", 7, 7},
	}
	for _, tc := range cases {
		if got := NormalizeAmount(tc.category, tc.amount); got != tc.want {
			t.Fatalf("NormalizeAmount(%q, %v): expected %v, got %v", tc.category, tc.amount, tc.want, got)
		}
	}
}

func TestDeriveSummaryTotals(t *testing.T) {
	transactions := []models.Transaction{
		{ID: "1", Date: date(2024, time.January, 10), Amount: 500, Category: "Revenue", Status: "Completed"},
		{ID: "2", Date: date(2024, time.January, 20), Amount: -200, Category: "Expense", Status: "Completed"},
		{ID: "3", Date: date(2024, time.March, 5), Amount: 300, Category: "Revenue", Status: "Pending"},
		{ID: "4", Date: date(2024, time.March, 6), Amount: -100, Category: "Expense", Status: "Completed"},
		{ID: "5", Date: date(2024, time.April, 1), Amount: 999, Category: "Transfer", Status: "Completed"},
	}

	s := DeriveSummary(transactions)

	if s.Revenue != 800 {
		t.Fatalf("expected revenue 800, got %v", s.Revenue)
	}
	if s.Expenses != 300 {
		t.Fatalf("expected expenses 300, got %v", s.Expenses)
	}
	if s.Balance != 500 {
		t.Fatalf("expected balance 500, got %v", s.Balance)
	}
	if s.Savings != s.Balance {
		t.Fatalf("savings must track balance, got %v vs %v", s.Savings, s.Balance)
	}
}

func TestDeriveSummaryMonthlyBuckets(t *testing.T) {
	transactions := []models.Transaction{
		{ID: "1", Date: date(2024, time.January, 10), Amount: 500, Category: "Revenue"},
		{ID: "2", Date: date(2024, time.January, 20), Amount: -200, Category: "Expense"},
		{ID: "3", Date: date(2024, time.December, 5), Amount: 300, Category: "Revenue"},
	}

	s := DeriveSummary(transactions)

	if s.IncomeByMonth[0] != 500 {
		t.Fatalf("expected January income 500, got %v", s.IncomeByMonth[0])
	}
	if s.ExpensesByMonth[0] != 200 {
		t.Fatalf("expected January expenses 200, got %v", s.ExpensesByMonth[0])
	}
	if s.IncomeByMonth[11] != 300 {
		t.Fatalf("expected December income 300, got %v", s.IncomeByMonth[11])
	}
	for i := 1; i < 11; i++ {
		if s.IncomeByMonth[i] != 0 || s.ExpensesByMonth[i] != 0 {
			t.Fatalf("expected empty bucket for month %d", i+1)
		}
	}
}

func TestDeriveSummaryRecent(t *testing.T) {
	transactions := []models.Transaction{
		{ID: "old", Date: date(2023, time.June, 1), Amount: 10, Category: "Revenue"},
		{ID: "newest", Date: date(2024, time.May, 1), Amount: 10, Category: "Revenue"},
		{ID: "mid", Date: date(2024, time.January, 1), Amount: 10, Category: "Revenue"},
		{ID: "older", Date: date(2023, time.December, 1), Amount: 10, Category: "Revenue"},
	}

	s := DeriveSummary(transactions)

	if len(s.Recent) != 3 {
		t.Fatalf("expected 3 recent records, got %d", len(s.Recent))
	}
	want := []string{"newest", "mid", "older"}
	for i, id := range want {
		if s.Recent[i].ID != id {
			t.Fatalf("recent[%d]: expected %s, got %s", i, id, s.Recent[i].ID)
		}
	}
}

func TestDeriveSummaryEmpty(t *testing.T) {
	s := DeriveSummary(nil)
	if s.Balance != 0 || s.Revenue != 0 || s.Expenses != 0 || s.Savings != 0 {
		t.Fatalf("expected zero totals, got %+v", s)
	}
	if len(s.Recent) != 0 {
		t.Fatalf("expected no recent records, got %d", len(s.Recent))
	}
}
