package util

import (
	"math"
	"sort"

	"fintrack-server/src/models"
)

// NormalizeAmount forces the sign implied by the category: Revenue amounts
// are stored non-negative, Expense amounts non-positive. Other categories
// keep the amount as supplied.
func NormalizeAmount(category string, amount float64) float64 {
	switch category {
	case "Revenue":
		return math.Abs(amount)
	case "Expense":
		return -math.Abs(amount)
	}
	return amount
}

// DeriveSummary computes the dashboard aggregates from a transaction set:
// revenue and expense totals as absolute sums, the resulting balance,
// per-calendar-month income/expense buckets, and the 3 most recent records
// by date.
func DeriveSummary(transactions []models.Transaction) models.Summary {
	var s models.Summary

	for _, t := range transactions {
		month := int(t.Date.Month()) - 1
		switch t.Category {
		case "Revenue":
			s.Revenue += math.Abs(t.Amount)
			s.IncomeByMonth[month] += math.Abs(t.Amount)
		case "Expense":
			s.Expenses += math.Abs(t.Amount)
			s.ExpensesByMonth[month] += math.Abs(t.Amount)
		}
	}

	s.Balance = s.Revenue - s.Expenses
	// Savings has no definition of its own yet; it tracks the balance.
	s.Savings = s.Balance

	recent := make([]models.Transaction, len(transactions))
	copy(recent, transactions)
	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].Date.After(recent[j].Date)
	})
	if len(recent) > 3 {
		recent = recent[:3]
	}
	s.Recent = recent

	return s
}
