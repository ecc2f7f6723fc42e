package dto

import (
	"github.com/shopspring/decimal"
)

// Amounts are decimal.Decimal so both JSON numbers and numeric strings decode.
// A missing or empty-string amount decodes as zero.

// ChildRecord is an item of GET /api/children and the "child" part of a detail.
type ChildRecord struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	DateOfBirth string `json:"dateOfBirth"`
	PhotoURL    string `json:"photoUrl,omitempty"`
}

type GoalRecord struct {
	GoalType            string          `json:"goalType"`
	TargetAmount        decimal.Decimal `json:"targetAmount"`
	TargetDate          string          `json:"targetDate"`
	MonthlyContribution decimal.Decimal `json:"monthlyContribution"`
	Paused              bool            `json:"paused"`
	CreatedAt           string          `json:"createdAt,omitempty"`
}

type TransactionRecord struct {
	ID     string          `json:"id"`
	Amount decimal.Decimal `json:"amount"`
	Type   string          `json:"type,omitempty"`
	Date   string          `json:"date"`
}

type InvestmentRecord struct {
	PortfolioType        string          `json:"portfolioType"`
	AllocationPercentage decimal.Decimal `json:"allocationPercentage"`
	CurrentValue         decimal.Decimal `json:"currentValue"`
	LastUpdated          string          `json:"lastUpdated,omitempty"`
}

type DirectiveRecord struct {
	GuardianName    string `json:"guardianName"`
	GuardianContact string `json:"guardianContact"`
	Instructions    string `json:"instructions"`
	LastUpdated     string `json:"lastUpdated,omitempty"`
}

// ChildDetail is the body of GET /api/children/{id} and GET /api/me/goal.
// The latter is an empty object when the caller has no linked goal, which
// decodes with a nil Child.
type ChildDetail struct {
	Child               *ChildRecord        `json:"child,omitempty"`
	Goal                *GoalRecord         `json:"goal,omitempty"`
	Transactions        []TransactionRecord `json:"transactions,omitempty"`
	SavingsBalance      decimal.Decimal     `json:"savingsBalance"`
	Investment          *InvestmentRecord   `json:"investment,omitempty"`
	FundDirective       *DirectiveRecord    `json:"fundDirective,omitempty"`
	MonthsRemaining     *int                `json:"monthsRemaining,omitempty"`
	ProjectedCompletion *string             `json:"projectedCompletion,omitempty"`
}

// IsEmpty reports whether the detail carries no child.
func (d ChildDetail) IsEmpty() bool {
	return d.Child == nil
}
