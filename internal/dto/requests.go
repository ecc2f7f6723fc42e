package dto

import (
	"github.com/shopspring/decimal"
)

// ChildRequest is the body of POST /api/children and PUT /api/children/{id}.
// Updates always resend every field.
type ChildRequest struct {
	Name        string `json:"name" validate:"required"`
	DateOfBirth string `json:"dateOfBirth" validate:"required,datetime=2006-01-02"`
	PhotoURL    string `json:"photoUrl"`
}

// GoalRequest is the body of POST /api/children/{id}/goal. A nil
// MonthlyContribution asks the backend to suggest one.
type GoalRequest struct {
	GoalType            string           `json:"goalType" validate:"required,oneof=UNIVERSITY CAR WEDDING BUSINESS GENERAL"`
	TargetAmount        decimal.Decimal  `json:"targetAmount"`
	TargetDate          string           `json:"targetDate" validate:"required,datetime=2006-01-02"`
	MonthlyContribution *decimal.Decimal `json:"monthlyContribution,omitempty"`
	Paused              bool             `json:"paused"`
}

type ContributeRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

type InvestmentRequest struct {
	PortfolioType     string `json:"portfolioType" validate:"required,oneof=CONSERVATIVE BALANCED GROWTH"`
	AllocationPercent int    `json:"allocationPercent" validate:"gte=0,lte=100"`
}

type DirectiveRequest struct {
	GuardianName    string `json:"guardianName" validate:"required"`
	GuardianContact string `json:"guardianContact" validate:"required"`
	Instructions    string `json:"instructions" validate:"required"`
}

// SimulationResult is the body of POST /api/simulate/monthly.
type SimulationResult struct {
	GoalsProcessed int `json:"goalsProcessed"`
}
