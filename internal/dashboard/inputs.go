package dashboard

import (
	"github.com/GregMSThompson/family-savings/internal/models"
)

// NewChild creates a child with an initial goal.
type NewChild struct {
	Name         string          `json:"name" validate:"required"`
	DateOfBirth  string          `json:"dateOfBirth" validate:"required,datetime=2006-01-02"`
	GoalType     models.GoalType `json:"goalType" validate:"required,oneof=UNIVERSITY CAR WEDDING BUSINESS GENERAL"`
	TargetAmount float64         `json:"targetAmount" validate:"finite,gte=0"`
	TargetDate   string          `json:"targetDate" validate:"required,datetime=2006-01-02"`
}

// ChildUpdate holds the fields to change; nil fields keep their current value.
type ChildUpdate struct {
	Name        *string
	DateOfBirth *string
	PhotoURL    *string
}

// GoalInput replaces every goal field. A nil MonthlyContribution lets the
// backend suggest one.
type GoalInput struct {
	GoalType            models.GoalType `json:"goalType" validate:"required,oneof=UNIVERSITY CAR WEDDING BUSINESS GENERAL"`
	TargetAmount        float64         `json:"targetAmount" validate:"finite,gte=0"`
	TargetDate          string          `json:"targetDate" validate:"required,datetime=2006-01-02"`
	MonthlyContribution *float64        `json:"monthlyContribution" validate:"omitnil,finite,gte=0"`
	IsPaused            bool            `json:"isPaused"`
}

type contributionInput struct {
	Amount float64 `json:"amount" validate:"finite,gt=0"`
}

type InvestmentInput struct {
	PortfolioType     models.PortfolioType `json:"portfolioType" validate:"required,oneof=CONSERVATIVE BALANCED GROWTH"`
	AllocationPercent int                  `json:"allocationPercent" validate:"gte=0,lte=100"`
}

// FutureInstructionsInput requires all three fields.
type FutureInstructionsInput struct {
	GuardianName    string `json:"guardianName" validate:"required"`
	GuardianContact string `json:"guardianContact" validate:"required"`
	Instructions    string `json:"instructions" validate:"required"`
}
