// Package transform converts backend wire records into dashboard models. It
// is the only place wire values are trusted: amounts are parsed, enums are
// checked, dates are cut to a calendar day.
package transform

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/GregMSThompson/family-savings/internal/dto"
	"github.com/GregMSThompson/family-savings/internal/models"
	"github.com/GregMSThompson/family-savings/pkg/logger"
)

const dateLayout = "2006-01-02"

// ErrEmptyDetail is returned for a detail payload that carries no child.
var ErrEmptyDetail = errors.New("detail payload has no child")

// Child builds a models.Child from a detail payload.
//
// Unknown goal or portfolio types are replaced by models.GoalGeneral and
// models.PortfolioConservative. The substitution loses the original value;
// it is logged at warn level.
func Child(ctx context.Context, d dto.ChildDetail) (models.Child, error) {
	if d.IsEmpty() {
		return models.Child{}, ErrEmptyDetail
	}
	log := logger.FromContext(ctx)

	c := models.Child{
		ID:          d.Child.ID,
		Name:        d.Child.Name,
		DateOfBirth: Date(d.Child.DateOfBirth),
		PhotoURL:    d.Child.PhotoURL,
		HasGoal:     d.Goal != nil,
		Goal: models.SavingsGoal{
			GoalType:      models.GoalGeneral,
			CurrentAmount: Amount(d.SavingsBalance),
		},
		Contributions: Contributions(d.Transactions),
	}

	if d.Goal != nil {
		gt, ok := models.ParseGoalType(d.Goal.GoalType)
		if !ok {
			log.Warn("unknown goal type, using fallback", "child_id", c.ID, "goal_type", d.Goal.GoalType, "fallback", gt)
		}
		c.Goal.GoalType = gt
		c.Goal.TargetAmount = Amount(d.Goal.TargetAmount)
		c.Goal.StartDate = Date(d.Goal.CreatedAt)
		c.Goal.TargetDate = Date(d.Goal.TargetDate)
		c.Goal.MonthlyContribution = Amount(d.Goal.MonthlyContribution)
		c.Goal.IsPaused = d.Goal.Paused
	}

	if d.Investment != nil {
		pt, ok := models.ParsePortfolioType(d.Investment.PortfolioType)
		if !ok {
			log.Warn("unknown portfolio type, using fallback", "child_id", c.ID, "portfolio_type", d.Investment.PortfolioType, "fallback", pt)
		}
		c.Investment = &models.Investment{
			PortfolioType:        pt,
			AllocationPercentage: Amount(d.Investment.AllocationPercentage),
			CurrentValue:         Amount(d.Investment.CurrentValue),
		}
	}

	if d.FundDirective != nil {
		c.FutureInstructions = &models.FutureInstructions{
			GuardianName:    d.FundDirective.GuardianName,
			GuardianContact: d.FundDirective.GuardianContact,
			Instructions:    d.FundDirective.Instructions,
		}
	}

	return c, nil
}

// Contributions keeps the backend's newest-first order.
func Contributions(txs []dto.TransactionRecord) []models.Contribution {
	out := make([]models.Contribution, 0, len(txs))
	for _, tx := range txs {
		out = append(out, models.Contribution{
			ID:     tx.ID,
			Date:   Date(tx.Date),
			Amount: Amount(tx.Amount),
			Type:   tx.Type,
		})
	}
	return out
}

// Amount converts a decoded decimal to a float for display math.
func Amount(d decimal.Decimal) float64 {
	return d.InexactFloat64()
}

// Date reduces an ISO date or timestamp to YYYY-MM-DD. Values that are not
// dates become "".
func Date(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	if len(s) >= len(dateLayout) {
		if _, err := time.Parse(dateLayout, s[:len(dateLayout)]); err == nil {
			return s[:len(dateLayout)]
		}
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(dateLayout)
		}
	}
	return ""
}
