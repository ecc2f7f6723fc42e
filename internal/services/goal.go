package services

import (
	"context"
	"time"

	"github.com/GregMSThompson/family-savings/internal/dto"
	"github.com/GregMSThompson/family-savings/internal/errs"
	"github.com/GregMSThompson/family-savings/internal/models"
	"github.com/GregMSThompson/family-savings/pkg/logger"
)

type goalService struct {
	Children     childGetter
	Goals        goalRepo
	Owners       goalOwnerRepo
	Transactions ledger
	now          func() time.Time
}

func NewGoalService(children childGetter, goals goalRepo, owners goalOwnerRepo, txs ledger) *goalService {
	return &goalService{
		Children:     children,
		Goals:        goals,
		Owners:       owners,
		Transactions: txs,
		now:          time.Now,
	}
}

// Set creates or replaces the child's goal. The parent becomes the goal
// owner. Without a monthly contribution one is suggested from the current
// balance and the months left.
func (s *goalService) Set(ctx context.Context, parentID, childID string, req dto.GoalRequest) (dto.GoalRecord, error) {
	log := logger.FromContext(ctx)

	if req.TargetAmount.IsNegative() {
		return dto.GoalRecord{}, errs.NewValidationError("targetAmount must be 0 or greater")
	}
	if req.MonthlyContribution != nil && req.MonthlyContribution.IsNegative() {
		return dto.GoalRecord{}, errs.NewValidationError("monthlyContribution must be 0 or greater")
	}
	if err := checkAmount("targetAmount", req.TargetAmount); err != nil {
		return dto.GoalRecord{}, err
	}
	if req.MonthlyContribution != nil {
		if err := checkAmount("monthlyContribution", *req.MonthlyContribution); err != nil {
			return dto.GoalRecord{}, err
		}
	}
	target, err := time.Parse(dateLayout, req.TargetDate)
	if err != nil {
		return dto.GoalRecord{}, errs.NewValidationError("targetDate must be a date (YYYY-MM-DD)")
	}

	if _, err := ownedChild(ctx, s.Children, parentID, childID); err != nil {
		return dto.GoalRecord{}, err
	}
	existing, err := s.Goals.Get(ctx, childID)
	if err != nil {
		return dto.GoalRecord{}, err
	}

	goal := &models.GoalDoc{
		ChildID:     childID,
		OwnerID:     parentID,
		GoalType:    req.GoalType,
		TargetCents: toCents(req.TargetAmount),
		TargetDate:  req.TargetDate,
		Paused:      req.Paused,
	}
	if existing != nil {
		goal.CreatedAt = existing.CreatedAt
	}
	if req.MonthlyContribution != nil {
		goal.MonthlyCents = toCents(*req.MonthlyContribution)
	} else {
		txs, err := s.Transactions.List(ctx, childID)
		if err != nil {
			return dto.GoalRecord{}, err
		}
		goal.MonthlyCents = suggestMonthly(goal.TargetCents, balanceCents(txs), fullMonths(s.now(), target))
		log.Debug("suggested monthly contribution", "monthly_cents", goal.MonthlyCents)
	}

	if err := s.Goals.Set(ctx, goal); err != nil {
		log.Error("failed to save goal", "error", err)
		return dto.GoalRecord{}, err
	}
	if err := s.Owners.Link(ctx, parentID, childID); err != nil {
		log.Error("failed to link goal owner", "error", err)
		return dto.GoalRecord{}, err
	}

	log.Info("goal saved", "paused", goal.Paused)
	return goalRecord(goal), nil
}

// suggestMonthly is the remaining amount spread over the months left,
// rounded up to the cent. With no months left the whole target is due.
func suggestMonthly(targetCents, balanceCents int64, months int) int64 {
	remaining := targetCents - balanceCents
	switch {
	case remaining <= 0:
		return 0
	case months <= 0:
		return targetCents
	default:
		return ceilDiv(remaining, int64(months))
	}
}
