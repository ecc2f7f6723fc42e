package dashboard

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/GregMSThompson/family-savings/internal/dto"
	"github.com/GregMSThompson/family-savings/internal/errs"
	"github.com/GregMSThompson/family-savings/internal/metrics"
	"github.com/GregMSThompson/family-savings/internal/models"
	"github.com/GregMSThompson/family-savings/internal/session"
	"github.com/GregMSThompson/family-savings/internal/validation"
	"github.com/GregMSThompson/family-savings/pkg/helpers"
	"github.com/GregMSThompson/family-savings/pkg/logger"
)

// Every mutation follows the same steps:
//  1. validate the input; nothing is sent when it is invalid
//  2. take fresh credentials; none means errs.ErrNoSession
//  3. send the request(s); a non-2xx response is returned as the error
//  4. refetch the affected child and replace it in the store by id
//
// Step 4 is the only way mutated values reach the store. The mutation's own
// response body is never applied.

// mutate runs steps 1 to 3 and counts the outcome. input may be nil.
func (d *Dashboard) mutate(ctx context.Context, op, childID string, input any, fn func(ctx context.Context, creds *session.Credentials) error) error {
	log, ctx := logger.With(ctx, "op", op, "child_id", childID)

	if input != nil {
		if err := validation.Struct(input); err != nil {
			metrics.MutationsTotal.WithLabelValues(op, metrics.ResultInvalid).Inc()
			log.Debug("invalid input", "error", err)
			return err
		}
	}

	creds := d.session.Fresh(ctx)
	if creds == nil {
		metrics.MutationsTotal.WithLabelValues(op, metrics.ResultNoSession).Inc()
		log.Warn("no session")
		return errs.ErrNoSession
	}

	if err := fn(ctx, creds); err != nil {
		metrics.MutationsTotal.WithLabelValues(op, metrics.ResultFailure).Inc()
		log.Error("mutation failed", "error", err)
		return err
	}
	metrics.MutationsTotal.WithLabelValues(op, metrics.ResultSuccess).Inc()
	log.Info("mutation completed")
	return nil
}

// reconcile refetches childID and replaces it in the store.
func (d *Dashboard) reconcile(ctx context.Context, creds *session.Credentials, childID string) (models.Child, error) {
	c, err := d.fetchChild(ctx, creds, childID)
	if err != nil {
		return models.Child{}, fmt.Errorf("saved, but reloading the child failed: %w", err)
	}
	if !d.store.ReplaceChild(c) {
		logger.FromContext(ctx).Debug("refetched child is no longer held")
	}
	return c, nil
}

// CreateChild creates the child, then its goal, then appends the refetched
// child. A failed goal request is logged and does not fail the operation.
func (d *Dashboard) CreateChild(ctx context.Context, in NewChild) (models.Child, error) {
	var created models.Child
	err := d.mutate(ctx, "create_child", "", in, func(ctx context.Context, creds *session.Credentials) error {
		rec, err := d.api.CreateChild(ctx, creds, dto.ChildRequest{Name: in.Name, DateOfBirth: in.DateOfBirth})
		if err != nil {
			return err
		}
		log, ctx := logger.With(ctx, "child_id", rec.ID)

		if _, err := d.api.SetGoal(ctx, creds, rec.ID, dto.GoalRequest{
			GoalType:     string(in.GoalType),
			TargetAmount: money(in.TargetAmount),
			TargetDate:   in.TargetDate,
		}); err != nil {
			log.Warn("initial goal not saved", "error", err)
		}

		c, err := d.fetchChild(ctx, creds, rec.ID)
		if err != nil {
			return fmt.Errorf("saved, but reloading the child failed: %w", err)
		}
		d.store.AppendChild(c)
		created = c
		return nil
	})
	return created, err
}

// UpdateChild merges upd over the held child and resends all fields.
func (d *Dashboard) UpdateChild(ctx context.Context, childID string, upd ChildUpdate) (models.Child, error) {
	current, ok := d.store.Child(childID)
	if !ok {
		return models.Child{}, errs.NewNotFoundError("child not found")
	}
	req := dto.ChildRequest{
		Name:        helpers.ValueOr(upd.Name, current.Name),
		DateOfBirth: helpers.ValueOr(upd.DateOfBirth, current.DateOfBirth),
		PhotoURL:    helpers.ValueOr(upd.PhotoURL, current.PhotoURL),
	}

	var updated models.Child
	err := d.mutate(ctx, "update_child", childID, req, func(ctx context.Context, creds *session.Credentials) error {
		if _, err := d.api.UpdateChild(ctx, creds, childID, req); err != nil {
			return err
		}
		c, err := d.reconcile(ctx, creds, childID)
		updated = c
		return err
	})
	return updated, err
}

// DeleteChild removes the child on the server and then from the store. There
// is nothing to refetch.
func (d *Dashboard) DeleteChild(ctx context.Context, childID string) error {
	return d.mutate(ctx, "delete_child", childID, nil, func(ctx context.Context, creds *session.Credentials) error {
		if err := d.api.DeleteChild(ctx, creds, childID); err != nil {
			return err
		}
		d.store.RemoveChild(childID)
		return nil
	})
}

// AddContribution posts amount for the child. The refetched balance is the
// server's; it may differ from the previous balance plus amount.
func (d *Dashboard) AddContribution(ctx context.Context, childID string, amount float64) (models.Child, error) {
	in := contributionInput{Amount: amount}
	var updated models.Child
	err := d.mutate(ctx, "add_contribution", childID, in, func(ctx context.Context, creds *session.Credentials) error {
		if _, err := d.api.Contribute(ctx, creds, childID, dto.ContributeRequest{Amount: money(amount)}); err != nil {
			return err
		}
		c, err := d.reconcile(ctx, creds, childID)
		updated = c
		return err
	})
	return updated, err
}

func (d *Dashboard) SetGoal(ctx context.Context, childID string, in GoalInput) (models.Child, error) {
	var updated models.Child
	err := d.mutate(ctx, "set_goal", childID, in, func(ctx context.Context, creds *session.Credentials) error {
		return d.setGoal(ctx, creds, childID, in, &updated)
	})
	return updated, err
}

func (d *Dashboard) setGoal(ctx context.Context, creds *session.Credentials, childID string, in GoalInput, out *models.Child) error {
	req := dto.GoalRequest{
		GoalType:     string(in.GoalType),
		TargetAmount: money(in.TargetAmount),
		TargetDate:   in.TargetDate,
		Paused:       in.IsPaused,
	}
	if in.MonthlyContribution != nil {
		m := money(*in.MonthlyContribution)
		req.MonthlyContribution = &m
	}
	if _, err := d.api.SetGoal(ctx, creds, childID, req); err != nil {
		return err
	}
	c, err := d.reconcile(ctx, creds, childID)
	*out = c
	return err
}

// TogglePausedGoal resends the held goal with IsPaused inverted.
//
// The goal is read from the store, not refetched. If the store is stale the
// toggle is computed on stale fields and overwrites newer server values. Use
// SetGoal with a fresh goal when that matters.
func (d *Dashboard) TogglePausedGoal(ctx context.Context, childID string) (models.Child, error) {
	current, ok := d.store.Child(childID)
	if !ok {
		return models.Child{}, errs.NewNotFoundError("child not found")
	}
	if !current.HasGoal {
		return models.Child{}, errs.NewValidationError("child has no goal to pause")
	}
	g := current.Goal
	in := GoalInput{
		GoalType:            g.GoalType,
		TargetAmount:        g.TargetAmount,
		TargetDate:          g.TargetDate,
		MonthlyContribution: helpers.Ptr(g.MonthlyContribution),
		IsPaused:            !g.IsPaused,
	}

	var updated models.Child
	err := d.mutate(ctx, "toggle_paused_goal", childID, in, func(ctx context.Context, creds *session.Credentials) error {
		return d.setGoal(ctx, creds, childID, in, &updated)
	})
	return updated, err
}

func (d *Dashboard) SetInvestment(ctx context.Context, childID string, in InvestmentInput) (models.Child, error) {
	var updated models.Child
	err := d.mutate(ctx, "set_investment", childID, in, func(ctx context.Context, creds *session.Credentials) error {
		if _, err := d.api.SetInvestment(ctx, creds, childID, dto.InvestmentRequest{
			PortfolioType:     string(in.PortfolioType),
			AllocationPercent: in.AllocationPercent,
		}); err != nil {
			return err
		}
		c, err := d.reconcile(ctx, creds, childID)
		updated = c
		return err
	})
	return updated, err
}

func (d *Dashboard) SetFutureInstructions(ctx context.Context, childID string, in FutureInstructionsInput) (models.Child, error) {
	var updated models.Child
	err := d.mutate(ctx, "set_future_instructions", childID, in, func(ctx context.Context, creds *session.Credentials) error {
		if _, err := d.api.SetDirective(ctx, creds, childID, dto.DirectiveRequest{
			GuardianName:    in.GuardianName,
			GuardianContact: in.GuardianContact,
			Instructions:    in.Instructions,
		}); err != nil {
			return err
		}
		c, err := d.reconcile(ctx, creds, childID)
		updated = c
		return err
	})
	return updated, err
}

// RunMonthlySimulation asks the backend to credit one month of automatic
// contributions and growth, then reloads everything since any child may
// have changed.
func (d *Dashboard) RunMonthlySimulation(ctx context.Context) (int, error) {
	var processed int
	err := d.mutate(ctx, "run_simulation", "", nil, func(ctx context.Context, creds *session.Credentials) error {
		res, err := d.api.RunMonthlySimulation(ctx, creds)
		if err != nil {
			return err
		}
		processed = res.GoalsProcessed
		return d.load(ctx, creds)
	})
	return processed, err
}

func money(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v).Round(2)
}
