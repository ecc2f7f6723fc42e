package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/robfig/cron/v3"

	"github.com/GregMSThompson/family-savings/internal/metrics"
	"github.com/GregMSThompson/family-savings/internal/models"
	"github.com/GregMSThompson/family-savings/pkg/logger"
)

type contributor interface {
	record(ctx context.Context, childID string, cents int64, kind models.TransactionType) (*models.TransactionDoc, error)
}

type parentLister interface {
	ListUIDs(ctx context.Context, role models.Role) ([]string, error)
}

type simulationService struct {
	Goals         goalRepo
	Portfolios    portfolioRepo
	Contributions contributor
	Users         parentLister
}

func NewSimulationService(goals goalRepo, portfolios portfolioRepo, contributions *contributionService, users parentLister) *simulationService {
	return &simulationService{
		Goals:         goals,
		Portfolios:    portfolios,
		Contributions: contributions,
		Users:         users,
	}
}

// RunMonthly credits one month for every active goal owned by ownerID: the
// monthly contribution is recorded as AUTO and the portfolio grows by a
// twelfth of its annual rate. It returns the number of goals processed.
func (s *simulationService) RunMonthly(ctx context.Context, ownerID string) (int, error) {
	log, ctx := logger.With(ctx, "owner_id", ownerID)

	goals, err := s.Goals.ListActive(ctx, ownerID)
	if err != nil {
		log.Error("failed to list active goals", "error", err)
		return 0, err
	}

	processed := 0
	for _, g := range goals {
		if err := s.simulate(ctx, g); err != nil {
			log.Error("simulation stopped", "child_id", g.ChildID, "processed", processed, "error", err)
			return processed, err
		}
		processed++
		metrics.SimulationGoalsProcessedTotal.Inc()
	}
	log.Info("monthly simulation completed", "processed", processed)
	return processed, nil
}

func (s *simulationService) simulate(ctx context.Context, g *models.GoalDoc) error {
	if _, err := s.Contributions.record(ctx, g.ChildID, g.MonthlyCents, models.TransactionAuto); err != nil {
		return err
	}
	p, err := s.Portfolios.Get(ctx, g.ChildID)
	if err != nil || p == nil {
		return err
	}
	info, ok := models.PortfolioInfo(models.PortfolioType(p.PortfolioType))
	if !ok {
		logger.FromContext(ctx).Warn("unknown portfolio type, growth skipped", "child_id", g.ChildID, "portfolio_type", p.PortfolioType)
		return nil
	}
	return s.Portfolios.Grow(ctx, g.ChildID, info.AnnualRate/12)
}

// RunAll runs the monthly simulation for every parent. A failing parent
// does not stop the others; all failures are returned joined.
func (s *simulationService) RunAll(ctx context.Context) (int, error) {
	log := logger.FromContext(ctx)

	parents, err := s.Users.ListUIDs(ctx, models.RoleParent)
	if err != nil {
		log.Error("failed to list parents", "error", err)
		return 0, err
	}
	total := 0
	var errList []error
	for _, uid := range parents {
		n, err := s.RunMonthly(ctx, uid)
		total += n
		if err != nil {
			errList = append(errList, err)
		}
	}
	return total, errors.Join(errList...)
}

// Schedule runs RunAll on the cron spec using log. The caller starts and
// stops the returned scheduler.
func (s *simulationService) Schedule(spec string, log *slog.Logger) (*cron.Cron, error) {
	c := cron.New()
	_, err := c.AddFunc(spec, func() {
		ctx := logger.ToContext(context.Background(), log.With("job", "monthly_simulation"))
		if n, err := s.RunAll(ctx); err != nil {
			log.Error("scheduled simulation failed", "processed", n, "error", err)
		}
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}
