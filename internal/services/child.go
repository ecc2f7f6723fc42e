package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/GregMSThompson/family-savings/internal/dto"
	"github.com/GregMSThompson/family-savings/internal/models"
	"github.com/GregMSThompson/family-savings/pkg/logger"
)

type childService struct {
	Children     childRepo
	Goals        goalRepo
	Owners       goalOwnerRepo
	Transactions ledger
	Portfolios   portfolioRepo
	Directives   directiveRepo
	Cipher       cipher
	now          func() time.Time
}

type ChildServiceDeps struct {
	Children     childRepo
	Goals        goalRepo
	Owners       goalOwnerRepo
	Transactions ledger
	Portfolios   portfolioRepo
	Directives   directiveRepo
	Cipher       cipher
}

func NewChildService(deps ChildServiceDeps) *childService {
	return &childService{
		Children:     deps.Children,
		Goals:        deps.Goals,
		Owners:       deps.Owners,
		Transactions: deps.Transactions,
		Portfolios:   deps.Portfolios,
		Directives:   deps.Directives,
		Cipher:       deps.Cipher,
		now:          time.Now,
	}
}

func (s *childService) List(ctx context.Context, parentID string) ([]dto.ChildRecord, error) {
	children, err := s.Children.ListByParent(ctx, parentID)
	if err != nil {
		logger.FromContext(ctx).Error("failed to list children", "error", err)
		return nil, err
	}
	out := make([]dto.ChildRecord, 0, len(children))
	for _, c := range children {
		out = append(out, childRecord(c))
	}
	return out, nil
}

func (s *childService) Create(ctx context.Context, parentID string, req dto.ChildRequest) (dto.ChildRecord, error) {
	child := &models.ChildDoc{
		ID:          uuid.NewString(),
		ParentID:    parentID,
		Name:        req.Name,
		DateOfBirth: req.DateOfBirth,
		PhotoURL:    req.PhotoURL,
		CreatedAt:   s.now(),
	}
	log, ctx := logger.With(ctx, "child_id", child.ID)
	if err := s.Children.Create(ctx, child); err != nil {
		log.Error("failed to create child", "error", err)
		return dto.ChildRecord{}, err
	}
	log.Info("child created")
	return childRecord(child), nil
}

// Update replaces every editable field of the child.
func (s *childService) Update(ctx context.Context, parentID, childID string, req dto.ChildRequest) (dto.ChildRecord, error) {
	log := logger.FromContext(ctx)

	child, err := ownedChild(ctx, s.Children, parentID, childID)
	if err != nil {
		return dto.ChildRecord{}, err
	}
	child.Name = req.Name
	child.DateOfBirth = req.DateOfBirth
	child.PhotoURL = req.PhotoURL
	if err := s.Children.Update(ctx, child); err != nil {
		log.Error("failed to update child", "error", err)
		return dto.ChildRecord{}, err
	}
	log.Info("child updated")
	return childRecord(child), nil
}

// Delete removes the child and everything recorded for it.
func (s *childService) Delete(ctx context.Context, parentID, childID string) error {
	log := logger.FromContext(ctx)

	if _, err := ownedChild(ctx, s.Children, parentID, childID); err != nil {
		return err
	}
	if err := s.Children.Delete(ctx, childID); err != nil {
		log.Error("failed to delete child", "error", err)
		return err
	}
	log.Info("child deleted")
	return nil
}

func (s *childService) Detail(ctx context.Context, parentID, childID string) (dto.ChildDetail, error) {
	child, err := ownedChild(ctx, s.Children, parentID, childID)
	if err != nil {
		return dto.ChildDetail{}, err
	}
	return s.detail(ctx, child)
}

// MyGoal returns the detail of the child linked to ownerID, or an empty
// detail when there is no link.
func (s *childService) MyGoal(ctx context.Context, ownerID string) (dto.ChildDetail, error) {
	link, err := s.Owners.FindByOwner(ctx, ownerID)
	if err != nil {
		return dto.ChildDetail{}, err
	}
	if link == nil {
		logger.FromContext(ctx).Debug("no goal linked to caller")
		return dto.ChildDetail{}, nil
	}
	child, err := s.Children.Get(ctx, link.ChildID)
	if err != nil {
		return dto.ChildDetail{}, err
	}
	return s.detail(ctx, child)
}

// detail reads the child's goal, ledger, portfolio and directive concurrently.
func (s *childService) detail(ctx context.Context, child *models.ChildDoc) (dto.ChildDetail, error) {
	var (
		goal      *models.GoalDoc
		txs       []*models.TransactionDoc
		portfolio *models.PortfolioDoc
		directive *models.DirectiveDoc
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		goal, err = s.Goals.Get(gctx, child.ID)
		return err
	})
	g.Go(func() (err error) {
		txs, err = s.Transactions.List(gctx, child.ID)
		return err
	})
	g.Go(func() (err error) {
		portfolio, err = s.Portfolios.Get(gctx, child.ID)
		return err
	})
	g.Go(func() (err error) {
		directive, err = s.Directives.Get(gctx, child.ID)
		return err
	})
	if err := g.Wait(); err != nil {
		logger.FromContext(ctx).Error("failed to read child detail", "child_id", child.ID, "error", err)
		return dto.ChildDetail{}, err
	}

	rec := childRecord(child)
	balance := balanceCents(txs)
	out := dto.ChildDetail{
		Child:          &rec,
		Transactions:   make([]dto.TransactionRecord, 0, len(txs)),
		SavingsBalance: fromCents(balance),
	}
	for _, tx := range txs {
		out.Transactions = append(out.Transactions, transactionRecord(tx))
	}
	if goal != nil {
		gr := goalRecord(goal)
		out.Goal = &gr
		s.project(&out, goal, balance)
	}
	if portfolio != nil {
		ir := investmentRecord(portfolio)
		out.Investment = &ir
	}
	if directive != nil {
		dr, err := directiveRecord(ctx, s.Cipher, directive)
		if err != nil {
			return dto.ChildDetail{}, err
		}
		out.FundDirective = &dr
	}
	return out, nil
}

// project fills monthsRemaining and, when the goal is funded monthly and
// not yet met, projectedCompletion.
func (s *childService) project(out *dto.ChildDetail, goal *models.GoalDoc, balance int64) {
	now := s.now()
	months := 0
	if target, err := time.Parse(dateLayout, goal.TargetDate); err == nil {
		months = max(0, fullMonths(now, target))
	}
	out.MonthsRemaining = &months

	remaining := goal.TargetCents - balance
	if goal.MonthlyCents > 0 && remaining > 0 {
		n := ceilDiv(remaining, goal.MonthlyCents)
		date := now.AddDate(0, int(n), 0).Format(dateLayout)
		out.ProjectedCompletion = &date
	}
}

func childRecord(c *models.ChildDoc) dto.ChildRecord {
	return dto.ChildRecord{
		ID:          c.ID,
		Name:        c.Name,
		DateOfBirth: c.DateOfBirth,
		PhotoURL:    c.PhotoURL,
	}
}

func goalRecord(g *models.GoalDoc) dto.GoalRecord {
	return dto.GoalRecord{
		GoalType:            g.GoalType,
		TargetAmount:        fromCents(g.TargetCents),
		TargetDate:          g.TargetDate,
		MonthlyContribution: fromCents(g.MonthlyCents),
		Paused:              g.Paused,
		CreatedAt:           g.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func transactionRecord(tx *models.TransactionDoc) dto.TransactionRecord {
	return dto.TransactionRecord{
		ID:     tx.ID,
		Amount: fromCents(tx.AmountCents),
		Type:   string(tx.Type),
		Date:   tx.Date.UTC().Format(time.RFC3339),
	}
}

func investmentRecord(p *models.PortfolioDoc) dto.InvestmentRecord {
	return dto.InvestmentRecord{
		PortfolioType:        p.PortfolioType,
		AllocationPercentage: decimalInt(p.AllocationPercentage),
		CurrentValue:         fromCents(p.ValueCents),
		LastUpdated:          p.LastUpdated.UTC().Format(time.RFC3339),
	}
}
