package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/GregMSThompson/family-savings/internal/dto"
	"github.com/GregMSThompson/family-savings/internal/errs"
	"github.com/GregMSThompson/family-savings/internal/models"
	"github.com/GregMSThompson/family-savings/pkg/logger"
)

type contributionService struct {
	Children     childGetter
	Portfolios   portfolioRepo
	Transactions ledger
	now          func() time.Time
}

func NewContributionService(children childGetter, portfolios portfolioRepo, txs ledger) *contributionService {
	return &contributionService{
		Children:     children,
		Portfolios:   portfolios,
		Transactions: txs,
		now:          time.Now,
	}
}

// Contribute records a manual contribution. Only the part not allocated to
// the child's portfolio lands in savings; the returned transaction carries
// that part.
func (s *contributionService) Contribute(ctx context.Context, parentID, childID string, req dto.ContributeRequest) (dto.TransactionRecord, error) {
	if err := checkAmount("amount", req.Amount); err != nil {
		return dto.TransactionRecord{}, err
	}
	cents := toCents(req.Amount)
	if cents <= 0 {
		return dto.TransactionRecord{}, errs.NewValidationError("amount must be greater than 0")
	}
	if _, err := ownedChild(ctx, s.Children, parentID, childID); err != nil {
		return dto.TransactionRecord{}, err
	}
	tx, err := s.record(ctx, childID, cents, models.TransactionManual)
	if err != nil {
		return dto.TransactionRecord{}, err
	}
	return transactionRecord(tx), nil
}

// record splits cents between the portfolio and the savings ledger.
func (s *contributionService) record(ctx context.Context, childID string, cents int64, kind models.TransactionType) (*models.TransactionDoc, error) {
	log := logger.FromContext(ctx)

	var invested int64
	portfolio, err := s.Portfolios.Get(ctx, childID)
	if err != nil {
		return nil, err
	}
	if portfolio != nil {
		invested = share(cents, portfolio.AllocationPercentage)
	}

	tx := &models.TransactionDoc{
		ID:          uuid.NewString(),
		ChildID:     childID,
		AmountCents: cents - invested,
		Type:        kind,
		Date:        s.now(),
	}
	if err := s.Transactions.Record(ctx, tx, invested); err != nil {
		log.Error("failed to record contribution", "child_id", childID, "error", err)
		return nil, err
	}
	log.Info("contribution recorded", "child_id", childID, "type", kind, "saved_cents", tx.AmountCents, "invested_cents", invested)
	return tx, nil
}
