package services

import (
	"context"

	"github.com/GregMSThompson/family-savings/internal/dto"
	"github.com/GregMSThompson/family-savings/internal/models"
	"github.com/GregMSThompson/family-savings/pkg/logger"
)

type investmentService struct {
	Children   childGetter
	Portfolios portfolioRepo
}

func NewInvestmentService(children childGetter, portfolios portfolioRepo) *investmentService {
	return &investmentService{Children: children, Portfolios: portfolios}
}

// Set chooses the portfolio and allocation. The current value of an
// existing portfolio is kept; a new one starts at zero.
func (s *investmentService) Set(ctx context.Context, parentID, childID string, req dto.InvestmentRequest) (dto.InvestmentRecord, error) {
	log := logger.FromContext(ctx)

	if _, err := ownedChild(ctx, s.Children, parentID, childID); err != nil {
		return dto.InvestmentRecord{}, err
	}
	existing, err := s.Portfolios.Get(ctx, childID)
	if err != nil {
		return dto.InvestmentRecord{}, err
	}

	p := &models.PortfolioDoc{
		ChildID:              childID,
		PortfolioType:        req.PortfolioType,
		AllocationPercentage: req.AllocationPercent,
	}
	if existing != nil {
		p.ValueCents = existing.ValueCents
	}
	if err := s.Portfolios.Set(ctx, p); err != nil {
		log.Error("failed to save portfolio", "error", err)
		return dto.InvestmentRecord{}, err
	}
	log.Info("investment saved", "portfolio_type", p.PortfolioType, "allocation", p.AllocationPercentage)
	return investmentRecord(p), nil
}
