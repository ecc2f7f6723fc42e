package services

import (
	"context"

	"github.com/GregMSThompson/family-savings/internal/errs"
	"github.com/GregMSThompson/family-savings/internal/models"
)

type childGetter interface {
	Get(ctx context.Context, childID string) (*models.ChildDoc, error)
}

type childRepo interface {
	childGetter
	Create(ctx context.Context, child *models.ChildDoc) error
	Update(ctx context.Context, child *models.ChildDoc) error
	ListByParent(ctx context.Context, parentID string) ([]*models.ChildDoc, error)
	Delete(ctx context.Context, childID string) error
}

type goalRepo interface {
	Get(ctx context.Context, childID string) (*models.GoalDoc, error)
	Set(ctx context.Context, goal *models.GoalDoc) error
	ListActive(ctx context.Context, ownerID string) ([]*models.GoalDoc, error)
}

type goalOwnerRepo interface {
	Link(ctx context.Context, ownerID, childID string) error
	FindByOwner(ctx context.Context, ownerID string) (*models.GoalOwnerDoc, error)
}

type ledger interface {
	Record(ctx context.Context, tx *models.TransactionDoc, investedCents int64) error
	List(ctx context.Context, childID string) ([]*models.TransactionDoc, error)
}

type portfolioRepo interface {
	Get(ctx context.Context, childID string) (*models.PortfolioDoc, error)
	Set(ctx context.Context, p *models.PortfolioDoc) error
	Grow(ctx context.Context, childID string, monthlyRate float64) error
}

type directiveRepo interface {
	Get(ctx context.Context, childID string) (*models.DirectiveDoc, error)
	Set(ctx context.Context, d *models.DirectiveDoc) error
}

// cipher protects guardian contact details at rest.
type cipher interface {
	Encrypt(ctx context.Context, plaintext string) (string, error)
	Decrypt(ctx context.Context, ciphertext string) (string, error)
}

// ownedChild loads childID and checks it belongs to parentID. A child of
// another parent is reported as not found.
func ownedChild(ctx context.Context, children childGetter, parentID, childID string) (*models.ChildDoc, error) {
	child, err := children.Get(ctx, childID)
	if err != nil {
		return nil, err
	}
	if child.ParentID != parentID {
		return nil, errs.NewNotFoundError("child not found")
	}
	return child, nil
}

func balanceCents(txs []*models.TransactionDoc) int64 {
	var total int64
	for _, tx := range txs {
		total += tx.AmountCents
	}
	return total
}
