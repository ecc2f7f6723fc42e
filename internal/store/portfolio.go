package store

import (
	"context"
	"math"
	"time"

	"cloud.google.com/go/firestore"

	"github.com/GregMSThompson/family-savings/internal/models"
)

type portfolioStore struct {
	client *firestore.Client
}

func NewPortfolioStore(client *firestore.Client) *portfolioStore {
	return &portfolioStore{client: client}
}

func (s *portfolioStore) doc(childID string) *firestore.DocumentRef {
	return s.client.Collection(portfoliosCollection).Doc(childID)
}

// Get returns nil, nil when the child has no portfolio.
func (s *portfolioStore) Get(ctx context.Context, childID string) (*models.PortfolioDoc, error) {
	doc, err := s.doc(childID).Get(ctx)
	if isNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, wrap("get_portfolio", "portfolio", err)
	}
	var p models.PortfolioDoc
	if err := doc.DataTo(&p); err != nil {
		return nil, wrap("decode_portfolio", "portfolio", err)
	}
	return &p, nil
}

func (s *portfolioStore) Set(ctx context.Context, p *models.PortfolioDoc) error {
	p.LastUpdated = time.Now()
	_, err := s.doc(p.ChildID).Set(ctx, p)
	return wrap("set_portfolio", "portfolio", err)
}

// Grow multiplies the portfolio value by (1 + monthlyRate), rounded to the
// cent. A missing portfolio is left alone.
func (s *portfolioStore) Grow(ctx context.Context, childID string, monthlyRate float64) error {
	ref := s.doc(childID)
	err := s.client.RunTransaction(ctx, func(ctx context.Context, t *firestore.Transaction) error {
		doc, err := t.Get(ref)
		if isNotFound(err) {
			return nil
		}
		if err != nil {
			return err
		}
		var p models.PortfolioDoc
		if err := doc.DataTo(&p); err != nil {
			return err
		}
		grown := int64(math.Round(float64(p.ValueCents) * (1 + monthlyRate)))
		return t.Update(ref, []firestore.Update{
			{Path: "valueCents", Value: grown},
			{Path: "lastUpdated", Value: time.Now()},
		})
	})
	return wrap("grow_portfolio", "portfolio", err)
}
