package store

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"

	"github.com/GregMSThompson/family-savings/internal/models"
)

type transactionStore struct {
	client *firestore.Client
}

func NewTransactionStore(client *firestore.Client) *transactionStore {
	return &transactionStore{client: client}
}

func (s *transactionStore) txCollection(childID string) *firestore.CollectionRef {
	return s.client.Collection(childrenCollection).Doc(childID).Collection(transactionsCollection)
}

func (s *transactionStore) portfolioDoc(childID string) *firestore.DocumentRef {
	return s.client.Collection(portfoliosCollection).Doc(childID)
}

// Record stores tx and, when investedCents is positive, adds it to the
// child's portfolio value in the same Firestore transaction.
func (s *transactionStore) Record(ctx context.Context, tx *models.TransactionDoc, investedCents int64) error {
	if tx.Date.IsZero() {
		tx.Date = time.Now()
	}
	err := s.client.RunTransaction(ctx, func(ctx context.Context, t *firestore.Transaction) error {
		if investedCents > 0 {
			if err := t.Update(s.portfolioDoc(tx.ChildID), []firestore.Update{
				{Path: "valueCents", Value: firestore.Increment(investedCents)},
				{Path: "lastUpdated", Value: time.Now()},
			}); err != nil {
				return err
			}
		}
		return t.Create(s.txCollection(tx.ChildID).Doc(tx.ID), tx)
	})
	return wrap("record_transaction", "portfolio", err)
}

// List returns the child's transactions, newest first.
func (s *transactionStore) List(ctx context.Context, childID string) ([]*models.TransactionDoc, error) {
	docs, err := s.txCollection(childID).OrderBy("date", firestore.Desc).Documents(ctx).GetAll()
	if err != nil {
		return nil, wrap("list_transactions", "transactions", err)
	}
	txs := make([]*models.TransactionDoc, 0, len(docs))
	for _, d := range docs {
		var tx models.TransactionDoc
		if err := d.DataTo(&tx); err != nil {
			return nil, wrap("decode_transaction", "transaction", err)
		}
		txs = append(txs, &tx)
	}
	return txs, nil
}
