package store

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"

	"github.com/GregMSThompson/family-savings/internal/models"
)

type directiveStore struct {
	client *firestore.Client
}

func NewDirectiveStore(client *firestore.Client) *directiveStore {
	return &directiveStore{client: client}
}

// Get returns nil, nil when the child has no directive.
func (s *directiveStore) Get(ctx context.Context, childID string) (*models.DirectiveDoc, error) {
	doc, err := s.client.Collection(directivesCollection).Doc(childID).Get(ctx)
	if isNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, wrap("get_directive", "directive", err)
	}
	var d models.DirectiveDoc
	if err := doc.DataTo(&d); err != nil {
		return nil, wrap("decode_directive", "directive", err)
	}
	return &d, nil
}

func (s *directiveStore) Set(ctx context.Context, d *models.DirectiveDoc) error {
	d.LastUpdated = time.Now()
	_, err := s.client.Collection(directivesCollection).Doc(d.ChildID).Set(ctx, d)
	return wrap("set_directive", "directive", err)
}
