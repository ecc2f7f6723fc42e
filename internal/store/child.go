package store

import (
	"context"

	"cloud.google.com/go/firestore"

	"github.com/GregMSThompson/family-savings/internal/models"
)

const (
	childrenCollection     = "children"
	goalsCollection        = "goals"
	goalOwnersCollection   = "goal_owners"
	portfoliosCollection   = "portfolios"
	directivesCollection   = "directives"
	transactionsCollection = "transactions"
)

type childStore struct {
	client *firestore.Client
}

func NewChildStore(client *firestore.Client) *childStore {
	return &childStore{client: client}
}

func (s *childStore) collection() *firestore.CollectionRef {
	return s.client.Collection(childrenCollection)
}

func (s *childStore) Create(ctx context.Context, child *models.ChildDoc) error {
	_, err := s.collection().Doc(child.ID).Create(ctx, child)
	return wrap("create_child", "child", err)
}

func (s *childStore) Update(ctx context.Context, child *models.ChildDoc) error {
	_, err := s.collection().Doc(child.ID).Set(ctx, child)
	return wrap("update_child", "child", err)
}

func (s *childStore) Get(ctx context.Context, childID string) (*models.ChildDoc, error) {
	doc, err := s.collection().Doc(childID).Get(ctx)
	if err != nil {
		return nil, wrap("get_child", "child", err)
	}
	var c models.ChildDoc
	if err := doc.DataTo(&c); err != nil {
		return nil, wrap("decode_child", "child", err)
	}
	return &c, nil
}

// ListByParent returns the parent's children, oldest first.
func (s *childStore) ListByParent(ctx context.Context, parentID string) ([]*models.ChildDoc, error) {
	docs, err := s.collection().
		Where("parentId", "==", parentID).
		OrderBy("createdAt", firestore.Asc).
		Documents(ctx).GetAll()
	if err != nil {
		return nil, wrap("list_children", "children", err)
	}
	children := make([]*models.ChildDoc, 0, len(docs))
	for _, d := range docs {
		var c models.ChildDoc
		if err := d.DataTo(&c); err != nil {
			return nil, wrap("decode_child", "child", err)
		}
		children = append(children, &c)
	}
	return children, nil
}

// Delete removes the child together with its goal, portfolio, directive,
// transactions and any goal owner links.
func (s *childStore) Delete(ctx context.Context, childID string) error {
	refs := []*firestore.DocumentRef{
		s.client.Collection(goalsCollection).Doc(childID),
		s.client.Collection(portfoliosCollection).Doc(childID),
		s.client.Collection(directivesCollection).Doc(childID),
	}

	txDocs, err := s.collection().Doc(childID).Collection(transactionsCollection).DocumentRefs(ctx).GetAll()
	if err != nil {
		return wrap("list_child_transactions", "transactions", err)
	}
	refs = append(refs, txDocs...)

	owners, err := s.client.Collection(goalOwnersCollection).Where("childId", "==", childID).Documents(ctx).GetAll()
	if err != nil {
		return wrap("list_goal_owners", "goal owners", err)
	}
	for _, o := range owners {
		refs = append(refs, o.Ref)
	}
	refs = append(refs, s.collection().Doc(childID))

	bw := s.client.BulkWriter(ctx)
	jobs := make([]*firestore.BulkWriterJob, 0, len(refs))
	for _, ref := range refs {
		job, err := bw.Delete(ref)
		if err != nil {
			bw.End()
			return wrap("delete_child", "child", err)
		}
		jobs = append(jobs, job)
	}

	// Flush and close the writer, then wait on each job for errors.
	bw.End()
	for _, job := range jobs {
		if _, err := job.Results(); err != nil {
			return wrap("delete_child", "child", err)
		}
	}
	return nil
}
