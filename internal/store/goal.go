package store

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/GregMSThompson/family-savings/internal/models"
)

type goalStore struct {
	client *firestore.Client
}

func NewGoalStore(client *firestore.Client) *goalStore {
	return &goalStore{client: client}
}

func (s *goalStore) collection() *firestore.CollectionRef {
	return s.client.Collection(goalsCollection)
}

// Get returns nil, nil when the child has no goal.
func (s *goalStore) Get(ctx context.Context, childID string) (*models.GoalDoc, error) {
	doc, err := s.collection().Doc(childID).Get(ctx)
	if isNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, wrap("get_goal", "goal", err)
	}
	var g models.GoalDoc
	if err := doc.DataTo(&g); err != nil {
		return nil, wrap("decode_goal", "goal", err)
	}
	return &g, nil
}

func (s *goalStore) Set(ctx context.Context, goal *models.GoalDoc) error {
	now := time.Now()
	if goal.CreatedAt.IsZero() {
		goal.CreatedAt = now
	}
	goal.UpdatedAt = now
	_, err := s.collection().Doc(goal.ChildID).Set(ctx, goal)
	return wrap("set_goal", "goal", err)
}

// ListActive returns unpaused goals with a positive monthly contribution.
// An empty ownerID lists goals of every owner.
func (s *goalStore) ListActive(ctx context.Context, ownerID string) ([]*models.GoalDoc, error) {
	q := s.collection().Where("paused", "==", false).Where("monthlyCents", ">", 0)
	if ownerID != "" {
		q = q.Where("ownerId", "==", ownerID)
	}
	docs, err := q.Documents(ctx).GetAll()
	if err != nil {
		return nil, wrap("list_active_goals", "goals", err)
	}
	goals := make([]*models.GoalDoc, 0, len(docs))
	for _, d := range docs {
		var g models.GoalDoc
		if err := d.DataTo(&g); err != nil {
			return nil, wrap("decode_goal", "goal", err)
		}
		goals = append(goals, &g)
	}
	return goals, nil
}

type goalOwnerStore struct {
	client *firestore.Client
}

func NewGoalOwnerStore(client *firestore.Client) *goalOwnerStore {
	return &goalOwnerStore{client: client}
}

func (s *goalOwnerStore) collection() *firestore.CollectionRef {
	return s.client.Collection(goalOwnersCollection)
}

// Link records that ownerID may view childID's goal. Linking twice is a no-op.
func (s *goalOwnerStore) Link(ctx context.Context, ownerID, childID string) error {
	link := &models.GoalOwnerDoc{OwnerID: ownerID, ChildID: childID, CreatedAt: time.Now()}
	_, err := s.collection().Doc(ownerID+"_"+childID).Create(ctx, link)
	if status.Code(err) == codes.AlreadyExists {
		return nil
	}
	return wrap("link_goal_owner", "goal owner", err)
}

// FindByOwner returns the oldest link of ownerID, or nil, nil when there is none.
func (s *goalOwnerStore) FindByOwner(ctx context.Context, ownerID string) (*models.GoalOwnerDoc, error) {
	docs, err := s.collection().
		Where("ownerId", "==", ownerID).
		OrderBy("createdAt", firestore.Asc).
		Limit(1).
		Documents(ctx).GetAll()
	if err != nil {
		return nil, wrap("find_goal_owner", "goal owner", err)
	}
	if len(docs) == 0 {
		return nil, nil
	}
	var o models.GoalOwnerDoc
	if err := docs[0].DataTo(&o); err != nil {
		return nil, wrap("decode_goal_owner", "goal owner", err)
	}
	return &o, nil
}
