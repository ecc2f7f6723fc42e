package store

import (
	"context"

	"cloud.google.com/go/firestore"

	"github.com/GregMSThompson/family-savings/internal/models"
)

type userStore struct {
	Collection *firestore.CollectionRef
}

func NewUserStore(client *firestore.Client) *userStore {
	return &userStore{
		Collection: client.Collection("users"),
	}
}

// CreateUser fails with codes.AlreadyExists when the uid is taken.
func (us *userStore) CreateUser(ctx context.Context, user *models.UserDoc) error {
	_, err := us.Collection.Doc(user.UID).Create(ctx, user)
	if err != nil {
		return wrap("create_user", "user", err)
	}
	return nil
}

func (us *userStore) UpdateUser(ctx context.Context, user *models.UserDoc) error {
	_, err := us.Collection.Doc(user.UID).Set(ctx, user)
	if err != nil {
		return wrap("update_user", "user", err)
	}
	return nil
}

func (us *userStore) GetUser(ctx context.Context, uid string) (*models.UserDoc, error) {
	var user models.UserDoc

	doc, err := us.Collection.Doc(uid).Get(ctx)
	if err != nil {
		return nil, wrap("get_user", "user", err)
	}
	if err := doc.DataTo(&user); err != nil {
		return nil, wrap("decode_user", "user", err)
	}

	return &user, nil
}

// ListUIDs returns every user id with the given role.
func (us *userStore) ListUIDs(ctx context.Context, role models.Role) ([]string, error) {
	docs, err := us.Collection.Where("role", "==", string(role)).Documents(ctx).GetAll()
	if err != nil {
		return nil, wrap("list_users", "users", err)
	}
	uids := make([]string, 0, len(docs))
	for _, d := range docs {
		uids = append(uids, d.Ref.ID)
	}
	return uids, nil
}
