package services

import (
	"context"
	"errors"
	"time"

	"github.com/GregMSThompson/family-savings/internal/dto"
	"github.com/GregMSThompson/family-savings/internal/errs"
	"github.com/GregMSThompson/family-savings/internal/models"
	"github.com/GregMSThompson/family-savings/pkg/logger"
)

type userUSStore interface {
	CreateUser(ctx context.Context, user *models.UserDoc) error
	UpdateUser(ctx context.Context, user *models.UserDoc) error
	GetUser(ctx context.Context, uid string) (*models.UserDoc, error)
}

type userService struct {
	Store userUSStore
}

func NewUserService(store userUSStore) *userService {
	return &userService{
		Store: store,
	}
}

// GetOrCreate returns the caller's profile, creating a parent account on
// first sight.
func (s *userService) GetOrCreate(ctx context.Context, uid, email string) (dto.Profile, error) {
	user, err := s.getOrCreate(ctx, uid, email)
	if err != nil {
		return dto.Profile{}, err
	}
	return profile(user), nil
}

func (s *userService) getOrCreate(ctx context.Context, uid, email string) (*models.UserDoc, error) {
	// already carries uid, email and request_id
	log := logger.FromContext(ctx)

	user, err := s.Store.GetUser(ctx, uid)
	var nf *errs.NotFoundError
	if errors.As(err, &nf) {
		user, err = s.create(ctx, uid, email)
	}
	if err != nil {
		log.Error("failed to load user", "error", err)
		return nil, err
	}
	return user, nil
}

func (s *userService) create(ctx context.Context, uid, email string) (*models.UserDoc, error) {
	log := logger.FromContext(ctx)

	user := &models.UserDoc{
		UID:       uid,
		Email:     email,
		Role:      string(models.RoleParent),
		CreatedAt: time.Now(),
	}
	err := s.Store.CreateUser(ctx, user)
	var ae *errs.AlreadyExistsError
	if errors.As(err, &ae) {
		// a concurrent first request won
		return s.Store.GetUser(ctx, uid)
	}
	if err != nil {
		return nil, err
	}

	log.Info("user created successfully")
	log.Debug("user created with full details", "user", user)
	return user, nil
}

// UpdateProfile changes the caller's name and phone. Role and email are kept.
func (s *userService) UpdateProfile(ctx context.Context, uid, email string, req dto.ProfileRequest) (dto.Profile, error) {
	log := logger.FromContext(ctx)

	user, err := s.getOrCreate(ctx, uid, email)
	if err != nil {
		return dto.Profile{}, err
	}
	user.FullName = req.FullName
	user.Phone = req.Phone
	if err := s.Store.UpdateUser(ctx, user); err != nil {
		log.Error("failed to update user in store", "error", err)
		return dto.Profile{}, err
	}
	log.Info("profile updated")
	return profile(user), nil
}

func profile(u *models.UserDoc) dto.Profile {
	return dto.Profile{
		ID:       u.UID,
		FullName: u.FullName,
		Email:    u.Email,
		Phone:    u.Phone,
		Role:     string(models.ParseRole(u.Role)),
	}
}
