package services

import (
	"context"
	"time"

	"github.com/GregMSThompson/family-savings/internal/dto"
	"github.com/GregMSThompson/family-savings/internal/errs"
	"github.com/GregMSThompson/family-savings/internal/models"
	"github.com/GregMSThompson/family-savings/pkg/logger"
)

type directiveService struct {
	Children   childGetter
	Directives directiveRepo
	Cipher     cipher
}

func NewDirectiveService(children childGetter, directives directiveRepo, c cipher) *directiveService {
	return &directiveService{Children: children, Directives: directives, Cipher: c}
}

func (s *directiveService) Get(ctx context.Context, parentID, childID string) (dto.DirectiveRecord, error) {
	if _, err := ownedChild(ctx, s.Children, parentID, childID); err != nil {
		return dto.DirectiveRecord{}, err
	}
	d, err := s.Directives.Get(ctx, childID)
	if err != nil {
		return dto.DirectiveRecord{}, err
	}
	if d == nil {
		return dto.DirectiveRecord{}, errs.NewNotFoundError("directive not found")
	}
	return directiveRecord(ctx, s.Cipher, d)
}

// Set replaces the directive. The guardian contact is encrypted before it
// is stored.
func (s *directiveService) Set(ctx context.Context, parentID, childID string, req dto.DirectiveRequest) (dto.DirectiveRecord, error) {
	log := logger.FromContext(ctx)

	if _, err := ownedChild(ctx, s.Children, parentID, childID); err != nil {
		return dto.DirectiveRecord{}, err
	}
	contact, err := s.Cipher.Encrypt(ctx, req.GuardianContact)
	if err != nil {
		log.Error("failed to encrypt guardian contact", "error", err)
		return dto.DirectiveRecord{}, err
	}
	d := &models.DirectiveDoc{
		ChildID:         childID,
		GuardianName:    req.GuardianName,
		GuardianContact: contact,
		Instructions:    req.Instructions,
	}
	if err := s.Directives.Set(ctx, d); err != nil {
		log.Error("failed to save directive", "error", err)
		return dto.DirectiveRecord{}, err
	}
	log.Info("directive saved")
	return dto.DirectiveRecord{
		GuardianName:    d.GuardianName,
		GuardianContact: req.GuardianContact,
		Instructions:    d.Instructions,
		LastUpdated:     d.LastUpdated.UTC().Format(time.RFC3339),
	}, nil
}

func directiveRecord(ctx context.Context, c cipher, d *models.DirectiveDoc) (dto.DirectiveRecord, error) {
	contact, err := c.Decrypt(ctx, d.GuardianContact)
	if err != nil {
		logger.FromContext(ctx).Error("failed to decrypt guardian contact", "child_id", d.ChildID, "error", err)
		return dto.DirectiveRecord{}, err
	}
	return dto.DirectiveRecord{
		GuardianName:    d.GuardianName,
		GuardianContact: contact,
		Instructions:    d.Instructions,
		LastUpdated:     d.LastUpdated.UTC().Format(time.RFC3339),
	}, nil
}
