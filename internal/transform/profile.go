package transform

import (
	"github.com/GregMSThompson/family-savings/internal/dto"
	"github.com/GregMSThompson/family-savings/internal/models"
)

// User maps the profile record. A missing or unknown role becomes parent.
func User(p dto.Profile) models.User {
	return models.User{
		ID:    p.ID,
		Name:  p.FullName,
		Email: p.Email,
		Role:  models.ParseRole(p.Role),
	}
}
