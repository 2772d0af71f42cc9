package users

import (
	"context"
	"strings"

	"github.com/exportracker/quotation-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository reads identity profiles.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a users repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// FindByEmail retrieves the profile matching email, ignoring case.
func (r *Repository) FindByEmail(ctx context.Context, email string) (*models.Profile, error) {
	var profile models.Profile
	normalized := strings.ToLower(strings.TrimSpace(email))
	if err := r.db.WithContext(ctx).Where("LOWER(email) = ?", normalized).First(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}
