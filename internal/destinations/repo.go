package destinations

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/exportracker/quotation-backend/internal/repo"
	"github.com/exportracker/quotation-backend/pkg/db/models"
)

// Repository persists the destinations a user ships to.
type Repository struct {
	repo.Base
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

// ListByOwner returns the user's destinations in insertion order.
func (r *Repository) ListByOwner(ctx context.Context, userID uuid.UUID) ([]models.Destination, error) {
	var rows []models.Destination
	err := r.Owned(ctx, userID).
		Order("created_at ASC").
		Order("id ASC").
		Find(&rows).Error
	return rows, err
}

func (r *Repository) Create(ctx context.Context, destination *models.Destination) error {
	if destination == nil {
		return errors.New("destination is required")
	}
	if destination.ID == uuid.Nil {
		destination.ID = uuid.New()
	}
	return r.DB(ctx).Create(destination).Error
}
