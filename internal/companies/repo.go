package companies

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/exportracker/quotation-backend/internal/repo"
	"github.com/exportracker/quotation-backend/pkg/db/models"
)

// Repository persists the companies a user quotes for.
type Repository struct {
	repo.Base
}

// NewRepository constructs a companies repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

// ListByOwner returns the user's companies oldest first. The order is the
// order resolution walks, so it must stay stable.
func (r *Repository) ListByOwner(ctx context.Context, userID uuid.UUID) ([]models.Company, error) {
	var rows []models.Company
	err := r.Owned(ctx, userID).
		Order("created_at ASC").
		Order("id ASC").
		Find(&rows).Error
	return rows, err
}

// Create inserts company, assigning an id when missing.
func (r *Repository) Create(ctx context.Context, company *models.Company) error {
	if company == nil {
		return errors.New("company is required")
	}
	if company.ID == uuid.Nil {
		company.ID = uuid.New()
	}
	return r.DB(ctx).Create(company).Error
}
