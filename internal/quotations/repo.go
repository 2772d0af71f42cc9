package quotations

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/exportracker/quotation-backend/internal/repo"
	"github.com/exportracker/quotation-backend/pkg/db/models"
	"github.com/exportracker/quotation-backend/pkg/enums"
	"github.com/exportracker/quotation-backend/pkg/pagination"
)

// ListParams filters a page of quotations.
type ListParams struct {
	Status *enums.QuotationStatus
	Cursor *pagination.Cursor
	Limit  int
}

// Repository persists quotations. Every read and write is scoped by owner.
type Repository struct {
	repo.Base
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

// Create inserts q inside tx.
func (r *Repository) Create(tx *gorm.DB, q *models.Quotation) error {
	if tx == nil {
		return errors.New("transaction required")
	}
	if q == nil {
		return errors.New("quotation is required")
	}
	if q.ID == uuid.Nil {
		q.ID = uuid.New()
	}
	return tx.Create(q).Error
}

// FindByIDForOwner returns gorm.ErrRecordNotFound both when the row is
// missing and when another user owns it.
func (r *Repository) FindByIDForOwner(ctx context.Context, id, userID uuid.UUID) (*models.Quotation, error) {
	var q models.Quotation
	err := repo.OwnedRow(r.DB(ctx), id, userID).
		First(&q).Error
	if err != nil {
		return nil, err
	}
	return &q, nil
}

// List returns one buffered page, newest first. Callers trim the extra row
// with pagination.Trim.
func (r *Repository) List(ctx context.Context, userID uuid.UUID, params ListParams) ([]models.Quotation, error) {
	query := r.Owned(ctx, userID)
	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}
	if params.Cursor != nil {
		query = query.Where("(created_at < ?) OR (created_at = ? AND id < ?)",
			params.Cursor.CreatedAt, params.Cursor.CreatedAt, params.Cursor.ID)
	}

	var rows []models.Quotation
	err := query.
		Order("created_at DESC").
		Order("id DESC").
		Limit(pagination.LimitWithBuffer(params.Limit)).
		Find(&rows).Error
	return rows, err
}

// ListForOwner returns the user's quotations oldest first. limit <= 0 means
// no limit.
func (r *Repository) ListForOwner(ctx context.Context, userID uuid.UUID, limit int) ([]models.Quotation, error) {
	query := r.Owned(ctx, userID).
		Order("created_at ASC").
		Order("id ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	var rows []models.Quotation
	err := query.Find(&rows).Error
	return rows, err
}

// UpdateStatusForOwner applies columns to the quotation only when userID
// owns it. Zero affected rows yields gorm.ErrRecordNotFound.
func (r *Repository) UpdateStatusForOwner(tx *gorm.DB, id, userID uuid.UUID, columns map[string]any) error {
	if tx == nil {
		return errors.New("transaction required")
	}
	res := repo.OwnedRow(tx.Model(&models.Quotation{}), id, userID).
		Updates(columns)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
