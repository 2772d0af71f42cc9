package repo

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Base is embedded by the repositories of user-owned tables. Every row in
// those tables carries a user_id column and no query may cross it.
type Base struct {
	db *gorm.DB
}

func NewBase(db *gorm.DB) Base {
	return Base{db: db}
}

// DB returns the connection bound to ctx, or the raw connection when ctx is nil.
func (b Base) DB(ctx context.Context) *gorm.DB {
	if ctx == nil {
		return b.db
	}
	return b.db.WithContext(ctx)
}

// Owned starts a query restricted to rows owned by userID.
func (b Base) Owned(ctx context.Context, userID uuid.UUID) *gorm.DB {
	return OwnedBy(b.DB(ctx), userID)
}

// OwnedBy restricts db, typically a transaction, to userID's rows.
func OwnedBy(db *gorm.DB, userID uuid.UUID) *gorm.DB {
	return db.Where("user_id = ?", userID)
}

// OwnedRow narrows db to the single row id owned by userID.
func OwnedRow(db *gorm.DB, id, userID uuid.UUID) *gorm.DB {
	return db.Where("id = ? AND user_id = ?", id, userID)
}
