package models

import (
	"time"

	"github.com/google/uuid"
)

// Destination is a shipping destination owned by one user.
type Destination struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID    uuid.UUID `gorm:"column:user_id;type:uuid;not null"`
	Country   string    `gorm:"column:country;not null"`
	Port      *string   `gorm:"column:port"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// DisplayName renders "Country (Port)" when a port is set.
func (d Destination) DisplayName() string {
	if d.Port == nil || *d.Port == "" {
		return d.Country
	}
	return d.Country + " (" + *d.Port + ")"
}
