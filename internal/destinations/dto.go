package destinations

import (
	"time"

	"github.com/google/uuid"

	"github.com/exportracker/quotation-backend/pkg/db/models"
)

type CreateDestinationInput struct {
	Country string  `json:"country" validate:"required,max=255"`
	Port    *string `json:"port,omitempty" validate:"omitempty,max=255"`
}

type DestinationDTO struct {
	ID          uuid.UUID `json:"id"`
	Country     string    `json:"country"`
	Port        *string   `json:"port,omitempty"`
	DisplayName string    `json:"display_name"`
	CreatedAt   time.Time `json:"created_at"`
}

func toDTO(d models.Destination) DestinationDTO {
	return DestinationDTO{
		ID:          d.ID,
		Country:     d.Country,
		Port:        d.Port,
		DisplayName: d.DisplayName(),
		CreatedAt:   d.CreatedAt,
	}
}
