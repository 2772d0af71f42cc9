package companies

import (
	"time"

	"github.com/google/uuid"

	"github.com/exportracker/quotation-backend/pkg/db/models"
)

// CreateCompanyInput is the payload for adding a company.
type CreateCompanyInput struct {
	Name string `json:"name" validate:"required,max=255"`
}

// CompanyDTO is the API shape of a company.
type CompanyDTO struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

func toDTO(c models.Company) CompanyDTO {
	return CompanyDTO{ID: c.ID, Name: c.Name, CreatedAt: c.CreatedAt}
}
