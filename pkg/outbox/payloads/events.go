package payloads

import (
	"time"

	"github.com/google/uuid"

	"github.com/exportracker/quotation-backend/pkg/enums"
)

// QuotationCreatedEvent is emitted once a priced quotation is stored.
type QuotationCreatedEvent struct {
	QuotationID      uuid.UUID             `json:"quotation_id"`
	UserID           uuid.UUID             `json:"user_id"`
	CompanyID        uuid.UUID             `json:"company_id"`
	CompanyName      string                `json:"company_name"`
	Destination      string                `json:"destination"`
	ChargeableWeight float64               `json:"chargeable_weight"`
	TotalCost        float64               `json:"total_cost"`
	Status           enums.QuotationStatus `json:"status"`
}

// QuotationStatusChangedEvent carries the status a quotation moved into.
type QuotationStatusChangedEvent struct {
	QuotationID uuid.UUID             `json:"quotation_id"`
	UserID      uuid.UUID             `json:"user_id"`
	Status      enums.QuotationStatus `json:"status"`
	CompletedAt *time.Time            `json:"completed_at,omitempty"`
}
