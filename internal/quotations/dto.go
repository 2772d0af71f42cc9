package quotations

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/exportracker/quotation-backend/internal/pricing"
	"github.com/exportracker/quotation-backend/pkg/db/models"
	"github.com/exportracker/quotation-backend/pkg/enums"
	"github.com/exportracker/quotation-backend/pkg/pagination"
	"github.com/exportracker/quotation-backend/pkg/types"
)

// Currency is the currency every stored amount is expressed in.
const Currency = "THB"

// CreateQuotationInput is the raw create payload. Pallets and
// additional_charges are kept raw so they may arrive as JSON arrays or as
// strings holding JSON arrays.
type CreateQuotationInput struct {
	CompanyName             string          `json:"company_name" validate:"required"`
	Destination             string          `json:"destination" validate:"required"`
	CustomerName            string          `json:"customer_name" validate:"required"`
	Pallets                 json.RawMessage `json:"pallets" validate:"required"`
	AdditionalCharges       json.RawMessage `json:"additional_charges,omitempty"`
	ClearanceCost           float64         `json:"clearance_cost"`
	ContactPerson           *string         `json:"contact_person,omitempty"`
	ContractNo              *string         `json:"contract_no,omitempty"`
	Notes                   *string         `json:"notes,omitempty"`
	DeliveryServiceRequired bool            `json:"delivery_service_required"`
	DeliveryVehicleType     string          `json:"delivery_vehicle_type,omitempty"`
}

// StatusInput is the payload for a status transition.
type StatusInput struct {
	Status string `json:"status" validate:"required"`
}

// ListQuery holds the list filters as received from the caller.
type ListQuery struct {
	Status string
	Cursor string
	Limit  int
}

// DisplayAmounts renders the monetary columns rounded to two places.
type DisplayAmounts struct {
	Currency          string `json:"currency"`
	ChargeableWeight  string `json:"chargeable_weight_kg"`
	TotalFreightCost  string `json:"total_freight_cost"`
	DeliveryCost      string `json:"delivery_cost"`
	ClearanceCost     string `json:"clearance_cost"`
	AdditionalCharges string `json:"additional_charges"`
	TotalCost         string `json:"total_cost"`
}

type QuotationDTO struct {
	ID                      uuid.UUID                 `json:"id"`
	CompanyID               uuid.UUID                 `json:"company_id"`
	CompanyName             string                    `json:"company_name"`
	DestinationID           uuid.UUID                 `json:"destination_id"`
	Destination             string                    `json:"destination"`
	CustomerName            string                    `json:"customer_name"`
	ContactPerson           *string                   `json:"contact_person,omitempty"`
	ContractNo              *string                   `json:"contract_no,omitempty"`
	Notes                   *string                   `json:"notes,omitempty"`
	Pallets                 types.Pallets             `json:"pallets"`
	TotalActualWeight       float64                   `json:"total_actual_weight"`
	TotalVolumeWeight       float64                   `json:"total_volume_weight"`
	ChargeableWeight        float64                   `json:"chargeable_weight"`
	TotalFreightCost        float64                   `json:"total_freight_cost"`
	DeliveryCost            float64                   `json:"delivery_cost"`
	ClearanceCost           float64                   `json:"clearance_cost"`
	AdditionalCharges       types.AdditionalCharges   `json:"additional_charges"`
	TotalCost               float64                   `json:"total_cost"`
	DeliveryServiceRequired bool                      `json:"delivery_service_required"`
	DeliveryVehicleType     enums.DeliveryVehicleType `json:"delivery_vehicle_type"`
	Status                  enums.QuotationStatus     `json:"status"`
	CompletedAt             *time.Time                `json:"completed_at,omitempty"`
	CreatedAt               time.Time                 `json:"created_at"`
	UpdatedAt               time.Time                 `json:"updated_at"`
	Display                 DisplayAmounts            `json:"display"`
	Breakdown               *pricing.Breakdown        `json:"breakdown,omitempty"`
}

// QuotationSummaryDTO is one row of a quotation list.
type QuotationSummaryDTO struct {
	ID               uuid.UUID             `json:"id"`
	CompanyName      string                `json:"company_name"`
	Destination      string                `json:"destination"`
	CustomerName     string                `json:"customer_name"`
	ChargeableWeight float64               `json:"chargeable_weight"`
	TotalCost        float64               `json:"total_cost"`
	Status           enums.QuotationStatus `json:"status"`
	CreatedAt        time.Time             `json:"created_at"`
}

type QuotationListDTO struct {
	Quotations []QuotationSummaryDTO `json:"quotations"`
	NextCursor string                `json:"next_cursor,omitempty"`
}

// PreviewDTO is a priced quotation that was not stored.
type PreviewDTO struct {
	CompanyName string            `json:"company_name"`
	Destination string            `json:"destination"`
	Pallets     types.Pallets     `json:"pallets"`
	Breakdown   pricing.Breakdown `json:"breakdown"`
	Display     DisplayAmounts    `json:"display"`
}

type CompanyTotalDTO struct {
	pricing.CompanyTotal
	Currency     string `json:"currency"`
	TotalDisplay string `json:"total_display"`
}

func money(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v).Round(2)
}

func displayAmounts(q models.Quotation) DisplayAmounts {
	return DisplayAmounts{
		Currency:          Currency,
		ChargeableWeight:  money(q.ChargeableWeight).StringFixed(2),
		TotalFreightCost:  money(q.TotalFreightCost).StringFixed(2),
		DeliveryCost:      money(q.DeliveryCost).StringFixed(2),
		ClearanceCost:     money(q.ClearanceCost).StringFixed(2),
		AdditionalCharges: money(q.AdditionalCharges.Total()).StringFixed(2),
		TotalCost:         money(q.TotalCost).StringFixed(2),
	}
}

func toDTO(q models.Quotation) QuotationDTO {
	pallets := q.Pallets
	if pallets == nil {
		pallets = types.Pallets{}
	}
	charges := q.AdditionalCharges
	if charges == nil {
		charges = types.AdditionalCharges{}
	}
	return QuotationDTO{
		ID:                      q.ID,
		CompanyID:               q.CompanyID,
		CompanyName:             q.CompanyName,
		DestinationID:           q.DestinationID,
		Destination:             q.Destination,
		CustomerName:            q.CustomerName,
		ContactPerson:           q.ContactPerson,
		ContractNo:              q.ContractNo,
		Notes:                   q.Notes,
		Pallets:                 pallets,
		TotalActualWeight:       q.TotalActualWeight,
		TotalVolumeWeight:       q.TotalVolumeWeight,
		ChargeableWeight:        q.ChargeableWeight,
		TotalFreightCost:        q.TotalFreightCost,
		DeliveryCost:            q.DeliveryCost,
		ClearanceCost:           q.ClearanceCost,
		AdditionalCharges:       charges,
		TotalCost:               q.TotalCost,
		DeliveryServiceRequired: q.DeliveryServiceRequired,
		DeliveryVehicleType:     q.DeliveryVehicleType,
		Status:                  q.Status,
		CompletedAt:             q.CompletedAt,
		CreatedAt:               q.CreatedAt,
		UpdatedAt:               q.UpdatedAt,
		Display:                 displayAmounts(q),
	}
}

func toSummary(q models.Quotation) QuotationSummaryDTO {
	return QuotationSummaryDTO{
		ID:               q.ID,
		CompanyName:      q.CompanyName,
		Destination:      q.Destination,
		CustomerName:     q.CustomerName,
		ChargeableWeight: q.ChargeableWeight,
		TotalCost:        q.TotalCost,
		Status:           q.Status,
		CreatedAt:        q.CreatedAt,
	}
}

func cursorOf(q models.Quotation) pagination.Cursor {
	return pagination.Cursor{CreatedAt: q.CreatedAt, ID: q.ID}
}
