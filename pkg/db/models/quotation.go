package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/exportracker/quotation-backend/pkg/enums"
	"github.com/exportracker/quotation-backend/pkg/types"
)

// Quotation is the persisted freight quotation. Weight and cost columns are
// derived once at creation.
type Quotation struct {
	ID                      uuid.UUID                 `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID                  uuid.UUID                 `gorm:"column:user_id;type:uuid;not null"`
	CompanyID               uuid.UUID                 `gorm:"column:company_id;type:uuid;not null"`
	CompanyName             string                    `gorm:"column:company_name;not null"`
	DestinationID           uuid.UUID                 `gorm:"column:destination_id;type:uuid;not null"`
	Destination             string                    `gorm:"column:destination;not null"`
	CustomerName            string                    `gorm:"column:customer_name;not null"`
	ContactPerson           *string                   `gorm:"column:contact_person"`
	ContractNo              *string                   `gorm:"column:contract_no"`
	Notes                   *string                   `gorm:"column:notes"`
	Pallets                 types.Pallets             `gorm:"column:pallets;type:jsonb;not null"`
	TotalActualWeight       float64                   `gorm:"column:total_actual_weight;not null"`
	TotalVolumeWeight       float64                   `gorm:"column:total_volume_weight;not null"`
	ChargeableWeight        float64                   `gorm:"column:chargeable_weight;not null"`
	TotalFreightCost        float64                   `gorm:"column:total_freight_cost;not null"`
	DeliveryCost            float64                   `gorm:"column:delivery_cost;not null;default:0"`
	ClearanceCost           float64                   `gorm:"column:clearance_cost;not null;default:0"`
	AdditionalCharges       types.AdditionalCharges   `gorm:"column:additional_charges;type:jsonb;not null"`
	TotalCost               float64                   `gorm:"column:total_cost;not null"`
	DeliveryServiceRequired bool                      `gorm:"column:delivery_service_required;not null;default:false"`
	DeliveryVehicleType     enums.DeliveryVehicleType `gorm:"column:delivery_vehicle_type;not null;default:'4wheel'"`
	Status                  enums.QuotationStatus     `gorm:"column:status;type:quotation_status;not null;default:'draft'"`
	CompletedAt             *time.Time                `gorm:"column:completed_at"`
	CreatedAt               time.Time                 `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt               time.Time                 `gorm:"column:updated_at;autoUpdateTime"`
}
