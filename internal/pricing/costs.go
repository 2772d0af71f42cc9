package pricing

import (
	"math"

	"github.com/exportracker/quotation-backend/pkg/types"
)

// FreightRatePerKg is the freight price in THB per chargeable kilogram.
const FreightRatePerKg = 150.0

// Costs is the cost breakdown of a quotation in THB.
type Costs struct {
	Freight         float64 `json:"total_freight_cost"`
	Clearance       float64 `json:"clearance_cost"`
	AdditionalTotal float64 `json:"additional_total"`
	Total           float64 `json:"total_cost"`
}

// Aggregate prices the chargeable weight and adds clearance and additional
// charges. Amounts are passed through as given, negatives included.
func Aggregate(chargeable, ratePerKg, clearance float64, charges []types.AdditionalCharge) Costs {
	freight := chargeable * ratePerKg
	additional := types.AdditionalCharges(charges).Total()
	return Costs{
		Freight:         freight,
		Clearance:       clearance,
		AdditionalTotal: additional,
		Total:           freight + clearance + additional,
	}
}

func (c Costs) finite() bool {
	return isFinite(c.Freight) && isFinite(c.Clearance) && isFinite(c.AdditionalTotal) && isFinite(c.Total)
}

func isFinite(v float64) bool {
	return !math.IsInf(v, 0) && !math.IsNaN(v)
}
