package pricing

import (
	"fmt"

	pkgerrors "github.com/exportracker/quotation-backend/pkg/errors"
	"github.com/exportracker/quotation-backend/pkg/types"
)

// VolumetricDivisor converts cubic centimeters into volumetric kilograms.
const VolumetricDivisor = 6000.0

// Weights holds the actual, volumetric and chargeable weight of a shipment in
// kilograms.
type Weights struct {
	Actual     float64 `json:"total_actual_weight"`
	Volumetric float64 `json:"total_volume_weight"`
	Chargeable float64 `json:"chargeable_weight"`
}

// ComputeWeights sums the pallet list. A zero quantity counts as one unit.
// No rounding is applied.
func ComputeWeights(pallets []types.Pallet) (Weights, error) {
	if len(pallets) == 0 {
		return Weights{}, pkgerrors.New(pkgerrors.CodeValidation, "at least one pallet is required")
	}

	var w Weights
	for i, p := range pallets {
		if p.Length < 0 || p.Width < 0 || p.Height < 0 || p.Weight < 0 || p.Quantity < 0 {
			return Weights{}, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("pallet %d has a negative value", i+1)).
				WithDetails(map[string]any{"index": i, "pallet": p})
		}
		qty := float64(p.Quantity)
		if p.Quantity == 0 {
			qty = 1
		}
		w.Actual += p.Weight * qty
		w.Volumetric += (p.Length * p.Width * p.Height * qty) / VolumetricDivisor
	}

	if !isFinite(w.Actual) || !isFinite(w.Volumetric) {
		return Weights{}, pkgerrors.New(pkgerrors.CodeValidation, "pallet measurements are out of range").
			WithDetails(map[string]any{"field": "pallets"})
	}

	w.Chargeable = w.Actual
	if w.Volumetric > w.Chargeable {
		w.Chargeable = w.Volumetric
	}
	return w, nil
}
