package pricing

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/exportracker/quotation-backend/pkg/db/models"
	"github.com/exportracker/quotation-backend/pkg/enums"
	pkgerrors "github.com/exportracker/quotation-backend/pkg/errors"
	"github.com/exportracker/quotation-backend/pkg/types"
)

// MaxPalletUnits caps how many single-unit records one request may expand to.
const MaxPalletUnits = 1000

// BuildRequest carries the raw create fields plus the caller's scoped
// companies and destinations.
type BuildRequest struct {
	UserID                  uuid.UUID
	CompanyQuery            string
	DestinationQuery        string
	Companies               []models.Company
	Destinations            []models.Destination
	Pallets                 json.RawMessage
	AdditionalCharges       json.RawMessage
	ClearanceCost           float64
	CustomerName            string
	ContactPerson           *string
	ContractNo              *string
	Notes                   *string
	DeliveryServiceRequired bool
	DeliveryVehicleType     string
}

// Breakdown is the display-side summary of a built quotation.
type Breakdown struct {
	Units            int     `json:"units"`
	FreightRatePerKg float64 `json:"freight_rate_per_kg"`
	Weights          Weights `json:"weights"`
	Costs            Costs   `json:"costs"`
}

// BuildResult is a quotation ready to persist plus its cost breakdown.
type BuildResult struct {
	Quotation *models.Quotation
	Breakdown Breakdown
}

// Build turns a raw create request into a draft quotation. It performs no
// I/O; identity and the candidate lists are supplied by the caller.
func Build(req BuildRequest) (*BuildResult, error) {
	pallets, err := DecodePallets(req.Pallets)
	if err != nil {
		return nil, err
	}
	charges, err := DecodeAdditionalCharges(req.AdditionalCharges)
	if err != nil {
		return nil, err
	}
	vehicle, err := enums.ParseDeliveryVehicleType(req.DeliveryVehicleType)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid delivery vehicle type").
			WithDetails(map[string]any{"delivery_vehicle_type": req.DeliveryVehicleType})
	}

	company, err := ResolveCompany(req.Companies, req.CompanyQuery)
	if err != nil {
		return nil, err
	}
	destination, err := ResolveDestination(req.Destinations, req.DestinationQuery)
	if err != nil {
		return nil, err
	}

	weights, err := ComputeWeights(pallets)
	if err != nil {
		return nil, err
	}
	costs := Aggregate(weights.Chargeable, FreightRatePerKg, req.ClearanceCost, charges)
	if !costs.finite() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quotation amounts are out of range").
			WithDetails(map[string]any{"field": "total_cost"})
	}

	quotation := &models.Quotation{
		UserID:                  req.UserID,
		CompanyID:               company.ID,
		CompanyName:             company.Name,
		DestinationID:           destination.ID,
		Destination:             destination.Country,
		CustomerName:            strings.TrimSpace(req.CustomerName),
		ContactPerson:           req.ContactPerson,
		ContractNo:              req.ContractNo,
		Notes:                   req.Notes,
		Pallets:                 pallets,
		TotalActualWeight:       weights.Actual,
		TotalVolumeWeight:       weights.Volumetric,
		ChargeableWeight:        weights.Chargeable,
		TotalFreightCost:        costs.Freight,
		DeliveryCost:            0,
		ClearanceCost:           costs.Clearance,
		AdditionalCharges:       charges,
		TotalCost:               costs.Total,
		DeliveryServiceRequired: req.DeliveryServiceRequired,
		DeliveryVehicleType:     vehicle,
		Status:                  enums.QuotationStatusDraft,
	}

	return &BuildResult{
		Quotation: quotation,
		Breakdown: Breakdown{
			Units:            len(pallets),
			FreightRatePerKg: FreightRatePerKg,
			Weights:          weights,
			Costs:            costs,
		},
	}, nil
}

// DecodePallets parses a pallet list given either as a JSON array or as a
// string holding one. Missing fields default to 0 and a missing quantity to 1.
// A pallet with quantity N is expanded into N records of quantity 1.
func DecodePallets(raw json.RawMessage) (types.Pallets, error) {
	items, err := decodeObjectList(raw, "pallets")
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "at least one pallet is required")
	}

	out := types.Pallets{}
	for i, item := range items {
		var p types.Pallet
		fields := []struct {
			key string
			dst *float64
		}{
			{"length", &p.Length},
			{"width", &p.Width},
			{"height", &p.Height},
			{"weight", &p.Weight},
		}
		for _, f := range fields {
			v, err := numberField(item, f.key, "pallets", i)
			if err != nil {
				return nil, err
			}
			if v < 0 {
				return nil, negativeField("pallets", i, f.key, v)
			}
			*f.dst = v
		}

		qty, err := numberField(item, "quantity", "pallets", i)
		if err != nil {
			return nil, err
		}
		if qty < 0 {
			return nil, negativeField("pallets", i, "quantity", qty)
		}
		if qty != math.Trunc(qty) {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("pallets[%d].quantity must be a whole number", i)).
				WithDetails(map[string]any{"index": i, "field": "quantity", "value": qty})
		}
		// Compare before converting: large floats overflow int.
		if qty > MaxPalletUnits {
			return nil, tooManyUnits()
		}
		units := int(qty)
		if units == 0 {
			units = 1
		}
		if len(out)+units > MaxPalletUnits {
			return nil, tooManyUnits()
		}

		p.Quantity = 1
		for u := 0; u < units; u++ {
			out = append(out, p)
		}
	}
	return out, nil
}

// DecodeAdditionalCharges parses an optional charge list. Absent or null
// input yields an empty list.
func DecodeAdditionalCharges(raw json.RawMessage) (types.AdditionalCharges, error) {
	items, err := decodeObjectList(raw, "additional_charges")
	if err != nil {
		return nil, err
	}

	out := make(types.AdditionalCharges, 0, len(items))
	for i, item := range items {
		amount, err := numberField(item, "amount", "additional_charges", i)
		if err != nil {
			return nil, err
		}
		var description string
		if rawDesc, ok := item["description"]; ok && rawDesc != nil {
			desc, isString := rawDesc.(string)
			if !isString {
				return nil, malformed(fmt.Sprintf("additional_charges[%d].description must be a string", i))
			}
			description = strings.TrimSpace(desc)
		}
		out = append(out, types.AdditionalCharge{Description: description, Amount: amount})
	}
	return out, nil
}

func decodeObjectList(raw json.RawMessage, field string) ([]map[string]any, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, nil
	}

	if trimmed[0] == '"' {
		var inner string
		if err := json.Unmarshal(trimmed, &inner); err != nil {
			return nil, malformed(fmt.Sprintf("%s is not valid JSON", field))
		}
		trimmed = bytes.TrimSpace([]byte(inner))
		if len(trimmed) == 0 {
			return nil, nil
		}
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.UseNumber()
	var generic any
	if err := dec.Decode(&generic); err != nil {
		return nil, malformed(fmt.Sprintf("%s is not valid JSON", field))
	}
	list, ok := generic.([]any)
	if !ok {
		return nil, malformed(fmt.Sprintf("%s must be a JSON array", field))
	}

	out := make([]map[string]any, len(list))
	for i, entry := range list {
		obj, ok := entry.(map[string]any)
		if !ok {
			return nil, malformed(fmt.Sprintf("%s[%d] must be an object", field, i))
		}
		out[i] = obj
	}
	return out, nil
}

func numberField(item map[string]any, key, field string, index int) (float64, error) {
	raw, ok := item[key]
	if !ok || raw == nil {
		return 0, nil
	}
	switch v := raw.(type) {
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return 0, malformed(fmt.Sprintf("%s[%d].%s is not a number", field, index, key))
		}
		return f, nil
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return 0, nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, malformed(fmt.Sprintf("%s[%d].%s is not a number", field, index, key))
		}
		return f, nil
	default:
		return 0, malformed(fmt.Sprintf("%s[%d].%s is not a number", field, index, key))
	}
}

func tooManyUnits() error {
	return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("at most %d pallet units are allowed", MaxPalletUnits)).
		WithDetails(map[string]any{"max_units": MaxPalletUnits})
}

func negativeField(field string, index int, key string, value float64) error {
	return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("%s[%d].%s must not be negative", field, index, key)).
		WithDetails(map[string]any{"index": index, "field": key, "value": value})
}

func malformed(message string) error {
	return pkgerrors.New(pkgerrors.CodeMalformedInput, message)
}
