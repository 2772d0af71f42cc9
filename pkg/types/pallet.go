package types

import (
	"database/sql/driver"
	"encoding/json"
)

// Pallet is one physical unit of cargo. Dimensions are centimeters, weight is
// kilograms.
type Pallet struct {
	Length   float64 `json:"length"`
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
	Weight   float64 `json:"weight"`
	Quantity int     `json:"quantity"`
}

// Pallets stores the pallet list inside a JSONB column.
type Pallets []Pallet

// Value serializes the pallets to JSON.
func (p Pallets) Value() (driver.Value, error) {
	if p == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]Pallet(p))
}

// Scan decodes JSONB into the pallet list.
func (p *Pallets) Scan(value interface{}) error {
	if value == nil {
		*p = Pallets{}
		return nil
	}
	raw, err := asJSON(value)
	if err != nil {
		return err
	}
	var decoded []Pallet
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return err
	}
	*p = decoded
	return nil
}

// AdditionalCharge is an ad-hoc cost line in THB.
type AdditionalCharge struct {
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
}

// AdditionalCharges stores the charge list inside a JSONB column.
type AdditionalCharges []AdditionalCharge

// Value serializes the charges to JSON.
func (a AdditionalCharges) Value() (driver.Value, error) {
	if a == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]AdditionalCharge(a))
}

// Scan decodes JSONB into the charge list.
func (a *AdditionalCharges) Scan(value interface{}) error {
	if value == nil {
		*a = AdditionalCharges{}
		return nil
	}
	raw, err := asJSON(value)
	if err != nil {
		return err
	}
	var decoded []AdditionalCharge
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return err
	}
	*a = decoded
	return nil
}

// Total sums every charge amount.
func (a AdditionalCharges) Total() float64 {
	var total float64
	for _, charge := range a {
		total += charge.Amount
	}
	return total
}
