package enums

import (
	"fmt"
	"strings"
)

// DeliveryVehicleType describes the truck booked for inland delivery.
type DeliveryVehicleType string

const (
	DeliveryVehicle4Wheel  DeliveryVehicleType = "4wheel"
	DeliveryVehicle6Wheel  DeliveryVehicleType = "6wheel"
	DeliveryVehicle10Wheel DeliveryVehicleType = "10wheel"
)

var validDeliveryVehicleTypes = []DeliveryVehicleType{
	DeliveryVehicle4Wheel,
	DeliveryVehicle6Wheel,
	DeliveryVehicle10Wheel,
}

func (d DeliveryVehicleType) String() string {
	return string(d)
}

func (d DeliveryVehicleType) IsValid() bool {
	for _, candidate := range validDeliveryVehicleTypes {
		if candidate == d {
			return true
		}
	}
	return false
}

// ParseDeliveryVehicleType converts raw input, defaulting blanks to 4wheel.
func ParseDeliveryVehicleType(value string) (DeliveryVehicleType, error) {
	trimmed := strings.ToLower(strings.TrimSpace(value))
	if trimmed == "" {
		return DeliveryVehicle4Wheel, nil
	}
	for _, candidate := range validDeliveryVehicleTypes {
		if string(candidate) == trimmed {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid delivery vehicle type %q", value)
}
