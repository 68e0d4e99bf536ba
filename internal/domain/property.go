package domain

import "time"

type Property struct {
	PropertyID       string    `json:"id" dynamodbav:"property_id"`
	LandlordID       string    `json:"landlord_id" dynamodbav:"landlord_id"`
	Name             string    `json:"name" dynamodbav:"name"`
	Location         string    `json:"location" dynamodbav:"location"`
	WaterPrice       *float64  `json:"water_price" dynamodbav:"water_price"`
	ElectricityPrice *float64  `json:"electricity_price" dynamodbav:"electricity_price"`
	CreatedAt        time.Time `json:"created_at" dynamodbav:"created_at"`
	UpdatedAt        time.Time `json:"updated_at" dynamodbav:"updated_at"`

	// Units is populated on reads that join units in; it is never stored.
	Units []Unit `json:"units,omitempty" dynamodbav:"-"`
}

type CreatePropertyRequest struct {
	Name             string   `json:"name" validate:"required"`
	Location         string   `json:"location" validate:"required"`
	WaterPrice       *float64 `json:"water_price"`
	ElectricityPrice *float64 `json:"electricity_price"`
}

type UpdatePropertyRequest struct {
	Name             *string  `json:"name"`
	Location         *string  `json:"location"`
	WaterPrice       *float64 `json:"water_price"`
	ElectricityPrice *float64 `json:"electricity_price"`
}
