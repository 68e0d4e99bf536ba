package domain

import "time"

// Unit statuses. A unit is either available for referral or let out.
const (
	UnitStatusVacant   = "Vacant"
	UnitStatusOccupied = "Occupied"
)

type Unit struct {
	UnitID     string    `json:"id" dynamodbav:"unit_id"`
	PropertyID string    `json:"property_id" dynamodbav:"property_id"`
	Name       string    `json:"name" dynamodbav:"name"`
	Rent       float64   `json:"rent" dynamodbav:"rent"`
	Deposit    *float64  `json:"deposit" dynamodbav:"deposit"`
	Size       string    `json:"size" dynamodbav:"size"`
	Bedrooms   *int      `json:"bedrooms" dynamodbav:"bedrooms"`
	Bathrooms  *int      `json:"bathrooms" dynamodbav:"bathrooms"`
	Amenities  []string  `json:"amenities" dynamodbav:"amenities"`
	ImageURLs  []string  `json:"image_urls" dynamodbav:"image_urls"`
	Status     string    `json:"status" dynamodbav:"status"`
	CreatedAt  time.Time `json:"created_at" dynamodbav:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" dynamodbav:"updated_at"`

	// Property is populated on reads that join the parent in; never stored.
	Property *Property `json:"property,omitempty" dynamodbav:"-"`
}

type CreateUnitRequest struct {
	PropertyID string   `json:"property_id" validate:"required"`
	Name       string   `json:"name" validate:"required"`
	Rent       float64  `json:"rent" validate:"required,gt=0"`
	Deposit    *float64 `json:"deposit"`
	Size       string   `json:"size"`
	Bedrooms   *int     `json:"bedrooms"`
	Bathrooms  *int     `json:"bathrooms"`
	Amenities  []string `json:"amenities"`
}

type UpdateUnitRequest struct {
	Name      *string  `json:"name"`
	Rent      *float64 `json:"rent"`
	Deposit   *float64 `json:"deposit"`
	Size      *string  `json:"size"`
	Bedrooms  *int     `json:"bedrooms"`
	Bathrooms *int     `json:"bathrooms"`
	Amenities []string `json:"amenities"`
}

// ValidUnitStatus reports whether s is one of the recognised unit statuses.
func ValidUnitStatus(s string) bool {
	return s == UnitStatusVacant || s == UnitStatusOccupied
}
