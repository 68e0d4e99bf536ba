package domain

import "time"

// Role names embedded in JWT claims.
const (
	RoleLandlord = "landlord"
	RoleAdmin    = "admin"
)

type Landlord struct {
	LandlordID   string    `json:"id" dynamodbav:"landlord_id"`
	FullName     string    `json:"full_name" dynamodbav:"full_name"`
	PhoneNumber  string    `json:"phone_number" dynamodbav:"phone_number"`
	Email        string    `json:"email" dynamodbav:"email"`
	PasswordHash string    `json:"-" dynamodbav:"password_hash"`
	IsVerified   bool      `json:"is_verified" dynamodbav:"is_verified"`
	Enable       bool      `json:"enable" dynamodbav:"enable"`
	CreatedAt    time.Time `json:"created_at" dynamodbav:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" dynamodbav:"updated_at"`
}

type RegisterLandlordRequest struct {
	FullName    string `json:"full_name" validate:"required"`
	PhoneNumber string `json:"phone_number" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=8,max=72"`
}

type UpdateLandlordProfileRequest struct {
	FullName    *string `json:"full_name"`
	Email       *string `json:"email" validate:"omitempty,email"`
	PhoneNumber *string `json:"phone_number"`
}

// DashboardStats summarises a landlord's portfolio.
type DashboardStats struct {
	TotalProperties int `json:"total_properties"`
	TotalUnits      int `json:"total_units"`
	VacantUnits     int `json:"vacant_units"`
	OccupiedUnits   int `json:"occupied_units"`
}
