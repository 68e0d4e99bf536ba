package domain

import "time"

type Admin struct {
	AdminID      string    `json:"id" dynamodbav:"admin_id"`
	Username     string    `json:"username" dynamodbav:"username"`
	Email        string    `json:"email" dynamodbav:"email"`
	PasswordHash string    `json:"-" dynamodbav:"password_hash"`
	CreatedAt    time.Time `json:"created_at" dynamodbav:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" dynamodbav:"updated_at"`
}

// AdminDashboard aggregates platform-wide stats plus the latest referrals.
type AdminDashboard struct {
	TotalLandlords  int        `json:"total_landlords"`
	TotalProperties int        `json:"total_properties"`
	TotalUnits      int        `json:"total_units"`
	VacantUnits     int        `json:"vacant_units"`
	OccupiedUnits   int        `json:"occupied_units"`
	RecentReferrals []Referral `json:"recent_referrals"`
}
