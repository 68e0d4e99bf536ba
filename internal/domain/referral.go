package domain

import "time"

// Referral statuses.
const (
	ReferralStatusPending   = "Pending"
	ReferralStatusCompleted = "Completed"
	ReferralStatusCancelled = "Cancelled"
)

// Referral records an admin putting a prospective client in touch with a
// vacant unit.
type Referral struct {
	ReferralID  string    `json:"id" dynamodbav:"referral_id"`
	AdminID     string    `json:"admin_id" dynamodbav:"admin_id"`
	UnitID      string    `json:"unit_id" dynamodbav:"unit_id"`
	ClientName  string    `json:"client_name" dynamodbav:"client_name"`
	ClientPhone string    `json:"client_phone" dynamodbav:"client_phone"`
	ClientEmail string    `json:"client_email" dynamodbav:"client_email"`
	ReferralFee *float64  `json:"referral_fee" dynamodbav:"referral_fee"`
	Notes       string    `json:"notes" dynamodbav:"notes"`
	Status      string    `json:"status" dynamodbav:"status"`
	CreatedAt   time.Time `json:"created_at" dynamodbav:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" dynamodbav:"updated_at"`

	Unit *Unit `json:"unit,omitempty" dynamodbav:"-"`
}

type CreateReferralRequest struct {
	UnitID      string   `json:"unit_id" validate:"required"`
	ClientName  string   `json:"client_name" validate:"required"`
	ClientPhone string   `json:"client_phone" validate:"required"`
	ClientEmail string   `json:"client_email" validate:"omitempty,email"`
	ReferralFee *float64 `json:"referral_fee"`
	Notes       string   `json:"notes"`
}

// ValidReferralStatus reports whether s is one of the recognised referral statuses.
func ValidReferralStatus(s string) bool {
	switch s {
	case ReferralStatusPending, ReferralStatusCompleted, ReferralStatusCancelled:
		return true
	}
	return false
}
