package domain

// Verification purposes. At most one live code exists per (landlord, purpose);
// issuing a new code overwrites the previous one.
const (
	VerificationTypeEmail = "verify"
	VerificationTypeReset = "reset"
)

// EmailVerification stores email-verification and password-reset codes.
// PK: landlord_id, SK: type. ExpiresAt doubles as the DynamoDB TTL.
// IssuedAt is tracked separately so the resend cooldown never has to be
// derived from the expiry time.
type EmailVerification struct {
	LandlordID string `json:"landlord_id" dynamodbav:"landlord_id"`
	Type       string `json:"type" dynamodbav:"type"`
	Code       string `json:"code" dynamodbav:"code"`
	ExpiresAt  int64  `json:"expires_at" dynamodbav:"expires_at"` // Unix seconds
	IssuedAt   int64  `json:"issued_at" dynamodbav:"issued_at"`   // Unix seconds
}
