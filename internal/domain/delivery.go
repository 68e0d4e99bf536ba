package domain

// DeliveryPurpose identifies which notice a queued email carries.
type DeliveryPurpose string

const (
	PurposeVerification    DeliveryPurpose = "verification"
	PurposePasswordReset   DeliveryPurpose = "password_reset"
	PurposePasswordChanged DeliveryPurpose = "password_changed"
)

// DeliveryJob is one queued notification-send request. Once enqueued it is
// owned exclusively by the delivery queue; the creator holds no reference.
type DeliveryJob struct {
	Recipient string
	Purpose   DeliveryPurpose
	Subject   string
	HTMLBody  string
	Attempts  int
}

// ErrorKind classifies transport failures so the queue can decide what is
// retryable and what means an adapter is simply not configured.
type ErrorKind string

const (
	ErrKindNone                 ErrorKind = ""
	ErrKindConfigurationMissing ErrorKind = "configuration_missing"
	ErrKindProviderRejected     ErrorKind = "provider_rejected"
	ErrKindProviderUnreachable  ErrorKind = "provider_unreachable"
	ErrKindTimeout              ErrorKind = "timeout"
)

// DeliveryResult is the uniform outcome of one transport send. Adapters never
// return Go errors across this boundary; failures are encoded in Kind/Detail.
type DeliveryResult struct {
	Success  bool
	Skipped  bool
	Provider string
	Kind     ErrorKind
	Detail   string
}
