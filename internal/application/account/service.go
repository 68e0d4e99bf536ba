// Package account implements registration, login and the verification and
// password-reset code lifecycle for landlords and admins.
package account

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/frental-api/internal/domain"
	"github.com/frental-api/internal/pkg/id"
	pkgtoken "github.com/frental-api/internal/pkg/token"
	"golang.org/x/crypto/bcrypt"
)

type LandlordStore interface {
	Put(ctx context.Context, l *domain.Landlord) error
	Get(ctx context.Context, landlordID string) (*domain.Landlord, error)
	GetByPhone(ctx context.Context, phone string) (*domain.Landlord, error)
	GetByEmail(ctx context.Context, email string) (*domain.Landlord, error)
	Update(ctx context.Context, landlordID string, updates map[string]interface{}) error
}

type AdminStore interface {
	GetByEmail(ctx context.Context, email string) (*domain.Admin, error)
}

type VerificationStore interface {
	Put(ctx context.Context, v *domain.EmailVerification) error
	Get(ctx context.Context, landlordID, verType string) (*domain.EmailVerification, error)
	Delete(ctx context.Context, landlordID, verType string) error
}

// Notifier is the enqueue-only surface of the delivery queue. Every method
// returns immediately; account flows never observe delivery outcomes.
type Notifier interface {
	QueueVerificationNotice(to, code, displayName string)
	QueuePasswordResetNotice(to, code, displayName string)
	QueuePasswordChangedNotice(to, displayName string)
}

type TokenSigner interface {
	Sign(userID, role string) (string, error)
}

type LoginLandlordRequest struct {
	PhoneNumber string `json:"phone_number" validate:"required"`
	Password    string `json:"password" validate:"required"`
}

type LoginAdminRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type VerifyEmailRequest struct {
	PhoneNumber string `json:"phone_number" validate:"required"`
	Code        string `json:"code" validate:"required"`
}

type ResendVerificationRequest struct {
	PhoneNumber string `json:"phone_number" validate:"required"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ResetPasswordRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Code        string `json:"code" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=8,max=72"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8,max=72"`
}

type Service interface {
	RegisterLandlord(ctx context.Context, req domain.RegisterLandlordRequest) (bearer string, landlord *domain.Landlord, err error)
	LoginLandlord(ctx context.Context, req LoginLandlordRequest) (bearer string, landlord *domain.Landlord, err error)
	LoginAdmin(ctx context.Context, req LoginAdminRequest) (bearer string, admin *domain.Admin, err error)
	VerifyEmail(ctx context.Context, req VerifyEmailRequest) error
	ResendVerification(ctx context.Context, req ResendVerificationRequest) error
	ForgotPassword(ctx context.Context, req ForgotPasswordRequest) error
	ResetPassword(ctx context.Context, req ResetPasswordRequest) error
	ChangePassword(ctx context.Context, landlordID string, req ChangePasswordRequest) error
}

type ServiceDeps struct {
	LandlordRepo     LandlordStore
	AdminRepo        AdminStore
	VerificationRepo VerificationStore
	Notifier         Notifier
	JWTProvider      TokenSigner
	ResendCooldown   time.Duration
	VerifyExpiry     time.Duration
	ResetExpiry      time.Duration
}

type service struct {
	landlordRepo     LandlordStore
	adminRepo        AdminStore
	verificationRepo VerificationStore
	notifier         Notifier
	jwtProvider      TokenSigner
	resendCooldown   time.Duration
	verifyExpiry     time.Duration
	resetExpiry      time.Duration
}

func NewService(deps ServiceDeps) Service {
	if deps.ResendCooldown <= 0 {
		deps.ResendCooldown = 60 * time.Second
	}
	if deps.VerifyExpiry <= 0 {
		deps.VerifyExpiry = 24 * time.Hour
	}
	if deps.ResetExpiry <= 0 {
		deps.ResetExpiry = time.Hour
	}
	return &service{
		landlordRepo:     deps.LandlordRepo,
		adminRepo:        deps.AdminRepo,
		verificationRepo: deps.VerificationRepo,
		notifier:         deps.Notifier,
		jwtProvider:      deps.JWTProvider,
		resendCooldown:   deps.ResendCooldown,
		verifyExpiry:     deps.VerifyExpiry,
		resetExpiry:      deps.ResetExpiry,
	}
}

func (s *service) RegisterLandlord(ctx context.Context, req domain.RegisterLandlordRequest) (string, *domain.Landlord, error) {
	if _, err := s.landlordRepo.GetByPhone(ctx, req.PhoneNumber); err == nil {
		return "", nil, fmt.Errorf("phone number already registered: %w", domain.ErrConflict)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return "", nil, fmt.Errorf("check phone number: %w", err)
	}
	if _, err := s.landlordRepo.GetByEmail(ctx, req.Email); err == nil {
		return "", nil, fmt.Errorf("email already registered: %w", domain.ErrConflict)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return "", nil, fmt.Errorf("check email: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return "", nil, err
	}

	now := time.Now().UTC()
	l := &domain.Landlord{
		LandlordID:   id.New(),
		FullName:     req.FullName,
		PhoneNumber:  req.PhoneNumber,
		Email:        req.Email,
		PasswordHash: string(hash),
		IsVerified:   false,
		Enable:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.landlordRepo.Put(ctx, l); err != nil {
		return "", nil, err
	}

	if err := s.issueCode(ctx, l, domain.VerificationTypeEmail); err != nil {
		// The account exists either way; the code can be re-requested.
		slog.Warn("could not issue verification code", "landlord_id", l.LandlordID, "err", err)
	}

	bearer, err := s.signToken(l.LandlordID, domain.RoleLandlord)
	if err != nil {
		return "", nil, err
	}
	return bearer, l, nil
}

func (s *service) LoginLandlord(ctx context.Context, req LoginLandlordRequest) (string, *domain.Landlord, error) {
	l, err := s.landlordRepo.GetByPhone(ctx, req.PhoneNumber)
	if err != nil {
		return "", nil, fmt.Errorf("invalid credentials: %w", domain.ErrUnauthorized)
	}
	if !l.Enable {
		return "", nil, fmt.Errorf("account disabled: %w", domain.ErrForbidden)
	}
	if bcrypt.CompareHashAndPassword([]byte(l.PasswordHash), []byte(req.Password)) != nil {
		return "", nil, fmt.Errorf("invalid credentials: %w", domain.ErrUnauthorized)
	}
	bearer, err := s.signToken(l.LandlordID, domain.RoleLandlord)
	if err != nil {
		return "", nil, err
	}
	return bearer, l, nil
}

func (s *service) LoginAdmin(ctx context.Context, req LoginAdminRequest) (string, *domain.Admin, error) {
	a, err := s.adminRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return "", nil, fmt.Errorf("invalid credentials: %w", domain.ErrUnauthorized)
	}
	if bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(req.Password)) != nil {
		return "", nil, fmt.Errorf("invalid credentials: %w", domain.ErrUnauthorized)
	}
	bearer, err := s.signToken(a.AdminID, domain.RoleAdmin)
	if err != nil {
		return "", nil, err
	}
	return bearer, a, nil
}

func (s *service) VerifyEmail(ctx context.Context, req VerifyEmailRequest) error {
	l, err := s.landlordRepo.GetByPhone(ctx, req.PhoneNumber)
	if err != nil {
		return fmt.Errorf("landlord not found: %w", domain.ErrNotFound)
	}
	if l.IsVerified {
		return fmt.Errorf("email already verified: %w", domain.ErrBadRequest)
	}
	if err := s.consumeCode(ctx, l.LandlordID, domain.VerificationTypeEmail, req.Code); err != nil {
		return err
	}
	return s.landlordRepo.Update(ctx, l.LandlordID, map[string]interface{}{"is_verified": true})
}

func (s *service) ResendVerification(ctx context.Context, req ResendVerificationRequest) error {
	l, err := s.landlordRepo.GetByPhone(ctx, req.PhoneNumber)
	if err != nil {
		return fmt.Errorf("landlord not found: %w", domain.ErrNotFound)
	}
	if l.IsVerified {
		return fmt.Errorf("email already verified: %w", domain.ErrBadRequest)
	}
	if err := s.checkCooldown(ctx, l.LandlordID, domain.VerificationTypeEmail); err != nil {
		return err
	}
	return s.issueCode(ctx, l, domain.VerificationTypeEmail)
}

func (s *service) ForgotPassword(ctx context.Context, req ForgotPasswordRequest) error {
	l, err := s.landlordRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return fmt.Errorf("no account with that email: %w", domain.ErrNotFound)
	}
	if err := s.checkCooldown(ctx, l.LandlordID, domain.VerificationTypeReset); err != nil {
		return err
	}
	return s.issueCode(ctx, l, domain.VerificationTypeReset)
}

func (s *service) ResetPassword(ctx context.Context, req ResetPasswordRequest) error {
	l, err := s.landlordRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return fmt.Errorf("no account with that email: %w", domain.ErrNotFound)
	}
	if err := s.consumeCode(ctx, l.LandlordID, domain.VerificationTypeReset, req.Code); err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if err := s.landlordRepo.Update(ctx, l.LandlordID, map[string]interface{}{"password_hash": string(hash)}); err != nil {
		return err
	}
	s.notifier.QueuePasswordChangedNotice(l.Email, l.FullName)
	return nil
}

func (s *service) ChangePassword(ctx context.Context, landlordID string, req ChangePasswordRequest) error {
	l, err := s.landlordRepo.Get(ctx, landlordID)
	if err != nil {
		return fmt.Errorf("landlord not found: %w", domain.ErrNotFound)
	}
	if bcrypt.CompareHashAndPassword([]byte(l.PasswordHash), []byte(req.CurrentPassword)) != nil {
		return fmt.Errorf("current password is incorrect: %w", domain.ErrUnauthorized)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if err := s.landlordRepo.Update(ctx, landlordID, map[string]interface{}{"password_hash": string(hash)}); err != nil {
		return err
	}
	s.notifier.QueuePasswordChangedNotice(l.Email, l.FullName)
	return nil
}

// signToken guards against running without signing keys. The API boots in
// that state; auth flows must fail with an error, not a nil dereference.
func (s *service) signToken(userID, role string) (string, error) {
	if s.jwtProvider == nil {
		return "", errors.New("token signing is not configured")
	}
	return s.jwtProvider.Sign(userID, role)
}

// issueCode writes a fresh short code for the given purpose, replacing any
// live one, and enqueues the matching notice.
func (s *service) issueCode(ctx context.Context, l *domain.Landlord, verType string) error {
	code, err := pkgtoken.NewShortCode()
	if err != nil {
		return err
	}
	expiry := s.verifyExpiry
	if verType == domain.VerificationTypeReset {
		expiry = s.resetExpiry
	}
	v := &domain.EmailVerification{
		LandlordID: l.LandlordID,
		Type:       verType,
		Code:       code,
		ExpiresAt:  pkgtoken.Expiry(expiry).Unix(),
		IssuedAt:   time.Now().UTC().Unix(),
	}
	if err := s.verificationRepo.Put(ctx, v); err != nil {
		return err
	}
	if verType == domain.VerificationTypeReset {
		s.notifier.QueuePasswordResetNotice(l.Email, code, l.FullName)
	} else {
		s.notifier.QueueVerificationNotice(l.Email, code, l.FullName)
	}
	return nil
}

// checkCooldown rejects a reissue request made less than resendCooldown after
// the live code's IssuedAt. A missing record means no cooldown applies.
func (s *service) checkCooldown(ctx context.Context, landlordID, verType string) error {
	v, err := s.verificationRepo.Get(ctx, landlordID, verType)
	if errors.Is(err, domain.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("check resend cooldown: %w", err)
	}
	elapsed := time.Now().UTC().Unix() - v.IssuedAt
	if wait := int64(s.resendCooldown.Seconds()) - elapsed; wait > 0 {
		return &domain.TooManyRequestsError{RetryAfterSeconds: int(wait)}
	}
	return nil
}

// consumeCode validates a submitted code against the live record and deletes
// it on success. Codes are single use.
func (s *service) consumeCode(ctx context.Context, landlordID, verType, code string) error {
	v, err := s.verificationRepo.Get(ctx, landlordID, verType)
	if errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("code not found: %w", domain.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("load verification code: %w", err)
	}
	if v.Code != code {
		return fmt.Errorf("invalid code: %w", domain.ErrUnauthorized)
	}
	if pkgtoken.Expired(time.Unix(v.ExpiresAt, 0)) {
		return fmt.Errorf("code expired: %w", domain.ErrUnauthorized)
	}
	if err := s.verificationRepo.Delete(ctx, landlordID, verType); err != nil {
		slog.Warn("failed to delete verification record", "landlord_id", landlordID, "type", verType, "err", err)
	}
	return nil
}
