// Package admin implements the platform-wide dashboard, directories and the
// referral workflow.
package admin

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/frental-api/internal/domain"
	"github.com/frental-api/internal/infrastructure/sns"
	"github.com/frental-api/internal/pkg/id"
)

type LandlordStore interface {
	Scan(ctx context.Context) ([]domain.Landlord, error)
	Search(ctx context.Context, query string) ([]domain.Landlord, error)
}

type PropertyStore interface {
	Get(ctx context.Context, propertyID string) (*domain.Property, error)
	Scan(ctx context.Context) ([]domain.Property, error)
}

type UnitStore interface {
	Get(ctx context.Context, unitID string) (*domain.Unit, error)
	ListByProperty(ctx context.Context, propertyID string) ([]domain.Unit, error)
	ListByStatus(ctx context.Context, status string) ([]domain.Unit, error)
	Scan(ctx context.Context) ([]domain.Unit, error)
}

type ReferralStore interface {
	Put(ctx context.Context, r *domain.Referral) error
	Get(ctx context.Context, referralID string) (*domain.Referral, error)
	List(ctx context.Context, status string) ([]domain.Referral, error)
	Update(ctx context.Context, referralID string, updates map[string]interface{}) error
}

type Service interface {
	GetDashboard(ctx context.Context) (*domain.AdminDashboard, error)
	ListLandlords(ctx context.Context, query string) ([]domain.Landlord, error)
	ListProperties(ctx context.Context, query string) ([]domain.Property, error)
	GetProperty(ctx context.Context, propertyID string) (*domain.Property, error)
	SearchVacantUnits(ctx context.Context, query string, maxRent float64) ([]domain.Unit, error)
	CreateReferral(ctx context.Context, adminID string, req domain.CreateReferralRequest) (*domain.Referral, error)
	ListReferrals(ctx context.Context, status string) ([]domain.Referral, error)
	UpdateReferralStatus(ctx context.Context, referralID, status string) (*domain.Referral, error)
}

type ServiceDeps struct {
	LandlordRepo LandlordStore
	PropertyRepo PropertyStore
	UnitRepo     UnitStore
	ReferralRepo ReferralStore
	SMSSender    sns.SMSSender // optional; nil disables client SMS
}

type service struct {
	landlordRepo LandlordStore
	propertyRepo PropertyStore
	unitRepo     UnitStore
	referralRepo ReferralStore
	smsSender    sns.SMSSender
}

func NewService(deps ServiceDeps) Service {
	return &service{
		landlordRepo: deps.LandlordRepo,
		propertyRepo: deps.PropertyRepo,
		unitRepo:     deps.UnitRepo,
		referralRepo: deps.ReferralRepo,
		smsSender:    deps.SMSSender,
	}
}

func (s *service) GetDashboard(ctx context.Context) (*domain.AdminDashboard, error) {
	landlords, err := s.landlordRepo.Scan(ctx)
	if err != nil {
		return nil, err
	}
	props, err := s.propertyRepo.Scan(ctx)
	if err != nil {
		return nil, err
	}
	units, err := s.unitRepo.Scan(ctx)
	if err != nil {
		return nil, err
	}
	refs, err := s.referralRepo.List(ctx, "")
	if err != nil {
		return nil, err
	}
	if len(refs) > 5 {
		refs = refs[:5]
	}
	if refs == nil {
		refs = []domain.Referral{}
	}

	d := &domain.AdminDashboard{
		TotalLandlords:  len(landlords),
		TotalProperties: len(props),
		TotalUnits:      len(units),
		RecentReferrals: refs,
	}
	for _, u := range units {
		switch u.Status {
		case domain.UnitStatusVacant:
			d.VacantUnits++
		case domain.UnitStatusOccupied:
			d.OccupiedUnits++
		}
	}
	return d, nil
}

func (s *service) ListLandlords(ctx context.Context, query string) ([]domain.Landlord, error) {
	if query != "" {
		return s.landlordRepo.Search(ctx, query)
	}
	return s.landlordRepo.Scan(ctx)
}

func (s *service) ListProperties(ctx context.Context, query string) ([]domain.Property, error) {
	props, err := s.propertyRepo.Scan(ctx)
	if err != nil {
		return nil, err
	}
	if query == "" {
		return props, nil
	}
	q := strings.ToLower(query)
	out := []domain.Property{}
	for _, p := range props {
		if strings.Contains(strings.ToLower(p.Name), q) || strings.Contains(strings.ToLower(p.Location), q) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *service) GetProperty(ctx context.Context, propertyID string) (*domain.Property, error) {
	p, err := s.propertyRepo.Get(ctx, propertyID)
	if err != nil {
		return nil, fmt.Errorf("property not found: %w", domain.ErrNotFound)
	}
	units, err := s.unitRepo.ListByProperty(ctx, propertyID)
	if err != nil {
		return nil, err
	}
	if units == nil {
		units = []domain.Unit{}
	}
	p.Units = units
	return p, nil
}

// SearchVacantUnits matches vacant units by free text against the unit and
// parent property names and locations, optionally capped by rent.
func (s *service) SearchVacantUnits(ctx context.Context, query string, maxRent float64) ([]domain.Unit, error) {
	units, err := s.unitRepo.ListByStatus(ctx, domain.UnitStatusVacant)
	if err != nil {
		return nil, err
	}

	q := strings.ToLower(query)
	out := []domain.Unit{}
	for _, u := range units {
		if maxRent > 0 && u.Rent > maxRent {
			continue
		}
		p, err := s.propertyRepo.Get(ctx, u.PropertyID)
		if err != nil {
			slog.Warn("vacant unit has no parent property", "unit_id", u.UnitID, "property_id", u.PropertyID)
			continue
		}
		if q != "" &&
			!strings.Contains(strings.ToLower(u.Name), q) &&
			!strings.Contains(strings.ToLower(p.Name), q) &&
			!strings.Contains(strings.ToLower(p.Location), q) {
			continue
		}
		u.Property = p
		out = append(out, u)
	}
	return out, nil
}

func (s *service) CreateReferral(ctx context.Context, adminID string, req domain.CreateReferralRequest) (*domain.Referral, error) {
	u, err := s.unitRepo.Get(ctx, req.UnitID)
	if err != nil {
		return nil, fmt.Errorf("unit not found: %w", domain.ErrNotFound)
	}
	if u.Status != domain.UnitStatusVacant {
		return nil, fmt.Errorf("unit is not vacant: %w", domain.ErrConflict)
	}

	now := time.Now().UTC()
	ref := &domain.Referral{
		ReferralID:  id.New(),
		AdminID:     adminID,
		UnitID:      req.UnitID,
		ClientName:  req.ClientName,
		ClientPhone: req.ClientPhone,
		ClientEmail: req.ClientEmail,
		ReferralFee: req.ReferralFee,
		Notes:       req.Notes,
		Status:      domain.ReferralStatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.referralRepo.Put(ctx, ref); err != nil {
		return nil, err
	}

	if s.smsSender != nil {
		msg := fmt.Sprintf("Hi %s, you have been referred to unit %s. An agent will contact you shortly.",
			req.ClientName, u.Name)
		if err := s.smsSender.SendSMS(ctx, req.ClientPhone, msg); err != nil {
			slog.Warn("could not send referral SMS", "referral_id", ref.ReferralID, "err", err)
		}
	}

	ref.Unit = u
	return ref, nil
}

func (s *service) ListReferrals(ctx context.Context, status string) ([]domain.Referral, error) {
	if status != "" && !domain.ValidReferralStatus(status) {
		return nil, fmt.Errorf("unknown referral status %q: %w", status, domain.ErrBadRequest)
	}
	refs, err := s.referralRepo.List(ctx, status)
	if err != nil {
		return nil, err
	}
	if refs == nil {
		refs = []domain.Referral{}
	}
	for i := range refs {
		if u, err := s.unitRepo.Get(ctx, refs[i].UnitID); err == nil {
			refs[i].Unit = u
		}
	}
	return refs, nil
}

func (s *service) UpdateReferralStatus(ctx context.Context, referralID, status string) (*domain.Referral, error) {
	if !domain.ValidReferralStatus(status) {
		return nil, fmt.Errorf("unknown referral status %q: %w", status, domain.ErrBadRequest)
	}
	if _, err := s.referralRepo.Get(ctx, referralID); err != nil {
		return nil, fmt.Errorf("referral not found: %w", domain.ErrNotFound)
	}
	if err := s.referralRepo.Update(ctx, referralID, map[string]interface{}{"status": status}); err != nil {
		return nil, err
	}
	return s.referralRepo.Get(ctx, referralID)
}
