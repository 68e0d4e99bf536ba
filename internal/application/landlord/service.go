// Package landlord implements profile management and portfolio stats.
package landlord

import (
	"context"
	"fmt"
	"sort"

	"github.com/frental-api/internal/domain"
)

type LandlordStore interface {
	Get(ctx context.Context, landlordID string) (*domain.Landlord, error)
	GetByPhone(ctx context.Context, phone string) (*domain.Landlord, error)
	GetByEmail(ctx context.Context, email string) (*domain.Landlord, error)
	Update(ctx context.Context, landlordID string, updates map[string]interface{}) error
}

type PropertyStore interface {
	ListByLandlord(ctx context.Context, landlordID string) ([]domain.Property, error)
}

type UnitStore interface {
	ListByProperty(ctx context.Context, propertyID string) ([]domain.Unit, error)
}

// Dashboard is the landlord home screen payload.
type Dashboard struct {
	Stats       domain.DashboardStats `json:"stats"`
	RecentUnits []domain.Unit         `json:"recent_units"`
}

type Service interface {
	GetProfile(ctx context.Context, landlordID string) (*domain.Landlord, error)
	UpdateProfile(ctx context.Context, landlordID string, req domain.UpdateLandlordProfileRequest) (*domain.Landlord, error)
	GetDashboard(ctx context.Context, landlordID string) (*Dashboard, error)
}

type ServiceDeps struct {
	LandlordRepo LandlordStore
	PropertyRepo PropertyStore
	UnitRepo     UnitStore
}

type service struct {
	landlordRepo LandlordStore
	propertyRepo PropertyStore
	unitRepo     UnitStore
}

func NewService(deps ServiceDeps) Service {
	return &service{
		landlordRepo: deps.LandlordRepo,
		propertyRepo: deps.PropertyRepo,
		unitRepo:     deps.UnitRepo,
	}
}

func (s *service) GetProfile(ctx context.Context, landlordID string) (*domain.Landlord, error) {
	return s.landlordRepo.Get(ctx, landlordID)
}

func (s *service) UpdateProfile(ctx context.Context, landlordID string, req domain.UpdateLandlordProfileRequest) (*domain.Landlord, error) {
	current, err := s.landlordRepo.Get(ctx, landlordID)
	if err != nil {
		return nil, fmt.Errorf("landlord not found: %w", domain.ErrNotFound)
	}

	updates := map[string]interface{}{}
	if req.FullName != nil && *req.FullName != current.FullName {
		updates["full_name"] = *req.FullName
	}
	if req.Email != nil && *req.Email != current.Email {
		if other, err := s.landlordRepo.GetByEmail(ctx, *req.Email); err == nil && other.LandlordID != landlordID {
			return nil, fmt.Errorf("email already in use: %w", domain.ErrConflict)
		}
		updates["email"] = *req.Email
		// A new address has not been through the verification flow.
		updates["is_verified"] = false
	}
	if req.PhoneNumber != nil && *req.PhoneNumber != current.PhoneNumber {
		if other, err := s.landlordRepo.GetByPhone(ctx, *req.PhoneNumber); err == nil && other.LandlordID != landlordID {
			return nil, fmt.Errorf("phone number already in use: %w", domain.ErrConflict)
		}
		updates["phone_number"] = *req.PhoneNumber
	}
	if len(updates) == 0 {
		return current, nil
	}
	if err := s.landlordRepo.Update(ctx, landlordID, updates); err != nil {
		return nil, err
	}
	return s.landlordRepo.Get(ctx, landlordID)
}

func (s *service) GetDashboard(ctx context.Context, landlordID string) (*Dashboard, error) {
	props, err := s.propertyRepo.ListByLandlord(ctx, landlordID)
	if err != nil {
		return nil, err
	}

	var all []domain.Unit
	for _, p := range props {
		units, err := s.unitRepo.ListByProperty(ctx, p.PropertyID)
		if err != nil {
			return nil, err
		}
		all = append(all, units...)
	}

	stats := domain.DashboardStats{
		TotalProperties: len(props),
		TotalUnits:      len(all),
	}
	for _, u := range all {
		switch u.Status {
		case domain.UnitStatusVacant:
			stats.VacantUnits++
		case domain.UnitStatusOccupied:
			stats.OccupiedUnits++
		}
	}

	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	recent := all
	if len(recent) > 5 {
		recent = recent[:5]
	}
	if recent == nil {
		recent = []domain.Unit{}
	}

	return &Dashboard{Stats: stats, RecentUnits: recent}, nil
}
