// Package property implements landlord-scoped property CRUD.
package property

import (
	"context"
	"fmt"
	"time"

	"github.com/frental-api/internal/domain"
	"github.com/frental-api/internal/pkg/id"
)

type PropertyStore interface {
	Put(ctx context.Context, p *domain.Property) error
	Get(ctx context.Context, propertyID string) (*domain.Property, error)
	ListByLandlord(ctx context.Context, landlordID string) ([]domain.Property, error)
	Update(ctx context.Context, propertyID string, updates map[string]interface{}) error
	Delete(ctx context.Context, propertyID string) error
}

type UnitStore interface {
	ListByProperty(ctx context.Context, propertyID string) ([]domain.Unit, error)
}

type Service interface {
	Create(ctx context.Context, landlordID string, req domain.CreatePropertyRequest) (*domain.Property, error)
	Get(ctx context.Context, landlordID, propertyID string) (*domain.Property, error)
	List(ctx context.Context, landlordID string) ([]domain.Property, error)
	Update(ctx context.Context, landlordID, propertyID string, req domain.UpdatePropertyRequest) (*domain.Property, error)
	Delete(ctx context.Context, landlordID, propertyID string) error
}

type ServiceDeps struct {
	PropertyRepo PropertyStore
	UnitRepo     UnitStore
}

type service struct {
	propertyRepo PropertyStore
	unitRepo     UnitStore
}

func NewService(deps ServiceDeps) Service {
	return &service{propertyRepo: deps.PropertyRepo, unitRepo: deps.UnitRepo}
}

func (s *service) Create(ctx context.Context, landlordID string, req domain.CreatePropertyRequest) (*domain.Property, error) {
	now := time.Now().UTC()
	p := &domain.Property{
		PropertyID:       id.New(),
		LandlordID:       landlordID,
		Name:             req.Name,
		Location:         req.Location,
		WaterPrice:       req.WaterPrice,
		ElectricityPrice: req.ElectricityPrice,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := s.propertyRepo.Put(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) Get(ctx context.Context, landlordID, propertyID string) (*domain.Property, error) {
	p, err := s.owned(ctx, landlordID, propertyID)
	if err != nil {
		return nil, err
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

func (s *service) List(ctx context.Context, landlordID string) ([]domain.Property, error) {
	props, err := s.propertyRepo.ListByLandlord(ctx, landlordID)
	if err != nil {
		return nil, err
	}
	if props == nil {
		props = []domain.Property{}
	}
	return props, nil
}

func (s *service) Update(ctx context.Context, landlordID, propertyID string, req domain.UpdatePropertyRequest) (*domain.Property, error) {
	if _, err := s.owned(ctx, landlordID, propertyID); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Location != nil {
		updates["location"] = *req.Location
	}
	if req.WaterPrice != nil {
		updates["water_price"] = *req.WaterPrice
	}
	if req.ElectricityPrice != nil {
		updates["electricity_price"] = *req.ElectricityPrice
	}
	if len(updates) > 0 {
		if err := s.propertyRepo.Update(ctx, propertyID, updates); err != nil {
			return nil, err
		}
	}
	return s.propertyRepo.Get(ctx, propertyID)
}

func (s *service) Delete(ctx context.Context, landlordID, propertyID string) error {
	if _, err := s.owned(ctx, landlordID, propertyID); err != nil {
		return err
	}
	units, err := s.unitRepo.ListByProperty(ctx, propertyID)
	if err != nil {
		return err
	}
	if len(units) > 0 {
		return fmt.Errorf("property still has units: %w", domain.ErrConflict)
	}
	return s.propertyRepo.Delete(ctx, propertyID)
}

// owned fetches the property and verifies it belongs to landlordID.
func (s *service) owned(ctx context.Context, landlordID, propertyID string) (*domain.Property, error) {
	p, err := s.propertyRepo.Get(ctx, propertyID)
	if err != nil {
		return nil, fmt.Errorf("property not found: %w", domain.ErrNotFound)
	}
	if p.LandlordID != landlordID {
		return nil, fmt.Errorf("property belongs to another landlord: %w", domain.ErrForbidden)
	}
	return p, nil
}
