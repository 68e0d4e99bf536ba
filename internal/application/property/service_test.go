package property

import (
	"context"
	"errors"
	"testing"

	"github.com/frental-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockPropertyStore struct{ mock.Mock }

func (m *mockPropertyStore) Put(ctx context.Context, p *domain.Property) error {
	return m.Called(ctx, p).Error(0)
}
func (m *mockPropertyStore) Get(ctx context.Context, propertyID string) (*domain.Property, error) {
	args := m.Called(ctx, propertyID)
	if p, _ := args.Get(0).(*domain.Property); p != nil {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockPropertyStore) ListByLandlord(ctx context.Context, landlordID string) ([]domain.Property, error) {
	args := m.Called(ctx, landlordID)
	if ps, _ := args.Get(0).([]domain.Property); ps != nil {
		return ps, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockPropertyStore) Update(ctx context.Context, propertyID string, updates map[string]interface{}) error {
	return m.Called(ctx, propertyID, updates).Error(0)
}
func (m *mockPropertyStore) Delete(ctx context.Context, propertyID string) error {
	return m.Called(ctx, propertyID).Error(0)
}

type mockUnitStore struct{ mock.Mock }

func (m *mockUnitStore) ListByProperty(ctx context.Context, propertyID string) ([]domain.Unit, error) {
	args := m.Called(ctx, propertyID)
	if us, _ := args.Get(0).([]domain.Unit); us != nil {
		return us, args.Error(1)
	}
	return nil, args.Error(1)
}

func TestCreate_StampsOwnerAndTimes(t *testing.T) {
	ps := &mockPropertyStore{}
	ps.On("Put", mock.Anything, mock.MatchedBy(func(p *domain.Property) bool {
		return p.LandlordID == "l1" && p.PropertyID != "" && !p.CreatedAt.IsZero()
	})).Return(nil)

	svc := NewService(ServiceDeps{PropertyRepo: ps})
	p, err := svc.Create(context.Background(), "l1", domain.CreatePropertyRequest{
		Name: "Sunrise Court", Location: "Nairobi",
	})
	require.NoError(t, err)
	assert.Equal(t, "l1", p.LandlordID)
	ps.AssertExpectations(t)
}

func TestGet_OtherLandlord_Forbidden(t *testing.T) {
	ps := &mockPropertyStore{}
	ps.On("Get", mock.Anything, "p1").Return(&domain.Property{PropertyID: "p1", LandlordID: "l2"}, nil)

	svc := NewService(ServiceDeps{PropertyRepo: ps})
	_, err := svc.Get(context.Background(), "l1", "p1")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrForbidden))
}

func TestGet_JoinsUnits(t *testing.T) {
	ps := &mockPropertyStore{}
	us := &mockUnitStore{}
	ps.On("Get", mock.Anything, "p1").Return(&domain.Property{PropertyID: "p1", LandlordID: "l1"}, nil)
	us.On("ListByProperty", mock.Anything, "p1").Return([]domain.Unit{{UnitID: "u1"}}, nil)

	svc := NewService(ServiceDeps{PropertyRepo: ps, UnitRepo: us})
	p, err := svc.Get(context.Background(), "l1", "p1")
	require.NoError(t, err)
	require.Len(t, p.Units, 1)
	assert.Equal(t, "u1", p.Units[0].UnitID)
}

func TestUpdate_NotFound(t *testing.T) {
	ps := &mockPropertyStore{}
	ps.On("Get", mock.Anything, "p1").Return(nil, domain.ErrNotFound)

	svc := NewService(ServiceDeps{PropertyRepo: ps})
	name := "New Name"
	_, err := svc.Update(context.Background(), "l1", "p1", domain.UpdatePropertyRequest{Name: &name})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestUpdate_OnlyChangedFields(t *testing.T) {
	ps := &mockPropertyStore{}
	ps.On("Get", mock.Anything, "p1").Return(&domain.Property{PropertyID: "p1", LandlordID: "l1"}, nil)
	water := 120.0
	ps.On("Update", mock.Anything, "p1", map[string]interface{}{"water_price": water}).Return(nil)

	svc := NewService(ServiceDeps{PropertyRepo: ps})
	_, err := svc.Update(context.Background(), "l1", "p1", domain.UpdatePropertyRequest{WaterPrice: &water})
	require.NoError(t, err)
	ps.AssertExpectations(t)
}

func TestDelete_WithUnits_Conflict(t *testing.T) {
	ps := &mockPropertyStore{}
	us := &mockUnitStore{}
	ps.On("Get", mock.Anything, "p1").Return(&domain.Property{PropertyID: "p1", LandlordID: "l1"}, nil)
	us.On("ListByProperty", mock.Anything, "p1").Return([]domain.Unit{{UnitID: "u1"}}, nil)

	svc := NewService(ServiceDeps{PropertyRepo: ps, UnitRepo: us})
	err := svc.Delete(context.Background(), "l1", "p1")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrConflict))
	ps.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestDelete_Empty_HappyPath(t *testing.T) {
	ps := &mockPropertyStore{}
	us := &mockUnitStore{}
	ps.On("Get", mock.Anything, "p1").Return(&domain.Property{PropertyID: "p1", LandlordID: "l1"}, nil)
	us.On("ListByProperty", mock.Anything, "p1").Return([]domain.Unit{}, nil)
	ps.On("Delete", mock.Anything, "p1").Return(nil)

	svc := NewService(ServiceDeps{PropertyRepo: ps, UnitRepo: us})
	err := svc.Delete(context.Background(), "l1", "p1")
	require.NoError(t, err)
	ps.AssertExpectations(t)
}
