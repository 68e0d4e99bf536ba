package unit

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/frental-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockUnitStore struct{ mock.Mock }

func (m *mockUnitStore) Put(ctx context.Context, u *domain.Unit) error {
	return m.Called(ctx, u).Error(0)
}
func (m *mockUnitStore) Get(ctx context.Context, unitID string) (*domain.Unit, error) {
	args := m.Called(ctx, unitID)
	if u, _ := args.Get(0).(*domain.Unit); u != nil {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockUnitStore) ListByProperty(ctx context.Context, propertyID string) ([]domain.Unit, error) {
	args := m.Called(ctx, propertyID)
	if us, _ := args.Get(0).([]domain.Unit); us != nil {
		return us, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockUnitStore) Update(ctx context.Context, unitID string, updates map[string]interface{}) error {
	return m.Called(ctx, unitID, updates).Error(0)
}
func (m *mockUnitStore) Delete(ctx context.Context, unitID string) error {
	return m.Called(ctx, unitID).Error(0)
}

type mockPropertyStore struct{ mock.Mock }

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

type mockImageStore struct{ mock.Mock }

func (m *mockImageStore) Upload(ctx context.Context, key string, r io.Reader, contentType string) (string, error) {
	args := m.Called(ctx, key, r, contentType)
	return args.String(0), args.Error(1)
}
func (m *mockImageStore) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}
func (m *mockImageStore) KeyFromURL(url string) string {
	return m.Called(url).String(0)
}

func ownedProperty(ps *mockPropertyStore) {
	ps.On("Get", mock.Anything, "p1").Return(&domain.Property{PropertyID: "p1", LandlordID: "l1"}, nil)
}

func TestCreate_DefaultsToVacant(t *testing.T) {
	us := &mockUnitStore{}
	ps := &mockPropertyStore{}
	ownedProperty(ps)
	us.On("Put", mock.Anything, mock.MatchedBy(func(u *domain.Unit) bool {
		return u.Status == domain.UnitStatusVacant && u.PropertyID == "p1" && u.UnitID != ""
	})).Return(nil)

	svc := NewService(ServiceDeps{UnitRepo: us, PropertyRepo: ps})
	u, err := svc.Create(context.Background(), "l1", domain.CreateUnitRequest{
		PropertyID: "p1", Name: "A1", Rent: 15000,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.UnitStatusVacant, u.Status)
	us.AssertExpectations(t)
}

func TestCreate_ForeignProperty_Forbidden(t *testing.T) {
	ps := &mockPropertyStore{}
	ps.On("Get", mock.Anything, "p1").Return(&domain.Property{PropertyID: "p1", LandlordID: "l2"}, nil)

	svc := NewService(ServiceDeps{PropertyRepo: ps})
	_, err := svc.Create(context.Background(), "l1", domain.CreateUnitRequest{
		PropertyID: "p1", Name: "A1", Rent: 15000,
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrForbidden))
}

func TestUpdateStatus_InvalidStatus(t *testing.T) {
	svc := NewService(ServiceDeps{})
	_, err := svc.UpdateStatus(context.Background(), "l1", "u1", "Demolished")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrBadRequest))
}

func TestUpdateStatus_HappyPath(t *testing.T) {
	us := &mockUnitStore{}
	ps := &mockPropertyStore{}
	ownedProperty(ps)
	us.On("Get", mock.Anything, "u1").Return(&domain.Unit{UnitID: "u1", PropertyID: "p1", Status: domain.UnitStatusVacant}, nil)
	us.On("Update", mock.Anything, "u1", map[string]interface{}{"status": domain.UnitStatusOccupied}).Return(nil)

	svc := NewService(ServiceDeps{UnitRepo: us, PropertyRepo: ps})
	_, err := svc.UpdateStatus(context.Background(), "l1", "u1", domain.UnitStatusOccupied)
	require.NoError(t, err)
	us.AssertExpectations(t)
}

func TestList_FiltersByStatus(t *testing.T) {
	us := &mockUnitStore{}
	ps := &mockPropertyStore{}
	ps.On("ListByLandlord", mock.Anything, "l1").Return([]domain.Property{{PropertyID: "p1", LandlordID: "l1"}}, nil)
	us.On("ListByProperty", mock.Anything, "p1").Return([]domain.Unit{
		{UnitID: "u1", Status: domain.UnitStatusVacant},
		{UnitID: "u2", Status: domain.UnitStatusOccupied},
	}, nil)

	svc := NewService(ServiceDeps{UnitRepo: us, PropertyRepo: ps})
	units, err := svc.List(context.Background(), "l1", "", domain.UnitStatusVacant)
	require.NoError(t, err)
	require.Len(t, units, 1)
	assert.Equal(t, "u1", units[0].UnitID)
}

func TestAddImages_TooMany(t *testing.T) {
	svc := NewService(ServiceDeps{})
	images := make([]ImageFile, MaxImagesPerUpload+1)
	for i := range images {
		images[i] = ImageFile{Filename: "a.jpg", Content: strings.NewReader("x")}
	}
	_, err := svc.AddImages(context.Background(), "l1", "u1", images)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrBadRequest))
}

func TestAddImages_RejectsNonImageContentType(t *testing.T) {
	is := &mockImageStore{}
	svc := NewService(ServiceDeps{Images: is})
	_, err := svc.AddImages(context.Background(), "l1", "u1", []ImageFile{
		{Filename: "notes.txt", ContentType: "text/plain", Content: strings.NewReader("x")},
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrBadRequest))
	is.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestAddImages_AppendsURLs(t *testing.T) {
	us := &mockUnitStore{}
	ps := &mockPropertyStore{}
	is := &mockImageStore{}
	ownedProperty(ps)
	us.On("Get", mock.Anything, "u1").Return(&domain.Unit{
		UnitID: "u1", PropertyID: "p1", ImageURLs: []string{"s3://b/units/u1/old.jpg"},
	}, nil)
	is.On("Upload", mock.Anything, mock.Anything, mock.Anything, "image/jpeg").Return("s3://b/units/u1/new.jpg", nil)
	us.On("Update", mock.Anything, "u1", map[string]interface{}{
		"image_urls": []string{"s3://b/units/u1/old.jpg", "s3://b/units/u1/new.jpg"},
	}).Return(nil)

	svc := NewService(ServiceDeps{UnitRepo: us, PropertyRepo: ps, Images: is})
	_, err := svc.AddImages(context.Background(), "l1", "u1", []ImageFile{
		{Filename: "a.jpg", ContentType: "image/jpeg", Content: strings.NewReader("jpeg-bytes")},
	})
	require.NoError(t, err)
	us.AssertExpectations(t)
	is.AssertExpectations(t)
}

func TestRemoveImage_UnknownURL_NotFound(t *testing.T) {
	us := &mockUnitStore{}
	ps := &mockPropertyStore{}
	ownedProperty(ps)
	us.On("Get", mock.Anything, "u1").Return(&domain.Unit{
		UnitID: "u1", PropertyID: "p1", ImageURLs: []string{"s3://b/units/u1/a.jpg"},
	}, nil)

	svc := NewService(ServiceDeps{UnitRepo: us, PropertyRepo: ps})
	_, err := svc.RemoveImage(context.Background(), "l1", "u1", "s3://b/units/u1/ghost.jpg")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestRemoveImage_S3FailureIsNotFatal(t *testing.T) {
	us := &mockUnitStore{}
	ps := &mockPropertyStore{}
	is := &mockImageStore{}
	ownedProperty(ps)
	us.On("Get", mock.Anything, "u1").Return(&domain.Unit{
		UnitID: "u1", PropertyID: "p1", ImageURLs: []string{"s3://b/units/u1/a.jpg"},
	}, nil)
	us.On("Update", mock.Anything, "u1", map[string]interface{}{"image_urls": []string{}}).Return(nil)
	is.On("KeyFromURL", "s3://b/units/u1/a.jpg").Return("units/u1/a.jpg")
	is.On("Delete", mock.Anything, "units/u1/a.jpg").Return(errors.New("s3 down"))

	svc := NewService(ServiceDeps{UnitRepo: us, PropertyRepo: ps, Images: is})
	_, err := svc.RemoveImage(context.Background(), "l1", "u1", "s3://b/units/u1/a.jpg")
	require.NoError(t, err)
	is.AssertExpectations(t)
}
