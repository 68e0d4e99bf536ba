// Package unit implements unit CRUD, status transitions and image management.
package unit

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/frental-api/internal/domain"
	"github.com/frental-api/internal/pkg/id"
)

// MaxImagesPerUpload bounds a single image upload request.
const MaxImagesPerUpload = 5

type UnitStore interface {
	Put(ctx context.Context, u *domain.Unit) error
	Get(ctx context.Context, unitID string) (*domain.Unit, error)
	ListByProperty(ctx context.Context, propertyID string) ([]domain.Unit, error)
	Update(ctx context.Context, unitID string, updates map[string]interface{}) error
	Delete(ctx context.Context, unitID string) error
}

type PropertyStore interface {
	Get(ctx context.Context, propertyID string) (*domain.Property, error)
	ListByLandlord(ctx context.Context, landlordID string) ([]domain.Property, error)
}

// ImageStore is the S3-backed object store for unit photos.
type ImageStore interface {
	Upload(ctx context.Context, key string, r io.Reader, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
	KeyFromURL(url string) string
}

// ImageFile is one uploaded photo, already size-checked by the HTTP layer.
type ImageFile struct {
	Filename    string
	ContentType string
	Content     io.Reader
}

type Service interface {
	Create(ctx context.Context, landlordID string, req domain.CreateUnitRequest) (*domain.Unit, error)
	Get(ctx context.Context, landlordID, unitID string) (*domain.Unit, error)
	List(ctx context.Context, landlordID, propertyID, status string) ([]domain.Unit, error)
	Update(ctx context.Context, landlordID, unitID string, req domain.UpdateUnitRequest) (*domain.Unit, error)
	UpdateStatus(ctx context.Context, landlordID, unitID, status string) (*domain.Unit, error)
	Delete(ctx context.Context, landlordID, unitID string) error
	AddImages(ctx context.Context, landlordID, unitID string, images []ImageFile) (*domain.Unit, error)
	RemoveImage(ctx context.Context, landlordID, unitID, imageURL string) (*domain.Unit, error)
}

type ServiceDeps struct {
	UnitRepo     UnitStore
	PropertyRepo PropertyStore
	Images       ImageStore
}

type service struct {
	unitRepo     UnitStore
	propertyRepo PropertyStore
	images       ImageStore
}

func NewService(deps ServiceDeps) Service {
	return &service{
		unitRepo:     deps.UnitRepo,
		propertyRepo: deps.PropertyRepo,
		images:       deps.Images,
	}
}

func (s *service) Create(ctx context.Context, landlordID string, req domain.CreateUnitRequest) (*domain.Unit, error) {
	if _, err := s.ownedProperty(ctx, landlordID, req.PropertyID); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	u := &domain.Unit{
		UnitID:     id.New(),
		PropertyID: req.PropertyID,
		Name:       req.Name,
		Rent:       req.Rent,
		Deposit:    req.Deposit,
		Size:       req.Size,
		Bedrooms:   req.Bedrooms,
		Bathrooms:  req.Bathrooms,
		Amenities:  req.Amenities,
		ImageURLs:  []string{},
		Status:     domain.UnitStatusVacant,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.unitRepo.Put(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *service) Get(ctx context.Context, landlordID, unitID string) (*domain.Unit, error) {
	u, p, err := s.ownedUnit(ctx, landlordID, unitID)
	if err != nil {
		return nil, err
	}
	u.Property = p
	return u, nil
}

// List returns the landlord's units, optionally narrowed to one property
// and/or one status.
func (s *service) List(ctx context.Context, landlordID, propertyID, status string) ([]domain.Unit, error) {
	if status != "" && !domain.ValidUnitStatus(status) {
		return nil, fmt.Errorf("unknown unit status %q: %w", status, domain.ErrBadRequest)
	}

	var props []domain.Property
	if propertyID != "" {
		p, err := s.ownedProperty(ctx, landlordID, propertyID)
		if err != nil {
			return nil, err
		}
		props = []domain.Property{*p}
	} else {
		var err error
		props, err = s.propertyRepo.ListByLandlord(ctx, landlordID)
		if err != nil {
			return nil, err
		}
	}

	out := []domain.Unit{}
	for _, p := range props {
		units, err := s.unitRepo.ListByProperty(ctx, p.PropertyID)
		if err != nil {
			return nil, err
		}
		for _, u := range units {
			if status != "" && u.Status != status {
				continue
			}
			out = append(out, u)
		}
	}
	return out, nil
}

func (s *service) Update(ctx context.Context, landlordID, unitID string, req domain.UpdateUnitRequest) (*domain.Unit, error) {
	if _, _, err := s.ownedUnit(ctx, landlordID, unitID); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Rent != nil {
		updates["rent"] = *req.Rent
	}
	if req.Deposit != nil {
		updates["deposit"] = *req.Deposit
	}
	if req.Size != nil {
		updates["size"] = *req.Size
	}
	if req.Bedrooms != nil {
		updates["bedrooms"] = *req.Bedrooms
	}
	if req.Bathrooms != nil {
		updates["bathrooms"] = *req.Bathrooms
	}
	if req.Amenities != nil {
		updates["amenities"] = req.Amenities
	}
	if len(updates) > 0 {
		if err := s.unitRepo.Update(ctx, unitID, updates); err != nil {
			return nil, err
		}
	}
	return s.unitRepo.Get(ctx, unitID)
}

func (s *service) UpdateStatus(ctx context.Context, landlordID, unitID, status string) (*domain.Unit, error) {
	if !domain.ValidUnitStatus(status) {
		return nil, fmt.Errorf("unknown unit status %q: %w", status, domain.ErrBadRequest)
	}
	if _, _, err := s.ownedUnit(ctx, landlordID, unitID); err != nil {
		return nil, err
	}
	if err := s.unitRepo.Update(ctx, unitID, map[string]interface{}{"status": status}); err != nil {
		return nil, err
	}
	return s.unitRepo.Get(ctx, unitID)
}

func (s *service) Delete(ctx context.Context, landlordID, unitID string) error {
	u, _, err := s.ownedUnit(ctx, landlordID, unitID)
	if err != nil {
		return err
	}
	for _, url := range u.ImageURLs {
		s.deleteImage(ctx, url)
	}
	return s.unitRepo.Delete(ctx, unitID)
}

func (s *service) AddImages(ctx context.Context, landlordID, unitID string, images []ImageFile) (*domain.Unit, error) {
	if len(images) == 0 {
		return nil, fmt.Errorf("no images supplied: %w", domain.ErrBadRequest)
	}
	if len(images) > MaxImagesPerUpload {
		return nil, fmt.Errorf("at most %d images per upload: %w", MaxImagesPerUpload, domain.ErrBadRequest)
	}
	for _, img := range images {
		if !strings.HasPrefix(img.ContentType, "image/") {
			return nil, fmt.Errorf("%s is not an image: %w", img.Filename, domain.ErrBadRequest)
		}
	}
	u, _, err := s.ownedUnit(ctx, landlordID, unitID)
	if err != nil {
		return nil, err
	}

	urls := u.ImageURLs
	for _, img := range images {
		key := fmt.Sprintf("units/%s/%s%s", unitID, id.New(), filepath.Ext(img.Filename))
		url, err := s.images.Upload(ctx, key, img.Content, img.ContentType)
		if err != nil {
			return nil, fmt.Errorf("upload image: %w", err)
		}
		urls = append(urls, url)
	}

	if err := s.unitRepo.Update(ctx, unitID, map[string]interface{}{"image_urls": urls}); err != nil {
		return nil, err
	}
	return s.unitRepo.Get(ctx, unitID)
}

func (s *service) RemoveImage(ctx context.Context, landlordID, unitID, imageURL string) (*domain.Unit, error) {
	u, _, err := s.ownedUnit(ctx, landlordID, unitID)
	if err != nil {
		return nil, err
	}

	urls := make([]string, 0, len(u.ImageURLs))
	found := false
	for _, url := range u.ImageURLs {
		if url == imageURL {
			found = true
			continue
		}
		urls = append(urls, url)
	}
	if !found {
		return nil, fmt.Errorf("image not on unit: %w", domain.ErrNotFound)
	}

	if err := s.unitRepo.Update(ctx, unitID, map[string]interface{}{"image_urls": urls}); err != nil {
		return nil, err
	}
	// Object removal is best effort; the URL is already gone from the record.
	s.deleteImage(ctx, imageURL)
	return s.unitRepo.Get(ctx, unitID)
}

func (s *service) deleteImage(ctx context.Context, url string) {
	key := s.images.KeyFromURL(url)
	if key == "" {
		return
	}
	if err := s.images.Delete(ctx, key); err != nil {
		slog.Warn("could not delete unit image object", "key", key, "err", err)
	}
}

func (s *service) ownedProperty(ctx context.Context, landlordID, propertyID string) (*domain.Property, error) {
	p, err := s.propertyRepo.Get(ctx, propertyID)
	if err != nil {
		return nil, fmt.Errorf("property not found: %w", domain.ErrNotFound)
	}
	if p.LandlordID != landlordID {
		return nil, fmt.Errorf("property belongs to another landlord: %w", domain.ErrForbidden)
	}
	return p, nil
}

// ownedUnit resolves the unit and walks the ownership chain up through its
// property.
func (s *service) ownedUnit(ctx context.Context, landlordID, unitID string) (*domain.Unit, *domain.Property, error) {
	u, err := s.unitRepo.Get(ctx, unitID)
	if err != nil {
		return nil, nil, fmt.Errorf("unit not found: %w", domain.ErrNotFound)
	}
	p, err := s.ownedProperty(ctx, landlordID, u.PropertyID)
	if err != nil {
		return nil, nil, err
	}
	return u, p, nil
}
