// Command seed provisions the bootstrap admin account and a demo landlord
// portfolio. Safe to run repeatedly: existing accounts are left untouched.
package main

import (
	"context"
	"log"
	"time"

	"github.com/frental-api/internal/config"
	"github.com/frental-api/internal/domain"
	"github.com/frental-api/internal/infrastructure/dynamo"
	"github.com/frental-api/internal/pkg/id"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading from environment")
	}

	cfg := config.Load()
	ctx := context.Background()

	client := dynamo.NewClient(cfg)
	dynamo.Bootstrap(ctx, client, cfg.DynamoTables)

	adminRepo := dynamo.NewAdminRepo(client, cfg.DynamoTables.Admins)
	landlordRepo := dynamo.NewLandlordRepo(client, cfg.DynamoTables.Landlords)
	propertyRepo := dynamo.NewPropertyRepo(client, cfg.DynamoTables.Properties)
	unitRepo := dynamo.NewUnitRepo(client, cfg.DynamoTables.Units)

	now := time.Now().UTC()

	if _, err := adminRepo.GetByEmail(ctx, "admin@frental.app"); err != nil {
		hash := mustHash("admin1234")
		admin := &domain.Admin{
			AdminID:      id.New(),
			Username:     "admin",
			Email:        "admin@frental.app",
			PasswordHash: hash,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := adminRepo.Put(ctx, admin); err != nil {
			log.Fatalf("seed admin: %v", err)
		}
		log.Printf("created admin %s", admin.Email)
	} else {
		log.Println("admin already exists, skipping")
	}

	if _, err := landlordRepo.GetByPhone(ctx, "0712345678"); err == nil {
		log.Println("demo landlord already exists, skipping")
		return
	}

	landlord := &domain.Landlord{
		LandlordID:   id.New(),
		FullName:     "Demo Landlord",
		PhoneNumber:  "0712345678",
		Email:        "landlord@frental.app",
		PasswordHash: mustHash("landlord1234"),
		IsVerified:   true,
		Enable:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := landlordRepo.Put(ctx, landlord); err != nil {
		log.Fatalf("seed landlord: %v", err)
	}

	water, power := 150.0, 25.0
	property := &domain.Property{
		PropertyID:       id.New(),
		LandlordID:       landlord.LandlordID,
		Name:             "Sunrise Court",
		Location:         "Westlands, Nairobi",
		WaterPrice:       &water,
		ElectricityPrice: &power,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := propertyRepo.Put(ctx, property); err != nil {
		log.Fatalf("seed property: %v", err)
	}

	bedrooms := 1
	units := []domain.Unit{
		{Name: "A1", Rent: 18000, Status: domain.UnitStatusVacant},
		{Name: "A2", Rent: 18000, Status: domain.UnitStatusOccupied},
		{Name: "B1", Rent: 25000, Status: domain.UnitStatusVacant},
	}
	for _, u := range units {
		u.UnitID = id.New()
		u.PropertyID = property.PropertyID
		u.Bedrooms = &bedrooms
		u.Amenities = []string{"Water", "Parking"}
		u.ImageURLs = []string{}
		u.CreatedAt = now
		u.UpdatedAt = now
		if err := unitRepo.Put(ctx, &u); err != nil {
			log.Fatalf("seed unit %s: %v", u.Name, err)
		}
	}

	log.Printf("seeded landlord %s with property %s and %d units",
		landlord.Email, property.Name, len(units))
}

func mustHash(pw string) string {
	h, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("hash password: %v", err)
	}
	return string(h)
}
