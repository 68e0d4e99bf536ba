package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/frental-api/internal/application/delivery"
	"github.com/frental-api/internal/config"
	"github.com/frental-api/internal/infrastructure/dynamo"
	"github.com/frental-api/internal/infrastructure/email"
	jwtinfra "github.com/frental-api/internal/infrastructure/jwt"
	s3infra "github.com/frental-api/internal/infrastructure/s3"
	"github.com/frental-api/internal/infrastructure/sns"
	transporthttp "github.com/frental-api/internal/transport/http"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading from environment")
	}

	cfg := config.Load()

	// Bootstrap DynamoDB tables (creates them if they don't exist).
	dynamoClient := dynamo.NewClient(cfg)
	dynamo.Bootstrap(context.Background(), dynamoClient, cfg.DynamoTables)

	// JWT provider is optional so the API can boot without signing keys.
	var jwtProvider *jwtinfra.Provider
	if p, err := jwtinfra.NewProvider(cfg); err == nil {
		jwtProvider = p
	} else {
		log.Printf("WARN: JWT provider not available: %v", err)
	}

	// S3 store for unit images.
	s3Client := s3infra.NewClient(cfg)
	s3Store := s3infra.NewStore(s3Client, cfg.S3BucketName)

	// Email delivery queue: Brevo primary, SMTP fallback.
	notifier := delivery.NewQueue(delivery.Options{
		Primary:     email.NewBrevoSender(cfg),
		Fallback:    email.NewSMTPSender(cfg),
		SkipEmails:  cfg.SkipEmails,
		MaxRetries:  cfg.MaxSendRetries,
		RetryDelay:  cfg.SendRetryDelay,
		SendTimeout: cfg.SendTimeout,
	})
	defer notifier.Close()

	// SNS SMS sender is optional; referrals skip the text when absent.
	var smsSender sns.SMSSender
	if sender, err := sns.NewSender(cfg); err == nil {
		smsSender = sender
	} else {
		log.Printf("WARN: SNS sender not available: %v", err)
	}

	deps := &transporthttp.Deps{
		LandlordRepo:     dynamo.NewLandlordRepo(dynamoClient, cfg.DynamoTables.Landlords),
		AdminRepo:        dynamo.NewAdminRepo(dynamoClient, cfg.DynamoTables.Admins),
		PropertyRepo:     dynamo.NewPropertyRepo(dynamoClient, cfg.DynamoTables.Properties),
		UnitRepo:         dynamo.NewUnitRepo(dynamoClient, cfg.DynamoTables.Units),
		ReferralRepo:     dynamo.NewReferralRepo(dynamoClient, cfg.DynamoTables.Referrals),
		VerificationRepo: dynamo.NewVerificationRepo(dynamoClient, cfg.DynamoTables.Verifications),
		S3Store:          s3Store,
		Notifier:         notifier,
		SMSSender:        smsSender,
		JWTProvider:      jwtProvider,
	}

	router := transporthttp.NewRouter(cfg, deps)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.AppPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on :%s (env=%s)", cfg.AppPort, cfg.AppEnv)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("forced shutdown: %v", err)
	}
	log.Println("Server stopped")
}
