package http

import (
	"net/http"

	"github.com/frental-api/internal/application/account"
	"github.com/frental-api/internal/application/admin"
	"github.com/frental-api/internal/application/delivery"
	"github.com/frental-api/internal/application/landlord"
	"github.com/frental-api/internal/application/property"
	"github.com/frental-api/internal/application/unit"
	"github.com/frental-api/internal/config"
	"github.com/frental-api/internal/domain"
	"github.com/frental-api/internal/infrastructure/dynamo"
	jwtinfra "github.com/frental-api/internal/infrastructure/jwt"
	s3infra "github.com/frental-api/internal/infrastructure/s3"
	"github.com/frental-api/internal/infrastructure/sns"
	"github.com/frental-api/internal/transport/http/handler"
	appmiddleware "github.com/frental-api/internal/transport/http/middleware"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"golang.org/x/time/rate"
)

// Deps holds all infrastructure dependencies for the router.
type Deps struct {
	LandlordRepo     *dynamo.LandlordRepo
	AdminRepo        *dynamo.AdminRepo
	PropertyRepo     *dynamo.PropertyRepo
	UnitRepo         *dynamo.UnitRepo
	ReferralRepo     *dynamo.ReferralRepo
	VerificationRepo *dynamo.VerificationRepo
	S3Store          *s3infra.Store
	Notifier         *delivery.Queue
	SMSSender        sns.SMSSender
	JWTProvider      *jwtinfra.Provider
}

// NewRouter builds and returns the application router.
func NewRouter(cfg *config.Config, deps *Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	var authMw func(http.Handler) http.Handler
	if deps.JWTProvider != nil {
		authMw = appmiddleware.Auth(deps.JWTProvider)
	} else {
		authMw = func(next http.Handler) http.Handler { return next }
	}
	verifiedMw := appmiddleware.RequireVerified(deps.LandlordRepo)

	// 5 requests/second, burst of 10, applied to sensitive public endpoints.
	sensitiveRL := appmiddleware.NewRateLimiter(rate.Limit(5), 10)

	accountDeps := account.ServiceDeps{
		LandlordRepo:     deps.LandlordRepo,
		AdminRepo:        deps.AdminRepo,
		VerificationRepo: deps.VerificationRepo,
		Notifier:         deps.Notifier,
		ResendCooldown:   cfg.ResendCooldown,
		VerifyExpiry:     cfg.VerifyExpiry,
		ResetExpiry:      cfg.ResetExpiry,
	}
	// A typed nil boxed into the TokenSigner interface would defeat the
	// service's nil check, so assign only a live provider.
	if deps.JWTProvider != nil {
		accountDeps.JWTProvider = deps.JWTProvider
	}
	accountSvc := account.NewService(accountDeps)
	landlordSvc := landlord.NewService(landlord.ServiceDeps{
		LandlordRepo: deps.LandlordRepo,
		PropertyRepo: deps.PropertyRepo,
		UnitRepo:     deps.UnitRepo,
	})
	propertySvc := property.NewService(property.ServiceDeps{
		PropertyRepo: deps.PropertyRepo,
		UnitRepo:     deps.UnitRepo,
	})
	unitSvc := unit.NewService(unit.ServiceDeps{
		UnitRepo:     deps.UnitRepo,
		PropertyRepo: deps.PropertyRepo,
		Images:       deps.S3Store,
	})
	adminSvc := admin.NewService(admin.ServiceDeps{
		LandlordRepo: deps.LandlordRepo,
		PropertyRepo: deps.PropertyRepo,
		UnitRepo:     deps.UnitRepo,
		ReferralRepo: deps.ReferralRepo,
		SMSSender:    deps.SMSSender,
	})

	healthH := handler.NewHealthHandler()
	authH := handler.NewAuthHandler(accountSvc)
	landlordH := handler.NewLandlordHandler(landlordSvc, accountSvc)
	propertyH := handler.NewPropertyHandler(propertySvc)
	unitH := handler.NewUnitHandler(unitSvc)
	adminH := handler.NewAdminHandler(adminSvc)

	r.Route("/v1", func(r chi.Router) {
		// ── Public routes (no auth) ──────────────────────────────────────────
		r.Get("/health-check/{action}", healthH.Ping)
		r.With(sensitiveRL.Limit).Post("/auth/register-landlord", authH.RegisterLandlord)
		r.Post("/auth/login-landlord", authH.LoginLandlord)
		r.Post("/auth/login-admin", authH.LoginAdmin)
		r.Post("/auth/verify-email", authH.VerifyEmail)
		r.With(sensitiveRL.Limit).Post("/auth/resend-verification", authH.ResendVerification)
		r.With(sensitiveRL.Limit).Post("/auth/forgot-password", authH.ForgotPassword)
		r.Post("/auth/reset-password", authH.ResetPassword)

		// ── Landlord routes ──────────────────────────────────────────────────
		r.Group(func(r chi.Router) {
			r.Use(authMw)
			r.Use(appmiddleware.RequireRole(domain.RoleLandlord))

			r.Get("/landlords/profile", landlordH.GetProfile)
			r.Put("/landlords/profile", landlordH.UpdateProfile)
			r.Put("/landlords/password", landlordH.ChangePassword)
			r.Get("/landlords/dashboard", landlordH.GetDashboard)

			r.Get("/properties", propertyH.List)
			r.Get("/properties/{id}", propertyH.Get)
			r.Get("/units", unitH.List)
			r.Get("/units/{id}", unitH.Get)

			// Mutations require a verified email.
			r.Group(func(r chi.Router) {
				r.Use(verifiedMw)

				r.Post("/properties", propertyH.Create)
				r.Put("/properties/{id}", propertyH.Update)
				r.Delete("/properties/{id}", propertyH.Delete)

				r.Post("/units", unitH.Create)
				r.Put("/units/{id}", unitH.Update)
				r.Patch("/units/{id}/status", unitH.UpdateStatus)
				r.Delete("/units/{id}", unitH.Delete)
				r.Post("/units/{id}/images", unitH.AddImages)
				r.Delete("/units/{id}/images", unitH.RemoveImage)
			})
		})

		// ── Admin routes ─────────────────────────────────────────────────────
		r.Group(func(r chi.Router) {
			r.Use(authMw)
			r.Use(appmiddleware.RequireRole(domain.RoleAdmin))

			r.Get("/admin/dashboard", adminH.GetDashboard)
			r.Get("/admin/landlords", adminH.ListLandlords)
			r.Get("/admin/properties", adminH.ListProperties)
			r.Get("/admin/properties/{id}", adminH.GetProperty)
			r.Get("/admin/vacant-units", adminH.SearchVacantUnits)
			r.Get("/admin/referrals", adminH.ListReferrals)
			r.Post("/admin/referrals", adminH.CreateReferral)
			r.Patch("/admin/referrals/{id}/status", adminH.UpdateReferralStatus)
		})
	})

	return r
}
