package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/hrunx/Gasable-sub001/internal/application/auth"
	"github.com/hrunx/Gasable-sub001/internal/application/onboarding"
	"github.com/hrunx/Gasable-sub001/internal/application/pricing"
	"github.com/hrunx/Gasable-sub001/internal/application/usecase"
)

// RouterDeps dependencies for the router.
type RouterDeps struct {
	CompanyUC  *usecase.CompanyUseCase
	AuthUC     *auth.UseCase
	Onboarding *onboarding.Manager
	Pricing    *pricing.Service
	JWTSecret  string
}

// Router registers the API routes.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (public)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Companies (public: tenant bootstrap happens before a token exists)
	companies := api.Group("/companies")
	companyHandler := NewCompanyHandler(deps.CompanyUC)
	companies.Get("/", companyHandler.List)
	companies.Post("/", companyHandler.Create)
	companies.Get("/:id", companyHandler.GetByID)

	// Protected routes (require Bearer token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Onboarding wizard (protected)
	ob := protected.Group("/onboarding")
	onboardingHandler := NewOnboardingHandler(deps.Onboarding)
	ob.Get("/", onboardingHandler.GetSession)
	ob.Delete("/", onboardingHandler.Reset)
	ob.Post("/advance", onboardingHandler.Advance)
	ob.Post("/back", onboardingHandler.Back)
	ob.Post("/draft", onboardingHandler.SaveDraft)
	ob.Put("/store", onboardingHandler.UpdateStore)
	ob.Put("/product", onboardingHandler.UpdateProduct)
	ob.Put("/product/attributes", onboardingHandler.UpdateProductAttributes)
	ob.Delete("/product/:index", onboardingHandler.RemoveProduct)
	ob.Put("/logistics", onboardingHandler.UpdateLogistics)

	// Delivery zones and pricing (protected)
	zones := protected.Group("/zones")
	zoneHandler := NewZoneHandler(deps.Pricing)
	zones.Post("/", zoneHandler.Create)
	zones.Get("/", zoneHandler.List)
	zones.Get("/stats", zoneHandler.Stats)
	zones.Post("/resolve", zoneHandler.ResolveZone)
	zones.Get("/:id", zoneHandler.GetByID)
	zones.Put("/:id", zoneHandler.Update)
	zones.Delete("/:id", zoneHandler.Delete)
	zones.Post("/:id/assignments", zoneHandler.AssignProducts)
	zones.Get("/:id/assignments", zoneHandler.ListAssignments)
	zones.Put("/:id/assignments/:productId", zoneHandler.UpdateAssignment)
	zones.Delete("/:id/assignments/:productId", zoneHandler.RemoveAssignment)
	zones.Get("/:id/effective-price", zoneHandler.EffectivePrice)
}
