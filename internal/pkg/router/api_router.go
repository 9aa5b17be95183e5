package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/ideaspark/ideaspark/app/controllers"
	"github.com/ideaspark/ideaspark/app/repository"
	"github.com/ideaspark/ideaspark/internal/pkg/billing"
	"github.com/ideaspark/ideaspark/internal/pkg/database"
	"github.com/ideaspark/ideaspark/internal/pkg/entitlement"
	"github.com/ideaspark/ideaspark/internal/pkg/env"
	"github.com/ideaspark/ideaspark/internal/pkg/ideagen"
	"github.com/ideaspark/ideaspark/internal/pkg/openai"
	"github.com/ideaspark/ideaspark/internal/pkg/youtube"
)

type ApiRouter struct {
}

// InstallRouter wires the services once from configuration and the shared
// DB handle, hands them to the controllers, and registers the API routes.
// This is the composition root: nothing below it reads process environment.
func (h ApiRouter) InstallRouter(app *fiber.App) {
	repository.InitializeGlobalFactory(database.GetDB())
	repos := repository.GetGlobalFactory().GetRepositories()

	entitlementService := entitlement.NewService(repos.UserCredit, repos.Subscription)
	stripeClient := billing.NewStripeClient(env.GetEnv("STRIPE_SECRET_KEY", ""))
	billingService := billing.NewService(stripeClient, repos.UserCredit, repos.Subscription, repos.PaymentEvent)
	videoClient := youtube.NewClient(env.GetEnv("YOUTUBE_API_KEY", ""))
	generator := openai.NewClient(env.GetEnv("OPENAI_API_KEY", ""))
	ideaService := ideagen.NewService(entitlementService, generator)

	controllers.InitializeAPIControllers(entitlementService, billingService, ideaService, videoClient)

	api := app.Group("/api", limiter.New(), cors.New(cors.Config{
		AllowOrigins:     env.GetEnv("FRONTEND_URL", "http://localhost:3000"),
		AllowMethods:     "GET,POST,DELETE,OPTIONS",
		AllowHeaders:     "Content-Type,Authorization",
		AllowCredentials: true,
	}))

	api.Post("/check-credits", controllers.HandleCheckCredits)
	api.Post("/create-payment-intent", controllers.HandleCreatePaymentIntent)
	api.Post("/confirm-subscription", controllers.HandleConfirmSubscription)
	api.Get("/check-subscription-status", controllers.HandleCheckSubscriptionStatus)

	api.Post("/generate-idea", controllers.HandleGenerateIdea)
	api.Get("/videos/:videoId", controllers.HandleGetVideo)
	api.Get("/trending", controllers.HandleGetTrending)

	api.Post("/save-idea", controllers.HandleSaveIdea)
	api.Get("/saved-ideas/:userId", controllers.HandleListSavedIdeas)
	api.Delete("/delete-idea/:ideaId", controllers.HandleDeleteIdea)
}

func NewApiRouter() *ApiRouter {
	return &ApiRouter{}
}
