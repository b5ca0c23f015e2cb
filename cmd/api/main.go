package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"

	"repurposly_backend/internal/controller"
	"repurposly_backend/internal/middleware"
	"repurposly_backend/internal/model"
	"repurposly_backend/pkg/analytics"
	"repurposly_backend/pkg/config"
	"repurposly_backend/pkg/cron"
	"repurposly_backend/pkg/database"
	"repurposly_backend/pkg/dodo"
	"repurposly_backend/pkg/email"
	"repurposly_backend/pkg/generator"
	"repurposly_backend/pkg/youtube"
)

func setupRoutes(app *fiber.App) {
	api := app.Group("/api")

	// Auth Routes
	auth := api.Group("/auth")
	auth.Post("/register", controller.Register)
	auth.Post("/login", controller.Login)

	// Protected Routes
	protected := api.Group("/", middleware.AuthMiddleware())
	protected.Get("/me", controller.GetMe)

	// Transcript + generation pipeline
	protected.Post("/youtube/transcript", controller.GetTranscript)
	protected.Post("/generate", middleware.CheckUsageLimit(), controller.GenerateContent)

	// Usage routes
	usage := api.Group("/usage", middleware.AuthMiddleware())
	usage.Get("/check", controller.CheckUsage)
	usage.Post("/increment", controller.IncrementUsage)

	// Subscription routes
	subscriptions := api.Group("/subscriptions")
	subscriptions.Get("/plans", controller.ListPlans)

	subProtected := subscriptions.Use(middleware.AuthMiddleware())
	subProtected.Post("/create-checkout", controller.CreateCheckoutSession)
	subProtected.Get("/my", controller.GetMySubscription)

	// Dodo webhook
	api.Post("/webhook", controller.HandleDodoWebhook)
}

func main() {
	cfg := config.Load()

	if cfg.Resend.APIKey != "" {
		if err := email.InitEmailService(cfg.Resend.APIKey); err != nil {
			log.Fatal("Could not initialize email service:", err)
		}
	} else {
		log.Println("RESEND_API_KEY not set, lifecycle emails disabled")
	}

	if err := analytics.Init(cfg.PostHog.APIKey, cfg.PostHog.Host); err != nil {
		log.Fatal("Could not initialize analytics:", err)
	}
	defer analytics.Close()

	controller.InitAuthController()
	controller.InitSubscriptionController(dodo.NewClient(cfg.Dodo.APIKey, cfg.Dodo.Environment), cfg.Dodo)
	controller.InitWebhookController(cfg.Dodo.WebhookSecret)
	controller.InitGenerateController(generator.NewService(cfg.OpenAI.APIKey), youtube.NewFetcher())

	if cfg.Database.URL == "" {
		log.Fatal("DATABASE_URL is not set in .env")
	}

	database.InitDB(cfg.Database.URL)
	err := database.MigrateDatabase(
		&model.User{},
		&model.Subscription{},
		&model.UsageTracking{},
		&model.Transcript{},
		&model.GeneratedContent{},
	)
	if err != nil {
		log.Printf("Migration warning: %v", err)
	}

	cron.InitSubscriptionExpiryCron()

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	app.Use(logger.New())
	app.Use(cors.New())

	setupRoutes(app)

	log.Printf("Server is running on port %s", cfg.Server.Port)
	log.Fatal(app.Listen(":" + cfg.Server.Port))
}
