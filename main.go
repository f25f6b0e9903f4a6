package main

import (
	"context"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/davidromero/Backend-LinkHub/src/config"
	"github.com/davidromero/Backend-LinkHub/src/controllers"
	"github.com/davidromero/Backend-LinkHub/src/lib"
	"github.com/davidromero/Backend-LinkHub/src/middleware"
	"github.com/davidromero/Backend-LinkHub/src/repository"
	"github.com/davidromero/Backend-LinkHub/src/routes"
	"github.com/davidromero/Backend-LinkHub/src/services"
)

func main() {
	cfg := config.Load()
	logger := lib.NewLogger(cfg.Env)

	client, db, err := lib.ConnectDB(cfg, logger)
	if err != nil {
		logger.Error("failed to connect to MongoDB", "error", err)
		os.Exit(1)
	}
	defer client.Disconnect(context.Background())

	if err := lib.EnsureIndexes(context.Background(), db); err != nil {
		logger.Error("failed to create indexes", "error", err)
		os.Exit(1)
	}

	userRepo := repository.NewMongoUserRepository(db)
	connectionRepo := repository.NewMongoConnectionRepository(client, db)
	postRepo := repository.NewMongoPostRepository(db)
	notificationRepo := repository.NewMongoNotificationRepository(db)

	connectionService := services.NewConnectionService(connectionRepo, userRepo, notificationRepo, logger)
	postService := services.NewPostService(postRepo, userRepo, notificationRepo, logger)

	controllers.Init(logger, cfg.IsDevelopment())
	authController := controllers.NewAuthController(userRepo, cfg.JWTSecret)
	userController := controllers.NewUserController(userRepo)
	postController := controllers.NewPostController(postService)
	connectionController := controllers.NewConnectionController(connectionService)
	notificationController := controllers.NewNotificationController(notificationRepo, userRepo)

	app := fiber.New(fiber.Config{
		BodyLimit: cfg.BodyLimit,
	})

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	app.Use(middleware.Metrics())

	protect := middleware.Protect(userRepo, cfg.JWTSecret)
	routes.AuthRoutes(app, authController, protect)
	routes.UserRoutes(app, userController, protect)
	routes.PostRoutes(app, postController, protect)
	routes.ConnectionRoutes(app, connectionController, protect)
	routes.NotificationRoutes(app, notificationController, protect)

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	app.Get("/api/health", func(c *fiber.Ctx) error {
		database := "connected"
		if err := client.Ping(c.Context(), nil); err != nil {
			database = "disconnected"
		}
		return c.JSON(fiber.Map{
			"status":   "healthy",
			"database": database,
		})
	})

	app.Static("/", "./public")

	logger.Info("server listening", "port", cfg.Port, "env", cfg.Env)
	if err := app.Listen(":" + cfg.Port); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
