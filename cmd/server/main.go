package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	swagger "github.com/gofiber/swagger"
	"github.com/techieblitz/assignment-tracker/internal/config"
	"github.com/techieblitz/assignment-tracker/internal/database"
	"github.com/techieblitz/assignment-tracker/internal/handlers"
	"github.com/techieblitz/assignment-tracker/internal/mailer"
	"github.com/techieblitz/assignment-tracker/internal/middleware"
	"github.com/techieblitz/assignment-tracker/internal/repository"
	"github.com/techieblitz/assignment-tracker/internal/scheduler"
	"github.com/techieblitz/assignment-tracker/internal/services"
	"github.com/techieblitz/assignment-tracker/internal/trello"
	"github.com/techieblitz/assignment-tracker/internal/types"

	_ "github.com/techieblitz/assignment-tracker/docs/api" // Swagger docs
)

// @title Assignment Tracker API
// @version 1.0.0
// @description Assignment tracking service with Trello board synchronization and due-date reminders

// @host localhost:3000
// @BasePath /api

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close(db)

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// External collaborators
	board := trello.NewClient(cfg.TrelloBaseURL, cfg.TrelloAPIKey, cfg.TrelloToken, nil)
	sender := mailer.NewSendGridSender(cfg.SendGridAPIKey, cfg.MailFrom)
	verifier, err := services.NewAuthorizerVerifier(cfg)
	if err != nil {
		log.Fatalf("Failed to create token verifier: %v", err)
	}

	// Stores and services
	userRepo := repository.NewUserRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	assignmentRepo := repository.NewAssignmentRepository(db)

	workspace := services.NewWorkspaceManager(userRepo, board)
	userSvc := services.NewUserService(userRepo)
	categorySvc := services.NewCategoryService(categoryRepo, workspace, board)
	assignmentSvc := services.NewAssignmentService(assignmentRepo, categoryRepo, workspace, board)
	reminderSvc := services.NewReminderService(assignmentRepo, userRepo, sender, time.Local)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: customErrorHandler,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(compress.New())

	// Prometheus metrics
	prometheus := fiberprometheus.New("assignment_tracker")
	prometheus.RegisterAt(app, "/metrics")
	app.Use(prometheus.Middleware)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// API routes under /api
	api := app.Group("/api")
	api.Use(middleware.Version())

	healthHandler := &handlers.HealthHandler{Cfg: cfg, DB: db}
	api.Get("/health", healthHandler.Get)

	auth := middleware.Auth(verifier)

	userHandler := &handlers.UserHandler{Users: userSvc}
	users := api.Group("/users", auth)
	users.Post("/register", userHandler.Register)
	users.Get("/:id", userHandler.Get)
	users.Put("/:id", userHandler.Update)
	users.Delete("/:id", userHandler.Delete)

	categoryHandler := &handlers.CategoryHandler{Categories: categorySvc}
	categories := api.Group("/categories", auth)
	categories.Post("/create", categoryHandler.Create)
	categories.Get("/", categoryHandler.List)
	categories.Get("/:categoryId", categoryHandler.Get)
	categories.Put("/:categoryId", categoryHandler.Update)
	categories.Delete("/:categoryId", categoryHandler.Delete)

	assignmentHandler := &handlers.AssignmentHandler{Assignments: assignmentSvc}
	assignments := api.Group("/assignments", auth)
	assignments.Post("/create", assignmentHandler.Create)
	assignments.Get("/category/:categoryId", assignmentHandler.ListByCategory)
	assignments.Get("/", assignmentHandler.List)
	assignments.Get("/:assignmentId", assignmentHandler.Get)
	assignments.Put("/:assignmentId/move", assignmentHandler.Move)
	assignments.Put("/:assignmentId", assignmentHandler.Update)
	assignments.Delete("/:assignmentId", assignmentHandler.Delete)

	// 404 handler
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"status":    fiber.StatusNotFound,
			"message":   "[404] Resource Not Found",
			"ok":        false,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"url":       c.OriginalURL(),
		})
	})

	// Daily reminder job
	cron := scheduler.New(time.Local)
	if _, err := cron.ScheduleDaily(cfg.ReminderTime, func() {
		jobCtx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()
		if _, err := reminderSvc.Run(jobCtx, time.Now()); err != nil {
			log.Printf("reminder job: %v", err)
		}
	}); err != nil {
		log.Fatalf("Failed to schedule reminder job: %v", err)
	}
	cron.Start()
	defer cron.Stop()

	// Graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		log.Println("Gracefully shutting down...")
		_ = app.Shutdown()
	}()

	// Start server
	log.Printf("Starting server on port %s", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}

	log.Println("Server stopped")
}

// customErrorHandler handles errors globally
func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := err.Error()
	errorType := "unknown"

	if e, ok := err.(*types.CustomError); ok {
		code = e.Code
		message = e.Message
		errorType = e.Type
	} else if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	return c.Status(code).JSON(fiber.Map{
		"status":    code,
		"message":   message,
		"ok":        false,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"url":       c.OriginalURL(),
		"type":      errorType,
	})
}
