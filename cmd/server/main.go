package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"carpool/internal/config"
	"carpool/internal/database"
	"carpool/internal/handlers"
	"carpool/internal/repository"
	"carpool/internal/security"
	"carpool/internal/service"
)

func main() {
	// Load configuration
	cfg := config.Load()

	if cfg.SessionSecret == "" {
		log.Fatal("SESSION_SECRET must be set")
	}

	// Initialize database (supports sqlite, postgres, mysql)
	db, err := database.InitializeWithConfig(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	log.Printf("Database connection established (type: %s)", cfg.DatabaseType)

	// Run migrations
	if err := db.RunMigrations(cfg.MigrationsPath); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	log.Println("Migrations completed successfully")

	// Initialize repositories
	groupRepo := repository.NewGroupRepository(db)
	memberRepo := repository.NewMemberRepository(db)
	entryRepo := repository.NewEntryRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)

	// Initialize services
	signer := security.NewTokenSigner(cfg.SessionSecret, cfg.SessionDuration)
	authService := service.NewAuthService(groupRepo, signer)
	memberService := service.NewMemberService(memberRepo)
	entryService := service.NewEntryService(entryRepo, memberRepo)
	settlementService := service.NewSettlementService(entryRepo, memberRepo)
	exportService := service.NewExportService(memberRepo, entryRepo)

	notifyService, err := service.NewNotifyService(cfg.SESRegion, cfg.SESFromEmail, cfg.SESFromName, cfg.NotifyDebug)
	if err != nil {
		log.Fatalf("Failed to initialize notification service: %v", err)
	}
	if !notifyService.IsEnabled() {
		log.Println("Email notifications disabled (SES_FROM_EMAIL not set)")
	}

	// Create the initial group on first run if configured
	if err := authService.Bootstrap(cfg.GroupName, cfg.GroupPasscode); err != nil {
		log.Fatalf("Failed to bootstrap group: %v", err)
	}

	// Initialize handlers
	loginLimiter := security.NewRateLimiter(10, time.Minute)
	middleware := handlers.NewMiddleware(authService, loginLimiter)
	authHandler := handlers.NewAuthHandler(authService)
	memberHandler := handlers.NewMemberHandler(memberService)
	entryHandler := handlers.NewEntryHandler(entryService)
	settlementHandler := handlers.NewSettlementHandler(settlementService, notifyService, settingsRepo)
	calendarHandler := handlers.NewCalendarHandler()
	exportHandler := handlers.NewExportHandler(exportService)

	// Setup routes
	mux := http.NewServeMux()

	// Public routes
	mux.HandleFunc("POST /api/login", middleware.RateLimit(authHandler.Login))
	mux.HandleFunc("POST /api/logout", authHandler.Logout)
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	// Member routes
	mux.HandleFunc("GET /api/members", middleware.RequireAuth(memberHandler.List))
	mux.HandleFunc("POST /api/members", middleware.RequireAuth(memberHandler.Create))
	mux.HandleFunc("PUT /api/members/{id}/rates", middleware.RequireAuth(memberHandler.UpdateRates))
	mux.HandleFunc("DELETE /api/members/{id}", middleware.RequireAuth(memberHandler.Deactivate))

	// Entry routes
	mux.HandleFunc("GET /api/entries", middleware.RequireAuth(entryHandler.ListMonth))
	mux.HandleFunc("POST /api/entries", middleware.RequireAuth(entryHandler.Upsert))
	mux.HandleFunc("GET /api/entries/{date}", middleware.RequireAuth(entryHandler.Get))
	mux.HandleFunc("DELETE /api/entries/{date}", middleware.RequireAuth(entryHandler.Delete))

	// Settlement and calendar routes
	mux.HandleFunc("GET /api/settlement", middleware.RequireAuth(settlementHandler.Get))
	mux.HandleFunc("POST /api/settlement/notify", middleware.RequireAuth(settlementHandler.Notify))
	mux.HandleFunc("GET /api/holidays", middleware.RequireAuth(calendarHandler.Holidays))
	mux.HandleFunc("GET /api/export", middleware.RequireAuth(exportHandler.Download))

	// Wrap with logging middleware
	handler := handlers.Logging(mux)

	// Start server
	addr := ":" + cfg.ServerPort
	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on http://localhost%s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Shutdown error: %v", err)
	}
}
