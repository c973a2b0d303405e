package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/webxmedia/backend/internal/config"
	"github.com/webxmedia/backend/internal/handler"
	appMiddleware "github.com/webxmedia/backend/internal/middleware"
	"github.com/webxmedia/backend/internal/repository"
	"github.com/webxmedia/backend/internal/service"
	"github.com/webxmedia/backend/internal/web"
	"github.com/webxmedia/backend/pkg/payment"
)

func main() {
	// Load .env file if present (for local development)
	_ = godotenv.Load()

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config error")
	}

	ctx := context.Background()

	db, err := repository.NewDB(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("database error")
	}
	defer db.Close()

	if err := repository.RunMigrations(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("migration error")
	}
	log.Info().Msg("database connected & migrated")

	// Repositories
	userRepo := repository.NewUserRepository(db)
	txRepo := repository.NewTransactionRepository(db)
	contactRepo := repository.NewContactRepository(db)

	// Services
	gateway := payment.NewStripeGateway(cfg.StripeAPIKey, cfg.StripeWebhookSecret)
	checkoutSvc := service.NewCheckoutService(gateway, txRepo, cfg.PublicURL, log)
	contactSvc := service.NewContactService(contactRepo, log)
	authSvc := service.NewAuthService(cfg.JWTSecret, cfg.AdminEmail, cfg.AdminPassword, userRepo, log)

	// Seed admin user on first startup
	if err := authSvc.SeedAdmin(ctx); err != nil {
		log.Fatal().Err(err).Msg("admin seed error")
	}

	// Handlers
	checkoutHandler := handler.NewCheckoutHandler(checkoutSvc)
	contactHandler := handler.NewContactHandler(contactSvc)
	plansHandler := handler.NewPlansHandler()
	authHandler := handler.NewAuthHandler(authSvc)
	healthHandler := handler.NewHealthHandler(db)

	pages, err := web.New(cfg.PublicURL, contactSvc, log)
	if err != nil {
		log.Fatal().Err(err).Msg("template error")
	}

	// Build router
	r := chi.NewRouter()

	// Global middleware
	r.Use(appMiddleware.Recovery)
	r.Use(appMiddleware.Logger(log))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Global rate limiter (20 req/sec per IP, burst of 40)
	globalRL := appMiddleware.NewRateLimiter(20, 40)
	r.Use(globalRL.Middleware())

	// Health and public API
	r.Get("/health", healthHandler.Check)
	r.Get("/api/plans", plansHandler.List)
	r.Get("/api/checkout/status/{sessionID}", checkoutHandler.GetStatus)
	r.Post("/api/contact", contactHandler.Submit)
	r.Post("/api/webhook/stripe", checkoutHandler.Webhook)

	// Session creation and login get a stricter limit
	r.Group(func(r chi.Router) {
		r.Use(appMiddleware.StrictRateLimiter())
		r.Post("/api/checkout/session", checkoutHandler.CreateSession)
		r.Post("/api/auth/login", authHandler.Login)
	})

	// Staff-only API
	r.Group(func(r chi.Router) {
		r.Use(appMiddleware.Auth(authSvc))
		r.Use(appMiddleware.AdminOnly)
		r.Get("/api/contact", contactHandler.List)
		r.Get("/api/transactions", checkoutHandler.ListTransactions)
	})

	// Site pages
	r.Get("/", pages.Home)
	r.Get("/services", pages.Services)
	r.Get("/about", pages.About)
	r.Get("/contact", pages.Contact)
	r.Post("/contact", pages.SubmitContact)
	r.Get("/checkout", pages.Checkout)
	r.Post("/checkout", pages.SubmitCheckout)
	r.Get("/checkout/success", pages.CheckoutSuccess)
	r.Get("/checkout/cancel", pages.CheckoutCancel)
	r.Handle("/static/*", web.Static())

	// Start server
	addr := fmt.Sprintf("0.0.0.0:%d", cfg.Port)
	server := &http.Server{
		Addr:        addr,
		Handler:     r,
		ReadTimeout: 30 * time.Second,
		// WriteTimeout stays above the success page's worst-case polling
		// window (5 attempts x 2s plus call latency).
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		log.Info().Msg("shutting down")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		server.Shutdown(ctx)
	}()

	log.Info().Str("addr", addr).Msg("webxmedia server listening")
	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("server error")
	}
}
