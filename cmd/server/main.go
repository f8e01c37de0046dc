package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"carwash-backend/internal/auth"
	"carwash-backend/internal/config"
	"carwash-backend/internal/database"
	"carwash-backend/internal/db"
	"carwash-backend/internal/handlers"
	"carwash-backend/internal/health"
	httpx "carwash-backend/internal/http"
	"carwash-backend/internal/logger"
	"carwash-backend/internal/media"
	"carwash-backend/internal/middleware"
	"carwash-backend/internal/monitoring"
	"carwash-backend/internal/realtime"
	"carwash-backend/internal/repositories"
	"carwash-backend/internal/services"
	"carwash-backend/internal/timeutil"
)

func main() {
	seed := flag.Bool("seed", false, "seed the database with sample data and exit")
	flag.Parse()

	cfg := config.Load()
	timeutil.SetLocation(cfg.Timezone)
	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)

	pool := db.Connect(cfg)
	defer pool.Close()

	migrator := database.NewMigrator(pool, log)
	if err := migrator.Run(context.Background()); err != nil {
		log.WithError(err).Fatal("migrations failed")
	}

	if *seed {
		if err := runSeed(context.Background(), pool, log); err != nil {
			log.WithError(err).Fatal("seed failed")
		}
		log.Info("seed complete")
		return
	}

	mediaStore, err := media.New(cfg)
	if err != nil {
		log.WithError(err).Fatal("media store init failed")
	}

	sessions := auth.NewSessionManager(cfg.Session.Secret, cfg.Session.Issuer, cfg.Session.ExpirationHours)

	hub := realtime.NewHub(log)
	go hub.Run()

	// Repositories
	employeeRepo := repositories.NewEmployeeRepository(pool)
	vehicleRepo := repositories.NewVehicleRepository(pool)
	serviceRepo := repositories.NewServiceRepository(pool)
	brandRepo := repositories.NewBrandRepository(pool)
	carModelRepo := repositories.NewCarModelRepository(pool)
	locationRepo := repositories.NewLocationRepository(pool)
	settingsRepo := repositories.NewSettingsRepository(pool)
	entryRepo := repositories.NewEntryRepository(pool)

	// Services
	authService := services.NewAuthService(employeeRepo, sessions)
	employeeService := services.NewEmployeeService(employeeRepo)
	vehicleService := services.NewVehicleService(vehicleRepo, mediaStore, log)
	catalogService := services.NewCatalogService(serviceRepo, brandRepo, carModelRepo)
	locationService := services.NewLocationService(locationRepo)
	settingsService := services.NewSettingsService(settingsRepo, mediaStore)
	entryService := services.NewEntryService(entryRepo, vehicleRepo, mediaStore, hub, log)
	statsService := services.NewStatsService(entryRepo, vehicleRepo, employeeRepo, serviceRepo)
	receiptService := services.NewReceiptService(entryRepo, settingsService)

	checker := health.NewChecker(pool)
	collector := monitoring.NewCollector(pool)

	router := httpx.NewRouter(httpx.RouterDeps{
		Auth:       handlers.NewAuthHandler(authService, cfg.Session.CookieName),
		Entries:    handlers.NewEntryHandler(entryService),
		Vehicles:   handlers.NewVehicleHandler(vehicleService),
		Employees:  handlers.NewEmployeeHandler(employeeService),
		Catalog:    handlers.NewCatalogHandler(catalogService),
		Locations:  handlers.NewLocationHandler(locationService),
		Settings:   handlers.NewSettingsHandler(settingsService),
		Stats:      handlers.NewStatsHandler(statsService),
		Receipts:   handlers.NewReceiptHandler(receiptService),
		Health:     handlers.NewHealthHandler(checker),
		Monitoring: handlers.NewMonitoringHandler(collector),
		Hub:        hub,
		Sessions:   sessions,
		CookieName: cfg.Session.CookieName,
		UploadDir:  cfg.Media.UploadDir,
		StaticDir:  "static",
		Log:        log,
	})

	handler := middleware.NewCORS(cfg)(router)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.WithField("addr", srv.Addr).Info("server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.WithError(err).Error("shutdown error")
	}
}
