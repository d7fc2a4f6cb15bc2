package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	pkgauth "github.com/clinicore/clinic-api/pkg/auth"
	"github.com/clinicore/clinic-api/pkg/logger"
	"github.com/clinicore/clinic-api/pkg/metrics"
	"github.com/clinicore/clinic-api/pkg/security"

	"github.com/clinicore/clinic-api/internal/config"
	"github.com/clinicore/clinic-api/internal/email"
	appointmentHandler "github.com/clinicore/clinic-api/internal/handler/appointment"
	authHandler "github.com/clinicore/clinic-api/internal/handler/auth"
	clinicHandler "github.com/clinicore/clinic-api/internal/handler/clinic"
	doctorHandler "github.com/clinicore/clinic-api/internal/handler/doctor"
	healthHandler "github.com/clinicore/clinic-api/internal/handler/health"
	locationHandler "github.com/clinicore/clinic-api/internal/handler/location"
	userHandler "github.com/clinicore/clinic-api/internal/handler/user"
	"github.com/clinicore/clinic-api/internal/middleware"
	"github.com/clinicore/clinic-api/internal/repository"
	"github.com/clinicore/clinic-api/internal/repository/postgres"
	redisrepo "github.com/clinicore/clinic-api/internal/repository/redis"
	"github.com/clinicore/clinic-api/internal/router"
	appointmentService "github.com/clinicore/clinic-api/internal/service/appointment"
	authService "github.com/clinicore/clinic-api/internal/service/auth"
	clinicService "github.com/clinicore/clinic-api/internal/service/clinic"
	doctorService "github.com/clinicore/clinic-api/internal/service/doctor"
	locationService "github.com/clinicore/clinic-api/internal/service/location"
	userService "github.com/clinicore/clinic-api/internal/service/user"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	appLogger := logger.New(&logger.Config{Level: cfg.Log.Level})

	// Field encryption key is a hard startup requirement.
	key, err := cfg.EncryptionKey()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid encryption configuration")
	}
	cipher, err := security.NewFieldCipher(key)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize field cipher")
	}

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	var tokenStore repository.TokenStore
	if cfg.Redis.URL != "" {
		tokenStore, err = redisrepo.NewTokenStore(cfg.Redis.URL)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to Redis")
		}
	}

	// Repositories
	userRepo := postgres.NewUserRepository(db)
	locationRepo := postgres.NewLocationRepository(db)
	clinicRepo := postgres.NewClinicRepository(db)
	doctorRepo := postgres.NewDoctorRepository(db)
	appointmentRepo := postgres.NewAppointmentRepository(db)

	// Services
	hasher := security.NewBcryptHasher(security.DefaultBcryptCost)
	tokenSvc := pkgauth.NewTokenService(cfg.JWT.Secret, time.Duration(cfg.JWT.ExpiryHours)*time.Hour)
	notifier := email.NewNotifier(cfg.SMTP)

	authSvc := authService.NewService(userRepo, tokenSvc, hasher, tokenStore)
	userSvc := userService.NewService(userRepo, hasher)
	locationSvc := locationService.NewService(locationRepo)
	clinicSvc := clinicService.NewService(clinicRepo)
	doctorSvc := doctorService.NewService(doctorRepo, cipher)
	appointmentSvc := appointmentService.NewService(appointmentRepo, doctorRepo, userRepo, notifier, appLogger)

	// Router
	authMiddleware := middleware.NewAuthMiddleware(tokenSvc, tokenStore)
	r := router.New(authMiddleware, router.Handlers{
		Auth:        authHandler.NewHandler(authSvc),
		User:        userHandler.NewHandler(userSvc),
		Doctor:      doctorHandler.NewHandler(doctorSvc),
		Clinic:      clinicHandler.NewHandler(clinicSvc),
		Location:    locationHandler.NewHandler(locationSvc),
		Appointment: appointmentHandler.NewHandler(appointmentSvc),
		Health:      healthHandler.NewHandler(db),
	}, metrics.New("clinic_api"), router.Config{
		RateLimitRPS:   cfg.RateLimit.RequestsPerSecond,
		RateLimitBurst: cfg.RateLimit.Burst,
		CacheTTL:       cfg.Server.CacheTTL,
		CORS:           middleware.DefaultCORSConfig(),
	})
	r.Setup()

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: r.Engine(),
	}

	go func() {
		appLogger.Info().Int("port", cfg.Server.Port).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info().Msg("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	appLogger.Info().Msg("server exited properly")
}
