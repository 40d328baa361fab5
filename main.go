package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"stayadmin/api"
	"stayadmin/config"
	"stayadmin/handlers"
	"stayadmin/middleware"
	accommodationRepo "stayadmin/repository/accommodation"
	bookingRepo "stayadmin/repository/booking"
	userRepo "stayadmin/repository/user"
	"stayadmin/routes"
	"stayadmin/services/auth"
	bookingSvc "stayadmin/services/booking"
	"stayadmin/services/search"
	"stayadmin/services/storage"
	"stayadmin/utils"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	sessions := utils.NewRedisSessionStore()
	loading := utils.NewLoadingState()
	loading.Subscribe(func(busy bool) {
		logger.Debug("remote activity changed", zap.Bool("busy", busy))
	})

	client := api.NewClient(
		config.AppConfig.APIBaseURL,
		time.Duration(config.AppConfig.APITimeoutSeconds)*time.Second,
		loading,
		logger,
	)

	// repositories.
	bookings := bookingRepo.NewRESTBookingRepo(client)
	accommodations := accommodationRepo.NewRESTAccommodationRepo(client)
	users := userRepo.NewRESTUserRepo(client)

	// services.
	authService := &auth.DefaultAuthService{
		Client:     client,
		Users:      users,
		Sessions:   sessions,
		SessionTTL: sessions.TTL,
		Logger:     logger,
	}
	bookingService := &bookingSvc.DefaultBookingService{Repo: bookings}
	searchService := &search.DefaultSearchService{
		Bookings:       bookings,
		Accommodations: accommodations,
		Users:          users,
		Logger:         logger,
	}

	storageService, err := storage.NewCloudinaryStorage()
	if err != nil {
		logger.Warn("image uploads disabled", zap.Error(err))
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())
	routes.RegisterCORS(router)

	hb := &routes.HandlerBundle{
		Auth:           handlers.NewAuthHandler(authService),
		Accommodations: handlers.NewAccommodationHandler(accommodations, storageServiceOrNil(storageService, err)),
		Reservations:   handlers.NewReservationHandler(bookingService),
		Calendar:       handlers.NewCalendarHandler(bookingService),
		Search:         handlers.NewSearchHandler(searchService),
		Status:         handlers.NewStatusHandler(loading),
		Sessions:       sessions,
	}

	routes.RegisterHealthRoute(router)
	routes.RegisterAuthRoutes(router, hb)
	routes.RegisterConsoleRoutes(router, hb)

	srv := &http.Server{
		Addr:    ":" + config.AppConfig.AppPort,
		Handler: router,
	}

	go func() {
		logger.Info("stayadmin console listening", zap.String("port", config.AppConfig.AppPort))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("forced shutdown", zap.Error(err))
	}
}

// storageServiceOrNil keeps the console running without image uploads when
// Cloudinary is not configured.
func storageServiceOrNil(s *storage.CloudinaryStorage, err error) storage.StorageService {
	if err != nil {
		return nil
	}
	return s
}
