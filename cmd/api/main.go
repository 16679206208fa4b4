package main

import (
	"os"
	"strings"

	"motofix/internal/config"
	"motofix/internal/database"
	"motofix/internal/events"
	"motofix/internal/metrics"
	"motofix/internal/middleware"
	"motofix/internal/modules/auth"
	"motofix/internal/modules/booking"
	"motofix/internal/modules/chat"
	"motofix/internal/modules/dispatch"
	"motofix/internal/modules/mechanic"
	"motofix/internal/modules/notification"
	jwtsvc "motofix/internal/pkg/jwt"
	"motofix/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

func main() {
	log := newLogger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config")
	}
	log = log.Level(parseLevel(cfg.LogLevel))

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("database connect")
	}
	if err := repository.AutoMigrate(db); err != nil {
		log.Fatal().Err(err).Msg("migrate")
	}

	userRepo := repository.NewUserRepository(db)
	mechanicRepo := repository.NewMechanicRepository(db)
	motorcycleRepo := repository.NewMotorcycleRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	offerRepo := repository.NewOfferRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	chatRepo := repository.NewChatRepository(db)

	reg := prometheus.NewRegistry()
	stats := metrics.New(reg)

	jwtService := jwtsvc.New(cfg.JWTSecret, cfg.JWTTTL)
	bus := events.NewBus(log)

	hub := chat.NewHub()
	defer hub.Close()

	authService := auth.NewService(userRepo, mechanicRepo, jwtService)
	authHandler := auth.NewHandler(authService)

	dispatchService := dispatch.NewService(offerRepo, bus, stats)
	dispatchHandler := dispatch.NewHandler(dispatchService)

	bookingService := booking.NewService(bookingRepo, motorcycleRepo, dispatchService, mechanicRepo, bus)
	bookingHandler := booking.NewHandler(bookingService)

	notificationService := notification.NewService(notificationRepo)
	notificationHandler := notification.NewHandler(notificationService)

	chatService := chat.NewService(chatRepo, hub)
	chatHandler := chat.NewHandler(chatService)
	wsHandler := chat.NewWSHandler(hub, jwtService)

	mechanicService := mechanic.NewService(mechanicRepo, offerRepo, bookingRepo)
	mechanicHandler := mechanic.NewHandler(mechanicService)

	// consumers run in subscription order after each commit
	bus.Subscribe(notification.NewFanout(notificationRepo))
	bus.Subscribe(chatService)
	bus.Subscribe(metrics.NewConsumer(stats))

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.RequestLogger(log))

	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))
	r.GET("/healthz", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })
	r.GET("/ws/chat", wsHandler.HandleWebSocket)

	v1 := r.Group("/api/v1")
	{
		authHandler.RegisterRoutes(v1)

		protected := v1.Group("")
		protected.Use(middleware.JWTAuth(jwtService))
		{
			protected.GET("/auth/me", authHandler.Me)
			bookingHandler.RegisterRoutes(protected, middleware.MechanicOnly())
			notificationHandler.RegisterRoutes(protected)
			chatHandler.RegisterRoutes(protected)

			mechanicGroup := protected.Group("")
			mechanicGroup.Use(middleware.MechanicOnly())
			{
				dispatchHandler.RegisterRoutes(mechanicGroup)
				mechanicHandler.RegisterRoutes(mechanicGroup)
			}
		}
	}

	log.Info().Str("addr", cfg.ListenAddr).Msg("listening")
	if err := r.Run(cfg.ListenAddr); err != nil {
		log.Fatal().Err(err).Msg("server")
	}
}

func newLogger() zerolog.Logger {
	return zerolog.New(os.Stderr).With().Timestamp().Logger()
}

func parseLevel(s string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(strings.ToLower(s))
	if err != nil {
		return zerolog.InfoLevel
	}
	return lvl
}
