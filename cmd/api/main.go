package main

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/AchilleasB/hotel-companion/sync-service/internal/adapters/apiclient"
	"github.com/AchilleasB/hotel-companion/sync-service/internal/adapters/handler"
	"github.com/AchilleasB/hotel-companion/sync-service/internal/adapters/messaging"
	"github.com/AchilleasB/hotel-companion/sync-service/internal/adapters/metrics"
	"github.com/AchilleasB/hotel-companion/sync-service/internal/adapters/middleware"
	"github.com/AchilleasB/hotel-companion/sync-service/internal/adapters/offline"
	"github.com/AchilleasB/hotel-companion/sync-service/internal/adapters/sessionstore"
	"github.com/AchilleasB/hotel-companion/sync-service/internal/adapters/token"
	"github.com/AchilleasB/hotel-companion/sync-service/internal/config"
	"github.com/AchilleasB/hotel-companion/sync-service/internal/core/cache"
	"github.com/AchilleasB/hotel-companion/sync-service/internal/core/domain"
	"github.com/AchilleasB/hotel-companion/sync-service/internal/core/ports"
	"github.com/AchilleasB/hotel-companion/sync-service/internal/core/services"
	"github.com/AchilleasB/hotel-companion/sync-service/internal/logging"
)

const refreshTimeout = 30 * time.Second

func main() {
	cfg := config.Load()
	logging.InitLogger("hotel-sync", cfg.Env)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	recorder := metrics.NewRecorder()
	healthHandler := handler.NewHealthHandler()

	api := apiclient.NewClient(cfg.BackendURL, cfg.RequestTimeout)
	recorder.RegisterBreaker("Hotel-API", api.BreakerState)
	healthHandler.AddCheck("backend", false, api.Ping)

	var store ports.SessionPersister = sessionstore.NewMemoryStore()
	if cfg.RedisAddress != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddress,
			Password: cfg.RedisPassword,
			DB:       0,
		})
		defer redisClient.Close()

		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Fatal().Err(err).Str("address", cfg.RedisAddress).Msg("Failed to connect to Redis")
		}
		log.Info().Str("address", cfg.RedisAddress).Msg("Connected to Redis")

		redisStore := sessionstore.NewRedisStore(redisClient, cfg.SessionKey)
		recorder.RegisterBreaker("Redis-Session", redisStore.BreakerState)
		healthHandler.AddCheck("redis", true, func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		})
		store = redisStore
	} else {
		log.Warn().Msg("REDIS_ADDRESS not set, sessions will not survive a restart")
	}

	entities := cache.New()
	entities.Subscribe(func(domain.Kind) {
		recorder.ObserveCache(entities.Counts())
	})

	sessions := services.NewSessionService(api, store, token.NewJWTInspector(cfg.JWTPublicKey), services.DemoConfig{
		Enabled:  cfg.DemoMode,
		Email:    cfg.DemoEmail,
		Password: cfg.DemoPassword,
	})
	syncer := services.NewSyncService(api, entities, sessions, recorder)

	sessions.OnLogin(func(s domain.Session) {
		api.SetToken(s.Token)
		go func() {
			refreshCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), refreshTimeout)
			defer cancel()
			if err := syncer.RefreshAll(refreshCtx); err != nil {
				log.Warn().Err(err).Str("scope", s.ScopeName()).Msg("Initial refresh incomplete")
			}
		}()
	})
	sessions.OnLogout(func() {
		api.SetToken("")
		entities.Reset()
	})

	dispatcherOpts := []services.DispatcherOption{services.WithRecorder(recorder)}
	if cfg.RabbitMQURL != "" {
		broker, err := messaging.NewRabbitMQBroker(cfg.RabbitMQURL, cfg.EventQueueName)
		if err != nil {
			log.Error().Err(err).Msg("RabbitMQ unavailable, action events disabled")
		} else {
			defer broker.Close()
			recorder.RegisterBreaker("RabbitMQ-Publisher", broker.BreakerState)
			dispatcherOpts = append(dispatcherOpts, services.WithEventPublisher(broker))
			log.Info().Str("queue", cfg.EventQueueName).Msg("Publishing action events")
		}
	}
	dispatcher := services.NewDispatcher(api, entities, sessions, dispatcherOpts...)

	if restored, err := sessions.Restore(ctx); err != nil {
		log.Warn().Err(err).Msg("Could not restore persisted session")
	} else if restored {
		log.Info().Msg("Resumed persisted session")
	}

	authMiddleware := middleware.NewAuthMiddleware(sessions)
	sessionHandler := handler.NewSessionHandler(sessions)
	viewHandler := handler.NewViewHandler(sessions, entities, syncer, services.NewContactService(api))
	actionHandler := handler.NewActionHandler(dispatcher)

	anyone := []string{}
	staff := []string{"reception", "admin"}

	mux := http.NewServeMux()

	// Health endpoints (OpenShift compatible)
	mux.HandleFunc("GET /health", healthHandler.Health)
	mux.HandleFunc("GET /health/ready", healthHandler.Ready)
	mux.HandleFunc("GET /health/live", healthHandler.Live)
	mux.Handle("GET /metrics", recorder.Handler())

	mux.HandleFunc("POST /session/staff", sessionHandler.StaffLogin)
	mux.HandleFunc("POST /session/guest", sessionHandler.GuestLogin)
	mux.HandleFunc("DELETE /session", sessionHandler.Logout)
	mux.HandleFunc("GET /session", sessionHandler.Current)

	mux.HandleFunc("GET /contact", viewHandler.Contact)
	mux.HandleFunc("GET /views", authMiddleware.RequireScope(anyone, viewHandler.View))
	mux.HandleFunc("POST /refresh", authMiddleware.RequireScope(anyone, viewHandler.Refresh))
	mux.HandleFunc("POST /refresh/{kind}", authMiddleware.RequireScope(anyone, viewHandler.Refresh))

	mux.HandleFunc("POST /actions/reservations", authMiddleware.RequireScope(staff, actionHandler.CreateReservation))
	mux.HandleFunc("POST /actions/reservations/{id}/status", authMiddleware.RequireScope(staff, actionHandler.TransitionReservation))
	mux.HandleFunc("POST /actions/rooms/{id}/status", authMiddleware.RequireScope(staff, actionHandler.UpdateRoomStatus))
	mux.HandleFunc("POST /actions/messages", authMiddleware.RequireScope(anyone, actionHandler.SendMessage))
	mux.HandleFunc("POST /actions/messages/{id}/read", authMiddleware.RequireScope(anyone, actionHandler.MarkMessageRead))
	mux.HandleFunc("POST /actions/conversations/{reservationID}/read", authMiddleware.RequireScope(anyone, actionHandler.MarkConversationRead))
	mux.HandleFunc("POST /actions/service-requests", authMiddleware.RequireScope(anyone, actionHandler.CreateServiceRequest))
	mux.HandleFunc("POST /actions/service-requests/{id}/status", authMiddleware.RequireScope(anyone, actionHandler.TransitionServiceRequest))
	mux.HandleFunc("POST /actions/room-service-orders", authMiddleware.RequireScope(anyone, actionHandler.PlaceRoomServiceOrder))
	mux.HandleFunc("POST /actions/notifications", authMiddleware.RequireScope(staff, actionHandler.CreateNotification))
	mux.HandleFunc("POST /actions/notifications/{id}/read", authMiddleware.RequireScope(anyone, actionHandler.MarkNotificationRead))

	if cfg.AssetOrigin != "" {
		origin, err := url.Parse(cfg.AssetOrigin)
		if err != nil {
			log.Fatal().Err(err).Str("origin", cfg.AssetOrigin).Msg("Invalid ASSET_ORIGIN")
		}
		assets := offline.NewAssetCache(origin, cfg.AssetVersion, offline.NewMemoryStorage(), nil)
		if err := assets.Install(ctx); err != nil {
			log.Warn().Err(err).Msg("Shell precache incomplete, serving network-only until reachable")
		}
		assets.Activate()
		mux.Handle("/", assets)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           middleware.CORSMiddleware(cfg.AllowedOrigins)(mux),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("Graceful shutdown failed")
		}
	}()

	log.Info().Str("port", cfg.Port).Str("backend", cfg.BackendURL).Msg("Starting server")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("Could not start server")
	}
}
