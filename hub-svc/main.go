package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"marwad-digital-menu/config"
	httpapi "marwad-digital-menu/hub-svc/internal/api/http"
	"marwad-digital-menu/hub-svc/internal/domain"
	"marwad-digital-menu/hub-svc/internal/service"
	"marwad-digital-menu/hub-svc/internal/storage"
	"marwad-digital-menu/hub-svc/internal/validation"
	"marwad-digital-menu/hub-svc/internal/ws"
)

func main() {
	cfg := config.Load("8081")
	if err := cfg.CheckJWTSecret(); err != nil {
		log.Fatal("Invalid auth config:", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db := config.MustInitPostgres(cfg)
	defer db.Close()

	repository := storage.NewPostgresRepository(db)
	if err := repository.EnsureSchema(ctx); err != nil {
		log.Fatal("Failed to ensure schema:", err)
	}

	rdb := config.MustInitRedis(cfg)
	defer rdb.Close()
	cache := storage.NewRedisCache(rdb, config.GetDuration("SETTINGS_CACHE_TTL", 5*time.Minute))

	writer := config.NewKafkaWriter(cfg)
	publisher := storage.NewKafkaPublisher(writer)
	defer publisher.Close()

	validator, err := validation.New(cfg.PhonePattern)
	if err != nil {
		log.Fatal("Invalid phone pattern:", err)
	}

	auth, err := service.NewAuthService(map[domain.Role]string{
		domain.RoleAdmin:    cfg.AdminPassword,
		domain.RoleKitchen:  cfg.KitchenPassword,
		domain.RoleDelivery: cfg.DeliveryPassword,
	}, cfg.JWTSecret, cfg.JWTTTL)
	if err != nil {
		log.Fatal("Failed to initialise auth:", err)
	}

	locks := service.NewKeyedMutex()
	settingsSvc := service.NewSettingsService(repository, cache)
	orderSvc := service.NewOrderService(repository, cache, settingsSvc, publisher, validator, locks)
	settlementSvc := service.NewSettlementService(repository, cache, publisher, locks)
	menuSvc := service.NewMenuService(repository)
	expenseSvc := service.NewExpenseService(repository, publisher)

	hub := ws.NewHub(cfg.KitchenOpenDefault)
	go hub.Run(ctx)

	wsServer := ws.NewServer(hub, ws.Services{
		Orders:     orderSvc,
		Settlement: settlementSvc,
		Menu:       menuSvc,
		Expenses:   expenseSvc,
		Settings:   settingsSvc,
		Auth:       auth,
	}, ws.Options{PingInterval: cfg.WSPingInterval, PongWait: cfg.WSPongWait})

	handler := httpapi.NewHandler(orderSvc, menuSvc, settingsSvc, hub, wsServer)
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: httpapi.NewRouter(handler, wsServer),
	}

	go func() {
		log.Printf("Hub Service starting on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server failed:", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down Hub Service")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error during shutdown: %v", err)
	}
}
