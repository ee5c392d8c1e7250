package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	httpapi "marwad-digital-menu/analytics-svc/internal/api/http"
	"marwad-digital-menu/analytics-svc/internal/service"
	"marwad-digital-menu/config"
)

func main() {
	cfg := config.Load("8083")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db := config.MustInitPostgres(cfg)
	defer db.Close()

	rdb := config.MustInitRedis(cfg)
	defer rdb.Close()

	loc, err := time.LoadLocation(cfg.ReportTimezone)
	if err != nil {
		log.Fatal("Invalid report timezone:", err)
	}

	handler := httpapi.NewHandler(service.NewAnalyticsService(db, rdb, loc))
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: httpapi.NewRouter(handler),
	}

	go func() {
		log.Printf("Analytics Service starting on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server failed:", err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error during shutdown: %v", err)
	}
}
