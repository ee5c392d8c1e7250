package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"marwad-digital-menu/agg-svc/internal/service"
	"marwad-digital-menu/agg-svc/internal/storage"
	"marwad-digital-menu/config"
)

func main() {
	cfg := config.Load("8082")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	rdb := config.MustInitRedis(cfg)
	defer rdb.Close()

	loc, err := time.LoadLocation(cfg.ReportTimezone)
	if err != nil {
		log.Fatal("Invalid report timezone:", err)
	}

	reader := config.NewKafkaReader(cfg, "agg-svc-consumer")
	defer reader.Close()

	store := storage.NewStore(rdb, config.GetDuration("REPORT_DAILY_TTL", 0))
	service.NewConsumer(reader, store, loc).Start(ctx)
}
