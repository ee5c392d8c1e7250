package service

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"marwad-digital-menu/agg-svc/internal/domain"
	"marwad-digital-menu/reports"

	"github.com/segmentio/kafka-go"
)

type Consumer struct {
	Reader   *kafka.Reader
	Store    StoreInterface
	Location *time.Location
}

func NewConsumer(reader *kafka.Reader, store StoreInterface, loc *time.Location) *Consumer {
	return &Consumer{
		Reader:   reader,
		Store:    store,
		Location: loc,
	}
}

// Start reads until ctx is cancelled.
func (c *Consumer) Start(ctx context.Context) {
	log.Println("Starting Aggregation Service consumer...")
	for {
		message, err := c.Reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, context.Canceled) {
				log.Println("Aggregation Service consumer stopped")
				return
			}
			log.Printf("Error reading message: %v", err)
			continue
		}

		var msg domain.KafkaMessage
		if err := json.Unmarshal(message.Value, &msg); err != nil {
			log.Printf("Error unmarshaling message: %v", err)
			continue
		}

		c.Process(ctx, msg)
	}
}

// Process folds one event into the aggregates. Unknown types are ignored.
func (c *Consumer) Process(ctx context.Context, msg domain.KafkaMessage) {
	day := reports.Day(msg.Timestamp, c.Location)

	var err error
	switch msg.Type {
	case domain.EventSaleRecorded:
		err = c.Store.RecordSale(ctx, day, msg)
	case domain.EventExpenseAdded:
		err = c.Store.AdjustExpenses(ctx, day, msg.Amount)
	case domain.EventExpenseDeleted:
		err = c.Store.AdjustExpenses(ctx, day, -msg.Amount)
	case domain.EventHistoryCleared:
		err = c.Store.ClearReports(ctx)
	default:
		return
	}

	if err != nil {
		log.Printf("Error processing %s: %v", msg.Type, err)
		return
	}
	log.Printf("Processed %s for %s", msg.Type, day)
}
