package service

import (
	"context"
	"log"
	"time"

	"marwad-digital-menu/hub-svc/internal/domain"
)

// PublishTimeout bounds a single event publish.
const PublishTimeout = 2 * time.Second

// publish never fails the caller; the reporting pipeline is best effort.
// Callers must not hold a table lock while publishing.
func publish(ctx context.Context, publisher EventPublisher, msg domain.KafkaMessage) {
	if publisher == nil {
		return
	}
	if msg.Timestamp.IsZero() {
		msg.Timestamp = time.Now()
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), PublishTimeout)
	defer cancel()
	if err := publisher.Publish(ctx, msg); err != nil {
		log.Printf("Error publishing %s event: %v", msg.Type, err)
	}
}

func saleRecorded(sale *domain.Sale) domain.KafkaMessage {
	return domain.KafkaMessage{
		Type:        domain.EventSaleRecorded,
		SaleID:      sale.ID,
		TableID:     sale.TableID,
		Total:       sale.Total,
		PaymentMode: sale.PaymentMode,
		Items:       sale.Items,
		Timestamp:   sale.SettledAt,
	}
}
