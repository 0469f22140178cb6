package processor

import (
	"context"
	"log/slog"

	"github.com/echolens/echolens/internal/clients/kafka_client"
	"github.com/echolens/echolens/internal/models"
)

// KafkaAlertPublisher pushes alerts to the sentiment-alerts topic, keyed by
// alert type so consumers can partition by kind.
type KafkaAlertPublisher struct{}

func (KafkaAlertPublisher) Publish(_ context.Context, alerts []models.Alert) error {
	for _, alert := range alerts {
		if err := kafka_client.PublishToKafka(kafka_client.KAFKA_TOPIC_SENTIMENT_ALERTS, alert.Type, alert); err != nil {
			return err
		}
	}
	return nil
}

// LogAlertPublisher is the sink used when no broker is configured: alerts land
// in the log at warning level and nothing else happens.
type LogAlertPublisher struct{}

func (LogAlertPublisher) Publish(_ context.Context, alerts []models.Alert) error {
	slog.Info("[Processor] Generated alerts", slog.Int("count", len(alerts)))
	for _, alert := range alerts {
		slog.Warn("[Processor] ALERT: "+alert.Title,
			slog.String("type", alert.Details.Type),
			slog.String("severity", alert.Priority))
	}
	return nil
}
