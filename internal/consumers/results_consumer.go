package consumers

import (
	"context"
	"log/slog"

	"github.com/confluentinc/confluent-kafka-go/kafka"

	"github.com/echolens/echolens/internal/analyzer"
	"github.com/echolens/echolens/internal/clients/kafka_client"
	"github.com/echolens/echolens/internal/models"
	"github.com/echolens/echolens/internal/utils"
)

// StartResultsConsumer drains the sentiment-results topic into the store. A
// message is committed only after its records were written, so a crashed
// worker replays instead of losing data.
func StartResultsConsumer(ctx context.Context, consumer *kafka.Consumer, sink analyzer.RecordSink) {
	iterator := kafka_client.NewKafkaMessageIterator(ctx, consumer)
	committer := kafka_client.NewCommitHandler(ctx, consumer)

	slog.Info("[ResultsConsumer] Listening for messages...")

	for {
		select {
		case <-ctx.Done():
			slog.Warn("[ResultsConsumer] Stopping consumer...")
			return
		default:
			msg, err := iterator.Next()
			if err != nil {
				utils.HandleConsumerError(err)
				continue
			}

			var records []models.SentimentRecord
			if err := utils.DeserializeFromJSON(msg.Value, &records); err != nil {
				continue
			}

			if err := sink.InsertSentimentRecords(ctx, records); err != nil {
				slog.Error("[ResultsConsumer] Failed to store results, leaving offset uncommitted",
					slog.Int("count", len(records)),
					slog.String("error", err.Error()))
				continue
			}

			if err := committer.Commit(msg); err != nil {
				slog.Warn("[ResultsConsumer] Failed to commit offset",
					slog.String("error", err.Error()))
			}
		}
	}
}
