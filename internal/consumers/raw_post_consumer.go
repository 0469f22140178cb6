package consumers

import (
	"context"
	"log/slog"
	"time"

	"github.com/confluentinc/confluent-kafka-go/kafka"

	"github.com/echolens/echolens/internal/analyzer"
	"github.com/echolens/echolens/internal/clients/kafka_client"
	"github.com/echolens/echolens/internal/models"
	"github.com/echolens/echolens/internal/utils"
)

var resultBuffer = utils.NewBatchBuffer[models.SentimentRecord]()

// StartRawPostConsumer classifies posts off the raw-posts topic and publishes
// the results in batches. Offsets are committed only after the batch carrying
// the post's result has been published.
func StartRawPostConsumer(ctx context.Context, consumer *kafka.Consumer, a *analyzer.Analyzer) {
	iterator := kafka_client.NewKafkaMessageIterator(ctx, consumer)
	committer := kafka_client.NewCommitHandler(ctx, consumer)

	slog.Info("[RawPostConsumer] Listening for messages...")

	ticker := time.NewTicker(utils.BATCH_TIMEOUT)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Warn("[RawPostConsumer] Stopping consumer...")
			flushResults(committer)
			return
		case <-ticker.C:
			if resultBuffer.HasData() {
				go flushResults(committer)
			}
		default:
			msg, err := iterator.Next()
			if err != nil {
				utils.HandleConsumerError(err)
				continue
			}

			var post models.Post
			if err := utils.DeserializeFromJSON(msg.Value, &post); err != nil {
				continue
			}

			record := a.AnalyzePost(ctx, post)

			// track the message so the offset commits after publish
			utils.TrackMessage(record.PostID, msg)
			resultBuffer.Add(record)

			if resultBuffer.Size() >= utils.BATCH_SIZE {
				go flushResults(committer)
			}
		}
	}
}

func flushResults(committer *kafka_client.KafkaCommitHandler) {
	resultBuffer.LogBatchProcessing("sentiment-results")
	batch := resultBuffer.GetAndClear()
	if len(batch) == 0 {
		return
	}

	var err error
	for i := 0; i < 3; i++ {
		err = kafka_client.PublishToKafka(kafka_client.KAFKA_TOPIC_SENTIMENT_RESULTS, batch[0].PostID, batch)
		if err == nil {
			break
		}
		slog.Warn("[RawPostConsumer] Batch publishing failed",
			slog.Int("attempt", i+1),
			slog.String("error", err.Error()))
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		slog.Error("[RawPostConsumer] Dropping batch after publish retries",
			slog.Int("batch_size", len(batch)))
		return
	}

	for _, record := range batch {
		trackedMsg, found := utils.GetMessageForPost(record.PostID)
		if !found {
			continue
		}
		if err := committer.Commit(trackedMsg); err != nil {
			slog.Warn("[RawPostConsumer] Failed to commit offset",
				slog.String("post_id", record.PostID),
				slog.String("error", err.Error()))
		}
	}
}
