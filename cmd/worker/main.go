package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/echolens/echolens/config"
	"github.com/echolens/echolens/internal/analyzer"
	"github.com/echolens/echolens/internal/clients"
	"github.com/echolens/echolens/internal/clients/kafka_client"
	"github.com/echolens/echolens/internal/consumers"
	"github.com/echolens/echolens/internal/db"
	"github.com/echolens/echolens/internal/logging"
	"github.com/echolens/echolens/internal/sentiment"
)

func main() {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "dev"
	}
	config.LoadEnv(env)
	logging.InitLogger()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg := kafka_client.GetKafkaConfig()

	for {
		err := kafka_client.InitProducer(cfg)
		if err == nil {
			break
		}

		slog.Warn("[Main] Kafka init failed, retrying...", slog.String("error", err.Error()))
		time.Sleep(5 * time.Second)
	}
	defer kafka_client.CloseProducer()

	store := db.NewStore(clients.GetDynamoDBClient())
	classifier := sentiment.NewClassifier(clients.GetOpenAIClient())
	a := analyzer.New(classifier, store)

	rawConsumer, err := kafka_client.NewConsumer(cfg, []string{kafka_client.KAFKA_TOPIC_RAW_POSTS})
	if err != nil {
		slog.Error("[Main] Failed to create raw-posts consumer", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer rawConsumer.Close()

	resultsConsumer, err := kafka_client.NewConsumer(cfg, []string{kafka_client.KAFKA_TOPIC_SENTIMENT_RESULTS})
	if err != nil {
		slog.Error("[Main] Failed to create results consumer", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer resultsConsumer.Close()

	go consumers.StartRawPostConsumer(ctx, rawConsumer, a)
	consumers.StartResultsConsumer(ctx, resultsConsumer, store)
}
