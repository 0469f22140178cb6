package main

import (
	"log/slog"
	"os"

	"github.com/aws/aws-lambda-go/lambda"

	"github.com/echolens/echolens/config"
	"github.com/echolens/echolens/internal/clients"
	"github.com/echolens/echolens/internal/clients/kafka_client"
	"github.com/echolens/echolens/internal/db"
	"github.com/echolens/echolens/internal/logging"
	"github.com/echolens/echolens/internal/processor"
	"github.com/echolens/echolens/internal/report"
)

var handler *processor.Processor

// init runs once per Lambda cold start
func init() {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "dev"
	}
	config.LoadEnv(env)
	logging.InitLogger()

	store := db.NewStore(clients.GetDynamoDBClient())
	generator := report.NewGenerator(clients.GetOpenAIClient())
	reportStore := report.NewStore(clients.GetS3Client())

	var alerts processor.AlertPublisher = processor.LogAlertPublisher{}
	if os.Getenv("KAFKA_BROKER") != "" {
		if err := kafka_client.InitProducer(kafka_client.GetKafkaConfig()); err != nil {
			slog.Error("[Main] Kafka producer init failed, alerts go to the log",
				slog.String("error", err.Error()))
		} else {
			alerts = processor.KafkaAlertPublisher{}
		}
	}

	handler = processor.New(store, generator, reportStore, alerts)
	slog.Info("[Main] Data processor initialized")
}

func main() {
	lambda.Start(handler.Handle)
}
