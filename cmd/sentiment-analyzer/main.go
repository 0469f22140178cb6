package main

import (
	"log/slog"
	"os"

	"github.com/aws/aws-lambda-go/lambda"

	"github.com/echolens/echolens/config"
	"github.com/echolens/echolens/internal/analyzer"
	"github.com/echolens/echolens/internal/clients"
	"github.com/echolens/echolens/internal/db"
	"github.com/echolens/echolens/internal/logging"
	"github.com/echolens/echolens/internal/sentiment"
)

var handler *analyzer.Analyzer

// init runs once per Lambda cold start
func init() {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "dev"
	}
	config.LoadEnv(env)
	logging.InitLogger()

	classifier := sentiment.NewClassifier(clients.GetOpenAIClient())
	store := db.NewStore(clients.GetDynamoDBClient())

	handler = analyzer.New(classifier, store)
	slog.Info("[Main] Sentiment analyzer initialized")
}

func main() {
	lambda.Start(handler.Handle)
}
