package main

import (
	"log/slog"
	"os"

	"github.com/aws/aws-lambda-go/lambda"

	"github.com/echolens/echolens/config"
	"github.com/echolens/echolens/internal/clients"
	"github.com/echolens/echolens/internal/db"
	"github.com/echolens/echolens/internal/extractor"
	"github.com/echolens/echolens/internal/logging"
)

var handler *extractor.Extractor

// init runs once per Lambda cold start
func init() {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "dev"
	}
	config.LoadEnv(env)
	logging.InitLogger()

	store := db.NewStore(clients.GetDynamoDBClient())
	twitter := clients.NewTwitterClient(os.Getenv("TWITTER_BEARER_TOKEN"))

	var dedup extractor.Deduper
	if os.Getenv("VALKEY_INIT_ADDRESS") != "" {
		dedup = clients.InitValkey()
	} else {
		slog.Warn("[Main] VALKEY_INIT_ADDRESS not set, duplicate tracking disabled")
	}

	handler = extractor.New(store, twitter, dedup)
	slog.Info("[Main] Post extractor initialized")
}

func main() {
	lambda.Start(handler.Handle)
}
