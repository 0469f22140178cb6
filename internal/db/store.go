package db

import (
	"context"
	"os"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
)

const (
	SentimentRecordTTL = 30 * 24 * 3600 // seconds; individual results expire after 30 days
	SummaryTTL         = 90 * 24 * 3600 // seconds; aggregation summaries expire after 90 days
)

// DynamoDBClient is the subset of the DynamoDB API the store uses. Satisfied
// by *dynamodb.Client.
type DynamoDBClient interface {
	BatchWriteItem(ctx context.Context, params *dynamodb.BatchWriteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.BatchWriteItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
}

// Store wraps the three DynamoDB tables. Constructed once per process and
// reused across invocations, never mutated after construction.
type Store struct {
	db             DynamoDBClient
	postsTable     string
	sentimentTable string
	summaryTable   string
}

func NewStore(client DynamoDBClient) *Store {
	return &Store{
		db:             client,
		postsTable:     tableName("POSTS_TABLE_NAME", "social-listening-posts"),
		sentimentTable: tableName("SENTIMENT_TABLE_NAME", "social-listening-sentiment-results"),
		summaryTable:   tableName("SUMMARY_TABLE_NAME", "social-listening-summaries"),
	}
}

func tableName(envKey, defaultName string) string {
	if v := os.Getenv(envKey); v != "" {
		return v
	}
	return defaultName
}
