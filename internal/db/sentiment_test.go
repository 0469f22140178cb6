package db

import (
	"context"
	"fmt"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/echolens/echolens/internal/models"
)

type fakeDynamoClient struct {
	batchSizes  []int
	unprocessed map[string][]types.WriteRequest // returned on the first call, then cleared
}

func (f *fakeDynamoClient) BatchWriteItem(_ context.Context, params *dynamodb.BatchWriteItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.BatchWriteItemOutput, error) {
	for _, requests := range params.RequestItems {
		f.batchSizes = append(f.batchSizes, len(requests))
	}
	out := &dynamodb.BatchWriteItemOutput{UnprocessedItems: f.unprocessed}
	f.unprocessed = nil
	return out, nil
}

func (f *fakeDynamoClient) PutItem(context.Context, *dynamodb.PutItemInput, ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	return &dynamodb.PutItemOutput{}, nil
}

func (f *fakeDynamoClient) Scan(context.Context, *dynamodb.ScanInput, ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error) {
	return &dynamodb.ScanOutput{}, nil
}

func makeRecords(n int) []models.SentimentRecord {
	records := make([]models.SentimentRecord, n)
	for i := range records {
		records[i] = models.SentimentRecord{
			PostID:            fmt.Sprintf("twitter_%d", i),
			Sentiment:         models.SentimentNeutral,
			Confidence:        0.5,
			AnalysisTimestamp: "2026-08-30T12:00:00Z",
		}
	}
	return records
}

func TestInsertSentimentRecordsChunksWrites(t *testing.T) {
	cases := []struct {
		name      string
		records   int
		wantSizes []int
	}{
		{"single full batch", 25, []int{25}},
		{"worker flush size", 50, []int{25, 25}},
		{"uneven tail", 60, []int{25, 25, 10}},
		{"small batch", 3, []int{3}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			fake := &fakeDynamoClient{}
			store := &Store{db: fake, sentimentTable: "sentiment-test"}

			if err := store.InsertSentimentRecords(context.Background(), makeRecords(tc.records)); err != nil {
				t.Fatalf("InsertSentimentRecords: %v", err)
			}

			if len(fake.batchSizes) != len(tc.wantSizes) {
				t.Fatalf("got %d batch writes, want %d", len(fake.batchSizes), len(tc.wantSizes))
			}
			for i, size := range fake.batchSizes {
				if size != tc.wantSizes[i] {
					t.Errorf("batch %d has %d items, want %d", i, size, tc.wantSizes[i])
				}
				if size > 25 {
					t.Errorf("batch %d exceeds the BatchWriteItem limit: %d items", i, size)
				}
			}
		})
	}
}

func TestInsertSentimentRecordsRetriesUnprocessed(t *testing.T) {
	leftover := map[string][]types.WriteRequest{
		"sentiment-test": {{PutRequest: &types.PutRequest{Item: map[string]types.AttributeValue{}}}},
	}
	fake := &fakeDynamoClient{unprocessed: leftover}
	store := &Store{db: fake, sentimentTable: "sentiment-test"}

	if err := store.InsertSentimentRecords(context.Background(), makeRecords(5)); err != nil {
		t.Fatalf("InsertSentimentRecords: %v", err)
	}

	if len(fake.batchSizes) != 2 {
		t.Fatalf("got %d batch writes, want 2 (initial + unprocessed retry)", len(fake.batchSizes))
	}
	if fake.batchSizes[1] != 1 {
		t.Errorf("retry resent %d items, want 1", fake.batchSizes[1])
	}
}

func TestInsertSentimentRecordsEmpty(t *testing.T) {
	fake := &fakeDynamoClient{}
	store := &Store{db: fake, sentimentTable: "sentiment-test"}

	if err := store.InsertSentimentRecords(context.Background(), nil); err != nil {
		t.Fatalf("InsertSentimentRecords: %v", err)
	}
	if len(fake.batchSizes) != 0 {
		t.Errorf("expected no writes for an empty batch, got %d", len(fake.batchSizes))
	}
}
