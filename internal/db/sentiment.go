package db

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/echolens/echolens/internal/models"
)

// InsertSentimentRecords batch-writes classifier output with the 30-day
// retention tag, 25 items per request (the BatchWriteItem limit). Retries
// unprocessed items before giving up.
func (s *Store) InsertSentimentRecords(ctx context.Context, records []models.SentimentRecord) error {
	if len(records) == 0 {
		return nil
	}

	ttl := time.Now().Unix() + SentimentRecordTTL

	const maxBatchSize = 25
	for i := 0; i < len(records); i += maxBatchSize {
		select {
		case <-ctx.Done():
			slog.Warn("[DynamoDB] context canceled")
			return ctx.Err()
		default:
			end := i + maxBatchSize
			if end > len(records) {
				end = len(records)
			}

			writeRequests := make([]types.WriteRequest, 0, maxBatchSize)
			for _, record := range records[i:end] {
				writeRequests = append(writeRequests, types.WriteRequest{
					PutRequest: &types.PutRequest{Item: recordToItem(record, ttl)},
				})
			}

			out, err := s.db.BatchWriteItem(ctx, &dynamodb.BatchWriteItemInput{
				RequestItems: map[string][]types.WriteRequest{
					s.sentimentTable: writeRequests,
				},
			})
			if err != nil {
				return fmt.Errorf("[DynamoDB] Failed to batch write sentiment records: %w", err)
			}

			retryCount := 0
			backoff := 500 * time.Millisecond
			for len(out.UnprocessedItems) > 0 && retryCount < 3 {
				time.Sleep(backoff)
				backoff *= 2

				slog.Warn("[DynamoDB] Retrying unprocessed sentiment items...",
					slog.Int("attempt", retryCount+1),
					slog.Int("remaining", len(out.UnprocessedItems[s.sentimentTable])))

				out, err = s.db.BatchWriteItem(ctx, &dynamodb.BatchWriteItemInput{
					RequestItems: out.UnprocessedItems,
				})
				if err != nil {
					return fmt.Errorf("[DynamoDB] Retry error %w", err)
				}

				retryCount++
			}

			if len(out.UnprocessedItems) > 0 {
				slog.Error("[DynamoDB] Some sentiment items failed after retries",
					slog.Int("remaining", len(out.UnprocessedItems[s.sentimentTable])))
			}
		}
	}

	slog.Info("[DynamoDB] Successfully stored sentiment records",
		slog.Int("count", len(records)))

	return nil
}

// FetchSentimentWindow returns every record whose analysis_timestamp falls in
// [start, end), paging through the scan until exhausted and applying the
// optional filters afterwards. A store failure is logged and yields an empty
// slice; callers treat "no data" and "store down" identically here.
func (s *Store) FetchSentimentWindow(ctx context.Context, start, end time.Time, filter *models.Filter) []models.SentimentRecord {
	input := &dynamodb.ScanInput{
		TableName:        aws.String(s.sentimentTable),
		FilterExpression: aws.String("analysis_timestamp >= :start AND analysis_timestamp < :end"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":start": &types.AttributeValueMemberS{Value: start.UTC().Format(time.RFC3339)},
			":end":   &types.AttributeValueMemberS{Value: end.UTC().Format(time.RFC3339)},
		},
	}

	var records []models.SentimentRecord
	paginator := dynamodb.NewScanPaginator(s.db, input)
	for paginator.HasMorePages() {
		out, err := paginator.NextPage(ctx)
		if err != nil {
			slog.Error("[DynamoDB] Scan for sentiment window failed",
				slog.String("error", err.Error()))
			return nil
		}
		var page []models.SentimentRecord
		if err := attributevalue.UnmarshalListOfMaps(out.Items, &page); err != nil {
			slog.Error("[DynamoDB] Unable to unmarshal sentiment page",
				slog.String("error", err.Error()))
			return nil
		}
		records = append(records, page...)
	}

	if filter != nil {
		filtered := records[:0]
		for _, r := range records {
			if filter.Matches(r) {
				filtered = append(filtered, r)
			}
		}
		records = filtered
	}

	slog.Info("[DynamoDB] Fetched sentiment window",
		slog.Time("start", start),
		slog.Time("end", end),
		slog.Int("count", len(records)))

	return records
}

func recordToItem(record models.SentimentRecord, ttl int64) map[string]types.AttributeValue {
	item := make(map[string]types.AttributeValue)

	item["post_id"] = &types.AttributeValueMemberS{Value: record.PostID}
	item["sentiment"] = &types.AttributeValueMemberS{Value: record.Sentiment}
	item["confidence"] = &types.AttributeValueMemberN{Value: fmt.Sprintf("%f", record.Confidence)}
	item["analysis_timestamp"] = &types.AttributeValueMemberS{Value: record.AnalysisTimestamp}
	item["ttl"] = &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", ttl)}

	if len(record.Emotions) > 0 {
		emotions := make(map[string]types.AttributeValue, len(record.Emotions))
		for name, score := range record.Emotions {
			emotions[name] = &types.AttributeValueMemberN{Value: fmt.Sprintf("%f", score)}
		}
		item["emotions"] = &types.AttributeValueMemberM{Value: emotions}
	}

	if len(record.Keywords) > 0 {
		keywords := make([]types.AttributeValue, 0, len(record.Keywords))
		for _, kw := range record.Keywords {
			keywords = append(keywords, &types.AttributeValueMemberS{Value: kw})
		}
		item["keywords"] = &types.AttributeValueMemberL{Value: keywords}
	}

	if record.OriginalText != "" {
		item["original_text"] = &types.AttributeValueMemberS{Value: record.OriginalText}
	}
	if record.CleanedText != "" {
		item["cleaned_text"] = &types.AttributeValueMemberS{Value: record.CleanedText}
	}
	if record.Source != "" {
		item["analysis_source"] = &types.AttributeValueMemberS{Value: record.Source}
	}
	if record.Error != "" {
		item["error"] = &types.AttributeValueMemberS{Value: record.Error}
	}

	metadata := map[string]types.AttributeValue{
		"text_length":  &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", record.Metadata.TextLength)},
		"language":     &types.AttributeValueMemberS{Value: record.Metadata.Language},
		"has_mentions": &types.AttributeValueMemberBOOL{Value: record.Metadata.HasMentions},
		"has_hashtags": &types.AttributeValueMemberBOOL{Value: record.Metadata.HasHashtags},
		"has_urls":     &types.AttributeValueMemberBOOL{Value: record.Metadata.HasURLs},
	}
	item["metadata"] = &types.AttributeValueMemberM{Value: metadata}

	return item
}
