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

// PutSummary persists one aggregation run. Writing the same summary_id again
// is an idempotent overwrite.
func (s *Store) PutSummary(ctx context.Context, summary models.Summary) error {
	summary.TTL = time.Now().Unix() + SummaryTTL

	item, err := attributevalue.MarshalMap(summary)
	if err != nil {
		return fmt.Errorf("[DynamoDB] Failed to marshal summary %s: %w", summary.SummaryID, err)
	}

	_, err = s.db.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.summaryTable),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("[DynamoDB] Failed to put summary %s: %w", summary.SummaryID, err)
	}

	slog.Info("[DynamoDB] Saved summary", slog.String("summary_id", summary.SummaryID))
	return nil
}

// FetchHistoricalSummaries returns up to limit prior summaries of the given
// period for trend comparison. Selection is by period only; summaries are not
// checked for chronological adjacency to the current window, so a missed run
// shifts which windows get compared. Failures are logged and yield an empty
// slice.
func (s *Store) FetchHistoricalSummaries(ctx context.Context, period string, limit int32) []models.Summary {
	out, err := s.db.Scan(ctx, &dynamodb.ScanInput{
		TableName:        aws.String(s.summaryTable),
		FilterExpression: aws.String("#period = :period"),
		ExpressionAttributeNames: map[string]string{
			"#period": "period",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":period": &types.AttributeValueMemberS{Value: period},
		},
		Limit: aws.Int32(limit),
	})
	if err != nil {
		slog.Error("[DynamoDB] Scan for historical summaries failed",
			slog.String("period", period),
			slog.String("error", err.Error()))
		return nil
	}

	var summaries []models.Summary
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &summaries); err != nil {
		slog.Error("[DynamoDB] Unable to unmarshal summaries",
			slog.String("error", err.Error()))
		return nil
	}

	return summaries
}
