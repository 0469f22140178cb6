package db

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/echolens/echolens/internal/models"
)

// PutPosts batch-writes extracted posts, retrying unprocessed items with
// exponential backoff.
func (s *Store) PutPosts(ctx context.Context, posts []models.Post) error {
	const maxBatchSize = 25
	for i := 0; i < len(posts); i += maxBatchSize {
		select {
		case <-ctx.Done():
			slog.Warn("[DynamoDB] context canceled")
			return ctx.Err()
		default:
			end := i + maxBatchSize
			if end > len(posts) {
				end = len(posts)
			}

			writeRequests := make([]types.WriteRequest, 0, maxBatchSize)
			for _, post := range posts[i:end] {
				item, err := attributevalue.MarshalMap(post)
				if err != nil {
					return fmt.Errorf("[DynamoDB] Failed to marshal post %s: %w", post.PostID, err)
				}
				writeRequests = append(writeRequests, types.WriteRequest{
					PutRequest: &types.PutRequest{Item: item},
				})
			}

			out, err := s.db.BatchWriteItem(ctx, &dynamodb.BatchWriteItemInput{
				RequestItems: map[string][]types.WriteRequest{
					s.postsTable: writeRequests,
				},
			})
			if err != nil {
				return fmt.Errorf("[DynamoDB] Failed to batch write posts: %w", err)
			}

			retryCount := 0
			backoffDuration := time.Millisecond * 500
			for len(out.UnprocessedItems) > 0 && retryCount < 3 {
				time.Sleep(backoffDuration)
				backoffDuration *= 2
				slog.Warn("[DynamoDB] Retrying unprocessed posts...",
					slog.Int("retry_attempt", retryCount+1),
					slog.Int("remaining_items", len(out.UnprocessedItems[s.postsTable])),
				)

				out, err = s.db.BatchWriteItem(ctx, &dynamodb.BatchWriteItemInput{
					RequestItems: out.UnprocessedItems,
				})
				if err != nil {
					return fmt.Errorf("[DynamoDB] Failed to retry batch write: %w", err)
				}
				retryCount++
			}

			if len(out.UnprocessedItems) > 0 {
				slog.Error("[DynamoDB] Some posts were not written even after retries",
					slog.Int("remaining_items", len(out.UnprocessedItems[s.postsTable])))
			}
		}
	}
	slog.Info("[DynamoDB] Successfully stored posts", slog.Int("count", len(posts)))
	return nil
}

// ListPosts returns stored posts, newest first, optionally filtered by
// platform.
func (s *Store) ListPosts(ctx context.Context, platform string, limit int) ([]models.Post, error) {
	input := &dynamodb.ScanInput{
		TableName: aws.String(s.postsTable),
	}
	if platform != "" {
		input.FilterExpression = aws.String("#platform = :platform")
		input.ExpressionAttributeNames = map[string]string{
			"#platform": "platform",
		}
		input.ExpressionAttributeValues = map[string]types.AttributeValue{
			":platform": &types.AttributeValueMemberS{Value: platform},
		}
	}

	var posts []models.Post
	paginator := dynamodb.NewScanPaginator(s.db, input)
	for paginator.HasMorePages() {
		out, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("[DynamoDB] Scan for posts failed: %w", err)
		}
		var page []models.Post
		if err := attributevalue.UnmarshalListOfMaps(out.Items, &page); err != nil {
			slog.Error("[DynamoDB] Unable to unmarshal post page", slog.String("error", err.Error()))
			return nil, err
		}
		posts = append(posts, page...)
	}

	sort.Slice(posts, func(i, j int) bool {
		return posts[i].ExtractedAt > posts[j].ExtractedAt
	})
	if limit > 0 && len(posts) > limit {
		posts = posts[:limit]
	}

	slog.Info("[DynamoDB] Successfully retrieved posts", slog.Int("count", len(posts)))
	return posts, nil
}
