package extractor

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/aws/aws-lambda-go/events"

	"github.com/echolens/echolens/internal/models"
)

const (
	defaultMaxResults = 10
	defaultListLimit  = 50
	maxResultsCap     = 100
	summaryTextLimit  = 100
)

// PostStore persists and lists extracted posts.
type PostStore interface {
	PutPosts(ctx context.Context, posts []models.Post) error
	ListPosts(ctx context.Context, platform string, limit int) ([]models.Post, error)
}

// PlatformSearcher fetches recent posts for a query from a live platform.
type PlatformSearcher interface {
	Configured() bool
	Search(ctx context.Context, query string, maxResults int) ([]models.Post, error)
}

// Deduper tracks already-extracted post ids so retried extractions skip them.
type Deduper interface {
	IsPostExtracted(ctx context.Context, platform string, postID string) bool
	MarkExtracted(ctx context.Context, platform string, postID string) error
}

// Extractor serves the extraction API: POST .../extract pulls posts from a
// platform into the store, GET lists what is stored. A nil deduper disables
// duplicate tracking.
type Extractor struct {
	store   PostStore
	twitter PlatformSearcher
	dedup   Deduper
	now     func() time.Time
}

func New(store PostStore, twitter PlatformSearcher, dedup Deduper) *Extractor {
	return &Extractor{
		store:   store,
		twitter: twitter,
		dedup:   dedup,
		now:     time.Now,
	}
}

func (e *Extractor) Handle(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	switch {
	case request.HTTPMethod == "POST" && strings.Contains(request.Path, "extract"):
		return e.extractPosts(ctx, request), nil
	case request.HTTPMethod == "GET":
		return e.listPosts(ctx, request), nil
	default:
		return proxyResponse(400, map[string]any{"error": "Unsupported method"}), nil
	}
}

func (e *Extractor) extractPosts(ctx context.Context, request events.APIGatewayProxyRequest) events.APIGatewayProxyResponse {
	var req models.ExtractRequest
	if request.Body != "" {
		if err := json.Unmarshal([]byte(request.Body), &req); err != nil {
			return proxyResponse(400, map[string]any{"error": "Invalid request body"})
		}
	}

	platform := strings.ToLower(req.Platform)
	if platform == "" {
		platform = "twitter"
	}
	if req.Query == "" {
		return proxyResponse(400, map[string]any{"error": "Query parameter is required"})
	}

	maxResults := req.MaxResults
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}
	if maxResults > maxResultsCap {
		maxResults = maxResultsCap
	}

	var posts []models.Post
	switch platform {
	case "twitter":
		posts = e.searchTwitter(ctx, req.Query, maxResults)
	case "demo":
		posts = GenerateDemoPosts(req.Query, maxResults)
	default:
		return proxyResponse(400, map[string]any{"error": fmt.Sprintf("Unsupported platform: %s", platform)})
	}

	stored := e.storePosts(ctx, posts)

	summaries := make([]models.PostSummary, 0, len(stored))
	for _, post := range stored {
		summaries = append(summaries, models.PostSummary{
			PostID:   post.PostID,
			Platform: post.Platform,
			Text:     truncate(post.Text, summaryTextLimit),
			Author:   post.Author.Name,
		})
	}

	return proxyResponse(200, map[string]any{
		"message":  fmt.Sprintf("Successfully extracted %d posts", len(stored)),
		"posts":    summaries,
		"platform": platform,
		"query":    req.Query,
	})
}

// searchTwitter degrades to demo data when the platform is unreachable or no
// token is configured, so the pipeline stays exercisable end to end.
func (e *Extractor) searchTwitter(ctx context.Context, query string, maxResults int) []models.Post {
	if e.twitter == nil || !e.twitter.Configured() {
		slog.Warn("[Extractor] Twitter bearer token not configured, using demo data")
		return GenerateDemoPosts(query, maxResults)
	}

	posts, err := e.twitter.Search(ctx, query, maxResults)
	if err != nil {
		slog.Error("[Extractor] Twitter extraction failed, using demo data",
			slog.String("error", err.Error()))
		return GenerateDemoPosts(query, maxResults)
	}
	return posts
}

// storePosts assigns ids, drops already-seen posts, and writes the rest.
func (e *Extractor) storePosts(ctx context.Context, posts []models.Post) []models.Post {
	extractedAt := e.now().UTC().Format(time.RFC3339)

	fresh := make([]models.Post, 0, len(posts))
	for _, post := range posts {
		post.PostID = fmt.Sprintf("%s_%s", post.Platform, post.OriginalID)
		post.ExtractedAt = extractedAt

		if e.dedup != nil && e.dedup.IsPostExtracted(ctx, post.Platform, post.PostID) {
			slog.Debug("[Extractor] Skipping already-extracted post",
				slog.String("post_id", post.PostID))
			continue
		}
		fresh = append(fresh, post)
	}

	if len(fresh) == 0 {
		return fresh
	}

	if err := e.store.PutPosts(ctx, fresh); err != nil {
		slog.Error("[Extractor] Failed to store posts", slog.String("error", err.Error()))
		return nil
	}

	if e.dedup != nil {
		for _, post := range fresh {
			if err := e.dedup.MarkExtracted(ctx, post.Platform, post.PostID); err != nil {
				slog.Warn("[Extractor] Failed to mark post as extracted",
					slog.String("post_id", post.PostID),
					slog.String("error", err.Error()))
			}
		}
	}

	return fresh
}

func (e *Extractor) listPosts(ctx context.Context, request events.APIGatewayProxyRequest) events.APIGatewayProxyResponse {
	params := request.QueryStringParameters
	platform := params["platform"]

	limit := defaultListLimit
	if raw := params["limit"]; raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return proxyResponse(400, map[string]any{"error": "Invalid limit parameter"})
		}
		limit = parsed
	}
	if limit > maxResultsCap {
		limit = maxResultsCap
	}

	posts, err := e.store.ListPosts(ctx, platform, limit)
	if err != nil {
		slog.Error("[Extractor] Failed to list posts", slog.String("error", err.Error()))
		return proxyResponse(500, map[string]any{"error": "Failed to get posts"})
	}

	return proxyResponse(200, map[string]any{
		"posts":    posts,
		"count":    len(posts),
		"platform": platform,
	})
}

// truncate cuts on a rune boundary so multibyte text (demo posts carry emoji)
// stays valid UTF-8.
func truncate(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit]) + "..."
}

func proxyResponse(status int, body any) events.APIGatewayProxyResponse {
	encoded, err := json.Marshal(body)
	if err != nil {
		slog.Error("[Extractor] Failed to encode response body", slog.String("error", err.Error()))
		return events.APIGatewayProxyResponse{StatusCode: 500, Body: `{"error":"response encoding failed"}`}
	}
	return events.APIGatewayProxyResponse{
		StatusCode: status,
		Headers: map[string]string{
			"Content-Type":                 "application/json",
			"Access-Control-Allow-Origin":  "*",
			"Access-Control-Allow-Methods": "GET, POST, OPTIONS",
			"Access-Control-Allow-Headers": "Content-Type, Authorization",
		},
		Body: string(encoded),
	}
}
