package clients

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/echolens/echolens/internal/models"
)

const twitterAPIBaseURL = "https://api.twitter.com"

// TwitterClient wraps the Twitter API v2 recent-search endpoint. A client
// without a bearer token is still constructable; Search fails and the caller
// falls back to demo data.
type TwitterClient struct {
	client      *resty.Client
	bearerToken string
}

type twitterSearchResponse struct {
	Data     []twitterTweet `json:"data"`
	Includes struct {
		Users []twitterUser `json:"users"`
	} `json:"includes"`
}

type twitterTweet struct {
	ID            string `json:"id"`
	Text          string `json:"text"`
	AuthorID      string `json:"author_id"`
	CreatedAt     string `json:"created_at"`
	Lang          string `json:"lang"`
	PublicMetrics struct {
		RetweetCount int `json:"retweet_count"`
		LikeCount    int `json:"like_count"`
		ReplyCount   int `json:"reply_count"`
		QuoteCount   int `json:"quote_count"`
	} `json:"public_metrics"`
}

type twitterUser struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Username      string `json:"username"`
	Verified      bool   `json:"verified"`
	PublicMetrics struct {
		FollowersCount int `json:"followers_count"`
	} `json:"public_metrics"`
}

func NewTwitterClient(bearerToken string) *TwitterClient {
	return &TwitterClient{
		client: resty.New().
			SetBaseURL(twitterAPIBaseURL).
			SetTimeout(10 * time.Second).
			SetRetryCount(2),
		bearerToken: bearerToken,
	}
}

func (c *TwitterClient) Configured() bool {
	return c.bearerToken != ""
}

// Search runs a recent-search query and maps the tweets into posts.
func (c *TwitterClient) Search(ctx context.Context, query string, maxResults int) ([]models.Post, error) {
	if c.bearerToken == "" {
		return nil, fmt.Errorf("[TwitterClient] bearer token not configured")
	}

	if maxResults > 100 {
		maxResults = 100
	}
	if maxResults < 10 {
		maxResults = 10
	}

	var result twitterSearchResponse
	resp, err := c.client.R().
		SetContext(ctx).
		SetAuthToken(c.bearerToken).
		SetQueryParams(map[string]string{
			"query":        query,
			"max_results":  fmt.Sprintf("%d", maxResults),
			"tweet.fields": "created_at,author_id,public_metrics,lang",
			"user.fields":  "name,username,verified,public_metrics",
			"expansions":   "author_id",
		}).
		SetResult(&result).
		Get("/2/tweets/search/recent")
	if err != nil {
		return nil, fmt.Errorf("[TwitterClient] recent search failed: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("[TwitterClient] recent search returned status %d", resp.StatusCode())
	}

	users := make(map[string]twitterUser, len(result.Includes.Users))
	for _, u := range result.Includes.Users {
		users[u.ID] = u
	}

	posts := make([]models.Post, 0, len(result.Data))
	for _, tweet := range result.Data {
		user := users[tweet.AuthorID]
		posts = append(posts, models.Post{
			Platform:   "twitter",
			OriginalID: tweet.ID,
			Text:       tweet.Text,
			Author: models.Author{
				ID:             tweet.AuthorID,
				Name:           user.Name,
				Username:       user.Username,
				Verified:       user.Verified,
				FollowersCount: user.PublicMetrics.FollowersCount,
			},
			CreatedAt: tweet.CreatedAt,
			Metrics: models.Metrics{
				RetweetCount: tweet.PublicMetrics.RetweetCount,
				LikeCount:    tweet.PublicMetrics.LikeCount,
				ReplyCount:   tweet.PublicMetrics.ReplyCount,
				QuoteCount:   tweet.PublicMetrics.QuoteCount,
			},
			Lang:  tweet.Lang,
			Query: query,
		})
	}

	slog.Info("[TwitterClient] Recent search completed",
		slog.String("query", query),
		slog.Int("count", len(posts)))

	return posts, nil
}
