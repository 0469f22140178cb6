package models

type Post struct {
	PostID      string  `json:"post_id" dynamodbav:"post_id"`
	Platform    string  `json:"platform" dynamodbav:"platform"`
	OriginalID  string  `json:"original_id" dynamodbav:"original_id"`
	Text        string  `json:"text" dynamodbav:"text"`
	Author      Author  `json:"author" dynamodbav:"author"`
	CreatedAt   string  `json:"created_at" dynamodbav:"created_at"`
	Metrics     Metrics `json:"metrics" dynamodbav:"metrics"`
	Lang        string  `json:"lang" dynamodbav:"lang"`
	Query       string  `json:"query" dynamodbav:"query"`
	ExtractedAt string  `json:"extracted_at" dynamodbav:"extracted_at"`
}

type Author struct {
	ID             string `json:"id" dynamodbav:"id"`
	Name           string `json:"name" dynamodbav:"name"`
	Username       string `json:"username" dynamodbav:"username"`
	Verified       bool   `json:"verified" dynamodbav:"verified"`
	FollowersCount int    `json:"followers_count" dynamodbav:"followers_count"`
}

type Metrics struct {
	RetweetCount int `json:"retweet_count" dynamodbav:"retweet_count"`
	LikeCount    int `json:"like_count" dynamodbav:"like_count"`
	ReplyCount   int `json:"reply_count" dynamodbav:"reply_count"`
	QuoteCount   int `json:"quote_count" dynamodbav:"quote_count"`
}

// PostSummary is the trimmed shape returned to extract callers.
type PostSummary struct {
	PostID   string `json:"post_id"`
	Platform string `json:"platform"`
	Text     string `json:"text"`
	Author   string `json:"author"`
}
