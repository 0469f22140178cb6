package extractor

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/echolens/echolens/internal/models"
)

var demoTemplates = []string{
	"Just tried the new %s feature and it's amazing! 🚀",
	"What do you think about %s? I'm not sure if it's worth it...",
	"Love the %s update! Makes everything so much easier 💖",
	"Anyone else having issues with %s? Need help!",
	"%s is trending! Here's my honest review...",
	"Can't believe how good %s has become. Highly recommend! ⭐",
	"Mixed feelings about %s. Some good points, some bad.",
	"Breaking: Major update to %s just dropped! 🔥",
	"%s vs competitors - here's what I found out",
	"Tutorial: How to get the most out of %s",
}

// GenerateDemoPosts fabricates deterministic-shaped posts for environments
// without a live platform token. At most one post per template.
func GenerateDemoPosts(query string, maxResults int) []models.Post {
	count := maxResults
	if count > len(demoTemplates) {
		count = len(demoTemplates)
	}

	now := time.Now().UTC().Format(time.RFC3339)
	posts := make([]models.Post, 0, count)
	for i := 0; i < count; i++ {
		posts = append(posts, models.Post{
			Platform:   "demo",
			OriginalID: "demo_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:8],
			Text:       fmt.Sprintf(demoTemplates[i], query),
			Author: models.Author{
				ID:             fmt.Sprintf("user_%d", i+1),
				Name:           fmt.Sprintf("Demo User %d", i+1),
				Username:       fmt.Sprintf("demouser%d", i+1),
				Verified:       i%3 == 0,
				FollowersCount: (i + 1) * 1000,
			},
			CreatedAt: now,
			Metrics: models.Metrics{
				RetweetCount: i * 5,
				LikeCount:    i * 15,
				ReplyCount:   i * 3,
				QuoteCount:   i * 2,
			},
			Lang:  "en",
			Query: query,
		})
	}

	return posts
}
