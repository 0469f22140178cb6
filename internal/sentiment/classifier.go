package sentiment

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"regexp"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/echolens/echolens/internal/clients"
	"github.com/echolens/echolens/internal/models"
)

const (
	classifierModel       = openai.GPT4oMini
	classifierRetries     = 3
	classifierTemperature = 0.1
)

// Source tells callers how a result was produced, so a degraded fallback can
// be distinguished from a healthy model response.
type Source = string

const (
	SourceModel   Source = "model"
	SourceVADER   Source = "vader"
	SourceLexicon Source = "lexicon"
)

// Analysis is the typed classification outcome.
type Analysis struct {
	Sentiment  string             `json:"sentiment"`
	Confidence float64            `json:"confidence"`
	Emotions   map[string]float64 `json:"emotions,omitempty"`
	Source     Source             `json:"source"`
}

var ErrEmptyText = errors.New("[Classifier] empty text")

var jsonObjectPattern = regexp.MustCompile(`(?s)\{.*\}`)

// Classifier scores text with a hosted generative model, degrading to the
// local VADER backend or the lexicon heuristic. Constructed once per process
// and reused across invocations.
type Classifier struct {
	openAI *clients.OpenAIClient
}

// NewClassifier returns a hosted-model classifier. A nil client selects the
// local VADER backend instead.
func NewClassifier(openAI *clients.OpenAIClient) *Classifier {
	return &Classifier{openAI: openAI}
}

// Classify scores one text. The only error is empty input; transport and
// parse failures degrade to the deterministic fallback and are visible via
// Analysis.Source.
func (c *Classifier) Classify(ctx context.Context, text string) (Analysis, error) {
	cleaned := PrepareText(text)
	if cleaned == "" {
		return Analysis{Sentiment: models.SentimentUnknown, Source: SourceLexicon}, ErrEmptyText
	}

	if c.openAI == nil {
		return AnalyzeWithVADER(cleaned), nil
	}

	analysis, err := c.classifyWithModel(ctx, cleaned)
	if err != nil {
		slog.Warn("[Classifier] Hosted model failed, falling back to lexicon",
			slog.String("error", err.Error()))
		return AnalyzeWithLexicon(cleaned), nil
	}
	return analysis, nil
}

func (c *Classifier) classifyWithModel(ctx context.Context, text string) (Analysis, error) {
	messages := []openai.ChatCompletionMessage{
		{
			Role:    openai.ChatMessageRoleSystem,
			Content: classifierSystemPrompt,
		},
		{
			Role:    openai.ChatMessageRoleUser,
			Content: text,
		},
	}

	var resp openai.ChatCompletionResponse
	var completionErr error
	for i := 0; i < classifierRetries; i++ {
		start := time.Now()
		resp, completionErr = c.openAI.Client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
			Model:       classifierModel,
			Messages:    messages,
			Temperature: classifierTemperature,
			ResponseFormat: &openai.ChatCompletionResponseFormat{
				Type: openai.ChatCompletionResponseFormatTypeJSONObject,
			},
		})
		if completionErr == nil {
			break
		}
		slog.Warn("[Classifier] Failed to get a response from OpenAI, retrying...",
			slog.String("error", completionErr.Error()),
			slog.Int("attempt", i+1),
			slog.Duration("elapsed", time.Since(start)))
	}
	if completionErr != nil {
		return Analysis{}, completionErr
	}
	if len(resp.Choices) == 0 {
		return Analysis{}, errors.New("[Classifier] empty completion response")
	}

	return parseModelResponse(resp.Choices[0].Message.Content)
}

// parseModelResponse extracts the JSON object from a completion, tolerating
// markdown fences and surrounding prose.
func parseModelResponse(content string) (Analysis, error) {
	cleaned := strings.TrimSpace(content)
	if strings.HasPrefix(cleaned, "```json") {
		cleaned = strings.TrimPrefix(cleaned, "```json")
		cleaned = strings.TrimPrefix(cleaned, "\n")
		cleaned = strings.TrimSuffix(cleaned, "```")
	} else if strings.HasPrefix(cleaned, "```") {
		cleaned = strings.TrimPrefix(cleaned, "```")
		cleaned = strings.TrimPrefix(cleaned, "\n")
		cleaned = strings.TrimSuffix(cleaned, "```")
	}
	cleaned = strings.TrimSpace(cleaned)

	match := jsonObjectPattern.FindString(cleaned)
	if match == "" {
		return Analysis{}, errors.New("[Classifier] no JSON object in model response")
	}

	var parsed struct {
		Sentiment  string             `json:"sentiment"`
		Confidence float64            `json:"confidence"`
		Emotions   map[string]float64 `json:"emotions"`
	}
	if err := json.Unmarshal([]byte(match), &parsed); err != nil {
		return Analysis{}, err
	}

	switch parsed.Sentiment {
	case models.SentimentPositive, models.SentimentNegative, models.SentimentNeutral:
	default:
		return Analysis{}, errors.New("[Classifier] model returned unknown sentiment label")
	}
	if parsed.Confidence < 0 || parsed.Confidence > 1 {
		return Analysis{}, errors.New("[Classifier] model confidence out of range")
	}

	return Analysis{
		Sentiment:  parsed.Sentiment,
		Confidence: parsed.Confidence,
		Emotions:   parsed.Emotions,
		Source:     SourceModel,
	}, nil
}

const classifierSystemPrompt = `You are a sentiment analysis service for social media posts.

Analyze the sentiment of the user's text and respond only with a valid JSON object in this exact format:
{
  "sentiment": "positive" | "negative" | "neutral",
  "confidence": <number between 0.0 and 1.0>,
  "emotions": {
    "joy": <number between 0.0 and 1.0>,
    "anger": <number between 0.0 and 1.0>,
    "sadness": <number between 0.0 and 1.0>,
    "fear": <number between 0.0 and 1.0>,
    "surprise": <number between 0.0 and 1.0>,
    "disgust": <number between 0.0 and 1.0>
  }
}

Account for social media conventions: emoji, slang, sarcasm, and irony.
Do not include any text outside the JSON object.`
