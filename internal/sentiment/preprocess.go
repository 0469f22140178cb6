package sentiment

import (
	"regexp"
	"strings"

	"github.com/russross/blackfriday/v2"
)

var (
	markdownLinkPattern = regexp.MustCompile(`\[(.*?)\]\((https?:\/\/[^\s\)]+)\)`)
	urlPattern          = regexp.MustCompile(`https?://\S+|www\.\S+`)
	htmlTagPattern      = regexp.MustCompile(`<[^>]*>`)
	hashtagPattern      = regexp.MustCompile(`#\w+`)
	mentionPattern      = regexp.MustCompile(`@\w+`)
	japanesePattern     = regexp.MustCompile(`[\p{Hiragana}\p{Katakana}\p{Han}]`)
	latinPattern        = regexp.MustCompile(`[a-zA-Z]`)
)

func RemoveLinks(input string) string {
	input = markdownLinkPattern.ReplaceAllString(input, "$1") // Keep only the text
	input = urlPattern.ReplaceAllString(input, "")

	return input
}

// ConvertMarkdownToText renders markdown and strips the resulting HTML tags,
// leaving only the visible text.
func ConvertMarkdownToText(input string) string {
	output := blackfriday.Run([]byte(input), blackfriday.WithNoExtensions())
	plainText := htmlTagPattern.ReplaceAllString(string(output), " ")
	plainText = strings.Join(strings.Fields(plainText), " ")

	return RemoveLinks(plainText)
}

// PrepareText strips markdown and URLs and collapses whitespace before
// classification.
func PrepareText(input string) string {
	text := ConvertMarkdownToText(input)
	text = strings.Join(strings.Fields(text), " ")
	return strings.TrimSpace(text)
}

// ExtractKeywords collects hashtags, mentions, and lexicon hits as a
// per-record set: a keyword appearing twice in one text contributes once.
func ExtractKeywords(text string) []string {
	seen := make(map[string]struct{})
	var keywords []string

	add := func(kw string) {
		if _, exists := seen[kw]; !exists {
			seen[kw] = struct{}{}
			keywords = append(keywords, kw)
		}
	}

	for _, tag := range hashtagPattern.FindAllString(text, -1) {
		add(tag)
	}
	for _, mention := range mentionPattern.FindAllString(text, -1) {
		add(mention)
	}

	lower := strings.ToLower(text)
	for _, word := range append(append([]string{}, positiveWords...), negativeWords...) {
		if strings.Contains(lower, word) {
			add(word)
		}
	}

	return keywords
}

// DetectLanguage is a best-effort script check, not authoritative.
func DetectLanguage(text string) string {
	switch {
	case japanesePattern.MatchString(text):
		return "ja"
	case latinPattern.MatchString(text):
		return "en"
	default:
		return "unknown"
	}
}
