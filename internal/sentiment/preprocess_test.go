package sentiment

import (
	"reflect"
	"testing"
)

func TestRemoveLinks(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"markdown link keeps text", "check [the docs](https://example.com/docs)", "check the docs"},
		{"bare url removed", "see https://example.com now", "see  now"},
		{"www url removed", "visit www.example.com today", "visit  today"},
		{"plain text untouched", "nothing to strip here", "nothing to strip here"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := RemoveLinks(tc.in); got != tc.want {
				t.Errorf("RemoveLinks(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestPrepareText(t *testing.T) {
	got := PrepareText("**Big news!**   check [this](https://example.com)\n\nnow")
	want := "Big news! check this now"
	if got != want {
		t.Errorf("PrepareText = %q, want %q", got, want)
	}
}

func TestPrepareTextEmpty(t *testing.T) {
	if got := PrepareText("   \n  "); got != "" {
		t.Errorf("whitespace-only input should collapse to empty, got %q", got)
	}
}

func TestExtractKeywords(t *testing.T) {
	got := ExtractKeywords("Love the #update from @vendor, really love it #update")
	want := []string{"#update", "@vendor", "love"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ExtractKeywords = %v, want %v", got, want)
	}
}

func TestDetectLanguage(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"hello world", "en"},
		{"これはテストです", "ja"},
		{"1234 !!", "unknown"},
	}
	for _, tc := range cases {
		if got := DetectLanguage(tc.in); got != tc.want {
			t.Errorf("DetectLanguage(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
