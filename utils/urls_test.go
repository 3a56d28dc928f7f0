package utils

import (
	"testing"
	"time"
)

func TestValidateURL(t *testing.T) {
	tests := []struct {
		url  string
		want bool
	}{
		{"https://example.com", true},
		{"http://example.com/path?q=1", true},
		{"https://localhost:8080/x", true},
		{"ftp://example.com", false},
		{"example.com", false},
		{"", false},
		{"not a url", false},
	}

	for _, tt := range tests {
		if got := ValidateURL(tt.url); got != tt.want {
			t.Errorf("ValidateURL(%q) = %v; want %v", tt.url, got, tt.want)
		}
	}
}

func TestExtractURLsFromMixedText(t *testing.T) {
	text := "Affiliate links\nhttps://casino1.com\nsome notes, see https://casino2.com/bonus.\nhttps://casino1.com again"

	urls := ExtractURLs(text)
	if len(urls) != 2 {
		t.Fatalf("got %d URLs, want 2: %v", len(urls), urls)
	}
	if urls[0] != "https://casino1.com" {
		t.Errorf("urls[0]: got %q", urls[0])
	}
	if urls[1] != "https://casino2.com/bonus" {
		t.Errorf("urls[1]: got %q (trailing punctuation should be stripped)", urls[1])
	}
}

func TestExtractURLsEmpty(t *testing.T) {
	if urls := ExtractURLs("no links in here"); len(urls) != 0 {
		t.Errorf("expected no URLs, got %v", urls)
	}
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Grand Fortune Casino", "Grand_Fortune_Casino"},
		{`bad<>:"/\|?*name`, "badname"},
		{"plain", "plain"},
	}

	for _, tt := range tests {
		if got := SanitizeFilename(tt.in); got != tt.want {
			t.Errorf("SanitizeFilename(%q) = %q; want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{12300 * time.Millisecond, "12.3s"},
		{150 * time.Second, "2m 30s"},
		{3900 * time.Second, "1h 5m"},
	}

	for _, tt := range tests {
		if got := FormatDuration(tt.d); got != tt.want {
			t.Errorf("FormatDuration(%v) = %q; want %q", tt.d, got, tt.want)
		}
	}
}
