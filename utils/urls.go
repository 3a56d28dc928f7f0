package utils

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

var (
	// urlRegexp matches http/https URLs embedded in mixed text.
	urlRegexp = regexp.MustCompile(`https?://(?:[a-zA-Z0-9-]+\.)+[a-zA-Z]{2,}(?::[0-9]{1,5})?(?:/[^\s]*)?`)
	// validURLRegexp validates a full URL string on its own.
	validURLRegexp = regexp.MustCompile(`^(?i)https?://(?:(?:[A-Z0-9](?:[A-Z0-9-]{0,61}[A-Z0-9])?\.)+[A-Z]{2,6}\.?|localhost|\d{1,3}\.\d{1,3}\.\d{1,3}\.\d{1,3})(?::\d+)?(?:/?|[/?]\S+)$`)
	// invalidFileChars are stripped when deriving filenames from names.
	invalidFileChars = regexp.MustCompile(`[<>:"/\\|?*]`)
)

// ValidateURL reports whether s looks like a well-formed http(s) URL.
func ValidateURL(s string) bool {
	return validURLRegexp.MatchString(s)
}

// ExtractURLs pulls every http(s) URL out of mixed text — pasted lists,
// files with comments, descriptions. Trailing punctuation is stripped and
// duplicates removed while preserving first-seen order.
func ExtractURLs(text string) []string {
	matches := urlRegexp.FindAllString(text, -1)

	var urls []string
	seen := make(map[string]struct{})
	for _, u := range matches {
		u = strings.TrimRight(u, ".,;:!?)")
		if _, dup := seen[u]; dup {
			continue
		}
		if !ValidateURL(u) {
			continue
		}
		seen[u] = struct{}{}
		urls = append(urls, u)
	}
	return urls
}

// SanitizeFilename strips characters invalid in filenames, replaces
// spaces with underscores, and caps the length at 200.
func SanitizeFilename(name string) string {
	name = invalidFileChars.ReplaceAllString(name, "")
	name = strings.ReplaceAll(name, " ", "_")
	if len(name) > 200 {
		name = name[:200]
	}
	return name
}

// FormatDuration renders a duration as "12.3s", "2m 30s" or "1h 5m".
func FormatDuration(d time.Duration) string {
	secs := d.Seconds()
	switch {
	case secs < 60:
		return fmt.Sprintf("%.1fs", secs)
	case secs < 3600:
		return fmt.Sprintf("%dm %ds", int(secs)/60, int(secs)%60)
	default:
		return fmt.Sprintf("%dh %dm", int(secs)/3600, (int(secs)%3600)/60)
	}
}
