package usecase

import "strings"

// IsRelevant reports whether any keyword occurs in text, ignoring case.
// Blank keywords never match.
func IsRelevant(text string, keywords []string) bool {
	lower := strings.ToLower(text)
	for _, keyword := range keywords {
		keyword = strings.TrimSpace(keyword)
		if keyword == "" {
			continue
		}
		if strings.Contains(lower, strings.ToLower(keyword)) {
			return true
		}
	}
	return false
}
