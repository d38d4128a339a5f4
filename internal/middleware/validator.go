package middleware

import (
	"fmt"
	"strings"
)

// Input validation and sanitization utilities

// MaxArticleLength caps accepted article size; anything longer would blow
// the prompt past what the local model can take anyway.
const MaxArticleLength = 100_000

// ValidateArticleText checks the text field of an analyze request.
// Trimming is the handler's concern; this only rejects, never rewrites.
func ValidateArticleText(text string) error {
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("text cannot be empty")
	}
	if len(text) > MaxArticleLength {
		return fmt.Errorf("text too long (max %d bytes)", MaxArticleLength)
	}
	return nil
}

// SanitizeString removes dangerous characters from strings
func SanitizeString(input string) string {
	input = strings.ReplaceAll(input, "\x00", "")

	var result strings.Builder
	for _, r := range input {
		if r >= 32 || r == '\t' || r == '\n' {
			result.WriteRune(r)
		}
	}

	return strings.TrimSpace(result.String())
}

// ValidateLimit validates listing limit
func ValidateLimit(limit int) int {
	if limit <= 0 {
		return 10 // default, matches the original ten-row index page
	}
	if limit > 100 {
		return 100 // max limit
	}
	return limit
}
