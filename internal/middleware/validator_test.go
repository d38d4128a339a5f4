package middleware

import (
	"strings"
	"testing"
)

func TestValidateArticleText(t *testing.T) {
	if err := ValidateArticleText("Marie Curie discovered radium."); err != nil {
		t.Errorf("valid text rejected: %v", err)
	}
	if err := ValidateArticleText("   "); err == nil {
		t.Error("whitespace-only text should be rejected")
	}
	if err := ValidateArticleText(strings.Repeat("a", MaxArticleLength+1)); err == nil {
		t.Error("oversized text should be rejected")
	}
}

func TestValidateLimit(t *testing.T) {
	if got := ValidateLimit(0); got != 10 {
		t.Errorf("default limit should be 10, got %d", got)
	}
	if got := ValidateLimit(500); got != 100 {
		t.Errorf("limit should cap at 100, got %d", got)
	}
	if got := ValidateLimit(25); got != 25 {
		t.Errorf("in-range limit should pass through, got %d", got)
	}
}

func TestSanitizeString(t *testing.T) {
	if got := SanitizeString("  hello\x00 world\x07  "); got != "hello world" {
		t.Errorf("unexpected sanitized string: %q", got)
	}
}
