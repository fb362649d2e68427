package shared

import (
	"fmt"
	"strings"
	"testing"
)

func TestSanitizeFileName(t *testing.T) {
	tests := map[string]string{
		`AC/DC`:        "AC_DC",
		`a:b*c?d`:      "a_b_c_d",
		`  trimmed.  `: "trimmed",
		``:             "unknown",
		`normal name`:  "normal name",
		`quote"inside`: "quote_inside",
	}
	for input, want := range tests {
		if got := SanitizeFileName(input); got != want {
			t.Errorf("SanitizeFileName(%q) = %q, want %q", input, got, want)
		}
	}

	long := strings.Repeat("x", 300)
	if got := SanitizeFileName(long); len(got) != 255 {
		t.Errorf("long name not truncated: len=%d", len(got))
	}
}

func TestTruncateString(t *testing.T) {
	if got := TruncateString("short", 10); got != "short" {
		t.Errorf("TruncateString(short, 10) = %q", got)
	}
	if got := TruncateString("a very long string indeed", 10); got != "a very ..." {
		t.Errorf("TruncateString = %q", got)
	}
}

func TestMaskSecret(t *testing.T) {
	if got := MaskSecret("abcdefgh"); got != "****efgh" {
		t.Errorf("MaskSecret = %q, want ****efgh", got)
	}
	if got := MaskSecret("ab"); got != "**" {
		t.Errorf("MaskSecret(short) = %q, want **", got)
	}
}

func TestAPIErrorDiscrimination(t *testing.T) {
	marker := &APIError{Service: "discogs", Kind: KindRateLimited, RetryAfter: 30}

	if !IsKind(marker, KindRateLimited) {
		t.Error("IsKind should match the marker's discriminator")
	}
	if IsKind(marker, KindAuthRequired) {
		t.Error("IsKind should not match a different discriminator")
	}

	wrapped := fmt.Errorf("search failed: %w", marker)
	got := AsAPIError(wrapped)
	if got == nil {
		t.Fatal("AsAPIError should unwrap wrapped markers")
	}
	if got.RetryAfter != 30 {
		t.Errorf("RetryAfter = %d, want 30", got.RetryAfter)
	}

	if AsAPIError(fmt.Errorf("plain failure")) != nil {
		t.Error("AsAPIError should be nil for generic errors")
	}
}

func TestAPIErrorMessage(t *testing.T) {
	err := &APIError{Service: "getsongbpm", Kind: KindNoAPIKey}
	if !strings.Contains(err.Error(), "getsongbpm") || !strings.Contains(err.Error(), KindNoAPIKey) {
		t.Errorf("Error() = %q", err.Error())
	}
}
