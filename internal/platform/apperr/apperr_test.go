package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestFromError(t *testing.T) {
	if FromError(nil) != nil {
		t.Fatalf("nil error must stay nil")
	}

	base := errors.New("boom")
	internal := FromError(base)
	if internal.StatusCode() != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", internal.StatusCode())
	}
	if !errors.Is(internal, base) {
		t.Fatalf("internal error must unwrap to its cause")
	}

	forbidden := Forbidden("survey_expired", "survey has ended", nil)
	wrapped := fmt.Errorf("submit: %w", forbidden)
	if got := FromError(wrapped); got != forbidden {
		t.Fatalf("expected the wrapped AppError back, got %v", got)
	}
	if forbidden.StatusCode() != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", forbidden.StatusCode())
	}
}

func TestZeroValueIsInternal(t *testing.T) {
	var e *AppError
	if e.StatusCode() != http.StatusInternalServerError {
		t.Fatalf("nil AppError should report 500")
	}
	if (&AppError{}).Error() != http.StatusText(http.StatusInternalServerError) {
		t.Fatalf("empty AppError should fall back to status text")
	}
}
