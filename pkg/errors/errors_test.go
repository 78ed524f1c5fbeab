package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/matzehuels/bracketmaker/pkg/bracket"
	"github.com/matzehuels/bracketmaker/pkg/roster"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidFormat, "unknown format: %s", "gif")

	if err.Code != ErrCodeInvalidFormat {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInvalidFormat)
	}
	if err.Message != "unknown format: gif" {
		t.Errorf("Message = %v, want %v", err.Message, "unknown format: gif")
	}

	expected := "INVALID_FORMAT: unknown format: gif"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := Wrap(ErrCodeInternal, cause, "cache lookup")

	if err.Cause != cause {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}
	if unwrapped := errors.Unwrap(err); unwrapped != cause {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, cause)
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}
	if want := "INTERNAL_ERROR: cache lookup: connection refused"; err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestIs(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     Code
		expected bool
	}{
		{
			name:     "matching code",
			err:      New(ErrCodeInvalidRoster, "test"),
			code:     ErrCodeInvalidRoster,
			expected: true,
		},
		{
			name:     "non-matching code",
			err:      New(ErrCodeInvalidRoster, "test"),
			code:     ErrCodeInternal,
			expected: false,
		},
		{
			name:     "outer code wins",
			err:      Wrap(ErrCodeInternal, New(ErrCodeInvalidRoster, "inner"), "outer"),
			code:     ErrCodeInternal,
			expected: true,
		},
		{
			name:     "fmt wrapped",
			err:      fmt.Errorf("generate: %w", New(ErrCodeUnlinkedSlot, "x")),
			code:     ErrCodeUnlinkedSlot,
			expected: true,
		},
		{
			name:     "non-Error type",
			err:      errors.New("plain error"),
			code:     ErrCodeInternal,
			expected: false,
		},
		{
			name:     "nil error",
			err:      nil,
			code:     ErrCodeInternal,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.expected {
				t.Errorf("Is() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestClassify(t *testing.T) {
	_, capErr := bracket.Generate(6, bracket.Options{})
	_, linkErr := bracket.Generate(32, bracket.Options{})
	colErr := roster.Columns{ID: -1}.Validate()
	coded := New(ErrCodeNotFound, "gone")

	tests := []struct {
		name string
		err  error
		want Code
	}{
		{"capacity", capErr, ErrCodeInvalidCapacity},
		{"wrapped capacity", fmt.Errorf("run: %w", capErr), ErrCodeInvalidCapacity},
		{"unlinked", linkErr, ErrCodeUnlinkedSlot},
		{"columns", colErr, ErrCodeInvalidRoster},
		{"already coded", coded, ErrCodeNotFound},
		{"unknown", errors.New("disk full"), ErrCodeInternal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.err)
			if GetCode(got) != tt.want {
				t.Errorf("Classify() code = %v, want %v", GetCode(got), tt.want)
			}
			if !errors.Is(got, tt.err) {
				t.Error("Classify must keep the original error in the chain")
			}
		})
	}

	if Classify(nil) != nil {
		t.Error("Classify(nil) should be nil")
	}
	if Classify(coded) != error(coded) {
		t.Error("coded errors should pass through unchanged")
	}
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "Error type",
			err:      New(ErrCodeInvalidFormat, "friendly message"),
			expected: "friendly message",
		},
		{
			name:     "classified sentinel",
			err:      Classify(errors.New("boom")),
			expected: "boom",
		},
		{
			name:     "plain error",
			err:      errors.New("plain error"),
			expected: "plain error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UserMessage(tt.err); got != tt.expected {
				t.Errorf("UserMessage() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		code Code
		want int
	}{
		{ErrCodeInvalidCapacity, http.StatusBadRequest},
		{ErrCodeInvalidFormat, http.StatusBadRequest},
		{ErrCodeInvalidRoster, http.StatusBadRequest},
		{ErrCodeUnlinkedSlot, http.StatusUnprocessableEntity},
		{ErrCodeNotFound, http.StatusNotFound},
		{ErrCodeInternal, http.StatusInternalServerError},
		{"", http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := HTTPStatus(tt.code); got != tt.want {
			t.Errorf("HTTPStatus(%q) = %d, want %d", tt.code, got, tt.want)
		}
	}
}
