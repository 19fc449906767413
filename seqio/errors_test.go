package seqio

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"
)

func TestCode(t *testing.T) {
	tests := []struct {
		err  error
		want ErrorCode
	}{
		{nil, ""},
		{io.EOF, ""},
		{ErrNotFound, ErrCodeNotFound},
		{ErrUnknownFormat, ErrCodeUnknownFormat},
		{ErrUndeterminedFormat, ErrCodeUndeterminedFormat},
		{ErrEndOfInput, ErrCodeEndOfInput},
		{ErrTruncatedRecord, ErrCodeTruncatedRecord},
		{ErrMalformedAlignment, ErrCodeMalformedAlignment},
		{ErrUnsupportedVersion, ErrCodeUnsupportedVersion},
		{ErrIncompatibleAlphabet, ErrCodeIncompatibleAlphabet},
		{ErrUnexpectedGap, ErrCodeUnexpectedGap},
		{ErrClosed, ErrCodeClosed},
		{fmt.Errorf("wrapped: %w", ErrTruncatedRecord), ErrCodeTruncatedRecord},
		{errors.New("anything else"), ErrCodeParseError},
	}
	for _, tt := range tests {
		if got := Code(tt.err); got != tt.want {
			t.Errorf("Code(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}

func TestParseErrorMessage(t *testing.T) {
	err := &ParseError{
		Format: FormatFasta,
		Record: 3,
		Line:   17,
		Offset: 420,
		Err:    ErrTruncatedRecord,
	}
	msg := err.Error()
	for _, want := range []string{"fasta", "record 3", "line 17", "offset 420"} {
		if !strings.Contains(msg, want) {
			t.Errorf("message %q missing %q", msg, want)
		}
	}
	if !errors.Is(err, ErrTruncatedRecord) {
		t.Error("ParseError does not unwrap to its cause")
	}
}

func TestWrapParseErrorInnermostWins(t *testing.T) {
	inner := wrapParseError(FormatFasta, 0, 5, 100, ErrTruncatedRecord)
	outer := wrapParseError(FormatFasta, 2, 0, -1, inner)
	if outer != inner {
		t.Fatal("re-wrapping replaced the inner positional context")
	}
	if wrapParseError(FormatFasta, 0, 0, 0, nil) != nil {
		t.Fatal("wrapping nil must stay nil")
	}
}
