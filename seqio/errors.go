package seqio

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrorCode represents a programmatic error code for error handling.
type ErrorCode string

const (
	// ErrCodeNotFound indicates the input path does not exist.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"
	// ErrCodeUnknownFormat indicates an unrecognized format name.
	ErrCodeUnknownFormat ErrorCode = "UNKNOWN_FORMAT"
	// ErrCodeUndeterminedFormat indicates sniffing found zero or several candidates.
	ErrCodeUndeterminedFormat ErrorCode = "UNDETERMINED_FORMAT"
	// ErrCodeEndOfInput indicates an empty input under an explicit format.
	ErrCodeEndOfInput ErrorCode = "END_OF_INPUT"
	// ErrCodeTruncatedRecord indicates a record cut short by end of input.
	ErrCodeTruncatedRecord ErrorCode = "TRUNCATED_RECORD"
	// ErrCodeMalformedAlignment indicates alignment rows of diverging length.
	ErrCodeMalformedAlignment ErrorCode = "MALFORMED_ALIGNMENT"
	// ErrCodeUnsupportedVersion indicates an unrecognized major format version.
	ErrCodeUnsupportedVersion ErrorCode = "UNSUPPORTED_VERSION"
	// ErrCodeIncompatibleAlphabet indicates residues outside a requested alphabet.
	ErrCodeIncompatibleAlphabet ErrorCode = "INCOMPATIBLE_ALPHABET"
	// ErrCodeUnexpectedGap indicates a gap symbol in an unaligned sequence.
	ErrCodeUnexpectedGap ErrorCode = "UNEXPECTED_GAP"
	// ErrCodeClosed indicates an operation on a closed reader.
	ErrCodeClosed ErrorCode = "CLOSED"
	// ErrCodeParseError indicates a general parse error.
	ErrCodeParseError ErrorCode = "PARSE_ERROR"
)

var (
	// ErrNotFound indicates the input path does not exist.
	ErrNotFound = errors.New("seqio: file not found")
	// ErrUnknownFormat indicates an unrecognized format name.
	ErrUnknownFormat = errors.New("seqio: unknown format")
	// ErrUndeterminedFormat indicates content sniffing found zero or
	// more than one candidate format.
	ErrUndeterminedFormat = errors.New("seqio: format could not be determined")
	// ErrEndOfInput indicates an empty input under an explicit format.
	ErrEndOfInput = errors.New("seqio: end of input")
	// ErrTruncatedRecord indicates a record cut short by end of input.
	ErrTruncatedRecord = errors.New("seqio: truncated record")
	// ErrMalformedAlignment indicates alignment rows that do not all
	// resolve to one column count.
	ErrMalformedAlignment = errors.New("seqio: malformed alignment")
	// ErrUnsupportedVersion indicates an unrecognized major format version.
	ErrUnsupportedVersion = errors.New("seqio: unsupported format version")
	// ErrIncompatibleAlphabet indicates residues outside a requested alphabet.
	ErrIncompatibleAlphabet = errors.New("seqio: incompatible alphabet")
	// ErrUnexpectedGap indicates a gap symbol in an unaligned sequence.
	ErrUnexpectedGap = errors.New("seqio: unexpected gap symbol")
	// ErrClosed indicates an operation on a closed reader or source.
	ErrClosed = errors.New("seqio: reader is closed")
)

// Code returns the error code for an error, or ErrCodeParseError if
// unknown. Returns the empty string for nil errors and io.EOF, which is
// the end-of-stream marker rather than an error condition.
func Code(err error) ErrorCode {
	if err == nil || err == io.EOF {
		return ""
	}
	switch {
	case errors.Is(err, ErrNotFound):
		return ErrCodeNotFound
	case errors.Is(err, ErrUnknownFormat):
		return ErrCodeUnknownFormat
	case errors.Is(err, ErrUndeterminedFormat):
		return ErrCodeUndeterminedFormat
	case errors.Is(err, ErrEndOfInput):
		return ErrCodeEndOfInput
	case errors.Is(err, ErrTruncatedRecord):
		return ErrCodeTruncatedRecord
	case errors.Is(err, ErrMalformedAlignment):
		return ErrCodeMalformedAlignment
	case errors.Is(err, ErrUnsupportedVersion):
		return ErrCodeUnsupportedVersion
	case errors.Is(err, ErrIncompatibleAlphabet):
		return ErrCodeIncompatibleAlphabet
	case errors.Is(err, ErrUnexpectedGap):
		return ErrCodeUnexpectedGap
	case errors.Is(err, ErrClosed):
		return ErrCodeClosed
	}
	return ErrCodeParseError
}

// ParseError provides structured context for decode failures.
type ParseError struct {
	Format Format // format being decoded
	Record int    // 0-based index of the record being decoded
	Line   int    // 1-based line number (0 if unknown or binary)
	Offset int    // byte offset in the input (negative if unknown)
	Err    error  // underlying error
}

func (e *ParseError) Error() string {
	var msg strings.Builder
	msg.WriteString(string(e.Format))
	fmt.Fprintf(&msg, ": record %d", e.Record)
	if e.Line > 0 {
		fmt.Fprintf(&msg, ": line %d", e.Line)
	}
	if e.Offset >= 0 {
		fmt.Fprintf(&msg, " (offset %d)", e.Offset)
	}
	msg.WriteString(": ")
	msg.WriteString(e.Err.Error())
	return msg.String()
}

func (e *ParseError) Unwrap() error { return e.Err }

// wrapParseError adds format/record/position context to a decode error.
// Errors that already carry ParseError context pass through unchanged,
// so the innermost position wins.
func wrapParseError(format Format, record, line, offset int, err error) error {
	if err == nil {
		return nil
	}
	var parseErr *ParseError
	if errors.As(err, &parseErr) {
		return err
	}
	return &ParseError{
		Format: format,
		Record: record,
		Line:   line,
		Offset: offset,
		Err:    err,
	}
}
