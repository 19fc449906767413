package seqio

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Decoder streams raw records from an input in a single format. Next
// returns io.EOF after the last record; any other error is terminal
// and repeats on subsequent calls.
//
// Decoders yield records exactly as written: gap policy, digitization,
// and skip projections are applied by the File facade on top.
type Decoder interface {
	Next() (Record, error)
	Err() error
	Close() error
}

// NewDecoder creates a raw pull-style decoder for the given format.
// The format must be concrete; NewDecoder does not sniff.
func NewDecoder(r io.Reader, format Format) (Decoder, error) {
	info, ok := lookupFormat(format)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	return info.open(r), nil
}

// lineScanner is the line cursor shared by the text decoders. It
// tracks the 1-based line number and byte offset of the line most
// recently returned, and supports one line of pushback for decoders
// that detect a record boundary by over-reading.
type lineScanner struct {
	r             *bufio.Reader
	line          int
	offset        int
	nextOffset    int
	pending       string
	pendingOffset int
	hasPending    bool
	eof           bool
}

func newLineScanner(r io.Reader) *lineScanner {
	return &lineScanner{r: bufio.NewReaderSize(r, 64<<10)}
}

// scan returns the next line with the trailing newline stripped. It
// returns io.EOF only at a clean end of input; a final line without a
// newline is still returned.
func (s *lineScanner) scan() (string, error) {
	if s.hasPending {
		s.hasPending = false
		s.line++
		s.offset = s.pendingOffset
		return s.pending, nil
	}
	if s.eof {
		return "", io.EOF
	}
	raw, err := s.r.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", err
	}
	if err == io.EOF {
		s.eof = true
		if raw == "" {
			return "", io.EOF
		}
	}
	s.line++
	s.offset = s.nextOffset
	s.nextOffset += len(raw)
	return strings.TrimRight(raw, "\r\n"), nil
}

// unread pushes the last scanned line back; the next scan returns it
// again with the same line number and byte offset.
func (s *lineScanner) unread(line string) {
	s.pending = line
	s.pendingOffset = s.offset
	s.hasPending = true
	s.line--
}

// scanNonBlank skips blank lines.
func (s *lineScanner) scanNonBlank() (string, error) {
	for {
		line, err := s.scan()
		if err != nil {
			return "", err
		}
		if strings.TrimSpace(line) != "" {
			return line, nil
		}
	}
}

// positioner is implemented by decoders that can report their read
// cursor. The facade uses it to attach a position to errors raised
// after a record was decoded.
type positioner interface {
	pos() (line, offset int)
}

// stickyDecoder holds the terminal-failure bookkeeping every decoder
// shares: after the first violation the stream stays failed.
type stickyDecoder struct {
	format Format
	record int
	sc     *lineScanner
	err    error
}

func (d *stickyDecoder) Err() error   { return d.err }
func (d *stickyDecoder) Close() error { return nil }

// pos reports the line and byte offset of the last scanned line.
func (d *stickyDecoder) pos() (line, offset int) {
	if d.sc == nil {
		return 0, -1
	}
	return d.sc.line, d.sc.offset
}

// fail records and returns a terminal decode error with positional
// context taken from the scanner.
func (d *stickyDecoder) fail(sc *lineScanner, err error) error {
	line, offset := 0, -1
	if sc != nil {
		line, offset = sc.line, sc.offset
	}
	d.err = wrapParseError(d.format, d.record, line, offset, err)
	return d.err
}

func (d *stickyDecoder) failf(sc *lineScanner, format string, args ...any) error {
	return d.fail(sc, fmt.Errorf(format, args...))
}

// truncated flags an end of input in the middle of a record.
func (d *stickyDecoder) truncated(sc *lineScanner, what string) error {
	return d.fail(sc, fmt.Errorf("%w: %s", ErrTruncatedRecord, what))
}
