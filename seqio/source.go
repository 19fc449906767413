package seqio

import (
	"bytes"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
)

// byteSource is the uniform input abstraction over path-backed and
// in-memory byte streams. It captures a bounded prefix once at open
// time so a single sniff pass can precede decoding without assuming
// the underlying stream is rewindable, then replays the prefix ahead
// of the tail for the decoder.
type byteSource struct {
	name    string
	prefix  []byte
	stream  io.Reader
	closers []io.Closer
	closed  bool
}

// newPathSource opens a filesystem path. A missing path fails with
// ErrNotFound. Gzip-compressed files are decompressed transparently,
// so the sniff prefix holds uncompressed bytes.
func newPathSource(path string) (*byteSource, error) {
	fh, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, err
	}
	src := &byteSource{name: path, closers: []io.Closer{fh}}
	if err := src.init(fh); err != nil {
		fh.Close()
		return nil, err
	}
	return src, nil
}

// newBufferSource wraps an in-memory byte buffer.
func newBufferSource(data []byte) (*byteSource, error) {
	src := &byteSource{name: "<buffer>"}
	if err := src.init(bytes.NewReader(data)); err != nil {
		return nil, err
	}
	return src, nil
}

// init layers gzip decompression when the magic bytes match, then
// captures the sniff prefix. Gzip detection is by content, the same
// way openers in sequence tooling detect it, never by file extension.
func (s *byteSource) init(r io.Reader) error {
	br := newPrefixReader(r)
	magic, err := br.peek(2)
	if err != nil && err != io.EOF {
		return err
	}
	var stream io.Reader = br
	if len(magic) == 2 && magic[0] == 0x1f && magic[1] == 0x8b {
		gz, err := gzip.NewReader(br)
		if err != nil {
			return err
		}
		s.closers = append(s.closers, gz)
		stream = gz
	}

	s.prefix = make([]byte, 0, sniffWindow)
	buf := make([]byte, sniffWindow)
	for len(s.prefix) < sniffWindow {
		n, err := stream.Read(buf[:sniffWindow-len(s.prefix)])
		s.prefix = append(s.prefix, buf[:n]...)
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
	}
	s.stream = io.MultiReader(bytes.NewReader(s.prefix), stream)
	return nil
}

// Peek returns up to n bytes of non-consuming look-ahead, bounded by
// the sniff window.
func (s *byteSource) Peek(n int) ([]byte, error) {
	if s.closed {
		return nil, ErrClosed
	}
	if n > len(s.prefix) {
		n = len(s.prefix)
	}
	return s.prefix[:n], nil
}

// Read implements io.Reader over the full stream, prefix included.
func (s *byteSource) Read(p []byte) (int, error) {
	if s.closed {
		return 0, ErrClosed
	}
	return s.stream.Read(p)
}

// Close releases the underlying resource. It is idempotent; every
// Peek/Read after the first Close fails with ErrClosed.
func (s *byteSource) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	var err error
	for i := len(s.closers) - 1; i >= 0; i-- {
		if cerr := s.closers[i].Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}

// prefixReader supports a tiny peek over a plain io.Reader, enough to
// check the gzip magic without consuming it.
type prefixReader struct {
	r      io.Reader
	peeked []byte
}

func newPrefixReader(r io.Reader) *prefixReader { return &prefixReader{r: r} }

func (p *prefixReader) peek(n int) ([]byte, error) {
	for len(p.peeked) < n {
		buf := make([]byte, n-len(p.peeked))
		m, err := p.r.Read(buf)
		p.peeked = append(p.peeked, buf[:m]...)
		if err != nil {
			return p.peeked, err
		}
	}
	return p.peeked[:n], nil
}

func (p *prefixReader) Read(buf []byte) (int, error) {
	if len(p.peeked) > 0 {
		n := copy(buf, p.peeked)
		p.peeked = p.peeked[n:]
		return n, nil
	}
	return p.r.Read(buf)
}
