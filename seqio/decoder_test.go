package seqio

import (
	"errors"
	"io"
	"strings"
	"testing"
)

func TestNewDecoderUnknownFormat(t *testing.T) {
	_, err := NewDecoder(strings.NewReader(""), Format("bogus"))
	if !errors.Is(err, ErrUnknownFormat) {
		t.Fatalf("got %v, want ErrUnknownFormat", err)
	}
	_, err = NewDecoder(strings.NewReader(""), FormatAuto)
	if !errors.Is(err, ErrUnknownFormat) {
		t.Fatalf("auto format: got %v, want ErrUnknownFormat", err)
	}
}

func TestLineScanner(t *testing.T) {
	sc := newLineScanner(strings.NewReader("one\r\ntwo\nlast"))
	for i, want := range []string{"one", "two", "last"} {
		line, err := sc.scan()
		if err != nil {
			t.Fatalf("line %d: %v", i+1, err)
		}
		if line != want {
			t.Errorf("line %d = %q, want %q", i+1, line, want)
		}
		if sc.line != i+1 {
			t.Errorf("line counter = %d, want %d", sc.line, i+1)
		}
	}
	if _, err := sc.scan(); err != io.EOF {
		t.Fatalf("got %v, want io.EOF", err)
	}
	if _, err := sc.scan(); err != io.EOF {
		t.Fatal("io.EOF does not repeat")
	}
}

func TestLineScannerUnread(t *testing.T) {
	sc := newLineScanner(strings.NewReader("a\nb\n"))
	line, _ := sc.scan()
	sc.unread(line)
	again, err := sc.scan()
	if err != nil || again != line {
		t.Fatalf("reread = %q, %v, want %q", again, err, line)
	}
	next, _ := sc.scan()
	if next != "b" {
		t.Fatalf("next = %q, want b", next)
	}
}

func TestLineScannerUnreadKeepsPosition(t *testing.T) {
	sc := newLineScanner(strings.NewReader("one\ntwo\nthree\n"))
	sc.scan()
	line, _ := sc.scan()
	wantLine, wantOffset := sc.line, sc.offset
	if wantOffset != len("one\n") {
		t.Fatalf("offset = %d, want %d", wantOffset, len("one\n"))
	}

	sc.unread(line)
	if _, err := sc.scan(); err != nil {
		t.Fatal(err)
	}
	if sc.line != wantLine || sc.offset != wantOffset {
		t.Fatalf("position after reread = (%d, %d), want (%d, %d)",
			sc.line, sc.offset, wantLine, wantOffset)
	}

	sc.scan()
	if sc.offset != len("one\ntwo\n") {
		t.Fatalf("offset after advance = %d, want %d", sc.offset, len("one\ntwo\n"))
	}
}

func TestLineScannerSkipsBlank(t *testing.T) {
	sc := newLineScanner(strings.NewReader("\n  \n\t\nvalue\n"))
	line, err := sc.scanNonBlank()
	if err != nil || line != "value" {
		t.Fatalf("scanNonBlank = %q, %v", line, err)
	}
}
