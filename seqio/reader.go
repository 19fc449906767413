package seqio

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"strings"
)

// File is the streaming reader facade. It owns its byte source
// exclusively: the cursor advances monotonically with each Read, and
// Close releases the source exactly once. A File is not safe for
// concurrent use; independent Files share no state.
type File struct {
	src    *byteSource
	dec    Decoder
	format Format
	opts   Options
	record int
	err    error
	closed bool
}

// Open opens a path for reading. With no WithFormat option the format
// is detected by sniffing a bounded content prefix; detection cost is
// independent of file size.
func Open(path string, opts ...Option) (*File, error) {
	return openSource(func() (*byteSource, error) { return newPathSource(path) }, opts)
}

// OpenBytes opens an in-memory buffer for reading.
func OpenBytes(data []byte, opts ...Option) (*File, error) {
	return openSource(func() (*byteSource, error) { return newBufferSource(data) }, opts)
}

// Parse decodes the first record of a buffer in the given format.
func Parse(data []byte, format string) (Record, error) {
	f, err := OpenBytes(data, WithFormat(format))
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return f.Read()
}

func openSource(open func() (*byteSource, error), opts []Option) (*File, error) {
	var o Options
	for _, opt := range opts {
		opt(&o)
	}

	// An explicit format is resolved before the source is touched, so
	// a nonsense name fails without consuming any byte.
	format := FormatAuto
	if o.FormatName != "" {
		var ok bool
		format, ok = ParseFormat(o.FormatName)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, o.FormatName)
		}
		if o.Kind != KindAny && format.Kind() != o.Kind {
			return nil, fmt.Errorf("%w: %q is a %s format, want %s",
				ErrUnknownFormat, format, format.Kind(), o.Kind)
		}
	}

	src, err := open()
	if err != nil {
		return nil, err
	}
	prefix, err := src.Peek(sniffWindow)
	if err != nil {
		src.Close()
		return nil, err
	}

	if format == FormatAuto {
		format, err = detectFormat(prefix, o.Kind)
		if err != nil {
			src.Close()
			return nil, err
		}
	} else if len(prefix) == 0 {
		// an explicit format promises content; an empty source is a
		// distinct failure from an undetectable one
		src.Close()
		return nil, fmt.Errorf("%w: %s is empty", ErrEndOfInput, src.name)
	}

	if o.IgnoreGaps && format.Kind() != KindSequence {
		src.Close()
		return nil, fmt.Errorf("seqio: ignore gaps applies only to sequence formats, not %s", format)
	}

	dec, err := NewDecoder(src, format)
	if err != nil {
		src.Close()
		return nil, err
	}
	return &File{src: src, dec: dec, format: format, opts: o}, nil
}

// Format returns the explicit or detected format of the stream.
func (f *File) Format() Format { return f.format }

// Read returns the next record, or io.EOF after the last one. Further
// calls after io.EOF deterministically return io.EOF again; any other
// error is terminal and repeats. Per-read options project the record:
// SkipInfo drops metadata, SkipSequence drops residues.
func (f *File) Read(opts ...ReadOption) (Record, error) {
	if f.closed {
		return nil, ErrClosed
	}
	if f.err != nil {
		return nil, f.err
	}
	var ro readOptions
	for _, opt := range opts {
		opt(&ro)
	}

	rec, err := f.dec.Next()
	if err == io.EOF {
		return nil, io.EOF
	}
	if err != nil {
		f.err = err
		return nil, err
	}
	rec, err = finishRecord(rec, f.format.Kind(), &f.opts, ro)
	if err != nil {
		// policy errors surface after the decoder consumed the record;
		// its cursor locates the record's last line
		line, offset := 0, -1
		if p, ok := f.dec.(positioner); ok {
			line, offset = p.pos()
		}
		f.err = wrapParseError(f.format, f.record, line, offset, err)
		return nil, f.err
	}
	f.record++
	return rec, nil
}

// GuessAlphabet infers the residue alphabet from the cached content
// prefix without disturbing the read cursor: the record returned by
// the next Read is unaffected. Only a bounded prefix is examined.
func (f *File) GuessAlphabet() (Alphabet, error) {
	if f.closed {
		return AlphabetUnknown, ErrClosed
	}
	prefix, err := f.src.Peek(sniffWindow)
	if err != nil {
		return AlphabetUnknown, err
	}
	if f.format.Kind() == KindProfile {
		return profileAlphabet(f.format, prefix), nil
	}
	return guessAlphabet(residueSample(f.format, prefix)), nil
}

// Close releases the underlying source. It is idempotent; after the
// first call every other method fails with ErrClosed.
func (f *File) Close() error {
	if f.closed {
		return nil
	}
	f.closed = true
	f.dec.Close()
	return f.src.Close()
}

// residueSample extracts residue bytes from a content prefix. The
// fast path decodes the prefix's first record with a throwaway
// decoder; when the record was cut by the sniff window, a keyword
// filter over the raw lines serves as the fallback.
func residueSample(format Format, prefix []byte) []byte {
	if dec, err := NewDecoder(bytes.NewReader(prefix), format); err == nil {
		if rec, err := dec.Next(); err == nil {
			switch r := rec.(type) {
			case *Sequence:
				return []byte(r.Residues)
			case *Alignment:
				var buf bytes.Buffer
				for _, row := range r.Rows {
					buf.WriteString(row.Residues)
					if buf.Len() >= maxAlphabetSample {
						break
					}
				}
				return buf.Bytes()
			}
		}
	}

	var buf bytes.Buffer
	for _, line := range prefixLines(prefix) {
		if !residueLikeLine(line) {
			continue
		}
		buf.WriteString(line)
	}
	return buf.Bytes()
}

// flatFileTags are the line-type keywords of the annotation-block
// formats, excluded from the fallback residue sample.
var flatFileTags = map[string]bool{
	"ID": true, "AC": true, "DE": true, "SQ": true, "KW": true, "OS": true,
	"OC": true, "OG": true, "DT": true, "DR": true, "RN": true, "RA": true,
	"RT": true, "RL": true, "RP": true, "RX": true, "RC": true, "FH": true,
	"FT": true, "XX": true, "CC": true, "GN": true, "PE": true, "SV": true,
	"LOCUS": true, "DEFINITION": true, "ACCESSION": true, "VERSION": true,
	"KEYWORDS": true, "SOURCE": true, "ORGANISM": true, "REFERENCE": true,
	"AUTHORS": true, "TITLE": true, "JOURNAL": true, "PUBMED": true,
	"FEATURES": true, "ORIGIN": true, "COMMENT": true, "BASE": true,
}

func residueLikeLine(line string) bool {
	t := strings.TrimSpace(line)
	if t == "" || strings.HasPrefix(t, ">") || strings.HasPrefix(t, "#") ||
		strings.HasPrefix(t, "//") {
		return false
	}
	fields := strings.Fields(t)
	if flatFileTags[fields[0]] {
		return false
	}
	for i := 0; i < len(t); i++ {
		c := t[i]
		switch {
		case c >= 'A' && c <= 'Z':
		case c >= 'a' && c <= 'z':
		case c >= '0' && c <= '9':
		case c == ' ' || c == '\t' || c == '*':
		case isGap(c):
		default:
			return false
		}
	}
	return true
}

// profileAlphabet reads the alphabet of the first model without a full
// decode: the ALPH header line for the text formats, the alphabet code
// word for the binary one.
func profileAlphabet(format Format, prefix []byte) Alphabet {
	if format == FormatHMM3Binary {
		if len(prefix) < 12 {
			return AlphabetUnknown
		}
		switch int32(binary.LittleEndian.Uint32(prefix[8:])) {
		case hmmAlphAmino:
			return AlphabetAmino
		case hmmAlphDNA:
			return AlphabetDNA
		case hmmAlphRNA:
			return AlphabetRNA
		}
		return AlphabetUnknown
	}
	for _, line := range prefixLines(prefix) {
		tag, value := splitTagValue(line)
		if tag != "ALPH" {
			continue
		}
		switch strings.ToLower(value) {
		case "amino":
			return AlphabetAmino
		case "dna", "nucleic":
			return AlphabetDNA
		case "rna":
			return AlphabetRNA
		}
		return AlphabetUnknown
	}
	return AlphabetUnknown
}
