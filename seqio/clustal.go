package seqio

import (
	"io"
	"strings"
)

// clustalDecoder reads Clustal alignments and the "Clustal-like"
// layout that other aligners emit under their own program headers.
// Blocks of name/chunk rows are reassembled by row identifier; the
// indented consensus symbol line is skipped.
type clustalDecoder struct {
	stickyDecoder
	done bool
}

func newClustalDecoder(r io.Reader) Decoder {
	return &clustalDecoder{stickyDecoder: stickyDecoder{format: FormatClustal, sc: newLineScanner(r)}}
}

func newClustalLikeDecoder(r io.Reader) Decoder {
	return &clustalDecoder{stickyDecoder: stickyDecoder{format: FormatClustalLike, sc: newLineScanner(r)}}
}

func (d *clustalDecoder) Next() (Record, error) {
	if d.err != nil {
		return nil, d.err
	}
	if d.done {
		return nil, io.EOF
	}
	header, err := d.sc.scanNonBlank()
	if err == io.EOF {
		return nil, io.EOF
	}
	if err != nil {
		return nil, d.fail(d.sc, err)
	}
	if d.format == FormatClustal {
		if !strings.HasPrefix(header, "CLUSTAL") {
			return nil, d.failf(d.sc, "expected CLUSTAL header, got %q", excerpt(header))
		}
	} else if !strings.Contains(header, "multiple sequence alignment") {
		return nil, d.failf(d.sc, "expected an alignment program header, got %q", excerpt(header))
	}

	b := newMSABuilder()
	for {
		line, err := d.sc.scan()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, d.fail(d.sc, err)
		}
		if strings.TrimSpace(line) == "" {
			b.endBlock()
			continue
		}
		// consensus symbol lines are indented under the residue columns
		if line[0] == ' ' || line[0] == '\t' {
			continue
		}
		fields := strings.Fields(line)
		// a trailing cumulative residue count is optional
		if len(fields) == 3 && isDigits(fields[2]) {
			fields = fields[:2]
		}
		if len(fields) != 2 {
			return nil, d.failf(d.sc, "malformed alignment line %q", excerpt(line))
		}
		if err := b.addRow(fields[0], fields[1]); err != nil {
			return nil, d.fail(d.sc, err)
		}
	}

	d.done = true
	msa, err := b.finish()
	if err != nil {
		return nil, d.fail(d.sc, err)
	}
	d.record++
	return msa, nil
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return len(s) > 0
}
