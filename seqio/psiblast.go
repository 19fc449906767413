package seqio

import (
	"io"
	"strings"
)

// psiblastDecoder reads PSI-BLAST alignments: bare interleaved blocks
// of name/chunk rows with no header, consensus, or terminator.
type psiblastDecoder struct {
	stickyDecoder
	done bool
}

func newPsiblastDecoder(r io.Reader) Decoder {
	return &psiblastDecoder{stickyDecoder: stickyDecoder{format: FormatPsiblast, sc: newLineScanner(r)}}
}

func (d *psiblastDecoder) Next() (Record, error) {
	if d.err != nil {
		return nil, d.err
	}
	if d.done {
		return nil, io.EOF
	}

	b := newMSABuilder()
	seen := false
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
		fields := strings.Fields(line)
		if len(fields) != 2 {
			return nil, d.failf(d.sc, "malformed alignment line %q", excerpt(line))
		}
		if err := b.addRow(fields[0], fields[1]); err != nil {
			return nil, d.fail(d.sc, err)
		}
		seen = true
	}

	d.done = true
	if !seen {
		return nil, io.EOF
	}
	msa, err := b.finish()
	if err != nil {
		return nil, d.fail(d.sc, err)
	}
	d.record++
	return msa, nil
}
