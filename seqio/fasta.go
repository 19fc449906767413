package seqio

import (
	"fmt"
	"io"
	"strings"
)

// fastaDecoder reads header-plus-folded-body records. It also backs
// the aligned FASTA and A2M decoders, which consume every record of
// the stream and assemble a single alignment.
type fastaDecoder struct {
	stickyDecoder
}

func newFastaDecoder(r io.Reader) Decoder {
	return &fastaDecoder{stickyDecoder{format: FormatFasta, sc: newLineScanner(r)}}
}

func (d *fastaDecoder) Next() (Record, error) {
	if d.err != nil {
		return nil, d.err
	}
	seq, err := d.readSequence()
	if err != nil {
		return nil, err
	}
	d.record++
	return seq, nil
}

func (d *fastaDecoder) readSequence() (*Sequence, error) {
	line, err := d.sc.scanNonBlank()
	if err == io.EOF {
		return nil, io.EOF
	}
	if err != nil {
		return nil, d.fail(d.sc, err)
	}
	if !strings.HasPrefix(line, ">") {
		return nil, d.failf(d.sc, "expected '>' header, got %q", excerpt(line))
	}
	name, desc := splitNameDesc(line[1:])

	var body strings.Builder
	atHeader := false
	for {
		l, err := d.sc.scan()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, d.fail(d.sc, err)
		}
		if strings.HasPrefix(l, ">") {
			d.sc.unread(l)
			atHeader = true
			break
		}
		body.WriteString(stripSpaces(l))
	}
	// A header directly followed by another header is an explicitly
	// empty sequence; a header at end of input is a truncated record.
	if body.Len() == 0 && !atHeader {
		return nil, d.truncated(d.sc, "header with no sequence data")
	}
	return &Sequence{Name: name, Description: desc, Residues: body.String()}, nil
}

// readAll drains the stream for the alignment-shaped FASTA variants.
func (d *fastaDecoder) readAll() ([]Sequence, error) {
	var rows []Sequence
	for {
		seq, err := d.readSequence()
		if err == io.EOF {
			return rows, nil
		}
		if err != nil {
			return nil, err
		}
		rows = append(rows, *seq)
	}
}

// afaDecoder reads an aligned-FASTA file as one alignment record.
type afaDecoder struct {
	inner *fastaDecoder
	done  bool
}

func newAFADecoder(r io.Reader) Decoder {
	return &afaDecoder{inner: &fastaDecoder{stickyDecoder{format: FormatAFA, sc: newLineScanner(r)}}}
}

func (d *afaDecoder) Next() (Record, error) {
	if d.inner.err != nil {
		return nil, d.inner.err
	}
	if d.done {
		return nil, io.EOF
	}
	rows, err := d.inner.readAll()
	if err != nil {
		return nil, err
	}
	d.done = true
	if len(rows) == 0 {
		return nil, io.EOF
	}
	cols := len(rows[0].Residues)
	for _, row := range rows[1:] {
		if len(row.Residues) != cols {
			return nil, d.inner.fail(d.inner.sc, fmt.Errorf(
				"%w: row %q has %d columns, expected %d",
				ErrMalformedAlignment, row.Name, len(row.Residues), cols))
		}
	}
	return &Alignment{Rows: rows}, nil
}

func (d *afaDecoder) Err() error           { return d.inner.err }
func (d *afaDecoder) Close() error         { return nil }
func (d *afaDecoder) pos() (line, off int) { return d.inner.pos() }

// a2mDecoder reads an A2M file as one alignment record. Uppercase and
// '-' are match columns, lowercase and '.' are insertions; rows are
// expanded to a uniform column count by padding insert regions with
// '.' the way the dotless A2M rows would have been written.
type a2mDecoder struct {
	inner *fastaDecoder
	done  bool
}

func newA2MDecoder(r io.Reader) Decoder {
	return &a2mDecoder{inner: &fastaDecoder{stickyDecoder{format: FormatA2M, sc: newLineScanner(r)}}}
}

func (d *a2mDecoder) Next() (Record, error) {
	if d.inner.err != nil {
		return nil, d.inner.err
	}
	if d.done {
		return nil, io.EOF
	}
	rows, err := d.inner.readAll()
	if err != nil {
		return nil, err
	}
	d.done = true
	if len(rows) == 0 {
		return nil, io.EOF
	}

	type a2mRow struct {
		matches string
		inserts []string
	}
	parsed := make([]a2mRow, len(rows))
	nmatch := -1
	for i, row := range rows {
		var matches strings.Builder
		inserts := []string{""}
		for j := 0; j < len(row.Residues); j++ {
			c := row.Residues[j]
			switch {
			case c == '-' || (c >= 'A' && c <= 'Z'):
				matches.WriteByte(c)
				inserts = append(inserts, "")
			case c == '.' || (c >= 'a' && c <= 'z'):
				if c == '.' {
					continue // dots are padding, not residues
				}
				inserts[len(inserts)-1] += string(c)
			default:
				return nil, d.inner.failf(d.inner.sc,
					"invalid A2M symbol %q in row %q", c, row.Name)
			}
		}
		if nmatch == -1 {
			nmatch = matches.Len()
		} else if matches.Len() != nmatch {
			return nil, d.inner.fail(d.inner.sc, fmt.Errorf(
				"%w: row %q has %d match columns, expected %d",
				ErrMalformedAlignment, row.Name, matches.Len(), nmatch))
		}
		parsed[i] = a2mRow{matches: matches.String(), inserts: inserts}
	}

	maxIns := make([]int, nmatch+1)
	for _, row := range parsed {
		for k, ins := range row.inserts {
			if len(ins) > maxIns[k] {
				maxIns[k] = len(ins)
			}
		}
	}
	for i := range rows {
		var aligned strings.Builder
		for k := 0; k <= nmatch; k++ {
			ins := parsed[i].inserts[k]
			aligned.WriteString(ins)
			aligned.WriteString(strings.Repeat(".", maxIns[k]-len(ins)))
			if k < nmatch {
				aligned.WriteByte(parsed[i].matches[k])
			}
		}
		rows[i].Residues = aligned.String()
	}
	return &Alignment{Rows: rows}, nil
}

func (d *a2mDecoder) Err() error           { return d.inner.err }
func (d *a2mDecoder) Close() error         { return nil }
func (d *a2mDecoder) pos() (line, off int) { return d.inner.pos() }

func splitNameDesc(header string) (string, string) {
	header = strings.TrimSpace(header)
	if i := strings.IndexAny(header, " \t"); i >= 0 {
		return header[:i], strings.TrimSpace(header[i+1:])
	}
	return header, ""
}

func stripSpaces(s string) string {
	return strings.Join(strings.Fields(s), "")
}

func excerpt(s string) string {
	if len(s) > 40 {
		return s[:40] + "..."
	}
	return s
}
