package seqio

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// phylipDecoder reads PHYLIP alignments. Both variants share the
// "nseq ncol" header line; interleaved files carry names only in the
// first block, sequential files give each row in full before the next
// one starts. The two cannot be told apart by content, so each is a
// distinct explicit format.
type phylipDecoder struct {
	stickyDecoder
	done bool
}

func newPhylipDecoder(r io.Reader) Decoder {
	return &phylipDecoder{stickyDecoder: stickyDecoder{format: FormatPhylip, sc: newLineScanner(r)}}
}

func newPhylipSDecoder(r io.Reader) Decoder {
	return &phylipDecoder{stickyDecoder: stickyDecoder{format: FormatPhylipS, sc: newLineScanner(r)}}
}

func (d *phylipDecoder) Next() (Record, error) {
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
	nseq, ncol, err := parsePhylipHeader(header)
	if err != nil {
		return nil, d.fail(d.sc, err)
	}

	var rows []Sequence
	if d.format == FormatPhylip {
		rows, err = d.readInterleaved(nseq, ncol)
	} else {
		rows, err = d.readSequential(nseq, ncol)
	}
	if err != nil {
		return nil, err
	}
	d.done = true
	for _, row := range rows {
		if len(row.Residues) != ncol {
			return nil, d.fail(d.sc, fmt.Errorf(
				"%w: row %q has %d columns, header declares %d",
				ErrMalformedAlignment, row.Name, len(row.Residues), ncol))
		}
	}
	d.record++
	return &Alignment{Rows: rows}, nil
}

func (d *phylipDecoder) readInterleaved(nseq, ncol int) ([]Sequence, error) {
	rows := make([]Sequence, 0, nseq)
	for len(rows) < nseq {
		line, err := d.sc.scanNonBlank()
		if err == io.EOF {
			return nil, d.truncated(d.sc, fmt.Sprintf("first block has %d rows, header declares %d", len(rows), nseq))
		}
		if err != nil {
			return nil, d.fail(d.sc, err)
		}
		name, residues, err := splitPhylipRow(line)
		if err != nil {
			return nil, d.fail(d.sc, err)
		}
		rows = append(rows, Sequence{Name: name, Residues: residues})
	}
	// continuation blocks have no names; lines cycle through the rows
	i := 0
	for {
		line, err := d.sc.scanNonBlank()
		if err == io.EOF {
			return rows, nil
		}
		if err != nil {
			return nil, d.fail(d.sc, err)
		}
		rows[i%nseq].Residues += stripSpaces(line)
		i++
	}
}

func (d *phylipDecoder) readSequential(nseq, ncol int) ([]Sequence, error) {
	rows := make([]Sequence, 0, nseq)
	for len(rows) < nseq {
		line, err := d.sc.scanNonBlank()
		if err == io.EOF {
			return nil, d.truncated(d.sc, fmt.Sprintf("input ends after %d of %d rows", len(rows), nseq))
		}
		if err != nil {
			return nil, d.fail(d.sc, err)
		}
		name, residues, err := splitPhylipRow(line)
		if err != nil {
			return nil, d.fail(d.sc, err)
		}
		for len(residues) < ncol {
			line, err = d.sc.scanNonBlank()
			if err == io.EOF {
				return nil, d.truncated(d.sc, fmt.Sprintf("row %q ends at %d of %d columns", name, len(residues), ncol))
			}
			if err != nil {
				return nil, d.fail(d.sc, err)
			}
			residues += stripSpaces(line)
		}
		rows = append(rows, Sequence{Name: name, Residues: residues})
	}
	return rows, nil
}

func parsePhylipHeader(line string) (int, int, error) {
	fields := strings.Fields(line)
	if len(fields) != 2 {
		return 0, 0, fmt.Errorf("expected 'nseq ncol' header, got %q", excerpt(line))
	}
	nseq, err1 := strconv.Atoi(fields[0])
	ncol, err2 := strconv.Atoi(fields[1])
	if err1 != nil || err2 != nil || nseq < 1 || ncol < 1 {
		return 0, 0, fmt.Errorf("invalid counts in header %q", excerpt(line))
	}
	return nseq, ncol, nil
}

// splitPhylipRow handles both the relaxed (whitespace-delimited name)
// and strict (10-character name field) layouts.
func splitPhylipRow(line string) (string, string, error) {
	if i := strings.IndexAny(line, " \t"); i > 0 {
		return line[:i], stripSpaces(line[i:]), nil
	}
	if len(line) > 10 {
		return strings.TrimSpace(line[:10]), stripSpaces(line[10:]), nil
	}
	return "", "", fmt.Errorf("malformed alignment row %q", excerpt(line))
}
