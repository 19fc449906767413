package seqio

import (
	"fmt"
	"io"
	"strings"
)

// msaBuilder reassembles interleaved multi-block alignments by row
// identifier. Rows are identified by name, never by block position, so
// blocks may order rows differently; a name that first appears after
// the first block is a malformed alignment.
type msaBuilder struct {
	names map[string]int
	rows  []Sequence
	cTags map[string]int
	cols  []ColumnAnnotation
	rTags map[string]int
	resid []ResidueAnnotation
	block int
	dirty bool
}

func newMSABuilder() *msaBuilder {
	return &msaBuilder{
		names: make(map[string]int),
		cTags: make(map[string]int),
		rTags: make(map[string]int),
	}
}

func (b *msaBuilder) addRow(name, chunk string) error {
	i, ok := b.names[name]
	if !ok {
		if b.block > 0 {
			return fmt.Errorf("%w: row %q first appears after the first block",
				ErrMalformedAlignment, name)
		}
		i = len(b.rows)
		b.names[name] = i
		b.rows = append(b.rows, Sequence{Name: name})
	}
	b.rows[i].Residues += chunk
	b.dirty = true
	return nil
}

func (b *msaBuilder) addColumn(tag, chunk string) {
	i, ok := b.cTags[tag]
	if !ok {
		i = len(b.cols)
		b.cTags[tag] = i
		b.cols = append(b.cols, ColumnAnnotation{Tag: tag})
	}
	b.cols[i].Values += chunk
	b.dirty = true
}

func (b *msaBuilder) addResidue(seq, tag, chunk string) {
	key := seq + "\x00" + tag
	i, ok := b.rTags[key]
	if !ok {
		i = len(b.resid)
		b.rTags[key] = i
		b.resid = append(b.resid, ResidueAnnotation{Seq: seq, Tag: tag})
	}
	b.resid[i].Values += chunk
	b.dirty = true
}

func (b *msaBuilder) endBlock() {
	if b.dirty {
		b.block++
		b.dirty = false
	}
}

func (b *msaBuilder) finish() (*Alignment, error) {
	if len(b.rows) == 0 {
		return nil, fmt.Errorf("%w: alignment has no rows", ErrMalformedAlignment)
	}
	cols := len(b.rows[0].Residues)
	for _, row := range b.rows[1:] {
		if len(row.Residues) != cols {
			return nil, fmt.Errorf("%w: row %q has %d columns, expected %d",
				ErrMalformedAlignment, row.Name, len(row.Residues), cols)
		}
	}
	for _, c := range b.cols {
		if len(c.Values) != cols {
			return nil, fmt.Errorf("%w: column annotation %q has %d columns, expected %d",
				ErrMalformedAlignment, c.Tag, len(c.Values), cols)
		}
	}
	for _, r := range b.resid {
		if len(r.Values) != cols {
			return nil, fmt.Errorf("%w: residue annotation %q/%q has %d columns, expected %d",
				ErrMalformedAlignment, r.Seq, r.Tag, len(r.Values), cols)
		}
	}
	return &Alignment{
		Rows:               b.rows,
		ColumnAnnotations:  b.cols,
		ResidueAnnotations: b.resid,
	}, nil
}

// stockholmDecoder reads Stockholm files. A stream may hold several
// alignments, each closed by '//'.
type stockholmDecoder struct {
	stickyDecoder
}

func newStockholmDecoder(r io.Reader) Decoder {
	return &stockholmDecoder{stickyDecoder{format: FormatStockholm, sc: newLineScanner(r)}}
}

func (d *stockholmDecoder) Next() (Record, error) {
	if d.err != nil {
		return nil, d.err
	}
	line, err := d.sc.scanNonBlank()
	if err == io.EOF {
		return nil, io.EOF
	}
	if err != nil {
		return nil, d.fail(d.sc, err)
	}
	if !strings.HasPrefix(line, "# STOCKHOLM") {
		return nil, d.failf(d.sc, "expected '# STOCKHOLM' header, got %q", excerpt(line))
	}

	b := newMSABuilder()
	var name, accession, author string
	var desc []string
	gsDesc := make(map[string]string)
	gsAcc := make(map[string]string)

	for {
		line, err = d.sc.scan()
		if err == io.EOF {
			return nil, d.truncated(d.sc, "alignment not closed by '//'")
		}
		if err != nil {
			return nil, d.fail(d.sc, err)
		}
		trimmed := strings.TrimSpace(line)
		switch {
		case trimmed == "":
			b.endBlock()
		case trimmed == "//":
			msa, err := b.finish()
			if err != nil {
				return nil, d.fail(d.sc, err)
			}
			msa.Name = name
			msa.Accession = accession
			msa.Author = author
			msa.Description = strings.Join(desc, " ")
			for i := range msa.Rows {
				msa.Rows[i].Description = gsDesc[msa.Rows[i].Name]
				msa.Rows[i].Accession = gsAcc[msa.Rows[i].Name]
			}
			d.record++
			return msa, nil
		case strings.HasPrefix(trimmed, "#=GF"):
			tag, value := splitTagValue(trimmed[4:])
			switch tag {
			case "ID":
				name = value
			case "AC":
				accession = value
			case "AU":
				author = value
			case "DE":
				desc = append(desc, value)
			}
		case strings.HasPrefix(trimmed, "#=GS"):
			fields := strings.Fields(trimmed[4:])
			if len(fields) >= 3 {
				switch fields[1] {
				case "DE":
					gsDesc[fields[0]] = strings.Join(fields[2:], " ")
				case "AC":
					gsAcc[fields[0]] = fields[2]
				}
			}
		case strings.HasPrefix(trimmed, "#=GC"):
			fields := strings.Fields(trimmed[4:])
			if len(fields) != 2 {
				return nil, d.failf(d.sc, "malformed '#=GC' line %q", excerpt(line))
			}
			b.addColumn(fields[0], fields[1])
		case strings.HasPrefix(trimmed, "#=GR"):
			fields := strings.Fields(trimmed[4:])
			if len(fields) != 3 {
				return nil, d.failf(d.sc, "malformed '#=GR' line %q", excerpt(line))
			}
			b.addResidue(fields[0], fields[1], fields[2])
		case strings.HasPrefix(trimmed, "#"):
			// comment
		default:
			fields := strings.Fields(trimmed)
			if len(fields) != 2 {
				return nil, d.failf(d.sc, "malformed alignment line %q", excerpt(line))
			}
			if err := b.addRow(fields[0], fields[1]); err != nil {
				return nil, d.fail(d.sc, err)
			}
		}
	}
}

func splitTagValue(s string) (string, string) {
	s = strings.TrimSpace(s)
	if i := strings.IndexAny(s, " \t"); i >= 0 {
		return s[:i], strings.TrimSpace(s[i+1:])
	}
	return s, ""
}
