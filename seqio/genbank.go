package seqio

import (
	"io"
	"strings"
)

// genbankDecoder reads GenBank flat files: a LOCUS header, keyword
// sections, and an ORIGIN section of numbered residue lines closed by
// '//'.
type genbankDecoder struct {
	stickyDecoder
}

func newGenbankDecoder(r io.Reader) Decoder {
	return &genbankDecoder{stickyDecoder{format: FormatGenbank, sc: newLineScanner(r)}}
}

func (d *genbankDecoder) Next() (Record, error) {
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
	if !strings.HasPrefix(line, "LOCUS") {
		return nil, d.failf(d.sc, "expected LOCUS line, got %q", excerpt(line))
	}
	seq := &Sequence{}
	fields := strings.Fields(line[len("LOCUS"):])
	if len(fields) == 0 {
		return nil, d.failf(d.sc, "LOCUS line carries no identifier")
	}
	seq.Name = fields[0]

	var desc []string
	inDef := false
	inOrigin := false
	var body strings.Builder
	for {
		line, err = d.sc.scan()
		if err == io.EOF {
			return nil, d.truncated(d.sc, "record not closed by '//'")
		}
		if err != nil {
			return nil, d.fail(d.sc, err)
		}
		if strings.HasPrefix(line, "//") {
			if !inOrigin {
				return nil, d.truncated(d.sc, "record has no ORIGIN section")
			}
			seq.Description = strings.Join(desc, " ")
			seq.Residues = body.String()
			d.record++
			return seq, nil
		}
		if inOrigin {
			body.WriteString(stripResidueLine(line))
			continue
		}
		switch {
		case strings.HasPrefix(line, "DEFINITION"):
			desc = append(desc, strings.TrimSpace(line[len("DEFINITION"):]))
			inDef = true
		case strings.HasPrefix(line, "ACCESSION"):
			acc := strings.Fields(line[len("ACCESSION"):])
			if len(acc) > 0 {
				seq.Accession = acc[0]
			}
			inDef = false
		case strings.HasPrefix(line, "ORIGIN"):
			inOrigin = true
			inDef = false
		case strings.HasPrefix(line, " ") && inDef:
			// DEFINITION continuation lines are indented
			desc = append(desc, strings.TrimSpace(line))
		default:
			inDef = false
		}
	}
}
