package seqio

import (
	"io"
	"strings"
)

// emblDecoder reads EMBL and UniProt flat files. The two grammars
// share the two-letter line-type layout (ID/AC/DE/.../SQ/'//'); only
// the ID line differs in shape, which is handled at sniff time.
type emblDecoder struct {
	stickyDecoder
}

func newEMBLDecoder(r io.Reader) Decoder {
	return &emblDecoder{stickyDecoder{format: FormatEMBL, sc: newLineScanner(r)}}
}

func newUniprotDecoder(r io.Reader) Decoder {
	return &emblDecoder{stickyDecoder{format: FormatUniprot, sc: newLineScanner(r)}}
}

func (d *emblDecoder) Next() (Record, error) {
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
	if !strings.HasPrefix(line, "ID") {
		return nil, d.failf(d.sc, "expected ID line, got %q", excerpt(line))
	}
	seq := &Sequence{}
	fields := strings.Fields(line[2:])
	if len(fields) == 0 {
		return nil, d.failf(d.sc, "ID line carries no identifier")
	}
	seq.Name = strings.TrimSuffix(fields[0], ";")

	var desc []string
	inSeq := false
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
			if !inSeq {
				return nil, d.truncated(d.sc, "record has no SQ section")
			}
			seq.Description = strings.Join(desc, " ")
			seq.Residues = body.String()
			d.record++
			return seq, nil
		}
		if inSeq {
			body.WriteString(stripResidueLine(line))
			continue
		}
		switch {
		case strings.HasPrefix(line, "AC"):
			if seq.Accession == "" {
				acc := strings.Fields(line[2:])
				if len(acc) > 0 {
					seq.Accession = strings.TrimSuffix(acc[0], ";")
				}
			}
		case strings.HasPrefix(line, "DE"):
			desc = append(desc, strings.TrimSpace(line[2:]))
		case strings.HasPrefix(line, "SQ"):
			inSeq = true
		default:
			// other annotation line types are tolerated and skipped
		}
	}
}

// stripResidueLine removes the whitespace and position numbers that
// flat-file formats fold into their residue lines.
func stripResidueLine(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == ' ' || c == '\t' || (c >= '0' && c <= '9') {
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}
