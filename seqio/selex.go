package seqio

import (
	"io"
	"strings"
)

// selexDecoder reads SELEX files: Stockholm's ancestor, with '#='
// annotation lines, interleaved blank-line-separated blocks, and no
// header or terminator. A SELEX file holds a single alignment.
type selexDecoder struct {
	stickyDecoder
	done bool
}

func newSelexDecoder(r io.Reader) Decoder {
	return &selexDecoder{stickyDecoder: stickyDecoder{format: FormatSelex, sc: newLineScanner(r)}}
}

func (d *selexDecoder) Next() (Record, error) {
	if d.err != nil {
		return nil, d.err
	}
	if d.done {
		return nil, io.EOF
	}

	b := newMSABuilder()
	var name, accession, author string
	var desc []string
	lastRow := ""
	seen := false

	for {
		line, err := d.sc.scan()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, d.fail(d.sc, err)
		}
		trimmed := strings.TrimSpace(line)
		switch {
		case trimmed == "":
			b.endBlock()
		case strings.HasPrefix(trimmed, "#="):
			seen = true
			tag, value := splitTagValue(trimmed[2:])
			switch tag {
			case "ID":
				name = value
			case "AC":
				accession = value
			case "AU":
				author = value
			case "DE":
				desc = append(desc, value)
			case "RF", "CS", "MM":
				// column annotation rows, reassembled across blocks
				b.addColumn(tag, stripSpaces(value))
			case "SS", "SA":
				// per-residue annotation attached to the preceding row
				if lastRow != "" {
					b.addResidue(lastRow, tag, stripSpaces(value))
				}
			default:
				// unknown '#=' tags are tolerated
			}
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
			lastRow = fields[0]
			seen = true
		}
	}

	d.done = true
	if !seen {
		return nil, io.EOF
	}
	msa, err := b.finish()
	if err != nil {
		return nil, d.fail(d.sc, err)
	}
	msa.Name = name
	msa.Accession = accession
	msa.Author = author
	msa.Description = strings.Join(desc, " ")
	d.record++
	return msa, nil
}
