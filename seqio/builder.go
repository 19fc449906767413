package seqio

import (
	"fmt"
	"strings"
)

// finishRecord applies the open-time policies (gap handling, forced
// digitization) and per-read projections to a raw decoder record.
// Decoders yield records exactly as written; everything the caller
// configured happens here.
func finishRecord(rec Record, kind FormatKind, o *Options, ro readOptions) (Record, error) {
	switch r := rec.(type) {
	case *Sequence:
		return finishSequence(r, kind, o, ro)
	case *Alignment:
		return finishAlignment(r, o, ro)
	case *Profile:
		return finishProfile(r, o, ro)
	default:
		return rec, nil
	}
}

func finishSequence(seq *Sequence, kind FormatKind, o *Options, ro readOptions) (Record, error) {
	// Gap symbols are legitimate in alignment rows but not in records
	// of an unaligned sequence format.
	if kind == KindSequence {
		if i := strings.IndexAny(seq.Residues, gapSymbols); i >= 0 {
			if !o.IgnoreGaps {
				return nil, fmt.Errorf("%w: %q at residue %d of sequence %q",
					ErrUnexpectedGap, seq.Residues[i], i+1, seq.Name)
			}
			seq.Residues = stripGaps(seq.Residues)
		}
	}
	if o.Digital != AlphabetUnknown {
		if err := checkResidues(seq.Residues, o.Digital); err != nil {
			return nil, err
		}
		seq.Alphabet = o.Digital
	}
	if ro.skipInfo {
		seq.Name, seq.Description, seq.Accession = "", "", ""
	}
	if ro.skipSequence {
		seq.Residues = ""
	}
	return seq, nil
}

func finishAlignment(msa *Alignment, o *Options, ro readOptions) (Record, error) {
	if o.Digital != AlphabetUnknown {
		for i := range msa.Rows {
			if err := checkResidues(msa.Rows[i].Residues, o.Digital); err != nil {
				return nil, fmt.Errorf("row %q: %w", msa.Rows[i].Name, err)
			}
			msa.Rows[i].Alphabet = o.Digital
		}
	}
	if ro.skipInfo {
		msa.Name, msa.Accession, msa.Author, msa.Description = "", "", "", ""
	}
	if ro.skipSequence {
		for i := range msa.Rows {
			msa.Rows[i].Residues = ""
		}
		for i := range msa.ColumnAnnotations {
			msa.ColumnAnnotations[i].Values = ""
		}
		for i := range msa.ResidueAnnotations {
			msa.ResidueAnnotations[i].Values = ""
		}
	}
	return msa, nil
}

func finishProfile(p *Profile, o *Options, ro readOptions) (Record, error) {
	if o.Digital != AlphabetUnknown && o.Digital != p.Alphabet {
		return nil, fmt.Errorf("%w: model %q is %s, requested %s",
			ErrIncompatibleAlphabet, p.Name, p.Alphabet, o.Digital)
	}
	if ro.skipInfo {
		p.Name, p.Accession, p.Description = "", "", ""
	}
	if ro.skipSequence {
		p.Match, p.Insert, p.Transitions = nil, nil, nil
		p.Consensus, p.Reference = "", ""
	}
	return p, nil
}

func stripGaps(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if !isGap(s[i]) {
			b.WriteByte(s[i])
		}
	}
	return b.String()
}
