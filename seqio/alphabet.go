package seqio

import (
	"fmt"
	"strings"
)

// Alphabet identifies the residue alphabet of a record.
type Alphabet uint8

const (
	// AlphabetUnknown means the alphabet could not be determined.
	AlphabetUnknown Alphabet = iota
	// AlphabetDNA is the DNA nucleotide alphabet.
	AlphabetDNA
	// AlphabetRNA is the RNA nucleotide alphabet.
	AlphabetRNA
	// AlphabetAmino is the amino acid alphabet.
	AlphabetAmino
)

// String returns the canonical name of the alphabet.
func (a Alphabet) String() string {
	switch a {
	case AlphabetDNA:
		return "dna"
	case AlphabetRNA:
		return "rna"
	case AlphabetAmino:
		return "amino"
	default:
		return "unknown"
	}
}

// Symbols returns the canonical residue symbols of the alphabet, in the
// order profile emission vectors are stored.
func (a Alphabet) Symbols() string {
	switch a {
	case AlphabetDNA:
		return "ACGT"
	case AlphabetRNA:
		return "ACGU"
	case AlphabetAmino:
		return "ACDEFGHIKLMNPQRSTVWY"
	default:
		return ""
	}
}

// Size returns the number of canonical symbols in the alphabet.
func (a Alphabet) Size() int { return len(a.Symbols()) }

// ParseAlphabet normalizes an alphabet name.
func ParseAlphabet(value string) (Alphabet, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "dna", "nucleic", "nucleotide":
		return AlphabetDNA, true
	case "rna":
		return AlphabetRNA, true
	case "amino", "protein", "aa":
		return AlphabetAmino, true
	default:
		return AlphabetUnknown, false
	}
}

// gapSymbols are the symbols treated as gaps or missing data in every
// alphabet.
const gapSymbols = "-_.~"

// symbolSet builds a byte membership table over both cases of the given
// symbols.
func symbolSet(symbols string) *[256]bool {
	var set [256]bool
	for i := 0; i < len(symbols); i++ {
		c := symbols[i]
		set[c] = true
		if c >= 'A' && c <= 'Z' {
			set[c+'a'-'A'] = true
		}
	}
	return &set
}

// Legal residue sets include IUPAC ambiguity codes. The amino set also
// admits the rare translated residues (U selenocysteine, O pyrrolysine)
// and the B/J/Z/X ambiguities plus the '*' stop symbol.
var (
	dnaSet   = symbolSet("ACGTRYMKSWHBVDN")
	rnaSet   = symbolSet("ACGURYMKSWHBVDN")
	aminoSet = symbolSet("ACDEFGHIKLMNPQRSTVWYBJZXUO*")
	gapSet   = symbolSet(gapSymbols)
)

func (a Alphabet) legalSet() *[256]bool {
	switch a {
	case AlphabetDNA:
		return dnaSet
	case AlphabetRNA:
		return rnaSet
	case AlphabetAmino:
		return aminoSet
	default:
		return nil
	}
}

// isGap reports whether c is a gap or missing-data symbol.
func isGap(c byte) bool { return gapSet[c] }

// maxAlphabetSample bounds how many residue symbols inference will look
// at; the classification never scans a whole file.
const maxAlphabetSample = 4096

// guessAlphabet classifies a bounded sample of residue symbols by
// frequency. Gap symbols, whitespace, digits, and '*' are not counted.
// The heuristics follow the usual sniffing rules: RNA when U dominates
// with no T, DNA when the restricted nucleotide set dominates, amino
// when the symbols fit the extended amino set with nucleotides in the
// minority.
func guessAlphabet(sample []byte) Alphabet {
	var counts [26]int
	total := 0
	for _, c := range sample {
		if total >= maxAlphabetSample {
			break
		}
		if c >= 'a' && c <= 'z' {
			c -= 'a' - 'A'
		}
		if c < 'A' || c > 'Z' {
			continue
		}
		counts[c-'A']++
		total++
	}
	if total == 0 {
		return AlphabetUnknown
	}

	nt := counts['A'-'A'] + counts['C'-'A'] + counts['G'-'A'] + counts['N'-'A']
	dna := nt + counts['T'-'A']
	rna := nt + counts['U'-'A']

	if counts['U'-'A'] > 0 && counts['T'-'A'] == 0 && rna*10 >= total*9 {
		return AlphabetRNA
	}
	if dna*10 >= total*9 {
		return AlphabetDNA
	}

	amino := 0
	for i := 0; i < 26; i++ {
		if counts[i] > 0 && aminoSet['A'+byte(i)] {
			amino += counts[i]
		}
	}
	if amino == total {
		return AlphabetAmino
	}
	return AlphabetUnknown
}

// checkResidues validates every residue of text against the legal set
// of the requested alphabet, gap symbols permitted. It is the guard
// behind forced digitization.
func checkResidues(text string, a Alphabet) error {
	legal := a.legalSet()
	if legal == nil {
		return fmt.Errorf("%w: cannot digitize into the unknown alphabet", ErrIncompatibleAlphabet)
	}
	for i := 0; i < len(text); i++ {
		c := text[i]
		if legal[c] || gapSet[c] {
			continue
		}
		return fmt.Errorf("%w: symbol %q at residue %d is not legal for the %s alphabet",
			ErrIncompatibleAlphabet, c, i+1, a)
	}
	return nil
}
