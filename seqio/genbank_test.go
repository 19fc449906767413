package seqio

import (
	"errors"
	"strings"
	"testing"
)

func TestGenbankDecode(t *testing.T) {
	recs := decodeAll(t, sampleGenbank, FormatGenbank)
	if len(recs) != 1 {
		t.Fatalf("got %d records, want 1", len(recs))
	}
	seq := recs[0].(*Sequence)
	if seq.Name != "SCU49845" {
		t.Errorf("name = %q", seq.Name)
	}
	if seq.Accession != "U49845" {
		t.Errorf("accession = %q", seq.Accession)
	}
	if seq.Description != "Saccharomyces cerevisiae TCP1-beta gene, partial cds." {
		t.Errorf("description = %q", seq.Description)
	}
	if seq.Residues != "atccacggccatagcaagggttcc" {
		t.Errorf("residues = %q", seq.Residues)
	}
}

func TestGenbankDefinitionContinuation(t *testing.T) {
	input := `LOCUS       TEST     8 bp    DNA
DEFINITION  first part of the
            definition text.
ORIGIN
        1 acgtacgt
//
`
	recs := decodeAll(t, input, FormatGenbank)
	seq := recs[0].(*Sequence)
	if seq.Description != "first part of the definition text." {
		t.Errorf("description = %q", seq.Description)
	}
}

func TestGenbankTruncated(t *testing.T) {
	input := strings.TrimSuffix(sampleGenbank, "//\n")
	dec, _ := NewDecoder(strings.NewReader(input), FormatGenbank)
	_, err := dec.Next()
	if !errors.Is(err, ErrTruncatedRecord) {
		t.Fatalf("got %v, want ErrTruncatedRecord", err)
	}
}

func TestGenbankMissingLocus(t *testing.T) {
	dec, _ := NewDecoder(strings.NewReader("DEFINITION  no locus\n//\n"), FormatGenbank)
	_, err := dec.Next()
	if err == nil || errors.Is(err, ErrTruncatedRecord) {
		t.Fatalf("got %v, want a parse failure on the missing LOCUS line", err)
	}
}
