package seqio

import (
	"errors"
	"io"
	"math"
	"strings"
	"testing"
)

func TestHMM3Decode(t *testing.T) {
	recs := decodeAll(t, sampleHMM3, FormatHMM3)
	if len(recs) != 1 {
		t.Fatalf("got %d records, want 1", len(recs))
	}
	p := recs[0].(*Profile)
	if p.Name != "test1" || p.Accession != "TST001" || p.Description != "a test model" {
		t.Errorf("metadata = %q/%q/%q", p.Name, p.Accession, p.Description)
	}
	if p.M != 2 || p.Alphabet != AlphabetDNA {
		t.Fatalf("model is %s M=%d, want dna M=2", p.Alphabet, p.M)
	}
	if !p.Cutoffs.HasGA || p.Cutoffs.Gathering != [2]float64{10, 10} {
		t.Errorf("GA cutoffs = %v (has=%v)", p.Cutoffs.Gathering, p.Cutoffs.HasGA)
	}
	if !p.Cutoffs.HasTC || !p.Cutoffs.HasNC {
		t.Error("TC/NC cutoff lines not recorded")
	}
	if !p.Evalue.HasMSV || p.Evalue.MSV != [2]float64{-9.8664, 0.70955} {
		t.Errorf("MSV stats = %v", p.Evalue.MSV)
	}
	if !p.Evalue.HasVit || !p.Evalue.HasFwd {
		t.Error("VITERBI/FORWARD stats not recorded")
	}
	if p.Consensus != "AC" {
		t.Errorf("consensus = %q, want AC", p.Consensus)
	}

	// COMPO occupies row 0 of the match emissions
	if p.Match[0][0] != 1.38629 {
		t.Errorf("COMPO[0] = %v", p.Match[0][0])
	}
	if p.Match[1][0] != 0.00990 || p.Match[2][1] != 0.00990 {
		t.Errorf("match emissions = %v, %v", p.Match[1], p.Match[2])
	}
	if len(p.Insert) != 3 || p.Insert[1][3] != 1.38629 {
		t.Errorf("insert emissions = %v", p.Insert)
	}
	// '*' marks an impossible transition, stored as +Inf
	if !math.IsInf(p.Transitions[0][6], 1) || !math.IsInf(p.Transitions[2][2], 1) {
		t.Errorf("transitions = %v, %v", p.Transitions[0], p.Transitions[2])
	}
}

func TestHMM3MultiModel(t *testing.T) {
	recs := decodeAll(t, sampleHMM3+sampleHMM3, FormatHMM3)
	if len(recs) != 2 {
		t.Fatalf("got %d records, want 2", len(recs))
	}
	if recs[1].(*Profile).Name != "test1" {
		t.Errorf("second model name = %q", recs[1].(*Profile).Name)
	}
}

func TestHMM3MixedAlphabetStream(t *testing.T) {
	second := strings.Replace(sampleHMM3, "ALPH  dna", "ALPH  amino", 1)
	dec, _ := NewDecoder(strings.NewReader(sampleHMM3+second), FormatHMM3)
	if _, err := dec.Next(); err != nil {
		t.Fatalf("first model: %v", err)
	}
	_, err := dec.Next()
	if !errors.Is(err, ErrIncompatibleAlphabet) {
		t.Fatalf("got %v, want ErrIncompatibleAlphabet", err)
	}
}

func TestHMM3UnsupportedVersion(t *testing.T) {
	for _, header := range []string{"HMMER3/g [3.4]", "HMMER4/a [4.0]"} {
		input := header + "\n" + strings.SplitN(sampleHMM3, "\n", 2)[1]
		dec, _ := NewDecoder(strings.NewReader(input), FormatHMM3)
		_, err := dec.Next()
		if !errors.Is(err, ErrUnsupportedVersion) {
			t.Errorf("header %q: got %v, want ErrUnsupportedVersion", header, err)
		}
	}
}

func TestHMM3Truncated(t *testing.T) {
	// cut the file inside the emission table
	i := strings.Index(sampleHMM3, "      2 ")
	dec, _ := NewDecoder(strings.NewReader(sampleHMM3[:i]), FormatHMM3)
	_, err := dec.Next()
	if !errors.Is(err, ErrTruncatedRecord) {
		t.Fatalf("got %v, want ErrTruncatedRecord", err)
	}
}

func TestHMM3MissingTerminator(t *testing.T) {
	input := strings.TrimSuffix(sampleHMM3, "//\n")
	dec, _ := NewDecoder(strings.NewReader(input), FormatHMM3)
	_, err := dec.Next()
	if !errors.Is(err, ErrTruncatedRecord) {
		t.Fatalf("got %v, want ErrTruncatedRecord", err)
	}
}

func TestHMM2Decode(t *testing.T) {
	recs := decodeAll(t, sampleHMM2, FormatHMM2)
	if len(recs) != 1 {
		t.Fatalf("got %d records, want 1", len(recs))
	}
	p := recs[0].(*Profile)
	if p.Name != "test2" || p.M != 2 || p.Alphabet != AlphabetDNA {
		t.Fatalf("model = %q %s M=%d", p.Name, p.Alphabet, p.M)
	}
	if !p.Cutoffs.HasGA || p.Cutoffs.Gathering != [2]float64{10, 10} {
		t.Errorf("GA cutoffs = %v", p.Cutoffs.Gathering)
	}
	// the EVD calibration pair lands in the MSV slot
	if !p.Evalue.HasMSV || p.Evalue.MSV != [2]float64{-38.6, 0.25} {
		t.Errorf("EVD = %v", p.Evalue.MSV)
	}
	// B-state special transitions precede node 1; '*' is -Inf here
	if p.Transitions[0][0] != -450 || !math.IsInf(p.Transitions[0][1], -1) {
		t.Errorf("B-state transitions = %v", p.Transitions[0])
	}
	if p.Match[1][0] != -149 || p.Match[2][2] != 300 {
		t.Errorf("match scores = %v, %v", p.Match[1], p.Match[2])
	}
	if !math.IsInf(p.Transitions[2][7], -1) {
		t.Errorf("node 2 transitions = %v", p.Transitions[2])
	}
}

func TestHMM2Truncated(t *testing.T) {
	input := strings.TrimSuffix(sampleHMM2, "//\n")
	dec, _ := NewDecoder(strings.NewReader(input), FormatHMM2)
	_, err := dec.Next()
	if !errors.Is(err, ErrTruncatedRecord) {
		t.Fatalf("got %v, want ErrTruncatedRecord", err)
	}
}

func TestHMM2RejectsHMM3Header(t *testing.T) {
	dec, _ := NewDecoder(strings.NewReader(sampleHMM3), FormatHMM2)
	_, err := dec.Next()
	if !errors.Is(err, ErrUnsupportedVersion) {
		t.Fatalf("got %v, want ErrUnsupportedVersion", err)
	}
}

func TestHMM3EOFAfterLastModel(t *testing.T) {
	dec, _ := NewDecoder(strings.NewReader(sampleHMM3), FormatHMM3)
	if _, err := dec.Next(); err != nil {
		t.Fatal(err)
	}
	if _, err := dec.Next(); err != io.EOF {
		t.Fatalf("got %v, want io.EOF", err)
	}
}

func TestParseScores(t *testing.T) {
	got, err := parseScores([]string{"1.5", "*", "-2"}, 3, math.Inf(1))
	if err != nil {
		t.Fatal(err)
	}
	if got[0] != 1.5 || !math.IsInf(got[1], 1) || got[2] != -2 {
		t.Fatalf("parseScores = %v", got)
	}
	if _, err := parseScores([]string{"1.5"}, 3, 0); err == nil {
		t.Error("expected an error for too few values")
	}
	if _, err := parseScores([]string{"abc"}, 1, 0); err == nil {
		t.Error("expected an error for a non-numeric value")
	}
	// extra trailing fields beyond the wanted count are ignored
	got, err = parseScores([]string{"1", "2", "3", "4"}, 2, 0)
	if err != nil || len(got) != 2 {
		t.Fatalf("parseScores = %v, %v", got, err)
	}
}

func TestParseStatsLine(t *testing.T) {
	var ev EvalueParameters
	if err := parseStatsLine("LOCAL MSV -9.8 0.7", &ev); err != nil {
		t.Fatal(err)
	}
	if !ev.HasMSV || ev.MSV != [2]float64{-9.8, 0.7} {
		t.Fatalf("MSV = %v", ev.MSV)
	}
	if err := parseStatsLine("GLOCAL MSV -9.8 0.7", &ev); err == nil {
		t.Error("expected an error for a non-LOCAL stats line")
	}
	if err := parseStatsLine("LOCAL BOGUS -9.8 0.7", &ev); err == nil {
		t.Error("expected an error for an unknown stats kind")
	}
}
