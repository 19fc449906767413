package seqio

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"testing"
)

func TestHMM3BinaryDecode(t *testing.T) {
	dec := newHMM3BinaryDecoder(bytes.NewReader(sampleHMM3Binary()))
	rec, err := dec.Next()
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	p := rec.(*Profile)
	if p.Name != "bintest" || p.Accession != "BIN001" || p.Description != "a binary test model" {
		t.Errorf("metadata = %q/%q/%q", p.Name, p.Accession, p.Description)
	}
	if p.M != 2 || p.Alphabet != AlphabetDNA {
		t.Fatalf("model is %s M=%d, want dna M=2", p.Alphabet, p.M)
	}
	if len(p.Match) != 3 || len(p.Match[0]) != 4 {
		t.Fatalf("match matrix is %dx%d", len(p.Match), len(p.Match[0]))
	}
	if p.Match[0][0] != 0 || p.Match[2][3] != float64(float32(2.3)) {
		t.Errorf("match emissions = %v, %v", p.Match[0], p.Match[2])
	}
	if p.Insert[1][2] != float64(float32(1.38629)) {
		t.Errorf("insert emissions = %v", p.Insert[1])
	}
	if p.Transitions[0][3] != 0.75 {
		t.Errorf("transitions = %v", p.Transitions[0])
	}
	// only the flag-backed cutoffs and stats count as present
	if !p.Cutoffs.HasGA || p.Cutoffs.HasTC || p.Cutoffs.HasNC {
		t.Errorf("cutoff flags = %+v", p.Cutoffs)
	}
	if p.Cutoffs.Gathering != [2]float64{10, 10} {
		t.Errorf("GA cutoffs = %v", p.Cutoffs.Gathering)
	}
	if !p.Evalue.HasMSV || p.Evalue.HasVit || p.Evalue.HasFwd {
		t.Errorf("stat flags = %+v", p.Evalue)
	}
	if p.Evalue.MSV != [2]float64{float64(float32(-9.8664)), float64(float32(0.70955))} {
		t.Errorf("MSV stats = %v", p.Evalue.MSV)
	}

	if _, err := dec.Next(); err != io.EOF {
		t.Fatalf("after last model: got %v, want io.EOF", err)
	}
}

func TestHMM3BinaryMultiModel(t *testing.T) {
	var buf bytes.Buffer
	writeHMM3Binary(&buf, "first", AlphabetAmino, 1)
	writeHMM3Binary(&buf, "second", AlphabetAmino, 3)
	dec := newHMM3BinaryDecoder(bytes.NewReader(buf.Bytes()))

	rec, err := dec.Next()
	if err != nil {
		t.Fatal(err)
	}
	if p := rec.(*Profile); p.Name != "first" || p.M != 1 || p.Alphabet != AlphabetAmino {
		t.Errorf("first model = %q M=%d %s", p.Name, p.M, p.Alphabet)
	}
	rec, err = dec.Next()
	if err != nil {
		t.Fatal(err)
	}
	if p := rec.(*Profile); p.Name != "second" || p.M != 3 {
		t.Errorf("second model = %q M=%d", p.Name, p.M)
	}
	if _, err := dec.Next(); err != io.EOF {
		t.Fatalf("got %v, want io.EOF", err)
	}
}

func TestHMM3BinaryMixedAlphabetStream(t *testing.T) {
	var buf bytes.Buffer
	writeHMM3Binary(&buf, "first", AlphabetDNA, 1)
	writeHMM3Binary(&buf, "second", AlphabetRNA, 1)
	dec := newHMM3BinaryDecoder(bytes.NewReader(buf.Bytes()))
	if _, err := dec.Next(); err != nil {
		t.Fatal(err)
	}
	_, err := dec.Next()
	if !errors.Is(err, ErrIncompatibleAlphabet) {
		t.Fatalf("got %v, want ErrIncompatibleAlphabet", err)
	}
}

func TestHMM3BinaryBadMagic(t *testing.T) {
	data := sampleHMM3Binary()
	binary.LittleEndian.PutUint32(data, 0xdeadbeef)
	dec := newHMM3BinaryDecoder(bytes.NewReader(data))
	_, err := dec.Next()
	if !errors.Is(err, ErrUnsupportedVersion) {
		t.Fatalf("got %v, want ErrUnsupportedVersion", err)
	}
}

func TestHMM3BinaryTruncated(t *testing.T) {
	full := sampleHMM3Binary()
	// cut at several depths: inside the magic, the header strings, and
	// the parameter matrices
	for _, n := range []int{2, 10, 30, len(full) / 2, len(full) - 4} {
		dec := newHMM3BinaryDecoder(bytes.NewReader(full[:n]))
		_, err := dec.Next()
		if !errors.Is(err, ErrTruncatedRecord) {
			t.Errorf("cut at %d: got %v, want ErrTruncatedRecord", n, err)
		}
	}
}

func TestHMM3BinaryCorruptStringLength(t *testing.T) {
	data := sampleHMM3Binary()
	// the name length word sits right after magic, M, alphabet, flags
	binary.LittleEndian.PutUint32(data[16:], 1<<30)
	dec := newHMM3BinaryDecoder(bytes.NewReader(data))
	if _, err := dec.Next(); err == nil {
		t.Fatal("expected an error for an absurd string length")
	}
}
