// Package seqio provides streaming readers for biological sequence,
// alignment, and profile-HMM file formats.
//
// Copyright 2026 Geoknoesis LLC (www.geoknoesis.com)
//
// It focuses on pull-based, low-allocation decoding with a small surface
// area and type safety:
//   - Open: Open() and OpenBytes() return a *File reading from a path or
//     an in-memory buffer, with content-based format detection when no
//     explicit format is given.
//   - Decode: NewDecoder() returns a raw pull-style decoder for a single
//     format, without the gap/digitization policies of the File facade.
//   - Parse: Parse() is a one-shot helper returning the first record of a
//     buffer.
//
// Records cross the API as one of three value types behind the Record
// interface: Sequence (unaligned), Alignment (multiple sequence
// alignment), and Profile (profile hidden Markov model). The structural
// kind of every format is fixed at compile time, so a caller that asks
// for alignments can never receive a profile.
//
// Supported formats:
//   - Sequence: FASTA, EMBL, GenBank, UniProt
//   - Alignment: Stockholm, SELEX, Clustal, Clustal-like, aligned FASTA,
//     A2M, PHYLIP (interleaved and sequential), PSI-BLAST
//   - Profile: HMMER3 text, HMMER3 binary, HMMER2 text
//
// Two ambiguities are intrinsic to the grammars and are not guessed
// around: aligned FASTA is indistinguishable from unaligned FASTA by
// content alone, and sequential PHYLIP is indistinguishable from
// interleaved PHYLIP. Both require an explicit format selection.
//
// Example (reading sequences):
//
//	f, err := seqio.Open("seqs.fa")
//	if err != nil {
//	    // handle error
//	}
//	defer f.Close()
//
//	for {
//	    rec, err := f.Read()
//	    if err == io.EOF {
//	        break
//	    }
//	    if err != nil {
//	        // handle error
//	    }
//	    seq := rec.(*seqio.Sequence)
//	    // process seq.Name, seq.Residues
//	}
//
// Gzip-compressed inputs are decompressed transparently; sniffing and
// decoding both see the uncompressed byte stream.
package seqio
