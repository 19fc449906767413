package seqio

import (
	"bytes"
	"encoding/binary"
	"math"
)

// Shared format samples used by the detection and reader tests. Every
// sample is a complete, decodable input, not just a sniffable header.

const sampleFasta = `>SNRPA_DROME first row
MEMLPNQTIYINNLNEKIKKDELKKSLYAIFSQFGQILDILVSRSLKMRGQ
>SNRPA_HUMAN second row
MAVPETRPNHTIYINNLNEKIKKDELKKSLYAIFSQFGQILDILVSRSLKM
`

const sampleEMBL = `ID   X56734; SV 1; linear; mRNA; STD; PLN; 24 BP.
XX
AC   X56734; S46826;
XX
DE   Trifolium repens mRNA for beta-glucosidase
XX
SQ   Sequence 24 BP; 9 A; 6 C; 5 G; 4 T; 0 other;
     gaattcctga ccgtaccggt tgtt                                          24
//
`

const sampleGenbank = `LOCUS       SCU49845     24 bp    DNA             PLN       21-JUN-1999
DEFINITION  Saccharomyces cerevisiae TCP1-beta gene, partial cds.
ACCESSION   U49845
ORIGIN
        1 atccacggcc atagcaaggg ttcc
//
`

const sampleUniprot = `ID   SNRPA_HUMAN             Reviewed;          24 AA.
AC   P09012;
DE   RecName: Full=U1 small nuclear ribonucleoprotein A;
SQ   SEQUENCE   24 AA;  2770 MW;  F942A26992F09A28 CRC64;
     MEMLPNQTIY INNLNEKIKK DELK
//
`

const sampleStockholm = `# STOCKHOLM 1.0
#=GF ID   test
#=GF AC   PF00001
#=GF DE   test alignment
#=GS seq1 DE first row

seq1         ACDEFGHIKL
seq2         ACDEFGH-KL
#=GC SS_cons HHHHHHHHHH

seq1         MNPQRSTVWY
seq2         MNPQRSTVWY
#=GC SS_cons EEEEEEEEEE
//
`

const sampleSelex = `#=ID test
#=RF xxxxxxxxxx
seq1 ACDEFGHIKL
seq2 ACDEFGHIKL

#=RF xxxxxxxxxx
seq1 MNPQRSTVWY
seq2 MNPQRSTVWY
`

const sampleClustal = `CLUSTAL W (1.83) multiple sequence alignment

seq1            ACDEFGHIKL
seq2            ACDEFGH-KL
                *******  *

seq1            MNPQRSTVWY
seq2            MNPQRSTVWY
                **********
`

const sampleClustalLike = `MUSCLE (3.8.31) multiple sequence alignment

seq1            ACDEFGHIKL
seq2            ACDEFGH-KL

seq1            MNPQRSTVWY
seq2            MNPQRSTVWY
`

const sampleA2M = `>s1
ACkDE
>s2
AC.DE
>s3
A-DE
`

const sampleAFA = `>s1
ACDEF-HIKL
>s2
ACDEFGHIK-
`

const samplePhylip = ` 3  20
seq1  ACDEFGHIKL
seq2  ACDEFGHIKL
seq3  ACDEFGH-KL

MNPQRSTVWY
MNPQRSTVWY
MNPQRSTVWY
`

const samplePhylipS = ` 3  20
seq1  ACDEFGHIKL
MNPQRSTVWY
seq2  ACDEFGHIKLMNPQRSTVWY
seq3  ACDEFGH-KL
MNPQRSTVWY
`

const samplePsiblast = `seq1 ACDEFGHIKL
seq2 ACDEFGH-KL

seq1 MNPQRSTVWY
seq2 MNPQRSTVWY
`

const sampleHMM3 = `HMMER3/f [3.1b2 | February 2015]
NAME  test1
ACC   TST001
DESC  a test model
LENG  2
ALPH  dna
RF    no
MM    no
CONS  yes
CS    no
MAP   yes
GA    10.00 10.00
TC    12.00 12.00
NC    8.00 8.00
STATS LOCAL MSV       -9.8664  0.70955
STATS LOCAL VITERBI  -10.7223  0.70955
STATS LOCAL FORWARD   -4.1824  0.70955
HMM          A        C        G        T
            m->m     m->i     m->d     i->m     i->i     d->m     d->d
  COMPO   1.38629  1.38629  1.38629  1.38629
          1.38629  1.38629  1.38629  1.38629
          0.01467  4.62483  5.34718  0.61958  0.77255  0.00000        *
      1   0.00990  4.62006  4.61899  4.61904      1 A - - -
          1.38629  1.38629  1.38629  1.38629
          0.01467  4.62483  5.34718  0.61958  0.77255  0.48576  0.95510
      2   4.61899  0.00990  4.62006  4.61904      2 C - - -
          1.38629  1.38629  1.38629  1.38629
          0.01467  4.62483        *  0.61958  0.77255  0.48576  0.95510
//
`

const sampleHMM2 = `HMMER2.0  [2.3.2]
NAME  test2
LENG  2
ALPH  Nucleic
GA    10.0 10.0
EVD   -38.6 0.25
HMM        A      C      G      T
         m->m   m->i   m->d   i->m   i->i   d->m   d->d   b->m   m->e
         -450      *   -1900
    1   -149   -500    233     43
         -149   -500    233     43
          -23  -6528  -7571   -894  -1115   -701  -1378   -450      0
    2   -100   -200    300    -50
         -149   -500    233     43
          -23  -6528  -7571   -894  -1115   -701  -1378      *      0
//
`

// sampleHMM3Binary builds a one-model binary HMMER3 stream with the
// same shape as the parser expects: magic, state count, alphabet code,
// flags, three length-prefixed strings, the parameter matrices, and
// the cutoff/stats blocks.
func sampleHMM3Binary() []byte {
	var buf bytes.Buffer
	writeHMM3Binary(&buf, "bintest", AlphabetDNA, 2)
	return buf.Bytes()
}

func writeHMM3Binary(buf *bytes.Buffer, name string, alphabet Alphabet, m int) {
	le := binary.LittleEndian
	var word [4]byte

	putU32 := func(v uint32) {
		le.PutUint32(word[:], v)
		buf.Write(word[:])
	}
	putF32 := func(v float64) {
		putU32(math.Float32bits(float32(v)))
	}
	putString := func(s string) {
		putU32(uint32(len(s)))
		buf.WriteString(s)
	}

	putU32(0xe8ededba) // v3f
	putU32(uint32(m))
	switch alphabet {
	case AlphabetAmino:
		putU32(uint32(hmmAlphAmino))
	case AlphabetDNA:
		putU32(uint32(hmmAlphDNA))
	case AlphabetRNA:
		putU32(uint32(hmmAlphRNA))
	}
	putU32(hmmFlagGA | hmmFlagMSV)
	putString(name)
	putString("BIN001")
	putString("a binary test model")

	k := alphabet.Size()
	for row := 0; row <= m; row++ { // match emissions
		for i := 0; i < k; i++ {
			putF32(float64(row) + float64(i)/10)
		}
	}
	for row := 0; row <= m; row++ { // insert emissions
		for i := 0; i < k; i++ {
			putF32(1.38629)
		}
	}
	for row := 0; row <= m; row++ { // transitions
		for i := 0; i < 7; i++ {
			putF32(0.25 * float64(i))
		}
	}
	// cutoffs: GA TC NC pairs
	for _, v := range []float64{10, 10, 0, 0, 0, 0} {
		putF32(v)
	}
	// stats: MSV VITERBI FORWARD pairs
	for _, v := range []float64{-9.8664, 0.70955, 0, 0, 0, 0} {
		putF32(v)
	}
}
