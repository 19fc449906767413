package seqio

import (
	"io"
	"strings"
)

// Format identifies a supported file format.
type Format string

const (
	// FormatAuto requests content-based format detection.
	FormatAuto Format = ""

	FormatFasta   Format = "fasta"
	FormatEMBL    Format = "embl"
	FormatGenbank Format = "genbank"
	FormatUniprot Format = "uniprot"

	FormatStockholm   Format = "stockholm"
	FormatSelex       Format = "selex"
	FormatClustal     Format = "clustal"
	FormatClustalLike Format = "clustallike"
	FormatAFA         Format = "afa"
	FormatA2M         Format = "a2m"
	FormatPhylip      Format = "phylip"
	FormatPhylipS     Format = "phylips"
	FormatPsiblast    Format = "psiblast"

	FormatHMM3       Format = "hmm3"
	FormatHMM3Binary Format = "hmm3b"
	FormatHMM2       Format = "hmm2"
)

// ParseFormat normalizes a format string. The match is case-insensitive
// and accepts the common aliases of each canonical name.
func ParseFormat(value string) (Format, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "fasta", "fa":
		return FormatFasta, true
	case "embl":
		return FormatEMBL, true
	case "genbank", "gb":
		return FormatGenbank, true
	case "uniprot", "swissprot":
		return FormatUniprot, true
	case "stockholm", "sto":
		return FormatStockholm, true
	case "selex":
		return FormatSelex, true
	case "clustal", "aln":
		return FormatClustal, true
	case "clustallike", "clustal-like":
		return FormatClustalLike, true
	case "afa", "aligned-fasta", "afasta":
		return FormatAFA, true
	case "a2m":
		return FormatA2M, true
	case "phylip", "ph":
		return FormatPhylip, true
	case "phylips", "phylip-sequential":
		return FormatPhylipS, true
	case "psiblast", "pb":
		return FormatPsiblast, true
	case "hmm3", "hmm3-text", "hmmer3":
		return FormatHMM3, true
	case "hmm3b", "hmm3-binary", "h3m":
		return FormatHMM3Binary, true
	case "hmm2", "hmm2-text", "hmmer2":
		return FormatHMM2, true
	default:
		return FormatAuto, false
	}
}

// FormatKind is the structural kind of the records a format carries.
type FormatKind uint8

const (
	// KindAny places no constraint on detection.
	KindAny FormatKind = iota
	// KindSequence formats carry unaligned sequences.
	KindSequence
	// KindAlignment formats carry multiple sequence alignments.
	KindAlignment
	// KindProfile formats carry profile HMMs.
	KindProfile
)

// String returns the name of the structural kind.
func (k FormatKind) String() string {
	switch k {
	case KindSequence:
		return "sequence"
	case KindAlignment:
		return "alignment"
	case KindProfile:
		return "profile"
	default:
		return "any"
	}
}

// formatInfo binds a format to its structural kind, sniffer, and
// decoder constructor. The table is populated once at init and never
// mutated afterwards; concurrent reads need no locking.
type formatInfo struct {
	format Format
	kind   FormatKind
	sniff  func(prefix []byte) int
	open   func(r io.Reader) Decoder
}

var formatTable = []formatInfo{
	{FormatFasta, KindSequence, sniffFasta, newFastaDecoder},
	{FormatEMBL, KindSequence, sniffEMBL, newEMBLDecoder},
	{FormatGenbank, KindSequence, sniffGenbank, newGenbankDecoder},
	{FormatUniprot, KindSequence, sniffUniprot, newUniprotDecoder},
	{FormatStockholm, KindAlignment, sniffStockholm, newStockholmDecoder},
	{FormatSelex, KindAlignment, sniffSelex, newSelexDecoder},
	{FormatClustal, KindAlignment, sniffClustal, newClustalDecoder},
	{FormatClustalLike, KindAlignment, sniffClustalLike, newClustalLikeDecoder},
	{FormatAFA, KindAlignment, sniffNever, newAFADecoder},
	{FormatA2M, KindAlignment, sniffA2M, newA2MDecoder},
	{FormatPhylip, KindAlignment, sniffPhylip, newPhylipDecoder},
	{FormatPhylipS, KindAlignment, sniffNever, newPhylipSDecoder},
	{FormatPsiblast, KindAlignment, sniffPsiblast, newPsiblastDecoder},
	{FormatHMM3, KindProfile, sniffHMM3, newHMM3Decoder},
	{FormatHMM3Binary, KindProfile, sniffHMM3Binary, newHMM3BinaryDecoder},
	{FormatHMM2, KindProfile, sniffHMM2, newHMM2Decoder},
}

func lookupFormat(f Format) (formatInfo, bool) {
	for _, info := range formatTable {
		if info.format == f {
			return info, true
		}
	}
	return formatInfo{}, false
}

// Kind returns the structural kind of the format, or KindAny for
// FormatAuto and unrecognized values.
func (f Format) Kind() FormatKind {
	if info, ok := lookupFormat(f); ok {
		return info.kind
	}
	return KindAny
}
