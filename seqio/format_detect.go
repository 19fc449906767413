package seqio

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"strconv"
	"strings"
)

// sniffWindow is the number of bytes captured for content sniffing.
// Detection cost is independent of file size for both disk and memory
// sources.
const sniffWindow = 4096

// detectFormat evaluates every registered sniffer over the cached
// prefix and returns the unique top-confidence format. Zero candidates
// or a tie fail with ErrUndeterminedFormat. A non-KindAny kind
// restricts the candidate set to formats of that structural kind.
func detectFormat(prefix []byte, kind FormatKind) (Format, error) {
	if len(bytes.TrimSpace(prefix)) == 0 {
		return FormatAuto, fmt.Errorf("%w: input is empty", ErrUndeterminedFormat)
	}
	var (
		best      int
		bestCount int
		found     Format
	)
	for _, info := range formatTable {
		if kind != KindAny && info.kind != kind {
			continue
		}
		conf := info.sniff(prefix)
		switch {
		case conf > best:
			best, bestCount, found = conf, 1, info.format
		case conf == best && conf > 0:
			bestCount++
		}
	}
	if best == 0 {
		return FormatAuto, fmt.Errorf("%w: no candidate matches the input", ErrUndeterminedFormat)
	}
	if bestCount > 1 {
		return FormatAuto, fmt.Errorf("%w: %d candidates match the input", ErrUndeterminedFormat, bestCount)
	}
	return found, nil
}

// prefixLines splits a sniffing prefix into lines. The final line is
// dropped when the prefix was cut mid-line by the sniff window.
func prefixLines(prefix []byte) []string {
	s := string(prefix)
	complete := strings.HasSuffix(s, "\n") || len(prefix) < sniffWindow
	lines := strings.Split(s, "\n")
	if !complete && len(lines) > 0 {
		lines = lines[:len(lines)-1]
	}
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, "\r")
	}
	return lines
}

func firstNonBlank(lines []string) (string, int) {
	for i, line := range lines {
		if strings.TrimSpace(line) != "" {
			return line, i
		}
	}
	return "", -1
}

// sniffNever is registered for formats that cannot be distinguished by
// content: aligned FASTA (vs FASTA) and sequential PHYLIP (vs
// interleaved). They require explicit format selection.
func sniffNever([]byte) int { return 0 }

func sniffFasta(prefix []byte) int {
	line, _ := firstNonBlank(prefixLines(prefix))
	if strings.HasPrefix(line, ">") {
		return 70
	}
	return 0
}

// sniffA2M outranks sniffFasta only when insert columns (dots) appear
// in the body; a dotless A2M file is accepted as FASTA, matching the
// grammar overlap.
func sniffA2M(prefix []byte) int {
	lines := prefixLines(prefix)
	line, i := firstNonBlank(lines)
	if !strings.HasPrefix(line, ">") {
		return 0
	}
	for _, body := range lines[i+1:] {
		if strings.HasPrefix(body, ">") {
			continue
		}
		if strings.Contains(body, ".") {
			return 80
		}
	}
	return 0
}

func sniffEMBL(prefix []byte) int {
	line, _ := firstNonBlank(prefixLines(prefix))
	if !strings.HasPrefix(line, "ID   ") {
		return 0
	}
	if strings.Contains(line, " AA.") {
		return 0 // UniProt shape
	}
	if strings.Contains(line, " BP.") || strings.Contains(line, "SV ") {
		return 80
	}
	return 60
}

func sniffUniprot(prefix []byte) int {
	line, _ := firstNonBlank(prefixLines(prefix))
	if strings.HasPrefix(line, "ID   ") && strings.Contains(line, " AA.") {
		return 80
	}
	return 0
}

func sniffGenbank(prefix []byte) int {
	line, _ := firstNonBlank(prefixLines(prefix))
	if strings.HasPrefix(line, "LOCUS ") {
		return 80
	}
	return 0
}

func sniffStockholm(prefix []byte) int {
	line, _ := firstNonBlank(prefixLines(prefix))
	if strings.HasPrefix(line, "# STOCKHOLM") {
		return 95
	}
	return 0
}

func sniffSelex(prefix []byte) int {
	line, _ := firstNonBlank(prefixLines(prefix))
	if strings.HasPrefix(line, "#=") {
		return 70
	}
	return 0
}

func sniffClustal(prefix []byte) int {
	line, _ := firstNonBlank(prefixLines(prefix))
	if strings.HasPrefix(line, "CLUSTAL") {
		return 95
	}
	return 0
}

// sniffClustalLike matches the header of aligners that emit the Clustal
// layout under their own program name (e.g. MUSCLE).
func sniffClustalLike(prefix []byte) int {
	line, _ := firstNonBlank(prefixLines(prefix))
	if strings.HasPrefix(line, "CLUSTAL") {
		return 0
	}
	if strings.Contains(line, "multiple sequence alignment") {
		return 90
	}
	return 0
}

func sniffPhylip(prefix []byte) int {
	line, _ := firstNonBlank(prefixLines(prefix))
	fields := strings.Fields(line)
	if len(fields) != 2 {
		return 0
	}
	nseq, err1 := strconv.Atoi(fields[0])
	ncol, err2 := strconv.Atoi(fields[1])
	if err1 == nil && err2 == nil && nseq > 0 && ncol > 0 {
		return 85
	}
	return 0
}

// sniffPsiblast is deliberately weak: bare name/chunk blocks have no
// header to key on, so it only fires when nothing stronger does.
func sniffPsiblast(prefix []byte) int {
	lines := prefixLines(prefix)
	rows := 0
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if strings.HasPrefix(trimmed, ">") || strings.HasPrefix(trimmed, "#") {
			return 0
		}
		fields := strings.Fields(trimmed)
		if len(fields) != 2 {
			return 0
		}
		if !isResidueField(fields[1]) {
			return 0
		}
		rows++
		if rows >= 2 {
			return 40
		}
	}
	return 0
}

func isResidueField(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'A' && c <= 'Z':
		case c >= 'a' && c <= 'z':
		case isGap(c):
		default:
			return false
		}
	}
	return len(s) > 0
}

func sniffHMM3(prefix []byte) int {
	if bytes.HasPrefix(prefix, []byte("HMMER3/")) {
		return 100
	}
	return 0
}

func sniffHMM2(prefix []byte) int {
	if bytes.HasPrefix(prefix, []byte("HMMER2.0")) {
		return 100
	}
	return 0
}

func sniffHMM3Binary(prefix []byte) int {
	if len(prefix) < 4 {
		return 0
	}
	magic := binary.LittleEndian.Uint32(prefix)
	if _, ok := hmm3Magics[magic]; ok {
		return 100
	}
	return 0
}
