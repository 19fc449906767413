package seqio

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// hmm3Decoder reads HMMER3 text profiles: a version header, tag/value
// lines, the emission/transition table, and a '//' record delimiter.
// A stream holds consecutive models until EOF. Unrecognized tags
// within the supported major version are tolerated; any other major
// version fails with ErrUnsupportedVersion.
type hmm3Decoder struct {
	stickyDecoder
	alphabet Alphabet
}

func newHMM3Decoder(r io.Reader) Decoder {
	return &hmm3Decoder{stickyDecoder: stickyDecoder{format: FormatHMM3, sc: newLineScanner(r)}}
}

func (d *hmm3Decoder) Next() (Record, error) {
	if d.err != nil {
		return nil, d.err
	}
	header, err := d.sc.scanNonBlank()
	if err == io.EOF {
		return nil, io.EOF
	}
	if err != nil {
		return nil, d.fail(d.sc, err)
	}
	if !strings.HasPrefix(header, "HMMER3/") {
		if strings.HasPrefix(header, "HMMER") {
			return nil, d.fail(d.sc, fmt.Errorf("%w: %q", ErrUnsupportedVersion, excerpt(header)))
		}
		return nil, d.failf(d.sc, "expected HMMER3 header, got %q", excerpt(header))
	}
	minor := header[len("HMMER3/"):]
	if len(minor) == 0 || minor[0] < 'a' || minor[0] > 'f' {
		return nil, d.fail(d.sc, fmt.Errorf("%w: HMMER3 save format %q", ErrUnsupportedVersion, excerpt(minor)))
	}

	p := &Profile{}
	hasCons, hasRF := false, false
	for {
		line, err := d.sc.scan()
		if err == io.EOF {
			return nil, d.truncated(d.sc, "model header not closed by HMM table")
		}
		if err != nil {
			return nil, d.fail(d.sc, err)
		}
		tag, value := splitTagValue(line)
		if tag == "HMM" {
			break
		}
		switch tag {
		case "NAME":
			p.Name = value
		case "ACC":
			p.Accession = value
		case "DESC":
			p.Description = value
		case "LENG":
			p.M, err = strconv.Atoi(value)
			if err != nil || p.M < 1 {
				return nil, d.failf(d.sc, "invalid LENG %q", value)
			}
		case "ALPH":
			a, ok := ParseAlphabet(value)
			if !ok {
				return nil, d.failf(d.sc, "invalid ALPH %q", value)
			}
			p.Alphabet = a
		case "CONS":
			hasCons = strings.EqualFold(value, "yes")
		case "RF":
			hasRF = strings.EqualFold(value, "yes")
		case "GA":
			p.Cutoffs.Gathering, err = parseCutoffPair(value)
			p.Cutoffs.HasGA = err == nil
		case "TC":
			p.Cutoffs.Trusted, err = parseCutoffPair(value)
			p.Cutoffs.HasTC = err == nil
		case "NC":
			p.Cutoffs.Noise, err = parseCutoffPair(value)
			p.Cutoffs.HasNC = err == nil
		case "STATS":
			if err := parseStatsLine(value, &p.Evalue); err != nil {
				return nil, d.fail(d.sc, err)
			}
		default:
			// minor tags (DATE, COM, NSEQ, EFFN, CKSUM, ...) are tolerated
		}
	}
	if p.M == 0 {
		return nil, d.failf(d.sc, "model header carries no LENG line")
	}
	k := p.Alphabet.Size()
	if k == 0 {
		return nil, d.failf(d.sc, "model header carries no ALPH line")
	}
	if d.alphabet == AlphabetUnknown {
		d.alphabet = p.Alphabet
	} else if d.alphabet != p.Alphabet {
		return nil, d.fail(d.sc, fmt.Errorf("%w: stream is %s but model %q is %s",
			ErrIncompatibleAlphabet, d.alphabet, p.Name, p.Alphabet))
	}

	// skip the transition column header under the HMM line
	if _, err := d.sc.scan(); err != nil {
		return nil, d.truncated(d.sc, "model table is empty")
	}

	p.Match = make([][]float64, p.M+1)
	p.Insert = make([][]float64, p.M+1)
	p.Transitions = make([][]float64, p.M+1)

	line, err := d.sc.scanNonBlank()
	if err != nil {
		return nil, d.truncated(d.sc, "model table is empty")
	}
	fields := strings.Fields(line)
	if fields[0] == "COMPO" {
		if p.Match[0], err = parseScores(fields[1:], k, math.Inf(1)); err != nil {
			return nil, d.fail(d.sc, err)
		}
		line, err = d.sc.scanNonBlank()
		if err != nil {
			return nil, d.truncated(d.sc, "model table ends after COMPO")
		}
	}
	// node 0: insert emissions then transitions
	if p.Insert[0], err = parseScores(strings.Fields(line), k, math.Inf(1)); err != nil {
		return nil, d.fail(d.sc, err)
	}
	line, err = d.sc.scanNonBlank()
	if err != nil {
		return nil, d.truncated(d.sc, "model table ends in node 0")
	}
	if p.Transitions[0], err = parseScores(strings.Fields(line), 7, math.Inf(1)); err != nil {
		return nil, d.fail(d.sc, err)
	}

	var cons, rf strings.Builder
	for node := 1; node <= p.M; node++ {
		line, err = d.sc.scanNonBlank()
		if err != nil {
			return nil, d.truncated(d.sc, fmt.Sprintf("model ends before node %d", node))
		}
		fields = strings.Fields(line)
		if fields[0] != strconv.Itoa(node) {
			return nil, d.failf(d.sc, "expected node %d, got %q", node, excerpt(line))
		}
		if len(fields) < 1+k {
			return nil, d.failf(d.sc, "node %d match line has %d of %d emissions", node, len(fields)-1, k)
		}
		if p.Match[node], err = parseScores(fields[1:1+k], k, math.Inf(1)); err != nil {
			return nil, d.fail(d.sc, err)
		}
		// trailing per-node annotation columns: MAP CONS RF MM CS
		rest := fields[1+k:]
		if len(rest) > 1 && hasCons {
			cons.WriteString(rest[1])
		}
		if len(rest) > 2 && hasRF {
			rf.WriteString(rest[2])
		}

		line, err = d.sc.scanNonBlank()
		if err != nil {
			return nil, d.truncated(d.sc, fmt.Sprintf("node %d has no insert line", node))
		}
		if p.Insert[node], err = parseScores(strings.Fields(line), k, math.Inf(1)); err != nil {
			return nil, d.fail(d.sc, err)
		}
		line, err = d.sc.scanNonBlank()
		if err != nil {
			return nil, d.truncated(d.sc, fmt.Sprintf("node %d has no transition line", node))
		}
		if p.Transitions[node], err = parseScores(strings.Fields(line), 7, math.Inf(1)); err != nil {
			return nil, d.fail(d.sc, err)
		}
	}
	p.Consensus = cons.String()
	p.Reference = rf.String()

	line, err = d.sc.scanNonBlank()
	if err != nil || strings.TrimSpace(line) != "//" {
		return nil, d.truncated(d.sc, "model not closed by '//'")
	}
	d.record++
	return p, nil
}

// hmm2Decoder reads legacy HMMER2 text profiles. Scores are kept as
// stored: integer log-odds in half-bits, '*' meaning minus infinity.
type hmm2Decoder struct {
	stickyDecoder
	alphabet Alphabet
}

func newHMM2Decoder(r io.Reader) Decoder {
	return &hmm2Decoder{stickyDecoder: stickyDecoder{format: FormatHMM2, sc: newLineScanner(r)}}
}

func (d *hmm2Decoder) Next() (Record, error) {
	if d.err != nil {
		return nil, d.err
	}
	header, err := d.sc.scanNonBlank()
	if err == io.EOF {
		return nil, io.EOF
	}
	if err != nil {
		return nil, d.fail(d.sc, err)
	}
	if !strings.HasPrefix(header, "HMMER2.0") {
		if strings.HasPrefix(header, "HMMER") {
			return nil, d.fail(d.sc, fmt.Errorf("%w: %q", ErrUnsupportedVersion, excerpt(header)))
		}
		return nil, d.failf(d.sc, "expected HMMER2.0 header, got %q", excerpt(header))
	}

	p := &Profile{}
	for {
		line, err := d.sc.scan()
		if err == io.EOF {
			return nil, d.truncated(d.sc, "model header not closed by HMM table")
		}
		if err != nil {
			return nil, d.fail(d.sc, err)
		}
		tag, value := splitTagValue(line)
		if tag == "HMM" {
			break
		}
		switch tag {
		case "NAME":
			p.Name = value
		case "ACC":
			p.Accession = value
		case "DESC":
			p.Description = value
		case "LENG":
			p.M, err = strconv.Atoi(value)
			if err != nil || p.M < 1 {
				return nil, d.failf(d.sc, "invalid LENG %q", value)
			}
		case "ALPH":
			// HMMER2 writes "Amino" or "Nucleic"
			switch strings.ToLower(value) {
			case "amino":
				p.Alphabet = AlphabetAmino
			case "nucleic":
				p.Alphabet = AlphabetDNA
			default:
				return nil, d.failf(d.sc, "invalid ALPH %q", value)
			}
		case "GA":
			p.Cutoffs.Gathering, err = parseCutoffPair(value)
			p.Cutoffs.HasGA = err == nil
		case "TC":
			p.Cutoffs.Trusted, err = parseCutoffPair(value)
			p.Cutoffs.HasTC = err == nil
		case "NC":
			p.Cutoffs.Noise, err = parseCutoffPair(value)
			p.Cutoffs.HasNC = err == nil
		case "EVD":
			// single EVD mu/lambda pair
			pair, perr := parseCutoffPair(value)
			if perr != nil {
				return nil, d.failf(d.sc, "invalid EVD line %q", value)
			}
			p.Evalue.MSV = pair
			p.Evalue.HasMSV = true
		default:
			// XT, NULT, NULE, COM, NSEQ, DATE, CKSUM, ... tolerated
		}
	}
	if p.M == 0 {
		return nil, d.failf(d.sc, "model header carries no LENG line")
	}
	k := p.Alphabet.Size()
	if k == 0 {
		return nil, d.failf(d.sc, "model header carries no ALPH line")
	}
	if d.alphabet == AlphabetUnknown {
		d.alphabet = p.Alphabet
	} else if d.alphabet != p.Alphabet {
		return nil, d.fail(d.sc, fmt.Errorf("%w: stream is %s but model %q is %s",
			ErrIncompatibleAlphabet, d.alphabet, p.Name, p.Alphabet))
	}

	// skip the m->m transition column header
	if _, err := d.sc.scan(); err != nil {
		return nil, d.truncated(d.sc, "model table is empty")
	}

	p.Match = make([][]float64, p.M+1)
	p.Insert = make([][]float64, p.M+1)
	p.Transitions = make([][]float64, p.M+1)

	line, err := d.sc.scanNonBlank()
	if err != nil {
		return nil, d.truncated(d.sc, "model table is empty")
	}
	// the B-state special transition line precedes node 1
	if strings.Fields(line)[0] != "1" {
		if p.Transitions[0], err = parseScores(strings.Fields(line), -1, math.Inf(-1)); err != nil {
			return nil, d.fail(d.sc, err)
		}
		line, err = d.sc.scanNonBlank()
		if err != nil {
			return nil, d.truncated(d.sc, "model table ends after B state")
		}
	}

	for node := 1; node <= p.M; node++ {
		fields := strings.Fields(line)
		if fields[0] != strconv.Itoa(node) {
			return nil, d.failf(d.sc, "expected node %d, got %q", node, excerpt(line))
		}
		if len(fields) < 1+k {
			return nil, d.failf(d.sc, "node %d match line has %d of %d emissions", node, len(fields)-1, k)
		}
		if p.Match[node], err = parseScores(fields[1:1+k], k, math.Inf(-1)); err != nil {
			return nil, d.fail(d.sc, err)
		}
		line, err = d.sc.scanNonBlank()
		if err != nil {
			return nil, d.truncated(d.sc, fmt.Sprintf("node %d has no insert line", node))
		}
		if p.Insert[node], err = parseScores(strings.Fields(line), -1, math.Inf(-1)); err != nil {
			return nil, d.fail(d.sc, err)
		}
		line, err = d.sc.scanNonBlank()
		if err != nil {
			return nil, d.truncated(d.sc, fmt.Sprintf("node %d has no transition line", node))
		}
		if p.Transitions[node], err = parseScores(strings.Fields(line), -1, math.Inf(-1)); err != nil {
			return nil, d.fail(d.sc, err)
		}
		if node < p.M {
			line, err = d.sc.scanNonBlank()
			if err != nil {
				return nil, d.truncated(d.sc, fmt.Sprintf("model ends before node %d", node+1))
			}
		}
	}

	line, err = d.sc.scanNonBlank()
	if err != nil || strings.TrimSpace(line) != "//" {
		return nil, d.truncated(d.sc, "model not closed by '//'")
	}
	d.record++
	return p, nil
}

// parseScores parses a row of numeric parameters. '*' maps to inf,
// which callers set to +Inf for HMMER3 negative log probabilities and
// -Inf for HMMER2 log-odds scores. want < 0 accepts any count.
func parseScores(fields []string, want int, inf float64) ([]float64, error) {
	if want >= 0 && len(fields) < want {
		return nil, fmt.Errorf("expected %d values, got %d", want, len(fields))
	}
	if want >= 0 {
		fields = fields[:want]
	}
	out := make([]float64, len(fields))
	for i, f := range fields {
		if f == "*" {
			out[i] = inf
			continue
		}
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid parameter %q", f)
		}
		out[i] = v
	}
	return out, nil
}

func parseCutoffPair(value string) ([2]float64, error) {
	fields := strings.Fields(strings.ReplaceAll(value, ";", " "))
	if len(fields) < 2 {
		return [2]float64{}, fmt.Errorf("expected two values, got %q", value)
	}
	a, err1 := strconv.ParseFloat(fields[0], 64)
	b, err2 := strconv.ParseFloat(fields[1], 64)
	if err1 != nil || err2 != nil {
		return [2]float64{}, fmt.Errorf("invalid cutoff pair %q", value)
	}
	return [2]float64{a, b}, nil
}

// parseStatsLine handles "LOCAL MSV mu lambda" style calibration lines.
func parseStatsLine(value string, ev *EvalueParameters) error {
	fields := strings.Fields(value)
	if len(fields) != 4 || !strings.EqualFold(fields[0], "LOCAL") {
		return fmt.Errorf("invalid STATS line %q", value)
	}
	mu, err1 := strconv.ParseFloat(fields[2], 64)
	lambda, err2 := strconv.ParseFloat(fields[3], 64)
	if err1 != nil || err2 != nil {
		return fmt.Errorf("invalid STATS values %q", value)
	}
	switch strings.ToUpper(fields[1]) {
	case "MSV":
		ev.MSV = [2]float64{mu, lambda}
		ev.HasMSV = true
	case "VITERBI":
		ev.Viterbi = [2]float64{mu, lambda}
		ev.HasVit = true
	case "FORWARD":
		ev.Forward = [2]float64{mu, lambda}
		ev.HasFwd = true
	default:
		return fmt.Errorf("unknown STATS kind %q", fields[1])
	}
	return nil
}
