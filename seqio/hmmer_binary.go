package seqio

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

// hmm3Magics maps the little-endian magic word opening a binary HMMER3
// model to its save-format minor letter. Each minor revision bumped
// the word by one.
var hmm3Magics = map[uint32]byte{
	0xe8ededb5: 'a',
	0xe8ededb6: 'b',
	0xe8ededb7: 'c',
	0xe8ededb8: 'd',
	0xe8ededb9: 'e',
	0xe8ededba: 'f',
}

// Cutoff/stat presence bits in the binary flag word.
const (
	hmmFlagGA uint32 = 1 << iota
	hmmFlagTC
	hmmFlagNC
	hmmFlagMSV
	hmmFlagVit
	hmmFlagFwd
)

// Alphabet codes in the binary layout.
const (
	hmmAlphAmino int32 = iota
	hmmAlphDNA
	hmmAlphRNA
)

// maxHMMStringLen bounds length-prefixed strings so a corrupt length
// word cannot trigger an absurd allocation.
const maxHMMStringLen = 1 << 20

// hmm3BinaryDecoder reads binary HMMER3 model files: a magic/version
// word followed by length-prefixed parameter blocks, repeated until a
// clean EOF.
type hmm3BinaryDecoder struct {
	stickyDecoder
	r        io.Reader
	off      int
	alphabet Alphabet
}

func newHMM3BinaryDecoder(r io.Reader) Decoder {
	return &hmm3BinaryDecoder{stickyDecoder: stickyDecoder{format: FormatHMM3Binary}, r: r}
}

func (d *hmm3BinaryDecoder) Next() (Record, error) {
	if d.err != nil {
		return nil, d.err
	}
	var magicBuf [4]byte
	n, err := io.ReadFull(d.r, magicBuf[:])
	if err == io.EOF && n == 0 {
		return nil, io.EOF
	}
	d.off += n
	if err != nil {
		return nil, d.binTruncated("magic word")
	}
	magic := binary.LittleEndian.Uint32(magicBuf[:])
	if _, ok := hmm3Magics[magic]; !ok {
		d.err = wrapParseError(d.format, d.record, 0, d.off-4,
			fmt.Errorf("%w: unrecognized magic %#08x", ErrUnsupportedVersion, magic))
		return nil, d.err
	}

	p := &Profile{}
	m, err := d.readI32()
	if err != nil {
		return nil, d.binTruncated("state count")
	}
	if m < 1 {
		return nil, d.binFailf("invalid state count %d", m)
	}
	p.M = int(m)

	alph, err := d.readI32()
	if err != nil {
		return nil, d.binTruncated("alphabet code")
	}
	switch alph {
	case hmmAlphAmino:
		p.Alphabet = AlphabetAmino
	case hmmAlphDNA:
		p.Alphabet = AlphabetDNA
	case hmmAlphRNA:
		p.Alphabet = AlphabetRNA
	default:
		return nil, d.binFailf("invalid alphabet code %d", alph)
	}
	if d.alphabet == AlphabetUnknown {
		d.alphabet = p.Alphabet
	} else if d.alphabet != p.Alphabet {
		d.err = wrapParseError(d.format, d.record, 0, d.off,
			fmt.Errorf("%w: stream is %s but model is %s", ErrIncompatibleAlphabet, d.alphabet, p.Alphabet))
		return nil, d.err
	}

	flags, err := d.readU32()
	if err != nil {
		return nil, d.binTruncated("flag word")
	}
	if p.Name, err = d.readString(); err != nil {
		return nil, d.binTruncated("model name")
	}
	if p.Accession, err = d.readString(); err != nil {
		return nil, d.binTruncated("model accession")
	}
	if p.Description, err = d.readString(); err != nil {
		return nil, d.binTruncated("model description")
	}

	k := p.Alphabet.Size()
	if p.Match, err = d.readMatrix(p.M+1, k); err != nil {
		return nil, d.binTruncated("match emissions")
	}
	if p.Insert, err = d.readMatrix(p.M+1, k); err != nil {
		return nil, d.binTruncated("insert emissions")
	}
	if p.Transitions, err = d.readMatrix(p.M+1, 7); err != nil {
		return nil, d.binTruncated("transitions")
	}

	cut, err := d.readFloats(6)
	if err != nil {
		return nil, d.binTruncated("score cutoffs")
	}
	p.Cutoffs.Gathering = [2]float64{cut[0], cut[1]}
	p.Cutoffs.Trusted = [2]float64{cut[2], cut[3]}
	p.Cutoffs.Noise = [2]float64{cut[4], cut[5]}
	p.Cutoffs.HasGA = flags&hmmFlagGA != 0
	p.Cutoffs.HasTC = flags&hmmFlagTC != 0
	p.Cutoffs.HasNC = flags&hmmFlagNC != 0

	stats, err := d.readFloats(6)
	if err != nil {
		return nil, d.binTruncated("calibration stats")
	}
	p.Evalue.MSV = [2]float64{stats[0], stats[1]}
	p.Evalue.Viterbi = [2]float64{stats[2], stats[3]}
	p.Evalue.Forward = [2]float64{stats[4], stats[5]}
	p.Evalue.HasMSV = flags&hmmFlagMSV != 0
	p.Evalue.HasVit = flags&hmmFlagVit != 0
	p.Evalue.HasFwd = flags&hmmFlagFwd != 0

	d.record++
	return p, nil
}

func (d *hmm3BinaryDecoder) pos() (line, off int) { return 0, d.off }

func (d *hmm3BinaryDecoder) binTruncated(what string) error {
	d.err = wrapParseError(d.format, d.record, 0, d.off,
		fmt.Errorf("%w: input ends in %s", ErrTruncatedRecord, what))
	return d.err
}

func (d *hmm3BinaryDecoder) binFailf(format string, args ...any) error {
	d.err = wrapParseError(d.format, d.record, 0, d.off, fmt.Errorf(format, args...))
	return d.err
}

func (d *hmm3BinaryDecoder) readU32() (uint32, error) {
	var buf [4]byte
	n, err := io.ReadFull(d.r, buf[:])
	d.off += n
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(buf[:]), nil
}

func (d *hmm3BinaryDecoder) readI32() (int32, error) {
	v, err := d.readU32()
	return int32(v), err
}

func (d *hmm3BinaryDecoder) readString() (string, error) {
	n, err := d.readU32()
	if err != nil {
		return "", err
	}
	if n > maxHMMStringLen {
		return "", fmt.Errorf("string length %d exceeds limit", n)
	}
	if n == 0 {
		return "", nil
	}
	buf := make([]byte, n)
	m, err := io.ReadFull(d.r, buf)
	d.off += m
	if err != nil {
		return "", err
	}
	return string(buf), nil
}

func (d *hmm3BinaryDecoder) readFloats(n int) ([]float64, error) {
	buf := make([]byte, 4*n)
	m, err := io.ReadFull(d.r, buf)
	d.off += m
	if err != nil {
		return nil, err
	}
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		bits := binary.LittleEndian.Uint32(buf[4*i:])
		out[i] = float64(math.Float32frombits(bits))
	}
	return out, nil
}

func (d *hmm3BinaryDecoder) readMatrix(rows, cols int) ([][]float64, error) {
	out := make([][]float64, rows)
	for i := range out {
		row, err := d.readFloats(cols)
		if err != nil {
			return nil, err
		}
		out[i] = row
	}
	return out, nil
}
