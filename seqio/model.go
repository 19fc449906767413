package seqio

// RecordKind identifies the structural kind of a decoded record.
type RecordKind uint8

const (
	// RecordSequence represents a single unaligned sequence.
	RecordSequence RecordKind = iota
	// RecordAlignment represents a multiple sequence alignment.
	RecordAlignment
	// RecordProfile represents a profile hidden Markov model.
	RecordProfile
)

// Record is a value decoded from an input stream. It is one of
// *Sequence, *Alignment, or *Profile.
type Record interface {
	Kind() RecordKind
}

// Sequence is a single biological sequence: a name, optional metadata,
// and a residue string.
type Sequence struct {
	// Name is the primary identifier of the sequence.
	Name string
	// Description is free-text metadata, if any.
	Description string
	// Accession is a database accession, if any.
	Accession string
	// Residues is the residue string. It may contain gap symbols when
	// the sequence is a row of an alignment.
	Residues string
	// Alphabet is the alphabet the residues were digitized into, or
	// AlphabetUnknown for text-mode records.
	Alphabet Alphabet
}

// Kind returns RecordSequence.
func (s *Sequence) Kind() RecordKind { return RecordSequence }

// Len returns the number of residue symbols, gaps included.
func (s *Sequence) Len() int { return len(s.Residues) }

// ColumnAnnotation is a per-column annotation track of an alignment,
// such as a Stockholm #=GC line. Values has one symbol per column.
type ColumnAnnotation struct {
	Tag    string
	Values string
}

// ResidueAnnotation is a per-residue annotation track attached to a
// single row of an alignment, such as a Stockholm #=GR line.
type ResidueAnnotation struct {
	Seq    string
	Tag    string
	Values string
}

// Alignment is a multiple sequence alignment: an ordered set of rows of
// equal gapped length plus optional annotation tracks and metadata.
type Alignment struct {
	// Name is the alignment identifier (Stockholm #=GF ID), if any.
	Name string
	// Accession is the alignment accession (Stockholm #=GF AC), if any.
	Accession string
	// Author is the author annotation (Stockholm #=GF AU), if any.
	Author string
	// Description is free-text metadata (Stockholm #=GF DE), if any.
	Description string
	// Rows are the aligned sequences, in file order. Every row has the
	// same gapped length.
	Rows []Sequence
	// ColumnAnnotations are per-column tracks, in file order.
	ColumnAnnotations []ColumnAnnotation
	// ResidueAnnotations are per-residue tracks, in file order.
	ResidueAnnotations []ResidueAnnotation
}

// Kind returns RecordAlignment.
func (a *Alignment) Kind() RecordKind { return RecordAlignment }

// Len returns the number of rows.
func (a *Alignment) Len() int { return len(a.Rows) }

// Columns returns the column count of the alignment.
func (a *Alignment) Columns() int {
	if len(a.Rows) == 0 {
		return 0
	}
	return len(a.Rows[0].Residues)
}

// Cutoffs holds the Pfam-style score cutoffs of a profile. Each pair is
// (sequence score, domain score); the Has flags record whether the
// source file carried the line at all.
type Cutoffs struct {
	Gathering [2]float64
	Trusted   [2]float64
	Noise     [2]float64
	HasGA     bool
	HasTC     bool
	HasNC     bool
}

// EvalueParameters holds the statistical calibration of a profile.
// HMMER3 models carry three (tau, lambda) pairs; HMMER2 models carry a
// single EVD (mu, lambda) pair stored in MSV.
type EvalueParameters struct {
	MSV     [2]float64
	Viterbi [2]float64
	Forward [2]float64
	HasMSV  bool
	HasVit  bool
	HasFwd  bool
}

// Profile is a profile hidden Markov model read from a HMMER2 or HMMER3
// file. Emission and transition parameters are kept exactly as stored
// in the source file: negative log probabilities for HMMER3, integer
// log-odds scores for HMMER2.
type Profile struct {
	// Name is the model name.
	Name string
	// Accession is the model accession, if any.
	Accession string
	// Description is free-text metadata, if any.
	Description string
	// M is the number of match states.
	M int
	// Alphabet is the residue alphabet of the model.
	Alphabet Alphabet
	// Match holds per-state match emissions: rows 1..M, row 0 is the
	// COMPO/null composition when present. Each row has one value per
	// alphabet symbol.
	Match [][]float64
	// Insert holds per-state insert emissions, rows 0..M.
	Insert [][]float64
	// Transitions holds per-state transition parameters, rows 0..M.
	Transitions [][]float64
	// Consensus is the per-state consensus residue line, if present.
	Consensus string
	// Reference is the per-state reference annotation, if present.
	Reference string
	// Cutoffs are the GA/TC/NC score thresholds.
	Cutoffs Cutoffs
	// Evalue holds the statistical calibration parameters.
	Evalue EvalueParameters
}

// Kind returns RecordProfile.
func (p *Profile) Kind() RecordKind { return RecordProfile }

// Len returns the number of match states.
func (p *Profile) Len() int { return p.M }
