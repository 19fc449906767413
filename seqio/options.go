package seqio

// Option configures a File at open time.
type Option func(*Options)

// Options configures reader behavior. Options are validated eagerly at
// open; an unrecognized format name or an option that cannot apply to
// the selected format fails construction rather than being ignored.
type Options struct {
	// FormatName selects an explicit format by canonical name or
	// alias, bypassing sniffing. Empty means auto-detect.
	FormatName string
	// Kind restricts detection to formats of one structural kind.
	Kind FormatKind
	// Digital requests digitization of every record into the given
	// alphabet; residues outside its legal set fail the read.
	Digital Alphabet
	// IgnoreGaps strips gap symbols from unaligned sequences instead
	// of failing with ErrUnexpectedGap. Sequence formats only.
	IgnoreGaps bool
}

// WithFormat selects an explicit format by name, bypassing sniffing.
// The name is matched case-insensitively against the canonical format
// names and their aliases; an unrecognized name fails Open with
// ErrUnknownFormat before any byte of the source is consumed.
func WithFormat(name string) Option {
	return func(o *Options) { o.FormatName = name }
}

// WithKind restricts format detection to one structural kind, so a
// caller reading alignments can never have its input sniffed as a
// sequence or profile format.
func WithKind(kind FormatKind) Option {
	return func(o *Options) { o.Kind = kind }
}

// WithDigital requests digitization into the given alphabet. Records
// whose residues fall outside the alphabet's legal set fail with
// ErrIncompatibleAlphabet.
func WithDigital(a Alphabet) Option {
	return func(o *Options) { o.Digital = a }
}

// WithIgnoreGaps strips gap symbols from unaligned sequence records
// instead of failing with ErrUnexpectedGap. It applies to sequence
// formats only; combining it with an alignment or profile format fails
// at open.
func WithIgnoreGaps() Option {
	return func(o *Options) { o.IgnoreGaps = true }
}

// ReadOption configures a single Read call.
type ReadOption func(*readOptions)

type readOptions struct {
	skipInfo     bool
	skipSequence bool
}

// SkipInfo drops name, description, and accession from the record,
// keeping only residue data.
func SkipInfo() ReadOption {
	return func(o *readOptions) { o.skipInfo = true }
}

// SkipSequence drops residue data from the record, keeping only the
// metadata. On an alignment it clears every row and annotation track;
// on a profile it clears the per-state parameter matrices.
func SkipSequence() ReadOption {
	return func(o *readOptions) { o.skipSequence = true }
}
