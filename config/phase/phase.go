// Package phase defines the closed set of protocol-upgrade generations that
// drive Engine API version selection and state-transition rule choice.
package phase

// Phase identifies a protocol upgrade generation. The set is closed: adding
// a new value must be accompanied by updates to every dispatch table that
// switches on Phase, and to Count below. AssertCardinality exists to make
// that omission loud instead of silent.
type Phase int

const (
	Phase0 Phase = iota
	Altair
	Bellatrix
	Capella
	Deneb

	// Count is the number of known phases. Keep in sync with the const
	// block above; AssertCardinality fails fast if someone forgets.
	Count
)

func (p Phase) String() string {
	switch p {
	case Phase0:
		return "phase0"
	case Altair:
		return "altair"
	case Bellatrix:
		return "bellatrix"
	case Capella:
		return "capella"
	case Deneb:
		return "deneb"
	default:
		return "unknown"
	}
}

// AssertCardinality panics if Count no longer matches the number of named
// phases above. Dispatch tables that switch exhaustively over Phase should
// call this from an init() or a test, so that adding a phase without
// updating every dispatch table fails loudly rather than silently falling
// through a default case.
func AssertCardinality(want int) {
	if int(Count) != want {
		panic("phase: cardinality assertion failed, a phase was added or removed without updating dispatch tables")
	}
}
