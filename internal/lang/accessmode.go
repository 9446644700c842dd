package lang

//go:generate go run golang.org/x/tools/cmd/stringer -type AccessMode -output accessmode_string.go

// AccessMode annotates a memory operation with its synchronization strength, ordered weakest to
// strongest: RLX < ACQ/REL < REL_ACQ < SEQ_CST.
type AccessMode uint8

const (
	RLX AccessMode = iota
	ACQ
	REL
	REL_ACQ
	SEQ_CST
)

// accessModeNames maps source tokens to their AccessMode, used by the parser.
var accessModeNames = map[string]AccessMode{
	"RLX":     RLX,
	"ACQ":     ACQ,
	"REL":     REL,
	"REL_ACQ": REL_ACQ,
	"SEQ_CST": SEQ_CST,
}

// ParseAccessMode looks up a source token as an access mode.
func ParseAccessMode(tok string) (AccessMode, bool) {
	m, ok := accessModeNames[tok]
	return m, ok
}
