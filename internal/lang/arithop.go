package lang

//go:generate go run golang.org/x/tools/cmd/stringer -type ArithOp -output arithop_string.go

// ArithOp is a binary arithmetic operator usable in an AssignOperation instruction.
type ArithOp uint8

const (
	Add ArithOp = iota
	Sub
	Mul
	Div
)

var arithOpTokens = map[string]ArithOp{
	"+": Add,
	"-": Sub,
	"*": Mul,
	"/": Div,
}

// ParseArithOp looks up a source token as an arithmetic operator.
func ParseArithOp(tok string) (ArithOp, bool) {
	op, ok := arithOpTokens[tok]
	return op, ok
}

// Apply evaluates the operator against two non-negative machine words. Division and overflow are
// out of scope: callers are expected not to divide by zero, and overflow wraps per the
// uint64 arithmetic used throughout this package.
func (op ArithOp) Apply(lhs, rhs uint64) uint64 {
	switch op {
	case Add:
		return lhs + rhs
	case Sub:
		return lhs - rhs
	case Mul:
		return lhs * rhs
	case Div:
		return lhs / rhs
	default:
		panic("lang: invalid ArithOp")
	}
}

// Token renders the operator's source syntax, e.g. "+".
func (op ArithOp) Token() string {
	switch op {
	case Add:
		return "+"
	case Sub:
		return "-"
	case Mul:
		return "*"
	case Div:
		return "/"
	default:
		panic("lang: invalid ArithOp")
	}
}
