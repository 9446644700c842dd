package lang

import (
	"strconv"
	"strings"
)

// tokenKind classifies a single whitespace-delimited token. It mirrors the source
// language's own closed Command variant rather than Go's type system, since the shapes below are
// matched positionally on a slice of these.
type tokenKind int

const (
	tokRef tokenKind = iota
	tokNumber
	tokArith
	tokMode
	tokEq    // "="
	tokAssign // ":="
	tokLoad
	tokStore
	tokIf
	tokGoto
	tokFence
	tokCas
	tokFai
)

type token struct {
	kind tokenKind
	ref  Reference
	num  uint64
	op   ArithOp
	mode AccessMode
}

var keywordTokens = map[string]tokenKind{
	"=":     tokEq,
	":=":    tokAssign,
	"load":  tokLoad,
	"store": tokStore,
	"if":    tokIf,
	"goto":  tokGoto,
	"fence": tokFence,
	"cas":   tokCas,
	"fai":   tokFai,
}

// classify tokenizes a single source word into its Command shape: arithmetic operators
// and access-mode names and keywords are recognized literally; anything else that doesn't start
// with a digit is a Reference; anything else must be a non-negative integer literal.
func classify(word string) (token, error) {
	if op, ok := ParseArithOp(word); ok {
		return token{kind: tokArith, op: op}, nil
	}

	if mode, ok := ParseAccessMode(word); ok {
		return token{kind: tokMode, mode: mode}, nil
	}

	if kind, ok := keywordTokens[word]; ok {
		return token{kind: kind}, nil
	}

	if len(word) == 0 {
		return token{}, &InvalidCommand{Token: word}
	}

	if word[0] < '0' || word[0] > '9' {
		return token{kind: tokRef, ref: ParseReference(word)}, nil
	}

	n, err := strconv.ParseUint(word, 10, 64)
	if err != nil {
		return token{}, &InvalidCommand{Token: word}
	}

	return token{kind: tokNumber, num: n}, nil
}

// ParsedLine is a line of source translated into its label (if any) and instruction, with no
// line_index or thread_id assigned yet — those are properties of the line's position within a
// specific thread's program, assigned by the loader.
type ParsedLine struct {
	Label       string
	HasLabel    bool
	Instruction Instruction
}

// splitLabel extracts a leading "<name>:" token, if present, and returns the remaining fields.
func splitLabel(fields []string) (label string, hasLabel bool, rest []string) {
	if len(fields) == 0 {
		return "", false, fields
	}

	first := fields[0]

	if strings.HasSuffix(first, ":") {
		return strings.TrimSuffix(first, ":"), true, fields[1:]
	}

	return "", false, fields
}

// ParseLine parses one non-blank line of source into a label and an instruction. It returns
// *InvalidCommand for an unrecognized token and *InvalidInstruction for a token sequence that
// matches no instruction shape.
func ParseLine(line string) (ParsedLine, error) {
	fields := strings.Fields(line)
	label, hasLabel, fields := splitLabel(fields)

	toks := make([]token, len(fields))

	for i, f := range fields {
		tok, err := classify(f)
		if err != nil {
			return ParsedLine{}, err
		}

		toks[i] = tok
	}

	instr, err := parseInstruction(toks)
	if err != nil {
		return ParsedLine{}, err
	}

	return ParsedLine{Label: label, HasLabel: hasLabel, Instruction: instr}, nil
}

// parseInstruction matches a classified token sequence against the known instruction shapes.
func parseInstruction(t []token) (Instruction, error) {
	switch {
	case len(t) == 3 && t[0].kind == tokRef && t[1].kind == tokEq && t[2].kind == tokNumber:
		return AssignConst{Dst: t[0].ref, Value: t[2].num}, nil

	case len(t) == 5 && t[0].kind == tokRef && t[1].kind == tokEq &&
		t[2].kind == tokRef && t[3].kind == tokArith && t[4].kind == tokRef:
		return AssignOperation{Dst: t[0].ref, Lhs: t[2].ref, Op: t[3].op, Rhs: t[4].ref}, nil

	case len(t) == 4 && t[0].kind == tokIf && t[1].kind == tokRef &&
		t[2].kind == tokGoto && t[3].kind == tokRef:
		label, ok := t[3].ref.(RegisterRef)
		if !ok {
			return nil, &InvalidInstruction{Line: renderTokens(t)}
		}

		return ConditionalJump{Cond: t[1].ref, Label: label.Name}, nil

	case len(t) == 4 && t[0].kind == tokLoad && t[1].kind == tokMode &&
		t[2].kind == tokRef && t[3].kind == tokRef:
		return Load{Mode: t[1].mode, Mem: t[2].ref, Dst: t[3].ref}, nil

	case len(t) == 4 && t[0].kind == tokStore && t[1].kind == tokMode &&
		t[2].kind == tokRef && t[3].kind == tokRef:
		return Store{Mode: t[1].mode, Src: t[2].ref, Mem: t[3].ref}, nil

	case len(t) == 7 && t[0].kind == tokRef && t[1].kind == tokAssign && t[2].kind == tokCas &&
		t[3].kind == tokMode && t[4].kind == tokRef && t[5].kind == tokRef && t[6].kind == tokRef:
		return Cas{
			Dst: t[0].ref, Mode: t[3].mode, Mem: t[4].ref, Expected: t[5].ref, Desired: t[6].ref,
		}, nil

	case len(t) == 6 && t[0].kind == tokRef && t[1].kind == tokAssign && t[2].kind == tokFai &&
		t[3].kind == tokMode && t[4].kind == tokRef && t[5].kind == tokRef:
		return Fai{Dst: t[0].ref, Mode: t[3].mode, Mem: t[4].ref, Incr: t[5].ref}, nil

	case len(t) == 2 && t[0].kind == tokFence && t[1].kind == tokMode:
		return Fence{Mode: t[1].mode}, nil

	default:
		return nil, &InvalidInstruction{Line: renderTokens(t)}
	}
}

func renderTokens(t []token) string {
	parts := make([]string, len(t))

	for i, tok := range t {
		switch tok.kind {
		case tokRef:
			parts[i] = tok.ref.String()
		case tokNumber:
			parts[i] = strconv.FormatUint(tok.num, 10)
		case tokArith:
			parts[i] = tok.op.Token()
		case tokMode:
			parts[i] = tok.mode.String()
		default:
			parts[i] = "?"
		}
	}

	return strings.Join(parts, " ")
}
