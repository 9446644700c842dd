package lang_test

import (
	"testing"

	. "github.com/K-dizzled/isa-interprerter/internal/lang"
)

func TestParseLine(tt *testing.T) {
	cases := []struct {
		name string
		line string
		want Instruction
	}{
		{"assign const", "x = 1", AssignConst{Dst: RegisterRef{Name: "x"}, Value: 1}},
		{
			"assign operation", "x = y + z",
			AssignOperation{
				Dst: RegisterRef{Name: "x"}, Lhs: RegisterRef{Name: "y"}, Op: Add, Rhs: RegisterRef{Name: "z"},
			},
		},
		{
			"conditional jump", "if x goto done",
			ConditionalJump{Cond: RegisterRef{Name: "x"}, Label: "done"},
		},
		{
			"load", "load SEQ_CST #a x",
			Load{Mode: SEQ_CST, Mem: MemoryRef{Name: "a"}, Dst: RegisterRef{Name: "x"}},
		},
		{
			"store", "store RLX x #a",
			Store{Mode: RLX, Src: RegisterRef{Name: "x"}, Mem: MemoryRef{Name: "a"}},
		},
		{
			"cas", "x := cas ACQ #a y z",
			Cas{
				Dst: RegisterRef{Name: "x"}, Mode: ACQ, Mem: MemoryRef{Name: "a"},
				Expected: RegisterRef{Name: "y"}, Desired: RegisterRef{Name: "z"},
			},
		},
		{
			"fai", "x := fai REL #a y",
			Fai{Dst: RegisterRef{Name: "x"}, Mode: REL, Mem: MemoryRef{Name: "a"}, Incr: RegisterRef{Name: "y"}},
		},
		{"fence", "fence SEQ_CST", Fence{Mode: SEQ_CST}},
	}

	for _, c := range cases {
		tt.Run(c.name, func(tt *testing.T) {
			parsed, err := ParseLine(c.line)
			if err != nil {
				tt.Fatalf("ParseLine(%q): %s", c.line, err)
			}

			if parsed.Instruction != c.want {
				tt.Errorf("ParseLine(%q) = %#v, want %#v", c.line, parsed.Instruction, c.want)
			}
		})
	}
}

func TestParseLineLabel(tt *testing.T) {
	parsed, err := ParseLine("done: x = 1")
	if err != nil {
		tt.Fatalf("ParseLine: %s", err)
	}

	if !parsed.HasLabel || parsed.Label != "done" {
		tt.Errorf("label = (%q, %v), want (\"done\", true)", parsed.Label, parsed.HasLabel)
	}
}

func TestParseLineErrors(tt *testing.T) {
	cases := []struct {
		name string
		line string
	}{
		{"unknown token", "x = 1x"},
		{"incomplete shape", "load SEQ_CST #a"},
	}

	for _, c := range cases {
		tt.Run(c.name, func(tt *testing.T) {
			if _, err := ParseLine(c.line); err == nil {
				tt.Errorf("ParseLine(%q): want error, got nil", c.line)
			}
		})
	}
}

func TestEffectiveMode(tt *testing.T) {
	cases := []struct {
		name  string
		instr Instruction
		want  AccessMode
	}{
		{"relaxed store unchanged", Store{Mode: RLX, Src: RegisterRef{Name: "x"}, Mem: MemoryRef{Name: "a"}}, RLX},
		{"seq_cst store downgrades to release", Store{Mode: SEQ_CST, Src: RegisterRef{Name: "x"}, Mem: MemoryRef{Name: "a"}}, REL},
		{"seq_cst load downgrades to acquire", Load{Mode: SEQ_CST, Mem: MemoryRef{Name: "a"}, Dst: RegisterRef{Name: "x"}}, ACQ},
		{
			"seq_cst cas downgrades to release-acquire",
			Cas{Dst: RegisterRef{Name: "x"}, Mode: SEQ_CST, Mem: MemoryRef{Name: "a"}, Expected: RegisterRef{Name: "y"}, Desired: RegisterRef{Name: "z"}},
			REL_ACQ,
		},
		{"assign const is always relaxed", AssignConst{Dst: RegisterRef{Name: "x"}, Value: 1}, RLX},
	}

	for _, c := range cases {
		tt.Run(c.name, func(tt *testing.T) {
			if got := EffectiveMode(c.instr); got != c.want {
				tt.Errorf("EffectiveMode(%v) = %s, want %s", c.instr, got, c.want)
			}
		})
	}
}
