// Package loader reads program files from disk into the per-thread instruction lists the engines
// consume.
package loader

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/K-dizzled/isa-interprerter/internal/engine"
	"github.com/K-dizzled/isa-interprerter/internal/lang"
)

// Load reads one program per path, in path order, assigning each file's position in paths as its
// thread_id and each retained (non-blank) line's position within the file as its line_index.
// rejectJumps causes Load to fail with a *engine.SemanticError if any parsed instruction is a
// ConditionalJump; the weak-memory engine does not support it.
func Load(paths []string, rejectJumps bool) ([][]lang.LabeledInstruction, error) {
	programs := make([][]lang.LabeledInstruction, len(paths))

	for thread, path := range paths {
		program, err := loadFile(path, thread)
		if err != nil {
			return nil, err
		}

		if rejectJumps {
			if err := rejectConditionalJumps(program); err != nil {
				return nil, err
			}
		}

		programs[thread] = program
	}

	return programs, nil
}

func loadFile(path string, thread int) ([]lang.LabeledInstruction, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("loader: %w", err)
	}
	defer f.Close()

	var program []lang.LabeledInstruction

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}

		parsed, err := lang.ParseLine(line)
		if err != nil {
			return nil, &lang.ParseError{File: path, Line: line, Err: err}
		}

		program = append(program, lang.LabeledInstruction{
			Label:       parsed.Label,
			HasLabel:    parsed.HasLabel,
			Instruction: parsed.Instruction,
			LineIndex:   len(program),
			ThreadID:    thread,
		})
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("loader: %s: %w", path, err)
	}

	return program, nil
}

func rejectConditionalJumps(program []lang.LabeledInstruction) error {
	for _, instr := range program {
		if _, ok := instr.Instruction.(lang.ConditionalJump); ok {
			return &engine.SemanticError{
				ThreadID: instr.ThreadID,
				Reason:   "ConditionalJump is not supported under TSO/PSO",
			}
		}
	}

	return nil
}

// SplitPaths splits a comma-separated path list, trimming surrounding whitespace from each entry,
// matching the CLI's -p flag format.
func SplitPaths(raw string) []string {
	parts := strings.Split(raw, ",")
	paths := make([]string, 0, len(parts))

	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			paths = append(paths, p)
		}
	}

	return paths
}
