package extract

import (
	"regexp"
	"strings"
)

type targetKind int

const (
	// targetSingle: one concrete framework declared; in-process result is used.
	targetSingle targetKind = iota
	// targetNone: nothing declared; in-process result is used with an empty
	// framework field.
	targetNone
	// targetMulti: a framework list was declared and one concrete candidate
	// was selected for out-of-process evaluation.
	targetMulti
	// targetUnselectable: a list was declared but no candidate is concrete;
	// the project is skipped.
	targetUnselectable
)

// targetOutcome is the multi-target decision, modeled as an explicit branch
// rather than null-checked strings.
type targetOutcome struct {
	kind     targetKind
	selected string
	declared []string
}

// concreteFramework matches a platform prefix followed by a dotted version,
// e.g. net8.0 or netstandard2.0. Undotted monikers like net472 and unexpanded
// placeholders do not qualify for fallback evaluation.
var concreteFramework = regexp.MustCompile(`^[A-Za-z]+[0-9]+\.[0-9]+`)

// classifyTargets inspects the single- and list-form framework properties.
// The list form takes the first candidate matching the concrete pattern.
func classifyTargets(single, list string) targetOutcome {
	if single != "" {
		return targetOutcome{kind: targetSingle, selected: single}
	}
	declared := splitFrameworks(list)
	if len(declared) == 0 {
		return targetOutcome{kind: targetNone}
	}
	for _, tfm := range declared {
		if concreteFramework.MatchString(tfm) {
			return targetOutcome{kind: targetMulti, selected: tfm, declared: declared}
		}
	}
	return targetOutcome{kind: targetUnselectable, declared: declared}
}

func splitFrameworks(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ";") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
