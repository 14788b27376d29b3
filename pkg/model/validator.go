package model

import (
	"math"
	"regexp"
	"strings"
)

// A proportion line: name, colon, non-negative decimal, optional percent sign.
// Names are letters, spaces, parentheses, hyphens and underscores.
var formatPattern = regexp.MustCompile(`^[\p{L}_ \t()\-]+:\s*\d+(?:\.\d+)?%?$`)

// floating point slack for the sum check
const sumEpsilon = 1e-9

type ConsistencyOptions struct {
	// Maximum distance of the proportion sum from 1.0. Negative disables the check.
	SumTolerance float64
}

func DefaultConsistencyOptions() ConsistencyOptions {
	return ConsistencyOptions{SumTolerance: DefaultSumTolerance}
}

// nonBlankLines splits raw text into trimmed, non-empty lines.
func nonBlankLines(raw string) []string {
	var lines []string
	for _, line := range strings.Split(raw, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed != "" {
			lines = append(lines, trimmed)
		}
	}
	return lines
}

// ValidateFormat is a purely syntactic check of the submitted text.
func ValidateFormat(raw string) bool {
	lines := nonBlankLines(raw)
	if len(lines) == 0 {
		return false
	}
	for _, line := range lines {
		if !formatPattern.MatchString(line) {
			return false
		}
	}
	return true
}

// ValidateConsistency checks parsed data against the model it was matched to.
// The count check runs first so a short submission is reported as such.
func ValidateConsistency(parsed *ParsedInput, m *ComponentModel, opts ConsistencyOptions) error {
	if parsed.Len() != m.ExpectedComponentCount {
		return newError(KindInconsistentData,
			"Invalid data for model %s: expected %d components but found %d.",
			m.DisplayName, m.ExpectedComponentCount, parsed.Len())
	}

	for _, c := range parsed.Components() {
		if strings.TrimSpace(c.Name) == "" {
			return newError(KindInconsistentData, "A component name is empty.")
		}
		if c.Proportion < 0 || c.Proportion > 1 || math.IsNaN(c.Proportion) {
			return newError(KindInconsistentData,
				"Component '%s' has proportion %.2f%%, which is outside 0%% to 100%%.",
				c.Name, c.Proportion*100)
		}
	}

	if m.StrictNames {
		for _, c := range parsed.Components() {
			if _, ok := m.RegionOf(c.Name); !ok {
				return newError(KindInconsistentData,
					"Unknown component '%s' for model %s.", c.Name, m.DisplayName)
			}
		}
	}

	if opts.SumTolerance >= 0 {
		total := parsed.Sum()
		if math.Abs(total-1.0) > opts.SumTolerance+sumEpsilon {
			return newError(KindInconsistentData,
				"Proportions must add up to 100%%. Current total: %.1f%%.", total*100)
		}
	}

	return nil
}
