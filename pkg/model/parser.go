package model

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/yumyai/admixmap/logger"
	"go.uber.org/zap"
)

type ParseMode int

const (
	// Malformed lines are skipped.
	ParseLenient ParseMode = iota
	// Any malformed line or repeated name fails the parse.
	ParseStrict
)

func (m ParseMode) String() string {
	switch m {
	case ParseStrict:
		return "strict"
	default:
		return "lenient"
	}
}

// NewParseMode maps a config value to a mode. ok is false for unknown values.
func NewParseMode(mode string) (ParseMode, bool) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "", "lenient":
		return ParseLenient, true
	case "strict":
		return ParseStrict, true
	default:
		return ParseLenient, false
	}
}

// Looser than formatPattern: any name up to the first colon.
var linePattern = regexp.MustCompile(`^(.*?):\s*(\d+(?:\.\d+)?)%?$`)

type Parser struct {
	Registry *Registry
	Mode     ParseMode
}

func NewParser(reg *Registry, mode ParseMode) *Parser {
	return &Parser{Registry: reg, Mode: mode}
}

// DetectModel picks the unique model whose component count equals the
// number of non-blank lines. Ties are an error, not a registration-order pick.
func (p *Parser) DetectModel(raw string) (string, error) {
	count := len(nonBlankLines(raw))
	candidates := p.Registry.MatchCount(count)

	switch len(candidates) {
	case 1:
		return candidates[0], nil
	case 0:
		return "", newError(KindModelDetection,
			"Could not detect a model with %d components. Check the data or the model configuration.", count)
	default:
		return "", newError(KindModelDetection,
			"%d components match several models (%s). Select the calculator explicitly.",
			count, strings.Join(candidates, ", "))
	}
}

// Parse extracts component proportions, converting percentages to fractions.
// Components keep input line order.
func (p *Parser) Parse(raw string) (*ParsedInput, error) {
	parsed := NewParsedInput()

	lineNo := 0
	for _, line := range strings.Split(raw, "\n") {
		lineNo++
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}

		match := linePattern.FindStringSubmatch(trimmed)
		if match == nil {
			if p.Mode == ParseStrict {
				return nil, newError(KindFormat, "Line %d is not in the 'Component: Percentage%%' format: %q", lineNo, trimmed)
			}
			logger.Debug("Skipping malformed line", zap.Int("line", lineNo), zap.String("content", trimmed))
			continue
		}

		name := strings.TrimSpace(match[1])
		value, err := strconv.ParseFloat(match[2], 64)
		if err != nil {
			if p.Mode == ParseStrict {
				return nil, wrapError(err, KindFormat, "Line %d has an invalid number: %q", lineNo, match[2])
			}
			logger.Debug("Skipping malformed line", zap.Int("line", lineNo), zap.String("content", trimmed), zap.Error(err))
			continue
		}

		if !parsed.Set(name, value/100.0) {
			if p.Mode == ParseStrict {
				return nil, newError(KindFormat, "Component '%s' appears more than once (line %d).", name, lineNo)
			}
			logger.Debug("Duplicate component overwritten", zap.String("component", name), zap.Int("line", lineNo))
		}
	}

	return parsed, nil
}
