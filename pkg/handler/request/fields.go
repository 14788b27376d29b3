package request

import (
	"regexp"
	"strings"
)

type ResponseFormat int

const (
	ResponseFormatJSON ResponseFormat = iota
	ResponseFormatHTML
)

func (f ResponseFormat) String() string {
	switch f {
	case ResponseFormatHTML:
		return "html"
	default:
		return "json"
	}
}

func NewResponseFormat(format string) ResponseFormat {
	switch strings.ToLower(format) {
	case "html", "page":
		return ResponseFormatHTML
	default:
		return ResponseFormatJSON // default to json
	}
}

var kValuePattern = regexp.MustCompile(`^[kK]\d+$`)

// NormalizeCalculator canonicalizes the calculator field of a submission.
// An empty result means auto detection.
func NormalizeCalculator(raw string) string {
	calc := strings.TrimSpace(raw)
	switch strings.ToLower(calc) {
	case "", "auto", "detect", "autodetect":
		return ""
	}
	if kValuePattern.MatchString(calc) {
		return strings.ToUpper(calc)
	}
	return calc
}
