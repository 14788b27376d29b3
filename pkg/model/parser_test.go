package model

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yumyai/admixmap/logger"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func linesOf(n int) string {
	lines := make([]string, n)
	for i := range lines {
		lines[i] = "Component: 1%"
	}
	return strings.Join(lines, "\n")
}

func TestDetectModel(t *testing.T) {
	reg, err := NewRegistry(
		continentModel("K2T", 2),
		continentModel("K3T", 3),
		continentModel("K3U", 3),
		continentModel("K5T", 5),
	)
	require.NoError(t, err)
	p := NewParser(reg, ParseLenient)

	tests := []struct {
		name    string
		input   string
		want    string
		wantErr string
	}{
		{"UniqueMatch", linesOf(2), "K2T", ""},
		{"UniqueMatchIgnoresBlankLines", "\n" + linesOf(5) + "\n\n", "K5T", ""},
		{"NoMatch", linesOf(4), "", "with 4 components"},
		{"Ambiguous", linesOf(3), "", "K3T, K3U"},
		{"Empty", "", "", "with 0 components"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := p.DetectModel(tt.input)
			if tt.wantErr != "" {
				require.ErrorIs(t, err, ErrModelDetection)
				assert.Contains(t, MessageOf(err), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

// Every built-in model is detectable from its own component count.
func TestDetectModel_DefaultModels(t *testing.T) {
	reg := DefaultRegistry()
	p := NewParser(reg, ParseLenient)

	for _, m := range reg.Models() {
		got, err := p.DetectModel(linesOf(m.ExpectedComponentCount))
		require.NoError(t, err, m.ID)
		assert.Equal(t, m.ID, got)
	}
}

func TestParse_OrderAndConversion(t *testing.T) {
	p := NewParser(DefaultRegistry(), ParseLenient)

	parsed, err := p.Parse("  European: 33.43%\n\nAfrican:12\nEast_Asian:   54.57 %\n")
	require.NoError(t, err)

	// "54.57 %" has a space before the sign and is skipped in lenient mode
	comps := parsed.Components()
	require.Len(t, comps, 2)
	assert.Equal(t, "European", comps[0].Name)
	assert.InDelta(t, 0.3343, comps[0].Proportion, 1e-12)
	assert.Equal(t, "African", comps[1].Name)
	assert.InDelta(t, 0.12, comps[1].Proportion, 1e-12)
}

func TestParse_LenientSkipsMalformedLines(t *testing.T) {
	p := NewParser(DefaultRegistry(), ParseLenient)

	parsed, err := p.Parse("European: 50%\nnot a line\nAfrican: 50%")
	require.NoError(t, err)
	assert.Equal(t, 2, parsed.Len())
}

func TestParse_StrictRejectsMalformedLines(t *testing.T) {
	p := NewParser(DefaultRegistry(), ParseStrict)

	_, err := p.Parse("European: 50%\nnot a line\nAfrican: 50%")
	require.ErrorIs(t, err, ErrFormat)
	assert.Contains(t, MessageOf(err), "Line 2")
}

func TestParse_Duplicates(t *testing.T) {
	input := "European: 40%\nAfrican: 30%\nEuropean: 30%"

	lenient, err := NewParser(DefaultRegistry(), ParseLenient).Parse(input)
	require.NoError(t, err)
	comps := lenient.Components()
	require.Len(t, comps, 2)
	assert.Equal(t, Component{Name: "European", Proportion: 0.3}, comps[0])

	_, err = NewParser(DefaultRegistry(), ParseStrict).Parse(input)
	require.ErrorIs(t, err, ErrFormat)
	assert.Contains(t, MessageOf(err), "more than once")
}

func TestNewParseMode(t *testing.T) {
	mode, ok := NewParseMode("STRICT")
	assert.True(t, ok)
	assert.Equal(t, ParseStrict, mode)

	mode, ok = NewParseMode("")
	assert.True(t, ok)
	assert.Equal(t, ParseLenient, mode)

	_, ok = NewParseMode("loose")
	assert.False(t, ok)
	assert.Equal(t, "strict", ParseStrict.String())
}

func TestParse_UnparsableNumber(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	t.Cleanup(logger.Replace(zap.New(core)))
	huge := "European: 1" + strings.Repeat("0", 400) + "%"
	input := "African: 50%\n" + huge + "\nAsian: 50%"

	parsed, err := NewParser(DefaultRegistry(), ParseLenient).Parse(input)
	require.NoError(t, err)
	assert.Equal(t, 2, parsed.Len())

	skipped := logs.FilterMessage("Skipping malformed line").All()
	require.Len(t, skipped, 1)
	assert.Equal(t, int64(2), skipped[0].ContextMap()["line"])

	_, err = NewParser(DefaultRegistry(), ParseStrict).Parse(input)
	require.ErrorIs(t, err, ErrFormat)
	assert.Contains(t, MessageOf(err), "Line 2 has an invalid number")
}
