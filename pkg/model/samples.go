// Multi-sample admixture tables, one individual per line:
//
//	NA12878 0.62 0.30 0.08
//	HG00096 0.55 0.35 0.10

package model

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

type Sample struct {
	Individual  string    `json:"individual"`
	Proportions []float64 `json:"proportions"`
}

type SampleSet struct {
	ComponentCount int
	Samples        []Sample
}

// ParseSamples reads a whitespace separated table of fractions. The first
// data line fixes the column count; lines with a single field are skipped.
func ParseSamples(raw string) (*SampleSet, error) {
	set := &SampleSet{}

	lineNo := 0
	for _, line := range strings.Split(raw, "\n") {
		lineNo++
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}

		values := make([]float64, len(fields)-1)
		for i, field := range fields[1:] {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v < 0 || v > 1 {
				return nil, newError(KindFormat, "Line %d: value %q is not a proportion between 0 and 1.", lineNo, field)
			}
			values[i] = v
		}

		if set.ComponentCount == 0 {
			set.ComponentCount = len(values)
		} else if len(values) != set.ComponentCount {
			return nil, newError(KindFormat, "Line %d has %d components, expected %d.", lineNo, len(values), set.ComponentCount)
		}

		set.Samples = append(set.Samples, Sample{Individual: fields[0], Proportions: values})
	}

	if len(set.Samples) == 0 {
		return nil, newError(KindFormat, "No samples found. Use one 'individual p1 p2 ...' row per line.")
	}
	return set, nil
}

type SampleDetail struct {
	Individual     string  `json:"individual"`
	Dominant       string  `json:"dominant"`
	DominantIndex  int     `json:"dominantIndex"`
	DominantShare  float64 `json:"dominantShare"`
	DiversityIndex float64 `json:"diversityIndex"`
}

type SampleSummary struct {
	Individuals    int            `json:"individuals"`
	ComponentCount int            `json:"componentCount"`
	Model          string         `json:"model"`
	Averages       []Component    `json:"averages"`
	Samples        []SampleDetail `json:"samples"`
	Palette        []string       `json:"palette"`
}

func componentLabel(i int) string {
	return fmt.Sprintf("C%d", i+1)
}

// SummarizeSamples averages every component across individuals.
func SummarizeSamples(set *SampleSet) SampleSummary {
	k := set.ComponentCount
	sums := make([]float64, k)
	summary := SampleSummary{
		Individuals:    len(set.Samples),
		ComponentCount: k,
		Model:          fmt.Sprintf("K%d", k),
		Averages:       make([]Component, k),
		Samples:        make([]SampleDetail, 0, len(set.Samples)),
		Palette:        Palette(k),
	}

	for _, s := range set.Samples {
		dominant := 0
		for i, p := range s.Proportions {
			sums[i] += p
			if p > s.Proportions[dominant] {
				dominant = i
			}
		}
		summary.Samples = append(summary.Samples, SampleDetail{
			Individual:     s.Individual,
			Dominant:       componentLabel(dominant),
			DominantIndex:  dominant,
			DominantShare:  s.Proportions[dominant],
			DiversityIndex: SimpsonDiversity(s.Proportions),
		})
	}

	for i, sum := range sums {
		summary.Averages[i] = Component{
			Name:       componentLabel(i),
			Proportion: roundTo(sum/float64(len(set.Samples)), 3),
		}
	}

	return summary
}
