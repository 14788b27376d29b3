package model

// regionTotals sums component proportions per mapped region, in input order.
// Components without a mapping are left out.
func regionTotals(parsed *ParsedInput, m *ComponentModel) map[string]float64 {
	totals := make(map[string]float64)
	for _, c := range parsed.Components() {
		if region, ok := m.RegionOf(c.Name); ok {
			totals[region] += c.Proportion
		}
	}
	return totals
}

// Aggregate writes each region's summed proportion into fc and returns it.
// fc must be a per-request copy, such as one from GeographyStore.Template.
func Aggregate(parsed *ParsedInput, m *ComponentModel, fc *FeatureCollection) *FeatureCollection {
	totals := regionTotals(parsed, m)
	for _, f := range fc.Features {
		f.Properties[PropTotalProportion] = totals[f.Region()]
	}
	return fc
}
