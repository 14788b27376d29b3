package model

import "sort"

// Map coloring. Intensity 1 renders BaseColor, intensity 0 renders White.
var (
	BaseColor  = RGB{R: 60, G: 130, B: 246}
	WhiteColor = RGB{R: 255, G: 255, B: 255}
)

const (
	MinOpacity   = 0.6
	OpacityRange = 0.3

	// Allowed distance of the proportion sum from 1.0.
	DefaultSumTolerance = 0.10

	DefaultGeographyFile = "world_regions.json"
)

// Component legend palette, extended with golden angle hues past its end.
var BASE_PALETTE = []string{
	"#3b82f6", "#10b981", "#f59e0b", "#ef4444", "#8b5cf6", "#06b6d4",
	"#84cc16", "#f97316", "#ec4899", "#6366f1", "#14b8a6", "#eab308",
}

var continentalMapping = map[string]string{
	"European":        "Europe",
	"East_Asian":      "Asia",
	"African":         "Africa",
	"Native_American": "Americas",
	"Oceanian":        "Oceania",
	"Middle_Eastern":  "Middle_East",
	"South_Asian":     "South_Asia",
	"Central_Asian":   "Central_Asia",
	"Siberian":        "Siberia",
	"North_African":   "North_Africa",
	"Mediterranean":   "Mediterranean",
	"Baltic":          "Baltic",
	"Scandinavian":    "Scandinavia",
	"Caucasian":       "Caucasus",
	"Southeast_Asian": "Southeast_Asia",
}

var k36Extra = map[string]string{
	"Amerindian":        "Amerindian",
	"Sub_Saharan":       "Sub_Saharan",
	"West_African":      "West_Africa",
	"East_African":      "East_Africa",
	"Pygmy":             "Central_Africa",
	"San":               "Southern_Africa",
	"Red_Sea":           "Red_Sea",
	"Omotic":            "Horn_Africa",
	"Maghrebi":          "Maghreb",
	"Coptic":            "Egypt",
	"Nubian":            "Nubia",
	"Nilo_Saharan":      "Nilo_Saharan",
	"Hadramaut":         "Arabia",
	"Arabian":           "Arabia",
	"Yemenite_Jewish":   "Yemen",
	"Ethiopian_Jewish":  "Ethiopia",
	"Mizrahi_Jewish":    "Levant",
	"Sephardic_Jewish":  "Iberia",
	"Ashkenazi_Jewish":  "Europe",
	"Caucasus_Jewish":   "Caucasus",
	"Levantine":         "Levant",
	"Arabian_Peninsula": "Arabia",
}

// DefaultModels is the built-in calculator table, in registration order.
func DefaultModels() []ComponentModel {
	return []ComponentModel{
		{
			ID:                     "K2",
			DisplayName:            "K2 - Basic model",
			ExpectedComponentCount: 2,
			GeographyFile:          DefaultGeographyFile,
			RegionMapping:          pick(continentalMapping, "European", "African"),
		},
		{
			ID:                     "K3",
			DisplayName:            "K3 - Simple model",
			ExpectedComponentCount: 3,
			GeographyFile:          DefaultGeographyFile,
			RegionMapping:          pick(continentalMapping, "European", "East_Asian", "African"),
		},
		{
			ID:                     "K12",
			DisplayName:            "K12 - Detailed model",
			ExpectedComponentCount: 12,
			GeographyFile:          DefaultGeographyFile,
			RegionMapping: pick(continentalMapping,
				"European", "East_Asian", "African", "Native_American", "Oceanian", "Middle_Eastern",
				"South_Asian", "Central_Asian", "Siberian", "North_African", "Mediterranean", "Baltic"),
		},
		{
			ID:                     "K15",
			DisplayName:            "K15 - Advanced model",
			ExpectedComponentCount: 15,
			GeographyFile:          DefaultGeographyFile,
			RegionMapping:          pick(continentalMapping, sortedKeys(continentalMapping)...),
		},
		{
			ID:                     "K36",
			DisplayName:            "K36 - Complete model",
			ExpectedComponentCount: 36,
			GeographyFile:          DefaultGeographyFile,
			RegionMapping:          merge(continentalMapping, k36Extra),
		},
	}
}

func pick(src map[string]string, keys ...string) map[string]string {
	out := make(map[string]string, len(keys))
	for _, k := range keys {
		if v, ok := src[k]; ok {
			out[k] = v
		}
	}
	return out
}

func merge(maps ...map[string]string) map[string]string {
	out := make(map[string]string)
	for _, m := range maps {
		for k, v := range m {
			out[k] = v
		}
	}
	return out
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
