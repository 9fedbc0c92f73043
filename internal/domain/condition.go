package domain

import "strings"

// ConditionUnknown is the sentinel for unrecognized or empty weather
// condition text. Rows carrying it are removed by the transformer, after
// standardization has had the chance to collapse synonyms into it.
const ConditionUnknown = "Unknown"

// conditionSynonyms maps lower-cased raw condition text to its canonical
// token. Spellings observed in real exports collapse to one value so that
// frequency counts and the Unknown filter see a single form.
var conditionSynonyms = map[string]string{
	"sunny":            "Sunny",
	"clear":            "Sunny",
	"fine":             "Sunny",
	"cloudy":           "Cloudy",
	"overcast":         "Cloudy",
	"clouds":           "Cloudy",
	"partly cloudy":    "Partly Cloudy",
	"partially cloudy": "Partly Cloudy",
	"partly sunny":     "Partly Cloudy",
	"rain":             "Rainy",
	"rainy":            "Rainy",
	"drizzle":          "Rainy",
	"showers":          "Rainy",
	"snow":             "Snowy",
	"snowy":            "Snowy",
	"sleet":            "Snowy",
	"storm":            "Stormy",
	"stormy":           "Stormy",
	"thunderstorm":     "Stormy",
	"thunderstorms":    "Stormy",
	"fog":              "Foggy",
	"foggy":            "Foggy",
	"mist":             "Foggy",
	"misty":            "Foggy",
	"haze":             "Foggy",
	"wind":             "Windy",
	"windy":            "Windy",
	"breezy":           "Windy",
}

// CanonicalCondition standardizes raw weather condition text: trims
// whitespace, folds case, and collapses synonyms into the canonical token
// set. Empty or unrecognized input becomes [ConditionUnknown].
func CanonicalCondition(raw string) string {
	key := strings.ToLower(strings.TrimSpace(raw))
	if key == "" {
		return ConditionUnknown
	}
	if canonical, ok := conditionSynonyms[key]; ok {
		return canonical
	}
	return ConditionUnknown
}
