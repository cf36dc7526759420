package location

import "strings"

// State pairs a lowercase full state name with its two-letter code.
type State struct {
	Name string
	Code string
}

var stateCodes = map[string]string{
	"alabama":        "al",
	"alaska":         "ak",
	"arizona":        "az",
	"arkansas":       "ar",
	"california":     "ca",
	"colorado":       "co",
	"connecticut":    "ct",
	"delaware":       "de",
	"florida":        "fl",
	"georgia":        "ga",
	"hawaii":         "hi",
	"idaho":          "id",
	"illinois":       "il",
	"indiana":        "in",
	"iowa":           "ia",
	"kansas":         "ks",
	"kentucky":       "ky",
	"louisiana":      "la",
	"maine":          "me",
	"maryland":       "md",
	"massachusetts":  "ma",
	"michigan":       "mi",
	"minnesota":      "mn",
	"mississippi":    "ms",
	"missouri":       "mo",
	"montana":        "mt",
	"nebraska":       "ne",
	"nevada":         "nv",
	"new hampshire":  "nh",
	"new jersey":     "nj",
	"new mexico":     "nm",
	"new york":       "ny",
	"north carolina": "nc",
	"north dakota":   "nd",
	"ohio":           "oh",
	"oklahoma":       "ok",
	"oregon":         "or",
	"pennsylvania":   "pa",
	"rhode island":   "ri",
	"south carolina": "sc",
	"south dakota":   "sd",
	"tennessee":      "tn",
	"texas":          "tx",
	"utah":           "ut",
	"vermont":        "vt",
	"virginia":       "va",
	"washington":     "wa",
	"west virginia":  "wv",
	"wisconsin":      "wi",
	"wyoming":        "wy",
}

// codeNames is the reverse index of stateCodes.
var codeNames = func() map[string]string {
	out := make(map[string]string, len(stateCodes))
	for name, code := range stateCodes {
		out[code] = name
	}
	return out
}()

func normalizeState(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// ToAbbreviation maps a full state name to its two-letter code. Unknown input
// is returned normalized (trimmed, lowercased) instead of failing.
func ToAbbreviation(stateName string) string {
	key := normalizeState(stateName)
	if code, ok := stateCodes[key]; ok {
		return code
	}
	return key
}

// ToFullName maps a two-letter code to the lowercase full state name. Input
// that is already a full name, or is unknown, is returned normalized.
func ToFullName(state string) string {
	key := normalizeState(state)
	if name, ok := codeNames[key]; ok {
		return name
	}
	return key
}

// LookupState resolves a state given either its name or its code and reports
// whether it is one of the fifty states.
func LookupState(state string) (State, bool) {
	key := normalizeState(state)
	if name, ok := codeNames[key]; ok {
		return State{Name: name, Code: key}, true
	}
	if code, ok := stateCodes[key]; ok {
		return State{Name: key, Code: code}, true
	}
	// slug form, e.g. "new-york"
	if code, ok := stateCodes[strings.ReplaceAll(key, "-", " ")]; ok {
		return State{Name: strings.ReplaceAll(key, "-", " "), Code: code}, true
	}
	return State{}, false
}

// States returns the full table. Callers own the returned slice.
func States() []State {
	out := make([]State, 0, len(stateCodes))
	for name, code := range stateCodes {
		out = append(out, State{Name: name, Code: code})
	}
	return out
}
