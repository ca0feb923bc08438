// Package match provides the pure string utilities used to reconcile noisy
// free-text locations against the canonical reference lists: normalization,
// location parsing and tiered fuzzy scoring. No I/O, no state.
package match

import (
	"regexp"
	"strings"
)

// ParsedLocation is the transient result of ParseLocation. State is empty
// when the raw string carried no recognizable state code.
type ParsedLocation struct {
	State string
	City  string
}

// Score tiers, highest to lowest. MatchThreshold is the acceptance bar a
// best candidate must clear; values below it mean "no match". The ladder is
// heuristic and tuned against the production city list.
const (
	ScoreExact          = 1.0
	ScoreStateCityExact = 0.95
	ScorePrefix         = 0.85
	ScoreCityExact      = 0.80
	ScoreCityExactDiff  = 0.75
	ScoreOverlapHigh    = 0.70
	ScoreOverlapMedium  = 0.55
	ScoreSubstring      = 0.50
	ScoreSharedWord     = 0.30

	// StateBonus is added by callers when both sides agree on the state.
	StateBonus = 0.05

	MatchThreshold = 0.6
)

var (
	parenStateRe = regexp.MustCompile(`^(.*?)\s*\(([A-Za-z]{2})\)\s*$`)
	sepStateRe   = regexp.MustCompile(`^([A-Za-z]{2})\s*[-_]\s*(.+)$`)
	tabStateRe   = regexp.MustCompile(`^([A-Za-z]{2})\t+(.+)$`)
	multiSpaceRe = regexp.MustCompile(`\s+`)
)

// NormalizeForComparison lowercases, maps separator punctuation to spaces,
// strips everything else non-alphanumeric and collapses whitespace. Both
// sides of every fuzzy comparison go through this so hyphenation and case
// differences never cause false negatives. Idempotent.
func NormalizeForComparison(s string) string {
	s = strings.ToLower(s)
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r == '-' || r == '_' || r == '/' || r == '\\':
			b.WriteByte(' ')
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9' || r == ' ':
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(multiSpaceRe.ReplaceAllString(b.String(), " "))
}

// ParseLocation splits a raw location string into (state, city). Recognized
// shapes, in priority order: "City (ST)", "ST-City" / "ST - City" /
// "ST_City", "ST<TAB>City", otherwise the whole string is the city.
func ParseLocation(s string) ParsedLocation {
	s = strings.TrimSpace(s)
	if s == "" {
		return ParsedLocation{}
	}
	if m := parenStateRe.FindStringSubmatch(s); m != nil && strings.TrimSpace(m[1]) != "" {
		return ParsedLocation{State: strings.ToUpper(m[2]), City: cleanCity(m[1])}
	}
	if m := tabStateRe.FindStringSubmatch(s); m != nil {
		return ParsedLocation{State: strings.ToUpper(m[1]), City: cleanCity(m[2])}
	}
	if m := sepStateRe.FindStringSubmatch(s); m != nil {
		return ParsedLocation{State: strings.ToUpper(m[1]), City: cleanCity(m[2])}
	}
	return ParsedLocation{City: cleanCity(s)}
}

func cleanCity(s string) string {
	s = strings.NewReplacer("/", " ", ",", " ", ".", "").Replace(s)
	s = multiSpaceRe.ReplaceAllString(s, " ")
	return strings.ToUpper(strings.TrimSpace(s))
}

// CityMatchScore scores how well a raw location string matches a canonical
// one, on a 0..1 scale. Total: never panics, returns 0 for empty input on
// either side. Symmetry is not guaranteed.
func CityMatchScore(input, canonical string) float64 {
	if strings.TrimSpace(input) == "" || strings.TrimSpace(canonical) == "" {
		return 0
	}

	normIn := NormalizeForComparison(input)
	normCan := NormalizeForComparison(canonical)
	if normIn == "" || normCan == "" {
		return 0
	}
	if normIn == normCan {
		return ScoreExact
	}

	in := ParseLocation(input)
	can := ParseLocation(canonical)
	cityIn := NormalizeForComparison(in.City)
	cityCan := NormalizeForComparison(can.City)
	if cityIn == "" || cityCan == "" {
		return 0
	}

	bothStates := in.State != "" && can.State != ""
	statesAgree := bothStates && in.State == can.State

	if cityIn == cityCan {
		switch {
		case statesAgree:
			return ScoreStateCityExact
		case bothStates: // states present but different
			return ScoreCityExactDiff
		default:
			return ScoreCityExact
		}
	}

	if strings.HasPrefix(normIn, normCan) || strings.HasPrefix(normCan, normIn) {
		return ScorePrefix
	}

	if ratio := tokenOverlap(cityIn, cityCan); ratio >= 0.8 {
		return ScoreOverlapHigh
	} else if ratio >= 0.5 {
		return ScoreOverlapMedium
	}

	if strings.Contains(cityIn, cityCan) || strings.Contains(cityCan, cityIn) {
		return ScoreSubstring
	}

	if sharesWord(cityIn, cityCan) {
		return ScoreSharedWord
	}
	return 0
}

// tokenOverlap compares whitespace-split city tokens. A token pair counts
// full credit on equality and half credit on partial agreement: one token
// containing the other, or a single-typo difference (edit distance 1).
// The ratio is total credit over the larger token count.
func tokenOverlap(a, b string) float64 {
	ta := strings.Fields(a)
	tb := strings.Fields(b)
	if len(ta) == 0 || len(tb) == 0 {
		return 0
	}
	var credit float64
	for _, x := range ta {
		best := 0.0
		for _, y := range tb {
			switch {
			case x == y:
				best = 1.0
			case best < 0.5 && tokensPartial(x, y):
				best = 0.5
			}
			if best == 1.0 {
				break
			}
		}
		credit += best
	}
	denom := len(ta)
	if len(tb) > denom {
		denom = len(tb)
	}
	return credit / float64(denom)
}

func tokensPartial(x, y string) bool {
	if len(x) >= 3 && len(y) >= 3 && (strings.Contains(x, y) || strings.Contains(y, x)) {
		return true
	}
	return withinOneEdit(x, y)
}

// withinOneEdit reports whether b can be produced from a by at most one
// insertion, deletion or substitution. Cheap single-pass check; city tokens
// are short so no full DP is needed.
func withinOneEdit(a, b string) bool {
	la, lb := len(a), len(b)
	if la > lb {
		a, b, la, lb = b, a, lb, la
	}
	if lb-la > 1 {
		return false
	}
	if la < 3 { // too short to call a typo
		return a == b
	}
	i, j, edits := 0, 0, 0
	for i < la && j < lb {
		if a[i] == b[j] {
			i++
			j++
			continue
		}
		edits++
		if edits > 1 {
			return false
		}
		if la == lb {
			i++ // substitution
		}
		j++ // insertion into the shorter string
	}
	return edits+(lb-j)+(la-i) <= 1
}

func sharesWord(a, b string) bool {
	seen := make(map[string]struct{})
	for _, t := range strings.Fields(a) {
		if len(t) >= 3 {
			seen[t] = struct{}{}
		}
	}
	for _, t := range strings.Fields(b) {
		if _, ok := seen[t]; ok {
			return true
		}
	}
	return false
}
