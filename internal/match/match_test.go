package match

import "testing"

func TestNormalizeForComparison(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"TX-PERMIAN BASIN", "tx permian basin"},
		{"North_Little/Rock", "north little rock"},
		{"  St. Louis  ", "st louis"},
		{"O'Fallon (MO)", "ofallon mo"},
		{"", ""},
	}
	for _, c := range cases {
		if got := NormalizeForComparison(c.in); got != c.want {
			t.Fatalf("NormalizeForComparison(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestNormalizeForComparison_Idempotent(t *testing.T) {
	inputs := []string{"TX-PERMIAN BASIN", "Ashville (NC)", "north  little   rock", "St. Louis, MO"}
	for _, s := range inputs {
		once := NormalizeForComparison(s)
		if twice := NormalizeForComparison(once); twice != once {
			t.Fatalf("not idempotent for %q: %q != %q", s, twice, once)
		}
	}
}

func TestParseLocation(t *testing.T) {
	cases := []struct {
		in    string
		state string
		city  string
	}{
		{"Permian Basin (TX)", "TX", "PERMIAN BASIN"},
		{"TX-Permian Basin", "TX", "PERMIAN BASIN"},
		{"TX - Permian Basin", "TX", "PERMIAN BASIN"},
		{"TX_Permian Basin", "TX", "PERMIAN BASIN"},
		{"TX\tPermian Basin", "TX", "PERMIAN BASIN"},
		{"Chicago", "", "CHICAGO"},
		{"St. Louis, MO (MO)", "MO", "ST LOUIS MO"},
		{"", "", ""},
	}
	for _, c := range cases {
		got := ParseLocation(c.in)
		if got.State != c.state || got.City != c.city {
			t.Fatalf("ParseLocation(%q) = %+v, want {%s %s}", c.in, got, c.state, c.city)
		}
	}
}

func TestCityMatchScore_SelfMatchIsMax(t *testing.T) {
	for _, s := range []string{"NC-ASHEVILLE", "Chicago", "TX-PERMIAN BASIN", "Permian Basin (TX)"} {
		if got := CityMatchScore(s, s); got != ScoreExact {
			t.Fatalf("CityMatchScore(%q, %q) = %v, want %v", s, s, got, ScoreExact)
		}
	}
}

func TestCityMatchScore_Tiers(t *testing.T) {
	cases := []struct {
		name    string
		in, can string
		want    float64
	}{
		{"state and city exact", "Asheville (NC)", "NC-ASHEVILLE", ScoreStateCityExact},
		{"full string prefix", "NC-ASHE", "NC-ASHEVILLE", ScorePrefix},
		{"city prefix of canonical", "Chicago", "Chicago Heights Yard", ScorePrefix},
		{"city exact missing state", "Asheville", "NC-ASHEVILLE", ScoreCityExact},
		{"city exact conflicting states", "SC-Asheville", "NC-ASHEVILLE", ScoreCityExactDiff},
		{"high token overlap", "NC-EAST ASHEVILLE LOT", "NC-ASHEVILLE EAST LOT", ScoreOverlapHigh},
		{"typo token half credit", "Ashville (NC)", "NC-ASHEVILLE", ScoreOverlapMedium},
		{"substring containment", "FORT WORTH ALLIANCE", "WORTH", ScoreSubstring},
		{"shared word only", "NORTH SALT LAKE", "SALT FLATS YARD", ScoreSharedWord},
		{"no relation", "Chicago", "Miami", 0},
		{"empty input", "", "NC-ASHEVILLE", 0},
		{"empty canonical", "Chicago", "", 0},
	}
	for _, c := range cases {
		if got := CityMatchScore(c.in, c.can); got != c.want {
			t.Fatalf("%s: CityMatchScore(%q, %q) = %v, want %v", c.name, c.in, c.can, got, c.want)
		}
	}
}

func TestCityMatchScore_MisspellingClearsThresholdWithStateBonus(t *testing.T) {
	// "ASHVILLE" vs "ASHEVILLE" is a single-typo token: half credit puts the
	// overlap ratio at exactly 0.5, and the caller's state bonus lifts the
	// total to the acceptance threshold.
	got := CityMatchScore("Ashville (NC)", "NC-ASHEVILLE")
	if got != ScoreOverlapMedium {
		t.Fatalf("score = %v, want %v", got, ScoreOverlapMedium)
	}
	if got+StateBonus < MatchThreshold {
		t.Fatalf("score %v + state bonus %v below threshold %v", got, StateBonus, MatchThreshold)
	}
}

func TestWithinOneEdit(t *testing.T) {
	cases := []struct {
		a, b string
		want bool
	}{
		{"ashville", "asheville", true},
		{"detroit", "detriot", false}, // transposition is two edits
		{"houston", "houston", true},
		{"dallas", "dalas", true},
		{"abc", "abd", true},
		{"ab", "ba", false}, // too short to call a typo
		{"miami", "chicago", false},
	}
	for _, c := range cases {
		if got := withinOneEdit(c.a, c.b); got != c.want {
			t.Fatalf("withinOneEdit(%q, %q) = %v, want %v", c.a, c.b, got, c.want)
		}
	}
}
