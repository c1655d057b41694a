package tagging

import (
	"reflect"
	"testing"

	"radarrtagger/internal/radarr"
)

func intPtr(v int) *int { return &v }

func TestScoreTierNilIsNoScore(t *testing.T) {
	for _, threshold := range []int{-10, 0, 1, 100, 5000} {
		if got := ScoreTier(nil, threshold); got != NoScore {
			t.Fatalf("threshold %d: expected %q, got %q", threshold, NoScore, got)
		}
	}
}

func TestScoreTierRanges(t *testing.T) {
	const threshold = 100
	for s := -500; s < 0; s += 7 {
		if got := ScoreTier(intPtr(s), threshold); got != NegativeScore {
			t.Fatalf("score %d: expected negative, got %q", s, got)
		}
	}
	for s := 0; s <= threshold; s++ {
		if got := ScoreTier(intPtr(s), threshold); got != NoScore {
			t.Fatalf("score %d: expected no_score, got %q", s, got)
		}
	}
	for s := threshold + 1; s < threshold+500; s += 11 {
		if got := ScoreTier(intPtr(s), threshold); got != PositiveScore {
			t.Fatalf("score %d: expected positive, got %q", s, got)
		}
	}
}

func TestScoreTierBoundaries(t *testing.T) {
	tests := []struct {
		name      string
		score     int
		threshold int
		want      string
	}{
		{name: "at threshold", score: 100, threshold: 100, want: NoScore},
		{name: "above threshold", score: 101, threshold: 100, want: PositiveScore},
		{name: "zero", score: 0, threshold: 100, want: NoScore},
		{name: "minus one", score: -1, threshold: 100, want: NegativeScore},
		{name: "zero threshold", score: 1, threshold: 0, want: PositiveScore},
		{name: "scenario 150", score: 150, threshold: 100, want: PositiveScore},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := ScoreTier(intPtr(tc.score), tc.threshold); got != tc.want {
				t.Fatalf("ScoreTier(%d, %d) = %q, want %q", tc.score, tc.threshold, got, tc.want)
			}
		})
	}
}

func TestAuxiliaryTags(t *testing.T) {
	withQuality := func(group string, resolution int) *radarr.MovieFile {
		file := &radarr.MovieFile{ReleaseGroup: group}
		file.Quality.Quality.Resolution = resolution
		return file
	}

	tests := []struct {
		name string
		file *radarr.MovieFile
		want []string
	}{
		{name: "nil file", file: nil, want: nil},
		{name: "nothing", file: withQuality("FraMeSToR", 1080), want: nil},
		{name: "mixed case group", file: withQuality("MoTong", 1080), want: []string{MoTong}},
		{name: "upper case group", file: withQuality("MOTONG", 720), want: []string{MoTong}},
		{name: "padded group", file: withQuality(" motong ", 0), want: nil},
		{name: "group prefix only", file: withQuality("MoTongHD", 2160), want: []string{UHD}},
		{name: "uhd only", file: withQuality("", 2160), want: []string{UHD}},
		{name: "both", file: withQuality("MoTong", 2160), want: []string{MoTong, UHD}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := AuxiliaryTags(tc.file)
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("AuxiliaryTags = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestLabels(t *testing.T) {
	file := &radarr.MovieFile{CustomFormatScore: intPtr(150), ReleaseGroup: "MoTong"}
	file.Quality.Quality.Resolution = 2160

	got := Labels(file, 100)
	want := []string{PositiveScore, MoTong, UHD}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Labels = %v, want %v", got, want)
	}

	if got := Labels(nil, 100); !reflect.DeepEqual(got, []string{NoScore}) {
		t.Fatalf("Labels(nil) = %v", got)
	}
}

func TestWellKnownCatalog(t *testing.T) {
	defs := WellKnown()
	if len(defs) != 5 {
		t.Fatalf("expected 5 well-known tags, got %d", len(defs))
	}
	colors := map[string]string{}
	for _, def := range defs {
		colors[def.Label] = def.Color
		if !IsWellKnown(def.Label) {
			t.Fatalf("IsWellKnown(%q) = false", def.Label)
		}
	}
	if colors[UHD] != "#0000ff" || colors[NegativeScore] != "#ff0000" {
		t.Fatalf("unexpected colours: %v", colors)
	}

	defs[0].Label = "mutated"
	if WellKnown()[0].Label != NegativeScore {
		t.Fatal("WellKnown must return a copy")
	}

	if IsWellKnown("MoTong") || IsWellKnown("custom") {
		t.Fatal("labels outside the catalog must not be managed")
	}
}
