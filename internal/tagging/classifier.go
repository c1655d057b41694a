package tagging

import (
	"golang.org/x/text/cases"

	"radarrtagger/internal/radarr"
)

const (
	releaseGroupMarker = "motong"
	uhdResolution      = 2160
)

var folder = cases.Fold()

// ScoreTier maps a custom format score onto a tier. Scores between zero and
// the threshold inclusive carry no signal.
func ScoreTier(score *int, threshold int) string {
	switch {
	case score == nil:
		return NoScore
	case *score < 0:
		return NegativeScore
	case *score > threshold:
		return PositiveScore
	default:
		return NoScore
	}
}

// FileScore returns the file's custom format score, or nil when file is nil.
func FileScore(file *radarr.MovieFile) *int {
	if file == nil {
		return nil
	}
	return file.CustomFormatScore
}

// AuxiliaryTags returns the markers that apply to file, each independent of
// the others. A nil file yields none.
func AuxiliaryTags(file *radarr.MovieFile) []string {
	if file == nil {
		return nil
	}
	var labels []string
	if isReleaseGroupMatch(file.ReleaseGroup) {
		labels = append(labels, MoTong)
	}
	if file.Resolution() == uhdResolution {
		labels = append(labels, UHD)
	}
	return labels
}

// isReleaseGroupMatch is an exact comparison under case folding; surrounding
// whitespace does not match.
func isReleaseGroupMatch(group string) bool {
	if group == "" {
		return false
	}
	return folder.String(group) == releaseGroupMarker
}

// Labels returns the score tier followed by the auxiliary markers for file.
func Labels(file *radarr.MovieFile, threshold int) []string {
	labels := []string{ScoreTier(FileScore(file), threshold)}
	return append(labels, AuxiliaryTags(file)...)
}
