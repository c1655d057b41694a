// Package tagging classifies movie files into the well-known Radarr tags.
//
// Every rule here is a pure function of the movie file and the configured
// score threshold. Missing data always maps to the "no effect" branch: an
// absent score is no_score and a missing file contributes no markers.
package tagging
