package reconcile

import (
	"fmt"

	"radarrtagger/internal/radarr"
	"radarrtagger/internal/services"
	"radarrtagger/internal/tagging"
)

// Desired computes the tag set a movie should carry. Current identifiers are
// kept in order except well-known ones; the tier and any markers for file are
// then appended without duplicates. A nil file classifies as no_score with no
// markers, so stale markers are dropped when the file cannot be read.
func Desired(movie radarr.Movie, file *radarr.MovieFile, idx Index, threshold int) ([]int64, error) {
	desired := make([]int64, 0, len(movie.Tags)+3)
	seen := make(map[int64]struct{}, len(movie.Tags)+3)
	push := func(id int64) {
		if _, dup := seen[id]; dup {
			return
		}
		seen[id] = struct{}{}
		desired = append(desired, id)
	}

	for _, id := range movie.Tags {
		if idx.IsManagedID(id) {
			continue
		}
		push(id)
	}
	for _, label := range tagging.Labels(file, threshold) {
		id, ok := idx.ID(label)
		if !ok {
			return nil, services.Wrap(services.ErrValidation, "reconcile", "desired tags",
				fmt.Sprintf("tag %q not provisioned", label), nil)
		}
		push(id)
	}
	return desired, nil
}

// SameSet reports whether a and b contain the same identifiers, ignoring order
// and duplicates.
func SameSet(a, b []int64) bool {
	left := make(map[int64]struct{}, len(a))
	for _, id := range a {
		left[id] = struct{}{}
	}
	right := make(map[int64]struct{}, len(b))
	for _, id := range b {
		if _, ok := left[id]; !ok {
			return false
		}
		right[id] = struct{}{}
	}
	return len(left) == len(right)
}

// diff returns identifiers added to and removed from before.
func diff(before, after []int64) (added, removed []int64) {
	inBefore := make(map[int64]struct{}, len(before))
	for _, id := range before {
		inBefore[id] = struct{}{}
	}
	inAfter := make(map[int64]struct{}, len(after))
	for _, id := range after {
		inAfter[id] = struct{}{}
		if _, ok := inBefore[id]; !ok {
			added = append(added, id)
		}
	}
	for _, id := range before {
		if _, ok := inAfter[id]; !ok {
			removed = append(removed, id)
			inAfter[id] = struct{}{}
		}
	}
	return added, removed
}
