package reconcile

import (
	"context"
	"fmt"
	"sort"

	"radarrtagger/internal/radarr"
	"radarrtagger/internal/tagging"
)

// TagCreator is the subset of the Radarr API needed to provision tags.
type TagCreator interface {
	CreateTag(ctx context.Context, label, color string) (radarr.Tag, error)
}

// Index maps tag labels to server identifiers for a single cycle.
type Index struct {
	byLabel    map[string]int64
	byID       map[int64]string
	managedIDs map[int64]struct{}
}

// NewIndex builds an index from the tags currently on the server. When a label
// appears more than once the first identifier wins for assignment, but every
// duplicate of a well-known label still counts as managed.
func NewIndex(tags []radarr.Tag) Index {
	idx := Index{
		byLabel:    make(map[string]int64, len(tags)),
		byID:       make(map[int64]string, len(tags)),
		managedIDs: make(map[int64]struct{}, len(tagging.WellKnown())),
	}
	for _, tag := range tags {
		idx.add(tag)
	}
	return idx
}

func (i *Index) add(tag radarr.Tag) {
	i.byID[tag.ID] = tag.Label
	if tagging.IsWellKnown(tag.Label) {
		i.managedIDs[tag.ID] = struct{}{}
	}
	if _, exists := i.byLabel[tag.Label]; !exists {
		i.byLabel[tag.Label] = tag.ID
	}
}

// ID returns the identifier for label.
func (i Index) ID(label string) (int64, bool) {
	id, ok := i.byLabel[label]
	return id, ok
}

// Label returns the label for id.
func (i Index) Label(id int64) (string, bool) {
	label, ok := i.byID[id]
	return label, ok
}

// IsManagedID reports whether id belongs to a well-known tag. Managed tags are
// recomputed from the movie file on every pass.
func (i Index) IsManagedID(id int64) bool {
	_, ok := i.managedIDs[id]
	return ok
}

// ManagedIDs returns the well-known tag identifiers in ascending order.
func (i Index) ManagedIDs() []int64 {
	ids := make([]int64, 0, len(i.managedIDs))
	for id := range i.managedIDs {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(a, b int) bool { return ids[a] < ids[b] })
	return ids
}

// Labels renders ids as labels, falling back to the numeric id for tags the
// index does not know.
func (i Index) Labels(ids []int64) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if label, ok := i.byID[id]; ok {
			out = append(out, label)
			continue
		}
		out = append(out, fmt.Sprintf("#%d", id))
	}
	return out
}

// Provision indexes tags and creates every well-known label that is missing.
// It is not atomic: on failure the tags created so far remain on the server
// and the next cycle picks them up.
func Provision(ctx context.Context, api TagCreator, tags []radarr.Tag) (Index, int, error) {
	idx := NewIndex(tags)
	created := 0
	for _, def := range tagging.WellKnown() {
		if _, ok := idx.ID(def.Label); ok {
			continue
		}
		if err := ctx.Err(); err != nil {
			return idx, created, err
		}
		tag, err := api.CreateTag(ctx, def.Label, def.Color)
		if err != nil {
			return idx, created, fmt.Errorf("provision tag %q: %w", def.Label, err)
		}
		if tag.Label == "" {
			tag.Label = def.Label
		}
		idx.add(tag)
		created++
	}
	return idx, created, nil
}
