package tagging

// Well-known tag labels.
const (
	NegativeScore = "negative_score"
	PositiveScore = "positive_score"
	NoScore       = "no_score"
	MoTong        = "motong"
	UHD           = "4k"
)

// Definition is a well-known label with the colour used when creating it.
type Definition struct {
	Label string
	Color string
}

var wellKnown = []Definition{
	{Label: NegativeScore, Color: "#ff0000"},
	{Label: PositiveScore, Color: "#00ff00"},
	{Label: NoScore, Color: "#808080"},
	{Label: MoTong, Color: "#800080"},
	{Label: UHD, Color: "#0000ff"},
}

// WellKnown returns the tags the tagger requires, in creation order.
func WellKnown() []Definition {
	out := make([]Definition, len(wellKnown))
	copy(out, wellKnown)
	return out
}

// IsWellKnown reports whether label is one of the managed tags.
func IsWellKnown(label string) bool {
	for _, def := range wellKnown {
		if def.Label == label {
			return true
		}
	}
	return false
}
