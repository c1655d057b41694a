package radarr

import (
	"encoding/json"
	"fmt"
)

// Movie is a Radarr movie record. Fields outside the typed subset are kept
// verbatim so the record can be written back without losing data.
type Movie struct {
	ID          int64
	Title       string
	MovieFileID int64
	Tags        []int64

	raw map[string]json.RawMessage
}

type movieFields struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	MovieFileID int64   `json:"movieFileId"`
	Tags        []int64 `json:"tags"`
}

// HasFile reports whether the movie references a downloaded file.
func (m Movie) HasFile() bool {
	return m.MovieFileID > 0
}

// WithTags returns a copy of the movie carrying the supplied tag list. The
// original payload is shared read-only; only the tag list differs.
func (m Movie) WithTags(tags []int64) Movie {
	out := m
	out.Tags = append([]int64(nil), tags...)
	return out
}

// Field returns the raw JSON value of a payload key.
func (m Movie) Field(key string) (json.RawMessage, bool) {
	value, ok := m.raw[key]
	return value, ok
}

// UnmarshalJSON decodes the typed fields and retains the full payload.
func (m *Movie) UnmarshalJSON(data []byte) error {
	var fields movieFields
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*m = Movie{
		ID:          fields.ID,
		Title:       fields.Title,
		MovieFileID: fields.MovieFileID,
		Tags:        fields.Tags,
		raw:         raw,
	}
	return nil
}

// MarshalJSON re-emits the original payload with the current tag list.
func (m Movie) MarshalJSON() ([]byte, error) {
	out := make(map[string]json.RawMessage, len(m.raw)+4)
	for k, v := range m.raw {
		out[k] = v
	}
	set := func(key string, value any) error {
		encoded, err := json.Marshal(value)
		if err != nil {
			return fmt.Errorf("encode movie %s: %w", key, err)
		}
		out[key] = encoded
		return nil
	}
	if m.raw == nil {
		if err := set("id", m.ID); err != nil {
			return nil, err
		}
		if err := set("title", m.Title); err != nil {
			return nil, err
		}
		if err := set("movieFileId", m.MovieFileID); err != nil {
			return nil, err
		}
	}
	tags := m.Tags
	if tags == nil {
		tags = []int64{}
	}
	if err := set("tags", tags); err != nil {
		return nil, err
	}
	return json.Marshal(out)
}

// Tag is a Radarr tag definition.
type Tag struct {
	ID    int64  `json:"id"`
	Label string `json:"label"`
	Color string `json:"color,omitempty"`
}

// MovieFile carries the quality details the classifier reads.
type MovieFile struct {
	ID                int64       `json:"id"`
	MovieID           int64       `json:"movieId"`
	RelativePath      string      `json:"relativePath,omitempty"`
	CustomFormatScore *int        `json:"customFormatScore"`
	ReleaseGroup      string      `json:"releaseGroup"`
	Quality           FileQuality `json:"quality"`
}

// FileQuality mirrors Radarr's nested quality model.
type FileQuality struct {
	Quality QualityDefinition `json:"quality"`
}

// QualityDefinition names a quality and its vertical resolution.
type QualityDefinition struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	Source     string `json:"source,omitempty"`
	Resolution int    `json:"resolution"`
}

// Resolution returns the vertical resolution of the file, or 0 when unknown.
func (f MovieFile) Resolution() int {
	return f.Quality.Quality.Resolution
}
