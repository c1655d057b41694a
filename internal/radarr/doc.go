// Package radarr wraps the subset of the Radarr v3 REST API the tagger needs:
// listing movies and tags, creating tags, reading movie files, and replacing a
// movie record.
//
// Movie values keep the complete server payload so UpdateMovie can send the
// whole object back with only the tag list changed; Radarr's PUT overwrites
// any field the request leaves out. Non-2xx responses surface as *APIError and
// classify against the services error markers.
package radarr
