// Package reconcile runs the tag reconciliation cycle against Radarr.
//
// A cycle lists every movie and tag, provisions the well-known tags that are
// missing, and then walks the movies sequentially. For each movie the desired
// tag set is the current set with stale score tiers removed, plus the tier
// and markers derived from its file. Movies whose set changed are written
// back with a full-replace update.
//
// Failures while listing or provisioning abort the cycle and are returned to
// the caller. A movie file that cannot be fetched only downgrades that movie
// to no_score without markers, and a rejected update is counted and skipped.
package reconcile
