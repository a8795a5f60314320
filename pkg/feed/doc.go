// Package feed keeps a local copy of an article listing and reconciles it
// against the server as the user reacts.
//
// Reactions (like, dislike, block) are toggles applied to the local copy
// immediately, before the server call resolves; the server's fresh article
// replaces the optimistic state on success, and a pre-mutation snapshot is
// restored on failure. Rapid repeated reactions on the same article are
// last-intent-wins: each dispatch takes a per-article sequence token and a
// resolution whose token is no longer current is discarded.
//
// A Feed may be used from multiple goroutines. Close it when the view owning
// it goes away; any still-outstanding resolutions are then dropped.
package feed
