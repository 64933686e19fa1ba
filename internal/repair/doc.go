// Package repair drives a single pass over the library: every season of
// every show is compared against TMDB's canonical season name and rewritten
// when it differs.
//
// Per-item failures (unparsable metadata, unknown shows, network trouble)
// are logged and skipped; only filesystem and configuration errors abort the
// run. Processing is strictly sequential and holds no state across shows.
package repair
