// Package tmdb provides the minimal TMDB API client used to look up
// canonical season names.
//
// Requests carry the operator's read access token as a bearer header. The
// client distinguishes unknown shows/seasons (not found) from transport
// failures and from schema drift in otherwise successful responses, so the
// caller can decide what to skip and what to abort. Options allow tests to
// supply custom HTTP clients without modifying production code.
package tmdb
