// Package services defines the error taxonomy shared by the library walker,
// metadata readers, and the TMDB client.
//
// Sentinel markers distinguish failures that abort the run (filesystem,
// configuration) from failures that skip a single show or season (parse, io,
// network, not-found, response-format). Wrap tags errors with a marker and
// component context so the orchestrator can classify them with errors.Is.
package services
