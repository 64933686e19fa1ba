// Package logging builds the slog loggers used across seasonfix.
//
// Two formats are supported: a compact console handler for interactive runs
// and a JSON handler for machine consumption. Warnings carry enough
// structure (path, reason) that the run summary can be reconstructed from
// the log alone. The "component" attribute is pulled into the message
// prefix by the console handler.
package logging
