// Package library locates show and season metadata files in a media library
// tree and exposes them as typed records.
//
// A show is any directory holding tvshow.nfo; its seasons are the
// subdirectories holding season.nfo. Directories without the well-known
// filenames are skipped silently, while unreadable directories abort the
// whole scan.
package library
