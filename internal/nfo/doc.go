// Package nfo reads and rewrites Kodi/Jellyfin NFO documents.
//
// A Document keeps the original bytes alongside an ordered view of the
// root's child elements, so a rewrite touches only the text of the element
// being replaced. Comments, indentation, the XML declaration, and tags this
// tool does not understand all survive byte for byte.
package nfo
