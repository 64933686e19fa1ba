package library

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"seasonfix/internal/fileutil"
	"seasonfix/internal/nfo"
	"seasonfix/internal/services"
)

// ShowRecord identifies one show while its seasons are processed.
type ShowRecord struct {
	Dir    string
	Title  string
	TMDBID int64
}

// SeasonRecord is one season metadata file: read once, renamed at most once,
// written back at most once. The season number never changes.
type SeasonRecord struct {
	Path   string
	Number int

	name string
	doc  *nfo.Document
	mode os.FileMode
}

// ReadShow parses the show metadata file in dir, extracting the display
// title and the TMDB identifier. Jellyfin records the identifier as
// <uniqueid type="tmdb">; older scrapers used a bare <tmdbid> tag.
// A file that cannot be read or parsed yields a per-item error, not a
// fatal one; the run skips the show and moves on.
func ReadShow(dir string) (*ShowRecord, error) {
	path := filepath.Join(dir, ShowMetadataFile)
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, services.Wrap(services.ErrIO, "library", "read show", path, err)
	}
	doc, err := nfo.Parse(raw)
	if err != nil {
		return nil, services.Wrap(services.ErrParse, "library", "read show", path, err)
	}

	title, _ := doc.Text("title")
	title = strings.TrimSpace(title)

	id, ok := doc.UniqueID("tmdb")
	if !ok {
		legacy, _ := doc.Text("tmdbid")
		id = strings.TrimSpace(legacy)
	}
	if id == "" {
		return nil, services.Wrap(services.ErrParse, "library", "read show", fmt.Sprintf("%s has no tmdb identifier", path), nil)
	}
	tmdbID, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return nil, services.Wrap(services.ErrParse, "library", "read show", fmt.Sprintf("%s has malformed tmdb identifier %q", path, id), err)
	}

	return &ShowRecord{Dir: dir, Title: title, TMDBID: tmdbID}, nil
}

// ReadSeason parses the season metadata file in dir, extracting the season
// number and the stored display name. As with ReadShow, an unreadable or
// malformed file is a per-item error and only skips this season.
func ReadSeason(dir string) (*SeasonRecord, error) {
	path := filepath.Join(dir, SeasonMetadataFile)
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, services.Wrap(services.ErrIO, "library", "read season", path, err)
	}
	doc, err := nfo.Parse(raw)
	if err != nil {
		return nil, services.Wrap(services.ErrParse, "library", "read season", path, err)
	}

	numberText, ok := doc.Text("seasonnumber")
	if !ok {
		return nil, services.Wrap(services.ErrParse, "library", "read season", fmt.Sprintf("%s has no seasonnumber tag", path), nil)
	}
	number, err := strconv.Atoi(strings.TrimSpace(numberText))
	if err != nil || number < 0 {
		return nil, services.Wrap(services.ErrParse, "library", "read season", fmt.Sprintf("%s has malformed season number %q", path, numberText), nil)
	}

	name, ok := doc.Text("title")
	if !ok {
		return nil, services.Wrap(services.ErrParse, "library", "read season", fmt.Sprintf("%s has no title tag", path), nil)
	}

	mode := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}

	return &SeasonRecord{Path: path, Number: number, name: name, doc: doc, mode: mode}, nil
}

// Name returns the season's current display name.
func (r *SeasonRecord) Name() string {
	return r.name
}

// Rename replaces the season's display name in the underlying document.
func (r *SeasonRecord) Rename(name string) error {
	if err := r.doc.SetText("title", name); err != nil {
		return services.Wrap(services.ErrParse, "library", "rename season", r.Path, err)
	}
	r.name = name
	return nil
}

// WriteFile persists the season document with an atomic replace, keeping the
// original file mode. A failed write leaves the original file intact.
func (r *SeasonRecord) WriteFile() error {
	if err := fileutil.WriteFileAtomic(r.Path, r.doc.Bytes(), r.mode); err != nil {
		return services.Wrap(services.ErrIO, "library", "write season", r.Path, err)
	}
	return nil
}
