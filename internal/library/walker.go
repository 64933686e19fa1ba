package library

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"seasonfix/internal/services"
)

// Well-known metadata filenames written by the media server.
const (
	ShowMetadataFile   = "tvshow.nfo"
	SeasonMetadataFile = "season.nfo"
)

// FindShows walks root and returns every directory holding a show metadata
// file, in filesystem order. Traversal does not descend past a show root, so
// nested season directories are attributed to exactly one show.
func FindShows(root string) ([]string, error) {
	var shows []string
	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return services.Wrap(services.ErrFilesystem, "library", "scan", fmt.Sprintf("walk %s", path), walkErr)
		}
		if !entry.IsDir() {
			return nil
		}
		ok, err := hasMetadataFile(path, ShowMetadataFile)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		shows = append(shows, path)
		return fs.SkipDir
	})
	if err != nil {
		return nil, err
	}
	return shows, nil
}

// FindSeasons returns every directory under showDir holding a season
// metadata file.
func FindSeasons(showDir string) ([]string, error) {
	var seasons []string
	err := filepath.WalkDir(showDir, func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return services.Wrap(services.ErrFilesystem, "library", "scan", fmt.Sprintf("walk %s", path), walkErr)
		}
		if !entry.IsDir() {
			return nil
		}
		ok, err := hasMetadataFile(path, SeasonMetadataFile)
		if err != nil {
			return err
		}
		if ok {
			seasons = append(seasons, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return seasons, nil
}

func hasMetadataFile(dir, name string) (bool, error) {
	info, err := os.Stat(filepath.Join(dir, name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, services.Wrap(services.ErrFilesystem, "library", "scan", fmt.Sprintf("stat %s in %s", name, dir), err)
	}
	return !info.IsDir(), nil
}
