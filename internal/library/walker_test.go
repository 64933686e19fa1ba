package library_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"seasonfix/internal/library"
	"seasonfix/internal/services"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

const showNFO = `<tvshow>
  <title>Game of Thrones</title>
  <uniqueid type="tmdb">1399</uniqueid>
</tvshow>
`

const seasonNFO = `<season>
  <title>Season 1</title>
  <seasonnumber>1</seasonnumber>
</season>
`

func TestFindShowsLocatesMetadataDirectories(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, filepath.Join(root, "tv", "Game of Thrones", "tvshow.nfo"), showNFO)
	writeFile(t, filepath.Join(root, "tv", "Severance", "tvshow.nfo"), showNFO)
	writeFile(t, filepath.Join(root, "movies", "Heat", "movie.nfo"), "<movie/>")

	shows, err := library.FindShows(root)
	if err != nil {
		t.Fatalf("FindShows returned error: %v", err)
	}
	if len(shows) != 2 {
		t.Fatalf("expected 2 shows, got %v", shows)
	}
}

func TestFindShowsEmptyTree(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, filepath.Join(root, "somewhere", "readme.txt"), "not a library")

	shows, err := library.FindShows(root)
	if err != nil {
		t.Fatalf("FindShows returned error: %v", err)
	}
	if len(shows) != 0 {
		t.Fatalf("expected no shows, got %v", shows)
	}
}

func TestFindShowsDoesNotDescendPastShowRoot(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	showDir := filepath.Join(root, "Game of Thrones")
	writeFile(t, filepath.Join(showDir, "tvshow.nfo"), showNFO)
	// A stray nested descriptor must not produce a second show.
	writeFile(t, filepath.Join(showDir, "extras", "tvshow.nfo"), showNFO)

	shows, err := library.FindShows(root)
	if err != nil {
		t.Fatalf("FindShows returned error: %v", err)
	}
	if len(shows) != 1 || shows[0] != showDir {
		t.Fatalf("expected only %s, got %v", showDir, shows)
	}
}

func TestFindShowsUnreadableDirectoryIsFatal(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("directory modes are not enforced for root")
	}

	root := t.TempDir()
	writeFile(t, filepath.Join(root, "Game of Thrones", "tvshow.nfo"), showNFO)
	blocked := filepath.Join(root, "blocked")
	if err := os.Mkdir(blocked, 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", blocked, err)
	}
	if err := os.Chmod(blocked, 0o000); err != nil {
		t.Fatalf("chmod %s: %v", blocked, err)
	}
	t.Cleanup(func() { _ = os.Chmod(blocked, 0o755) })

	_, err := library.FindShows(root)
	if !errors.Is(err, services.ErrFilesystem) {
		t.Fatalf("expected filesystem error for unreadable directory, got %v", err)
	}
	if !services.Fatal(err) {
		t.Fatalf("expected fatal classification, got %v", err)
	}
}

func TestFindSeasons(t *testing.T) {
	t.Parallel()

	showDir := t.TempDir()
	writeFile(t, filepath.Join(showDir, "tvshow.nfo"), showNFO)
	writeFile(t, filepath.Join(showDir, "Season 1", "season.nfo"), seasonNFO)
	writeFile(t, filepath.Join(showDir, "Season 2", "season.nfo"), seasonNFO)
	writeFile(t, filepath.Join(showDir, "Season 3", "notes.txt"), "no metadata here")

	seasons, err := library.FindSeasons(showDir)
	if err != nil {
		t.Fatalf("FindSeasons returned error: %v", err)
	}
	if len(seasons) != 2 {
		t.Fatalf("expected 2 seasons, got %v", seasons)
	}
}
