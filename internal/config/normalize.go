package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	if err := c.normalizeTMDB(); err != nil {
		return err
	}
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.LibraryDir) == "" {
		c.Paths.LibraryDir = defaultLibraryDir
	}
	if c.Paths.LibraryDir, err = expandPath(c.Paths.LibraryDir); err != nil {
		return fmt.Errorf("paths.library_dir: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(strings.TrimSpace(c.Paths.LogDir)); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeTMDB() error {
	c.TMDB.BearerToken = strings.TrimSpace(c.TMDB.BearerToken)
	if c.TMDB.BearerToken == "" {
		if value, ok := os.LookupEnv("TMDB_BEARER_TOKEN"); ok {
			c.TMDB.BearerToken = strings.TrimSpace(value)
		}
	}

	c.TMDB.BearerTokenFile = strings.TrimSpace(c.TMDB.BearerTokenFile)
	if c.TMDB.BearerToken == "" && c.TMDB.BearerTokenFile != "" {
		expanded, err := expandPath(c.TMDB.BearerTokenFile)
		if err != nil {
			return fmt.Errorf("tmdb.bearer_token_file: %w", err)
		}
		c.TMDB.BearerTokenFile = expanded
		token, err := os.ReadFile(expanded)
		if err != nil {
			return fmt.Errorf("read tmdb.bearer_token_file: %w", err)
		}
		c.TMDB.BearerToken = strings.TrimSpace(string(token))
	}

	c.TMDB.BaseURL = strings.TrimSpace(c.TMDB.BaseURL)
	if c.TMDB.BaseURL == "" {
		c.TMDB.BaseURL = defaultTMDBBaseURL
	}
	c.TMDB.Language = strings.TrimSpace(c.TMDB.Language)
	if c.TMDB.Language == "" {
		c.TMDB.Language = defaultTMDBLanguage
	}
	return nil
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
