package main

import (
	"github.com/spf13/cobra"
)

type rootOptions struct {
	configPath  string
	libraryPath string
	bearer      string
	bearerFile  string
	dryRun      bool
	logLevel    string
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "seasonfix",
		Short: "Repair TV season names in a Jellyfin library using TMDB",
		Long: `seasonfix scans a TV library for tvshow.nfo and season.nfo metadata,
asks TMDB for each season's canonical name, and rewrites season files whose
stored name disagrees. Files are replaced atomically, per-season problems are
logged and skipped, and a run changes nothing when every name already
matches.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRepair(cmd, opts)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "Configuration file path")
	rootCmd.Flags().StringVarP(&opts.libraryPath, "library", "l", "", "Library root to scan (overrides paths.library_dir)")
	rootCmd.Flags().StringVarP(&opts.bearer, "bearer", "b", "", "TMDB bearer token")
	rootCmd.Flags().StringVarP(&opts.bearerFile, "bearer-file", "B", "", "Read the TMDB bearer token from this file")
	rootCmd.Flags().BoolVarP(&opts.dryRun, "dry-run", "n", false, "Go through all the motions but don't modify any files")
	rootCmd.Flags().StringVar(&opts.logLevel, "log-level", "", "Override the configured log level")

	rootCmd.AddCommand(newConfigCommand(opts))
	rootCmd.AddCommand(newVersionCommand())

	return rootCmd
}
