// Command sdnav browses a mounted volume from the terminal: sorted listings
// for directories that fit in memory, unsorted pages for ones that don't,
// with sort mode and last path persisted between runs.
package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/justyntemme/sdnav/internal/config"
	"github.com/justyntemme/sdnav/internal/logging"
	"github.com/justyntemme/sdnav/internal/nav"
	"github.com/justyntemme/sdnav/internal/store"
)

var (
	// Global flags
	cfgFile  string
	rootDir  string
	maxItems int
	verbose  bool

	cfg    *config.Config
	logger zerolog.Logger
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "sdnav",
		Short:         "Browse a mounted volume with bounded memory",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger = logging.New(verbose)

			path := cfgFile
			if path == "" {
				path = config.DefaultPath()
			}
			var err error
			cfg, err = config.Load(path)
			if err != nil {
				return err
			}
			if rootDir != "" {
				cfg.Root = rootDir
			}
			if cmd.Flags().Changed("max-items") {
				cfg.MaxItems = maxItems
			}
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: per-user config dir)")
	rootCmd.PersistentFlags().StringVar(&rootDir, "root", "", "volume root directory (overrides config)")
	rootCmd.PersistentFlags().IntVar(&maxItems, "max-items", 0, "full-load/sort cap, 0 = unlimited (overrides config)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose logging")

	rootCmd.AddCommand(newLsCmd())
	rootCmd.AddCommand(newBrowseCmd())
	rootCmd.AddCommand(newStateCmd())
	return rootCmd
}

// openNavigator wires the preference store and navigator from the loaded
// config. The caller owns both and must Close them.
func openNavigator() (*nav.Navigator, *store.Store, error) {
	storePath := cfg.StorePath
	if storePath == "" {
		storePath = config.DefaultStorePath()
	}
	st, err := store.Open(storePath, "sdnav")
	if err != nil {
		return nil, nil, fmt.Errorf("open preference store: %w", err)
	}

	mode, err := nav.ParseMode(cfg.DefaultSort)
	if err != nil {
		st.Close()
		return nil, nil, fmt.Errorf("config defaultSort %q: %w", cfg.DefaultSort, err)
	}

	n, err := nav.New(nav.Config{
		Root:            cfg.Root,
		MaxItems:        cfg.MaxItems,
		WindowSize:      cfg.WindowSize,
		DefaultSort:     mode,
		Descending:      !cfg.SortAscending,
		Store:           st,
		SkipPathRestore: !cfg.RestoreLastPath,
		Log:             logger,
	})
	if err != nil {
		st.Close()
		return nil, nil, err
	}
	return n, st, nil
}
