package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/justyntemme/sdnav/internal/config"
	"github.com/justyntemme/sdnav/internal/nav"
	"github.com/justyntemme/sdnav/internal/store"
)

func newStateCmd() *cobra.Command {
	stateCmd := &cobra.Command{
		Use:   "state",
		Short: "Inspect or reset persisted navigator preferences",
	}

	stateCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the restored last path and sort settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			n, st, err := openNavigator()
			if err != nil {
				return err
			}
			defer st.Close()
			defer n.Close()

			mode, asc := n.Sort()
			dir := "ascending"
			if !asc {
				dir = "descending"
			}
			fmt.Printf("root:          %s\n", cfg.Root)
			fmt.Printf("relative path: %q\n", n.RelativePath())
			fmt.Printf("sort:          %s %s\n", mode, dir)
			fmt.Printf("sort enabled:  %v (%d items)\n", n.SortEnabled(), n.TotalItems())
			return nil
		},
	})

	stateCmd.AddCommand(&cobra.Command{
		Use:   "reset",
		Short: "Delete the persisted preference blob",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			storePath := cfg.StorePath
			if storePath == "" {
				storePath = config.DefaultStorePath()
			}
			st, err := store.Open(storePath, "sdnav")
			if err != nil {
				return err
			}
			defer st.Close()

			if err := st.Delete(nav.StateKey); err != nil {
				return err
			}
			logger.Info().Msg("navigator preferences reset")
			return nil
		},
	})

	return stateCmd
}
