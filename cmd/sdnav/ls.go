package main

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/justyntemme/sdnav/internal/nav"
)

func newLsCmd() *cobra.Command {
	var long bool

	cmd := &cobra.Command{
		Use:   "ls [relative-path]",
		Short: "List one directory under the volume root",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, st, err := openNavigator()
			if err != nil {
				return err
			}
			defer st.Close()
			defer n.Close()

			if len(args) == 1 {
				if err := navigateTo(n, args[0]); err != nil {
					return err
				}
			}
			printListing(n, long)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&long, "long", "l", false, "show sizes and modification times")
	return cmd
}

// navigateTo walks the navigator from the root down a validated relative
// path, entry by entry, so every hop goes through the same checks the
// interactive commands use.
func navigateTo(n *nav.Navigator, rel string) error {
	rel = strings.Trim(rel, "/")
	if !nav.IsValidRelative(rel) {
		return fmt.Errorf("%w: %q", nav.ErrInvalidArgument, rel)
	}
	for n.CanGoParent() {
		if err := n.GoParent(); err != nil {
			return err
		}
	}
	if rel == "" {
		return nil
	}
	for _, seg := range strings.Split(rel, "/") {
		idx, err := findEntry(n, seg)
		if err != nil {
			return fmt.Errorf("%s: %w", seg, err)
		}
		if err := n.Enter(idx); err != nil {
			return err
		}
	}
	return nil
}

// findEntry locates a child by name in the currently visible set, paging
// through windows when the directory is oversized.
func findEntry(n *nav.Navigator, name string) (int, error) {
	if n.SortEnabled() {
		entries, _ := n.Entries()
		for i := range entries {
			if entries[i].Name == name {
				return i, nil
			}
		}
		return 0, nav.ErrNotFound
	}

	for start := 0; ; {
		if err := n.SetWindow(start, cfg.WindowSize); err != nil {
			return 0, err
		}
		entries, count := n.Entries()
		if count == 0 {
			return 0, nav.ErrNotFound
		}
		for i := range entries {
			if entries[i].Name == name {
				return i, nil
			}
		}
		start += count
	}
}

func printListing(n *nav.Navigator, long bool) {
	entries, count := n.Entries()
	for i := 0; i < count; i++ {
		if long && entries[i].NeedsStat {
			if err := n.EnsureMeta(i); err != nil {
				logger.Warn().Err(err).Str("name", entries[i].Name).Msg("metadata unavailable")
			}
		}
		e := &entries[i]

		if !long {
			if e.IsDir {
				fmt.Printf("%s/\n", e.Name)
			} else {
				fmt.Println(e.Name)
			}
			continue
		}

		kind := "-"
		size := humanize.IBytes(uint64(e.Size))
		when := "-"
		if e.IsDir {
			kind = "d"
			size = "-"
		}
		if !e.ModTime.IsZero() {
			when = e.ModTime.Format("2006-01-02 15:04")
		}
		fmt.Printf("%s %10s  %16s  %s\n", kind, size, when, e.Name)
	}

	if n.SortEnabled() {
		mode, asc := n.Sort()
		dir := "asc"
		if !asc {
			dir = "desc"
		}
		fmt.Printf("%d items, sorted by %s %s\n", n.TotalItems(), mode, dir)
	} else {
		fmt.Printf("%d items, window [%d,%d) of raw order (unsorted)\n",
			n.TotalItems(), n.WindowStart(), n.WindowStart()+count)
	}
}
