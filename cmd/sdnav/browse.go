package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/justyntemme/sdnav/internal/nav"
	"github.com/justyntemme/sdnav/internal/watch"
)

func newBrowseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Interactively browse the volume (line-oriented)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			n, st, err := openNavigator()
			if err != nil {
				return err
			}
			defer st.Close()
			defer n.Close()

			watcher, err := watch.New(cfg.WatchDebounceMs)
			if err != nil {
				logger.Warn().Err(err).Msg("directory watching unavailable")
				watcher = nil
			} else {
				defer watcher.Close()
			}

			return browseLoop(n, watcher)
		},
	}
}

// browseLoop runs the interactive command loop. Navigator calls stay on this
// goroutine; stdin lines and watcher notifications are funneled in through
// channels.
func browseLoop(n *nav.Navigator, watcher *watch.Watcher) error {
	lines := make(chan string)
	go func() {
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
		close(lines)
	}()

	var notify <-chan string
	if watcher != nil {
		notify = watcher.Notify()
		if err := watcher.Watch(n.CurrentPath()); err != nil {
			logger.Warn().Err(err).Msg("cannot watch current directory")
		}
	}

	printListing(n, true)
	fmt.Print("> ")
	for {
		select {
		case changed := <-notify:
			if changed != n.CurrentPath() {
				continue
			}
			if err := n.Refresh(); err != nil {
				logger.Error().Err(err).Msg("refresh after change failed")
				continue
			}
			fmt.Println("\n(directory changed on disk)")
			printListing(n, true)
			fmt.Print("> ")

		case line, ok := <-lines:
			if !ok {
				return nil
			}
			quit, err := runBrowseCommand(n, line)
			if err != nil {
				fmt.Println("error:", err)
			}
			if quit {
				return nil
			}
			if watcher != nil {
				if err := watcher.Watch(n.CurrentPath()); err != nil {
					logger.Warn().Err(err).Msg("cannot watch current directory")
				}
			}
			fmt.Print("> ")
		}
	}
}

func runBrowseCommand(n *nav.Navigator, line string) (quit bool, err error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false, nil
	}

	switch fields[0] {
	case "ls":
		printListing(n, true)
	case "path":
		fmt.Println(n.CurrentPath())
	case "cd":
		if len(fields) != 2 {
			return false, fmt.Errorf("usage: cd <name>")
		}
		idx, ferr := findEntry(n, fields[1])
		if ferr != nil {
			return false, ferr
		}
		if err := n.Enter(idx); err != nil {
			return false, err
		}
		printListing(n, true)
	case "up":
		if err := n.GoParent(); err != nil {
			return false, err
		}
		printListing(n, true)
	case "sort":
		if len(fields) < 2 {
			return false, fmt.Errorf("usage: sort <name|date|size> [asc|desc]")
		}
		mode, perr := nav.ParseMode(fields[1])
		if perr != nil {
			return false, perr
		}
		asc := true
		if len(fields) == 3 && fields[2] == "desc" {
			asc = false
		}
		if err := n.SetSort(mode, asc); err != nil {
			return false, err
		}
		printListing(n, true)
	case "win":
		if len(fields) != 3 {
			return false, fmt.Errorf("usage: win <start> <size>")
		}
		start, e1 := strconv.Atoi(fields[1])
		size, e2 := strconv.Atoi(fields[2])
		if e1 != nil || e2 != nil {
			return false, fmt.Errorf("usage: win <start> <size>")
		}
		if err := n.SetWindow(start, size); err != nil {
			return false, err
		}
		printListing(n, true)
	case "stat":
		if len(fields) != 2 {
			return false, fmt.Errorf("usage: stat <index>")
		}
		idx, aerr := strconv.Atoi(fields[1])
		if aerr != nil {
			return false, fmt.Errorf("usage: stat <index>")
		}
		if err := n.EnsureMeta(idx); err != nil {
			return false, err
		}
		entries, _ := n.Entries()
		e := entries[idx]
		fmt.Printf("%s dir=%v size=%d mtime=%s\n", e.Name, e.IsDir, e.Size, e.ModTime)
	case "mkdir":
		if len(fields) != 2 {
			return false, fmt.Errorf("usage: mkdir <name>")
		}
		if err := n.CreateDir(fields[1]); err != nil {
			return false, err
		}
	case "mv":
		if len(fields) != 3 {
			return false, fmt.Errorf("usage: mv <index> <new-name>")
		}
		idx, aerr := strconv.Atoi(fields[1])
		if aerr != nil {
			return false, fmt.Errorf("usage: mv <index> <new-name>")
		}
		if err := n.Rename(idx, fields[2]); err != nil {
			return false, err
		}
	case "rm":
		if len(fields) != 2 {
			return false, fmt.Errorf("usage: rm <index>")
		}
		idx, aerr := strconv.Atoi(fields[1])
		if aerr != nil {
			return false, fmt.Errorf("usage: rm <index>")
		}
		if err := n.Delete(idx); err != nil {
			return false, err
		}
	case "help":
		fmt.Println("commands: ls, path, cd <name>, up, sort <mode> [asc|desc], win <start> <size>, stat <i>, mkdir <name>, mv <i> <name>, rm <i>, quit")
	case "quit", "q", "exit":
		return true, nil
	default:
		return false, fmt.Errorf("unknown command %q (try help)", fields[0])
	}
	return false, nil
}
