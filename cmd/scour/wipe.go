package main

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"scour/internal/config"
	"scour/internal/logging"
	"scour/internal/tui"
	"scour/internal/wipe"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

var (
	wipeStandard  string // standard name, empty means config default
	wipeRecursive bool   // allow directory targets
	wipeNoUI      bool   // force plain output
)

var wipeCmd = &cobra.Command{
	Use:   "wipe PATH...",
	Short: "Overwrite and remove the given paths",
	Long: `Overwrite each target's content with the selected sanitization
standard's pass sequence, then unlink it. Directories require
--recursive and are walked depth-first; their entries are wiped
individually and the directories themselves follow the standard's
directory behavior.

A failed pass leaves the target partially overwritten but in place;
nothing is deleted on error.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := logging.GetDefault()

		cfg, err := config.Load()
		if err != nil {
			return err
		}

		standard := wipeStandard
		if standard == "" {
			standard = cfg.DefaultStandard
		}
		if standard == "" {
			standard = wipe.DefaultStandard
		}
		if _, err := wipe.Lookup(standard); err != nil {
			return err
		}

		// Refuse directory targets without -r before any byte is written.
		for _, path := range args {
			info, err := os.Stat(path)
			if err != nil {
				return fmt.Errorf("stat target: %w", err)
			}
			if info.IsDir() && !wipeRecursive {
				return fmt.Errorf("%s is a directory (use --recursive)", path)
			}
		}

		useUI := !wipeNoUI && cfg.ProgressUI && !logger.IsDebug() &&
			isatty.IsTerminal(os.Stdout.Fd())
		if useUI {
			return wipeWithUI(cfg, logger, standard, args)
		}
		return wipePlain(cfg, logger, standard, args)
	},
}

func init() {
	wipeCmd.Flags().StringVarP(&wipeStandard, "standard", "s", "", "sanitization standard (see 'scour standards')")
	wipeCmd.Flags().BoolVarP(&wipeRecursive, "recursive", "r", false, "allow directory targets")
	wipeCmd.Flags().BoolVar(&wipeNoUI, "no-ui", false, "disable the interactive progress view")
}

// wipePlain runs without the TUI, collecting events in a recorder and
// logging a summary.
func wipePlain(cfg *config.Config, logger *logging.AppLogger, standard string, paths []string) error {
	recorder := wipe.NewRecorder()
	engine := wipe.NewEngine(&wipe.EngineOptions{
		ChunkSize: cfg.ChunkSize,
		Listener:  recorder,
		Logger:    logger,
	})

	err := removeTargets(engine, standard, paths)
	fmt.Printf("%d removed, %d directories marked\n",
		recorder.Count(wipe.EventRemoved), recorder.Count(wipe.EventMark))
	return err
}

// wipeWithUI drives the bubbletea progress view while the engine runs
// in a separate goroutine, forwarding its events into the program.
func wipeWithUI(cfg *config.Config, logger *logging.AppLogger, standard string, paths []string) error {
	total, err := countRemovals(paths)
	if err != nil {
		return err
	}

	program := tea.NewProgram(tui.NewModel(total, logger))
	engine := wipe.NewEngine(&wipe.EngineOptions{
		ChunkSize: cfg.ChunkSize,
		Listener:  programListener{program: program},
		Logger:    logger,
	})

	go func() {
		program.Send(tui.DoneMsg{Err: removeTargets(engine, standard, paths)})
	}()

	final, err := program.Run()
	if err != nil {
		return fmt.Errorf("progress view failed: %w", err)
	}
	if m, ok := final.(tui.Model); ok && m.Err() != nil {
		return m.Err()
	}
	return nil
}

// removeTargets wipes each path in order, stopping on the first error.
func removeTargets(engine *wipe.Engine, standard string, paths []string) error {
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return fmt.Errorf("stat target: %w", err)
		}
		if info.IsDir() {
			if err := engine.RemoveTree(standard, path); err != nil {
				return err
			}
			continue
		}
		if err := engine.Run(standard, path); err != nil {
			return err
		}
	}
	return nil
}

// countRemovals counts the non-directory entries the run will unlink,
// to size the progress bar.
func countRemovals(paths []string) (int, error) {
	total := 0
	for _, path := range paths {
		err := filepath.WalkDir(path, func(_ string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() {
				total++
			}
			return nil
		})
		if err != nil {
			return 0, fmt.Errorf("count entries under %s: %w", path, err)
		}
	}
	return total, nil
}

// programListener forwards engine events into the running bubbletea
// program. tea.Program.Send is safe from other goroutines.
type programListener struct {
	program *tea.Program
}

func (l programListener) Notify(e wipe.Event) {
	l.program.Send(tui.EventMsg(e))
}
