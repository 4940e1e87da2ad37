package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/wethinkt/go-palettepro/internal/config"
	"github.com/wethinkt/go-palettepro/internal/tuilog"
)

var (
	logsLines  int
	logsFollow bool
	logsLevel  string
)

var logsCmd = &cobra.Command{
	Use:   "logs [file]",
	Short: "Show the server log",
	Long: `Print the tail of a palettepro log file. Without an argument, shows
~/.palettepro/logs/serve.log, which 'palettepro serve' writes to when
--log is not given.

Examples:
  palettepro logs              # Last 50 lines of the server log
  palettepro logs -n 200
  palettepro logs -f           # Follow new entries
  palettepro logs --level warn # Warnings and errors only`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLogs,
}

func init() {
	logsCmd.Flags().IntVarP(&logsLines, "lines", "n", 50, "number of lines to show")
	logsCmd.Flags().BoolVarP(&logsFollow, "follow", "f", false, "follow the log for new entries")
	logsCmd.Flags().StringVar(&logsLevel, "level", "", "only show records at or above this level (debug, info, warn, error)")
}

// defaultServeLog is where serve logs when --log is not set.
func defaultServeLog() (string, error) {
	dir, err := config.Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "logs", "serve.log"), nil
}

func runLogs(cmd *cobra.Command, args []string) error {
	path := ""
	if len(args) > 0 {
		path = args[0]
	} else {
		p, err := defaultServeLog()
		if err != nil {
			return err
		}
		path = p
	}

	keep := func(string) bool { return true }
	if logsLevel != "" {
		min := tuilog.ParseLevel(logsLevel)
		keep = func(line string) bool { return lineLevel(line) >= min }
	}

	ctx, cancel := signalContext()
	defer cancel()
	return tailLog(ctx, cmd.OutOrStdout(), path, logsLines, logsFollow, keep)
}

var levelField = regexp.MustCompile(`\blevel=(\w+)`)

// lineLevel reads the level of a slog text record. Lines without one,
// such as stack traces, count as errors so filters keep them.
func lineLevel(line string) slog.Level {
	m := levelField.FindStringSubmatch(line)
	if m == nil {
		return slog.LevelError
	}
	return tuilog.ParseLevel(m[1])
}

// tailLog writes the last n kept lines of path to w. With follow it then
// streams appended lines until ctx ends or the file is removed.
func tailLog(ctx context.Context, w io.Writer, path string, n int, follow bool, keep func(string) bool) error {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("log file not found: %s", path)
	}
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer f.Close()

	r := bufio.NewReader(f)
	var ring []string
	for {
		line, err := r.ReadString('\n')
		if line != "" && keep(line) {
			if line[len(line)-1] != '\n' {
				line += "\n"
			}
			ring = append(ring, line)
			if len(ring) > n {
				ring = ring[1:]
			}
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return err
		}
	}
	if n <= 0 {
		ring = nil
	}
	for _, line := range ring {
		if _, err := io.WriteString(w, line); err != nil {
			return err
		}
	}

	if !follow {
		return nil
	}
	return followLog(ctx, w, f, r, keep)
}

// followLog writes whole lines appended to f as fsnotify reports writes.
func followLog(ctx context.Context, w io.Writer, f *os.File, r *bufio.Reader, keep func(string) bool) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch log: %w", err)
	}
	defer watcher.Close()
	if err := watcher.Add(f.Name()); err != nil {
		return fmt.Errorf("watch log: %w", err)
	}

	var partial string
	drain := func() error {
		for {
			line, err := r.ReadString('\n')
			if errors.Is(err, io.EOF) {
				partial += line
				return nil
			}
			if err != nil {
				return err
			}
			line, partial = partial+line, ""
			if keep(line) {
				if _, err := io.WriteString(w, line); err != nil {
					return err
				}
			}
		}
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if ev.Has(fsnotify.Remove) || ev.Has(fsnotify.Rename) {
				return nil
			}
			if ev.Has(fsnotify.Write) {
				if err := drain(); err != nil {
					return err
				}
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("watch log: %w", err)
		}
	}
}
