// Command splview summarizes the event log written by the performance
// layers.
//
//	splview -log events.csv
//	splview -log events.csv -type compile_time
//	splview -log events.csv -i
//
// Without -log the path is taken from the layer configuration
// (VK_PERFORMANCE_LAYERS_EVENT_LOG_FILE or the file named by
// VK_PERFORMANCE_LAYERS_CONFIG).
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/wippyai/vk-perflayers/config"
	"github.com/wippyai/vk-perflayers/eventlog"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	typeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	countStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))
)

func main() {
	var (
		logFile     = flag.String("log", "", "Path to the event log (defaults to the layer configuration)")
		eventType   = flag.String("type", "", "Only show records of this event type")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
		verbose     = flag.Bool("v", false, "Print diagnostics")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	cfg.Debug = cfg.Debug || *verbose
	if cfg.Debug {
		if l, err := cfg.ZapLogger(); err == nil {
			eventlog.SetLogger(l)
			defer l.Sync()
		}
	}

	path := *logFile
	if path == "" {
		path = cfg.EventLogFile
	}
	if path == "" {
		fmt.Fprintln(os.Stderr, "Usage: splview -log <events.csv> [-type name]")
		fmt.Fprintln(os.Stderr, "       splview -log <events.csv> -i  (interactive mode)")
		os.Exit(1)
	}

	records, err := load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	eventlog.Logger().Debug("event log loaded", zap.String("path", path), zap.Int("records", len(records)))
	if *eventType != "" {
		records = eventlog.Filter(records, *eventType)
	}

	if *interactive {
		if err := runInteractive(path, records); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	styled := term.IsTerminal(int(os.Stdout.Fd()))
	if err := printSummary(os.Stdout, eventlog.Summarize(records), styled); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func load(path string) ([]eventlog.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open event log: %w", err)
	}
	defer f.Close()
	return eventlog.ReadRecords(f)
}

// printSummary writes one row per event type. Styling is applied only when
// styled is set.
func printSummary(w io.Writer, summaries []eventlog.TypeSummary, styled bool) error {
	render := func(s lipgloss.Style, text string) string {
		if !styled {
			return text
		}
		return s.Render(text)
	}

	width := len("event")
	for _, s := range summaries {
		width = max(width, len(s.Type))
	}
	pad := func(s string) string { return s + strings.Repeat(" ", width-len(s)) }

	if _, err := fmt.Fprintln(w, render(headerStyle, pad("event")+"  count  first                          span")); err != nil {
		return err
	}
	for _, s := range summaries {
		_, err := fmt.Fprintf(w, "%s  %s  %s  %s\n",
			render(typeStyle, pad(s.Type)),
			render(countStyle, fmt.Sprintf("%5d", s.Count)),
			s.First.UTC().Format(time.RFC3339Nano),
			s.Span())
		if err != nil {
			return err
		}
	}
	return nil
}
