package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/swimstat/swimstat/internal/config"
	"github.com/swimstat/swimstat/internal/export"
	"github.com/swimstat/swimstat/internal/filter"
	"github.com/swimstat/swimstat/internal/stats"
)

var (
	summaryJSON bool

	chartOut    string
	chartWidth  int
	chartHeight int
)

func newSummaryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "summary <file>",
		Short: "Print personal bests and averages per pool",
		Args:  cobra.ExactArgs(1),
		RunE:  runSummaryCmd,
	}
	cmd.Flags().BoolVar(&summaryJSON, "json", false, "print the summary as JSON")
	return cmd
}

func runSummaryCmd(cmd *cobra.Command, args []string) error {
	e, err := prepare(cmd, args[0])
	if err != nil {
		return err
	}
	defer e.close()

	out := cmd.OutOrStdout()
	if summaryJSON {
		if err := export.WriteSummaryJSON(out, e.sess.Summary(), e.sess.Criteria()); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	}
	if err := stats.RenderSummary(out, e.sess.Summary()); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if err := stats.PlotProgression(out, "Progression", e.sess.Series(), 0, plotHeight, colorMode()); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

// colorMode lets the plot color only on a terminal unless color is disabled.
func colorMode() stats.ColorMode {
	if plotColor {
		return stats.ColorAuto
	}
	return stats.ColorNever
}

func newRecordsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "records <file>",
		Short: "List the records matching the filters",
		Args:  cobra.ExactArgs(1),
		RunE:  runRecordsCmd,
	}
}

func runRecordsCmd(cmd *cobra.Command, args []string) error {
	e, err := prepare(cmd, args[0])
	if err != nil {
		return err
	}
	defer e.close()

	if err := stats.RenderRecords(cmd.OutOrStdout(), e.sess.Filtered()); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func newChartCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chart <file>",
		Short: "Write the progression chart as a PNG image",
		Args:  cobra.ExactArgs(1),
		RunE:  runChartCmd,
	}
	cmd.Flags().StringVarP(&chartOut, "out", "o", "progression.png", "output PNG path")
	cmd.Flags().IntVar(&chartWidth, "width", export.DefaultChartWidth, "image width in pixels")
	cmd.Flags().IntVar(&chartHeight, "height", export.DefaultChartHeight, "image height in pixels")
	return cmd
}

func runChartCmd(cmd *cobra.Command, args []string) error {
	if chartWidth <= 0 || chartHeight <= 0 {
		return fmt.Errorf("--width and --height must be > 0")
	}
	e, err := prepare(cmd, args[0])
	if err != nil {
		return err
	}
	defer e.close()

	f, err := os.Create(chartOut)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", chartOut, err)
	}
	title := stats.Title(e.sess.Summary())
	if err := export.WriteChartPNG(f, title, e.sess.Series(), chartWidth, chartHeight); err != nil {
		_ = f.Close()
		_ = os.Remove(chartOut)
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", chartOut, err)
	}
	logErrf("Wrote %s\n", chartOut)
	return nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := ensureConfigFile(path); err != nil {
		return err
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

// ensureConfigFile writes the commented template unless a config already exists.
func ensureConfigFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
		logErrln("Created", path)
	}
	return nil
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# swimstat configuration
# Uncomment a value to enable it. CLI flags override config values.

[filters]
# kind = %q           # any, finals or splits
# club = ""               # Exact club name, empty for any club
# from = ""               # First date to include (%s)
# to = ""                 # Last date to include (%s)

[display]
# plot-height = %d        # Progression plot height in rows
# color = true            # Color plot lines (NO_COLOR disables)

[log]
# file = %q
# level = %q          # debug, info, warn or error
`,
		defaultKind,
		filter.DateHint,
		filter.DateHint,
		defaultPlotHeight,
		config.DefaultLogPath(),
		defaultLogLevel,
	)
}
