// Package main provides the CLI entrypoint for swimstat.
package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/swimstat/swimstat/internal/config"
	"github.com/swimstat/swimstat/internal/filter"
	"github.com/swimstat/swimstat/internal/logging"
	"github.com/swimstat/swimstat/internal/session"
	"github.com/swimstat/swimstat/internal/statsui"
)

const (
	defaultKind       = "finals"
	defaultPlotHeight = 10
	defaultLogLevel   = "info"
)

var (
	filterKind string
	filterClub string
	filterFrom string
	filterTo   string

	debugLog   string
	plotHeight int
	plotColor  bool
)

const exportSteps = `Getting the CSV from the FEGAN results search:
  1. Open fegan.org.
  2. Go to Natación > Consulta de marcas.
  3. Search for the swimmer as "Surname Surname, Name".
  4. Pick the event to analyze.
  5. Choose a wide date range so every swim is included.
  6. Set "Amosar os primeiros" to the maximum (100) and press ENVIAR.
  7. At the bottom of the page press "Exportar a táboa a CSV".`

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "swimstat [file]",
		Short:         "Swimming race results analyzer",
		Long:          "Swimming race results analyzer.\n\n" + exportSteps,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runDashboardCmd,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&filterKind, "kind", defaultKind, "result kind: any, finals or splits")
	flags.StringVar(&filterClub, "club", "", "exact club name (default: any)")
	flags.StringVar(&filterFrom, "from", "", "first date to include ("+filter.DateHint+")")
	flags.StringVar(&filterTo, "to", "", "last date to include ("+filter.DateHint+")")
	flags.StringVar(&debugLog, "debug", "", "write debug logs to file")
	flags.IntVar(&plotHeight, "plot-height", defaultPlotHeight, "progression plot height in rows")
	flags.BoolVar(&plotColor, "color", true, "color plot lines")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newSummaryCmd())
	rootCmd.AddCommand(newRecordsCmd())
	rootCmd.AddCommand(newChartCmd())

	return rootCmd
}

// env is the state shared by every command that reads a results file.
type env struct {
	sess    *session.Session
	logger  *zap.Logger
	cleanup func()
}

func (e *env) close() {
	if e.cleanup != nil {
		e.cleanup()
	}
}

// prepare merges config and flags, sets up logging and loads path.
func prepare(cmd *cobra.Command, path string) (*env, error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "kind", &filterKind, fileCfg.Filters.Kind)
	applyStringConfig(cmd, "club", &filterClub, fileCfg.Filters.Club)
	applyStringConfig(cmd, "from", &filterFrom, fileCfg.Filters.From)
	applyStringConfig(cmd, "to", &filterTo, fileCfg.Filters.To)
	applyStringConfig(cmd, "debug", &debugLog, fileCfg.Log.File)
	applyIntConfig(cmd, "plot-height", &plotHeight, fileCfg.Display.PlotHeight)
	applyBoolConfig(cmd, "color", &plotColor, fileCfg.Display.Color)

	level := defaultLogLevel
	if fileCfg.Log.Level != nil {
		level = *fileCfg.Log.Level
	}

	if err := validateFlags(); err != nil {
		return nil, err
	}
	kind, err := filter.ParseKind(filterKind)
	if err != nil {
		return nil, fmt.Errorf("invalid --kind: %w", err)
	}

	logger, cleanup, err := logging.Setup(debugLog, level)
	if err != nil {
		return nil, fmt.Errorf("failed to set up logging: %w", err)
	}
	e := &env{logger: logger, cleanup: cleanup}

	e.sess = session.New(logger, filter.Input{
		Kind: kind,
		Club: filterClub,
		From: filterFrom,
		To:   filterTo,
	})
	for _, w := range e.sess.Warnings() {
		logErrf("warning: %s\n", w)
	}
	if err := e.sess.Load(commandContext(cmd), path); err != nil {
		e.close()
		return nil, err
	}
	return e, nil
}

func validateFlags() error {
	if plotHeight <= 0 {
		return fmt.Errorf("--plot-height must be > 0")
	}
	return nil
}

func runDashboardCmd(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return cmd.Help()
	}
	e, err := prepare(cmd, args[0])
	if err != nil {
		return err
	}
	defer e.close()

	m := statsui.NewModel(e.sess, statsui.Options{
		PlotHeight: plotHeight,
		Color:      plotColor,
		Logger:     e.logger,
	})
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run dashboard: %w", err)
	}
	return nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}

func logErrln(args ...any) {
	if _, err := fmt.Fprintln(os.Stderr, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
