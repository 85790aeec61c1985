// Package cli implements the amlich command line.
package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/zapponejosh/amlich/internal/calendar"
	"github.com/zapponejosh/amlich/internal/config"
	"github.com/zapponejosh/amlich/internal/logger"
	"github.com/zapponejosh/amlich/internal/render"
)

// app carries what every subcommand needs once flags are parsed.
type app struct {
	cfg   *config.Config
	log   *slog.Logger
	conv  *calendar.Converter
	theme render.Theme
	now   func() time.Time

	tz    float64
	debug bool
	plain bool
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{now: time.Now}

	cmd := &cobra.Command{
		Use:          "amlich",
		Short:        "Vietnamese lunar calendar converter",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}

	cmd.PersistentFlags().Float64Var(&a.tz, "tz", calendar.DefaultTimeZone, "UTC offset in hours (overrides TIMEZONE_OFFSET)")
	cmd.PersistentFlags().BoolVar(&a.debug, "debug", false, "enable debug logging to stderr")
	cmd.PersistentFlags().BoolVar(&a.plain, "plain", false, "draw without colors or borders")

	cmd.AddCommand(
		convertCmd(a),
		monthCmd(a),
		yearCmd(a),
		importCmd(a),
		serveCmd(a),
	)
	return cmd
}

// setup loads configuration and applies flag overrides.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("tz") {
		cfg.TimeZone = a.tz
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid --tz: %w", err)
		}
	}
	a.cfg = cfg

	level := "warn"
	if a.debug {
		level = "debug"
	}
	a.log = logger.New(cmd.ErrOrStderr(), level, cfg.LogFormat)
	a.conv = calendar.NewConverter(cfg.TimeZone, a.log)

	a.theme = render.DefaultTheme()
	if a.plain {
		a.theme = render.PlainTheme()
	}
	return nil
}

// today is the current civil day in the configured zone.
func (a *app) today() calendar.GregorianDay {
	zone := time.FixedZone("", int(a.conv.TimeZone()*3600))
	return calendar.GregorianFromTime(a.now().In(zone))
}

func writeLine(w io.Writer, s string) error {
	_, err := fmt.Fprintln(w, s)
	return err
}
