package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/zapponejosh/amlich/internal/calendar"
	"github.com/zapponejosh/amlich/internal/database"
	"github.com/zapponejosh/amlich/internal/observance"
	"github.com/zapponejosh/amlich/internal/render"
)

var errLeapWithoutLunar = errors.New("--leap needs --lunar")

func convertCmd(a *app) *cobra.Command {
	var (
		lunar           bool
		leap            bool
		observancesPath string
	)

	cmd := &cobra.Command{
		Use:   "convert [DATE]",
		Short: "Convert a date between the Gregorian and lunar calendars",
		Long: `Convert a Gregorian date (YYYY-MM-DD) to its lunar date, or with --lunar
a lunar date (DD/MM/YYYY) to its Gregorian date. Without DATE, today is used.`,
		Example: `  amlich convert 2020-01-25
  amlich convert --lunar 01/04/2020 --leap`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if leap && !lunar {
				return errLeapWithoutLunar
			}

			day := a.today()
			if len(args) == 1 {
				var err error
				day, err = resolveDate(a.conv, args[0], lunar, leap)
				if err != nil {
					return err
				}
			}

			l, err := a.conv.ToLunar(day)
			if err != nil {
				return err
			}

			defs := observance.Defaults()
			if observancesPath != "" {
				defs, err = observance.LoadFile(observancesPath)
				if err != nil {
					return err
				}
			}
			matches, err := observance.NewService(observance.NewMemoryStore(defs), a.conv).ForDate(cmd.Context(), day)
			if err != nil {
				return err
			}

			return writeLine(cmd.OutOrStdout(), render.Conversion(day, l, observanceNames(matches), a.theme))
		},
	}

	cmd.Flags().BoolVar(&lunar, "lunar", false, "DATE is a lunar date in DD/MM/YYYY form")
	cmd.Flags().BoolVar(&leap, "leap", false, "the lunar month is the leap month (needs --lunar)")
	cmd.Flags().StringVar(&observancesPath, "observances", "", "observances YAML file (defaults to the built-in list)")
	return cmd
}

// resolveDate parses s as a Gregorian or lunar date and returns its civil day.
func resolveDate(conv *calendar.Converter, s string, lunar, leap bool) (calendar.GregorianDay, error) {
	if !lunar {
		return calendar.ParseGregorian(s)
	}
	l, err := calendar.ParseLunar(s, leap)
	if err != nil {
		return calendar.GregorianDay{}, err
	}
	return conv.ToGregorian(l)
}

func observanceNames(observances []database.Observance) []string {
	names := make([]string, 0, len(observances))
	for _, o := range observances {
		names = append(names, o.Name)
	}
	return names
}
