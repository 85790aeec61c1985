package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zapponejosh/amlich/internal/calendar"
	"github.com/zapponejosh/amlich/internal/render"
)

func monthCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "month [YYYY-MM]",
		Short:   "Show a month with the lunar day under each date",
		Example: "  amlich month 2020-02",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m := a.today().ToMonth()
			if len(args) == 1 {
				var err error
				m, err = parseMonth(args[0])
				if err != nil {
					return err
				}
			}
			return writeLine(cmd.OutOrStdout(), render.Month(m, a.conv, a.theme))
		},
	}
}

// parseMonth parses YYYY-MM.
func parseMonth(s string) (calendar.GregorianMonth, error) {
	y, m, ok := strings.Cut(s, "-")
	if !ok {
		return calendar.GregorianMonth{}, fmt.Errorf("%w: %q is not YYYY-MM", calendar.ErrInvalidDate, s)
	}
	year, errY := strconv.Atoi(y)
	month, errM := strconv.Atoi(m)
	if errY != nil || errM != nil {
		return calendar.GregorianMonth{}, fmt.Errorf("%w: %q is not YYYY-MM", calendar.ErrInvalidDate, s)
	}
	return calendar.NewGregorianMonth(year, month)
}

func yearCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "year [YYYY]",
		Short:   "List the months of a lunar year and the day each begins",
		Example: "  amlich year 2020",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			year := a.conv.LunarFromJulianDays(a.today().JulianDays()).Year()
			if len(args) == 1 {
				var err error
				year, err = strconv.Atoi(args[0])
				if err != nil || year < 1 || year > 9999 {
					return fmt.Errorf("%w: year %q", calendar.ErrInvalidInput, args[0])
				}
			}

			months, err := a.conv.LunarYear(year)
			if err != nil {
				return err
			}
			return writeLine(cmd.OutOrStdout(), render.Year(year, months, a.theme))
		},
	}
}
