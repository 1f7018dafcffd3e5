package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dassana-io/web-utils/internal/theme"
)

func newThemeCmd(st *state) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "theme",
		Short: "Read or change the stored theme",
		Long:  "Read or change the theme kept in local storage. A running demo follows changes made here.",
	}

	var palette bool
	get := &cobra.Command{
		Use:   "get",
		Short: "Print the current theme",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := st.openApp()
			if err != nil {
				return err
			}
			defer a.Close()

			t := a.Theme()
			fmt.Fprintln(cmd.OutOrStdout(), t)
			if palette {
				printPalette(cmd, theme.PaletteFor(t))
			}
			return nil
		},
	}
	get.Flags().BoolVar(&palette, "palette", false, "also print the theme colors")

	set := &cobra.Command{
		Use:       "set <dark|light>",
		Short:     "Store a theme",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{theme.Dark.String(), theme.Light.String()},
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := theme.Parse(args[0])
			if err != nil {
				return err
			}
			return st.setTheme(cmd, func(theme.Type) theme.Type { return t })
		},
	}

	toggle := &cobra.Command{
		Use:   "toggle",
		Short: "Switch between dark and light",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return st.setTheme(cmd, theme.Type.Toggle)
		},
	}

	cmd.AddCommand(get, set, toggle)
	return cmd
}

func (st *state) setTheme(cmd *cobra.Command, next func(theme.Type) theme.Type) error {
	a, err := st.openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.SetTheme(next(a.Theme())); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), a.Theme())
	return nil
}

func printPalette(cmd *cobra.Command, p theme.Palette) {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	rows := []struct {
		name string
		hex  string
	}{
		{"background", p.Background.Hex()},
		{"foreground", p.Foreground.Hex()},
		{"accent", p.Accent.Hex()},
		{"muted", p.Muted.Hex()},
		{"error", p.Error.Hex()},
		{"info", p.Info.Hex()},
		{"success", p.Success.Hex()},
		{"warning", p.Warning.Hex()},
	}
	for _, r := range rows {
		_, _ = fmt.Fprintf(w, "%s\t%s\n", r.name, r.hex)
	}
	_, _ = fmt.Fprintf(w, "contrast\t%.1f\n", p.Contrast())
	_ = w.Flush()
}
