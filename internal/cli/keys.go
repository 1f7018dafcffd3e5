package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dassana-io/web-utils/internal/input/key"
	"github.com/dassana-io/web-utils/internal/input/keymap"
)

func newKeysCmd(st *state) *cobra.Command {
	var osName string
	cmd := &cobra.Command{
		Use:   "keys",
		Short: "List keyboard shortcuts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			os := key.CurrentOS()
			if osName == "" {
				osName = st.cfg.UI.OS
			}
			if osName != "" {
				var err error
				if os, err = key.ParseOS(osName); err != nil {
					return err
				}
			}

			km := keymap.Default()
			if st.cfg.Paths.Keymap != "" {
				user, err := keymap.NewLoader(st.logger).LoadFile(st.cfg.Paths.Keymap)
				if err != nil {
					return err
				}
				km = km.Merge(user)
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			for _, cat := range keymap.GroupByCategory(km.Bindings) {
				_, _ = fmt.Fprintf(w, "%s\n", cat.Name)
				for _, b := range cat.Bindings {
					desc := b.Description
					if desc == "" {
						desc = b.Action
					}
					when := ""
					if b.When != "" {
						when = "when " + b.When
					}
					_, _ = fmt.Fprintf(w, "  %s\t%s\t%s\n", b.Label(os), desc, when)
				}
			}
			return w.Flush()
		},
	}
	cmd.Flags().StringVar(&osName, "os", "", "label keys for mac, windows or linux")
	return cmd
}
