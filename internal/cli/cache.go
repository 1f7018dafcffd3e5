package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/dassana-io/web-utils/internal/jsonutil"
	"github.com/dassana-io/web-utils/internal/storage"
)

// ErrNotCached is returned by cache get for unknown widgets.
var ErrNotCached = errors.New("widget is not cached")

func newCacheCmd(st *state) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect and edit the widget cache",
	}

	var selectPath string
	get := &cobra.Command{
		Use:   "get <widget>",
		Short: "Print cached widget data",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			wc, err := st.widgets()
			if err != nil {
				return err
			}
			data, ok, err := wc.Raw(args[0])
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("%s: %w", args[0], ErrNotCached)
			}
			if selectPath != "" {
				return printSelection(cmd.OutOrStdout(), data, selectPath)
			}
			return printJSON(cmd.OutOrStdout(), data)
		},
	}
	get.Flags().StringVar(&selectPath, "select", "", "JSONPath to print, e.g. $.items[*].name")

	var setPath string
	set := &cobra.Command{
		Use:   "set <widget> <json|->",
		Short: "Store widget data",
		Long: `Store widget data. Use - to read the JSON from stdin.

With --path the value replaces matches of a JSONPath inside the cached
data instead of the whole document.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			wc, err := st.widgets()
			if err != nil {
				return err
			}
			raw := []byte(args[1])
			if args[1] == "-" {
				if raw, err = io.ReadAll(cmd.InOrStdin()); err != nil {
					return err
				}
			}
			if setPath != "" {
				return setWidgetPath(cmd, wc, args[0], setPath, raw)
			}
			if !json.Valid(raw) {
				return fmt.Errorf("%s: %w", args[0], storage.ErrCorrupt)
			}
			return wc.SetWidget(args[0], json.RawMessage(raw))
		},
	}
	set.Flags().StringVar(&setPath, "path", "", "JSONPath of the values to replace")

	rm := &cobra.Command{
		Use:     "rm <widget>...",
		Aliases: []string{"delete"},
		Short:   "Remove cached widgets",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			wc, err := st.widgets()
			if err != nil {
				return err
			}
			for _, id := range args {
				if err := wc.Delete(id); err != nil {
					return err
				}
			}
			return nil
		},
	}

	ls := &cobra.Command{
		Use:   "ls",
		Short: "List cached widgets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			wc, err := st.widgets()
			if err != nil {
				return err
			}
			ids, err := wc.Keys()
			if err != nil {
				return err
			}
			for _, id := range ids {
				fmt.Fprintln(cmd.OutOrStdout(), id)
			}
			return nil
		},
	}

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove every cached widget",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			wc, err := st.widgets()
			if err != nil {
				return err
			}
			return wc.Clear()
		},
	}

	cmd.AddCommand(get, set, rm, ls, clearCmd)
	return cmd
}

func (st *state) widgets() (*storage.WidgetCache, error) {
	return storage.NewWidgetCache(st.cfg.WidgetDir(), st.cfg.Cache.TTL.Std(), storage.WithLogger(st.logger))
}

func setWidgetPath(cmd *cobra.Command, wc *storage.WidgetCache, id, path string, raw []byte) error {
	doc, ok, err := wc.Raw(id)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%s: %w", id, ErrNotCached)
	}

	var val any = string(raw)
	if json.Valid(raw) {
		val = json.RawMessage(raw)
	}
	updated, n, err := jsonutil.SetPath(doc, path, val)
	if err != nil {
		return err
	}
	if err := wc.SetWidget(id, json.RawMessage(updated)); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "updated %d\n", n)
	return nil
}

func printJSON(w io.Writer, data []byte) error {
	if isTerminal(w) {
		data = jsonutil.Color(jsonutil.PrettyBytes(data))
	} else {
		data = jsonutil.PrettyBytes(data)
	}
	if _, err := w.Write(data); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}

func printSelection(w io.Writer, data []byte, path string) error {
	results, err := jsonutil.GetPath(data, path)
	if err != nil {
		return err
	}
	for _, r := range results {
		if err := printJSON(w, []byte(r.Raw)); err != nil {
			return err
		}
	}
	return nil
}
