package cli

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"
	"golang.org/x/term"

	"github.com/dassana-io/web-utils/internal/format"
	"github.com/dassana-io/web-utils/internal/jsonutil"
	"github.com/dassana-io/web-utils/internal/urlparams"
)

// ErrBadQuery is returned for a --query value without "=".
var ErrBadQuery = errors.New("query must be key=value")

type fetchOptions struct {
	widget     string
	query      []string
	ndjson     bool
	csv        bool
	selectPath string
}

func newFetchCmd(st *state) *cobra.Command {
	var opts fetchOptions
	cmd := &cobra.Command{
		Use:   "fetch <path>",
		Short: "GET a path from the API and pretty print it",
		Long: `GET a path from the API and pretty print the JSON response.

Requests carry the stored bearer token and a per-run request id. Failed
idempotent requests are retried with backoff. With --widget the response
is cached, and cached data is printed when the API is unavailable.`,
		Example: `  webutils fetch /alerts --query severity=high --query limit=10
  webutils fetch /events --ndjson --select '$.id'
  webutils fetch /alerts --csv`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := withQuery(args[0], opts.query)
			if err != nil {
				return err
			}
			return st.fetch(cmd, path, opts)
		},
	}
	f := cmd.Flags()
	f.StringVar(&opts.widget, "widget", "", "cache the response under this widget id")
	f.StringArrayVarP(&opts.query, "query", "q", nil, "query parameter key=value (repeatable)")
	f.BoolVar(&opts.ndjson, "ndjson", false, "treat the response as newline delimited JSON")
	f.BoolVar(&opts.csv, "csv", false, "print the response as CSV")
	f.StringVar(&opts.selectPath, "select", "", "JSONPath to print from each document")
	cmd.MarkFlagsMutuallyExclusive("ndjson", "widget")
	cmd.MarkFlagsMutuallyExclusive("csv", "select")
	return cmd
}

// withQuery appends repeated key=value pairs to path.
func withQuery(path string, pairs []string) (string, error) {
	if len(pairs) == 0 {
		return path, nil
	}
	params := make(map[string]any)
	for _, p := range pairs {
		k, v, ok := strings.Cut(p, "=")
		if !ok || k == "" {
			return "", fmt.Errorf("%q: %w", p, ErrBadQuery)
		}
		switch cur := params[k].(type) {
		case nil:
			params[k] = v
		case string:
			params[k] = []string{cur, v}
		case []string:
			params[k] = append(cur, v)
		}
	}
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + urlparams.Stringify(params), nil
}

func (st *state) fetch(cmd *cobra.Command, path string, opts fetchOptions) error {
	a, err := st.openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	if opts.ndjson {
		return a.Client().StreamLines(ctx, path, func(line gjson.Result) error {
			return printDoc(out, []byte(line.Raw), opts)
		})
	}

	var data []byte
	if opts.widget != "" {
		data, err = a.FetchWidget(ctx, opts.widget, path)
		if err != nil && data == nil {
			return err
		}
		if err != nil {
			st.logger.Warn().Err(err).Str("widget", opts.widget).Msg("printing cached data")
		}
	} else if data, err = a.Client().Raw(ctx, http.MethodGet, path, nil); err != nil {
		return err
	}
	st.logger.Debug().Str("path", path).Str("size", format.Bytes(float64(len(data)), nil)).Msg("fetched")
	return printDoc(out, data, opts)
}

func printDoc(w io.Writer, data []byte, opts fetchOptions) error {
	switch {
	case opts.csv:
		s, err := jsonutil.ToCSVBytes(data, jsonutil.CSVOptions{})
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, s+"\n")
		return err
	case opts.selectPath != "":
		return printSelection(w, data, opts.selectPath)
	}
	return printJSON(w, data)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
