package cli

import (
	"errors"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

// ErrEmptyToken is returned by login without a token.
var ErrEmptyToken = errors.New("empty token")

func newLoginCmd(st *state) *cobra.Command {
	return &cobra.Command{
		Use:   "login <token|->",
		Short: "Store the API bearer token",
		Long:  "Store the API bearer token in local storage. Use - to read it from stdin.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			token := args[0]
			if token == "-" {
				b, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return err
				}
				token = strings.TrimSpace(string(b))
			}
			if token == "" {
				return ErrEmptyToken
			}

			a, err := st.openApp()
			if err != nil {
				return err
			}
			defer a.Close()
			return a.Login(token)
		},
	}
}

func newLogoutCmd(st *state) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored API token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := st.openApp()
			if err != nil {
				return err
			}
			defer a.Close()
			return a.Logout()
		},
	}
}
