package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

var errFileNotFound = errors.New("file not found")

func newCatCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "cat <module> <subpath>",
		Short: "Print a module file, resolved the way the server resolves it",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, reg, err := opts.registry()
			if err != nil {
				return err
			}
			m, err := reg.Module(args[0])
			if err != nil {
				return err
			}
			f, err := m.File(args[1])
			if err != nil {
				return err
			}
			if !f.Exists() {
				return fmt.Errorf("%w: %s/%s", errFileNotFound, args[0], args[1])
			}
			rc, err := f.Open()
			if err != nil {
				return err
			}
			defer rc.Close()
			_, err = io.Copy(cmd.OutOrStdout(), rc)
			return err
		},
	}
}
