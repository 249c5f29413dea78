package main

import (
	"errors"
	"fmt"

	"github.com/goliatone/go-contio"
	"github.com/spf13/cobra"
)

func newPasswordCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "password",
		Short: "Password policy helpers",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "check <password>",
		Short: "Show which sign up requirements a password satisfies",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			satisfied := contio.EvaluatePassword(args[0])
			out := cmd.OutOrStdout()

			for _, req := range contio.AllPasswordRequirements() {
				mark := " "
				if satisfied.Has(req) {
					mark = "x"
				}
				fmt.Fprintf(out, "[%s] %s\n", mark, req)
			}

			if err := contio.ValidatePassword(args[0]); err != nil {
				return errors.New(contio.ServiceErrorMessage(err))
			}
			return nil
		},
	})

	return cmd
}
