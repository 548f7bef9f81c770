package main

import (
	"fmt"

	"github.com/dangerclosesec/crmboard"
	"github.com/spf13/cobra"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the crmctl version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "crmctl %s\n", crmboard.Version)
		},
	}
}
