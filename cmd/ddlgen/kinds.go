package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"sqlddl/internal/storage"
)

func newKindsCmd() *cobra.Command {
	return &cobra.Command{
		Use:         "kinds",
		Short:       "List the registered storage kinds",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{noDocumentAnnoKey: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, k := range storage.ListKinds() {
				fmt.Fprintln(cmd.OutOrStdout(), k)
			}
			return nil
		},
	}
}
