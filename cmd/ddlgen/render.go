package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"sqlddl/internal/ddl"
	"sqlddl/internal/ddlgen"
	"sqlddl/internal/storage"
)

func (a *app) newRenderCmd() *cobra.Command {
	var fingerprint bool
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Print the CREATE TABLE statements of the document",
		Long: `render prints one statement per table in document order. Primary keys of
tables outside the document are looked up in the database given by --dsn;
without one, such references fall back to _rowid_.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.validate(cmd); err != nil {
				return err
			}

			var next ddl.Schema
			if sc := a.storageConfig(); sc.DSN != "" {
				repo, err := storage.New(cmd.Context(), sc)
				if err != nil {
					return fmt.Errorf("opening %s database: %w", sc.Kind, err)
				}
				defer repo.Close()
				next = repo
			}

			stmts, err := ddlgen.RenderDocument(cmd.Context(), ddlgen.DocumentSchema(a.doc, next), a.doc)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			for _, s := range stmts {
				if fingerprint {
					fmt.Fprintf(w, "-- %s fingerprint %s\n", s.Table, s.Fingerprint)
				}
				fmt.Fprintf(w, "%s;\n", s.SQL)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&fingerprint, "fingerprint", false, "precede each statement with its xxh3 fingerprint")
	return cmd
}
