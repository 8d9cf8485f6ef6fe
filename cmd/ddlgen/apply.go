package main

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"sqlddl/internal/ddlgen"
	"sqlddl/internal/storage"
)

// tableLister is implemented by repositories that can enumerate their tables.
type tableLister interface {
	Tables(ctx context.Context) ([]string, error)
}

// listTables returns the tables in repo, or nil when the backend cannot list
// them.
func listTables(ctx context.Context, repo storage.Repository) ([]string, error) {
	l, ok := repo.(tableLister)
	if !ok {
		return nil, nil
	}
	return l.Tables(ctx)
}

func (a *app) newApplyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "apply",
		Short: "Create the tables of the document in the target database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.validate(cmd); err != nil {
				return err
			}
			sc := a.storageConfig()
			if sc.DSN == "" {
				return fmt.Errorf("apply: no DSN (use --dsn, DDLGEN_DSN or storage.dsn)")
			}

			repo, err := storage.New(cmd.Context(), sc)
			if err != nil {
				return fmt.Errorf("opening %s database: %w", sc.Kind, err)
			}
			defer repo.Close()

			start := time.Now()
			if err := ddlgen.ApplyDocument(cmd.Context(), repo, a.doc); err != nil {
				return err
			}
			fields := log.Fields{
				"kind":    sc.Kind,
				"applied": len(a.doc.Tables),
				"elapsed": time.Since(start).Round(time.Millisecond),
			}
			if names, err := listTables(cmd.Context(), repo); err != nil {
				log.WithError(err).Warn("listing tables failed")
			} else if names != nil {
				fields["tables"] = names
			}
			log.WithFields(fields).Info("apply complete")
			return nil
		},
	}
}
