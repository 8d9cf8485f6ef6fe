package storage

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"

	"sqlddl/internal/ddl"
	"sqlddl/internal/metrics"
)

// CreateTable builds a table named name, lets configure add its columns,
// renders it against repo and executes the result.
//
// Render failures (a *ddl.SchemaLookupError) are returned unchanged and
// nothing is executed. Execution failures are returned as *ddl.ExecutionError.
func CreateTable(
	ctx context.Context,
	repo Repository,
	name string,
	opts ddl.TableOptions,
	configure func(t *ddl.TableSpec),
) error {
	t := ddl.NewTableSpec(name, opts)
	if configure != nil {
		configure(t)
	}
	return ExecTable(ctx, repo, nil, t)
}

// ExecTable renders an already configured TableSpec and executes it on repo.
// Primary-key lookups go to schema, or to repo itself when schema is nil.
func ExecTable(ctx context.Context, repo Repository, schema ddl.Schema, t *ddl.TableSpec) error {
	if schema == nil {
		schema = repo
	}
	opts := t.Options()
	logger := log.WithFields(log.Fields{
		"table":         t.Name(),
		"temporary":     opts.Temporary,
		"without_rowid": opts.WithoutRowID,
	})
	if log.IsLevelEnabled(log.DebugLevel) {
		cols := make([]string, 0, len(t.Columns()))
		for _, c := range t.Columns() {
			cols = append(cols, c.Name()+" "+c.Type().String())
		}
		logger.WithField("columns", cols).Debug("rendering")
	}

	start := time.Now()
	stmt, err := t.Render(ctx, schema)
	metrics.RecordStep("render", err, time.Since(start))
	if err != nil {
		logger.WithError(err).Error("render failed")
		return err
	}
	metrics.RecordStatement("rendered")

	logger.WithField("sql", stmt).Debug("executing")
	start = time.Now()
	err = repo.Exec(ctx, stmt)
	metrics.RecordStep("exec", err, time.Since(start))
	if err != nil {
		logger.WithError(err).Error("execute failed")
		metrics.RecordStatement("failed")
		return &ddl.ExecutionError{Statement: stmt, Err: err}
	}
	metrics.RecordStatement("executed")
	return nil
}
