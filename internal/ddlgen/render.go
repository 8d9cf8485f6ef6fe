package ddlgen

import (
	"context"
	"fmt"
	"runtime"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/zeebo/xxh3"
	"golang.org/x/sync/errgroup"

	"sqlddl/internal/config"
	"sqlddl/internal/ddl"
	"sqlddl/internal/metrics"
	"sqlddl/internal/storage"
)

// Statement is one rendered CREATE TABLE statement.
type Statement struct {
	Table       string
	SQL         string
	Fingerprint string
}

// Fingerprint returns a stable 64-bit hex digest of sql, suitable for
// detecting schema drift between runs.
func Fingerprint(sql string) string {
	return fmt.Sprintf("%016x", xxh3.HashString(sql))
}

// documentSchema answers primary-key lookups for tables declared in a
// document, deferring to next for everything else.
type documentSchema struct {
	pks  map[string][]string
	next ddl.Schema
}

// DocumentSchema returns a Schema that resolves tables declared in doc from
// their declared primary-key column (or none), and all other tables through
// next, which may be nil. Table names match case-insensitively, as in SQLite.
func DocumentSchema(doc config.Document, next ddl.Schema) ddl.Schema {
	s := documentSchema{pks: make(map[string][]string, len(doc.Tables)), next: next}
	for _, t := range doc.Tables {
		var pk []string
		for _, c := range t.Columns {
			if c.PrimaryKey != nil {
				pk = append(pk, c.Name)
			}
		}
		s.pks[strings.ToLower(t.Name)] = pk
	}
	return s
}

func (s documentSchema) PrimaryKey(ctx context.Context, table string) ([]string, error) {
	if pk, ok := s.pks[strings.ToLower(table)]; ok {
		return pk, nil
	}
	if s.next == nil {
		return nil, nil
	}
	return s.next.PrimaryKey(ctx, table)
}

// RenderDocument renders every table of doc against schema. Tables are
// rendered concurrently, each on its own TableSpec; the result keeps document
// order. The first failure cancels the rest and no statements are returned.
// schema must be safe for concurrent use.
func RenderDocument(ctx context.Context, schema ddl.Schema, doc config.Document) ([]Statement, error) {
	out := make([]Statement, len(doc.Tables))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, t := range doc.Tables {
		g.Go(func() error {
			spec, err := Spec(t)
			if err != nil {
				return err
			}
			start := time.Now()
			sql, err := spec.Render(gctx, schema)
			metrics.RecordStep("render", err, time.Since(start))
			if err != nil {
				return fmt.Errorf("ddlgen: render %q: %w", t.Name, err)
			}
			metrics.RecordStatement("rendered")
			out[i] = Statement{Table: t.Name, SQL: sql, Fingerprint: Fingerprint(sql)}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// ApplyDocument creates the tables of doc on repo in document order. Primary
// keys of tables declared in doc come from the document, so forward and self
// references resolve as RenderDocument renders them; other tables are looked
// up on repo. It stops at the first failure.
func ApplyDocument(ctx context.Context, repo storage.Repository, doc config.Document) error {
	schema := DocumentSchema(doc, repo)
	for _, t := range doc.Tables {
		spec, err := Spec(t)
		if err != nil {
			return err
		}
		log.WithFields(log.Fields{"table": t.Name, "columns": len(t.Columns)}).Info("creating table")
		if err := storage.ExecTable(ctx, repo, schema, spec); err != nil {
			return fmt.Errorf("ddlgen: create %q: %w", t.Name, err)
		}
	}
	return nil
}
