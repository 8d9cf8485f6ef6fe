package main

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"sqlddl/internal/config"
	"sqlddl/internal/metrics"
	"sqlddl/internal/metrics/datadog"
	"sqlddl/internal/metrics/prompush"
	"sqlddl/internal/storage"
)

const (
	defaultKind       = "sqlite"
	defaultPushURL    = "http://localhost:9091"
	defaultJob        = "ddlgen"
	noDocumentAnnoKey = "ddlgen/no-document"
)

// app carries flag values and the loaded document between cobra hooks.
type app struct {
	cfgPath        string
	dsn            string
	kind           string
	metricsBackend string
	pushURL        string
	statsdAddr     string
	logFormat      string
	verbose        bool

	doc config.Document
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "ddlgen",
		Short: "Render and apply SQLite CREATE TABLE statements from a table document",
		Long: `ddlgen reads a JSON or YAML document describing tables and columns,
validates it, and renders one CREATE TABLE statement per table. Foreign keys
without an explicit column reference the primary key of the target table,
looked up in the document or the target database, or _rowid_ when it has none.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			a.setupLogging()
			if cmd.Annotations[noDocumentAnnoKey] == "" {
				if err := a.loadDocument(); err != nil {
					return err
				}
			}
			a.setupMetrics()
			return nil
		},
	}

	f := root.PersistentFlags()
	f.StringVar(&a.cfgPath, "config", "", "path to the table document (.json, .yaml or .yml)")
	f.StringVar(&a.dsn, "dsn", "", "database DSN (env DDLGEN_DSN, then document storage.dsn)")
	f.StringVar(&a.kind, "kind", "", "storage kind (document storage.kind, then sqlite)")
	f.StringVar(&a.metricsBackend, "metrics-backend", "", "metrics backend: pushgateway, datadog or none (env METRICS_BACKEND)")
	f.StringVar(&a.pushURL, "pushgateway-url", "", "Pushgateway URL (env PUSHGATEWAY_URL)")
	f.StringVar(&a.statsdAddr, "statsd-addr", "", "DogStatsD address (env DD_AGENT_ADDR)")
	f.StringVar(&a.logFormat, "log-format", "text", "log format: text or json")
	f.BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(
		a.newValidateCmd(),
		a.newRenderCmd(),
		a.newApplyCmd(),
		newKindsCmd(),
	)
	return root
}

func (a *app) setupLogging() {
	log.SetOutput(os.Stderr)
	if a.logFormat == "json" {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{DisableTimestamp: true})
	}
	if a.verbose {
		log.SetLevel(log.DebugLevel)
	} else {
		log.SetLevel(log.InfoLevel)
	}
}

func (a *app) loadDocument() error {
	if a.cfgPath == "" {
		return fmt.Errorf("--config is required")
	}
	doc, err := config.Load(a.cfgPath)
	if err != nil {
		return err
	}
	a.doc = doc
	log.WithFields(log.Fields{"path": a.cfgPath, "tables": len(doc.Tables)}).Debug("loaded document")
	return nil
}

// storageConfig resolves the target database: flag → env → document → default.
func (a *app) storageConfig() storage.Config {
	dsn := pick(a.dsn, os.Getenv("DDLGEN_DSN"), a.doc.Storage.DSN)
	kind := pick(a.kind, a.doc.Storage.Kind, defaultKind)
	return storage.Config{Kind: kind, DSN: dsn}
}

// setupMetrics installs the selected backend. A backend that fails to
// initialize leaves the nop backend in place.
func (a *app) setupMetrics() {
	metrics.SetJob(pick(a.doc.Job, defaultJob))

	name := pick(a.metricsBackend, os.Getenv("METRICS_BACKEND"))
	switch name {
	case "pushgateway":
		url := pick(a.pushURL, os.Getenv("PUSHGATEWAY_URL"), defaultPushURL)
		b, err := prompush.NewBackend(pick(a.doc.Job, defaultJob), url)
		if err != nil {
			log.WithError(err).Warn("metrics: pushgateway backend unavailable; using nop")
			return
		}
		log.WithFields(log.Fields{"backend": name, "url": url}).Debug("metrics: enabled")
		metrics.SetBackend(b)

	case "datadog":
		addr := pick(a.statsdAddr, os.Getenv("DD_AGENT_ADDR"))
		b, err := datadog.NewBackend(datadog.Config{Addr: addr})
		if err != nil {
			log.WithError(err).Warn("metrics: datadog backend unavailable; using nop")
			return
		}
		log.WithFields(log.Fields{"backend": name, "addr": addr}).Debug("metrics: enabled")
		metrics.SetBackend(b)

	case "", "none":
		log.Debug("metrics: disabled")

	default:
		log.Warnf("metrics: unknown backend %q; metrics disabled", name)
	}
}

// pick returns the first non-empty value.
func pick(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
