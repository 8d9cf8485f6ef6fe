// Command ddlgen validates declarative table documents, renders them to
// SQLite CREATE TABLE statements and applies them to a database.
package main

import (
	"context"
	"os"
	"os/signal"

	log "github.com/sirupsen/logrus"

	"sqlddl/internal/metrics"
	_ "sqlddl/internal/storage/all"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := newRootCmd().ExecuteContext(ctx)
	stop()

	if ferr := metrics.Flush(); ferr != nil {
		log.WithError(ferr).Warn("metrics: flush failed")
	}
	if err != nil {
		os.Exit(1)
	}
}
