package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"sqlddl/internal/config"
)

var errInvalidDocument = errors.New("document has errors")

func (a *app) newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check the document for errors and print every issue found",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.validate(cmd)
		},
	}
}

// validate prints every issue and fails when any is an error.
func (a *app) validate(cmd *cobra.Command) error {
	issues := config.ValidateDocument(a.doc)
	for _, iss := range issues {
		fmt.Fprintln(cmd.ErrOrStderr(), iss.Error())
	}
	if config.HasErrors(issues) {
		return fmt.Errorf("%s: %w", a.cfgPath, errInvalidDocument)
	}
	return nil
}
