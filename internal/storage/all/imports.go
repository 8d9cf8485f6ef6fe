// Package all wires the built-in storage backends into the storage factory.
//
// It exists purely for side effects: a blank import runs each backend's init,
// which registers its factory under its kind name ("sqlite").
package all

import (
	_ "sqlddl/internal/storage/sqlite"
)
