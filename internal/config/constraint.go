package config

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Constraint configures a NOT NULL or UNIQUE clause. In a document it is
// either a boolean or an object:
//
//	not_null: true
//	unique: {on_conflict: IGNORE}
type Constraint struct {
	OnConflict string `json:"on_conflict,omitempty" yaml:"on_conflict,omitempty"`

	disabled bool
}

// Enabled reports whether the constraint should be emitted. A nil Constraint
// and one decoded from false are disabled.
func (c *Constraint) Enabled() bool { return c != nil && !c.disabled }

// UnmarshalJSON accepts a boolean or an object.
func (c *Constraint) UnmarshalJSON(b []byte) error {
	var on bool
	if err := json.Unmarshal(b, &on); err == nil {
		*c = Constraint{disabled: !on}
		return nil
	}
	type plain Constraint
	var p plain
	if err := json.Unmarshal(b, &p); err != nil {
		return fmt.Errorf("constraint: want bool or object: %w", err)
	}
	*c = Constraint(p)
	return nil
}

// MarshalJSON writes true for a bare constraint.
func (c Constraint) MarshalJSON() ([]byte, error) {
	if c.disabled {
		return []byte("false"), nil
	}
	if c.OnConflict == "" {
		return []byte("true"), nil
	}
	type plain Constraint
	return json.Marshal(plain(c))
}

// UnmarshalYAML accepts a boolean or a mapping.
func (c *Constraint) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind == yaml.ScalarNode {
		var on bool
		if err := n.Decode(&on); err != nil {
			return fmt.Errorf("constraint: want bool or mapping: %w", err)
		}
		*c = Constraint{disabled: !on}
		return nil
	}
	type plain Constraint
	var p plain
	if err := n.Decode(&p); err != nil {
		return err
	}
	*c = Constraint(p)
	return nil
}
