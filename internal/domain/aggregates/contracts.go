package aggregates

import "strings"

// Contract names an aggregate. Every write method runs in a transaction the
// aggregate opens itself.
type Contract struct {
	// Name prefixes every operation label, e.g. "Shop.Order".
	Name  string
	Notes string
}

// Aggregate is implemented by every write-side aggregate.
type Aggregate interface {
	Contract() Contract
}

// Op returns the operation label used for errors, logs and metrics.
func (c Contract) Op(action string) string {
	action = strings.TrimSpace(action)
	if c.Name == "" {
		return action
	}
	if action == "" {
		return c.Name
	}
	return c.Name + "." + action
}
