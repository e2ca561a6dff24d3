package types

import "strings"

// SelectorCondition is a boolean expression over platform and interpreter
// version that gates a recipe entry. An empty condition means the entry is
// unconditional.
type SelectorCondition struct {
	Terms []string
}

func (c SelectorCondition) IsZero() bool {
	return len(c.Terms) == 0
}

// Expression renders the condition in target selector grammar, combining
// terms with logical AND.
func (c SelectorCondition) Expression() string {
	return strings.Join(c.Terms, " and ")
}

// And returns a condition extended by one term. Empty terms are ignored.
func (c SelectorCondition) And(term string) SelectorCondition {
	if strings.TrimSpace(term) == "" {
		return c
	}
	return SelectorCondition{Terms: append(append([]string(nil), c.Terms...), term)}
}
