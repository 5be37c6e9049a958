// Package forms evaluates declarative validation rules against submitted
// form fields. Rules are data, not control flow: each field carries an
// ordered chain of predicate+message pairs, every failing rule contributes
// its message, and a rule marked Bail is skipped once an earlier rule on
// the same field has failed.
package forms

import (
	"strconv"
	"strings"
)

// Rule is one named check in a field's chain.
type Rule struct {
	Check   func(value string) bool // true means the value passes
	Message string                  // surfaced when the check fails
	Bail    bool                    // skip when an earlier rule on this field failed
}

// Field pairs a submitted value with its rule chain. The raw value is
// trimmed once before evaluation; callers keep the untrimmed original for
// re-display.
type Field struct {
	Value string
	Rules []Rule
}

// Validate evaluates every field's chain and collects all failure messages
// in rule order. Bail semantics apply per field, never across fields.
// POST: returns nil when all rules pass
func Validate(fields []Field) []string {
	var messages []string
	for _, f := range fields {
		value := strings.TrimSpace(f.Value)
		failed := false
		for _, rule := range f.Rules {
			if rule.Bail && failed {
				continue
			}
			if !rule.Check(value) {
				messages = append(messages, rule.Message)
				failed = true
			}
		}
	}
	return messages
}

// Required passes when the value is non-empty.
func Required(value string) bool {
	return value != ""
}

// MaxLen returns a check that passes when the value has at most n characters.
func MaxLen(n int) func(string) bool {
	return func(value string) bool {
		return len(value) <= n
	}
}

// IntBetween returns a check that passes when the value parses as an
// integer in [lo, hi]. This is a strict range check, deliberately tighter
// than a digit-shape match.
func IntBetween(lo, hi int) func(string) bool {
	return func(value string) bool {
		n, err := strconv.Atoi(value)
		if err != nil {
			return false
		}
		return n >= lo && n <= hi
	}
}
