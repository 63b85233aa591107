package filter

import (
	"fmt"
	"strings"
)

// MaxConditionsPerGroup is the maximum number of conditions per filter group.
const MaxConditionsPerGroup = 32

// Kind identifies the shape of a Condition.
type Kind int

const (
	// KindMatch is an exact value match on a keyword field.
	KindMatch Kind = iota
	// KindContains is a case-insensitive literal substring match on a text field.
	KindContains
	// KindAnyOf is a disjunction of child conditions.
	KindAnyOf
	// KindAllOf is a conjunction of child conditions.
	KindAllOf
)

// Expression is a structured filter with must/must_not boolean semantics.
// Disjunctions are expressed as AnyOf conditions inside Must.
type Expression struct {
	must    []Condition
	mustNot []Condition
}

// NewExpression validates and creates a filter Expression.
func NewExpression(must, mustNot []Condition) (Expression, error) {
	if len(must) > MaxConditionsPerGroup {
		return Expression{}, fmt.Errorf("too many must conditions (max %d)", MaxConditionsPerGroup)
	}
	if len(mustNot) > MaxConditionsPerGroup {
		return Expression{}, fmt.Errorf("too many must_not conditions (max %d)", MaxConditionsPerGroup)
	}
	return Expression{must: must, mustNot: mustNot}, nil
}

// Must returns the conditions that all have to hold.
func (e Expression) Must() []Condition { return e.must }

// MustNot returns the conditions that must not hold.
func (e Expression) MustNot() []Condition { return e.mustNot }

// IsEmpty reports whether the expression has no conditions.
func (e Expression) IsEmpty() bool {
	return len(e.must) == 0 && len(e.mustNot) == 0
}

// Condition is a single filter clause or a boolean group of clauses.
type Condition struct {
	kind     Kind
	key      string
	value    string
	children []Condition
}

// NewMatch creates an exact match condition.
func NewMatch(key, value string) (Condition, error) {
	if key == "" {
		return Condition{}, fmt.Errorf("filter key is required")
	}
	if value == "" {
		return Condition{}, fmt.Errorf("match value is required for key %q", key)
	}
	return Condition{kind: KindMatch, key: key, value: value}, nil
}

// NewContains creates a case-insensitive substring condition. The value is a
// literal: backends escape it for their own query dialect.
func NewContains(key, value string) (Condition, error) {
	if key == "" {
		return Condition{}, fmt.Errorf("filter key is required")
	}
	if value == "" {
		return Condition{}, fmt.Errorf("contains value is required for key %q", key)
	}
	return Condition{kind: KindContains, key: key, value: value}, nil
}

// NewAnyOf creates a disjunction. At least one child is required.
func NewAnyOf(children ...Condition) (Condition, error) {
	if err := checkGroup(children); err != nil {
		return Condition{}, err
	}
	return Condition{kind: KindAnyOf, children: children}, nil
}

// NewAllOf creates a conjunction. At least one child is required.
func NewAllOf(children ...Condition) (Condition, error) {
	if err := checkGroup(children); err != nil {
		return Condition{}, err
	}
	return Condition{kind: KindAllOf, children: children}, nil
}

func checkGroup(children []Condition) error {
	if len(children) == 0 {
		return fmt.Errorf("group requires at least one condition")
	}
	if len(children) > MaxConditionsPerGroup {
		return fmt.Errorf("too many grouped conditions (max %d)", MaxConditionsPerGroup)
	}
	return nil
}

// Kind returns the condition shape.
func (c Condition) Kind() Kind { return c.kind }

// Key returns the field name (empty for groups).
func (c Condition) Key() string { return c.key }

// Value returns the match or contains operand (empty for groups).
func (c Condition) Value() string { return c.value }

// Children returns the grouped conditions of an AnyOf/AllOf.
func (c Condition) Children() []Condition { return c.children }

// IsGroup reports whether this is an AnyOf or AllOf condition.
func (c Condition) IsGroup() bool { return c.kind == KindAnyOf || c.kind == KindAllOf }

// Eval evaluates the condition against a flat field map. Contains compares
// case-insensitively; Match compares exactly. Used by in-process stores.
func (c Condition) Eval(fields map[string]string) bool {
	switch c.kind {
	case KindMatch:
		return fields[c.key] == c.value
	case KindContains:
		return containsFold(fields[c.key], c.value)
	case KindAnyOf:
		for _, ch := range c.children {
			if ch.Eval(fields) {
				return true
			}
		}
		return false
	case KindAllOf:
		for _, ch := range c.children {
			if !ch.Eval(fields) {
				return false
			}
		}
		return true
	}
	return false
}

// Eval reports whether fields satisfy every must and no must_not condition.
func (e Expression) Eval(fields map[string]string) bool {
	for _, c := range e.must {
		if !c.Eval(fields) {
			return false
		}
	}
	for _, c := range e.mustNot {
		if c.Eval(fields) {
			return false
		}
	}
	return true
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
