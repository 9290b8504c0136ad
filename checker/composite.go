package checker

import (
	"fmt"
	"strings"
)

// Composition is the way a composite checker combines its rules.
type Composition int

const (
	CompositionAnd Composition = iota
	CompositionOr
	// CompositionSequence checks the i-th operand with the i-th rule.
	CompositionSequence
	// CompositionRepeat checks every operand with every rule.
	CompositionRepeat
)

func (c Composition) String() string {
	switch c {
	case CompositionAnd:
		return "AND"
	case CompositionOr:
		return "OR"
	case CompositionSequence:
		return "SEQUENCE"
	case CompositionRepeat:
		return "REPEAT"
	}
	panic("impossible, composition switch bug")
}

// Composite combines several checkers.
// It is a SingleChecker as long as all of its rules are.
type Composite struct {
	composition       Composition
	rules             []Checker
	allowedSignatures string
	rng               OperandCountRange
}

// Or passes if any of the rules passes.
func Or(rules ...Checker) *Composite {
	return &Composite{composition: CompositionOr, rules: rules}
}

// And passes if all of the rules pass.
func And(rules ...Checker) *Composite {
	return &Composite{composition: CompositionAnd, rules: rules}
}

// Sequence checks each operand with the corresponding single operand rule.
func Sequence(allowedSignatures string, rules ...SingleChecker) *Composite {
	return &Composite{composition: CompositionSequence, rules: singleRules(rules), allowedSignatures: allowedSignatures}
}

// Repeat checks all operands with all of the rules, the operand count must be in range.
func Repeat(rng OperandCountRange, rules ...SingleChecker) *Composite {
	return &Composite{composition: CompositionRepeat, rules: singleRules(rules), rng: rng}
}

func singleRules(rules []SingleChecker) []Checker {
	out := make([]Checker, len(rules))
	for i := range rules {
		out[i] = rules[i]
	}
	return out
}

func (c *Composite) Rules() []Checker {
	return c.rules
}

func (c *Composite) Composition() Composition {
	return c.composition
}

func (c *Composite) single(i int) SingleChecker {
	rule, ok := c.rules[i].(SingleChecker)
	if !ok {
		panic(fmt.Sprintf("%T can't check a single operand", c.rules[i]))
	}
	return rule
}

func (c *Composite) CheckOperandTypes(b CallBinding, throwOnFailure bool) (bool, error) {
	if c.check(b) {
		return true, nil
	}
	if !throwOnFailure {
		return false, nil
	}
	if c.composition == CompositionOr {
		// Let the alternatives report a more specific error.
		for _, rule := range c.rules {
			if _, err := rule.CheckOperandTypes(b, true); err != nil {
				return false, err
			}
		}
	}
	return false, b.NewValidationSignatureError()
}

func (c *Composite) check(b CallBinding) bool {
	switch c.composition {
	case CompositionRepeat:
		if !c.rng.IsValidCount(b.OperandCount()) {
			return false
		}
		for operand := 0; operand < b.OperandCount(); operand++ {
			for i := range c.rules {
				if ok, _ := c.single(i).CheckSingleOperandType(b, operand, 0, false); !ok {
					return false
				}
			}
		}
		return true

	case CompositionSequence:
		if b.OperandCount() != len(c.rules) {
			return false
		}
		for i := range c.rules {
			if ok, _ := c.single(i).CheckSingleOperandType(b, i, 0, false); !ok {
				return false
			}
		}
		return true

	case CompositionAnd:
		for _, rule := range c.rules {
			if ok, _ := rule.CheckOperandTypes(b, false); !ok {
				return false
			}
		}
		return true

	case CompositionOr:
		for _, rule := range c.rules {
			if ok, _ := rule.CheckOperandTypes(b, false); ok {
				return true
			}
		}
		return false
	}
	panic("impossible, composition switch bug")
}

func (c *Composite) CheckSingleOperandType(b CallBinding, operand, formal int, throwOnFailure bool) (bool, error) {
	failures := 0
	for i := range c.rules {
		if ok, _ := c.single(i).CheckSingleOperandType(b, operand, formal, false); !ok {
			failures++
		}
	}
	var ok bool
	switch c.composition {
	case CompositionAnd:
		ok = failures == 0
	case CompositionOr:
		ok = failures < len(c.rules)
	default:
		panic(fmt.Sprintf("%s composite can't check a single operand", c.composition))
	}
	if !ok && throwOnFailure {
		for i := range c.rules {
			if _, err := c.single(i).CheckSingleOperandType(b, operand, formal, true); err != nil {
				return false, err
			}
		}
		return false, b.NewValidationSignatureError()
	}
	return ok, nil
}

func (c *Composite) OperandCountRange() OperandCountRange {
	switch c.composition {
	case CompositionRepeat:
		return c.rng
	case CompositionSequence:
		return CountOf(len(c.rules))
	}

	ranges := make([]OperandCountRange, len(c.rules))
	for i := range c.rules {
		ranges[i] = c.rules[i].OperandCountRange()
	}
	min, max := -1, 0
	for _, rng := range ranges {
		if min == -1 || rng.Min() < min {
			min = rng.Min()
		}
		if max != -1 && (rng.Max() == -1 || rng.Max() > max) {
			max = rng.Max()
		}
	}
	if min == -1 {
		min = 0
	}
	composite := compositeRange{
		composition: c.composition,
		ranges:      ranges,
		min:         min,
		max:         max,
	}
	if max == -1 {
		return composite
	}
	for count := min; count <= max; count++ {
		if !composite.IsValidCount(count) {
			return composite
		}
	}
	return CountBetween(min, max)
}

func (c *Composite) AllowedSignatures(opName string) string {
	if c.allowedSignatures != "" {
		return c.allowedSignatures
	}
	if c.composition == CompositionSequence {
		panic("sequence checkers need explicit allowed signatures")
	}
	var sb strings.Builder
	for i, rule := range c.rules {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(rule.AllowedSignatures(opName))
		if c.composition == CompositionAnd {
			break
		}
	}
	return sb.String()
}

func (c *Composite) Consistency() Consistency {
	return ConsistencyNone
}

func (c *Composite) IsOptional(i int) bool {
	for _, rule := range c.rules {
		if rule.IsOptional(i) {
			return true
		}
	}
	return false
}
