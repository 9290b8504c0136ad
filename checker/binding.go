package checker

import (
	"fmt"
	"strings"

	"github.com/polypheny/polytype/polytype"
)

// CallBinding gives a checker access to the operands of a call being validated.
type CallBinding interface {
	OperatorName() string
	OperandCount() int
	OperandType(i int) *polytype.Type
	// IsOperandNull reports whether the operand is the NULL literal.
	// With allowCast a NULL literal wrapped in a cast counts too.
	IsOperandNull(i int, allowCast bool) bool
	IsOperandLiteral(i int, allowCast bool) bool
	// OperandLiteralValue returns the value of a literal operand, nil for anything else.
	OperandLiteralValue(i int) interface{}
	Factory() *polytype.Factory
	NewValidationSignatureError() error
	NewError(operand int, format string, args ...interface{}) error
}

// Operand is a typed call argument, optionally a literal.
type Operand struct {
	Type    *polytype.Type
	Literal bool
	Value   interface{}
	// Cast marks a literal wrapped in a CAST.
	Cast bool
}

func TypeOperand(t *polytype.Type) Operand {
	return Operand{Type: t}
}

func LiteralOperand(t *polytype.Type, value interface{}) Operand {
	return Operand{Type: t, Literal: true, Value: value}
}

func NullOperand(f *polytype.Factory) Operand {
	return Operand{Type: f.CreateType(polytype.KindNull), Literal: true}
}

// Binding is a CallBinding over a fixed list of operands.
type Binding struct {
	Operator string
	// Checker provides the allowed signatures of signature errors, it may be nil.
	Checker  Checker
	Operands []Operand
	// Groups is the number of grouping keys of the enclosing aggregate query,
	// 0 for "GROUP BY ()" and -1 outside of aggregate queries.
	Groups int
	// Filtered is set for aggregate calls with a FILTER clause.
	Filtered bool
	factory  *polytype.Factory
}

func NewBinding(factory *polytype.Factory, operator string, checker Checker, operands ...Operand) *Binding {
	return &Binding{
		Operator: operator,
		Checker:  checker,
		Operands: operands,
		Groups:   -1,
		factory:  factory,
	}
}

// Check runs the binding's checker, after validating the operand count.
func (b *Binding) Check(throwOnFailure bool) (bool, error) {
	if b.Checker == nil {
		return true, nil
	}
	if !b.Checker.OperandCountRange().IsValidCount(len(b.Operands)) {
		if throwOnFailure {
			return false, b.NewValidationSignatureError()
		}
		return false, nil
	}
	return b.Checker.CheckOperandTypes(b, throwOnFailure)
}

func (b *Binding) OperatorName() string {
	return b.Operator
}

func (b *Binding) OperandCount() int {
	return len(b.Operands)
}

func (b *Binding) OperandType(i int) *polytype.Type {
	return b.Operands[i].Type
}

func (b *Binding) IsOperandNull(i int, allowCast bool) bool {
	op := b.Operands[i]
	if !op.Literal || op.Value != nil {
		return false
	}
	return allowCast || !op.Cast
}

func (b *Binding) IsOperandLiteral(i int, allowCast bool) bool {
	op := b.Operands[i]
	return op.Literal && (allowCast || !op.Cast)
}

func (b *Binding) OperandLiteralValue(i int) interface{} {
	if !b.Operands[i].Literal {
		return nil
	}
	return b.Operands[i].Value
}

func (b *Binding) GroupCount() int {
	return b.Groups
}

func (b *Binding) HasFilter() bool {
	return b.Filtered
}

func (b *Binding) Factory() *polytype.Factory {
	return b.factory
}

func (b *Binding) NewValidationSignatureError() error {
	var signatures string
	if b.Checker != nil {
		signatures = b.Checker.AllowedSignatures(b.Operator)
	}
	return &ValidationError{
		Operator:   b.Operator,
		Operand:    -1,
		Signatures: signatures,
		Message:    fmt.Sprintf("cannot apply '%s' to arguments of type %s", b.Operator, b.callSignature()),
	}
}

func (b *Binding) NewError(operand int, format string, args ...interface{}) error {
	err := &ValidationError{
		Operator: b.Operator,
		Operand:  operand,
		Message:  fmt.Sprintf(format, args...),
	}
	if operand >= 0 && operand < len(b.Operands) {
		err.Type = b.Operands[operand].Type
	}
	return err
}

func (b *Binding) callSignature() string {
	names := make([]string, len(b.Operands))
	for i := range b.Operands {
		names[i] = b.Operands[i].Type.String()
	}
	return aliasedSignature(b.Operator, names)
}

// ValidationError reports operands not matching an operator's signature.
type ValidationError struct {
	Operator string
	// Operand is the index of the offending operand, -1 if the call as a whole is wrong.
	Operand int
	Type    *polytype.Type
	// Signatures lists the supported forms, one per line.
	Signatures string
	Message    string
}

func (e *ValidationError) Error() string {
	var sb strings.Builder
	if e.Operand >= 0 {
		fmt.Fprintf(&sb, "operand %d of '%s': ", e.Operand, e.Operator)
	}
	sb.WriteString(e.Message)
	if e.Signatures != "" {
		sb.WriteString(". Supported form(s): ")
		sb.WriteString(e.Signatures)
	}
	return sb.String()
}

// aliasedSignature renders a signature like 'SUBSTRING(<CHARACTER>, <INTEGER>)'.
func aliasedSignature(opName string, typeNames []string) string {
	var sb strings.Builder
	sb.WriteString("'")
	sb.WriteString(opName)
	sb.WriteString("(")
	for i, name := range typeNames {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString("<")
		sb.WriteString(strings.ToUpper(name))
		sb.WriteString(">")
	}
	sb.WriteString(")'")
	return sb.String()
}
