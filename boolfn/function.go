// Package boolfn defines vectorial functions over GF(2^n) whose differential
// properties are measured by the differential package.
//
// A Function pairs a field with one of a closed set of rules. Every Function
// is immutable after construction and safe for concurrent evaluation.
package boolfn

import (
	"errors"
	"fmt"
	"sort"

	"github.com/on-the-ground/delta_uniform_go/gf2n"
)

var (
	// ErrTraceZero is returned by NewTu when δ has absolute trace zero.
	ErrTraceZero = errors.New("tu parameter must have trace one")

	// ErrDicksonDegree is returned when a Dickson coefficient does not fit
	// in 256 bits.
	ErrDicksonDegree = errors.New("dickson degree too large")

	// ErrFieldMismatch is returned when a parameter is not an element of
	// the function's field.
	ErrFieldMismatch = errors.New("element outside field")
)

// Evaluator is anything that maps field elements to field elements.
type Evaluator interface {
	Evaluate(x gf2n.Elem) gf2n.Elem
	Field() *gf2n.Field
}

// Function is a field together with an evaluation rule.
type Function struct {
	field *gf2n.Field
	rule  Rule
}

// NewInverse returns x -> x^-1 with 0 -> 0.
func NewInverse(field *gf2n.Field) *Function {
	return &Function{field: field, rule: Inverse{}}
}

// NewTu returns the Tu function for delta, which must have trace one.
func NewTu(field *gf2n.Field, delta gf2n.Elem) (*Function, error) {
	if !field.Contains(delta) {
		return nil, fmt.Errorf("%w: tu δ=%v in %v", ErrFieldMismatch, delta, field)
	}
	if field.Trace(delta) == 0 {
		return nil, fmt.Errorf("%w: Tr(%v) = 0 in %v", ErrTraceZero, delta, field)
	}
	return &Function{
		field: field,
		rule:  Tu{Delta: delta, deltaInv: field.Inv(delta)},
	}, nil
}

// NewPolynomial returns the polynomial sum coeffs[e] * x^e. Zero
// coefficients are dropped.
func NewPolynomial(field *gf2n.Field, coeffs map[uint64]gf2n.Elem) (*Function, error) {
	terms := make([]Term, 0, len(coeffs))
	for e, c := range coeffs {
		if !field.Contains(c) {
			return nil, fmt.Errorf("%w: coefficient %v of x^%d in %v", ErrFieldMismatch, c, e, field)
		}
		if c != 0 {
			terms = append(terms, Term{Exponent: e, Coeff: c})
		}
	}
	sort.Slice(terms, func(i, j int) bool { return terms[i].Exponent > terms[j].Exponent })
	return &Function{field: field, rule: Polynomial{Terms: terms}}, nil
}

// NewDensePolynomial returns sum coeffs[i] * x^i.
func NewDensePolynomial(field *gf2n.Field, coeffs []gf2n.Elem) (*Function, error) {
	m := make(map[uint64]gf2n.Elem, len(coeffs))
	for i, c := range coeffs {
		m[uint64(i)] = c
	}
	return NewPolynomial(field, m)
}

// NewMonomial returns coeff * x^degree.
func NewMonomial(field *gf2n.Field, degree uint64, coeff gf2n.Elem) (*Function, error) {
	return NewPolynomial(field, map[uint64]gf2n.Elem{degree: coeff})
}

func (f *Function) Field() *gf2n.Field { return f.field }

// Rule returns the evaluation rule; switch on its concrete type to inspect it.
func (f *Function) Rule() Rule { return f.rule }

// FieldDegree returns n.
func (f *Function) FieldDegree() int { return f.field.Degree() }

// FieldOrder returns 2^n.
func (f *Function) FieldOrder() uint64 { return f.field.Order() }

// Evaluate returns f(x). x must be an element of the function's field.
func (f *Function) Evaluate(x gf2n.Elem) gf2n.Elem {
	switch r := f.rule.(type) {
	case Inverse:
		return f.field.Inv(x)
	case Tu:
		if f.field.Trace(f.field.Mul(r.Delta, x)) != 0 {
			x = f.field.Inv(x)
		}
		return f.field.Add(f.field.Inv(f.field.Add(x, r.Delta)), r.deltaInv)
	case Dickson:
		return evalTerms(f.field, r.Terms, x)
	case Polynomial:
		return evalTerms(f.field, r.Terms, x)
	default:
		panic(fmt.Sprintf("boolfn: unknown rule %T", r))
	}
}

func evalTerms(field *gf2n.Field, terms []Term, x gf2n.Elem) gf2n.Elem {
	var acc gf2n.Elem
	for _, t := range terms {
		acc = field.Add(acc, field.Mul(t.Coeff, field.Pow(x, t.Exponent)))
	}
	return acc
}

func (f *Function) String() string { return f.rule.String() }

// Derivative returns f(x+a) + f(x).
func Derivative(f Evaluator, x, a gf2n.Elem) gf2n.Elem {
	field := f.Field()
	return field.Add(f.Evaluate(field.Add(x, a)), f.Evaluate(x))
}

// RuleOf returns the rule behind ev, looking through decorators such as
// Cached. It returns nil for evaluators that carry no rule.
func RuleOf(ev Evaluator) Rule {
	if r, ok := ev.(interface{ Rule() Rule }); ok {
		return r.Rule()
	}
	return nil
}
