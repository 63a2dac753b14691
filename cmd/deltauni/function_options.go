package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/on-the-ground/delta_uniform_go/boolfn"
	"github.com/on-the-ground/delta_uniform_go/differential"
	"github.com/on-the-ground/delta_uniform_go/effects/concurrency"
	"github.com/on-the-ground/delta_uniform_go/gf2n"
	"github.com/restic/chunker"
	"github.com/spf13/pflag"
	"go.uber.org/multierr"
)

var functionNames = []string{"inverse", "tu", "dickson", "polynomial", "monomial"}

// elemValue adapts a gf2n.Elem to pflag.Value.
type elemValue struct{ e *gf2n.Elem }

func (v elemValue) String() string {
	if v.e == nil {
		return "0x0"
	}
	return v.e.String()
}

func (v elemValue) Set(s string) error { return v.e.UnmarshalText([]byte(s)) }

func (elemValue) Type() string { return "elem" }

// FunctionOptions selects the function under test and how it is searched.
type FunctionOptions struct {
	Degree        int
	Modulus       gf2n.Elem
	Function      string
	Delta         gf2n.Elem
	DicksonDegree uint64
	Alpha         gf2n.Elem
	Coeffs        []string
	Strategy      string
	Cached        bool
	Workers       int
	Progress      bool
}

func (opts *FunctionOptions) AddFlags(f *pflag.FlagSet) {
	f.IntVarP(&opts.Degree, "degree", "n", 8, "field extension `n` of GF(2^n)")
	f.Var(elemValue{&opts.Modulus}, "modulus", "reduction polynomial `p` of degree --degree replacing the default one")
	f.StringVarP(&opts.Function, "function", "f", "inverse", "function `name` ("+strings.Join(functionNames, ", ")+")")
	f.Var(elemValue{&opts.Delta}, "delta", "tu parameter δ, must have trace one")
	f.Uint64Var(&opts.DicksonDegree, "dickson-degree", 5, "dickson polynomial `degree`")
	f.Var(elemValue{&opts.Alpha}, "alpha", "dickson parameter α")
	f.StringArrayVar(&opts.Coeffs, "coeff", nil, "polynomial term `e=c` (may be repeated)")
	f.StringVarP(&opts.Strategy, "strategy", "s", "lookup", "search `strategy` (naive, lookup)")
	f.BoolVar(&opts.Cached, "cached", false, "memoize function values")
	f.IntVarP(&opts.Workers, "workers", "j", 0, "`count` of goroutines per level (0 = GOMAXPROCS)")
	f.BoolVar(&opts.Progress, "progress", false, "show a progress bar on stderr")
}

func (opts *FunctionOptions) Validate() error {
	var err error
	if opts.Degree < 1 || opts.Degree > gf2n.MaxDegree {
		err = multierr.Append(err, fmt.Errorf("--degree %d out of range [1, %d]", opts.Degree, gf2n.MaxDegree))
	}
	if opts.Modulus != 0 {
		if d := chunker.Pol(opts.Modulus).Deg(); d != opts.Degree {
			err = multierr.Append(err, fmt.Errorf("--modulus %v has degree %d, want --degree %d", opts.Modulus, d, opts.Degree))
		}
	}
	known := false
	for _, name := range functionNames {
		known = known || name == opts.Function
	}
	if !known {
		err = multierr.Append(err, fmt.Errorf("unknown function %q", opts.Function))
	}
	if _, serr := differential.ParseStrategy(opts.Strategy); serr != nil {
		err = multierr.Append(err, serr)
	}
	if opts.Workers < 0 {
		err = multierr.Append(err, errors.New("--workers must not be negative"))
	}
	switch opts.Function {
	case "polynomial":
		if len(opts.Coeffs) == 0 {
			err = multierr.Append(err, errors.New("polynomial needs at least one --coeff"))
		}
	case "monomial":
		if len(opts.Coeffs) != 1 {
			err = multierr.Append(err, errors.New("monomial needs exactly one --coeff"))
		}
	}
	if _, cerr := parseCoeffs(opts.Coeffs); cerr != nil {
		err = multierr.Append(err, cerr)
	}
	return err
}

// parseCoeffs reads terms of the form "e=c" where both sides accept a 0x,
// 0b or decimal prefix. Repeated exponents are added.
func parseCoeffs(terms []string) (map[uint64]gf2n.Elem, error) {
	coeffs := make(map[uint64]gf2n.Elem, len(terms))
	var err error
	for _, t := range terms {
		exp, val, ok := strings.Cut(t, "=")
		if !ok {
			err = multierr.Append(err, fmt.Errorf("term %q: want e=c", t))
			continue
		}
		e, perr := strconv.ParseUint(strings.TrimSpace(exp), 0, 64)
		if perr != nil {
			err = multierr.Append(err, fmt.Errorf("term %q: exponent: %w", t, perr))
			continue
		}
		var c gf2n.Elem
		if perr := c.UnmarshalText([]byte(strings.TrimSpace(val))); perr != nil {
			err = multierr.Append(err, fmt.Errorf("term %q: %w", t, perr))
			continue
		}
		coeffs[e] ^= c
	}
	return coeffs, err
}

func (opts *FunctionOptions) strategy() differential.Strategy {
	s, _ := differential.ParseStrategy(opts.Strategy)
	return s
}

// Build constructs the evaluator described by opts. Validate must have
// succeeded.
func (opts *FunctionOptions) Build() (boolfn.Evaluator, error) {
	field, err := opts.field()
	if err != nil {
		return nil, err
	}

	var fn *boolfn.Function
	switch opts.Function {
	case "inverse":
		fn = boolfn.NewInverse(field)
	case "tu":
		fn, err = boolfn.NewTu(field, opts.Delta)
	case "dickson":
		fn, err = boolfn.NewDickson(field, opts.DicksonDegree, opts.Alpha)
	case "polynomial":
		coeffs, cerr := parseCoeffs(opts.Coeffs)
		if cerr != nil {
			return nil, cerr
		}
		fn, err = boolfn.NewPolynomial(field, coeffs)
	case "monomial":
		coeffs, cerr := parseCoeffs(opts.Coeffs)
		if cerr != nil {
			return nil, cerr
		}
		for e, c := range coeffs {
			fn, err = boolfn.NewMonomial(field, e, c)
		}
	default:
		return nil, fmt.Errorf("unknown function %q", opts.Function)
	}
	if err != nil {
		return nil, err
	}

	if opts.Cached {
		return boolfn.Memoize(fn), nil
	}
	return fn, nil
}

func (opts *FunctionOptions) field() (*gf2n.Field, error) {
	if opts.Modulus != 0 {
		return gf2n.NewFieldWithModulus(chunker.Pol(opts.Modulus))
	}
	return gf2n.NewField(opts.Degree)
}

func (opts *FunctionOptions) engineOptions() []differential.Option {
	if opts.Workers > 0 {
		return []differential.Option{differential.WithWorkers(opts.Workers)}
	}
	return nil
}

func (opts *FunctionOptions) concurrencyOptions() []concurrency.Option {
	return []concurrency.Option{concurrency.WithWorkers(opts.Workers)}
}
