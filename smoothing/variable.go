package smoothing

import (
	"math"

	"github.com/pkg/errors"
)

// Term is a named fuzzy category of a linguistic variable
type Term struct {
	Name     string
	Function MembershipFunction
}

// LinguisticVariable is a named fuzzy input or output with an ordered set of terms.
// Min and Max bound its universe of discourse.
type LinguisticVariable struct {
	Name  string
	Min   float64
	Max   float64
	Terms []Term
}

// Validate checks universe bounds, term names and term functions
func (v LinguisticVariable) Validate() error {
	if !isFinite(v.Min) || !isFinite(v.Max) || v.Min >= v.Max {
		return errors.Wrapf(ErrBadUniverse, "variable '%s' [%v, %v]", v.Name, v.Min, v.Max)
	}
	if len(v.Terms) == 0 {
		return errors.Wrapf(ErrNoTerms, "variable '%s'", v.Name)
	}
	seen := make(map[string]struct{}, len(v.Terms))
	for _, term := range v.Terms {
		if _, ok := seen[term.Name]; ok {
			return errors.Wrapf(ErrDuplicateTerm, "variable '%s', term '%s'", v.Name, term.Name)
		}
		seen[term.Name] = struct{}{}
		if term.Function == nil {
			return errors.Wrapf(ErrBadBreakpoints, "variable '%s', term '%s' has no membership function", v.Name, term.Name)
		}
		if err := checkBreakpoints(term.Function.Breakpoints()...); err != nil {
			return errors.Wrapf(err, "variable '%s', term '%s'", v.Name, term.Name)
		}
	}
	return nil
}

// TermIndex returns position of the term with given name or -1
func (v LinguisticVariable) TermIndex(name string) int {
	for i := range v.Terms {
		if v.Terms[i].Name == name {
			return i
		}
	}
	return -1
}

// Fuzzify returns degree of membership of x for every term, in term order
func (v LinguisticVariable) Fuzzify(x float64) []float64 {
	degrees := make([]float64, len(v.Terms))
	v.fuzzifyInto(x, degrees)
	return degrees
}

func (v LinguisticVariable) fuzzifyInto(x float64, degrees []float64) {
	for i := range v.Terms {
		degree := v.Terms[i].Function.Evaluate(x)
		if math.IsNaN(degree) {
			degree = 0
		}
		degrees[i] = clip(degree, 0, 1)
	}
}

// Clamp limits x to the universe of the variable
func (v LinguisticVariable) Clamp(x float64) float64 {
	return clip(x, v.Min, v.Max)
}

func (v LinguisticVariable) clone() LinguisticVariable {
	terms := make([]Term, len(v.Terms))
	copy(terms, v.Terms)
	v.Terms = terms
	return v
}
