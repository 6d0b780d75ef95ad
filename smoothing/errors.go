package smoothing

import "github.com/pkg/errors"

var (
	ErrBadBreakpoints = errors.New("breakpoints must be finite and non-decreasing")
	ErrUnknownTerm    = errors.New("unknown linguistic term")
	ErrDuplicateTerm  = errors.New("duplicate linguistic term")
	ErrNoTerms        = errors.New("linguistic variable has no terms")
	ErrNoRules        = errors.New("rule base is empty")
	ErrBadResolution  = errors.New("resolution must be in [1e-4, 1]")
	ErrOutOfUnit      = errors.New("value must be in [0, 1]")
	ErrBadUniverse    = errors.New("universe bounds must be finite and min < max")
	ErrDuplicateID    = errors.New("object id is observed more than once in a single step")
	ErrNilID          = errors.New("object id must not be nil")
)
