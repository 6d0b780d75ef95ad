package smoothing

import "github.com/pkg/errors"

// Rule is a conjunctive fuzzy rule: IF motion is Motion AND confidence is Confidence THEN alpha is Alpha.
// Conjunction is min, every rule has weight 1.
type Rule struct {
	Motion     string `json:"motion"`
	Confidence string `json:"confidence"`
	Alpha      string `json:"alpha"`
}

// DefaultRules returns the rule table used by DefaultConfig
func DefaultRules() []Rule {
	return []Rule{
		// Still object: trust history, follow barely
		{Motion: "small", Confidence: "high", Alpha: "very_small"},
		{Motion: "small", Confidence: "medium", Alpha: "small"},
		{Motion: "small", Confidence: "low", Alpha: "small"},

		{Motion: "medium", Confidence: "high", Alpha: "medium"},
		{Motion: "medium", Confidence: "medium", Alpha: "small"},
		{Motion: "medium", Confidence: "low", Alpha: "very_small"},

		// Confident fast motion: follow the detector
		{Motion: "large", Confidence: "high", Alpha: "very_large"},
		{Motion: "large", Confidence: "medium", Alpha: "large"},
		{Motion: "large", Confidence: "low", Alpha: "medium"},
	}
}

// compiledRule holds term indices so firing does not look names up every frame
type compiledRule struct {
	motion     int
	confidence int
	alpha      int
}

func compileRules(rules []Rule, motion, confidence, alpha LinguisticVariable) ([]compiledRule, error) {
	if len(rules) == 0 {
		return nil, ErrNoRules
	}
	compiled := make([]compiledRule, len(rules))
	for i, rule := range rules {
		m := motion.TermIndex(rule.Motion)
		if m < 0 {
			return nil, errors.Wrapf(ErrUnknownTerm, "rule #%d: %s '%s'", i, motion.Name, rule.Motion)
		}
		c := confidence.TermIndex(rule.Confidence)
		if c < 0 {
			return nil, errors.Wrapf(ErrUnknownTerm, "rule #%d: %s '%s'", i, confidence.Name, rule.Confidence)
		}
		a := alpha.TermIndex(rule.Alpha)
		if a < 0 {
			return nil, errors.Wrapf(ErrUnknownTerm, "rule #%d: %s '%s'", i, alpha.Name, rule.Alpha)
		}
		compiled[i] = compiledRule{motion: m, confidence: c, alpha: a}
	}
	return compiled, nil
}
