package monetary

import "github.com/ajustes-contables/rt6/internal/model"

// Classification is the final class of an account with the facts that
// produced it.
type Classification struct {
	Class     model.MonetaryClass
	Heuristic model.MonetaryClass
	Rule      string // name of the matching rule, "" if none
	IsAuto    bool   // no manual classification exists
	Excluded  bool
	Validated bool
}

// Classify merges the heuristic result for acc with its override. A manual
// classification replaces the heuristic unconditionally.
func Classify(acc model.Account, ov model.AccountOverride, rules RuleTable) Classification {
	c := Classification{
		Excluded:  ov.Excluded,
		Validated: ov.Validated,
		IsAuto:    ov.Classification == model.ClassUnknown,
	}
	if r, ok := rules.Match(acc); ok {
		c.Heuristic = r.Class
		c.Rule = r.Name
	}
	c.Class = c.Heuristic
	if !c.IsAuto {
		c.Class = ov.Classification
	}
	return c
}

// ClassifyAll classifies every account against the override snapshot.
func ClassifyAll(accounts []model.Account, ovs Overrides, rules RuleTable) map[string]Classification {
	out := make(map[string]Classification, len(accounts))
	for _, a := range accounts {
		ov, _ := ovs.Get(a.ID)
		out[a.ID] = Classify(a, ov, rules)
	}
	return out
}
