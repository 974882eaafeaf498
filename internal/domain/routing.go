package domain

import "strings"

// Router decides which owner should handle a piece of task text.
// It returns false when no candidate matches; callers must handle that case
// rather than assume a match. Keyword matching is a best-effort heuristic,
// not a guaranteed-correct router.
type Router func(taskText string) (owner string, ok bool)

// NewKeywordRouter builds a Router from the roster's routing keywords.
// The coordinator itself is never a candidate: a request that matches nothing
// stays wherever it was created.
func NewKeywordRouter(defs []AgentDef) Router {
	type rule struct {
		owner    string
		keywords []string
	}
	var rules []rule
	for _, d := range defs {
		if d.IsCoordinator || len(d.Keywords) == 0 {
			continue
		}
		rules = append(rules, rule{owner: d.Name, keywords: d.Keywords})
	}

	return func(taskText string) (string, bool) {
		text := strings.ToLower(taskText)
		for _, r := range rules {
			for _, kw := range r.keywords {
				if strings.Contains(text, strings.ToLower(kw)) {
					return r.owner, true
				}
			}
		}
		return "", false
	}
}
