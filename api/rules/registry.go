package rules

import (
	"sort"

	"livescore/api/shared"
)

// Registry manages the available rule modules
type Registry struct {
	modules map[shared.Sport]RuleModule
}

// NewRegistry creates a registry with every built-in sport
func NewRegistry() *Registry {
	r := &Registry{
		modules: make(map[shared.Sport]RuleModule),
	}

	r.Register(NewBadminton())
	r.Register(NewVolleyball())
	r.Register(NewKabaddi())
	r.Register(NewCricket())

	return r
}

// Register adds or replaces a rule module
func (r *Registry) Register(module RuleModule) {
	r.modules[module.Sport()] = module
}

// Module retrieves the rule module for sport
func (r *Registry) Module(sport shared.Sport) (RuleModule, error) {
	module, ok := r.modules[sport]
	if !ok {
		return nil, &UnsupportedSportError{Sport: sport}
	}
	return module, nil
}

// Sports returns all registered sport keys in a stable order
func (r *Registry) Sports() []shared.Sport {
	keys := make([]shared.Sport, 0, len(r.modules))
	for key := range r.modules {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}
