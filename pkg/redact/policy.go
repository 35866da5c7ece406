package redact

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
)

// Mask replaces the value of every redacted field.
const Mask = "***"

// GlobalScope is the reserved policy key for fields masked in every scope.
const GlobalScope = "global"

// Scope identifies the call site a payload was logged from. Both Flow and
// State must be set for a scoped policy entry to apply.
type Scope struct {
	Flow  string
	State string
}

// FieldSet is a set of field names.
type FieldSet map[string]struct{}

// NewFieldSet returns a FieldSet holding fields.
func NewFieldSet(fields ...string) FieldSet {
	s := make(FieldSet, len(fields))
	for _, f := range fields {
		s[f] = struct{}{}
	}
	return s
}

// Contains reports whether field is in the set. A nil set contains nothing.
func (s FieldSet) Contains(field string) bool {
	_, ok := s[field]
	return ok
}

// Policy describes which fields are masked. Global applies everywhere;
// Scoped is indexed by flow, then state.
//
// A non-nil Global makes the policy applicable in every scope, even when it
// is empty.
type Policy struct {
	Global FieldSet
	Scoped map[string]map[string]FieldSet
}

// Rule is one (scope, field) entry of a Policy. Global rules have an empty
// Flow and State.
type Rule struct {
	Flow  string `json:"flow,omitempty" yaml:"flow,omitempty"`
	State string `json:"state,omitempty" yaml:"state,omitempty"`
	Field string `json:"field" yaml:"field"`
}

// ScopeName returns "global" or "flow/state".
func (r Rule) ScopeName() string {
	if r.Flow == "" && r.State == "" {
		return GlobalScope
	}
	return r.Flow + "/" + r.State
}

// AddGlobal masks fields in every scope.
func (p *Policy) AddGlobal(fields ...string) *Policy {
	if p.Global == nil {
		p.Global = make(FieldSet, len(fields))
	}
	for _, f := range fields {
		p.Global[f] = struct{}{}
	}
	return p
}

// AddScoped masks fields only when logging under flow and state.
func (p *Policy) AddScoped(flow, state string, fields ...string) *Policy {
	if p.Scoped == nil {
		p.Scoped = make(map[string]map[string]FieldSet)
	}
	states, ok := p.Scoped[flow]
	if !ok {
		states = make(map[string]FieldSet)
		p.Scoped[flow] = states
	}
	set, ok := states[state]
	if !ok {
		set = make(FieldSet, len(fields))
		states[state] = set
	}
	for _, f := range fields {
		set[f] = struct{}{}
	}
	return p
}

// scoped returns the field set for scope, if the policy has one.
func (p *Policy) scoped(scope Scope) (FieldSet, bool) {
	if p == nil || scope.Flow == "" || scope.State == "" {
		return nil, false
	}
	states, ok := p.Scoped[scope.Flow]
	if !ok {
		return nil, false
	}
	set, ok := states[scope.State]
	return set, ok
}

// Applies reports whether anything in the policy can match under scope.
// It is checked before any parsing so that unmatched log calls stay cheap.
func (p *Policy) Applies(scope Scope) bool {
	if p == nil {
		return false
	}
	if p.Global != nil {
		return true
	}
	_, ok := p.scoped(scope)
	return ok
}

// Matches reports whether field is masked under scope.
func (p *Policy) Matches(field string, scope Scope) bool {
	if p == nil {
		return false
	}
	if p.Global.Contains(field) {
		return true
	}
	set, ok := p.scoped(scope)
	return ok && set.Contains(field)
}

// Clone returns a deep copy of the policy.
func (p *Policy) Clone() *Policy {
	if p == nil {
		return nil
	}
	out := &Policy{}
	if p.Global != nil {
		out.Global = make(FieldSet, len(p.Global))
		for f := range p.Global {
			out.Global[f] = struct{}{}
		}
	}
	for flow, states := range p.Scoped {
		for state, set := range states {
			fields := make([]string, 0, len(set))
			for f := range set {
				fields = append(fields, f)
			}
			out.AddScoped(flow, state, fields...)
		}
	}
	return out
}

// Rules lists every (scope, field) pair, global rules first, then by flow,
// state and field.
func (p *Policy) Rules() []Rule {
	if p == nil {
		return nil
	}
	var rules []Rule
	for f := range p.Global {
		rules = append(rules, Rule{Field: f})
	}
	for flow, states := range p.Scoped {
		for state, set := range states {
			for f := range set {
				rules = append(rules, Rule{Flow: flow, State: state, Field: f})
			}
		}
	}
	sort.Slice(rules, func(i, j int) bool {
		a, b := rules[i], rules[j]
		if a.Flow != b.Flow {
			return a.Flow < b.Flow
		}
		if a.State != b.State {
			return a.State < b.State
		}
		return a.Field < b.Field
	})
	return rules
}

// ParsePolicy builds a Policy from its configuration form:
//
//	{"global": {"<field>": "redact"}, "<flow>": {"<state>": {"<field>": "redact"}}}
//
// Any truthy marker enables a field; "redact" is only the convention. Entries
// with a falsy value are ignored. A nil or empty raw map yields an empty
// policy that never applies.
func ParsePolicy(raw map[string]any) (*Policy, error) {
	p := &Policy{}
	for key, value := range raw {
		if !Truthy(value) {
			continue
		}
		if key == GlobalScope {
			set, err := parseFieldSet(value)
			if err != nil {
				return nil, fmt.Errorf("%w: %s: %v", ErrInvalidPolicy, key, err)
			}
			p.Global = set
			continue
		}

		states, ok := asMap(value)
		if !ok {
			return nil, fmt.Errorf("%w: flow %q: expected a map of states, got %T", ErrInvalidPolicy, key, value)
		}
		for state, fields := range states {
			if !Truthy(fields) {
				continue
			}
			set, err := parseFieldSet(fields)
			if err != nil {
				return nil, fmt.Errorf("%w: %s.%s: %v", ErrInvalidPolicy, key, state, err)
			}
			p.AddScoped(key, state)
			for f := range set {
				p.Scoped[key][state][f] = struct{}{}
			}
		}
	}
	return p, nil
}

func parseFieldSet(v any) (FieldSet, error) {
	fields, ok := asMap(v)
	if !ok {
		return nil, fmt.Errorf("expected a map of field names, got %T", v)
	}
	set := make(FieldSet, len(fields))
	for name, marker := range fields {
		if Truthy(marker) {
			set[name] = struct{}{}
		}
	}
	return set, nil
}

func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case map[string]string:
		out := make(map[string]any, len(m))
		for k, s := range m {
			out[k] = s
		}
		return out, true
	case map[string]bool:
		out := make(map[string]any, len(m))
		for k, b := range m {
			out[k] = b
		}
		return out, true
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, val := range m {
			out[fmt.Sprint(k)] = val
		}
		return out, true
	default:
		return nil, false
	}
}

// Truthy reports whether v enables a setting. nil, false, zero, NaN and
// the empty string are false; everything else, including empty maps, is true.
func Truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	case float64:
		return t != 0 && !math.IsNaN(t)
	case float32:
		return t != 0 && !math.IsNaN(float64(t))
	case int:
		return t != 0
	case int64:
		return t != 0
	case int32:
		return t != 0
	case uint:
		return t != 0
	case uint64:
		return t != 0
	case json.Number:
		f, err := t.Float64()
		return err != nil || f != 0
	default:
		return true
	}
}
