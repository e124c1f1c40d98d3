package models

// Scope selects which name field(s) of a row the engine scores.
type Scope int

const (
	ScopeVoter Scope = iota
	ScopeRelative
	ScopeAnywhere
)

func (s Scope) String() string {
	switch s {
	case ScopeVoter:
		return "voter"
	case ScopeRelative:
		return "relative"
	case ScopeAnywhere:
		return "anywhere"
	default:
		return "unknown"
	}
}

// ParseScope maps a config/API string onto a Scope, defaulting to
// ScopeAnywhere for anything it doesn't recognize.
func ParseScope(s string) Scope {
	switch s {
	case "voter":
		return ScopeVoter
	case "relative":
		return ScopeRelative
	default:
		return ScopeAnywhere
	}
}
