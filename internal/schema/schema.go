// Package schema adapts logical query intents to the structurally different
// table shapes the warehouse has carried over time, and normalizes their
// heterogeneous result columns into one stable external contract.
package schema

import "fmt"

// Intent selects the logical dataset behind an endpoint.
type Intent int

const (
	IntentRankings Intent = iota
	IntentResults
)

func (i Intent) String() string {
	switch i {
	case IntentRankings:
		return "rankings"
	case IntentResults:
		return "results"
	default:
		return "unknown"
	}
}

// Scope is the resolved filtering dimension: one team, or a whole group of
// teams discovered through the indirect lookup.
type Scope int

const (
	ScopeTeam Scope = iota
	ScopeGroup
)

func (s Scope) String() string {
	switch s {
	case ScopeTeam:
		return "team"
	case ScopeGroup:
		return "group"
	default:
		return "unknown"
	}
}

// Shape tags the structural layout of the backing table or view. It is
// deployment configuration, never inferred from the data.
type Shape int

const (
	ShapeFlat Shape = iota
	ShapeNested
	ShapeJoinedView
)

func (s Shape) String() string {
	switch s {
	case ShapeFlat:
		return "flat"
	case ShapeNested:
		return "nested"
	case ShapeJoinedView:
		return "joined_view"
	default:
		return "unknown"
	}
}

func ParseShape(v string) (Shape, error) {
	switch v {
	case "flat":
		return ShapeFlat, nil
	case "nested":
		return ShapeNested, nil
	case "joined_view":
		return ShapeJoinedView, nil
	default:
		return 0, fmt.Errorf("invalid backend shape %q: valid values are flat, nested, joined_view", v)
	}
}

// Dialect selects the external field-naming and timestamp-formatting
// convention for a deployment.
type Dialect int

const (
	DialectSnakeCase Dialect = iota
	DialectDisplayCaption
)

func (d Dialect) String() string {
	switch d {
	case DialectSnakeCase:
		return "snake_case"
	case DialectDisplayCaption:
		return "display_caption"
	default:
		return "unknown"
	}
}

func ParseDialect(v string) (Dialect, error) {
	switch v {
	case "snake_case":
		return DialectSnakeCase, nil
	case "display_caption":
		return DialectDisplayCaption, nil
	default:
		return 0, fmt.Errorf("invalid field dialect %q: valid values are snake_case, display_caption", v)
	}
}

// ResolutionMode selects how a caller-supplied team id is turned into a query
// scope: used directly, or first widened to the team's group.
type ResolutionMode int

const (
	ResolutionDirect ResolutionMode = iota
	ResolutionIndirect
)

func (m ResolutionMode) String() string {
	switch m {
	case ResolutionDirect:
		return "direct"
	case ResolutionIndirect:
		return "indirect"
	default:
		return "unknown"
	}
}

func (m ResolutionMode) Scope() Scope {
	if m == ResolutionIndirect {
		return ScopeGroup
	}
	return ScopeTeam
}

func ParseResolutionMode(v string) (ResolutionMode, error) {
	switch v {
	case "direct":
		return ResolutionDirect, nil
	case "indirect":
		return ResolutionIndirect, nil
	default:
		return 0, fmt.Errorf("invalid resolution mode %q: valid values are direct, indirect", v)
	}
}
