// Package types holds the small value types shared across the argument
// model: how many values an argument expects, what it does with them,
// and where those values came from. It is the generalized successor of
// goopt's OptionType/PatternValue split: instead of three fixed flag
// shapes (Standalone/Single/Chained), an argument carries a ValueSpec
// (how many values) crossed with an Action (what happens to them).
package types

import "regexp"

// ValuePolicy describes how many values an argument consumes once it has
// been matched on the command line.
type ValuePolicy int

const (
	// NoValue is a flag: it never consumes a value.
	NoValue ValuePolicy = iota
	// ExactlyN requires exactly N values (N == ValueSpec.Count).
	ExactlyN
	// RangeN accepts between Min and Max values (Max == 0 means unbounded).
	RangeN
	// Variadic accepts any number of values, including zero.
	Variadic
)

// String renders a ValuePolicy for diagnostics.
func (v ValuePolicy) String() string {
	switch v {
	case NoValue:
		return "no-value"
	case ExactlyN:
		return "exactly-n"
	case RangeN:
		return "range-n"
	case Variadic:
		return "variadic"
	default:
		return "unknown"
	}
}

// ValueSpec pins down a ValuePolicy with its bounds.
type ValueSpec struct {
	Policy ValuePolicy
	Count  int // used by ExactlyN
	Min    int // used by RangeN
	Max    int // used by RangeN; 0 means unbounded
}

// Satisfied reports whether n collected values already meet this policy's
// minimum requirement.
func (v ValueSpec) Satisfied(n int) bool {
	switch v.Policy {
	case NoValue:
		return n == 0
	case ExactlyN:
		return n >= v.Count
	case RangeN:
		return n >= v.Min
	case Variadic:
		return true
	default:
		return true
	}
}

// CanAcceptMore reports whether a value at (0-based) index n may still be
// attached to the current occurrence.
func (v ValueSpec) CanAcceptMore(n int) bool {
	switch v.Policy {
	case NoValue:
		return false
	case ExactlyN:
		return n < v.Count
	case RangeN:
		return v.Max == 0 || n < v.Max
	case Variadic:
		return true
	default:
		return false
	}
}

// IsVariadic reports whether this policy can consume an unbounded tail.
func (v ValueSpec) IsVariadic() bool {
	return v.Policy == Variadic || (v.Policy == RangeN && v.Max == 0)
}

// Action describes what happens to an argument's value(s) on each match.
type Action int

const (
	// ActionSet keeps only the last occurrence's values (last value wins).
	ActionSet Action = iota
	// ActionAppend accumulates one value group per occurrence.
	ActionAppend
	// ActionCount tallies occurrences; no value may be attached.
	ActionCount
	// ActionSetTrue records a boolean true on each occurrence.
	ActionSetTrue
	// ActionSetFalse records a boolean false on each occurrence.
	ActionSetFalse
	// ActionHelp is the built-in --help pseudo-action.
	ActionHelp
	// ActionVersion is the built-in --version pseudo-action.
	ActionVersion
)

// String renders an Action for diagnostics.
func (a Action) String() string {
	switch a {
	case ActionSet:
		return "set"
	case ActionAppend:
		return "append"
	case ActionCount:
		return "count"
	case ActionSetTrue:
		return "set-true"
	case ActionSetFalse:
		return "set-false"
	case ActionHelp:
		return "help"
	case ActionVersion:
		return "version"
	default:
		return "unknown"
	}
}

// IsValueless reports whether this action never attaches a value.
func (a Action) IsValueless() bool {
	switch a {
	case ActionCount, ActionSetTrue, ActionSetFalse, ActionHelp, ActionVersion:
		return true
	default:
		return false
	}
}

// Provenance records where a match-store value came from.
type Provenance int

const (
	// FromCommandLine means the value was read from argv.
	FromCommandLine Provenance = iota
	// FromDefaultValue means the argument was absent and a default applied.
	FromDefaultValue
	// FromEnvVariable means the argument was absent and an environment
	// variable fallback applied.
	FromEnvVariable
)

// String renders a Provenance for diagnostics.
func (p Provenance) String() string {
	switch p {
	case FromCommandLine:
		return "command-line"
	case FromDefaultValue:
		return "default"
	case FromEnvVariable:
		return "environment"
	default:
		return "unknown"
	}
}

// ParseStateKind enumerates the three states the token-driven parser can
// be in. It is implemented as a plain sum type - a kind plus the
// argument id it refers to - rather than as polymorphic state objects.
// The parse loop in package cmdargs does not hold a ParseState; it tracks
// the same states through its positional cursor and the option handlers'
// own value collection.
type ParseStateKind int

const (
	// StateValuesDone means the parser is not mid-collection.
	StateValuesDone ParseStateKind = iota
	// StateOpt means the parser is still collecting values for an option.
	StateOpt
	// StatePos means the parser is still collecting values for a variadic
	// positional.
	StatePos
)

// ParseState is the parser's current state-machine tag.
type ParseState struct {
	Kind  ParseStateKind
	ArgID string // populated when Kind is StateOpt or StatePos
}

// Done is the zero-value "not collecting" state.
var Done = ParseState{Kind: StateValuesDone}

// PatternValue pairs a compiled regular expression with a human-readable
// description of what it checks, for a declared "accepted value"
// pattern.
type PatternValue struct {
	Pattern     string
	Description string
	Compiled    *regexp.Regexp
}

// Describe returns a human-readable explanation of a PatternValue,
// falling back to the raw pattern when no description was supplied.
func (r *PatternValue) Describe() string {
	if len(r.Description) > 0 {
		return r.Description
	}
	return r.Pattern
}

// ListDelimiterFunc reports whether a rune is a list-value delimiter.
// The parser does not use it; an argument's delimiter is the single rune
// in Argument.Delimiter.
type ListDelimiterFunc func(matchOn rune) bool
