package cmdargs

import (
	"github.com/cmdargs/cmdargs/types"
)

// ConditionalDefault supplies a default value list for an argument when
// another argument (OtherID) is present and, if Value is non-nil, equal
// to *Value.
type ConditionalDefault struct {
	OtherID string
	Value   *string
	Default []string
}

// RequiredIfEq makes the declaring argument required when the argument
// named OtherID is present and carries Value.
type RequiredIfEq struct {
	OtherID string
	Value   string
}

// Argument is one leaf of the command model: an option, a flag, or a
// positional. It's a plain data record plus an ensureInit and a
// Set/config-function surface, with a ValueSpec x Action model for how
// many values it takes and what happens when it matches, plus relation
// and provenance fields (conflicts_with, requires, overrides, groups,
// environment source, conditional/default-missing values).
type Argument struct {
	// ID is this argument's stable handle, unique within its owning
	// Command. Required; Command.AddArgument rejects collisions.
	ID string

	Long     string
	Short    string
	Position *int

	Value  types.ValueSpec
	Action types.Action

	Defaults            []string
	DefaultMissing      []string
	ConditionalDefaults []ConditionalDefault
	EnvVar              string

	ConflictsWith []string
	Requires      []string
	// RequiresIf maps a value this argument was matched with to the ids
	// that become required as a consequence.
	RequiresIf   map[string][]string
	Overrides    []string
	RequiredIfEq []RequiredIfEq

	Required              bool
	Global                bool
	Last                  bool
	AllowHyphenValues     bool
	RequireValueDelimiter bool
	Hidden                bool
	TrailingVarArg        bool
	RequiresEquals        bool
	DisallowEmptyValue    bool

	// Delimiter, if non-zero, splits a single attached value into
	// several.
	Delimiter rune
	// Terminator, if non-empty, stops value collection without
	// consuming the terminating token.
	Terminator string

	Groups []string

	// DisplayOrder is assigned at Build time when the owning command has
	// DeriveDisplayOrder set; left at zero otherwise. A help formatter
	// outside this package may read it.
	DisplayOrder int

	// Parser is the lazy value interpreter a caller's typed MatchStore
	// reads go through; the core parser never calls it.
	Parser ValueParserFunc

	Description string
}

// NewArg builds an Argument from configuration functions, ignoring
// configuration errors - use NewArgE for error handling.
func NewArg(id string, configs ...ConfigureArgumentFunc) *Argument {
	a := &Argument{ID: id}
	for _, cfg := range configs {
		cfg(a, nil)
	}
	a.ensureInit()
	return a
}

// NewArgE builds an Argument from configuration functions, stopping at
// the first error.
func NewArgE(id string, configs ...ConfigureArgumentFunc) (*Argument, error) {
	a := &Argument{ID: id}
	var err error
	for _, cfg := range configs {
		cfg(a, &err)
		if err != nil {
			return nil, err
		}
	}
	a.ensureInit()
	return a, nil
}

// Set applies further configuration to an already-built Argument.
func (a *Argument) Set(configs ...ConfigureArgumentFunc) error {
	var err error
	for _, cfg := range configs {
		cfg(a, &err)
		if err != nil {
			return err
		}
	}
	a.ensureInit()
	return nil
}

func (a *Argument) ensureInit() {
	if a.RequiresIf == nil {
		a.RequiresIf = map[string][]string{}
	}
}

// IsPositional reports whether this argument is identified by position
// rather than by long/short name.
func (a *Argument) IsPositional() bool {
	return a.Position != nil && a.Long == "" && a.Short == ""
}

// InGroup reports whether id names a group this argument belongs to.
func (a *Argument) InGroup(id string) bool {
	for _, g := range a.Groups {
		if g == id {
			return true
		}
	}
	return false
}
