// Package errs implements the error taxonomy every parsing and
// validation failure is reported through: every failure kind is a
// package-level sentinel that callers compare against with errors.Is,
// and WithArgs/Wrap build a concrete instance carrying the offending
// argument, suggestions, and a cause chain. Error() formats its
// template with fmt.Sprintf directly; there is no localization layer.
package errs

import (
	"errors"
	"fmt"
)

// Kind identifies one of the failure modes this package reports.
type Kind int

const (
	KindUnknownArgument Kind = iota
	KindInvalidSubcommand
	KindUnrecognizedSubcommand
	KindInvalidValue
	KindEmptyValue
	KindNoEquals
	KindTooManyValues
	KindTooFewValues
	KindWrongNumberOfValues
	KindTooManyOccurrences
	KindMissingRequiredArgument
	KindMissingSubcommand
	KindArgumentConflict
	KindInvalidUtf8
	KindDisplayHelp
	KindDisplayVersion
)

func (k Kind) String() string {
	switch k {
	case KindUnknownArgument:
		return "UnknownArgument"
	case KindInvalidSubcommand:
		return "InvalidSubcommand"
	case KindUnrecognizedSubcommand:
		return "UnrecognizedSubcommand"
	case KindInvalidValue:
		return "InvalidValue"
	case KindEmptyValue:
		return "EmptyValue"
	case KindNoEquals:
		return "NoEquals"
	case KindTooManyValues:
		return "TooManyValues"
	case KindTooFewValues:
		return "TooFewValues"
	case KindWrongNumberOfValues:
		return "WrongNumberOfValues"
	case KindTooManyOccurrences:
		return "TooManyOccurrences"
	case KindMissingRequiredArgument:
		return "MissingRequiredArgument"
	case KindMissingSubcommand:
		return "MissingSubcommand"
	case KindArgumentConflict:
		return "ArgumentConflict"
	case KindInvalidUtf8:
		return "InvalidUtf8"
	case KindDisplayHelp:
		return "DisplayHelp"
	case KindDisplayVersion:
		return "DisplayVersion"
	default:
		return "Unknown"
	}
}

// ArgError is the concrete error type for every Kind above. It carries a
// kind, a human-readable message, a usage-string snippet, optional
// context key-value pairs, and an optional cause chain - enough for a
// host to render a diagnostic without reaching back into the command
// tree.
type ArgError struct {
	kind     Kind
	template string

	// Arg is the offending/primary argument identifier, when applicable.
	Arg string
	// Prior is a second argument identifier (e.g. the conflicting or
	// requiring argument) when applicable.
	Prior string
	// Suggestions holds did-you-mean candidates.
	Suggestions []string
	// Missing holds every identifier batched into a single
	// MissingRequiredArgument error.
	Missing []string
	// Usage is a usage-string snippet computed from the finalized command.
	Usage string
	// Text carries pre-rendered payload for DisplayHelp/DisplayVersion.
	Text string

	args  []interface{}
	cause error
}

// New creates a bare sentinel for Kind with a fmt.Sprintf-style template.
// Sentinels are compared with errors.Is; WithArgs produces the instance
// that is actually returned to a caller.
func New(kind Kind, template string) *ArgError {
	return &ArgError{kind: kind, template: template}
}

// Kind reports which failure mode this error represents.
func (e *ArgError) Kind() Kind { return e.kind }

// WithArgs returns a copy of the sentinel with template arguments bound.
// The first argument, by convention across this package, is the
// offending identifier and is also copied into Arg for structured access.
func (e *ArgError) WithArgs(args ...interface{}) *ArgError {
	cp := *e
	cp.args = args
	if len(args) > 0 {
		if s, ok := args[0].(string); ok {
			cp.Arg = s
		}
	}
	return &cp
}

// WithPrior records a second, related argument identifier (conflicts_with
// / requires context).
func (e *ArgError) WithPrior(id string) *ArgError {
	cp := *e
	cp.Prior = id
	return &cp
}

// WithSuggestions attaches did-you-mean candidates.
func (e *ArgError) WithSuggestions(s []string) *ArgError {
	cp := *e
	cp.Suggestions = s
	return &cp
}

// WithMissing attaches the full set of missing identifiers for a batched
// MissingRequiredArgument error.
func (e *ArgError) WithMissing(ids []string) *ArgError {
	cp := *e
	cp.Missing = ids
	return &cp
}

// WithUsage attaches a usage-string snippet.
func (e *ArgError) WithUsage(usage string) *ArgError {
	cp := *e
	cp.Usage = usage
	return &cp
}

// WithText attaches pre-rendered help/version text.
func (e *ArgError) WithText(text string) *ArgError {
	cp := *e
	cp.Text = text
	return &cp
}

// Wrap chains a value-parser failure as the cause of this error.
func (e *ArgError) Wrap(cause error) *ArgError {
	cp := *e
	cp.cause = cause
	return &cp
}

func (e *ArgError) Error() string {
	msg := e.template
	if len(e.args) > 0 {
		msg = fmt.Sprintf(e.template, e.args...)
	}
	if len(e.Suggestions) > 0 {
		msg = fmt.Sprintf("%s (did you mean %v?)", msg, e.Suggestions)
	}
	if len(e.Missing) > 0 {
		msg = fmt.Sprintf("%s: %v", msg, e.Missing)
	}
	if e.cause != nil {
		msg = fmt.Sprintf("%s: %s", msg, e.cause.Error())
	}
	return msg
}

func (e *ArgError) Unwrap() error { return e.cause }

// Is makes every *ArgError instance compare equal to its own sentinel
// (and to itself) by Kind, regardless of bound arguments - this is what
// lets a caller write `errors.Is(err, errs.ErrMissingRequiredArgument)`.
func (e *ArgError) Is(target error) bool {
	other, ok := target.(*ArgError)
	if !ok {
		return false
	}
	return e.kind == other.kind
}

// Sentinels for every Kind above.
var (
	ErrUnknownArgument         = New(KindUnknownArgument, "unknown argument %q")
	ErrInvalidSubcommand       = New(KindInvalidSubcommand, "invalid subcommand %q")
	ErrUnrecognizedSubcommand  = New(KindUnrecognizedSubcommand, "unrecognized subcommand %q")
	ErrInvalidValue            = New(KindInvalidValue, "invalid value %q for argument %q")
	ErrEmptyValue              = New(KindEmptyValue, "argument %q does not accept an empty value")
	ErrNoEquals                = New(KindNoEquals, "argument %q requires --%[1]s=value form")
	ErrTooManyValues           = New(KindTooManyValues, "argument %q was given too many values")
	ErrTooFewValues            = New(KindTooFewValues, "argument %q requires more values")
	ErrWrongNumberOfValues     = New(KindWrongNumberOfValues, "argument %q expects a different number of values")
	ErrTooManyOccurrences      = New(KindTooManyOccurrences, "argument %q was given too many times")
	ErrMissingRequiredArgument = New(KindMissingRequiredArgument, "missing required argument(s)")
	ErrMissingSubcommand       = New(KindMissingSubcommand, "a subcommand is required")
	ErrArgumentConflict        = New(KindArgumentConflict, "argument %q conflicts with %q")
	ErrInvalidUtf8             = New(KindInvalidUtf8, "argument %q is not valid UTF-8")
	ErrDisplayHelp             = New(KindDisplayHelp, "help requested")
	ErrDisplayVersion          = New(KindDisplayVersion, "version requested")
)

// Is reports whether err is (or wraps) an *ArgError of kind k.
func Is(err error, k Kind) bool {
	var ae *ArgError
	if errors.As(err, &ae) {
		return ae.kind == k
	}
	return false
}

// AsArgError extracts the *ArgError from err, if any.
func AsArgError(err error) (*ArgError, bool) {
	var ae *ArgError
	if errors.As(err, &ae) {
		return ae, true
	}
	return nil, false
}
