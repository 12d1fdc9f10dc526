package cmdargs

import (
	"github.com/cmdargs/cmdargs/errs"
	"github.com/cmdargs/cmdargs/internal/util"
	"github.com/cmdargs/cmdargs/types"
)

// WithLong sets the long name matched after "--".
func WithLong(name string) ConfigureArgumentFunc {
	return func(a *Argument, err *error) {
		a.Long = name
	}
}

// WithShort sets the short character matched after "-".
func WithShort(short string) ConfigureArgumentFunc {
	return func(a *Argument, err *error) {
		a.Short = short
	}
}

// WithPosition marks this argument positional at a fixed 1-based index.
// A non-positive index is a configuration error.
func WithPosition(idx int) ConfigureArgumentFunc {
	return func(a *Argument, e *error) {
		if idx < 1 {
			setErr(e, errs.ErrInvalidValue.WithArgs(idx, "position"))
			return
		}
		a.Position = util.Ptr(idx)
	}
}

// WithNextPosition marks this argument positional without committing to
// an index; Build assigns the next free positional slot.
func WithNextPosition() ConfigureArgumentFunc {
	return func(a *Argument, err *error) {
		a.Position = util.Ptr(0)
	}
}

// WithDescription sets the argument's human-readable description. The
// core never renders it; it exists for an external help formatter.
func WithDescription(d string) ConfigureArgumentFunc {
	return func(a *Argument, err *error) {
		a.Description = d
	}
}

// WithNoValue declares a flag that never takes a value.
func WithNoValue() ConfigureArgumentFunc {
	return func(a *Argument, err *error) {
		a.Value = types.ValueSpec{Policy: types.NoValue}
	}
}

// WithExactValues declares an option that requires exactly n values.
func WithExactValues(n int) ConfigureArgumentFunc {
	return func(a *Argument, err *error) {
		a.Value = types.ValueSpec{Policy: types.ExactlyN, Count: n}
	}
}

// WithValueRange declares an option accepting between min and max
// values; max == 0 means unbounded.
func WithValueRange(min, max int) ConfigureArgumentFunc {
	return func(a *Argument, err *error) {
		a.Value = types.ValueSpec{Policy: types.RangeN, Min: min, Max: max}
	}
}

// WithVariadicValue declares an option/positional accepting any number
// of values, including zero.
func WithVariadicValue() ConfigureArgumentFunc {
	return func(a *Argument, err *error) {
		a.Value = types.ValueSpec{Policy: types.Variadic}
	}
}

// WithAction sets the argument's Action.
func WithAction(action types.Action) ConfigureArgumentFunc {
	return func(a *Argument, err *error) {
		a.Action = action
	}
}

// WithRequired marks the argument as unconditionally required.
func WithRequired(required bool) ConfigureArgumentFunc {
	return func(a *Argument, err *error) {
		a.Required = required
	}
}

// WithGlobal marks the argument for propagation into every subcommand
// during Build. A required argument cannot also be global; the
// conflict is caught at Build time, not here, since Required may be
// set after WithGlobal in the same config chain.
func WithGlobal(global bool) ConfigureArgumentFunc {
	return func(a *Argument, err *error) {
		a.Global = global
	}
}

// WithLast marks the argument as only matchable after "--". An argument
// with Last set may carry neither Long nor Short (enforced at Build).
func WithLast(last bool) ConfigureArgumentFunc {
	return func(a *Argument, err *error) {
		a.Last = last
	}
}

// WithAllowHyphenValues permits a value that itself looks like a flag to
// be attached to this argument instead of being reclassified.
func WithAllowHyphenValues(allow bool) ConfigureArgumentFunc {
	return func(a *Argument, err *error) {
		a.AllowHyphenValues = allow
	}
}

// WithHidden hides the argument from an external help formatter; the
// core still parses it normally.
func WithHidden(hidden bool) ConfigureArgumentFunc {
	return func(a *Argument, err *error) {
		a.Hidden = hidden
	}
}

// WithTrailingVarArg marks the final positional so that, once reached,
// the parser behaves as though "--" had been seen.
func WithTrailingVarArg(trailing bool) ConfigureArgumentFunc {
	return func(a *Argument, err *error) {
		a.TrailingVarArg = trailing
	}
}

// WithRequiresEquals requires "--long=value" form; a bare "--long value"
// is rejected unless the value policy's minimum is zero, in which case
// DefaultMissing applies instead.
func WithRequiresEquals(requires bool) ConfigureArgumentFunc {
	return func(a *Argument, err *error) {
		a.RequiresEquals = requires
	}
}

// WithDelimiter sets the character that splits one attached value into
// several.
func WithDelimiter(r rune) ConfigureArgumentFunc {
	return func(a *Argument, err *error) {
		a.Delimiter = r
	}
}

// WithRequireValueDelimiter makes one occurrence take a single token (the
// attached value, or else the next token), split on the delimiter; value
// collection stops there. A value without the delimiter is not rejected.
func WithRequireValueDelimiter(require bool) ConfigureArgumentFunc {
	return func(a *Argument, err *error) {
		a.RequireValueDelimiter = require
	}
}

// WithTerminator sets a value token that, when seen, stops value
// collection for this argument without being consumed.
func WithTerminator(token string) ConfigureArgumentFunc {
	return func(a *Argument, err *error) {
		a.Terminator = token
	}
}

// WithDisallowEmptyValue rejects an empty-string value for this
// argument.
func WithDisallowEmptyValue(disallow bool) ConfigureArgumentFunc {
	return func(a *Argument, err *error) {
		a.DisallowEmptyValue = disallow
	}
}

// WithDefaultValues sets the fixed default values used when this
// argument is entirely absent.
func WithDefaultValues(values ...string) ConfigureArgumentFunc {
	return func(a *Argument, err *error) {
		a.Defaults = values
	}
}

// WithDefaultMissingValues sets the values used when the argument is
// present but no value was supplied. Only meaningful with
// RequiresEquals and a value-policy minimum of zero.
func WithDefaultMissingValues(values ...string) ConfigureArgumentFunc {
	return func(a *Argument, err *error) {
		a.DefaultMissing = values
	}
}

// WithConditionalDefault adds a (other-id, optional expected value,
// default) triple evaluated before the fixed default: conditional
// defaults are tried first, the fixed default second.
func WithConditionalDefault(otherID string, expected *string, values []string) ConfigureArgumentFunc {
	return func(a *Argument, err *error) {
		a.ConditionalDefaults = append(a.ConditionalDefaults, ConditionalDefault{
			OtherID: otherID, Value: expected, Default: values,
		})
	}
}

// WithEnvVar registers an environment-variable fallback evaluated when
// the argument is absent from the command line.
func WithEnvVar(name string) ConfigureArgumentFunc {
	return func(a *Argument, err *error) {
		a.EnvVar = name
	}
}

// WithConflictsWith declares ids that cannot be present alongside this
// argument.
func WithConflictsWith(ids ...string) ConfigureArgumentFunc {
	return func(a *Argument, err *error) {
		a.ConflictsWith = append(a.ConflictsWith, ids...)
	}
}

// WithRequires declares ids that must also be present whenever this
// argument is present.
func WithRequires(ids ...string) ConfigureArgumentFunc {
	return func(a *Argument, err *error) {
		a.Requires = append(a.Requires, ids...)
	}
}

// WithRequiresIf declares ids that become required when this argument
// is present and was matched with exactly value.
func WithRequiresIf(value string, ids ...string) ConfigureArgumentFunc {
	return func(a *Argument, err *error) {
		if a.RequiresIf == nil {
			a.RequiresIf = map[string][]string{}
		}
		a.RequiresIf[value] = append(a.RequiresIf[value], ids...)
	}
}

// WithOverrides declares ids whose presence is discarded by the
// validator once this argument is present.
func WithOverrides(ids ...string) ConfigureArgumentFunc {
	return func(a *Argument, err *error) {
		a.Overrides = append(a.Overrides, ids...)
	}
}

// WithRequiredIfEq makes this argument conditionally required: it must
// be present once otherID is present carrying value.
func WithRequiredIfEq(otherID, value string) ConfigureArgumentFunc {
	return func(a *Argument, err *error) {
		a.RequiredIfEq = append(a.RequiredIfEq, RequiredIfEq{OtherID: otherID, Value: value})
	}
}

// WithArgGroups declares the groups this argument belongs to.
func WithArgGroups(ids ...string) ConfigureArgumentFunc {
	return func(a *Argument, err *error) {
		a.Groups = append(a.Groups, ids...)
	}
}

// WithValueParser attaches the lazy typed-value interpreter a
// MatchStore typed getter will invoke.
func WithValueParser(p ValueParserFunc) ConfigureArgumentFunc {
	return func(a *Argument, err *error) {
		a.Parser = p
	}
}

func setErr(dst *error, e error) {
	if dst != nil && *dst == nil {
		*dst = e
	}
}
