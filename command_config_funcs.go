package cmdargs

import "github.com/cmdargs/cmdargs/errs"

// WithCommandDescription sets the command's human-readable summary.
func WithCommandDescription(d string) ConfigureCommandFunc {
	return func(c *Command, err *error) {
		c.Description = d
	}
}

// WithCommandVersion sets the version string reported by the built-in
// --version/-V action and inherited by subcommands that don't set their
// own.
func WithCommandVersion(v string) ConfigureCommandFunc {
	return func(c *Command, err *error) {
		c.Version = v
	}
}

// WithBinaryName sets the name used in place of argv[0] when rendering
// usage. When it is set, Parse keeps it instead of deriving one from
// argv[0], and a dispatched subcommand's binary name is built from it.
func WithBinaryName(name string) ConfigureCommandFunc {
	return func(c *Command, err *error) {
		c.BinaryName = name
	}
}

// WithDisplayName sets the name shown to a user in place of Name.
func WithDisplayName(name string) ConfigureCommandFunc {
	return func(c *Command, err *error) {
		c.DisplayName = name
	}
}

// WithCommandHidden hides a subcommand from did-you-mean suggestions and
// an external help formatter; the core still parses it normally.
func WithCommandHidden(hidden bool) ConfigureCommandFunc {
	return func(c *Command, err *error) {
		c.Hidden = hidden
	}
}

// WithCommandAliases declares visible alternate names for a subcommand.
func WithCommandAliases(aliases ...string) ConfigureCommandFunc {
	return func(c *Command, err *error) {
		c.Aliases = append(c.Aliases, aliases...)
	}
}

// WithCommandHiddenAliases declares alternate names that resolve but are
// excluded from did-you-mean suggestions and help output.
func WithCommandHiddenAliases(aliases ...string) ConfigureCommandFunc {
	return func(c *Command, err *error) {
		c.HiddenAliases = append(c.HiddenAliases, aliases...)
	}
}

// WithSetting enables a Setting on this command only; it does not
// propagate to subcommands.
func WithSetting(flags ...Setting) ConfigureCommandFunc {
	return func(c *Command, err *error) {
		for _, f := range flags {
			c.localSettings = c.localSettings.With(f)
		}
	}
}

// WithGlobalSetting enables a Setting on this command and propagates it
// to every subcommand at Build time.
func WithGlobalSetting(flags ...Setting) ConfigureCommandFunc {
	return func(c *Command, err *error) {
		for _, f := range flags {
			c.globalSettings = c.globalSettings.With(f)
		}
	}
}

// WithArguments registers one or more arguments with this command.
func WithArguments(args ...*Argument) ConfigureCommandFunc {
	return func(c *Command, e *error) {
		for _, a := range args {
			if err := c.AddArgument(a); err != nil {
				setErr(e, err)
				return
			}
		}
	}
}

// WithGroups registers one or more groups with this command.
func WithGroups(groups ...*Group) ConfigureCommandFunc {
	return func(c *Command, e *error) {
		for _, g := range groups {
			if err := c.AddGroup(g); err != nil {
				setErr(e, err)
				return
			}
		}
	}
}

// WithSubcommands registers one or more child commands.
func WithSubcommands(subs ...*Command) ConfigureCommandFunc {
	return func(c *Command, e *error) {
		for _, sub := range subs {
			if err := c.AddCommand(sub); err != nil {
				setErr(e, err)
				return
			}
		}
	}
}

// WithReplacer registers a verbatim-token replacement applied before
// classification.
func WithReplacer(token string, replacement ...string) ConfigureCommandFunc {
	return func(c *Command, err *error) {
		c.RegisterReplacer(token, replacement)
	}
}

// WithEnvLookup overrides the environment-variable source the validator
// reads from; primarily for tests.
func WithEnvLookup(fn EnvGetter) ConfigureCommandFunc {
	return func(c *Command, err *error) {
		c.EnvLookup = fn
	}
}

// WithSuggestionThresholds tunes the maximum edit distance the
// did-you-mean helper considers a match for unknown flags and unknown
// subcommands, respectively.
func WithSuggestionThresholds(flag, subcommand int) ConfigureCommandFunc {
	return func(c *Command, e *error) {
		if flag < 0 || subcommand < 0 {
			setErr(e, errs.ErrInvalidValue.WithArgs(flag, "suggestion threshold"))
			return
		}
		c.flagSuggestionThreshold = flag
		c.cmdSuggestionThreshold = subcommand
	}
}
