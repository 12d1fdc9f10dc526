package cmdargs

import (
	"fmt"

	"github.com/cmdargs/cmdargs/errs"
	"github.com/cmdargs/cmdargs/types"
)

// Build finalizes the command tree: it folds inherited global settings
// into this node, injects the built-in help/version machinery, expands
// group membership to a fixpoint, resolves deferred positional slots,
// asserts every structural invariant, and recurses into subcommands
// propagating global settings/version/global arguments downward. Build
// is idempotent - a second call on an already-built command returns nil
// immediately.
func (c *Command) Build() error {
	return c.build(0)
}

func (c *Command) build(inherited Setting) error {
	if c.built {
		return nil
	}

	// step 1: fold inherited global settings into this command's own,
	// then union into the effective local settings.
	c.globalSettings = c.globalSettings.With(inherited)
	c.localSettings = c.localSettings.With(c.globalSettings)
	effective := c.localSettings

	// step 2: display-order assignment
	if effective.Has(DeriveDisplayOrder) {
		c.assignDisplayOrder()
	}

	// step 3: inject --help/-h, --version/-V, help subcommand
	if err := c.injectBuiltins(effective); err != nil {
		return err
	}

	// step 4: resolve group membership to a fixpoint
	if err := c.resolveGroups(); err != nil {
		return err
	}

	// step 5: implicit settings + deferred positional slots
	c.resolveImplicitSettings()
	if err := c.assignPendingPositions(); err != nil {
		return err
	}

	// step 6: invariants
	if err := c.assertInvariants(); err != nil {
		return err
	}

	// step 7: recurse, propagating global settings/version/global args
	it := c.subcommands.Iterator()
	for idx, _, sub := it(); idx != nil; idx, _, sub = it() {
		c.propagateGlobalArguments(sub)
		if sub.Version == "" {
			sub.Version = c.Version
		}
		if err := sub.build(c.globalSettings); err != nil {
			return fmt.Errorf("subcommand %q: %w", sub.Name, err)
		}
	}

	c.built = true
	return nil
}

// assignDisplayOrder numbers arguments in declaration order. A help
// formatter outside this package reads Argument.DisplayOrder; the core
// parser never looks at it.
func (c *Command) assignDisplayOrder() {
	it := c.arguments.Iterator()
	n := 0
	for idx, _, a := it(); idx != nil; idx, _, a = it() {
		a.DisplayOrder = n
		n++
	}
}

// injectBuiltins adds the implicit --help/-h, --version/-V, and help
// subcommand unless disabled or already declared by the caller.
func (c *Command) injectBuiltins(effective Setting) error {
	if !effective.Has(DisableHelpFlag) {
		if _, exists := c.longIndex["help"]; !exists {
			short := ""
			if _, taken := c.shortIndex["h"]; !taken {
				short = "h"
			}
			a := NewArg("help", WithLong("help"), WithNoValue(), WithAction(types.ActionHelp), WithHidden(false))
			if short != "" {
				a.Short = short
			}
			if err := c.AddArgument(a); err != nil {
				return err
			}
		}
	}

	if !effective.Has(DisableVersionFlag) && c.Version != "" {
		if _, exists := c.longIndex["version"]; !exists {
			short := ""
			if _, taken := c.shortIndex["V"]; !taken {
				short = "V"
			}
			a := NewArg("version", WithLong("version"), WithNoValue(), WithAction(types.ActionVersion))
			if short != "" {
				a.Short = short
			}
			if err := c.AddArgument(a); err != nil {
				return err
			}
		}
	}

	if !effective.Has(DisableHelpSubcommand) && c.subcommands.Count() > 0 {
		if _, exists := c.subcommands.Get("help"); !exists {
			help := NewCommand("help")
			help.IsHelpSubcommand = true
			if err := c.AddCommand(help); err != nil {
				return err
			}
		}
	}
	return nil
}

// resolveGroups expands every group's membership to a fixpoint and
// folds each group's ConflictsWith/Requires into its concrete members,
// and records each member's group back-reference on the Argument side -
// resolving declarations made from either direction (Argument.Groups or
// Group.Members) into the same canonical state.
func (c *Command) resolveGroups() error {
	it := c.groups.Iterator()
	for idx, k, g := it(); idx != nil; idx, k, g = it() {
		members := c.groupMembers(*k)
		for _, id := range members {
			a, ok := c.arguments.Get(id)
			if !ok {
				return errs.ErrInvalidValue.WithArgs(id, fmt.Sprintf("group %q member", g.ID))
			}
			if !a.InGroup(g.ID) {
				a.Groups = append(a.Groups, g.ID)
			}
			a.ConflictsWith = mergeUnique(a.ConflictsWith, g.ConflictsWith)
			a.Requires = mergeUnique(a.Requires, g.Requires)
		}
	}

	// fold the reverse declaration direction: an argument that names a
	// group via WithArgGroups but isn't yet in that group's Members.
	ait := c.arguments.Iterator()
	for idx, k, a := ait(); idx != nil; idx, k, a = ait() {
		for _, gid := range a.Groups {
			g, ok := c.groups.Get(gid)
			if !ok {
				return errs.ErrInvalidValue.WithArgs(gid, fmt.Sprintf("argument %q group", *k))
			}
			found := false
			for _, m := range g.Members {
				if m == *k {
					found = true
					break
				}
			}
			if !found {
				g.Members = append(g.Members, *k)
			}
		}
	}
	return nil
}

func mergeUnique(dst []string, add []string) []string {
	for _, v := range add {
		seen := false
		for _, have := range dst {
			if have == v {
				seen = true
				break
			}
		}
		if !seen {
			dst = append(dst, v)
		}
	}
	return dst
}

// resolveImplicitSettings applies the settings a declaration implies
// rather than requiring the caller to set directly: any argument marked
// Last forces DontCollapseArgsInUsage and ContainsLast on the owning
// command.
func (c *Command) resolveImplicitSettings() {
	it := c.arguments.Iterator()
	for idx, _, a := it(); idx != nil; idx, _, a = it() {
		if a.Last {
			c.localSettings = c.localSettings.With(DontCollapseArgsInUsage).With(ContainsLast)
		}
	}
}

// assignPendingPositions resolves every WithNextPosition() placeholder
// (Position pointing at the sentinel value 0) to the next free 1-based
// slot after the highest fixed position already claimed, in declaration
// order.
func (c *Command) assignPendingPositions() error {
	next := 1
	for _, p := range c.positionals {
		if p.Position != nil && *p.Position >= next {
			next = *p.Position + 1
		}
	}

	it := c.arguments.Iterator()
	for idx, _, a := it(); idx != nil; idx, _, a = it() {
		if a.Position != nil && *a.Position == 0 {
			slot := next
			a.Position = &slot
			next++
			c.positionals = append(c.positionals, a)
		}
	}
	return nil
}

// assertInvariants checks the structural rules every Argument must
// satisfy, returning the first violation found. These are
// configuration-time assertions, not user-input errors; they indicate a
// mistake by the code declaring the command tree.
func (c *Command) assertInvariants() error {
	it := c.arguments.Iterator()
	for idx, _, a := it(); idx != nil; idx, _, a = it() {
		if a.Last && (a.Long != "" || a.Short != "") {
			return errs.ErrInvalidValue.WithArgs(a.ID, "an argument marked Last cannot carry a long or short name")
		}
		if a.Required && a.Global {
			return errs.ErrInvalidValue.WithArgs(a.ID, "an argument cannot be both Required and Global")
		}
		if !a.IsPositional() && a.Long == "" && a.Short == "" && !a.Last {
			return errs.ErrInvalidValue.WithArgs(a.ID, "an argument must carry a long name, a short name, a position, or Last")
		}
		if a.RequiresEquals && a.Value.Policy == types.NoValue {
			return errs.ErrInvalidValue.WithArgs(a.ID, "RequiresEquals is meaningless on a valueless flag")
		}
		if a.Terminator != "" && a.Value.Policy == types.NoValue {
			return errs.ErrInvalidValue.WithArgs(a.ID, "a terminator is meaningless on a valueless flag")
		}
		for _, id := range a.ConflictsWith {
			if _, ok := c.arguments.Get(id); !ok && id != a.ID {
				return errs.ErrInvalidValue.WithArgs(id, fmt.Sprintf("argument %q conflicts_with", a.ID))
			}
		}
		for _, id := range a.Requires {
			if _, ok := c.arguments.Get(id); !ok {
				return errs.ErrInvalidValue.WithArgs(id, fmt.Sprintf("argument %q requires", a.ID))
			}
		}
		for _, id := range a.Overrides {
			if _, ok := c.arguments.Get(id); !ok {
				return errs.ErrInvalidValue.WithArgs(id, fmt.Sprintf("argument %q overrides", a.ID))
			}
		}
	}
	return c.assertPositionalInvariants()
}

// assertPositionalInvariants checks the ordering rules positional
// arguments must jointly satisfy, over c.positionals (already sorted
// ascending by Position):
//
//   - only the highest-indexed positional may be variadic, unless the
//     second-highest is variadic and either carries a Terminator or is
//     immediately followed by a Last positional.
//   - once an optional positional is declared, every later positional
//     must also be optional, unless AllowMissingPositionals is set.
func (c *Command) assertPositionalInvariants() error {
	n := len(c.positionals)
	if n == 0 {
		return nil
	}

	for i, a := range c.positionals {
		if !a.Value.IsVariadic() || i == n-1 {
			continue
		}
		last := c.positionals[n-1]
		if i == n-2 && (a.Terminator != "" || last.Last) {
			continue
		}
		return errs.ErrInvalidValue.WithArgs(a.ID, "only the highest-indexed positional may be variadic")
	}

	seenOptional := false
	allowMissing := c.localSettings.Has(AllowMissingPositionals)
	for _, a := range c.positionals {
		if !a.Required {
			seenOptional = true
			continue
		}
		if seenOptional && !allowMissing {
			return errs.ErrInvalidValue.WithArgs(a.ID, "a required positional cannot follow an optional one")
		}
	}
	return nil
}

// propagateGlobalArguments clones every argument this command marked
// Global into sub, skipping ids sub already defines for itself. A clone
// that AddArgument rejects (a long name, short name, or position already
// taken in sub) is dropped silently. Cloning rather than sharing the
// pointer keeps
// per-subcommand DisplayOrder and Build-time mutation independent.
func (c *Command) propagateGlobalArguments(sub *Command) {
	it := c.arguments.Iterator()
	for idx, _, a := it(); idx != nil; idx, _, a = it() {
		if !a.Global {
			continue
		}
		if _, exists := sub.arguments.Get(a.ID); exists {
			continue
		}
		clone := *a
		clone.Groups = append([]string{}, a.Groups...)
		clone.ConflictsWith = append([]string{}, a.ConflictsWith...)
		clone.Requires = append([]string{}, a.Requires...)
		clone.Overrides = append([]string{}, a.Overrides...)
		_ = sub.AddArgument(&clone)
	}
}
