package cmdargs

import (
	"os"

	"github.com/cmdargs/cmdargs/errs"
	"github.com/cmdargs/cmdargs/internal/conv"
	"github.com/cmdargs/cmdargs/types"
)

// validate runs the post-parse validation pass over an already-populated
// MatchStore: defaults and environment fallbacks
// fill in absent arguments, overrides discard matches they supersede,
// then every structural invariant (required/conflicts/requires/value
// counts/empty values/subcommand-required) is checked against the final
// state.
func (c *Command) validate(store *MatchStore) error {
	c.applyDefaults(store)
	c.applyEnvFallbacks(store)
	c.resolveOverrides(store)

	if err := c.checkRequired(store); err != nil {
		return err
	}
	if err := c.checkConflicts(store); err != nil {
		return err
	}
	if err := c.checkRequires(store); err != nil {
		return err
	}
	if err := c.checkValueCounts(store); err != nil {
		return err
	}
	if err := c.checkEmptyValues(store); err != nil {
		return err
	}
	return c.checkSubcommandRequired(store)
}

// applyDefaults fills in absent arguments: a conditional default is
// tried first, in declaration order, and the first one whose trigger
// matches wins; a fixed default applies only if no conditional default
// fired.
func (c *Command) applyDefaults(store *MatchStore) {
	it := c.arguments.Iterator()
	for idx, _, a := it(); idx != nil; idx, _, a = it() {
		if store.Present(a.ID) {
			continue
		}
		applied := false
		for _, cd := range a.ConditionalDefaults {
			if !store.Present(cd.OtherID) {
				continue
			}
			if cd.Value != nil {
				got, ok := store.GetString(cd.OtherID)
				if !ok || got != *cd.Value {
					continue
				}
			}
			store.recordDefault(a.ID, stringsToRaw(cd.Default), types.FromDefaultValue)
			applied = true
			break
		}
		if !applied && len(a.Defaults) > 0 {
			store.recordDefault(a.ID, stringsToRaw(a.Defaults), types.FromDefaultValue)
		}
	}
}

// applyEnvFallbacks fills in arguments still absent after defaults from
// their registered environment variable, except for ActionCount
// arguments: an occurrence tally has no sensible single
// environment-sourced value, so env+Count is a no-op rather than an
// error. A flag-like argument is set only when the variable holds a
// true boolean string (conv.Bool). Lookups use os.LookupEnv unless
// EnvLookup is set.
func (c *Command) applyEnvFallbacks(store *MatchStore) {
	lookup := c.EnvLookup
	if lookup == nil {
		lookup = os.LookupEnv
	}
	it := c.arguments.Iterator()
	for idx, _, a := it(); idx != nil; idx, _, a = it() {
		if a.EnvVar == "" || store.Present(a.ID) || a.Action == types.ActionCount {
			continue
		}
		val, ok := lookup(a.EnvVar)
		if !ok {
			continue
		}
		if a.Action.IsValueless() || a.Value.Policy == types.NoValue {
			if truthy, err := conv.Bool([]byte(val)); err != nil || !truthy {
				continue
			}
			store.recordDefault(a.ID, nil, types.FromEnvVariable)
			continue
		}
		store.recordDefault(a.ID, splitDelimited(val, a.Delimiter), types.FromEnvVariable)
	}
}

// resolveOverrides discards the match of every argument an active
// argument's Overrides names, regardless of which one was matched later
// or by which provenance - override direction is pinned by
// declaration, not by command-line order.
func (c *Command) resolveOverrides(store *MatchStore) {
	it := c.arguments.Iterator()
	for idx, _, a := it(); idx != nil; idx, _, a = it() {
		if !store.Present(a.ID) {
			continue
		}
		for _, other := range a.Overrides {
			if store.Present(other) {
				store.discard(other)
			}
		}
	}
}

func (c *Command) checkRequired(store *MatchStore) error {
	var missing []string
	it := c.arguments.Iterator()
	for idx, _, a := it(); idx != nil; idx, _, a = it() {
		if a.Required && !store.Present(a.ID) {
			missing = append(missing, a.ID)
			continue
		}
		for _, rie := range a.RequiredIfEq {
			if !store.Present(rie.OtherID) {
				continue
			}
			got, ok := store.GetString(rie.OtherID)
			if ok && got == rie.Value && !store.Present(a.ID) {
				missing = append(missing, a.ID)
			}
		}
	}

	git := c.groups.Iterator()
	for idx, k, g := git(); idx != nil; idx, k, g = git() {
		if !g.Required {
			continue
		}
		present := false
		for _, m := range c.groupMembers(*k) {
			if store.Present(m) {
				present = true
				break
			}
		}
		if !present {
			missing = append(missing, g.ID)
		}
	}

	if len(missing) > 0 {
		return errs.ErrMissingRequiredArgument.WithMissing(missing)
	}
	return nil
}

func (c *Command) checkConflicts(store *MatchStore) error {
	it := c.arguments.Iterator()
	for idx, _, a := it(); idx != nil; idx, _, a = it() {
		if !store.Present(a.ID) {
			continue
		}
		for _, other := range a.ConflictsWith {
			if store.Present(other) {
				return errs.ErrArgumentConflict.WithArgs(a.ID, other).WithPrior(other)
			}
		}
	}

	git := c.groups.Iterator()
	for idx, k, g := git(); idx != nil; idx, k, g = git() {
		if g.Multiple {
			continue
		}
		var seen string
		for _, m := range c.groupMembers(*k) {
			if !store.Present(m) {
				continue
			}
			if seen == "" {
				seen = m
				continue
			}
			return errs.ErrArgumentConflict.WithArgs(seen, m).WithPrior(m)
		}
	}
	return nil
}

func (c *Command) checkRequires(store *MatchStore) error {
	it := c.arguments.Iterator()
	for idx, _, a := it(); idx != nil; idx, _, a = it() {
		if !store.Present(a.ID) {
			continue
		}
		for _, id := range a.Requires {
			if !store.Present(id) {
				return errs.ErrMissingRequiredArgument.WithMissing([]string{id}).WithPrior(a.ID)
			}
		}
		for value, ids := range a.RequiresIf {
			matched := false
			for _, v := range store.AllValues(a.ID) {
				if string(v) == value {
					matched = true
					break
				}
			}
			if !matched {
				continue
			}
			for _, id := range ids {
				if !store.Present(id) {
					return errs.ErrMissingRequiredArgument.WithMissing([]string{id}).WithPrior(a.ID)
				}
			}
		}
	}
	return nil
}

// checkValueCounts catches an ExactlyN argument whose attached values,
// once delimiter-split, don't add up to exactly Count - a case the
// collect-time check can't see when every extra value arrived packed
// into one delimited token. An option is checked per occurrence; a
// positional, which records one occurrence per token, is checked on the
// total across its occurrences.
func (c *Command) checkValueCounts(store *MatchStore) error {
	it := c.arguments.Iterator()
	for idx, _, a := it(); idx != nil; idx, _, a = it() {
		if a.Value.Policy != types.ExactlyN || !store.Present(a.ID) {
			continue
		}
		if a.IsPositional() || a.Last {
			if len(store.AllValues(a.ID)) != a.Value.Count {
				return errs.ErrWrongNumberOfValues.WithArgs(a.ID)
			}
			continue
		}
		for _, group := range store.Groups(a.ID) {
			if len(group) != a.Value.Count {
				return errs.ErrWrongNumberOfValues.WithArgs(a.ID)
			}
		}
	}
	return nil
}

func (c *Command) checkEmptyValues(store *MatchStore) error {
	it := c.arguments.Iterator()
	for idx, _, a := it(); idx != nil; idx, _, a = it() {
		if !a.DisallowEmptyValue || !store.Present(a.ID) {
			continue
		}
		for _, group := range store.Groups(a.ID) {
			for _, v := range group {
				if len(v) == 0 {
					return errs.ErrEmptyValue.WithArgs(a.ID)
				}
			}
		}
	}
	return nil
}

func (c *Command) checkSubcommandRequired(store *MatchStore) error {
	if !c.localSettings.Has(SubcommandRequired) || c.subcommands.Count() == 0 {
		return nil
	}
	if _, _, ok := store.Subcommand(); ok {
		return nil
	}
	if c.localSettings.Has(SubcommandRequiredElseHelp) {
		return errs.ErrDisplayHelp.WithArgs(c.Name)
	}
	return errs.ErrMissingSubcommand
}
