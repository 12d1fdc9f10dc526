package cmdargs

import (
	"unicode/utf8"

	"github.com/cmdargs/cmdargs/errs"
	"github.com/cmdargs/cmdargs/internal/suggest"
	"github.com/cmdargs/cmdargs/internal/tokstream"
	"github.com/cmdargs/cmdargs/types"
	"github.com/google/shlex"
)

// Parse walks args against the command tree built by Build, returning a
// MatchStore recording what matched. Build runs automatically if it
// hasn't already.
func (c *Command) Parse(args []string) (*MatchStore, error) {
	if !c.built {
		if err := c.Build(); err != nil {
			return nil, err
		}
	}
	ts := tokstream.New(args)
	store := newMatchStore(c)
	return store, c.parseInto(ts, store)
}

// ParseString splits s using POSIX shell-word rules before parsing it,
// for callers holding a single command-line string rather than argv.
func (c *Command) ParseString(s string) (*MatchStore, error) {
	args, err := shlex.Split(s)
	if err != nil {
		return nil, errs.ErrInvalidValue.WithArgs(s, "command line").Wrap(err)
	}
	return c.Parse(args)
}

// parseInto runs the token classification/dispatch loop over ts,
// recording matches into store, then runs the post-parse validator.
func (c *Command) parseInto(ts *tokstream.Stream, store *MatchStore) error {
	sawTerminator := false
	validArgFound := false
	positionalCursor := 1

	// Unless NoBinaryName is set, the first token of the argument vector
	// is the binary name, not an argument to classify. A subcommand's
	// parseInto starts mid-stream, past its own name, and consumes nothing
	// here.
	if !c.localSettings.Has(NoBinaryName) && ts.Pos() < 0 && ts.HasNext() {
		ts.Advance()
		if c.BinaryName == "" {
			c.BinaryName = fileStem(ts.Current())
		}
	}

	for ts.HasNext() {
		if repl, ok := c.replacers[ts.Peek()]; ok {
			ts.Advance()
			ts.SpliceNext(repl)
			continue
		}

		ts.Advance()
		tok := ts.Current()
		idx := ts.Pos()

		// Positional counter adjustment runs before classification: it
		// looks at the token about to be classified, not at the
		// positional-assignment fallback below.
		c.advancePastMissingPositionals(&positionalCursor, tok, sawTerminator)

		if !sawTerminator && tok == "--" {
			sawTerminator = true
			if last, ok := c.lastArgument(); ok {
				if last.Position != nil {
					positionalCursor = *last.Position
				}
				for ts.HasNext() {
					ts.Advance()
					vIdx := ts.Pos()
					values := c.collectPositionalOccurrence(last, ts.Current(), true)
					store.record(last.ID, values, vIdx)
				}
			}
			continue
		}

		// Classification normally stops once trailing-values mode is
		// entered; SubcommandPrecedenceOverArg keeps subcommand/option
		// classification alive even past "--".
		classify := !sawTerminator || c.localSettings.Has(SubcommandPrecedenceOverArg)

		if classify && isLongOption(tok) {
			if err := c.dispatchLong(tok, idx, ts, store); err != nil {
				return err
			}
			validArgFound = true
			continue
		}

		if classify && isShortCluster(tok) &&
			!(c.localSettings.Has(AllowNegativeNumbers) && looksLikeNegativeNumber(tok)) {
			if err := c.dispatchShort(tok, idx, ts, store); err != nil {
				return err
			}
			validArgFound = true
			continue
		}

		if classify {
			// A subcommand may be matched anywhere a positional is
			// expected, unless args_negate_subcommands has already
			// fired.
			if sub, ok := c.findSubcommand(tok); ok &&
				(!validArgFound || !c.localSettings.Has(ArgsNegateSubcommands)) {
				if sub.IsHelpSubcommand {
					return c.dispatchHelpSubcommand(ts)
				}
				if sub.BinaryName == "" && c.BinaryName != "" {
					sub.BinaryName = c.BinaryName + " " + sub.Name
				}
				childStore := newMatchStore(sub)
				err := sub.parseInto(ts, childStore)
				store.setSubcommand(sub.Name, childStore)
				if err != nil {
					return err
				}
				return c.validate(store)
			}

			if c.localSettings.Has(ExternalSubcommands) && c.subcommands.Count() > 0 {
				return c.dispatchExternal(tok, ts, store)
			}
		}

		bound := positionalCursor
		if err := c.dispatchPositional(&positionalCursor, tok, idx, store, sawTerminator); err != nil {
			return err
		}
		validArgFound = true
		if p, ok := c.findPositional(bound); ok && p.TrailingVarArg {
			sawTerminator = true
		}
	}

	return c.validate(store)
}

// advancePastMissingPositionals handles the case where the positional at
// the cursor is variadic (so it never strictly needs a value before
// moving on) or the command allows missing positionals, and the
// upcoming token actually looks like a new option or a subcommand
// rather than a value: the cursor is advanced past it so the following
// declared positional gets a chance to bind instead. The cursor only
// moves when a positional is declared at the next index. If trailing-values
// is set and some positional is marked Last, the cursor jumps straight
// to it, matching the "--" / Last fast path.
func (c *Command) advancePastMissingPositionals(cursor *int, tok string, trailing bool) {
	if trailing {
		if last, ok := c.lastArgument(); ok && last.Position != nil {
			*cursor = *last.Position
			return
		}
	}

	a, ok := c.findPositional(*cursor)
	if !ok {
		return
	}
	permitSkip := a.Value.IsVariadic() || c.localSettings.Has(AllowMissingPositionals)
	if !permitSkip {
		return
	}
	if _, hasNext := c.findPositional(*cursor + 1); !hasNext {
		return
	}
	if c.looksLikeOptionToken(tok) || c.wouldMatchSubcommand(tok) {
		*cursor++
	}
}

// wouldMatchSubcommand reports whether tok resolves to a declared
// subcommand, without actually dispatching into it.
func (c *Command) wouldMatchSubcommand(tok string) bool {
	_, ok := c.findSubcommand(tok)
	return ok
}

// fileStem strips any directory components and extension from path,
// the way a binary name is conventionally derived from argv[0].
func fileStem(path string) string {
	base := path
	for i := len(path) - 1; i >= 0; i-- {
		if path[i] == '/' || path[i] == '\\' {
			base = path[i+1:]
			break
		}
	}
	for i := len(base) - 1; i >= 0; i-- {
		if base[i] == '.' {
			return base[:i]
		}
	}
	return base
}

// lastArgument returns the argument declared with Last, if any.
func (c *Command) lastArgument() (*Argument, bool) {
	it := c.arguments.Iterator()
	for idx, _, a := it(); idx != nil; idx, _, a = it() {
		if a.Last {
			return a, true
		}
	}
	return nil, false
}

// dispatchLong handles one "--name" / "--name=value" token.
func (c *Command) dispatchLong(tok string, idx int, ts *tokstream.Stream, store *MatchStore) error {
	name, inline, hasInline := splitLongOption(tok)
	a, ok := c.findLong(name)
	if !ok {
		return errs.ErrUnknownArgument.WithArgs("--" + name).
			WithSuggestions(suggest.Best(name, c.longNames(), c.flagSuggestionThreshold))
	}

	if a.RequiresEquals && !hasInline && !a.Action.IsValueless() {
		if !a.Value.Satisfied(0) {
			return errs.ErrNoEquals.WithArgs(a.ID)
		}
		store.record(a.ID, stringsToRaw(a.DefaultMissing), idx)
		return nil
	}

	if a.Action.IsValueless() {
		if hasInline {
			return errs.ErrTooManyValues.WithArgs(a.ID)
		}
		store.record(a.ID, nil, idx)
		return actionShortCircuit(a)
	}

	values := c.collectValues(a, ts, inline, hasInline)
	if !a.Value.Satisfied(len(values)) {
		return errs.ErrTooFewValues.WithArgs(a.ID)
	}
	store.record(a.ID, values, idx)
	return nil
}

// dispatchShort handles one "-x" / "-xvf" / "-xvalue" token, resuming
// through a POSIX-style cluster of valueless flags until it reaches one
// that takes a value, at which point the remainder of the cluster (if
// any) is that argument's inline value.
func (c *Command) dispatchShort(tok string, idx int, ts *tokstream.Stream, store *MatchStore) error {
	body := tok[1:]
	for i := 0; i < len(body); i++ {
		ch := string(body[i])
		a, ok := c.findShort(ch)
		if !ok {
			return errs.ErrUnknownArgument.WithArgs("-" + ch)
		}

		if a.Action.IsValueless() || a.Value.Policy == types.NoValue {
			store.record(a.ID, nil, idx)
			if err := actionShortCircuit(a); err != nil {
				return err
			}
			continue
		}

		rest := body[i+1:]
		values := c.collectValues(a, ts, rest, rest != "")
		if !a.Value.Satisfied(len(values)) {
			return errs.ErrTooFewValues.WithArgs(a.ID)
		}
		store.record(a.ID, values, idx)
		return nil
	}
	return nil
}

// dispatchPositional binds tok to the positional at *cursor as one
// occurrence - each physical token is its own occurrence for a
// positional - then advances the cursor once that positional can't
// accept any further occurrences.
func (c *Command) dispatchPositional(cursor *int, tok string, idx int, store *MatchStore, trailing bool) error {
	a, ok := c.findPositional(*cursor)
	if !ok {
		return c.noPositionalError(tok)
	}
	if a.Last && !trailing {
		return errs.ErrUnknownArgument.WithArgs(tok)
	}
	values := c.collectPositionalOccurrence(a, tok, trailing)
	store.record(a.ID, values, idx)
	if !a.Value.CanAcceptMore(store.Count(a.ID)) {
		*cursor++
	}
	return nil
}

// dispatchHelpSubcommand handles the auto-injected "help" subcommand:
// the remaining tokens are a subcommand path rooted at c (help's parent,
// not help itself), walked to the deepest existing subcommand along it.
// An unknown path component yields UnrecognizedSubcommand; otherwise the
// deepest match is reported via DisplayHelp.
func (c *Command) dispatchHelpSubcommand(ts *tokstream.Stream) error {
	cur := c
	name := c.Name
	for ts.HasNext() {
		ts.Advance()
		tok := ts.Current()
		next, ok := cur.findSubcommand(tok)
		if !ok || next.IsHelpSubcommand {
			return errs.ErrUnrecognizedSubcommand.WithArgs(tok)
		}
		cur = next
		name = tok
	}
	return errs.ErrDisplayHelp.WithArgs(name).WithPrior(cur.Name)
}

// noPositionalError picks the error kind for a token that doesn't bind
// to any declared positional and didn't resolve to a subcommand either:
// a command with subcommands but no plain arguments reports the token
// as an unrecognized subcommand; a token that merely resembles a
// declared subcommand name is reported as an invalid subcommand with
// candidates; anything else is unknown.
func (c *Command) noPositionalError(tok string) error {
	if c.subcommands.Count() > 0 && c.arguments.Count() == 0 {
		return errs.ErrUnrecognizedSubcommand.WithArgs(tok)
	}
	if candidates := suggest.Best(tok, c.subcommandNames(), c.cmdSuggestionThreshold); len(candidates) > 0 {
		return errs.ErrInvalidSubcommand.WithArgs(tok).WithSuggestions(candidates)
	}
	return errs.ErrUnknownArgument.WithArgs(tok)
}

// dispatchExternal treats tok and every remaining token as an external
// subcommand invocation this package never interprets further, gated on
// the ExternalSubcommands setting. Each token's UTF-8 validity is
// checked unless AllowInvalidUtf8ForExternalSubcommands is also set.
func (c *Command) dispatchExternal(tok string, ts *tokstream.Stream, store *MatchStore) error {
	allowInvalid := c.localSettings.Has(AllowInvalidUtf8ForExternalSubcommands)
	raws := [][]byte{}
	for {
		if !allowInvalid && !utf8.ValidString(tok) {
			return errs.ErrInvalidUtf8.WithArgs(tok)
		}
		raws = append(raws, []byte(tok))
		if !ts.HasNext() {
			break
		}
		ts.Advance()
		tok = ts.Current()
	}
	store.recordExternal(raws)
	return c.validate(store)
}

func actionShortCircuit(a *Argument) error {
	switch a.Action {
	case types.ActionHelp:
		return errs.ErrDisplayHelp.WithPrior(a.ID)
	case types.ActionVersion:
		return errs.ErrDisplayVersion.WithPrior(a.ID)
	default:
		return nil
	}
}

func stringsToRaw(values []string) [][]byte {
	out := make([][]byte, len(values))
	for i, v := range values {
		out[i] = []byte(v)
	}
	return out
}
