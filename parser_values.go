package cmdargs

import (
	"strings"

	"github.com/cmdargs/cmdargs/internal/tokstream"
)

// looksLikeOptionToken reports whether tok would be classified as an
// option rather than a value, for the purpose of deciding whether value
// collection for the current argument should stop. A
// bare "-" is always a value by convention (commonly "read from stdin").
func (c *Command) looksLikeOptionToken(tok string) bool {
	if tok == "-" {
		return false
	}
	if isLongOption(tok) {
		return true
	}
	if isShortCluster(tok) {
		if c.localSettings.Has(AllowNegativeNumbers) && looksLikeNegativeNumber(tok) {
			return false
		}
		return true
	}
	return false
}

// splitDelimited splits tok on sep into its non-empty raw value parts,
// or returns tok as a single raw value when sep is zero.
func splitDelimited(tok string, sep rune) [][]byte {
	if sep == 0 {
		return [][]byte{[]byte(tok)}
	}
	parts := strings.FieldsFunc(tok, func(r rune) bool { return r == sep })
	out := make([][]byte, len(parts))
	for i, p := range parts {
		out[i] = []byte(p)
	}
	return out
}

// collectValues gathers the raw value bytes for one occurrence of a,
// starting from an already-split inline value (the "--name=value" tail)
// when present, then pulling further tokens off ts until the argument's
// ValueSpec is full, a terminator token is seen, or the next token looks
// like an option the argument doesn't allow.
func (c *Command) collectValues(a *Argument, ts *tokstream.Stream, inline string, hasInline bool) [][]byte {
	return c.collectValuesTrailing(a, ts, inline, hasInline, false)
}

// collectValuesTrailing is collectValues with the trailing-values flag
// threaded through: once "--" has been consumed, DontDelimitTrailingValues
// suppresses delimiter splitting entirely once a trailing-values
// terminator has been seen.
func (c *Command) collectValuesTrailing(a *Argument, ts *tokstream.Stream, inline string, hasInline bool, trailing bool) [][]byte {
	delim := a.Delimiter
	if trailing && c.localSettings.Has(DontDelimitTrailingValues) {
		delim = 0
	}

	var raws [][]byte
	if hasInline {
		raws = append(raws, splitDelimited(inline, delim)...)
	}

	if a.RequireValueDelimiter {
		if !hasInline && ts.HasNext() {
			ts.Advance()
			raws = append(raws, splitDelimited(ts.Current(), delim)...)
		}
		return raws
	}

	for a.Value.CanAcceptMore(len(raws)) {
		if !ts.HasNext() {
			break
		}
		peek := ts.Peek()
		if a.Terminator != "" && peek == a.Terminator {
			break
		}
		if !trailing && c.looksLikeOptionToken(peek) && !a.AllowHyphenValues {
			break
		}
		ts.Advance()
		raws = append(raws, splitDelimited(ts.Current(), delim)...)
	}
	return raws
}

// collectPositionalOccurrence returns the raw value(s) a single
// positional token binds as one occurrence: only inline delimiter
// splitting applies here. Unlike option value collection, a positional
// never pulls further tokens into the same occurrence - each physical
// token is its own occurrence.
func (c *Command) collectPositionalOccurrence(a *Argument, tok string, trailing bool) [][]byte {
	delim := a.Delimiter
	if trailing && c.localSettings.Has(DontDelimitTrailingValues) {
		delim = 0
	}
	return splitDelimited(tok, delim)
}
