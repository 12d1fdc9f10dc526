package cmdargs

import (
	"time"

	"github.com/cmdargs/cmdargs/errs"
	"github.com/cmdargs/cmdargs/internal/conv"
	"github.com/cmdargs/cmdargs/types"
)

// MatchEntry accumulates everything Parse recorded for one argument id:
// how many times it matched, the raw value bytes attached to each
// occurrence, the argv token index each occurrence started at (for
// diagnostics), and where its effective value ultimately came from.
type MatchEntry struct {
	Occurrences   int
	ValueGroups   [][][]byte
	SourceIndices []int
	Provenance    types.Provenance
}

// MatchStore is the parse result: a record of which arguments matched,
// with which raw values, plus - when a subcommand was invoked - a linked
// nested store for it. Value interpretation is deliberately lazy:
// typed getters convert on demand via internal/conv instead of the
// core parser eagerly parsing every value up front, deferring value
// validation to a caller-invoked step.
type MatchStore struct {
	cmd     *Command
	entries map[string]*MatchEntry
	order   []string

	subStore *MatchStore
	subName  string

	external [][]byte
}

func newMatchStore(cmd *Command) *MatchStore {
	return &MatchStore{cmd: cmd, entries: map[string]*MatchEntry{}}
}

func (m *MatchStore) entry(id string) *MatchEntry {
	e, ok := m.entries[id]
	if !ok {
		e = &MatchEntry{}
		m.entries[id] = e
		m.order = append(m.order, id)
	}
	return e
}

// record appends one occurrence of id with the given value group and
// source token index, tagging its provenance as command-line.
func (m *MatchStore) record(id string, values [][]byte, sourceIdx int) {
	e := m.entry(id)
	e.Occurrences++
	e.ValueGroups = append(e.ValueGroups, values)
	e.SourceIndices = append(e.SourceIndices, sourceIdx)
	e.Provenance = types.FromCommandLine
}

// recordDefault installs a value the validator supplied because the
// argument was absent. A default value leaves the occurrence count at 0;
// an environment-variable fallback counts as one occurrence.
func (m *MatchStore) recordDefault(id string, values [][]byte, provenance types.Provenance) {
	e := m.entry(id)
	e.Occurrences = 1
	if provenance == types.FromDefaultValue {
		e.Occurrences = 0
	}
	e.ValueGroups = [][][]byte{values}
	e.SourceIndices = []int{-1}
	e.Provenance = provenance
}

// discard removes an argument's recorded match entirely, used by
// override resolution.
func (m *MatchStore) discard(id string) {
	if _, ok := m.entries[id]; !ok {
		return
	}
	delete(m.entries, id)
	for i, o := range m.order {
		if o == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
}

// setSubcommand links the nested store produced by parsing into a
// matched subcommand, then copies the last-seen value of every global
// argument from sub back into m so callers can query a global uniformly
// from the root store regardless of which level of the command tree it
// was actually typed at. Because the deepest subcommand's parseInto
// returns before any of its ancestors perform this copy, a global
// matched at multiple levels ends up holding the deepest one's value.
func (m *MatchStore) setSubcommand(name string, sub *MatchStore) {
	m.subName = name
	m.subStore = sub
	if sub.cmd == nil {
		return
	}
	it := sub.cmd.arguments.Iterator()
	for idx, _, a := it(); idx != nil; idx, _, a = it() {
		if !a.Global {
			continue
		}
		if e, ok := sub.entries[a.ID]; ok {
			cp := *e
			cp.ValueGroups = append([][][]byte{}, e.ValueGroups...)
			cp.SourceIndices = append([]int{}, e.SourceIndices...)
			m.entries[a.ID] = &cp
			found := false
			for _, o := range m.order {
				if o == a.ID {
					found = true
					break
				}
			}
			if !found {
				m.order = append(m.order, a.ID)
			}
		}
	}
}

// Present reports whether id matched at least once, by any provenance.
func (m *MatchStore) Present(id string) bool {
	_, ok := m.entries[id]
	return ok
}

// Count returns id's occurrence count: one per command-line match, one
// for an environment-variable fallback, and 0 when its value came only
// from a default value.
func (m *MatchStore) Count(id string) int {
	e, ok := m.entries[id]
	if !ok {
		return 0
	}
	return e.Occurrences
}

// Groups returns every occurrence's raw value group, in match order.
func (m *MatchStore) Groups(id string) [][][]byte {
	e, ok := m.entries[id]
	if !ok {
		return nil
	}
	return e.ValueGroups
}

// Values returns the last occurrence's raw value group, honoring
// ActionSet's "last one wins".
func (m *MatchStore) Values(id string) [][]byte {
	e, ok := m.entries[id]
	if !ok || len(e.ValueGroups) == 0 {
		return nil
	}
	return e.ValueGroups[len(e.ValueGroups)-1]
}

// AllValues flattens every occurrence's values into one slice, in match
// order - the shape ActionAppend accumulates toward.
func (m *MatchStore) AllValues(id string) [][]byte {
	e, ok := m.entries[id]
	if !ok {
		return nil
	}
	var out [][]byte
	for _, g := range e.ValueGroups {
		out = append(out, g...)
	}
	return out
}

// First returns the first raw value of the last occurrence, or nil.
func (m *MatchStore) First(id string) []byte {
	vs := m.Values(id)
	if len(vs) == 0 {
		return nil
	}
	return vs[0]
}

// Last returns the final raw value of the last occurrence, or nil.
func (m *MatchStore) Last(id string) []byte {
	vs := m.Values(id)
	if len(vs) == 0 {
		return nil
	}
	return vs[len(vs)-1]
}

// Provenance reports where id's effective value came from.
func (m *MatchStore) Provenance(id string) (types.Provenance, bool) {
	e, ok := m.entries[id]
	if !ok {
		return 0, false
	}
	return e.Provenance, true
}

// recordExternal stores the raw tokens of an unrecognized subcommand
// invocation passed through verbatim under ExternalSubcommands mode.
func (m *MatchStore) recordExternal(raws [][]byte) {
	m.external = raws
}

// ExternalSubcommand returns the verbatim tokens of an unrecognized
// subcommand invocation captured under ExternalSubcommands mode.
func (m *MatchStore) ExternalSubcommand() ([]string, bool) {
	if m.external == nil {
		return nil, false
	}
	out := make([]string, len(m.external))
	for i, r := range m.external {
		out[i] = string(r)
	}
	return out, true
}

// Subcommand returns the nested store for the subcommand invoked during
// this parse, if any.
func (m *MatchStore) Subcommand() (*MatchStore, string, bool) {
	if m.subStore == nil {
		return nil, "", false
	}
	return m.subStore, m.subName, true
}

// MatchedIDs returns every argument id that matched, in first-seen order.
func (m *MatchStore) MatchedIDs() []string {
	out := make([]string, len(m.order))
	copy(out, m.order)
	return out
}

func (m *MatchStore) raw(id string) ([]byte, error) {
	v := m.First(id)
	if v == nil {
		return nil, errs.ErrMissingRequiredArgument.WithMissing([]string{id})
	}
	return v, nil
}

// GetString returns the last occurrence's first raw value as a string.
func (m *MatchStore) GetString(id string) (string, bool) {
	e, ok := m.entries[id]
	if !ok || len(e.ValueGroups) == 0 {
		return "", false
	}
	vs := e.ValueGroups[len(e.ValueGroups)-1]
	if len(vs) == 0 {
		return "", true
	}
	return string(vs[0]), true
}

// GetStrings flattens every raw value across every occurrence into strings.
func (m *MatchStore) GetStrings(id string) []string {
	raws := m.AllValues(id)
	out := make([]string, len(raws))
	for i, r := range raws {
		out[i] = string(r)
	}
	return out
}

// GetBool interprets the last occurrence's first value as a bool. A
// valueless ActionSetTrue/ActionSetFalse/ActionCount match that never
// carried a raw value is reported true/false directly without going
// through internal/conv.
func (m *MatchStore) GetBool(id string) (bool, error) {
	if a, ok := m.cmd.Argument(id); ok {
		switch a.Action {
		case types.ActionSetTrue:
			return m.Present(id), nil
		case types.ActionSetFalse:
			return !m.Present(id), nil
		case types.ActionCount:
			return m.Count(id) > 0, nil
		}
	}
	raw, err := m.raw(id)
	if err != nil {
		return false, err
	}
	return conv.Bool(raw)
}

// GetCount returns an ActionCount argument's occurrence tally.
func (m *MatchStore) GetCount(id string) int {
	return m.Count(id)
}

// GetInt interprets the last occurrence's first value as a signed integer.
func (m *MatchStore) GetInt(id string) (int64, error) {
	raw, err := m.raw(id)
	if err != nil {
		return 0, err
	}
	return conv.Int(raw)
}

// GetUint interprets the last occurrence's first value as an unsigned integer.
func (m *MatchStore) GetUint(id string) (uint64, error) {
	raw, err := m.raw(id)
	if err != nil {
		return 0, err
	}
	return conv.Uint(raw)
}

// GetFloat interprets the last occurrence's first value as a float64.
func (m *MatchStore) GetFloat(id string) (float64, error) {
	raw, err := m.raw(id)
	if err != nil {
		return 0, err
	}
	return conv.Float(raw)
}

// GetDuration interprets the last occurrence's first value via
// time.ParseDuration.
func (m *MatchStore) GetDuration(id string) (time.Duration, error) {
	raw, err := m.raw(id)
	if err != nil {
		return 0, err
	}
	return conv.Duration(raw)
}

// GetTime interprets the last occurrence's first value via a
// format-free timestamp parse.
func (m *MatchStore) GetTime(id string) (time.Time, error) {
	raw, err := m.raw(id)
	if err != nil {
		return time.Time{}, err
	}
	return conv.Time(raw)
}

// GetParsed runs the argument's attached ValueParserFunc over the last
// occurrence's first raw value.
func (m *MatchStore) GetParsed(id string) (interface{}, error) {
	a, ok := m.cmd.Argument(id)
	if !ok || a.Parser == nil {
		return nil, errs.ErrInvalidValue.WithArgs(id, "no value parser attached")
	}
	raw, err := m.raw(id)
	if err != nil {
		return nil, err
	}
	return a.Parser(raw)
}
