package cmdargs

import (
	"fmt"
	"sort"
	"strings"

	"github.com/cmdargs/cmdargs/errs"
	"github.com/cmdargs/cmdargs/types/orderedmap"
	"github.com/ef-ds/deque"
)

// Command aggregates arguments, groups, and subcommands, and owns the
// build/finalize logic. Command is the whole recursive tree: a root
// Command and every subcommand reachable from it share this same type,
// so there's no separate top-level "Parser" concept above the command
// root.
type Command struct {
	Name        string
	BinaryName  string
	DisplayName string
	Aliases     []string
	HiddenAliases []string
	Version     string
	Hidden      bool
	Description string
	// IsHelpSubcommand marks a subcommand injected by Build to satisfy
	// the implicit "help" subcommand; a caller never sets this directly.
	IsHelpSubcommand bool

	arguments   *orderedmap.OrderedMap[string, *Argument]
	longIndex   map[string]string // long name -> arg id
	shortIndex  map[string]string // short char -> arg id
	positionals []*Argument        // sorted by Position

	groups *orderedmap.OrderedMap[string, *Group]

	subcommands   *orderedmap.OrderedMap[string, *Command]
	subAliasIndex map[string]string // alias -> canonical subcommand name

	replacers map[string][]string

	localSettings  Setting
	globalSettings Setting

	parent *Command
	built  bool

	// EnvLookup is the environment-variable source the validator reads
	// from; overridable for tests. Defaults to os.LookupEnv semantics.
	EnvLookup EnvGetter

	flagSuggestionThreshold int
	cmdSuggestionThreshold  int
}

// NewCommand builds a Command from configuration functions. Any command
// in the tree (root or subcommand) is constructed the same way.
func NewCommand(name string, configs ...ConfigureCommandFunc) *Command {
	c := &Command{
		Name:                    name,
		arguments:               orderedmap.NewOrderedMap[string, *Argument](),
		longIndex:               map[string]string{},
		shortIndex:              map[string]string{},
		groups:                  orderedmap.NewOrderedMap[string, *Group](),
		subcommands:             orderedmap.NewOrderedMap[string, *Command](),
		subAliasIndex:           map[string]string{},
		replacers:               map[string][]string{},
		flagSuggestionThreshold: 2,
		cmdSuggestionThreshold:  2,
	}
	var err error
	for _, cfg := range configs {
		cfg(c, &err)
	}
	return c
}

// NewCommandE builds a Command from configuration functions, stopping at
// the first error.
func NewCommandE(name string, configs ...ConfigureCommandFunc) (*Command, error) {
	c := &Command{
		Name:                    name,
		arguments:               orderedmap.NewOrderedMap[string, *Argument](),
		longIndex:               map[string]string{},
		shortIndex:              map[string]string{},
		groups:                  orderedmap.NewOrderedMap[string, *Group](),
		subcommands:             orderedmap.NewOrderedMap[string, *Command](),
		subAliasIndex:           map[string]string{},
		replacers:               map[string][]string{},
		flagSuggestionThreshold: 2,
		cmdSuggestionThreshold:  2,
	}
	var err error
	for _, cfg := range configs {
		cfg(c, &err)
		if err != nil {
			return nil, err
		}
	}
	return c, nil
}

// AddArgument registers an argument with this command. Returns an error
// if its id, long name, short name, or position collides with an
// already-registered argument. Build does not repeat these checks, and
// a global argument whose clone collides with a subcommand's own
// argument is skipped during propagation without an error.
func (c *Command) AddArgument(a *Argument) error {
	if a.ID == "" {
		return errs.ErrInvalidValue.WithArgs("", "argument id")
	}
	if _, exists := c.arguments.Get(a.ID); exists {
		return errs.ErrInvalidValue.WithArgs(a.ID, "duplicate argument id")
	}
	if a.Long != "" {
		if _, exists := c.longIndex[a.Long]; exists {
			return errs.ErrInvalidValue.WithArgs(a.Long, "duplicate long name")
		}
	}
	if a.Short != "" {
		if _, exists := c.shortIndex[a.Short]; exists {
			return errs.ErrInvalidValue.WithArgs(a.Short, "duplicate short name")
		}
	}
	if a.Position != nil && *a.Position > 0 {
		for _, p := range c.positionals {
			if *p.Position == *a.Position {
				return errs.ErrInvalidValue.WithArgs(*a.Position, "duplicate position")
			}
		}
	}

	c.arguments.Set(a.ID, a)
	if a.Long != "" {
		c.longIndex[a.Long] = a.ID
	}
	if a.Short != "" {
		c.shortIndex[a.Short] = a.ID
	}
	if a.IsPositional() && *a.Position > 0 {
		c.positionals = append(c.positionals, a)
		sort.SliceStable(c.positionals, func(i, j int) bool {
			return *c.positionals[i].Position < *c.positionals[j].Position
		})
	}
	return nil
}

// AddGroup registers a Group with this command.
func (c *Command) AddGroup(g *Group) error {
	if _, exists := c.groups.Get(g.ID); exists {
		return errs.ErrInvalidValue.WithArgs(g.ID, "duplicate group id")
	}
	c.groups.Set(g.ID, g)
	return nil
}

// AddCommand registers a subcommand.
func (c *Command) AddCommand(sub *Command) error {
	if _, exists := c.subcommands.Get(sub.Name); exists {
		return errs.ErrInvalidValue.WithArgs(sub.Name, "duplicate subcommand name")
	}
	if _, exists := c.subAliasIndex[sub.Name]; exists {
		return errs.ErrInvalidValue.WithArgs(sub.Name, "subcommand name collides with an alias")
	}
	for _, alias := range append(append([]string{}, sub.Aliases...), sub.HiddenAliases...) {
		if _, exists := c.subcommands.Get(alias); exists {
			return errs.ErrInvalidValue.WithArgs(alias, "alias collides with a subcommand name")
		}
		if other, exists := c.subAliasIndex[alias]; exists {
			return errs.ErrInvalidValue.WithArgs(alias, fmt.Sprintf("alias already used by %q", other))
		}
	}

	sub.parent = c
	c.subcommands.Set(sub.Name, sub)
	for _, alias := range sub.Aliases {
		c.subAliasIndex[alias] = sub.Name
	}
	for _, alias := range sub.HiddenAliases {
		c.subAliasIndex[alias] = sub.Name
	}
	return nil
}

// RegisterReplacer registers a token that, when seen verbatim on the
// command line, is spliced out and replaced with replacement.
func (c *Command) RegisterReplacer(token string, replacement []string) {
	c.replacers[token] = replacement
}

// Argument looks up a registered argument by id.
func (c *Command) Argument(id string) (*Argument, bool) {
	return c.arguments.Get(id)
}

// Group looks up a registered group by id.
func (c *Command) Group(id string) (*Group, bool) {
	return c.groups.Get(id)
}

// Subcommand looks up a direct child by canonical name.
func (c *Command) Subcommand(name string) (*Command, bool) {
	return c.subcommands.Get(name)
}

// findLong resolves a long-option token to an argument, honoring
// InferLongArgs unique-prefix matching.
func (c *Command) findLong(name string) (*Argument, bool) {
	if id, ok := c.longIndex[name]; ok {
		a, _ := c.arguments.Get(id)
		return a, true
	}
	if !c.localSettings.Has(InferLongArgs) {
		return nil, false
	}
	var match string
	count := 0
	for long := range c.longIndex {
		if strings.HasPrefix(long, name) {
			match = long
			count++
		}
	}
	if count != 1 {
		return nil, false
	}
	a, _ := c.arguments.Get(c.longIndex[match])
	return a, true
}

// findShort resolves a short-option character to an argument.
func (c *Command) findShort(ch string) (*Argument, bool) {
	id, ok := c.shortIndex[ch]
	if !ok {
		return nil, false
	}
	a, _ := c.arguments.Get(id)
	return a, true
}

// findPositional resolves a 1-based positional index to an argument.
func (c *Command) findPositional(idx int) (*Argument, bool) {
	for _, p := range c.positionals {
		if *p.Position == idx {
			return p, true
		}
	}
	return nil, false
}

// findSubcommand resolves a token to a direct child, honoring aliases
// and InferSubcommands unique-prefix matching.
func (c *Command) findSubcommand(name string) (*Command, bool) {
	if sub, ok := c.subcommands.Get(name); ok {
		return sub, true
	}
	if canonical, ok := c.subAliasIndex[name]; ok {
		sub, _ := c.subcommands.Get(canonical)
		return sub, true
	}
	if !c.localSettings.Has(InferSubcommands) {
		return nil, false
	}
	var match string
	count := 0
	it := c.subcommands.Iterator()
	for idx, k, _ := it(); idx != nil; idx, k, _ = it() {
		if strings.HasPrefix(*k, name) {
			match = *k
			count++
		}
	}
	for alias, canonical := range c.subAliasIndex {
		if strings.HasPrefix(alias, name) && canonical != match {
			match = canonical
			count++
		}
	}
	if count != 1 {
		return nil, false
	}
	return c.subcommands.Get(match)
}

// longNames returns every declared long name, for did-you-mean scans.
func (c *Command) longNames() []string {
	names := make([]string, 0, len(c.longIndex))
	for n := range c.longIndex {
		names = append(names, n)
	}
	return names
}

// subcommandNames returns every visible subcommand/alias name, for
// did-you-mean scans.
func (c *Command) subcommandNames() []string {
	var names []string
	it := c.subcommands.Iterator()
	for idx, k, v := it(); idx != nil; idx, k, v = it() {
		if !v.Hidden {
			names = append(names, *k)
			names = append(names, v.Aliases...)
		}
	}
	return names
}

// groupMembers resolves a group's concrete argument-id membership,
// expanding nested group references to a fixpoint via a BFS worklist.
// Cycles are broken defensively via the visited set.
func (c *Command) groupMembers(groupID string) []string {
	visited := map[string]bool{}
	var out []string
	q := deque.New()
	q.PushBack(groupID)
	for q.Len() > 0 {
		front, _ := q.PopFront()
		id := front.(string)
		if visited[id] {
			continue
		}
		visited[id] = true
		g, ok := c.groups.Get(id)
		if !ok {
			continue
		}
		for _, m := range g.Members {
			if _, isGroup := c.groups.Get(m); isGroup {
				q.PushBack(m)
				continue
			}
			out = append(out, m)
		}
	}
	return out
}

// allGroupsFor returns every group (including via nested membership)
// that id directly or transitively belongs to.
func (c *Command) allGroupsFor(id string) []string {
	var out []string
	it := c.groups.Iterator()
	for idx, k, _ := it(); idx != nil; idx, k, _ = it() {
		for _, m := range c.groupMembers(*k) {
			if m == id {
				out = append(out, *k)
				break
			}
		}
	}
	return out
}
