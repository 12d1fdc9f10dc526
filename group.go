package cmdargs

// Group is a named set of argument (or nested group) identifiers with
// shared presence/conflict rules. Groups may nest: a group's Members may
// itself name another group, resolved via fixpoint expansion at Build
// time.
type Group struct {
	ID       string
	Required bool
	Multiple bool
	Members  []string

	// ConflictsWith/Requires propagate to every concrete argument member
	// of this group, including members of nested groups.
	ConflictsWith []string
	Requires      []string
}

// NewGroup builds a Group from configuration functions.
func NewGroup(id string, configs ...ConfigureGroupFunc) *Group {
	g := &Group{ID: id}
	var err error
	for _, cfg := range configs {
		cfg(g, &err)
	}
	return g
}

// WithGroupRequired requires at least one member to be present.
func WithGroupRequired(required bool) ConfigureGroupFunc {
	return func(g *Group, err *error) {
		g.Required = required
	}
}

// WithGroupMultiple allows more than one member to be present at once.
func WithGroupMultiple(multiple bool) ConfigureGroupFunc {
	return func(g *Group, err *error) {
		g.Multiple = multiple
	}
}

// WithGroupMembers declares the argument or nested-group ids belonging
// to this group.
func WithGroupMembers(ids ...string) ConfigureGroupFunc {
	return func(g *Group, err *error) {
		g.Members = append(g.Members, ids...)
	}
}

// WithGroupConflictsWith declares ids that conflict with every concrete
// member of this group.
func WithGroupConflictsWith(ids ...string) ConfigureGroupFunc {
	return func(g *Group, err *error) {
		g.ConflictsWith = append(g.ConflictsWith, ids...)
	}
}

// WithGroupRequires declares ids that every concrete member of this
// group requires.
func WithGroupRequires(ids ...string) ConfigureGroupFunc {
	return func(g *Group, err *error) {
		g.Requires = append(g.Requires, ids...)
	}
}
