package cmdargs

// ConfigureArgumentFunc configures an Argument at construction time. err
// is storage for the first configuration failure, or nil when the caller
// discards errors (NewArg), so failures are written through setErr.
// NewArgE and Argument.Set stop the chain at the first failure.
type ConfigureArgumentFunc func(a *Argument, err *error)

// ConfigureCommandFunc configures a Command at construction time.
type ConfigureCommandFunc func(c *Command, err *error)

// ConfigureGroupFunc configures a Group at construction time.
type ConfigureGroupFunc func(g *Group, err *error)

// ValueParserFunc lazily interprets an argument's raw collected bytes.
// Value validation is delegated to a per-argument function invoked only
// when the caller actually reads the value; the core never calls this
// itself, MatchStore typed getters do.
type ValueParserFunc func(raw []byte) (interface{}, error)

// EnvGetter abstracts environment lookups so tests can stub them.
type EnvGetter func(name string) (string, bool)
