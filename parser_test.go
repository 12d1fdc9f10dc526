package cmdargs

import (
	"testing"

	"github.com/cmdargs/cmdargs/errs"
	"github.com/cmdargs/cmdargs/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCommand(t *testing.T, configs ...ConfigureCommandFunc) *Command {
	t.Helper()
	c := NewCommand("app", append([]ConfigureCommandFunc{
		WithSetting(DisableHelpFlag, DisableVersionFlag),
	}, configs...)...)
	require.NoError(t, c.Build())
	return c
}

func TestParseLongOptionWithInlineValue(t *testing.T) {
	c := newTestCommand(t, WithArguments(
		NewArg("name", WithLong("name"), WithExactValues(1)),
	))
	store, err := c.Parse([]string{"myapp", "--name=gopher"})
	require.NoError(t, err)
	v, ok := store.GetString("name")
	require.True(t, ok)
	assert.Equal(t, "gopher", v)
}

func TestParseLongOptionWithFollowingValue(t *testing.T) {
	c := newTestCommand(t, WithArguments(
		NewArg("name", WithLong("name"), WithExactValues(1)),
	))
	store, err := c.Parse([]string{"myapp", "--name", "gopher"})
	require.NoError(t, err)
	v, _ := store.GetString("name")
	assert.Equal(t, "gopher", v)
}

func TestParseShortClusterOfFlags(t *testing.T) {
	c := newTestCommand(t, WithArguments(
		NewArg("a", WithShort("a"), WithNoValue()),
		NewArg("b", WithShort("b"), WithNoValue()),
		NewArg("c", WithShort("c"), WithNoValue()),
	))
	store, err := c.Parse([]string{"myapp", "-abc"})
	require.NoError(t, err)
	assert.True(t, store.Present("a"))
	assert.True(t, store.Present("b"))
	assert.True(t, store.Present("c"))
}

func TestParseShortOptionWithAttachedValue(t *testing.T) {
	c := newTestCommand(t, WithArguments(
		NewArg("out", WithShort("o"), WithExactValues(1)),
	))
	store, err := c.Parse([]string{"myapp", "-ofile.txt"})
	require.NoError(t, err)
	v, _ := store.GetString("out")
	assert.Equal(t, "file.txt", v)
}

func TestParsePositionalInOrder(t *testing.T) {
	c := newTestCommand(t, WithArguments(
		NewArg("src", WithPosition(1)),
		NewArg("dst", WithPosition(2)),
	))
	store, err := c.Parse([]string{"myapp", "from.txt", "to.txt"})
	require.NoError(t, err)
	src, _ := store.GetString("src")
	dst, _ := store.GetString("dst")
	assert.Equal(t, "from.txt", src)
	assert.Equal(t, "to.txt", dst)
}

func TestParseTerminatorAssignsRemainderToLast(t *testing.T) {
	c := newTestCommand(t, WithArguments(
		NewArg("rest", WithLast(true), WithVariadicValue()),
	))
	store, err := c.Parse([]string{"myapp", "--", "-x", "--y", "z"})
	require.NoError(t, err)
	assert.Equal(t, []string{"-x", "--y", "z"}, store.GetStrings("rest"))
}

func TestParseTerminatorSplitsDelimitedValuesForLast(t *testing.T) {
	c := newTestCommand(t, WithArguments(
		NewArg("rest", WithLast(true), WithVariadicValue(), WithDelimiter(',')),
	))
	store, err := c.Parse([]string{"myapp", "--", "a,b", "c"})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, store.GetStrings("rest"))
	assert.Equal(t, 2, store.Count("rest"))
}

func TestParsePositionalVariadicRecordsOneOccurrencePerValue(t *testing.T) {
	c := newTestCommand(t, WithArguments(
		NewArg("out", WithShort("o"), WithExactValues(1)),
		NewArg("files", WithPosition(1), WithValueRange(1, 0)),
	))
	store, err := c.Parse([]string{"myapp", "-o", "x", "a", "b", "c"})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, store.GetStrings("files"))
	assert.Equal(t, 3, store.Count("files"))
	assert.Equal(t, []int{3, 4, 5}, store.entries["files"].SourceIndices)
}

func TestParseSubcommandRecursion(t *testing.T) {
	child := NewCommand("run", WithArguments(
		NewArg("target", WithPosition(1)),
	))
	c := newTestCommand(t, WithSubcommands(child))

	store, err := c.Parse([]string{"myapp", "run", "build"})
	require.NoError(t, err)
	sub, name, ok := store.Subcommand()
	require.True(t, ok)
	assert.Equal(t, "run", name)
	v, _ := sub.GetString("target")
	assert.Equal(t, "build", v)
}

func TestParseUnknownLongOptionSuggestsClosest(t *testing.T) {
	c := newTestCommand(t, WithArguments(
		NewArg("verbose", WithLong("verbose"), WithNoValue()),
	))
	_, err := c.Parse([]string{"myapp", "--verbos"})
	require.Error(t, err)
	assert.True(t, errs.Is(err, errs.KindUnknownArgument))
	ae, _ := errs.AsArgError(err)
	assert.Contains(t, ae.Suggestions, "verbose")
}

func TestParseRequiredArgumentMissing(t *testing.T) {
	c := newTestCommand(t, WithArguments(
		NewArg("name", WithLong("name"), WithExactValues(1), WithRequired(true)),
	))
	_, err := c.Parse(nil)
	require.Error(t, err)
	assert.True(t, errs.Is(err, errs.KindMissingRequiredArgument))
}

func TestParseConflictingArguments(t *testing.T) {
	c := newTestCommand(t, WithArguments(
		NewArg("a", WithLong("a"), WithNoValue(), WithConflictsWith("b")),
		NewArg("b", WithLong("b"), WithNoValue()),
	))
	_, err := c.Parse([]string{"myapp", "--a", "--b"})
	require.Error(t, err)
	assert.True(t, errs.Is(err, errs.KindArgumentConflict))
}

func TestParseRequiresArgument(t *testing.T) {
	c := newTestCommand(t, WithArguments(
		NewArg("a", WithLong("a"), WithNoValue(), WithRequires("b")),
		NewArg("b", WithLong("b"), WithNoValue()),
	))
	_, err := c.Parse([]string{"myapp", "--a"})
	require.Error(t, err)
	assert.True(t, errs.Is(err, errs.KindMissingRequiredArgument))
}

func TestParseDefaultValueWhenAbsent(t *testing.T) {
	c := newTestCommand(t, WithArguments(
		NewArg("level", WithLong("level"), WithExactValues(1), WithDefaultValues("info")),
	))
	store, err := c.Parse(nil)
	require.NoError(t, err)
	v, _ := store.GetString("level")
	assert.Equal(t, "info", v)
	prov, _ := store.Provenance("level")
	assert.Equal(t, types.FromDefaultValue, prov)
}

func TestParseEnvFallbackWhenAbsent(t *testing.T) {
	c := newTestCommand(t, WithArguments(
		NewArg("token", WithLong("token"), WithExactValues(1), WithEnvVar("APP_TOKEN")),
	), WithEnvLookup(func(name string) (string, bool) {
		if name == "APP_TOKEN" {
			return "secret", true
		}
		return "", false
	}))
	store, err := c.Parse(nil)
	require.NoError(t, err)
	v, _ := store.GetString("token")
	assert.Equal(t, "secret", v)
	prov, _ := store.Provenance("token")
	assert.Equal(t, types.FromEnvVariable, prov)
}

func TestParseOverrideDiscardsOverriddenMatch(t *testing.T) {
	c := newTestCommand(t, WithArguments(
		NewArg("color", WithLong("color"), WithNoValue(), WithOverrides("no-color")),
		NewArg("no-color", WithLong("no-color"), WithNoValue()),
	))
	store, err := c.Parse([]string{"myapp", "--no-color", "--color"})
	require.NoError(t, err)
	assert.True(t, store.Present("color"))
	assert.False(t, store.Present("no-color"))
}

func TestParseDelimitedValues(t *testing.T) {
	c := newTestCommand(t, WithArguments(
		NewArg("tags", WithLong("tags"), WithVariadicValue(), WithDelimiter(',')),
	))
	store, err := c.Parse([]string{"myapp", "--tags=a,b,c"})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, store.GetStrings("tags"))
}

func TestParseValueThatLooksLikeFlagIsRejectedWithoutAllowHyphen(t *testing.T) {
	c := newTestCommand(t, WithArguments(
		NewArg("name", WithLong("name"), WithExactValues(1)),
	))
	_, err := c.Parse([]string{"myapp", "--name", "--other"})
	require.Error(t, err)
	assert.True(t, errs.Is(err, errs.KindTooFewValues))
}

func TestParseAllowHyphenValuesAcceptsFlagLikeValue(t *testing.T) {
	c := newTestCommand(t, WithArguments(
		NewArg("name", WithLong("name"), WithExactValues(1), WithAllowHyphenValues(true)),
	))
	store, err := c.Parse([]string{"myapp", "--name", "--other"})
	require.NoError(t, err)
	v, _ := store.GetString("name")
	assert.Equal(t, "--other", v)
}

func TestParseStringSplitsShellWords(t *testing.T) {
	c := newTestCommand(t, WithArguments(
		NewArg("name", WithLong("name"), WithExactValues(1)),
	))
	store, err := c.ParseString(`myapp --name "gopher the great"`)
	require.NoError(t, err)
	v, _ := store.GetString("name")
	assert.Equal(t, "gopher the great", v)
}

func TestParseConsumesBinaryNameByDefault(t *testing.T) {
	c := newTestCommand(t, WithArguments(
		NewArg("first", WithPosition(1), WithExactValues(1)),
	))
	store, err := c.Parse([]string{"/usr/local/bin/myapp", "value1"})
	require.NoError(t, err)
	assert.Equal(t, "myapp", c.BinaryName)
	v, _ := store.GetString("first")
	assert.Equal(t, "value1", v)
}

func TestParseNoBinaryNameTreatsFirstTokenAsArgument(t *testing.T) {
	c := newTestCommand(t, WithSetting(NoBinaryName), WithArguments(
		NewArg("first", WithPosition(1), WithExactValues(1)),
	))
	store, err := c.Parse([]string{"value1"})
	require.NoError(t, err)
	assert.Equal(t, "", c.BinaryName)
	v, _ := store.GetString("first")
	assert.Equal(t, "value1", v)
}

func TestParseBinaryNamePropagatesToSubcommand(t *testing.T) {
	child := NewCommand("run")
	c := newTestCommand(t, WithSubcommands(child))
	store, err := c.Parse([]string{"myapp", "run"})
	require.NoError(t, err)
	assert.Equal(t, "myapp", c.BinaryName)
	assert.Equal(t, "myapp run", child.BinaryName)
	_, name, ok := store.Subcommand()
	require.True(t, ok)
	assert.Equal(t, "run", name)
}

func TestParseArgsNegateSubcommandsSuppressesRecursion(t *testing.T) {
	child := NewCommand("run")
	c := newTestCommand(t, WithSetting(ArgsNegateSubcommands), WithSubcommands(child), WithArguments(
		NewArg("first", WithPosition(1), WithExactValues(1)),
	))
	_, err := c.Parse([]string{"myapp", "value1", "run"})
	require.Error(t, err)
	assert.True(t, errs.Is(err, errs.KindInvalidSubcommand))
}

func TestParseSubcommandStillRecognizedWithoutArgsNegateSubcommands(t *testing.T) {
	child := NewCommand("run")
	c := newTestCommand(t, WithSubcommands(child), WithArguments(
		NewArg("first", WithPosition(1), WithExactValues(1)),
	))
	store, err := c.Parse([]string{"myapp", "value1", "run"})
	require.NoError(t, err)
	_, name, ok := store.Subcommand()
	require.True(t, ok)
	assert.Equal(t, "run", name)
}

func TestParseSubcommandPrecedenceOverArgAllowsSubcommandAfterTerminator(t *testing.T) {
	child := NewCommand("run")
	c := newTestCommand(t, WithSetting(SubcommandPrecedenceOverArg), WithSubcommands(child))
	store, err := c.Parse([]string{"myapp", "--", "run"})
	require.NoError(t, err)
	_, name, ok := store.Subcommand()
	require.True(t, ok)
	assert.Equal(t, "run", name)
}

func TestParseWithoutPrecedenceTerminatorBlocksSubcommandMatch(t *testing.T) {
	child := NewCommand("run")
	c := newTestCommand(t, WithSubcommands(child), WithArguments(
		NewArg("first", WithPosition(1), WithExactValues(1)),
	))
	store, err := c.Parse([]string{"myapp", "--", "run"})
	require.NoError(t, err)
	_, _, ok := store.Subcommand()
	assert.False(t, ok)
	v, _ := store.GetString("first")
	assert.Equal(t, "run", v)
}

func TestParseDontDelimitTrailingValuesSuppressesSplitting(t *testing.T) {
	c := newTestCommand(t, WithSetting(DontDelimitTrailingValues), WithArguments(
		NewArg("tags", WithPosition(1), WithVariadicValue(), WithDelimiter(',')),
	))
	store, err := c.Parse([]string{"myapp", "--", "a,b,c"})
	require.NoError(t, err)
	assert.Equal(t, []string{"a,b,c"}, store.GetStrings("tags"))
}

func TestParseWithoutDontDelimitTrailingValuesStillSplits(t *testing.T) {
	c := newTestCommand(t, WithArguments(
		NewArg("tags", WithPosition(1), WithVariadicValue(), WithDelimiter(',')),
	))
	store, err := c.Parse([]string{"myapp", "--", "a,b,c"})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, store.GetStrings("tags"))
}

func TestParseAllowMissingPositionalsSkipsOptionLookingToken(t *testing.T) {
	c := newTestCommand(t, WithSetting(AllowMissingPositionals), WithArguments(
		NewArg("first", WithPosition(1), WithExactValues(1), WithRequired(false)),
		NewArg("second", WithPosition(2), WithExactValues(1), WithRequired(true)),
		NewArg("verbose", WithLong("verbose"), WithNoValue()),
	))
	store, err := c.Parse([]string{"myapp", "--verbose", "onlysecond"})
	require.NoError(t, err)
	assert.False(t, store.Present("first"))
	v, _ := store.GetString("second")
	assert.Equal(t, "onlysecond", v)
}

func TestParseWithoutAllowMissingPositionalsBindsToFirstSlot(t *testing.T) {
	c := newTestCommand(t, WithArguments(
		NewArg("first", WithPosition(1), WithExactValues(1), WithRequired(true)),
		NewArg("second", WithPosition(2), WithExactValues(1), WithRequired(true)),
		NewArg("verbose", WithLong("verbose"), WithNoValue()),
	))
	_, err := c.Parse([]string{"myapp", "--verbose", "onlysecond"})
	require.Error(t, err)
	assert.True(t, errs.Is(err, errs.KindMissingRequiredArgument))
}

func TestParseSubcommandRequiredMissingEmitsMissingSubcommand(t *testing.T) {
	child := NewCommand("run")
	c := newTestCommand(t, WithSubcommands(child), WithSetting(SubcommandRequired))

	_, err := c.Parse([]string{"myapp"})
	require.Error(t, err)
	assert.True(t, errs.Is(err, errs.KindMissingSubcommand))
}

func TestParseSubcommandRequiredElseHelpEmitsDisplayHelp(t *testing.T) {
	child := NewCommand("run")
	c := newTestCommand(t, WithSubcommands(child),
		WithSetting(SubcommandRequired, SubcommandRequiredElseHelp))

	_, err := c.Parse([]string{"myapp"})
	require.Error(t, err)
	assert.True(t, errs.Is(err, errs.KindDisplayHelp))
}

func TestParseHelpSubcommandResolvesDeepestPath(t *testing.T) {
	grandchild := NewCommand("build", WithArguments(
		NewArg("target", WithPosition(1)),
	))
	child := NewCommand("run", WithSubcommands(grandchild))
	c := newTestCommand(t, WithSubcommands(child))

	_, err := c.Parse([]string{"myapp", "help", "run", "build"})
	require.Error(t, err)
	assert.True(t, errs.Is(err, errs.KindDisplayHelp))
	ae, ok := errs.AsArgError(err)
	require.True(t, ok)
	assert.Equal(t, "build", ae.Arg)
}

func TestParseHelpSubcommandUnknownComponentIsUnrecognized(t *testing.T) {
	child := NewCommand("run")
	c := newTestCommand(t, WithSubcommands(child))

	_, err := c.Parse([]string{"myapp", "help", "bogus"})
	require.Error(t, err)
	assert.True(t, errs.Is(err, errs.KindUnrecognizedSubcommand))
}

func TestParseGlobalArgumentValueCopiedToRootStore(t *testing.T) {
	child := NewCommand("run", WithArguments(
		NewArg("target", WithPosition(1)),
	))
	c := newTestCommand(t, WithSubcommands(child), WithArguments(
		NewArg("verbose", WithLong("verbose"), WithNoValue(), WithGlobal(true)),
	))

	store, err := c.Parse([]string{"myapp", "run", "--verbose", "build"})
	require.NoError(t, err)
	sub, _, ok := store.Subcommand()
	require.True(t, ok)
	assert.True(t, sub.Present("verbose"))
	assert.True(t, store.Present("verbose"))
}
