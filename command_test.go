package cmdargs

import (
	"testing"

	"github.com/cmdargs/cmdargs/errs"
	"github.com/cmdargs/cmdargs/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildInjectsHelpAndVersion(t *testing.T) {
	c := NewCommand("app", WithCommandVersion("1.0.0"))
	require.NoError(t, c.Build())

	help, ok := c.Argument("help")
	require.True(t, ok)
	assert.Equal(t, "h", help.Short)
	assert.Equal(t, types.ActionHelp, help.Action)

	ver, ok := c.Argument("version")
	require.True(t, ok)
	assert.Equal(t, "V", ver.Short)
	assert.Equal(t, types.ActionVersion, ver.Action)
}

func TestBuildIsIdempotent(t *testing.T) {
	c := NewCommand("app", WithCommandVersion("1.0.0"))
	require.NoError(t, c.Build())
	first := c.arguments.Count()
	require.NoError(t, c.Build())
	assert.Equal(t, first, c.arguments.Count())
}

func TestBuildDoesNotDuplicateDeclaredHelp(t *testing.T) {
	c := NewCommand("app", WithArguments(
		NewArg("custom-help", WithLong("help"), WithShort("h"), WithNoValue(), WithAction(types.ActionHelp)),
	))
	require.NoError(t, c.Build())
	a, ok := c.Argument("custom-help")
	require.True(t, ok)
	assert.Equal(t, "h", a.Short)
	_, generated := c.Argument("help")
	assert.False(t, generated)
}

func TestBuildRejectsLastWithLongOrShort(t *testing.T) {
	c := NewCommand("app", WithArguments(
		NewArg("trailer", WithLong("trailer"), WithLast(true)),
	))
	err := c.Build()
	require.Error(t, err)
	ae, ok := errs.AsArgError(err)
	require.True(t, ok)
	assert.Equal(t, errs.KindInvalidValue, ae.Kind())
}

func TestBuildRejectsNonTrailingVariadicPositional(t *testing.T) {
	c := NewCommand("app", WithArguments(
		NewArg("first", WithPosition(1), WithVariadicValue()),
		NewArg("second", WithPosition(2), WithExactValues(1)),
	))
	err := c.Build()
	require.Error(t, err)
	ae, ok := errs.AsArgError(err)
	require.True(t, ok)
	assert.Equal(t, errs.KindInvalidValue, ae.Kind())
}

func TestBuildAllowsVariadicBeforeLastPositional(t *testing.T) {
	c := NewCommand("app", WithArguments(
		NewArg("first", WithPosition(1), WithVariadicValue()),
		NewArg("trailer", WithPosition(2), WithLast(true), WithVariadicValue()),
	))
	require.NoError(t, c.Build())
}

func TestBuildRejectsRequiredPositionalAfterOptional(t *testing.T) {
	c := NewCommand("app", WithArguments(
		NewArg("first", WithPosition(1), WithExactValues(1)),
		NewArg("second", WithPosition(2), WithExactValues(1), WithRequired(true)),
	))
	err := c.Build()
	require.Error(t, err)
	ae, ok := errs.AsArgError(err)
	require.True(t, ok)
	assert.Equal(t, errs.KindInvalidValue, ae.Kind())
}

func TestBuildAllowsRequiredPositionalAfterOptionalWithAllowMissingPositionals(t *testing.T) {
	c := NewCommand("app", WithSetting(AllowMissingPositionals), WithArguments(
		NewArg("first", WithPosition(1), WithExactValues(1)),
		NewArg("second", WithPosition(2), WithExactValues(1), WithRequired(true)),
	))
	require.NoError(t, c.Build())
}

func TestBuildAssignsNextPosition(t *testing.T) {
	c := NewCommand("app", WithArguments(
		NewArg("first", WithPosition(1)),
		NewArg("second", WithNextPosition()),
		NewArg("third", WithNextPosition()),
	))
	require.NoError(t, c.Build())

	second, _ := c.Argument("second")
	third, _ := c.Argument("third")
	require.NotNil(t, second.Position)
	require.NotNil(t, third.Position)
	assert.Equal(t, 2, *second.Position)
	assert.Equal(t, 3, *third.Position)
}

func TestBuildExpandsNestedGroups(t *testing.T) {
	c := NewCommand("app", WithArguments(
		NewArg("a", WithLong("a"), WithNoValue()),
		NewArg("b", WithLong("b"), WithNoValue()),
	), WithGroups(
		NewGroup("inner", WithGroupMembers("a")),
		NewGroup("outer", WithGroupMembers("inner", "b"), WithGroupRequired(true)),
	))
	require.NoError(t, c.Build())

	a, _ := c.Argument("a")
	assert.Contains(t, a.Groups, "outer")
}

func TestPropagatesGlobalArgumentsToSubcommands(t *testing.T) {
	sub := NewCommand("child")
	c := NewCommand("app",
		WithArguments(NewArg("verbose", WithLong("verbose"), WithGlobal(true), WithNoValue())),
		WithSubcommands(sub),
	)
	require.NoError(t, c.Build())

	_, ok := sub.Argument("verbose")
	assert.True(t, ok)
}
