package errs

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBoundInstanceComparesEqualToSentinel(t *testing.T) {
	err := ErrUnknownArgument.WithArgs("--bogus")
	assert.True(t, errors.Is(err, ErrUnknownArgument))
	assert.False(t, errors.Is(err, ErrArgumentConflict))
}

func TestWrapPreservesCauseChain(t *testing.T) {
	cause := fmt.Errorf("boom")
	err := ErrInvalidValue.WithArgs("x", "y").Wrap(cause)
	assert.ErrorIs(t, err, cause)
}

func TestErrorMessageIncludesSuggestionsAndMissing(t *testing.T) {
	err := ErrUnknownArgument.WithArgs("--verbos").WithSuggestions([]string{"verbose"})
	assert.Contains(t, err.Error(), "did you mean")

	missing := ErrMissingRequiredArgument.WithMissing([]string{"a", "b"})
	assert.Contains(t, missing.Error(), "a")
	assert.Contains(t, missing.Error(), "b")
}

func TestAsArgErrorAndIsHelper(t *testing.T) {
	var err error = ErrDisplayHelp
	ae, ok := AsArgError(err)
	assert.True(t, ok)
	assert.Equal(t, KindDisplayHelp, ae.Kind())
	assert.True(t, Is(err, KindDisplayHelp))
	assert.False(t, Is(err, KindDisplayVersion))
}
