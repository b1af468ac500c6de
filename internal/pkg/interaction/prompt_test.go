package interaction

import (
	"bytes"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsInteractiveTerminal(t *testing.T) {
	t.Parallel()
	// The tests are run in a non-interactive terminal
	assert.False(t, isInteractiveTerminal(os.Stdin, os.Stdout))
}

func TestNonInteractiveFallbacks(t *testing.T) {
	var stderr bytes.Buffer
	p := NewPrompt(os.Stdin, os.Stdout, &stderr)
	require.False(t, p.IsInteractive())

	value, ok := p.Ask(&Question{Label: "Phase ID"})
	assert.Equal(t, "", value)
	assert.False(t, ok)

	assert.True(t, p.Confirm(&Confirm{Label: "Continue?", Default: true}))
	assert.False(t, p.Confirm(&Confirm{Label: "Continue?", Default: false}))

	index, ok := p.SelectIndex(&SelectIndex{Label: "Phase", Options: []string{"a", "b"}, Default: 1, UseDefault: true})
	assert.Equal(t, 1, index)
	assert.True(t, ok)

	_, ok = p.SelectIndex(&SelectIndex{Label: "Phase", Options: []string{"a", "b"}})
	assert.False(t, ok)
}

func TestRequiredValidator(t *testing.T) {
	t.Parallel()
	require.NoError(t, ValueRequired("abc"))
	assert.Equal(t, errors.New("value is required"), ValueRequired(""))
	assert.Equal(t, errors.New("value is required"), ValueRequired(" \t"))
}

func TestIntegerRequiredValidator(t *testing.T) {
	t.Parallel()
	require.NoError(t, IntegerRequired("123"))
	require.NoError(t, IntegerRequired(" 42 "))
	assert.Equal(t, errors.New("value is required"), IntegerRequired(""))
	assert.Equal(t, errors.New("value must be an integer"), IntegerRequired("abc"))
	assert.Equal(t, errors.New("value must be an integer"), IntegerRequired("1.5"))
}
