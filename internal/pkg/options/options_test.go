package options

import (
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qtmops/coco-cloner/internal/pkg/env"
)

func TestLoadDefaults(t *testing.T) {
	t.Parallel()
	o := NewOptions()
	flags := &pflag.FlagSet{}
	o.BindPersistentFlags(flags)

	require.NoError(t, o.Load(flags, env.Empty()))
	assert.Equal(t, "qa", o.Environment)
	assert.Equal(t, 0, o.ProjectId)
	assert.Empty(t, o.AuthToken)
	assert.False(t, o.Verbose)
}

func TestLoadFromEnvs(t *testing.T) {
	t.Parallel()
	o := NewOptions()
	flags := &pflag.FlagSet{}
	o.BindPersistentFlags(flags)

	envs := env.FromMap(map[string]string{
		"QTM_ENVIRONMENT": "staging",
		"PROJECT_ID":      "267",
		"AUTH_TOKEN":      "secret",
		"AUTH_USERNAME":   "user",
	})
	require.NoError(t, o.Load(flags, envs))
	assert.Equal(t, "staging", o.Environment)
	assert.Equal(t, 267, o.ProjectId)
	assert.Equal(t, "secret", o.AuthToken)
	assert.Equal(t, "user", o.Username)
}

func TestLoadFlagsTakePrecedence(t *testing.T) {
	t.Parallel()
	o := NewOptions()
	flags := &pflag.FlagSet{}
	o.BindPersistentFlags(flags)
	require.NoError(t, flags.Set("environment", "prod"))
	require.NoError(t, flags.Set("project", "300"))

	envs := env.FromMap(map[string]string{
		"QTM_ENVIRONMENT": "staging",
		"PROJECT_ID":      "267",
	})
	require.NoError(t, o.Load(flags, envs))
	assert.Equal(t, "prod", o.Environment)
	assert.Equal(t, 300, o.ProjectId)
}

func TestValidate(t *testing.T) {
	t.Parallel()
	o := NewOptions()
	o.Environment = "qa"

	require.NoError(t, o.Validate(FieldEnvironment))

	err := o.Validate(FieldProjectId, FieldAuthToken)
	require.Error(t, err)
	assert.Equal(t, "invalid configuration:\n"+
		`- missing project ID, set the PROJECT_ID env or the "--project" flag`+"\n"+
		`- missing auth token, run the "auth" command or set the AUTH_TOKEN env`, err.Error())

	o.ProjectId = 267
	o.AuthToken = "secret"
	require.NoError(t, o.Validate(FieldProjectId, FieldAuthToken))
}
