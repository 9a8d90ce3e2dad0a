package cmdutil

import (
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opmodel/relkit/internal/config"
)

func TestToolFlags_AddTo(t *testing.T) {
	var tf ToolFlags
	cmd := &cobra.Command{Use: "test"}
	tf.AddTo(cmd)

	for _, name := range []string{"python", "rcc", "twine"} {
		f := cmd.Flags().Lookup(name)
		require.NotNil(t, f, name)
		assert.Equal(t, "", f.DefValue)
	}

	timeout := cmd.Flags().Lookup("timeout")
	require.NotNil(t, timeout)
	assert.Equal(t, "duration", timeout.Value.Type())

	require.NoError(t, cmd.ParseFlags([]string{"--timeout", "90s"}))
	assert.Equal(t, 90*time.Second, tf.Timeout)
}

func TestToolFlags_Resolve(t *testing.T) {
	t.Setenv(config.EnvRCC, "pyside6-rcc")
	t.Setenv(config.EnvPython, "")

	tf := ToolFlags{Python: "/usr/bin/python3.12"}
	cfg := &config.Config{Tools: config.ToolsConfig{Twine: "/opt/twine"}}

	got := tf.Resolve(cfg)
	assert.Equal(t, "/usr/bin/python3.12", got.Python.Value)
	assert.Equal(t, config.SourceFlag, got.Python.Source)
	assert.Equal(t, "pyside6-rcc", got.RCC.Value)
	assert.Equal(t, config.SourceEnv, got.RCC.Source)
	assert.Equal(t, "/opt/twine", got.Twine.Value)
	assert.Equal(t, config.SourceConfig, got.Twine.Source)
}

func TestReleaseFlags_AddTo(t *testing.T) {
	var rf ReleaseFlags
	cmd := &cobra.Command{Use: "test"}
	rf.AddTo(cmd)

	for _, name := range []string{"strict", "dry-run", "push-tags"} {
		f := cmd.Flags().Lookup(name)
		require.NotNil(t, f, name)
		assert.Equal(t, "false", f.DefValue)
	}

	require.NoError(t, cmd.ParseFlags([]string{"--strict", "--remote", "upstream"}))
	assert.True(t, rf.Strict)
	assert.Equal(t, "upstream", rf.Remote)
}

func TestReleaseFlags_ResolvePushTags(t *testing.T) {
	tests := []struct {
		name       string
		args       []string
		configured bool
		want       bool
	}{
		{name: "flag unset uses config true", args: nil, configured: true, want: true},
		{name: "flag unset uses config false", args: nil, configured: false, want: false},
		{name: "flag enables", args: []string{"--push-tags"}, configured: false, want: true},
		{name: "flag disables config", args: []string{"--push-tags=false"}, configured: true, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var rf ReleaseFlags
			cmd := &cobra.Command{Use: "test"}
			rf.AddTo(cmd)
			require.NoError(t, cmd.ParseFlags(tt.args))

			assert.Equal(t, tt.want, rf.ResolvePushTags(tt.configured))
		})
	}
}

func TestOutputFlags_AddTo(t *testing.T) {
	var of OutputFlags
	cmd := &cobra.Command{Use: "test"}
	of.AddTo(cmd)

	f := cmd.Flags().Lookup("output")
	require.NotNil(t, f)
	assert.Equal(t, "o", f.Shorthand)
	assert.Equal(t, "yaml", f.DefValue)
}
