package app

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	cliflag "k8s.io/component-base/cli/flag"
)

type serverOptions struct {
	Addr    string        `mapstructure:"addr"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type testOptions struct {
	Server   *serverOptions `mapstructure:"server"`
	Tags     []string       `mapstructure:"tags"`
	complete bool
	invalid  bool
}

func newTestOptions() *testOptions {
	return &testOptions{Server: &serverOptions{Addr: ":8080", Timeout: time.Second}}
}

func (o *testOptions) Flags() cliflag.NamedFlagSets {
	fss := cliflag.NamedFlagSets{}
	fs := fss.FlagSet("server")
	fs.StringVar(&o.Server.Addr, "server.addr", o.Server.Addr, "")
	fs.DurationVar(&o.Server.Timeout, "server.timeout", o.Server.Timeout, "")
	fss.FlagSet("misc").StringSliceVar(&o.Tags, "tags", o.Tags, "")
	return fss
}

func (o *testOptions) Complete() error {
	o.complete = true
	return nil
}

func (o *testOptions) Validate() error {
	if o.invalid || o.Server.Addr == "" {
		return errors.New("server.addr is required")
	}
	return nil
}

func execute(t *testing.T, a *App, args ...string) error {
	t.Helper()
	cmd := a.Command()
	cmd.SetArgs(args)
	return cmd.Execute()
}

func TestFlagsOverrideDefaults(t *testing.T) {
	opts := newTestOptions()
	ran := false
	a := NewApp("voltura-test", "test", WithOptions(opts), WithRunFunc(func() error {
		ran = true
		return nil
	}))

	require.NoError(t, execute(t, a, "--server.addr=:9090", "--tags=a,b"))
	assert.True(t, ran)
	assert.True(t, opts.complete)
	assert.Equal(t, ":9090", opts.Server.Addr)
	assert.Equal(t, time.Second, opts.Server.Timeout)
	assert.Equal(t, []string{"a", "b"}, opts.Tags)
}

func TestConfigFileAndEnv(t *testing.T) {
	cfgFile := filepath.Join(t.TempDir(), "voltura.yaml")
	require.NoError(t, os.WriteFile(cfgFile, []byte("server:\n  addr: \":7070\"\n  timeout: 3s\n"), 0o644))

	opts := newTestOptions()
	a := NewApp("voltura-test", "test", WithOptions(opts), WithRunFunc(func() error { return nil }))
	require.NoError(t, execute(t, a, "--config", cfgFile))
	assert.Equal(t, ":7070", opts.Server.Addr)
	assert.Equal(t, 3*time.Second, opts.Server.Timeout)

	t.Setenv("VOLTURA_TEST_SERVER_TIMEOUT", "5s")
	opts = newTestOptions()
	a = NewApp("voltura-test", "test", WithOptions(opts), WithRunFunc(func() error { return nil }))
	require.NoError(t, execute(t, a, "--config", cfgFile, "--server.addr=:6060"))
	assert.Equal(t, ":6060", opts.Server.Addr, "explicit flags win")
	assert.Equal(t, 5*time.Second, opts.Server.Timeout, "env beats the config file")
}

func TestMissingConfigFile(t *testing.T) {
	a := NewApp("voltura-test", "test", WithOptions(newTestOptions()), WithRunFunc(func() error { return nil }))
	assert.Error(t, execute(t, a, "--config", filepath.Join(t.TempDir(), "missing.yaml")))
}

func TestValidationStopsRun(t *testing.T) {
	opts := newTestOptions()
	opts.invalid = true
	ran := false
	a := NewApp("voltura-test", "test", WithOptions(opts), WithRunFunc(func() error {
		ran = true
		return nil
	}))

	assert.ErrorContains(t, execute(t, a), "server.addr is required")
	assert.False(t, ran)
}

func TestDefaultValidArgs(t *testing.T) {
	a := NewApp("voltura-test", "test", WithOptions(newTestOptions()), WithDefaultValidArgs(),
		WithRunFunc(func() error { return nil }))
	assert.Error(t, execute(t, a, "unexpected"))
}

func TestSubCommandsShareOptions(t *testing.T) {
	opts := newTestOptions()
	var seen string
	sub := &cobra.Command{
		Use: "sub",
		RunE: func(*cobra.Command, []string) error {
			seen = opts.Server.Addr
			return nil
		},
	}
	a := NewApp("voltura-test", "test", WithOptions(opts), WithSubCommands(sub))

	require.NoError(t, execute(t, a, "sub", "--server.addr=:5050"))
	assert.Equal(t, ":5050", seen)
	assert.True(t, opts.complete)
}
