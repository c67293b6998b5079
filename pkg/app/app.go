// Package app builds cobra commands around a NamedFlagSetOptions struct.
package app

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	cliflag "k8s.io/component-base/cli/flag"
	"k8s.io/component-base/term"

	"github.com/autopeer-io/voltura/pkg/log"
)

// RunFunc is the main body of the root command.
type RunFunc func() error

// App is a command line application.
type App struct {
	name        string
	shortDesc   string
	description string
	envPrefix   string

	options     NamedFlagSetOptions
	runFunc     RunFunc
	noConfig    bool
	args        cobra.PositionalArgs
	subCommands []*cobra.Command

	configFile string
	cmd        *cobra.Command
}

// Option configures an App.
type Option func(*App)

// WithOptions sets the options populated from flags, config and env.
func WithOptions(opts NamedFlagSetOptions) Option {
	return func(a *App) {
		a.options = opts
	}
}

// WithRunFunc sets the root command body.
func WithRunFunc(run RunFunc) Option {
	return func(a *App) {
		a.runFunc = run
	}
}

// WithDescription sets the long help text.
func WithDescription(desc string) Option {
	return func(a *App) {
		a.description = desc
	}
}

// WithNoConfig removes the --config flag and viper binding.
func WithNoConfig() Option {
	return func(a *App) {
		a.noConfig = true
	}
}

// WithEnvPrefix sets the environment variable prefix. It defaults to the
// upper-cased application name.
func WithEnvPrefix(prefix string) Option {
	return func(a *App) {
		a.envPrefix = prefix
	}
}

// WithValidArgs sets the positional argument validator.
func WithValidArgs(args cobra.PositionalArgs) Option {
	return func(a *App) {
		a.args = args
	}
}

// WithDefaultValidArgs rejects any positional argument.
func WithDefaultValidArgs() Option {
	return func(a *App) {
		a.args = func(cmd *cobra.Command, args []string) error {
			for _, arg := range args {
				if len(arg) > 0 {
					return fmt.Errorf("%q does not take any arguments, got %q", cmd.CommandPath(), args)
				}
			}
			return nil
		}
	}
}

// WithSubCommands adds subcommands. They share the root options.
func WithSubCommands(cmds ...*cobra.Command) Option {
	return func(a *App) {
		a.subCommands = append(a.subCommands, cmds...)
	}
}

// NewApp creates an application and its cobra command.
func NewApp(name string, shortDesc string, opts ...Option) *App {
	a := &App{
		name:      name,
		shortDesc: shortDesc,
		envPrefix: strings.ToUpper(strings.ReplaceAll(name, "-", "_")),
	}
	for _, o := range opts {
		o(a)
	}
	a.buildCommand()
	return a
}

// Command returns the root cobra command.
func (a *App) Command() *cobra.Command {
	return a.cmd
}

// Run executes the command and exits the process on failure.
func (a *App) Run() {
	if err := a.cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

func (a *App) buildCommand() {
	cmd := &cobra.Command{
		Use:           a.name,
		Short:         a.shortDesc,
		Long:          a.description,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          a.args,
	}
	cmd.SetOut(os.Stdout)
	cmd.SetErr(os.Stderr)
	cmd.Flags().SortFlags = true

	var fss cliflag.NamedFlagSets
	if a.options != nil {
		fss = a.options.Flags()
	}
	if !a.noConfig {
		addConfigFlag(fss.FlagSet("global"), &a.configFile)
	}
	fs := cmd.PersistentFlags()
	for _, name := range fss.Order {
		fs.AddFlagSet(fss.FlagSets[name])
	}

	cmd.AddCommand(a.subCommands...)
	cmd.PersistentPreRunE = a.preRun
	if a.runFunc != nil {
		cmd.RunE = func(*cobra.Command, []string) error {
			return a.runFunc()
		}
	}

	cols, _, _ := term.TerminalSize(cmd.OutOrStdout())
	cliflag.SetUsageAndHelpFunc(cmd, fss, cols)

	a.cmd = cmd
}

func (a *App) preRun(cmd *cobra.Command, _ []string) error {
	if a.options == nil {
		return nil
	}

	if !a.noConfig {
		if err := loadConfig(cmd.Flags(), a.configFile, a.envPrefix, a.options); err != nil {
			return err
		}
	}

	if err := a.options.Complete(); err != nil {
		return err
	}
	if err := a.options.Validate(); err != nil {
		return err
	}

	if p, ok := a.options.(LogOptionsProvider); ok {
		log.Init(p.LogOptions())
	}
	return nil
}
